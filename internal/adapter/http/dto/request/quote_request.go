package request

import (
	"gardenbuild/internal/domain/entities"
)

type CustomerRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	PhonePrefix  string `json:"phone_prefix"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	County       string `json:"county" binding:"required"`
	Eircode      string `json:"eircode" binding:"required"`
}

func (r CustomerRequest) ToEntity() entities.Customer {
	return entities.Customer{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PhonePrefix:  r.PhonePrefix,
		PhoneNumber:  r.PhoneNumber,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		County:       r.County,
		Eircode:      r.Eircode,
	}
}

// QuoteCreateRequest ties a customer to an existing configuration.
// ExpectedInstallments is optional and defaults to zero (unplanned).
type QuoteCreateRequest struct {
	ConfigurationID      string          `json:"configuration_id" binding:"required"`
	Customer             CustomerRequest `json:"customer" binding:"required"`
	ExpectedInstallments int             `json:"expected_installments"`
}

// QuoteTransitionRequest names the target lifecycle state.
type QuoteTransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentRequest records one ledger entry. Amount is the positive magnitude;
// the direction comes from the type.
type PaymentRequest struct {
	Type   string  `json:"type" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// CustomerPatchRequest corrects contact details on a quote. Absent fields are
// left untouched.
type CustomerPatchRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	PhonePrefix  *string `json:"phone_prefix"`
	PhoneNumber  *string `json:"phone_number"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	County       *string `json:"county"`
	Eircode      *string `json:"eircode"`
}

func (r CustomerPatchRequest) ToPatch() entities.CustomerPatch {
	return entities.CustomerPatch{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PhonePrefix:  r.PhonePrefix,
		PhoneNumber:  r.PhoneNumber,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		County:       r.County,
		Eircode:      r.Eircode,
	}
}
