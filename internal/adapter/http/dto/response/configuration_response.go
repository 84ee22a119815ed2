package response

import (
	"time"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/validation"
)

type EstimateResponse struct {
	Currency      string  `json:"currency"`
	SubtotalExVAT float64 `json:"subtotal_ex_vat"`
	VATRate       float64 `json:"vat_rate"`
	VATAmount     float64 `json:"vat_amount"`
	TotalIncVAT   float64 `json:"total_inc_vat"`
}

type ConfigurationResponse struct {
	ID           string                `json:"id"`
	ProductType  string                `json:"product_type"`
	Size         entities.Size         `json:"size"`
	Cladding     entities.Cladding     `json:"cladding"`
	Floor        entities.Floor        `json:"floor"`
	InternalWall entities.InternalWall `json:"internal_wall"`
	Bathrooms    entities.Bathrooms    `json:"bathrooms"`
	Electrical   entities.Electrical   `json:"electrical"`
	Glazing      entities.Glazing      `json:"glazing"`
	Delivery     entities.Delivery     `json:"delivery"`
	Extras       entities.Extras       `json:"extras"`
	Estimate     EstimateResponse      `json:"estimate"`
	Warnings     []WarningResponse     `json:"warnings,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// WarningResponse surfaces non-blocking advisories (planning permission,
// overpayment) alongside a successful result.
type WarningResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func FromWarnings(warnings []validation.FieldError) []WarningResponse {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, WarningResponse{Field: w.Field, Code: w.Code, Message: w.Message})
	}
	return out
}

func FromConfiguration(cfg entities.ProductConfiguration, warnings []validation.FieldError) ConfigurationResponse {
	return ConfigurationResponse{
		ID:           cfg.ID,
		ProductType:  string(cfg.ProductType),
		Size:         cfg.Size,
		Cladding:     cfg.Cladding,
		Floor:        cfg.Floor,
		InternalWall: cfg.InternalWall,
		Bathrooms:    cfg.Bathrooms,
		Electrical:   cfg.Electrical,
		Glazing:      cfg.Glazing,
		Delivery:     cfg.Delivery,
		Extras:       cfg.Extras,
		Estimate: EstimateResponse{
			Currency:      cfg.Estimate.Currency,
			SubtotalExVAT: cfg.Estimate.SubtotalExVAT,
			VATRate:       cfg.Estimate.VATRate,
			VATAmount:     cfg.Estimate.VATAmount,
			TotalIncVAT:   cfg.Estimate.TotalIncVAT,
		},
		Warnings:  FromWarnings(warnings),
		CreatedAt: cfg.CreatedAt,
		UpdatedAt: cfg.UpdatedAt,
	}
}

type ConfigurationListResponse struct {
	Items []ConfigurationResponse `json:"items"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

func FromConfigurations(cfgs []entities.ProductConfiguration, page, limit int) ConfigurationListResponse {
	items := make([]ConfigurationResponse, 0, len(cfgs))
	for _, cfg := range cfgs {
		items = append(items, FromConfiguration(cfg, nil))
	}
	return ConfigurationListResponse{Items: items, Page: page, Limit: limit}
}
