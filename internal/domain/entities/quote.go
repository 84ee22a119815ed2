package entities

import "time"

// QuoteStatus represents the lifecycle of a quote request.
//
// Domain notes:
//   - The quoting service is the source of truth for quote/payment state.
//   - Transitions are validated by CanTransition before any persistence.
type QuoteStatus string

const (
	QuoteStatusPreQuote     QuoteStatus = "pre-quote"
	QuoteStatusQuoted       QuoteStatus = "quoted"
	QuoteStatusDepositPaid  QuoteStatus = "deposit-paid"
	QuoteStatusInProduction QuoteStatus = "in-production"
	QuoteStatusCompleted    QuoteStatus = "completed"
	QuoteStatusCancelled    QuoteStatus = "cancelled"
	QuoteStatusRefunded     QuoteStatus = "refunded"
)

// ValidQuoteStatus reports whether s is a known lifecycle state.
func ValidQuoteStatus(s QuoteStatus) bool {
	switch s {
	case QuoteStatusPreQuote, QuoteStatusQuoted, QuoteStatusDepositPaid,
		QuoteStatusInProduction, QuoteStatusCompleted, QuoteStatusCancelled,
		QuoteStatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s QuoteStatus) Terminal() bool {
	switch s {
	case QuoteStatusCompleted, QuoteStatusCancelled, QuoteStatusRefunded:
		return true
	}
	return false
}

// forwardTransitions is the happy-path progression. Cancellation and refund
// are handled separately because they cut across the sequence.
var forwardTransitions = map[QuoteStatus]QuoteStatus{
	QuoteStatusPreQuote:     QuoteStatusQuoted,
	QuoteStatusQuoted:       QuoteStatusDepositPaid,
	QuoteStatusDepositPaid:  QuoteStatusInProduction,
	QuoteStatusInProduction: QuoteStatusCompleted,
}

// CanTransition reports whether the from→to edge exists in the lifecycle
// graph given the running paid total. It is a pure mapping; callers persist
// nothing when it returns false.
//
// Rules:
//   - forward moves advance one state at a time;
//   - quoted → deposit-paid additionally requires totalPaid > 0;
//   - cancelled is reachable from any non-terminal state;
//   - refunded is reachable from deposit-paid onwards, completed included.
func CanTransition(from, to QuoteStatus, totalPaid float64) bool {
	switch to {
	case QuoteStatusCancelled:
		return !from.Terminal()
	case QuoteStatusRefunded:
		switch from {
		case QuoteStatusDepositPaid, QuoteStatusInProduction, QuoteStatusCompleted:
			return true
		}
		return false
	case QuoteStatusDepositPaid:
		return from == QuoteStatusQuoted && totalPaid > 0
	default:
		return forwardTransitions[from] == to
	}
}

// PaymentType tags a ledger entry. The sign of the entry's effect on the
// running total lives in the type; amounts are always stored positive.
type PaymentType string

const (
	PaymentTypeDeposit     PaymentType = "DEPOSIT"
	PaymentTypeInstallment PaymentType = "INSTALLMENT"
	PaymentTypeFinal       PaymentType = "FINAL"
	PaymentTypeRefund      PaymentType = "REFUND"
	PaymentTypeAdjustment  PaymentType = "ADJUSTMENT"
)

// ValidPaymentType reports whether t is a known ledger tag.
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeDeposit, PaymentTypeInstallment, PaymentTypeFinal,
		PaymentTypeRefund, PaymentTypeAdjustment:
		return true
	}
	return false
}

// Sign is the effect of the type on the running total: +1 for money in,
// -1 for refunds and adjustments.
func (t PaymentType) Sign() float64 {
	switch t {
	case PaymentTypeRefund, PaymentTypeAdjustment:
		return -1
	}
	return 1
}

// PaymentHistoryItem is an append-only ledger entry. Amount is validated
// positive; the signed effect comes from Type.
type PaymentHistoryItem struct {
	Type      PaymentType `json:"type"`
	Amount    float64     `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
}

// Effect is the signed delta the item applies to Payment.TotalPaid.
func (p PaymentHistoryItem) Effect() float64 {
	return p.Type.Sign() * p.Amount
}

// Payment tracks the money side of a quote.
type Payment struct {
	Status               QuoteStatus          `json:"status"`
	TotalPaid            float64              `json:"total_paid"`
	ExpectedInstallments int                  `json:"expected_installments,omitempty"`
	History              []PaymentHistoryItem `json:"history"`
}

// Customer holds the contact details captured with a quote request.
type Customer struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PhonePrefix  string `json:"phone_prefix"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	County       string `json:"county"`
	Eircode      string `json:"eircode"`
}

// RetentionDays is how long a pre-quote record is kept before an external
// reaper may purge it.
const RetentionDays = 30

// QuoteRequest is a customer's ask tied to exactly one configuration.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_number-index): quote_number
//
// ConfigurationID must reference an existing configuration at creation time;
// the use case verifies this explicitly before insert.
type QuoteRequest struct {
	ID              string    `json:"id"`
	QuoteNumber     string    `json:"quote_number"`
	ConfigurationID string    `json:"configuration_id"`
	Customer        Customer  `json:"customer"`
	Payment         Payment   `json:"payment"`
	RetentionExpiry time.Time `json:"retention_expires_at"`
	RequestedAt     time.Time `json:"requested_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
