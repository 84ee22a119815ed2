package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/validation"
	"gardenbuild/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrInvalidQuoteID       = errors.New("invalid quote id")
	ErrInvalidQuoteNumber   = errors.New("invalid quote number")
	ErrInvalidTransition    = errors.New("invalid lifecycle transition")
	ErrQuoteNotDeletable    = errors.New("quote can only be deleted in pre-quote state")
	ErrQuoteNumberExhausted = errors.New("could not allocate a unique quote number")
	ErrInvalidPaymentType   = errors.New("invalid payment type")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
)

// CodeOverpayment tags the soft warning raised when the ledger total exceeds
// the configuration's estimate. Refunds can legitimately net this back down,
// so it never blocks the append.
const CodeOverpayment = "TOTAL_EXCEEDS_ESTIMATE"

// quoteNumberAttempts bounds the allocate-and-reserve retry loop. The
// counter is atomic, so a collision means an operator seeded the table by
// hand; retrying with the next value converges.
const quoteNumberAttempts = 3

// IQuoteUseCase exposes quote request operations.
//
// Create verifies the configuration reference, allocates the next quote
// number for the current epoch and persists the quote in pre-quote state.
// Transition is the only way the lifecycle state changes; AppendPayment is
// the only way the paid total changes.
type IQuoteUseCase interface {
	Create(ctx context.Context, configurationID string, customer entities.Customer, expectedInstallments int) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	GetByNumber(ctx context.Context, number string) (entities.QuoteRequest, error)
	List(ctx context.Context, filter interfaces.ListQuotesFilter) ([]entities.QuoteRequest, error)
	Transition(ctx context.Context, id string, to entities.QuoteStatus) (entities.QuoteRequest, error)
	UpdateCustomer(ctx context.Context, id string, patch entities.CustomerPatch) (entities.QuoteRequest, error)
	AppendPayment(ctx context.Context, id string, paymentType entities.PaymentType, amount float64) (entities.QuoteRequest, []validation.FieldError, error)
	Delete(ctx context.Context, id string) error
}

type QuoteUseCase struct {
	repo       interfaces.IQuoteRepository
	configRepo interfaces.IConfigurationRepository
	sequences  interfaces.IQuoteSequenceRepository
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, configRepo interfaces.IConfigurationRepository, sequences interfaces.IQuoteSequenceRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, configRepo: configRepo, sequences: sequences}
}

func (u *QuoteUseCase) Create(ctx context.Context, configurationID string, customer entities.Customer, expectedInstallments int) (entities.QuoteRequest, error) {
	configurationID = strings.TrimSpace(configurationID)
	if configurationID == "" {
		return entities.QuoteRequest{}, ErrInvalidConfigurationID
	}
	if expectedInstallments < 0 {
		return entities.QuoteRequest{}, &ValidationError{Fields: []validation.FieldError{{
			Field: "payment.expectedInstallments", Code: validation.CodeNegative, Message: "expected installments cannot be negative",
		}}}
	}

	if res := validation.ValidateCustomer(customer); !res.IsValid {
		return entities.QuoteRequest{}, &ValidationError{Fields: res.Errors}
	}

	// Referential invariant: the configuration must exist at creation time.
	cfg, err := u.configRepo.GetByID(ctx, configurationID)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if cfg.ID == "" {
		return entities.QuoteRequest{}, ErrConfigurationNotFound
	}

	now := time.Now().UTC()
	epoch := entities.EpochOf(now)

	for attempt := 1; attempt <= quoteNumberAttempts; attempt++ {
		seq, err := u.sequences.Next(ctx, epoch.ID())
		if err != nil {
			return entities.QuoteRequest{}, err
		}

		q := entities.QuoteRequest{
			ID:              uuid.NewString(),
			QuoteNumber:     epoch.QuoteNumber(seq),
			ConfigurationID: configurationID,
			Customer:        customer,
			Payment: entities.Payment{
				Status:               entities.QuoteStatusPreQuote,
				TotalPaid:            0,
				ExpectedInstallments: expectedInstallments,
				History:              []entities.PaymentHistoryItem{},
			},
			RetentionExpiry: now.AddDate(0, 0, entities.RetentionDays),
			RequestedAt:     now,
			UpdatedAt:       now,
		}

		created, err := u.repo.Create(ctx, q)
		if errors.Is(err, interfaces.ErrDuplicateQuoteNumber) {
			log.Warn().Str("quote_number", q.QuoteNumber).Int("attempt", attempt).Msg("quote number collision, retrying with next value")
			continue
		}
		if err != nil {
			return entities.QuoteRequest{}, err
		}
		return created, nil
	}

	return entities.QuoteRequest{}, ErrQuoteNumberExhausted
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) GetByNumber(ctx context.Context, number string) (entities.QuoteRequest, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteNumber
	}

	q, err := u.repo.GetByNumber(ctx, number)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, filter interfaces.ListQuotesFilter) ([]entities.QuoteRequest, error) {
	if filter.Status != "" && !entities.ValidQuoteStatus(filter.Status) {
		return nil, &ValidationError{Fields: []validation.FieldError{{
			Field: "status", Code: validation.CodeInvalidEnum, Message: "unknown quote status",
		}}}
	}
	page, limit, err := normalizePagination(filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	filter.Page = page
	filter.Limit = limit
	return u.repo.List(ctx, filter)
}

// Transition moves the quote to a new lifecycle state. Illegal edges fail
// with ErrInvalidTransition and persist nothing.
func (u *QuoteUseCase) Transition(ctx context.Context, id string, to entities.QuoteStatus) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteID
	}
	if !entities.ValidQuoteStatus(to) {
		return entities.QuoteRequest{}, ErrInvalidTransition
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}

	if !entities.CanTransition(q.Payment.Status, to, q.Payment.TotalPaid) {
		return entities.QuoteRequest{}, ErrInvalidTransition
	}

	updated, err := u.repo.UpdateStatusByID(ctx, id, to)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if updated.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	return updated, nil
}

// UpdateCustomer applies a contact correction. The merged record is fully
// re-validated so a partial change cannot leave county and eircode disagreeing.
func (u *QuoteUseCase) UpdateCustomer(ctx context.Context, id string, patch entities.CustomerPatch) (entities.QuoteRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}

	merged := patch.Apply(q.Customer)
	if res := validation.ValidateCustomer(merged); !res.IsValid {
		return entities.QuoteRequest{}, &ValidationError{Fields: res.Errors}
	}

	updated, err := u.repo.UpdateCustomerByID(ctx, id, merged)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if updated.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteNotFound
	}
	return updated, nil
}

// AppendPayment records a ledger entry. Amounts are always positive; the
// sign of the effect on the running total comes from the payment type.
// Exceeding the configuration's estimate is reported as a warning, never a
// rejection.
func (u *QuoteUseCase) AppendPayment(ctx context.Context, id string, paymentType entities.PaymentType, amount float64) (entities.QuoteRequest, []validation.FieldError, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, nil, ErrInvalidQuoteID
	}
	if !entities.ValidPaymentType(paymentType) {
		return entities.QuoteRequest{}, nil, ErrInvalidPaymentType
	}
	if amount <= 0 {
		return entities.QuoteRequest{}, nil, ErrInvalidPaymentAmount
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteRequest{}, nil, err
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, nil, ErrQuoteNotFound
	}

	item := entities.PaymentHistoryItem{
		Type:      paymentType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := u.repo.AppendPayment(ctx, id, item, item.Effect())
	if err != nil {
		return entities.QuoteRequest{}, nil, err
	}

	var warnings []validation.FieldError
	if cfg, err := u.configRepo.GetByID(ctx, updated.ConfigurationID); err == nil && cfg.ID != "" {
		if updated.Payment.TotalPaid > cfg.Estimate.TotalIncVAT {
			log.Warn().
				Str("quote_id", updated.ID).
				Float64("total_paid", updated.Payment.TotalPaid).
				Float64("total_inc_vat", cfg.Estimate.TotalIncVAT).
				Msg("payment ledger exceeds estimate total")
			warnings = append(warnings, validation.FieldError{
				Field:   "payment.totalPaid",
				Code:    CodeOverpayment,
				Message: "total paid exceeds the configuration's estimate total",
			})
		}
	}

	return updated, warnings, nil
}

// Delete removes a quote, permitted only while still in pre-quote.
func (u *QuoteUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q.ID == "" {
		return ErrQuoteNotFound
	}
	if q.Payment.Status != entities.QuoteStatusPreQuote {
		return ErrQuoteNotDeletable
	}

	return u.repo.Delete(ctx, id)
}
