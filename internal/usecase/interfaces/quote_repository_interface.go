package interfaces

import (
	"context"
	"errors"

	"gardenbuild/internal/domain/entities"
)

// ErrDuplicateQuoteNumber is returned by Create when the quote number the
// caller reserved is already taken. The use case re-allocates and retries.
var ErrDuplicateQuoteNumber = errors.New("quote number already taken")

// ListQuotesFilter narrows and pages a quote listing.
type ListQuotesFilter struct {
	Status          entities.QuoteStatus
	ConfigurationID string
	Page            int
	Limit           int
}

// IQuoteRepository abstracts DynamoDB persistence for QuoteRequest.
//
// The quoting service must be able to:
//   - create a quote with a reserved, globally unique quote number
//   - resolve quotes by id and by human-facing number
//   - apply targeted status / customer updates
//   - append a payment ledger entry and move the running total atomically
//   - count non-deleted quotes referencing a configuration
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	GetByNumber(ctx context.Context, number string) (entities.QuoteRequest, error)
	UpdateStatusByID(ctx context.Context, id string, status entities.QuoteStatus) (entities.QuoteRequest, error)
	UpdateCustomerByID(ctx context.Context, id string, customer entities.Customer) (entities.QuoteRequest, error)
	AppendPayment(ctx context.Context, id string, item entities.PaymentHistoryItem, delta float64) (entities.QuoteRequest, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListQuotesFilter) ([]entities.QuoteRequest, error)
	CountByConfigurationID(ctx context.Context, configurationID string) (int, error)
}

// IQuoteSequenceRepository is the external sequence service behind quote
// numbering. Next must be a single atomic reserve-next-value operation on a
// durable counter scoped by epoch, never read-then-increment in application
// code: two concurrent callers must never receive the same value.
type IQuoteSequenceRepository interface {
	Next(ctx context.Context, epochID string) (int64, error)
}
