package response

import (
	"time"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/validation"
)

type PaymentHistoryItemResponse struct {
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentResponse struct {
	Status               string                       `json:"status"`
	TotalPaid            float64                      `json:"total_paid"`
	ExpectedInstallments int                          `json:"expected_installments,omitempty"`
	History              []PaymentHistoryItemResponse `json:"history"`
}

type QuoteResponse struct {
	ID              string            `json:"id"`
	QuoteNumber     string            `json:"quote_number"`
	ConfigurationID string            `json:"configuration_id"`
	Customer        entities.Customer `json:"customer"`
	Payment         PaymentResponse   `json:"payment"`
	Warnings        []WarningResponse `json:"warnings,omitempty"`
	RetentionExpiry time.Time         `json:"retention_expires_at"`
	RequestedAt     time.Time         `json:"requested_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func FromQuote(q entities.QuoteRequest, warnings []validation.FieldError) QuoteResponse {
	history := make([]PaymentHistoryItemResponse, 0, len(q.Payment.History))
	for _, h := range q.Payment.History {
		history = append(history, PaymentHistoryItemResponse{
			Type:      string(h.Type),
			Amount:    h.Amount,
			CreatedAt: h.CreatedAt,
		})
	}
	return QuoteResponse{
		ID:              q.ID,
		QuoteNumber:     q.QuoteNumber,
		ConfigurationID: q.ConfigurationID,
		Customer:        q.Customer,
		Payment: PaymentResponse{
			Status:               string(q.Payment.Status),
			TotalPaid:            q.Payment.TotalPaid,
			ExpectedInstallments: q.Payment.ExpectedInstallments,
			History:              history,
		},
		Warnings:        FromWarnings(warnings),
		RetentionExpiry: q.RetentionExpiry,
		RequestedAt:     q.RequestedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func FromQuotes(quotes []entities.QuoteRequest, page, limit int) QuoteListResponse {
	items := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, FromQuote(q, nil))
	}
	return QuoteListResponse{Items: items, Page: page, Limit: limit}
}
