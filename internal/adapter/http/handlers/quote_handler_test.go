package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gardenbuild/internal/adapter/http/handlers/mocks"
	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/validation"
	"gardenbuild/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const quoteBody = `{
	"configuration_id": "cfg-1",
	"customer": {
		"first_name": "Aoife",
		"last_name": "Byrne",
		"email": "aoife@example.ie",
		"address_line1": "12 Strand Road",
		"county": "dublin",
		"eircode": "D04 X2F4"
	}
}`

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown configuration returns 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Create(gomock.Any(), "cfg-1", gomock.Any(), 0).Return(entities.QuoteRequest{}, usecase.ErrConfigurationNotFound)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(quoteBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("customer validation failure returns fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Create(gomock.Any(), "cfg-1", gomock.Any(), 0).Return(
			entities.QuoteRequest{},
			&usecase.ValidationError{Fields: []validation.FieldError{
				{Field: "customer.eircode", Code: "COUNTY_MISMATCH", Message: "eircode does not match county"},
			}},
		)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(quoteBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body struct {
			Code   string `json:"code"`
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Code != "QUOTE_VALIDATION_FAILED" || len(body.Fields) != 1 {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Create(gomock.Any(), "cfg-1", gomock.Any(), 0).Return(entities.QuoteRequest{
			ID:          "q-1",
			QuoteNumber: "Q3-2026-00042",
			Payment:     entities.Payment{Status: entities.QuoteStatusPreQuote},
		}, nil)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(quoteBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body struct {
			QuoteNumber string `json:"quote_number"`
			Payment     struct {
				Status string `json:"status"`
			} `json:"payment"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.QuoteNumber != "Q3-2026-00042" || body.Payment.Status != "pre-quote" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}

func TestQuoteHandler_TransitionQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("illegal transition returns conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Transition(gomock.Any(), "q-1", entities.QuoteStatusCompleted).Return(entities.QuoteRequest{}, usecase.ErrInvalidTransition)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/status", h.TransitionQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/status", bytes.NewBufferString(`{"status":"completed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("legal transition applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Transition(gomock.Any(), "q-1", entities.QuoteStatusQuoted).Return(entities.QuoteRequest{
			ID:      "q-1",
			Payment: entities.Payment{Status: entities.QuoteStatusQuoted},
		}, nil)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/status", h.TransitionQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/status", bytes.NewBufferString(`{"status":"quoted"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_AppendQuotePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative amount rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().AppendPayment(gomock.Any(), "q-1", entities.PaymentTypeDeposit, -100.0).Return(
			entities.QuoteRequest{}, nil, usecase.ErrInvalidPaymentAmount)

		r := gin.New()
		r.POST("/v1/quotes/:id/payments", h.AppendQuotePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/payments", bytes.NewBufferString(`{"type":"DEPOSIT","amount":-100}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("overpayment reports warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().AppendPayment(gomock.Any(), "q-1", entities.PaymentTypeFinal, 90000.0).Return(
			entities.QuoteRequest{ID: "q-1", Payment: entities.Payment{TotalPaid: 90000, Status: entities.QuoteStatusDepositPaid}},
			[]validation.FieldError{{Field: "payment.totalPaid", Code: usecase.CodeOverpayment, Message: "total paid exceeds the configuration's estimate total"}},
			nil,
		)

		r := gin.New()
		r.POST("/v1/quotes/:id/payments", h.AppendQuotePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/payments", bytes.NewBufferString(`{"type":"FINAL","amount":90000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Warnings []struct {
				Code string `json:"code"`
			} `json:"warnings"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(body.Warnings) != 1 || body.Warnings[0].Code != usecase.CodeOverpayment {
			t.Fatalf("expected overpayment warning, got %+v", body.Warnings)
		}
	})
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("post pre-quote deletion refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Delete(gomock.Any(), "q-1").Return(usecase.ErrQuoteNotDeletable)

		r := gin.New()
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("pre-quote deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().Delete(gomock.Any(), "q-1").Return(nil)

		r := gin.New()
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_GetQuoteByNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown number returns 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().GetByNumber(gomock.Any(), "Q1-2020-99999").Return(entities.QuoteRequest{}, usecase.ErrQuoteNotFound)

		r := gin.New()
		r.GET("/v1/quotes/number/:number", h.GetQuoteByNumber)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/number/Q1-2020-99999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
