package handlers

import (
	"errors"
	"net/http"

	request "gardenbuild/internal/adapter/http/dto/request"
	response "gardenbuild/internal/adapter/http/dto/response"
	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/usecase"
	"gardenbuild/internal/usecase/interfaces"
	"gardenbuild/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quote requests.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create a quote request
// @Description  Allocates the next quote number for the current quarter and stores the quote in pre-quote state.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        quote  body      request.QuoteCreateRequest  true  "Quote"
// @Success      201    {object}  response.QuoteResponse
// @Failure      400    {object}  pkg.HTTPFieldError
// @Failure      404    {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.QuoteCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), payload.ConfigurationID, payload.Customer.ToEntity(), payload.ExpectedInstallments)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(created, nil))
}

// GetQuote godoc
// @Summary      Get a quote by id
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q, nil))
}

// GetQuoteByNumber godoc
// @Summary      Get a quote by its business number
// @Tags         quotes
// @Produce      json
// @Param        number  path      string  true  "Quote number, e.g. Q3-2026-00042"
// @Success      200     {object}  response.QuoteResponse
// @Failure      404     {object}  pkg.HTTPError
// @Router       /quotes/number/{number} [get]
func (h *QuoteHandler) GetQuoteByNumber(c *gin.Context) {
	q, err := h.usecase.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q, nil))
}

// ListQuotes godoc
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        status            query     string  false  "Filter by lifecycle status"
// @Param        configuration_id  query     string  false  "Filter by configuration"
// @Param        page              query     int     false  "Page, 1-based"
// @Param        limit             query     int     false  "Page size, max 100"
// @Success      200               {object}  response.QuoteListResponse
// @Failure      400               {object}  pkg.HTTPError
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filter := interfaces.ListQuotesFilter{
		Status:          entities.QuoteStatus(c.Query("status")),
		ConfigurationID: c.Query("configuration_id"),
	}
	var err error
	filter.Page, filter.Limit, err = parsePagination(c)
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAGINATION", "Page and limit must be positive integers", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	quotes, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes, filter.Page, filter.Limit))
}

// TransitionQuote godoc
// @Summary      Move a quote to a new lifecycle state
// @Description  Only legal edges are applied; illegal ones return 409 and change nothing.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id          path      string                          true  "Quote ID"
// @Param        transition  body      request.QuoteTransitionRequest  true  "Target state"
// @Success      200         {object}  response.QuoteResponse
// @Failure      404         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Router       /quotes/{id}/status [patch]
func (h *QuoteHandler) TransitionQuote(c *gin.Context) {
	var payload request.QuoteTransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Transition(c.Request.Context(), c.Param("id"), entities.QuoteStatus(payload.Status))
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q, nil))
}

// UpdateQuoteCustomer godoc
// @Summary      Correct customer contact details on a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id        path      string                        true  "Quote ID"
// @Param        customer  body      request.CustomerPatchRequest  true  "Customer patch"
// @Success      200       {object}  response.QuoteResponse
// @Failure      400       {object}  pkg.HTTPFieldError
// @Failure      404       {object}  pkg.HTTPError
// @Router       /quotes/{id}/customer [patch]
func (h *QuoteHandler) UpdateQuoteCustomer(c *gin.Context) {
	var payload request.CustomerPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, err := h.usecase.UpdateCustomer(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q, nil))
}

// AppendQuotePayment godoc
// @Summary      Append a payment ledger entry
// @Description  Records the entry and moves the running paid total atomically. Overpaying returns a warning, not an error.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Quote ID"
// @Param        payment  body      request.PaymentRequest  true  "Ledger entry"
// @Success      200      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /quotes/{id}/payments [post]
func (h *QuoteHandler) AppendQuotePayment(c *gin.Context) {
	var payload request.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	q, warnings, err := h.usecase.AppendPayment(c.Request.Context(), c.Param("id"), entities.PaymentType(payload.Type), payload.Amount)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(q, warnings))
}

// DeleteQuote godoc
// @Summary      Delete a quote
// @Description  Permitted only while the quote is still in pre-quote state.
// @Tags         quotes
// @Param        id  path  string  true  "Quote ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeQuoteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeQuoteError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, fieldErrorBody("QUOTE_VALIDATION_FAILED", "Quote validation failed", verr))
		return
	}

	appErr := mapQuoteError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("quote request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteNumber),
		errors.Is(err, usecase.ErrInvalidConfigurationID), errors.Is(err, usecase.ErrInvalidPaymentType),
		errors.Is(err, usecase.ErrInvalidPaymentAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPagination):
		return pkg.NewDomainErrorSimple("INVALID_PAGINATION", "Page must be >= 1 and limit between 1 and 100", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConfigurationNotFound):
		return pkg.NewDomainErrorSimple("CONFIGURATION_NOT_FOUND", "Configuration not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Requested lifecycle transition is not allowed", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotDeletable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_DELETABLE", "Quote can only be deleted in pre-quote state", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNumberExhausted):
		return pkg.NewDomainError("QUOTE_NUMBER_EXHAUSTED", "Could not allocate a unique quote number", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
