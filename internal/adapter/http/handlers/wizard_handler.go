package handlers

import (
	"errors"
	"net/http"

	request "gardenbuild/internal/adapter/http/dto/request"
	response "gardenbuild/internal/adapter/http/dto/response"
	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/usecase"
	"gardenbuild/internal/wizard"
	"gardenbuild/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidWizardPayload = pkg.NewDomainErrorSimple("INVALID_WIZARD_INPUT", "Invalid wizard payload", http.StatusBadRequest)

// WizardHandler exposes the configuration wizard over HTTP. Each request
// reloads the draft, mutates it and flushes, so the session survives the
// stateless server.
type WizardHandler struct {
	store   wizard.DraftStore
	configs usecase.IConfigurationUseCase
}

func NewWizardHandler(store wizard.DraftStore, configs usecase.IConfigurationUseCase) *WizardHandler {
	return &WizardHandler{store: store, configs: configs}
}

// StartWizard godoc
// @Summary      Start a configuration wizard session
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        start  body      request.WizardStartRequest  true  "Product type"
// @Success      201    {object}  response.WizardDraftResponse
// @Failure      400    {object}  pkg.HTTPError
// @Router       /wizard [post]
func (h *WizardHandler) StartWizard(c *gin.Context) {
	var payload request.WizardStartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWizardPayload.HTTPStatus, errInvalidWizardPayload.ToHTTPError())
		return
	}
	productType := entities.ProductType(payload.ProductType)
	if !entities.ValidProductType(productType) {
		appErr := pkg.NewDomainErrorSimple("INVALID_PRODUCT_TYPE", "Unknown product type", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	m := wizard.NewMachine(h.store, 0, productType)
	if err := m.Flush(c.Request.Context()); err != nil {
		writeWizardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromDraft(m.Draft()))
}

// GetWizard godoc
// @Summary      Resume a wizard session
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.WizardDraftResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /wizard/{id} [get]
func (h *WizardHandler) GetWizard(c *gin.Context) {
	m, err := wizard.Resume(c.Request.Context(), h.store, 0, c.Param("id"))
	if err != nil {
		writeWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromDraft(m.Draft()))
}

// UpdateWizard godoc
// @Summary      Apply a change to a wizard session
// @Description  Merges the patch, recomputes derived areas and optionally advances or goes back one step.
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Draft ID"
// @Param        update  body      request.WizardUpdateRequest  true  "Patch and step action"
// @Success      200     {object}  response.WizardDraftResponse
// @Failure      404     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /wizard/{id} [patch]
func (h *WizardHandler) UpdateWizard(c *gin.Context) {
	var payload request.WizardUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWizardPayload.HTTPStatus, errInvalidWizardPayload.ToHTTPError())
		return
	}

	m, err := wizard.Resume(c.Request.Context(), h.store, 0, c.Param("id"))
	if err != nil {
		writeWizardError(c, err)
		return
	}

	if payload.Patch != nil {
		m.Apply(payload.Patch.ToPatch())
	}
	switch payload.Action {
	case "":
	case "advance":
		if err := m.Advance(); err != nil {
			writeWizardError(c, err)
			return
		}
	case "back":
		m.Back()
	default:
		appErr := pkg.NewDomainErrorSimple("INVALID_WIZARD_ACTION", "Action must be advance or back", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := m.Flush(c.Request.Context()); err != nil {
		writeWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromDraft(m.Draft()))
}

// CompleteWizard godoc
// @Summary      Complete a wizard session
// @Description  Turns the finished draft into a priced configuration and discards the draft.
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      201  {object}  response.ConfigurationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /wizard/{id}/complete [post]
func (h *WizardHandler) CompleteWizard(c *gin.Context) {
	m, err := wizard.Resume(c.Request.Context(), h.store, 0, c.Param("id"))
	if err != nil {
		writeWizardError(c, err)
		return
	}

	cfg, err := m.Complete(c.Request.Context())
	if err != nil {
		writeWizardError(c, err)
		return
	}

	created, warnings, err := h.configs.Create(c.Request.Context(), cfg)
	if err != nil {
		writeConfigurationError(c, err)
		return
	}

	// The draft has served its purpose; a failed delete only means the TTL
	// cleans it up later.
	_ = m.Discard(c.Request.Context())

	c.JSON(http.StatusCreated, response.FromConfiguration(created, warnings))
}

// DiscardWizard godoc
// @Summary      Discard a wizard session
// @Tags         wizard
// @Param        id  path  string  true  "Draft ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /wizard/{id} [delete]
func (h *WizardHandler) DiscardWizard(c *gin.Context) {
	m, err := wizard.Resume(c.Request.Context(), h.store, 0, c.Param("id"))
	if err != nil {
		writeWizardError(c, err)
		return
	}

	if err := m.Discard(c.Request.Context()); err != nil {
		writeWizardError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeWizardError(c *gin.Context, err error) {
	appErr := mapWizardError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapWizardError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, wizard.ErrDraftNotFound):
		return pkg.NewDomainErrorSimple("DRAFT_NOT_FOUND", "Wizard draft not found", http.StatusNotFound)
	case errors.Is(err, wizard.ErrStepIncomplete):
		return pkg.NewDomainErrorSimple("STEP_INCOMPLETE", "Current step is missing required selections", http.StatusConflict)
	case errors.Is(err, wizard.ErrNotAtSummary):
		return pkg.NewDomainErrorSimple("WIZARD_NOT_FINISHED", "Wizard has not reached the summary step", http.StatusConflict)
	case errors.Is(err, wizard.ErrUnknownStep):
		return pkg.NewDomainErrorSimple("INVALID_WIZARD_STEP", "Unknown wizard step", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
