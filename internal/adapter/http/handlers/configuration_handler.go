package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "gardenbuild/internal/adapter/http/dto/request"
	response "gardenbuild/internal/adapter/http/dto/response"
	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/usecase"
	"gardenbuild/internal/usecase/interfaces"
	"gardenbuild/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errInvalidConfigurationPayload = pkg.NewDomainErrorSimple("INVALID_CONFIGURATION_INPUT", "Invalid configuration payload", http.StatusBadRequest)

// ConfigurationHandler handles HTTP requests for product configurations.
type ConfigurationHandler struct {
	usecase usecase.IConfigurationUseCase
}

func NewConfigurationHandler(uc usecase.IConfigurationUseCase) *ConfigurationHandler {
	return &ConfigurationHandler{usecase: uc}
}

// CreateConfiguration godoc
// @Summary      Create a product configuration
// @Description  Validates the configuration, prices it and stores it with an embedded estimate.
// @Tags         configurations
// @Accept       json
// @Produce      json
// @Param        configuration  body      request.ConfigurationRequest  true  "Configuration"
// @Success      201            {object}  response.ConfigurationResponse
// @Failure      400            {object}  pkg.HTTPFieldError
// @Router       /configurations [post]
func (h *ConfigurationHandler) CreateConfiguration(c *gin.Context) {
	var payload request.ConfigurationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidConfigurationPayload.HTTPStatus, errInvalidConfigurationPayload.ToHTTPError())
		return
	}

	created, warnings, err := h.usecase.Create(c.Request.Context(), payload.ToEntity())
	if err != nil {
		writeConfigurationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromConfiguration(created, warnings))
}

// GetConfiguration godoc
// @Summary      Get a configuration by id
// @Tags         configurations
// @Produce      json
// @Param        id   path      string  true  "Configuration ID"
// @Success      200  {object}  response.ConfigurationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /configurations/{id} [get]
func (h *ConfigurationHandler) GetConfiguration(c *gin.Context) {
	cfg, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeConfigurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromConfiguration(cfg, nil))
}

// UpdateConfiguration godoc
// @Summary      Patch a configuration
// @Description  Applies a partial update, re-validates the supplied sections and reprices the result.
// @Tags         configurations
// @Accept       json
// @Produce      json
// @Param        id     path      string                             true  "Configuration ID"
// @Param        patch  body      request.ConfigurationPatchRequest  true  "Patch"
// @Success      200    {object}  response.ConfigurationResponse
// @Failure      400    {object}  pkg.HTTPFieldError
// @Failure      404    {object}  pkg.HTTPError
// @Router       /configurations/{id} [patch]
func (h *ConfigurationHandler) UpdateConfiguration(c *gin.Context) {
	var payload request.ConfigurationPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidConfigurationPayload.HTTPStatus, errInvalidConfigurationPayload.ToHTTPError())
		return
	}

	updated, warnings, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		writeConfigurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromConfiguration(updated, warnings))
}

// DeleteConfiguration godoc
// @Summary      Delete a configuration
// @Description  Refused with 409 while any quote still references the configuration.
// @Tags         configurations
// @Param        id  path  string  true  "Configuration ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /configurations/{id} [delete]
func (h *ConfigurationHandler) DeleteConfiguration(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeConfigurationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListConfigurations godoc
// @Summary      List configurations
// @Tags         configurations
// @Produce      json
// @Param        product_type  query     string  false  "Filter by product type"
// @Param        page          query     int     false  "Page, 1-based"
// @Param        limit         query     int     false  "Page size, max 100"
// @Success      200           {object}  response.ConfigurationListResponse
// @Failure      400           {object}  pkg.HTTPError
// @Router       /configurations [get]
func (h *ConfigurationHandler) ListConfigurations(c *gin.Context) {
	filter, err := parseConfigurationFilter(c)
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAGINATION", "Page and limit must be positive integers", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	cfgs, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		writeConfigurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromConfigurations(cfgs, filter.Page, filter.Limit))
}

func parseConfigurationFilter(c *gin.Context) (interfaces.ListConfigurationsFilter, error) {
	filter := interfaces.ListConfigurationsFilter{}
	if v := c.Query("product_type"); v != "" {
		filter.ProductType = entities.ProductType(v)
	}
	var err error
	filter.Page, filter.Limit, err = parsePagination(c)
	return filter, err
}

func parsePagination(c *gin.Context) (page, limit int, err error) {
	if v := c.Query("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
	}
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
	}
	return page, limit, nil
}

func writeConfigurationError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, fieldErrorBody("CONFIGURATION_VALIDATION_FAILED", "Configuration validation failed", verr))
		return
	}

	appErr := mapConfigurationError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("configuration request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapConfigurationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidConfigurationID), errors.Is(err, usecase.ErrEmptyPatch):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPagination):
		return pkg.NewDomainErrorSimple("INVALID_PAGINATION", "Page must be >= 1 and limit between 1 and 100", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConfigurationNotFound):
		return pkg.NewDomainErrorSimple("CONFIGURATION_NOT_FOUND", "Configuration not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConfigurationInUse):
		return pkg.NewDomainErrorSimple("CONFIGURATION_IN_USE", "Configuration is referenced by existing quotes", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func fieldErrorBody(code, message string, verr *usecase.ValidationError) pkg.HTTPFieldError {
	fields := make([]pkg.HTTPFieldDetail, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, pkg.HTTPFieldDetail{Field: f.Field, Code: f.Code, Message: f.Message})
	}
	return pkg.HTTPFieldError{Code: code, Message: message, Fields: fields}
}
