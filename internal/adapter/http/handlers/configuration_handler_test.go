package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gardenbuild/internal/adapter/http/handlers/mocks"
	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/validation"
	"gardenbuild/internal/usecase"
	"gardenbuild/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const configurationBody = `{
	"product_type": "garden-room",
	"size": {"width_m": 4, "depth_m": 3, "height_m": 2.4},
	"cladding": {"area_sqm": 28.8, "material": "cedar", "colour": "natural"},
	"floor": {"type": "wooden", "area_sqm": 12}
}`

func TestConfigurationHandler_CreateConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		r := gin.New()
		r.POST("/v1/configurations", h.CreateConfiguration)

		req := httptest.NewRequest(http.MethodPost, "/v1/configurations", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation failure returns field errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
			entities.ProductConfiguration{}, nil,
			&usecase.ValidationError{Fields: []validation.FieldError{
				{Field: "floor.areaSqM", Code: "NOT_POSITIVE", Message: "floor area must be positive"},
			}},
		)

		r := gin.New()
		r.POST("/v1/configurations", h.CreateConfiguration)

		req := httptest.NewRequest(http.MethodPost, "/v1/configurations", bytes.NewBufferString(configurationBody))
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
				Code  string `json:"code"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Code != "CONFIGURATION_VALIDATION_FAILED" {
			t.Fatalf("unexpected code %q", body.Code)
		}
		if len(body.Fields) != 1 || body.Fields[0].Field != "floor.areaSqM" {
			t.Fatalf("unexpected fields: %+v", body.Fields)
		}
	})

	t.Run("created with warnings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
			entities.ProductConfiguration{ID: "cfg-1", ProductType: entities.ProductTypeGardenRoom},
			[]validation.FieldError{{Field: "floor.areaSqM", Code: "PLANNING_PERMISSION_ADVISORY", Message: "may need planning permission"}},
			nil,
		)

		r := gin.New()
		r.POST("/v1/configurations", h.CreateConfiguration)

		req := httptest.NewRequest(http.MethodPost, "/v1/configurations", bytes.NewBufferString(configurationBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body struct {
			ID       string `json:"id"`
			Warnings []struct {
				Code string `json:"code"`
			} `json:"warnings"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.ID != "cfg-1" || len(body.Warnings) != 1 || body.Warnings[0].Code != "PLANNING_PERMISSION_ADVISORY" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}

func TestConfigurationHandler_GetConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.ProductConfiguration{}, usecase.ErrConfigurationNotFound)

		r := gin.New()
		r.GET("/v1/configurations/:id", h.GetConfiguration)

		req := httptest.NewRequest(http.MethodGet, "/v1/configurations/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().GetByID(gomock.Any(), "cfg-1").Return(entities.ProductConfiguration{ID: "cfg-1"}, nil)

		r := gin.New()
		r.GET("/v1/configurations/:id", h.GetConfiguration)

		req := httptest.NewRequest(http.MethodGet, "/v1/configurations/cfg-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestConfigurationHandler_DeleteConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("referenced returns conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().Delete(gomock.Any(), "cfg-1").Return(usecase.ErrConfigurationInUse)

		r := gin.New()
		r.DELETE("/v1/configurations/:id", h.DeleteConfiguration)

		req := httptest.NewRequest(http.MethodDelete, "/v1/configurations/cfg-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().Delete(gomock.Any(), "cfg-1").Return(nil)

		r := gin.New()
		r.DELETE("/v1/configurations/:id", h.DeleteConfiguration)

		req := httptest.NewRequest(http.MethodDelete, "/v1/configurations/cfg-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestConfigurationHandler_ListConfigurations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("non-numeric page rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		r := gin.New()
		r.GET("/v1/configurations", h.ListConfigurations)

		req := httptest.NewRequest(http.MethodGet, "/v1/configurations?page=abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("out of range pagination rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrInvalidPagination)

		r := gin.New()
		r.GET("/v1/configurations", h.ListConfigurations)

		req := httptest.NewRequest(http.MethodGet, "/v1/configurations?limit=500", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("filter forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().List(gomock.Any(), interfaces.ListConfigurationsFilter{
			ProductType: entities.ProductTypeGardenRoom, Page: 2, Limit: 5,
		}).Return([]entities.ProductConfiguration{}, nil)

		r := gin.New()
		r.GET("/v1/configurations", h.ListConfigurations)

		req := httptest.NewRequest(http.MethodGet, "/v1/configurations?product_type=garden-room&page=2&limit=5", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("repository failure returns 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConfigurationUseCase(ctrl)
		h := NewConfigurationHandler(uc)

		uc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		r := gin.New()
		r.GET("/v1/configurations", h.ListConfigurations)

		req := httptest.NewRequest(http.MethodGet, "/v1/configurations", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
