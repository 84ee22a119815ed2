package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/pricing"
	"gardenbuild/internal/domain/validation"
	"gardenbuild/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrConfigurationNotFound  = errors.New("configuration not found")
	ErrInvalidConfigurationID = errors.New("invalid configuration id")
	ErrConfigurationInUse     = errors.New("configuration is referenced by a quote")
	ErrEmptyPatch             = errors.New("empty configuration patch")
	ErrInvalidPagination      = errors.New("invalid pagination")
)

// ValidationError carries field-level failures across the use-case boundary
// as a typed result rather than an untyped panic or string.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Code)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

// Pagination contract: page >= 1, 1 <= limit <= 100, checked before any
// repository call. A zero limit defaults to defaultPageLimit.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func normalizePagination(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if page < 1 || limit < 1 || limit > maxPageLimit {
		return 0, 0, ErrInvalidPagination
	}
	return page, limit, nil
}

// IConfigurationUseCase exposes product configuration operations.
//
// Create and Update run the validator, then the estimator, and persist the
// configuration with its denormalized price snapshot. Warnings (planning
// advisories) are returned alongside the entity and never block.
type IConfigurationUseCase interface {
	Create(ctx context.Context, draft entities.ProductConfiguration) (entities.ProductConfiguration, []validation.FieldError, error)
	GetByID(ctx context.Context, id string) (entities.ProductConfiguration, error)
	Update(ctx context.Context, id string, patch entities.ConfigurationPatch) (entities.ProductConfiguration, []validation.FieldError, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter interfaces.ListConfigurationsFilter) ([]entities.ProductConfiguration, error)
}

type ConfigurationUseCase struct {
	repo      interfaces.IConfigurationRepository
	quoteRepo interfaces.IQuoteRepository
}

var _ IConfigurationUseCase = (*ConfigurationUseCase)(nil)

func NewConfigurationUseCase(repo interfaces.IConfigurationRepository, quoteRepo interfaces.IQuoteRepository) *ConfigurationUseCase {
	return &ConfigurationUseCase{repo: repo, quoteRepo: quoteRepo}
}

func (u *ConfigurationUseCase) Create(ctx context.Context, draft entities.ProductConfiguration) (entities.ProductConfiguration, []validation.FieldError, error) {
	res := validation.ValidateConfiguration(draft)
	if !res.IsValid {
		return entities.ProductConfiguration{}, res.Warnings, &ValidationError{Fields: res.Errors}
	}

	draft.Estimate = pricing.EstimateConfiguration(draft)

	now := time.Now().UTC()
	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	created, err := u.repo.Create(ctx, draft)
	if err != nil {
		return entities.ProductConfiguration{}, nil, err
	}
	return created, res.Warnings, nil
}

func (u *ConfigurationUseCase) GetByID(ctx context.Context, id string) (entities.ProductConfiguration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ProductConfiguration{}, ErrInvalidConfigurationID
	}

	cfg, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ProductConfiguration{}, err
	}
	if cfg.ID == "" {
		return entities.ProductConfiguration{}, ErrConfigurationNotFound
	}
	return cfg, nil
}

// Update applies a partial patch, re-validates only the supplied sections and
// reprices the merged configuration before persisting.
func (u *ConfigurationUseCase) Update(ctx context.Context, id string, patch entities.ConfigurationPatch) (entities.ProductConfiguration, []validation.FieldError, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ProductConfiguration{}, nil, ErrInvalidConfigurationID
	}
	if patch.Empty() {
		return entities.ProductConfiguration{}, nil, ErrEmptyPatch
	}

	res := validation.ValidateConfigurationPatch(patch)
	if !res.IsValid {
		return entities.ProductConfiguration{}, res.Warnings, &ValidationError{Fields: res.Errors}
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ProductConfiguration{}, nil, err
	}
	if existing.ID == "" {
		return entities.ProductConfiguration{}, nil, ErrConfigurationNotFound
	}

	merged := patch.Apply(existing)
	merged.Estimate = pricing.EstimateConfiguration(merged)
	merged.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, merged)
	if err != nil {
		return entities.ProductConfiguration{}, nil, err
	}
	return updated, res.Warnings, nil
}

// Delete removes an unreferenced configuration. The usage check and the
// delete are two separate calls; a quote created in between surfaces later
// as a conflict, which callers must tolerate.
func (u *ConfigurationUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidConfigurationID
	}

	cfg, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cfg.ID == "" {
		return ErrConfigurationNotFound
	}

	refs, err := u.quoteRepo.CountByConfigurationID(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrConfigurationInUse
	}

	return u.repo.Delete(ctx, id)
}

func (u *ConfigurationUseCase) List(ctx context.Context, filter interfaces.ListConfigurationsFilter) ([]entities.ProductConfiguration, error) {
	page, limit, err := normalizePagination(filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	filter.Page = page
	filter.Limit = limit
	return u.repo.List(ctx, filter)
}
