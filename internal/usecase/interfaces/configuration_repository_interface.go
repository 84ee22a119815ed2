package interfaces

import (
	"context"

	"gardenbuild/internal/domain/entities"
)

// ListConfigurationsFilter narrows and pages a configuration listing.
// Page and Limit are validated by the use case before reaching the repository.
type ListConfigurationsFilter struct {
	ProductType entities.ProductType
	Page        int
	Limit       int
}

// IConfigurationRepository abstracts DynamoDB persistence for
// ProductConfiguration. Lookups return a zero-value entity (empty ID) when
// the record is absent; only storage failures surface as errors.
type IConfigurationRepository interface {
	Create(ctx context.Context, cfg entities.ProductConfiguration) (entities.ProductConfiguration, error)
	GetByID(ctx context.Context, id string) (entities.ProductConfiguration, error)
	Update(ctx context.Context, cfg entities.ProductConfiguration) (entities.ProductConfiguration, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListConfigurationsFilter) ([]entities.ProductConfiguration, error)
}
