package request

import (
	"gardenbuild/internal/domain/entities"
)

// ConfigurationRequest is the create payload for a product configuration.
// Section shapes mirror the domain entities; the validator owns all semantic
// checks, so binding here stays structural.
type ConfigurationRequest struct {
	ProductType  string                `json:"product_type" binding:"required"`
	Size         entities.Size         `json:"size" binding:"required"`
	Cladding     entities.Cladding     `json:"cladding" binding:"required"`
	Floor        entities.Floor        `json:"floor" binding:"required"`
	InternalWall entities.InternalWall `json:"internal_wall"`
	Bathrooms    entities.Bathrooms    `json:"bathrooms"`
	Electrical   entities.Electrical   `json:"electrical"`
	Glazing      entities.Glazing      `json:"glazing"`
	Delivery     entities.Delivery     `json:"delivery"`
	Extras       entities.Extras       `json:"extras"`
}

func (r ConfigurationRequest) ToEntity() entities.ProductConfiguration {
	return entities.ProductConfiguration{
		ProductType:  entities.ProductType(r.ProductType),
		Size:         r.Size,
		Cladding:     r.Cladding,
		Floor:        r.Floor,
		InternalWall: r.InternalWall,
		Bathrooms:    r.Bathrooms,
		Electrical:   r.Electrical,
		Glazing:      r.Glazing,
		Delivery:     r.Delivery,
		Extras:       r.Extras,
	}
}

// ConfigurationPatchRequest carries a partial update. Absent sections stay
// untouched; the JSON shape is the same pointer-section patch the domain uses.
type ConfigurationPatchRequest struct {
	ProductType  *string                `json:"product_type"`
	Size         *entities.Size         `json:"size"`
	Cladding     *entities.Cladding     `json:"cladding"`
	Floor        *entities.Floor        `json:"floor"`
	InternalWall *entities.InternalWall `json:"internal_wall"`
	Bathrooms    *entities.Bathrooms    `json:"bathrooms"`
	Electrical   *entities.Electrical   `json:"electrical"`
	Glazing      *entities.Glazing      `json:"glazing"`
	Delivery     *entities.Delivery     `json:"delivery"`
	Extras       *entities.Extras       `json:"extras"`
}

func (r ConfigurationPatchRequest) ToPatch() entities.ConfigurationPatch {
	p := entities.ConfigurationPatch{
		Size:         r.Size,
		Cladding:     r.Cladding,
		Floor:        r.Floor,
		InternalWall: r.InternalWall,
		Bathrooms:    r.Bathrooms,
		Electrical:   r.Electrical,
		Glazing:      r.Glazing,
		Delivery:     r.Delivery,
		Extras:       r.Extras,
	}
	if r.ProductType != nil {
		pt := entities.ProductType(*r.ProductType)
		p.ProductType = &pt
	}
	return p
}
