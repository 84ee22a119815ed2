package entities

import "time"

// ProductType identifies what kind of structure is being priced.
type ProductType string

const (
	ProductTypeGardenRoom     ProductType = "garden-room"
	ProductTypeHouseExtension ProductType = "house-extension"
	ProductTypeHouseBuild     ProductType = "house-build"
)

// ValidProductType reports whether t belongs to the fixed product enum.
func ValidProductType(t ProductType) bool {
	switch t {
	case ProductTypeGardenRoom, ProductTypeHouseExtension, ProductTypeHouseBuild:
		return true
	}
	return false
}

// FloorType is the floor finish selected for a configuration.
// FloorTypeNone is a valid selection and contributes nothing to the price.
type FloorType string

const (
	FloorTypeNone     FloorType = "none"
	FloorTypeLaminate FloorType = "laminate"
	FloorTypeWooden   FloorType = "wooden"
	FloorTypeTile     FloorType = "tile"
)

// Size holds external dimensions in metres.
type Size struct {
	WidthM  float64 `json:"width_m"`
	DepthM  float64 `json:"depth_m"`
	HeightM float64 `json:"height_m"`
}

// FloorAreaSqM is the footprint derived from width and depth.
func (s Size) FloorAreaSqM() float64 {
	return s.WidthM * s.DepthM
}

// Cladding describes the external wall finish.
type Cladding struct {
	AreaSqM  float64 `json:"area_sqm"`
	Material string  `json:"material,omitempty"`
	Colour   string  `json:"colour,omitempty"`
}

// Floor describes the internal floor finish.
type Floor struct {
	Type    FloorType `json:"type"`
	AreaSqM float64   `json:"area_sqm"`
}

// InternalWall describes the internal wall finish.
type InternalWall struct {
	Finish  string  `json:"finish,omitempty"`
	AreaSqM float64 `json:"area_sqm,omitempty"`
}

// Bathrooms holds per-class bathroom counts.
type Bathrooms struct {
	Half         int `json:"half"`
	ThreeQuarter int `json:"three_quarter"`
}

// Electrical holds electrical fit-out counts and fixed appliance flags.
type Electrical struct {
	Switches        int  `json:"switches"`
	Sockets         int  `json:"sockets"`
	Downlights      int  `json:"downlights"`
	Heater          bool `json:"heater,omitempty"`
	UndersinkHeater bool `json:"undersink_heater,omitempty"`
	ElecBoiler      bool `json:"elec_boiler,omitempty"`
}

// GlazedElement is a window, external door or skylight. Order within its
// list never affects pricing.
type GlazedElement struct {
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
}

// AreaSqM is the glazed surface of a single element.
func (g GlazedElement) AreaSqM() float64 {
	return g.WidthM * g.HeightM
}

// Glazing groups every glazed opening by class.
type Glazing struct {
	Windows       []GlazedElement `json:"windows"`
	ExternalDoors []GlazedElement `json:"external_doors"`
	Skylights     []GlazedElement `json:"skylights"`
}

// OpeningsAreaSqM is the total wall surface consumed by openings.
func (g Glazing) OpeningsAreaSqM() float64 {
	total := 0.0
	for _, w := range g.Windows {
		total += w.AreaSqM()
	}
	for _, d := range g.ExternalDoors {
		total += d.AreaSqM()
	}
	return total
}

// Delivery carries the flat delivery charge quoted for the site.
type Delivery struct {
	DistanceKm float64 `json:"distance_km,omitempty"`
	Cost       float64 `json:"cost"`
}

// ExtraItem is a free-form priced extra supplied by the customer.
type ExtraItem struct {
	Title string  `json:"title"`
	Cost  float64 `json:"cost"`
}

// Extras holds the named optional upgrades plus free-form items.
type Extras struct {
	EPSInsulation bool        `json:"eps_insulation,omitempty"`
	Render        bool        `json:"render,omitempty"`
	SteelDoor     bool        `json:"steel_door,omitempty"`
	Other         []ExtraItem `json:"other,omitempty"`
}

// Estimate is the denormalized price snapshot embedded in a stored
// configuration. It is computed once per write and never re-derived on read.
type Estimate struct {
	Currency      string  `json:"currency"`
	SubtotalExVAT float64 `json:"subtotal_ex_vat"`
	VATRate       float64 `json:"vat_rate"`
	VATAmount     float64 `json:"vat_amount"`
	TotalIncVAT   float64 `json:"total_inc_vat"`
}

// ProductConfiguration is the structural/material specification of a building
// to be priced.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Identity is server-assigned and immutable. A configuration may not be
// deleted while any non-deleted quote references it.
type ProductConfiguration struct {
	ID           string       `json:"id"`
	ProductType  ProductType  `json:"product_type"`
	Size         Size         `json:"size"`
	Cladding     Cladding     `json:"cladding"`
	Floor        Floor        `json:"floor"`
	InternalWall InternalWall `json:"internal_wall"`
	Bathrooms    Bathrooms    `json:"bathrooms"`
	Electrical   Electrical   `json:"electrical"`
	Glazing      Glazing      `json:"glazing"`
	Delivery     Delivery     `json:"delivery"`
	Extras       Extras       `json:"extras"`
	Estimate     Estimate     `json:"estimate"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
