// Package pricing computes the price estimate embedded in a stored
// configuration. Everything here is pure: no I/O, no mutation of the input,
// and the additive model is order-independent.
package pricing

import "gardenbuild/internal/domain/entities"

// Rates for the supported market (EUR, Republic of Ireland).
const (
	Currency = "EUR"
	VATRate  = 0.23

	baseRatePerSqM = 1450.0

	claddingRatePerSqM = 85.0

	laminateRatePerSqM = 42.0
	woodenRatePerSqM   = 65.0
	tileRatePerSqM     = 88.0

	halfBathRate         = 3250.0
	threeQuarterBathRate = 4850.0

	windowRatePerSqM       = 520.0
	externalDoorRatePerSqM = 680.0
	skylightRatePerSqM     = 760.0

	switchRate          = 45.0
	socketRate          = 55.0
	downlightRate       = 70.0
	heaterCost          = 320.0
	undersinkHeaterCost = 280.0
	elecBoilerCost      = 1400.0

	epsInsulationRatePerSqM = 28.0
	renderRatePerSqM        = 45.0
	steelDoorCost           = 1250.0
)

// productTypeFactor scales the base build cost by structural class.
// garden-room < house-extension < house-build keeps base cost monotone
// across every product type.
func productTypeFactor(t entities.ProductType) float64 {
	switch t {
	case entities.ProductTypeHouseExtension:
		return 1.25
	case entities.ProductTypeHouseBuild:
		return 1.4
	default:
		return 1.0
	}
}

func floorRate(t entities.FloorType) float64 {
	switch t {
	case entities.FloorTypeLaminate:
		return laminateRatePerSqM
	case entities.FloorTypeWooden:
		return woodenRatePerSqM
	case entities.FloorTypeTile:
		return tileRatePerSqM
	default:
		// FloorTypeNone and unknown finishes contribute nothing.
		return 0
	}
}

// EstimateConfiguration prices a configuration.
//
// The model is a sum of independent non-negative terms, so increasing any
// single cost driver while holding the rest fixed never decreases the total.
func EstimateConfiguration(cfg entities.ProductConfiguration) entities.Estimate {
	subtotal := cfg.Size.FloorAreaSqM() * baseRatePerSqM * productTypeFactor(cfg.ProductType)

	subtotal += cfg.Cladding.AreaSqM * claddingRatePerSqM
	subtotal += floorRate(cfg.Floor.Type) * cfg.Floor.AreaSqM

	subtotal += float64(cfg.Bathrooms.Half) * halfBathRate
	subtotal += float64(cfg.Bathrooms.ThreeQuarter) * threeQuarterBathRate

	subtotal += glazingCost(cfg.Glazing)
	subtotal += electricalCost(cfg.Electrical)
	subtotal += extrasCost(cfg.Extras, cfg.Cladding.AreaSqM)

	subtotal += cfg.Delivery.Cost

	vat := subtotal * VATRate
	return entities.Estimate{
		Currency:      Currency,
		SubtotalExVAT: subtotal,
		VATRate:       VATRate,
		VATAmount:     vat,
		TotalIncVAT:   subtotal + vat,
	}
}

func glazingCost(g entities.Glazing) float64 {
	total := 0.0
	for _, w := range g.Windows {
		total += w.AreaSqM() * windowRatePerSqM
	}
	for _, d := range g.ExternalDoors {
		total += d.AreaSqM() * externalDoorRatePerSqM
	}
	for _, s := range g.Skylights {
		total += s.AreaSqM() * skylightRatePerSqM
	}
	return total
}

func electricalCost(e entities.Electrical) float64 {
	total := float64(e.Switches)*switchRate +
		float64(e.Sockets)*socketRate +
		float64(e.Downlights)*downlightRate
	if e.Heater {
		total += heaterCost
	}
	if e.UndersinkHeater {
		total += undersinkHeaterCost
	}
	if e.ElecBoiler {
		total += elecBoilerCost
	}
	return total
}

// extrasCost prices the named upgrades. Insulation and render scale with the
// clad wall area; the steel door is a fixed adder.
func extrasCost(x entities.Extras, claddingAreaSqM float64) float64 {
	total := 0.0
	if x.EPSInsulation {
		total += claddingAreaSqM * epsInsulationRatePerSqM
	}
	if x.Render {
		total += claddingAreaSqM * renderRatePerSqM
	}
	if x.SteelDoor {
		total += steelDoorCost
	}
	for _, item := range x.Other {
		total += item.Cost
	}
	return total
}
