// Package validation holds the pure rule set gating what configurations and
// quotes may be persisted. Nothing here performs I/O.
package validation

import (
	"fmt"

	"gardenbuild/internal/domain/entities"
)

// Stable machine-readable error codes, keyed by field path in FieldError.
const (
	CodeRequired       = "REQUIRED"
	CodeInvalidEnum    = "INVALID_ENUM"
	CodeNotPositive    = "NOT_POSITIVE"
	CodeNegative       = "NEGATIVE"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeCountyMismatch = "COUNTY_MISMATCH"

	CodePlanningAdvisory = "PLANNING_PERMISSION_ADVISORY"
)

// planningPermissionThresholdSqM is the floor area above which an exempt
// development is unlikely and planning permission may be required.
const planningPermissionThresholdSqM = 50.0

// FieldError is one field-level validation failure (or advisory, when used
// as a warning).
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of a validation pass. Warnings never block
// persistence; they are surfaced to the caller.
type Result struct {
	IsValid  bool         `json:"is_valid"`
	Errors   []FieldError `json:"errors"`
	Warnings []FieldError `json:"warnings"`
}

func newResult(errs, warns []FieldError) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// ValidateConfiguration checks a full configuration for creation. The
// embedded estimate is checked only when attached (TotalIncVAT set by the
// estimator); a zero-value estimate means "not yet priced" and passes.
func ValidateConfiguration(cfg entities.ProductConfiguration) Result {
	var errs, warns []FieldError

	errs = append(errs, checkProductType(cfg.ProductType)...)
	errs = append(errs, checkSize(cfg.Size)...)
	errs = append(errs, checkCladding(cfg.Cladding)...)
	errs = append(errs, checkFloor(cfg.Floor)...)
	errs = append(errs, checkBathrooms(cfg.Bathrooms)...)
	errs = append(errs, checkElectrical(cfg.Electrical)...)
	errs = append(errs, checkGlazing(cfg.Glazing)...)
	errs = append(errs, checkDelivery(cfg.Delivery)...)
	errs = append(errs, checkExtras(cfg.Extras)...)
	if cfg.Estimate != (entities.Estimate{}) {
		errs = append(errs, checkEstimate(cfg.Estimate)...)
	}

	warns = append(warns, planningAdvisory(cfg.Floor.AreaSqM)...)

	return newResult(errs, warns)
}

// ValidateConfigurationPatch checks only the sections present in the patch,
// applying the same per-field rules as ValidateConfiguration.
func ValidateConfigurationPatch(p entities.ConfigurationPatch) Result {
	var errs, warns []FieldError

	if p.ProductType != nil {
		errs = append(errs, checkProductType(*p.ProductType)...)
	}
	if p.Size != nil {
		errs = append(errs, checkSize(*p.Size)...)
	}
	if p.Cladding != nil {
		errs = append(errs, checkCladding(*p.Cladding)...)
	}
	if p.Floor != nil {
		errs = append(errs, checkFloor(*p.Floor)...)
		warns = append(warns, planningAdvisory(p.Floor.AreaSqM)...)
	}
	if p.Bathrooms != nil {
		errs = append(errs, checkBathrooms(*p.Bathrooms)...)
	}
	if p.Electrical != nil {
		errs = append(errs, checkElectrical(*p.Electrical)...)
	}
	if p.Glazing != nil {
		errs = append(errs, checkGlazing(*p.Glazing)...)
	}
	if p.Delivery != nil {
		errs = append(errs, checkDelivery(*p.Delivery)...)
	}
	if p.Extras != nil {
		errs = append(errs, checkExtras(*p.Extras)...)
	}

	return newResult(errs, warns)
}

func checkProductType(t entities.ProductType) []FieldError {
	if !entities.ValidProductType(t) {
		return []FieldError{{
			Field:   "productType",
			Code:    CodeInvalidEnum,
			Message: fmt.Sprintf("product type %q is not one of garden-room, house-extension, house-build", t),
		}}
	}
	return nil
}

func checkSize(s entities.Size) []FieldError {
	var errs []FieldError
	if s.WidthM <= 0 {
		errs = append(errs, FieldError{Field: "size.width", Code: CodeNotPositive, Message: "width must be greater than zero"})
	}
	if s.DepthM <= 0 {
		errs = append(errs, FieldError{Field: "size.depth", Code: CodeNotPositive, Message: "depth must be greater than zero"})
	}
	if s.HeightM <= 0 {
		errs = append(errs, FieldError{Field: "size.height", Code: CodeNotPositive, Message: "height must be greater than zero"})
	}
	return errs
}

func checkCladding(c entities.Cladding) []FieldError {
	if c.AreaSqM < 0 {
		return []FieldError{{Field: "cladding.areaSqm", Code: CodeNegative, Message: "cladding area cannot be negative"}}
	}
	return nil
}

func checkFloor(f entities.Floor) []FieldError {
	// A structure must have positive floor area even when the finish is none.
	if f.AreaSqM <= 0 {
		return []FieldError{{Field: "floor.areaSqM", Code: CodeNotPositive, Message: "floor area must be greater than zero"}}
	}
	return nil
}

func checkBathrooms(b entities.Bathrooms) []FieldError {
	var errs []FieldError
	if b.Half < 0 {
		errs = append(errs, FieldError{Field: "bathroom.half", Code: CodeNegative, Message: "half bathroom count cannot be negative"})
	}
	if b.ThreeQuarter < 0 {
		errs = append(errs, FieldError{Field: "bathroom.threeQuarter", Code: CodeNegative, Message: "three-quarter bathroom count cannot be negative"})
	}
	return errs
}

func checkElectrical(e entities.Electrical) []FieldError {
	var errs []FieldError
	if e.Switches < 0 {
		errs = append(errs, FieldError{Field: "electrical.switches", Code: CodeNegative, Message: "switch count cannot be negative"})
	}
	if e.Sockets < 0 {
		errs = append(errs, FieldError{Field: "electrical.sockets", Code: CodeNegative, Message: "socket count cannot be negative"})
	}
	if e.Downlights < 0 {
		errs = append(errs, FieldError{Field: "electrical.downlight", Code: CodeNegative, Message: "downlight count cannot be negative"})
	}
	return errs
}

func checkGlazing(g entities.Glazing) []FieldError {
	var errs []FieldError
	errs = append(errs, checkGlazedElements("glazing.windows", g.Windows)...)
	errs = append(errs, checkGlazedElements("glazing.externalDoors", g.ExternalDoors)...)
	errs = append(errs, checkGlazedElements("glazing.skylights", g.Skylights)...)
	return errs
}

func checkGlazedElements(field string, els []entities.GlazedElement) []FieldError {
	var errs []FieldError
	for i, el := range els {
		if el.WidthM <= 0 || el.HeightM <= 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Code:    CodeNotPositive,
				Message: "glazed element dimensions must be greater than zero",
			})
		}
	}
	return errs
}

func checkDelivery(d entities.Delivery) []FieldError {
	if d.Cost < 0 {
		return []FieldError{{Field: "delivery.cost", Code: CodeNegative, Message: "delivery cost cannot be negative"}}
	}
	return nil
}

func checkExtras(x entities.Extras) []FieldError {
	var errs []FieldError
	for i, item := range x.Other {
		if item.Cost < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("extras.other[%d].cost", i),
				Code:    CodeNegative,
				Message: "extra cost cannot be negative",
			})
		}
	}
	return errs
}

func checkEstimate(e entities.Estimate) []FieldError {
	if e.TotalIncVAT <= 0 {
		return []FieldError{{Field: "estimate.totalIncVat", Code: CodeNotPositive, Message: "estimate total must be greater than zero"}}
	}
	return nil
}

func planningAdvisory(floorAreaSqM float64) []FieldError {
	if floorAreaSqM > planningPermissionThresholdSqM {
		return []FieldError{{
			Field:   "floor.areaSqM",
			Code:    CodePlanningAdvisory,
			Message: fmt.Sprintf("floor area %.1f m² exceeds %.0f m² and may require planning permission", floorAreaSqM, planningPermissionThresholdSqM),
		}}
	}
	return nil
}
