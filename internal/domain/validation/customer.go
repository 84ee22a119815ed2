package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gardenbuild/internal/domain/entities"
)

// Eircode grammar: one routing-key letter from the restricted alphabet
// (ambiguous characters such as B, I, O and S are excluded), two digits,
// optional space, then four characters from the restricted alphabet plus
// digits. Case-insensitive.
var (
	eircodeRe = regexp.MustCompile(`^[ACDEFHKNPRTVWXY][0-9]{2} ?[0-9ACDEFHKNPRTVWXY]{4}$`)
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRe  = regexp.MustCompile(`^[0-9]{5,12}$`)
	prefixRe  = regexp.MustCompile(`^\+[0-9]{1,3}$`)
)

// countyRoutingKeys maps each supported county to the Eircode routing-key
// letters it accepts. The service only quotes within these three counties.
var countyRoutingKeys = map[string][]string{
	"dublin":  {"D", "K"},
	"kildare": {"W"},
	"wicklow": {"A"},
}

// SupportedCounties lists the county allow-list in stable order.
func SupportedCounties() []string {
	out := make([]string, 0, len(countyRoutingKeys))
	for c := range countyRoutingKeys {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ValidateCustomer applies the contact rules invoked from quote validation.
// A county/Eircode routing-key mismatch is a hard error, not a warning.
func ValidateCustomer(c entities.Customer) Result {
	var errs []FieldError

	if strings.TrimSpace(c.FirstName) == "" {
		errs = append(errs, FieldError{Field: "customer.firstName", Code: CodeRequired, Message: "first name is required"})
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs = append(errs, FieldError{Field: "customer.lastName", Code: CodeRequired, Message: "last name is required"})
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "customer.email", Code: CodeRequired, Message: "email is required"})
	} else if !emailRe.MatchString(email) {
		errs = append(errs, FieldError{Field: "customer.email", Code: CodeInvalidFormat, Message: "email address is not valid"})
	}

	if prefix := strings.TrimSpace(c.PhonePrefix); prefix != "" && !prefixRe.MatchString(prefix) {
		errs = append(errs, FieldError{Field: "customer.phone.prefix", Code: CodeInvalidFormat, Message: "phone prefix must be a + followed by the country code"})
	}
	if number := strings.TrimSpace(c.PhoneNumber); number != "" && !digitsRe.MatchString(number) {
		errs = append(errs, FieldError{Field: "customer.phone.number", Code: CodeInvalidFormat, Message: "phone number must be 5-12 digits"})
	}

	county := strings.ToLower(strings.TrimSpace(c.County))
	keys, knownCounty := countyRoutingKeys[county]
	if county == "" {
		errs = append(errs, FieldError{Field: "customer.county", Code: CodeRequired, Message: "county is required"})
	} else if !knownCounty {
		errs = append(errs, FieldError{
			Field:   "customer.county",
			Code:    CodeInvalidEnum,
			Message: fmt.Sprintf("county %q is outside the service area (%s)", county, strings.Join(SupportedCounties(), ", ")),
		})
	}

	eircode := normalizeEircode(c.Eircode)
	if eircode == "" {
		errs = append(errs, FieldError{Field: "customer.eircode", Code: CodeRequired, Message: "eircode is required"})
	} else if !eircodeRe.MatchString(eircode) {
		errs = append(errs, FieldError{Field: "customer.eircode", Code: CodeInvalidFormat, Message: "eircode does not match the national format"})
	} else if knownCounty {
		if err := checkCountyRoutingKey(county, keys, eircode); err != nil {
			errs = append(errs, *err)
		}
	}

	return newResult(errs, nil)
}

// ValidateCustomerPatch re-validates the full merged customer; contact
// corrections must leave the record as a whole consistent.
func ValidateCustomerPatch(current entities.Customer, p entities.CustomerPatch) Result {
	return ValidateCustomer(p.Apply(current))
}

func normalizeEircode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func checkCountyRoutingKey(county string, allowed []string, eircode string) *FieldError {
	routingKey := eircode[:1]
	for _, k := range allowed {
		if routingKey == k {
			return nil
		}
	}
	return &FieldError{
		Field: "customer.eircode",
		Code:  CodeCountyMismatch,
		Message: fmt.Sprintf("eircode routing key %q is not valid for county %s (allowed prefixes: %s)",
			routingKey, county, strings.Join(allowed, ", ")),
	}
}
