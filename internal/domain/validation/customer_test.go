package validation

import (
	"strings"
	"testing"

	"gardenbuild/internal/domain/entities"
)

func validCustomer() entities.Customer {
	return entities.Customer{
		FirstName:    "Aoife",
		LastName:     "Byrne",
		Email:        "aoife.byrne@example.ie",
		PhonePrefix:  "+353",
		PhoneNumber:  "871234567",
		AddressLine1: "14 Main Street",
		County:       "wicklow",
		Eircode:      "A98 X2F4",
	}
}

func TestValidateCustomer(t *testing.T) {
	t.Run("valid customer accepted", func(t *testing.T) {
		r := ValidateCustomer(validCustomer())
		if !r.IsValid {
			t.Fatalf("expected valid, got %+v", r.Errors)
		}
	})

	t.Run("blank names rejected after trimming", func(t *testing.T) {
		c := validCustomer()
		c.FirstName = "   "
		c.LastName = ""
		r := ValidateCustomer(c)
		if r.IsValid || !hasError(r, "customer.firstName", CodeRequired) || !hasError(r, "customer.lastName", CodeRequired) {
			t.Fatalf("expected name errors, got %+v", r.Errors)
		}
	})

	t.Run("bad email rejected", func(t *testing.T) {
		c := validCustomer()
		c.Email = "not-an-email"
		r := ValidateCustomer(c)
		if r.IsValid || !hasError(r, "customer.email", CodeInvalidFormat) {
			t.Fatalf("expected email error, got %+v", r.Errors)
		}
	})

	t.Run("eircode grammar", func(t *testing.T) {
		cases := []struct {
			code string
			ok   bool
		}{
			{"A98 X2F4", true},
			{"a98x2f4", true}, // case-insensitive, space optional
			{"D02AF30", true},
			{"W23 P5H7", true},
			{"B98 X2F4", false}, // B not in the routing-key alphabet
			{"A9 X2F4", false},
			{"A98 X2F", false},
			{"A98 X2B4", false}, // B excluded from the body alphabet too
			{"", false},
		}
		for _, tc := range cases {
			c := validCustomer()
			c.Eircode = tc.code
			// Pick the county matching the routing key so only the grammar
			// is under test.
			switch strings.ToUpper(strings.TrimSpace(tc.code) + " ")[0] {
			case 'D', 'K':
				c.County = "dublin"
			case 'W':
				c.County = "kildare"
			default:
				c.County = "wicklow"
			}
			r := ValidateCustomer(c)
			if tc.ok != r.IsValid {
				t.Fatalf("eircode %q: expected valid=%v, got %+v", tc.code, tc.ok, r.Errors)
			}
		}
	})

	t.Run("county outside service area rejected", func(t *testing.T) {
		c := validCustomer()
		c.County = "galway"
		r := ValidateCustomer(c)
		if r.IsValid || !hasError(r, "customer.county", CodeInvalidEnum) {
			t.Fatalf("expected county error, got %+v", r.Errors)
		}
	})

	t.Run("county and routing key must agree", func(t *testing.T) {
		c := validCustomer()
		c.County = "kildare"
		c.Eircode = "D02 AF30" // Dublin routing key
		r := ValidateCustomer(c)
		if r.IsValid || !hasError(r, "customer.eircode", CodeCountyMismatch) {
			t.Fatalf("expected county mismatch, got %+v", r.Errors)
		}
		for _, e := range r.Errors {
			if e.Code == CodeCountyMismatch && !strings.Contains(e.Message, "W") {
				t.Fatalf("mismatch message must name allowed prefixes, got %q", e.Message)
			}
		}
	})

	t.Run("dublin accepts both D and K routing keys", func(t *testing.T) {
		for _, code := range []string{"D02 AF30", "K32 YD82"} {
			c := validCustomer()
			c.County = "dublin"
			c.Eircode = code
			if r := ValidateCustomer(c); !r.IsValid {
				t.Fatalf("eircode %q should be valid for dublin: %+v", code, r.Errors)
			}
		}
	})
}

func TestValidateCustomerPatch(t *testing.T) {
	t.Run("patch validated against merged record", func(t *testing.T) {
		county := "kildare"
		r := ValidateCustomerPatch(validCustomer(), entities.CustomerPatch{County: &county})
		// Existing eircode A98... no longer matches kildare.
		if r.IsValid || !hasError(r, "customer.eircode", CodeCountyMismatch) {
			t.Fatalf("expected mismatch after county change, got %+v", r.Errors)
		}
	})

	t.Run("consistent correction passes", func(t *testing.T) {
		email := "new@example.ie"
		r := ValidateCustomerPatch(validCustomer(), entities.CustomerPatch{Email: &email})
		if !r.IsValid {
			t.Fatalf("expected valid, got %+v", r.Errors)
		}
	})
}
