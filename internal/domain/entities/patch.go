package entities

// ConfigurationPatch is a partial update: nil sections are left untouched.
// Only supplied sections are re-validated, so callers can correct a single
// field without resubmitting the whole configuration.
type ConfigurationPatch struct {
	ProductType  *ProductType  `json:"product_type,omitempty"`
	Size         *Size         `json:"size,omitempty"`
	Cladding     *Cladding     `json:"cladding,omitempty"`
	Floor        *Floor        `json:"floor,omitempty"`
	InternalWall *InternalWall `json:"internal_wall,omitempty"`
	Bathrooms    *Bathrooms    `json:"bathrooms,omitempty"`
	Electrical   *Electrical   `json:"electrical,omitempty"`
	Glazing      *Glazing      `json:"glazing,omitempty"`
	Delivery     *Delivery     `json:"delivery,omitempty"`
	Extras       *Extras       `json:"extras,omitempty"`
}

// Empty reports whether the patch carries no sections at all.
func (p ConfigurationPatch) Empty() bool {
	return p.ProductType == nil && p.Size == nil && p.Cladding == nil &&
		p.Floor == nil && p.InternalWall == nil && p.Bathrooms == nil &&
		p.Electrical == nil && p.Glazing == nil && p.Delivery == nil &&
		p.Extras == nil
}

// Apply merges the patch onto cfg and returns the result. cfg itself is not
// modified.
func (p ConfigurationPatch) Apply(cfg ProductConfiguration) ProductConfiguration {
	if p.ProductType != nil {
		cfg.ProductType = *p.ProductType
	}
	if p.Size != nil {
		cfg.Size = *p.Size
	}
	if p.Cladding != nil {
		cfg.Cladding = *p.Cladding
	}
	if p.Floor != nil {
		cfg.Floor = *p.Floor
	}
	if p.InternalWall != nil {
		cfg.InternalWall = *p.InternalWall
	}
	if p.Bathrooms != nil {
		cfg.Bathrooms = *p.Bathrooms
	}
	if p.Electrical != nil {
		cfg.Electrical = *p.Electrical
	}
	if p.Glazing != nil {
		cfg.Glazing = *p.Glazing
	}
	if p.Delivery != nil {
		cfg.Delivery = *p.Delivery
	}
	if p.Extras != nil {
		cfg.Extras = *p.Extras
	}
	return cfg
}

// CustomerPatch is a partial contact-detail correction on a quote.
type CustomerPatch struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhonePrefix  *string `json:"phone_prefix,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	County       *string `json:"county,omitempty"`
	Eircode      *string `json:"eircode,omitempty"`
}

// Apply merges the patch onto c and returns the result.
func (p CustomerPatch) Apply(c Customer) Customer {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.PhonePrefix != nil {
		c.PhonePrefix = *p.PhonePrefix
	}
	if p.PhoneNumber != nil {
		c.PhoneNumber = *p.PhoneNumber
	}
	if p.AddressLine1 != nil {
		c.AddressLine1 = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		c.AddressLine2 = *p.AddressLine2
	}
	if p.County != nil {
		c.County = *p.County
	}
	if p.Eircode != nil {
		c.Eircode = *p.Eircode
	}
	return c
}
