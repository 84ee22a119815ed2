package request

// WizardStartRequest opens a new configuration wizard session.
type WizardStartRequest struct {
	ProductType string `json:"product_type" binding:"required"`
}

// WizardUpdateRequest applies a partial configuration change and optionally
// moves the session: action is "advance", "back" or empty.
type WizardUpdateRequest struct {
	Patch  *ConfigurationPatchRequest `json:"patch"`
	Action string                     `json:"action"`
}
