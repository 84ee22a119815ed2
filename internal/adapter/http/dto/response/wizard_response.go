package response

import (
	"time"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/wizard"
)

type WizardDraftResponse struct {
	ID            string                        `json:"id"`
	Step          string                        `json:"step"`
	Configuration entities.ProductConfiguration `json:"configuration"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

func FromDraft(d wizard.Draft) WizardDraftResponse {
	return WizardDraftResponse{
		ID:            d.ID,
		Step:          string(d.Step),
		Configuration: d.Configuration,
		UpdatedAt:     d.UpdatedAt,
	}
}
