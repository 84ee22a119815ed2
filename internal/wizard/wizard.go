// Package wizard drives the step-by-step configuration flow used by the
// sales front end. A draft walks through a fixed step sequence, derived
// measurements are recomputed after every change, and progress is persisted
// through a DraftStore so an abandoned session can be resumed later.
package wizard

import (
	"context"
	"errors"
	"time"

	"gardenbuild/internal/domain/entities"
)

// Step is one screen of the configuration flow.
type Step string

const (
	StepSize     Step = "size"
	StepOpenings Step = "openings"
	StepCladding Step = "cladding"
	StepBathroom Step = "bathroom"
	StepFloor    Step = "floor"
	StepExtras   Step = "extras"
	StepSummary  Step = "summary"
)

// stepOrder is the forward sequence. Moving back is always allowed; moving
// forward is gated by the current step's completion rule.
var stepOrder = []Step{
	StepSize, StepOpenings, StepCladding, StepBathroom, StepFloor, StepExtras, StepSummary,
}

func stepIndex(s Step) int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

var (
	ErrDraftNotFound  = errors.New("wizard draft not found")
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrUnknownStep    = errors.New("unknown wizard step")
	ErrNotAtSummary   = errors.New("wizard has not reached the summary step")
)

// Draft is the persisted state of one wizard session.
type Draft struct {
	ID            string                        `json:"id"`
	Step          Step                          `json:"step"`
	Configuration entities.ProductConfiguration `json:"configuration"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

// DraftStore persists wizard drafts. Load returns ErrDraftNotFound when the
// draft does not exist or has expired.
type DraftStore interface {
	Save(ctx context.Context, draft Draft) error
	Load(ctx context.Context, id string) (Draft, error)
	Delete(ctx context.Context, id string) error
}
