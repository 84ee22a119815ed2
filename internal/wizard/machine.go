package wizard

import (
	"context"
	"strings"
	"sync"
	"time"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/domain/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Machine holds one in-flight wizard session. Mutations recompute derived
// measurements and schedule a debounced save, so a burst of edits on one
// screen costs a single store write.
type Machine struct {
	mu       sync.Mutex
	draft    Draft
	store    DraftStore
	debounce time.Duration
	timer    *time.Timer
}

// NewMachine starts a fresh session for the given product type.
func NewMachine(store DraftStore, debounce time.Duration, productType entities.ProductType) *Machine {
	return &Machine{
		draft: Draft{
			ID:   uuid.NewString(),
			Step: StepSize,
			Configuration: entities.ProductConfiguration{
				ProductType: productType,
				Floor:       entities.Floor{Type: entities.FloorTypeNone},
			},
			UpdatedAt: time.Now().UTC(),
		},
		store:    store,
		debounce: debounce,
	}
}

// Resume reloads a persisted draft, landing the customer on the step they
// left off at.
func Resume(ctx context.Context, store DraftStore, debounce time.Duration, id string) (*Machine, error) {
	draft, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Machine{draft: draft, store: store, debounce: debounce}, nil
}

// Draft returns a snapshot of the session state.
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Apply merges a partial configuration change, recomputes derived areas and
// schedules a save.
func (m *Machine) Apply(patch entities.ConfigurationPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.draft.Configuration = patch.Apply(m.draft.Configuration)
	m.recomputeDerived()
	m.draft.UpdatedAt = time.Now().UTC()
	m.scheduleSave()
}

// recomputeDerived keeps measured areas consistent with the inputs:
// the floor footprint follows width by depth, and the cladding area is the
// perimeter wall surface minus window and door openings, floored at zero.
func (m *Machine) recomputeDerived() {
	cfg := &m.draft.Configuration
	size := cfg.Size

	cfg.Floor.AreaSqM = size.FloorAreaSqM()

	walls := 2 * (size.WidthM + size.DepthM) * size.HeightM
	cladding := walls - cfg.Glazing.OpeningsAreaSqM()
	if cladding < 0 {
		cladding = 0
	}
	cfg.Cladding.AreaSqM = cladding
}

// Advance moves to the next step if the current one is complete.
func (m *Machine) Advance() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := stepIndex(m.draft.Step)
	if idx < 0 {
		return ErrUnknownStep
	}
	if idx == len(stepOrder)-1 {
		return nil
	}
	if err := m.stepComplete(m.draft.Step); err != nil {
		return err
	}

	m.draft.Step = stepOrder[idx+1]
	m.draft.UpdatedAt = time.Now().UTC()
	m.scheduleSave()
	return nil
}

// Back moves to the previous step. Nothing is ever lost going backwards.
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := stepIndex(m.draft.Step)
	if idx <= 0 {
		return
	}
	m.draft.Step = stepOrder[idx-1]
	m.draft.UpdatedAt = time.Now().UTC()
	m.scheduleSave()
}

// stepComplete is the forward gate per step. Only size and cladding carry
// hard requirements; everything else is optional and priced as zero.
func (m *Machine) stepComplete(s Step) error {
	cfg := m.draft.Configuration
	switch s {
	case StepSize:
		if cfg.Size.WidthM <= 0 || cfg.Size.DepthM <= 0 || cfg.Size.HeightM <= 0 {
			return ErrStepIncomplete
		}
	case StepCladding:
		if strings.TrimSpace(cfg.Cladding.Material) == "" || strings.TrimSpace(cfg.Cladding.Colour) == "" {
			return ErrStepIncomplete
		}
	}
	return nil
}

// Complete finishes the session at the summary step and hands the assembled
// configuration to the caller for pricing and persistence. The draft is
// flushed first so a failed submission can still be resumed.
func (m *Machine) Complete(ctx context.Context) (entities.ProductConfiguration, error) {
	m.mu.Lock()
	if m.draft.Step != StepSummary {
		m.mu.Unlock()
		return entities.ProductConfiguration{}, ErrNotAtSummary
	}
	cfg := m.draft.Configuration
	m.mu.Unlock()

	if res := validation.ValidateConfiguration(cfg); !res.IsValid {
		return entities.ProductConfiguration{}, ErrStepIncomplete
	}

	if err := m.Flush(ctx); err != nil {
		return entities.ProductConfiguration{}, err
	}
	return cfg, nil
}

// Discard drops the draft from the store and stops any pending save.
func (m *Machine) Discard(ctx context.Context) error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	id := m.draft.ID
	m.mu.Unlock()

	return m.store.Delete(ctx, id)
}

// Flush cancels the pending debounce and writes the draft immediately.
func (m *Machine) Flush(ctx context.Context) error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	draft := m.draft
	m.mu.Unlock()

	return m.store.Save(ctx, draft)
}

// scheduleSave (re)arms the debounce timer. Callers hold m.mu.
func (m *Machine) scheduleSave() {
	if m.store == nil {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	draftID := m.draft.ID
	m.timer = time.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		draft := m.draft
		m.timer = nil
		m.mu.Unlock()

		if err := m.store.Save(context.Background(), draft); err != nil {
			log.Warn().Err(err).Str("draft_id", draftID).Msg("wizard draft save failed")
		}
	})
}
