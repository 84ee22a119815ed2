package wizard

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"gardenbuild/internal/domain/entities"
)

type memoryStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
	saves  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: map[string]Draft{}}
}

func (s *memoryStore) Save(_ context.Context, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
	s.saves++
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return draft, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *memoryStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func sizePatch(w, d, h float64) entities.ConfigurationPatch {
	size := entities.Size{WidthM: w, DepthM: d, HeightM: h}
	return entities.ConfigurationPatch{Size: &size}
}

func TestMachine_DerivedAreas(t *testing.T) {
	m := NewMachine(newMemoryStore(), time.Hour, entities.ProductTypeGardenRoom)

	m.Apply(sizePatch(4, 3, 2.4))

	draft := m.Draft()
	if got := draft.Configuration.Floor.AreaSqM; got != 12 {
		t.Fatalf("floor area = %v, want 12", got)
	}
	// 2*(4+3)*2.4 = 33.6 wall surface, no openings yet
	if got := draft.Configuration.Cladding.AreaSqM; math.Abs(got-33.6) > 1e-9 {
		t.Fatalf("cladding area = %v, want 33.6", got)
	}

	glazing := entities.Glazing{
		Windows:       []entities.GlazedElement{{WidthM: 1.2, HeightM: 1.0}},
		ExternalDoors: []entities.GlazedElement{{WidthM: 0.9, HeightM: 2.0}},
		Skylights:     []entities.GlazedElement{{WidthM: 0.8, HeightM: 0.8}},
	}
	m.Apply(entities.ConfigurationPatch{Glazing: &glazing})

	// Skylights sit in the roof and never reduce wall cladding.
	want := 33.6 - (1.2*1.0 + 0.9*2.0)
	if got := m.Draft().Configuration.Cladding.AreaSqM; math.Abs(got-want) > 1e-9 {
		t.Fatalf("cladding area = %v, want %v", got, want)
	}
}

func TestMachine_CladdingNeverNegative(t *testing.T) {
	m := NewMachine(newMemoryStore(), time.Hour, entities.ProductTypeGardenRoom)

	m.Apply(sizePatch(1, 1, 1))
	glazing := entities.Glazing{
		ExternalDoors: []entities.GlazedElement{{WidthM: 3, HeightM: 3}},
	}
	m.Apply(entities.ConfigurationPatch{Glazing: &glazing})

	if got := m.Draft().Configuration.Cladding.AreaSqM; got != 0 {
		t.Fatalf("cladding area = %v, want 0", got)
	}
}

func TestMachine_ForwardGuards(t *testing.T) {
	m := NewMachine(newMemoryStore(), time.Hour, entities.ProductTypeGardenRoom)

	if err := m.Advance(); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete leaving empty size step, got %v", err)
	}

	m.Apply(sizePatch(4, 3, 2.4))
	if err := m.Advance(); err != nil {
		t.Fatalf("size -> openings: %v", err)
	}
	if err := m.Advance(); err != nil {
		t.Fatalf("openings -> cladding: %v", err)
	}

	// Cladding needs a material and colour before moving on.
	if err := m.Advance(); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete leaving bare cladding step, got %v", err)
	}
	cladding := m.Draft().Configuration.Cladding
	cladding.Material = "cedar"
	cladding.Colour = "natural"
	m.Apply(entities.ConfigurationPatch{Cladding: &cladding})
	if err := m.Advance(); err != nil {
		t.Fatalf("cladding -> bathroom: %v", err)
	}

	m.Back()
	if got := m.Draft().Step; got != StepCladding {
		t.Fatalf("step = %v, want cladding after Back", got)
	}
}

func TestMachine_ResumeMidFlow(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	m := NewMachine(store, time.Hour, entities.ProductTypeGardenRoom)
	m.Apply(sizePatch(4, 3, 2.4))
	if err := m.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := m.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := m.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	resumed, err := Resume(ctx, store, time.Hour, m.Draft().ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	draft := resumed.Draft()
	if draft.Step != StepCladding {
		t.Fatalf("resumed step = %v, want cladding", draft.Step)
	}
	if draft.Configuration.Size.WidthM != 4 {
		t.Fatalf("resumed size lost: %+v", draft.Configuration.Size)
	}
}

func TestMachine_DebouncedSaveCollapsesBurst(t *testing.T) {
	store := newMemoryStore()
	m := NewMachine(store, 30*time.Millisecond, entities.ProductTypeGardenRoom)

	for i := 0; i < 10; i++ {
		m.Apply(sizePatch(4, 3, 2.4))
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.saveCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("debounced save never fired")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := store.saveCount(); got != 1 {
		t.Fatalf("saves = %d, want 1 for a single burst", got)
	}
}

func TestMachine_Complete(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	m := NewMachine(store, time.Hour, entities.ProductTypeGardenRoom)

	if _, err := m.Complete(ctx); !errors.Is(err, ErrNotAtSummary) {
		t.Fatalf("expected ErrNotAtSummary, got %v", err)
	}

	m.Apply(sizePatch(4, 3, 2.4))
	cladding := m.Draft().Configuration.Cladding
	cladding.Material = "cedar"
	cladding.Colour = "natural"
	m.Apply(entities.ConfigurationPatch{Cladding: &cladding})
	floor := entities.Floor{Type: entities.FloorTypeWooden, AreaSqM: 12}
	m.Apply(entities.ConfigurationPatch{Floor: &floor})

	for m.Draft().Step != StepSummary {
		if err := m.Advance(); err != nil {
			t.Fatalf("advance from %v: %v", m.Draft().Step, err)
		}
	}

	cfg, err := m.Complete(ctx)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if cfg.Size.WidthM != 4 || cfg.Cladding.Material != "cedar" {
		t.Fatalf("unexpected configuration: %+v", cfg)
	}
	// Completion flushes, so the draft survives a failed submission.
	if _, err := store.Load(ctx, m.Draft().ID); err != nil {
		t.Fatalf("draft not persisted after complete: %v", err)
	}

	if err := m.Discard(ctx); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := store.Load(ctx, m.Draft().ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound after discard, got %v", err)
	}
}
