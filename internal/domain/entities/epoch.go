package entities

import (
	"fmt"
	"time"
)

// Epoch is the quarter-year window within which quote-number sequences run.
// Sequences are strictly increasing inside an epoch and restart at 1 when a
// new epoch begins.
type Epoch struct {
	Quarter int
	Year    int
}

// EpochOf maps an instant to its numbering epoch (UTC).
func EpochOf(t time.Time) Epoch {
	t = t.UTC()
	return Epoch{
		Quarter: (int(t.Month())-1)/3 + 1,
		Year:    t.Year(),
	}
}

// ID is the counter key for the epoch, e.g. "Q1-2025".
func (e Epoch) ID() string {
	return fmt.Sprintf("Q%d-%04d", e.Quarter, e.Year)
}

// QuoteNumber formats the human-facing number for a reserved sequence value,
// e.g. "Q1-2025-00042".
func (e Epoch) QuoteNumber(seq int64) string {
	return fmt.Sprintf("%s-%05d", e.ID(), seq)
}
