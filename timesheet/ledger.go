package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warp/hourbank/generic"
)

// =============================================================================
// PUNCH LEDGER - Append-only registration
// =============================================================================

// PunchLedger is the only write path for punches. Punches are never
// updated or deleted; a correction is a new punch.
type PunchLedger struct {
	Store PunchStore
	NewID func() string
	Now   func() time.Time
}

func NewPunchLedger(store PunchStore) *PunchLedger {
	return &PunchLedger{Store: store, NewID: uuid.NewString, Now: time.Now}
}

// Register stamps p with an ID and the current time when absent, validates
// it and appends it. A reused ID yields *generic.DuplicatePunchError.
func (l *PunchLedger) Register(ctx context.Context, p Punch) (Punch, error) {
	if p.ID == "" {
		p.ID = l.newID()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = l.now()
	}
	p.Timestamp = p.Timestamp.UTC()

	if err := p.Validate(); err != nil {
		return Punch{}, err
	}

	exists, err := l.Store.PunchExists(ctx, p.ID)
	if err != nil {
		return Punch{}, fmt.Errorf("check punch: %w", err)
	}
	if exists {
		return Punch{}, &generic.DuplicatePunchError{PunchID: p.ID}
	}

	if err := l.Store.AppendPunch(ctx, p); err != nil {
		return Punch{}, fmt.Errorf("append punch: %w", err)
	}
	return p, nil
}

func (l *PunchLedger) newID() string {
	if l.NewID == nil {
		return uuid.NewString()
	}
	return l.NewID()
}

func (l *PunchLedger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}
