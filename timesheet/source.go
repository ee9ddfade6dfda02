package timesheet

import (
	"context"
	"time"
)

// =============================================================================
// SOURCE INTERFACES - What the queries read from
// =============================================================================

// PunchSource supplies punches. Implementations return them in any order;
// the engine never relies on storage order.
type PunchSource interface {
	// PunchesInRange returns an owner's punches with from <= Timestamp <= to.
	PunchesInRange(ctx context.Context, ownerID string, from, to time.Time) ([]Punch, error)

	// RecentPunches returns up to limit of an owner's punches, newest first.
	RecentPunches(ctx context.Context, ownerID string, limit int) ([]Punch, error)

	// AllPunchesInRange returns every owner's punches with from <= Timestamp <= to.
	AllPunchesInRange(ctx context.Context, from, to time.Time) ([]Punch, error)
}

// ScheduleSource supplies work schedules. A nil schedule with a nil error
// means the owner has none and the default applies.
type ScheduleSource interface {
	Schedule(ctx context.Context, ownerID string) (*WorkSchedule, error)
}

// Employee is the minimal identity the reports and the request workflow
// need. The zero Role is RoleEmployee.
type Employee struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// EmployeeDirectory resolves owner IDs. Employee returns an error wrapping
// generic.ErrNotFound for unknown IDs.
type EmployeeDirectory interface {
	Employee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// PunchStore is the append-only write side used by the ledger.
type PunchStore interface {
	PunchSource
	AppendPunch(ctx context.Context, p Punch) error
	PunchExists(ctx context.Context, id string) (bool, error)
}
