// Package memory provides an in-memory implementation of the timesheet
// source interfaces (for tests and demos).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	punches   map[string][]timesheet.Punch // ownerID -> punches, ascending
	ids       map[string]bool
	schedules map[string]timesheet.WorkSchedule
	employees map[string]timesheet.Employee
	requests  map[string]timesheet.Request
	notes     []timesheet.Notification
}

func New() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

func (s *Store) resetLocked() {
	s.punches = make(map[string][]timesheet.Punch)
	s.ids = make(map[string]bool)
	s.schedules = make(map[string]timesheet.WorkSchedule)
	s.employees = make(map[string]timesheet.Employee)
	s.requests = make(map[string]timesheet.Request)
	s.notes = nil
}

// Reset drops all data.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

// =============================================================================
// PUNCHES (timesheet.PunchStore)
// =============================================================================

// AppendPunch adds a single punch. Append-only.
func (s *Store) AppendPunch(_ context.Context, p timesheet.Punch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[p.ID] {
		return &generic.DuplicatePunchError{PunchID: p.ID}
	}
	s.appendLocked(p)
	return nil
}

// AppendPunches adds multiple punches atomically: either all IDs are new
// and every punch is stored, or nothing is.
func (s *Store) AppendPunches(_ context.Context, punches []timesheet.Punch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(punches))
	for _, p := range punches {
		if s.ids[p.ID] || seen[p.ID] {
			return &generic.DuplicatePunchError{PunchID: p.ID}
		}
		seen[p.ID] = true
	}
	for _, p := range punches {
		s.appendLocked(p)
	}
	return nil
}

func (s *Store) appendLocked(p timesheet.Punch) {
	list := s.punches[p.OwnerID]

	// Binary search for the insertion point keeps each owner's list sorted.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(p.Timestamp)
	})
	list = append(list, timesheet.Punch{})
	copy(list[i+1:], list[i:])
	list[i] = p
	s.punches[p.OwnerID] = list
	s.ids[p.ID] = true
}

func (s *Store) PunchExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[id], nil
}

func (s *Store) PunchesInRange(_ context.Context, ownerID string, from, to time.Time) ([]timesheet.Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inRange(s.punches[ownerID], from, to), nil
}

func (s *Store) AllPunchesInRange(_ context.Context, from, to time.Time) ([]timesheet.Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []timesheet.Punch
	for _, list := range s.punches {
		result = append(result, inRange(list, from, to)...)
	}
	return timesheet.SortAscending(result), nil
}

// RecentPunches returns up to limit punches, newest first.
func (s *Store) RecentPunches(_ context.Context, ownerID string, limit int) ([]timesheet.Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.punches[ownerID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	result := make([]timesheet.Punch, 0, limit)
	for i := len(list) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, list[i])
	}
	return result, nil
}

func inRange(list []timesheet.Punch, from, to time.Time) []timesheet.Punch {
	var result []timesheet.Punch
	for _, p := range list {
		if !p.Timestamp.Before(from) && !p.Timestamp.After(to) {
			result = append(result, p)
		}
	}
	return result
}

// =============================================================================
// SCHEDULES (timesheet.ScheduleSource)
// =============================================================================

// SaveSchedule inserts or replaces the owner's schedule.
func (s *Store) SaveSchedule(_ context.Context, ws timesheet.WorkSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[ws.OwnerID] = ws
	return nil
}

func (s *Store) Schedule(_ context.Context, ownerID string) (*timesheet.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.schedules[ownerID]
	if !ok {
		return nil, nil
	}
	return &ws, nil
}

func (s *Store) ListSchedules(_ context.Context) ([]timesheet.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]timesheet.WorkSchedule, 0, len(s.schedules))
	for _, ws := range s.schedules {
		result = append(result, ws)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OwnerID < result[j].OwnerID })
	return result, nil
}

// =============================================================================
// EMPLOYEES (timesheet.EmployeeDirectory)
// =============================================================================

func (s *Store) SaveEmployee(_ context.Context, e timesheet.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
	return nil
}

func (s *Store) Employee(_ context.Context, id string) (*timesheet.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, generic.ErrNotFound)
	}
	return &e, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]timesheet.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]timesheet.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// =============================================================================
// REQUESTS AND NOTIFICATIONS
// =============================================================================

func (s *Store) SaveRequest(_ context.Context, r timesheet.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = r
	return nil
}

func (s *Store) Request(_ context.Context, id string) (*timesheet.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, generic.ErrNotFound)
	}
	return &r, nil
}

// ListRequests returns newest first; an empty ownerID lists every owner.
func (s *Store) ListRequests(_ context.Context, ownerID string) ([]timesheet.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]timesheet.Request, 0, len(s.requests))
	for _, r := range s.requests {
		if ownerID == "" || r.OwnerID == ownerID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) AddNotifications(_ context.Context, notes []timesheet.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, notes...)
	return nil
}

// UnreadNotifications returns newest first.
func (s *Store) UnreadNotifications(_ context.Context, recipientID string) ([]timesheet.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []timesheet.Notification
	for i := len(s.notes) - 1; i >= 0; i-- {
		if n := s.notes[i]; n.RecipientID == recipientID && !n.Read {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, recipientID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id && s.notes[i].RecipientID == recipientID {
			s.notes[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, generic.ErrNotFound)
}

var (
	_ timesheet.PunchStore        = (*Store)(nil)
	_ timesheet.ScheduleSource    = (*Store)(nil)
	_ timesheet.EmployeeDirectory = (*Store)(nil)
	_ timesheet.RequestStore      = (*Store)(nil)
	_ timesheet.NotificationStore = (*Store)(nil)
)
