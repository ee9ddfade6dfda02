/*
Package sqlite provides a SQLite-backed implementation of the timesheet sources.

PURPOSE:
  Persists employees, punches and work schedules, and serves the reads the
  hour-bank queries need. Computed results (balances, summaries, alerts)
  are never stored; they are recomputed from punches on every query.

INTERFACES IMPLEMENTED:
  timesheet.PunchStore:        Append-only punch persistence
  timesheet.ScheduleSource:    One work schedule per owner
  timesheet.EmployeeDirectory: Employee lookup for report names
  timesheet.RequestStore:      Absence and correction requests
  timesheet.NotificationStore: In-app notifications about requests

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the punches table
  - No DELETE statements on the punches table (except Reset for demos)
  - A wrong punch is corrected by registering a new one

KEY TABLES:
  employees:      Owners of punches
  punches:        Immutable clock events
  work_schedules: Expected hours, upserted per owner
  requests:       Request lifecycle rows, updated on decision
  notifications:  Per-recipient messages, flagged read in place

TIMESTAMPS:
  Stored as fixed-width UTC text (tsLayout) so that string comparison in
  range queries is chronological.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, plus WAL mode so readers don't
  block the writer.

USAGE:
  store, err := sqlite.New("./data/hourbank.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  ledger := timesheet.NewPunchLedger(store)

SEE ALSO:
  - timesheet/source.go: Interface definitions
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// tsLayout is RFC 3339 with fixed nanosecond width, always in UTC.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements the timesheet source interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'employee',
		created_at TEXT NOT NULL
	);

	-- Punches (append-only)
	CREATE TABLE IF NOT EXISTS punches (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES employees(id),
		kind TEXT NOT NULL CHECK (kind IN ('entry', 'exit')),
		ts TEXT NOT NULL,
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		source_ip TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_punches_owner_ts
		ON punches(owner_id, ts);
	CREATE INDEX IF NOT EXISTS idx_punches_ts
		ON punches(ts);

	-- One schedule per owner
	CREATE TABLE IF NOT EXISTS work_schedules (
		owner_id TEXT PRIMARY KEY REFERENCES employees(id),
		work_days TEXT NOT NULL,
		work_hours REAL NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_start TEXT,
		break_end TEXT,
		flexible_hours INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES employees(id),
		type TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected', 'cancelled')),
		start_date TEXT NOT NULL,
		end_date TEXT,
		reason TEXT NOT NULL,
		attachment TEXT,
		reviewed_by TEXT,
		reviewed_at TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_owner
		ON requests(owner_id, created_at);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		recipient_id TEXT NOT NULL REFERENCES employees(id),
		code TEXT NOT NULL,
		request_id TEXT NOT NULL,
		request_type TEXT NOT NULL,
		actor_name TEXT NOT NULL DEFAULT '',
		read INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_recipient
		ON notifications(recipient_id, read, created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.ensureColumn("employees", "role", "TEXT NOT NULL DEFAULT 'employee'")
}

// ensureColumn adds a column that databases created before it existed lack.
func (s *Store) ensureColumn(table, column, decl string) error {
	rows, err := s.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_, err = s.db.Exec("ALTER TABLE " + table + " ADD COLUMN " + column + " " + decl)
	return err
}

// =============================================================================
// PUNCH STORE (timesheet.PunchStore interface)
// =============================================================================

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AppendPunch adds a punch. A reused ID yields *generic.DuplicatePunchError.
func (s *Store) AppendPunch(ctx context.Context, p timesheet.Punch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendPunch(ctx, s.db, p)
}

func (s *Store) appendPunch(ctx context.Context, db execer, p timesheet.Punch) error {
	query := `
		INSERT INTO punches
		(id, owner_id, kind, ts, latitude, longitude, source_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		string(p.Kind),
		formatTS(p.Timestamp),
		p.Location.Latitude,
		p.Location.Longitude,
		nullString(p.SourceIP),
		formatTS(time.Now()),
	)
	if err != nil {
		if isPrimaryKeyError(err) {
			return &generic.DuplicatePunchError{PunchID: p.ID}
		}
		return fmt.Errorf("failed to append punch: %w", err)
	}
	return nil
}

// AppendPunches adds multiple punches atomically.
func (s *Store) AppendPunches(ctx context.Context, punches []timesheet.Punch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range punches {
		if err := s.appendPunch(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PunchExists checks whether a punch ID is taken.
func (s *Store) PunchExists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM punches WHERE id = ?", id,
	).Scan(&count)
	return count > 0, err
}

const punchColumns = `id, owner_id, kind, ts, latitude, longitude, source_ip`

// PunchesInRange returns an owner's punches in [from, to], ascending.
func (s *Store) PunchesInRange(ctx context.Context, ownerID string, from, to time.Time) ([]timesheet.Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + punchColumns + `
		FROM punches
		WHERE owner_id = ? AND ts >= ? AND ts <= ?
		ORDER BY ts ASC, id ASC`
	return s.queryPunches(ctx, query, ownerID, formatTS(from), formatTS(to))
}

// AllPunchesInRange returns every owner's punches in [from, to], ascending.
func (s *Store) AllPunchesInRange(ctx context.Context, from, to time.Time) ([]timesheet.Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + punchColumns + `
		FROM punches
		WHERE ts >= ? AND ts <= ?
		ORDER BY ts ASC, id ASC`
	return s.queryPunches(ctx, query, formatTS(from), formatTS(to))
}

// RecentPunches returns up to limit punches, newest first.
func (s *Store) RecentPunches(ctx context.Context, ownerID string, limit int) ([]timesheet.Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query := `SELECT ` + punchColumns + `
		FROM punches
		WHERE owner_id = ?
		ORDER BY ts DESC, id DESC
		LIMIT ?`
	return s.queryPunches(ctx, query, ownerID, limit)
}

func (s *Store) queryPunches(ctx context.Context, query string, args ...any) ([]timesheet.Punch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []timesheet.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

func scanPunch(rows *sql.Rows) (timesheet.Punch, error) {
	var (
		p        timesheet.Punch
		kind, ts string
		sourceIP sql.NullString
	)
	if err := rows.Scan(&p.ID, &p.OwnerID, &kind, &ts,
		&p.Location.Latitude, &p.Location.Longitude, &sourceIP); err != nil {
		return p, fmt.Errorf("failed to scan punch: %w", err)
	}

	p.Kind = timesheet.Kind(kind)
	p.SourceIP = sourceIP.String
	t, err := time.Parse(tsLayout, ts)
	if err != nil {
		return p, fmt.Errorf("punch %s: bad timestamp %q: %w", p.ID, ts, err)
	}
	p.Timestamp = t
	return p, nil
}

// =============================================================================
// SCHEDULE STORE (timesheet.ScheduleSource interface)
// =============================================================================

// SaveSchedule inserts or replaces the owner's schedule.
func (s *Store) SaveSchedule(ctx context.Context, ws timesheet.WorkSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO work_schedules
		(owner_id, work_days, work_hours, start_time, end_time, break_start, break_end, flexible_hours, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			work_days = excluded.work_days,
			work_hours = excluded.work_hours,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			break_start = excluded.break_start,
			break_end = excluded.break_end,
			flexible_hours = excluded.flexible_hours,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		ws.OwnerID,
		ws.WorkDays.String(),
		ws.DailyHours,
		ws.StartTime.String(),
		ws.EndTime.String(),
		nullClock(ws.BreakStart),
		nullClock(ws.BreakEnd),
		ws.FlexibleHours,
		formatTS(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

const scheduleColumns = `owner_id, work_days, work_hours, start_time, end_time, break_start, break_end, flexible_hours`

// Schedule returns nil, nil when the owner has no schedule.
func (s *Store) Schedule(ctx context.Context, ownerID string) (*timesheet.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+scheduleColumns+" FROM work_schedules WHERE owner_id = ?", ownerID)
	ws, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListSchedules returns every stored schedule.
func (s *Store) ListSchedules(ctx context.Context) ([]timesheet.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+scheduleColumns+" FROM work_schedules ORDER BY owner_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []timesheet.WorkSchedule
	for rows.Next() {
		ws, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, ws)
	}
	return schedules, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row scanner) (timesheet.WorkSchedule, error) {
	var (
		ws                   timesheet.WorkSchedule
		workDays             string
		startTime, endTime   string
		breakStart, breakEnd sql.NullString
	)
	if err := row.Scan(&ws.OwnerID, &workDays, &ws.DailyHours, &startTime, &endTime,
		&breakStart, &breakEnd, &ws.FlexibleHours); err != nil {
		return ws, err
	}

	var err error
	if ws.WorkDays, err = timesheet.ParseWorkDays(workDays); err != nil {
		return ws, err
	}
	if ws.StartTime, err = generic.ParseClockTime(startTime); err != nil {
		return ws, err
	}
	if ws.EndTime, err = generic.ParseClockTime(endTime); err != nil {
		return ws, err
	}
	if ws.BreakStart, err = parseNullClock(breakStart); err != nil {
		return ws, err
	}
	if ws.BreakEnd, err = parseNullClock(breakEnd); err != nil {
		return ws, err
	}
	return ws, nil
}

// =============================================================================
// EMPLOYEE STORE (timesheet.EmployeeDirectory interface)
// =============================================================================

// SaveEmployee saves an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp timesheet.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := emp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO employees (id, name, email, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role
	`
	role := emp.Role
	if role == "" {
		role = timesheet.RoleEmployee
	}
	_, err := s.db.ExecContext(ctx, query, emp.ID, emp.Name, emp.Email, string(role), formatTS(createdAt))
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// Employee retrieves an employee by ID.
func (s *Store) Employee(ctx context.Context, id string) (*timesheet.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %s: %w", id, generic.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListEmployees returns all employees.
func (s *Store) ListEmployees(ctx context.Context) ([]timesheet.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []timesheet.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

const employeeColumns = `id, name, email, role, created_at`

func scanEmployee(row scanner) (timesheet.Employee, error) {
	var (
		emp             timesheet.Employee
		role, createdAt string
	)
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &role, &createdAt); err != nil {
		return emp, err
	}
	emp.Role = timesheet.Role(role)
	t, err := time.Parse(tsLayout, createdAt)
	if err != nil {
		return emp, fmt.Errorf("employee %s: bad created_at %q: %w", emp.ID, createdAt, err)
	}
	emp.CreatedAt = t
	return emp, nil
}

// =============================================================================
// REQUEST STORE (timesheet.RequestStore interface)
// =============================================================================

// SaveRequest inserts a request or rewrites its mutable columns.
func (s *Store) SaveRequest(ctx context.Context, r timesheet.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO requests
		(id, owner_id, type, status, start_date, end_date, reason, attachment,
		 reviewed_by, reviewed_at, rejection_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			reviewed_by = excluded.reviewed_by,
			reviewed_at = excluded.reviewed_at,
			rejection_reason = excluded.rejection_reason,
			updated_at = excluded.updated_at
	`
	var endDate, reviewedAt sql.NullString
	if r.EndDate != nil {
		endDate = nullString(r.EndDate.String())
	}
	if r.ReviewedAt != nil {
		reviewedAt = nullString(formatTS(*r.ReviewedAt))
	}
	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.OwnerID,
		string(r.Type),
		string(r.Status),
		r.StartDate.String(),
		endDate,
		r.Reason,
		nullString(r.Attachment),
		nullString(r.ReviewedBy),
		reviewedAt,
		nullString(r.RejectionReason),
		formatTS(r.CreatedAt),
		formatTS(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

const requestColumns = `id, owner_id, type, status, start_date, end_date, reason, attachment,
	reviewed_by, reviewed_at, rejection_reason, created_at, updated_at`

// Request retrieves a request by ID.
func (s *Store) Request(ctx context.Context, id string) (*timesheet.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id = ?", id)
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %s: %w", id, generic.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequests returns newest first; an empty ownerID lists every owner.
func (s *Store) ListRequests(ctx context.Context, ownerID string) ([]timesheet.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + requestColumns + " FROM requests"
	var args []any
	if ownerID != "" {
		query += " WHERE owner_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []timesheet.Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func scanRequest(row scanner) (timesheet.Request, error) {
	var (
		r                               timesheet.Request
		typ, status, startDate          string
		createdAt, updatedAt            string
		endDate, attachment, reviewedBy sql.NullString
		reviewedAt, rejectionReason     sql.NullString
	)
	if err := row.Scan(&r.ID, &r.OwnerID, &typ, &status, &startDate, &endDate, &r.Reason,
		&attachment, &reviewedBy, &reviewedAt, &rejectionReason, &createdAt, &updatedAt); err != nil {
		return r, err
	}

	r.Type = timesheet.RequestType(typ)
	r.Status = timesheet.RequestStatus(status)
	r.Attachment = attachment.String
	r.ReviewedBy = reviewedBy.String
	r.RejectionReason = rejectionReason.String

	var err error
	if r.StartDate, err = generic.ParseDay(startDate); err != nil {
		return r, fmt.Errorf("request %s: %w", r.ID, err)
	}
	if endDate.Valid {
		end, err := generic.ParseDay(endDate.String)
		if err != nil {
			return r, fmt.Errorf("request %s: %w", r.ID, err)
		}
		r.EndDate = &end
	}
	if reviewedAt.Valid {
		t, err := time.Parse(tsLayout, reviewedAt.String)
		if err != nil {
			return r, fmt.Errorf("request %s: bad reviewed_at %q: %w", r.ID, reviewedAt.String, err)
		}
		r.ReviewedAt = &t
	}
	if r.CreatedAt, err = time.Parse(tsLayout, createdAt); err != nil {
		return r, fmt.Errorf("request %s: bad created_at %q: %w", r.ID, createdAt, err)
	}
	if r.UpdatedAt, err = time.Parse(tsLayout, updatedAt); err != nil {
		return r, fmt.Errorf("request %s: bad updated_at %q: %w", r.ID, updatedAt, err)
	}
	return r, nil
}

// =============================================================================
// NOTIFICATION STORE (timesheet.NotificationStore interface)
// =============================================================================

// AddNotifications inserts notifications atomically.
func (s *Store) AddNotifications(ctx context.Context, notes []timesheet.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO notifications
		(id, recipient_id, code, request_id, request_type, actor_name, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, n := range notes {
		if _, err := tx.ExecContext(ctx, query,
			n.ID, n.RecipientID, string(n.Code), n.RequestID, string(n.RequestType),
			n.ActorName, n.Read, formatTS(n.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to add notification: %w", err)
		}
	}
	return tx.Commit()
}

// UnreadNotifications returns newest first.
func (s *Store) UnreadNotifications(ctx context.Context, recipientID string) ([]timesheet.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipient_id, code, request_id, request_type, actor_name, read, created_at
		FROM notifications
		WHERE recipient_id = ? AND read = 0
		ORDER BY created_at DESC, id DESC`, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notes []timesheet.Notification
	for rows.Next() {
		var (
			n             timesheet.Notification
			code, typ, at string
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &code, &n.RequestID, &typ,
			&n.ActorName, &n.Read, &at); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Code = timesheet.NotificationCode(code)
		n.RequestType = timesheet.RequestType(typ)
		if n.CreatedAt, err = time.Parse(tsLayout, at); err != nil {
			return nil, fmt.Errorf("notification %s: bad created_at %q: %w", n.ID, at, err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// MarkNotificationRead flags one of the recipient's notifications.
func (s *Store) MarkNotificationRead(ctx context.Context, recipientID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ? AND recipient_id = ?", id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("notification %s: %w", id, generic.ErrNotFound)
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"notifications", "requests", "punches", "work_schedules", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullClock(c *generic.ClockTime) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}

func parseNullClock(s sql.NullString) (*generic.ClockTime, error) {
	if !s.Valid {
		return nil, nil
	}
	c, err := generic.ParseClockTime(s.String)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isPrimaryKeyError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

var (
	_ timesheet.PunchStore        = (*Store)(nil)
	_ timesheet.ScheduleSource    = (*Store)(nil)
	_ timesheet.EmployeeDirectory = (*Store)(nil)
	_ timesheet.RequestStore      = (*Store)(nil)
	_ timesheet.NotificationStore = (*Store)(nil)
)
