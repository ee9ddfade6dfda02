/*
request.go - Absence and correction request lifecycle

PURPOSE:
  Employees ask for vacation, absence, overtime or a time correction;
  managers approve or reject. Requests never touch punches or balances:
  an approved time correction is applied by registering new punches.

REQUEST FLOW:
  ┌──────────┐   Approve   ┌──────────┐
  │          │ ──────────▶ │ Approved │
  │          │             └──────────┘
  │ Pending  │   Reject    ┌──────────┐
  │          │ ──────────▶ │ Rejected │
  │          │             └──────────┘
  │          │   Cancel    ┌───────────┐
  │          │ ──────────▶ │ Cancelled │
  └──────────┘             └───────────┘

  Only pending requests move. A second decision yields
  generic.ErrRequestNotPending.

NOTIFICATIONS:
  Submitting notifies every manager and admin (except the requester).
  A decision notifies the requester. Notifications carry a code and the
  actor's name; the text is rendered per locale when read.

ROLES:
  employee  Submits and cancels own requests, sees own requests
  manager   Also sees every request and decides other people's requests
  admin     Same as manager

SEE ALSO:
  - source.go: Employee, EmployeeDirectory
  - store/sqlite, store/memory: RequestStore and NotificationStore
*/
package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warp/hourbank/generic"
)

// =============================================================================
// ROLES
// =============================================================================

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts the three roles; empty means RoleEmployee.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleEmployee, nil
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", generic.Malformed("role", s, "expected employee, manager or admin")
	}
}

// CanReview reports whether the role may see and decide all requests.
func (r Role) CanReview() bool {
	return r == RoleManager || r == RoleAdmin
}

// =============================================================================
// REQUEST
// =============================================================================

type RequestType string

const (
	RequestTimeCorrection RequestType = "time_correction"
	RequestAbsence        RequestType = "absence"
	RequestVacation       RequestType = "vacation"
	RequestOvertime       RequestType = "overtime"
)

func ParseRequestType(s string) (RequestType, error) {
	switch RequestType(s) {
	case RequestTimeCorrection, RequestAbsence, RequestVacation, RequestOvertime:
		return RequestType(s), nil
	default:
		return "", generic.Malformed("type", s, "expected time_correction, absence, vacation or overtime")
	}
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// Request asks for a day or a range of days to be treated specially.
// EndDate is nil for single-day requests.
type Request struct {
	ID         string
	OwnerID    string
	Type       RequestType
	Status     RequestStatus
	StartDate  generic.Day
	EndDate    *generic.Day
	Reason     string
	Attachment string

	// Decision tracking
	ReviewedBy      string
	ReviewedAt      *time.Time
	RejectionReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a submission must carry. Vacation needs an
// end date; any end date must not precede the start.
func (r Request) Validate() error {
	if _, err := ParseRequestType(string(r.Type)); err != nil {
		return err
	}
	if r.StartDate.IsZero() {
		return generic.Malformed("startDate", "", "required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return generic.Malformed("reason", "", "required")
	}
	if r.Type == RequestVacation && r.EndDate == nil {
		return generic.Malformed("endDate", "", "required for vacation")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return generic.ErrInvalidPeriod
	}
	return nil
}

// Days returns the number of calendar days covered, inclusive.
func (r Request) Days() int {
	if r.EndDate == nil {
		return 1
	}
	return generic.DaysBetween(r.StartDate, *r.EndDate) + 1
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

type NotificationCode string

const (
	NotifyRequestCreated  NotificationCode = "request.created"
	NotifyRequestApproved NotificationCode = "request.approved"
	NotifyRequestRejected NotificationCode = "request.rejected"
)

// Notification is an in-app message about a request. ActorName is who
// caused it: the requester for created, the reviewer for decisions.
type Notification struct {
	ID          string
	RecipientID string
	Code        NotificationCode
	RequestID   string
	RequestType RequestType
	ActorName   string
	Read        bool
	CreatedAt   time.Time
}

// =============================================================================
// STORES
// =============================================================================

// RequestStore persists requests. Request returns an error wrapping
// generic.ErrNotFound for unknown IDs.
type RequestStore interface {
	// SaveRequest inserts the request or replaces the one with its ID.
	SaveRequest(ctx context.Context, r Request) error
	Request(ctx context.Context, id string) (*Request, error)
	// ListRequests returns an owner's requests (all owners when ownerID is
	// empty), newest first.
	ListRequests(ctx context.Context, ownerID string) ([]Request, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	AddNotifications(ctx context.Context, notes []Notification) error
	// UnreadNotifications returns a recipient's unread notifications, newest first.
	UnreadNotifications(ctx context.Context, recipientID string) ([]Notification, error)
	// MarkNotificationRead wraps generic.ErrNotFound when id is not one of
	// the recipient's notifications.
	MarkNotificationRead(ctx context.Context, recipientID, id string) error
}

// =============================================================================
// REQUEST SERVICE - Lifecycle orchestration
// =============================================================================

type RequestService struct {
	Requests      RequestStore
	Notifications NotificationStore
	Employees     EmployeeDirectory
	NewID         func() string
	Now           func() time.Time
}

func NewRequestService(requests RequestStore, notes NotificationStore, employees EmployeeDirectory) *RequestService {
	return &RequestService{
		Requests:      requests,
		Notifications: notes,
		Employees:     employees,
		NewID:         uuid.NewString,
		Now:           time.Now,
	}
}

// Submit validates r, stores it as pending and notifies the reviewers.
// ID, status and timestamps are assigned here; the corresponding fields
// of r are ignored.
func (s *RequestService) Submit(ctx context.Context, r Request) (Request, error) {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	owner, err := s.Employees.Employee(ctx, r.OwnerID)
	if err != nil {
		return Request{}, err
	}

	now := s.now().UTC()
	r.ID = s.newID()
	r.Status = RequestPending
	r.ReviewedBy, r.ReviewedAt, r.RejectionReason = "", nil, ""
	r.CreatedAt, r.UpdatedAt = now, now

	if err := s.Requests.SaveRequest(ctx, r); err != nil {
		return Request{}, fmt.Errorf("save request: %w", err)
	}

	employees, err := s.Employees.ListEmployees(ctx)
	if err != nil {
		return r, fmt.Errorf("list reviewers: %w", err)
	}
	var notes []Notification
	for _, e := range employees {
		if !e.Role.CanReview() || e.ID == owner.ID {
			continue
		}
		notes = append(notes, s.notification(e.ID, NotifyRequestCreated, r, owner.Name, now))
	}
	if err := s.notify(ctx, notes); err != nil {
		return r, err
	}
	return r, nil
}

// List returns the requests viewerID may see: all of them for reviewers,
// otherwise the viewer's own. Newest first.
func (s *RequestService) List(ctx context.Context, viewerID string) ([]Request, error) {
	viewer, err := s.Employees.Employee(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.Role.CanReview() {
		return s.Requests.ListRequests(ctx, "")
	}
	return s.Requests.ListRequests(ctx, viewerID)
}

// Pending returns every pending request, newest first.
func (s *RequestService) Pending(ctx context.Context) ([]Request, error) {
	all, err := s.Requests.ListRequests(ctx, "")
	if err != nil {
		return nil, err
	}
	pending := make([]Request, 0, len(all))
	for _, r := range all {
		if r.Status == RequestPending {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// Approve decides a pending request in the requester's favour.
func (s *RequestService) Approve(ctx context.Context, id, reviewerID string) (Request, error) {
	return s.decide(ctx, id, reviewerID, RequestApproved, "")
}

// Reject turns down a pending request with an optional reason.
func (s *RequestService) Reject(ctx context.Context, id, reviewerID, reason string) (Request, error) {
	return s.decide(ctx, id, reviewerID, RequestRejected, strings.TrimSpace(reason))
}

func (s *RequestService) decide(ctx context.Context, id, reviewerID string, status RequestStatus, reason string) (Request, error) {
	reviewer, err := s.Employees.Employee(ctx, reviewerID)
	if err != nil {
		return Request{}, err
	}
	if !reviewer.Role.CanReview() {
		return Request{}, fmt.Errorf("employee %s is not a reviewer: %w", reviewerID, generic.ErrForbidden)
	}

	r, err := s.pending(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if r.OwnerID == reviewer.ID {
		return Request{}, fmt.Errorf("employee %s cannot decide own request: %w", reviewerID, generic.ErrForbidden)
	}

	now := s.now().UTC()
	r.Status = status
	r.ReviewedBy = reviewer.ID
	r.ReviewedAt = &now
	r.RejectionReason = reason
	r.UpdatedAt = now
	if err := s.Requests.SaveRequest(ctx, r); err != nil {
		return Request{}, fmt.Errorf("save request: %w", err)
	}

	code := NotifyRequestApproved
	if status == RequestRejected {
		code = NotifyRequestRejected
	}
	if err := s.notify(ctx, []Notification{s.notification(r.OwnerID, code, r, reviewer.Name, now)}); err != nil {
		return r, err
	}
	return r, nil
}

// Cancel withdraws a pending request. Only its owner may cancel it.
func (s *RequestService) Cancel(ctx context.Context, id, ownerID string) (Request, error) {
	r, err := s.pending(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if r.OwnerID != ownerID {
		return Request{}, fmt.Errorf("request %s belongs to another employee: %w", id, generic.ErrForbidden)
	}

	r.Status = RequestCancelled
	r.UpdatedAt = s.now().UTC()
	if err := s.Requests.SaveRequest(ctx, r); err != nil {
		return Request{}, fmt.Errorf("save request: %w", err)
	}
	return r, nil
}

// Inbox returns the recipient's unread notifications.
func (s *RequestService) Inbox(ctx context.Context, recipientID string) ([]Notification, error) {
	if _, err := s.Employees.Employee(ctx, recipientID); err != nil {
		return nil, err
	}
	return s.Notifications.UnreadNotifications(ctx, recipientID)
}

// MarkRead marks one of the recipient's notifications as read.
func (s *RequestService) MarkRead(ctx context.Context, recipientID, id string) error {
	return s.Notifications.MarkNotificationRead(ctx, recipientID, id)
}

func (s *RequestService) pending(ctx context.Context, id string) (Request, error) {
	r, err := s.Requests.Request(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if r.Status != RequestPending {
		return Request{}, fmt.Errorf("request %s is %s: %w", id, r.Status, generic.ErrRequestNotPending)
	}
	return *r, nil
}

func (s *RequestService) notification(recipientID string, code NotificationCode, r Request, actor string, at time.Time) Notification {
	return Notification{
		ID:          s.newID(),
		RecipientID: recipientID,
		Code:        code,
		RequestID:   r.ID,
		RequestType: r.Type,
		ActorName:   actor,
		CreatedAt:   at,
	}
}

func (s *RequestService) notify(ctx context.Context, notes []Notification) error {
	if len(notes) == 0 || s.Notifications == nil {
		return nil
	}
	if err := s.Notifications.AddNotifications(ctx, notes); err != nil {
		return fmt.Errorf("add notifications: %w", err)
	}
	return nil
}

func (s *RequestService) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

func (s *RequestService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
