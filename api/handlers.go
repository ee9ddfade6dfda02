/*
handlers.go - HTTP API handlers for the hour bank

PURPOSE:
  Exposes the time-accounting queries, the punch ledger and the request
  workflow via REST API. Handles HTTP request/response, JSON serialization,
  and delegates to timesheet.Service (reads), timesheet.PunchLedger
  (writes) and timesheet.RequestService (requests and notifications).

ENDPOINTS:
  Employees:
    GET    /api/employees                        List all employees
    POST   /api/employees                        Create employee
    GET    /api/employees/{id}                   Get employee details

  Queries (optional ?at=RFC3339 evaluates as of that instant):
    GET    /api/employees/{id}/hour-bank         Month-to-date balance
    GET    /api/employees/{id}/summary           Weekly/monthly/average hours, punctuality
    GET    /api/employees/{id}/period-summary    ?period=day|week|month
    GET    /api/employees/{id}/alerts            Localised by Accept-Language

  Punches:
    GET    /api/employees/{id}/punches           ?startDate&endDate, or the latest ?limit
    POST   /api/employees/{id}/punches           Register a punch

  Schedules:
    GET    /api/employees/{id}/schedule          null when the default applies
    PUT    /api/employees/{id}/schedule          Upsert
    GET    /api/schedules                        All stored schedules

  Requests:
    GET    /api/employees/{id}/requests          Own requests; all of them for managers
    POST   /api/employees/{id}/requests          Submit a request (notifies managers)
    GET    /api/requests/pending                 Pending requests, newest first
    POST   /api/requests/{requestId}/approve     {"reviewerId"}
    POST   /api/requests/{requestId}/reject      {"reviewerId", "reason"}
    POST   /api/requests/{requestId}/cancel      {"employeeId"}

  Notifications:
    GET    /api/employees/{id}/notifications     Unread, localised by Accept-Language
    POST   /api/employees/{id}/notifications/{notificationId}/read

  Reports:
    GET    /api/reports?startDate&endDate[&employeeId][&format=xlsx]

  Scenarios:
    GET    /api/scenarios                        List demo scenarios
    GET    /api/scenarios/current                Currently loaded scenario
    POST   /api/scenarios/load                   Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed input, end date before start date
  - 403: Deciding without the manager role, or another employee's request
  - 404: Employee, request or notification not found
  - 409: Duplicate punch ID, request no longer pending
  - 500: Internal errors (logged with the request ID)

SECURITY NOTE:
  No authentication. The acting employee is named in the path or body and
  trusted; roles only gate the request workflow.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/hourbank/export"
	"github.com/warp/hourbank/factory"
	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/timesheet"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is everything the HTTP layer reads and writes. Both store/sqlite
// and store/memory satisfy it.
type Store interface {
	timesheet.PunchStore
	timesheet.ScheduleSource
	timesheet.EmployeeDirectory
	timesheet.RequestStore
	timesheet.NotificationStore

	AppendPunches(ctx context.Context, punches []timesheet.Punch) error
	SaveSchedule(ctx context.Context, ws timesheet.WorkSchedule) error
	ListSchedules(ctx context.Context) ([]timesheet.WorkSchedule, error)
	SaveEmployee(ctx context.Context, e timesheet.Employee) error
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      Store
	Service    *timesheet.Service
	Ledger     *timesheet.PunchLedger
	Requests   *timesheet.RequestService
	Translator *i18n.Translator
	Logger     *zap.Logger

	// Now is the clock used when a query carries no ?at parameter.
	Now func() time.Time

	// Track currently loaded scenario
	scenarioMu      sync.Mutex
	currentScenario string
}

// NewHandler wires the service and ledger over store. A nil translator
// leaves alert messages and report headers in English.
func NewHandler(store Store, cal timesheet.Calendar, tr *i18n.Translator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:      store,
		Service:    timesheet.NewService(cal, store, store, store),
		Ledger:     timesheet.NewPunchLedger(store),
		Requests:   timesheet.NewRequestService(store, store, store),
		Translator: tr,
		Logger:     logger,
		Now:        time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

// ListEmployees returns all employees sorted by name.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates (or replaces) an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.writeDomainError(w, r, "Invalid employee", generic.Malformed("name", "", "required"))
		return
	}

	role, err := timesheet.ParseRole(req.Role)
	if err != nil {
		h.writeDomainError(w, r, "Invalid employee", err)
		return
	}

	emp := timesheet.Employee{
		ID:        req.ID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Role:      role,
		CreatedAt: h.now().UTC(),
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		h.writeDomainError(w, r, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.Employee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Employee not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// =============================================================================
// QUERY ENDPOINTS
// =============================================================================

// GetHourBank returns the month-to-date balance and current-week hours.
func (h *Handler) GetHourBank(w http.ResponseWriter, r *http.Request) {
	id, at, ok := h.employeeQuery(w, r)
	if !ok {
		return
	}

	hb, err := h.Service.HourBank(r.Context(), id, at)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute hour bank", err)
		return
	}
	writeJSON(w, http.StatusOK, toHourBankDTO(hb))
}

// GetSummary returns the dashboard statistics over the latest punches.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, at, ok := h.employeeQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Summary(r.Context(), id, at)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkSummaryDTO(summary))
}

// GetPeriodSummary returns worked vs expected hours for the full day, week
// or month containing ?at (default: now).
func (h *Handler) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	id, at, ok := h.employeeQuery(w, r)
	if !ok {
		return
	}

	kind := generic.PeriodKind(r.URL.Query().Get("period"))
	switch kind {
	case "":
		kind = generic.PeriodMonth
	case generic.PeriodDay, generic.PeriodWeek, generic.PeriodMonth:
	default:
		h.writeDomainError(w, r, "Invalid period", generic.Malformed("period", string(kind), "expected day, week or month"))
		return
	}

	summary, err := h.Service.PeriodSummary(r.Context(), id, kind, at)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute period summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodSummaryDTO(string(kind), summary))
}

// GetAlerts evaluates the alert rules. Messages follow Accept-Language.
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	id, at, ok := h.employeeQuery(w, r)
	if !ok {
		return
	}

	alerts, err := h.Service.Alerts(r.Context(), id, at)
	if err != nil {
		h.writeDomainError(w, r, "Failed to evaluate alerts", err)
		return
	}
	if h.Translator != nil {
		alerts = h.Translator.Alerts(r.Context(), alerts)
	}
	writeJSON(w, http.StatusOK, toAlertDTOs(alerts))
}

// employeeQuery resolves the {id} path parameter to an existing employee
// and the evaluation instant. It writes the error response itself.
func (h *Handler) employeeQuery(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.Employee(r.Context(), id); err != nil {
		h.writeDomainError(w, r, "Employee not found", err)
		return "", time.Time{}, false
	}

	at := h.now()
	if s := r.URL.Query().Get("at"); s != "" {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			h.writeDomainError(w, r, "Invalid query", generic.Malformed("at", s, "expected RFC 3339 timestamp"))
			return "", time.Time{}, false
		}
		at = t
	}
	return id, at, true
}

// =============================================================================
// PUNCH ENDPOINTS
// =============================================================================

// ListPunches returns punches between ?startDate and ?endDate (ascending),
// or the latest ?limit punches (newest first, default 30).
func (h *Handler) ListPunches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if _, err := h.Store.Employee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Employee not found", err)
		return
	}

	q := r.URL.Query()
	var (
		punches []timesheet.Punch
		err     error
	)
	if q.Get("startDate") != "" || q.Get("endDate") != "" {
		period, perr := h.dateRange(q.Get("startDate"), q.Get("endDate"))
		if perr != nil {
			h.writeDomainError(w, r, "Invalid date range", perr)
			return
		}
		punches, err = h.Store.PunchesInRange(ctx, id, period.Start, period.End)
		punches = timesheet.SortAscending(punches)
	} else {
		limit := timesheet.DefaultRecentLimit
		if s := q.Get("limit"); s != "" {
			n, perr := strconv.Atoi(s)
			if perr != nil || n <= 0 {
				h.writeDomainError(w, r, "Invalid limit", generic.Malformed("limit", s, "expected a positive integer"))
				return
			}
			limit = n
		}
		punches, err = h.Store.RecentPunches(ctx, id, limit)
	}
	if err != nil {
		h.writeDomainError(w, r, "Failed to load punches", err)
		return
	}
	writeJSON(w, http.StatusOK, toPunchDTOs(punches))
}

// RegisterPunch appends an entry or exit punch. The body's userId may be
// omitted; when present it must match the path.
func (h *Handler) RegisterPunch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	p, err := factory.ParsePunch(body)
	if err != nil {
		h.writeDomainError(w, r, "Invalid punch", err)
		return
	}
	if p.OwnerID != "" && p.OwnerID != id {
		h.writeDomainError(w, r, "Invalid punch", generic.Malformed("userId", p.OwnerID, "does not match the path"))
		return
	}
	p.OwnerID = id
	if p.SourceIP == "" {
		p.SourceIP = clientIP(r)
	}

	if _, err := h.Store.Employee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Employee not found", err)
		return
	}

	registered, err := h.Ledger.Register(ctx, p)
	if err != nil {
		h.writeDomainError(w, r, "Failed to register punch", err)
		return
	}

	h.Logger.Info("punch registered",
		zap.String("employee_id", registered.OwnerID),
		zap.String("punch_id", registered.ID),
		zap.String("kind", string(registered.Kind)),
		zap.Time("at", registered.Timestamp),
	)
	writeJSON(w, http.StatusCreated, factory.PunchToJSON(registered))
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return strings.TrimSpace(xrip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// GetSchedule returns the stored schedule, or null when the default
// (Monday to Friday, 8 hours) applies.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if _, err := h.Store.Employee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Employee not found", err)
		return
	}

	ws, err := h.Store.Schedule(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load schedule", err)
		return
	}
	if ws == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, factory.ScheduleToJSON(*ws))
}

// PutSchedule creates or replaces the employee's schedule.
func (h *Handler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var sj factory.ScheduleJSON
	if err := decodeJSON(r, &sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if sj.UserID != "" && sj.UserID != id {
		h.writeDomainError(w, r, "Invalid schedule", generic.Malformed("userId", sj.UserID, "does not match the path"))
		return
	}
	sj.UserID = id

	ws, err := sj.ToSchedule()
	if err != nil {
		h.writeDomainError(w, r, "Invalid schedule", err)
		return
	}
	if _, err := h.Store.Employee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Employee not found", err)
		return
	}
	if err := h.Store.SaveSchedule(ctx, ws); err != nil {
		h.writeDomainError(w, r, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.ScheduleToJSON(ws))
}

// ListSchedules returns every stored schedule.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Store.ListSchedules(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list schedules", err)
		return
	}

	dtos := make([]factory.ScheduleJSON, len(schedules))
	for i, ws := range schedules {
		dtos[i] = factory.ScheduleToJSON(ws)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REPORT ENDPOINT
// =============================================================================

// GetReport returns one row per employee and day. Both dates are required
// and inclusive. format=xlsx streams a workbook instead of JSON.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate, endDate := q.Get("startDate"), q.Get("endDate")
	if startDate == "" || endDate == "" {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required", nil)
		return
	}
	first, err := parseDay("startDate", startDate)
	if err != nil {
		h.writeDomainError(w, r, "Invalid date range", err)
		return
	}
	last, err := parseDay("endDate", endDate)
	if err != nil {
		h.writeDomainError(w, r, "Invalid date range", err)
		return
	}

	rows, err := h.Service.Report(r.Context(), first, last, q.Get("employeeId"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to build report", err)
		return
	}

	switch q.Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, toReportRowDTOs(rows))
	case "xlsx":
		// Render fully before committing the status so a failure still
		// reaches the client as a JSON error.
		var buf bytes.Buffer
		headers := export.LocalizedHeaders(h.Translator, i18n.LocaleFromContext(r.Context()))
		if err := export.WriteReport(&buf, rows, headers); err != nil {
			h.writeDomainError(w, r, "Failed to render report", err)
			return
		}
		filename := fmt.Sprintf("report-%s-%s.xlsx", first, last)
		w.Header().Set("Content-Type", export.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			h.Logger.Warn("write xlsx report", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
		}
	default:
		h.writeDomainError(w, r, "Invalid format", generic.Malformed("format", q.Get("format"), "expected json or xlsx"))
	}
}

// dateRange parses optional YYYY-MM-DD bounds into full local days. A
// missing bound takes the other's value.
func (h *Handler) dateRange(startDate, endDate string) (generic.Period, error) {
	if startDate == "" {
		startDate = endDate
	}
	if endDate == "" {
		endDate = startDate
	}
	first, err := parseDay("startDate", startDate)
	if err != nil {
		return generic.Period{}, err
	}
	last, err := parseDay("endDate", endDate)
	if err != nil {
		return generic.Period{}, err
	}
	period := generic.DayPeriod(first, last, h.Service.Calendar.Zone())
	if err := period.Validate(); err != nil {
		return generic.Period{}, err
	}
	return period, nil
}

func parseDay(field, s string) (generic.Day, error) {
	d, err := generic.ParseDay(s)
	if err != nil {
		return generic.Day{}, generic.Malformed(field, s, "expected YYYY-MM-DD")
	}
	return d, nil
}

// =============================================================================
// REQUEST ENDPOINTS
// =============================================================================

// ListRequests returns the requests {id} may see, newest first.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to list requests", err)
		return
	}
	h.writeRequests(w, r, requests)
}

// ListPendingRequests returns every request awaiting a decision.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.Pending(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list requests", err)
		return
	}
	h.writeRequests(w, r, requests)
}

// SubmitRequest files a request on behalf of {id}.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req, err := factory.ParseRequest(body)
	if err != nil {
		h.writeDomainError(w, r, "Invalid request", err)
		return
	}
	if req.OwnerID != "" && req.OwnerID != id {
		h.writeDomainError(w, r, "Invalid request", generic.Malformed("userId", req.OwnerID, "does not match the path"))
		return
	}
	req.OwnerID = id

	submitted, err := h.Requests.Submit(ctx, req)
	if err != nil {
		h.writeDomainError(w, r, "Failed to submit request", err)
		return
	}

	h.Logger.Info("request submitted",
		zap.String("employee_id", submitted.OwnerID),
		zap.String("request_id", submitted.ID),
		zap.String("type", string(submitted.Type)),
	)
	h.writeRequest(w, r, http.StatusCreated, submitted)
}

// ApproveRequest approves a pending request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !h.decodeReview(w, r, &req) {
		return
	}
	decided, err := h.Requests.Approve(r.Context(), chi.URLParam(r, "requestId"), req.ReviewerID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to approve request", err)
		return
	}
	h.Logger.Info("request approved", zap.String("request_id", decided.ID), zap.String("reviewer_id", req.ReviewerID))
	h.writeRequest(w, r, http.StatusOK, decided)
}

// RejectRequest rejects a pending request with an optional reason.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !h.decodeReview(w, r, &req) {
		return
	}
	decided, err := h.Requests.Reject(r.Context(), chi.URLParam(r, "requestId"), req.ReviewerID, req.Reason)
	if err != nil {
		h.writeDomainError(w, r, "Failed to reject request", err)
		return
	}
	h.Logger.Info("request rejected", zap.String("request_id", decided.ID), zap.String("reviewer_id", req.ReviewerID))
	h.writeRequest(w, r, http.StatusOK, decided)
}

// CancelRequest withdraws the caller's own pending request.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		h.writeDomainError(w, r, "Invalid request", generic.Malformed("employeeId", "", "required"))
		return
	}
	cancelled, err := h.Requests.Cancel(r.Context(), chi.URLParam(r, "requestId"), req.EmployeeID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to cancel request", err)
		return
	}
	h.writeRequest(w, r, http.StatusOK, cancelled)
}

func (h *Handler) decodeReview(w http.ResponseWriter, r *http.Request, req *ReviewRequest) bool {
	if err := decodeJSON(r, req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if req.ReviewerID == "" {
		h.writeDomainError(w, r, "Invalid request", generic.Malformed("reviewerId", "", "required"))
		return false
	}
	return true
}

func (h *Handler) writeRequest(w http.ResponseWriter, r *http.Request, status int, req timesheet.Request) {
	dtos, err := h.requestDTOs(r.Context(), []timesheet.Request{req})
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employees", err)
		return
	}
	writeJSON(w, status, dtos[0])
}

func (h *Handler) writeRequests(w http.ResponseWriter, r *http.Request, requests []timesheet.Request) {
	dtos, err := h.requestDTOs(r.Context(), requests)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employees", err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// requestDTOs attaches each requester's name and email.
func (h *Handler) requestDTOs(ctx context.Context, requests []timesheet.Request) ([]RequestDTO, error) {
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]timesheet.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	out := make([]RequestDTO, len(requests))
	for i, req := range requests {
		out[i] = toRequestDTO(req, byID[req.OwnerID])
	}
	return out, nil
}

// =============================================================================
// NOTIFICATION ENDPOINTS
// =============================================================================

// ListNotifications returns {id}'s unread notifications in the request locale.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notes, err := h.Requests.Inbox(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load notifications", err)
		return
	}

	out := make([]NotificationDTO, len(notes))
	for i, n := range notes {
		title, message := string(n.Code), ""
		if h.Translator != nil {
			title, message = h.Translator.Notification(ctx, n)
		}
		out[i] = toNotificationDTO(n, title, message)
	}
	writeJSON(w, http.StatusOK, out)
}

// MarkNotificationRead flags one of {id}'s notifications as read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.Requests.MarkRead(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "notificationId"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to mark notification", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

// writeDomainError maps engine and store errors to HTTP status codes.
// Unexpected errors are logged; client errors are not.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var (
		status int
		code   string
	)
	switch {
	case generic.IsClientError(err):
		status, code = http.StatusBadRequest, "invalid_input"
	case generic.IsNotFound(err):
		status, code = http.StatusNotFound, "not_found"
	case generic.IsForbidden(err):
		status, code = http.StatusForbidden, "forbidden"
	case generic.IsConflict(err):
		status, code = http.StatusConflict, "conflict"
	default:
		status, code = http.StatusInternalServerError, "internal"
		h.Logger.Error(message,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	}

	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
