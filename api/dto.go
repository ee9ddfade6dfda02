/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The query outputs
  keep the field names the existing clients already read (hour-bank,
  summary, alerts, report); the rest follow the same camelCase style.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Employee:   EmployeeDTO, CreateEmployeeRequest
  Queries:    HourBankDTO, WorkSummaryDTO, PeriodSummaryDTO, AlertDTO, ReportRowDTO
  Punches:    factory.PunchJSON (shared with the CLI and scenarios)
  Schedules:  factory.ScheduleJSON
  Requests:   factory.RequestJSON (in), RequestDTO, ReviewRequest, CancelRequest
  Inbox:      NotificationDTO
  Scenarios:  ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done by factory and the domain types, not in DTOs.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/: Punch, schedule and request JSON
*/
package api

import (
	"time"

	"github.com/warp/hourbank/factory"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateEmployeeRequest is the request body for creating an employee.
// ID is optional and generated when absent; Role defaults to employee.
type CreateEmployeeRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// HourBankDTO is the month-to-date balance. Values are hours.
type HourBankDTO struct {
	TotalWorkedHours float64 `json:"totalWorkedHours"`
	ExpectedHours    float64 `json:"expectedHours"`
	Balance          float64 `json:"balance"`
	WeeklyHours      float64 `json:"weeklyHours"`
	MonthlyBalance   float64 `json:"monthlyBalance"`
}

// WorkSummaryDTO holds the dashboard statistics.
type WorkSummaryDTO struct {
	WeeklyHours       float64 `json:"weeklyHours"`
	MonthlyHours      float64 `json:"monthlyHours"`
	AverageDailyHours float64 `json:"averageDailyHours"`
	PunctualityRate   int     `json:"punctualityRate"`
}

// PeriodSummaryDTO is worked vs expected hours over a full day, week or month.
type PeriodSummaryDTO struct {
	Period        string    `json:"period"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	WorkedHours   float64   `json:"workedHours"`
	ExpectedHours float64   `json:"expectedHours"`
	Balance       float64   `json:"balance"`
}

// AlertDTO is one alert. Type is the severity; Code is stable across locales.
type AlertDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ReportRowDTO is one employee-day of the attendance report.
type ReportRowDTO struct {
	Name       string `json:"name"`
	Date       string `json:"date"`
	Entry      string `json:"entry"`
	Exit       string `json:"exit"`
	TotalHours string `json:"totalHours"`
}

// RequestUserDTO identifies the requester inside a RequestDTO.
type RequestUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RequestDTO is a request with its requester. Dates are YYYY-MM-DD.
type RequestDTO struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	User            RequestUserDTO `json:"user"`
	Type            string         `json:"type"`
	Status          string         `json:"status"`
	StartDate       string         `json:"startDate"`
	EndDate         *string        `json:"endDate"`
	Days            int            `json:"days"`
	Reason          string         `json:"reason"`
	Attachment      string         `json:"attachment,omitempty"`
	ReviewedBy      string         `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewedAt,omitempty"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ReviewRequest is the body of approve and reject.
type ReviewRequest struct {
	ReviewerID string `json:"reviewerId"`
	Reason     string `json:"reason,omitempty"`
}

// CancelRequest is the body of cancel.
type CancelRequest struct {
	EmployeeID string `json:"employeeId"`
}

// NotificationDTO is an unread notification rendered in the request locale.
type NotificationDTO struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RequestID string    `json:"requestId"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request body for POST /api/scenarios/load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e timesheet.Employee) EmployeeDTO {
	role := e.Role
	if role == "" {
		role = timesheet.RoleEmployee
	}
	return EmployeeDTO{ID: e.ID, Name: e.Name, Email: e.Email, Role: string(role), CreatedAt: e.CreatedAt}
}

func toRequestDTO(r timesheet.Request, owner timesheet.Employee) RequestDTO {
	dto := RequestDTO{
		ID:              r.ID,
		UserID:          r.OwnerID,
		User:            RequestUserDTO{ID: r.OwnerID, Name: owner.Name, Email: owner.Email},
		Type:            string(r.Type),
		Status:          string(r.Status),
		StartDate:       r.StartDate.String(),
		Days:            r.Days(),
		Reason:          r.Reason,
		Attachment:      r.Attachment,
		ReviewedBy:      r.ReviewedBy,
		ReviewedAt:      r.ReviewedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.EndDate != nil {
		end := r.EndDate.String()
		dto.EndDate = &end
	}
	return dto
}

func toNotificationDTO(n timesheet.Notification, title, message string) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Code:      string(n.Code),
		Title:     title,
		Message:   message,
		RequestID: n.RequestID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func toHourBankDTO(hb timesheet.HourBank) HourBankDTO {
	return HourBankDTO{
		TotalWorkedHours: hb.TotalWorkedHours.Float64(),
		ExpectedHours:    hb.ExpectedHours.Float64(),
		Balance:          hb.Balance.Float64(),
		WeeklyHours:      hb.WeeklyHours.Float64(),
		MonthlyBalance:   hb.MonthlyBalance.Float64(),
	}
}

func toWorkSummaryDTO(s timesheet.WorkSummary) WorkSummaryDTO {
	return WorkSummaryDTO{
		WeeklyHours:       s.WeeklyHours.Float64(),
		MonthlyHours:      s.MonthlyHours.Float64(),
		AverageDailyHours: s.AverageDailyHours.Float64(),
		PunctualityRate:   s.PunctualityRate,
	}
}

func toPeriodSummaryDTO(kind string, s timesheet.PeriodSummary) PeriodSummaryDTO {
	return PeriodSummaryDTO{
		Period:        kind,
		Start:         s.Period.Start,
		End:           s.Period.End,
		WorkedHours:   s.WorkedHours.Float64(),
		ExpectedHours: s.ExpectedHours.Float64(),
		Balance:       s.BalanceHours.Float64(),
	}
}

func toAlertDTOs(alerts []timesheet.Alert) []AlertDTO {
	out := make([]AlertDTO, len(alerts))
	for i, a := range alerts {
		out[i] = AlertDTO{Type: string(a.Severity), Message: a.Message, Code: string(a.Code)}
	}
	return out
}

func toReportRowDTOs(rows []timesheet.ReportRow) []ReportRowDTO {
	out := make([]ReportRowDTO, len(rows))
	for i, r := range rows {
		out[i] = ReportRowDTO{
			Name:       r.Name,
			Date:       r.Date,
			Entry:      r.Entry,
			Exit:       r.Exit,
			TotalHours: r.TotalHours,
		}
	}
	return out
}

func toPunchDTOs(punches []timesheet.Punch) []factory.PunchJSON {
	out := make([]factory.PunchJSON, len(punches))
	for i, p := range punches {
		out[i] = factory.PunchToJSON(p)
	}
	return out
}
