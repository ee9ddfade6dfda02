package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// REQUEST JSON
// =============================================================================

// RequestJSON is the JSON representation of a request submission.
// Dates are YYYY-MM-DD; a full RFC 3339 timestamp is cut to its own date.
type RequestJSON struct {
	UserID     string `json:"userId,omitempty"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate,omitempty"`
	Reason     string `json:"reason"`
	Attachment string `json:"attachment,omitempty"`
}

// ParseRequest decodes and validates a submission.
func ParseRequest(data []byte) (timesheet.Request, error) {
	var rj RequestJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return timesheet.Request{}, fmt.Errorf("%w: invalid request JSON: %v", generic.ErrMalformedInput, err)
	}
	return rj.ToRequest()
}

// ToRequest converts and validates. Status and timestamps stay zero; the
// request service assigns them on submit.
func (rj RequestJSON) ToRequest() (timesheet.Request, error) {
	typ, err := timesheet.ParseRequestType(rj.Type)
	if err != nil {
		return timesheet.Request{}, err
	}
	if rj.StartDate == "" {
		return timesheet.Request{}, generic.Malformed("startDate", "", "required")
	}
	start, err := parseDate("startDate", rj.StartDate)
	if err != nil {
		return timesheet.Request{}, err
	}

	r := timesheet.Request{
		OwnerID:    rj.UserID,
		Type:       typ,
		StartDate:  start,
		Reason:     strings.TrimSpace(rj.Reason),
		Attachment: rj.Attachment,
	}
	if rj.EndDate != "" {
		end, err := parseDate("endDate", rj.EndDate)
		if err != nil {
			return timesheet.Request{}, err
		}
		r.EndDate = &end
	}
	if err := r.Validate(); err != nil {
		return timesheet.Request{}, err
	}
	return r, nil
}

func parseDate(field, s string) (generic.Day, error) {
	if d, err := generic.ParseDay(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return generic.Day{}, generic.Malformed(field, s, "expected YYYY-MM-DD")
	}
	return generic.DayOf(t, nil), nil
}
