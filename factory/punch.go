/*
Package factory converts the JSON wire shapes into timesheet values.

PURPOSE:
  Decodes punches, work schedules and requests as clients and scenario files send
  them, applying defaults and validation once so that handlers, the CLI
  and demo loaders all agree on what a valid punch or schedule is.

JSON SCHEMA (punch):
  {
    "id": "optional, generated when absent",
    "userId": "emp-1",
    "type": "entry",              // or "kind"; "entry" | "exit"
    "createdAt": "2025-03-10T08:58:00Z",  // optional, defaults to now
    "latitude": -23.55,
    "longitude": -46.63,
    "ipAddress": "10.0.0.1"       // optional
  }

JSON SCHEMA (schedule):
  {
    "userId": "emp-1",
    "workDays": "1,2,3,4,5",
    "workHours": 8,
    "startTime": "09:00",
    "endTime": "18:00",
    "breakStart": "12:00",        // optional, with breakEnd
    "breakEnd": "13:00",
    "flexibleHours": false
  }

JSON SCHEMA (request):
  {
    "userId": "emp-1",            // or taken from the URL
    "type": "vacation",           // time_correction | absence | vacation | overtime
    "startDate": "2025-03-17",
    "endDate": "2025-03-21",      // required for vacation
    "reason": "Family trip",
    "attachment": "optional URL"
  }

ERRORS:
  Every decoding failure wraps generic.ErrMalformedInput.

SEE ALSO:
  - timesheet/punch.go, timesheet/schedule.go, timesheet/request.go: Domain types
  - api/handlers.go: HTTP callers
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/timesheet"
)

// =============================================================================
// PUNCH JSON
// =============================================================================

// PunchJSON is the JSON representation of a punch.
type PunchJSON struct {
	ID        string   `json:"id,omitempty"`
	UserID    string   `json:"userId,omitempty"`
	Type      string   `json:"type,omitempty"`
	Kind      string   `json:"kind,omitempty"` // alias of type
	CreatedAt string   `json:"createdAt,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IPAddress string   `json:"ipAddress,omitempty"`
}

// ParsePunch decodes a single punch.
func ParsePunch(data []byte) (timesheet.Punch, error) {
	var pj PunchJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return timesheet.Punch{}, fmt.Errorf("%w: invalid punch JSON: %v", generic.ErrMalformedInput, err)
	}
	return pj.ToPunch()
}

// ParsePunches decodes a JSON array of punches.
func ParsePunches(data []byte) ([]timesheet.Punch, error) {
	var list []PunchJSON
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: invalid punch list JSON: %v", generic.ErrMalformedInput, err)
	}
	punches := make([]timesheet.Punch, 0, len(list))
	for i, pj := range list {
		p, err := pj.ToPunch()
		if err != nil {
			return nil, fmt.Errorf("punch %d: %w", i, err)
		}
		punches = append(punches, p)
	}
	return punches, nil
}

// ToPunch converts to the domain type. ID and Timestamp may come back
// empty; the ledger fills them in. Coordinates are required.
func (pj PunchJSON) ToPunch() (timesheet.Punch, error) {
	kindStr := pj.Type
	if kindStr == "" {
		kindStr = pj.Kind
	}
	kind, err := timesheet.ParseKind(kindStr)
	if err != nil {
		return timesheet.Punch{}, err
	}
	if pj.Latitude == nil {
		return timesheet.Punch{}, generic.Malformed("latitude", "", "required")
	}
	if pj.Longitude == nil {
		return timesheet.Punch{}, generic.Malformed("longitude", "", "required")
	}

	var ts time.Time
	if pj.CreatedAt != "" {
		ts, err = time.Parse(time.RFC3339Nano, pj.CreatedAt)
		if err != nil {
			return timesheet.Punch{}, generic.Malformed("createdAt", pj.CreatedAt, "expected RFC 3339 timestamp")
		}
		ts = ts.UTC()
	}

	return timesheet.Punch{
		ID:        pj.ID,
		OwnerID:   pj.UserID,
		Kind:      kind,
		Timestamp: ts,
		Location:  timesheet.Location{Latitude: *pj.Latitude, Longitude: *pj.Longitude},
		SourceIP:  pj.IPAddress,
	}, nil
}

// PunchToJSON is the inverse of ToPunch.
func PunchToJSON(p timesheet.Punch) PunchJSON {
	lat, lon := p.Location.Latitude, p.Location.Longitude
	return PunchJSON{
		ID:        p.ID,
		UserID:    p.OwnerID,
		Type:      string(p.Kind),
		CreatedAt: p.Timestamp.UTC().Format(time.RFC3339Nano),
		Latitude:  &lat,
		Longitude: &lon,
		IPAddress: p.SourceIP,
	}
}
