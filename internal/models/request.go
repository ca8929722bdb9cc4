package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

type CalendarRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"departDate"`
	Passengers  int    `json:"passengers"`
}

// Window is the span of days around the anchor date a calendar covers.
type Window struct {
	BeforeDays int
	AfterDays  int
}

func (w Window) TotalDays() int {
	return w.BeforeDays + w.AfterDays + 1
}

func (r *CalendarRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(r.DepartDate) == "" {
		missing = append(missing, "departDate")
	}
	if len(missing) > 0 {
		return ValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))

	if r.Origin == r.Destination {
		return ErrSameRoute
	}
	if _, err := time.Parse(DateLayout, r.DepartDate); err != nil {
		return ErrInvalidDate
	}
	if r.Passengers <= 0 {
		r.Passengers = 1
	}
	return nil
}

// AnchorDate parses the departure date. Validate must have succeeded first.
func (r *CalendarRequest) AnchorDate() (time.Time, error) {
	return time.Parse(DateLayout, r.DepartDate)
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrSameRoute   ValidationError = "origin and destination must differ"
	ErrInvalidDate ValidationError = "departDate must be a valid YYYY-MM-DD date"
)
