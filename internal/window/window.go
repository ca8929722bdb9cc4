// Package window plans the ordered set of calendar days a price calendar
// covers. Planning is pure date arithmetic; the only clock input is the
// caller-supplied "today", which keeps it deterministic under test.
package window

import (
	"time"

	"github.com/rkundra/farecalendar/internal/models"
)

// Day is one planned calendar date. Past marks dates too old to query;
// the scheduler resolves those to error records without a provider call.
type Day struct {
	Date   time.Time
	Offset int
	Past   bool
}

// Plan expands the anchor date into every date from anchor-before through
// anchor+after inclusive, in ascending order. Dates strictly earlier than
// yesterday are included but tagged Past.
func Plan(departDate string, w models.Window, today time.Time) ([]Day, error) {
	anchor, err := time.Parse(models.DateLayout, departDate)
	if err != nil {
		return nil, models.ErrInvalidDate
	}

	// Planned dates parse to UTC midnights, so the cutoff must too.
	yesterday := DateOnly(today).AddDate(0, 0, -1)

	days := make([]Day, 0, w.TotalDays())
	for offset := -w.BeforeDays; offset <= w.AfterDays; offset++ {
		date := anchor.AddDate(0, 0, offset)
		days = append(days, Day{
			Date:   date,
			Offset: offset,
			Past:   date.Before(yesterday),
		})
	}

	return days, nil
}

// DateOnly maps t to the UTC midnight of its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
