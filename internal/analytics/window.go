package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow marks window resolution failures the caller should
// surface as a validation error rather than an internal one.
var ErrInvalidWindow = errors.New("invalid reporting window")

// Supported reporting periods.
const (
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodYear   = "year"
	PeriodCustom = "custom"
)

// Window is the half-open instant range [Start, End) a query operates over.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow maps a reporting period to concrete bounds. now is injected
// so resolution is deterministic. Custom windows parse ISO-8601 bounds and
// are validated against the plan's maximum span in days; built-in periods
// are bounded by construction and ignore the ceiling.
func ResolveWindow(period, customStart, customEnd string, now time.Time, maxCustomRangeDays int) (Window, error) {
	switch period {
	case PeriodToday:
		year, month, day := now.Date()
		return Window{Start: time.Date(year, month, day, 0, 0, 0, 0, now.Location()), End: now}, nil
	case PeriodWeek:
		return Window{Start: now.AddDate(0, 0, -7), End: now}, nil
	case PeriodMonth, "":
		return Window{Start: now.AddDate(0, -1, 0), End: now}, nil
	case PeriodYear:
		return Window{Start: now.AddDate(-1, 0, 0), End: now}, nil
	case PeriodCustom:
		return resolveCustomWindow(customStart, customEnd, maxCustomRangeDays)
	default:
		return Window{}, fmt.Errorf("%w: unsupported period %q (supported: today, week, month, year, custom)", ErrInvalidWindow, period)
	}
}

func resolveCustomWindow(customStart, customEnd string, maxRangeDays int) (Window, error) {
	start, err := parseDate(customStart)
	if err != nil {
		return Window{}, fmt.Errorf("%w: invalid start_date %q: %v", ErrInvalidWindow, customStart, err)
	}
	end, err := parseDate(customEnd)
	if err != nil {
		return Window{}, fmt.Errorf("%w: invalid end_date %q: %v", ErrInvalidWindow, customEnd, err)
	}

	if start.After(end) {
		return Window{}, fmt.Errorf("%w: start_date %s is after end_date %s", ErrInvalidWindow,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	if maxRangeDays > 0 {
		requestedDays := int(end.Sub(start) / (24 * time.Hour))
		if end.Sub(start)%(24*time.Hour) > 0 {
			requestedDays++
		}
		if requestedDays > maxRangeDays {
			return Window{}, fmt.Errorf("%w: requested range of %d days exceeds the plan maximum of %d days",
				ErrInvalidWindow, requestedDays, maxRangeDays)
		}
	}

	return Window{Start: start, End: end}, nil
}

// parseDate accepts full RFC 3339 timestamps and bare dates, which are
// read as midnight UTC.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
