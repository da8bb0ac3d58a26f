package types

import "time"

// Period is a half-open date range [Start, End) used for reporting.
// Aggregates over a Period include transactions with Start <= date < End.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod returns a Period with both bounds normalized to UTC.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: start.In(time.UTC), End: end.In(time.UTC)}
}

// Contains reports whether the time instant is in the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// IsZero reports whether both bounds are the zero value.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Days returns the number of whole days the period spans.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}
