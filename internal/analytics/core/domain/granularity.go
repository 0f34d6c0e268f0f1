package domain

import "time"

// Granularity is a time-series bucket width.
type Granularity int

const (
	Hour Granularity = iota
	Day
	Week
	Month
)

var Granularities = []Granularity{Hour, Day, Week, Month}

func (g Granularity) String() string {
	switch g {
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return "unknown"
	}
}

func ParseGranularity(s string) (Granularity, bool) {
	for _, g := range Granularities {
		if g.String() == s {
			return g, true
		}
	}
	return 0, false
}

// Truncate returns the start of the bucket containing t, in loc. Weeks start
// on the Monday of the ISO week.
func (g Granularity) Truncate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	y, m, d := t.Date()
	switch g {
	case Hour:
		return truncateHour(t)
	case Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// Next returns the start of the bucket following the one starting at b.
func (g Granularity) Next(b time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	b = b.In(loc)
	y, m, d := b.Date()
	switch g {
	case Hour:
		return truncateHour(b.Add(time.Hour))
	case Week:
		return time.Date(y, m, d+7, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	}
}

// truncateHour drops minutes and seconds in t's own offset. Both occurrences
// of a repeated wall-clock hour at a DST fall-back keep their own bucket.
func truncateHour(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Minute())*time.Minute -
		time.Duration(t.Second())*time.Second -
		time.Duration(t.Nanosecond()))
}

// SeriesSelection picks the message series to materialize. An empty Channels
// list selects every channel.
type SeriesSelection struct {
	Channels        []string
	AllMessages     bool
	DeletedMessages bool
	Actors          []string
}
