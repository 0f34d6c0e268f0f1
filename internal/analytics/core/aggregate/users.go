package aggregate

import (
	"strings"
	"time"
	"unicode/utf8"

	"guild-analytics-service/internal/analytics/core/domain"
)

// UserStats are the counters of one user on one day (or a folded range).
type UserStats struct {
	DisplayName  string
	Username     string
	TotalMessage int64
	TotalWord    int64
	TotalChar    int64
	AverageWord  int64
	AverageChar  int64
	FirstSeen    time.Time
	LastSeen     time.Time
}

func (s UserStats) Clone() UserStats { return s }

func (s UserStats) Merge(o UserStats) UserStats {
	out := s
	out.TotalMessage += o.TotalMessage
	out.TotalWord += o.TotalWord
	out.TotalChar += o.TotalChar
	if o.FirstSeen.Before(out.FirstSeen) {
		out.FirstSeen = o.FirstSeen
	}
	if o.LastSeen.After(out.LastSeen) {
		out.LastSeen = o.LastSeen
		out.DisplayName = o.DisplayName
		out.Username = o.Username
	}
	out.recompute()
	return out
}

func (s *UserStats) recompute() {
	s.AverageWord, s.AverageChar = averages(s.TotalWord, s.TotalChar, s.TotalMessage)
}

// UserAggregator buckets message counters per user per day.
type UserAggregator struct {
	buckets *DayBuckets[string, UserStats]
	window  *DateWindow
	loc     *time.Location
}

func NewUserAggregator(window *DateWindow, loc *time.Location) *UserAggregator {
	return &UserAggregator{
		buckets: NewDayBuckets[string, UserStats](),
		window:  window,
		loc:     loc,
	}
}

// Ingest counts m against its sender. It returns true when the observed date
// span widened. Deletions carry no content and are not counted for users.
func (a *UserAggregator) Ingest(m domain.MessageRecord) bool {
	at := m.EventTime()
	day := domain.DateOf(at, a.loc)
	widened := a.window.Observe(day)
	if m.IsDeleted() {
		return widened
	}

	words, chars := textSize(m.Content)
	a.buckets.Upsert(day, m.SenderID,
		func() UserStats { return UserStats{FirstSeen: at, LastSeen: at} },
		func(s UserStats) UserStats {
			s.TotalMessage++
			s.TotalWord += words
			s.TotalChar += chars
			if at.Before(s.FirstSeen) {
				s.FirstSeen = at
			}
			if !at.Before(s.LastSeen) {
				s.LastSeen = at
				s.DisplayName = m.SenderDisplayName
				s.Username = m.SenderUsername
			}
			s.recompute()
			return s
		})
	return widened
}

// Materialize folds the days in [from, to] into one row per user.
func (a *UserAggregator) Materialize(from, to domain.Date) []domain.UserRow {
	entries := a.buckets.Fold(from, to)
	rows := make([]domain.UserRow, 0, len(entries))
	for _, e := range entries {
		s := e.Stats
		rows = append(rows, domain.UserRow{
			ID:           e.Key,
			DisplayName:  s.DisplayName,
			Username:     s.Username,
			TotalMessage: s.TotalMessage,
			TotalWord:    s.TotalWord,
			TotalChar:    s.TotalChar,
			AverageWord:  s.AverageWord,
			AverageChar:  s.AverageChar,
			FirstSeen:    s.FirstSeen,
			LastSeen:     s.LastSeen,
		})
	}
	return rows
}

// Day exposes the raw bucket of one user on one day.
func (a *UserAggregator) Day(day domain.Date, userID string) (UserStats, bool) {
	return a.buckets.Day(day, userID)
}

func textSize(content string) (words, chars int64) {
	return int64(len(strings.Fields(content))), int64(utf8.RuneCountInString(content))
}

func averages(words, chars, messages int64) (int64, int64) {
	if messages == 0 {
		return 0, 0
	}
	return words / messages, chars / messages
}
