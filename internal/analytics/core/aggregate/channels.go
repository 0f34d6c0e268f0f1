package aggregate

import (
	"maps"
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
)

// ChannelStats are the counters of one channel on one day (or a folded range).
type ChannelStats struct {
	TotalMessage   int64
	DeletedMessage int64
	TotalWord      int64
	TotalChar      int64
	AverageWord    int64
	AverageChar    int64
	FirstSeen      time.Time
	LastSeen       time.Time
	Users          map[string]struct{}
}

func newChannelStats(at time.Time) ChannelStats {
	return ChannelStats{FirstSeen: at, LastSeen: at, Users: make(map[string]struct{})}
}

func (s ChannelStats) Clone() ChannelStats {
	out := s
	out.Users = maps.Clone(s.Users)
	if out.Users == nil {
		out.Users = make(map[string]struct{})
	}
	return out
}

func (s ChannelStats) Merge(o ChannelStats) ChannelStats {
	out := s.Clone()
	out.TotalMessage += o.TotalMessage
	out.DeletedMessage += o.DeletedMessage
	out.TotalWord += o.TotalWord
	out.TotalChar += o.TotalChar
	if o.FirstSeen.Before(out.FirstSeen) {
		out.FirstSeen = o.FirstSeen
	}
	if o.LastSeen.After(out.LastSeen) {
		out.LastSeen = o.LastSeen
	}
	for u := range o.Users {
		out.Users[u] = struct{}{}
	}
	out.AverageWord, out.AverageChar = averages(out.TotalWord, out.TotalChar, out.TotalMessage)
	return out
}

// ChannelAggregator buckets message counters per channel per day. Rows are
// keyed by channel id only; names are resolved when materializing so a
// message may arrive before its channel is announced.
type ChannelAggregator struct {
	buckets *DayBuckets[string, ChannelStats]
	window  *DateWindow
	loc     *time.Location
}

func NewChannelAggregator(window *DateWindow, loc *time.Location) *ChannelAggregator {
	return &ChannelAggregator{
		buckets: NewDayBuckets[string, ChannelStats](),
		window:  window,
		loc:     loc,
	}
}

// Ingest counts m against its channel. Deletions count towards the deleted
// counter of the day they were deleted on.
func (a *ChannelAggregator) Ingest(m domain.MessageRecord) bool {
	at := m.EventTime()
	day := domain.DateOf(at, a.loc)
	widened := a.window.Observe(day)

	deleted := m.IsDeleted()
	words, chars := textSize(m.Content)
	a.buckets.Upsert(day, m.ChannelID,
		func() ChannelStats { return newChannelStats(at) },
		func(s ChannelStats) ChannelStats {
			if deleted {
				s.DeletedMessage++
			} else {
				s.TotalMessage++
				s.TotalWord += words
				s.TotalChar += chars
				s.Users[m.SenderID] = struct{}{}
			}
			if at.Before(s.FirstSeen) {
				s.FirstSeen = at
			}
			if at.After(s.LastSeen) {
				s.LastSeen = at
			}
			s.AverageWord, s.AverageChar = averages(s.TotalWord, s.TotalChar, s.TotalMessage)
			return s
		})
	return widened
}

// Materialize folds the days in [from, to] into one row per channel. Channels
// missing from names get a placeholder name and are returned as unresolved.
func (a *ChannelAggregator) Materialize(from, to domain.Date, names map[string]string) (rows []domain.ChannelRow, unresolved []string) {
	entries := a.buckets.Fold(from, to)
	rows = make([]domain.ChannelRow, 0, len(entries))
	for _, e := range entries {
		s := e.Stats
		name, ok := names[e.Key]
		if !ok {
			name = domain.ChannelPlaceholder(e.Key)
			unresolved = append(unresolved, e.Key)
		}
		rows = append(rows, domain.ChannelRow{
			ID:             e.Key,
			Name:           name,
			Resolved:       ok,
			TotalMessage:   s.TotalMessage,
			DeletedMessage: s.DeletedMessage,
			TotalWord:      s.TotalWord,
			TotalChar:      s.TotalChar,
			AverageWord:    s.AverageWord,
			AverageChar:    s.AverageChar,
			UniqueUsers:    int64(len(s.Users)),
			FirstSeen:      s.FirstSeen,
			LastSeen:       s.LastSeen,
		})
	}
	return rows, unresolved
}

// Day exposes the raw bucket of one channel on one day.
func (a *ChannelAggregator) Day(day domain.Date, channelID string) (ChannelStats, bool) {
	return a.buckets.Day(day, channelID)
}
