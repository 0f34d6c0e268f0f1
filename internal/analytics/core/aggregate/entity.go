package aggregate

import (
	"slices"

	"guild-analytics-service/internal/analytics/core/domain"
)

// Mergeable is implemented by per-day entity statistics. Merge must not
// modify either operand.
type Mergeable[S any] interface {
	Merge(other S) S
	Clone() S
}

// DayBuckets is a grow-only day -> entity -> stats map.
type DayBuckets[K comparable, S Mergeable[S]] struct {
	days map[domain.Date]map[K]S
	// first-sighting order of entity ids, used for stable output order
	order []K
	seen  map[K]struct{}
}

func NewDayBuckets[K comparable, S Mergeable[S]]() *DayBuckets[K, S] {
	return &DayBuckets[K, S]{
		days: make(map[domain.Date]map[K]S),
		seen: make(map[K]struct{}),
	}
}

// Upsert applies fn to the stats of key on day, creating them with init on
// first sight.
func (b *DayBuckets[K, S]) Upsert(day domain.Date, key K, init func() S, fn func(S) S) {
	bucket, ok := b.days[day]
	if !ok {
		bucket = make(map[K]S)
		b.days[day] = bucket
	}
	s, ok := bucket[key]
	if !ok {
		s = init()
	}
	bucket[key] = fn(s)

	if _, ok := b.seen[key]; !ok {
		b.seen[key] = struct{}{}
		b.order = append(b.order, key)
	}
}

// Entry is one folded entity.
type Entry[K comparable, S any] struct {
	Key   K
	Stats S
}

// Fold merges every day inside [from, to] into one entry per entity, in
// first-sighting order.
func (b *DayBuckets[K, S]) Fold(from, to domain.Date) []Entry[K, S] {
	days := make([]domain.Date, 0, len(b.days))
	for d := range b.days {
		if d.Within(from, to) {
			days = append(days, d)
		}
	}
	slices.SortFunc(days, domain.Date.Compare)

	merged := make(map[K]S)
	for _, d := range days {
		for k, s := range b.days[d] {
			if acc, ok := merged[k]; ok {
				merged[k] = acc.Merge(s)
			} else {
				merged[k] = s.Clone()
			}
		}
	}

	out := make([]Entry[K, S], 0, len(merged))
	for _, k := range b.order {
		if s, ok := merged[k]; ok {
			out = append(out, Entry[K, S]{Key: k, Stats: s})
		}
	}
	return out
}

// Day returns the raw stats of key on day.
func (b *DayBuckets[K, S]) Day(day domain.Date, key K) (S, bool) {
	s, ok := b.days[day][key]
	return s, ok
}

func (b *DayBuckets[K, S]) Len() int { return len(b.days) }
