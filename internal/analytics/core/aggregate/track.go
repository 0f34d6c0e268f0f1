package aggregate

import (
	"slices"
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
)

// track is one granularity's ordered bucket map. Forward jumps insert empty
// buckets for every skipped step so the key sequence has no holes.
type track[V any] struct {
	gran     domain.Granularity
	loc      *time.Location
	newValue func() V

	buckets map[int64]V
	keys    []int64 // sorted bucket starts, unix seconds

	last    time.Time
	hasLast bool
}

func newTrack[V any](g domain.Granularity, loc *time.Location, newValue func() V) *track[V] {
	return &track[V]{
		gran:     g,
		loc:      loc,
		newValue: newValue,
		buckets:  make(map[int64]V),
	}
}

// bucket returns the bucket containing at, gap-filling forward from the last
// bucket seen. Earlier buckets are created on their own without back-filling.
func (t *track[V]) bucket(at time.Time) V {
	start := t.gran.Truncate(at, t.loc)

	if t.hasLast && start.After(t.last) {
		for gap := t.gran.Next(t.last, t.loc); gap.Before(start); gap = t.gran.Next(gap, t.loc) {
			t.ensure(gap)
		}
	}
	if !t.hasLast || start.After(t.last) {
		t.last = start
		t.hasLast = true
	}
	return t.ensure(start)
}

func (t *track[V]) ensure(start time.Time) V {
	key := start.Unix()
	if v, ok := t.buckets[key]; ok {
		return v
	}
	v := t.newValue()
	t.buckets[key] = v
	i, _ := slices.BinarySearch(t.keys, key)
	t.keys = slices.Insert(t.keys, i, key)
	return v
}

// each calls fn for every bucket whose span intersects [from, to), in order.
func (t *track[V]) each(from, to time.Time, fn func(start time.Time, v V)) {
	for _, key := range t.keys {
		start := time.Unix(key, 0).In(t.loc)
		if !start.Before(to) {
			break
		}
		if !t.gran.Next(start, t.loc).After(from) {
			continue
		}
		fn(start, t.buckets[key])
	}
}

// Keys returns the bucket starts in order.
func (t *track[V]) Keys() []time.Time {
	out := make([]time.Time, len(t.keys))
	for i, k := range t.keys {
		out[i] = time.Unix(k, 0).In(t.loc)
	}
	return out
}

// windowBounds converts a day range into the half-open instant range
// [from 00:00, day after to 00:00).
func windowBounds(from, to domain.Date, loc *time.Location) (time.Time, time.Time) {
	return from.Start(loc), to.AddDays(1).Start(loc)
}
