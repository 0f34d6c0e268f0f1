package aggregate

import (
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
)

// Point is one actor's message count inside a bucket. Deleted points are
// never merged: each deletion is its own point.
type Point struct {
	Actor   string
	Count   int64
	Deleted bool
}

type channelPoints map[string][]Point

// TimeSeriesAggregator keeps message counts at every granularity at once.
type TimeSeriesAggregator struct {
	tracks map[domain.Granularity]*track[channelPoints]
	window *DateWindow
	loc    *time.Location
}

func NewTimeSeriesAggregator(window *DateWindow, loc *time.Location) *TimeSeriesAggregator {
	a := &TimeSeriesAggregator{
		tracks: make(map[domain.Granularity]*track[channelPoints], len(domain.Granularities)),
		window: window,
		loc:    loc,
	}
	for _, g := range domain.Granularities {
		a.tracks[g] = newTrack(g, loc, func() channelPoints { return make(channelPoints) })
	}
	return a
}

// IngestMessage records m under its channel and sender.
func (a *TimeSeriesAggregator) IngestMessage(m domain.MessageRecord) bool {
	at := m.EventTime()
	widened := a.window.Observe(domain.DateOf(at, a.loc))
	a.Ingest(m.ChannelID, m.SenderID, m.IsDeleted(), at)
	return widened
}

// Ingest adds one message event to every granularity.
func (a *TimeSeriesAggregator) Ingest(channelID, actor string, deleted bool, at time.Time) {
	for _, g := range domain.Granularities {
		bucket := a.tracks[g].bucket(at)
		points := bucket[channelID]
		if deleted {
			bucket[channelID] = append(points, Point{Actor: actor, Count: 1, Deleted: true})
			continue
		}
		found := false
		for i := range points {
			if !points[i].Deleted && points[i].Actor == actor {
				points[i].Count++
				found = true
				break
			}
		}
		if !found {
			bucket[channelID] = append(points, Point{Actor: actor, Count: 1})
		}
	}
}

// Materialize folds the buckets of g that intersect [from, to] into the
// selected series. Every bucket yields a point, zero or not.
func (a *TimeSeriesAggregator) Materialize(g domain.Granularity, from, to domain.Date, sel domain.SeriesSelection) []domain.Series {
	t, ok := a.tracks[g]
	if !ok {
		return nil
	}

	channels := make(map[string]bool, len(sel.Channels))
	for _, ch := range sel.Channels {
		channels[ch] = true
	}
	actorIndex := make(map[string]int, len(sel.Actors))

	var out []domain.Series
	allIdx, delIdx := -1, -1
	if sel.AllMessages {
		allIdx = len(out)
		out = append(out, domain.Series{Name: domain.SeriesAllMessages})
	}
	if sel.DeletedMessages {
		delIdx = len(out)
		out = append(out, domain.Series{Name: domain.SeriesDeletedMessages})
	}
	for _, actor := range sel.Actors {
		if _, dup := actorIndex[actor]; dup {
			continue
		}
		actorIndex[actor] = len(out)
		out = append(out, domain.Series{Name: actor})
	}
	if len(out) == 0 {
		return out
	}

	start, end := windowBounds(from, to, a.loc)
	sums := make([]int64, len(out))
	t.each(start, end, func(bucketStart time.Time, bucket channelPoints) {
		clear(sums)
		for ch, points := range bucket {
			if len(channels) > 0 && !channels[ch] {
				continue
			}
			for _, p := range points {
				if p.Deleted {
					if delIdx >= 0 {
						sums[delIdx] += p.Count
					}
					continue
				}
				if allIdx >= 0 {
					sums[allIdx] += p.Count
				}
				if i, ok := actorIndex[p.Actor]; ok {
					sums[i] += p.Count
				}
			}
		}
		for i := range out {
			out[i].Points = append(out[i].Points, domain.SeriesPoint{Bucket: bucketStart, Value: sums[i]})
		}
	})
	return out
}

// Buckets returns the bucket starts of g in order.
func (a *TimeSeriesAggregator) Buckets(g domain.Granularity) []time.Time {
	return a.tracks[g].Keys()
}

// Points returns the raw points of one channel in the bucket starting at start.
func (a *TimeSeriesAggregator) Points(g domain.Granularity, start time.Time, channelID string) []Point {
	return a.tracks[g].buckets[start.Unix()][channelID]
}
