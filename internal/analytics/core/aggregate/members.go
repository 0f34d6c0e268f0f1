package aggregate

import (
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
)

type memberBucket struct {
	count    int64
	countAt  time.Time
	hasCount bool
	joins    int64
	leaves   int64
}

// MemberSeriesAggregator buckets member-count and member-activity samples
// with the same granularities and gap-filling as message series.
type MemberSeriesAggregator struct {
	tracks map[domain.Granularity]*track[*memberBucket]
	window *DateWindow
	loc    *time.Location
}

func NewMemberSeriesAggregator(window *DateWindow, loc *time.Location) *MemberSeriesAggregator {
	a := &MemberSeriesAggregator{
		tracks: make(map[domain.Granularity]*track[*memberBucket], len(domain.Granularities)),
		window: window,
		loc:    loc,
	}
	for _, g := range domain.Granularities {
		a.tracks[g] = newTrack(g, loc, func() *memberBucket { return &memberBucket{} })
	}
	return a
}

// IngestCount keeps the latest member count sample of each bucket.
func (a *MemberSeriesAggregator) IngestCount(s domain.MemberCountSample) bool {
	widened := a.window.Observe(domain.DateOf(s.Timestamp, a.loc))
	for _, g := range domain.Granularities {
		b := a.tracks[g].bucket(s.Timestamp)
		if !b.hasCount || !s.Timestamp.Before(b.countAt) {
			b.count = s.TotalMembers
			b.countAt = s.Timestamp
			b.hasCount = true
		}
	}
	return widened
}

// IngestActivity counts one join or leave.
func (a *MemberSeriesAggregator) IngestActivity(s domain.MemberActivitySample) bool {
	widened := a.window.Observe(domain.DateOf(s.Timestamp, a.loc))
	for _, g := range domain.Granularities {
		b := a.tracks[g].bucket(s.Timestamp)
		if s.IsJoin {
			b.joins++
		} else {
			b.leaves++
		}
	}
	return widened
}

// Materialize returns the Member Count, Joins and Leaves series of g for
// buckets intersecting [from, to]. Buckets without a count sample carry the
// previous bucket's count forward.
func (a *MemberSeriesAggregator) Materialize(g domain.Granularity, from, to domain.Date) []domain.Series {
	t, ok := a.tracks[g]
	if !ok {
		return nil
	}
	out := []domain.Series{
		{Name: domain.SeriesMemberCount},
		{Name: domain.SeriesJoins},
		{Name: domain.SeriesLeaves},
	}

	// seed the carried count with the last sample before the window
	var carried int64
	start, end := windowBounds(from, to, a.loc)
	for _, key := range t.keys {
		b := t.buckets[key]
		if !time.Unix(key, 0).Before(start) {
			break
		}
		if b.hasCount {
			carried = b.count
		}
	}

	t.each(start, end, func(bucketStart time.Time, b *memberBucket) {
		if b.hasCount {
			carried = b.count
		}
		out[0].Points = append(out[0].Points, domain.SeriesPoint{Bucket: bucketStart, Value: carried})
		out[1].Points = append(out[1].Points, domain.SeriesPoint{Bucket: bucketStart, Value: b.joins})
		out[2].Points = append(out[2].Points, domain.SeriesPoint{Bucket: bucketStart, Value: b.leaves})
	})
	return out
}
