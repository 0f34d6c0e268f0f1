package usecase_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guild-analytics-service/internal/analytics/core/aggregate"
	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/paging"
	"guild-analytics-service/internal/analytics/core/reload"
	"guild-analytics-service/internal/analytics/core/usecase"
)

const testPageSize = 2

// fakeSource serves in-memory streams page by page.
type fakeSource struct {
	mu         sync.Mutex
	messages   []domain.MessageRecord
	counts     []domain.MemberCountSample
	activities []domain.MemberActivitySample
	names      map[string]string

	// FailFn may fail a fetch; it is consulted before serving a page.
	FailFn func(kind domain.StreamKind, page uint64) error
	// gate, when set, holds message fetches until it is closed.
	gate chan struct{}
	// holds keeps single message pages back until their channel is closed.
	holds map[uint64]chan struct{}

	calls []paging.Request
}

func (f *fakeSource) record(kind domain.StreamKind, guildID string, page uint64, size int) error {
	f.mu.Lock()
	f.calls = append(f.calls, paging.Request{GuildID: guildID, Kind: kind, Page: page, Size: size})
	fail := f.FailFn
	f.mu.Unlock()
	if fail != nil {
		return fail(kind, page)
	}
	return nil
}

func (f *fakeSource) FetchMessages(ctx context.Context, guildID string, page uint64, size int) ([]domain.MessageRecord, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if hold, ok := f.holds[page]; ok {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.record(domain.StreamMessages, guildID, page, size); err != nil {
		return nil, err
	}
	return pageOf(f.messages, page, size), nil
}

func (f *fakeSource) FetchMemberCounts(ctx context.Context, guildID string, page uint64, size int) ([]domain.MemberCountSample, error) {
	if err := f.record(domain.StreamMemberCounts, guildID, page, size); err != nil {
		return nil, err
	}
	return pageOf(f.counts, page, size), nil
}

func (f *fakeSource) FetchMemberActivities(ctx context.Context, guildID string, page uint64, size int) ([]domain.MemberActivitySample, error) {
	if err := f.record(domain.StreamMemberActivities, guildID, page, size); err != nil {
		return nil, err
	}
	return pageOf(f.activities, page, size), nil
}

func (f *fakeSource) ChannelNames(ctx context.Context, guildID string, ids []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string)
	for id, name := range f.names {
		out[id] = name
	}
	return out, nil
}

func pageOf[T any](all []T, page uint64, size int) []T {
	start := int(page) * size
	if start >= len(all) {
		return nil
	}
	return all[start:min(start+size, len(all))]
}

// eventLog collects dispatched reload events.
type eventLog struct {
	mu     sync.Mutex
	events []reload.Event
}

func (l *eventLog) add(ev reload.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []reload.Kind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]reload.Kind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

// count returns how many events of kind were dispatched for guildID.
func (l *eventLog) count(guildID string, kind reload.Kind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.GuildID == guildID && ev.Kind == kind {
			n++
		}
	}
	return n
}

func msg(channel, sender, text string, ts time.Time) domain.MessageRecord {
	return domain.MessageRecord{
		GuildID:           "g1",
		ChannelID:         channel,
		MessageID:         fmt.Sprintf("%s-%d", sender, ts.UnixNano()),
		Timestamp:         ts,
		SenderID:          sender,
		SenderDisplayName: sender,
		SenderUsername:    sender,
		Content:           text,
		StrippedContent:   text,
	}
}

func may(d, h int) time.Time {
	return time.Date(2025, time.May, d, h, 0, 0, 0, time.UTC)
}

func sampleSource() *fakeSource {
	return &fakeSource{
		messages: []domain.MessageRecord{
			msg("c1", "u1", "hello world", may(1, 9)),
			msg("c1", "u2", "hello there", may(1, 10)),
			msg("c2", "u1", "good morning all", may(2, 8)),
			msg("c1", "u1", "hello world", may(5, 12)),
			msg("c2", "u3", "bye", may(5, 13)),
		},
		counts: []domain.MemberCountSample{
			{GuildID: "g1", Timestamp: may(1, 0), TotalMembers: 10},
			{GuildID: "g1", Timestamp: may(5, 0), TotalMembers: 12},
		},
		activities: []domain.MemberActivitySample{
			{GuildID: "g1", Timestamp: may(3, 10), IsJoin: true},
			{GuildID: "g1", Timestamp: may(4, 10), IsJoin: true},
		},
		names: map[string]string{"c1": "general", "c2": "random"},
	}
}

func startEngine(t *testing.T, src *fakeSource, opts ...usecase.Option) (*usecase.Engine, *eventLog) {
	t.Helper()
	return startEngineWith(t, src, usecase.EngineConfig{
		Location:     time.UTC,
		TickInterval: 5 * time.Millisecond,
		PageSize:     testPageSize,
	}, opts...)
}

func startEngineWith(t *testing.T, src *fakeSource, cfg usecase.EngineConfig, opts ...usecase.Option) (*usecase.Engine, *eventLog) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	events := &eventLog{}
	opts = append(opts, usecase.WithEventHook(events.add))
	e := usecase.NewEngine(src, src, log, cfg, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = e.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return e, events
}

// waitDone waits until every stream finished and the reloads they queued
// were dispatched.
func waitDone(t *testing.T, e *usecase.Engine, guildID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		st, err := e.Status(context.Background(), guildID)
		return err == nil && st.Done && st.PendingEvents == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func streamState(e *usecase.Engine, guildID string, kind domain.StreamKind) paging.State {
	st, err := e.Status(context.Background(), guildID)
	if err != nil {
		return paging.Idle
	}
	for _, s := range st.Streams {
		if s.Kind == kind {
			return s.State
		}
	}
	return paging.Idle
}

// ------------------------------------------------------------
// CONNECT
// ------------------------------------------------------------

func TestConnect_IngestsEveryStream(t *testing.T) {
	src := sampleSource()
	e, events := startEngine(t, src)
	ctx := context.Background()

	info, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, info.Resumed)
	waitDone(t, e, "g1")

	users, err := e.Users(ctx, usecase.TableInput{GuildID: "g1"})
	require.NoError(t, err)
	require.Len(t, users.Rows, 3)
	assert.Equal(t, "u1", users.Rows[0].ID)
	assert.Equal(t, int64(3), users.Rows[0].TotalMessage)
	assert.Equal(t, "2025-05-01", users.Window.From.String())
	assert.Equal(t, "2025-05-05", users.Window.To.String())

	st, err := e.Status(ctx, "g1")
	require.NoError(t, err)
	for _, s := range st.Streams {
		assert.Equal(t, paging.Done, s.State, s.Kind.String())
	}
	assert.Equal(t, int64(5), st.Streams[0].Ingested)
	assert.Empty(t, st.Warnings)

	assert.Equal(t, reload.GuildSelected, events.kinds()[0])
	assert.Contains(t, events.kinds(), reload.WindowChanged)

	again, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, again.Resumed)
	assert.Equal(t, info.SessionID, again.SessionID)
}

func TestConnect_FetchesFullPagesOnly(t *testing.T) {
	src := sampleSource()
	e, _ := startEngine(t, src)

	_, err := e.Connect(context.Background(), "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	src.mu.Lock()
	defer src.mu.Unlock()
	var pages []uint64
	for _, c := range src.calls {
		assert.Equal(t, testPageSize, c.Size)
		if c.Kind == domain.StreamMessages {
			pages = append(pages, c.Page)
		}
	}
	// 5 messages: two full pages and a short one
	assert.Equal(t, []uint64{0, 1, 2}, pages)
}

func TestConnect_SkipsRecordsOfOtherGuilds(t *testing.T) {
	src := sampleSource()
	src.messages[1].GuildID = "g2"
	e, _ := startEngine(t, src)

	_, err := e.Connect(context.Background(), "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	st, err := e.Status(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.Streams[0].Ingested)
}

func TestConnect_DropsInvalidRecordsAndContinues(t *testing.T) {
	src := sampleSource()
	noSender := msg("c1", "", "who said this", may(1, 11))
	// the invalid record fills page 0, so the stream must keep paging past it
	src.messages = append([]domain.MessageRecord{src.messages[0], noSender}, src.messages[1:]...)
	src.counts = append(src.counts, domain.MemberCountSample{GuildID: "g1", Timestamp: may(6, 0), TotalMembers: -3})

	e, _ := startEngine(t, src)
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	st, err := e.Status(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, paging.Done, st.Streams[0].State)
	assert.Equal(t, int64(5), st.Streams[0].Ingested)
	assert.Equal(t, int64(2), st.Streams[1].Ingested)
	assert.Empty(t, st.Warnings)

	users, err := e.Users(ctx, usecase.TableInput{GuildID: "g1"})
	require.NoError(t, err)
	assert.Len(t, users.Rows, 3)
}

func TestUnknownGuild(t *testing.T) {
	e, _ := startEngine(t, sampleSource())
	ctx := context.Background()

	_, err := e.Users(ctx, usecase.TableInput{GuildID: "nope"})
	assert.ErrorIs(t, err, usecase.ErrUnknownGuild)

	assert.ErrorIs(t, e.Reset(ctx, "nope"), usecase.ErrUnknownGuild)

	_, err = e.Connect(ctx, "")
	assert.ErrorIs(t, err, usecase.ErrInvalidGuild)
}

// ------------------------------------------------------------
// RESET
// ------------------------------------------------------------

func TestReset_DropsInFlightPages(t *testing.T) {
	src := sampleSource()
	src.gate = make(chan struct{})
	e, events := startEngine(t, src)
	ctx := context.Background()

	first, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	require.NoError(t, e.Reset(ctx, "g1"))

	second, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	// both sessions' first message page are released together
	close(src.gate)
	waitDone(t, e, "g1")

	users, err := e.Users(ctx, usecase.TableInput{GuildID: "g1"})
	require.NoError(t, err)
	var total int64
	for _, r := range users.Rows {
		total += r.TotalMessage
	}
	assert.Equal(t, int64(5), total)

	require.Eventually(t, func() bool {
		for _, k := range events.kinds() {
			if k == reload.SessionReset {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

// ------------------------------------------------------------
// STALLED STREAMS
// ------------------------------------------------------------

func TestMalformedPage_StallsUntilRetry(t *testing.T) {
	src := sampleSource()
	var once sync.Once
	src.FailFn = func(kind domain.StreamKind, page uint64) error {
		var err error
		if kind == domain.StreamMessages && page == 1 {
			once.Do(func() { err = fmt.Errorf("messages page 1: %w", domain.ErrMalformedPage) })
		}
		return err
	}
	e, _ := startEngine(t, src)
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return streamState(e, "g1", domain.StreamMessages) == paging.Stalled
	}, 2*time.Second, 5*time.Millisecond)

	st, err := e.Status(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, st.Warnings, 1)
	assert.Equal(t, "messages", st.Warnings[0].Stream)
	assert.Equal(t, uint64(1), st.Warnings[0].Page)
	assert.Contains(t, st.Warnings[0].Message, "could not be decoded")
	assert.Equal(t, int64(2), st.Streams[0].Ingested)

	assert.ErrorIs(t, e.RetryStream(ctx, "g1", domain.StreamMemberCounts), paging.ErrNotStalled)

	require.NoError(t, e.RetryStream(ctx, "g1", domain.StreamMessages))
	waitDone(t, e, "g1")

	st, err = e.Status(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), st.Streams[0].Ingested)
}

// ------------------------------------------------------------
// CHANNEL NAMES
// ------------------------------------------------------------

func TestChannels_PlaceholderThenAnnounce(t *testing.T) {
	src := sampleSource()
	src.names = nil
	e, _ := startEngine(t, src)
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	res, err := e.Channels(ctx, usecase.TableInput{GuildID: "g1", SortBy: "name", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "#c1", res.Rows[0].Name)
	assert.False(t, res.Rows[0].Resolved)

	require.NoError(t, e.AnnounceChannels(ctx, "g1", map[string]string{"c1": "general"}))
	require.Eventually(t, func() bool {
		res, err := e.Channels(ctx, usecase.TableInput{GuildID: "g1", SortBy: "name", Order: "asc"})
		return err == nil && res.Rows[1].Name == "general" && res.Rows[1].Resolved
	}, 2*time.Second, 5*time.Millisecond)
}

func TestChannels_ResolvedFromDirectory(t *testing.T) {
	src := sampleSource()
	e, _ := startEngine(t, src)
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	require.Eventually(t, func() bool {
		res, err := e.Channels(ctx, usecase.TableInput{GuildID: "g1", SortBy: "name", Order: "asc"})
		return err == nil && len(res.Rows) == 2 && res.Rows[0].Name == "general" && res.Rows[1].Name == "random"
	}, 2*time.Second, 5*time.Millisecond)

	res, err := e.Channels(ctx, usecase.TableInput{GuildID: "g1", SortBy: "messages", Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "c1", res.Rows[0].ID)
}

// ------------------------------------------------------------
// WINDOW
// ------------------------------------------------------------

func TestSetWindow_RematerializesViews(t *testing.T) {
	e, _ := startEngine(t, sampleSource())
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	from := domain.Date{Year: 2025, Month: time.May, Day: 3}
	w, err := e.SetWindow(ctx, usecase.WindowInput{GuildID: "g1", From: &from})
	require.NoError(t, err)
	assert.Equal(t, from, w.From)
	assert.Equal(t, "2025-05-01", w.Start.String())

	require.Eventually(t, func() bool {
		res, err := e.Users(ctx, usecase.TableInput{GuildID: "g1"})
		if err != nil || len(res.Rows) != 2 {
			return false
		}
		return res.Rows[0].TotalMessage == 1 && res.Rows[1].TotalMessage == 1
	}, 2*time.Second, 5*time.Millisecond)

	// to is clamped against from
	early := domain.Date{Year: 2025, Month: time.April, Day: 1}
	w, err = e.SetWindow(ctx, usecase.WindowInput{GuildID: "g1", To: &early})
	require.NoError(t, err)
	assert.Equal(t, from, w.To)
	assert.False(t, w.From.After(w.To))
}

// ------------------------------------------------------------
// PHRASES / SERIES / MEMBERS
// ------------------------------------------------------------

func TestPhrases_WindowSize(t *testing.T) {
	e, _ := startEngine(t, sampleSource())
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	res, err := e.Phrases(ctx, usecase.PhrasesInput{TableInput: usecase.TableInput{GuildID: "g1"}})
	require.NoError(t, err)
	assert.Equal(t, usecase.DefaultPhraseWindow, res.WindowSize)
	require.NotEmpty(t, res.Rows)
	assert.Equal(t, domain.PhraseRow{Phrase: "hello world", Hits: 2}, res.Rows[0])

	res, err = e.Phrases(ctx, usecase.PhrasesInput{TableInput: usecase.TableInput{GuildID: "g1", Limit: 1}, WindowSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.WindowSize)
	assert.Equal(t, []domain.PhraseRow{{Phrase: "hello", Hits: 3}}, res.Rows)

	_, err = e.Phrases(ctx, usecase.PhrasesInput{TableInput: usecase.TableInput{GuildID: "g1"}, WindowSize: 21})
	assert.ErrorIs(t, err, aggregate.ErrInvalidWindowSize)
}

func TestSeries_Selection(t *testing.T) {
	e, _ := startEngine(t, sampleSource())
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	res, err := e.Series(ctx, usecase.SeriesInput{
		GuildID:  "g1",
		Channels: []string{"c1"},
		Metrics:  []string{usecase.MetricAllMessages},
		Actors:   []string{"u2"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Day, res.Granularity)
	require.Len(t, res.Series, 2)

	all := res.Series[0]
	assert.Equal(t, domain.SeriesAllMessages, all.Name)
	require.Len(t, all.Points, 5)
	var got []int64
	for _, p := range all.Points {
		got = append(got, p.Value)
	}
	assert.Equal(t, []int64{2, 0, 0, 0, 1}, got)
	assert.Equal(t, "u2", res.Series[1].Name)

	_, err = e.Series(ctx, usecase.SeriesInput{GuildID: "g1", Metrics: []string{"reactions"}})
	assert.ErrorIs(t, err, usecase.ErrInvalidMetric)

	_, err = e.Series(ctx, usecase.SeriesInput{GuildID: "g1", Granularity: "decade"})
	assert.ErrorIs(t, err, usecase.ErrInvalidGranularity)
}

func TestMembers_Series(t *testing.T) {
	e, _ := startEngine(t, sampleSource())
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)
	waitDone(t, e, "g1")

	res, err := e.Members(ctx, usecase.MembersInput{GuildID: "g1"})
	require.NoError(t, err)
	require.Len(t, res.Series, 3)

	values := func(s domain.Series) []int64 {
		out := make([]int64, len(s.Points))
		for i, p := range s.Points {
			out[i] = p.Value
		}
		return out
	}
	sum := func(vs []int64) (n int64) {
		for _, v := range vs {
			n += v
		}
		return n
	}

	// count and activity pages interleave freely, so only the ends and the
	// totals are fixed
	counts := values(res.Series[0])
	require.NotEmpty(t, counts)
	assert.Equal(t, may(1, 0), res.Series[0].Points[0].Bucket)
	assert.Equal(t, int64(10), counts[0])
	assert.Equal(t, int64(12), counts[len(counts)-1])
	assert.Equal(t, int64(2), sum(values(res.Series[1])))
	assert.Equal(t, int64(0), sum(values(res.Series[2])))

	_, err = e.Users(ctx, usecase.TableInput{GuildID: "g1", Order: "sideways"})
	assert.ErrorIs(t, err, usecase.ErrInvalidSort)
}

// ------------------------------------------------------------
// RELOADS
// ------------------------------------------------------------

// sameDayMessages returns n messages that all fall on May 1, so only the
// first page widens the window.
func sameDayMessages(n int) []domain.MessageRecord {
	out := make([]domain.MessageRecord, n)
	for i := range out {
		out[i] = msg("c1", "u1", "hello world", may(1, 9).Add(time.Duration(i)*time.Minute))
	}
	return out
}

func TestReloadEvery_RefreshesViewsMidStream(t *testing.T) {
	cases := []struct {
		name        string
		reloadEvery int
		wantUsers   int
	}{
		{"threshold reached", testPageSize, 2},
		{"threshold not reached", 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hold1 := make(chan struct{})
			src := &fakeSource{
				messages: sameDayMessages(8),
				holds:    map[uint64]chan struct{}{1: hold1, 2: make(chan struct{})},
			}
			e, events := startEngineWith(t, src, usecase.EngineConfig{
				Location:     time.UTC,
				TickInterval: 5 * time.Millisecond,
				PageSize:     testPageSize,
				ReloadEvery:  tc.reloadEvery,
			})
			ctx := context.Background()

			settled := func(ingested int64) func() bool {
				return func() bool {
					st, err := e.Status(ctx, "g1")
					return err == nil && st.Streams[0].Ingested == ingested && st.PendingEvents == 0
				}
			}

			_, err := e.Connect(ctx, "g1")
			require.NoError(t, err)

			// page 0 widens the window
			require.Eventually(t, settled(2), 2*time.Second, 5*time.Millisecond)
			require.Equal(t, 1, events.count("g1", reload.Users))

			// page 1 leaves the window alone
			close(hold1)
			require.Eventually(t, settled(4), 2*time.Second, 5*time.Millisecond)
			assert.Equal(t, tc.wantUsers, events.count("g1", reload.Users))
			assert.Equal(t, paging.Awaiting, streamState(e, "g1", domain.StreamMessages))
		})
	}
}

func TestReloadEvents_CoalescedPerDrain(t *testing.T) {
	src := &fakeSource{messages: sameDayMessages(8)}
	ticks := make(chan time.Time)
	e, events := startEngineWith(t, src, usecase.EngineConfig{
		Location:    time.UTC,
		PageSize:    testPageSize,
		ReloadEvery: testPageSize,
	}, usecase.WithTicks(ticks))
	ctx := context.Background()

	_, err := e.Connect(ctx, "g1")
	require.NoError(t, err)

	// every message page queues view reloads; nothing drains without a tick
	require.Eventually(t, func() bool {
		st, err := e.Status(ctx, "g1")
		return err == nil && st.Done
	}, 2*time.Second, 5*time.Millisecond)
	st, err := e.Status(ctx, "g1")
	require.NoError(t, err)
	assert.Positive(t, st.PendingEvents)
	assert.Zero(t, events.count("g1", reload.Users))

	src.mu.Lock()
	var messagePages int
	for _, c := range src.calls {
		if c.Kind == domain.StreamMessages {
			messagePages++
		}
	}
	src.mu.Unlock()
	require.Equal(t, 5, messagePages)

	ticks <- time.Now()
	// Status runs on the engine goroutine after the drain finished
	_, err = e.Status(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, events.count("g1", reload.Users))
	assert.Equal(t, 1, events.count("g1", reload.Channels))
	assert.Equal(t, 1, events.count("g1", reload.Members))

	ticks <- time.Now()
	_, err = e.Status(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, events.count("g1", reload.Users))
}

// ------------------------------------------------------------
// LIFECYCLE
// ------------------------------------------------------------

func TestEngineStopped(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	e := usecase.NewEngine(sampleSource(), nil, log, usecase.EngineConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)

	_, err := e.Connect(context.Background(), "g1")
	assert.ErrorIs(t, err, usecase.ErrEngineStopped)
}
