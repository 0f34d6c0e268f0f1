package usecase

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"guild-analytics-service/internal/analytics/core/aggregate"
	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/paging"
	"guild-analytics-service/internal/analytics/core/reload"
)

var (
	ErrInvalidGuild       = errors.New("invalid guild id")
	ErrUnknownGuild       = errors.New("guild is not connected")
	ErrInvalidSort        = errors.New("invalid sort order")
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidMetric      = errors.New("invalid metric")
)

type SessionInfo struct {
	SessionID uuid.UUID
	GuildID   string
	StartedAt time.Time
	// Resumed is true when the guild was already connected.
	Resumed bool
}

// Connect opens a session for guildID and starts fetching all of its streams.
// Connecting an already connected guild returns the existing session.
func (e *Engine) Connect(ctx context.Context, guildID string) (SessionInfo, error) {
	if guildID == "" {
		return SessionInfo{}, ErrInvalidGuild
	}
	var info SessionInfo
	err := e.do(ctx, func() {
		if s, ok := e.sessions[guildID]; ok {
			info = SessionInfo{SessionID: s.id, GuildID: guildID, StartedAt: s.started, Resumed: true}
			return
		}
		s := newGuildSession(guildID, e.cfg, e.now())
		e.sessions[guildID] = s
		e.queue.Publish(reload.Event{Kind: reload.GuildSelected, GuildID: guildID})

		e.log.WithFields(logrus.Fields{"guild": guildID, "session": s.id}).Info("guild connected")
		for _, kind := range domain.StreamKinds {
			req, err := s.driver.Start(kind)
			if err != nil {
				continue
			}
			e.fetch(s, req)
		}
		e.lookupChannels(s, nil)
		info = SessionInfo{SessionID: s.id, GuildID: guildID, StartedAt: s.started}
	})
	return info, err
}

// Reset discards the guild's session and every aggregate in it. Results of
// requests still in flight are dropped when they arrive.
func (e *Engine) Reset(ctx context.Context, guildID string) error {
	if guildID == "" {
		return ErrInvalidGuild
	}
	var err error
	doErr := e.do(ctx, func() {
		s, ok := e.sessions[guildID]
		if !ok {
			err = ErrUnknownGuild
			return
		}
		delete(e.sessions, guildID)
		e.queue.Discard(guildID)
		e.queue.Publish(reload.Event{Kind: reload.SessionReset, GuildID: guildID})
		e.log.WithFields(logrus.Fields{"guild": guildID, "session": s.id}).Info("guild session reset")
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// AnnounceChannels records channel names announced out of band.
func (e *Engine) AnnounceChannels(ctx context.Context, guildID string, names map[string]string) error {
	return e.withSession(ctx, guildID, func(s *guildSession) error {
		if s.mergeNames(names) {
			e.queue.PublishIfNeeded(reload.Event{Kind: reload.Channels, GuildID: guildID})
		}
		return nil
	})
}

// RetryStream re-requests the page a stalled stream failed on.
func (e *Engine) RetryStream(ctx context.Context, guildID string, kind domain.StreamKind) error {
	return e.withSession(ctx, guildID, func(s *guildSession) error {
		req, err := s.driver.Retry(kind)
		if err != nil {
			return err
		}
		e.fetch(s, req)
		return nil
	})
}

type WindowInput struct {
	GuildID string
	From    *domain.Date
	To      *domain.Date
}

type WindowState struct {
	From     domain.Date
	To       domain.Date
	Start    domain.Date
	End      domain.Date
	Observed bool
}

func windowState(w *aggregate.DateWindow) WindowState {
	return WindowState{From: w.From(), To: w.To(), Start: w.Start(), End: w.End(), Observed: w.Observed()}
}

// SetWindow moves the selected range. Each endpoint is clamped against the
// other, so from never passes to. Every view is rematerialized on the next
// drain when the range changed.
func (e *Engine) SetWindow(ctx context.Context, in WindowInput) (WindowState, error) {
	var out WindowState
	err := e.withSession(ctx, in.GuildID, func(s *guildSession) error {
		if in.From != nil {
			s.window.SetFrom(*in.From)
		}
		if in.To != nil {
			s.window.SetTo(*in.To)
		}
		if s.window.Changed() {
			e.queue.Publish(reload.Event{Kind: reload.WindowChanged, GuildID: s.guildID})
			e.publishViews(s, reload.ViewKinds)
		}
		out = windowState(s.window)
		return nil
	})
	return out, err
}

type StreamStatus struct {
	Kind     domain.StreamKind
	Page     uint64
	State    paging.State
	Ingested int64
}

type SessionStatus struct {
	SessionID     uuid.UUID
	GuildID       string
	StartedAt     time.Time
	Window        WindowState
	Streams       []StreamStatus
	Done          bool
	Warnings      []Warning
	Versions      map[string]uint64
	PendingEvents int
}

func (e *Engine) Status(ctx context.Context, guildID string) (SessionStatus, error) {
	var out SessionStatus
	err := e.withSession(ctx, guildID, func(s *guildSession) error {
		out = SessionStatus{
			SessionID:     s.id,
			GuildID:       s.guildID,
			StartedAt:     s.started,
			Window:        windowState(s.window),
			Done:          s.driver.Done(),
			Warnings:      slices.Clone(s.warnings),
			Versions:      make(map[string]uint64, len(s.versions)),
			PendingEvents: e.queue.Len(),
		}
		for _, kind := range domain.StreamKinds {
			p := s.driver.Pointer(kind)
			out.Streams = append(out.Streams, StreamStatus{Kind: kind, Page: p.Page, State: p.State, Ingested: s.ingested[kind]})
		}
		for k, v := range s.versions {
			out.Versions[k.String()] = v
		}
		return nil
	})
	return out, err
}

type TableInput struct {
	GuildID string
	SortBy  string
	Order   string
	Limit   int
}

type UsersResult struct {
	Version uint64
	Window  WindowState
	Rows    []domain.UserRow
}

// Users returns the user table of the selected range.
func (e *Engine) Users(ctx context.Context, in TableInput) (UsersResult, error) {
	col := domain.UserColumnMessages
	if in.SortBy != "" {
		c, err := domain.ParseUserColumn(in.SortBy)
		if err != nil {
			return UsersResult{}, err
		}
		col = c
	}
	order, err := sortOrder(in.Order)
	if err != nil {
		return UsersResult{}, err
	}

	var out UsersResult
	err = e.withView(ctx, in.GuildID, reload.Users, func(s *guildSession) {
		rows := slices.Clone(s.views.users)
		domain.SortRows(rows, col.Compare, order)
		out = UsersResult{Version: s.versions[reload.Users], Window: windowState(s.window), Rows: limit(rows, in.Limit)}
	})
	return out, err
}

type ChannelsResult struct {
	Version uint64
	Window  WindowState
	Rows    []domain.ChannelRow
}

// Channels returns the channel table of the selected range.
func (e *Engine) Channels(ctx context.Context, in TableInput) (ChannelsResult, error) {
	col := domain.ChannelColumnMessages
	if in.SortBy != "" {
		c, err := domain.ParseChannelColumn(in.SortBy)
		if err != nil {
			return ChannelsResult{}, err
		}
		col = c
	}
	order, err := sortOrder(in.Order)
	if err != nil {
		return ChannelsResult{}, err
	}

	var out ChannelsResult
	err = e.withView(ctx, in.GuildID, reload.Channels, func(s *guildSession) {
		rows := slices.Clone(s.views.channels)
		domain.SortRows(rows, col.Compare, order)
		out = ChannelsResult{Version: s.versions[reload.Channels], Window: windowState(s.window), Rows: limit(rows, in.Limit)}
	})
	return out, err
}

type PhrasesInput struct {
	TableInput
	// WindowSize is the phrase length in tokens; 0 keeps the current size.
	WindowSize int
}

type PhrasesResult struct {
	Version    uint64
	Window     WindowState
	WindowSize int
	Rows       []domain.PhraseRow
}

// Phrases returns the phrase table of the selected range. A new window size
// triggers an immediate rescan.
func (e *Engine) Phrases(ctx context.Context, in PhrasesInput) (PhrasesResult, error) {
	if in.WindowSize != 0 && (in.WindowSize < aggregate.MinPhraseWindow || in.WindowSize > aggregate.MaxPhraseWindow) {
		return PhrasesResult{}, aggregate.ErrInvalidWindowSize
	}
	col := domain.PhraseColumnHits
	if in.SortBy != "" {
		c, err := domain.ParsePhraseColumn(in.SortBy)
		if err != nil {
			return PhrasesResult{}, err
		}
		col = c
	}
	order, err := sortOrder(in.Order)
	if err != nil {
		return PhrasesResult{}, err
	}

	var out PhrasesResult
	err = e.withSession(ctx, in.GuildID, func(s *guildSession) error {
		if in.WindowSize != 0 && in.WindowSize != s.settings.phraseWindow {
			s.settings.phraseWindow = in.WindowSize
			if _, err := s.materialize(reload.Phrases); err != nil {
				return err
			}
		}
		if err := e.ensureView(s, reload.Phrases); err != nil {
			return err
		}
		rows := slices.Clone(s.views.phrases)
		domain.SortRows(rows, col.Compare, order)
		out = PhrasesResult{
			Version:    s.versions[reload.Phrases],
			Window:     windowState(s.window),
			WindowSize: s.settings.phraseWindow,
			Rows:       limit(rows, in.Limit),
		}
		return nil
	})
	return out, err
}

const (
	MetricAllMessages     = "all"
	MetricDeletedMessages = "deleted"
)

type SeriesInput struct {
	GuildID     string
	Granularity string
	// Channels restricts the series to these channels; empty means all.
	Channels []string
	// Metrics picks the built-in series ("all", "deleted").
	Metrics []string
	// Actors adds one series per user id.
	Actors []string
}

type SeriesResult struct {
	Version     uint64
	Window      WindowState
	Granularity domain.Granularity
	Series      []domain.Series
}

// Series returns the message time series of the selected range. A changed
// granularity or selection triggers an immediate rematerialization.
func (e *Engine) Series(ctx context.Context, in SeriesInput) (SeriesResult, error) {
	g, err := granularity(in.Granularity)
	if err != nil {
		return SeriesResult{}, err
	}
	sel := domain.SeriesSelection{Channels: in.Channels, Actors: in.Actors}
	for _, m := range in.Metrics {
		switch m {
		case MetricAllMessages:
			sel.AllMessages = true
		case MetricDeletedMessages:
			sel.DeletedMessages = true
		default:
			return SeriesResult{}, ErrInvalidMetric
		}
	}

	var out SeriesResult
	err = e.withSession(ctx, in.GuildID, func(s *guildSession) error {
		if g != s.settings.granularity || !sameSelection(sel, s.settings.selection) {
			s.settings.granularity = g
			s.settings.selection = sel
			if _, err := s.materialize(reload.Series); err != nil {
				return err
			}
		}
		if err := e.ensureView(s, reload.Series); err != nil {
			return err
		}
		out = SeriesResult{
			Version:     s.versions[reload.Series],
			Window:      windowState(s.window),
			Granularity: s.settings.granularity,
			Series:      s.views.series,
		}
		return nil
	})
	return out, err
}

type MembersInput struct {
	GuildID     string
	Granularity string
}

// Members returns the member count, join and leave series of the selected
// range.
func (e *Engine) Members(ctx context.Context, in MembersInput) (SeriesResult, error) {
	g, err := granularity(in.Granularity)
	if err != nil {
		return SeriesResult{}, err
	}

	var out SeriesResult
	err = e.withSession(ctx, in.GuildID, func(s *guildSession) error {
		if g != s.settings.memberGranularity {
			s.settings.memberGranularity = g
			if _, err := s.materialize(reload.Members); err != nil {
				return err
			}
		}
		if err := e.ensureView(s, reload.Members); err != nil {
			return err
		}
		out = SeriesResult{
			Version:     s.versions[reload.Members],
			Window:      windowState(s.window),
			Granularity: s.settings.memberGranularity,
			Series:      s.views.members,
		}
		return nil
	})
	return out, err
}

// withSession runs fn on the engine goroutine with the guild's session.
func (e *Engine) withSession(ctx context.Context, guildID string, fn func(s *guildSession) error) error {
	if guildID == "" {
		return ErrInvalidGuild
	}
	var err error
	doErr := e.do(ctx, func() {
		s, ok := e.sessions[guildID]
		if !ok {
			err = ErrUnknownGuild
			return
		}
		err = fn(s)
	})
	if doErr != nil {
		return doErr
	}
	return err
}

func (e *Engine) withView(ctx context.Context, guildID string, kind reload.Kind, fn func(s *guildSession)) error {
	return e.withSession(ctx, guildID, func(s *guildSession) error {
		if err := e.ensureView(s, kind); err != nil {
			return err
		}
		fn(s)
		return nil
	})
}

// ensureView materializes a view that was never built.
func (e *Engine) ensureView(s *guildSession, kind reload.Kind) error {
	if s.versions[kind] > 0 {
		return nil
	}
	unresolved, err := s.materialize(kind)
	if err != nil {
		return err
	}
	if ids := s.pendingLookups(unresolved); len(ids) > 0 && !s.lookupInFlight {
		e.lookupChannels(s, ids)
	}
	return nil
}

// sortOrder parses an order query value; empty sorts descending.
func sortOrder(s string) (domain.SortOrder, error) {
	if s == "" {
		return domain.Descending, nil
	}
	o, ok := domain.ParseSortOrder(s)
	if !ok {
		return 0, ErrInvalidSort
	}
	return o, nil
}

func granularity(s string) (domain.Granularity, error) {
	if s == "" {
		return domain.Day, nil
	}
	g, ok := domain.ParseGranularity(s)
	if !ok {
		return 0, ErrInvalidGranularity
	}
	return g, nil
}

func sameSelection(a, b domain.SeriesSelection) bool {
	return a.AllMessages == b.AllMessages &&
		a.DeletedMessages == b.DeletedMessages &&
		slices.Equal(a.Channels, b.Channels) &&
		slices.Equal(a.Actors, b.Actors)
}

func limit[R any](rows []R, n int) []R {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
