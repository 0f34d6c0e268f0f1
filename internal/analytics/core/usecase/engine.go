package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/paging"
	"guild-analytics-service/internal/analytics/core/ports"
	"guild-analytics-service/internal/analytics/core/reload"
)

var ErrEngineStopped = errors.New("engine stopped")

// EngineConfig tunes the engine. Zero values fall back to defaults.
type EngineConfig struct {
	// Location decides calendar days and bucket boundaries.
	Location *time.Location

	// TickInterval is how often queued reload events are drained.
	TickInterval time.Duration

	PageSize     int
	PhraseWindow int

	// ReloadEvery forces a reload after this many records of one stream,
	// so long streams refresh views before they finish.
	ReloadEvery int
}

const (
	DefaultTickInterval = 250 * time.Millisecond
	DefaultPhraseWindow = 2
)

func (c EngineConfig) withDefaults() EngineConfig {
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.PageSize <= 0 {
		c.PageSize = domain.PageValue
	}
	if c.ReloadEvery <= 0 {
		c.ReloadEvery = 10 * c.PageSize
	}
	if c.PhraseWindow <= 0 {
		c.PhraseWindow = DefaultPhraseWindow
	}
	return c
}

// result is a network completion, applied on the engine goroutine.
type result interface {
	apply(e *Engine)
}

// Engine owns every guild session. All aggregator state is mutated from the
// goroutine running Run; callers reach it through commands and fetches report
// back through results, so no locks are needed.
type Engine struct {
	source    ports.PageSourcePort
	directory ports.ChannelDirectoryPort
	log       logrus.FieldLogger
	cfg       EngineConfig
	now       func() time.Time

	sessions map[string]*guildSession
	queue    *reload.Queue
	onEvent  func(reload.Event)
	ticks    <-chan time.Time

	commands chan func()
	results  chan result
	runCtx   context.Context
	stopped  chan struct{}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithEventHook registers fn to be called with every dispatched event, after
// the matching view was rematerialized.
func WithEventHook(fn func(reload.Event)) Option {
	return func(e *Engine) { e.onEvent = fn }
}

// WithTicks drains the reload queue on every value received from ch instead
// of on the TickInterval ticker.
func WithTicks(ch <-chan time.Time) Option {
	return func(e *Engine) { e.ticks = ch }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(source ports.PageSourcePort, directory ports.ChannelDirectoryPort, log logrus.FieldLogger, cfg EngineConfig, opts ...Option) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Engine{
		source:    source,
		directory: directory,
		log:       log,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
		sessions:  make(map[string]*guildSession),
		queue:     reload.NewQueue(),
		commands:  make(chan func()),
		results:   make(chan result, 64),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes commands, fetch results and drain ticks until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	e.runCtx = ctx
	defer close(e.stopped)
	ticks := e.ticks
	if ticks == nil {
		ticker := time.NewTicker(e.cfg.TickInterval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	e.log.WithField("tick", e.cfg.TickInterval).Info("analytics engine started")
	for {
		select {
		case <-ctx.Done():
			e.log.Info("analytics engine stopped")
			return nil
		case fn := <-e.commands:
			fn()
		case r := <-e.results:
			r.apply(e)
		case <-ticks:
			e.tick()
		}
	}
}

// do runs fn on the engine goroutine and waits for it to finish.
func (e *Engine) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case e.commands <- func() { fn(); close(done) }:
	case <-e.stopped:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tick drains the reload queue once.
func (e *Engine) tick() int {
	return e.queue.Drain(e.dispatch)
}

func (e *Engine) dispatch(ev reload.Event) {
	s := e.sessions[ev.GuildID]
	if s != nil {
		switch {
		case ev.Kind.IsReload():
			e.rematerialize(s, ev.Kind)
		case ev.Kind == reload.WindowChanged:
			s.window.Ack()
		}
	}
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

func (e *Engine) rematerialize(s *guildSession, kind reload.Kind) {
	unresolved, err := s.materialize(kind)
	if err != nil {
		e.log.WithFields(logrus.Fields{"guild": s.guildID, "view": kind}).WithError(err).Error("materialize failed")
		return
	}
	if ids := s.pendingLookups(unresolved); len(ids) > 0 && !s.lookupInFlight {
		e.lookupChannels(s, ids)
	}
}

// publishViews queues a reload of every view in kinds for s.
func (e *Engine) publishViews(s *guildSession, kinds []reload.Kind) {
	for _, k := range kinds {
		e.queue.PublishIfNeeded(reload.Event{Kind: k, GuildID: s.guildID})
	}
}

// fetch requests one page in the background.
func (e *Engine) fetch(s *guildSession, req paging.Request) {
	ctx := e.runCtx
	sessionID := s.id
	go func() {
		r := pageResult{sessionID: sessionID, req: req}
		switch req.Kind {
		case domain.StreamMessages:
			r.messages, r.err = e.source.FetchMessages(ctx, req.GuildID, req.Page, req.Size)
		case domain.StreamMemberCounts:
			r.counts, r.err = e.source.FetchMemberCounts(ctx, req.GuildID, req.Page, req.Size)
		case domain.StreamMemberActivities:
			r.activities, r.err = e.source.FetchMemberActivities(ctx, req.GuildID, req.Page, req.Size)
		default:
			r.err = fmt.Errorf("unknown stream kind %d", req.Kind)
		}
		e.deliver(ctx, r)
	}()
}

func (e *Engine) lookupChannels(s *guildSession, ids []string) {
	if e.directory == nil {
		return
	}
	for _, id := range ids {
		s.lookedUp[id] = true
	}
	s.lookupInFlight = true
	ctx := e.runCtx
	r := lookupResult{sessionID: s.id, guildID: s.guildID, ids: ids}
	go func() {
		r.names, r.err = e.directory.ChannelNames(ctx, r.guildID, ids)
		e.deliver(ctx, r)
	}()
}

func (e *Engine) deliver(ctx context.Context, r result) {
	select {
	case e.results <- r:
	case <-ctx.Done():
	}
}

// session returns the live session of guildID, dropping results of sessions
// that were reset in the meantime.
func (e *Engine) session(guildID string, id uuid.UUID) *guildSession {
	s := e.sessions[guildID]
	if s == nil || s.id != id {
		return nil
	}
	return s
}

type pageResult struct {
	sessionID  uuid.UUID
	req        paging.Request
	messages   []domain.MessageRecord
	counts     []domain.MemberCountSample
	activities []domain.MemberActivitySample
	err        error
}

func (r pageResult) apply(e *Engine) {
	log := e.log.WithFields(logrus.Fields{"guild": r.req.GuildID, "stream": r.req.Kind, "page": r.req.Page})
	s := e.session(r.req.GuildID, r.sessionID)
	if s == nil {
		log.Debug("dropping page of a closed session")
		return
	}

	if r.err != nil {
		if err := s.driver.Fail(r.req.Kind, r.req.Page); err != nil {
			log.WithError(err).Warn("failed page does not match stream state")
			return
		}
		msg := "page fetch failed"
		if errors.Is(r.err, domain.ErrMalformedPage) {
			msg = "page could not be decoded"
		}
		s.warn(Warning{At: e.now(), Stream: r.req.Kind.String(), Page: r.req.Page, Message: fmt.Sprintf("%s: %v", msg, r.err)})
		log.WithError(r.err).Warn(msg)
		return
	}

	var n, accepted int
	var widened bool
	switch r.req.Kind {
	case domain.StreamMessages:
		n = len(r.messages)
		accepted, widened = s.ingestMessages(r.messages)
	case domain.StreamMemberCounts:
		n = len(r.counts)
		accepted, widened = s.ingestCounts(r.counts)
	case domain.StreamMemberActivities:
		n = len(r.activities)
		accepted, widened = s.ingestActivities(r.activities)
	}
	if accepted < n {
		log.WithField("skipped", n-accepted).Warn("skipped records of another guild or with missing fields")
	}
	s.ingested[r.req.Kind] += int64(accepted)
	s.sinceReload[r.req.Kind] += accepted

	next, more, err := s.driver.Receive(r.req.Kind, r.req.Page, n)
	if err != nil {
		log.WithError(err).Warn("unexpected page reply")
		return
	}

	if widened {
		e.queue.Publish(reload.Event{Kind: reload.WindowChanged, GuildID: s.guildID})
	}
	if widened || !more || s.sinceReload[r.req.Kind] >= e.cfg.ReloadEvery {
		s.sinceReload[r.req.Kind] = 0
		e.publishViews(s, streamViews(r.req.Kind))
	}

	if more {
		e.fetch(s, next)
		return
	}
	log.WithField("records", s.ingested[r.req.Kind]).Info("stream finished")
}

type lookupResult struct {
	sessionID uuid.UUID
	guildID   string
	ids       []string
	names     map[string]string
	err       error
}

func (r lookupResult) apply(e *Engine) {
	s := e.session(r.guildID, r.sessionID)
	if s == nil {
		return
	}
	s.lookupInFlight = false
	if r.err != nil {
		for _, id := range r.ids {
			delete(s.lookedUp, id)
		}
		s.warn(Warning{At: e.now(), Stream: "channels", Message: fmt.Sprintf("channel lookup failed: %v", r.err)})
		e.log.WithField("guild", r.guildID).WithError(r.err).Warn("channel lookup failed")
		return
	}
	// channels seen while this lookup was in flight still need one of their own
	s.mergeNames(r.names)
	e.queue.PublishIfNeeded(reload.Event{Kind: reload.Channels, GuildID: s.guildID})
}
