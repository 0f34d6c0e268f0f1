package usecase

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"guild-analytics-service/internal/analytics/core/aggregate"
	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/paging"
	"guild-analytics-service/internal/analytics/core/reload"
)

// Warning is a non-fatal problem surfaced to the caller, such as a page that
// could not be decoded.
type Warning struct {
	At      time.Time
	Stream  string
	Page    uint64
	Message string
}

// viewSettings are the inputs of materialization besides [from, to].
type viewSettings struct {
	phraseWindow      int
	granularity       domain.Granularity
	selection         domain.SeriesSelection
	memberGranularity domain.Granularity
}

type views struct {
	users    []domain.UserRow
	channels []domain.ChannelRow
	phrases  []domain.PhraseRow
	series   []domain.Series
	members  []domain.Series
}

// guildSession owns every aggregator of one connected guild. It is only
// touched from the engine goroutine.
type guildSession struct {
	id      uuid.UUID
	guildID string
	started time.Time

	window   *aggregate.DateWindow
	users    *aggregate.UserAggregator
	channels *aggregate.ChannelAggregator
	phrases  *aggregate.PhraseAggregator
	series   *aggregate.TimeSeriesAggregator
	members  *aggregate.MemberSeriesAggregator
	driver   *paging.Driver

	channelNames   map[string]string
	lookupInFlight bool
	lookedUp       map[string]bool

	ingested    map[domain.StreamKind]int64
	sinceReload map[domain.StreamKind]int
	warnings    []Warning

	settings viewSettings
	views    views
	versions map[reload.Kind]uint64
}

func newGuildSession(guildID string, cfg EngineConfig, now time.Time) *guildSession {
	w := aggregate.NewDateWindow()
	return &guildSession{
		id:           uuid.New(),
		guildID:      guildID,
		started:      now,
		window:       w,
		users:        aggregate.NewUserAggregator(w, cfg.Location),
		channels:     aggregate.NewChannelAggregator(w, cfg.Location),
		phrases:      aggregate.NewPhraseAggregator(w, cfg.Location),
		series:       aggregate.NewTimeSeriesAggregator(w, cfg.Location),
		members:      aggregate.NewMemberSeriesAggregator(w, cfg.Location),
		driver:       paging.NewDriver(guildID, cfg.PageSize),
		channelNames: make(map[string]string),
		lookedUp:     make(map[string]bool),
		ingested:     make(map[domain.StreamKind]int64),
		sinceReload:  make(map[domain.StreamKind]int),
		settings: viewSettings{
			phraseWindow:      cfg.PhraseWindow,
			granularity:       domain.Day,
			selection:         domain.SeriesSelection{AllMessages: true, DeletedMessages: true},
			memberGranularity: domain.Day,
		},
		versions: make(map[reload.Kind]uint64),
	}
}

// ingestMessages feeds a page of messages into every message aggregator.
// Records of another guild and invalid records are dropped. It returns the
// number of accepted records and whether the observed span widened.
func (s *guildSession) ingestMessages(recs []domain.MessageRecord) (accepted int, widened bool) {
	for _, m := range recs {
		if (m.GuildID != "" && m.GuildID != s.guildID) || !m.Valid() {
			continue
		}
		// every aggregator observes the same date; one result is enough
		widened = s.users.Ingest(m) || widened
		s.channels.Ingest(m)
		s.phrases.Ingest(m)
		s.series.IngestMessage(m)
		accepted++
	}
	return accepted, widened
}

func (s *guildSession) ingestCounts(recs []domain.MemberCountSample) (accepted int, widened bool) {
	for _, c := range recs {
		if (c.GuildID != "" && c.GuildID != s.guildID) || !c.Valid() {
			continue
		}
		widened = s.members.IngestCount(c) || widened
		accepted++
	}
	return accepted, widened
}

func (s *guildSession) ingestActivities(recs []domain.MemberActivitySample) (accepted int, widened bool) {
	for _, a := range recs {
		if (a.GuildID != "" && a.GuildID != s.guildID) || !a.Valid() {
			continue
		}
		widened = s.members.IngestActivity(a) || widened
		accepted++
	}
	return accepted, widened
}

// materialize rebuilds one view from the raw buckets inside [from, to]. For
// the channel view it returns the channel ids that still lack a name.
func (s *guildSession) materialize(kind reload.Kind) (unresolved []string, err error) {
	from, to := s.window.From(), s.window.To()
	switch kind {
	case reload.Users:
		s.views.users = s.users.Materialize(from, to)
	case reload.Channels:
		s.views.channels, unresolved = s.channels.Materialize(from, to, s.channelNames)
	case reload.Phrases:
		rows, err := s.phrases.Materialize(from, to, s.settings.phraseWindow)
		if err != nil {
			return nil, err
		}
		s.views.phrases = rows
	case reload.Series:
		s.views.series = s.series.Materialize(s.settings.granularity, from, to, s.settings.selection)
	case reload.Members:
		s.views.members = s.members.Materialize(s.settings.memberGranularity, from, to)
	default:
		return nil, nil
	}
	s.versions[kind]++
	return unresolved, nil
}

// pendingLookups returns the unresolved ids that were never looked up.
func (s *guildSession) pendingLookups(unresolved []string) []string {
	var ids []string
	for _, id := range unresolved {
		if !s.lookedUp[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// mergeNames records announced channel names. It returns true when a name was
// added or changed.
func (s *guildSession) mergeNames(names map[string]string) bool {
	changed := false
	for id, name := range names {
		if old, ok := s.channelNames[id]; !ok || old != name {
			s.channelNames[id] = name
			changed = true
		}
		s.lookedUp[id] = true
	}
	return changed
}

func (s *guildSession) warn(w Warning) {
	const maxWarnings = 50
	s.warnings = append(s.warnings, w)
	if len(s.warnings) > maxWarnings {
		s.warnings = slices.Clone(s.warnings[len(s.warnings)-maxWarnings:])
	}
}

func messageViews() []reload.Kind {
	return []reload.Kind{reload.Users, reload.Channels, reload.Phrases, reload.Series}
}

func streamViews(kind domain.StreamKind) []reload.Kind {
	if kind == domain.StreamMessages {
		return messageViews()
	}
	return []reload.Kind{reload.Members}
}
