// Package reload batches "view must be rematerialized" signals so a burst of
// ingested pages costs one materialization per view and guild per drain.
package reload

// Kind of event.
type Kind int

const (
	Users Kind = iota
	Channels
	Phrases
	Series
	Members

	// The kinds below are not reload signals and are never deduplicated.
	GuildSelected
	WindowChanged
	SessionReset
)

// ViewKinds lists the reload kinds, one per materialized view.
var ViewKinds = []Kind{Users, Channels, Phrases, Series, Members}

func (k Kind) String() string {
	switch k {
	case Users:
		return "users"
	case Channels:
		return "channels"
	case Phrases:
		return "phrases"
	case Series:
		return "series"
	case Members:
		return "members"
	case GuildSelected:
		return "guild_selected"
	case WindowChanged:
		return "window_changed"
	case SessionReset:
		return "session_reset"
	default:
		return "unknown"
	}
}

// IsReload reports whether k asks for a view to be rematerialized.
func (k Kind) IsReload() bool {
	return k <= Members
}

// Event identifies a view of a guild. Two events are equal when kind and guild
// match.
type Event struct {
	Kind    Kind
	GuildID string
}

// Queue is a FIFO of events with deduplication of queued reload events. It is
// not safe for concurrent use.
type Queue struct {
	events []Event
	queued map[Event]int
}

func NewQueue() *Queue {
	return &Queue{queued: make(map[Event]int)}
}

// PublishIfNeeded appends ev unless an equal event is already queued. It
// returns true when ev was appended.
func (q *Queue) PublishIfNeeded(ev Event) bool {
	if q.queued[ev] > 0 {
		return false
	}
	q.Publish(ev)
	return true
}

// Publish appends ev unconditionally.
func (q *Queue) Publish(ev Event) {
	q.events = append(q.events, ev)
	q.queued[ev]++
}

// Len returns the number of queued events.
func (q *Queue) Len() int { return len(q.events) }

// Drain dispatches the events queued when Drain was called, oldest first.
// Events published by fn are left for the next drain. It returns the number of
// dispatched events.
func (q *Queue) Drain(fn func(Event)) int {
	batch := q.events
	q.events = nil
	for _, ev := range batch {
		if q.queued[ev]--; q.queued[ev] <= 0 {
			delete(q.queued, ev)
		}
	}
	for _, ev := range batch {
		fn(ev)
	}
	return len(batch)
}

// Discard drops every queued event of guildID.
func (q *Queue) Discard(guildID string) {
	kept := q.events[:0]
	for _, ev := range q.events {
		if ev.GuildID == guildID {
			if q.queued[ev]--; q.queued[ev] <= 0 {
				delete(q.queued, ev)
			}
			continue
		}
		kept = append(kept, ev)
	}
	q.events = kept
}
