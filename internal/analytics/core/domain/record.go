package domain

import (
	"errors"
	"time"
)

// PageValue is the number of records in a full page. Both the page source and
// the pagination driver rely on it: a full page means more data exists.
const PageValue = 100

// ErrMalformedPage is wrapped by page sources when a page cannot be decoded.
var ErrMalformedPage = errors.New("malformed page")

type MessageRecord struct {
	GuildID           string
	ChannelID         string
	MessageID         string
	Timestamp         time.Time
	SenderID          string
	SenderDisplayName string
	SenderUsername    string
	Content           string
	StrippedContent   string
	DeleteTimestamp   *time.Time // set when the record is a deletion
}

// IsDeleted reports whether the record describes a deletion.
func (m MessageRecord) IsDeleted() bool {
	return m.DeleteTimestamp != nil
}

// EventTime is the time the record is attributed to: the deletion time for
// deletions, the send time otherwise.
func (m MessageRecord) EventTime() time.Time {
	if m.DeleteTimestamp != nil {
		return *m.DeleteTimestamp
	}
	return m.Timestamp
}

// Valid reports whether the record carries what aggregation needs.
func (m MessageRecord) Valid() bool {
	return m.ChannelID != "" && m.SenderID != "" && !m.Timestamp.IsZero()
}

type MemberCountSample struct {
	GuildID      string
	Timestamp    time.Time
	TotalMembers int64
}

func (c MemberCountSample) Valid() bool {
	return c.TotalMembers >= 0 && !c.Timestamp.IsZero()
}

type MemberActivitySample struct {
	GuildID   string
	Timestamp time.Time
	IsJoin    bool
}

func (a MemberActivitySample) Valid() bool {
	return !a.Timestamp.IsZero()
}

// StreamKind identifies an independently paginated data source of a guild.
type StreamKind int

const (
	StreamMessages StreamKind = iota
	StreamMemberCounts
	StreamMemberActivities
)

// StreamKinds lists every stream kind in fetch order.
var StreamKinds = []StreamKind{StreamMessages, StreamMemberCounts, StreamMemberActivities}

func (k StreamKind) String() string {
	switch k {
	case StreamMessages:
		return "messages"
	case StreamMemberCounts:
		return "member_counts"
	case StreamMemberActivities:
		return "member_activities"
	default:
		return "unknown"
	}
}

// ParseStreamKind is the inverse of StreamKind.String.
func ParseStreamKind(s string) (StreamKind, bool) {
	for _, k := range StreamKinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
