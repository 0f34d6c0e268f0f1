package domain

import "time"

// UserRow is a materialized per-user table row.
type UserRow struct {
	ID           string
	DisplayName  string
	Username     string
	TotalMessage int64
	TotalWord    int64
	TotalChar    int64
	AverageWord  int64
	AverageChar  int64
	FirstSeen    time.Time
	LastSeen     time.Time
}

// ChannelRow is a materialized per-channel table row. Resolved is false while
// the channel name is still unknown and Name holds a placeholder.
type ChannelRow struct {
	ID             string
	Name           string
	Resolved       bool
	TotalMessage   int64
	DeletedMessage int64
	TotalWord      int64
	TotalChar      int64
	AverageWord    int64
	AverageChar    int64
	UniqueUsers    int64
	FirstSeen      time.Time
	LastSeen       time.Time
}

type PhraseRow struct {
	Phrase string
	Hits   int64
}

const (
	SeriesAllMessages     = "All Messages"
	SeriesDeletedMessages = "Deleted Messages"
	SeriesMemberCount     = "Member Count"
	SeriesJoins           = "Joins"
	SeriesLeaves          = "Leaves"
)

type SeriesPoint struct {
	Bucket time.Time
	Value  int64
}

// Series is a named, bucket-ordered plot line.
type Series struct {
	Name   string
	Points []SeriesPoint
}

// ChannelPlaceholder is the name shown for a channel whose name has not been
// announced yet.
func ChannelPlaceholder(id string) string {
	return "#" + id
}
