package domain

import (
	"cmp"
	"errors"
	"slices"
	"strings"
)

var ErrUnknownColumn = errors.New("unknown column")

// SortOrder of a table column.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder accepts "asc", "desc" or "" (ascending).
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(s) {
	case "", "asc":
		return Ascending, true
	case "desc":
		return Descending, true
	}
	return Ascending, false
}

type UserColumn int

const (
	UserColumnName UserColumn = iota
	UserColumnUsername
	UserColumnMessages
	UserColumnWords
	UserColumnChars
	UserColumnAverageWord
	UserColumnAverageChar
	UserColumnFirstSeen
	UserColumnLastSeen
)

type ChannelColumn int

const (
	ChannelColumnName ChannelColumn = iota
	ChannelColumnMessages
	ChannelColumnDeleted
	ChannelColumnWords
	ChannelColumnChars
	ChannelColumnAverageWord
	ChannelColumnAverageChar
	ChannelColumnUniqueUsers
	ChannelColumnFirstSeen
	ChannelColumnLastSeen
)

type PhraseColumn int

const (
	PhraseColumnPhrase PhraseColumn = iota
	PhraseColumnHits
)

type column[R any] struct {
	name    string
	compare func(a, b R) int
}

var userColumns = map[UserColumn]column[UserRow]{
	UserColumnName:        {"name", func(a, b UserRow) int { return strings.Compare(a.DisplayName, b.DisplayName) }},
	UserColumnUsername:    {"username", func(a, b UserRow) int { return strings.Compare(a.Username, b.Username) }},
	UserColumnMessages:    {"messages", func(a, b UserRow) int { return cmp.Compare(a.TotalMessage, b.TotalMessage) }},
	UserColumnWords:       {"words", func(a, b UserRow) int { return cmp.Compare(a.TotalWord, b.TotalWord) }},
	UserColumnChars:       {"chars", func(a, b UserRow) int { return cmp.Compare(a.TotalChar, b.TotalChar) }},
	UserColumnAverageWord: {"average_word", func(a, b UserRow) int { return cmp.Compare(a.AverageWord, b.AverageWord) }},
	UserColumnAverageChar: {"average_char", func(a, b UserRow) int { return cmp.Compare(a.AverageChar, b.AverageChar) }},
	UserColumnFirstSeen:   {"first_seen", func(a, b UserRow) int { return a.FirstSeen.Compare(b.FirstSeen) }},
	UserColumnLastSeen:    {"last_seen", func(a, b UserRow) int { return a.LastSeen.Compare(b.LastSeen) }},
}

var channelColumns = map[ChannelColumn]column[ChannelRow]{
	ChannelColumnName:        {"name", func(a, b ChannelRow) int { return strings.Compare(a.Name, b.Name) }},
	ChannelColumnMessages:    {"messages", func(a, b ChannelRow) int { return cmp.Compare(a.TotalMessage, b.TotalMessage) }},
	ChannelColumnDeleted:     {"deleted", func(a, b ChannelRow) int { return cmp.Compare(a.DeletedMessage, b.DeletedMessage) }},
	ChannelColumnWords:       {"words", func(a, b ChannelRow) int { return cmp.Compare(a.TotalWord, b.TotalWord) }},
	ChannelColumnChars:       {"chars", func(a, b ChannelRow) int { return cmp.Compare(a.TotalChar, b.TotalChar) }},
	ChannelColumnAverageWord: {"average_word", func(a, b ChannelRow) int { return cmp.Compare(a.AverageWord, b.AverageWord) }},
	ChannelColumnAverageChar: {"average_char", func(a, b ChannelRow) int { return cmp.Compare(a.AverageChar, b.AverageChar) }},
	ChannelColumnUniqueUsers: {"unique_users", func(a, b ChannelRow) int { return cmp.Compare(a.UniqueUsers, b.UniqueUsers) }},
	ChannelColumnFirstSeen:   {"first_seen", func(a, b ChannelRow) int { return a.FirstSeen.Compare(b.FirstSeen) }},
	ChannelColumnLastSeen:    {"last_seen", func(a, b ChannelRow) int { return a.LastSeen.Compare(b.LastSeen) }},
}

var phraseColumns = map[PhraseColumn]column[PhraseRow]{
	PhraseColumnPhrase: {"phrase", func(a, b PhraseRow) int { return strings.Compare(a.Phrase, b.Phrase) }},
	PhraseColumnHits:   {"hits", func(a, b PhraseRow) int { return cmp.Compare(a.Hits, b.Hits) }},
}

func parseColumn[K comparable, R any](table map[K]column[R], s string) (K, error) {
	for k, c := range table {
		if c.name == s {
			return k, nil
		}
	}
	var zero K
	return zero, ErrUnknownColumn
}

// ParseUserColumn maps a column name such as "messages" to its column.
func ParseUserColumn(s string) (UserColumn, error) { return parseColumn(userColumns, s) }

func ParseChannelColumn(s string) (ChannelColumn, error) { return parseColumn(channelColumns, s) }

func ParsePhraseColumn(s string) (PhraseColumn, error) { return parseColumn(phraseColumns, s) }

func (c UserColumn) Compare(a, b UserRow) int       { return userColumns[c].compare(a, b) }
func (c ChannelColumn) Compare(a, b ChannelRow) int { return channelColumns[c].compare(a, b) }
func (c PhraseColumn) Compare(a, b PhraseRow) int   { return phraseColumns[c].compare(a, b) }

func (c UserColumn) String() string    { return userColumns[c].name }
func (c ChannelColumn) String() string { return channelColumns[c].name }
func (c PhraseColumn) String() string  { return phraseColumns[c].name }

// SortRows sorts rows in place. Equal keys keep their input order.
func SortRows[R any](rows []R, compare func(a, b R) int, order SortOrder) {
	if order == Descending {
		slices.SortStableFunc(rows, func(a, b R) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(rows, compare)
}
