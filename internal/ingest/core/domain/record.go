package domain

import (
	analytics "guild-analytics-service/internal/analytics/core/domain"
)

// Message is a sent message or a deletion appended to a guild's message
// stream. A deletion is its own row; the original message row is never
// rewritten.
type Message struct {
	analytics.MessageRecord
	DedupeKey string
}

type MemberCount struct {
	analytics.MemberCountSample
	DedupeKey string
}

type MemberActivity struct {
	analytics.MemberActivitySample
	UserID    string
	DedupeKey string
}

type Channel struct {
	GuildID   string
	ChannelID string
	Name      string
}
