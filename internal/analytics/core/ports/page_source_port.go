package ports

import (
	"context"

	"guild-analytics-service/internal/analytics/core/domain"
)

// PageSourcePort returns one page of a guild's stream. Pages are numbered
// from 0 and hold at most size records; a page that cannot be decoded is
// reported with an error wrapping domain.ErrMalformedPage.
type PageSourcePort interface {
	FetchMessages(ctx context.Context, guildID string, page uint64, size int) ([]domain.MessageRecord, error)
	FetchMemberCounts(ctx context.Context, guildID string, page uint64, size int) ([]domain.MemberCountSample, error)
	FetchMemberActivities(ctx context.Context, guildID string, page uint64, size int) ([]domain.MemberActivitySample, error)
}

// ChannelDirectoryPort resolves channel names.
type ChannelDirectoryPort interface {
	// ChannelNames returns id -> name for ids; nil ids means every channel
	// of the guild. Unknown ids are absent from the result.
	ChannelNames(ctx context.Context, guildID string, ids []string) (map[string]string, error)
}
