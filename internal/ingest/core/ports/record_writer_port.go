package ports

import (
	"context"

	"guild-analytics-service/internal/ingest/core/domain"
)

type RecordWriterPort interface {
	// Insert*:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (idempotent)
	//   created = false, err != nil -> DB error
	InsertMessage(ctx context.Context, m *domain.Message) (created bool, err error)
	InsertMemberCount(ctx context.Context, c *domain.MemberCount) (created bool, err error)
	InsertMemberActivity(ctx context.Context, a *domain.MemberActivity) (created bool, err error)

	// UpsertChannel stores or renames a channel.
	UpsertChannel(ctx context.Context, ch *domain.Channel) error
}

// ChannelAnnouncerPort is told about renamed channels so live sessions pick
// up the new name without a lookup.
type ChannelAnnouncerPort interface {
	AnnounceChannels(ctx context.Context, guildID string, names map[string]string) error
}
