package postgres

import (
	"context"
	"database/sql"

	"guild-analytics-service/internal/ingest/core/domain"
	"guild-analytics-service/internal/ingest/core/ports"
)

type RecordRepository struct {
	db DB
}

func NewRecordRepository(db DB) *RecordRepository {
	return &RecordRepository{db: db}
}

var _ ports.RecordWriterPort = (*RecordRepository)(nil)

const insertMessageSQL = `
INSERT INTO messages (
    guild_id,
    channel_id,
    message_id,
    sent_at,
    sender_id,
    sender_display_name,
    sender_username,
    content,
    stripped_content,
    deleted_at,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

const insertMemberCountSQL = `
INSERT INTO member_counts (guild_id, sampled_at, total_members, dedupe_key)
VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING;
`

const insertMemberActivitySQL = `
INSERT INTO member_activities (guild_id, user_id, occurred_at, is_join, dedupe_key)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (dedupe_key) DO NOTHING;
`

const upsertChannelSQL = `
INSERT INTO channels (guild_id, channel_id, name)
VALUES ($1, $2, $3)
ON CONFLICT (guild_id, channel_id) DO UPDATE SET name = EXCLUDED.name;
`

func (r *RecordRepository) InsertMessage(ctx context.Context, m *domain.Message) (bool, error) {
	var deletedAt any
	if m.DeleteTimestamp != nil {
		deletedAt = *m.DeleteTimestamp
	}

	return r.insert(ctx, insertMessageSQL,
		m.GuildID,
		m.ChannelID,
		m.MessageID,
		m.Timestamp,
		m.SenderID,
		m.SenderDisplayName,
		m.SenderUsername,
		m.Content,
		m.StrippedContent,
		deletedAt,
		m.DedupeKey,
	)
}

func (r *RecordRepository) InsertMemberCount(ctx context.Context, c *domain.MemberCount) (bool, error) {
	return r.insert(ctx, insertMemberCountSQL, c.GuildID, c.Timestamp, c.TotalMembers, c.DedupeKey)
}

func (r *RecordRepository) InsertMemberActivity(ctx context.Context, a *domain.MemberActivity) (bool, error) {
	return r.insert(ctx, insertMemberActivitySQL, a.GuildID, a.UserID, a.Timestamp, a.IsJoin, a.DedupeKey)
}

func (r *RecordRepository) UpsertChannel(ctx context.Context, ch *domain.Channel) error {
	_, err := r.db.ExecContext(ctx, upsertChannelSQL, ch.GuildID, ch.ChannelID, ch.Name)
	return err
}

func (r *RecordRepository) insert(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return created(res)
}

func created(res sql.Result) (bool, error) {
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}
