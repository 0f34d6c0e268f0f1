package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// PageSource serves guild streams page by page out of postgres.
type PageSource struct {
	db DB
}

func NewPageSource(db DB) *PageSource {
	return &PageSource{db: db}
}

var (
	_ ports.PageSourcePort       = (*PageSource)(nil)
	_ ports.ChannelDirectoryPort = (*PageSource)(nil)
)

const selectMessagesSQL = `
SELECT
    guild_id,
    channel_id,
    message_id,
    sent_at,
    sender_id,
    sender_display_name,
    sender_username,
    content,
    stripped_content,
    deleted_at
FROM messages
WHERE guild_id = $1
ORDER BY seq
LIMIT $2 OFFSET $3`

const selectMemberCountsSQL = `
SELECT
    guild_id,
    sampled_at,
    total_members
FROM member_counts
WHERE guild_id = $1
ORDER BY seq
LIMIT $2 OFFSET $3`

const selectMemberActivitiesSQL = `
SELECT
    guild_id,
    occurred_at,
    is_join
FROM member_activities
WHERE guild_id = $1
ORDER BY seq
LIMIT $2 OFFSET $3`

func (r *PageSource) FetchMessages(ctx context.Context, guildID string, page uint64, size int) ([]domain.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectMessagesSQL, pageArgs(guildID, page, size)...)
	if err != nil {
		return nil, classify("messages", page, err)
	}
	defer rows.Close()

	out := make([]domain.MessageRecord, 0, size)
	for rows.Next() {
		var (
			m                        domain.MessageRecord
			displayName, username    sql.NullString
			content, strippedContent sql.NullString
			deletedAt                sql.NullTime
		)
		if err := rows.Scan(
			&m.GuildID,
			&m.ChannelID,
			&m.MessageID,
			&m.Timestamp,
			&m.SenderID,
			&displayName,
			&username,
			&content,
			&strippedContent,
			&deletedAt,
		); err != nil {
			return nil, malformed("messages", page, err)
		}
		m.SenderDisplayName = displayName.String
		m.SenderUsername = username.String
		m.Content = content.String
		m.StrippedContent = strippedContent.String
		if deletedAt.Valid {
			t := deletedAt.Time
			m.DeleteTimestamp = &t
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("messages", page, err)
	}
	return out, nil
}

func (r *PageSource) FetchMemberCounts(ctx context.Context, guildID string, page uint64, size int) ([]domain.MemberCountSample, error) {
	rows, err := r.db.QueryContext(ctx, selectMemberCountsSQL, pageArgs(guildID, page, size)...)
	if err != nil {
		return nil, classify("member_counts", page, err)
	}
	defer rows.Close()

	out := make([]domain.MemberCountSample, 0, size)
	for rows.Next() {
		var c domain.MemberCountSample
		if err := rows.Scan(&c.GuildID, &c.Timestamp, &c.TotalMembers); err != nil {
			return nil, malformed("member_counts", page, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("member_counts", page, err)
	}
	return out, nil
}

func (r *PageSource) FetchMemberActivities(ctx context.Context, guildID string, page uint64, size int) ([]domain.MemberActivitySample, error) {
	rows, err := r.db.QueryContext(ctx, selectMemberActivitiesSQL, pageArgs(guildID, page, size)...)
	if err != nil {
		return nil, classify("member_activities", page, err)
	}
	defer rows.Close()

	out := make([]domain.MemberActivitySample, 0, size)
	for rows.Next() {
		var a domain.MemberActivitySample
		if err := rows.Scan(&a.GuildID, &a.Timestamp, &a.IsJoin); err != nil {
			return nil, malformed("member_activities", page, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("member_activities", page, err)
	}
	return out, nil
}

// ChannelNames looks up channel names; nil ids selects every channel of the
// guild.
func (r *PageSource) ChannelNames(ctx context.Context, guildID string, ids []string) (map[string]string, error) {
	query := "SELECT channel_id, name FROM channels WHERE guild_id = $1"
	args := []any{guildID}
	if ids != nil {
		if len(ids) == 0 {
			return map[string]string{}, nil
		}
		query += " AND channel_id = ANY($2)"
		args = append(args, pq.Array(ids))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func pageArgs(guildID string, page uint64, size int) []any {
	return []any{guildID, size, int64(page) * int64(size)}
}

func malformed(stream string, page uint64, err error) error {
	return fmt.Errorf("%w: %s page %d: %v", domain.ErrMalformedPage, stream, page, err)
}

// classify marks postgres data exceptions (SQLSTATE class 22) as malformed
// pages; anything else is a transport problem.
func classify(stream string, page uint64, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "22" {
		return malformed(stream, page, err)
	}
	return fmt.Errorf("%s page %d: %w", stream, page, err)
}
