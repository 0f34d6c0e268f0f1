package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	analytics "guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/ingest/core/domain"
	"guild-analytics-service/internal/ingest/core/ports"
)

var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrFutureTime    = errors.New("timestamp cannot be in the future")
)

type StoreRecordUseCase struct {
	repo      ports.RecordWriterPort
	announcer ports.ChannelAnnouncerPort
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewStoreRecordUseCase(repo ports.RecordWriterPort, announcer ports.ChannelAnnouncerPort, log logrus.FieldLogger) *StoreRecordUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StoreRecordUseCase{repo: repo, announcer: announcer, log: log, now: time.Now}
}

type StoreMessageInput struct {
	GuildID           string
	ChannelID         string
	MessageID         string
	SenderID          string
	SenderDisplayName string
	SenderUsername    string
	Content           string
	StrippedContent   string
	Timestamp         int64
	// DeletedAt marks the record as the deletion of MessageID.
	DeletedAt *int64
}

// StoreMessage appends one message or deletion. It returns false for a
// record that was already stored.
func (uc *StoreRecordUseCase) StoreMessage(ctx context.Context, in StoreMessageInput) (bool, error) {
	if err := uc.validateMessage(in); err != nil {
		return false, err
	}

	sentAt := time.Unix(in.Timestamp, 0).UTC()
	if in.StrippedContent == "" {
		in.StrippedContent = in.Content
	}

	m := &domain.Message{
		MessageRecord: analytics.MessageRecord{
			GuildID:           in.GuildID,
			ChannelID:         in.ChannelID,
			MessageID:         in.MessageID,
			Timestamp:         sentAt,
			SenderID:          in.SenderID,
			SenderDisplayName: in.SenderDisplayName,
			SenderUsername:    in.SenderUsername,
			Content:           in.Content,
			StrippedContent:   in.StrippedContent,
		},
	}
	if in.DeletedAt != nil {
		deletedAt := time.Unix(*in.DeletedAt, 0).UTC()
		m.DeleteTimestamp = &deletedAt
		m.DedupeKey = fmt.Sprintf("%s|%s|deleted|%d", in.GuildID, in.MessageID, deletedAt.Unix())
	} else {
		m.DedupeKey = fmt.Sprintf("%s|%s|sent|%d", in.GuildID, in.MessageID, sentAt.Unix())
	}

	return uc.repo.InsertMessage(ctx, m)
}

type BulkStoreMessagesInput struct {
	Messages []StoreMessageInput
}

type BulkResult struct {
	Created    int
	Duplicates int
}

func (r *BulkResult) count(created bool) {
	if created {
		r.Created++
	} else {
		r.Duplicates++
	}
}

// BulkStoreMessages validates every message before storing any.
func (uc *StoreRecordUseCase) BulkStoreMessages(ctx context.Context, in BulkStoreMessagesInput) (BulkResult, error) {
	var res BulkResult

	for _, m := range in.Messages {
		if err := uc.validateMessage(m); err != nil {
			return res, err
		}
	}

	for _, m := range in.Messages {
		ok, err := uc.StoreMessage(ctx, m)
		if err != nil {
			return res, err
		}
		res.count(ok)
	}

	return res, nil
}

type MemberCountInput struct {
	Timestamp    int64
	TotalMembers int64
}

type StoreMemberCountsInput struct {
	GuildID string
	Samples []MemberCountInput
}

func (uc *StoreRecordUseCase) StoreMemberCounts(ctx context.Context, in StoreMemberCountsInput) (BulkResult, error) {
	var res BulkResult

	if in.GuildID == "" {
		return res, ErrInvalidRecord
	}
	for _, s := range in.Samples {
		if s.TotalMembers < 0 {
			return res, ErrInvalidRecord
		}
		if err := uc.validateTime(s.Timestamp); err != nil {
			return res, err
		}
	}

	for _, s := range in.Samples {
		at := time.Unix(s.Timestamp, 0).UTC()
		ok, err := uc.repo.InsertMemberCount(ctx, &domain.MemberCount{
			MemberCountSample: analytics.MemberCountSample{GuildID: in.GuildID, Timestamp: at, TotalMembers: s.TotalMembers},
			DedupeKey:         fmt.Sprintf("%s|count|%d", in.GuildID, at.Unix()),
		})
		if err != nil {
			return res, err
		}
		res.count(ok)
	}

	return res, nil
}

type MemberActivityInput struct {
	UserID    string
	Timestamp int64
	IsJoin    bool
}

type StoreMemberActivitiesInput struct {
	GuildID string
	Samples []MemberActivityInput
}

func (uc *StoreRecordUseCase) StoreMemberActivities(ctx context.Context, in StoreMemberActivitiesInput) (BulkResult, error) {
	var res BulkResult

	if in.GuildID == "" {
		return res, ErrInvalidRecord
	}
	for _, s := range in.Samples {
		if s.UserID == "" {
			return res, ErrInvalidRecord
		}
		if err := uc.validateTime(s.Timestamp); err != nil {
			return res, err
		}
	}

	for _, s := range in.Samples {
		at := time.Unix(s.Timestamp, 0).UTC()
		kind := "leave"
		if s.IsJoin {
			kind = "join"
		}
		ok, err := uc.repo.InsertMemberActivity(ctx, &domain.MemberActivity{
			MemberActivitySample: analytics.MemberActivitySample{GuildID: in.GuildID, Timestamp: at, IsJoin: s.IsJoin},
			UserID:               s.UserID,
			DedupeKey:            fmt.Sprintf("%s|%s|%s|%d", in.GuildID, s.UserID, kind, at.Unix()),
		})
		if err != nil {
			return res, err
		}
		res.count(ok)
	}

	return res, nil
}

type RenameChannelInput struct {
	GuildID   string
	ChannelID string
	Name      string
}

// RenameChannel stores a channel name and forwards it to live sessions.
func (uc *StoreRecordUseCase) RenameChannel(ctx context.Context, in RenameChannelInput) error {
	if in.GuildID == "" || in.ChannelID == "" || in.Name == "" {
		return ErrInvalidRecord
	}

	ch := &domain.Channel{GuildID: in.GuildID, ChannelID: in.ChannelID, Name: in.Name}
	if err := uc.repo.UpsertChannel(ctx, ch); err != nil {
		return err
	}

	if uc.announcer != nil {
		// guilds without a live session are expected here
		if err := uc.announcer.AnnounceChannels(ctx, in.GuildID, map[string]string{in.ChannelID: in.Name}); err != nil {
			uc.log.WithFields(logrus.Fields{"guild": in.GuildID, "channel": in.ChannelID}).WithError(err).Debug("channel name not announced")
		}
	}
	return nil
}

func (uc *StoreRecordUseCase) validateMessage(in StoreMessageInput) error {
	if in.GuildID == "" || in.ChannelID == "" || in.MessageID == "" || in.SenderID == "" {
		return ErrInvalidRecord
	}
	if err := uc.validateTime(in.Timestamp); err != nil {
		return err
	}
	if in.DeletedAt != nil {
		if *in.DeletedAt < in.Timestamp {
			return ErrInvalidRecord
		}
		if err := uc.validateTime(*in.DeletedAt); err != nil {
			return err
		}
	}
	return nil
}

func (uc *StoreRecordUseCase) validateTime(ts int64) error {
	if ts <= 0 {
		return ErrInvalidRecord
	}
	if ts > uc.now().Unix() {
		return ErrFutureTime
	}
	return nil
}
