package aggregate

import (
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
)

func day(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func message(channel, sender, content string, ts time.Time) domain.MessageRecord {
	return domain.MessageRecord{
		GuildID:           "g1",
		ChannelID:         channel,
		MessageID:         sender + ts.String(),
		Timestamp:         ts,
		SenderID:          sender,
		SenderDisplayName: "Display " + sender,
		SenderUsername:    sender,
		Content:           content,
		StrippedContent:   content,
	}
}

func deletion(channel, sender string, sent, deleted time.Time) domain.MessageRecord {
	m := message(channel, sender, "", sent)
	m.DeleteTimestamp = &deleted
	return m
}
