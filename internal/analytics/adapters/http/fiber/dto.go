package fiber

import (
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"invalid sort order"`
}

type ConnectResponse struct {
	SessionID string    `json:"session_id"`
	GuildID   string    `json:"guild_id"`
	StartedAt time.Time `json:"started_at"`
	Resumed   bool      `json:"resumed"`
}

type ResetResponse struct {
	Status  string `json:"status" example:"reset"`
	GuildID string `json:"guild_id"`
}

// SetWindowRequest moves the selected date range. Dates are YYYY-MM-DD; an
// omitted bound is left unchanged.
// @Description Date window update
type SetWindowRequest struct {
	From string `json:"from,omitempty" example:"2025-01-01"`
	To   string `json:"to,omitempty" example:"2025-01-31"`
}

type WindowResponse struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Observed bool   `json:"observed"`
}

type AnnounceChannelsRequest struct {
	Channels map[string]string `json:"channels"`
}

type StreamStatusResponse struct {
	Kind     string `json:"kind"`
	Page     uint64 `json:"page"`
	State    string `json:"state"`
	Ingested int64  `json:"ingested"`
}

type WarningResponse struct {
	At      time.Time `json:"at"`
	Stream  string    `json:"stream"`
	Page    uint64    `json:"page"`
	Message string    `json:"message"`
}

type StatusResponse struct {
	SessionID     string                 `json:"session_id"`
	GuildID       string                 `json:"guild_id"`
	StartedAt     time.Time              `json:"started_at"`
	Window        WindowResponse         `json:"window"`
	Streams       []StreamStatusResponse `json:"streams"`
	Done          bool                   `json:"done"`
	Warnings      []WarningResponse      `json:"warnings"`
	Versions      map[string]uint64      `json:"versions"`
	PendingEvents int                    `json:"pending_events"`
}

type UserRowResponse struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	Username     string    `json:"username"`
	TotalMessage int64     `json:"total_message"`
	TotalWord    int64     `json:"total_word"`
	TotalChar    int64     `json:"total_char"`
	AverageWord  int64     `json:"average_word"`
	AverageChar  int64     `json:"average_char"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
}

type UsersResponse struct {
	Version uint64            `json:"version"`
	Window  WindowResponse    `json:"window"`
	Rows    []UserRowResponse `json:"rows"`
}

type ChannelRowResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Resolved       bool      `json:"resolved"`
	TotalMessage   int64     `json:"total_message"`
	DeletedMessage int64     `json:"deleted_message"`
	TotalWord      int64     `json:"total_word"`
	TotalChar      int64     `json:"total_char"`
	AverageWord    int64     `json:"average_word"`
	AverageChar    int64     `json:"average_char"`
	UniqueUsers    int64     `json:"unique_users"`
	FirstSeen      time.Time `json:"first_seen"`
	LastSeen       time.Time `json:"last_seen"`
}

type ChannelsResponse struct {
	Version uint64               `json:"version"`
	Window  WindowResponse       `json:"window"`
	Rows    []ChannelRowResponse `json:"rows"`
}

type PhraseRowResponse struct {
	Phrase string `json:"phrase"`
	Hits   int64  `json:"hits"`
}

type PhrasesResponse struct {
	Version    uint64              `json:"version"`
	Window     WindowResponse      `json:"window"`
	WindowSize int                 `json:"window_size"`
	Rows       []PhraseRowResponse `json:"rows"`
}

type SeriesPointResponse struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type SeriesLineResponse struct {
	Name   string                `json:"name"`
	Points []SeriesPointResponse `json:"points"`
}

type SeriesResponse struct {
	Version     uint64               `json:"version"`
	Window      WindowResponse       `json:"window"`
	Granularity string               `json:"granularity"`
	Series      []SeriesLineResponse `json:"series"`
}

func toWindowResponse(w usecase.WindowState) WindowResponse {
	resp := WindowResponse{Observed: w.Observed}
	if w.Observed {
		resp.From = w.From.String()
		resp.To = w.To.String()
		resp.Start = w.Start.String()
		resp.End = w.End.String()
	}
	return resp
}

func toSeriesResponse(res usecase.SeriesResult) SeriesResponse {
	resp := SeriesResponse{
		Version:     res.Version,
		Window:      toWindowResponse(res.Window),
		Granularity: res.Granularity.String(),
		Series:      make([]SeriesLineResponse, 0, len(res.Series)),
	}
	for _, s := range res.Series {
		resp.Series = append(resp.Series, toSeriesLine(s))
	}
	return resp
}

func toSeriesLine(s domain.Series) SeriesLineResponse {
	line := SeriesLineResponse{Name: s.Name, Points: make([]SeriesPointResponse, 0, len(s.Points))}
	for _, p := range s.Points {
		line.Points = append(line.Points, SeriesPointResponse{Bucket: p.Bucket, Value: p.Value})
	}
	return line
}
