package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"guild-analytics-service/internal/analytics/core/aggregate"
	"guild-analytics-service/internal/analytics/core/domain"
	"guild-analytics-service/internal/analytics/core/paging"
	"guild-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsUseCase interface {
	Connect(ctx context.Context, guildID string) (usecase.SessionInfo, error)
	Reset(ctx context.Context, guildID string) error
	Status(ctx context.Context, guildID string) (usecase.SessionStatus, error)
	SetWindow(ctx context.Context, in usecase.WindowInput) (usecase.WindowState, error)
	AnnounceChannels(ctx context.Context, guildID string, names map[string]string) error
	RetryStream(ctx context.Context, guildID string, kind domain.StreamKind) error

	Users(ctx context.Context, in usecase.TableInput) (usecase.UsersResult, error)
	Channels(ctx context.Context, in usecase.TableInput) (usecase.ChannelsResult, error)
	Phrases(ctx context.Context, in usecase.PhrasesInput) (usecase.PhrasesResult, error)
	Series(ctx context.Context, in usecase.SeriesInput) (usecase.SeriesResult, error)
	Members(ctx context.Context, in usecase.MembersInput) (usecase.SeriesResult, error)
}

type AnalyticsHandler struct {
	uc AnalyticsUseCase
}

func NewAnalyticsHandler(uc AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Register mounts every analytics route on r.
func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Delete("/guilds/:guild", h.Reset)

	g := r.Group("/guilds/:guild")
	g.Post("/connect", h.Connect)
	g.Get("/status", h.Status)
	g.Put("/window", h.SetWindow)
	g.Put("/channel-names", h.AnnounceChannels)
	g.Post("/streams/:kind/retry", h.RetryStream)

	g.Get("/users", h.GetUsers)
	g.Get("/channels", h.GetChannels)
	g.Get("/phrases", h.GetPhrases)
	g.Get("/series", h.GetSeries)
	g.Get("/members", h.GetMembers)
}

// Connect godoc
// @Summary Connect a guild
// @Description Opens an analytics session and starts fetching every stream of the guild
// @Tags Sessions
// @Produce json
// @Param guild path string true "Guild ID"
// @Success 201 {object} ConnectResponse
// @Success 200 {object} ConnectResponse "Already connected"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guilds/{guild}/connect [post]
func (h *AnalyticsHandler) Connect(c *fiber.Ctx) error {
	info, err := h.uc.Connect(c.UserContext(), c.Params("guild"))
	if err != nil {
		return writeError(c, err)
	}

	status := http.StatusCreated
	if info.Resumed {
		status = http.StatusOK
	}
	return c.Status(status).JSON(ConnectResponse{
		SessionID: info.SessionID.String(),
		GuildID:   info.GuildID,
		StartedAt: info.StartedAt,
		Resumed:   info.Resumed,
	})
}

// Reset godoc
// @Summary Reset a guild session
// @Description Discards every aggregate of the guild; previously returned views are invalid
// @Tags Sessions
// @Produce json
// @Param guild path string true "Guild ID"
// @Success 200 {object} ResetResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild} [delete]
func (h *AnalyticsHandler) Reset(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	if err := h.uc.Reset(c.UserContext(), guildID); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(ResetResponse{Status: "reset", GuildID: guildID})
}

// Status godoc
// @Summary Session status
// @Description Returns stream progress, the date window, warnings and view versions
// @Tags Sessions
// @Produce json
// @Param guild path string true "Guild ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/status [get]
func (h *AnalyticsHandler) Status(c *fiber.Ctx) error {
	st, err := h.uc.Status(c.UserContext(), c.Params("guild"))
	if err != nil {
		return writeError(c, err)
	}

	resp := StatusResponse{
		SessionID:     st.SessionID.String(),
		GuildID:       st.GuildID,
		StartedAt:     st.StartedAt,
		Window:        toWindowResponse(st.Window),
		Streams:       make([]StreamStatusResponse, 0, len(st.Streams)),
		Done:          st.Done,
		Warnings:      make([]WarningResponse, 0, len(st.Warnings)),
		Versions:      st.Versions,
		PendingEvents: st.PendingEvents,
	}
	for _, s := range st.Streams {
		resp.Streams = append(resp.Streams, StreamStatusResponse{
			Kind:     s.Kind.String(),
			Page:     s.Page,
			State:    s.State.String(),
			Ingested: s.Ingested,
		})
	}
	for _, w := range st.Warnings {
		resp.Warnings = append(resp.Warnings, WarningResponse{At: w.At, Stream: w.Stream, Page: w.Page, Message: w.Message})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// SetWindow godoc
// @Summary Move the date window
// @Description Each bound is clamped against the other, so from never passes to
// @Tags Sessions
// @Accept json
// @Produce json
// @Param guild path string true "Guild ID"
// @Param request body SetWindowRequest true "Window bounds"
// @Success 200 {object} WindowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/window [put]
func (h *AnalyticsHandler) SetWindow(c *fiber.Ctx) error {
	var req SetWindowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	in := usecase.WindowInput{GuildID: c.Params("guild")}
	if req.From != "" {
		d, err := domain.ParseDate(req.From)
		if err != nil {
			return badQuery(c, "invalid 'from' date")
		}
		in.From = &d
	}
	if req.To != "" {
		d, err := domain.ParseDate(req.To)
		if err != nil {
			return badQuery(c, "invalid 'to' date")
		}
		in.To = &d
	}

	w, err := h.uc.SetWindow(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toWindowResponse(w))
}

// AnnounceChannels godoc
// @Summary Announce channel names
// @Description Records channel names; channels shown with a placeholder name are backfilled
// @Tags Sessions
// @Accept json
// @Param guild path string true "Guild ID"
// @Param request body AnnounceChannelsRequest true "Channel id to name"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/channel-names [put]
func (h *AnalyticsHandler) AnnounceChannels(c *fiber.Ctx) error {
	var req AnnounceChannelsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}
	if len(req.Channels) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "channels_required"})
	}

	if err := h.uc.AnnounceChannels(c.UserContext(), c.Params("guild"), req.Channels); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RetryStream godoc
// @Summary Retry a stalled stream
// @Description Re-requests the page a stream failed to decode
// @Tags Sessions
// @Param guild path string true "Guild ID"
// @Param kind path string true "messages | member_counts | member_activities"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /guilds/{guild}/streams/{kind}/retry [post]
func (h *AnalyticsHandler) RetryStream(c *fiber.Ctx) error {
	kind, ok := domain.ParseStreamKind(c.Params("kind"))
	if !ok {
		return badQuery(c, "unknown stream kind")
	}
	if err := h.uc.RetryStream(c.UserContext(), c.Params("guild"), kind); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusAccepted)
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidGuild),
		errors.Is(err, usecase.ErrInvalidSort),
		errors.Is(err, usecase.ErrInvalidGranularity),
		errors.Is(err, usecase.ErrInvalidMetric),
		errors.Is(err, aggregate.ErrInvalidWindowSize),
		errors.Is(err, domain.ErrUnknownColumn):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrUnknownGuild):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "guild_not_connected",
			Message: err.Error(),
		})
	case errors.Is(err, paging.ErrNotStalled):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Error:   "stream_not_stalled",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrEngineStopped):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "engine_stopped",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func badQuery(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: msg,
	})
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	s := c.Query(key, "")
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// queryList splits a comma separated query value, dropping empty items.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, item := range strings.Split(c.Query(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
