package fiber

import (
	"errors"
	"net/http"

	"guild-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

var errInvalidLimit = errors.New("invalid 'limit' parameter")

func tableInput(c *fiber.Ctx) (usecase.TableInput, error) {
	limit, err := queryInt(c, "limit")
	if err != nil || limit < 0 {
		return usecase.TableInput{}, errInvalidLimit
	}
	return usecase.TableInput{
		GuildID: c.Params("guild"),
		SortBy:  c.Query("sort", ""),
		Order:   c.Query("order", ""),
		Limit:   limit,
	}, nil
}

// GetUsers godoc
// @Summary User table
// @Description Per-user message statistics inside the selected date window
// @Tags Views
// @Produce json
// @Param guild path string true "Guild ID"
// @Param sort query string false "Column: name | username | messages | words | chars | average_word | average_char | first_seen | last_seen"
// @Param order query string false "asc | desc (default desc)"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} UsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/users [get]
func (h *AnalyticsHandler) GetUsers(c *fiber.Ctx) error {
	in, err := tableInput(c)
	if err != nil {
		return badQuery(c, err.Error())
	}

	res, err := h.uc.Users(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	resp := UsersResponse{
		Version: res.Version,
		Window:  toWindowResponse(res.Window),
		Rows:    make([]UserRowResponse, 0, len(res.Rows)),
	}
	for _, r := range res.Rows {
		resp.Rows = append(resp.Rows, UserRowResponse{
			ID:           r.ID,
			DisplayName:  r.DisplayName,
			Username:     r.Username,
			TotalMessage: r.TotalMessage,
			TotalWord:    r.TotalWord,
			TotalChar:    r.TotalChar,
			AverageWord:  r.AverageWord,
			AverageChar:  r.AverageChar,
			FirstSeen:    r.FirstSeen,
			LastSeen:     r.LastSeen,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// GetChannels godoc
// @Summary Channel table
// @Description Per-channel message statistics inside the selected date window
// @Tags Views
// @Produce json
// @Param guild path string true "Guild ID"
// @Param sort query string false "Column: name | messages | deleted | words | chars | average_word | average_char | unique_users | first_seen | last_seen"
// @Param order query string false "asc | desc (default desc)"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} ChannelsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/channels [get]
func (h *AnalyticsHandler) GetChannels(c *fiber.Ctx) error {
	in, err := tableInput(c)
	if err != nil {
		return badQuery(c, err.Error())
	}

	res, err := h.uc.Channels(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	resp := ChannelsResponse{
		Version: res.Version,
		Window:  toWindowResponse(res.Window),
		Rows:    make([]ChannelRowResponse, 0, len(res.Rows)),
	}
	for _, r := range res.Rows {
		resp.Rows = append(resp.Rows, ChannelRowResponse{
			ID:             r.ID,
			Name:           r.Name,
			Resolved:       r.Resolved,
			TotalMessage:   r.TotalMessage,
			DeletedMessage: r.DeletedMessage,
			TotalWord:      r.TotalWord,
			TotalChar:      r.TotalChar,
			AverageWord:    r.AverageWord,
			AverageChar:    r.AverageChar,
			UniqueUsers:    r.UniqueUsers,
			FirstSeen:      r.FirstSeen,
			LastSeen:       r.LastSeen,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// GetPhrases godoc
// @Summary Phrase table
// @Description Counts every run of window_size consecutive words inside the selected date window
// @Tags Views
// @Produce json
// @Param guild path string true "Guild ID"
// @Param window_size query int false "Words per phrase, 1-20"
// @Param sort query string false "Column: phrase | hits"
// @Param order query string false "asc | desc (default desc)"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} PhrasesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/phrases [get]
func (h *AnalyticsHandler) GetPhrases(c *fiber.Ctx) error {
	in, err := tableInput(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	size, err := queryInt(c, "window_size")
	if err != nil {
		return badQuery(c, "invalid 'window_size' parameter")
	}

	res, err := h.uc.Phrases(c.UserContext(), usecase.PhrasesInput{TableInput: in, WindowSize: size})
	if err != nil {
		return writeError(c, err)
	}

	resp := PhrasesResponse{
		Version:    res.Version,
		Window:     toWindowResponse(res.Window),
		WindowSize: res.WindowSize,
		Rows:       make([]PhraseRowResponse, 0, len(res.Rows)),
	}
	for _, r := range res.Rows {
		resp.Rows = append(resp.Rows, PhraseRowResponse{Phrase: r.Phrase, Hits: r.Hits})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// GetSeries godoc
// @Summary Message time series
// @Description Message counts per bucket inside the selected date window
// @Tags Views
// @Produce json
// @Param guild path string true "Guild ID"
// @Param granularity query string false "hour | day | week | month (default day)"
// @Param channels query string false "Comma separated channel ids; empty means all"
// @Param metrics query string false "Comma separated: all, deleted (default both)"
// @Param actors query string false "Comma separated user ids to plot"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/series [get]
func (h *AnalyticsHandler) GetSeries(c *fiber.Ctx) error {
	metrics := queryList(c, "metrics")
	if len(metrics) == 0 {
		metrics = []string{usecase.MetricAllMessages, usecase.MetricDeletedMessages}
	}

	in := usecase.SeriesInput{
		GuildID:     c.Params("guild"),
		Granularity: c.Query("granularity", ""),
		Channels:    queryList(c, "channels"),
		Metrics:     metrics,
		Actors:      queryList(c, "actors"),
	}

	res, err := h.uc.Series(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toSeriesResponse(res))
}

// GetMembers godoc
// @Summary Member time series
// @Description Member count, joins and leaves per bucket inside the selected date window
// @Tags Views
// @Produce json
// @Param guild path string true "Guild ID"
// @Param granularity query string false "hour | day | week | month (default day)"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guilds/{guild}/members [get]
func (h *AnalyticsHandler) GetMembers(c *fiber.Ctx) error {
	res, err := h.uc.Members(c.UserContext(), usecase.MembersInput{
		GuildID:     c.Params("guild"),
		Granularity: c.Query("granularity", ""),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toSeriesResponse(res))
}
