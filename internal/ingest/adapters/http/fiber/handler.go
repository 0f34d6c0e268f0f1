package fiber

import (
	"context"
	"errors"
	"net/http"

	"guild-analytics-service/internal/ingest/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreRecordUseCase interface {
	StoreMessage(ctx context.Context, in usecase.StoreMessageInput) (bool, error)
	BulkStoreMessages(ctx context.Context, in usecase.BulkStoreMessagesInput) (usecase.BulkResult, error)
	StoreMemberCounts(ctx context.Context, in usecase.StoreMemberCountsInput) (usecase.BulkResult, error)
	StoreMemberActivities(ctx context.Context, in usecase.StoreMemberActivitiesInput) (usecase.BulkResult, error)
	RenameChannel(ctx context.Context, in usecase.RenameChannelInput) error
}

type RecordHandler struct {
	storeUC StoreRecordUseCase
}

func NewRecordHandler(storeUC StoreRecordUseCase) *RecordHandler {
	return &RecordHandler{storeUC: storeUC}
}

// Register mounts the ingestion routes on r.
func (h *RecordHandler) Register(r fiber.Router) {
	g := r.Group("/guilds/:guild")
	g.Post("/messages", h.CreateMessage)
	g.Post("/messages/bulk", h.BulkCreateMessages)
	g.Post("/member-counts", h.CreateMemberCounts)
	g.Post("/member-activities", h.CreateMemberActivities)
	g.Put("/channels/:channel", h.RenameChannel)
}

// CreateMessage godoc
// @Summary Append a message record
// @Description Stores a single message or deletion with idempotency handling
// @Tags Ingest
// @Accept json
// @Produce json
// @Param guild path string true "Guild ID"
// @Param request body CreateMessageRequest true "Message payload"
// @Success 201 {object} CreateRecordResponse
// @Success 200 {object} CreateRecordResponse "Duplicate record"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guilds/{guild}/messages [post]
func (h *RecordHandler) CreateMessage(c *fiber.Ctx) error {
	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	created, err := h.storeUC.StoreMessage(c.UserContext(), toMessageInput(c.Params("guild"), req))
	if err != nil {
		return writeError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateRecordResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(CreateRecordResponse{Status: "created"})
}

// BulkCreateMessages godoc
// @Summary Bulk append message records
// @Description Validates every record, then stores them individually
// @Tags Ingest
// @Accept json
// @Produce json
// @Param guild path string true "Guild ID"
// @Param request body BulkCreateMessagesRequest true "Bulk message payload"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guilds/{guild}/messages/bulk [post]
func (h *RecordHandler) BulkCreateMessages(c *fiber.Ctx) error {
	var req BulkCreateMessagesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}
	if len(req.Messages) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "messages_list_required"})
	}

	guildID := c.Params("guild")
	inputs := make([]usecase.StoreMessageInput, len(req.Messages))
	for i, m := range req.Messages {
		inputs[i] = toMessageInput(guildID, m)
	}

	result, err := h.storeUC.BulkStoreMessages(c.UserContext(), usecase.BulkStoreMessagesInput{Messages: inputs})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(BulkCreateResponse{Created: result.Created, Duplicates: result.Duplicates})
}

// CreateMemberCounts godoc
// @Summary Append member count samples
// @Tags Ingest
// @Accept json
// @Produce json
// @Param guild path string true "Guild ID"
// @Param request body CreateMemberCountsRequest true "Member count samples"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guilds/{guild}/member-counts [post]
func (h *RecordHandler) CreateMemberCounts(c *fiber.Ctx) error {
	var req CreateMemberCountsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}
	if len(req.Samples) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "samples_list_required"})
	}

	in := usecase.StoreMemberCountsInput{GuildID: c.Params("guild")}
	for _, s := range req.Samples {
		in.Samples = append(in.Samples, usecase.MemberCountInput{Timestamp: s.Timestamp, TotalMembers: s.TotalMembers})
	}

	result, err := h.storeUC.StoreMemberCounts(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(BulkCreateResponse{Created: result.Created, Duplicates: result.Duplicates})
}

// CreateMemberActivities godoc
// @Summary Append member join/leave records
// @Tags Ingest
// @Accept json
// @Produce json
// @Param guild path string true "Guild ID"
// @Param request body CreateMemberActivitiesRequest true "Member activity samples"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guilds/{guild}/member-activities [post]
func (h *RecordHandler) CreateMemberActivities(c *fiber.Ctx) error {
	var req CreateMemberActivitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}
	if len(req.Samples) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "samples_list_required"})
	}

	in := usecase.StoreMemberActivitiesInput{GuildID: c.Params("guild")}
	for _, s := range req.Samples {
		in.Samples = append(in.Samples, usecase.MemberActivityInput{UserID: s.UserID, Timestamp: s.Timestamp, IsJoin: s.IsJoin})
	}

	result, err := h.storeUC.StoreMemberActivities(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(BulkCreateResponse{Created: result.Created, Duplicates: result.Duplicates})
}

// RenameChannel godoc
// @Summary Store a channel name
// @Description Persists the name and announces it to a live session of the guild
// @Tags Ingest
// @Accept json
// @Param guild path string true "Guild ID"
// @Param channel path string true "Channel ID"
// @Param request body RenameChannelRequest true "Channel name"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guilds/{guild}/channels/{channel} [put]
func (h *RecordHandler) RenameChannel(c *fiber.Ctx) error {
	var req RenameChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	err := h.storeUC.RenameChannel(c.UserContext(), usecase.RenameChannelInput{
		GuildID:   c.Params("guild"),
		ChannelID: c.Params("channel"),
		Name:      req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func toMessageInput(guildID string, m CreateMessageRequest) usecase.StoreMessageInput {
	return usecase.StoreMessageInput{
		GuildID:           guildID,
		ChannelID:         m.ChannelID,
		MessageID:         m.MessageID,
		SenderID:          m.SenderID,
		SenderDisplayName: m.SenderDisplayName,
		SenderUsername:    m.SenderUsername,
		Content:           m.Content,
		StrippedContent:   m.StrippedContent,
		Timestamp:         m.Timestamp,
		DeletedAt:         m.DeletedAt,
	}
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRecord),
		errors.Is(err, usecase.ErrFutureTime):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_record",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
