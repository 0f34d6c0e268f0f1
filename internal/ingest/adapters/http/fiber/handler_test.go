package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"guild-analytics-service/internal/ingest/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeStoreRecordUseCase struct {
	StoreMessageFunc    func(ctx context.Context, in usecase.StoreMessageInput) (bool, error)
	BulkMessagesFunc    func(ctx context.Context, in usecase.BulkStoreMessagesInput) (usecase.BulkResult, error)
	MemberCountsFunc    func(ctx context.Context, in usecase.StoreMemberCountsInput) (usecase.BulkResult, error)
	MemberActivityFunc  func(ctx context.Context, in usecase.StoreMemberActivitiesInput) (usecase.BulkResult, error)
	RenameChannelFunc   func(ctx context.Context, in usecase.RenameChannelInput) error
	LastMessageInput    usecase.StoreMessageInput
	LastBulkInput       usecase.BulkStoreMessagesInput
	LastCountsInput     usecase.StoreMemberCountsInput
	LastActivitiesInput usecase.StoreMemberActivitiesInput
	LastRenameInput     usecase.RenameChannelInput
	called              bool
}

func (f *fakeStoreRecordUseCase) StoreMessage(ctx context.Context, in usecase.StoreMessageInput) (bool, error) {
	f.called = true
	f.LastMessageInput = in
	if f.StoreMessageFunc != nil {
		return f.StoreMessageFunc(ctx, in)
	}
	return true, nil
}

func (f *fakeStoreRecordUseCase) BulkStoreMessages(ctx context.Context, in usecase.BulkStoreMessagesInput) (usecase.BulkResult, error) {
	f.called = true
	f.LastBulkInput = in
	if f.BulkMessagesFunc != nil {
		return f.BulkMessagesFunc(ctx, in)
	}
	return usecase.BulkResult{}, nil
}

func (f *fakeStoreRecordUseCase) StoreMemberCounts(ctx context.Context, in usecase.StoreMemberCountsInput) (usecase.BulkResult, error) {
	f.called = true
	f.LastCountsInput = in
	if f.MemberCountsFunc != nil {
		return f.MemberCountsFunc(ctx, in)
	}
	return usecase.BulkResult{Created: len(in.Samples)}, nil
}

func (f *fakeStoreRecordUseCase) StoreMemberActivities(ctx context.Context, in usecase.StoreMemberActivitiesInput) (usecase.BulkResult, error) {
	f.called = true
	f.LastActivitiesInput = in
	if f.MemberActivityFunc != nil {
		return f.MemberActivityFunc(ctx, in)
	}
	return usecase.BulkResult{Created: len(in.Samples)}, nil
}

func (f *fakeStoreRecordUseCase) RenameChannel(ctx context.Context, in usecase.RenameChannelInput) error {
	f.called = true
	f.LastRenameInput = in
	if f.RenameChannelFunc != nil {
		return f.RenameChannelFunc(ctx, in)
	}
	return nil
}

// helper: create fiber app and routes
func setupTestApp(uc StoreRecordUseCase) *fiber.App {
	app := fiber.New()
	NewRecordHandler(uc).Register(app)
	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

// ------------------------------------------------------------
// CreateMessage
// ------------------------------------------------------------

func TestCreateMessage_Created(t *testing.T) {
	uc := &fakeStoreRecordUseCase{}
	app := setupTestApp(uc)

	deletedAt := int64(1700000100)
	resp, body := doRequest(t, app, http.MethodPost, "/guilds/g1/messages", CreateMessageRequest{
		ChannelID: "c1",
		MessageID: "m1",
		SenderID:  "u1",
		Content:   "hi",
		Timestamp: 1700000000,
		DeletedAt: &deletedAt,
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.StatusCode, body)
	}
	in := uc.LastMessageInput
	if in.GuildID != "g1" || in.ChannelID != "c1" || in.MessageID != "m1" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.DeletedAt == nil || *in.DeletedAt != deletedAt {
		t.Fatalf("expected deleted_at %d, got %v", deletedAt, in.DeletedAt)
	}

	var out CreateRecordResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if out.Status != "created" {
		t.Fatalf("expected status created, got %q", out.Status)
	}
}

func TestCreateMessage_Duplicate(t *testing.T) {
	uc := &fakeStoreRecordUseCase{
		StoreMessageFunc: func(ctx context.Context, in usecase.StoreMessageInput) (bool, error) {
			return false, nil
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/guilds/g1/messages", CreateMessageRequest{MessageID: "m1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte(`"duplicate"`)) {
		t.Fatalf("expected duplicate status, got %s", body)
	}
}

func TestCreateMessage_InvalidJSON(t *testing.T) {
	uc := &fakeStoreRecordUseCase{}
	app := setupTestApp(uc)

	req := httptest.NewRequest(http.MethodPost, "/guilds/g1/messages", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if uc.called {
		t.Fatalf("expected usecase not to be called")
	}
}

func TestCreateMessage_ValidationError(t *testing.T) {
	uc := &fakeStoreRecordUseCase{
		StoreMessageFunc: func(ctx context.Context, in usecase.StoreMessageInput) (bool, error) {
			return false, usecase.ErrFutureTime
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/guilds/g1/messages", CreateMessageRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("invalid_record")) {
		t.Fatalf("expected invalid_record, got %s", body)
	}
}

func TestCreateMessage_InternalError(t *testing.T) {
	uc := &fakeStoreRecordUseCase{
		StoreMessageFunc: func(ctx context.Context, in usecase.StoreMessageInput) (bool, error) {
			return false, errors.New("db down")
		},
	}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPost, "/guilds/g1/messages", CreateMessageRequest{})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// BulkCreateMessages
// ------------------------------------------------------------

func TestBulkCreateMessages_Success(t *testing.T) {
	uc := &fakeStoreRecordUseCase{
		BulkMessagesFunc: func(ctx context.Context, in usecase.BulkStoreMessagesInput) (usecase.BulkResult, error) {
			return usecase.BulkResult{Created: 1, Duplicates: 1}, nil
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/guilds/g1/messages/bulk", BulkCreateMessagesRequest{
		Messages: []CreateMessageRequest{{MessageID: "m1"}, {MessageID: "m2"}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	for _, m := range uc.LastBulkInput.Messages {
		if m.GuildID != "g1" {
			t.Fatalf("expected guild from path on every message, got %q", m.GuildID)
		}
	}

	var out BulkCreateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if out.Created != 1 || out.Duplicates != 1 {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestBulkCreateMessages_EmptyList(t *testing.T) {
	uc := &fakeStoreRecordUseCase{}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/guilds/g1/messages/bulk", BulkCreateMessagesRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("messages_list_required")) {
		t.Fatalf("unexpected body: %s", body)
	}
	if uc.called {
		t.Fatalf("expected usecase not to be called")
	}
}

// ------------------------------------------------------------
// Members
// ------------------------------------------------------------

func TestCreateMemberCounts(t *testing.T) {
	uc := &fakeStoreRecordUseCase{}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPost, "/guilds/g1/member-counts", CreateMemberCountsRequest{
		Samples: []MemberCountItem{{Timestamp: 1700000000, TotalMembers: 12}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if uc.LastCountsInput.GuildID != "g1" || uc.LastCountsInput.Samples[0].TotalMembers != 12 {
		t.Fatalf("unexpected input: %+v", uc.LastCountsInput)
	}
}

func TestCreateMemberCounts_EmptyList(t *testing.T) {
	app := setupTestApp(&fakeStoreRecordUseCase{})

	resp, _ := doRequest(t, app, http.MethodPost, "/guilds/g1/member-counts", CreateMemberCountsRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateMemberActivities(t *testing.T) {
	uc := &fakeStoreRecordUseCase{}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPost, "/guilds/g1/member-activities", CreateMemberActivitiesRequest{
		Samples: []MemberActivityItem{{UserID: "u1", Timestamp: 1700000000, IsJoin: true}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	s := uc.LastActivitiesInput.Samples[0]
	if s.UserID != "u1" || !s.IsJoin {
		t.Fatalf("unexpected sample: %+v", s)
	}
}

// ------------------------------------------------------------
// RenameChannel
// ------------------------------------------------------------

func TestRenameChannel(t *testing.T) {
	uc := &fakeStoreRecordUseCase{}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPut, "/guilds/g1/channels/c7", RenameChannelRequest{Name: "random"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	want := usecase.RenameChannelInput{GuildID: "g1", ChannelID: "c7", Name: "random"}
	if uc.LastRenameInput != want {
		t.Fatalf("expected %+v, got %+v", want, uc.LastRenameInput)
	}
}

func TestRenameChannel_Invalid(t *testing.T) {
	uc := &fakeStoreRecordUseCase{
		RenameChannelFunc: func(ctx context.Context, in usecase.RenameChannelInput) error {
			return usecase.ErrInvalidRecord
		},
	}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPut, "/guilds/g1/channels/c7", RenameChannelRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
