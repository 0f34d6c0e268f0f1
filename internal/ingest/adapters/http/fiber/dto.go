package fiber

// CreateMessageRequest represents a message or deletion payload
// @Description Message record DTO; set deleted_at to record a deletion
type CreateMessageRequest struct {
	ChannelID         string `json:"channel_id"`
	MessageID         string `json:"message_id"`
	SenderID          string `json:"sender_id"`
	SenderDisplayName string `json:"sender_display_name"`
	SenderUsername    string `json:"sender_username"`
	Content           string `json:"content"`
	StrippedContent   string `json:"stripped_content"`
	Timestamp         int64  `json:"timestamp"`
	DeletedAt         *int64 `json:"deleted_at,omitempty"`
}

type CreateRecordResponse struct {
	Status string `json:"status" example:"created"`
}

type BulkCreateMessagesRequest struct {
	Messages []CreateMessageRequest `json:"messages"`
}

type MemberCountItem struct {
	Timestamp    int64 `json:"timestamp"`
	TotalMembers int64 `json:"total_members"`
}

type CreateMemberCountsRequest struct {
	Samples []MemberCountItem `json:"samples"`
}

type MemberActivityItem struct {
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
	IsJoin    bool   `json:"is_join"`
}

type CreateMemberActivitiesRequest struct {
	Samples []MemberActivityItem `json:"samples"`
}

type BulkCreateResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type RenameChannelRequest struct {
	Name string `json:"name" example:"general"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_record"`
	Message string `json:"message,omitempty" example:"invalid record"`
}
