package model

import "time"

type PostMessageRequest struct {
	JobPostID string `json:"job_post" validate:"required,uuid"`
	DriverID  string `json:"driver" validate:"required,uuid"`
	Message   string `json:"message" validate:"required,max=5000"`
}

type ChatMessageResponse struct {
	ID         string    `json:"id"`
	ChatRoomID string    `json:"chat_room"`
	ChatID     string    `json:"chat_id,omitempty"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	Message    string    `json:"message"`
	ReadStatus bool      `json:"read_status"`
	CreatedAt  time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
