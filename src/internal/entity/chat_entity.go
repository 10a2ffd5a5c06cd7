package entity

import "time"

type ChatRoom struct {
	ID        string    `db:"id" gorm:"primaryKey;type:char(36)"`
	ChatID    string    `db:"chat_id" gorm:"type:char(36);not null;uniqueIndex"`
	JobPostID string    `db:"job_post_id" gorm:"type:char(36);not null;uniqueIndex:uq_chatroom_post_client_driver"`
	ClientID  string    `db:"client_id" gorm:"type:char(36);not null;uniqueIndex:uq_chatroom_post_client_driver"`
	DriverID  string    `db:"driver_id" gorm:"type:char(36);not null;uniqueIndex:uq_chatroom_post_client_driver"`
	CreatedAt time.Time `db:"created_at"`

	JobPost *JobPost `db:"-" gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
	Client  *Client  `db:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Driver  *Driver  `db:"-" gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

// ChatMessage sender and receiver are user ids: one is the room's client user, the other its driver user.
type ChatMessage struct {
	ID         string    `db:"id" gorm:"primaryKey;type:char(36)"`
	ChatRoomID string    `db:"chat_room_id" gorm:"type:char(36);not null;index"`
	SenderID   string    `db:"sender_id" gorm:"type:char(36);not null;index"`
	ReceiverID string    `db:"receiver_id" gorm:"type:char(36);not null;index"`
	Message    string    `db:"message" gorm:"type:text;not null"`
	ReadStatus bool      `db:"read_status" gorm:"not null;default:false"`
	CreatedAt  time.Time `db:"created_at"`

	ChatRoom *ChatRoom `db:"-" gorm:"foreignKey:ChatRoomID;constraint:OnDelete:CASCADE"`
}

func (ChatMessage) TableName() string { return "client_driver_chats" }

type ChatMessageFilter struct {
	ChatRoomID *string
	// ParticipantID matches messages sent or received by the user.
	ParticipantID *string
	ReceiverID    *string
	Unread        *bool
}
