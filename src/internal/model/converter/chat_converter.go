package converter

import (
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"

	"github.com/google/uuid"
)

// ChatMessageToResponse renders a message; room may be nil when only the message is at hand.
func ChatMessageToResponse(message *entity.ChatMessage, room *entity.ChatRoom) *model.ChatMessageResponse {
	res := &model.ChatMessageResponse{
		ID:         message.ID,
		ChatRoomID: message.ChatRoomID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Message:    message.Message,
		ReadStatus: message.ReadStatus,
		CreatedAt:  message.CreatedAt,
	}
	if room != nil {
		res.ChatID = room.ChatID
	}
	return res
}

func ChatMessageToEvent(message *entity.ChatMessage, room *entity.ChatRoom) *model.ChatMessageEvent {
	return &model.ChatMessageEvent{
		ID:         uuid.NewString(),
		MessageID:  message.ID,
		ChatID:     room.ChatID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		OccurredAt: time.Now().UTC(),
	}
}
