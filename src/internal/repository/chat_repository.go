package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

const (
	chatRoomColumns    = `id, chat_id, job_post_id, client_id, driver_id, created_at`
	chatMessageColumns = `id, chat_room_id, sender_id, receiver_id, message, read_status, created_at`
)

type chatRoomSQL struct{ store *SQLStore }

func (r *chatRoomSQL) Create(ctx context.Context, room *entity.ChatRoom) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO chat_rooms (`+chatRoomColumns+`)
		VALUES (:id, :chat_id, :job_post_id, :client_id, :driver_id, :created_at)`, room)
	return err
}

func (r *chatRoomSQL) FindByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := r.store.get(ctx, &room, `SELECT `+chatRoomColumns+` FROM chat_rooms WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRoomSQL) FindByParticipants(ctx context.Context, jobPostID, clientID, driverID string) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	query := `SELECT ` + chatRoomColumns + ` FROM chat_rooms WHERE job_post_id = ? AND client_id = ? AND driver_id = ?`
	if err := r.store.get(ctx, &room, query, jobPostID, clientID, driverID); err != nil {
		return nil, err
	}
	return &room, nil
}

type chatMessageSQL struct{ store *SQLStore }

func (r *chatMessageSQL) Create(ctx context.Context, message *entity.ChatMessage) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO client_driver_chats (`+chatMessageColumns+`)
		VALUES (:id, :chat_room_id, :sender_id, :receiver_id, :message, :read_status, :created_at)`, message)
	return err
}

func (r *chatMessageSQL) FindByID(ctx context.Context, id string) (*entity.ChatMessage, error) {
	var message entity.ChatMessage
	if err := r.store.get(ctx, &message, `SELECT `+chatMessageColumns+` FROM client_driver_chats WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *chatMessageSQL) List(ctx context.Context, filter entity.ChatMessageFilter) ([]entity.ChatMessage, error) {
	var cond conditions
	if filter.ChatRoomID != nil {
		cond.add("chat_room_id = ?", *filter.ChatRoomID)
	}
	if filter.ParticipantID != nil {
		cond.add("(sender_id = ? OR receiver_id = ?)", *filter.ParticipantID, *filter.ParticipantID)
	}
	if filter.ReceiverID != nil {
		cond.add("receiver_id = ?", *filter.ReceiverID)
	}
	if filter.Unread != nil {
		cond.add("read_status = ?", !*filter.Unread)
	}
	messages := []entity.ChatMessage{}
	query := `SELECT ` + chatMessageColumns + ` FROM client_driver_chats` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &messages, query, cond.args...); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatMessageSQL) MarkRead(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `UPDATE client_driver_chats SET read_status = TRUE WHERE id = ?`, id))
}

func (r *chatMessageSQL) CountUnread(ctx context.Context, receiverID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM client_driver_chats WHERE receiver_id = ? AND read_status = FALSE`
	if err := r.store.get(ctx, &count, query, receiverID); err != nil {
		return 0, err
	}
	return count, nil
}
