package memory

import (
	"context"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type chatRoomRepo struct{ s *Store }

func (r *chatRoomRepo) Create(_ context.Context, room *entity.ChatRoom) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobPosts[room.JobPostID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.clients[room.ClientID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.drivers[room.DriverID]; !ok {
		return repository.ErrReference
	}
	for _, c := range r.s.data.chatRooms {
		if c.ID == room.ID || c.ChatID == room.ChatID ||
			(c.JobPostID == room.JobPostID && c.ClientID == room.ClientID && c.DriverID == room.DriverID) {
			return repository.ErrDuplicate
		}
	}
	r.s.data.chatRooms[room.ID] = *room
	return nil
}

func (r *chatRoomRepo) FindByID(_ context.Context, id string) (*entity.ChatRoom, error) {
	defer r.s.lock()()
	c, ok := r.s.data.chatRooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *chatRoomRepo) FindByParticipants(_ context.Context, jobPostID, clientID, driverID string) (*entity.ChatRoom, error) {
	defer r.s.lock()()
	for _, c := range r.s.data.chatRooms {
		if c.JobPostID == jobPostID && c.ClientID == clientID && c.DriverID == driverID {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Rooms lists every chat room; used by tests to assert room uniqueness.
func (s *Store) Rooms() []entity.ChatRoom {
	defer s.lock()()
	return collect(s.data.chatRooms, func(entity.ChatRoom) bool { return true },
		func(c entity.ChatRoom) (time.Time, string) { return c.CreatedAt, c.ID })
}

type chatMessageRepo struct{ s *Store }

func (r *chatMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	defer r.s.lock()()
	if _, ok := r.s.data.chatRooms[message.ChatRoomID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.chatMessages[message.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.data.chatMessages[message.ID] = *message
	return nil
}

func (r *chatMessageRepo) FindByID(_ context.Context, id string) (*entity.ChatMessage, error) {
	defer r.s.lock()()
	m, ok := r.s.data.chatMessages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *chatMessageRepo) List(_ context.Context, filter entity.ChatMessageFilter) ([]entity.ChatMessage, error) {
	defer r.s.lock()()
	return collect(r.s.data.chatMessages, func(m entity.ChatMessage) bool {
		if !matches(filter.ChatRoomID, m.ChatRoomID) || !matches(filter.ReceiverID, m.ReceiverID) {
			return false
		}
		if filter.ParticipantID != nil && m.SenderID != *filter.ParticipantID && m.ReceiverID != *filter.ParticipantID {
			return false
		}
		if filter.Unread != nil && m.ReadStatus == *filter.Unread {
			return false
		}
		return true
	}, func(m entity.ChatMessage) (time.Time, string) { return m.CreatedAt, m.ID }), nil
}

func (r *chatMessageRepo) MarkRead(_ context.Context, id string) error {
	defer r.s.lock()()
	m, ok := r.s.data.chatMessages[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.ReadStatus = true
	r.s.data.chatMessages[id] = m
	return nil
}

func (r *chatMessageRepo) CountUnread(_ context.Context, receiverID string) (int, error) {
	defer r.s.lock()()
	count := 0
	for _, m := range r.s.data.chatMessages {
		if m.ReceiverID == receiverID && !m.ReadStatus {
			count++
		}
	}
	return count, nil
}
