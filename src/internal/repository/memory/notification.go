package memory

import (
	"context"
	"sync"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	defer r.s.lock()()
	if _, ok := r.s.data.users[notification.UserID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.notifications[notification.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.data.notifications[notification.ID] = *notification
	return nil
}

func (r *notificationRepo) FindByID(_ context.Context, id string) (*entity.Notification, error) {
	defer r.s.lock()()
	n, ok := r.s.data.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (r *notificationRepo) List(_ context.Context, filter entity.NotificationFilter) ([]entity.Notification, error) {
	defer r.s.lock()()
	return collect(r.s.data.notifications, func(n entity.Notification) bool {
		return matches(filter.UserID, n.UserID) && (filter.IsRead == nil || *filter.IsRead == n.IsRead)
	}, func(n entity.Notification) (time.Time, string) { return n.CreatedAt, n.ID }), nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id string) error {
	defer r.s.lock()()
	n, ok := r.s.data.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsRead = true
	r.s.data.notifications[id] = n
	return nil
}

func (r *notificationRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.notifications, id)
	return nil
}

type demoRequestRepo struct{ s *Store }

func (r *demoRequestRepo) Create(_ context.Context, request *entity.DemoRequest) error {
	defer r.s.lock()()
	if _, ok := r.s.data.demoRequests[request.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.data.demoRequests[request.ID] = *request
	return nil
}

// RefreshTokens is the in-process RefreshTokenRepository.
type RefreshTokens struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{tokens: map[string]time.Time{}, now: time.Now}
}

func (r *RefreshTokens) Save(_ context.Context, userID, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[userID+":"+tokenID] = r.now().Add(ttl)
	return nil
}

func (r *RefreshTokens) Consume(_ context.Context, userID, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID + ":" + tokenID
	expires, ok := r.tokens[key]
	delete(r.tokens, key)
	return ok && r.now().Before(expires), nil
}
