package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

const (
	notificationColumns = `id, user_id, message, is_read, created_at`
	demoRequestColumns  = `id, full_name, email, company, phone, datetime, message, created_at`
)

type notificationSQL struct{ store *SQLStore }

func (r *notificationSQL) Create(ctx context.Context, notification *entity.Notification) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (:id, :user_id, :message, :is_read, :created_at)`, notification)
	return err
}

func (r *notificationSQL) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	var notification entity.Notification
	if err := r.store.get(ctx, &notification, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationSQL) List(ctx context.Context, filter entity.NotificationFilter) ([]entity.Notification, error) {
	var cond conditions
	if filter.UserID != nil {
		cond.add("user_id = ?", *filter.UserID)
	}
	if filter.IsRead != nil {
		cond.add("is_read = ?", *filter.IsRead)
	}
	notifications := []entity.Notification{}
	query := `SELECT ` + notificationColumns + ` FROM notifications` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &notifications, query, cond.args...); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationSQL) MarkRead(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = ?`, id))
}

func (r *notificationSQL) Delete(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `DELETE FROM notifications WHERE id = ?`, id))
}

type demoRequestSQL struct{ store *SQLStore }

func (r *demoRequestSQL) Create(ctx context.Context, request *entity.DemoRequest) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO demo_requests (`+demoRequestColumns+`)
		VALUES (:id, :full_name, :email, :company, :phone, :datetime, :message, :created_at)`, request)
	return err
}
