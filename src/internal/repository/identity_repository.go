package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

const (
	userColumns   = `id, username, email, phone, password_hash, role, created_at, updated_at`
	driverColumns = `id, user_id, license_number, frequent_location, personal_id_url, created_at, updated_at`
	clientColumns = `id, user_id, created_at, updated_at`
)

type userSQL struct{ store *SQLStore }

func (r *userSQL) Create(ctx context.Context, user *entity.User) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :username, :email, :phone, :password_hash, :role, :created_at, :updated_at)`, user)
	return err
}

func (r *userSQL) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.store.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userSQL) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ? LIMIT 1`
	if err := r.store.get(ctx, &user, query, identifier, identifier); err != nil {
		return nil, err
	}
	return &user, nil
}

type driverSQL struct{ store *SQLStore }

func (r *driverSQL) Create(ctx context.Context, driver *entity.Driver) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO drivers (`+driverColumns+`)
		VALUES (:id, :user_id, :license_number, :frequent_location, :personal_id_url, :created_at, :updated_at)`, driver)
	return err
}

func (r *driverSQL) FindByID(ctx context.Context, id string) (*entity.Driver, error) {
	var driver entity.Driver
	if err := r.store.get(ctx, &driver, `SELECT `+driverColumns+` FROM drivers WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverSQL) FindByUserID(ctx context.Context, userID string) (*entity.Driver, error) {
	var driver entity.Driver
	if err := r.store.get(ctx, &driver, `SELECT `+driverColumns+` FROM drivers WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverSQL) List(ctx context.Context, filter entity.DriverFilter) ([]entity.Driver, error) {
	var cond conditions
	if filter.ID != nil {
		cond.add("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		cond.add("user_id = ?", *filter.UserID)
	}
	if filter.ClientID != nil {
		cond.add(`id IN (SELECT b.driver_id FROM job_bids b JOIN job_posts p ON p.id = b.job_post_id WHERE p.client_id = ?)`, *filter.ClientID)
	}
	drivers := []entity.Driver{}
	query := `SELECT ` + driverColumns + ` FROM drivers` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &drivers, query, cond.args...); err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *driverSQL) Update(ctx context.Context, driver *entity.Driver) error {
	return mustAffect(r.store.namedExec(ctx, `
		UPDATE drivers SET license_number = :license_number, frequent_location = :frequent_location,
			personal_id_url = :personal_id_url, updated_at = :updated_at
		WHERE id = :id`, driver))
}

type clientSQL struct{ store *SQLStore }

func (r *clientSQL) Create(ctx context.Context, client *entity.Client) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO clients (`+clientColumns+`) VALUES (:id, :user_id, :created_at, :updated_at)`, client)
	return err
}

func (r *clientSQL) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	if err := r.store.get(ctx, &client, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientSQL) FindByUserID(ctx context.Context, userID string) (*entity.Client, error) {
	var client entity.Client
	if err := r.store.get(ctx, &client, `SELECT `+clientColumns+` FROM clients WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientSQL) List(ctx context.Context, filter entity.ClientFilter) ([]entity.Client, error) {
	var cond conditions
	if filter.ID != nil {
		cond.add("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		cond.add("user_id = ?", *filter.UserID)
	}
	if filter.DriverID != nil {
		cond.add(`id IN (SELECT p.client_id FROM job_posts p JOIN job_bids b ON b.job_post_id = p.id WHERE b.driver_id = ?)`, *filter.DriverID)
	}
	clients := []entity.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &clients, query, cond.args...); err != nil {
		return nil, err
	}
	return clients, nil
}
