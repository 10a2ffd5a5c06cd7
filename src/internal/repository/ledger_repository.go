package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

const (
	paymentColumns = `id, job_offer_id, amount, provider, provider_reference, created_at`
	ratingColumns  = `id, job_offer_id, driver_id, client_id, rating, comment, created_at`
)

type paymentSQL struct{ store *SQLStore }

func (r *paymentSQL) Create(ctx context.Context, payment *entity.Payment) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (:id, :job_offer_id, :amount, :provider, :provider_reference, :created_at)`, payment)
	return err
}

func (r *paymentSQL) List(ctx context.Context, filter entity.PaymentFilter) ([]entity.Payment, error) {
	var cond conditions
	if filter.JobOfferID != nil {
		cond.add("job_offer_id = ?", *filter.JobOfferID)
	}
	if filter.ClientID != nil {
		cond.add("job_offer_id IN (SELECT id FROM job_offers WHERE client_id = ?)", *filter.ClientID)
	}
	if filter.DriverID != nil {
		cond.add("job_offer_id IN (SELECT id FROM job_offers WHERE driver_id = ?)", *filter.DriverID)
	}
	payments := []entity.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &payments, query, cond.args...); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentSQL) AttachCharge(ctx context.Context, id, provider, reference string) error {
	return mustAffect(r.store.exec(ctx, `
		UPDATE payments SET provider = ?, provider_reference = ?
		WHERE id = ?`, provider, reference, id))
}

func (r *paymentSQL) Delete(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `DELETE FROM payments WHERE id = ?`, id))
}

type ratingSQL struct{ store *SQLStore }

func (r *ratingSQL) Create(ctx context.Context, rating *entity.Rating) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO ratings (`+ratingColumns+`)
		VALUES (:id, :job_offer_id, :driver_id, :client_id, :rating, :comment, :created_at)`, rating)
	return err
}

func (r *ratingSQL) List(ctx context.Context, filter entity.RatingFilter) ([]entity.Rating, error) {
	var cond conditions
	if filter.JobOfferID != nil {
		cond.add("job_offer_id = ?", *filter.JobOfferID)
	}
	if filter.ClientID != nil {
		cond.add("client_id = ?", *filter.ClientID)
	}
	if filter.DriverID != nil {
		cond.add("driver_id = ?", *filter.DriverID)
	}
	ratings := []entity.Rating{}
	query := `SELECT ` + ratingColumns + ` FROM ratings` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &ratings, query, cond.args...); err != nil {
		return nil, err
	}
	return ratings, nil
}
