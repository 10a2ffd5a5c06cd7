package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

const (
	jobPostColumns = `id, client_id, title, description, pickup_location, dropoff_location, pickup_time, status,
		created_at, updated_at`
	jobBidColumns = `id, job_post_id, driver_id, bid_message, proposed_price, estimated_turnaround_seconds, status,
		created_at, updated_at`
	jobOfferColumns = `id, job_post_id, accepted_bid_id, car_id, client_id, driver_id, start_time, created_at, updated_at`
	tripColumns     = `id, job_offer_id, actual_pickup_time, actual_dropoff_time, distance_travelled, is_delivered,
		created_at, updated_at`
)

type jobPostSQL struct{ store *SQLStore }

func (r *jobPostSQL) Create(ctx context.Context, post *entity.JobPost) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO job_posts (`+jobPostColumns+`)
		VALUES (:id, :client_id, :title, :description, :pickup_location, :dropoff_location, :pickup_time, :status,
			:created_at, :updated_at)`, post)
	return err
}

func (r *jobPostSQL) FindByID(ctx context.Context, id string) (*entity.JobPost, error) {
	var post entity.JobPost
	if err := r.store.get(ctx, &post, `SELECT `+jobPostColumns+` FROM job_posts WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *jobPostSQL) List(ctx context.Context, filter entity.JobPostFilter) ([]entity.JobPost, error) {
	var cond conditions
	if filter.ClientID != nil {
		cond.add("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		cond.add("status = ?", *filter.Status)
	}
	if filter.OpenOrBidBy != nil {
		cond.add(`(status = ? OR id IN (SELECT job_post_id FROM job_bids WHERE driver_id = ?))`,
			entity.JobPostPending, *filter.OpenOrBidBy)
	}
	posts := []entity.JobPost{}
	query := `SELECT ` + jobPostColumns + ` FROM job_posts` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &posts, query, cond.args...); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *jobPostSQL) Update(ctx context.Context, post *entity.JobPost) error {
	return mustAffect(r.store.namedExec(ctx, `
		UPDATE job_posts SET title = :title, description = :description, pickup_location = :pickup_location,
			dropoff_location = :dropoff_location, pickup_time = :pickup_time, status = :status, updated_at = :updated_at
		WHERE id = :id`, post))
}

func (r *jobPostSQL) UpdateStatus(ctx context.Context, id string, from, to entity.JobPostStatus) (bool, error) {
	n, err := r.store.exec(ctx, `
		UPDATE job_posts SET status = ?, updated_at = UTC_TIMESTAMP()
		WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *jobPostSQL) Delete(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `DELETE FROM job_posts WHERE id = ?`, id))
}

type jobBidSQL struct{ store *SQLStore }

func (r *jobBidSQL) Create(ctx context.Context, bid *entity.JobBid) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO job_bids (`+jobBidColumns+`)
		VALUES (:id, :job_post_id, :driver_id, :bid_message, :proposed_price, :estimated_turnaround_seconds, :status,
			:created_at, :updated_at)`, bid)
	return err
}

func (r *jobBidSQL) FindByID(ctx context.Context, id string) (*entity.JobBid, error) {
	var bid entity.JobBid
	if err := r.store.get(ctx, &bid, `SELECT `+jobBidColumns+` FROM job_bids WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *jobBidSQL) List(ctx context.Context, filter entity.JobBidFilter) ([]entity.JobBid, error) {
	var cond conditions
	if filter.JobPostID != nil {
		cond.add("job_post_id = ?", *filter.JobPostID)
	}
	if filter.DriverID != nil {
		cond.add("driver_id = ?", *filter.DriverID)
	}
	if filter.ClientID != nil {
		cond.add("job_post_id IN (SELECT id FROM job_posts WHERE client_id = ?)", *filter.ClientID)
	}
	if filter.Status != nil {
		cond.add("status = ?", *filter.Status)
	}
	bids := []entity.JobBid{}
	query := `SELECT ` + jobBidColumns + ` FROM job_bids` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &bids, query, cond.args...); err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *jobBidSQL) Update(ctx context.Context, bid *entity.JobBid) error {
	return mustAffect(r.store.namedExec(ctx, `
		UPDATE job_bids SET bid_message = :bid_message, proposed_price = :proposed_price,
			estimated_turnaround_seconds = :estimated_turnaround_seconds, status = :status, updated_at = :updated_at
		WHERE id = :id`, bid))
}

func (r *jobBidSQL) UpdateStatus(ctx context.Context, id string, from, to entity.BidStatus) (bool, error) {
	n, err := r.store.exec(ctx, `
		UPDATE job_bids SET status = ?, updated_at = UTC_TIMESTAMP()
		WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *jobBidSQL) RejectOthers(ctx context.Context, jobPostID, acceptedBidID string) error {
	_, err := r.store.exec(ctx, `
		UPDATE job_bids SET status = ?, updated_at = UTC_TIMESTAMP()
		WHERE job_post_id = ? AND id <> ? AND status = ?`,
		entity.BidRejected, jobPostID, acceptedBidID, entity.BidPending)
	return err
}

func (r *jobBidSQL) Delete(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `DELETE FROM job_bids WHERE id = ?`, id))
}

type jobOfferSQL struct{ store *SQLStore }

func (r *jobOfferSQL) Create(ctx context.Context, offer *entity.JobOffer) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO job_offers (`+jobOfferColumns+`)
		VALUES (:id, :job_post_id, :accepted_bid_id, :car_id, :client_id, :driver_id, :start_time, :created_at, :updated_at)`, offer)
	return err
}

func (r *jobOfferSQL) FindByID(ctx context.Context, id string) (*entity.JobOffer, error) {
	var offer entity.JobOffer
	if err := r.store.get(ctx, &offer, `SELECT `+jobOfferColumns+` FROM job_offers WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *jobOfferSQL) List(ctx context.Context, filter entity.JobOfferFilter) ([]entity.JobOffer, error) {
	var cond conditions
	if filter.JobPostID != nil {
		cond.add("job_post_id = ?", *filter.JobPostID)
	}
	if filter.ClientID != nil {
		cond.add("client_id = ?", *filter.ClientID)
	}
	if filter.DriverID != nil {
		cond.add("driver_id = ?", *filter.DriverID)
	}
	offers := []entity.JobOffer{}
	query := `SELECT ` + jobOfferColumns + ` FROM job_offers` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &offers, query, cond.args...); err != nil {
		return nil, err
	}
	return offers, nil
}

type tripSQL struct{ store *SQLStore }

func (r *tripSQL) Create(ctx context.Context, trip *entity.Trip) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO trips (`+tripColumns+`)
		VALUES (:id, :job_offer_id, :actual_pickup_time, :actual_dropoff_time, :distance_travelled, :is_delivered,
			:created_at, :updated_at)`, trip)
	return err
}

func (r *tripSQL) FindByID(ctx context.Context, id string) (*entity.Trip, error) {
	var trip entity.Trip
	if err := r.store.get(ctx, &trip, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripSQL) List(ctx context.Context, filter entity.TripFilter) ([]entity.Trip, error) {
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
	trips := []entity.Trip{}
	query := `SELECT ` + tripColumns + ` FROM trips` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &trips, query, cond.args...); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripSQL) Update(ctx context.Context, trip *entity.Trip) error {
	return mustAffect(r.store.namedExec(ctx, `
		UPDATE trips SET actual_pickup_time = :actual_pickup_time, actual_dropoff_time = :actual_dropoff_time,
			distance_travelled = :distance_travelled, is_delivered = :is_delivered, updated_at = :updated_at
		WHERE id = :id`, trip))
}
