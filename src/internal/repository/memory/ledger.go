package memory

import (
	"context"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobOffers[payment.JobOfferID]; !ok {
		return repository.ErrReference
	}
	for _, p := range r.s.data.payments {
		if p.ID == payment.ID || (p.JobOfferID == payment.JobOfferID && p.Amount == payment.Amount) {
			return repository.ErrDuplicate
		}
	}
	r.s.data.payments[payment.ID] = *payment
	return nil
}

func (r *paymentRepo) List(_ context.Context, filter entity.PaymentFilter) ([]entity.Payment, error) {
	defer r.s.lock()()
	return collect(r.s.data.payments, func(p entity.Payment) bool {
		offer := r.s.data.jobOffers[p.JobOfferID]
		return matches(filter.JobOfferID, p.JobOfferID) && matches(filter.ClientID, offer.ClientID) && matches(filter.DriverID, offer.DriverID)
	}, func(p entity.Payment) (time.Time, string) { return p.CreatedAt, p.ID }), nil
}

func (r *paymentRepo) AttachCharge(_ context.Context, id, provider, reference string) error {
	defer r.s.lock()()
	p, ok := r.s.data.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Provider = provider
	p.ProviderReference = reference
	r.s.data.payments[id] = p
	return nil
}

func (r *paymentRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.payments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.payments, id)
	return nil
}

type ratingRepo struct{ s *Store }

func (r *ratingRepo) Create(_ context.Context, rating *entity.Rating) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobOffers[rating.JobOfferID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.ratings[rating.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.data.ratings[rating.ID] = *rating
	return nil
}

func (r *ratingRepo) List(_ context.Context, filter entity.RatingFilter) ([]entity.Rating, error) {
	defer r.s.lock()()
	return collect(r.s.data.ratings, func(rt entity.Rating) bool {
		return matches(filter.JobOfferID, rt.JobOfferID) && matches(filter.ClientID, rt.ClientID) && matches(filter.DriverID, rt.DriverID)
	}, func(rt entity.Rating) (time.Time, string) { return rt.CreatedAt, rt.ID }), nil
}
