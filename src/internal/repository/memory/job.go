package memory

import (
	"context"
	"strings"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type jobPostRepo struct{ s *Store }

func (r *jobPostRepo) unique(post *entity.JobPost) error {
	for _, p := range r.s.data.jobPosts {
		if p.ID != post.ID && p.ClientID == post.ClientID && strings.EqualFold(p.Title, post.Title) {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (r *jobPostRepo) Create(_ context.Context, post *entity.JobPost) error {
	defer r.s.lock()()
	if _, ok := r.s.data.clients[post.ClientID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.jobPosts[post.ID]; ok {
		return repository.ErrDuplicate
	}
	if err := r.unique(post); err != nil {
		return err
	}
	r.s.data.jobPosts[post.ID] = *post
	return nil
}

func (r *jobPostRepo) FindByID(_ context.Context, id string) (*entity.JobPost, error) {
	defer r.s.lock()()
	p, ok := r.s.data.jobPosts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *jobPostRepo) List(_ context.Context, filter entity.JobPostFilter) ([]entity.JobPost, error) {
	defer r.s.lock()()
	var bidOn map[string]bool
	if filter.OpenOrBidBy != nil {
		bidOn = map[string]bool{}
		for _, b := range r.s.data.jobBids {
			if b.DriverID == *filter.OpenOrBidBy {
				bidOn[b.JobPostID] = true
			}
		}
	}
	return collect(r.s.data.jobPosts, func(p entity.JobPost) bool {
		if !matches(filter.ClientID, p.ClientID) {
			return false
		}
		if filter.Status != nil && *filter.Status != p.Status {
			return false
		}
		if bidOn != nil && p.Status != entity.JobPostPending && !bidOn[p.ID] {
			return false
		}
		return true
	}, func(p entity.JobPost) (time.Time, string) { return p.CreatedAt, p.ID }), nil
}

func (r *jobPostRepo) Update(_ context.Context, post *entity.JobPost) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobPosts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.unique(post); err != nil {
		return err
	}
	r.s.data.jobPosts[post.ID] = *post
	return nil
}

func (r *jobPostRepo) UpdateStatus(_ context.Context, id string, from, to entity.JobPostStatus) (bool, error) {
	defer r.s.lock()()
	p, ok := r.s.data.jobPosts[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	r.s.data.jobPosts[id] = p
	return true, nil
}

func (r *jobPostRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobPosts[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.deletePost(id)
	return nil
}

type jobBidRepo struct{ s *Store }

func (r *jobBidRepo) Create(_ context.Context, bid *entity.JobBid) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobPosts[bid.JobPostID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.drivers[bid.DriverID]; !ok {
		return repository.ErrReference
	}
	for _, b := range r.s.data.jobBids {
		if b.ID == bid.ID || (b.JobPostID == bid.JobPostID && b.DriverID == bid.DriverID) {
			return repository.ErrDuplicate
		}
	}
	r.s.data.jobBids[bid.ID] = *bid
	return nil
}

func (r *jobBidRepo) FindByID(_ context.Context, id string) (*entity.JobBid, error) {
	defer r.s.lock()()
	b, ok := r.s.data.jobBids[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *jobBidRepo) List(_ context.Context, filter entity.JobBidFilter) ([]entity.JobBid, error) {
	defer r.s.lock()()
	return collect(r.s.data.jobBids, func(b entity.JobBid) bool {
		if !matches(filter.JobPostID, b.JobPostID) || !matches(filter.DriverID, b.DriverID) {
			return false
		}
		if filter.Status != nil && *filter.Status != b.Status {
			return false
		}
		if filter.ClientID != nil {
			p, ok := r.s.data.jobPosts[b.JobPostID]
			if !ok || p.ClientID != *filter.ClientID {
				return false
			}
		}
		return true
	}, func(b entity.JobBid) (time.Time, string) { return b.CreatedAt, b.ID }), nil
}

func (r *jobBidRepo) Update(_ context.Context, bid *entity.JobBid) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobBids[bid.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.jobBids[bid.ID] = *bid
	return nil
}

func (r *jobBidRepo) UpdateStatus(_ context.Context, id string, from, to entity.BidStatus) (bool, error) {
	defer r.s.lock()()
	b, ok := r.s.data.jobBids[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.s.data.jobBids[id] = b
	return true, nil
}

func (r *jobBidRepo) RejectOthers(_ context.Context, jobPostID, acceptedBidID string) error {
	defer r.s.lock()()
	now := time.Now().UTC()
	for id, b := range r.s.data.jobBids {
		if b.JobPostID == jobPostID && id != acceptedBidID && b.Status == entity.BidPending {
			b.Status = entity.BidRejected
			b.UpdatedAt = now
			r.s.data.jobBids[id] = b
		}
	}
	return nil
}

func (r *jobBidRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobBids[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.deleteBid(id)
	return nil
}

type jobOfferRepo struct{ s *Store }

func (r *jobOfferRepo) Create(_ context.Context, offer *entity.JobOffer) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobPosts[offer.JobPostID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.jobBids[offer.AcceptedBidID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.cars[offer.CarID]; !ok {
		return repository.ErrReference
	}
	for _, o := range r.s.data.jobOffers {
		if o.ID == offer.ID || o.AcceptedBidID == offer.AcceptedBidID {
			return repository.ErrDuplicate
		}
	}
	r.s.data.jobOffers[offer.ID] = *offer
	return nil
}

func (r *jobOfferRepo) FindByID(_ context.Context, id string) (*entity.JobOffer, error) {
	defer r.s.lock()()
	o, ok := r.s.data.jobOffers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *jobOfferRepo) List(_ context.Context, filter entity.JobOfferFilter) ([]entity.JobOffer, error) {
	defer r.s.lock()()
	return collect(r.s.data.jobOffers, func(o entity.JobOffer) bool {
		return matches(filter.JobPostID, o.JobPostID) && matches(filter.ClientID, o.ClientID) && matches(filter.DriverID, o.DriverID)
	}, func(o entity.JobOffer) (time.Time, string) { return o.CreatedAt, o.ID }), nil
}

type tripRepo struct{ s *Store }

func (r *tripRepo) Create(_ context.Context, trip *entity.Trip) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobOffers[trip.JobOfferID]; !ok {
		return repository.ErrReference
	}
	for _, t := range r.s.data.trips {
		if t.ID == trip.ID || t.JobOfferID == trip.JobOfferID {
			return repository.ErrDuplicate
		}
	}
	r.s.data.trips[trip.ID] = *trip
	return nil
}

func (r *tripRepo) FindByID(_ context.Context, id string) (*entity.Trip, error) {
	defer r.s.lock()()
	t, ok := r.s.data.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *tripRepo) List(_ context.Context, filter entity.TripFilter) ([]entity.Trip, error) {
	defer r.s.lock()()
	return collect(r.s.data.trips, func(t entity.Trip) bool {
		if !matches(filter.JobOfferID, t.JobOfferID) {
			return false
		}
		offer := r.s.data.jobOffers[t.JobOfferID]
		return matches(filter.ClientID, offer.ClientID) && matches(filter.DriverID, offer.DriverID)
	}, func(t entity.Trip) (time.Time, string) { return t.CreatedAt, t.ID }), nil
}

func (r *tripRepo) Update(_ context.Context, trip *entity.Trip) error {
	defer r.s.lock()()
	if _, ok := r.s.data.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.trips[trip.ID] = *trip
	return nil
}
