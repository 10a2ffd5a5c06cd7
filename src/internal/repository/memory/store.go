package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type dataset struct {
	users         map[string]entity.User
	drivers       map[string]entity.Driver
	clients       map[string]entity.Client
	cars          map[string]entity.Car
	carDocs       map[string]entity.CarDoc
	jobPosts      map[string]entity.JobPost
	jobBids       map[string]entity.JobBid
	jobOffers     map[string]entity.JobOffer
	trips         map[string]entity.Trip
	payments      map[string]entity.Payment
	ratings       map[string]entity.Rating
	chatRooms     map[string]entity.ChatRoom
	chatMessages  map[string]entity.ChatMessage
	notifications map[string]entity.Notification
	demoRequests  map[string]entity.DemoRequest
}

func newDataset() *dataset {
	return &dataset{
		users:         map[string]entity.User{},
		drivers:       map[string]entity.Driver{},
		clients:       map[string]entity.Client{},
		cars:          map[string]entity.Car{},
		carDocs:       map[string]entity.CarDoc{},
		jobPosts:      map[string]entity.JobPost{},
		jobBids:       map[string]entity.JobBid{},
		jobOffers:     map[string]entity.JobOffer{},
		trips:         map[string]entity.Trip{},
		payments:      map[string]entity.Payment{},
		ratings:       map[string]entity.Rating{},
		chatRooms:     map[string]entity.ChatRoom{},
		chatMessages:  map[string]entity.ChatMessage{},
		notifications: map[string]entity.Notification{},
		demoRequests:  map[string]entity.DemoRequest{},
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:         maps.Clone(d.users),
		drivers:       maps.Clone(d.drivers),
		clients:       maps.Clone(d.clients),
		cars:          maps.Clone(d.cars),
		carDocs:       maps.Clone(d.carDocs),
		jobPosts:      maps.Clone(d.jobPosts),
		jobBids:       maps.Clone(d.jobBids),
		jobOffers:     maps.Clone(d.jobOffers),
		trips:         maps.Clone(d.trips),
		payments:      maps.Clone(d.payments),
		ratings:       maps.Clone(d.ratings),
		chatRooms:     maps.Clone(d.chatRooms),
		chatMessages:  maps.Clone(d.chatMessages),
		notifications: maps.Clone(d.notifications),
		demoRequests:  maps.Clone(d.demoRequests),
	}
}

// Store is an in-process repository.Store. It enforces the same unique and
// foreign-key constraints as the MySQL schema, including cascading deletes.
// A transaction holds the store lock for its whole duration and restores a
// snapshot when the callback fails.
type Store struct {
	mu   *sync.Mutex
	data *dataset
	inTx bool
}

func NewStore() *Store {
	return &Store{mu: &sync.Mutex{}, data: newDataset()}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithTransaction(_ context.Context, fn func(tx repository.Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			*s.data = *snapshot
		}
	}()

	if err = fn(&Store{mu: s.mu, data: s.data, inTx: true}); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) Users() repository.UserRepository                 { return &userRepo{s} }
func (s *Store) Drivers() repository.DriverRepository             { return &driverRepo{s} }
func (s *Store) Clients() repository.ClientRepository             { return &clientRepo{s} }
func (s *Store) Cars() repository.CarRepository                   { return &carRepo{s} }
func (s *Store) CarDocs() repository.CarDocRepository             { return &carDocRepo{s} }
func (s *Store) JobPosts() repository.JobPostRepository           { return &jobPostRepo{s} }
func (s *Store) JobBids() repository.JobBidRepository             { return &jobBidRepo{s} }
func (s *Store) JobOffers() repository.JobOfferRepository         { return &jobOfferRepo{s} }
func (s *Store) Trips() repository.TripRepository                 { return &tripRepo{s} }
func (s *Store) Payments() repository.PaymentRepository           { return &paymentRepo{s} }
func (s *Store) Ratings() repository.RatingRepository             { return &ratingRepo{s} }
func (s *Store) ChatRooms() repository.ChatRoomRepository         { return &chatRoomRepo{s} }
func (s *Store) ChatMessages() repository.ChatMessageRepository   { return &chatMessageRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository { return &notificationRepo{s} }
func (s *Store) DemoRequests() repository.DemoRequestRepository   { return &demoRequestRepo{s} }

func (d *dataset) deleteOffer(id string) {
	for k, t := range d.trips {
		if t.JobOfferID == id {
			delete(d.trips, k)
		}
	}
	for k, p := range d.payments {
		if p.JobOfferID == id {
			delete(d.payments, k)
		}
	}
	for k, r := range d.ratings {
		if r.JobOfferID == id {
			delete(d.ratings, k)
		}
	}
	delete(d.jobOffers, id)
}

func (d *dataset) deleteBid(id string) {
	for k, o := range d.jobOffers {
		if o.AcceptedBidID == id {
			d.deleteOffer(k)
		}
	}
	delete(d.jobBids, id)
}

func (d *dataset) deleteRoom(id string) {
	for k, m := range d.chatMessages {
		if m.ChatRoomID == id {
			delete(d.chatMessages, k)
		}
	}
	delete(d.chatRooms, id)
}

func (d *dataset) deletePost(id string) {
	for k, o := range d.jobOffers {
		if o.JobPostID == id {
			d.deleteOffer(k)
		}
	}
	for k, b := range d.jobBids {
		if b.JobPostID == id {
			d.deleteBid(k)
		}
	}
	for k, r := range d.chatRooms {
		if r.JobPostID == id {
			d.deleteRoom(k)
		}
	}
	delete(d.jobPosts, id)
}

func (d *dataset) deleteCar(id string) {
	for k, doc := range d.carDocs {
		if doc.CarID == id {
			delete(d.carDocs, k)
		}
	}
	for k, o := range d.jobOffers {
		if o.CarID == id {
			d.deleteOffer(k)
		}
	}
	delete(d.cars, id)
}

// collect returns the rows accepted by keep, oldest first.
func collect[T any](rows map[string]T, keep func(T) bool, key func(T) (time.Time, string)) []T {
	out := []T{}
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, idi := key(out[i])
		tj, idj := key(out[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
	return out
}

func matches(filter *string, value string) bool {
	return filter == nil || *filter == value
}
