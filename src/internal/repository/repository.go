package repository

import (
	"context"
	"errors"
	"time"

	"marketplace-service/src/internal/entity"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrReference = errors.New("referenced record does not exist")
)

// Store groups every repository over one storage handle. Repositories obtained from the
// Store passed to WithTransaction's callback share that transaction.
type Store interface {
	Users() UserRepository
	Drivers() DriverRepository
	Clients() ClientRepository
	Cars() CarRepository
	CarDocs() CarDocRepository
	JobPosts() JobPostRepository
	JobBids() JobBidRepository
	JobOffers() JobOfferRepository
	Trips() TripRepository
	Payments() PaymentRepository
	Ratings() RatingRepository
	ChatRooms() ChatRoomRepository
	ChatMessages() ChatMessageRepository
	Notifications() NotificationRepository
	DemoRequests() DemoRequestRepository

	WithTransaction(ctx context.Context, fn func(tx Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByIdentifier matches either the username or the email.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}

type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	FindByID(ctx context.Context, id string) (*entity.Driver, error)
	FindByUserID(ctx context.Context, userID string) (*entity.Driver, error)
	List(ctx context.Context, filter entity.DriverFilter) ([]entity.Driver, error)
	Update(ctx context.Context, driver *entity.Driver) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	FindByUserID(ctx context.Context, userID string) (*entity.Client, error)
	List(ctx context.Context, filter entity.ClientFilter) ([]entity.Client, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	FindByID(ctx context.Context, id string) (*entity.Car, error)
	List(ctx context.Context, filter entity.CarFilter) ([]entity.Car, error)
	Update(ctx context.Context, car *entity.Car) error
	Delete(ctx context.Context, id string) error
}

type CarDocRepository interface {
	Create(ctx context.Context, doc *entity.CarDoc) error
	FindByID(ctx context.Context, id string) (*entity.CarDoc, error)
	List(ctx context.Context, filter entity.CarDocFilter) ([]entity.CarDoc, error)
	Update(ctx context.Context, doc *entity.CarDoc) error
	Delete(ctx context.Context, id string) error
}

type JobPostRepository interface {
	Create(ctx context.Context, post *entity.JobPost) error
	FindByID(ctx context.Context, id string) (*entity.JobPost, error)
	List(ctx context.Context, filter entity.JobPostFilter) ([]entity.JobPost, error)
	Update(ctx context.Context, post *entity.JobPost) error
	// UpdateStatus moves the post to `to` only if it is currently `from`; ok reports whether a row changed.
	UpdateStatus(ctx context.Context, id string, from, to entity.JobPostStatus) (ok bool, err error)
	// Delete removes the post and everything hanging off it.
	Delete(ctx context.Context, id string) error
}

type JobBidRepository interface {
	Create(ctx context.Context, bid *entity.JobBid) error
	FindByID(ctx context.Context, id string) (*entity.JobBid, error)
	List(ctx context.Context, filter entity.JobBidFilter) ([]entity.JobBid, error)
	Update(ctx context.Context, bid *entity.JobBid) error
	UpdateStatus(ctx context.Context, id string, from, to entity.BidStatus) (ok bool, err error)
	// RejectOthers marks every other pending bid of the post as rejected.
	RejectOthers(ctx context.Context, jobPostID, acceptedBidID string) error
	Delete(ctx context.Context, id string) error
}

type JobOfferRepository interface {
	Create(ctx context.Context, offer *entity.JobOffer) error
	FindByID(ctx context.Context, id string) (*entity.JobOffer, error)
	List(ctx context.Context, filter entity.JobOfferFilter) ([]entity.JobOffer, error)
}

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	FindByID(ctx context.Context, id string) (*entity.Trip, error)
	List(ctx context.Context, filter entity.TripFilter) ([]entity.Trip, error)
	Update(ctx context.Context, trip *entity.Trip) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	List(ctx context.Context, filter entity.PaymentFilter) ([]entity.Payment, error)
	// AttachCharge records the provider charge behind an already stored payment.
	AttachCharge(ctx context.Context, id, provider, reference string) error
	Delete(ctx context.Context, id string) error
}

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	List(ctx context.Context, filter entity.RatingFilter) ([]entity.Rating, error)
}

type ChatRoomRepository interface {
	Create(ctx context.Context, room *entity.ChatRoom) error
	FindByID(ctx context.Context, id string) (*entity.ChatRoom, error)
	FindByParticipants(ctx context.Context, jobPostID, clientID, driverID string) (*entity.ChatRoom, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindByID(ctx context.Context, id string) (*entity.ChatMessage, error)
	List(ctx context.Context, filter entity.ChatMessageFilter) ([]entity.ChatMessage, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, receiverID string) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id string) (*entity.Notification, error)
	List(ctx context.Context, filter entity.NotificationFilter) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type DemoRequestRepository interface {
	Create(ctx context.Context, request *entity.DemoRequest) error
}

// RefreshTokenRepository tracks refresh tokens that are still allowed to be exchanged.
type RefreshTokenRepository interface {
	Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error
	// Consume deletes the token and reports whether it was present.
	Consume(ctx context.Context, userID, tokenID string) (bool, error)
}
