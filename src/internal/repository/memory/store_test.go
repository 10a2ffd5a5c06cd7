package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seed struct {
	client entity.Client
	driver entity.Driver
	post   entity.JobPost
	bid    entity.JobBid
	car    entity.Car
	offer  entity.JobOffer
}

func seeded(t *testing.T, s *Store) seed {
	t.Helper()
	ctx := context.Background()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, u := range []entity.User{
		{ID: "u-client", Username: "carol", Email: "carol@example.com", Role: entity.RoleClient, CreatedAt: at},
		{ID: "u-driver", Username: "dana", Email: "dana@example.com", Role: entity.RoleDriver, CreatedAt: at},
	} {
		u := u
		require.NoError(t, s.Users().Create(ctx, &u))
	}
	out := seed{
		client: entity.Client{ID: "c1", UserID: "u-client", CreatedAt: at},
		driver: entity.Driver{ID: "d1", UserID: "u-driver", CreatedAt: at},
		post:   entity.JobPost{ID: "p1", ClientID: "c1", Title: "Move boxes", Status: entity.JobPostPending, CreatedAt: at},
		bid:    entity.JobBid{ID: "b1", JobPostID: "p1", DriverID: "d1", Status: entity.BidPending, CreatedAt: at},
		car:    entity.Car{ID: "car1", DriverID: "d1", PlateNo: "B 1 A", CreatedAt: at},
	}
	out.offer = entity.JobOffer{ID: "o1", JobPostID: "p1", AcceptedBidID: "b1", CarID: "car1", ClientID: "c1", DriverID: "d1", CreatedAt: at}

	require.NoError(t, s.Clients().Create(ctx, &out.client))
	require.NoError(t, s.Drivers().Create(ctx, &out.driver))
	require.NoError(t, s.JobPosts().Create(ctx, &out.post))
	require.NoError(t, s.JobBids().Create(ctx, &out.bid))
	require.NoError(t, s.Cars().Create(ctx, &out.car))
	return out
}

func TestUniqueConstraints(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seeded(t, s)

	err := s.Users().Create(ctx, &entity.User{ID: "u3", Username: "CAROL", Email: "x@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.JobPosts().Create(ctx, &entity.JobPost{ID: "p2", ClientID: "c1", Title: "move boxes"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.JobBids().Create(ctx, &entity.JobBid{ID: "b2", JobPostID: "p1", DriverID: "d1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.Cars().Create(ctx, &entity.Car{ID: "car2", DriverID: "d1", PlateNo: "b 1 a"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestForeignKeys(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seeded(t, s)

	err := s.JobBids().Create(ctx, &entity.JobBid{ID: "b2", JobPostID: "missing", DriverID: "d1"})
	assert.ErrorIs(t, err, repository.ErrReference)

	err = s.Trips().Create(ctx, &entity.Trip{ID: "t1", JobOfferID: "missing"})
	assert.ErrorIs(t, err, repository.ErrReference)
}

func TestTransactionRollback(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sd := seeded(t, s)

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(tx repository.Store) error {
		ok, err := tx.JobPosts().UpdateStatus(ctx, sd.post.ID, entity.JobPostPending, entity.JobPostOffered)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, tx.JobOffers().Create(ctx, &sd.offer))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	post, err := s.JobPosts().FindByID(ctx, sd.post.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobPostPending, post.Status)
	_, err = s.JobOffers().FindByID(ctx, sd.offer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.WithTransaction(ctx, func(tx repository.Store) error {
		return tx.JobOffers().Create(ctx, &sd.offer)
	})
	require.NoError(t, err)
	_, err = s.JobOffers().FindByID(ctx, sd.offer.ID)
	assert.NoError(t, err)
}

func TestConditionalStatusUpdate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sd := seeded(t, s)

	ok, err := s.JobPosts().UpdateStatus(ctx, sd.post.ID, entity.JobPostOnHold, entity.JobPostPending)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.JobBids().UpdateStatus(ctx, sd.bid.ID, entity.BidPending, entity.BidAccepted)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.JobBids().UpdateStatus(ctx, sd.bid.ID, entity.BidPending, entity.BidAccepted)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeletePostCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sd := seeded(t, s)
	require.NoError(t, s.JobOffers().Create(ctx, &sd.offer))
	require.NoError(t, s.Trips().Create(ctx, &entity.Trip{ID: "t1", JobOfferID: sd.offer.ID}))
	require.NoError(t, s.Payments().Create(ctx, &entity.Payment{ID: "pay1", JobOfferID: sd.offer.ID, Amount: 10}))
	require.NoError(t, s.ChatRooms().Create(ctx, &entity.ChatRoom{ID: "r1", ChatID: "chat-1", JobPostID: sd.post.ID, ClientID: "c1", DriverID: "d1"}))
	require.NoError(t, s.ChatMessages().Create(ctx, &entity.ChatMessage{ID: "m1", ChatRoomID: "r1", SenderID: "u-client", ReceiverID: "u-driver", Message: "hi"}))

	require.NoError(t, s.JobPosts().Delete(ctx, sd.post.ID))

	_, err := s.JobBids().FindByID(ctx, sd.bid.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.JobOffers().FindByID(ctx, sd.offer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Trips().FindByID(ctx, "t1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	payments, err := s.Payments().List(ctx, entity.PaymentFilter{})
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.Empty(t, s.Rooms())
	_, err = s.ChatMessages().FindByID(ctx, "m1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	car, err := s.Cars().FindByID(ctx, sd.car.ID)
	require.NoError(t, err)
	assert.Equal(t, sd.car.PlateNo, car.PlateNo)
}

func TestOpenOrBidByFilter(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sd := seeded(t, s)
	closed := entity.JobPost{ID: "p2", ClientID: "c1", Title: "Closed", Status: entity.JobPostCancelled}
	require.NoError(t, s.JobPosts().Create(ctx, &closed))
	other := entity.JobPost{ID: "p3", ClientID: "c1", Title: "Held", Status: entity.JobPostOnHold}
	require.NoError(t, s.JobPosts().Create(ctx, &other))
	require.NoError(t, s.JobBids().Create(ctx, &entity.JobBid{ID: "b3", JobPostID: "p3", DriverID: sd.driver.ID}))

	posts, err := s.JobPosts().List(ctx, entity.JobPostFilter{OpenOrBidBy: &sd.driver.ID})
	require.NoError(t, err)
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"p1", "p3"}, ids)
}

func TestRefreshTokens(t *testing.T) {
	r := NewRefreshTokens()
	ctx := context.Background()
	require.NoError(t, r.Save(ctx, "u1", "t1", time.Minute))

	ok, err := r.Consume(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Consume(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Save(ctx, "u1", "t2", time.Minute))
	r.now = func() time.Time { return time.Now().Add(time.Hour) }
	ok, _ = r.Consume(ctx, "u1", "t2")
	assert.False(t, ok)
}
