package usecase

import (
	"context"
	"sync"
	"testing"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownActor struct{}

func (unknownActor) UserID() string    { return "00000000-0000-0000-0000-000000000000" }
func (unknownActor) Role() entity.Role { return entity.Role("auditor") }

func TestCreatePost_DriverIsForbidden(t *testing.T) {
	f := newFixture(t)
	driver := f.driver(t, "dana")

	for _, req := range []*model.CreateJobPostRequest{
		{Title: "Move boxes", PickupLocation: "A", DropoffLocation: "B"},
		{},
	} {
		requireKind(t, f.jobs.CreatePost(context.Background(), driver, req), "forbidden")
	}
}

func TestCreatePost_DuplicateTitle(t *testing.T) {
	f := newFixture(t)
	client := f.client(t, "carol")
	other := f.client(t, "chris")

	f.post(t, client, "Move boxes")
	result := f.jobs.CreatePost(context.Background(), client, &model.CreateJobPostRequest{
		Title: "Move boxes", PickupLocation: "A", DropoffLocation: "B",
	})
	requireKind(t, result, "conflict")

	// titles are unique per client only
	f.post(t, other, "Move boxes")
	assert.Equal(t, []string{"post", "post"}, f.publisher.Topics())
}

func TestListPosts_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carol := f.client(t, "carol")
	chris := f.client(t, "chris")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")

	open := f.post(t, carol, "Open job")
	offered := f.post(t, chris, "Offered job")
	held := f.post(t, carol, "Held job")

	bid := f.bid(t, dana, offered.ID, 100)
	car := f.car(t, dana, "B 1234 XY")
	f.offer(t, chris, offered.ID, bid.ID, car.ID)
	require.NoError(t, f.jobs.UpdatePost(ctx, carol, &model.UpdateJobPostRequest{ID: held.ID, Status: ptr("on_hold")}).Error)

	titles := func(result interface{}) []string {
		var out []string
		for _, p := range result.([]*model.JobPostResponse) {
			out = append(out, p.Title)
		}
		return out
	}

	result := f.jobs.ListPosts(ctx, dana, &model.ListJobPostRequest{})
	require.NoError(t, result.Error)
	assert.ElementsMatch(t, []string{open.Title, offered.Title}, titles(result.Data))

	result = f.jobs.ListPosts(ctx, dave, &model.ListJobPostRequest{})
	require.NoError(t, result.Error)
	assert.ElementsMatch(t, []string{open.Title}, titles(result.Data))

	result = f.jobs.ListPosts(ctx, carol, &model.ListJobPostRequest{})
	require.NoError(t, result.Error)
	assert.ElementsMatch(t, []string{open.Title, held.Title}, titles(result.Data))

	result = f.jobs.ListPosts(ctx, unknownActor{}, &model.ListJobPostRequest{})
	require.NoError(t, result.Error)
	assert.Empty(t, result.Data)

	result = f.jobs.ListPublicPosts(ctx)
	require.NoError(t, result.Error)
	assert.ElementsMatch(t, []string{open.Title}, titles(result.Data))

	requireKind(t, f.jobs.GetPost(ctx, dave, &model.GetByIDRequest{ID: offered.ID}), "not_found")
	require.NoError(t, f.jobs.GetPost(ctx, dana, &model.GetByIDRequest{ID: offered.ID}).Error)
	requireKind(t, f.jobs.GetPost(ctx, chris, &model.GetByIDRequest{ID: held.ID}), "not_found")
}

func TestSubmitBid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	driver := f.driver(t, "dana")
	post := f.post(t, client, "Move boxes")

	bid := f.bid(t, driver, post.ID, 120.456)
	assert.Equal(t, 120.46, bid.ProposedPrice)
	assert.Equal(t, "2h0m0s", bid.EstimatedTurnaround)
	assert.Equal(t, "pending", bid.Status)

	t.Run("second bid by the same driver conflicts", func(t *testing.T) {
		result := f.jobs.SubmitBid(ctx, driver, &model.CreateJobBidRequest{
			JobPostID: post.ID, ProposedPrice: 90, EstimatedTurnaround: "1h",
		})
		requireKind(t, result, "conflict")
	})

	t.Run("clients cannot bid", func(t *testing.T) {
		result := f.jobs.SubmitBid(ctx, client, &model.CreateJobBidRequest{
			JobPostID: post.ID, ProposedPrice: 90, EstimatedTurnaround: "1h",
		})
		requireKind(t, result, "forbidden")
	})

	t.Run("turnaround must be a duration", func(t *testing.T) {
		other := f.driver(t, "dave")
		result := f.jobs.SubmitBid(ctx, other, &model.CreateJobBidRequest{
			JobPostID: post.ID, ProposedPrice: 90, EstimatedTurnaround: "soon",
		})
		requireKind(t, result, "validation_error")
	})

	t.Run("cancelled posts take no bids", func(t *testing.T) {
		cancelled := f.post(t, client, "Cancelled job")
		require.NoError(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: cancelled.ID, Status: ptr("cancelled")}).Error)
		result := f.jobs.SubmitBid(ctx, driver, &model.CreateJobBidRequest{
			JobPostID: cancelled.ID, ProposedPrice: 90, EstimatedTurnaround: "1h",
		})
		requireKind(t, result, "conflict")
	})

	t.Run("post owner is notified", func(t *testing.T) {
		result := f.notifications.List(ctx, client)
		require.NoError(t, result.Error)
		notes := result.Data.([]*model.NotificationResponse)
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0].Message, "Move boxes")
	})
}

func TestConcurrentBidsFromOneDriver(t *testing.T) {
	f := newFixture(t)
	client := f.client(t, "carol")
	driver := f.driver(t, "dana")
	post := f.post(t, client, "Move boxes")

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.jobs.SubmitBid(context.Background(), driver, &model.CreateJobBidRequest{
				JobPostID: post.ID, ProposedPrice: float64(100 + i), EstimatedTurnaround: "1h",
			}).Error
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	bids, err := f.store.JobBids().List(context.Background(), entity.JobBidFilter{JobPostID: ptr(post.ID)})
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}

func TestCreateOffer_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, client, "Move boxes")
	winning := f.bid(t, dana, post.ID, 100)
	losing := f.bid(t, dave, post.ID, 80)
	car := f.car(t, dana, "B 1234 XY")

	offer := f.offer(t, client, post.ID, winning.ID, car.ID)
	assert.Equal(t, dana.DriverID, offer.DriverID)
	assert.Equal(t, client.ClientID, offer.ClientID)

	stored, err := f.store.JobPosts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobPostOffered, stored.Status)

	accepted, err := f.store.JobBids().FindByID(ctx, winning.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BidAccepted, accepted.Status)
	rejected, err := f.store.JobBids().FindByID(ctx, losing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BidRejected, rejected.Status)

	// the post is no longer pending so a second acceptance fails
	result := f.jobs.CreateOffer(ctx, client, &model.CreateJobOfferRequest{
		JobPostID: post.ID, AcceptedBidID: losing.ID, CarID: f.car(t, dave, "B 9 Z").ID,
	})
	requireKind(t, result, "conflict")

	// the losing bid can no longer be edited
	requireKind(t, f.jobs.UpdateBid(ctx, dave, &model.UpdateJobBidRequest{ID: losing.ID, BidMessage: ptr("lower")}), "conflict")

	notes := f.notifications.List(ctx, dana).Data.([]*model.NotificationResponse)
	require.Len(t, notes, 1)
	assert.Contains(t, f.publisher.Topics(), "offer")
}

func TestCreateOffer_BidFromAnotherPost(t *testing.T) {
	f := newFixture(t)
	client := f.client(t, "carol")
	driver := f.driver(t, "dana")
	first := f.post(t, client, "First job")
	second := f.post(t, client, "Second job")
	bid := f.bid(t, driver, second.ID, 100)
	car := f.car(t, driver, "B 1234 XY")

	request := &model.CreateJobOfferRequest{JobPostID: first.ID, AcceptedBidID: bid.ID, CarID: car.ID}
	for _, actor := range []policy.Actor{client, driver, f.client(t, "chris"), unknownActor{}} {
		requireKind(t, f.jobs.CreateOffer(context.Background(), actor, request), "invalid_reference")
	}
}

func TestCreateOffer_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, client, "Move boxes")
	bid := f.bid(t, dana, post.ID, 100)
	danasCar := f.car(t, dana, "B 1 A")
	davesCar := f.car(t, dave, "B 2 A")

	t.Run("car of another driver", func(t *testing.T) {
		result := f.jobs.CreateOffer(ctx, client, &model.CreateJobOfferRequest{
			JobPostID: post.ID, AcceptedBidID: bid.ID, CarID: davesCar.ID,
		})
		requireKind(t, result, "invalid_reference")
	})

	t.Run("driver caller", func(t *testing.T) {
		result := f.jobs.CreateOffer(ctx, dana, &model.CreateJobOfferRequest{
			JobPostID: post.ID, AcceptedBidID: bid.ID, CarID: danasCar.ID,
		})
		requireKind(t, result, "forbidden")
	})

	t.Run("client who does not own the post", func(t *testing.T) {
		result := f.jobs.CreateOffer(ctx, f.client(t, "chris"), &model.CreateJobOfferRequest{
			JobPostID: post.ID, AcceptedBidID: bid.ID, CarID: danasCar.ID,
		})
		requireKind(t, result, "forbidden")
	})

	t.Run("post on hold", func(t *testing.T) {
		require.NoError(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("on_hold")}).Error)
		result := f.jobs.CreateOffer(ctx, client, &model.CreateJobOfferRequest{
			JobPostID: post.ID, AcceptedBidID: bid.ID, CarID: danasCar.ID,
		})
		requireKind(t, result, "conflict")
	})

	offers, err := f.store.JobOffers().List(ctx, entity.JobOfferFilter{})
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestCreateOffer_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, client, "Move boxes")
	bid := f.bid(t, dana, post.ID, 100)
	other := f.bid(t, dave, post.ID, 90)
	car := f.car(t, dana, "B 1 A")

	broken := *f.jobs
	broken.Store = failingOffers{f.store}
	result := broken.CreateOffer(ctx, client, &model.CreateJobOfferRequest{
		JobPostID: post.ID, AcceptedBidID: bid.ID, CarID: car.ID,
	})
	requireKind(t, result, "internal")

	stored, err := f.store.JobPosts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobPostPending, stored.Status)
	for _, id := range []string{bid.ID, other.ID} {
		b, err := f.store.JobBids().FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.BidPending, b.Status)
	}
	assert.NotContains(t, f.publisher.Topics(), "offer")
}

func TestCreateOffer_ConcurrentAcceptance(t *testing.T) {
	f := newFixture(t)
	client := f.client(t, "carol")
	post := f.post(t, client, "Move boxes")

	type candidate struct{ bidID, carID string }
	var candidates []candidate
	for _, name := range []string{"dana", "dave", "dina", "doug"} {
		driver := f.driver(t, name)
		bid := f.bid(t, driver, post.ID, 100)
		car := f.car(t, driver, "PLATE-"+name)
		candidates = append(candidates, candidate{bid.ID, car.ID})
	}

	var wg sync.WaitGroup
	errs := make([]error, len(candidates))
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			errs[i] = f.jobs.CreateOffer(context.Background(), client, &model.CreateJobOfferRequest{
				JobPostID: post.ID, AcceptedBidID: c.bidID, CarID: c.carID,
			}).Error
		}(i, c)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	offers, err := f.store.JobOffers().List(context.Background(), entity.JobOfferFilter{JobPostID: ptr(post.ID)})
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	bids, err := f.store.JobBids().List(context.Background(), entity.JobBidFilter{JobPostID: ptr(post.ID), Status: ptr(entity.BidAccepted)})
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}

func TestUpdatePost_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	post := f.post(t, client, "Move boxes")

	requireKind(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("job_offered")}), "conflict")
	requireKind(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("completed")}), "conflict")
	requireKind(t, f.jobs.UpdatePost(ctx, f.driver(t, "dana"), &model.UpdateJobPostRequest{ID: post.ID, Title: ptr("x")}), "forbidden")
	requireKind(t, f.jobs.UpdatePost(ctx, f.client(t, "chris"), &model.UpdateJobPostRequest{ID: post.ID, Title: ptr("x")}), "forbidden")

	result := f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Title: ptr("Move crates")})
	require.NoError(t, result.Error)
	assert.Equal(t, "Move crates", result.Data.(*model.JobPostResponse).Title)

	result = f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("on_hold")})
	require.NoError(t, result.Error)
	assert.Equal(t, "on_hold", result.Data.(*model.JobPostResponse).Status)

	requireKind(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Title: ptr("edited on hold")}), "conflict")

	require.NoError(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("cancelled")}).Error)
	requireKind(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("pending")}), "conflict")
}

func TestBidEditingAndWithdrawal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	post := f.post(t, client, "Move boxes")
	bid := f.bid(t, dana, post.ID, 100)

	requireKind(t, f.jobs.UpdateBid(ctx, f.driver(t, "dave"), &model.UpdateJobBidRequest{ID: bid.ID, ProposedPrice: ptr(1.0)}), "forbidden")

	result := f.jobs.UpdateBid(ctx, dana, &model.UpdateJobBidRequest{ID: bid.ID, ProposedPrice: ptr(95.0), EstimatedTurnaround: ptr("90m")})
	require.NoError(t, result.Error)
	updated := result.Data.(*model.JobBidResponse)
	assert.Equal(t, 95.0, updated.ProposedPrice)
	assert.Equal(t, "1h30m0s", updated.EstimatedTurnaround)

	result = f.jobs.ListBids(ctx, client, &model.ListJobBidRequest{JobPostID: post.ID})
	require.NoError(t, result.Error)
	assert.Len(t, result.Data, 1)

	require.NoError(t, f.jobs.WithdrawBid(ctx, dana, &model.GetByIDRequest{ID: bid.ID}).Error)
	requireKind(t, f.jobs.GetBid(ctx, dana, &model.GetByIDRequest{ID: bid.ID}), "not_found")
}

func TestRecordTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	post := f.post(t, client, "Move boxes")
	bid := f.bid(t, dana, post.ID, 100)
	offer := f.offer(t, client, post.ID, bid.ID, f.car(t, dana, "B 1 A").ID)

	requireKind(t, f.jobs.RecordTrip(ctx, f.driver(t, "dave"), &model.CreateTripRequest{JobOfferID: offer.ID}), "forbidden")

	result := f.jobs.RecordTrip(ctx, dana, &model.CreateTripRequest{JobOfferID: offer.ID, DistanceTravelled: 12.5})
	require.NoError(t, result.Error)
	trip := result.Data.(*model.TripResponse)
	assert.False(t, trip.IsDelivered)

	requireKind(t, f.jobs.RecordTrip(ctx, client, &model.CreateTripRequest{JobOfferID: offer.ID}), "conflict")

	result = f.jobs.UpdateTrip(ctx, client, &model.UpdateTripRequest{ID: trip.ID, IsDelivered: ptr(true)})
	require.NoError(t, result.Error)
	assert.True(t, result.Data.(*model.TripResponse).IsDelivered)

	for _, actor := range []policy.Actor{client, dana} {
		result = f.jobs.ListTrips(ctx, actor)
		require.NoError(t, result.Error)
		assert.Len(t, result.Data, 1)
	}
	result = f.jobs.ListTrips(ctx, f.client(t, "chris"))
	require.NoError(t, result.Error)
	assert.Empty(t, result.Data)
}

func TestPublisherFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	f.publisher.fail = true
	client := f.client(t, "carol")

	post := f.post(t, client, "Move boxes")
	assert.Equal(t, "pending", post.Status)
}

func TestUpdatePost_HeldOfferResumesAsOffered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, client, "Move boxes")
	bid := f.bid(t, dana, post.ID, 100)
	late := f.bid(t, dave, post.ID, 80)
	f.offer(t, client, post.ID, bid.ID, f.car(t, dana, "B 1 A").ID)

	require.NoError(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("on_hold")}).Error)
	requireKind(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("pending")}), "conflict")

	public := f.jobs.ListPublicPosts(ctx)
	require.NoError(t, public.Error)
	for _, p := range public.Data.([]*model.JobPostResponse) {
		assert.NotEqual(t, post.ID, p.ID)
	}

	result := f.jobs.CreateOffer(ctx, client, &model.CreateJobOfferRequest{
		JobPostID: post.ID, AcceptedBidID: late.ID, CarID: f.car(t, dave, "B 2 B").ID,
	})
	requireKind(t, result, "conflict")

	result = f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("job_offered")})
	require.NoError(t, result.Error)
	assert.Equal(t, "job_offered", result.Data.(*model.JobPostResponse).Status)

	offers, err := f.store.JobOffers().List(ctx, entity.JobOfferFilter{JobPostID: &post.ID})
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	accepted, err := f.store.JobBids().List(ctx, entity.JobBidFilter{JobPostID: &post.ID, Status: ptr(entity.BidAccepted)})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
}

func TestUpdatePost_HeldWithoutOfferReopens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	post := f.post(t, client, "Move boxes")

	require.NoError(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("on_hold")}).Error)
	requireKind(t, f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("job_offered")}), "conflict")

	result := f.jobs.UpdatePost(ctx, client, &model.UpdateJobPostRequest{ID: post.ID, Status: ptr("pending")})
	require.NoError(t, result.Error)
	assert.Equal(t, "pending", result.Data.(*model.JobPostResponse).Status)
}

func TestDriverSeesOnlyOwnBids(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t, "carol")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, client, "Move boxes")
	danasBid := f.bid(t, dana, post.ID, 100)
	davesBid := f.bid(t, dave, post.ID, 90)

	for _, req := range []*model.ListJobBidRequest{{}, {JobPostID: post.ID}} {
		result := f.jobs.ListBids(ctx, dana, req)
		require.NoError(t, result.Error)
		bids := result.Data.([]*model.JobBidResponse)
		require.Len(t, bids, 1)
		assert.Equal(t, danasBid.ID, bids[0].ID)
		assert.Equal(t, dana.DriverID, bids[0].DriverID)
	}

	requireKind(t, f.jobs.GetBid(ctx, dana, &model.GetByIDRequest{ID: davesBid.ID}), "not_found")
	require.NoError(t, f.jobs.GetBid(ctx, dana, &model.GetByIDRequest{ID: danasBid.ID}).Error)

	result := f.jobs.ListBids(ctx, client, &model.ListJobBidRequest{JobPostID: post.ID})
	require.NoError(t, result.Error)
	assert.Len(t, result.Data, 2)
}
