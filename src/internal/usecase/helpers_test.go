package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/policy"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/internal/repository/memory"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/token"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	fail   bool
}

func (p *recordingPublisher) record(topic string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) SendJobPostCreated(*model.JobPostEvent) error { return p.record("post") }
func (p *recordingPublisher) SendJobBidSubmitted(*model.JobBidEvent) error { return p.record("bid") }
func (p *recordingPublisher) SendJobOfferCreated(*model.JobOfferEvent) error {
	return p.record("offer")
}
func (p *recordingPublisher) SendTripRecorded(*model.TripEvent) error { return p.record("trip") }
func (p *recordingPublisher) SendChatMessagePosted(*model.ChatMessageEvent) error {
	return p.record("chat")
}

func (p *recordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

type memoryBlobs struct {
	mu   sync.Mutex
	keys []string
	fail bool
}

func (b *memoryBlobs) Upload(_ context.Context, key string, file *model.FileUpload) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return "", errors.New("bucket unavailable")
	}
	b.keys = append(b.keys, key)
	return "https://files.test/" + key, nil
}

type fixture struct {
	store         *memory.Store
	publisher     *recordingPublisher
	blobs         *memoryBlobs
	identity      *IdentityUseCase
	assets        *AssetUseCase
	jobs          *JobUseCase
	ledger        *LedgerUseCase
	chat          *ChatUseCase
	notifications *NotificationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := log.NewLogger("marketplace-test", "ERROR", &bytes.Buffer{})
	validate := validator.New()
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	blobs := &memoryBlobs{}

	tokens := token.NewManager("test-secret", "marketplace-test", 15*time.Minute, time.Hour)
	identity := NewIdentityUseCase(logger, validate, store, memory.NewRefreshTokens(), tokens, blobs)
	identity.HashCost = bcrypt.MinCost
	notifications := NewNotificationUseCase(logger, validate, store)

	return &fixture{
		store:         store,
		publisher:     publisher,
		blobs:         blobs,
		identity:      identity,
		assets:        NewAssetUseCase(logger, validate, store, blobs),
		jobs:          NewJobUseCase(logger, validate, store, publisher, notifications),
		ledger:        NewLedgerUseCase(logger, validate, store, nil),
		chat:          NewChatUseCase(logger, validate, store, publisher, notifications),
		notifications: notifications,
	}
}

// signUp registers an account and resolves the actor its access token maps to.
func (f *fixture) signUp(t *testing.T, role, username string) policy.Actor {
	t.Helper()
	result := f.identity.Register(context.Background(), &model.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse",
		Role:     role,
	})
	require.NoError(t, result.Error)
	auth := result.Data.(*model.AuthResponse)

	claim, err := f.identity.Tokens.Parse(auth.Tokens.Access, token.TypeAccess)
	require.NoError(t, err)
	actor, err := f.identity.ResolveActor(context.Background(), claim)
	require.NoError(t, err)
	return actor
}

func (f *fixture) driver(t *testing.T, username string) policy.DriverActor {
	return f.signUp(t, "driver", username).(policy.DriverActor)
}

func (f *fixture) client(t *testing.T, username string) policy.ClientActor {
	return f.signUp(t, "client", username).(policy.ClientActor)
}

func (f *fixture) post(t *testing.T, client policy.Actor, title string) *model.JobPostResponse {
	t.Helper()
	result := f.jobs.CreatePost(context.Background(), client, &model.CreateJobPostRequest{
		Title:           title,
		PickupLocation:  "Depot A",
		DropoffLocation: "Warehouse B",
	})
	require.NoError(t, result.Error)
	return result.Data.(*model.JobPostResponse)
}

func (f *fixture) bid(t *testing.T, driver policy.Actor, postID string, price float64) *model.JobBidResponse {
	t.Helper()
	result := f.jobs.SubmitBid(context.Background(), driver, &model.CreateJobBidRequest{
		JobPostID:           postID,
		BidMessage:          "available today",
		ProposedPrice:       price,
		EstimatedTurnaround: "2h",
	})
	require.NoError(t, result.Error)
	return result.Data.(*model.JobBidResponse)
}

func (f *fixture) car(t *testing.T, driver policy.Actor, plate string) *model.CarResponse {
	t.Helper()
	result := f.assets.CreateCar(context.Background(), driver, &model.CreateCarRequest{
		Model:    "Hilux",
		PlateNo:  plate,
		Capacity: 2,
	})
	require.NoError(t, result.Error)
	return result.Data.(*model.CarResponse)
}

func (f *fixture) offer(t *testing.T, client policy.Actor, postID, bidID, carID string) *model.JobOfferResponse {
	t.Helper()
	result := f.jobs.CreateOffer(context.Background(), client, &model.CreateJobOfferRequest{
		JobPostID:     postID,
		AcceptedBidID: bidID,
		CarID:         carID,
	})
	require.NoError(t, result.Error)
	return result.Data.(*model.JobOfferResponse)
}

// requireKind asserts the result failed with the given error kind.
func requireKind(t *testing.T, result utils.Result, kind string) {
	t.Helper()
	require.Error(t, result.Error)
	var typed httpError.HTTPError
	require.True(t, errors.As(result.Error, &typed), "unexpected error %v", result.Error)
	require.Equal(t, kind, typed.Common().Kind, typed.Error())
}

// errorKind reports the kind of a typed error, or "untyped".
func errorKind(err error) string {
	var typed httpError.HTTPError
	if !errors.As(err, &typed) {
		return "untyped"
	}
	return typed.Common().Kind
}

// failingOffers wraps a store so creating offers always fails.
type failingOffers struct {
	repository.Store
}

func (s failingOffers) JobOffers() repository.JobOfferRepository {
	return brokenOfferRepo{s.Store.JobOffers()}
}

func (s failingOffers) WithTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.WithTransaction(ctx, func(tx repository.Store) error {
		return fn(failingOffers{tx})
	})
}

type brokenOfferRepo struct {
	repository.JobOfferRepository
}

func (brokenOfferRepo) Create(context.Context, *entity.JobOffer) error {
	return errors.New("disk full")
}

// failingDrivers wraps a store so creating driver profiles always fails.
type failingDrivers struct {
	repository.Store
}

func (s failingDrivers) Drivers() repository.DriverRepository {
	return brokenDriverRepo{s.Store.Drivers()}
}

func (s failingDrivers) WithTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.WithTransaction(ctx, func(tx repository.Store) error {
		return fn(failingDrivers{tx})
	})
}

type brokenDriverRepo struct {
	repository.DriverRepository
}

func (brokenDriverRepo) Create(context.Context, *entity.Driver) error {
	return errors.New("disk full")
}
