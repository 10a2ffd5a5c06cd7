package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/policy"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// postTransitions lists the status changes a client may request directly.
// job_offered is first entered through CreateOffer; a held post goes back to
// pending only while it has no offer, and to job_offered only when it has one.
var postTransitions = map[entity.JobPostStatus][]entity.JobPostStatus{
	entity.JobPostPending:    {entity.JobPostOnHold, entity.JobPostCancelled},
	entity.JobPostOnHold:     {entity.JobPostPending, entity.JobPostOffered, entity.JobPostCancelled},
	entity.JobPostOffered:    {entity.JobPostInProgress, entity.JobPostOnHold, entity.JobPostCancelled, entity.JobPostCompleted},
	entity.JobPostInProgress: {entity.JobPostOnHold, entity.JobPostCompleted, entity.JobPostCancelled},
}

func canTransition(from, to entity.JobPostStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range postTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type JobUseCase struct {
	Log       log.Log
	Validate  *validator.Validate
	Store     repository.Store
	Publisher LifecyclePublisher
	Notifier  *NotificationUseCase
}

func NewJobUseCase(
	logger log.Log,
	validate *validator.Validate,
	store repository.Store,
	publisher LifecyclePublisher,
	notifier *NotificationUseCase,
) *JobUseCase {
	return &JobUseCase{
		Log:       logger,
		Validate:  validate,
		Store:     store,
		Publisher: publisher,
		Notifier:  notifier,
	}
}

func (c *JobUseCase) CreatePost(ctx context.Context, actor policy.Actor, request *model.CreateJobPostRequest) utils.Result {
	var result utils.Result

	client, err := requireClient(actor, policy.CreateJobPost)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("job-usecase", err.Error(), "CreatePost", utils.ConvertString(request))
		return result
	}

	createdAt := now()
	post := &entity.JobPost{
		ID:              uuid.NewString(),
		ClientID:        client.ClientID,
		Title:           request.Title,
		Description:     request.Description,
		PickupLocation:  request.PickupLocation,
		DropoffLocation: request.DropoffLocation,
		PickupTime:      createdAt,
		Status:          entity.JobPostPending,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if request.PickupTime != nil {
		post.PickupTime = request.PickupTime.UTC()
	}

	err = c.Store.JobPosts().Create(ctx, post)
	metrics.Lifecycle("jobpost.create", err)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "CreatePost", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("you already have a job post titled %q", post.Title)
			return result
		}
		result.Error = storageError(err, "job post")
		return result
	}

	if c.Publisher != nil {
		sideEffectFailed(c.Log, "event", "CreatePost", c.Publisher.SendJobPostCreated(converter.JobPostToEvent(post)))
	}
	c.Log.Info("job-usecase", "job post created", "CreatePost", post.ID)
	result.Data = converter.JobPostToResponse(post)
	return result
}

func (c *JobUseCase) listPosts(ctx context.Context, filter entity.JobPostFilter) ([]*model.JobPostResponse, error) {
	posts, err := c.Store.JobPosts().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.JobPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, converter.JobPostToResponse(&posts[i]))
	}
	return responses, nil
}

// ListPosts returns the client's own posts, or for a driver every pending post
// plus the posts they have bid on.
func (c *JobUseCase) ListPosts(ctx context.Context, actor policy.Actor, request *model.ListJobPostRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	var filter entity.JobPostFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	case scope.IsDriver():
		filter.OpenOrBidBy = ptr(scope.DriverID)
	default:
		result.Data = []*model.JobPostResponse{}
		return result
	}
	if request.Status != "" {
		filter.Status = ptr(entity.JobPostStatus(request.Status))
	}

	responses, err := c.listPosts(ctx, filter)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListPosts", actor.UserID())
		result.Error = storageError(err, "job post")
		return result
	}
	result.Data = responses
	return result
}

// ListPublicPosts is the anonymous board of open posts.
func (c *JobUseCase) ListPublicPosts(ctx context.Context) utils.Result {
	var result utils.Result

	responses, err := c.listPosts(ctx, entity.JobPostFilter{Status: ptr(entity.JobPostPending)})
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListPublicPosts", "")
		result.Error = storageError(err, "job post")
		return result
	}
	result.Data = responses
	return result
}

func (c *JobUseCase) visiblePost(ctx context.Context, actor policy.Actor, id string) (*entity.JobPost, error) {
	post, err := c.Store.JobPosts().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "job post")
	}
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsClient():
		if post.ClientID == scope.ClientID {
			return post, nil
		}
	case scope.IsDriver():
		if post.Status == entity.JobPostPending {
			return post, nil
		}
		bids, err := c.Store.JobBids().List(ctx, entity.JobBidFilter{JobPostID: ptr(post.ID), DriverID: ptr(scope.DriverID)})
		if err != nil {
			return nil, storageError(err, "job bid")
		}
		if len(bids) > 0 {
			return post, nil
		}
	}
	return nil, notFound("job post not found")
}

func (c *JobUseCase) GetPost(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	post, err := c.visiblePost(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = converter.JobPostToResponse(post)
	return result
}

func (c *JobUseCase) ownedPost(ctx context.Context, actor policy.Actor, id string) (*entity.JobPost, error) {
	post, err := c.Store.JobPosts().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "job post")
	}
	if err := policy.Authorize(actor, policy.ModifyJobPost, policy.Target{ClientID: post.ClientID}).Err(); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a pending post or moves it along the allowed status
// transitions. Terminal posts cannot change.
func (c *JobUseCase) UpdatePost(ctx context.Context, actor policy.Actor, request *model.UpdateJobPostRequest) utils.Result {
	var result utils.Result

	if _, err := requireClient(actor, policy.ModifyJobPost); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	post, err := c.ownedPost(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if post.Status.Terminal() {
		result.Error = conflict("job post is %s and can no longer be changed", post.Status)
		return result
	}

	from := post.Status
	to := from
	if request.Status != nil {
		to = entity.JobPostStatus(*request.Status)
	}
	if to == entity.JobPostOffered && from != entity.JobPostOffered && from != entity.JobPostOnHold {
		result.Error = conflict("a job post becomes job_offered only by accepting a bid")
		return result
	}
	if !canTransition(from, to) {
		result.Error = conflict("job post cannot move from %s to %s", from, to)
		return result
	}

	editsFields := request.Title != nil || request.Description != nil || request.PickupLocation != nil ||
		request.DropoffLocation != nil || request.PickupTime != nil
	if editsFields && from != entity.JobPostPending {
		result.Error = conflict("only pending job posts can be edited")
		return result
	}
	if request.Title != nil {
		post.Title = *request.Title
	}
	if request.Description != nil {
		post.Description = *request.Description
	}
	if request.PickupLocation != nil {
		post.PickupLocation = *request.PickupLocation
	}
	if request.DropoffLocation != nil {
		post.DropoffLocation = *request.DropoffLocation
	}
	if request.PickupTime != nil {
		post.PickupTime = request.PickupTime.UTC()
	}
	post.Status = to
	post.UpdatedAt = now()

	err = c.Store.WithTransaction(ctx, func(tx repository.Store) error {
		if from == entity.JobPostOnHold {
			if err := checkResume(ctx, tx, post.ID, to); err != nil {
				return err
			}
		}
		ok, err := tx.JobPosts().UpdateStatus(ctx, post.ID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return conflict("job post changed concurrently, reload and retry")
		}
		return tx.JobPosts().Update(ctx, post)
	})
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "UpdatePost", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("you already have a job post titled %q", post.Title)
			return result
		}
		result.Error = storageError(err, "job post")
		return result
	}
	result.Data = converter.JobPostToResponse(post)
	return result
}

// checkResume decides where a held post may go back to: an accepted post
// resumes as job_offered, one without an offer reopens for bidding.
func checkResume(ctx context.Context, tx repository.Store, postID string, to entity.JobPostStatus) error {
	if to != entity.JobPostPending && to != entity.JobPostOffered {
		return nil
	}
	offers, err := tx.JobOffers().List(ctx, entity.JobOfferFilter{JobPostID: &postID})
	if err != nil {
		return err
	}
	switch {
	case to == entity.JobPostPending && len(offers) > 0:
		return conflict("job post already has an offer, resume it as job_offered")
	case to == entity.JobPostOffered && len(offers) == 0:
		return conflict("a job post becomes job_offered only by accepting a bid")
	}
	return nil
}

func (c *JobUseCase) DeletePost(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if _, err := requireClient(actor, policy.ModifyJobPost); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	post, err := c.ownedPost(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.JobPosts().Delete(ctx, post.ID); err != nil {
		c.Log.Error("job-usecase", err.Error(), "DeletePost", post.ID)
		result.Error = storageError(err, "job post")
		return result
	}
	return result
}

func parseTurnaround(raw string) (int64, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, badRequest(fmt.Sprintf("estimated_turnaround %q is not a positive duration", raw))
	}
	return int64(d / time.Second), nil
}

// SubmitBid records a driver's proposal on an open post. A driver bids at most
// once per post.
func (c *JobUseCase) SubmitBid(ctx context.Context, actor policy.Actor, request *model.CreateJobBidRequest) utils.Result {
	var result utils.Result

	driver, err := requireDriver(actor, policy.SubmitBid)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("job-usecase", err.Error(), "SubmitBid", utils.ConvertString(request))
		return result
	}
	turnaround, err := parseTurnaround(request.EstimatedTurnaround)
	if err != nil {
		result.Error = err
		return result
	}

	post, err := c.Store.JobPosts().FindByID(ctx, request.JobPostID)
	if err != nil {
		result.Error = storageError(err, "job post")
		return result
	}
	if post.Status.Terminal() {
		result.Error = conflict("job post is %s and no longer accepts bids", post.Status)
		return result
	}

	createdAt := now()
	bid := &entity.JobBid{
		ID:                         uuid.NewString(),
		JobPostID:                  post.ID,
		DriverID:                   driver.DriverID,
		BidMessage:                 request.BidMessage,
		ProposedPrice:              utils.RoundMoney(request.ProposedPrice),
		EstimatedTurnaroundSeconds: turnaround,
		Status:                     entity.BidPending,
		CreatedAt:                  createdAt,
		UpdatedAt:                  createdAt,
	}
	err = c.Store.JobBids().Create(ctx, bid)
	metrics.Lifecycle("jobbid.create", err)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "SubmitBid", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("you have already bid on this job post")
			return result
		}
		result.Error = storageError(err, "job bid")
		return result
	}

	if c.Publisher != nil {
		sideEffectFailed(c.Log, "event", "SubmitBid", c.Publisher.SendJobBidSubmitted(converter.JobBidToEvent(bid)))
	}
	c.Notifier.NotifyClient(ctx, post.ClientID, fmt.Sprintf("New bid on %q", post.Title))
	result.Data = converter.JobBidToResponse(bid)
	return result
}

func bidScope(actor policy.Actor) (entity.JobBidFilter, bool) {
	var filter entity.JobBidFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		return filter, false
	}
	return filter, true
}

func (c *JobUseCase) ListBids(ctx context.Context, actor policy.Actor, request *model.ListJobBidRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	responses := []*model.JobBidResponse{}
	filter, ok := bidScope(actor)
	if !ok {
		result.Data = responses
		return result
	}
	if request.JobPostID != "" {
		filter.JobPostID = ptr(request.JobPostID)
	}

	bids, err := c.Store.JobBids().List(ctx, filter)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListBids", actor.UserID())
		result.Error = storageError(err, "job bid")
		return result
	}
	for i := range bids {
		responses = append(responses, converter.JobBidToResponse(&bids[i]))
	}
	result.Data = responses
	return result
}

func (c *JobUseCase) GetBid(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	bid, err := c.Store.JobBids().FindByID(ctx, request.ID)
	if err != nil {
		result.Error = storageError(err, "job bid")
		return result
	}
	filter, ok := bidScope(actor)
	if !ok {
		result.Error = notFound("job bid not found")
		return result
	}
	filter.JobPostID = ptr(bid.JobPostID)
	visible, err := c.Store.JobBids().List(ctx, filter)
	if err != nil {
		result.Error = storageError(err, "job bid")
		return result
	}
	for i := range visible {
		if visible[i].ID == bid.ID {
			result.Data = converter.JobBidToResponse(bid)
			return result
		}
	}
	result.Error = notFound("job bid not found")
	return result
}

// pendingOwnBid loads a bid the driver may still change.
func (c *JobUseCase) pendingOwnBid(ctx context.Context, actor policy.Actor, id string) (*entity.JobBid, error) {
	bid, err := c.Store.JobBids().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "job bid")
	}
	if err := policy.Authorize(actor, policy.ModifyBid, policy.Target{DriverID: bid.DriverID}).Err(); err != nil {
		return nil, err
	}
	if bid.Status != entity.BidPending {
		return nil, conflict("bid is %s and can no longer be changed", bid.Status)
	}
	return bid, nil
}

func (c *JobUseCase) UpdateBid(ctx context.Context, actor policy.Actor, request *model.UpdateJobBidRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyBid); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	bid, err := c.pendingOwnBid(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}

	if request.BidMessage != nil {
		bid.BidMessage = *request.BidMessage
	}
	if request.ProposedPrice != nil {
		bid.ProposedPrice = utils.RoundMoney(*request.ProposedPrice)
	}
	if request.EstimatedTurnaround != nil {
		turnaround, err := parseTurnaround(*request.EstimatedTurnaround)
		if err != nil {
			result.Error = err
			return result
		}
		bid.EstimatedTurnaroundSeconds = turnaround
	}
	bid.UpdatedAt = now()

	err = c.Store.WithTransaction(ctx, func(tx repository.Store) error {
		ok, err := tx.JobBids().UpdateStatus(ctx, bid.ID, entity.BidPending, entity.BidPending)
		if err != nil {
			return err
		}
		if !ok {
			return conflict("bid is no longer pending")
		}
		return tx.JobBids().Update(ctx, bid)
	})
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "UpdateBid", utils.ConvertString(request))
		result.Error = storageError(err, "job bid")
		return result
	}
	result.Data = converter.JobBidToResponse(bid)
	return result
}

func (c *JobUseCase) WithdrawBid(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyBid); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	bid, err := c.pendingOwnBid(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.JobBids().Delete(ctx, bid.ID); err != nil {
		c.Log.Error("job-usecase", err.Error(), "WithdrawBid", bid.ID)
		result.Error = storageError(err, "job bid")
		return result
	}
	return result
}

// CreateOffer accepts a bid. The post moves to job_offered, the bid is accepted,
// competing bids are rejected and the offer is stored, all or nothing.
func (c *JobUseCase) CreateOffer(ctx context.Context, actor policy.Actor, request *model.CreateJobOfferRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("job-usecase", err.Error(), "CreateOffer", utils.ConvertString(request))
		return result
	}

	post, err := c.Store.JobPosts().FindByID(ctx, request.JobPostID)
	if err != nil {
		result.Error = storageError(err, "job post")
		return result
	}
	bid, err := c.Store.JobBids().FindByID(ctx, request.AcceptedBidID)
	if err != nil {
		result.Error = storageError(err, "job bid")
		return result
	}
	if bid.JobPostID != post.ID {
		result.Error = invalidReference("accepted bid does not belong to this job post")
		return result
	}

	client, err := requireClient(actor, policy.CreateOffer)
	if err != nil {
		result.Error = err
		return result
	}
	if err := policy.Authorize(client, policy.CreateOffer, policy.Target{ClientID: post.ClientID}).Err(); err != nil {
		result.Error = err
		return result
	}

	car, err := c.Store.Cars().FindByID(ctx, request.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			result.Error = invalidReference("car does not exist")
			return result
		}
		result.Error = storageError(err, "car")
		return result
	}
	if car.DriverID != bid.DriverID {
		result.Error = invalidReference("car does not belong to the driver of the accepted bid")
		return result
	}

	createdAt := now()
	offer := &entity.JobOffer{
		ID:            uuid.NewString(),
		JobPostID:     post.ID,
		AcceptedBidID: bid.ID,
		CarID:         car.ID,
		ClientID:      post.ClientID,
		DriverID:      bid.DriverID,
		StartTime:     createdAt,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if request.StartTime != nil {
		offer.StartTime = request.StartTime.UTC()
	}

	err = c.Store.WithTransaction(ctx, func(tx repository.Store) error {
		ok, err := tx.JobPosts().UpdateStatus(ctx, post.ID, entity.JobPostPending, entity.JobPostOffered)
		if err != nil {
			return err
		}
		if !ok {
			return conflict("job post is no longer open for offers")
		}
		ok, err = tx.JobBids().UpdateStatus(ctx, bid.ID, entity.BidPending, entity.BidAccepted)
		if err != nil {
			return err
		}
		if !ok {
			return conflict("bid is no longer pending")
		}
		if err := tx.JobBids().RejectOthers(ctx, post.ID, bid.ID); err != nil {
			return err
		}
		return tx.JobOffers().Create(ctx, offer)
	})
	metrics.Lifecycle("joboffer.create", err)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "CreateOffer", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("an offer already exists for this bid")
			return result
		}
		result.Error = storageError(err, "job offer")
		return result
	}

	if c.Publisher != nil {
		sideEffectFailed(c.Log, "event", "CreateOffer", c.Publisher.SendJobOfferCreated(converter.JobOfferToEvent(offer)))
	}
	c.Notifier.NotifyDriver(ctx, offer.DriverID, fmt.Sprintf("Your bid on %q was accepted", post.Title))
	c.Log.Info("job-usecase", "job offer created", "CreateOffer", offer.ID)
	result.Data = converter.JobOfferToResponse(offer)
	return result
}

func (c *JobUseCase) ListOffers(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.JobOfferResponse{}
	var filter entity.JobOfferFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		result.Data = responses
		return result
	}

	offers, err := c.Store.JobOffers().List(ctx, filter)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListOffers", actor.UserID())
		result.Error = storageError(err, "job offer")
		return result
	}
	for i := range offers {
		responses = append(responses, converter.JobOfferToResponse(&offers[i]))
	}
	result.Data = responses
	return result
}

// offerOf loads an offer and reports it missing unless the actor is one of its parties.
func (c *JobUseCase) offerOf(ctx context.Context, actor policy.Actor, id string) (*entity.JobOffer, error) {
	offer, err := c.Store.JobOffers().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "job offer")
	}
	scope := policy.VisibleTo(actor)
	if (scope.IsDriver() && offer.DriverID == scope.DriverID) || (scope.IsClient() && offer.ClientID == scope.ClientID) {
		return offer, nil
	}
	return nil, notFound("job offer not found")
}

func (c *JobUseCase) GetOffer(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	offer, err := c.offerOf(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = converter.JobOfferToResponse(offer)
	return result
}

func offerParties(offer *entity.JobOffer) policy.Target {
	return policy.Target{ClientID: offer.ClientID, DriverID: offer.DriverID}
}

// RecordTrip stores the execution record of an offer. Either party may record
// it, and an offer has at most one trip.
func (c *JobUseCase) RecordTrip(ctx context.Context, actor policy.Actor, request *model.CreateTripRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("job-usecase", err.Error(), "RecordTrip", utils.ConvertString(request))
		return result
	}
	offer, err := c.Store.JobOffers().FindByID(ctx, request.JobOfferID)
	if err != nil {
		result.Error = storageError(err, "job offer")
		return result
	}
	if err := policy.Authorize(actor, policy.RecordTrip, offerParties(offer)).Err(); err != nil {
		result.Error = err
		return result
	}

	createdAt := now()
	trip := &entity.Trip{
		ID:                uuid.NewString(),
		JobOfferID:        offer.ID,
		ActualPickupTime:  request.ActualPickupTime,
		ActualDropoffTime: request.ActualDropoffTime,
		DistanceTravelled: request.DistanceTravelled,
		IsDelivered:       request.IsDelivered,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	err = c.Store.Trips().Create(ctx, trip)
	metrics.Lifecycle("trip.create", err)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "RecordTrip", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("a trip has already been recorded for this offer")
			return result
		}
		result.Error = storageError(err, "trip")
		return result
	}

	if c.Publisher != nil {
		sideEffectFailed(c.Log, "event", "RecordTrip", c.Publisher.SendTripRecorded(converter.TripToEvent(trip)))
	}
	result.Data = converter.TripToResponse(trip)
	return result
}

func (c *JobUseCase) ListTrips(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.TripResponse{}
	var filter entity.TripFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		result.Data = responses
		return result
	}

	trips, err := c.Store.Trips().List(ctx, filter)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListTrips", actor.UserID())
		result.Error = storageError(err, "trip")
		return result
	}
	for i := range trips {
		responses = append(responses, converter.TripToResponse(&trips[i]))
	}
	result.Data = responses
	return result
}

func (c *JobUseCase) tripOf(ctx context.Context, actor policy.Actor, id string) (*entity.Trip, *entity.JobOffer, error) {
	trip, err := c.Store.Trips().FindByID(ctx, id)
	if err != nil {
		return nil, nil, storageError(err, "trip")
	}
	offer, err := c.offerOf(ctx, actor, trip.JobOfferID)
	if err != nil {
		return nil, nil, notFound("trip not found")
	}
	return trip, offer, nil
}

func (c *JobUseCase) GetTrip(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	trip, _, err := c.tripOf(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = converter.TripToResponse(trip)
	return result
}

func (c *JobUseCase) UpdateTrip(ctx context.Context, actor policy.Actor, request *model.UpdateTripRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	trip, offer, err := c.tripOf(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := policy.Authorize(actor, policy.ModifyTrip, offerParties(offer)).Err(); err != nil {
		result.Error = err
		return result
	}

	if request.ActualPickupTime != nil {
		trip.ActualPickupTime = request.ActualPickupTime
	}
	if request.ActualDropoffTime != nil {
		trip.ActualDropoffTime = request.ActualDropoffTime
	}
	if request.DistanceTravelled != nil {
		trip.DistanceTravelled = *request.DistanceTravelled
	}
	if request.IsDelivered != nil {
		trip.IsDelivered = *request.IsDelivered
	}
	trip.UpdatedAt = now()

	if err := c.Store.Trips().Update(ctx, trip); err != nil {
		c.Log.Error("job-usecase", err.Error(), "UpdateTrip", utils.ConvertString(request))
		result.Error = storageError(err, "trip")
		return result
	}
	result.Data = converter.TripToResponse(trip)
	return result
}
