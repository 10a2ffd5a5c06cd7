package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

type LedgerUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Store    repository.Store
	// Provider collects charges when a payment asks for it; nil disables charging.
	Provider PaymentProvider
}

func NewLedgerUseCase(logger log.Log, validate *validator.Validate, store repository.Store, provider PaymentProvider) *LedgerUseCase {
	return &LedgerUseCase{
		Log:      logger,
		Validate: validate,
		Store:    store,
		Provider: provider,
	}
}

// clientOffer loads an offer the client is party to.
func (c *LedgerUseCase) clientOffer(ctx context.Context, actor policy.Actor, op policy.Operation, offerID string) (*entity.JobOffer, error) {
	offer, err := c.Store.JobOffers().FindByID(ctx, offerID)
	if err != nil {
		return nil, storageError(err, "job offer")
	}
	if err := policy.Authorize(actor, op, policy.Target{ClientID: offer.ClientID}).Err(); err != nil {
		return nil, err
	}
	return offer, nil
}

// chargeKey identifies a charge by what it pays for, so repeated or concurrent
// requests for the same amount on an offer share one provider charge.
func chargeKey(offerID string, amount float64) string {
	return fmt.Sprintf("%s:%.2f", offerID, amount)
}

// RecordPayment stores a payment against an offer, optionally charging it
// through the payment provider. Amounts are kept to two decimals and the same
// amount cannot be recorded twice for one offer. A charged payment is stored
// before the provider is called, so only the request holding the row charges.
func (c *LedgerUseCase) RecordPayment(ctx context.Context, actor policy.Actor, request *model.CreatePaymentRequest) utils.Result {
	var result utils.Result

	if _, err := requireClient(actor, policy.RecordPayment); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("ledger-usecase", err.Error(), "RecordPayment", utils.ConvertString(request))
		return result
	}
	offer, err := c.clientOffer(ctx, actor, policy.RecordPayment, request.JobOfferID)
	if err != nil {
		result.Error = err
		return result
	}
	if request.ChargeProvider && c.Provider == nil {
		result.Error = badRequest("no payment provider is configured")
		return result
	}

	payment := &entity.Payment{
		ID:         uuid.NewString(),
		JobOfferID: offer.ID,
		Amount:     utils.RoundMoney(request.Amount),
		CreatedAt:  now(),
	}
	err = c.Store.Payments().Create(ctx, payment)
	metrics.Lifecycle("payment.create", err)
	if err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "RecordPayment", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("a payment of %.2f is already recorded for this offer", payment.Amount)
			return result
		}
		result.Error = storageError(err, "payment")
		return result
	}

	if request.ChargeProvider {
		if err := c.charge(ctx, payment, request.Currency); err != nil {
			result.Error = err
			return result
		}
	}
	result.Data = converter.PaymentToResponse(payment)
	return result
}

// charge collects a stored payment through the provider. A failed charge
// removes the payment so the amount can be retried.
func (c *LedgerUseCase) charge(ctx context.Context, payment *entity.Payment, currency string) error {
	reference, err := c.Provider.Charge(ctx, payment.Amount, strings.ToLower(currency), chargeKey(payment.JobOfferID, payment.Amount))
	if err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "RecordPayment.charge", payment.ID)
		if err := c.Store.Payments().Delete(ctx, payment.ID); err != nil {
			c.Log.Error("ledger-usecase", err.Error(), "RecordPayment.release", payment.ID)
		}
		return internalError()
	}
	payment.Provider = c.Provider.Name()
	payment.ProviderReference = reference
	if err := c.Store.Payments().AttachCharge(ctx, payment.ID, payment.Provider, reference); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "RecordPayment.attach", payment.ID+" "+reference)
		return storageError(err, "payment")
	}
	return nil
}

func (c *LedgerUseCase) ListPayments(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.PaymentResponse{}
	var filter entity.PaymentFilter
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

	payments, err := c.Store.Payments().List(ctx, filter)
	if err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "ListPayments", actor.UserID())
		result.Error = storageError(err, "payment")
		return result
	}
	for i := range payments {
		responses = append(responses, converter.PaymentToResponse(&payments[i]))
	}
	result.Data = responses
	return result
}

// RateDriver records the client's rating of the driver who served an offer.
// Several ratings per offer are accepted.
func (c *LedgerUseCase) RateDriver(ctx context.Context, actor policy.Actor, request *model.CreateRatingRequest) utils.Result {
	var result utils.Result

	client, err := requireClient(actor, policy.RateDriver)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("ledger-usecase", err.Error(), "RateDriver", utils.ConvertString(request))
		return result
	}
	offer, err := c.clientOffer(ctx, actor, policy.RateDriver, request.JobOfferID)
	if err != nil {
		result.Error = err
		return result
	}
	if request.DriverID != "" && request.DriverID != offer.DriverID {
		result.Error = invalidReference("driver did not serve this job offer")
		return result
	}

	rating := &entity.Rating{
		ID:         uuid.NewString(),
		JobOfferID: offer.ID,
		DriverID:   offer.DriverID,
		ClientID:   client.ClientID,
		Rating:     request.Rating,
		Comment:    request.Comment,
		CreatedAt:  now(),
	}
	err = c.Store.Ratings().Create(ctx, rating)
	metrics.Lifecycle("rating.create", err)
	if err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "RateDriver", utils.ConvertString(request))
		result.Error = storageError(err, "rating")
		return result
	}
	result.Data = converter.RatingToResponse(rating)
	return result
}

func (c *LedgerUseCase) ListRatings(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.RatingResponse{}
	var filter entity.RatingFilter
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

	ratings, err := c.Store.Ratings().List(ctx, filter)
	if err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "ListRatings", actor.UserID())
		result.Error = storageError(err, "rating")
		return result
	}
	for i := range ratings {
		responses = append(responses, converter.RatingToResponse(&ratings[i]))
	}
	result.Data = responses
	return result
}
