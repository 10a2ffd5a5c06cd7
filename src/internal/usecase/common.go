package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/policy"
	"marketplace-service/src/internal/repository"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// LifecyclePublisher announces committed lifecycle changes to other services.
type LifecyclePublisher interface {
	SendJobPostCreated(event *model.JobPostEvent) error
	SendJobBidSubmitted(event *model.JobBidEvent) error
	SendJobOfferCreated(event *model.JobOfferEvent) error
	SendTripRecorded(event *model.TripEvent) error
	SendChatMessagePosted(event *model.ChatMessageEvent) error
}

// BlobStorage stores uploaded documents and returns their public URL.
type BlobStorage interface {
	Upload(ctx context.Context, key string, file *model.FileUpload) (string, error)
}

type PaymentProvider interface {
	Name() string
	Charge(ctx context.Context, amount float64, currency, reference string) (string, error)
}

// DemoMailer queues the staff email for a demo request.
type DemoMailer interface {
	EnqueueDemoRequest(ctx context.Context, payload *model.DemoRequestEmailTask) error
}

func now() time.Time {
	return time.Now().UTC()
}

func validationError(err error) error {
	errObj := httpError.NewBadRequest()
	errObj.Message = fmt.Sprintf("validation error: %v", err.Error())

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			details[fe.Field()] = fe.Tag()
		}
		errObj.Details = details
	}
	return errObj
}

func badRequest(message string) error {
	errObj := httpError.NewBadRequest()
	errObj.Message = message
	return errObj
}

func notFound(format string, args ...interface{}) error {
	errObj := httpError.NewNotFound()
	errObj.Message = fmt.Sprintf(format, args...)
	return errObj
}

func conflict(format string, args ...interface{}) error {
	errObj := httpError.NewConflict()
	errObj.Message = fmt.Sprintf(format, args...)
	return errObj
}

func invalidReference(format string, args ...interface{}) error {
	errObj := httpError.NewUnprocessableEntity()
	errObj.Message = fmt.Sprintf(format, args...)
	return errObj
}

func unauthorized(message string) error {
	errObj := httpError.NewUnauthorized()
	errObj.Message = message
	return errObj
}

func internalError() error {
	return httpError.NewInternalServerError()
}

// storageError maps repository sentinels to caller-facing errors. Errors that
// already carry an HTTP status pass through untouched.
func storageError(err error, subject string) error {
	var typed httpError.HTTPError
	switch {
	case errors.As(err, &typed):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return notFound("%s not found", subject)
	case errors.Is(err, repository.ErrDuplicate):
		return conflict("%s already exists", subject)
	case errors.Is(err, repository.ErrReference):
		return invalidReference("%s references a record that does not exist", subject)
	}
	return internalError()
}

func requireDriver(actor policy.Actor, op policy.Operation) (policy.DriverActor, error) {
	if err := policy.Authorize(actor, op, policy.Target{}).Err(); err != nil {
		return policy.DriverActor{}, err
	}
	driver, decision := policy.AsDriver(actor)
	return driver, decision.Err()
}

func requireClient(actor policy.Actor, op policy.Operation) (policy.ClientActor, error) {
	if err := policy.Authorize(actor, op, policy.Target{}).Err(); err != nil {
		return policy.ClientActor{}, err
	}
	client, decision := policy.AsClient(actor)
	return client, decision.Err()
}

func ptr[T any](v T) *T {
	return &v
}

// sideEffectFailed records a post-commit failure without affecting the caller's result.
func sideEffectFailed(logger log.Log, kind, scope string, err error) {
	if err == nil {
		return
	}
	metrics.SideEffectFailures.WithLabelValues(kind).Inc()
	logger.Error("side-effect", err.Error(), scope, kind)
}

// userOfClient and userOfDriver resolve a profile to its account for notifications.
func userOfClient(ctx context.Context, store repository.Store, clientID string) (string, error) {
	client, err := store.Clients().FindByID(ctx, clientID)
	if err != nil {
		return "", err
	}
	return client.UserID, nil
}

func userOfDriver(ctx context.Context, store repository.Store, driverID string) (string, error) {
	driver, err := store.Drivers().FindByID(ctx, driverID)
	if err != nil {
		return "", err
	}
	return driver.UserID, nil
}
