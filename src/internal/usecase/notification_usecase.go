package usecase

import (
	"context"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/policy"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type NotificationUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Store    repository.Store
}

func NewNotificationUseCase(logger log.Log, validate *validator.Validate, store repository.Store) *NotificationUseCase {
	return &NotificationUseCase{
		Log:      logger,
		Validate: validate,
		Store:    store,
	}
}

// Notify writes an in-app notification for a user. It runs after the triggering
// change has committed, so failures are only logged.
func (c *NotificationUseCase) Notify(ctx context.Context, userID, message string) {
	if c == nil || userID == "" {
		return
	}
	notification := &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: now(),
	}
	sideEffectFailed(c.Log, "notification", "Notify", c.Store.Notifications().Create(ctx, notification))
}

func (c *NotificationUseCase) NotifyClient(ctx context.Context, clientID, message string) {
	if c == nil {
		return
	}
	userID, err := userOfClient(ctx, c.Store, clientID)
	if err != nil {
		sideEffectFailed(c.Log, "notification", "NotifyClient", err)
		return
	}
	c.Notify(ctx, userID, message)
}

func (c *NotificationUseCase) NotifyDriver(ctx context.Context, driverID, message string) {
	if c == nil {
		return
	}
	userID, err := userOfDriver(ctx, c.Store, driverID)
	if err != nil {
		sideEffectFailed(c.Log, "notification", "NotifyDriver", err)
		return
	}
	c.Notify(ctx, userID, message)
}

func (c *NotificationUseCase) Create(ctx context.Context, actor policy.Actor, request *model.CreateNotificationRequest) utils.Result {
	var result utils.Result

	if err := policy.Authorize(actor, policy.ModifyNotification, policy.Target{}).Err(); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("notification-usecase", err.Error(), "Create", utils.ConvertString(request))
		return result
	}

	notification := &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    actor.UserID(),
		Message:   request.Message,
		CreatedAt: now(),
	}
	if err := c.Store.Notifications().Create(ctx, notification); err != nil {
		c.Log.Error("notification-usecase", err.Error(), "Create", utils.ConvertString(request))
		result.Error = storageError(err, "notification")
		return result
	}
	result.Data = converter.NotificationToResponse(notification)
	return result
}

func (c *NotificationUseCase) List(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.NotificationResponse{}
	scope := policy.VisibleTo(actor)
	if scope.Deny {
		result.Data = responses
		return result
	}

	notifications, err := c.Store.Notifications().List(ctx, entity.NotificationFilter{UserID: ptr(scope.UserID)})
	if err != nil {
		c.Log.Error("notification-usecase", err.Error(), "List", scope.UserID)
		result.Error = storageError(err, "notification")
		return result
	}
	for i := range notifications {
		responses = append(responses, converter.NotificationToResponse(&notifications[i]))
	}
	result.Data = responses
	return result
}

// owned loads a notification the actor may modify. Notifications of other users
// are reported as missing.
func (c *NotificationUseCase) owned(ctx context.Context, actor policy.Actor, id string) (*entity.Notification, error) {
	notification, err := c.Store.Notifications().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "notification")
	}
	scope := policy.VisibleTo(actor)
	if scope.Deny || notification.UserID != scope.UserID {
		return nil, notFound("notification not found")
	}
	return notification, nil
}

func (c *NotificationUseCase) MarkRead(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	notification, err := c.owned(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.Notifications().MarkRead(ctx, notification.ID); err != nil {
		c.Log.Error("notification-usecase", err.Error(), "MarkRead", request.ID)
		result.Error = storageError(err, "notification")
		return result
	}
	notification.IsRead = true
	result.Data = converter.NotificationToResponse(notification)
	return result
}

func (c *NotificationUseCase) Delete(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	notification, err := c.owned(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.Notifications().Delete(ctx, notification.ID); err != nil {
		c.Log.Error("notification-usecase", err.Error(), "Delete", request.ID)
		result.Error = storageError(err, "notification")
		return result
	}
	return result
}
