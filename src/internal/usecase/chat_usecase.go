package usecase

import (
	"context"
	"errors"

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

type ChatUseCase struct {
	Log       log.Log
	Validate  *validator.Validate
	Store     repository.Store
	Publisher LifecyclePublisher
	Notifier  *NotificationUseCase
}

func NewChatUseCase(
	logger log.Log,
	validate *validator.Validate,
	store repository.Store,
	publisher LifecyclePublisher,
	notifier *NotificationUseCase,
) *ChatUseCase {
	return &ChatUseCase{
		Log:       logger,
		Validate:  validate,
		Store:     store,
		Publisher: publisher,
		Notifier:  notifier,
	}
}

// OpenRoom returns the room for (post, client, driver), creating it on first
// use. Concurrent callers converge on the same room.
func (c *ChatUseCase) OpenRoom(ctx context.Context, jobPostID, clientID, driverID string) (*entity.ChatRoom, error) {
	room, err := c.Store.ChatRooms().FindByParticipants(ctx, jobPostID, clientID, driverID)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	room = &entity.ChatRoom{
		ID:        uuid.NewString(),
		ChatID:    uuid.NewString(),
		JobPostID: jobPostID,
		ClientID:  clientID,
		DriverID:  driverID,
		CreatedAt: now(),
	}
	err = c.Store.ChatRooms().Create(ctx, room)
	if errors.Is(err, repository.ErrDuplicate) {
		return c.Store.ChatRooms().FindByParticipants(ctx, jobPostID, clientID, driverID)
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// PostMessage sends a message between a post's client and a driver who bid on
// it. The receiver is whichever party did not send.
func (c *ChatUseCase) PostMessage(ctx context.Context, actor policy.Actor, request *model.PostMessageRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("chat-usecase", err.Error(), "PostMessage", utils.ConvertString(request))
		return result
	}

	post, err := c.Store.JobPosts().FindByID(ctx, request.JobPostID)
	if err != nil {
		result.Error = storageError(err, "job post")
		return result
	}
	client, err := c.Store.Clients().FindByID(ctx, post.ClientID)
	if err != nil {
		result.Error = storageError(err, "client")
		return result
	}
	driver, err := c.Store.Drivers().FindByID(ctx, request.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			result.Error = invalidReference("driver does not exist")
			return result
		}
		result.Error = storageError(err, "driver")
		return result
	}
	if err := policy.Authorize(actor, policy.PostMessage, policy.Target{Participants: []string{client.UserID, driver.UserID}}).Err(); err != nil {
		result.Error = err
		return result
	}

	bids, err := c.Store.JobBids().List(ctx, entity.JobBidFilter{JobPostID: ptr(post.ID), DriverID: ptr(driver.ID)})
	if err != nil {
		result.Error = storageError(err, "job bid")
		return result
	}
	if len(bids) == 0 {
		result.Error = invalidReference("driver has not bid on this job post")
		return result
	}

	sender, receiver := client.UserID, driver.UserID
	if actor.UserID() == driver.UserID {
		sender, receiver = driver.UserID, client.UserID
	}

	room, err := c.OpenRoom(ctx, post.ID, client.ID, driver.ID)
	if err != nil {
		c.Log.Error("chat-usecase", err.Error(), "PostMessage", "open room")
		result.Error = storageError(err, "chat room")
		return result
	}

	message := &entity.ChatMessage{
		ID:         uuid.NewString(),
		ChatRoomID: room.ID,
		SenderID:   sender,
		ReceiverID: receiver,
		Message:    request.Message,
		CreatedAt:  now(),
	}
	err = c.Store.ChatMessages().Create(ctx, message)
	metrics.Lifecycle("chat.post", err)
	if err != nil {
		c.Log.Error("chat-usecase", err.Error(), "PostMessage", room.ID)
		result.Error = storageError(err, "chat message")
		return result
	}

	if c.Publisher != nil {
		sideEffectFailed(c.Log, "event", "PostMessage", c.Publisher.SendChatMessagePosted(converter.ChatMessageToEvent(message, room)))
	}
	c.Notifier.Notify(ctx, receiver, "You have a new message about "+post.Title)
	result.Data = converter.ChatMessageToResponse(message, room)
	return result
}

func (c *ChatUseCase) ListMessages(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.ChatMessageResponse{}
	scope := policy.VisibleTo(actor)
	if scope.Deny {
		result.Data = responses
		return result
	}

	messages, err := c.Store.ChatMessages().List(ctx, entity.ChatMessageFilter{ParticipantID: ptr(scope.UserID)})
	if err != nil {
		c.Log.Error("chat-usecase", err.Error(), "ListMessages", scope.UserID)
		result.Error = storageError(err, "chat message")
		return result
	}
	rooms := map[string]*entity.ChatRoom{}
	for i := range messages {
		room, ok := rooms[messages[i].ChatRoomID]
		if !ok {
			room, err = c.Store.ChatRooms().FindByID(ctx, messages[i].ChatRoomID)
			if err != nil {
				room = nil
			}
			rooms[messages[i].ChatRoomID] = room
		}
		responses = append(responses, converter.ChatMessageToResponse(&messages[i], room))
	}
	result.Data = responses
	return result
}

// participantMessage loads a message and hides it from anyone outside the conversation.
func (c *ChatUseCase) participantMessage(ctx context.Context, actor policy.Actor, id string) (*entity.ChatMessage, error) {
	message, err := c.Store.ChatMessages().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "chat message")
	}
	scope := policy.VisibleTo(actor)
	if scope.Deny || (message.SenderID != scope.UserID && message.ReceiverID != scope.UserID) {
		return nil, notFound("chat message not found")
	}
	return message, nil
}

func (c *ChatUseCase) GetMessage(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	message, err := c.participantMessage(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	room, _ := c.Store.ChatRooms().FindByID(ctx, message.ChatRoomID)
	result.Data = converter.ChatMessageToResponse(message, room)
	return result
}

// MarkRead flags a message as read. Only its receiver may do so.
func (c *ChatUseCase) MarkRead(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	message, err := c.participantMessage(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := policy.Authorize(actor, policy.MarkMessageRead, policy.Target{UserID: message.ReceiverID}).Err(); err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.ChatMessages().MarkRead(ctx, message.ID); err != nil {
		c.Log.Error("chat-usecase", err.Error(), "MarkRead", message.ID)
		result.Error = storageError(err, "chat message")
		return result
	}
	message.ReadStatus = true
	room, _ := c.Store.ChatRooms().FindByID(ctx, message.ChatRoomID)
	result.Data = converter.ChatMessageToResponse(message, room)
	return result
}

func (c *ChatUseCase) UnreadCount(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	scope := policy.VisibleTo(actor)
	if scope.Deny {
		result.Data = model.UnreadCountResponse{}
		return result
	}
	count, err := c.Store.ChatMessages().CountUnread(ctx, scope.UserID)
	if err != nil {
		c.Log.Error("chat-usecase", err.Error(), "UnreadCount", scope.UserID)
		result.Error = storageError(err, "chat message")
		return result
	}
	result.Data = model.UnreadCountResponse{Unread: count}
	return result
}
