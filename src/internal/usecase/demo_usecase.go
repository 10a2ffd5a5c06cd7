package usecase

import (
	"context"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type DemoUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Store    repository.Store
	Mailer   DemoMailer
}

func NewDemoUseCase(logger log.Log, validate *validator.Validate, store repository.Store, mailer DemoMailer) *DemoUseCase {
	return &DemoUseCase{
		Log:      logger,
		Validate: validate,
		Store:    store,
		Mailer:   mailer,
	}
}

// BookDemo stores a demo request and then queues the staff email. The request is
// accepted even when the email cannot be queued.
func (c *DemoUseCase) BookDemo(ctx context.Context, request *model.DemoRequestRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("demo-usecase", err.Error(), "BookDemo", utils.ConvertString(request))
		return result
	}

	demo := &entity.DemoRequest{
		ID:        uuid.NewString(),
		FullName:  request.FullName,
		Email:     request.Email,
		Company:   request.Company,
		Phone:     request.Phone,
		Datetime:  request.Datetime.UTC(),
		Message:   request.Message,
		CreatedAt: now(),
	}
	if err := c.Store.DemoRequests().Create(ctx, demo); err != nil {
		c.Log.Error("demo-usecase", err.Error(), "BookDemo", utils.ConvertString(request))
		result.Error = storageError(err, "demo request")
		return result
	}

	if c.Mailer != nil {
		sideEffectFailed(c.Log, "email", "BookDemo", c.Mailer.EnqueueDemoRequest(ctx, converter.DemoRequestToTask(demo)))
	}

	c.Log.Info("demo-usecase", "demo request stored", "BookDemo", demo.ID)
	result.Data = converter.DemoRequestToResponse(demo)
	return result
}
