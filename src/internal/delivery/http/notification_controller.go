package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Log     log.Log
	UseCase *usecase.NotificationUseCase
	Demo    *usecase.DemoUseCase
}

func NewNotificationController(useCase *usecase.NotificationUseCase, demo *usecase.DemoUseCase, logger log.Log) *NotificationController {
	return &NotificationController{
		Log:     logger,
		UseCase: useCase,
		Demo:    demo,
	}
}

func (c *NotificationController) Create(ctx *fiber.Ctx) error {
	request := new(model.CreateNotificationRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("NotificationController.Create", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.Create(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Create Notification", fiber.StatusCreated, ctx)
}

func (c *NotificationController) List(ctx *fiber.Ctx) error {
	result := c.UseCase.List(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Notifications", fiber.StatusOK, ctx)
}

func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.MarkRead(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Mark Notification Read", fiber.StatusOK, ctx)
}

func (c *NotificationController) Delete(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.Delete(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Delete Notification", fiber.StatusOK, ctx)
}

// BookDemo is public; the request is stored and the sales email goes out from the worker.
func (c *NotificationController) BookDemo(ctx *fiber.Ctx) error {
	request := new(model.DemoRequestRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("NotificationController.BookDemo", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.Demo.BookDemo(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Demo request received", fiber.StatusCreated, ctx)
}
