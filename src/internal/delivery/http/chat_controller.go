package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ChatController struct {
	Log     log.Log
	UseCase *usecase.ChatUseCase
}

func NewChatController(useCase *usecase.ChatUseCase, logger log.Log) *ChatController {
	return &ChatController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *ChatController) PostMessage(ctx *fiber.Ctx) error {
	request := new(model.PostMessageRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ChatController.PostMessage", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.PostMessage(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Post Message", fiber.StatusCreated, ctx)
}

func (c *ChatController) ListMessages(ctx *fiber.Ctx) error {
	result := c.UseCase.ListMessages(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Messages", fiber.StatusOK, ctx)
}

func (c *ChatController) GetMessage(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetMessage(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Message", fiber.StatusOK, ctx)
}

func (c *ChatController) MarkRead(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.MarkRead(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Mark Message Read", fiber.StatusOK, ctx)
}

func (c *ChatController) UnreadCount(ctx *fiber.Ctx) error {
	result := c.UseCase.UnreadCount(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Unread Messages", fiber.StatusOK, ctx)
}
