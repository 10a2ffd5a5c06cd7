package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type LedgerController struct {
	Log     log.Log
	UseCase *usecase.LedgerUseCase
}

func NewLedgerController(useCase *usecase.LedgerUseCase, logger log.Log) *LedgerController {
	return &LedgerController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *LedgerController) RecordPayment(ctx *fiber.Ctx) error {
	request := new(model.CreatePaymentRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("LedgerController.RecordPayment", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.RecordPayment(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Record Payment", fiber.StatusCreated, ctx)
}

func (c *LedgerController) ListPayments(ctx *fiber.Ctx) error {
	result := c.UseCase.ListPayments(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Payments", fiber.StatusOK, ctx)
}

func (c *LedgerController) RateDriver(ctx *fiber.Ctx) error {
	request := new(model.CreateRatingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("LedgerController.RateDriver", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.RateDriver(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Rate Driver", fiber.StatusCreated, ctx)
}

func (c *LedgerController) ListRatings(ctx *fiber.Ctx) error {
	result := c.UseCase.ListRatings(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Ratings", fiber.StatusOK, ctx)
}
