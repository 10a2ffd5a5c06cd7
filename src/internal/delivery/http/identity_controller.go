package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type IdentityController struct {
	Log     log.Log
	UseCase *usecase.IdentityUseCase
}

func NewIdentityController(useCase *usecase.IdentityUseCase, logger log.Log) *IdentityController {
	return &IdentityController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *IdentityController) Register(ctx *fiber.Ctx) error {
	request := new(model.RegisterRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("IdentityController.Register", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.Register(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Register", fiber.StatusCreated, ctx)
}

func (c *IdentityController) Login(ctx *fiber.Ctx) error {
	request := new(model.LoginRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("IdentityController.Login", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.Login(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Login", fiber.StatusOK, ctx)
}

func (c *IdentityController) Refresh(ctx *fiber.Ctx) error {
	request := new(model.RefreshRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("IdentityController.Refresh", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.Refresh(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Refresh Token", fiber.StatusOK, ctx)
}

func (c *IdentityController) CurrentUser(ctx *fiber.Ctx) error {
	result := c.UseCase.CurrentUser(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Current User", fiber.StatusOK, ctx)
}

func (c *IdentityController) ListDrivers(ctx *fiber.Ctx) error {
	result := c.UseCase.ListDrivers(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Drivers", fiber.StatusOK, ctx)
}

func (c *IdentityController) GetDriver(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetDriver(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Driver", fiber.StatusOK, ctx)
}

func (c *IdentityController) UpdateDriver(ctx *fiber.Ctx) error {
	request := new(model.UpdateDriverRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("IdentityController.UpdateDriver", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request.ID = ctx.Params("id")
	result := c.UseCase.UpdateDriver(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Update Driver", fiber.StatusOK, ctx)
}

func (c *IdentityController) UploadIdentityDocument(ctx *fiber.Ctx) error {
	files := &uploads{}
	defer files.close()

	personalID, err := files.file(ctx, "personal_id")
	if err != nil {
		c.Log.Error("IdentityController.UploadIdentityDocument", "Failed to open upload", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request := &model.UploadIdentityDocumentRequest{
		DriverID: ctx.Params("id"),
		File:     personalID,
	}
	result := c.UseCase.UploadIdentityDocument(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Upload Identity Document", fiber.StatusOK, ctx)
}

func (c *IdentityController) ListClients(ctx *fiber.Ctx) error {
	result := c.UseCase.ListClients(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Clients", fiber.StatusOK, ctx)
}

func (c *IdentityController) GetClient(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetClient(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Client", fiber.StatusOK, ctx)
}
