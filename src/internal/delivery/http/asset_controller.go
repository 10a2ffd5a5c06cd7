package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AssetController struct {
	Log     log.Log
	UseCase *usecase.AssetUseCase
}

func NewAssetController(useCase *usecase.AssetUseCase, logger log.Log) *AssetController {
	return &AssetController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *AssetController) CreateCar(ctx *fiber.Ctx) error {
	request := new(model.CreateCarRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AssetController.CreateCar", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.CreateCar(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Create Car", fiber.StatusCreated, ctx)
}

func (c *AssetController) ListCars(ctx *fiber.Ctx) error {
	result := c.UseCase.ListCars(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Cars", fiber.StatusOK, ctx)
}

func (c *AssetController) GetCar(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetCar(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Car", fiber.StatusOK, ctx)
}

func (c *AssetController) UpdateCar(ctx *fiber.Ctx) error {
	request := new(model.UpdateCarRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AssetController.UpdateCar", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request.ID = ctx.Params("id")
	result := c.UseCase.UpdateCar(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Update Car", fiber.StatusOK, ctx)
}

func (c *AssetController) DeleteCar(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.DeleteCar(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Delete Car", fiber.StatusOK, ctx)
}

func (c *AssetController) CreateCarDoc(ctx *fiber.Ctx) error {
	request := new(model.CreateCarDocRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AssetController.CreateCarDoc", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}

	files := &uploads{}
	defer files.close()
	for field, dst := range map[string]**model.FileUpload{
		"car_insurance":     &request.CarInsurance,
		"car_license":       &request.CarLicense,
		"technical_control": &request.TechnicalControl,
		"yellow_card":       &request.YellowCard,
	} {
		file, err := files.file(ctx, field)
		if err != nil {
			c.Log.Error("AssetController.CreateCarDoc", "Failed to open upload", field, err.Error())
			return utils.ResponseError(invalidBody(err), ctx)
		}
		*dst = file
	}

	result := c.UseCase.CreateCarDoc(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Create Car Documents", fiber.StatusCreated, ctx)
}

func (c *AssetController) ListCarDocs(ctx *fiber.Ctx) error {
	result := c.UseCase.ListCarDocs(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Car Documents", fiber.StatusOK, ctx)
}

func (c *AssetController) GetCarDoc(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetCarDoc(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Car Documents", fiber.StatusOK, ctx)
}

func (c *AssetController) UpdateCarDoc(ctx *fiber.Ctx) error {
	request := new(model.UpdateCarDocRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AssetController.UpdateCarDoc", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request.ID = ctx.Params("id")
	result := c.UseCase.UpdateCarDoc(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Update Car Documents", fiber.StatusOK, ctx)
}

func (c *AssetController) DeleteCarDoc(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.DeleteCarDoc(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Delete Car Documents", fiber.StatusOK, ctx)
}
