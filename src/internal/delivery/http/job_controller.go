package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// JobController serves job posts, bids, offers and trips.
type JobController struct {
	Log     log.Log
	UseCase *usecase.JobUseCase
}

func NewJobController(useCase *usecase.JobUseCase, logger log.Log) *JobController {
	return &JobController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *JobController) CreatePost(ctx *fiber.Ctx) error {
	request := new(model.CreateJobPostRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.CreatePost", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.CreatePost(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Create Job Post", fiber.StatusCreated, ctx)
}

func (c *JobController) ListPosts(ctx *fiber.Ctx) error {
	request := new(model.ListJobPostRequest)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("JobController.ListPosts", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.ListPosts(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Job Posts", fiber.StatusOK, ctx)
}

func (c *JobController) ListPublicPosts(ctx *fiber.Ctx) error {
	result := c.UseCase.ListPublicPosts(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Public Job Posts", fiber.StatusOK, ctx)
}

func (c *JobController) GetPost(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetPost(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Job Post", fiber.StatusOK, ctx)
}

func (c *JobController) UpdatePost(ctx *fiber.Ctx) error {
	request := new(model.UpdateJobPostRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.UpdatePost", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request.ID = ctx.Params("id")
	result := c.UseCase.UpdatePost(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Update Job Post", fiber.StatusOK, ctx)
}

func (c *JobController) DeletePost(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.DeletePost(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Delete Job Post", fiber.StatusOK, ctx)
}

func (c *JobController) SubmitBid(ctx *fiber.Ctx) error {
	request := new(model.CreateJobBidRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.SubmitBid", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.SubmitBid(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Submit Bid", fiber.StatusCreated, ctx)
}

func (c *JobController) ListBids(ctx *fiber.Ctx) error {
	request := new(model.ListJobBidRequest)
	if err := ctx.QueryParser(request); err != nil {
		c.Log.Error("JobController.ListBids", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.ListBids(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Bids", fiber.StatusOK, ctx)
}

func (c *JobController) GetBid(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetBid(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Bid", fiber.StatusOK, ctx)
}

func (c *JobController) UpdateBid(ctx *fiber.Ctx) error {
	request := new(model.UpdateJobBidRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.UpdateBid", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request.ID = ctx.Params("id")
	result := c.UseCase.UpdateBid(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Update Bid", fiber.StatusOK, ctx)
}

func (c *JobController) WithdrawBid(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.WithdrawBid(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Withdraw Bid", fiber.StatusOK, ctx)
}

func (c *JobController) CreateOffer(ctx *fiber.Ctx) error {
	request := new(model.CreateJobOfferRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.CreateOffer", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.CreateOffer(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Create Offer", fiber.StatusCreated, ctx)
}

func (c *JobController) ListOffers(ctx *fiber.Ctx) error {
	result := c.UseCase.ListOffers(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Offers", fiber.StatusOK, ctx)
}

func (c *JobController) GetOffer(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetOffer(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Offer", fiber.StatusOK, ctx)
}

func (c *JobController) RecordTrip(ctx *fiber.Ctx) error {
	request := new(model.CreateTripRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.RecordTrip", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	result := c.UseCase.RecordTrip(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Record Trip", fiber.StatusCreated, ctx)
}

func (c *JobController) ListTrips(ctx *fiber.Ctx) error {
	result := c.UseCase.ListTrips(ctx.Context(), middleware.GetActor(ctx))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Trips", fiber.StatusOK, ctx)
}

func (c *JobController) GetTrip(ctx *fiber.Ctx) error {
	request := &model.GetByIDRequest{ID: ctx.Params("id")}
	result := c.UseCase.GetTrip(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Trip", fiber.StatusOK, ctx)
}

func (c *JobController) UpdateTrip(ctx *fiber.Ctx) error {
	request := new(model.UpdateTripRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.UpdateTrip", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(invalidBody(err), ctx)
	}
	request.ID = ctx.Params("id")
	result := c.UseCase.UpdateTrip(ctx.Context(), middleware.GetActor(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Update Trip", fiber.StatusOK, ctx)
}
