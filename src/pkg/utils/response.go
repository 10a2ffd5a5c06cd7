package utils

import (
	"errors"
	"net/http"

	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
}

type ErrorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
		Code:    code,
	})
}

// ResponseError renders err inside the error envelope. Anything that is not a typed
// http error is reported as an opaque 500.
func ResponseError(err error, ctx *fiber.Ctx) error {
	body := ErrorToBody(err)
	if body.Code == http.StatusInternalServerError {
		log.GetLogger().Error("response-error", err.Error(), ctx.Path(), "")
	}
	return ctx.Status(body.Code).JSON(ErrorResponse{Error: body})
}

func ErrorToBody(err error) ErrorBody {
	var typed httpError.HTTPError
	if errors.As(err, &typed) {
		common := typed.Common()
		return ErrorBody{Code: common.Code, Message: common.Message, Details: common.Details}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < http.StatusInternalServerError {
		return ErrorBody{Code: fiberErr.Code, Message: fiberErr.Message}
	}
	return ErrorBody{Code: http.StatusInternalServerError, Message: "Internal server error"}
}
