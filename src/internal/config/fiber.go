package config

import (
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func NewFiber(config *viper.Viper) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      config.GetString("app.name"),
		ErrorHandler: NewErrorHandler(),
		Prefork:      config.GetBool("web.prefork"),
		BodyLimit:    config.GetInt("web.body_limit"),
	})

	return app
}

// NewErrorHandler renders errors that escape a handler inside the usual envelope.
func NewErrorHandler() fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		body := utils.ErrorToBody(err)
		return ctx.Status(body.Code).JSON(utils.ErrorResponse{Error: body})
	}
}
