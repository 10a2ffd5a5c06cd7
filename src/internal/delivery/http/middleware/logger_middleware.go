package middleware

import (
	"fmt"
	"strconv"
	"time"

	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

const slowRequest = 2 * time.Second

// NewLogger writes one line per request and tags the response with a request id.
func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		requestID := ctx.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(fiber.HeaderXRequestID, requestID)

		err := ctx.Next()
		if err != nil {
			if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := ctx.Response().StatusCode()
		message := fmt.Sprintf("%s %s %d %s", ctx.Method(), ctx.OriginalURL(), status, elapsed)
		logger := log.GetLogger()
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("http", message, "request", requestID)
		case elapsed > slowRequest:
			logger.Slow("http", message, "request", requestID)
		default:
			logger.Info("http", message, "request", requestID)
		}
		return nil
	}
}

// NewMetrics records request counts and latency by route template.
func NewMetrics() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		if err != nil {
			if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := ctx.Route().Path
		metrics.HTTPRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(ctx.Response().StatusCode())).Inc()
		metrics.HTTPDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}

func NewCORS(origins string) fiber.Handler {
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Authorization,Content-Type",
		ExposeHeaders: "Content-Length,X-Request-ID",
		MaxAge:        int((12 * time.Hour).Seconds()),
	})
}
