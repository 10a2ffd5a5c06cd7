package middleware

import (
	"context"
	"strings"

	"marketplace-service/src/internal/policy"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/token"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	userKey  = "auth_user"
	actorKey = "auth_actor"
)

// ActorResolver turns verified token claims into the caller's profile.
type ActorResolver interface {
	ResolveActor(ctx context.Context, claim *token.Claim) (policy.Actor, error)
}

func unauthorized(message string) error {
	errObj := httpError.NewUnauthorized()
	errObj.Message = message
	return errObj
}

// VerifyBearer checks the access token and resolves the caller once for the rest of
// the request.
func VerifyBearer(tokens *token.Manager, resolver ActorResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			return utils.ResponseError(unauthorized("missing or invalid authorization header"), ctx)
		}

		claim, err := tokens.Parse(strings.TrimSpace(raw), token.TypeAccess)
		if err != nil {
			return utils.ResponseError(unauthorized("invalid or expired token"), ctx)
		}

		actor, err := resolver.ResolveActor(ctx.Context(), claim)
		if err != nil {
			return utils.ResponseError(err, ctx)
		}

		ctx.Locals(userKey, claim)
		ctx.Locals(actorKey, actor)
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *token.Claim {
	claim, _ := ctx.Locals(userKey).(*token.Claim)
	if claim == nil {
		return &token.Claim{}
	}
	return claim
}

// GetActor returns the caller resolved by VerifyBearer. Routes mounted without the
// middleware get nil.
func GetActor(ctx *fiber.Ctx) policy.Actor {
	actor, _ := ctx.Locals(actorKey).(policy.Actor)
	return actor
}
