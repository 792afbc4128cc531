package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/config"
	"github.com/servushq/servus-raffle/internal/domain"
)

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// AdminOnly allows through only users whose email is on the admin
// allowlist. It re-reads the user on every request so revoking an email
// takes effect immediately.
func AdminOnly(allowlist config.Allowlist, users UserGetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint(ContextKeyUserID)
		if userID == 0 {
			response.RenderErr(ctx, response.ErrUnauthorized("missing session"))
			ctx.Abort()

			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.ErrForbidden("admin access required"))
			ctx.Abort()

			return
		}

		if !allowlist.Contains(user.Email) {
			response.RenderErr(ctx, response.ErrForbidden("admin access required"))
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}
