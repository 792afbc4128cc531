package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/api/middleware"
)

func getUserID(ctx *gin.Context) (uint, *response.Err) {
	userID := ctx.GetUint(middleware.ContextKeyUserID)
	if userID == 0 {
		return 0, response.ErrUnauthorized("missing session")
	}

	return userID, nil
}

func uuidParam(ctx *gin.Context, name string) (string, *response.Err) {
	value := ctx.Param(name)
	if err := validation.Validate(value, validation.Required, is.UUIDv4); err != nil {
		return "", response.ErrBadRequest(fmt.Errorf("%v must be a valid UUID", name))
	}

	return value, nil
}
