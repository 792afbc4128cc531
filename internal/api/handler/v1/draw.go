package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/service"
)

type DrawService interface {
	Run(ctx context.Context, raffleID, prizeID string) (domain.Winner, error)
	ListWinners(ctx context.Context, raffleID string) ([]domain.Winner, error)
}

type DrawHandler struct {
	svc DrawService
}

func NewDrawHandler(svc DrawService) *DrawHandler {
	return &DrawHandler{
		svc: svc,
	}
}

// HandleRunDraw godoc
// @Summary      Run a wheel draw for a prize
// @Description  Broadcasts DRAW_START, WHEEL_SEED and WINNER_REVEALED on the raffle's draw channel and persists the winner.
// @Tags         draw
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Param        prizeID    path      string true "prize ID"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/prizes/{prizeID}/draw [post]
// @Security     BearerAuth
func (h *DrawHandler) HandleRunDraw(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	prizeID, respErr := uuidParam(ctx, "prizeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	winner, err := h.svc.Run(ctx.Request.Context(), raffleID, prizeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRaffleNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaffleNotFound))
		case errors.Is(err, service.ErrPrizeNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPrizeNotFound))
		case errors.Is(err, service.ErrRaffleNotActive):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRaffleNotActive))
		case errors.Is(err, service.ErrPrizeExhausted):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPrizeExhausted))
		case errors.Is(err, service.ErrNoEligibleParticipants):
			response.RenderErr(ctx, response.ErrConflict(service.ErrNoEligibleParticipants))
		default:
			err = fmt.Errorf("v1.HandleRunDraw -> h.svc.Run -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	response.RenderData(ctx, http.StatusCreated, winner)
}

// HandleListWinners godoc
// @Summary      List winners of a raffle
// @Tags         draw
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/winners [get]
// @Security     BearerAuth
func (h *DrawHandler) HandleListWinners(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	winners, err := h.svc.ListWinners(ctx.Request.Context(), raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaffleNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleListWinners -> h.svc.ListWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.RenderData(ctx, http.StatusOK, winners)
}
