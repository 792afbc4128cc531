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

type StatsService interface {
	GetRaffleStats(ctx context.Context, raffleID string) (domain.RaffleStats, error)
	GetMultiWinners(ctx context.Context) ([]domain.MultiWinner, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleRaffleStats godoc
// @Summary      Get participant and winner statistics for a raffle
// @Tags         stats
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/stats [get]
// @Security     BearerAuth
func (h *StatsHandler) HandleRaffleStats(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	stats, err := h.svc.GetRaffleStats(ctx.Request.Context(), raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaffleNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleRaffleStats -> h.svc.GetRaffleStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.RenderData(ctx, http.StatusOK, stats)
}

// HandleMultiWinners godoc
// @Summary      List users who have won more than once across raffles
// @Tags         stats
// @Produce      json
// @Success      200 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /stats/multi-winners [get]
// @Security     BearerAuth
func (h *StatsHandler) HandleMultiWinners(ctx *gin.Context) {
	multiWinners, err := h.svc.GetMultiWinners(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleMultiWinners -> h.svc.GetMultiWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.RenderData(ctx, http.StatusOK, multiWinners)
}
