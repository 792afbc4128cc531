package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/request"
	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/service"
)

// HandleCreatePrize godoc
// @Summary      Add a prize to a raffle
// @Tags         prizes
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Param        request    body      request.CreatePrizeRequest true "request body"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/prizes [post]
// @Security     BearerAuth
func (h *RaffleHandler) HandleCreatePrize(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreatePrizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prize, err := h.svc.CreatePrize(ctx.Request.Context(), raffleID, req.Name, req.Quantity)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleCreatePrize", err)

		return
	}

	response.RenderData(ctx, http.StatusCreated, prize)
}

// HandleListPrizes godoc
// @Summary      List prizes of a raffle
// @Tags         prizes
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/prizes [get]
// @Security     BearerAuth
func (h *RaffleHandler) HandleListPrizes(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	prizes, err := h.svc.ListPrizes(ctx.Request.Context(), raffleID)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleListPrizes", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, prizes)
}

// HandleUpdatePrize godoc
// @Summary      Update a prize's name or quantity
// @Tags         prizes
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Param        prizeID    path      string true "prize ID"
// @Param        request    body      request.UpdatePrizeRequest true "request body"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/prizes/{prizeID} [put]
// @Security     BearerAuth
func (h *RaffleHandler) HandleUpdatePrize(ctx *gin.Context) {
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

	var req request.UpdatePrizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prize, err := h.svc.UpdatePrize(ctx.Request.Context(), raffleID, prizeID, req.Name, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrizeNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPrizeNotFound))
		case errors.Is(err, service.ErrPrizeQuantityTooLow):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPrizeQuantityTooLow))
		default:
			h.renderRaffleErr(ctx, "HandleUpdatePrize", err)
		}

		return
	}

	response.RenderData(ctx, http.StatusOK, prize)
}

// HandleDeletePrize godoc
// @Summary      Delete a prize that has no winners
// @Tags         prizes
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Param        prizeID    path      string true "prize ID"
// @Success      204 {object} nil
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/prizes/{prizeID} [delete]
// @Security     BearerAuth
func (h *RaffleHandler) HandleDeletePrize(ctx *gin.Context) {
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

	if err := h.svc.DeletePrize(ctx.Request.Context(), raffleID, prizeID); err != nil {
		switch {
		case errors.Is(err, service.ErrPrizeNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPrizeNotFound))
		case errors.Is(err, service.ErrPrizeHasWinners):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPrizeHasWinners))
		default:
			h.renderRaffleErr(ctx, "HandleDeletePrize", err)
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
