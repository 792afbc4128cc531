package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/request"
	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/service"
)

// HandleJoinRaffle godoc
// @Summary      Join a raffle with a code scanned from its QR
// @Tags         participants
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Param        request    body      request.JoinRaffleRequest true "request body"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/join [post]
// @Security     BearerAuth
func (h *RaffleHandler) HandleJoinRaffle(ctx *gin.Context) {
	if _, respErr := uuidParam(ctx, "raffleID"); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.JoinRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participant, err := h.svc.Join(ctx.Request.Context(), userID, req.JoinCode, req.TicketCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidJoinCode):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidJoinCode))
		case errors.Is(err, service.ErrRaffleNotActive):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRaffleNotActive))
		case errors.Is(err, service.ErrParticipantExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantExists))
		default:
			err = fmt.Errorf("v1.HandleJoinRaffle -> h.svc.Join -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	response.RenderData(ctx, http.StatusCreated, participant)
}

// HandleListParticipants godoc
// @Summary      List participants of a raffle
// @Tags         participants
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/participants [get]
// @Security     BearerAuth
func (h *RaffleHandler) HandleListParticipants(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), raffleID)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleListParticipants", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, participants)
}

// HandleUpdateParticipantTickets godoc
// @Summary      Update a participant's ticket count
// @Tags         participants
// @Produce      json
// @Param        raffleID       path      string true "raffle ID"
// @Param        participantID  path      string true "participant ID"
// @Param        request        body      request.UpdateTicketsRequest true "request body"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/participants/{participantID} [put]
// @Security     BearerAuth
func (h *RaffleHandler) HandleUpdateParticipantTickets(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	participantID, respErr := uuidParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateTicketsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participant, err := h.svc.UpdateParticipantTickets(ctx.Request.Context(), raffleID, participantID, req.TicketCount)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))

			return
		}

		h.renderRaffleErr(ctx, "HandleUpdateParticipantTickets", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, participant)
}

// HandleRemoveParticipant godoc
// @Summary      Remove a participant who has not won yet
// @Tags         participants
// @Produce      json
// @Param        raffleID       path      string true "raffle ID"
// @Param        participantID  path      string true "participant ID"
// @Success      204 {object} nil
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/participants/{participantID} [delete]
// @Security     BearerAuth
func (h *RaffleHandler) HandleRemoveParticipant(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	participantID, respErr := uuidParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.RemoveParticipant(ctx.Request.Context(), raffleID, participantID); err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
		case errors.Is(err, service.ErrParticipantHasWon):
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantHasWon))
		default:
			h.renderRaffleErr(ctx, "HandleRemoveParticipant", err)
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
