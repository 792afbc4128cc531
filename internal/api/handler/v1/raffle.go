package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/request"
	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/config"
	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/service"
)

type RaffleService interface {
	CreateRaffle(ctx context.Context, name string) (domain.Raffle, error)
	ListRaffles(ctx context.Context) ([]domain.Raffle, error)
	GetRaffle(ctx context.Context, id string) (domain.Raffle, error)
	RenameRaffle(ctx context.Context, id, name string) (domain.Raffle, error)
	ActivateRaffle(ctx context.Context, id string) (domain.Raffle, error)
	EndRaffle(ctx context.Context, id string) (domain.Raffle, error)
	DeleteRaffle(ctx context.Context, id string) error
	Join(ctx context.Context, userID uint, code string, ticketCount int) (domain.Participant, error)
	ListParticipants(ctx context.Context, raffleID string) ([]domain.Participant, error)
	UpdateParticipantTickets(ctx context.Context, raffleID, participantID string, ticketCount int) (domain.Participant, error)
	RemoveParticipant(ctx context.Context, raffleID, participantID string) error
	CreatePrize(ctx context.Context, raffleID, name string, quantity int) (domain.Prize, error)
	ListPrizes(ctx context.Context, raffleID string) ([]domain.Prize, error)
	UpdatePrize(ctx context.Context, raffleID, prizeID, name string, quantity int) (domain.Prize, error)
	DeletePrize(ctx context.Context, raffleID, prizeID string) error
}

type RaffleHandler struct {
	conf *config.APIConfig
	svc  RaffleService
}

func NewRaffleHandler(conf *config.APIConfig, svc RaffleService) *RaffleHandler {
	return &RaffleHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleCreateRaffle godoc
// @Summary      Create a raffle in draft status
// @Tags         raffles
// @Produce      json
// @Param        request   body      request.CreateRaffleRequest true "request body"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles [post]
// @Security     BearerAuth
func (h *RaffleHandler) HandleCreateRaffle(ctx *gin.Context) {
	var req request.CreateRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.CreateRaffle(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateRaffle -> h.svc.CreateRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.RenderData(ctx, http.StatusCreated, raffle)
}

// HandleListRaffles godoc
// @Summary      List all raffles
// @Tags         raffles
// @Produce      json
// @Success      200 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles [get]
// @Security     BearerAuth
func (h *RaffleHandler) HandleListRaffles(ctx *gin.Context) {
	raffles, err := h.svc.ListRaffles(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRaffles -> h.svc.ListRaffles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	response.RenderData(ctx, http.StatusOK, raffles)
}

// HandleGetRaffle godoc
// @Summary      Get a raffle by ID
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID} [get]
// @Security     BearerAuth
func (h *RaffleHandler) HandleGetRaffle(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	raffle, err := h.svc.GetRaffle(ctx.Request.Context(), raffleID)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleGetRaffle", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, raffle)
}

// HandleUpdateRaffle godoc
// @Summary      Rename a raffle
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Param        request    body      request.UpdateRaffleRequest true "request body"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID} [put]
// @Security     BearerAuth
func (h *RaffleHandler) HandleUpdateRaffle(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.RenameRaffle(ctx.Request.Context(), raffleID, req.Name)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleUpdateRaffle", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, raffle)
}

// HandleActivateRaffle godoc
// @Summary      Activate a draft raffle and mint its join code
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/activate [post]
// @Security     BearerAuth
func (h *RaffleHandler) HandleActivateRaffle(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	raffle, err := h.svc.ActivateRaffle(ctx.Request.Context(), raffleID)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleActivateRaffle", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, raffle)
}

// HandleEndRaffle godoc
// @Summary      End an active raffle and broadcast RAFFLE_ENDED
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/end [post]
// @Security     BearerAuth
func (h *RaffleHandler) HandleEndRaffle(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	raffle, err := h.svc.EndRaffle(ctx.Request.Context(), raffleID)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleEndRaffle", err)

		return
	}

	response.RenderData(ctx, http.StatusOK, raffle)
}

// HandleDeleteRaffle godoc
// @Summary      Delete a draft raffle
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      204 {object} nil
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID} [delete]
// @Security     BearerAuth
func (h *RaffleHandler) HandleDeleteRaffle(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteRaffle(ctx.Request.Context(), raffleID); err != nil {
		h.renderRaffleErr(ctx, "HandleDeleteRaffle", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetJoinCode godoc
// @Summary      Get the join code and URL for QR rendering
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /raffles/{raffleID}/join-code [get]
// @Security     BearerAuth
func (h *RaffleHandler) HandleGetJoinCode(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	raffle, err := h.svc.GetRaffle(ctx.Request.Context(), raffleID)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleGetJoinCode", err)

		return
	}

	if raffle.Status != domain.RaffleStatusActive || raffle.JoinCode == "" {
		response.RenderErr(ctx, response.ErrConflict(service.ErrRaffleNotActive))

		return
	}

	response.RenderData(ctx, http.StatusOK, response.JoinCodeResponse{
		RaffleID: raffle.ID,
		JoinCode: raffle.JoinCode,
		JoinURL:  h.conf.PublicBaseURL + "/join/" + raffle.JoinCode,
	})
}

func (h *RaffleHandler) renderRaffleErr(ctx *gin.Context, caller string, err error) {
	switch {
	case errors.Is(err, service.ErrRaffleNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrRaffleNotFound))
	case errors.Is(err, service.ErrRaffleNotDraft),
		errors.Is(err, service.ErrRaffleNotActive),
		errors.Is(err, service.ErrRaffleAlreadyEnded):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", caller, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
