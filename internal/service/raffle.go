package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/pkg/joincode"
	"github.com/servushq/servus-raffle/internal/repository"
)

var (
	ErrRaffleNotFound       = repository.ErrRaffleNotFound
	ErrParticipantNotFound  = repository.ErrParticipantNotFound
	ErrParticipantExists    = repository.ErrParticipantExists
	ErrPrizeNotFound        = repository.ErrPrizeNotFound
	ErrRaffleNotDraft       = errors.New("raffle is not in draft status")
	ErrRaffleNotActive      = errors.New("raffle is not active")
	ErrRaffleAlreadyEnded   = errors.New("raffle has already ended")
	ErrInvalidJoinCode      = errors.New("invalid join code")
	ErrParticipantHasWon    = errors.New("participant has already won a prize")
	ErrPrizeHasWinners      = errors.New("prize has winners and cannot be deleted")
	ErrPrizeQuantityTooLow  = errors.New("prize quantity cannot drop below drawn count")
)

type RaffleRepository interface {
	CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error)
	FindAllRaffles(ctx context.Context) ([]domain.Raffle, error)
	FindRaffleByID(ctx context.Context, id string) (domain.Raffle, error)
	FindRaffleByJoinCode(ctx context.Context, joinCode string) (domain.Raffle, error)
	UpdateRaffleName(ctx context.Context, id, name string) (domain.Raffle, error)
	UpdateRaffleStatus(ctx context.Context, id string, status domain.RaffleStatus, joinCode string) (domain.Raffle, error)
	DeleteRaffle(ctx context.Context, id string) error
	AddParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindParticipants(ctx context.Context, raffleID string) ([]domain.Participant, error)
	FindParticipantByID(ctx context.Context, id string) (domain.Participant, error)
	UpdateParticipantTickets(ctx context.Context, id string, ticketCount int) (domain.Participant, error)
	RemoveParticipant(ctx context.Context, id string) error
	CountParticipantWins(ctx context.Context, participantID string) (int64, error)
	CreatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error)
	FindPrizes(ctx context.Context, raffleID string) ([]domain.Prize, error)
	FindPrizeByID(ctx context.Context, id string) (domain.Prize, error)
	UpdatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error)
	DeletePrize(ctx context.Context, id string) error
}

// DrawPublisher pushes draw lifecycle events to a raffle's channel.
type DrawPublisher interface {
	Publish(ctx context.Context, raffleID string, event domain.DrawEvent) error
}

// StatsInvalidator drops cached stats after mutations that change them.
type StatsInvalidator interface {
	InvalidateRaffle(ctx context.Context, raffleID string)
}

type RaffleService struct {
	repo         RaffleRepository
	userRepo     UserRepository
	publisher    DrawPublisher
	stats        StatsInvalidator
	joinCodeSalt string
}

func NewRaffleService(repo RaffleRepository, userRepo UserRepository, publisher DrawPublisher, stats StatsInvalidator, joinCodeSalt string) *RaffleService {
	return &RaffleService{
		repo:         repo,
		userRepo:     userRepo,
		publisher:    publisher,
		stats:        stats,
		joinCodeSalt: joinCodeSalt,
	}
}

func (s *RaffleService) CreateRaffle(ctx context.Context, name string) (domain.Raffle, error) {
	created, err := s.repo.CreateRaffle(ctx, domain.Raffle{
		Name:   name,
		Status: domain.RaffleStatusDraft,
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.CreateRaffle -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) ListRaffles(ctx context.Context) ([]domain.Raffle, error) {
	raffles, err := s.repo.FindAllRaffles(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllRaffles -> %w", err)
	}

	return raffles, nil
}

func (s *RaffleService) GetRaffle(ctx context.Context, id string) (domain.Raffle, error) {
	raffle, err := s.repo.FindRaffleByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	return raffle, nil
}

func (s *RaffleService) RenameRaffle(ctx context.Context, id, name string) (domain.Raffle, error) {
	updated, err := s.repo.UpdateRaffleName(ctx, id, name)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.UpdateRaffleName -> %w", err)
	}

	return updated, nil
}

// ActivateRaffle moves a draft raffle to active and mints its join code.
func (s *RaffleService) ActivateRaffle(ctx context.Context, id string) (domain.Raffle, error) {
	raffle, err := s.repo.FindRaffleByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	if raffle.Status != domain.RaffleStatusDraft {
		if raffle.Status == domain.RaffleStatusEnded {
			return domain.Raffle{}, ErrRaffleAlreadyEnded
		}

		return domain.Raffle{}, ErrRaffleNotDraft
	}

	code := joincode.Generate(raffle.ID, s.joinCodeSalt)

	updated, err := s.repo.UpdateRaffleStatus(ctx, id, domain.RaffleStatusActive, code)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.UpdateRaffleStatus -> %w", err)
	}

	return updated, nil
}

// EndRaffle moves an active raffle to ended and broadcasts RAFFLE_ENDED.
func (s *RaffleService) EndRaffle(ctx context.Context, id string) (domain.Raffle, error) {
	raffle, err := s.repo.FindRaffleByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	if raffle.Status != domain.RaffleStatusActive {
		return domain.Raffle{}, ErrRaffleNotActive
	}

	updated, err := s.repo.UpdateRaffleStatus(ctx, id, domain.RaffleStatusEnded, "")
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.UpdateRaffleStatus -> %w", err)
	}

	err = s.publisher.Publish(ctx, id, domain.DrawEvent{
		Type: domain.EventRaffleEnded,
		Payload: domain.RaffleEndedPayload{
			RaffleID: id,
			EndedAt:  updated.UpdatedAt,
		},
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.publisher.Publish -> %w", err)
	}

	return updated, nil
}

func (s *RaffleService) DeleteRaffle(ctx context.Context, id string) error {
	raffle, err := s.repo.FindRaffleByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	if raffle.Status != domain.RaffleStatusDraft {
		return ErrRaffleNotDraft
	}

	if err = s.repo.DeleteRaffle(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteRaffle -> %w", err)
	}

	return nil
}

// Join adds the user to the raffle identified by the join code scanned
// from the QR payload.
func (s *RaffleService) Join(ctx context.Context, userID uint, code string, ticketCount int) (domain.Participant, error) {
	raffle, err := s.repo.FindRaffleByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return domain.Participant{}, ErrInvalidJoinCode
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindRaffleByJoinCode -> %w", err)
	}

	if err = joincode.Validate(raffle.ID, code, s.joinCodeSalt); err != nil {
		return domain.Participant{}, ErrInvalidJoinCode
	}

	if raffle.Status != domain.RaffleStatusActive {
		return domain.Participant{}, ErrRaffleNotActive
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	participant, err := s.repo.AddParticipant(ctx, domain.Participant{
		RaffleID:    raffle.ID,
		UserID:      userID,
		DisplayName: user.Name,
		TicketCount: ticketCount,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.AddParticipant -> %w", err)
	}

	s.stats.InvalidateRaffle(ctx, raffle.ID)

	return participant, nil
}

func (s *RaffleService) ListParticipants(ctx context.Context, raffleID string) ([]domain.Participant, error) {
	if _, err := s.repo.FindRaffleByID(ctx, raffleID); err != nil {
		return nil, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	participants, err := s.repo.FindParticipants(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}

	return participants, nil
}

func (s *RaffleService) UpdateParticipantTickets(ctx context.Context, raffleID, participantID string, ticketCount int) (domain.Participant, error) {
	participant, err := s.repo.FindParticipantByID(ctx, participantID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindParticipantByID -> %w", err)
	}

	if participant.RaffleID != raffleID {
		return domain.Participant{}, ErrParticipantNotFound
	}

	updated, err := s.repo.UpdateParticipantTickets(ctx, participantID, ticketCount)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.UpdateParticipantTickets -> %w", err)
	}

	s.stats.InvalidateRaffle(ctx, raffleID)

	return updated, nil
}

func (s *RaffleService) RemoveParticipant(ctx context.Context, raffleID, participantID string) error {
	participant, err := s.repo.FindParticipantByID(ctx, participantID)
	if err != nil {
		return fmt.Errorf("s.repo.FindParticipantByID -> %w", err)
	}

	if participant.RaffleID != raffleID {
		return ErrParticipantNotFound
	}

	wins, err := s.repo.CountParticipantWins(ctx, participantID)
	if err != nil {
		return fmt.Errorf("s.repo.CountParticipantWins -> %w", err)
	}
	if wins > 0 {
		return ErrParticipantHasWon
	}

	if err = s.repo.RemoveParticipant(ctx, participantID); err != nil {
		return fmt.Errorf("s.repo.RemoveParticipant -> %w", err)
	}

	s.stats.InvalidateRaffle(ctx, raffleID)

	return nil
}

func (s *RaffleService) CreatePrize(ctx context.Context, raffleID, name string, quantity int) (domain.Prize, error) {
	if _, err := s.repo.FindRaffleByID(ctx, raffleID); err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	created, err := s.repo.CreatePrize(ctx, domain.Prize{
		RaffleID: raffleID,
		Name:     name,
		Quantity: quantity,
	})
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.CreatePrize -> %w", err)
	}

	s.stats.InvalidateRaffle(ctx, raffleID)

	return created, nil
}

func (s *RaffleService) ListPrizes(ctx context.Context, raffleID string) ([]domain.Prize, error) {
	if _, err := s.repo.FindRaffleByID(ctx, raffleID); err != nil {
		return nil, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	prizes, err := s.repo.FindPrizes(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPrizes -> %w", err)
	}

	return prizes, nil
}

func (s *RaffleService) UpdatePrize(ctx context.Context, raffleID, prizeID, name string, quantity int) (domain.Prize, error) {
	prize, err := s.repo.FindPrizeByID(ctx, prizeID)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.FindPrizeByID -> %w", err)
	}

	if prize.RaffleID != raffleID {
		return domain.Prize{}, ErrPrizeNotFound
	}

	if quantity < prize.DrawnCount {
		return domain.Prize{}, ErrPrizeQuantityTooLow
	}

	updated, err := s.repo.UpdatePrize(ctx, domain.Prize{
		ID:       prizeID,
		Name:     name,
		Quantity: quantity,
	})
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.UpdatePrize -> %w", err)
	}

	s.stats.InvalidateRaffle(ctx, raffleID)

	return updated, nil
}

func (s *RaffleService) DeletePrize(ctx context.Context, raffleID, prizeID string) error {
	prize, err := s.repo.FindPrizeByID(ctx, prizeID)
	if err != nil {
		return fmt.Errorf("s.repo.FindPrizeByID -> %w", err)
	}

	if prize.RaffleID != raffleID {
		return ErrPrizeNotFound
	}

	if prize.DrawnCount > 0 {
		return ErrPrizeHasWinners
	}

	if err = s.repo.DeletePrize(ctx, prizeID); err != nil {
		return fmt.Errorf("s.repo.DeletePrize -> %w", err)
	}

	s.stats.InvalidateRaffle(ctx, raffleID)

	return nil
}
