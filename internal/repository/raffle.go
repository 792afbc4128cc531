package repository

import (
	"context"
	"fmt"

	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/repository/dao"
)

var (
	ErrRaffleNotFound      = dao.ErrRaffleNotFound
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrParticipantExists   = dao.ErrParticipantExists
	ErrPrizeNotFound       = dao.ErrPrizeNotFound
	ErrPrizeExhausted      = dao.ErrPrizeExhausted
)

type RaffleDAO interface {
	InsertRaffle(ctx context.Context, raffle dao.Raffle) (dao.Raffle, error)
	FindAllRaffles(ctx context.Context) ([]dao.Raffle, error)
	FindRaffleByID(ctx context.Context, id string) (dao.Raffle, error)
	FindRaffleByJoinCode(ctx context.Context, joinCode string) (dao.Raffle, error)
	UpdateRaffleName(ctx context.Context, id, name string) (dao.Raffle, error)
	UpdateRaffleStatus(ctx context.Context, id, status, joinCode string) (dao.Raffle, error)
	DeleteRaffle(ctx context.Context, id string) error
	InsertParticipant(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindParticipantsByRaffleID(ctx context.Context, raffleID string) ([]dao.ParticipantRow, error)
	FindParticipantByID(ctx context.Context, id string) (dao.Participant, error)
	UpdateParticipantTickets(ctx context.Context, id string, ticketCount int) (dao.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	CountWinsByParticipantID(ctx context.Context, participantID string) (int64, error)
	InsertPrize(ctx context.Context, prize dao.Prize) (dao.Prize, error)
	FindPrizesByRaffleID(ctx context.Context, raffleID string) ([]dao.Prize, error)
	FindPrizeByID(ctx context.Context, id string) (dao.Prize, error)
	UpdatePrize(ctx context.Context, prize dao.Prize) (dao.Prize, error)
	DeletePrize(ctx context.Context, id string) error
	RecordWinner(ctx context.Context, winner dao.Winner) (dao.Winner, error)
	FindWinnersByRaffleID(ctx context.Context, raffleID string) ([]dao.WinnerRow, error)
	CountRaffleStats(ctx context.Context, raffleID string) (participants, tickets, prizes, winners int64, err error)
	FindMultiWinners(ctx context.Context) ([]dao.MultiWinnerRow, error)
}

type RaffleRepository struct {
	dao RaffleDAO
}

func NewRaffleRepository(dao RaffleDAO) *RaffleRepository {
	return &RaffleRepository{
		dao: dao,
	}
}

func (r *RaffleRepository) CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	created, err := r.dao.InsertRaffle(ctx, dao.Raffle{
		Name:   raffle.Name,
		Status: string(domain.RaffleStatusDraft),
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.InsertRaffle -> %w", err)
	}

	return r.raffleDaoToDomain(created), nil
}

func (r *RaffleRepository) FindAllRaffles(ctx context.Context) ([]domain.Raffle, error) {
	found, err := r.dao.FindAllRaffles(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllRaffles -> %w", err)
	}

	raffles := make([]domain.Raffle, 0, len(found))
	for _, raffle := range found {
		raffles = append(raffles, r.raffleDaoToDomain(raffle))
	}

	return raffles, nil
}

func (r *RaffleRepository) FindRaffleByID(ctx context.Context, id string) (domain.Raffle, error) {
	found, err := r.dao.FindRaffleByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindRaffleByID -> %w", err)
	}

	return r.raffleDaoToDomain(found), nil
}

func (r *RaffleRepository) FindRaffleByJoinCode(ctx context.Context, joinCode string) (domain.Raffle, error) {
	found, err := r.dao.FindRaffleByJoinCode(ctx, joinCode)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindRaffleByJoinCode -> %w", err)
	}

	return r.raffleDaoToDomain(found), nil
}

func (r *RaffleRepository) UpdateRaffleName(ctx context.Context, id, name string) (domain.Raffle, error) {
	updated, err := r.dao.UpdateRaffleName(ctx, id, name)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.UpdateRaffleName -> %w", err)
	}

	return r.raffleDaoToDomain(updated), nil
}

func (r *RaffleRepository) UpdateRaffleStatus(ctx context.Context, id string, status domain.RaffleStatus, joinCode string) (domain.Raffle, error) {
	updated, err := r.dao.UpdateRaffleStatus(ctx, id, string(status), joinCode)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.UpdateRaffleStatus -> %w", err)
	}

	return r.raffleDaoToDomain(updated), nil
}

func (r *RaffleRepository) DeleteRaffle(ctx context.Context, id string) error {
	if err := r.dao.DeleteRaffle(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteRaffle -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) AddParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.InsertParticipant(ctx, dao.Participant{
		RaffleID:    participant.RaffleID,
		UserID:      participant.UserID,
		TicketCount: participant.TicketCount,
		JoinedAt:    participant.JoinedAt,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.InsertParticipant -> %w", err)
	}

	result := r.participantDaoToDomain(created)
	result.DisplayName = participant.DisplayName

	return result, nil
}

func (r *RaffleRepository) FindParticipants(ctx context.Context, raffleID string) ([]domain.Participant, error) {
	rows, err := r.dao.FindParticipantsByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipantsByRaffleID -> %w", err)
	}

	participants := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		participant := r.participantDaoToDomain(row.Participant)
		participant.DisplayName = row.DisplayName
		participants = append(participants, participant)
	}

	return participants, nil
}

func (r *RaffleRepository) FindParticipantByID(ctx context.Context, id string) (domain.Participant, error) {
	found, err := r.dao.FindParticipantByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindParticipantByID -> %w", err)
	}

	return r.participantDaoToDomain(found), nil
}

func (r *RaffleRepository) UpdateParticipantTickets(ctx context.Context, id string, ticketCount int) (domain.Participant, error) {
	updated, err := r.dao.UpdateParticipantTickets(ctx, id, ticketCount)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.UpdateParticipantTickets -> %w", err)
	}

	return r.participantDaoToDomain(updated), nil
}

func (r *RaffleRepository) RemoveParticipant(ctx context.Context, id string) error {
	if err := r.dao.DeleteParticipant(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteParticipant -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) CountParticipantWins(ctx context.Context, participantID string) (int64, error) {
	count, err := r.dao.CountWinsByParticipantID(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountWinsByParticipantID -> %w", err)
	}

	return count, nil
}

func (r *RaffleRepository) CreatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error) {
	created, err := r.dao.InsertPrize(ctx, dao.Prize{
		RaffleID: prize.RaffleID,
		Name:     prize.Name,
		Quantity: prize.Quantity,
	})
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.InsertPrize -> %w", err)
	}

	return r.prizeDaoToDomain(created), nil
}

func (r *RaffleRepository) FindPrizes(ctx context.Context, raffleID string) ([]domain.Prize, error) {
	found, err := r.dao.FindPrizesByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPrizesByRaffleID -> %w", err)
	}

	prizes := make([]domain.Prize, 0, len(found))
	for _, prize := range found {
		prizes = append(prizes, r.prizeDaoToDomain(prize))
	}

	return prizes, nil
}

func (r *RaffleRepository) FindPrizeByID(ctx context.Context, id string) (domain.Prize, error) {
	found, err := r.dao.FindPrizeByID(ctx, id)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.FindPrizeByID -> %w", err)
	}

	return r.prizeDaoToDomain(found), nil
}

func (r *RaffleRepository) UpdatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error) {
	updated, err := r.dao.UpdatePrize(ctx, dao.Prize{
		ID:       prize.ID,
		Name:     prize.Name,
		Quantity: prize.Quantity,
	})
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.UpdatePrize -> %w", err)
	}

	return r.prizeDaoToDomain(updated), nil
}

func (r *RaffleRepository) DeletePrize(ctx context.Context, id string) error {
	if err := r.dao.DeletePrize(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePrize -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) RecordWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error) {
	created, err := r.dao.RecordWinner(ctx, dao.Winner{
		RaffleID:      winner.RaffleID,
		PrizeID:       winner.PrizeID,
		ParticipantID: winner.ParticipantID,
		UserID:        winner.UserID,
		Seed:          winner.Seed,
		DrawnAt:       winner.DrawnAt,
	})
	if err != nil {
		return domain.Winner{}, fmt.Errorf("r.dao.RecordWinner -> %w", err)
	}

	result := r.winnerDaoToDomain(created)
	result.DisplayName = winner.DisplayName
	result.PrizeName = winner.PrizeName

	return result, nil
}

func (r *RaffleRepository) FindWinners(ctx context.Context, raffleID string) ([]domain.Winner, error) {
	rows, err := r.dao.FindWinnersByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindWinnersByRaffleID -> %w", err)
	}

	winners := make([]domain.Winner, 0, len(rows))
	for _, row := range rows {
		winner := r.winnerDaoToDomain(row.Winner)
		winner.DisplayName = row.DisplayName
		winner.PrizeName = row.PrizeName
		winners = append(winners, winner)
	}

	return winners, nil
}

func (r *RaffleRepository) GetRaffleStats(ctx context.Context, raffleID string) (domain.RaffleStats, error) {
	participants, tickets, prizes, winners, err := r.dao.CountRaffleStats(ctx, raffleID)
	if err != nil {
		return domain.RaffleStats{}, fmt.Errorf("r.dao.CountRaffleStats -> %w", err)
	}

	return domain.RaffleStats{
		RaffleID:         raffleID,
		ParticipantCount: participants,
		TotalTickets:     tickets,
		PrizeCount:       prizes,
		WinnersDrawn:     winners,
	}, nil
}

func (r *RaffleRepository) FindMultiWinners(ctx context.Context) ([]domain.MultiWinner, error) {
	rows, err := r.dao.FindMultiWinners(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMultiWinners -> %w", err)
	}

	multiWinners := make([]domain.MultiWinner, 0, len(rows))
	for _, row := range rows {
		multiWinners = append(multiWinners, domain.MultiWinner{
			UserID:   row.UserID,
			Name:     row.Name,
			WinCount: row.WinCount,
		})
	}

	return multiWinners, nil
}

func (r *RaffleRepository) raffleDaoToDomain(raffle dao.Raffle) domain.Raffle {
	return domain.Raffle{
		ID:        raffle.ID,
		Name:      raffle.Name,
		Status:    domain.RaffleStatus(raffle.Status),
		JoinCode:  raffle.JoinCode,
		CreatedAt: raffle.CreatedAt,
		UpdatedAt: raffle.UpdatedAt,
	}
}

func (r *RaffleRepository) participantDaoToDomain(participant dao.Participant) domain.Participant {
	return domain.Participant{
		ID:          participant.ID,
		RaffleID:    participant.RaffleID,
		UserID:      participant.UserID,
		TicketCount: participant.TicketCount,
		JoinedAt:    participant.JoinedAt,
	}
}

func (r *RaffleRepository) prizeDaoToDomain(prize dao.Prize) domain.Prize {
	return domain.Prize{
		ID:         prize.ID,
		RaffleID:   prize.RaffleID,
		Name:       prize.Name,
		Quantity:   prize.Quantity,
		DrawnCount: prize.DrawnCount,
		CreatedAt:  prize.CreatedAt,
		UpdatedAt:  prize.UpdatedAt,
	}
}

func (r *RaffleRepository) winnerDaoToDomain(winner dao.Winner) domain.Winner {
	return domain.Winner{
		ID:            winner.ID,
		RaffleID:      winner.RaffleID,
		PrizeID:       winner.PrizeID,
		ParticipantID: winner.ParticipantID,
		UserID:        winner.UserID,
		Seed:          winner.Seed,
		DrawnAt:       winner.DrawnAt,
	}
}
