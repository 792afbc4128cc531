package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/repository"
)

// fakeRaffleRepo is an in-memory stand-in for the gorm-backed repository.
// It satisfies both RaffleRepository and DrawRepository.
type fakeRaffleRepo struct {
	raffles          map[string]domain.Raffle
	participants     map[string]domain.Participant
	participantOrder []string
	prizes           map[string]domain.Prize
	winners          []domain.Winner
	nextID           int
}

func newFakeRaffleRepo() *fakeRaffleRepo {
	return &fakeRaffleRepo{
		raffles:      make(map[string]domain.Raffle),
		participants: make(map[string]domain.Participant),
		prizes:       make(map[string]domain.Prize),
	}
}

func (f *fakeRaffleRepo) newID() string {
	f.nextID++

	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeRaffleRepo) CreateRaffle(_ context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	raffle.ID = f.newID()
	f.raffles[raffle.ID] = raffle

	return raffle, nil
}

func (f *fakeRaffleRepo) FindAllRaffles(_ context.Context) ([]domain.Raffle, error) {
	var raffles []domain.Raffle
	for _, r := range f.raffles {
		raffles = append(raffles, r)
	}

	return raffles, nil
}

func (f *fakeRaffleRepo) FindRaffleByID(_ context.Context, id string) (domain.Raffle, error) {
	raffle, ok := f.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	return raffle, nil
}

func (f *fakeRaffleRepo) FindRaffleByJoinCode(_ context.Context, joinCode string) (domain.Raffle, error) {
	for _, r := range f.raffles {
		if r.JoinCode != "" && r.JoinCode == joinCode {
			return r, nil
		}
	}

	return domain.Raffle{}, repository.ErrRaffleNotFound
}

func (f *fakeRaffleRepo) UpdateRaffleName(_ context.Context, id, name string) (domain.Raffle, error) {
	raffle, ok := f.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	raffle.Name = name
	f.raffles[id] = raffle

	return raffle, nil
}

func (f *fakeRaffleRepo) UpdateRaffleStatus(_ context.Context, id string, status domain.RaffleStatus, joinCode string) (domain.Raffle, error) {
	raffle, ok := f.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	raffle.Status = status
	raffle.JoinCode = joinCode
	f.raffles[id] = raffle

	return raffle, nil
}

func (f *fakeRaffleRepo) DeleteRaffle(_ context.Context, id string) error {
	if _, ok := f.raffles[id]; !ok {
		return repository.ErrRaffleNotFound
	}

	delete(f.raffles, id)

	return nil
}

func (f *fakeRaffleRepo) AddParticipant(_ context.Context, participant domain.Participant) (domain.Participant, error) {
	for _, p := range f.participants {
		if p.RaffleID == participant.RaffleID && p.UserID == participant.UserID {
			return domain.Participant{}, repository.ErrParticipantExists
		}
	}

	participant.ID = f.newID()
	f.participants[participant.ID] = participant
	f.participantOrder = append(f.participantOrder, participant.ID)

	return participant, nil
}

func (f *fakeRaffleRepo) FindParticipants(_ context.Context, raffleID string) ([]domain.Participant, error) {
	var participants []domain.Participant
	for _, id := range f.participantOrder {
		p, ok := f.participants[id]
		if ok && p.RaffleID == raffleID {
			participants = append(participants, p)
		}
	}

	return participants, nil
}

func (f *fakeRaffleRepo) FindParticipantByID(_ context.Context, id string) (domain.Participant, error) {
	participant, ok := f.participants[id]
	if !ok {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}

	return participant, nil
}

func (f *fakeRaffleRepo) UpdateParticipantTickets(_ context.Context, id string, ticketCount int) (domain.Participant, error) {
	participant, ok := f.participants[id]
	if !ok {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}

	participant.TicketCount = ticketCount
	f.participants[id] = participant

	return participant, nil
}

func (f *fakeRaffleRepo) RemoveParticipant(_ context.Context, id string) error {
	if _, ok := f.participants[id]; !ok {
		return repository.ErrParticipantNotFound
	}

	delete(f.participants, id)

	return nil
}

func (f *fakeRaffleRepo) CountParticipantWins(_ context.Context, participantID string) (int64, error) {
	var count int64
	for _, w := range f.winners {
		if w.ParticipantID == participantID {
			count++
		}
	}

	return count, nil
}

func (f *fakeRaffleRepo) CreatePrize(_ context.Context, prize domain.Prize) (domain.Prize, error) {
	prize.ID = f.newID()
	f.prizes[prize.ID] = prize

	return prize, nil
}

func (f *fakeRaffleRepo) FindPrizes(_ context.Context, raffleID string) ([]domain.Prize, error) {
	var prizes []domain.Prize
	for _, p := range f.prizes {
		if p.RaffleID == raffleID {
			prizes = append(prizes, p)
		}
	}

	return prizes, nil
}

func (f *fakeRaffleRepo) FindPrizeByID(_ context.Context, id string) (domain.Prize, error) {
	prize, ok := f.prizes[id]
	if !ok {
		return domain.Prize{}, repository.ErrPrizeNotFound
	}

	return prize, nil
}

func (f *fakeRaffleRepo) UpdatePrize(_ context.Context, prize domain.Prize) (domain.Prize, error) {
	existing, ok := f.prizes[prize.ID]
	if !ok {
		return domain.Prize{}, repository.ErrPrizeNotFound
	}

	existing.Name = prize.Name
	existing.Quantity = prize.Quantity
	f.prizes[prize.ID] = existing

	return existing, nil
}

func (f *fakeRaffleRepo) DeletePrize(_ context.Context, id string) error {
	if _, ok := f.prizes[id]; !ok {
		return repository.ErrPrizeNotFound
	}

	delete(f.prizes, id)

	return nil
}

func (f *fakeRaffleRepo) RecordWinner(_ context.Context, winner domain.Winner) (domain.Winner, error) {
	prize, ok := f.prizes[winner.PrizeID]
	if !ok {
		return domain.Winner{}, repository.ErrPrizeNotFound
	}
	if prize.DrawnCount >= prize.Quantity {
		return domain.Winner{}, repository.ErrPrizeExhausted
	}

	prize.DrawnCount++
	f.prizes[winner.PrizeID] = prize

	winner.ID = f.newID()
	f.winners = append(f.winners, winner)

	return winner, nil
}

func (f *fakeRaffleRepo) FindWinners(_ context.Context, raffleID string) ([]domain.Winner, error) {
	var winners []domain.Winner
	for _, w := range f.winners {
		if w.RaffleID == raffleID {
			winners = append(winners, w)
		}
	}

	return winners, nil
}

type fakePublisher struct {
	events    []domain.DrawEvent
	failTypes map[domain.DrawEventType]bool
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event domain.DrawEvent) error {
	if f.failTypes[event.Type] {
		return errors.New("publish failed")
	}

	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) eventTypes() []domain.DrawEventType {
	types := make([]domain.DrawEventType, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}

	return types
}

type fakeStatsInvalidator struct {
	invalidated []string
}

func (f *fakeStatsInvalidator) InvalidateRaffle(_ context.Context, raffleID string) {
	f.invalidated = append(f.invalidated, raffleID)
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}
