package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	mrand "math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/repository"
)

var (
	ErrPrizeExhausted         = repository.ErrPrizeExhausted
	ErrNoEligibleParticipants = errors.New("no eligible participants for this draw")
)

type DrawRepository interface {
	FindRaffleByID(ctx context.Context, id string) (domain.Raffle, error)
	FindPrizeByID(ctx context.Context, id string) (domain.Prize, error)
	FindParticipants(ctx context.Context, raffleID string) ([]domain.Participant, error)
	FindWinners(ctx context.Context, raffleID string) ([]domain.Winner, error)
	RecordWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error)
}

type DrawService struct {
	repo      DrawRepository
	publisher DrawPublisher
	stats     StatsInvalidator
}

func NewDrawService(repo DrawRepository, publisher DrawPublisher, stats StatsInvalidator) *DrawService {
	return &DrawService{
		repo:      repo,
		publisher: publisher,
		stats:     stats,
	}
}

// Run performs one draw for a prize: it broadcasts DRAW_START, picks a
// winner deterministically from a fresh seed, persists the winner, then
// broadcasts WHEEL_SEED and WINNER_REVEALED. Clients replay the wheel
// from the seed and land on the same participant the server persisted.
func (s *DrawService) Run(ctx context.Context, raffleID, prizeID string) (domain.Winner, error) {
	raffle, err := s.repo.FindRaffleByID(ctx, raffleID)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}
	if raffle.Status != domain.RaffleStatusActive {
		return domain.Winner{}, ErrRaffleNotActive
	}

	prize, err := s.repo.FindPrizeByID(ctx, prizeID)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.repo.FindPrizeByID -> %w", err)
	}
	if prize.RaffleID != raffleID {
		return domain.Winner{}, ErrPrizeNotFound
	}
	if prize.DrawnCount >= prize.Quantity {
		return domain.Winner{}, ErrPrizeExhausted
	}

	entries, entryUsers, err := s.eligibleEntries(ctx, raffleID)
	if err != nil {
		return domain.Winner{}, err
	}
	if len(entries) == 0 {
		return domain.Winner{}, ErrNoEligibleParticipants
	}

	err = s.publisher.Publish(ctx, raffleID, domain.DrawEvent{
		Type: domain.EventDrawStart,
		Payload: domain.DrawStartPayload{
			RaffleID:  raffleID,
			PrizeID:   prize.ID,
			PrizeName: prize.Name,
			StartedAt: time.Now(),
		},
	})
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.publisher.Publish -> %w", err)
	}

	seed, err := newSeed()
	if err != nil {
		return domain.Winner{}, fmt.Errorf("newSeed -> %w", err)
	}

	picked := entries[pickIndex(seed, entries)]

	winner, err := s.repo.RecordWinner(ctx, domain.Winner{
		RaffleID:      raffleID,
		PrizeID:       prize.ID,
		PrizeName:     prize.Name,
		ParticipantID: picked.ParticipantID,
		UserID:        entryUsers[picked.ParticipantID],
		DisplayName:   picked.DisplayName,
		Seed:          seed,
		DrawnAt:       time.Now(),
	})
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.repo.RecordWinner -> %w", err)
	}

	// The winner row exists from here on; broadcast failures are logged,
	// not surfaced, so the draw result is never lost to a pub/sub hiccup.
	err = s.publisher.Publish(ctx, raffleID, domain.DrawEvent{
		Type: domain.EventWheelSeed,
		Payload: domain.WheelSeedPayload{
			RaffleID: raffleID,
			PrizeID:  prize.ID,
			Seed:     seed,
			Entries:  entries,
		},
	})
	if err != nil {
		zap.L().Warn("failed to publish WHEEL_SEED", zap.String("raffle_id", raffleID), zap.Error(err))
	}

	err = s.publisher.Publish(ctx, raffleID, domain.DrawEvent{
		Type: domain.EventWinnerRevealed,
		Payload: domain.WinnerRevealedPayload{
			RaffleID:      raffleID,
			PrizeID:       prize.ID,
			WinnerID:      winner.ID,
			ParticipantID: winner.ParticipantID,
			UserID:        winner.UserID,
			DisplayName:   winner.DisplayName,
		},
	})
	if err != nil {
		zap.L().Warn("failed to publish WINNER_REVEALED", zap.String("raffle_id", raffleID), zap.Error(err))
	}

	s.stats.InvalidateRaffle(ctx, raffleID)

	return winner, nil
}

func (s *DrawService) ListWinners(ctx context.Context, raffleID string) ([]domain.Winner, error) {
	if _, err := s.repo.FindRaffleByID(ctx, raffleID); err != nil {
		return nil, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	winners, err := s.repo.FindWinners(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindWinners -> %w", err)
	}

	return winners, nil
}

// eligibleEntries returns the wheel entries for a raffle (every
// participant who has not already won in this raffle, in join order)
// plus each entry's owning user id.
func (s *DrawService) eligibleEntries(ctx context.Context, raffleID string) ([]domain.WheelEntry, map[string]uint, error) {
	participants, err := s.repo.FindParticipants(ctx, raffleID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}

	winners, err := s.repo.FindWinners(ctx, raffleID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.FindWinners -> %w", err)
	}

	won := make(map[string]bool, len(winners))
	for _, w := range winners {
		won[w.ParticipantID] = true
	}

	var entries []domain.WheelEntry
	entryUsers := make(map[string]uint, len(participants))
	for _, p := range participants {
		if won[p.ID] {
			continue
		}
		entries = append(entries, domain.WheelEntry{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			TicketCount:   p.TicketCount,
		})
		entryUsers[p.ID] = p.UserID
	}

	return entries, entryUsers, nil
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(b[:]) & math.MaxInt64), nil
}

// pickIndex selects a wheel entry weighted by ticket count. The pick is
// a pure function of the seed and entry order, which is what lets every
// subscribed client animate the same wheel outcome.
func pickIndex(seed int64, entries []domain.WheelEntry) int {
	total := 0
	for _, e := range entries {
		total += e.TicketCount
	}

	rng := mrand.New(mrand.NewSource(seed))
	n := rng.Intn(total)

	for i, e := range entries {
		n -= e.TicketCount
		if n < 0 {
			return i
		}
	}

	return len(entries) - 1
}
