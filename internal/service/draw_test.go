package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servushq/servus-raffle/internal/domain"
)

func seedActiveRaffle(t *testing.T, repo *fakeRaffleRepo, prizeQuantity int, participants ...domain.Participant) (raffleID, prizeID string) {
	t.Helper()

	ctx := context.Background()

	raffle, err := repo.CreateRaffle(ctx, domain.Raffle{Name: "Summer Meetup", Status: domain.RaffleStatusDraft})
	require.NoError(t, err)

	_, err = repo.UpdateRaffleStatus(ctx, raffle.ID, domain.RaffleStatusActive, "q3kYx8PzN2mW")
	require.NoError(t, err)

	prize, err := repo.CreatePrize(ctx, domain.Prize{RaffleID: raffle.ID, Name: "Conference Ticket", Quantity: prizeQuantity})
	require.NoError(t, err)

	for _, p := range participants {
		p.RaffleID = raffle.ID
		_, err = repo.AddParticipant(ctx, p)
		require.NoError(t, err)
	}

	return raffle.ID, prize.ID
}

func TestDrawServiceRun(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	publisher := &fakePublisher{}
	stats := &fakeStatsInvalidator{}
	svc := NewDrawService(repo, publisher, stats)

	raffleID, prizeID := seedActiveRaffle(t, repo, 1,
		domain.Participant{UserID: 1, DisplayName: "Alice", TicketCount: 2},
		domain.Participant{UserID: 2, DisplayName: "Bob", TicketCount: 1},
	)

	winner, err := svc.Run(ctx, raffleID, prizeID)
	require.NoError(t, err)

	assert.NotEmpty(t, winner.ID)
	assert.Equal(t, raffleID, winner.RaffleID)
	assert.Equal(t, prizeID, winner.PrizeID)
	assert.Equal(t, "Conference Ticket", winner.PrizeName)
	assert.NotEmpty(t, winner.ParticipantID)
	assert.Contains(t, []uint{1, 2}, winner.UserID)
	assert.GreaterOrEqual(t, winner.Seed, int64(0))

	assert.Equal(t, []domain.DrawEventType{
		domain.EventDrawStart,
		domain.EventWheelSeed,
		domain.EventWinnerRevealed,
	}, publisher.eventTypes())

	seedPayload, ok := publisher.events[1].Payload.(domain.WheelSeedPayload)
	require.True(t, ok)
	assert.Equal(t, winner.Seed, seedPayload.Seed)
	assert.Len(t, seedPayload.Entries, 2)

	revealed, ok := publisher.events[2].Payload.(domain.WinnerRevealedPayload)
	require.True(t, ok)
	assert.Equal(t, winner.ParticipantID, revealed.ParticipantID)

	assert.Equal(t, []string{raffleID}, stats.invalidated)

	winners, err := svc.ListWinners(ctx, raffleID)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, winner.ID, winners[0].ID)
}

func TestDrawServiceRun_WinnerLandsOnSeededPick(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	publisher := &fakePublisher{}
	svc := NewDrawService(repo, publisher, &fakeStatsInvalidator{})

	raffleID, prizeID := seedActiveRaffle(t, repo, 1,
		domain.Participant{UserID: 1, DisplayName: "Alice", TicketCount: 3},
		domain.Participant{UserID: 2, DisplayName: "Bob", TicketCount: 5},
		domain.Participant{UserID: 3, DisplayName: "Carol", TicketCount: 1},
	)

	winner, err := svc.Run(ctx, raffleID, prizeID)
	require.NoError(t, err)

	// Replaying the broadcast seed over the broadcast entries must land
	// on the persisted winner; that is the contract the wheel animation
	// relies on.
	seedPayload := publisher.events[1].Payload.(domain.WheelSeedPayload)
	replayed := seedPayload.Entries[pickIndex(seedPayload.Seed, seedPayload.Entries)]
	assert.Equal(t, winner.ParticipantID, replayed.ParticipantID)
}

func TestDrawServiceRun_ExcludesPriorWinners(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	publisher := &fakePublisher{}
	svc := NewDrawService(repo, publisher, &fakeStatsInvalidator{})

	raffleID, prizeID := seedActiveRaffle(t, repo, 2,
		domain.Participant{UserID: 1, DisplayName: "Alice", TicketCount: 1},
		domain.Participant{UserID: 2, DisplayName: "Bob", TicketCount: 1},
	)

	first, err := svc.Run(ctx, raffleID, prizeID)
	require.NoError(t, err)

	second, err := svc.Run(ctx, raffleID, prizeID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ParticipantID, second.ParticipantID)

	_, err = svc.Run(ctx, raffleID, prizeID)
	assert.ErrorIs(t, err, ErrPrizeExhausted, "quantity 2 allows exactly two draws")
}

func TestDrawServiceRun_NoEligibleParticipants(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	svc := NewDrawService(repo, &fakePublisher{}, &fakeStatsInvalidator{})

	raffleID, prizeID := seedActiveRaffle(t, repo, 1)

	_, err := svc.Run(ctx, raffleID, prizeID)
	assert.ErrorIs(t, err, ErrNoEligibleParticipants)
}

func TestDrawServiceRun_Guards(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	svc := NewDrawService(repo, &fakePublisher{}, &fakeStatsInvalidator{})

	raffleID, prizeID := seedActiveRaffle(t, repo, 1,
		domain.Participant{UserID: 1, DisplayName: "Alice", TicketCount: 1},
	)

	t.Run("unknown raffle", func(t *testing.T) {
		_, err := svc.Run(ctx, "missing", prizeID)
		assert.ErrorIs(t, err, ErrRaffleNotFound)
	})

	t.Run("prize of another raffle", func(t *testing.T) {
		otherRaffleID, _ := seedActiveRaffle(t, repo, 1)

		_, err := svc.Run(ctx, otherRaffleID, prizeID)
		assert.ErrorIs(t, err, ErrPrizeNotFound)
	})

	t.Run("raffle not active", func(t *testing.T) {
		_, err := repo.UpdateRaffleStatus(ctx, raffleID, domain.RaffleStatusEnded, "")
		require.NoError(t, err)

		_, err = svc.Run(ctx, raffleID, prizeID)
		assert.ErrorIs(t, err, ErrRaffleNotActive)
	})
}

func TestDrawServiceRun_PublishFailureAbortsDraw(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	publisher := &fakePublisher{failTypes: map[domain.DrawEventType]bool{
		domain.EventDrawStart: true,
	}}
	svc := NewDrawService(repo, publisher, &fakeStatsInvalidator{})

	raffleID, prizeID := seedActiveRaffle(t, repo, 1,
		domain.Participant{UserID: 1, DisplayName: "Alice", TicketCount: 1},
	)

	_, err := svc.Run(ctx, raffleID, prizeID)
	require.Error(t, err)

	assert.Empty(t, repo.winners, "no winner may be recorded when DRAW_START cannot go out")
}

func TestDrawServiceRun_LatePublishFailureKeepsWinner(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRaffleRepo()
	publisher := &fakePublisher{failTypes: map[domain.DrawEventType]bool{
		domain.EventWheelSeed:      true,
		domain.EventWinnerRevealed: true,
	}}
	svc := NewDrawService(repo, publisher, &fakeStatsInvalidator{})

	raffleID, prizeID := seedActiveRaffle(t, repo, 1,
		domain.Participant{UserID: 1, DisplayName: "Alice", TicketCount: 1},
	)

	winner, err := svc.Run(ctx, raffleID, prizeID)
	require.NoError(t, err, "a persisted draw result survives pub/sub failures")
	assert.NotEmpty(t, winner.ID)
	require.Len(t, repo.winners, 1)
}

func TestPickIndex(t *testing.T) {
	entries := []domain.WheelEntry{
		{ParticipantID: "p1", TicketCount: 3},
		{ParticipantID: "p2", TicketCount: 5},
		{ParticipantID: "p3", TicketCount: 1},
	}

	t.Run("deterministic for a seed", func(t *testing.T) {
		for _, seed := range []int64{0, 1, 42, 1234567890} {
			first := pickIndex(seed, entries)
			assert.Equal(t, first, pickIndex(seed, entries))
			assert.GreaterOrEqual(t, first, 0)
			assert.Less(t, first, len(entries))
		}
	})

	t.Run("zero ticket entries never win", func(t *testing.T) {
		weighted := []domain.WheelEntry{
			{ParticipantID: "p1", TicketCount: 0},
			{ParticipantID: "p2", TicketCount: 4},
			{ParticipantID: "p3", TicketCount: 0},
		}

		for seed := int64(0); seed < 200; seed++ {
			assert.Equal(t, 1, pickIndex(seed, weighted))
		}
	})

	t.Run("every entry is reachable", func(t *testing.T) {
		seen := make(map[int]bool)
		for seed := int64(0); seed < 500; seed++ {
			seen[pickIndex(seed, entries)] = true
		}

		assert.Len(t, seen, len(entries))
	})
}
