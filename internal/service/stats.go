package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/pkg/cache"
)

const statsCacheTTL = 30 * time.Second

const multiWinnersCacheKey = "stats:multi-winners"

func raffleStatsCacheKey(raffleID string) string {
	return "stats:raffle:" + raffleID
}

type StatsRepository interface {
	FindRaffleByID(ctx context.Context, id string) (domain.Raffle, error)
	GetRaffleStats(ctx context.Context, raffleID string) (domain.RaffleStats, error)
	FindMultiWinners(ctx context.Context) ([]domain.MultiWinner, error)
}

type StatsService struct {
	repo  StatsRepository
	cache *cache.Cache
}

func NewStatsService(repo StatsRepository, c *cache.Cache) *StatsService {
	return &StatsService{
		repo:  repo,
		cache: c,
	}
}

// GetRaffleStats returns participant/ticket/prize/winner counts for a
// raffle. The cache is best effort; redis trouble falls through to the
// database.
func (s *StatsService) GetRaffleStats(ctx context.Context, raffleID string) (domain.RaffleStats, error) {
	if _, err := s.repo.FindRaffleByID(ctx, raffleID); err != nil {
		return domain.RaffleStats{}, fmt.Errorf("s.repo.FindRaffleByID -> %w", err)
	}

	key := raffleStatsCacheKey(raffleID)

	var cached domain.RaffleStats
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		zap.L().Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	stats, err := s.repo.GetRaffleStats(ctx, raffleID)
	if err != nil {
		return domain.RaffleStats{}, fmt.Errorf("s.repo.GetRaffleStats -> %w", err)
	}

	if err = s.cache.Set(ctx, key, stats, statsCacheTTL); err != nil {
		zap.L().Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}

	return stats, nil
}

func (s *StatsService) GetMultiWinners(ctx context.Context) ([]domain.MultiWinner, error) {
	var cached []domain.MultiWinner
	hit, err := s.cache.Get(ctx, multiWinnersCacheKey, &cached)
	if err != nil {
		zap.L().Warn("stats cache read failed", zap.String("key", multiWinnersCacheKey), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	multiWinners, err := s.repo.FindMultiWinners(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMultiWinners -> %w", err)
	}

	if err = s.cache.Set(ctx, multiWinnersCacheKey, multiWinners, statsCacheTTL); err != nil {
		zap.L().Warn("stats cache write failed", zap.String("key", multiWinnersCacheKey), zap.Error(err))
	}

	return multiWinners, nil
}

// InvalidateRaffle drops the cached stats for a raffle, plus the
// multi-winner view which any draw can change.
func (s *StatsService) InvalidateRaffle(ctx context.Context, raffleID string) {
	if err := s.cache.Delete(ctx, raffleStatsCacheKey(raffleID), multiWinnersCacheKey); err != nil {
		zap.L().Warn("stats cache invalidation failed", zap.String("raffle_id", raffleID), zap.Error(err))
	}
}
