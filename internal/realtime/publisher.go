package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/servushq/servus-raffle/internal/domain"
)

// Publisher pushes draw events onto a raffle's redis channel. Delivery
// semantics are redis pub/sub fire-and-forget; the app only sequences
// the publishes.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{
		rdb: rdb,
	}
}

func (p *Publisher) Publish(ctx context.Context, raffleID string, event domain.DrawEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = p.rdb.Publish(ctx, DrawChannel(raffleID), payload).Err(); err != nil {
		return fmt.Errorf("p.rdb.Publish -> %w", err)
	}

	return nil
}
