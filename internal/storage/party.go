package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/britannia/pkg/party"
	"github.com/jwebster45206/britannia/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// savedParty is the record written to Redis.
type savedParty struct {
	ID      uuid.UUID   `json:"id"`
	SavedAt time.Time   `json:"saved_at"`
	Party   *party.Spec `json:"party"`
}

func partyKey(id uuid.UUID) string {
	return "party:" + id.String()
}

// SaveParty writes the party and resets its expiry.
func (r *RedisStorage) SaveParty(ctx context.Context, id uuid.UUID, p *party.Spec) error {
	if p == nil {
		return errors.New("party cannot be nil")
	}

	data, err := json.Marshal(savedParty{ID: id, SavedAt: time.Now().UTC(), Party: p})
	if err != nil {
		r.logger.Error("Failed to marshal party", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal party: %w", err)
	}

	if err := r.client.Set(ctx, partyKey(id), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save party", "uuid", id, "error", err)
		return fmt.Errorf("failed to save party: %w", err)
	}
	r.logger.Debug("Party saved", "uuid", id, "members", len(p.Members))
	return nil
}

func (r *RedisStorage) LoadParty(ctx context.Context, id uuid.UUID) (*party.Spec, error) {
	data, err := r.client.Get(ctx, partyKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("party %s: %w", id, storage.ErrNotFound)
		}
		r.logger.Error("Failed to load party", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load party: %w", err)
	}

	var saved savedParty
	if err := json.Unmarshal(data, &saved); err != nil {
		r.logger.Error("Failed to unmarshal party", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal party: %w", err)
	}
	if saved.Party == nil {
		return nil, fmt.Errorf("party %s: empty save", id)
	}
	return saved.Party, nil
}

func (r *RedisStorage) DeleteParty(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, partyKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete party", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete party: %w", err)
	}
	return nil
}
