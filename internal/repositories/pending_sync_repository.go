package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// PendingSyncRepository keeps cart changes that failed to reach their
// backing storage until a later request writes them.
type PendingSyncRepository interface {
	LoadPending(ctx context.Context, owner string) (*models.PendingSync, error)
	SavePending(ctx context.Context, owner string, pending *models.PendingSync) error
	DiscardPending(ctx context.Context, owner string) error
}

type pendingSyncRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPendingSyncRepo(client *redis.Client, ttl time.Duration) PendingSyncRepository {
	return &pendingSyncRepository{client: client, ttl: ttl}
}

func pendingSyncKey(owner string) string {
	return "cart:pending:" + owner
}

// LoadPending returns nil when nothing is waiting.
func (r *pendingSyncRepository) LoadPending(ctx context.Context, owner string) (*models.PendingSync, error) {

	data, err := r.client.Get(ctx, pendingSyncKey(owner)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load pending cart changes %s: %w", owner, err)
	}

	pending := &models.PendingSync{}
	if err := json.Unmarshal(data, pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending cart changes %s: %w", owner, err)
	}

	return pending, nil
}

func (r *pendingSyncRepository) SavePending(ctx context.Context, owner string, pending *models.PendingSync) error {

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending cart changes: %w", err)
	}

	if err := r.client.Set(ctx, pendingSyncKey(owner), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pending cart changes %s: %w", owner, err)
	}

	return nil
}

func (r *pendingSyncRepository) DiscardPending(ctx context.Context, owner string) error {

	if err := r.client.Del(ctx, pendingSyncKey(owner)).Err(); err != nil {
		return fmt.Errorf("failed to discard pending cart changes %s: %w", owner, err)
	}

	return nil
}
