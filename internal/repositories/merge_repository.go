package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MergeRepository holds the per-user merge lock and the per-guest-cart
// journal of line keys already folded into the account cart.
type MergeRepository interface {
	AcquireLock(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	ReleaseLock(ctx context.Context, userID uuid.UUID, token string) error
	AppliedKeys(ctx context.Context, guestID string) (map[string]struct{}, error)
	MarkApplied(ctx context.Context, guestID, key string) error
	ClearJournal(ctx context.Context, guestID string) error
}

type mergeRepository struct {
	client     *redis.Client
	lockTTL    time.Duration
	journalTTL time.Duration
}

// deletes the lock only while it still holds our token
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewMergeRepo(client *redis.Client, lockTTL, journalTTL time.Duration) MergeRepository {
	return &mergeRepository{client: client, lockTTL: lockTTL, journalTTL: journalTTL}
}

func mergeLockKey(userID uuid.UUID) string {
	return "cart:merge:lock:" + userID.String()
}

func mergeJournalKey(guestID string) string {
	return "cart:merge:journal:" + guestID
}

func (r *mergeRepository) AcquireLock(ctx context.Context, userID uuid.UUID, token string) (bool, error) {

	ok, err := r.client.SetNX(ctx, mergeLockKey(userID), token, r.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire merge lock: %w", err)
	}

	return ok, nil
}

func (r *mergeRepository) ReleaseLock(ctx context.Context, userID uuid.UUID, token string) error {

	if err := releaseLockScript.Run(ctx, r.client, []string{mergeLockKey(userID)}, token).Err(); err != nil {
		return fmt.Errorf("failed to release merge lock: %w", err)
	}

	return nil
}

func (r *mergeRepository) AppliedKeys(ctx context.Context, guestID string) (map[string]struct{}, error) {

	members, err := r.client.SMembers(ctx, mergeJournalKey(guestID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read merge journal: %w", err)
	}

	applied := make(map[string]struct{}, len(members))
	for _, m := range members {
		applied[m] = struct{}{}
	}

	return applied, nil
}

func (r *mergeRepository) MarkApplied(ctx context.Context, guestID, key string) error {

	journal := mergeJournalKey(guestID)

	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, journal, key)
	pipe.Expire(ctx, journal, r.journalTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write merge journal: %w", err)
	}

	return nil
}

func (r *mergeRepository) ClearJournal(ctx context.Context, guestID string) error {

	if err := r.client.Del(ctx, mergeJournalKey(guestID)).Err(); err != nil {
		return fmt.Errorf("failed to clear merge journal: %w", err)
	}

	return nil
}
