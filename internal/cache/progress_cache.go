package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flutterlearn-service/internal/models"
)

const progressTTL = 7 * 24 * time.Hour

// ProgressCache keeps the last known progress record per user so an
// attempt is never lost when the document store is unreachable. The sync
// path merges this copy back into the store.
type ProgressCache struct {
	client *redis.Client
}

func NewProgressCache(client *redis.Client) *ProgressCache {
	return &ProgressCache{client: client}
}

func progressKey(userID string) string {
	return "progress:" + userID
}

// Get returns the cached progress for a user, or nil on a miss.
func (c *ProgressCache) Get(ctx context.Context, userID string) (*models.ParticipantProgress, error) {
	raw, err := c.client.Get(ctx, progressKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading progress cache: %w", err)
	}
	var progress models.ParticipantProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		return nil, fmt.Errorf("decoding cached progress: %w", err)
	}
	return &progress, nil
}

func (c *ProgressCache) Put(ctx context.Context, progress *models.ParticipantProgress) error {
	val, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, progressKey(progress.UserID), val, progressTTL).Err()
}

func (c *ProgressCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, progressKey(userID)).Err()
}
