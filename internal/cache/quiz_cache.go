// Package cache holds the Redis-backed caches: the per-module quiz cache
// with a lifecycle-dependent expiry, and the locally cached progress copy
// that the sync path reconciles against the document store.
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

type QuizState string

const (
	QuizIdle       QuizState = "idle"
	QuizInProgress QuizState = "in_progress"
	QuizCompleted  QuizState = "completed"
)

// A quiz being taken expires quickly so an abandoned run regenerates;
// idle and completed quizzes are kept for a day.
const (
	inProgressTTL = 30 * time.Minute
	settledTTL    = 24 * time.Hour
)

type CachedQuiz struct {
	ModuleID  string            `json:"module_id"`
	Questions []models.Question `json:"questions"`
	CachedAt  time.Time         `json:"cached_at"`
	State     QuizState         `json:"state"`
}

// TTLForState returns the expiry for a quiz in the given lifecycle state.
func TTLForState(state QuizState) time.Duration {
	if state == QuizInProgress {
		return inProgressTTL
	}
	return settledTTL
}

type QuizCache struct {
	client *redis.Client
}

func NewQuizCache(client *redis.Client) *QuizCache {
	return &QuizCache{client: client}
}

func quizKey(moduleID string) string {
	return "quiz:" + moduleID
}

// Get returns the cached quiz for a module, or nil on a miss.
func (c *QuizCache) Get(ctx context.Context, moduleID string) (*CachedQuiz, error) {
	raw, err := c.client.Get(ctx, quizKey(moduleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading quiz cache: %w", err)
	}
	var cached CachedQuiz
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decoding cached quiz: %w", err)
	}
	return &cached, nil
}

func (c *QuizCache) Put(ctx context.Context, cached *CachedQuiz) error {
	val, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, quizKey(cached.ModuleID), val, TTLForState(cached.State)).Err()
}

// SetState moves the cached quiz into a new lifecycle state, re-applying
// the matching expiry. A miss is not an error.
func (c *QuizCache) SetState(ctx context.Context, moduleID string, state QuizState) error {
	cached, err := c.Get(ctx, moduleID)
	if err != nil || cached == nil {
		return err
	}
	cached.State = state
	return c.Put(ctx, cached)
}

func (c *QuizCache) Invalidate(ctx context.Context, moduleID string) error {
	return c.client.Del(ctx, quizKey(moduleID)).Err()
}
