package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"flutterlearn-service/internal/cache"
	"flutterlearn-service/internal/event"
	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/progression"
	"flutterlearn-service/internal/repository"
)

// ProgressService owns the progress documents: loading with the
// not-found initializer, the save-attempt fallback order (store first,
// cache always), and the periodic fetch-merge-write sync.
type ProgressService struct {
	Repo      *repository.ProgressRepository
	Cache     *cache.ProgressCache
	Publisher *event.EventPublisher

	mu    sync.Mutex
	dirty map[string]struct{}
}

func NewProgressService(repo *repository.ProgressRepository, progressCache *cache.ProgressCache, publisher *event.EventPublisher) *ProgressService {
	return &ProgressService{
		Repo:      repo,
		Cache:     progressCache,
		Publisher: publisher,
		dirty:     make(map[string]struct{}),
	}
}

// GetProgress loads a user's progress, preferring the store, falling back
// to the cached copy when the store is unreachable, and initializing an
// empty record when the user has none anywhere.
func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*models.ParticipantProgress, error) {
	progress, err := s.Repo.Get(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Printf("Progress store unavailable for %s, falling back to cache: %v", userID, err)
	}

	cached, cacheErr := s.Cache.Get(ctx, userID)
	if cacheErr == nil && cached != nil {
		return cached, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewParticipantProgress(userID), nil
	}
	return nil, err
}

// SaveAttempt applies a completed quiz attempt to the user's progress and
// persists it. The store write is attempted first; on failure the local
// copy is still committed so the result is never lost, and the user is
// queued for the next sync pass.
func (s *ProgressService) SaveAttempt(ctx context.Context, userID, courseID, moduleID string, attempt models.QuizAttempt) (*models.ParticipantProgress, error) {
	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		progress = models.NewParticipantProgress(userID)
	}

	now := attempt.Date
	course, ok := progress.Courses[courseID]
	if !ok {
		course = models.NewCourseProgress(now)
		progress.Courses[courseID] = course
	}
	mp, ok := course.Modules[moduleID]
	if !ok {
		mp = models.NewModuleProgress()
		course.Modules[moduleID] = mp
	}

	progression.ApplyAttempt(mp, attempt)
	progression.TouchActivity(course, now)
	progression.RecomputeStats(progress, now)

	if err := s.Repo.Put(ctx, progress); err != nil {
		log.Printf("Remote save failed for %s, keeping local copy: %v", userID, err)
		s.markDirty(userID)
	}
	if err := s.Cache.Put(ctx, progress); err != nil {
		log.Printf("Progress cache write failed for %s: %v", userID, err)
	}

	s.Publisher.Publish(event.AttemptSaved, map[string]interface{}{
		"user_id":   userID,
		"module_id": moduleID,
		"score":     attempt.Score,
		"attempt":   attempt.AttemptNumber,
	})
	return progress, nil
}

// NextAttemptNumber returns the sequential number the next attempt on a
// module should carry.
func (s *ProgressService) NextAttemptNumber(ctx context.Context, userID, courseID, moduleID string) int {
	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		return 1
	}
	course, ok := progress.Courses[courseID]
	if !ok {
		return 1
	}
	mp, ok := course.Modules[moduleID]
	if !ok {
		return 1
	}
	return progression.NextAttemptNumber(mp)
}

// ModuleStatuses derives each module's status for display, including
// the locked/unlocked distinction for untouched modules.
func (s *ProgressService) ModuleStatuses(modules []models.CourseModule, course *models.CourseProgress) map[string]models.ModuleStatus {
	statuses := make(map[string]models.ModuleStatus, len(modules))
	for i := range modules {
		m := &modules[i]
		unlocked := progression.IsUnlockEligible(m, course)
		var attempts []models.QuizAttempt
		if course != nil {
			if mp, ok := course.Modules[m.ID]; ok {
				attempts = mp.Attempts
			}
		}
		statuses[m.ID] = progression.DeriveModuleStatus(attempts, unlocked)
	}
	return statuses
}

// SyncProgress reconciles the cached local copy with the stored record:
// fetch, merge (remote as base), recompute stats, write back to both. A
// missing remote record degenerates to create-from-local; any other fetch
// error propagates so callers can retry later.
func (s *ProgressService) SyncProgress(ctx context.Context, userID string) (*models.ParticipantProgress, error) {
	local, err := s.Cache.Get(ctx, userID)
	if err != nil {
		log.Printf("Progress cache read failed for %s: %v", userID, err)
	}

	remote, err := s.Repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	merged := progression.Merge(remote, local)
	if merged == nil {
		merged = models.NewParticipantProgress(userID)
	}

	now := time.Now()
	progression.RecomputeStats(merged, now)
	merged.LastSync = now

	if err := s.Repo.Put(ctx, merged); err != nil {
		return nil, err
	}
	if err := s.Cache.Put(ctx, merged); err != nil {
		log.Printf("Progress cache write failed for %s: %v", userID, err)
	}

	s.Publisher.Publish(event.ProgressSynced, map[string]interface{}{
		"user_id": userID,
	})
	return merged, nil
}

func (s *ProgressService) markDirty(userID string) {
	s.mu.Lock()
	s.dirty[userID] = struct{}{}
	s.mu.Unlock()
}

func (s *ProgressService) takeDirty() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]string, 0, len(s.dirty))
	for u := range s.dirty {
		users = append(users, u)
	}
	s.dirty = make(map[string]struct{})
	return users
}

// StartSyncLoop periodically syncs every user whose store write failed
// since the last pass. Overlapping passes are tolerated: the merge is
// idempotent on attempt sets and monotonic on scalar fields. Failures are
// logged and the user re-queued; local state remains the fallback of
// record.
func (s *ProgressService) StartSyncLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, userID := range s.takeDirty() {
					if _, err := s.SyncProgress(ctx, userID); err != nil {
						log.Printf("Background sync failed for %s: %v", userID, err)
						s.markDirty(userID)
					}
				}
			}
		}
	}()
}
