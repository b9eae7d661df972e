// Package progression holds the pure state-transition and reconciliation
// logic for learner progress: module status derivation, practical-work
// evaluation outcomes, the local/remote merge, and derived statistics.
package progression

import (
	"time"

	"flutterlearn-service/internal/models"
)

// IsUnlockEligible reports whether a module can be taken. A module with no
// prerequisite, or flagged first, is always unlocked; otherwise the
// prerequisite module's best score must reach the passing threshold.
func IsUnlockEligible(module *models.CourseModule, course *models.CourseProgress) bool {
	if module.IsFirst || module.Prerequisite == "" {
		return true
	}
	if course == nil {
		return false
	}
	prev, ok := course.Modules[module.Prerequisite]
	if !ok {
		return false
	}
	return prev.BestScore >= models.PassingScore
}

// DeriveModuleStatus recomputes a module's status from its attempt history.
// Shared by the save-attempt path and the merge path so the two can never
// fall out of sync.
func DeriveModuleStatus(attempts []models.QuizAttempt, unlocked bool) models.ModuleStatus {
	if len(attempts) == 0 {
		if unlocked {
			return models.ModuleUnlocked
		}
		return models.ModuleLocked
	}

	best := 0
	for _, a := range attempts {
		if a.Score == 100 {
			return models.ModulePerfect
		}
		if a.Score > best {
			best = a.Score
		}
	}
	if best >= models.PassingScore {
		return models.ModuleCompleted
	}
	return models.ModuleInProgress
}

// ApplyAttempt appends an attempt to a module's history and updates the
// derived fields: the best-score latch, first/last attempt dates,
// accumulated time, the completedAt latch (set once, on the first attempt
// reaching the passing threshold) and the recomputed status.
func ApplyAttempt(mp *models.ModuleProgress, attempt models.QuizAttempt) {
	mp.Attempts = append(mp.Attempts, attempt)

	if attempt.Score > mp.BestScore {
		mp.BestScore = attempt.Score
	}
	if mp.FirstAttemptDate == nil {
		first := attempt.Date
		mp.FirstAttemptDate = &first
	}
	last := attempt.Date
	mp.LastAttemptDate = &last
	mp.TotalTimeSpent += attempt.TimeSpent

	if mp.CompletedAt == nil && attempt.Score >= models.PassingScore {
		completed := attempt.Date
		mp.CompletedAt = &completed
	}

	mp.Status = DeriveModuleStatus(mp.Attempts, true)
}

// NextAttemptNumber returns the 1-based sequential number for the next
// attempt on a module.
func NextAttemptNumber(mp *models.ModuleProgress) int {
	return len(mp.Attempts) + 1
}

// TouchActivity marks course-level activity at the given time.
func TouchActivity(course *models.CourseProgress, now time.Time) {
	course.LastActivityAt = now
}
