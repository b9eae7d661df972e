package progression

import (
	"time"

	"flutterlearn-service/internal/models"
)

// Merge reconciles a locally cached progress record into a remote one.
// The remote record is the base and stays authoritative for fields it
// already carries; local contributes only what remote lacks:
//
//   - courses present locally but not remotely are adopted wholesale,
//   - modules present in both keep the maximum best score and union their
//     attempt lists by attempt id (remote attempts are never removed or
//     reordered, local-only attempts are appended in encounter order),
//   - modules present only locally are adopted wholesale.
//
// The merge is idempotent and commutative on attempt sets, which makes
// overlapping sync invocations safe. Derived statistics are NOT merged
// field by field; callers recompute them from the merged history with
// RecomputeStats.
//
// Merge mutates and returns remote. A nil remote degenerates to local
// (first sync).
func Merge(remote, local *models.ParticipantProgress) *models.ParticipantProgress {
	if remote == nil {
		return local
	}
	if local == nil {
		return remote
	}
	if remote.Courses == nil {
		remote.Courses = make(map[string]*models.CourseProgress)
	}

	for courseID, localCourse := range local.Courses {
		remoteCourse, ok := remote.Courses[courseID]
		if !ok {
			remote.Courses[courseID] = localCourse
			continue
		}
		mergeCourse(remoteCourse, localCourse)
	}

	return remote
}

func mergeCourse(remote, local *models.CourseProgress) {
	if remote.Modules == nil {
		remote.Modules = make(map[string]*models.ModuleProgress)
	}

	for moduleID, localModule := range local.Modules {
		remoteModule, ok := remote.Modules[moduleID]
		if !ok {
			remote.Modules[moduleID] = localModule
			continue
		}
		mergeModule(remoteModule, localModule)
	}

	if local.LastActivityAt.After(remote.LastActivityAt) {
		remote.LastActivityAt = local.LastActivityAt
	}
	if remote.CompletedAt == nil && local.CompletedAt != nil {
		remote.CompletedAt = local.CompletedAt
	}
}

func mergeModule(remote, local *models.ModuleProgress) {
	seen := make(map[string]bool, len(remote.Attempts))
	for _, a := range remote.Attempts {
		seen[a.AttemptID] = true
	}
	for _, a := range local.Attempts {
		if !seen[a.AttemptID] {
			remote.Attempts = append(remote.Attempts, a)
			seen[a.AttemptID] = true
		}
	}

	if local.BestScore > remote.BestScore {
		remote.BestScore = local.BestScore
	}
	if remote.FirstAttemptDate == nil && local.FirstAttemptDate != nil {
		remote.FirstAttemptDate = local.FirstAttemptDate
	}
	if remote.CompletedAt == nil && local.CompletedAt != nil {
		remote.CompletedAt = local.CompletedAt
	}
	if local.LastAttemptDate != nil &&
		(remote.LastAttemptDate == nil || local.LastAttemptDate.After(*remote.LastAttemptDate)) {
		remote.LastAttemptDate = local.LastAttemptDate
	}

	// Derived fields follow the merged attempt history.
	remote.TotalTimeSpent = 0
	for _, a := range remote.Attempts {
		remote.TotalTimeSpent += a.TimeSpent
	}
	remote.Status = DeriveModuleStatus(remote.Attempts, true)
}

// RecomputeStats recomputes every per-course stat block and the global
// stats from the attempt history, applying the monotonic latches (longest
// streak, earned badges). Called after Merge and after each attempt save.
func RecomputeStats(p *models.ParticipantProgress, now time.Time) {
	var (
		totalQuizzes  int
		totalScore    int
		totalTime     int
		modulesDone   int
		perfectScores int
		completed     int
		attemptDates  []time.Time
	)

	for _, course := range p.Courses {
		cs := models.CourseStats{}
		for _, mp := range course.Modules {
			cs.QuizzesTaken += len(mp.Attempts)
			cs.TotalTimeSpent += mp.TotalTimeSpent
			if mp.Status == models.ModuleCompleted || mp.Status == models.ModulePerfect {
				cs.ModulesCompleted++
			}
			for _, a := range mp.Attempts {
				totalScore += a.Score
				attemptDates = append(attemptDates, a.Date)
				if a.Score == 100 {
					perfectScores++
				}
			}
		}
		if cs.QuizzesTaken > 0 {
			sum := 0
			for _, mp := range course.Modules {
				for _, a := range mp.Attempts {
					sum += a.Score
				}
			}
			cs.AverageScore = float64(sum) / float64(cs.QuizzesTaken)
		}
		if len(course.Modules) > 0 {
			cs.OverallPercent = float64(cs.ModulesCompleted) / float64(len(course.Modules)) * 100
		}
		course.Stats = cs

		totalQuizzes += cs.QuizzesTaken
		totalTime += cs.TotalTimeSpent
		modulesDone += cs.ModulesCompleted
		if course.CompletedAt != nil {
			completed++
		}
	}

	gs := &p.GlobalStats
	gs.TotalQuizzes = totalQuizzes
	gs.TotalTimeSpent = totalTime
	gs.ModulesCompleted = modulesDone
	gs.PerfectScores = perfectScores
	gs.CoursesEnrolled = len(p.Courses)
	gs.CoursesCompleted = completed
	if totalQuizzes > 0 {
		gs.AverageScore = float64(totalScore) / float64(totalQuizzes)
	} else {
		gs.AverageScore = 0
	}

	gs.CurrentStreak = CurrentStreak(attemptDates)
	if gs.CurrentStreak > gs.LongestStreak {
		gs.LongestStreak = gs.CurrentStreak
	}

	// Earned badges are never lost, even if the triggering stat regresses.
	gs.Badges = unionBadges(gs.Badges, ComputeBadges(gs))
}
