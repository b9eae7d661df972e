package models

import "time"

type ModuleStatus string

const (
	ModuleLocked     ModuleStatus = "locked"
	ModuleUnlocked   ModuleStatus = "unlocked"
	ModuleInProgress ModuleStatus = "in_progress"
	ModuleCompleted  ModuleStatus = "completed"
	ModulePerfect    ModuleStatus = "perfect"
)

// PassingScore is the quiz score from which a module counts as completed
// and unlocks its successor.
const PassingScore = 70

// Answer records a learner's response to one question within a session.
// Re-answering replaces the prior record for that question id.
type Answer struct {
	Selected    int       `bson:"selected" json:"selected"`
	Correct     bool      `bson:"correct" json:"correct"`
	TimeSpentMs int64     `bson:"time_spent_ms" json:"time_spent_ms"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// QuizAttempt is the persisted summary of one completed session.
// Immutable once created.
type QuizAttempt struct {
	AttemptID      string            `bson:"attempt_id" json:"attempt_id"`
	AttemptNumber  int               `bson:"attempt_number" json:"attempt_number"`
	Date           time.Time         `bson:"date" json:"date"`
	Score          int               `bson:"score" json:"score"`
	CorrectCount   int               `bson:"correct_count" json:"correct_count"`
	TotalQuestions int               `bson:"total_questions" json:"total_questions"`
	EarnedPoints   int               `bson:"earned_points" json:"earned_points"`
	TotalPoints    int               `bson:"total_points" json:"total_points"`
	TimeSpent      int               `bson:"time_spent" json:"time_spent"` // seconds
	Answers        map[string]Answer `bson:"answers" json:"answers"`
}

type ModuleProgress struct {
	Status           ModuleStatus  `bson:"status" json:"status"`
	Attempts         []QuizAttempt `bson:"attempts" json:"attempts"`
	BestScore        int           `bson:"best_score" json:"best_score"`
	FirstAttemptDate *time.Time    `bson:"first_attempt_date,omitempty" json:"first_attempt_date,omitempty"`
	LastAttemptDate  *time.Time    `bson:"last_attempt_date,omitempty" json:"last_attempt_date,omitempty"`
	CompletedAt      *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	TotalTimeSpent   int           `bson:"total_time_spent" json:"total_time_spent"` // seconds
}

type CourseStats struct {
	ModulesCompleted int     `bson:"modules_completed" json:"modules_completed"`
	QuizzesTaken     int     `bson:"quizzes_taken" json:"quizzes_taken"`
	AverageScore     float64 `bson:"average_score" json:"average_score"`
	TotalTimeSpent   int     `bson:"total_time_spent" json:"total_time_spent"`
	OverallPercent   float64 `bson:"overall_percent" json:"overall_percent"`
}

type CourseProgress struct {
	EnrolledAt     time.Time                  `bson:"enrolled_at" json:"enrolled_at"`
	CompletedAt    *time.Time                 `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	LastActivityAt time.Time                  `bson:"last_activity_at" json:"last_activity_at"`
	Modules        map[string]*ModuleProgress `bson:"modules" json:"modules"`
	Stats          CourseStats                `bson:"stats" json:"stats"`
}

type GlobalStats struct {
	TotalQuizzes     int      `bson:"total_quizzes" json:"total_quizzes"`
	AverageScore     float64  `bson:"average_score" json:"average_score"`
	TotalTimeSpent   int      `bson:"total_time_spent" json:"total_time_spent"`
	ModulesCompleted int      `bson:"modules_completed" json:"modules_completed"`
	PerfectScores    int      `bson:"perfect_scores" json:"perfect_scores"`
	CurrentStreak    int      `bson:"current_streak" json:"current_streak"`
	LongestStreak    int      `bson:"longest_streak" json:"longest_streak"`
	Badges           []string `bson:"badges" json:"badges"`
	CoursesEnrolled  int      `bson:"courses_enrolled" json:"courses_enrolled"`
	CoursesCompleted int      `bson:"courses_completed" json:"courses_completed"`
}

// ParticipantProgress is the root progress document, one per user.
type ParticipantProgress struct {
	UserID      string                     `bson:"_id" json:"user_id"`
	LastSync    time.Time                  `bson:"last_sync" json:"last_sync"`
	Courses     map[string]*CourseProgress `bson:"courses" json:"courses"`
	GlobalStats GlobalStats                `bson:"global_stats" json:"global_stats"`
}

// NewParticipantProgress returns an empty progress record for a user who
// has no stored progress yet.
func NewParticipantProgress(userID string) *ParticipantProgress {
	return &ParticipantProgress{
		UserID:  userID,
		Courses: make(map[string]*CourseProgress),
	}
}

// NewCourseProgress enrolls a user into a course at the given time.
func NewCourseProgress(now time.Time) *CourseProgress {
	return &CourseProgress{
		EnrolledAt:     now,
		LastActivityAt: now,
		Modules:        make(map[string]*ModuleProgress),
	}
}

func NewModuleProgress() *ModuleProgress {
	return &ModuleProgress{
		Status:   ModuleUnlocked,
		Attempts: []QuizAttempt{},
	}
}
