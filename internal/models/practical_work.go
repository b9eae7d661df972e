package models

import "time"

type PracticalWorkStatus string

const (
	PracticalNotStarted        PracticalWorkStatus = "not_started"
	PracticalInProgress        PracticalWorkStatus = "in_progress"
	PracticalSubmitted         PracticalWorkStatus = "submitted"
	PracticalUnderReview       PracticalWorkStatus = "under_review"
	PracticalPassed            PracticalWorkStatus = "passed"
	PracticalFailed            PracticalWorkStatus = "failed"
	PracticalRevisionRequested PracticalWorkStatus = "revision_requested"
)

type EvaluationOutcome string

const (
	OutcomePassed        EvaluationOutcome = "passed"
	OutcomeNeedsRevision EvaluationOutcome = "needs_revision"
	OutcomeFailed        EvaluationOutcome = "failed"
)

const (
	PracticalPassThreshold     = 70
	PracticalRevisionThreshold = 50
	PracticalMaxScore          = 100
)

type RubricCriterion struct {
	Label     string `bson:"label" json:"label"`
	MaxPoints int    `bson:"max_points" json:"max_points"`
}

// PracticalWork is a project-style deliverable graded by an instructor
// against a rubric, distinct from the auto-scored quiz flow.
type PracticalWork struct {
	ID           string            `bson:"_id,omitempty" json:"id"`
	CourseID     string            `bson:"course_id" json:"course_id"`
	ModuleID     string            `bson:"module_id" json:"module_id"`
	Title        string            `bson:"title" json:"title"`
	Description  string            `bson:"description" json:"description"`
	Requirements []string          `bson:"requirements" json:"requirements"`
	Rubric       []RubricCriterion `bson:"rubric" json:"rubric"`
	Deadline     time.Time         `bson:"deadline" json:"deadline"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}

type Deliverable struct {
	Name        string    `bson:"name" json:"name"`
	URL         string    `bson:"url" json:"url"`
	Size        int64     `bson:"size" json:"size"`
	ContentType string    `bson:"content_type" json:"content_type"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

type CriterionScore struct {
	Label   string `bson:"label" json:"label"`
	Points  int    `bson:"points" json:"points"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`
}

type Evaluation struct {
	EvaluatorID string            `bson:"evaluator_id" json:"evaluator_id"`
	Criteria    []CriterionScore  `bson:"criteria" json:"criteria"`
	TotalScore  int               `bson:"total_score" json:"total_score"`
	Outcome     EvaluationOutcome `bson:"outcome" json:"outcome"`
	Feedback    string            `bson:"feedback,omitempty" json:"feedback,omitempty"`
	EvaluatedAt time.Time         `bson:"evaluated_at" json:"evaluated_at"`
}

// SubmissionAttempt is one submission cycle for a practical work.
// Immutable once created; the evaluation is attached later by an
// instructor.
type SubmissionAttempt struct {
	AttemptID     string        `bson:"attempt_id" json:"attempt_id"`
	AttemptNumber int           `bson:"attempt_number" json:"attempt_number"`
	SubmittedAt   time.Time     `bson:"submitted_at" json:"submitted_at"`
	Deliverables  []Deliverable `bson:"deliverables" json:"deliverables"`
	Comment       string        `bson:"comment,omitempty" json:"comment,omitempty"`
	IsLate        bool          `bson:"is_late" json:"is_late"`
	DaysLate      int           `bson:"days_late" json:"days_late"`
	Evaluation    *Evaluation   `bson:"evaluation,omitempty" json:"evaluation,omitempty"`
}

// PracticalWorkProgress tracks one user's submission cycle for one
// practical work. ReviewerID is set while an instructor has claimed the
// latest submission and cleared again once it is evaluated or replaced.
type PracticalWorkProgress struct {
	ID         string              `bson:"_id,omitempty" json:"id"`
	UserID     string              `bson:"user_id" json:"user_id"`
	WorkID     string              `bson:"work_id" json:"work_id"`
	Status     PracticalWorkStatus `bson:"status" json:"status"`
	ReviewerID string              `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	Attempts   []SubmissionAttempt `bson:"attempts" json:"attempts"`
	BestScore  int                 `bson:"best_score" json:"best_score"`
	PassedAt   *time.Time          `bson:"passed_at,omitempty" json:"passed_at,omitempty"`
	StartedAt  *time.Time          `bson:"started_at,omitempty" json:"started_at,omitempty"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
}

func NewPracticalWorkProgress(userID, workID string) *PracticalWorkProgress {
	return &PracticalWorkProgress{
		UserID:   userID,
		WorkID:   workID,
		Status:   PracticalNotStarted,
		Attempts: []SubmissionAttempt{},
	}
}
