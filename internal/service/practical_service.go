package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"flutterlearn-service/internal/event"
	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/progression"
	"flutterlearn-service/internal/repository"
	"flutterlearn-service/internal/storage"
)

var (
	ErrNotEvaluator      = errors.New("role is not allowed to evaluate")
	ErrNothingToEvaluate = errors.New("no submission to evaluate")
	ErrRubricMismatch    = errors.New("criterion scores do not match the rubric")
)

// PracticalService handles the instructor-graded project flow: starting
// a work, uploading deliverables, submitting attempts and attaching
// evaluations.
type PracticalService struct {
	Repo      *repository.PracticalWorkRepository
	Store     *storage.DeliverableStore
	Publisher *event.EventPublisher
}

func NewPracticalService(repo *repository.PracticalWorkRepository, store *storage.DeliverableStore, publisher *event.EventPublisher) *PracticalService {
	return &PracticalService{Repo: repo, Store: store, Publisher: publisher}
}

func (s *PracticalService) GetWork(ctx context.Context, workID string) (*models.PracticalWork, error) {
	return s.Repo.FindWorkByID(ctx, workID)
}

func (s *PracticalService) ListWorks(ctx context.Context, courseID string) ([]models.PracticalWork, error) {
	return s.Repo.FindWorksByCourse(ctx, courseID)
}

// GetProgress returns the user's progress for a work, or a fresh
// not-started record when none exists yet.
func (s *PracticalService) GetProgress(ctx context.Context, userID, workID string) (*models.PracticalWorkProgress, error) {
	progress, err := s.Repo.FindProgress(ctx, userID, workID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewPracticalWorkProgress(userID, workID), nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// StartWork marks the work as opened by the learner. Starting an already
// started work is a no-op.
func (s *PracticalService) StartWork(ctx context.Context, userID, workID string) (*models.PracticalWorkProgress, error) {
	if _, err := s.Repo.FindWorkByID(ctx, workID); err != nil {
		return nil, fmt.Errorf("loading practical work %s: %w", workID, err)
	}

	progress, err := s.GetProgress(ctx, userID, workID)
	if err != nil {
		return nil, err
	}
	if progress.StartedAt != nil {
		return progress, nil
	}

	now := time.Now()
	progress.StartedAt = &now
	progress.Status = progression.DerivePracticalStatus(progress)
	progress.UpdatedAt = now
	if err := s.Repo.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// Submit uploads the deliverable files and records a new submission
// attempt, computing lateness against the work's deadline.
func (s *PracticalService) Submit(ctx context.Context, userID, workID, comment string, files []*multipart.FileHeader) (*models.PracticalWorkProgress, error) {
	work, err := s.Repo.FindWorkByID(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("loading practical work %s: %w", workID, err)
	}
	if len(files) == 0 {
		return nil, errors.New("a submission needs at least one deliverable")
	}

	progress, err := s.GetProgress(ctx, userID, workID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	deliverables := make([]models.Deliverable, 0, len(files))
	for _, fh := range files {
		url, err := s.Store.Upload(ctx, fh, userID, workID)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", fh.Filename, err)
		}
		deliverables = append(deliverables, models.Deliverable{
			Name:        fh.Filename,
			URL:         url,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			UploadedAt:  now,
		})
	}

	attempt := progression.ApplySubmission(progress, work, models.SubmissionAttempt{
		AttemptID:    uuid.NewString(),
		SubmittedAt:  now,
		Deliverables: deliverables,
		Comment:      comment,
	})
	if err := s.Repo.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}

	s.Publisher.Publish(event.PracticalSubmitted, map[string]interface{}{
		"user_id":        userID,
		"work_id":        workID,
		"attempt_number": attempt.AttemptNumber,
		"is_late":        attempt.IsLate,
		"days_late":      attempt.DaysLate,
	})
	return progress, nil
}

// ClaimForReview lets an instructor take the learner's latest submission
// under review, moving it to the under_review status.
func (s *PracticalService) ClaimForReview(ctx context.Context, reviewerID string, reviewerRole models.Role, userID, workID string) (*models.PracticalWorkProgress, error) {
	if !models.Can(reviewerRole, models.ActionEvaluate) {
		return nil, ErrNotEvaluator
	}

	progress, err := s.Repo.FindProgress(ctx, userID, workID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNothingToEvaluate
		}
		return nil, err
	}
	if !progression.ClaimForReview(progress, reviewerID, time.Now()) {
		return nil, ErrNothingToEvaluate
	}
	if err := s.Repo.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// Evaluate attaches an instructor evaluation to the learner's latest
// submission. Only instructor and admin roles may grade, and the
// criterion scores must stay within the work's rubric.
func (s *PracticalService) Evaluate(ctx context.Context, evaluatorID string, evaluatorRole models.Role, userID, workID string, criteria []models.CriterionScore, feedback string) (*models.PracticalWorkProgress, error) {
	if !models.Can(evaluatorRole, models.ActionEvaluate) {
		return nil, ErrNotEvaluator
	}

	work, err := s.Repo.FindWorkByID(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("loading practical work %s: %w", workID, err)
	}
	if err := checkRubric(work.Rubric, criteria); err != nil {
		return nil, err
	}

	progress, err := s.Repo.FindProgress(ctx, userID, workID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNothingToEvaluate
		}
		return nil, err
	}

	eval := models.Evaluation{
		EvaluatorID: evaluatorID,
		Criteria:    criteria,
		Feedback:    feedback,
		EvaluatedAt: time.Now(),
	}
	if !progression.ApplyEvaluation(progress, eval) {
		return nil, ErrNothingToEvaluate
	}
	if err := s.Repo.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}

	latest := progress.Attempts[len(progress.Attempts)-1]
	s.Publisher.Publish(event.PracticalEvaluated, map[string]interface{}{
		"user_id":      userID,
		"work_id":      workID,
		"evaluator_id": evaluatorID,
		"total_score":  latest.Evaluation.TotalScore,
		"outcome":      latest.Evaluation.Outcome,
	})
	return progress, nil
}

// PendingReview lists submissions awaiting an evaluation for a work.
func (s *PracticalService) PendingReview(ctx context.Context, requesterRole models.Role, workID string) ([]models.PracticalWorkProgress, error) {
	if !models.Can(requesterRole, models.ActionEvaluate) {
		return nil, ErrNotEvaluator
	}
	return s.Repo.FindPendingReview(ctx, workID)
}

// CreateWork registers a new practical work. Instructor or admin only.
func (s *PracticalService) CreateWork(ctx context.Context, requesterRole models.Role, work *models.PracticalWork) error {
	if !models.Can(requesterRole, models.ActionManageModules) {
		return ErrNotEvaluator
	}
	now := time.Now()
	work.CreatedAt = now
	work.UpdatedAt = now
	if err := validateRubric(work.Rubric); err != nil {
		return err
	}
	return s.Repo.CreateWork(ctx, work)
}

func validateRubric(rubric []models.RubricCriterion) error {
	if len(rubric) == 0 {
		return errors.New("a practical work needs a rubric")
	}
	total := 0
	for _, c := range rubric {
		if c.MaxPoints <= 0 {
			return fmt.Errorf("rubric criterion %q has no points", c.Label)
		}
		total += c.MaxPoints
	}
	if total != models.PracticalMaxScore {
		log.Printf("Rubric totals %d points instead of %d", total, models.PracticalMaxScore)
	}
	return nil
}

// checkRubric verifies each scored criterion exists in the rubric and
// stays within its point ceiling.
func checkRubric(rubric []models.RubricCriterion, criteria []models.CriterionScore) error {
	max := make(map[string]int, len(rubric))
	for _, c := range rubric {
		max[c.Label] = c.MaxPoints
	}
	for _, score := range criteria {
		ceiling, ok := max[score.Label]
		if !ok {
			return fmt.Errorf("%w: unknown criterion %q", ErrRubricMismatch, score.Label)
		}
		if score.Points < 0 || score.Points > ceiling {
			return fmt.Errorf("%w: %q scored %d out of %d", ErrRubricMismatch, score.Label, score.Points, ceiling)
		}
	}
	return nil
}
