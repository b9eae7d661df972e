package progression

import (
	"math"
	"time"

	"flutterlearn-service/internal/models"
)

// Lateness computes the late flag and whole-day lateness for a submission
// against a deadline. daysLate = ceil(diff / 24h).
func Lateness(submittedAt, deadline time.Time) (bool, int) {
	if deadline.IsZero() || !submittedAt.After(deadline) {
		return false, 0
	}
	days := int(math.Ceil(submittedAt.Sub(deadline).Hours() / 24))
	return true, days
}

// OutcomeForScore maps an evaluation total to its outcome.
func OutcomeForScore(total int) models.EvaluationOutcome {
	switch {
	case total >= models.PracticalPassThreshold:
		return models.OutcomePassed
	case total >= models.PracticalRevisionThreshold:
		return models.OutcomeNeedsRevision
	default:
		return models.OutcomeFailed
	}
}

// DerivePracticalStatus recomputes a practical work's status from its
// latest attempt. No attempts means not started (or in progress when the
// learner has opened the work); an unevaluated attempt is submitted, or
// under review once an instructor has claimed it; an evaluated one maps
// its outcome.
func DerivePracticalStatus(p *models.PracticalWorkProgress) models.PracticalWorkStatus {
	if len(p.Attempts) == 0 {
		if p.StartedAt != nil {
			return models.PracticalInProgress
		}
		return models.PracticalNotStarted
	}

	latest := p.Attempts[len(p.Attempts)-1]
	if latest.Evaluation == nil {
		if p.ReviewerID != "" {
			return models.PracticalUnderReview
		}
		return models.PracticalSubmitted
	}
	switch latest.Evaluation.Outcome {
	case models.OutcomePassed:
		return models.PracticalPassed
	case models.OutcomeNeedsRevision:
		return models.PracticalRevisionRequested
	default:
		return models.PracticalFailed
	}
}

// ApplySubmission appends a new submission attempt, numbering it
// sequentially and computing lateness against the work's deadline. A new
// submission supersedes any pending review claim.
func ApplySubmission(p *models.PracticalWorkProgress, work *models.PracticalWork, attempt models.SubmissionAttempt) models.SubmissionAttempt {
	attempt.AttemptNumber = len(p.Attempts) + 1
	attempt.IsLate, attempt.DaysLate = Lateness(attempt.SubmittedAt, work.Deadline)

	p.Attempts = append(p.Attempts, attempt)
	p.ReviewerID = ""
	p.Status = DerivePracticalStatus(p)
	p.UpdatedAt = attempt.SubmittedAt
	return attempt
}

// ClaimForReview marks the latest submission as being reviewed by the
// given instructor. Returns false when there is no unevaluated submission
// to claim.
func ClaimForReview(p *models.PracticalWorkProgress, reviewerID string, now time.Time) bool {
	if len(p.Attempts) == 0 {
		return false
	}
	if p.Attempts[len(p.Attempts)-1].Evaluation != nil {
		return false
	}
	p.ReviewerID = reviewerID
	p.Status = DerivePracticalStatus(p)
	p.UpdatedAt = now
	return true
}

// ApplyEvaluation attaches an instructor evaluation to the latest attempt
// and updates the monotonic latches. Returns false when there is no
// attempt to evaluate.
func ApplyEvaluation(p *models.PracticalWorkProgress, eval models.Evaluation) bool {
	if len(p.Attempts) == 0 {
		return false
	}

	total := 0
	for _, c := range eval.Criteria {
		total += c.Points
	}
	eval.TotalScore = total
	eval.Outcome = OutcomeForScore(total)

	latest := &p.Attempts[len(p.Attempts)-1]
	latest.Evaluation = &eval

	if total > p.BestScore {
		p.BestScore = total
	}
	if p.PassedAt == nil && eval.Outcome == models.OutcomePassed {
		passed := eval.EvaluatedAt
		p.PassedAt = &passed
	}

	p.ReviewerID = ""
	p.Status = DerivePracticalStatus(p)
	p.UpdatedAt = eval.EvaluatedAt
	return true
}
