package progression

import (
	"testing"
	"time"

	"flutterlearn-service/internal/models"
)

func TestLateness(t *testing.T) {
	deadline := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		submittedAt  time.Time
		expectLate   bool
		expectedDays int
	}{
		{"on time", deadline.Add(-2 * time.Hour), false, 0},
		{"exactly at deadline", deadline, false, 0},
		{"three days late", time.Date(2025, 1, 13, 23, 59, 0, 0, time.UTC), true, 3},
		{"one hour late", deadline.Add(time.Hour), true, 1},
		{"25 hours late", deadline.Add(25 * time.Hour), true, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			late, days := Lateness(tc.submittedAt, deadline)
			if late != tc.expectLate || days != tc.expectedDays {
				t.Errorf("Expected late=%v days=%d, got late=%v days=%d",
					tc.expectLate, tc.expectedDays, late, days)
			}
		})
	}
}

func TestLatenessNoDeadline(t *testing.T) {
	late, days := Lateness(time.Now(), time.Time{})
	if late || days != 0 {
		t.Errorf("Expected no lateness without deadline, got late=%v days=%d", late, days)
	}
}

func TestOutcomeForScore(t *testing.T) {
	testCases := []struct {
		score    int
		expected models.EvaluationOutcome
	}{
		{100, models.OutcomePassed},
		{70, models.OutcomePassed},
		{69, models.OutcomeNeedsRevision},
		{50, models.OutcomeNeedsRevision},
		{49, models.OutcomeFailed},
		{0, models.OutcomeFailed},
	}

	for _, tc := range testCases {
		if got := OutcomeForScore(tc.score); got != tc.expected {
			t.Errorf("Score %d: expected %s, got %s", tc.score, tc.expected, got)
		}
	}
}

func TestSubmissionAndEvaluationFlow(t *testing.T) {
	work := &models.PracticalWork{
		ID:       "tp1",
		Deadline: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	p := models.NewPracticalWorkProgress("u1", "tp1")

	if got := DerivePracticalStatus(p); got != models.PracticalNotStarted {
		t.Fatalf("Expected not_started, got %s", got)
	}

	started := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	p.StartedAt = &started
	if got := DerivePracticalStatus(p); got != models.PracticalInProgress {
		t.Fatalf("Expected in_progress, got %s", got)
	}

	submitted := ApplySubmission(p, work, models.SubmissionAttempt{
		AttemptID:   "s1",
		SubmittedAt: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
	})
	if !submitted.IsLate || submitted.DaysLate != 3 {
		t.Errorf("Expected late by 3 days, got late=%v days=%d", submitted.IsLate, submitted.DaysLate)
	}
	if submitted.AttemptNumber != 1 {
		t.Errorf("Expected attempt number 1, got %d", submitted.AttemptNumber)
	}
	if p.Status != models.PracticalSubmitted {
		t.Errorf("Expected submitted, got %s", p.Status)
	}

	// Revision-range evaluation.
	ok := ApplyEvaluation(p, models.Evaluation{
		EvaluatorID: "f1",
		Criteria: []models.CriterionScore{
			{Label: "architecture", Points: 30},
			{Label: "tests", Points: 25},
		},
		EvaluatedAt: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	})
	if !ok {
		t.Fatal("Evaluation rejected")
	}
	if p.Status != models.PracticalRevisionRequested {
		t.Errorf("Expected revision_requested at 55 points, got %s", p.Status)
	}
	if p.BestScore != 55 {
		t.Errorf("Expected best score 55, got %d", p.BestScore)
	}
	if p.PassedAt != nil {
		t.Error("passedAt set without passing evaluation")
	}

	// Second submission passes.
	ApplySubmission(p, work, models.SubmissionAttempt{
		AttemptID:   "s2",
		SubmittedAt: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	evalTime := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)
	ApplyEvaluation(p, models.Evaluation{
		EvaluatorID: "f1",
		Criteria: []models.CriterionScore{
			{Label: "architecture", Points: 45},
			{Label: "tests", Points: 40},
		},
		EvaluatedAt: evalTime,
	})

	if p.Status != models.PracticalPassed {
		t.Errorf("Expected passed, got %s", p.Status)
	}
	if p.BestScore != 85 {
		t.Errorf("Expected best score 85, got %d", p.BestScore)
	}
	if p.PassedAt == nil || !p.PassedAt.Equal(evalTime) {
		t.Errorf("Expected passedAt latched at %v, got %v", evalTime, p.PassedAt)
	}
	if p.Attempts[1].AttemptNumber != 2 {
		t.Errorf("Expected sequential attempt numbering, got %d", p.Attempts[1].AttemptNumber)
	}
}

func TestClaimForReview(t *testing.T) {
	work := &models.PracticalWork{ID: "tp1"}
	p := models.NewPracticalWorkProgress("u1", "tp1")
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	if ClaimForReview(p, "f1", now) {
		t.Error("Claim accepted with no submission")
	}

	ApplySubmission(p, work, models.SubmissionAttempt{AttemptID: "s1", SubmittedAt: now})
	if !ClaimForReview(p, "f1", now.Add(time.Hour)) {
		t.Fatal("Claim rejected for a pending submission")
	}
	if p.Status != models.PracticalUnderReview {
		t.Errorf("Expected under_review after claim, got %s", p.Status)
	}
	if p.ReviewerID != "f1" {
		t.Errorf("Expected reviewer f1, got %q", p.ReviewerID)
	}

	// Evaluating releases the claim.
	ApplyEvaluation(p, models.Evaluation{
		EvaluatorID: "f1",
		Criteria:    []models.CriterionScore{{Label: "architecture", Points: 80}},
		EvaluatedAt: now.Add(2 * time.Hour),
	})
	if p.ReviewerID != "" {
		t.Errorf("Expected reviewer cleared after evaluation, got %q", p.ReviewerID)
	}
	if ClaimForReview(p, "f2", now.Add(3*time.Hour)) {
		t.Error("Claim accepted for an already evaluated submission")
	}

	// A fresh submission supersedes a standing claim.
	ApplySubmission(p, work, models.SubmissionAttempt{AttemptID: "s2", SubmittedAt: now.Add(4 * time.Hour)})
	ClaimForReview(p, "f2", now.Add(5*time.Hour))
	ApplySubmission(p, work, models.SubmissionAttempt{AttemptID: "s3", SubmittedAt: now.Add(6 * time.Hour)})
	if p.ReviewerID != "" {
		t.Errorf("Expected claim cleared by new submission, got %q", p.ReviewerID)
	}
	if p.Status != models.PracticalSubmitted {
		t.Errorf("Expected submitted after new submission, got %s", p.Status)
	}
}

func TestEvaluationWithoutSubmission(t *testing.T) {
	p := models.NewPracticalWorkProgress("u1", "tp1")
	if ApplyEvaluation(p, models.Evaluation{EvaluatedAt: time.Now()}) {
		t.Error("Evaluation accepted with no attempts")
	}
}
