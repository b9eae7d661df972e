package scoring

import (
	"testing"
	"time"

	"flutterlearn-service/internal/models"
)

func makeQuestions(points ...int) []models.Question {
	questions := make([]models.Question, len(points))
	for i, p := range points {
		questions[i] = models.Question{
			ID:            string(rune('a' + i)),
			Type:          models.MultipleChoice,
			Question:      "q",
			Options:       []string{"x", "y", "z"},
			CorrectAnswer: 1,
			Points:        p,
		}
	}
	return questions
}

func TestScoreTwoQuestionsOneCorrect(t *testing.T) {
	questions := makeQuestions(10, 10)
	answers := map[string]models.Answer{
		"a": {Selected: 1, TimeSpentMs: 4000, Timestamp: time.Now()},
		"b": {Selected: 0, TimeSpentMs: 6000, Timestamp: time.Now()},
	}

	res := Score(questions, answers)

	if res.Score != 50 {
		t.Errorf("Expected score 50, got %d", res.Score)
	}
	if res.CorrectCount != 1 {
		t.Errorf("Expected 1 correct, got %d", res.CorrectCount)
	}
	if res.EarnedPoints != 10 || res.TotalPoints != 20 {
		t.Errorf("Expected 10/20 points, got %d/%d", res.EarnedPoints, res.TotalPoints)
	}
	if res.TimeSpent != 10 {
		t.Errorf("Expected 10s time spent, got %d", res.TimeSpent)
	}
}

func TestScoreBounds(t *testing.T) {
	testCases := []struct {
		name          string
		correct       int
		total         int
		expectedScore int
	}{
		{"none correct", 0, 4, 0},
		{"all correct", 4, 4, 100},
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions := makeQuestions(make([]int, tc.total)...)
			answers := map[string]models.Answer{}
			for i := 0; i < tc.total; i++ {
				selected := 0
				if i < tc.correct {
					selected = 1
				}
				answers[questions[i].ID] = models.Answer{Selected: selected}
			}

			res := Score(questions, answers)
			if res.Score != tc.expectedScore {
				t.Errorf("Expected score %d, got %d", tc.expectedScore, res.Score)
			}
			if res.Score < 0 || res.Score > 100 {
				t.Errorf("Score out of bounds: %d", res.Score)
			}
		})
	}
}

func TestScoreDefaultPoints(t *testing.T) {
	// Zero-point questions fall back to the default worth.
	questions := makeQuestions(0, 0)
	answers := map[string]models.Answer{
		"a": {Selected: 1},
	}

	res := Score(questions, answers)
	if res.TotalPoints != 2*models.DefaultQuestionPoints {
		t.Errorf("Expected total %d, got %d", 2*models.DefaultQuestionPoints, res.TotalPoints)
	}
	if res.EarnedPoints != models.DefaultQuestionPoints {
		t.Errorf("Expected earned %d, got %d", models.DefaultQuestionPoints, res.EarnedPoints)
	}
}

func TestScoreUnansweredAreOmissions(t *testing.T) {
	questions := makeQuestions(10, 10, 10)
	answers := map[string]models.Answer{
		"a": {Selected: 1, TimeSpentMs: 1500},
	}

	res := Score(questions, answers)

	if res.Answered != 1 || res.Unanswered != 2 {
		t.Errorf("Expected 1 answered / 2 unanswered, got %d/%d", res.Answered, res.Unanswered)
	}
	if res.Score != 33 {
		t.Errorf("Expected score 33, got %d", res.Score)
	}
	if res.TimeSpent != 2 {
		t.Errorf("Expected 2s (rounded from 1.5s), got %d", res.TimeSpent)
	}
}

func TestScoreEmptyQuiz(t *testing.T) {
	res := Score(nil, nil)
	if res.Score != 0 || res.TotalPoints != 0 {
		t.Errorf("Expected zero result, got %+v", res)
	}
}
