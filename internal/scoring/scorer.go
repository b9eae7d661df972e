// Package scoring converts a completed answer set into a normalized quiz
// result. All functions are pure.
package scoring

import (
	"math"

	"flutterlearn-service/internal/models"
)

// Result is the outcome of scoring one question set against an answer map.
type Result struct {
	Score        int `json:"score"` // 0-100
	CorrectCount int `json:"correct_count"`
	EarnedPoints int `json:"earned_points"`
	TotalPoints  int `json:"total_points"`
	TimeSpent    int `json:"time_spent"` // seconds
	Answered     int `json:"answered"`
	Unanswered   int `json:"unanswered"`
}

// Score computes the result for an ordered question list and an answer map
// keyed by question id. Unanswered questions contribute nothing to the
// earned points and are not counted as correct; they are reported in
// Unanswered so the caller can warn, not folded into the score formula.
func Score(questions []models.Question, answers map[string]models.Answer) Result {
	var res Result
	var timeSpentMs int64

	for i := range questions {
		q := &questions[i]
		points := q.PointValue()
		res.TotalPoints += points

		ans, ok := answers[q.ID]
		if !ok {
			res.Unanswered++
			continue
		}
		res.Answered++
		timeSpentMs += ans.TimeSpentMs

		if ans.Selected == q.CorrectAnswer {
			res.CorrectCount++
			res.EarnedPoints += points
		}
	}

	if res.TotalPoints > 0 {
		res.Score = int(math.Round(float64(res.EarnedPoints) / float64(res.TotalPoints) * 100))
	}
	res.TimeSpent = int(math.Round(float64(timeSpentMs) / 1000))

	return res
}
