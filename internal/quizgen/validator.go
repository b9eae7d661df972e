package quizgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"flutterlearn-service/internal/models"
)

// UsabilityThreshold is the fraction of the requested question count that
// must survive repair for the quiz to be usable.
const UsabilityThreshold = 0.7

// Report is the outcome of validating one generated question set.
type Report struct {
	Valid          []models.Question
	InvalidCount   int
	RequestedCount int
	Usable         bool
	Warnings       []string
}

// Validate classifies each candidate against the per-kind rules, running
// the best-effort repair pass first. The quiz is usable only when the
// repaired-valid count reaches 70% of the requested count. Missing
// optional metadata (explanation, tags) produces warnings, never a
// rejection.
func Validate(raws []RawQuestion, requested int, moduleID string) Report {
	report := Report{RequestedCount: requested}

	for i, raw := range raws {
		q, err := Repair(raw, moduleID)
		if err != nil {
			report.InvalidCount++
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("question %d dropped: %v", i+1, err))
			continue
		}
		if q.Explanation == "" {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("question %d has no explanation", i+1))
		}
		if (q.Type == models.CodeCompletion || q.Type == models.CodeDebugging) && q.Code == "" {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("question %d (%s) has no code snippet", i+1, q.Type))
		}
		report.Valid = append(report.Valid, q)
	}

	if requested > 0 {
		report.Usable = float64(len(report.Valid)) >= UsabilityThreshold*float64(requested)
	}
	return report
}

// Repair applies the best-effort auto-repair pass to one candidate:
// defaults for id, difficulty, points, time limit and tags, and the
// canonical option pair for true_false. It fails when the question cannot
// be made structurally sound: missing text, unknown type, no inferable
// options for an option-bearing type, or an un-derivable correct answer.
func Repair(raw RawQuestion, moduleID string) (models.Question, error) {
	q := models.Question{
		ID:          raw.ID,
		ModuleID:    moduleID,
		Type:        models.QuestionType(raw.Type),
		Difficulty:  raw.Difficulty,
		Question:    strings.TrimSpace(raw.Question),
		Code:        raw.Code,
		Explanation: raw.Explanation,
		Points:      raw.Points,
		TimeLimit:   raw.TimeLimit,
		TopicTags:   raw.TopicTags,
	}

	if q.Question == "" {
		return models.Question{}, fmt.Errorf("missing question text")
	}
	if !q.Type.IsKnown() {
		return models.Question{}, fmt.Errorf("unknown question type %q", raw.Type)
	}

	if q.ID == "" {
		q.ID = "q-" + uuid.NewString()
	}
	if q.Difficulty == "" {
		q.Difficulty = models.DifficultyMedium
	}
	if q.Points <= 0 {
		q.Points = models.DefaultQuestionPoints
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = models.DefaultQuestionTimeLimit
	}
	if q.TopicTags == nil {
		q.TopicTags = []string{}
	}

	if q.Type == models.TrueFalse {
		answer, err := trueFalseAnswer(raw)
		if err != nil {
			return models.Question{}, err
		}
		q.Options = append([]string(nil), models.TrueFalseOptions...)
		q.CorrectAnswer = answer
		return q, nil
	}

	if raw.CorrectAnswer == nil {
		return models.Question{}, fmt.Errorf("missing correct answer")
	}
	if *raw.CorrectAnswer < 0 || *raw.CorrectAnswer >= len(raw.Options) {
		return models.Question{}, fmt.Errorf("correct answer %d out of bounds for %d options",
			*raw.CorrectAnswer, len(raw.Options))
	}
	options, answer, err := filterOptions(raw.Options, *raw.CorrectAnswer)
	if err != nil {
		return models.Question{}, err
	}
	if len(options) < 2 {
		return models.Question{}, fmt.Errorf("fewer than 2 usable options for %s", q.Type)
	}
	q.Options = options
	q.CorrectAnswer = answer
	return q, nil
}

// trueFalseAnswer derives the canonical answer index for a true_false
// candidate. When the generator produced its own option pair, the answer
// is remapped by matching the selected option text.
func trueFalseAnswer(raw RawQuestion) (int, error) {
	if raw.CorrectAnswer == nil {
		return 0, fmt.Errorf("missing correct answer")
	}
	idx := *raw.CorrectAnswer

	if idx >= 0 && idx < len(raw.Options) {
		selected := strings.ToLower(strings.TrimSpace(raw.Options[idx]))
		switch selected {
		case "vrai", "true":
			return 1, nil
		case "faux", "false":
			return 0, nil
		}
	}
	if idx == 0 || idx == 1 {
		return idx, nil
	}
	return 0, fmt.Errorf("correct answer %d not derivable for true_false", idx)
}

func usableOptions(options []string) []string {
	var out []string
	for _, o := range options {
		if strings.TrimSpace(o) != "" {
			out = append(out, o)
		}
	}
	return out
}

// filterOptions drops blank options and remaps the correct answer index
// onto the filtered list so it keeps pointing at the same option text.
// Fails when the correct option is itself blank.
func filterOptions(options []string, answer int) ([]string, int, error) {
	out := make([]string, 0, len(options))
	mapped := 0
	for i, o := range options {
		if strings.TrimSpace(o) == "" {
			if i == answer {
				return nil, 0, fmt.Errorf("correct answer %d points at a blank option", answer)
			}
			continue
		}
		if i == answer {
			mapped = len(out)
		}
		out = append(out, o)
	}
	return out, mapped, nil
}

// Playable is the looser bar needed to render and score a question:
// question text, a known type, an in-bounds correct answer pointing at a
// non-blank option, and at least two non-empty options for option-bearing
// types. Used to silently drop unplayable items from an otherwise usable
// quiz.
func Playable(q *models.Question) bool {
	if q.Question == "" || !q.Type.IsKnown() {
		return false
	}
	if !q.AnswerInBounds() {
		return false
	}
	if q.Type.IsOptionBearing() {
		if len(usableOptions(q.Options)) < 2 {
			return false
		}
		if strings.TrimSpace(q.Options[q.CorrectAnswer]) == "" {
			return false
		}
	}
	return true
}

// FilterPlayable removes unplayable questions, preserving order.
func FilterPlayable(questions []models.Question) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for i := range questions {
		if Playable(&questions[i]) {
			out = append(out, questions[i])
		}
	}
	return out
}
