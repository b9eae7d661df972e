package quizgen

import (
	"testing"

	"flutterlearn-service/internal/models"
)

func intPtr(i int) *int { return &i }

func TestRepairDefaults(t *testing.T) {
	raw := RawQuestion{
		Type:          "multiple_choice",
		Question:      "Which widget lays out children vertically?",
		Options:       []string{"Row", "Column", "Stack"},
		CorrectAnswer: intPtr(1),
	}

	q, err := Repair(raw, "m1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if q.ID == "" {
		t.Error("Expected a generated id")
	}
	if q.Difficulty != models.DifficultyMedium {
		t.Errorf("Expected default difficulty, got %s", q.Difficulty)
	}
	if q.Points != models.DefaultQuestionPoints {
		t.Errorf("Expected default points, got %d", q.Points)
	}
	if q.TimeLimit != models.DefaultQuestionTimeLimit {
		t.Errorf("Expected default time limit, got %d", q.TimeLimit)
	}
	if q.TopicTags == nil {
		t.Error("Expected tags initialized")
	}
	if q.ModuleID != "m1" {
		t.Errorf("Expected module id m1, got %s", q.ModuleID)
	}
}

func TestRepairTrueFalseCanonicalPair(t *testing.T) {
	testCases := []struct {
		name           string
		raw            RawQuestion
		expectedAnswer int
		expectError    bool
	}{
		{"bare index 1", RawQuestion{Type: "true_false", Question: "q", CorrectAnswer: intPtr(1)}, 1, false},
		{"bare index 0", RawQuestion{Type: "true_false", Question: "q", CorrectAnswer: intPtr(0)}, 0, false},
		{"english options remapped", RawQuestion{
			Type: "true_false", Question: "q",
			Options: []string{"True", "False"}, CorrectAnswer: intPtr(0),
		}, 1, false},
		{"french options reversed", RawQuestion{
			Type: "true_false", Question: "q",
			Options: []string{"Vrai", "Faux"}, CorrectAnswer: intPtr(1),
		}, 0, false},
		{"missing answer", RawQuestion{Type: "true_false", Question: "q"}, 0, true},
		{"out of range answer", RawQuestion{Type: "true_false", Question: "q", CorrectAnswer: intPtr(5)}, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Repair(tc.raw, "m1")
			if tc.expectError {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(q.Options) != 2 || q.Options[0] != "Faux" || q.Options[1] != "Vrai" {
				t.Errorf("Expected canonical [Faux Vrai], got %v", q.Options)
			}
			if q.CorrectAnswer != tc.expectedAnswer {
				t.Errorf("Expected answer %d, got %d", tc.expectedAnswer, q.CorrectAnswer)
			}
		})
	}
}

func TestRepairUnrepairable(t *testing.T) {
	testCases := []struct {
		name string
		raw  RawQuestion
	}{
		{"missing text", RawQuestion{Type: "multiple_choice", Options: []string{"a", "b"}, CorrectAnswer: intPtr(0)}},
		{"unknown type", RawQuestion{Type: "essay", Question: "q"}},
		{"no options", RawQuestion{Type: "multiple_choice", Question: "q", CorrectAnswer: intPtr(0)}},
		{"single usable option", RawQuestion{
			Type: "code_completion", Question: "q",
			Options: []string{"a", "  "}, CorrectAnswer: intPtr(0),
		}},
		{"answer out of bounds", RawQuestion{
			Type: "multiple_choice", Question: "q",
			Options: []string{"a", "b"}, CorrectAnswer: intPtr(4),
		}},
		{"missing answer", RawQuestion{
			Type: "code_debugging", Question: "q", Options: []string{"a", "b"},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Repair(tc.raw, "m1"); err == nil {
				t.Error("Expected repair to fail")
			}
		})
	}
}

func TestRepairRemapsAnswerAroundBlankOptions(t *testing.T) {
	testCases := []struct {
		name            string
		options         []string
		answer          int
		expectedOptions []string
		expectedAnswer  int
		expectError     bool
	}{
		{"blank before answer shifts index", []string{"", "Column", "Row"}, 1,
			[]string{"Column", "Row"}, 0, false},
		{"blank after answer keeps index", []string{"Column", "Row", "  "}, 1,
			[]string{"Column", "Row"}, 1, false},
		{"blanks on both sides", []string{" ", "Column", "", "Row"}, 3,
			[]string{"Column", "Row"}, 1, false},
		{"correct option is blank", []string{"Column", "", "Row"}, 1, nil, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := RawQuestion{
				Type: "multiple_choice", Question: "Which widget lays out children vertically?",
				Options: tc.options, CorrectAnswer: intPtr(tc.answer),
			}
			q, err := Repair(raw, "m1")
			if tc.expectError {
				if err == nil {
					t.Fatal("Expected repair to fail for a blank correct option")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(q.Options) != len(tc.expectedOptions) {
				t.Fatalf("Expected options %v, got %v", tc.expectedOptions, q.Options)
			}
			for i, o := range tc.expectedOptions {
				if q.Options[i] != o {
					t.Fatalf("Expected options %v, got %v", tc.expectedOptions, q.Options)
				}
			}
			if q.CorrectAnswer != tc.expectedAnswer {
				t.Errorf("Expected answer %d (%q), got %d (%q)",
					tc.expectedAnswer, tc.expectedOptions[tc.expectedAnswer],
					q.CorrectAnswer, q.Options[q.CorrectAnswer])
			}
		})
	}
}

func TestValidateUsabilityGate(t *testing.T) {
	// 10 requested, 4 unrepairable: 6 valid < 70% of 10, quiz rejected.
	var raws []RawQuestion
	for i := 0; i < 6; i++ {
		raws = append(raws, RawQuestion{
			Type: "multiple_choice", Question: "q",
			Options: []string{"a", "b"}, CorrectAnswer: intPtr(0),
		})
	}
	for i := 0; i < 4; i++ {
		raws = append(raws, RawQuestion{Type: "multiple_choice", Question: "q"})
	}

	report := Validate(raws, 10, "m1")
	if len(report.Valid) != 6 || report.InvalidCount != 4 {
		t.Fatalf("Expected 6 valid / 4 invalid, got %d/%d", len(report.Valid), report.InvalidCount)
	}
	if report.Usable {
		t.Error("Quiz should be rejected below the 70% gate")
	}

	// 7 of 10 passes the gate.
	raws = append(raws, RawQuestion{
		Type: "true_false", Question: "q", CorrectAnswer: intPtr(1),
	})
	report = Validate(raws, 10, "m1")
	if !report.Usable {
		t.Error("Quiz with 7/10 valid should be usable")
	}
}

func TestMissingExplanationIsWarningOnly(t *testing.T) {
	raws := []RawQuestion{{
		Type: "multiple_choice", Question: "q",
		Options: []string{"a", "b"}, CorrectAnswer: intPtr(0),
	}}

	report := Validate(raws, 1, "m1")
	if len(report.Valid) != 1 {
		t.Fatalf("Question rejected for missing metadata: %v", report.Warnings)
	}
	if len(report.Warnings) == 0 {
		t.Error("Expected a warning for the missing explanation")
	}
}

func TestFilterPlayable(t *testing.T) {
	questions := []models.Question{
		{ID: "ok", Type: models.MultipleChoice, Question: "q",
			Options: []string{"a", "b"}, CorrectAnswer: 1},
		{ID: "no-text", Type: models.MultipleChoice,
			Options: []string{"a", "b"}, CorrectAnswer: 0},
		{ID: "bad-index", Type: models.TrueFalse, Question: "q",
			Options: []string{"Faux", "Vrai"}, CorrectAnswer: 3},
		{ID: "one-option", Type: models.CodeDebugging, Question: "q",
			Options: []string{"a"}, CorrectAnswer: 0},
		{ID: "blank-correct", Type: models.MultipleChoice, Question: "q",
			Options: []string{"a", "", "b"}, CorrectAnswer: 1},
	}

	playable := FilterPlayable(questions)
	if len(playable) != 1 || playable[0].ID != "ok" {
		t.Errorf("Expected only the sound question to survive, got %+v", playable)
	}
}

func TestParseQuestionsJSON(t *testing.T) {
	fenced := "```json\n[{\"type\":\"true_false\",\"question\":\"q\",\"correct_answer\":1}]\n```"
	questions, err := ParseQuestionsJSON(fenced)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(questions) != 1 || questions[0].Type != "true_false" {
		t.Fatalf("Unexpected parse result: %+v", questions)
	}
	if questions[0].CorrectAnswer == nil || *questions[0].CorrectAnswer != 1 {
		t.Error("Correct answer not decoded")
	}

	wrapped := `{"questions":[{"type":"multiple_choice","question":"q"}]}`
	questions, err = ParseQuestionsJSON(wrapped)
	if err != nil {
		t.Fatalf("Unexpected error for wrapped form: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("Expected 1 question from wrapped form, got %d", len(questions))
	}

	if _, err := ParseQuestionsJSON("   "); err == nil {
		t.Error("Expected error for empty content")
	}
}
