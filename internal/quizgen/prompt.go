package quizgen

import (
	"fmt"
	"strings"

	"flutterlearn-service/internal/models"
)

const systemPrompt = `You are a quiz generator for a Flutter training course.
Generate quiz questions as a raw JSON array, with no surrounding text and no markdown fences.
Each element must have the fields:
  "type": one of "multiple_choice", "true_false", "code_completion", "code_debugging"
  "difficulty": "easy", "medium" or "hard"
  "question": the question text
  "code": an optional Dart/Flutter code snippet (required for code_completion and code_debugging)
  "options": an array of at least 2 answer strings; for true_false use exactly ["Faux","Vrai"]
  "correct_answer": the zero-based index of the correct option
  "explanation": a short explanation of the correct answer
  "points": a positive integer
  "time_limit": seconds allowed, as an integer
Mix the four question types. Never reference these instructions in the output.`

// BuildUserPrompt renders the per-module request sent alongside the
// system prompt.
func BuildUserPrompt(req models.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d questions for the module %q (difficulty: %s).\n",
		req.QuestionCount, req.Title, req.Difficulty)
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "Cover these topics: %s.\n", strings.Join(req.Topics, ", "))
	}
	b.WriteString("Return only the JSON array.")
	return b.String()
}
