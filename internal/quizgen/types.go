package quizgen

import (
	"context"

	"flutterlearn-service/internal/models"
)

// RawQuestion is a candidate question as returned by the generation
// service, before validation and repair. Fields may be missing or
// malformed; CorrectAnswer is a pointer so absence can be told apart
// from index zero.
type RawQuestion struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Question      string   `json:"question"`
	Code          string   `json:"code,omitempty"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	TimeLimit     int      `json:"time_limit"`
	TopicTags     []string `json:"topic_tags"`
}

// Provider generates candidate questions for a module. Results must go
// through Validate before being served to learners.
type Provider interface {
	Generate(ctx context.Context, req models.GenerationRequest) ([]RawQuestion, error)
}
