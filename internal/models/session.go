package models

import "time"

// QuizSession is the ephemeral state of an active quiz run. It is
// discarded once a QuizAttempt has been derived from it, or on abandon.
type QuizSession struct {
	ID                   string            `bson:"_id,omitempty" json:"id"`
	UserID               string            `bson:"user_id" json:"user_id"`
	CourseID             string            `bson:"course_id" json:"course_id"`
	ModuleID             string            `bson:"module_id" json:"module_id"`
	StartedAt            time.Time         `bson:"started_at" json:"started_at"`
	Questions            []Question        `bson:"questions" json:"questions"`
	CurrentQuestionIndex int               `bson:"current_question_index" json:"current_question_index"`
	Answers              map[string]Answer `bson:"answers" json:"answers"`
	Status               string            `bson:"status" json:"status"`
}

const (
	SessionActive    = "active"
	SessionSubmitted = "submitted"
	SessionAbandoned = "abandoned"
)

// QuestionByID returns the session question with the given id, or nil.
func (s *QuizSession) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// RecordAnswer stores the learner's answer for a question, replacing any
// prior answer for the same question id.
func (s *QuizSession) RecordAnswer(questionID string, selected int, timeSpentMs int64, now time.Time) bool {
	q := s.QuestionByID(questionID)
	if q == nil {
		return false
	}
	if s.Answers == nil {
		s.Answers = make(map[string]Answer)
	}
	s.Answers[questionID] = Answer{
		Selected:    selected,
		Correct:     selected == q.CorrectAnswer,
		TimeSpentMs: timeSpentMs,
		Timestamp:   now,
	}
	return true
}
