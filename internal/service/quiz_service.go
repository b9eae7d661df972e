package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"flutterlearn-service/internal/cache"
	"flutterlearn-service/internal/event"
	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/progression"
	"flutterlearn-service/internal/quizgen"
	"flutterlearn-service/internal/repository"
	"flutterlearn-service/internal/scoring"
)

var (
	ErrModuleLocked    = errors.New("module is locked")
	ErrQuizUnusable    = errors.New("generated quiz did not pass validation")
	ErrNotSessionOwner = errors.New("session belongs to another user")
	ErrSessionClosed   = errors.New("session is not active")
)

// QuizService drives the quiz flow: generation with caching, session
// lifecycle, and conversion of a submitted session into a persisted
// attempt.
type QuizService struct {
	Sessions  *repository.SessionRepository
	Modules   *repository.ModuleRepository
	Questions *repository.QuestionRepository
	Cache     *cache.QuizCache
	Provider  quizgen.Provider
	Progress  *ProgressService
	Publisher *event.EventPublisher
}

func NewQuizService(
	sessions *repository.SessionRepository,
	modules *repository.ModuleRepository,
	questions *repository.QuestionRepository,
	quizCache *cache.QuizCache,
	provider quizgen.Provider,
	progress *ProgressService,
	publisher *event.EventPublisher,
) *QuizService {
	return &QuizService{
		Sessions:  sessions,
		Modules:   modules,
		Questions: questions,
		Cache:     quizCache,
		Provider:  provider,
		Progress:  progress,
		Publisher: publisher,
	}
}

// GetOrGenerateQuiz returns the playable question set for a module,
// serving from cache when possible. Freshly generated sets go through
// validation and the usability gate before anything is cached.
func (s *QuizService) GetOrGenerateQuiz(ctx context.Context, module *models.CourseModule) ([]models.Question, error) {
	cached, err := s.Cache.Get(ctx, module.ID)
	if err != nil {
		log.Printf("Quiz cache read failed for %s: %v", module.ID, err)
	}
	if cached != nil && len(cached.Questions) > 0 {
		return cached.Questions, nil
	}

	req := module.ToGenerationRequest()
	raws, err := s.Provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating quiz for %s: %w", module.ID, err)
	}

	report := quizgen.Validate(raws, req.QuestionCount, module.ID)
	for _, w := range report.Warnings {
		log.Printf("Quiz validation [%s]: %s", module.ID, w)
	}
	if !report.Usable {
		s.Publisher.Publish(event.QuizRejected, map[string]interface{}{
			"module_id": module.ID,
			"valid":     len(report.Valid),
			"invalid":   report.InvalidCount,
			"requested": report.RequestedCount,
		})
		return nil, fmt.Errorf("%w: %d/%d valid", ErrQuizUnusable, len(report.Valid), report.RequestedCount)
	}

	questions := quizgen.FilterPlayable(report.Valid)

	if err := s.Cache.Put(ctx, &cache.CachedQuiz{
		ModuleID:  module.ID,
		Questions: questions,
		CachedAt:  time.Now(),
		State:     cache.QuizIdle,
	}); err != nil {
		log.Printf("Quiz cache write failed for %s: %v", module.ID, err)
	}
	if err := s.Questions.InsertMany(ctx, questions); err != nil {
		log.Printf("Question bank write failed for %s: %v", module.ID, err)
	}

	s.Publisher.Publish(event.QuizGenerated, map[string]interface{}{
		"module_id": module.ID,
		"count":     len(questions),
	})
	return questions, nil
}

// StartSession opens a quiz session for a module, enforcing unlock
// eligibility. An already-active session for the same module is resumed
// instead of duplicated.
func (s *QuizService) StartSession(ctx context.Context, userID, courseID, moduleID string) (*models.QuizSession, error) {
	module, err := s.Modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("loading module %s: %w", moduleID, err)
	}

	progress, err := s.Progress.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !progression.IsUnlockEligible(module, progress.Courses[courseID]) {
		return nil, ErrModuleLocked
	}

	if existing, err := s.Sessions.FindActiveByUserAndModule(ctx, userID, moduleID); err == nil {
		return existing, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	questions, err := s.GetOrGenerateQuiz(ctx, module)
	if err != nil {
		return nil, err
	}

	session := &models.QuizSession{
		UserID:    userID,
		CourseID:  courseID,
		ModuleID:  moduleID,
		StartedAt: time.Now(),
		Questions: questions,
		Answers:   make(map[string]models.Answer),
		Status:    models.SessionActive,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.Cache.SetState(ctx, moduleID, cache.QuizInProgress); err != nil {
		log.Printf("Quiz cache state change failed for %s: %v", moduleID, err)
	}
	s.Publisher.Publish(event.SessionStarted, map[string]interface{}{
		"user_id":   userID,
		"module_id": moduleID,
		"questions": len(questions),
	})
	return session, nil
}

// SubmitAnswer records one answer in an active session. Re-answering a
// question replaces the prior answer.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, userID, questionID string, selected int, timeSpentMs int64) (*models.Answer, error) {
	session, err := s.ownedActiveSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if !session.RecordAnswer(questionID, selected, timeSpentMs, time.Now()) {
		return nil, fmt.Errorf("question %s is not part of this session", questionID)
	}
	if idx := indexOfQuestion(session, questionID); idx >= 0 && idx+1 > session.CurrentQuestionIndex {
		session.CurrentQuestionIndex = idx + 1
	}

	err = s.Sessions.Update(ctx, sessionID, bson.M{
		"answers":                session.Answers,
		"current_question_index": session.CurrentQuestionIndex,
	})
	if err != nil {
		return nil, err
	}

	answer := session.Answers[questionID]
	return &answer, nil
}

// SubmitSession scores the session, derives the immutable attempt, saves
// it through the progress fallback chain and discards the session.
func (s *QuizService) SubmitSession(ctx context.Context, sessionID, userID string) (*models.QuizAttempt, *models.ParticipantProgress, error) {
	session, err := s.ownedActiveSession(ctx, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	result := scoring.Score(session.Questions, session.Answers)
	if result.Unanswered > 0 {
		log.Printf("Session %s submitted with %d unanswered questions", sessionID, result.Unanswered)
	}

	attempt := models.QuizAttempt{
		AttemptID:      uuid.NewString(),
		AttemptNumber:  s.Progress.NextAttemptNumber(ctx, userID, session.CourseID, session.ModuleID),
		Date:           time.Now(),
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: len(session.Questions),
		EarnedPoints:   result.EarnedPoints,
		TotalPoints:    result.TotalPoints,
		TimeSpent:      result.TimeSpent,
		Answers:        session.Answers,
	}

	progress, err := s.Progress.SaveAttempt(ctx, userID, session.CourseID, session.ModuleID, attempt)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		log.Printf("Discarding session %s failed: %v", sessionID, err)
	}
	if err := s.Cache.SetState(ctx, session.ModuleID, cache.QuizCompleted); err != nil {
		log.Printf("Quiz cache state change failed for %s: %v", session.ModuleID, err)
	}
	return &attempt, progress, nil
}

// AbandonSession discards an active session without deriving an attempt.
func (s *QuizService) AbandonSession(ctx context.Context, sessionID, userID string) error {
	session, err := s.ownedActiveSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if err := s.Cache.SetState(ctx, session.ModuleID, cache.QuizIdle); err != nil {
		log.Printf("Quiz cache state change failed for %s: %v", session.ModuleID, err)
	}
	s.Publisher.Publish(event.SessionAbandoned, map[string]interface{}{
		"user_id":   userID,
		"module_id": session.ModuleID,
	})
	return nil
}

func (s *QuizService) GetSession(ctx context.Context, sessionID, userID string) (*models.QuizSession, error) {
	return s.ownedActiveSession(ctx, sessionID, userID)
}

func (s *QuizService) ownedActiveSession(ctx context.Context, sessionID, userID string) (*models.QuizSession, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	if session.Status != models.SessionActive {
		return nil, ErrSessionClosed
	}
	return session, nil
}

func indexOfQuestion(session *models.QuizSession, questionID string) int {
	for i := range session.Questions {
		if session.Questions[i].ID == questionID {
			return i
		}
	}
	return -1
}
