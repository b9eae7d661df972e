package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/service"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

type startSessionRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	ModuleID string `json:"module_id" binding:"required"`
}

func (h *QuizHandler) StartSession(c *gin.Context) {
	if !models.Can(currentRole(c), models.ActionTakeQuiz) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Taking quizzes is not allowed for this role"})
		return
	}
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Service.StartSession(context.Background(), currentUserID(c), req.CourseID, req.ModuleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModuleLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "Module is locked"})
		case errors.Is(err, service.ErrQuizUnusable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Quiz generation failed, try again"})
		case errors.Is(err, mongo.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *QuizHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(context.Background(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type answerRequest struct {
	QuestionID  string `json:"question_id" binding:"required"`
	Selected    *int   `json:"selected" binding:"required"`
	TimeSpentMs int64  `json:"time_spent_ms"`
}

func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.Service.SubmitAnswer(context.Background(), c.Param("id"), currentUserID(c), req.QuestionID, *req.Selected, req.TimeSpentMs)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *QuizHandler) SubmitSession(c *gin.Context) {
	attempt, progress, err := h.Service.SubmitSession(context.Background(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"attempt":  attempt,
		"progress": progress,
	})
}

func (h *QuizHandler) AbandonSession(c *gin.Context) {
	if err := h.Service.AbandonSession(context.Background(), c.Param("id"), currentUserID(c)); err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "abandoned"})
}

func (h *QuizHandler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotSessionOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Session belongs to another user"})
	case errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Session is no longer active"})
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
