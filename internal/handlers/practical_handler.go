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

type PracticalHandler struct {
	Service *service.PracticalService
}

func NewPracticalHandler(s *service.PracticalService) *PracticalHandler {
	return &PracticalHandler{Service: s}
}

func (h *PracticalHandler) ListWorks(c *gin.Context) {
	works, err := h.Service.ListWorks(context.Background(), c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, works)
}

func (h *PracticalHandler) GetWork(c *gin.Context) {
	work, err := h.Service.GetWork(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Practical work not found"})
		return
	}
	c.JSON(http.StatusOK, work)
}

func (h *PracticalHandler) GetProgress(c *gin.Context) {
	progress, err := h.Service.GetProgress(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *PracticalHandler) StartWork(c *gin.Context) {
	progress, err := h.Service.StartWork(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Practical work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Submit receives a multipart form: one or more "files" parts plus an
// optional "comment" field.
func (h *PracticalHandler) Submit(c *gin.Context) {
	if !models.Can(currentRole(c), models.ActionSubmitPractical) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Submitting is not allowed for this role"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["files"]
	comment := c.PostForm("comment")

	progress, err := h.Service.Submit(context.Background(), currentUserID(c), c.Param("id"), comment, files)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Practical work not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, progress)
}

type claimRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *PracticalHandler) ClaimForReview(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.Service.ClaimForReview(context.Background(), currentUserID(c), currentRole(c), req.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotEvaluator):
			c.JSON(http.StatusForbidden, gin.H{"error": "Instructor access required"})
		case errors.Is(err, service.ErrNothingToEvaluate):
			c.JSON(http.StatusConflict, gin.H{"error": "No submission to review"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, progress)
}

type evaluateRequest struct {
	UserID   string                  `json:"user_id" binding:"required"`
	Criteria []models.CriterionScore `json:"criteria" binding:"required"`
	Feedback string                  `json:"feedback"`
}

func (h *PracticalHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.Service.Evaluate(context.Background(), currentUserID(c), currentRole(c), req.UserID, c.Param("id"), req.Criteria, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotEvaluator):
			c.JSON(http.StatusForbidden, gin.H{"error": "Instructor access required"})
		case errors.Is(err, service.ErrNothingToEvaluate):
			c.JSON(http.StatusConflict, gin.H{"error": "No submission to evaluate"})
		case errors.Is(err, service.ErrRubricMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, mongo.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "Practical work not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *PracticalHandler) PendingReview(c *gin.Context) {
	submissions, err := h.Service.PendingReview(context.Background(), currentRole(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotEvaluator) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Instructor access required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *PracticalHandler) CreateWork(c *gin.Context) {
	var work models.PracticalWork
	if err := c.ShouldBindJSON(&work); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateWork(context.Background(), currentRole(c), &work); err != nil {
		if errors.Is(err, service.ErrNotEvaluator) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, work)
}
