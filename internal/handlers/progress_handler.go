package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/service"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// GetProgress returns the caller's full progress record.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	progress, err := h.Service.GetProgress(context.Background(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Sync reconciles the cached local copy with the stored record and
// returns the merged result.
func (h *ProgressHandler) Sync(c *gin.Context) {
	progress, err := h.Service.SyncProgress(context.Background(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetUserProgress lets an instructor or admin read another learner's
// progress.
func (h *ProgressHandler) GetUserProgress(c *gin.Context) {
	if !models.Can(currentRole(c), models.ActionViewAllProgress) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Instructor access required"})
		return
	}
	progress, err := h.Service.GetProgress(context.Background(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}
