package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/repository"
	"flutterlearn-service/internal/service"
)

type ModuleHandler struct {
	Modules  *repository.ModuleRepository
	Progress *service.ProgressService
}

func NewModuleHandler(modules *repository.ModuleRepository, progress *service.ProgressService) *ModuleHandler {
	return &ModuleHandler{Modules: modules, Progress: progress}
}

// ListModules returns the course's modules in order, each annotated with
// the caller's status for it.
func (h *ModuleHandler) ListModules(c *gin.Context) {
	courseID := c.Param("courseId")
	modules, err := h.Modules.FindByCourse(context.Background(), courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.Progress.GetProgress(context.Background(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	statuses := h.Progress.ModuleStatuses(modules, progress.Courses[courseID])

	type moduleView struct {
		models.CourseModule
		Status models.ModuleStatus `json:"status"`
	}
	views := make([]moduleView, 0, len(modules))
	for _, m := range modules {
		views = append(views, moduleView{CourseModule: m, Status: statuses[m.ID]})
	}
	c.JSON(http.StatusOK, views)
}

func (h *ModuleHandler) GetModule(c *gin.Context) {
	module, err := h.Modules.FindByID(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}
	c.JSON(http.StatusOK, module)
}

func (h *ModuleHandler) CreateModule(c *gin.Context) {
	if !models.Can(currentRole(c), models.ActionManageModules) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	var module models.CourseModule
	if err := c.ShouldBindJSON(&module); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Modules.Create(context.Background(), &module); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, module)
}

func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	if !models.Can(currentRole(c), models.ActionManageModules) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Modules.Update(context.Background(), c.Param("id"), update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	if !models.Can(currentRole(c), models.ActionManageModules) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	if err := h.Modules.Delete(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
