package service

import (
	"testing"
	"time"

	"flutterlearn-service/internal/models"
)

func TestModuleStatusesLockChain(t *testing.T) {
	service := &ProgressService{}

	modules := []models.CourseModule{
		{ID: "m1", IsFirst: true},
		{ID: "m2", Prerequisite: "m1"},
		{ID: "m3", Prerequisite: "m2"},
	}
	course := &models.CourseProgress{
		Modules: map[string]*models.ModuleProgress{
			"m1": {
				BestScore: 85,
				Attempts:  []models.QuizAttempt{{AttemptID: "a1", Score: 85, Date: time.Now()}},
			},
		},
	}

	statuses := service.ModuleStatuses(modules, course)

	if statuses["m1"] != models.ModuleCompleted {
		t.Errorf("Expected m1 completed, got %s", statuses["m1"])
	}
	if statuses["m2"] != models.ModuleUnlocked {
		t.Errorf("Expected m2 unlocked after m1 passed, got %s", statuses["m2"])
	}
	if statuses["m3"] != models.ModuleLocked {
		t.Errorf("Expected m3 locked, got %s", statuses["m3"])
	}
}

func TestModuleStatusesNoProgress(t *testing.T) {
	service := &ProgressService{}

	modules := []models.CourseModule{
		{ID: "m1", IsFirst: true},
		{ID: "m2", Prerequisite: "m1"},
	}

	statuses := service.ModuleStatuses(modules, nil)

	if statuses["m1"] != models.ModuleUnlocked {
		t.Errorf("Expected first module unlocked, got %s", statuses["m1"])
	}
	if statuses["m2"] != models.ModuleLocked {
		t.Errorf("Expected m2 locked, got %s", statuses["m2"])
	}
}

func TestCheckRubric(t *testing.T) {
	rubric := []models.RubricCriterion{
		{Label: "Fonctionnalité", MaxPoints: 40},
		{Label: "Qualité du code", MaxPoints: 30},
		{Label: "UI/UX", MaxPoints: 30},
	}

	valid := []models.CriterionScore{
		{Label: "Fonctionnalité", Points: 35},
		{Label: "Qualité du code", Points: 20},
	}
	if err := checkRubric(rubric, valid); err != nil {
		t.Errorf("Expected valid criteria to pass, got %v", err)
	}

	overCeiling := []models.CriterionScore{{Label: "UI/UX", Points: 31}}
	if err := checkRubric(rubric, overCeiling); err == nil {
		t.Error("Expected error for score above criterion ceiling")
	}

	unknown := []models.CriterionScore{{Label: "Documentation", Points: 5}}
	if err := checkRubric(rubric, unknown); err == nil {
		t.Error("Expected error for criterion outside the rubric")
	}

	negative := []models.CriterionScore{{Label: "UI/UX", Points: -1}}
	if err := checkRubric(rubric, negative); err == nil {
		t.Error("Expected error for negative score")
	}
}

func TestValidateRubric(t *testing.T) {
	if err := validateRubric(nil); err == nil {
		t.Error("Expected error for empty rubric")
	}
	if err := validateRubric([]models.RubricCriterion{{Label: "X", MaxPoints: 0}}); err == nil {
		t.Error("Expected error for zero-point criterion")
	}
	if err := validateRubric([]models.RubricCriterion{{Label: "X", MaxPoints: 100}}); err != nil {
		t.Errorf("Expected full-score rubric to pass, got %v", err)
	}
}
