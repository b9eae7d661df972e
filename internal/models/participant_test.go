package models

import (
	"testing"
	"time"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role    Role
		action  string
		allowed bool
	}{
		{RoleParticipant, ActionTakeQuiz, true},
		{RoleParticipant, ActionSubmitPractical, true},
		{RoleParticipant, ActionEvaluate, false},
		{RoleParticipant, ActionManageUsers, false},
		{RoleFormateur, ActionEvaluate, true},
		{RoleFormateur, ActionViewAllProgress, true},
		{RoleFormateur, ActionManageUsers, false},
		{RoleAdmin, ActionManageUsers, true},
		{RoleAdmin, ActionManageModules, true},
		{Role("unknown"), ActionTakeQuiz, false},
	}

	for _, tt := range tests {
		if got := Can(tt.role, tt.action); got != tt.allowed {
			t.Errorf("Can(%s, %s) = %v, expected %v", tt.role, tt.action, got, tt.allowed)
		}
	}
}

func TestNewParticipant(t *testing.T) {
	now := time.Now()

	p, err := NewParticipant("Marie.Dupont@Example.com", "", "", now)
	if err != nil {
		t.Fatalf("Expected valid participant, got error: %v", err)
	}
	if p.Email != "marie.dupont@example.com" {
		t.Errorf("Expected normalized email, got %s", p.Email)
	}
	if p.DisplayName != "marie.dupont" {
		t.Errorf("Expected display name derived from email, got %s", p.DisplayName)
	}
	if p.Role != RoleParticipant {
		t.Errorf("Expected default role participant, got %s", p.Role)
	}
	if !p.Active {
		t.Error("Expected new participant to be active")
	}

	if _, err := NewParticipant("not-an-email", "X", RoleParticipant, now); err == nil {
		t.Error("Expected error for invalid email")
	}
	if _, err := NewParticipant("a@b.com", "X", Role("superuser"), now); err == nil {
		t.Error("Expected error for unknown role")
	}
}
