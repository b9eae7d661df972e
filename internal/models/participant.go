package models

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleParticipant Role = "participant"
	RoleFormateur   Role = "formateur"
	RoleAdmin       Role = "admin"
)

// Actions gated by role.
const (
	ActionTakeQuiz         = "take_quiz"
	ActionSubmitPractical  = "submit_practical"
	ActionEvaluate         = "evaluate_practical"
	ActionManageModules    = "manage_modules"
	ActionManageUsers      = "manage_users"
	ActionViewAllProgress  = "view_all_progress"
	ActionGenerateQuestion = "generate_questions"
)

var rolePermissions = map[Role][]string{
	RoleParticipant: {ActionTakeQuiz, ActionSubmitPractical},
	RoleFormateur: {ActionTakeQuiz, ActionSubmitPractical, ActionEvaluate,
		ActionViewAllProgress, ActionGenerateQuestion},
	RoleAdmin: {ActionTakeQuiz, ActionSubmitPractical, ActionEvaluate,
		ActionManageModules, ActionManageUsers, ActionViewAllProgress,
		ActionGenerateQuestion},
}

// Can reports whether a role is allowed to perform an action.
func Can(role Role, action string) bool {
	for _, a := range rolePermissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

func (r Role) IsValid() bool {
	switch r {
	case RoleParticipant, RoleFormateur, RoleAdmin:
		return true
	}
	return false
}

type Participant struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Email       string     `bson:"email" json:"email"`
	DisplayName string     `bson:"display_name" json:"display_name"`
	Role        Role       `bson:"role" json:"role"`
	Active      bool       `bson:"active" json:"active"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}

// NewParticipant builds a participant with defaults applied. The role
// defaults to participant when empty.
func NewParticipant(email, displayName string, role Role, now time.Time) (*Participant, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if role == "" {
		role = RoleParticipant
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}
	return &Participant{
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
	}, nil
}
