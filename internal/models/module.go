package models

import "time"

// CourseModule is a course unit gated by quiz score. Unlocking is driven
// by the prerequisite module's best score (see progression package).
type CourseModule struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	CourseID         string    `bson:"course_id" json:"course_id"`
	Title            string    `bson:"title" json:"title"`
	Description      string    `bson:"description" json:"description"`
	Order            int       `bson:"order" json:"order"`
	Difficulty       string    `bson:"difficulty" json:"difficulty"`
	Topics           []string  `bson:"topics" json:"topics"`
	QuestionCount    int       `bson:"question_count" json:"question_count"`
	EstimatedMinutes int       `bson:"estimated_minutes" json:"estimated_minutes"`
	Prerequisite     string    `bson:"prerequisite,omitempty" json:"prerequisite,omitempty"`
	IsFirst          bool      `bson:"is_first" json:"is_first"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

const DefaultQuestionCount = 10

// GenerationRequest describes what the AI generation service should
// produce for a module.
type GenerationRequest struct {
	ModuleID      string   `json:"module_id"`
	Title         string   `json:"title"`
	Difficulty    string   `json:"difficulty"`
	Topics        []string `json:"topics"`
	QuestionCount int      `json:"question_count"`
}

func (m *CourseModule) ToGenerationRequest() GenerationRequest {
	count := m.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}
	return GenerationRequest{
		ModuleID:      m.ID,
		Title:         m.Title,
		Difficulty:    m.Difficulty,
		Topics:        m.Topics,
		QuestionCount: count,
	}
}
