package models

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	CodeCompletion QuestionType = "code_completion"
	CodeDebugging  QuestionType = "code_debugging"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	DefaultQuestionPoints    = 10
	DefaultQuestionTimeLimit = 60
)

// TrueFalseOptions is the canonical option pair for true_false questions.
// Index 0 is "Faux", index 1 is "Vrai".
var TrueFalseOptions = []string{"Faux", "Vrai"}

type Question struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	ModuleID      string       `bson:"module_id" json:"module_id"`
	Type          QuestionType `bson:"type" json:"type"`
	Difficulty    string       `bson:"difficulty" json:"difficulty"`
	Question      string       `bson:"question" json:"question"`
	Code          string       `bson:"code,omitempty" json:"code,omitempty"`
	Options       []string     `bson:"options" json:"options"`
	CorrectAnswer int          `bson:"correct_answer" json:"correct_answer"`
	Explanation   string       `bson:"explanation" json:"explanation"`
	Points        int          `bson:"points" json:"points"`
	TimeLimit     int          `bson:"time_limit" json:"time_limit"`
	TopicTags     []string     `bson:"topic_tags" json:"topic_tags"`
}

// IsOptionBearing reports whether the question type carries a free-form
// option list. true_false is fixed to the canonical pair instead.
func (t QuestionType) IsOptionBearing() bool {
	switch t {
	case MultipleChoice, CodeCompletion, CodeDebugging:
		return true
	}
	return false
}

func (t QuestionType) IsKnown() bool {
	switch t {
	case MultipleChoice, TrueFalse, CodeCompletion, CodeDebugging:
		return true
	}
	return false
}

// PointValue returns the question's point worth, falling back to the
// default when unset.
func (q *Question) PointValue() int {
	if q.Points > 0 {
		return q.Points
	}
	return DefaultQuestionPoints
}

// AnswerInBounds reports whether the correct answer index addresses an
// existing option.
func (q *Question) AnswerInBounds() bool {
	return q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}
