package model

// QuizPhase identifies the quiz attempt relative to training.
type QuizPhase string

const (
	PhasePre  QuizPhase = "pre"
	PhasePost QuizPhase = "post"
)

func (p QuizPhase) Valid() bool {
	return p == PhasePre || p == PhasePost
}

// Question is one multiple-choice question, unique per (category, key).
type Question struct {
	BaseModel
	Category      QuizPhase `gorm:"size:8;not null;uniqueIndex:idx_questions_category_key" json:"category"`
	Key           string    `gorm:"size:64;not null;uniqueIndex:idx_questions_category_key" json:"key"`
	QuestionText  string    `gorm:"type:text;not null" json:"questionText"`
	OptionA       string    `gorm:"type:text;not null" json:"optionA"`
	OptionB       string    `gorm:"type:text;not null" json:"optionB"`
	OptionC       string    `gorm:"type:text;not null" json:"optionC"`
	CorrectOption string    `gorm:"size:1;not null" json:"correctOption"`
	Explanation   string    `gorm:"type:text;not null" json:"explanation"`
	TopicTag      string    `gorm:"size:32;not null;index" json:"topicTag"`
	SortOrder     int       `gorm:"default:0;index" json:"sortOrder"`
}

func (Question) TableName() string {
	return "questions"
}

// ValidOption reports whether s is one of the three answer keys.
func ValidOption(s string) bool {
	return s == "A" || s == "B" || s == "C"
}
