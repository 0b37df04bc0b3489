package model

// Answer is one recorded selection for a question within a (session, phase).
// Submission replaces the whole set for that pair, never appends to it.
type Answer struct {
	BaseModel
	SessionID      string    `gorm:"size:36;not null;index:idx_answers_session_phase" json:"sessionId"`
	Phase          QuizPhase `gorm:"size:8;not null;index:idx_answers_session_phase" json:"phase"`
	QuestionKey    string    `gorm:"size:64;not null" json:"questionKey"`
	SelectedOption string    `gorm:"size:1;not null" json:"selectedOption"`
	IsCorrect      bool      `gorm:"not null" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "answers"
}

// AnswerDetail is the scoring detail for one question, phrased for the
// result and recommendation views rather than for storage.
type AnswerDetail struct {
	Question  Question `json:"question"`
	Selected  string   `json:"selected"`
	IsCorrect bool     `json:"isCorrect"`
}
