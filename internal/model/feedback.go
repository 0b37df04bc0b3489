package model

// Feedback is the post-course survey, one row per session (replaced on resubmit).
type Feedback struct {
	BaseModel
	SessionID string `gorm:"size:36;uniqueIndex;not null" json:"sessionId"`
	Q1        string `gorm:"size:64;not null" json:"q1"`
	Q2        string `gorm:"size:64;not null" json:"q2"`
	Q3        string `gorm:"size:64;not null" json:"q3"`
	Q4        string `gorm:"size:64;not null" json:"q4"`
	Comment   string `gorm:"size:500" json:"comment"`
}

func (Feedback) TableName() string {
	return "feedback"
}
