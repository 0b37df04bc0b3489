package model

import "time"

// LearnerSession is one anonymous learner's pass through the course.
// Scores stay NULL until the matching phase has been submitted;
// Improvement = post − pre and may be negative.
type LearnerSession struct {
	BaseModel
	SessionID   string     `gorm:"size:36;uniqueIndex;not null" json:"sessionId"`
	PreScore    *int       `json:"preScore"`
	PostScore   *int       `json:"postScore"`
	Improvement *int       `json:"improvement"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LearnerSession) TableName() string {
	return "sessions"
}

// SessionAggregates holds the read-time rollup the team shield is derived from.
type SessionAggregates struct {
	SessionsCount  int64   `json:"sessionsCount"`
	CompletedCount int64   `json:"completedCount"`
	AvgImprovement float64 `json:"avgImprovement"`
}
