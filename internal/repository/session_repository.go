package repository

import (
	"time"

	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindBySessionID(sessionID string) (*model.LearnerSession, error) {
	var s model.LearnerSession
	err := r.DB.Where("session_id = ?", sessionID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Ensure creates the session row on first contact; repeat calls are no-ops.
func (r *SessionRepository) Ensure(sessionID string) error {
	var s model.LearnerSession
	err := r.DB.Where("session_id = ?", sessionID).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&model.LearnerSession{SessionID: sessionID}).Error
	}
	return err
}

func (r *SessionRepository) UpdatePreScore(tx *gorm.DB, sessionID string, score int) error {
	return tx.Model(&model.LearnerSession{}).
		Where("session_id = ?", sessionID).
		Update("pre_score", score).Error
}

// CompletePost records the post score, improvement against pre (missing pre
// counts as 0) and the completion timestamp.
func (r *SessionRepository) CompletePost(tx *gorm.DB, sessionID string, score int) error {
	var s model.LearnerSession
	if err := tx.Where("session_id = ?", sessionID).First(&s).Error; err != nil {
		return err
	}

	pre := 0
	if s.PreScore != nil {
		pre = *s.PreScore
	}
	improvement := score - pre
	now := time.Now()

	return tx.Model(&model.LearnerSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"post_score":   score,
			"improvement":  improvement,
			"completed_at": now,
		}).Error
}

// Aggregates computes the team rollup at read time from the raw rows. The
// shield level derivation deliberately has no stored counterpart to drift
// from.
func (r *SessionRepository) Aggregates() (model.SessionAggregates, error) {
	var out model.SessionAggregates

	if err := r.DB.Model(&model.LearnerSession{}).Count(&out.SessionsCount).Error; err != nil {
		return out, err
	}
	if err := r.DB.Model(&model.LearnerSession{}).
		Where("completed_at IS NOT NULL").
		Count(&out.CompletedCount).Error; err != nil {
		return out, err
	}

	var avg *float64
	if err := r.DB.Model(&model.LearnerSession{}).
		Where("improvement IS NOT NULL").
		Select("AVG(improvement)").
		Scan(&avg).Error; err != nil {
		return out, err
	}
	if avg != nil {
		out.AvgImprovement = *avg
	}

	return out, nil
}

// ListForExport returns every session row, newest first.
func (r *SessionRepository) ListForExport() ([]model.LearnerSession, error) {
	var ss []model.LearnerSession
	err := r.DB.Order("id desc").Find(&ss).Error
	return ss, err
}
