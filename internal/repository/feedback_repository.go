package repository

import (
	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// Replace keeps at most one survey row per session.
func (r *FeedbackRepository) Replace(fb *model.Feedback) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("session_id = ?", fb.SessionID).
			Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Create(fb).Error
	})
}
