package repository

import (
	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Replace swaps the full answer set for a (session, phase) inside the
// caller's transaction, so a reader never sees a partial set.
func (r *AnswerRepository) Replace(tx *gorm.DB, sessionID string, phase model.QuizPhase, answers []model.Answer) error {
	if err := tx.Unscoped().Where("session_id = ? AND phase = ?", sessionID, phase).
		Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}

func (r *AnswerRepository) ListByPhase(sessionID string, phase model.QuizPhase) ([]model.Answer, error) {
	var as []model.Answer
	err := r.DB.Where("session_id = ? AND phase = ?", sessionID, phase).
		Order("id asc").Find(&as).Error
	return as, err
}

// TopWrongRow is one entry of the most-missed ranking.
type TopWrongRow struct {
	QuestionKey string `json:"questionKey"`
	Mistakes    int64  `json:"mistakes"`
}

// TopWrong ranks post-phase questions by how often they were answered wrong.
func (r *AnswerRepository) TopWrong(limit int) ([]TopWrongRow, error) {
	var rows []TopWrongRow
	err := r.DB.Model(&model.Answer{}).
		Select("question_key, COUNT(*) as mistakes").
		Where("phase = ? AND is_correct = ?", model.PhasePost, false).
		Group("question_key").
		Order("mistakes desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
