package repository

import (
	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ListByCategory returns the canonical ordered question set for a phase.
func (r *QuestionRepository) ListByCategory(category model.QuizPhase) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("category = ?", category).Order("sort_order asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Order("category asc, sort_order asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Question{}).Count(&n).Error
	return n, err
}

// Upsert inserts or updates by the (category, key) natural key.
func (r *QuestionRepository) Upsert(q *model.Question) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"question_text", "option_a", "option_b", "option_c",
			"correct_option", "explanation", "topic_tag", "sort_order", "updated_at",
		}),
	}).Create(q).Error
}

// Delete removes the row outright so the (category, key) pair can be
// re-created later without tripping the unique index.
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Question{}, id).Error
}
