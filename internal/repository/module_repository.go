package repository

import (
	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) ListOrdered() ([]model.CourseModule, error) {
	var ms []model.CourseModule
	err := r.DB.Order("sort_order asc").Find(&ms).Error
	return ms, err
}

func (r *ModuleRepository) FindByID(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *ModuleRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.CourseModule{}).Count(&n).Error
	return n, err
}

// Upsert inserts or updates by slug.
func (r *ModuleRepository) Upsert(m *model.CourseModule) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "story", "correct_action", "tip1", "tip2", "image", "sort_order", "updated_at",
		}),
	}).Create(m).Error
}

func (r *ModuleRepository) UpdateImage(id uint, image string) error {
	return r.DB.Model(&model.CourseModule{}).Where("id = ?", id).Update("image", image).Error
}

// Delete removes the row outright so the slug can be re-created later
// without tripping the unique index.
func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.CourseModule{}, id).Error
}
