package repository

import (
	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) FindByUsername(username string) (*model.Admin, error) {
	var a model.Admin
	err := r.DB.Where("username = ?", username).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Admin{}).Count(&n).Error
	return n, err
}

func (r *AdminRepository) Create(a *model.Admin) error {
	return r.DB.Create(a).Error
}
