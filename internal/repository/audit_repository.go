package repository

import (
	"cybersafe_backend/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Log(username, action, detail string) error {
	return r.DB.Create(&model.AuditLog{
		AdminUsername: username,
		Action:        action,
		Detail:        detail,
	}).Error
}

func (r *AuditRepository) Recent(limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.DB.Order("id desc").Limit(limit).Find(&logs).Error
	return logs, err
}
