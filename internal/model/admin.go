package model

// Admin is a back-office account. Passwords are stored as encoded
// argon2id hashes, never in clear.
type Admin struct {
	BaseModel
	Username     string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}

// AuditLog records every admin action, including logins.
type AuditLog struct {
	BaseModel
	AdminUsername string `gorm:"size:64;not null" json:"adminUsername"`
	Action        string `gorm:"size:64;not null" json:"action"`
	Detail        string `gorm:"type:text;not null" json:"detail"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
