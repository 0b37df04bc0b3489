// Creates or replaces a back-office admin account.
//
// Bootstrap normally happens on first start via admin.bootstrap_password;
// this script is for adding further accounts or rotating a password.
//
// Usage: go run scripts/create_admin.go <username> <password>

package main

import (
	"fmt"
	"log"
	"os"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/util"
	"cybersafe_backend/pkg/database"
	"cybersafe_backend/pkg/logger"

	"gorm.io/gorm/clause"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/create_admin.go <username> <password>")
		os.Exit(2)
	}
	username, password := os.Args[1], os.Args[2]

	if len(password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := model.Admin{Username: username, PasswordHash: hash}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(&admin).Error
	if err != nil {
		log.Fatalf("failed to save admin: %v", err)
	}

	fmt.Printf("admin account %q is ready\n", username)
}
