package database

import (
	"log"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/content"
	"cybersafe_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// InitDB opens the single SQLite file and migrates the schema. WAL keeps
// reads from blocking the submission transactions.
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.Path + "?_journal_mode=WAL&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.CourseModule{},
		&model.Question{},
		&model.LearnerSession{},
		&model.Answer{},
		&model.Admin{},
		&model.AuditLog{},
		&model.Feedback{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// SeedContent loads the authored modules and questions into the DB. Empty
// tables are always filled; existing rows are only overwritten when force
// is set (the --reseed flag), so admin edits survive restarts.
func SeedContent(db *gorm.DB, seed *content.Seed, force bool) error {
	var moduleCount, questionCount int64
	if err := db.Model(&model.CourseModule{}).Count(&moduleCount).Error; err != nil {
		return err
	}
	if err := db.Model(&model.Question{}).Count(&questionCount).Error; err != nil {
		return err
	}

	wantModules := force || moduleCount == 0
	wantQuestions := force || questionCount == 0
	if !wantModules && !wantQuestions {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if wantModules {
			for i, m := range seed.Modules {
				row := model.CourseModule{
					Slug:          m.Slug,
					Title:         m.Title,
					Story:         m.Story,
					CorrectAction: m.CorrectAction,
					Tip1:          m.Tip1,
					Tip2:          m.Tip2,
					Image:         m.Image,
					SortOrder:     i + 1,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "slug"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"title", "story", "correct_action", "tip1", "tip2", "image", "sort_order", "updated_at",
					}),
				}).Create(&row).Error
				if err != nil {
					return err
				}
			}
		}

		if wantQuestions {
			for _, q := range seed.Questions {
				row := model.Question{
					Category:      model.QuizPhase(q.Category),
					Key:           q.Key,
					QuestionText:  q.QuestionText,
					OptionA:       q.OptionA,
					OptionB:       q.OptionB,
					OptionC:       q.OptionC,
					CorrectOption: q.CorrectOption,
					Explanation:   q.Explanation,
					TopicTag:      q.TopicTag,
					SortOrder:     q.SortOrder,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "category"}, {Name: "key"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"question_text", "option_a", "option_b", "option_c",
						"correct_option", "explanation", "topic_tag", "sort_order", "updated_at",
					}),
				}).Create(&row).Error
				if err != nil {
					return err
				}
			}
		}

		return nil
	})
}
