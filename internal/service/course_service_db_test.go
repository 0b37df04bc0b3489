package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite") + "?_journal_mode=WAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = db.AutoMigrate(&model.LearnerSession{}, &model.Question{}, &model.Answer{}, &model.CourseModule{})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func courseServiceOver(db *gorm.DB) *CourseService {
	sessionRepo := repository.NewSessionRepository(db)
	return NewCourseService(
		repository.NewModuleRepository(db),
		repository.NewQuestionRepository(db),
		sessionRepo,
		repository.NewAnswerRepository(db),
		NewProgressService(sessionRepo),
		nil,
		db,
	)
}

func TestResultUnknownSessionNotCompleted(t *testing.T) {
	svc := courseServiceOver(openServiceDB(t))

	_, err := svc.Result("44444444-4444-4444-4444-444444444444")
	if !errors.Is(err, util.ErrNotCompleted) {
		t.Fatalf("err = %v, want ErrNotCompleted", err)
	}
}

func TestResultPendingPostNotCompleted(t *testing.T) {
	db := openServiceDB(t)
	svc := courseServiceOver(db)
	sid := "55555555-5555-5555-5555-555555555555"

	pre := 3
	if err := db.Create(&model.LearnerSession{SessionID: sid, PreScore: &pre}).Error; err != nil {
		t.Fatal(err)
	}

	_, err := svc.Result(sid)
	if !errors.Is(err, util.ErrNotCompleted) {
		t.Fatalf("err = %v, want ErrNotCompleted", err)
	}
}

func TestResultPropagatesStorageFailure(t *testing.T) {
	db := openServiceDB(t)
	svc := courseServiceOver(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Result("66666666-6666-6666-6666-666666666666")
	if err == nil {
		t.Fatal("expected an error from a closed database")
	}
	if errors.Is(err, util.ErrNotCompleted) {
		t.Fatalf("storage failure surfaced as ErrNotCompleted: %v", err)
	}
}

func TestResultAfterCompletion(t *testing.T) {
	db := openServiceDB(t)
	svc := courseServiceOver(db)
	sid := "77777777-7777-7777-7777-777777777777"

	pre, post, improvement := 2, 4, 2
	now := time.Now()
	row := model.LearnerSession{
		SessionID:   sid,
		PreScore:    &pre,
		PostScore:   &post,
		Improvement: &improvement,
		CompletedAt: &now,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatal(err)
	}
	// no question row for the key, so the topic tag falls back to the key
	if err := db.Create(&model.Answer{
		SessionID: sid, Phase: model.PhasePost,
		QuestionKey: "phishing", SelectedOption: "A", IsCorrect: false,
	}).Error; err != nil {
		t.Fatal(err)
	}

	view, err := svc.Result(sid)
	if err != nil {
		t.Fatal(err)
	}
	if view.Session == nil || view.Session.PostScore == nil || *view.Session.PostScore != post {
		t.Fatalf("session not carried into the view: %+v", view.Session)
	}
	if len(view.Recommendations) == 0 {
		t.Fatal("a wrong post answer should produce a recommendation")
	}
}
