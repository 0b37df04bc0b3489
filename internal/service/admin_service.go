package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"
)

// AdminService drives the back office: dashboard stats, content CRUD with
// audit trail, and the raw session export. In demo mode every write is
// refused before it touches a repository.
type AdminService struct {
	QuestionRepo *repository.QuestionRepository
	ModuleRepo   *repository.ModuleRepository
	SessionRepo  *repository.SessionRepository
	AnswerRepo   *repository.AnswerRepository
	AuditRepo    *repository.AuditRepository
	Cfg          *config.Config
}

func NewAdminService(
	questionRepo *repository.QuestionRepository,
	moduleRepo *repository.ModuleRepository,
	sessionRepo *repository.SessionRepository,
	answerRepo *repository.AnswerRepository,
	auditRepo *repository.AuditRepository,
	cfg *config.Config,
) *AdminService {
	return &AdminService{
		QuestionRepo: questionRepo,
		ModuleRepo:   moduleRepo,
		SessionRepo:  sessionRepo,
		AnswerRepo:   answerRepo,
		AuditRepo:    auditRepo,
		Cfg:          cfg,
	}
}

func (s *AdminService) guardWrite() error {
	if s.Cfg.Admin.DemoMode {
		return util.ErrDemoReadOnly
	}
	return nil
}

// ReadOnly reports whether the back office refuses writes (demo mode).
func (s *AdminService) ReadOnly() bool {
	return s.Cfg.Admin.DemoMode
}

// Dashboard is the admin landing view.
type Dashboard struct {
	Aggregates model.SessionAggregates  `json:"aggregates"`
	TopWrong   []repository.TopWrongRow `json:"topWrong"`
	Audit      []model.AuditLog         `json:"audit"`
	DemoMode   bool                     `json:"demoMode"`
}

func (s *AdminService) Dashboard() (Dashboard, error) {
	agg, err := s.SessionRepo.Aggregates()
	if err != nil {
		return Dashboard{}, err
	}
	wrong, err := s.AnswerRepo.TopWrong(5)
	if err != nil {
		return Dashboard{}, err
	}
	audit, err := s.AuditRepo.Recent(10)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Aggregates: agg, TopWrong: wrong, Audit: audit, DemoMode: s.Cfg.Admin.DemoMode}, nil
}

func (s *AdminService) ListQuestions() ([]model.Question, error) {
	return s.QuestionRepo.ListAll()
}

func validateQuestion(q *model.Question) error {
	if !q.Category.Valid() {
		return fmt.Errorf("category must be pre or post")
	}
	if strings.TrimSpace(q.Key) == "" {
		return fmt.Errorf("key must not be empty")
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		return fmt.Errorf("question text must not be empty")
	}
	if q.OptionA == "" || q.OptionB == "" || q.OptionC == "" {
		return fmt.Errorf("all three options are required")
	}
	if !model.ValidOption(q.CorrectOption) {
		return fmt.Errorf("correct option must be A, B or C")
	}
	return nil
}

// SaveQuestion creates or replaces a question on its (category, key) and
// records who did it.
func (s *AdminService) SaveQuestion(adminUser string, q *model.Question) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	if err := validateQuestion(q); err != nil {
		return err
	}
	if err := s.QuestionRepo.Upsert(q); err != nil {
		return err
	}
	s.AuditRepo.Log(adminUser, "question_save", fmt.Sprintf("%s/%s", q.Category, q.Key))
	return nil
}

func (s *AdminService) DeleteQuestion(adminUser string, id uint) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return err
	}
	s.AuditRepo.Log(adminUser, "question_delete", fmt.Sprintf("id=%d", id))
	return nil
}

func (s *AdminService) ListModules() ([]model.CourseModule, error) {
	return s.ModuleRepo.ListOrdered()
}

func validateModule(m *model.CourseModule) error {
	if strings.TrimSpace(m.Slug) == "" {
		return fmt.Errorf("slug must not be empty")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if strings.TrimSpace(m.Story) == "" {
		return fmt.Errorf("story must not be empty")
	}
	return nil
}

// SaveModule creates or replaces a story module on its slug.
func (s *AdminService) SaveModule(adminUser string, m *model.CourseModule) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	if err := validateModule(m); err != nil {
		return err
	}
	if err := s.ModuleRepo.Upsert(m); err != nil {
		return err
	}
	s.AuditRepo.Log(adminUser, "module_save", m.Slug)
	return nil
}

func (s *AdminService) DeleteModule(adminUser string, id uint) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	if err := s.ModuleRepo.Delete(id); err != nil {
		return err
	}
	s.AuditRepo.Log(adminUser, "module_delete", fmt.Sprintf("id=%d", id))
	return nil
}

// SetModuleImage points a module at an uploaded illustration.
func (s *AdminService) SetModuleImage(adminUser string, id uint, url string) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	if _, err := s.ModuleRepo.FindByID(id); err != nil {
		return err
	}
	if err := s.ModuleRepo.UpdateImage(id, url); err != nil {
		return err
	}
	s.AuditRepo.Log(adminUser, "module_image", fmt.Sprintf("id=%d %s", id, url))
	return nil
}

// ExportSessionsCSV renders every session as CSV, newest first. No session
// identifier appears in the export; rows are anonymous by construction.
func (s *AdminService) ExportSessionsCSV(adminUser string) ([]byte, error) {
	sessions, err := s.SessionRepo.ListForExport()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"created_at", "pre_score", "post_score", "improvement", "completed_at"})

	for _, sess := range sessions {
		w.Write([]string{
			sess.CreatedAt.Format(time.RFC3339),
			intPtrField(sess.PreScore),
			intPtrField(sess.PostScore),
			intPtrField(sess.Improvement),
			timePtrField(sess.CompletedAt),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(adminUser, "export_csv", fmt.Sprintf("%d rows", len(sessions)))
	return buf.Bytes(), nil
}

func intPtrField(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}

func timePtrField(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format(time.RFC3339)
}
