package service

import (
	"errors"

	"cybersafe_backend/internal/content"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"
	"cybersafe_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// CourseService serves the learner-facing course flow: landing data, story
// modules, quiz delivery, scoring and submission, and the final result view.
type CourseService struct {
	ModuleRepo   *repository.ModuleRepository
	QuestionRepo *repository.QuestionRepository
	SessionRepo  *repository.SessionRepository
	AnswerRepo   *repository.AnswerRepository
	Progress     *ProgressService
	Seed         *content.Seed
	DB           *gorm.DB
}

func NewCourseService(
	moduleRepo *repository.ModuleRepository,
	questionRepo *repository.QuestionRepository,
	sessionRepo *repository.SessionRepository,
	answerRepo *repository.AnswerRepository,
	progress *ProgressService,
	seed *content.Seed,
	db *gorm.DB,
) *CourseService {
	return &CourseService{
		ModuleRepo:   moduleRepo,
		QuestionRepo: questionRepo,
		SessionRepo:  sessionRepo,
		AnswerRepo:   answerRepo,
		Progress:     progress,
		Seed:         seed,
		DB:           db,
	}
}

// ScoreResult is the outcome of scoring one phase's answer set.
type ScoreResult struct {
	Score   int                  `json:"score"`
	Max     int                  `json:"max"`
	Details []model.AnswerDetail `json:"details"`
}

// ScoreAnswers grades a submitted answer map against the ordered question
// set of a phase. Absent or malformed selections count as incorrect, never
// as errors; the result always carries exactly one detail per question in
// question order, so identical inputs give identical outputs.
func ScoreAnswers(questions []model.Question, answers map[string]string) ScoreResult {
	res := ScoreResult{
		Max:     len(questions),
		Details: make([]model.AnswerDetail, 0, len(questions)),
	}

	for _, q := range questions {
		selected := answers[q.Key]
		isCorrect := model.ValidOption(selected) && selected == q.CorrectOption
		if isCorrect {
			res.Score++
		}
		res.Details = append(res.Details, model.AnswerDetail{
			Question:  q,
			Selected:  selected,
			IsCorrect: isCorrect,
		})
	}

	return res
}

// QuizQuestion is a question as delivered to the learner, with the answer
// key and explanation stripped.
type QuizQuestion struct {
	Key          string `json:"key"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	SortOrder    int    `json:"sortOrder"`
}

// QuizForPhase returns the ordered question set for delivery.
func (s *CourseService) QuizForPhase(phase model.QuizPhase) ([]QuizQuestion, error) {
	if !phase.Valid() {
		return nil, util.ErrUnknownPhase
	}
	qs, err := s.QuestionRepo.ListByCategory(phase)
	if err != nil {
		return nil, err
	}

	out := make([]QuizQuestion, len(qs))
	for i, q := range qs {
		out[i] = QuizQuestion{
			Key:          q.Key,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			SortOrder:    q.SortOrder,
		}
	}
	return out, nil
}

// SubmitQuiz scores a phase and persists the outcome atomically: the prior
// answer set for (session, phase) is replaced and the session score updated
// in one transaction, so resubmission supersedes rather than accumulates.
func (s *CourseService) SubmitQuiz(sessionID string, phase model.QuizPhase, answers map[string]string) (ScoreResult, error) {
	if !phase.Valid() {
		return ScoreResult{}, util.ErrUnknownPhase
	}

	questions, err := s.QuestionRepo.ListByCategory(phase)
	if err != nil {
		return ScoreResult{}, err
	}

	res := ScoreAnswers(questions, answers)

	rows := make([]model.Answer, len(res.Details))
	for i, d := range res.Details {
		selected := d.Selected
		if !model.ValidOption(selected) {
			// Storage keeps the A|B|C constraint of the schema; anything
			// else was already graded incorrect above.
			selected = "A"
		}
		rows[i] = model.Answer{
			SessionID:      sessionID,
			Phase:          phase,
			QuestionKey:    d.Question.Key,
			SelectedOption: selected,
			IsCorrect:      d.IsCorrect,
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.AnswerRepo.Replace(tx, sessionID, phase, rows); err != nil {
			return err
		}
		if phase == model.PhasePre {
			return s.SessionRepo.UpdatePreScore(tx, sessionID, res.Score)
		}
		return s.SessionRepo.CompletePost(tx, sessionID, res.Score)
	})
	if err != nil {
		return ScoreResult{}, err
	}

	monitoring.PhaseSubmissions.WithLabelValues("quiz", string(phase)).Inc()
	return res, nil
}

// Landing bundles the landing page data.
type Landing struct {
	Course  content.Course       `json:"course"`
	Modules []model.CourseModule `json:"modules"`
	Team    TeamProgress         `json:"team"`
}

func (s *CourseService) Landing() (Landing, error) {
	modules, err := s.ModuleRepo.ListOrdered()
	if err != nil {
		return Landing{}, err
	}
	team, err := s.Progress.TeamProgress()
	if err != nil {
		return Landing{}, err
	}
	return Landing{Course: s.Seed.Course, Modules: modules, Team: team}, nil
}

// ModuleStep is one story module with its place in the flow.
type ModuleStep struct {
	Module   model.CourseModule `json:"module"`
	Step     int                `json:"step"`
	Total    int                `json:"total"`
	Progress StepProgress       `json:"progress"`
}

// ModuleByStep returns the module for a 1-based step. The module occupies
// step+1 in the overall flow because the pre-test comes first.
func (s *CourseService) ModuleByStep(step int) (ModuleStep, error) {
	modules, err := s.ModuleRepo.ListOrdered()
	if err != nil {
		return ModuleStep{}, err
	}
	if step < 1 || step > len(modules) {
		return ModuleStep{}, util.ErrStepOutOfRange
	}

	return ModuleStep{
		Module:   modules[step-1],
		Step:     step,
		Total:    len(modules),
		Progress: BuildProgress(step+1, len(modules)),
	}, nil
}

// ResultView is everything the result page shows.
type ResultView struct {
	Session         *model.LearnerSession `json:"session"`
	Recommendations []string              `json:"recommendations"`
	Badges          []Badge               `json:"badges"`
	Team            TeamProgress          `json:"team"`
	Progress        StepProgress          `json:"progress"`
}

// Result assembles the final view from the stored post-phase answers. It is
// unavailable until the post phase has been submitted.
func (s *CourseService) Result(sessionID string) (ResultView, error) {
	sess, err := s.SessionRepo.FindBySessionID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ResultView{}, util.ErrNotCompleted
	}
	if err != nil {
		return ResultView{}, err
	}
	if sess.PostScore == nil {
		return ResultView{}, util.ErrNotCompleted
	}

	questions, err := s.QuestionRepo.ListByCategory(model.PhasePost)
	if err != nil {
		return ResultView{}, err
	}
	byKey := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byKey[q.Key] = q
	}

	rows, err := s.AnswerRepo.ListByPhase(sessionID, model.PhasePost)
	if err != nil {
		return ResultView{}, err
	}

	details := make([]model.AnswerDetail, 0, len(rows))
	var wrong []model.AnswerDetail
	for _, a := range rows {
		q, ok := byKey[a.QuestionKey]
		if !ok {
			// Game submissions store topic tags as keys; keep the tag so
			// recommendations and badges still see it.
			q = model.Question{Key: a.QuestionKey, TopicTag: a.QuestionKey}
		}
		d := model.AnswerDetail{Question: q, Selected: a.SelectedOption, IsCorrect: a.IsCorrect}
		details = append(details, d)
		if !d.IsCorrect {
			wrong = append(wrong, d)
		}
	}

	team, err := s.Progress.TeamProgress()
	if err != nil {
		return ResultView{}, err
	}

	modules, err := s.ModuleRepo.ListOrdered()
	if err != nil {
		return ResultView{}, err
	}
	totalSteps := len(modules) + 2

	return ResultView{
		Session:         sess,
		Recommendations: RecommendationsByTopics(wrong),
		Badges:          Badges(details),
		Team:            team,
		Progress:        StepProgress{Progress: 100, StepIndex: totalSteps, TotalSteps: totalSteps},
	}, nil
}

// HomeTips returns the take-home advice list.
func (s *CourseService) HomeTips() []string {
	return s.Seed.Course.HomeTips
}
