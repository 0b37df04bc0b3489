package service

import (
	"encoding/json"

	"cybersafe_backend/internal/content"
	"cybersafe_backend/internal/game"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"
	"cybersafe_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// GameService delivers red-flag game content and turns finished playthroughs
// into stored quiz-equivalent answers.
type GameService struct {
	ModuleRepo  *repository.ModuleRepository
	SessionRepo *repository.SessionRepository
	AnswerRepo  *repository.AnswerRepository
	Seed        *content.Seed
	DB          *gorm.DB
}

func NewGameService(
	moduleRepo *repository.ModuleRepository,
	sessionRepo *repository.SessionRepository,
	answerRepo *repository.AnswerRepository,
	seed *content.Seed,
	db *gorm.DB,
) *GameService {
	return &GameService{
		ModuleRepo:  moduleRepo,
		SessionRepo: sessionRepo,
		AnswerRepo:  answerRepo,
		Seed:        seed,
		DB:          db,
	}
}

// GameView is a playthrough plus its place in the course flow.
type GameView struct {
	Game     content.Game `json:"game"`
	Phase    string       `json:"phase"`
	Progress StepProgress `json:"progress"`
}

// GetGame returns the playthrough for a phase. The pre game is step 1 of the
// flow, the post game comes after the last story module.
func (s *GameService) GetGame(phase string) (GameView, error) {
	g, ok := s.Seed.Game(phase)
	if !ok {
		return GameView{}, util.ErrGameNotFound
	}

	total, err := s.ModuleRepo.Count()
	if err != nil {
		return GameView{}, err
	}

	step := 1
	if phase == "post" {
		step = int(total) + 2
	}

	return GameView{
		Game:     g,
		Phase:    phase,
		Progress: BuildProgress(step, int(total)),
	}, nil
}

// GameSubmission is the client payload for a finished playthrough. Events,
// when present, are the click log and take precedence over the self-reported
// tallies: the result is recomputed server-side by replaying them.
type GameSubmission struct {
	Score  json.RawMessage            `json:"score"`
	Max    json.RawMessage            `json:"max"`
	Miss   json.RawMessage            `json:"miss"`
	Topics map[string]json.RawMessage `json:"topics"`
	Events []game.Event               `json:"events"`
}

// intField reads a numeric JSON field, treating anything absent or
// malformed as zero.
func intField(raw json.RawMessage) int {
	var n float64
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	return int(n)
}

// ParseResults normalizes a self-reported playthrough into a Result. It
// never fails: missing or malformed fields read as zero, tallies are
// clamped to non-negative with found capped at total, and score/max are
// recomputed from the tallies. When the tallies carry no total at all the
// payload's own numbers are used instead, with max falling back to score.
// An empty submission is simply an all-zero result.
func ParseResults(sub GameSubmission) game.Result {
	res := game.Result{Topics: map[string]game.TopicTally{}}

	for tag, raw := range sub.Topics {
		var t game.TopicTally
		if err := json.Unmarshal(raw, &t); err != nil {
			t = game.TopicTally{}
		}
		if t.Total < 0 {
			t.Total = 0
		}
		if t.Found < 0 {
			t.Found = 0
		}
		if t.Found > t.Total {
			t.Found = t.Total
		}
		res.Topics[tag] = t
		res.Score += t.Found
		res.Max += t.Total
	}

	if res.Max == 0 {
		if score := intField(sub.Score); score > 0 {
			res.Score = score
		}
		if max := intField(sub.Max); max > 0 {
			res.Max = max
		} else {
			res.Max = res.Score
		}
	}

	if miss := intField(sub.Miss); miss > 0 {
		res.Miss = miss
	}

	return res
}

// DetailsFromTopics maps topic tallies onto the answer-detail shape the
// result page consumes: one row per topic with anything found, correct when
// every flag in the topic was spotted.
func DetailsFromTopics(topics map[string]game.TopicTally) []model.AnswerDetail {
	var details []model.AnswerDetail
	for tag, t := range topics {
		if t.Total <= 0 {
			continue
		}
		details = append(details, model.AnswerDetail{
			Question:  model.Question{Key: tag, TopicTag: tag},
			Selected:  "A",
			IsCorrect: t.Found >= t.Total,
		})
	}
	return details
}

// SubmitGame stores a finished playthrough for (session, phase). When a
// click log is supplied the tallies are replayed and must reach a real
// finish; without one the self-reported numbers are normalized and taken
// at face value. Per-topic outcomes land in the answers table keyed by
// topic tag so the aggregator treats game and quiz phases alike.
func (s *GameService) SubmitGame(sessionID string, phase model.QuizPhase, sub GameSubmission) (game.Result, error) {
	if !phase.Valid() {
		return game.Result{}, util.ErrUnknownPhase
	}

	var res game.Result
	if len(sub.Events) > 0 {
		g, ok := s.Seed.Game(string(phase))
		if !ok {
			return game.Result{}, util.ErrGameNotFound
		}
		res, ok = game.Replay(g.Scenes, sub.Events)
		if !ok {
			return game.Result{}, util.ErrInvalidGameResult
		}
	} else {
		res = ParseResults(sub)
	}

	rows := make([]model.Answer, 0, len(res.Topics))
	for _, d := range DetailsFromTopics(res.Topics) {
		rows = append(rows, model.Answer{
			SessionID:      sessionID,
			Phase:          phase,
			QuestionKey:    d.Question.Key,
			SelectedOption: d.Selected,
			IsCorrect:      d.IsCorrect,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.AnswerRepo.Replace(tx, sessionID, phase, rows); err != nil {
			return err
		}
		if phase == model.PhasePre {
			return s.SessionRepo.UpdatePreScore(tx, sessionID, res.Score)
		}
		return s.SessionRepo.CompletePost(tx, sessionID, res.Score)
	})
	if err != nil {
		return game.Result{}, err
	}

	monitoring.PhaseSubmissions.WithLabelValues("game", string(phase)).Inc()
	return res, nil
}
