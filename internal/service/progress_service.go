package service

import (
	"math"

	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
)

// ProgressService derives step progress, study recommendations, badges and
// the team shield. Everything here is a pure read-time derivation; nothing
// is ever written back.
type ProgressService struct {
	SessionRepo *repository.SessionRepository
}

func NewProgressService(sessionRepo *repository.SessionRepository) *ProgressService {
	return &ProgressService{SessionRepo: sessionRepo}
}

// StepProgress locates one step within the pre-test → modules → post-test flow.
type StepProgress struct {
	Progress   int `json:"progress"`
	StepIndex  int `json:"stepIndex"`
	TotalSteps int `json:"totalSteps"`
}

// BuildProgress computes the progress for a 1-based step. Total steps are
// the modules plus the two tests bracketing them.
func BuildProgress(stepIndex, totalModules int) StepProgress {
	totalSteps := totalModules + 2
	progress := int(math.Round(float64(stepIndex-1) / float64(totalSteps) * 100))
	return StepProgress{
		Progress:   progress,
		StepIndex:  stepIndex,
		TotalSteps: totalSteps,
	}
}

// recommendationTable maps topic tags of wrongly answered questions to
// remediation advice. Tags without an entry are dropped silently.
var recommendationTable = map[string]string{
	"phishing":  "Procvič modul „Phishing e-mail“. Zaměř se na kontrolu domény a nátlak v textu.",
	"vishing":   "Procvič modul „Vishing“. Nikdy nesděluj hesla ani SMS kódy po telefonu.",
	"usb":       "Procvič modul „USB zařízení“. Neznámé USB nepřipojuj a hned hlaste incident.",
	"shared_pc": "Procvič modul „Sdílený počítač“. Zamykat obrazovku při každém odchodu.",
	"passwords": "Posil hesla: dlouhá věta + jedinečné heslo pro každý účet.",
	"privacy":   "Ochrana soukromí zákazníků: méně sdílet, nemluvit nahlas, nepoužívat soukromý mobil.",
	"mobile":    "Bezpečný mobil: aktualizace + 2FA + opatrnost u odkazů.",
}

// RecommendationsByTopics returns one remediation string per distinct topic
// among the wrong answers, in first-occurrence order.
func RecommendationsByTopics(wrongDetails []model.AnswerDetail) []string {
	var out []string
	seen := map[string]bool{}
	for _, d := range wrongDetails {
		tag := d.Question.TopicTag
		if seen[tag] {
			continue
		}
		seen[tag] = true
		if rec, ok := recommendationTable[tag]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Badge is one earned award on the result page.
type Badge struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// FlawlessTag marks the full-score badge, always listed first.
const FlawlessTag = "flawless"

var badgeLabels = map[string]string{
	FlawlessTag: "Bez jediné chyby",
	"phishing":  "Lovec phishingu",
	"vishing":   "Nerozhodí mě telefon",
	"usb":       "USB nechávám být",
	"shared_pc": "Obrazovka vždy zamčená",
	"passwords": "Silná hesla",
	"privacy":   "Strážce soukromí",
	"mobile":    "Bezpečný mobil",
}

// Badges awards one badge per topic where every answer for that topic was
// correct, plus the flawless badge for a perfect non-empty result. A single
// wrong answer flips a topic off for good; later correct answers for the
// same topic cannot flip it back.
func Badges(details []model.AnswerDetail) []Badge {
	if len(details) == 0 {
		return nil
	}

	perTopic := map[string]bool{}
	var order []string
	allCorrect := true

	for _, d := range details {
		tag := d.Question.TopicTag
		if _, ok := perTopic[tag]; !ok {
			perTopic[tag] = true
			order = append(order, tag)
		}
		if !d.IsCorrect {
			perTopic[tag] = false
			allCorrect = false
		}
	}

	var out []Badge
	if allCorrect {
		out = append(out, makeBadge(FlawlessTag))
	}
	for _, tag := range order {
		if perTopic[tag] {
			out = append(out, makeBadge(tag))
		}
	}
	return out
}

func makeBadge(tag string) Badge {
	label := badgeLabels[tag]
	if label == "" {
		label = tag
	}
	return Badge{
		Tag:   tag,
		Label: label,
		Icon:  "/static/badges/" + tag + ".svg",
	}
}

// TeamProgress is the organization-wide gamification rollup.
type TeamProgress struct {
	SessionsCount  int64   `json:"sessionsCount"`
	CompletedCount int64   `json:"completedCount"`
	AvgImprovement float64 `json:"avgImprovement"`
	CompletionRate float64 `json:"completionRate"`
	ShieldScore    int     `json:"shieldScore"`
	Level          int     `json:"level"`
}

// shieldTiers is the descending threshold table for the team level. Both
// conditions of a tier must hold; otherwise evaluation falls through.
var shieldTiers = []struct {
	level          int
	completionRate float64
	avgImprovement float64
}{
	{5, 0.7, 2.5},
	{4, 0.55, 2},
	{3, 0.4, 1.5},
	{2, 0.25, 1},
}

// ComputeTeamProgress derives the shield from raw aggregates. Improvement is
// capped at 3 points before it is weighed in, so one outlier cohort cannot
// saturate the score.
func ComputeTeamProgress(agg model.SessionAggregates) TeamProgress {
	completionRate := 0.0
	if agg.SessionsCount > 0 {
		completionRate = float64(agg.CompletedCount) / float64(agg.SessionsCount)
	}

	improvementScore := math.Min(agg.AvgImprovement, 3) / 3

	shield := int(math.Round((completionRate*0.6 + improvementScore*0.4) * 100))

	level := 1
	for _, tier := range shieldTiers {
		if completionRate >= tier.completionRate && agg.AvgImprovement >= tier.avgImprovement {
			level = tier.level
			break
		}
	}

	return TeamProgress{
		SessionsCount:  agg.SessionsCount,
		CompletedCount: agg.CompletedCount,
		AvgImprovement: agg.AvgImprovement,
		CompletionRate: completionRate,
		ShieldScore:    shield,
		Level:          level,
	}
}

// TeamProgress recomputes the rollup from the stored rows on every call.
// There is deliberately no cached or incrementally maintained counterpart
// that could drift from the source data.
func (s *ProgressService) TeamProgress() (TeamProgress, error) {
	agg, err := s.SessionRepo.Aggregates()
	if err != nil {
		return TeamProgress{}, err
	}
	return ComputeTeamProgress(agg), nil
}
