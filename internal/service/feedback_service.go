package service

import (
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"
)

// FeedbackService validates and stores the post-course survey.
type FeedbackService struct {
	FeedbackRepo *repository.FeedbackRepository
}

func NewFeedbackService(repo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{FeedbackRepo: repo}
}

// feedbackOptions are the only accepted answers per survey question,
// matching the choices the UI renders.
var feedbackOptions = map[string][]string{
	"q1": {"Velmi užitečný", "Spíše užitečný", "Spíše méně", "Nepřínosný"},
	"q2": {"Velmi srozumitelný", "Spíše srozumitelný", "Místy nejasný", "Těžko srozumitelný"},
	"q3": {"Velmi reálné", "Spíše reálné", "Spíše umělé", "Nereálné"},
	"q4": {"Klikací scénáře", "Krátké moduly", "Oboje", "Nevyhovuje"},
}

func allowedOption(question, value string) bool {
	for _, opt := range feedbackOptions[question] {
		if opt == value {
			return true
		}
	}
	return false
}

// FeedbackInput is the client payload for the survey.
type FeedbackInput struct {
	Q1      string `json:"q1"`
	Q2      string `json:"q2"`
	Q3      string `json:"q3"`
	Q4      string `json:"q4"`
	Comment string `json:"comment"`
}

// Submit validates against the option whitelists and stores the survey,
// replacing any prior submission from the same session.
func (s *FeedbackService) Submit(sessionID string, in FeedbackInput) error {
	if !allowedOption("q1", in.Q1) || !allowedOption("q2", in.Q2) ||
		!allowedOption("q3", in.Q3) || !allowedOption("q4", in.Q4) {
		return util.ErrInvalidFeedback
	}
	if len([]rune(in.Comment)) > 500 {
		return util.ErrInvalidFeedback
	}

	return s.FeedbackRepo.Replace(&model.Feedback{
		SessionID: sessionID,
		Q1:        in.Q1,
		Q2:        in.Q2,
		Q3:        in.Q3,
		Q4:        in.Q4,
		Comment:   in.Comment,
	})
}
