package service

import (
	"testing"

	"cybersafe_backend/internal/model"
)

func detail(topic string, correct bool) model.AnswerDetail {
	return model.AnswerDetail{
		Question:  model.Question{Key: topic + "-q", TopicTag: topic},
		IsCorrect: correct,
	}
}

func TestBuildProgress(t *testing.T) {
	tests := []struct {
		step, modules  int
		wantProgress   int
		wantTotalSteps int
	}{
		{1, 5, 0, 7},
		{3, 5, 29, 7},
		{7, 5, 86, 7},
		{2, 3, 20, 5},
	}

	for _, tt := range tests {
		got := BuildProgress(tt.step, tt.modules)
		if got.Progress != tt.wantProgress || got.TotalSteps != tt.wantTotalSteps || got.StepIndex != tt.step {
			t.Errorf("BuildProgress(%d, %d) = %+v, want progress %d totalSteps %d",
				tt.step, tt.modules, got, tt.wantProgress, tt.wantTotalSteps)
		}
	}
}

func TestRecommendationsByTopics(t *testing.T) {
	wrong := []model.AnswerDetail{
		detail("phishing", false),
		detail("phishing", false),
		detail("usb", false),
	}

	got := RecommendationsByTopics(wrong)
	if len(got) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got))
	}
	if got[0] != recommendationTable["phishing"] || got[1] != recommendationTable["usb"] {
		t.Fatalf("recommendations out of order: %v", got)
	}
}

func TestRecommendationsDropUnknownTopics(t *testing.T) {
	wrong := []model.AnswerDetail{
		detail("quantum", false),
		detail("usb", false),
	}

	got := RecommendationsByTopics(wrong)
	if len(got) != 1 || got[0] != recommendationTable["usb"] {
		t.Fatalf("got %v, want only the usb recommendation", got)
	}
}

func TestRecommendationsEmptyInput(t *testing.T) {
	if got := RecommendationsByTopics(nil); len(got) != 0 {
		t.Fatalf("got %v for no wrong answers", got)
	}
}

func TestBadgesPerTopicAllCorrect(t *testing.T) {
	details := []model.AnswerDetail{
		detail("phishing", true),
		detail("phishing", false),
		detail("usb", true),
	}

	badges := Badges(details)
	for _, b := range badges {
		if b.Tag == "phishing" {
			t.Fatal("phishing badge awarded despite a wrong answer")
		}
	}

	var hasUSB bool
	for _, b := range badges {
		if b.Tag == "usb" {
			hasUSB = true
		}
	}
	if !hasUSB {
		t.Fatal("usb badge missing despite all usb answers correct")
	}
}

func TestBadgesLaterCorrectDoesNotUnflip(t *testing.T) {
	details := []model.AnswerDetail{
		detail("phishing", false),
		detail("phishing", true),
	}
	for _, b := range Badges(details) {
		if b.Tag == "phishing" {
			t.Fatal("a later correct answer revived a lost badge")
		}
	}
}

func TestBadgesFlawlessFirst(t *testing.T) {
	details := []model.AnswerDetail{
		detail("phishing", true),
		detail("usb", true),
	}

	badges := Badges(details)
	if len(badges) != 3 {
		t.Fatalf("got %d badges, want flawless + 2 topics", len(badges))
	}
	if badges[0].Tag != FlawlessTag {
		t.Fatalf("first badge = %q, want %q", badges[0].Tag, FlawlessTag)
	}
}

func TestBadgesEmptyDetails(t *testing.T) {
	if got := Badges(nil); got != nil {
		t.Fatalf("got %v badges for empty details", got)
	}
}

func TestComputeTeamProgress(t *testing.T) {
	tests := []struct {
		name       string
		agg        model.SessionAggregates
		wantLevel  int
		wantShield int
	}{
		{
			name:       "tier five",
			agg:        model.SessionAggregates{SessionsCount: 10, CompletedCount: 7, AvgImprovement: 2.6},
			wantLevel:  5,
			wantShield: 77,
		},
		{
			name:       "tier four on improvement shortfall",
			agg:        model.SessionAggregates{SessionsCount: 10, CompletedCount: 8, AvgImprovement: 2.0},
			wantLevel:  4,
			wantShield: 75,
		},
		{
			name:       "both conditions must hold",
			agg:        model.SessionAggregates{SessionsCount: 10, CompletedCount: 9, AvgImprovement: 0.5},
			wantLevel:  1,
			wantShield: 61,
		},
		{
			name:       "no sessions",
			agg:        model.SessionAggregates{},
			wantLevel:  1,
			wantShield: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTeamProgress(tt.agg)
			if got.Level != tt.wantLevel {
				t.Errorf("level = %d, want %d", got.Level, tt.wantLevel)
			}
			if got.ShieldScore != tt.wantShield {
				t.Errorf("shield = %d, want %d", got.ShieldScore, tt.wantShield)
			}
		})
	}
}

func TestComputeTeamProgressCapsImprovement(t *testing.T) {
	got := ComputeTeamProgress(model.SessionAggregates{SessionsCount: 4, CompletedCount: 4, AvgImprovement: 9})
	// min(9,3)/3 = 1, so shield = round((1*0.6 + 1*0.4)*100).
	if got.ShieldScore != 100 {
		t.Fatalf("shield = %d, want 100", got.ShieldScore)
	}
	if got.Level != 5 {
		t.Fatalf("level = %d, want 5", got.Level)
	}
}
