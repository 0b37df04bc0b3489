package service

import (
	"reflect"
	"testing"

	"cybersafe_backend/internal/model"
)

func questionSet() []model.Question {
	return []model.Question{
		{Category: model.PhasePre, Key: "q1", CorrectOption: "A", TopicTag: "phishing"},
		{Category: model.PhasePre, Key: "q2", CorrectOption: "B", TopicTag: "usb"},
		{Category: model.PhasePre, Key: "q3", CorrectOption: "C", TopicTag: "privacy"},
	}
}

func TestScoreAnswersDetailPerQuestion(t *testing.T) {
	answers := map[string]string{"q1": "A", "q2": "C"}

	res := ScoreAnswers(questionSet(), answers)
	if len(res.Details) != 3 {
		t.Fatalf("got %d details, want one per question", len(res.Details))
	}
	if res.Max != 3 {
		t.Fatalf("max = %d, want 3", res.Max)
	}

	correct := 0
	for _, d := range res.Details {
		if d.IsCorrect {
			correct++
		}
	}
	if res.Score != correct {
		t.Fatalf("score %d does not equal correct detail count %d", res.Score, correct)
	}
	if res.Score != 1 {
		t.Fatalf("score = %d, want 1", res.Score)
	}
}

func TestScoreAnswersMissingAndMalformed(t *testing.T) {
	answers := map[string]string{
		"q1": "",       // absent selection
		"q2": "D",      // not a valid option
		"q3": "banana", // junk
	}

	res := ScoreAnswers(questionSet(), answers)
	if res.Score != 0 {
		t.Fatalf("score = %d, want 0 for malformed selections", res.Score)
	}
	for _, d := range res.Details {
		if d.IsCorrect {
			t.Fatalf("detail for %s marked correct", d.Question.Key)
		}
	}
}

func TestScoreAnswersEmptyMap(t *testing.T) {
	res := ScoreAnswers(questionSet(), nil)
	if res.Score != 0 || res.Max != 3 || len(res.Details) != 3 {
		t.Fatalf("unexpected result for nil answers: %+v", res)
	}
}

func TestScoreAnswersDeterministic(t *testing.T) {
	answers := map[string]string{"q1": "A", "q2": "B", "q3": "A"}

	first := ScoreAnswers(questionSet(), answers)
	second := ScoreAnswers(questionSet(), answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different results")
	}
}

func TestScoreAnswersDetailOrderFollowsQuestions(t *testing.T) {
	res := ScoreAnswers(questionSet(), map[string]string{})
	for i, want := range []string{"q1", "q2", "q3"} {
		if res.Details[i].Question.Key != want {
			t.Fatalf("detail %d is %s, want %s", i, res.Details[i].Question.Key, want)
		}
	}
}
