package service

import (
	"encoding/json"
	"testing"

	"cybersafe_backend/internal/game"
)

func rawInt(n int) json.RawMessage {
	b, _ := json.Marshal(n)
	return b
}

func rawTally(found, total int) json.RawMessage {
	b, _ := json.Marshal(game.TopicTally{Found: found, Total: total})
	return b
}

func TestParseResultsRecomputesFromTopics(t *testing.T) {
	sub := GameSubmission{
		Score: rawInt(99), // self-reported numbers lose against the tallies
		Max:   rawInt(99),
		Miss:  rawInt(2),
		Topics: map[string]json.RawMessage{
			"phishing": rawTally(3, 3),
			"usb":      rawTally(1, 2),
		},
	}

	res := ParseResults(sub)
	if res.Score != 4 || res.Max != 5 {
		t.Fatalf("score = %d/%d, want 4/5", res.Score, res.Max)
	}
	if res.Miss != 2 {
		t.Fatalf("miss = %d, want 2", res.Miss)
	}
}

func TestParseResultsClampsTallies(t *testing.T) {
	sub := GameSubmission{
		Topics: map[string]json.RawMessage{
			"phishing": rawTally(5, 2),   // found > total
			"usb":      rawTally(-1, -3), // negative garbage
		},
	}

	res := ParseResults(sub)
	if got := res.Topics["phishing"]; got.Found != 2 || got.Total != 2 {
		t.Fatalf("phishing tally = %+v, want 2/2", got)
	}
	if got := res.Topics["usb"]; got.Found != 0 || got.Total != 0 {
		t.Fatalf("usb tally = %+v, want 0/0", got)
	}
	if res.Score != 2 || res.Max != 2 {
		t.Fatalf("score = %d/%d, want 2/2", res.Score, res.Max)
	}
}

func TestParseResultsFallsBackToPayloadNumbers(t *testing.T) {
	sub := GameSubmission{Score: rawInt(3), Max: rawInt(5)}

	res := ParseResults(sub)
	if res.Score != 3 || res.Max != 5 {
		t.Fatalf("score = %d/%d, want 3/5", res.Score, res.Max)
	}
}

func TestParseResultsMaxDefaultsToScore(t *testing.T) {
	sub := GameSubmission{Score: rawInt(4)}

	res := ParseResults(sub)
	if res.Max != 4 {
		t.Fatalf("max = %d, want score fallback 4", res.Max)
	}
}

func TestParseResultsNegativeMissIgnored(t *testing.T) {
	sub := GameSubmission{Score: rawInt(1), Miss: rawInt(-5)}

	res := ParseResults(sub)
	if res.Miss != 0 {
		t.Fatalf("miss = %d, want 0", res.Miss)
	}
}

func TestParseResultsNormalizesEmptySubmission(t *testing.T) {
	res := ParseResults(GameSubmission{})
	if res.Score != 0 || res.Max != 0 || res.Miss != 0 {
		t.Fatalf("empty submission = %d/%d miss %d, want all zero", res.Score, res.Max, res.Miss)
	}
	if len(res.Topics) != 0 {
		t.Fatalf("empty submission carried %d topics", len(res.Topics))
	}
}

func TestParseResultsMalformedFieldsReadAsZero(t *testing.T) {
	sub := GameSubmission{
		Score:  json.RawMessage(`"lots"`),
		Miss:   json.RawMessage(`{}`),
		Topics: map[string]json.RawMessage{"phishing": json.RawMessage(`"broken"`)},
	}

	res := ParseResults(sub)
	if res.Score != 0 || res.Max != 0 || res.Miss != 0 {
		t.Fatalf("malformed submission = %d/%d miss %d, want all zero", res.Score, res.Max, res.Miss)
	}
	if got := res.Topics["phishing"]; got.Found != 0 || got.Total != 0 {
		t.Fatalf("malformed tally = %+v, want 0/0", got)
	}
}

func TestDetailsFromTopics(t *testing.T) {
	topics := map[string]game.TopicTally{
		"phishing": {Found: 3, Total: 3},
		"usb":      {Found: 1, Total: 2},
		"empty":    {Found: 0, Total: 0}, // no flags, no detail row
	}

	details := DetailsFromTopics(topics)
	if len(details) != 2 {
		t.Fatalf("got %d details, want 2", len(details))
	}

	byTag := map[string]bool{}
	for _, d := range details {
		byTag[d.Question.TopicTag] = d.IsCorrect
	}
	if !byTag["phishing"] {
		t.Fatal("phishing should be correct with every flag found")
	}
	if correct, ok := byTag["usb"]; !ok || correct {
		t.Fatal("usb should be present and incorrect with a missed flag")
	}
}
