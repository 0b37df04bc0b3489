package game

import (
	"testing"

	"cybersafe_backend/internal/content"
)

func twoSceneContent() []content.Scene {
	return []content.Scene{
		{
			ID:    "email-reset",
			Kind:  "email",
			Topic: "phishing",
			Header: &content.SceneHeader{
				From:    "it-help@jysk-support.xyz",
				Subject: "Reset hesla IHNED",
				To:      "prodejna@jysk.cz",
			},
			HeaderFlags: map[string]string{"from": "flag", "subject": "flag"},
			Lines: []content.Line{
				{Text: "Dobry den,"},
				{Text: "klikněte zde pro reset hesla", Flag: true, Link: true},
				{Text: "S pozdravem, IT oddělení", Safe: true},
			},
		},
		{
			ID:    "usb-parcel",
			Topic: "usb",
			Lines: []content.Line{
				{Text: "V balíku byl USB disk bez popisu", Flag: true},
				{Text: "Předejte ho vedoucímu směny", Safe: true},
			},
		},
	}
}

func TestMarkFlagIdempotentAndBounded(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)

	if got := e.MarkFlag(0, "line-1"); got != SignalGood {
		t.Fatalf("first MarkFlag = %v, want SignalGood", got)
	}
	if got := e.MarkFlag(0, "line-1"); got != SignalNone {
		t.Fatalf("repeated MarkFlag = %v, want SignalNone", got)
	}

	// Hammering every possible key must never push found past the flag count.
	keys := []string{"line-0", "line-1", "line-2", "header-from", "header-subject", "header-to", "bogus"}
	for i := 0; i < 3; i++ {
		for _, k := range keys {
			e.MarkFlag(0, k)
		}
	}
	if found, flags := e.FoundInScene(0), e.FlagsInScene(0); found > flags {
		t.Fatalf("found %d exceeds flags %d", found, flags)
	}
}

func TestMarkFlagRejectsNonFlagKeys(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)

	if got := e.MarkFlag(0, "line-2"); got != SignalNone {
		t.Fatalf("MarkFlag on safe line = %v, want SignalNone", got)
	}
	if got := e.MarkFlag(0, "header-to"); got != SignalNone {
		t.Fatalf("MarkFlag on unflagged header = %v, want SignalNone", got)
	}
	if e.FoundInScene(0) != 0 {
		t.Fatalf("found = %d, want 0", e.FoundInScene(0))
	}
}

func TestSceneCompleteRequiresAllFlags(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)

	if e.SceneComplete(0) {
		t.Fatal("scene complete before any flag found")
	}
	e.MarkFlag(0, "line-1")
	e.MarkFlag(0, "header-from")
	if e.SceneComplete(0) {
		t.Fatal("scene complete with one flag missing")
	}
	e.MarkFlag(0, "header-subject")
	if !e.SceneComplete(0) {
		t.Fatal("scene not complete with all flags found")
	}
}

func TestZeroFlagSceneNeverCompletes(t *testing.T) {
	scenes := []content.Scene{
		{ID: "empty", Topic: "general", Lines: []content.Line{{Text: "nothing here"}}},
	}
	e := NewEngine(scenes, ModeDefault)

	e.MarkFlag(0, "line-0")
	if e.SceneComplete(0) {
		t.Fatal("zero-flag scene reported complete")
	}
	if _, ok := e.Finalize(); ok {
		t.Fatal("Finalize succeeded with an incompletable scene")
	}
}

func TestMissCountingAndOnboarding(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)
	e.MarkSafeClicked(0, "line-2")
	e.MarkSafeClicked(0, "line-2")
	if e.Miss() != 2 {
		t.Fatalf("miss = %d, want 2 (safe clicks are not deduplicated)", e.Miss())
	}

	ob := NewEngine(twoSceneContent(), ModeOnboarding)
	ob.MarkSafeClicked(0, "line-2")
	if ob.Miss() != 0 {
		t.Fatalf("onboarding miss = %d, want 0", ob.Miss())
	}
}

func TestAdvanceGatedOnCompletion(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)

	if e.Advance() {
		t.Fatal("advanced past an incomplete scene")
	}
	e.MarkFlag(0, "line-1")
	e.MarkFlag(0, "header-from")
	e.MarkFlag(0, "header-subject")
	if !e.Advance() {
		t.Fatal("refused to advance past a complete scene")
	}
	if e.SceneIndex() != 1 {
		t.Fatalf("scene index = %d, want 1", e.SceneIndex())
	}

	e.MarkFlag(1, "line-0")
	if e.Advance() {
		t.Fatal("advanced past the last scene")
	}

	if !e.Back() {
		t.Fatal("Back failed from scene 1")
	}
	if e.SceneIndex() != 0 {
		t.Fatalf("scene index after Back = %d, want 0", e.SceneIndex())
	}
}

func TestFinalizeSnapshotsTopics(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)
	e.MarkFlag(0, "line-1")
	e.MarkFlag(0, "header-from")
	e.MarkFlag(0, "header-subject")
	e.MarkFlag(1, "line-0")
	e.MarkSafeClicked(1, "line-1")

	res, ok := e.Finalize()
	if !ok {
		t.Fatal("Finalize failed with all scenes complete")
	}
	if res.Score != 4 || res.Max != 4 {
		t.Fatalf("score = %d/%d, want 4/4", res.Score, res.Max)
	}
	if res.Miss != 1 {
		t.Fatalf("miss = %d, want 1", res.Miss)
	}
	if got := res.Topics["phishing"]; got.Found != 3 || got.Total != 3 {
		t.Fatalf("phishing tally = %+v, want 3/3", got)
	}
	if got := res.Topics["usb"]; got.Found != 1 || got.Total != 1 {
		t.Fatalf("usb tally = %+v, want 1/1", got)
	}

	// Finalize is one-way: later clicks must not change the snapshot.
	if got := e.MarkFlag(0, "line-1"); got != SignalNone {
		t.Fatalf("MarkFlag after Finalize = %v, want SignalNone", got)
	}
}

func TestFinalizeRefusesIncompleteRun(t *testing.T) {
	e := NewEngine(twoSceneContent(), ModeDefault)
	e.MarkFlag(1, "line-0")

	if _, ok := e.Finalize(); ok {
		t.Fatal("Finalize succeeded with scene 0 incomplete")
	}
}

func TestReplayRebuildsResult(t *testing.T) {
	events := []Event{
		{Scene: 0, Key: "line-1"},
		{Scene: 0, Key: "header-from"},
		{Scene: 0, Key: "line-2"}, // safe click, one miss
		{Scene: 0, Key: "header-subject"},
		{Scene: 1, Key: "line-0"},
	}

	res, ok := Replay(twoSceneContent(), events)
	if !ok {
		t.Fatal("Replay rejected a complete click log")
	}
	if res.Score != 4 || res.Max != 4 || res.Miss != 1 {
		t.Fatalf("replayed result = %+v", res)
	}
}

func TestReplayRejectsUnfinishedLog(t *testing.T) {
	events := []Event{
		{Scene: 0, Key: "line-1"},
	}
	if _, ok := Replay(twoSceneContent(), events); ok {
		t.Fatal("Replay accepted a log that never finished the game")
	}
}
