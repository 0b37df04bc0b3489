package game

import "cybersafe_backend/internal/content"

// Event is one recorded click from a playthrough, in the order it happened.
type Event struct {
	Scene int    `json:"scene"`
	Key   string `json:"key"`
}

// Click dispatches on the span's authored role, mirroring the UI click
// handler: flag spans are found, safe spans are misses, neutral spans do
// nothing.
func (e *Engine) Click(sceneIdx int, key string) Signal {
	if !e.validScene(sceneIdx) {
		return SignalNone
	}
	if e.flagKeys[sceneIdx][key] {
		return e.MarkFlag(sceneIdx, key)
	}
	if e.safeKeys[sceneIdx][key] {
		return e.MarkSafeClicked(sceneIdx, key)
	}
	return SignalNone
}

// Replay runs a recorded click log through a fresh engine and finalizes.
// The boolean is false when the log does not complete every scene, meaning
// the client claimed a finish it never earned.
func Replay(scenes []content.Scene, events []Event) (Result, bool) {
	e := NewEngine(scenes, ModeDefault)
	for _, ev := range events {
		e.Click(ev.Scene, ev.Key)
	}
	return e.Finalize()
}
