package game

import (
	"strconv"

	"cybersafe_backend/internal/content"
)

// Mode selects whether mistakes count. Onboarding runs track safe-clicks for
// UI feedback only and keep the miss counter at zero.
type Mode int

const (
	ModeDefault Mode = iota
	ModeOnboarding
)

// Signal is the feedback a transition asks the caller to show. Transitions
// that change nothing (repeat clicks, bad indices) return SignalNone.
type Signal int

const (
	SignalNone Signal = iota
	SignalGood
	SignalBad
)

// TopicTally is the found/total pair for one topic tag.
type TopicTally struct {
	Found int `json:"found"`
	Total int `json:"total"`
}

// Result is the wire payload of a finished playthrough.
type Result struct {
	Score  int                   `json:"score"`
	Max    int                   `json:"max"`
	Miss   int                   `json:"miss"`
	Topics map[string]TopicTally `json:"topics"`
}

// Engine is the red-flag game state machine for one playthrough. It is an
// explicit state object with pure transition methods: no I/O, no clocks, no
// goroutines. One engine serves one player, so there is no locking.
//
// Transitions never panic; anything out of range or already done is a no-op.
type Engine struct {
	scenes []content.Scene
	mode   Mode

	sceneIndex int
	found      []map[string]bool
	miss       int
	finished   bool

	topics     map[string]*TopicTally
	topicOrder []string

	flagKeys []map[string]bool
	safeKeys []map[string]bool
}

// NewEngine derives per-scene flag/safe key sets and per-topic totals from
// the scene content. Keys follow the frontend convention: "line-<idx>" for
// body lines, "header-<field>" for header fields.
func NewEngine(scenes []content.Scene, mode Mode) *Engine {
	e := &Engine{
		scenes:   scenes,
		mode:     mode,
		found:    make([]map[string]bool, len(scenes)),
		flagKeys: make([]map[string]bool, len(scenes)),
		safeKeys: make([]map[string]bool, len(scenes)),
		topics:   make(map[string]*TopicTally),
	}

	for i, sc := range scenes {
		e.found[i] = make(map[string]bool)
		e.flagKeys[i] = make(map[string]bool)
		e.safeKeys[i] = make(map[string]bool)

		for j, l := range sc.Lines {
			key := lineKey(j)
			switch l.Role() {
			case content.RoleFlag:
				e.flagKeys[i][key] = true
			case content.RoleSafe:
				e.safeKeys[i][key] = true
			}
		}
		for _, field := range content.HeaderFieldKeys {
			switch sc.HeaderFlags[field] {
			case "flag":
				e.flagKeys[i][headerKey(field)] = true
			case "safe":
				e.safeKeys[i][headerKey(field)] = true
			}
		}

		tag := sc.Topic
		if tag == "" {
			tag = "general"
		}
		t, ok := e.topics[tag]
		if !ok {
			t = &TopicTally{}
			e.topics[tag] = t
			e.topicOrder = append(e.topicOrder, tag)
		}
		t.Total += len(e.flagKeys[i])
	}

	return e
}

func lineKey(idx int) string {
	return "line-" + strconv.Itoa(idx)
}

func headerKey(field string) string {
	return "header-" + field
}

func (e *Engine) SceneCount() int { return len(e.scenes) }
func (e *Engine) SceneIndex() int { return e.sceneIndex }
func (e *Engine) Miss() int       { return e.miss }
func (e *Engine) Finished() bool  { return e.finished }

func (e *Engine) validScene(i int) bool {
	return i >= 0 && i < len(e.scenes)
}

// FlagsInScene counts the spans the player must find in scene i.
func (e *Engine) FlagsInScene(i int) int {
	if !e.validScene(i) {
		return 0
	}
	return len(e.flagKeys[i])
}

// FoundInScene counts the distinct flags found so far in scene i.
func (e *Engine) FoundInScene(i int) int {
	if !e.validScene(i) {
		return 0
	}
	return len(e.found[i])
}

// SceneComplete reports whether scene i can be advanced past. A scene with
// zero authored flags is never complete; content validation rejects such
// scenes before an engine is ever built over them.
func (e *Engine) SceneComplete(i int) bool {
	if !e.validScene(i) {
		return false
	}
	return len(e.flagKeys[i]) > 0 && len(e.found[i]) >= len(e.flagKeys[i])
}

// MarkFlag records a click on a flag span. Re-clicking a found flag is a
// no-op: the found set and topic counters only ever grow, and never past
// the scene's flag count. Keys that are not flag spans of that scene are
// ignored, so a replayed event log cannot inflate the score.
func (e *Engine) MarkFlag(sceneIdx int, key string) Signal {
	if e.finished || !e.validScene(sceneIdx) {
		return SignalNone
	}
	if !e.flagKeys[sceneIdx][key] || e.found[sceneIdx][key] {
		return SignalNone
	}

	e.found[sceneIdx][key] = true

	tag := e.scenes[sceneIdx].Topic
	if tag == "" {
		tag = "general"
	}
	if t, ok := e.topics[tag]; ok && t.Found < t.Total {
		t.Found++
	}
	return SignalGood
}

// MarkSafeClicked records a click on a safe span. Unlike flag-finding this
// is deliberately not deduplicated: every repeat click on a safe span
// counts as another miss. Onboarding mode still signals the mistake but
// leaves the miss counter alone.
func (e *Engine) MarkSafeClicked(sceneIdx int, key string) Signal {
	if e.finished || !e.validScene(sceneIdx) {
		return SignalNone
	}
	if !e.safeKeys[sceneIdx][key] {
		return SignalNone
	}

	if e.mode != ModeOnboarding {
		e.miss++
	}
	return SignalBad
}

// Advance moves to the next scene, refusing while the current one is
// incomplete or already last.
func (e *Engine) Advance() bool {
	if e.finished || !e.SceneComplete(e.sceneIndex) {
		return false
	}
	if e.sceneIndex >= len(e.scenes)-1 {
		return false
	}
	e.sceneIndex++
	return true
}

// Back returns to the previous scene; revisiting never loses found flags.
func (e *Engine) Back() bool {
	if e.finished || e.sceneIndex == 0 {
		return false
	}
	e.sceneIndex--
	return true
}

// Finalize closes the playthrough and returns the aggregate result. It is
// only reachable once every scene is complete, and only once: progression
// is one-way and nothing can be re-finalized after submission.
func (e *Engine) Finalize() (Result, bool) {
	if e.finished {
		return Result{}, false
	}
	for i := range e.scenes {
		if !e.SceneComplete(i) {
			return Result{}, false
		}
	}
	e.finished = true
	return e.snapshot(), true
}

func (e *Engine) snapshot() Result {
	res := Result{
		Miss:   e.miss,
		Topics: make(map[string]TopicTally, len(e.topics)),
	}
	for _, tag := range e.topicOrder {
		t := *e.topics[tag]
		res.Topics[tag] = t
		res.Score += t.Found
		res.Max += t.Total
	}
	return res
}
