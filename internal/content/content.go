package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "embed"
)

// Built-in seed so the service can boot even when no content file is mounted.
// An external file (content.seed_path, SEED_PATH) stays the source of truth
// when present.
//
//go:embed seed.json
var embeddedSeed []byte

// Course is the static landing/meta text of the micro-course.
type Course struct {
	Duration  string   `json:"duration"`
	Storyline string   `json:"storyline"`
	Mission   string   `json:"mission"`
	TeamMotto string   `json:"teamMotto"`
	Rules     []string `json:"rules"`
	HomeTips  []string `json:"homeTips"`
}

// SeedModule is the authored form of a story module before it lands in the DB.
type SeedModule struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Story         string `json:"story"`
	CorrectAction string `json:"correctAction"`
	Tip1          string `json:"tip1"`
	Tip2          string `json:"tip2"`
	Image         string `json:"image"`
}

// SeedQuestion is the authored form of a quiz question.
type SeedQuestion struct {
	Category      string `json:"category"`
	Key           string `json:"key"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	CorrectOption string `json:"correct_option"`
	Explanation   string `json:"explanation"`
	TopicTag      string `json:"topic_tag"`
	SortOrder     int    `json:"sort_order"`
}

// LineRole is the explicit three-way state of a clickable span. The authored
// JSON uses two booleans; Role collapses them so no caller has to reason
// about the "neither" case implicitly.
type LineRole int

const (
	RoleNeutral LineRole = iota
	RoleFlag
	RoleSafe
)

// Line is one clickable span of a scene.
type Line struct {
	Text       string `json:"text"`
	Flag       bool   `json:"flag,omitempty"`
	Safe       bool   `json:"safe,omitempty"`
	Link       bool   `json:"link,omitempty"`
	Attachment bool   `json:"attachment,omitempty"`
}

func (l Line) Role() LineRole {
	switch {
	case l.Flag:
		return RoleFlag
	case l.Safe:
		return RoleSafe
	default:
		return RoleNeutral
	}
}

// SceneHeader carries the kind-specific header fields of a scene.
type SceneHeader struct {
	From    string `json:"from,omitempty"`
	Subject string `json:"subject,omitempty"`
	To      string `json:"to,omitempty"`
	App     string `json:"app,omitempty"`
	Name    string `json:"name,omitempty"`
}

// HeaderFieldKeys is the fixed click-key order for header fields, matching
// the keys the frontend emits ("header-from" etc).
var HeaderFieldKeys = []string{"from", "subject", "to"}

// Scene is one red-flag-finding situation.
type Scene struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"` // email|chat|note|screen|privacy
	Topic       string            `json:"topic"`
	Title       string            `json:"title"`
	Lead        string            `json:"lead"`
	Hint        string            `json:"hint,omitempty"`
	Header      *SceneHeader      `json:"header,omitempty"`
	HeaderFlags map[string]string `json:"headerFlags,omitempty"` // field -> "flag"|"safe"
	Lines       []Line            `json:"lines"`
}

// FlagCount is the number of spans in the scene a player must find.
func (s Scene) FlagCount() int {
	n := 0
	for _, l := range s.Lines {
		if l.Role() == RoleFlag {
			n++
		}
	}
	for _, v := range s.HeaderFlags {
		if v == "flag" {
			n++
		}
	}
	return n
}

// Game is one full red-flag playthrough definition.
type Game struct {
	Title  string  `json:"title"`
	Intro  string  `json:"intro,omitempty"`
	Scenes []Scene `json:"scenes"`
}

// Games holds the pre- and post-course playthroughs.
type Games struct {
	Pre  Game `json:"pre"`
	Post Game `json:"post"`
}

// Seed is the full authored content bundle.
type Seed struct {
	Course    Course         `json:"course"`
	Modules   []SeedModule   `json:"modules"`
	Games     Games          `json:"games"`
	Questions []SeedQuestion `json:"questions"`
}

// Game returns the playthrough for a phase, or false for an unknown phase.
func (s *Seed) Game(phase string) (Game, bool) {
	switch phase {
	case "pre":
		return s.Games.Pre, true
	case "post":
		return s.Games.Post, true
	default:
		return Game{}, false
	}
}

// Load reads the seed bundle. Candidate paths are tried in order: the
// configured override, then conventional in-repo locations; the embedded
// bundle is the final fallback. A file that exists but does not parse is a
// hard error rather than a silent fallback.
func Load(overridePath string) (*Seed, error) {
	fallback, err := parseSeed(embeddedSeed)
	if err != nil {
		return nil, fmt.Errorf("embedded seed: %w", err)
	}

	for _, p := range candidatePaths(overridePath) {
		raw, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed file %s: %w", p, err)
		}
		seed, err := parseSeed(raw)
		if err != nil {
			return nil, fmt.Errorf("seed file %s: %w", p, err)
		}
		normalize(seed, fallback)
		return seed, nil
	}

	return fallback, nil
}

func candidatePaths(overridePath string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	add(overridePath)
	add(filepath.Join("data", "seed-content.json"))
	add(filepath.Join("configs", "seed-content.json"))
	return out
}

func parseSeed(raw []byte) (*Seed, error) {
	var s Seed
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// normalize fills gaps in an external seed from the embedded fallback so a
// partial content file cannot dead-end the course.
func normalize(s, fallback *Seed) {
	if s.Course.Duration == "" {
		s.Course.Duration = fallback.Course.Duration
	}
	if s.Course.Storyline == "" {
		s.Course.Storyline = fallback.Course.Storyline
	}
	if s.Course.Mission == "" {
		s.Course.Mission = fallback.Course.Mission
	}
	if s.Course.TeamMotto == "" {
		s.Course.TeamMotto = fallback.Course.TeamMotto
	}
	if len(s.Course.Rules) == 0 {
		s.Course.Rules = fallback.Course.Rules
	}
	if len(s.Course.HomeTips) == 0 {
		s.Course.HomeTips = fallback.Course.HomeTips
	}
	if len(s.Modules) == 0 {
		s.Modules = fallback.Modules
	}
	if len(s.Questions) == 0 {
		s.Questions = fallback.Questions
	}
	s.Games.Pre = normalizeGame(s.Games.Pre, fallback.Games.Pre)
	s.Games.Post = normalizeGame(s.Games.Post, fallback.Games.Post)
}

func normalizeGame(g, fallback Game) Game {
	if g.Title == "" {
		g.Title = fallback.Title
	}
	if g.Intro == "" {
		g.Intro = fallback.Intro
	}
	if len(g.Scenes) == 0 {
		g.Scenes = fallback.Scenes
	}
	return g
}
