package content

import (
	"strings"
	"testing"
)

func validGame() Game {
	return Game{
		Title: "Najdi red flags",
		Scenes: []Scene{
			{
				ID:    "email-reset",
				Kind:  "email",
				Topic: "phishing",
				Lines: []Line{
					{Text: "Dobry den"},
					{Text: "klikněte zde", Flag: true},
					{Text: "zavolejte IT", Safe: true},
				},
			},
		},
	}
}

func TestValidateAcceptsGoodGame(t *testing.T) {
	if errs := Validate(validGame()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateRejectsZeroFlagScene(t *testing.T) {
	g := validGame()
	g.Scenes[0].Lines[1].Flag = false

	errs := Validate(g)
	if len(errs) == 0 {
		t.Fatal("a scene with no flags passed validation")
	}
	if !strings.Contains(errs[0].Error(), "never be completed") {
		t.Fatalf("unexpected error: %v", errs[0])
	}
}

func TestValidateCountsHeaderFlags(t *testing.T) {
	g := validGame()
	g.Scenes[0].Lines[1].Flag = false
	g.Scenes[0].HeaderFlags = map[string]string{"from": "flag"}

	if errs := Validate(g); len(errs) != 0 {
		t.Fatalf("a header flag should satisfy the flag requirement: %v", errs)
	}
}

func TestValidateRejectsAmbiguousLine(t *testing.T) {
	g := validGame()
	g.Scenes[0].Lines[1].Safe = true

	if errs := Validate(g); len(errs) == 0 {
		t.Fatal("a line marked both flag and safe passed validation")
	}
}

func TestValidateRejectsDuplicateSceneIDs(t *testing.T) {
	g := validGame()
	g.Scenes = append(g.Scenes, g.Scenes[0])

	if errs := Validate(g); len(errs) == 0 {
		t.Fatal("duplicate scene ids passed validation")
	}
}

func TestValidateRejectsUnknownHeaderMarker(t *testing.T) {
	g := validGame()
	g.Scenes[0].HeaderFlags = map[string]string{"from": "maybe"}

	if errs := Validate(g); len(errs) == 0 {
		t.Fatal("unknown header marker passed validation")
	}
}

func TestValidateRejectsEmptyGame(t *testing.T) {
	if errs := Validate(Game{Title: "prázdná"}); len(errs) == 0 {
		t.Fatal("a game without scenes passed validation")
	}
}

func TestEmbeddedSeedIsValid(t *testing.T) {
	seed, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if errs := ValidateSeed(seed); len(errs) != 0 {
		t.Fatalf("embedded seed content is invalid: %v", errs)
	}
	if len(seed.Modules) == 0 || len(seed.Questions) == 0 {
		t.Fatal("embedded seed is missing modules or questions")
	}
	if len(seed.Games.Pre.Scenes) == 0 || len(seed.Games.Post.Scenes) == 0 {
		t.Fatal("embedded seed is missing game scenes")
	}
}

func TestLineRole(t *testing.T) {
	tests := []struct {
		line Line
		want LineRole
	}{
		{Line{Flag: true}, RoleFlag},
		{Line{Safe: true}, RoleSafe},
		{Line{}, RoleNeutral},
		{Line{Flag: true, Safe: true}, RoleFlag}, // validation rejects this shape; flag wins if it slips through
	}
	for _, tt := range tests {
		if got := tt.line.Role(); got != tt.want {
			t.Errorf("Role(%+v) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSeedGameLookup(t *testing.T) {
	seed, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := seed.Game("pre"); !ok {
		t.Fatal("pre game missing")
	}
	if _, ok := seed.Game("post"); !ok {
		t.Fatal("post game missing")
	}
	if _, ok := seed.Game("mid"); ok {
		t.Fatal("unknown phase returned a game")
	}
}
