package content

import "fmt"

// Validate reports authoring errors in a game definition. A scene with no
// flags can never satisfy the advance guard and would dead-end the
// playthrough, so it is rejected here at load time instead of being patched
// over. A line marked both flag and safe is ambiguous for the same reason.
func Validate(g Game) []error {
	var errs []error

	if len(g.Scenes) == 0 {
		errs = append(errs, fmt.Errorf("game %q has no scenes", g.Title))
	}

	seenIDs := map[string]bool{}
	for i, sc := range g.Scenes {
		if sc.ID == "" {
			errs = append(errs, fmt.Errorf("scene %d has no id", i))
		} else if seenIDs[sc.ID] {
			errs = append(errs, fmt.Errorf("scene id %q is duplicated", sc.ID))
		}
		seenIDs[sc.ID] = true

		if sc.Topic == "" {
			errs = append(errs, fmt.Errorf("scene %q has no topic", sc.ID))
		}
		if sc.FlagCount() == 0 {
			errs = append(errs, fmt.Errorf("scene %q has no flags and can never be completed", sc.ID))
		}
		for j, l := range sc.Lines {
			if l.Flag && l.Safe {
				errs = append(errs, fmt.Errorf("scene %q line %d is marked both flag and safe", sc.ID, j))
			}
		}
		for field, v := range sc.HeaderFlags {
			if v != "flag" && v != "safe" {
				errs = append(errs, fmt.Errorf("scene %q header field %q has unknown marker %q", sc.ID, field, v))
			}
		}
	}

	return errs
}

// ValidateSeed validates both playthroughs and the question set.
func ValidateSeed(s *Seed) []error {
	var errs []error
	errs = append(errs, Validate(s.Games.Pre)...)
	errs = append(errs, Validate(s.Games.Post)...)

	seen := map[string]bool{}
	for _, q := range s.Questions {
		if q.Category != "pre" && q.Category != "post" {
			errs = append(errs, fmt.Errorf("question %q has unknown category %q", q.Key, q.Category))
		}
		if q.CorrectOption != "A" && q.CorrectOption != "B" && q.CorrectOption != "C" {
			errs = append(errs, fmt.Errorf("question %q has unknown correct option %q", q.Key, q.CorrectOption))
		}
		ck := q.Category + ":" + q.Key
		if seen[ck] {
			errs = append(errs, fmt.Errorf("question key %q is duplicated within category %q", q.Key, q.Category))
		}
		seen[ck] = true
	}
	return errs
}
