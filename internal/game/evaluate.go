// internal/game/evaluate.go
//
// Guess evaluation. Pure: Evaluate compares two entries and produces
// Feedback with no side effects. Each attribute is scored on its own;
// no attribute's status depends on another's.

package game

import "github.com/kongdle/go-server/internal/catalog"

// requirementWindow is how far off a requirement count can be and still
// score "present" (with a direction hint).
const requirementWindow = 2

// Evaluate scores a guessed entry against the target.
func Evaluate(guessed, target catalog.Entry) Feedback {
	fb := Feedback{
		Region: evalRegion(guessed, target),
		Kong:   evalKong(guessed.Kong, target.Kong),
	}
	fb.Requirement, fb.Direction = evalRequirement(guessed.Requirement, target.Requirement)
	fb.ItemDetail, fb.Items = evalItems(guessed.Needs, target.Needs)
	return fb
}

// evalRegion: exact hint region is correct; same level is present.
func evalRegion(guessed, target catalog.Entry) Status {
	switch {
	case guessed.HintRegion == target.HintRegion:
		return StatusCorrect
	case guessed.Level == target.Level:
		return StatusPresent
	default:
		return StatusAbsent
	}
}

// evalKong: exact kong is correct; the "Any" wildcard on either side is
// present. Entries tied to multiple kongs are not modeled; each catalog
// entry carries exactly one kong identifier.
func evalKong(guessed, target string) Status {
	switch {
	case guessed == target:
		return StatusCorrect
	case guessed == catalog.KongAny || target == catalog.KongAny:
		return StatusPresent
	default:
		return StatusAbsent
	}
}

// evalRequirement: equal counts are correct; within the window is present
// with a direction hint (up = guessed too low); otherwise absent, no hint.
func evalRequirement(guessed, target int) (Status, Direction) {
	if guessed == target {
		return StatusCorrect, DirectionNone
	}
	diff := guessed - target
	if diff < 0 {
		diff = -diff
	}
	if diff > requirementWindow {
		return StatusAbsent, DirectionNone
	}
	if guessed < target {
		return StatusPresent, DirectionUp
	}
	return StatusPresent, DirectionDown
}

// evalItems compares the six need flags pairwise. A flag matches when
// both sides agree (both true or both false). Aggregate: all six matching
// is correct, none is absent, anything between is present.
func evalItems(guessed, target catalog.Items) (ItemFeedback, Status) {
	flag := func(a, b bool) Status {
		if a == b {
			return StatusCorrect
		}
		return StatusAbsent
	}
	detail := ItemFeedback{
		Pad:        flag(guessed.Pad, target.Pad),
		Gun:        flag(guessed.Gun, target.Gun),
		Barrel:     flag(guessed.Barrel, target.Barrel),
		Active:     flag(guessed.Active, target.Active),
		Instrument: flag(guessed.Instrument, target.Instrument),
		Training:   flag(guessed.Training, target.Training),
	}
	matches := 0
	for _, s := range [6]Status{
		detail.Pad, detail.Gun, detail.Barrel,
		detail.Active, detail.Instrument, detail.Training,
	} {
		if s == StatusCorrect {
			matches++
		}
	}
	switch matches {
	case 6:
		return detail, StatusCorrect
	case 0:
		return detail, StatusAbsent
	default:
		return detail, StatusPresent
	}
}
