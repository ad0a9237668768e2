// internal/game/share.go
//
// Share summaries: the per-guess status grid players paste into chat.
// The core reports statuses only; glyph choices belong to the UI layer.

package game

// ShareLine is the four attribute statuses of one guess, in grid order:
// region, kong, requirement, items.
type ShareLine struct {
	Region      Status `json:"region"`
	Kong        Status `json:"kong"`
	Requirement Status `json:"requirement"`
	Items       Status `json:"items"`
}

// ShareSummary describes a finished (or in-progress) day for sharing.
type ShareSummary struct {
	Date       string      `json:"date"`
	Won        bool        `json:"won"`
	GuessCount int         `json:"guessCount"`
	Lines      []ShareLine `json:"lines"`
}

// ShareSummary builds the grid in submission order.
func (p *Play) ShareSummary() ShareSummary {
	lines := make([]ShareLine, len(p.session.Guesses))
	for i, g := range p.session.Guesses {
		lines[i] = ShareLine{
			Region:      g.Feedback.Region,
			Kong:        g.Feedback.Kong,
			Requirement: g.Feedback.Requirement,
			Items:       g.Feedback.Items,
		}
	}
	return ShareSummary{
		Date:       p.date.Key(),
		Won:        p.session.GameWon,
		GuessCount: len(p.session.Guesses),
		Lines:      lines,
	}
}
