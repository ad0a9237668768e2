// internal/game/session.go
//
// Session state machine: InProgress until a guess matches the target,
// then Over(won). There is no guess limit and the session never declares
// a loss on its own; the day ending is the only way to lose, and that
// happens outside the core (a new date selects a new session key).

package game

import "github.com/kongdle/go-server/internal/catalog"

// submit validates and applies one guess, mutating the session.
// Check order: unresolved name, duplicate entry, finished game. The
// session is untouched when any check fails.
func (s *Session) submit(cat catalog.Catalog, target catalog.Entry, name string) (Guess, error) {
	entry, ok := cat.FindByName(name)
	if !ok {
		return Guess{}, ErrNotFound
	}
	for _, g := range s.Guesses {
		if g.Entry.ID == entry.ID {
			return Guess{}, ErrAlreadyGuessed
		}
	}
	if s.GameOver {
		return Guess{}, ErrGameOver
	}

	guess := Guess{Entry: entry, Feedback: Evaluate(entry, target)}
	s.Guesses = append(s.Guesses, guess)
	if entry.ID == target.ID {
		s.GameOver, s.GameWon = true, true
	}
	return guess, nil
}

// snapshot returns a copy whose guess slice is detached from the session.
func (s Session) snapshot() Session {
	out := s
	out.Guesses = make([]Guess, len(s.Guesses))
	copy(out.Guesses, s.Guesses)
	return out
}
