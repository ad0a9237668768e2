// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Status: per-attribute result of a guess (correct/present/absent).
//   - Direction: requirement-count hint (up/down).
//   - Feedback: the four attribute results for one guess.
//   - Guess, Session: guess history and day-session state.

package game

import (
	"errors"

	"github.com/kongdle/go-server/internal/catalog"
)

// Status is the evaluation result for a single attribute.
// Possible values:
//   - "correct": attribute matches the target exactly.
//   - "present": attribute is close (same level, wildcard kong,
//     requirement within the window, or some item flags matching).
//   - "absent":  attribute does not match at all.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Direction hints which way the guessed requirement count missed.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionUp   Direction = "up"   // guessed count below the target's
	DirectionDown Direction = "down" // guessed count above the target's
)

// ItemFeedback holds the per-flag sub-results for the six item needs.
// Sub-results are binary: correct when the flags agree, absent otherwise.
type ItemFeedback struct {
	Pad        Status `json:"pad"`
	Gun        Status `json:"gun"`
	Barrel     Status `json:"barrel"`
	Active     Status `json:"active"`
	Instrument Status `json:"instrument"`
	Training   Status `json:"training"`
}

// Feedback is the full evaluation of one guess against the target.
// The four attribute results are independent of each other.
type Feedback struct {
	Region      Status       `json:"region"`
	Kong        Status       `json:"kong"`
	Requirement Status       `json:"requirement"`
	Direction   Direction    `json:"direction,omitempty"`
	Items       Status       `json:"items"`
	ItemDetail  ItemFeedback `json:"itemDetail"`
}

// Guess pairs a guessed entry with its computed feedback.
type Guess struct {
	Entry    catalog.Entry `json:"entry"`
	Feedback Feedback      `json:"feedback"`
}

// Session is one day's game state. It is what gets serialized to the KV
// store; the target is not stored, it is re-derived from the date.
type Session struct {
	ID       string  `json:"id"`
	Guesses  []Guess `json:"guesses"`
	GameOver bool    `json:"gameOver"`
	GameWon  bool    `json:"gameWon"`
}

// Guess-submission errors. All are recoverable: the session is unchanged
// when one is returned.
var (
	ErrNotFound       = errors.New("game: location not found")
	ErrAlreadyGuessed = errors.New("game: location already guessed")
	ErrGameOver       = errors.New("game: game is over")
)
