// internal/game/play.go
//
// Play ties one day's session to its collaborators: the catalog, the
// daily target, the KV store, and the stats tracker. It is the surface
// the UI layer calls; everything here is synchronous and single-caller
// (the HTTP layer serializes access).
//
// Persistence is best-effort: a failed KV write comes back as
// *store.StoreError, but the in-memory session/stats keep the change and
// stay authoritative for the rest of the process lifetime.

package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kongdle/go-server/internal/catalog"
	"github.com/kongdle/go-server/internal/daily"
	"github.com/kongdle/go-server/internal/stats"
	"github.com/kongdle/go-server/internal/store"
)

// Play is one day's game for one namespace (player).
type Play struct {
	cat     catalog.Catalog
	target  catalog.Entry
	date    daily.Date
	kv      store.KV
	ns      string
	session Session
	tracker *stats.Tracker
}

// NewPlay selects today's target and restores any persisted session for
// the namespace and date. Fails with daily.ErrEmptyCatalog on an empty
// catalog and passes through store read errors.
func NewPlay(ctx context.Context, cat catalog.Catalog, clock daily.Clock, kv store.KV, namespace string) (*Play, error) {
	date := clock.Today()
	target, err := daily.SelectTarget(cat, date)
	if err != nil {
		return nil, err
	}
	p := &Play{cat: cat, target: target, date: date, kv: kv, ns: namespace}

	raw, found, err := kv.Get(ctx, p.sessionKey())
	if err != nil {
		return nil, err
	}
	if found {
		if err := json.Unmarshal(raw, &p.session); err != nil {
			// Corrupt blob: start the day fresh rather than brick the game.
			p.session = Session{}
		}
	}
	if p.session.ID == "" {
		p.session.ID = uuid.NewString()
	}

	p.tracker, err = stats.NewTracker(ctx, kv, namespace+"_stats")
	if err != nil {
		return nil, err
	}
	return p, nil
}

// sessionKey is <namespace>_<year>_<month>_<day>.
func (p *Play) sessionKey() string {
	return fmt.Sprintf("%s_%d_%d_%d", p.ns, p.date.Year, int(p.date.Month), p.date.Day)
}

// SubmitGuess runs one guess through the session and persists the result.
// On a rejected guess (ErrNotFound, ErrAlreadyGuessed, ErrGameOver)
// nothing is written. On the game-ending guess the day's outcome is also
// folded into the stats record.
func (p *Play) SubmitGuess(ctx context.Context, name string) (Guess, error) {
	guess, err := p.session.submit(p.cat, p.target, name)
	if err != nil {
		return Guess{}, err
	}

	var persistErr error
	raw, err := json.Marshal(p.session)
	if err != nil {
		persistErr = err
	} else if err := p.kv.Set(ctx, p.sessionKey(), raw); err != nil {
		persistErr = &store.StoreError{Key: p.sessionKey(), Err: err}
	}

	if p.session.GameOver {
		if err := p.tracker.RecordOutcome(ctx, p.session.GameWon, p.date); err != nil && persistErr == nil {
			persistErr = err
		}
	}
	return guess, persistErr
}

// Session returns a snapshot of the current session state.
func (p *Play) Session() Session { return p.session.snapshot() }

// Stats returns a snapshot of the player's stats record.
func (p *Play) Stats() stats.Record { return p.tracker.Record() }

// Date returns the day this play belongs to.
func (p *Play) Date() daily.Date { return p.date }

// Target reveals the day's answer, but only once the game is over.
func (p *Play) Target() (catalog.Entry, bool) {
	if !p.session.GameOver {
		return catalog.Entry{}, false
	}
	return p.target, true
}
