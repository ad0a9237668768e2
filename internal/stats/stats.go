// internal/stats/stats.go
//
// Player statistics: games played, wins, and day-streaks.
// A Record is updated at most once per calendar day, on the first
// game-ending event of that day; LastPlayed is the gate.

package stats

import (
	"context"
	"encoding/json"
	"math"

	"github.com/kongdle/go-server/internal/daily"
	"github.com/kongdle/go-server/internal/store"
)

// Record is the persistent stats counter set.
type Record struct {
	Played        int    `json:"played"`
	Won           int    `json:"won"`
	CurrentStreak int    `json:"currentStreak"`
	MaxStreak     int    `json:"maxStreak"`
	LastPlayed    string `json:"lastPlayed"` // daily date key, "" if never played
}

// Apply folds one terminal game outcome into the record.
// Returns false (and changes nothing) when today is already recorded.
//
// Streak rule: a win extends the streak only if the last played day is
// exactly yesterday; otherwise the streak restarts at 1. A non-win day
// zeroes it.
func (r *Record) Apply(won bool, today daily.Date) bool {
	if r.LastPlayed == today.Key() {
		return false
	}
	r.Played++
	if won {
		r.Won++
		if r.LastPlayed == today.Previous().Key() {
			r.CurrentStreak++
		} else {
			r.CurrentStreak = 1
		}
		if r.CurrentStreak > r.MaxStreak {
			r.MaxStreak = r.CurrentStreak
		}
	} else {
		r.CurrentStreak = 0
	}
	r.LastPlayed = today.Key()
	return true
}

// WinPercentage is won/played rounded to the nearest whole percent,
// 0 when nothing has been played.
func (r Record) WinPercentage() int {
	if r.Played == 0 {
		return 0
	}
	return int(math.Round(100 * float64(r.Won) / float64(r.Played)))
}

// Tracker binds a Record to its KV slot.
type Tracker struct {
	kv  store.KV
	key string
	rec Record
}

// NewTracker loads the record stored under key, or starts fresh.
// A corrupt stored blob is discarded rather than failing the game.
func NewTracker(ctx context.Context, kv store.KV, key string) (*Tracker, error) {
	t := &Tracker{kv: kv, key: key}
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &t.rec); err != nil {
			t.rec = Record{}
		}
	}
	return t, nil
}

// Record returns a snapshot of the current counters.
func (t *Tracker) Record() Record { return t.rec }

// RecordOutcome applies a terminal outcome and persists when it changed
// anything. A failed write surfaces as *store.StoreError; the in-memory
// record keeps the update.
func (t *Tracker) RecordOutcome(ctx context.Context, won bool, today daily.Date) error {
	if !t.rec.Apply(won, today) {
		return nil
	}
	raw, err := json.Marshal(t.rec)
	if err != nil {
		return err
	}
	if err := t.kv.Set(ctx, t.key, raw); err != nil {
		return &store.StoreError{Key: t.key, Err: err}
	}
	return nil
}
