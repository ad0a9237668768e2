// internal/catalog/catalog.go
//
// Catalog of guessable golden-banana locations.
// Responsibilities:
//   - Entry: one location with the attributes guesses are scored against.
//   - Filter: drop entries with missing or placeholder attributes.
//   - Lookups: FindByName (case-insensitive exact), Names for autocomplete.
//
// Entries are immutable after load. Filter is idempotent: filtering an
// already-filtered catalog returns the same entries in the same order.

package catalog

import "strings"

// Kong identifiers. KongAny is the wildcard used by locations any kong
// can collect.
const (
	KongDK     = "DK"
	KongDiddy  = "Diddy"
	KongLanky  = "Lanky"
	KongTiny   = "Tiny"
	KongChunky = "Chunky"
	KongAny    = "Any"
)

var validKongs = map[string]struct{}{
	KongDK: {}, KongDiddy: {}, KongLanky: {}, KongTiny: {}, KongChunky: {}, KongAny: {},
}

// Placeholder region used by unfinished catalog rows; such rows are dropped.
const unknownRegion = "Unknown"

// Items are the six things a location can require before its banana is
// reachable.
type Items struct {
	Pad        bool `json:"pad"`
	Gun        bool `json:"gun"`
	Barrel     bool `json:"barrel"`
	Active     bool `json:"active"`
	Instrument bool `json:"instrument"`
	Training   bool `json:"training"`
}

// Entry is one guessable location.
type Entry struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	HintRegion  string `json:"hintRegion"`
	Kong        string `json:"kong"`
	Requirement int    `json:"requirement"`
	Needs       Items  `json:"needs"`
}

// valid reports whether the entry carries a full set of real attributes.
func (e Entry) valid() bool {
	if strings.TrimSpace(e.Name) == "" {
		return false
	}
	if e.HintRegion == "" || e.HintRegion == unknownRegion {
		return false
	}
	if e.Requirement < 0 {
		return false
	}
	_, ok := validKongs[e.Kong]
	return ok
}

// Catalog is an ordered sequence of valid entries.
type Catalog []Entry

// Filter keeps only valid entries, preserving order.
func Filter(entries []Entry) Catalog {
	out := make(Catalog, 0, len(entries))
	for _, e := range entries {
		if e.valid() {
			out = append(out, e)
		}
	}
	return out
}

// FindByName resolves a player-typed name to an entry.
// Matching is case-insensitive but otherwise exact.
func (c Catalog) FindByName(name string) (Entry, bool) {
	name = strings.TrimSpace(name)
	for _, e := range c {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns every entry name in catalog order, for autocomplete UIs.
func (c Catalog) Names() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.Name
	}
	return out
}
