// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily game.
// Exposes four endpoints under /daily and one stats endpoint:
//   - GET  /daily/state  → today's session (restores persisted state)
//   - POST /daily/guess  → submit a location name
//   - GET  /daily/share  → shareable result grid
//   - GET  /stats/me     → played/won/streak counters
//
// The core is synchronous and single-caller, so a mutex serializes all
// state-touching requests. Each request rebuilds the day's Play from the
// KV store; nothing game-related is held in process memory between
// requests.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kongdle/go-server/internal/catalog"
	"github.com/kongdle/go-server/internal/daily"
	"github.com/kongdle/go-server/internal/game"
	"github.com/kongdle/go-server/internal/stats"
	"github.com/kongdle/go-server/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv *Server
	mu  sync.Mutex // serializes guess submission
}

// mountDaily registers the daily-game routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s}
	r.Route("/daily", func(r chi.Router) {
		r.Get("/state", dd.handleState)
		r.Post("/guess", dd.handleGuess)
		r.Get("/share", dd.handleShare)
	})
	r.Get("/stats/me", dd.handleStats)
}

// playerID returns the authenticated user ID if logged in, otherwise the
// anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// playFor restores (or starts) today's game for the requesting player.
func (d *dailyServer) playFor(w http.ResponseWriter, r *http.Request) (*game.Play, error) {
	ns := namespaceFor(d.playerID(w, r))
	return game.NewPlay(r.Context(), d.srv.cat, d.srv.clock, d.srv.kv, ns)
}

// -----------------------------------------------------------------------------
// GET /daily/state

// stateRes is today's session snapshot. Target is only present once the
// game is over; the answer never leaks mid-game.
type stateRes struct {
	GameID   string         `json:"gameId"`
	Date     string         `json:"date"`
	Guesses  []game.Guess   `json:"guesses"`
	GameOver bool           `json:"gameOver"`
	GameWon  bool           `json:"gameWon"`
	Target   *catalog.Entry `json:"target,omitempty"`
}

func (d *dailyServer) handleState(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.playFor(w, r)
	if err != nil {
		writePlayError(w, err)
		return
	}
	sess := p.Session()
	res := stateRes{
		GameID:   sess.ID,
		Date:     p.Date().Key(),
		Guesses:  sess.Guesses,
		GameOver: sess.GameOver,
		GameWon:  sess.GameWon,
	}
	if target, over := p.Target(); over {
		res.Target = &target
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// POST /daily/guess

type guessReq struct {
	Name string `json:"name"`
}

type guessRes struct {
	Guess   game.Guess `json:"guess"`
	State   string     `json:"state"` // in_progress | won
	Guesses int        `json:"guesses"`
}

func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, `{"error":"empty_name"}`, http.StatusBadRequest)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.playFor(w, r)
	if err != nil {
		writePlayError(w, err)
		return
	}

	guess, err := p.SubmitGuess(r.Context(), req.Name)
	var se *store.StoreError
	if errors.As(err, &se) {
		// Guess was accepted; memory stays authoritative. Log and move on.
		log.Warn().Err(se).Msg("persist game state")
		err = nil
	}
	if err != nil {
		writePlayError(w, err)
		return
	}

	sess := p.Session()
	state := "in_progress"
	if sess.GameWon {
		state = "won"
	}
	_ = json.NewEncoder(w).Encode(guessRes{Guess: guess, State: state, Guesses: len(sess.Guesses)})
}

// -----------------------------------------------------------------------------
// GET /daily/share

type shareRes struct {
	game.ShareSummary
	Text string `json:"text"`
}

func (d *dailyServer) handleShare(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.playFor(w, r)
	if err != nil {
		writePlayError(w, err)
		return
	}
	sum := p.ShareSummary()
	_ = json.NewEncoder(w).Encode(shareRes{ShareSummary: sum, Text: shareText(sum)})
}

// shareText renders the pasteable grid. One row per guess in submission
// order: region, kong, requirement, items.
func shareText(sum game.ShareSummary) string {
	var b strings.Builder
	b.WriteString("Kongdle " + sum.Date + " ")
	if sum.Won {
		b.WriteString(strconv.Itoa(sum.GuessCount))
	} else {
		b.WriteString("X")
	}
	b.WriteString("/∞")
	for _, line := range sum.Lines {
		b.WriteString("\n")
		b.WriteString(glyph(line.Region))
		b.WriteString(glyph(line.Kong))
		b.WriteString(glyph(line.Requirement))
		b.WriteString(glyph(line.Items))
	}
	return b.String()
}

// glyph maps a status to its share symbol: filled, half-filled, empty.
func glyph(s game.Status) string {
	switch s {
	case game.StatusCorrect:
		return "🟩"
	case game.StatusPresent:
		return "🟨"
	default:
		return "⬛"
	}
}

// -----------------------------------------------------------------------------
// GET /stats/me

type statsRes struct {
	stats.Record
	WinPercentage int `json:"winPercentage"`
}

func (d *dailyServer) handleStats(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.playFor(w, r)
	if err != nil {
		writePlayError(w, err)
		return
	}
	rec := p.Stats()
	_ = json.NewEncoder(w).Encode(statsRes{Record: rec, WinPercentage: rec.WinPercentage()})
}

// -----------------------------------------------------------------------------

// writePlayError maps core errors to JSON responses.
func writePlayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, game.ErrAlreadyGuessed):
		http.Error(w, `{"error":"already_guessed"}`, http.StatusConflict)
	case errors.Is(err, game.ErrGameOver):
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
	case errors.Is(err, daily.ErrEmptyCatalog):
		log.Error().Err(err).Msg("daily selection")
		http.Error(w, `{"error":"empty_catalog"}`, http.StatusInternalServerError)
	default:
		log.Error().Err(err).Msg("daily route")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
	}
}
