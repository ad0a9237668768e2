package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kongdle/go-server/internal/catalog"
	"github.com/kongdle/go-server/internal/daily"
	"github.com/kongdle/go-server/internal/store"
)

var testDay = daily.Date{Year: 2024, Month: time.January, Day: 2}

func testCatalog() catalog.Catalog {
	return catalog.Filter([]catalog.Entry{
		{ID: 1, Name: "Mountain Top", Level: "Jungle Japes", HintRegion: "Japes Hillside", Kong: catalog.KongDiddy, Requirement: 5, Needs: catalog.Items{Gun: true}},
		{ID: 2, Name: "Painting Room", Level: "Jungle Japes", HintRegion: "Japes Caves", Kong: catalog.KongDiddy, Requirement: 7, Needs: catalog.Items{Pad: true, Gun: true}},
		{ID: 3, Name: "Sun Trap", Level: "Angry Aztec", HintRegion: "Aztec Oasis", Kong: catalog.KongTiny, Requirement: 7, Needs: catalog.Items{Barrel: true, Training: true}},
	})
}

// newTestEnv spins up a server over an in-memory DB/KV with a fixed date
// and returns a cookie-carrying client (the anon cookie is the player
// identity).
func newTestEnv(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL, created_at TEXT NOT NULL
	)`); err != nil {
		t.Fatalf("create users: %v", err)
	}

	srv := New(Config{
		Catalog: testCatalog(),
		KV:      store.NewMemory(),
		DB:      db,
		Clock:   daily.ClockFunc(func() daily.Date { return testDay }),
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	res, err := c.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

func decode(t *testing.T, res *http.Response, out any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// targetName resolves what the fixed test date selects.
func targetName(t *testing.T) string {
	t.Helper()
	e, err := daily.SelectTarget(testCatalog(), testDay)
	if err != nil {
		t.Fatalf("SelectTarget: %v", err)
	}
	return e.Name
}

func missName(t *testing.T) string {
	t.Helper()
	tgt := targetName(t)
	for _, n := range testCatalog().Names() {
		if n != tgt {
			return n
		}
	}
	t.Fatal("catalog has only the target")
	return ""
}

func TestHealth(t *testing.T) {
	ts, c := newTestEnv(t)
	res, err := c.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}

func TestDailyStateFreshDay(t *testing.T) {
	ts, c := newTestEnv(t)
	var state struct {
		GameID   string          `json:"gameId"`
		Date     string          `json:"date"`
		Guesses  []json.RawMessage `json:"guesses"`
		GameOver bool            `json:"gameOver"`
		Target   *catalog.Entry  `json:"target"`
	}
	res, err := c.Get(ts.URL + "/daily/state")
	if err != nil {
		t.Fatalf("GET /daily/state: %v", err)
	}
	decode(t, res, &state)

	if state.Date != "2024-01-02" {
		t.Fatalf("date = %q", state.Date)
	}
	if state.GameID == "" || state.GameOver || len(state.Guesses) != 0 {
		t.Fatalf("fresh state: %+v", state)
	}
	if state.Target != nil {
		t.Fatal("fresh state leaks the target")
	}
}

func TestDailyGuessFlow(t *testing.T) {
	ts, c := newTestEnv(t)

	// Unknown name.
	res := postJSON(t, c, ts.URL+"/daily/guess", map[string]string{"name": "Lighthouse Platform"})
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown name status %d, want 404", res.StatusCode)
	}

	// A miss keeps the game in progress.
	var gr struct {
		State   string `json:"state"`
		Guesses int    `json:"guesses"`
	}
	res = postJSON(t, c, ts.URL+"/daily/guess", map[string]string{"name": missName(t)})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("miss status %d", res.StatusCode)
	}
	decode(t, res, &gr)
	if gr.State != "in_progress" || gr.Guesses != 1 {
		t.Fatalf("after miss: %+v", gr)
	}

	// Repeating the same name is rejected.
	res = postJSON(t, c, ts.URL+"/daily/guess", map[string]string{"name": missName(t)})
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate status %d, want 409", res.StatusCode)
	}

	// Hitting the target wins.
	res = postJSON(t, c, ts.URL+"/daily/guess", map[string]string{"name": targetName(t)})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("win status %d", res.StatusCode)
	}
	decode(t, res, &gr)
	if gr.State != "won" || gr.Guesses != 2 {
		t.Fatalf("after win: %+v", gr)
	}

	// Post-win guesses are rejected as game over.
	res = postJSON(t, c, ts.URL+"/daily/guess", map[string]string{"name": "Sun Trap"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("post-win status %d, want 409", res.StatusCode)
	}
	var e struct {
		Error string `json:"error"`
	}
	decode(t, res, &e)
	if e.Error != "game_over" && e.Error != "already_guessed" {
		t.Fatalf("post-win error %q", e.Error)
	}

	// State now reveals the target, and stats recorded the day once.
	var state struct {
		GameWon bool           `json:"gameWon"`
		Target  *catalog.Entry `json:"target"`
	}
	res, err := c.Get(ts.URL + "/daily/state")
	if err != nil {
		t.Fatalf("GET /daily/state: %v", err)
	}
	decode(t, res, &state)
	if !state.GameWon || state.Target == nil || state.Target.Name != targetName(t) {
		t.Fatalf("terminal state: %+v", state)
	}

	var st struct {
		Played        int `json:"played"`
		Won           int `json:"won"`
		CurrentStreak int `json:"currentStreak"`
		WinPercentage int `json:"winPercentage"`
	}
	res, err = c.Get(ts.URL + "/stats/me")
	if err != nil {
		t.Fatalf("GET /stats/me: %v", err)
	}
	decode(t, res, &st)
	if st.Played != 1 || st.Won != 1 || st.CurrentStreak != 1 || st.WinPercentage != 100 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestDailyShare(t *testing.T) {
	ts, c := newTestEnv(t)

	res := postJSON(t, c, ts.URL+"/daily/guess", map[string]string{"name": targetName(t)})
	res.Body.Close()

	var share struct {
		Won        bool   `json:"won"`
		GuessCount int    `json:"guessCount"`
		Text       string `json:"text"`
	}
	res, err := c.Get(ts.URL + "/daily/share")
	if err != nil {
		t.Fatalf("GET /daily/share: %v", err)
	}
	decode(t, res, &share)
	if !share.Won || share.GuessCount != 1 {
		t.Fatalf("share: %+v", share)
	}
	want := "Kongdle 2024-01-02 1/∞\n🟩🟩🟩🟩"
	if share.Text != want {
		t.Fatalf("share text %q, want %q", share.Text, want)
	}
}

func TestGuessesAreScopedPerPlayer(t *testing.T) {
	ts, c1 := newTestEnv(t)
	jar, _ := cookiejar.New(nil)
	c2 := &http.Client{Jar: jar}

	res := postJSON(t, c1, ts.URL+"/daily/guess", map[string]string{"name": missName(t)})
	res.Body.Close()

	// A different client (different anon cookie) starts clean.
	var state struct {
		Guesses []json.RawMessage `json:"guesses"`
	}
	res, err := c2.Get(ts.URL + "/daily/state")
	if err != nil {
		t.Fatalf("GET /daily/state: %v", err)
	}
	decode(t, res, &state)
	if len(state.Guesses) != 0 {
		t.Fatalf("second player sees %d guesses", len(state.Guesses))
	}
}

func TestAuthSignupAndMe(t *testing.T) {
	ts, c := newTestEnv(t)

	res := postJSON(t, c, ts.URL+"/auth/signup", map[string]string{"username": "donkey", "password": "bananahoard"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("signup status %d", res.StatusCode)
	}
	var u struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decode(t, res, &u)
	if u.ID == "" || u.Username != "donkey" {
		t.Fatalf("signup response: %+v", u)
	}

	var me struct {
		Username string `json:"username"`
	}
	res, err := c.Get(ts.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("me status %d", res.StatusCode)
	}
	decode(t, res, &me)
	if me.Username != "donkey" {
		t.Fatalf("me: %+v", me)
	}

	// Duplicate username is a conflict.
	res = postJSON(t, c, ts.URL+"/auth/signup", map[string]string{"username": "donkey", "password": "bananahoard"})
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup status %d, want 409", res.StatusCode)
	}
}

func TestLocations(t *testing.T) {
	ts, c := newTestEnv(t)
	var body struct {
		Locations []string `json:"locations"`
	}
	res, err := c.Get(ts.URL + "/locations")
	if err != nil {
		t.Fatalf("GET /locations: %v", err)
	}
	decode(t, res, &body)
	if len(body.Locations) != 3 || body.Locations[0] != "Mountain Top" {
		t.Fatalf("locations: %+v", body.Locations)
	}
}
