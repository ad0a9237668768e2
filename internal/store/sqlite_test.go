package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`CREATE TABLE kv_state (
		key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL
	)`); err != nil {
		t.Fatalf("create kv_state: %v", err)
	}
	return db
}

func TestSQLiteSetGet(t *testing.T) {
	ctx := context.Background()
	kv := NewSQLite(openTestDB(t))

	if _, found, err := kv.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get missing: found=%v err=%v", found, err)
	}
	if err := kv.Set(ctx, "k", []byte("one")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, found, err := kv.Get(ctx, "k")
	if err != nil || !found || string(v) != "one" {
		t.Fatalf("Get: v=%q found=%v err=%v", v, found, err)
	}

	if err := kv.Set(ctx, "k", []byte("two")); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	v, _, _ = kv.Get(ctx, "k")
	if string(v) != "two" {
		t.Fatalf("overwrite lost: %q", v)
	}
}

func TestSQLiteClaim(t *testing.T) {
	ctx := context.Background()
	kv := NewSQLite(openTestDB(t))

	_ = kv.Set(ctx, "kongdle_anon1_2024_1_2", []byte("session"))
	_ = kv.Set(ctx, "kongdle_anon1_stats", []byte("stats"))
	// Account already has stats of its own; the claim must not clobber it.
	_ = kv.Set(ctx, "kongdle_user9_stats", []byte("account stats"))

	if err := kv.Claim(ctx, "kongdle_anon1", "kongdle_user9"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	v, found, _ := kv.Get(ctx, "kongdle_user9_2024_1_2")
	if !found || string(v) != "session" {
		t.Fatalf("session not claimed: found=%v v=%q", found, v)
	}
	v, _, _ = kv.Get(ctx, "kongdle_user9_stats")
	if string(v) != "account stats" {
		t.Fatalf("claim clobbered account stats: %q", v)
	}
	if _, found, _ := kv.Get(ctx, "kongdle_anon1_2024_1_2"); found {
		t.Fatal("claimed session still under anon namespace")
	}
}

func TestSQLiteClaimNoops(t *testing.T) {
	ctx := context.Background()
	kv := NewSQLite(openTestDB(t))
	_ = kv.Set(ctx, "ns_stats", []byte("x"))

	for _, tc := range [][2]string{{"", "ns"}, {"ns", ""}, {"ns", "ns"}} {
		if err := kv.Claim(ctx, tc[0], tc[1]); err != nil {
			t.Fatalf("Claim(%q,%q): %v", tc[0], tc[1], err)
		}
	}
	if _, found, _ := kv.Get(ctx, "ns_stats"); !found {
		t.Fatal("no-op claim moved state")
	}
}
