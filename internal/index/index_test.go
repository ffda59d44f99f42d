package index

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/journal"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "dagaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpsertAndList(t *testing.T) {
	db := testDB(t)

	older := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	if err := db.UpsertEntry(EntryRow{Path: "sessions/a.md", Title: "A", Checksum: "1", ClosedAt: older}, "body a"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := db.UpsertEntry(EntryRow{Path: "sessions/b.md", Title: "B", Checksum: "2", ClosedAt: newer}, "body b"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	entries, total, err := db.ListEntries(10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("total = %d, len = %d, want 2/2", total, len(entries))
	}
	if entries[0].Path != "sessions/b.md" {
		t.Errorf("newest first: entries[0] = %q", entries[0].Path)
	}
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "a.md", Title: "old", Checksum: "1", ClosedAt: time.Now()}, "old")
	_ = db.UpsertEntry(EntryRow{Path: "a.md", Title: "new", Checksum: "2", ClosedAt: time.Now()}, "new")

	entries, total, _ := db.ListEntries(10, 0)
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if entries[0].Title != "new" || entries[0].Checksum != "2" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "a.md", Title: "Session one", ClosedAt: time.Now()}, "fixed the chunker")
	_ = db.UpsertEntry(EntryRow{Path: "b.md", Title: "Session two", ClosedAt: time.Now()}, "wrote docs")

	hits, err := db.Search("chunker", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "a.md" {
		t.Errorf("hits = %v", hits)
	}
	if hits[0].Snippet == "" {
		t.Error("empty snippet")
	}
}

func TestDeleteEntry(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "a.md", ClosedAt: time.Now()}, "x")
	if err := db.DeleteEntry("a.md"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, total, _ := db.ListEntries(10, 0)
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestSync(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	store, err := journal.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	_ = store.Write("sessions/a.md", []byte("## Session A\n- one\n"))
	_ = store.Write("sessions/b.md", []byte("plain body\n"))

	if err := Sync(db, store, testLogger()); err != nil {
		t.Fatalf("sync: %v", err)
	}

	entries, total, _ := db.ListEntries(10, 0)
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	titles := map[string]string{}
	for _, e := range entries {
		titles[e.Path] = e.Title
	}
	if titles["sessions/a.md"] != "Session A" {
		t.Errorf("title = %q, want heading", titles["sessions/a.md"])
	}
	if titles["sessions/b.md"] != "sessions/b.md" {
		t.Errorf("title = %q, want path fallback", titles["sessions/b.md"])
	}

	// Removing a file then re-syncing drops the stale entry.
	_ = store.Delete("sessions/b.md")
	if err := Sync(db, store, testLogger()); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	_, total, _ = db.ListEntries(10, 0)
	if total != 1 {
		t.Errorf("total after delete = %d, want 1", total)
	}
}
