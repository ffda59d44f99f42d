package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempJournal(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	j := tempJournal(t)
	content := []byte("## Session 2026-08-29\n- did things\n")
	if err := j.Write("sessions/2026-08-29.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := j.Read("sessions/2026-08-29.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestAppend_CreatesWhenMissing(t *testing.T) {
	j := tempJournal(t)
	if err := j.Append("new.md", []byte("first entry\n")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := j.Read("new.md")
	if string(got) != "first entry\n" {
		t.Errorf("content = %q", got)
	}
}

func TestAppend_SeparatesEntries(t *testing.T) {
	j := tempJournal(t)
	_ = j.Append("day.md", []byte("entry one\n"))
	if err := j.Append("day.md", []byte("entry two\n")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := j.Read("day.md")
	if string(got) != "entry one\n\nentry two\n" {
		t.Errorf("content = %q", got)
	}
}

func TestAppend_AddsMissingNewline(t *testing.T) {
	j := tempJournal(t)
	_ = j.Write("day.md", []byte("no trailing newline"))
	_ = j.Append("day.md", []byte("next\n"))
	got, _ := j.Read("day.md")
	if !strings.HasPrefix(string(got), "no trailing newline\n\n") {
		t.Errorf("content = %q", got)
	}
}

func TestDelete(t *testing.T) {
	j := tempJournal(t)
	_ = j.Write("del.md", []byte("bye"))
	if err := j.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := j.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestList(t *testing.T) {
	j := tempJournal(t)
	_ = j.Write("sessions/a.md", []byte("a"))
	_ = j.Write("sessions/sub/b.md", []byte("b"))
	_ = j.Write("notes.txt", []byte("not md"))

	items, err := j.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
}

func TestTraversalBlocked(t *testing.T) {
	j := tempJournal(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := j.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := j.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	j := tempJournal(t)
	_ = j.Write("atomic.md", []byte("original"))
	if err := j.Write("atomic.md", []byte("updated")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := j.Read("atomic.md")
	if string(got) != "updated" {
		t.Errorf("content = %q", got)
	}
	matches, _ := filepath.Glob(filepath.Join(j.root, ".dagaz-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/dagaz-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "dagaz-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
