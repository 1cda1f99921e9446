package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytebaker/stego/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir)
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	db.Entries["a.txt"] = Entry{Digest: "deadbeef", Findings: []types.Finding{{Path: "a.txt", Carrier: "em-st"}}}
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".stegocache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	db2, err := Load(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	fs, ok := db2.Lookup("a.txt", "deadbeef")
	if !ok || len(fs) != 1 || fs[0].Carrier != "em-st" {
		t.Fatalf("unexpected entry: %#v ok=%v", fs, ok)
	}
	if _, ok := db2.Lookup("a.txt", "cafef00d"); ok {
		t.Fatal("changed digest must miss")
	}
}

func TestSave_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, DB{Entries: map[string]Entry{}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git", "stegocache.json")); err != nil {
		t.Fatalf("cache not under .git: %v", err)
	}
	if err := Save(dir, DB{}); err == nil {
		t.Fatal("expected error for nil entries")
	}
}
