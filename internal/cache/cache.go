// Package cache persists per-file scan results keyed by content digest so
// unchanged files are not inspected again.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/bytebaker/stego/internal/types"
)

const (
	// FileName is the cache file written at the scan root.
	FileName = ".stegocache.json"
	// GitFileName is used instead when the root has a .git directory.
	GitFileName = "stegocache.json"
)

// Entry is the cached outcome for one file.
type Entry struct {
	Digest   string          `json:"digest"`
	Findings []types.Finding `json:"findings,omitempty"`
}

type DB struct {
	// Path relative to the scan root -> last seen digest and findings
	Entries map[string]Entry `json:"entries"`
}

// Lookup returns the cached findings for rel if its digest is unchanged.
func (db DB) Lookup(rel, digest string) ([]types.Finding, bool) {
	e, ok := db.Entries[rel]
	if !ok || e.Digest != digest {
		return nil, false
	}
	return e.Findings, true
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, GitFileName)
	}
	return filepath.Join(root, FileName)
}

func Load(root string) (DB, error) {
	var db DB
	f, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0644)
}
