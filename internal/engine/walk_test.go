package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytebaker/stego/internal/ignore"
)

func TestWalk_WithIncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	writeFile(t, dir, "b.go", "package main\n")
	writeFile(t, dir, "c.md", "doc")

	var ign ignore.Matcher

	// Include only *.go
	cfg := Config{Root: dir, IncludeGlobs: "**/*.go", MaxBytes: 1 << 20}
	var got []string
	err := Walk(context.Background(), cfg, ign, func(path string, _ []byte) { got = append(got, path) })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "b.go" {
		t.Fatalf("include globs failed, got %v", got)
	}

	// Exclude *.md
	got = nil
	cfg = Config{Root: dir, ExcludeGlobs: "**/*.md", MaxBytes: 1 << 20}
	if err := Walk(context.Background(), cfg, ign, func(path string, _ []byte) { got = append(got, path) }); err != nil {
		t.Fatal(err)
	}
	for _, p := range got {
		if p == "c.md" {
			t.Fatalf("exclude globs failed, saw %s", p)
		}
	}
}

func TestWalk_SkipsBinaryInlineIgnoreAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.txt", "hello")
	writeFile(t, dir, "nul.dat", "abc\x00def")
	writeFile(t, dir, "skip.txt", "# stego:ignore-file\ntext")
	writeFile(t, dir, "node_modules/dep.txt", "dep")
	writeFile(t, dir, "image.png", "\x89PNG\r\n\x1a\nrest")

	var got []string
	cfg := Config{Root: dir, DefaultExcludes: true}
	if err := Walk(context.Background(), cfg, ignore.Matcher{}, func(path string, _ []byte) { got = append(got, path) }); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "keep.txt" {
		t.Fatalf("expected only keep.txt, got %v", got)
	}
}

func TestWalk_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Walk(ctx, Config{Root: dir}, ignore.Matcher{}, func(string, []byte) {
		t.Fatal("handler must not run after cancellation")
	})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestCountTargets_IgnoreFileAndMaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "ok")
	// big file over threshold
	if err := os.WriteFile(filepath.Join(dir, "big.txt"), make([]byte, 2048), 0644); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "ignored.txt", "secret")
	writeFile(t, dir, ignore.FileName, "ignored.txt\n")

	n, err := CountTargets(Config{Root: dir, MaxBytes: 1024})
	if err != nil {
		t.Fatal(err)
	}
	// a.txt and the ignore file itself; big.txt is over the size cap and
	// ignored.txt is listed in the ignore file.
	if n != 2 {
		t.Fatalf("expected 2 targets, got %d", n)
	}
}
