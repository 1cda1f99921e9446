// Package redact rewrites files in place to remove hidden symbols.
package redact

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/bytebaker/stego/internal/carrier"
)

// Replacement substitutes every match of Pattern with Replace. When Func is
// set it rewrites the whole text instead and reports how many units it
// removed or replaced.
type Replacement struct {
	Pattern *regexp.Regexp
	Replace string
	Func    func(string) (string, int)
}

func (r Replacement) apply(s string) (string, int) {
	if r.Func != nil {
		return r.Func(s)
	}
	n := len(r.Pattern.FindAllStringIndex(s, -1))
	if n == 0 {
		return s, 0
	}
	return r.Pattern.ReplaceAllString(s, r.Replace), n
}

// CarrierPayloads removes complete zero-width payloads from the end of a
// text and leaves every other zero-width character in place.
func CarrierPayloads() Replacement {
	return Replacement{Func: carrier.StripPayloads}
}

// Count returns how many matches reps would replace in s.
func Count(s string, reps []Replacement) int {
	total := 0
	for _, r := range reps {
		var n int
		s, n = r.apply(s)
		total += n
	}
	return total
}

func rewrite(s string, reps []Replacement) string {
	for _, r := range reps {
		s, _ = r.apply(s)
	}
	return s
}

// WouldChange reports whether Apply would modify the file.
func WouldChange(path string, reps []Replacement) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	s := string(b)
	return rewrite(s, reps) != s, nil
}

// Apply rewrites the file with reps applied and reports whether it changed.
// The new content goes to a temporary file in the same directory that is
// then renamed over the original, keeping its permissions.
func Apply(path string, reps []Replacement) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out := rewrite(string(b), reps)
	if out == string(b) {
		return false, nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".redact-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(out); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
