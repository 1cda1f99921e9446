package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNonPrintable is the largest share of non-printable runes a decoded
// payload may contain before it is treated as garbage.
const MaxNonPrintable = 0.30

// IsAlphabet returns true if all runes in s are in the allowed set.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(allowed, r) {
			return false
		}
	}
	return true
}

// ContainsOutside reports whether s has at least one rune not in set.
func ContainsOutside(s, set string) bool {
	return s != "" && !IsAlphabet(s, set)
}

// NonPrintableRatio returns the share of runes in s that are neither
// printable nor ordinary whitespace. Invalid UTF-8 sequences count as
// non-printable. The ratio of an empty string is 0.
func NonPrintableRatio(s string) float64 {
	total, bad := 0, 0
	for _, r := range s {
		total++
		switch {
		case r == utf8.RuneError:
			bad++
		case r == '\n' || r == '\r' || r == '\t':
		case !unicode.IsPrint(r):
			bad++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(bad) / float64(total)
}

// LooksLikeText reports whether b is valid UTF-8 with at most
// MaxNonPrintable non-printable runes.
func LooksLikeText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	return NonPrintableRatio(string(b)) <= MaxNonPrintable
}
