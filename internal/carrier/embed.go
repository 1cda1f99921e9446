package carrier

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// appendSymbols concatenates symbols after host with no separator.
func appendSymbols(host string, symbols []string) string {
	var b strings.Builder
	n := len(host)
	for _, s := range symbols {
		n += len(s)
	}
	b.Grow(n)
	b.WriteString(host)
	for _, s := range symbols {
		b.WriteString(s)
	}
	return b.String()
}

// runeValues returns the values of every alphabet rune in s, in order.
func runeValues(a *alphabet, s string) []uint8 {
	var out []uint8
	for _, r := range s {
		if v, ok := a.runeValue(r); ok {
			out = append(out, v)
		}
	}
	return out
}

// trailingRunValues returns the values of the run of alphabet runes that ends
// the text, ignoring trailing whitespace. Earlier symbols separated from the
// run by any other rune are not part of it.
func trailingRunValues(a *alphabet, s string) []uint8 {
	_, values := trailingRun(a, s)
	return values
}

// trailingRun is trailingRunValues that also returns the byte offset in s
// where the run starts.
func trailingRun(a *alphabet, s string) (int, []uint8) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	start := len(s)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:start])
		if !a.has(r) {
			break
		}
		start -= size
	}
	return start, runeValues(a, s[start:])
}

// skipRunes returns the byte offset n runes past off in s.
func skipRunes(s string, off, n int) int {
	for ; n > 0 && off < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// interleave places one symbol after each host word, appends any symbols
// left over, and keeps words beyond the last symbol unchanged.
func interleave(words, symbols []string) string {
	out := make([]string, 0, len(words)+len(symbols))
	si := 0
	for _, w := range words {
		out = append(out, w)
		if si < len(symbols) {
			out = append(out, symbols[si])
			si++
		}
	}
	out = append(out, symbols[si:]...)
	return strings.Join(out, " ")
}

type tokenMatch struct {
	pos int
	tok string
}

// scanTokens finds every occurrence of the alphabet's tokens in s. Tokens are
// tried longest first and a span claimed by one match cannot be reused by a
// later one; matches are returned in text order.
func scanTokens(a *alphabet, s string) []tokenMatch {
	claimed := make([]bool, len(s))
	var matches []tokenMatch
	for _, tok := range a.order {
		for i := 0; i+len(tok) <= len(s); {
			idx := strings.Index(s[i:], tok)
			if idx < 0 {
				break
			}
			start := i + idx
			end := start + len(tok)
			if !anyClaimed(claimed[start:end]) {
				for j := start; j < end; j++ {
					claimed[j] = true
				}
				matches = append(matches, tokenMatch{pos: start, tok: tok})
			}
			i = start + 1
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })
	return matches
}

func anyClaimed(span []bool) bool {
	for _, c := range span {
		if c {
			return true
		}
	}
	return false
}
