package carrier

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bytebaker/stego/internal/frame"
)

// alphabet is an immutable bidirectional table between chunk values and
// symbols. Tables are built once at init and shared by all calls.
type alphabet struct {
	width   int
	symbols []string
	values  map[string]uint8
	runes   map[rune]uint8 // set only when every symbol is a single rune
	// order lists symbols (and any recognised-but-silent tokens) longest
	// first, for scanning text that may hold variable-length tokens.
	order []string
}

func newAlphabet(width int, symbols []string, silent ...string) *alphabet {
	if len(symbols) != 1<<width {
		panic(fmt.Sprintf("carrier: alphabet of width %d needs %d symbols, got %d", width, 1<<width, len(symbols)))
	}
	a := &alphabet{
		width:   width,
		symbols: symbols,
		values:  make(map[string]uint8, len(symbols)),
		runes:   make(map[rune]uint8, len(symbols)),
	}
	for i, s := range symbols {
		if _, dup := a.values[s]; dup || s == "" {
			panic(fmt.Sprintf("carrier: invalid or duplicate symbol %q", s))
		}
		a.values[s] = uint8(i)
		if utf8.RuneCountInString(s) == 1 {
			r, _ := utf8.DecodeRuneInString(s)
			a.runes[r] = uint8(i)
		}
	}
	if len(a.runes) != len(symbols) {
		a.runes = nil
	}
	a.order = append(append([]string(nil), symbols...), silent...)
	sort.SliceStable(a.order, func(i, j int) bool { return len(a.order[i]) > len(a.order[j]) })
	return a
}

func (a *alphabet) symbol(v uint8) string {
	return a.symbols[v]
}

func (a *alphabet) value(s string) (uint8, bool) {
	v, ok := a.values[s]
	return v, ok
}

func (a *alphabet) runeValue(r rune) (uint8, bool) {
	v, ok := a.runes[r]
	return v, ok
}

func (a *alphabet) has(r rune) bool {
	_, ok := a.runes[r]
	return ok
}

// toSymbols maps bits to symbols chunk by chunk, zero-padding the last chunk.
func (a *alphabet) toSymbols(bits frame.Bits) []string {
	chunks := bits.Chunks(a.width)
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = a.symbols[c]
	}
	return out
}

// strip removes every alphabet rune from s.
func (a *alphabet) strip(s string) string {
	return strings.Map(func(r rune) rune {
		if a.has(r) {
			return -1
		}
		return r
	}, s)
}
