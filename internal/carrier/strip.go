package carrier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bytebaker/stego/internal/frame"
)

// StripPayloads removes the zero-width payloads that end text and returns the
// cleaned text with the number of runes removed. Only spans that decode as a
// complete 4spach or ait-steg frame are removed, repeatedly, so stacked
// payloads all go. Zero-width characters that belong to the text itself
// (emoji joiners, ZWNJ inside words) are left alone, as is trailing
// whitespace after the payload.
func StripPayloads(text string) (string, int) {
	body := strings.TrimRightFunc(text, unicode.IsSpace)
	tail := text[len(body):]
	removed := 0
	for {
		cut := payloadStart(body)
		if cut < 0 {
			break
		}
		removed += utf8.RuneCountInString(body[cut:])
		body = body[:cut]
	}
	return body + tail, removed
}

// payloadStart returns the byte offset of a complete zero-width frame that
// ends s, or -1. The two alphabets share three codepoints, so when both
// carriers see a frame the one reaching further back wins; the other is a
// piece of it.
func payloadStart(s string) int {
	cut := -1
	if start, values := trailingRun(encryptedAlphabet, s); len(values) > 0 {
		if i := frameStart(values); i >= 0 {
			cut = skipRunes(s, start, i)
		}
	}
	if start, values := trailingRun(invisibleAlphabet, s); len(values) > 0 {
		p, err := frame.Unpack(frame.FromChunks(values, invisibleAlphabet.width))
		if err == nil && len(p) > 0 && (cut < 0 || start < cut) {
			cut = start
		}
	}
	return cut
}
