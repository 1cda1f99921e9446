package carrier

import (
	"fmt"
	"strings"

	"github.com/bytebaker/stego/internal/frame"
)

// Sixteen emoticons for the nibbles 0000..1111, plus look-alike tokens that
// are recognised while scanning but carry no bits.
var emoticonAlphabet = newAlphabet(4,
	[]string{
		":)", ":(", ":D", ":P", ":|", ":/", `:\`, ":o",
		":!", ":?", "{}", "[]", "()", "<>", "++", "--",
	},
	`""`, "''", "**", "//", `\\`, "||", "&&", "@@", "##", "$$", "%%", "^^", "~~",
)

// emoticon interleaves one emoticon per nibble after successive host words.
// Hosts that already contain one of the sixteen emoticons (including inside
// words, such as the ":/" of a URL) are rejected with ErrHostHasSymbols since
// decoding could not tell them from the payload.
type emoticon struct{}

func (emoticon) ID() ID { return Emoticon }

func (emoticon) Encode(host string, secret []byte, _ string) (string, error) {
	bits, err := frame.Pack(secret)
	if err != nil {
		return "", err
	}
	if bits == nil {
		return host, nil
	}
	for _, m := range scanTokens(emoticonAlphabet, host) {
		if _, ok := emoticonAlphabet.value(m.tok); ok {
			return "", fmt.Errorf("%w: %q at byte %d", ErrHostHasSymbols, m.tok, m.pos)
		}
	}
	return interleave(strings.Fields(host), emoticonAlphabet.toSymbols(bits)), nil
}

func (emoticon) Extract(stego string) (frame.Bits, error) {
	var values []uint8
	for _, m := range scanTokens(emoticonAlphabet, stego) {
		if v, ok := emoticonAlphabet.value(m.tok); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, ErrNoSymbols
	}
	return frame.FromChunks(values, emoticonAlphabet.width), nil
}

func (c emoticon) Decode(stego string, _ string) ([]byte, error) {
	return unpack(c.Extract(stego))
}
