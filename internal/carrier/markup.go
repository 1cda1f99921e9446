package carrier

import (
	"strings"

	"github.com/bytebaker/stego/internal/frame"
	"github.com/bytebaker/stego/internal/validate"
)

// markerRunes are the runes markers are built from.
const markerRunes = "*_"

// Italic, bold, underscore italic and underscore bold for 00, 01, 10, 11.
// Each marker is placed on both sides of a host word.
var markupAlphabet = newAlphabet(2, []string{"*", "**", "_", "__"})

// markup wraps successive host words in formatting markers, two bits per
// word, cycling through the words again when the payload outlasts the host.
//
// Words that carry a symbol lose any '*' or '_' already on their edges, so
// "_init_" comes out as "*init*" rather than "**_init_**", which would not
// decode. Interior markers ("snake_case") and words made only of markers are
// kept as they are. Host whitespace is normalised to single spaces.
type markup struct{}

func (markup) ID() ID { return FormattingMarkup }

func (markup) Encode(host string, secret []byte, _ string) (string, error) {
	bits, err := frame.Pack(secret)
	if err != nil {
		return "", err
	}
	if bits == nil {
		return host, nil
	}
	markers := markupAlphabet.toSymbols(bits)
	words := strings.Fields(host)
	var usable []string
	for _, w := range words {
		if validate.ContainsOutside(w, markerRunes) {
			usable = append(usable, w)
		}
	}
	if len(usable) == 0 {
		return "", ErrNoHostWords
	}

	out := make([]string, 0, len(words)+len(markers))
	mi := 0
	for _, w := range words {
		if mi < len(markers) && validate.ContainsOutside(w, markerRunes) {
			out = append(out, wrap(w, markers[mi]))
			mi++
			continue
		}
		out = append(out, w)
	}
	for i := 0; mi < len(markers); i++ {
		out = append(out, wrap(usable[i%len(usable)], markers[mi]))
		mi++
	}
	return strings.Join(out, " "), nil
}

// wrap trims marker runes off the word's edges so the result always starts
// and ends with exactly the chosen marker.
func wrap(word, marker string) string {
	return marker + strings.Trim(word, markerRunes) + marker
}

func (markup) Extract(stego string) (frame.Bits, error) {
	var values []uint8
	for _, tok := range strings.Fields(stego) {
		if v, ok := formattedValue(tok); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, ErrNoSymbols
	}
	return frame.FromChunks(values, markupAlphabet.width), nil
}

// formattedValue reports which marker, tried longest first, wraps tok. The
// wrapped part must hold at least one non-marker rune.
func formattedValue(tok string) (uint8, bool) {
	for _, m := range markupAlphabet.order {
		if len(tok) <= 2*len(m) || !strings.HasPrefix(tok, m) || !strings.HasSuffix(tok, m) {
			continue
		}
		if validate.ContainsOutside(tok[len(m):len(tok)-len(m)], markerRunes) {
			return markupAlphabet.value(m)
		}
	}
	return 0, false
}

func (c markup) Decode(stego string, _ string) ([]byte, error) {
	return unpack(c.Extract(stego))
}
