package carrier

import "github.com/bytebaker/stego/internal/frame"

// Zero width space, non-joiner, joiner and no-break space for 00, 01, 10, 11.
var invisibleAlphabet = newAlphabet(2, []string{"\u200b", "\u200c", "\u200d", "\ufeff"})

// invisible appends two bits per zero-width codepoint to the host.
//
// Decoding only looks at the run of codepoints that ends the text, so a text
// encoded several times yields the frame at the start of that final run.
type invisible struct{}

func (invisible) ID() ID { return InvisibleCodepoint }

func (invisible) Encode(host string, secret []byte, _ string) (string, error) {
	bits, err := frame.Pack(secret)
	if err != nil {
		return "", err
	}
	if bits == nil {
		return host, nil
	}
	return appendSymbols(host, invisibleAlphabet.toSymbols(bits)), nil
}

func (invisible) Extract(stego string) (frame.Bits, error) {
	values := trailingRunValues(invisibleAlphabet, stego)
	if len(values) == 0 {
		return nil, ErrNoSymbols
	}
	return frame.FromChunks(values, invisibleAlphabet.width), nil
}

// Decode returns the last complete frame of the trailing run. Re-encoding an
// already encoded text appends a new frame right after the old one, so the
// most recent payload wins.
func (c invisible) Decode(stego string, _ string) ([]byte, error) {
	bits, err := c.Extract(stego)
	if err != nil {
		return unpack(bits, err)
	}
	payload, err := frame.Unpack(bits)
	if err != nil {
		return nil, err
	}
	for pos := symbolBits(len(payload)); len(payload) > 0 && pos < len(bits); {
		next, err := frame.Unpack(bits[pos:])
		if err != nil || len(next) == 0 {
			break
		}
		payload = next
		pos += symbolBits(len(next))
	}
	return payload, nil
}

// symbolBits is the frame size for an n-byte payload rounded up to whole
// two-bit symbols.
func symbolBits(n int) int {
	return SymbolCount(InvisibleCodepoint, n) * invisibleAlphabet.width
}
