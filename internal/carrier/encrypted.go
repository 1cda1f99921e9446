package carrier

import (
	"fmt"
	"time"

	"github.com/bytebaker/stego/internal/crypt"
	"github.com/bytebaker/stego/internal/frame"
	"github.com/bytebaker/stego/internal/validate"
)

// Eight zero-width and invisible-operator codepoints for the values 0..7.
var encryptedAlphabet = newAlphabet(3, []string{
	"\u200b", "\u200c", "\u200d", "\u2060",
	"\u2061", "\u2062", "\u2063", "\u2064",
})

// Every byte is spread over three symbols carrying 3, 3 and 2 bits.
const symbolsPerByte = 3

// encrypted masks the payload with a derived key and appends the
// length-prefixed ciphertext as zero-width codepoints. The length prefix
// itself stays in the clear.
type encrypted struct {
	now func() time.Time
}

func (encrypted) ID() ID { return EncryptedCodepoint }

func (c encrypted) Encode(host string, secret []byte, key string) (string, error) {
	if len(secret) == 0 {
		return host, nil
	}
	if len(secret) > frame.MaxPayload {
		return "", fmt.Errorf("%w: %d bytes (max %d)", frame.ErrPayloadTooLarge, len(secret), frame.MaxPayload)
	}
	k := crypt.DeriveKey(encryptedAlphabet.strip(host), key, c.now())
	framed, err := frame.Header(crypt.XOR(secret, k))
	if err != nil {
		return "", err
	}
	symbols := make([]string, 0, len(framed)*symbolsPerByte)
	for _, b := range framed {
		symbols = append(symbols,
			encryptedAlphabet.symbol(b>>5),
			encryptedAlphabet.symbol(b>>2&0x7),
			encryptedAlphabet.symbol(b&0x3),
		)
	}
	return appendSymbols(host, symbols), nil
}

// Extract reads the run of alphabet codepoints that ends the text and
// regroups each triple into a byte, starting where a frame that ends exactly
// at the end of the run begins. Zero-width characters of the host before that
// point (emoji joiners, ZWNJ in Persian words, an older payload) are skipped.
// When no such frame exists the whole run is grouped and an incomplete
// trailing triple is dropped.
func (encrypted) Extract(stego string) (frame.Bits, error) {
	values := trailingRunValues(encryptedAlphabet, stego)
	if len(values) == 0 {
		return nil, ErrNoSymbols
	}
	if start := frameStart(values); start > 0 {
		values = values[start:]
	}
	out := make([]byte, 0, len(values)/symbolsPerByte)
	for i := 0; i+symbolsPerByte <= len(values); i += symbolsPerByte {
		out = append(out, joinTriple(values[i:]))
	}
	return frame.FromBytes(out), nil
}

// frameStart returns the first offset in values at which a well-formed
// non-empty frame begins and runs exactly to the end, or -1.
func frameStart(values []uint8) int {
	const headerSymbols = 2 * symbolsPerByte
	for i := 0; i+headerSymbols <= len(values); i++ {
		rest := values[i:]
		if !wellFormed(rest) {
			continue
		}
		n := int(joinTriple(rest))<<8 | int(joinTriple(rest[symbolsPerByte:]))
		if n > 0 && len(rest) == (2+n)*symbolsPerByte {
			return i
		}
	}
	return -1
}

// wellFormed reports whether values splits into whole triples whose last
// symbol carries two bits, as Encode writes them.
func wellFormed(values []uint8) bool {
	if len(values)%symbolsPerByte != 0 {
		return false
	}
	for i := symbolsPerByte - 1; i < len(values); i += symbolsPerByte {
		if values[i] > 0x3 {
			return false
		}
	}
	return true
}

func joinTriple(v []uint8) byte {
	return v[0]<<5 | v[1]<<2 | v[2]&0x3
}

func (c encrypted) Decode(stego string, key string) ([]byte, error) {
	ciphertext, err := unpack(c.Extract(stego))
	if err != nil || len(ciphertext) == 0 {
		return ciphertext, err
	}
	k := crypt.DeriveKey(encryptedAlphabet.strip(stego), key, c.now())
	plain := crypt.XOR(ciphertext, k)
	if key == "" && !validate.LooksLikeText(plain) {
		return nil, ErrLikelyWrongKey
	}
	return plain, nil
}
