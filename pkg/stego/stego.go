package stego

import (
	"fmt"
	"unicode/utf8"

	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/engine"
	"github.com/bytebaker/stego/internal/frame"
	"github.com/bytebaker/stego/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Carrier = carrier.ID
	Probe   = carrier.Probe
	Config  = engine.Config
	Result  = engine.Result
	Finding = types.Finding
)

const (
	InvisibleCodepoint = carrier.InvisibleCodepoint
	EncryptedCodepoint = carrier.EncryptedCodepoint
	FormattingMarkup   = carrier.FormattingMarkup
	Emoticon           = carrier.Emoticon
)

// MaxPayload is the largest secret, in bytes, any carrier accepts.
const MaxPayload = frame.MaxPayload

var (
	ErrPayloadTooLarge = frame.ErrPayloadTooLarge
	ErrTruncated       = frame.ErrTruncated
	ErrNoSymbols       = carrier.ErrNoSymbols
	ErrInvalidEncoding = carrier.ErrInvalidEncoding
	ErrLikelyWrongKey  = carrier.ErrLikelyWrongKey
	ErrUnknownCarrier  = carrier.ErrUnknownCarrier
	ErrNoHostWords     = carrier.ErrNoHostWords
	ErrHostHasSymbols  = carrier.ErrHostHasSymbols
)

// Encode hides secret in host using the given carrier. key is only used by
// EncryptedCodepoint; an empty key selects the time-bucketed keyless mode.
func Encode(c Carrier, host string, secret []byte, key string) (string, error) {
	return carrier.Encode(c, host, secret, key)
}

// Decode recovers the raw payload bytes hidden in text.
func Decode(c Carrier, text string, key string) ([]byte, error) {
	return carrier.Decode(c, text, key)
}

// EncodeText is Encode for string secrets.
func EncodeText(c Carrier, host, secret, key string) (string, error) {
	return Encode(c, host, []byte(secret), key)
}

// DecodeText decodes a payload and requires it to be valid UTF-8.
func DecodeText(c Carrier, text string, key string) (string, error) {
	b, err := Decode(c, text, key)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", ErrInvalidEncoding)
	}
	return string(b), nil
}

// ParseCarrier resolves a carrier by name or alias.
func ParseCarrier(name string) (Carrier, error) { return carrier.Parse(name) }

// Carriers returns every carrier in a stable order.
func Carriers() []Carrier { return carrier.All() }

// SymbolCount returns how many symbols c emits for an n-byte payload.
func SymbolCount(c Carrier, n int) int { return carrier.SymbolCount(c, n) }

// Inspect reports what every carrier can see in text without decoding it.
func Inspect(text string) []Probe { return carrier.Inspect(text) }

// Scan walks cfg.Root and returns files that carry hidden payloads.
func Scan(cfg Config) ([]Finding, error) {
	return engine.Scan(cfg)
}

// ScanWithStats is Scan with file counts and timing.
func ScanWithStats(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}
