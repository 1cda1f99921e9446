package carrier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytebaker/stego/internal/frame"
)

// ID names one of the embedding schemes.
type ID int

const (
	InvisibleCodepoint ID = iota + 1
	EncryptedCodepoint
	FormattingMarkup
	Emoticon
)

// Carrier hides a framed payload in host text and recovers it.
// An empty key means no key was supplied.
type Carrier interface {
	ID() ID
	Encode(host string, secret []byte, key string) (string, error)
	Decode(stego string, key string) ([]byte, error)
	// Extract returns the raw bit string carried by stego, before any
	// unmasking. It fails with ErrNoSymbols when stego carries nothing.
	Extract(stego string) (frame.Bits, error)
}

type info struct {
	name    string
	aliases []string
	desc    string
}

var infos = map[ID]info{
	InvisibleCodepoint: {"4spach", []string{"invisible", "zw"}, "four zero-width codepoints appended to the text"},
	EncryptedCodepoint: {"ait-steg", []string{"encrypted", "ait"}, "eight zero-width codepoints, payload masked with a derived key"},
	FormattingMarkup:   {"twsm", []string{"markup", "format"}, "bold/italic markers wrapped around host words"},
	Emoticon:           {"em-st", []string{"emoticon", "emoji"}, "ASCII emoticons interleaved with host words"},
}

// All returns every carrier ID in a stable order.
func All() []ID {
	return []ID{InvisibleCodepoint, EncryptedCodepoint, FormattingMarkup, Emoticon}
}

func (id ID) String() string {
	if in, ok := infos[id]; ok {
		return in.name
	}
	return fmt.Sprintf("carrier(%d)", int(id))
}

// Aliases returns the alternative names accepted by Parse.
func (id ID) Aliases() []string {
	return append([]string(nil), infos[id].aliases...)
}

// Description is a one-line summary of the channel.
func (id ID) Description() string {
	return infos[id].desc
}

// Keyed reports whether the carrier uses the key argument.
func (id ID) Keyed() bool {
	return id == EncryptedCodepoint
}

func (id ID) MarshalText() ([]byte, error) {
	if _, ok := infos[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCarrier, int(id))
	}
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Parse resolves a carrier by name or alias, ignoring case.
func Parse(name string) (ID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, id := range All() {
		in := infos[id]
		if n == in.name {
			return id, nil
		}
		for _, a := range in.aliases {
			if n == a {
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCarrier, name)
}

type options struct {
	now func() time.Time
}

// Option customises a carrier built by New.
type Option func(*options)

// WithClock sets the time source used by the keyless encrypted mode.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the carrier for id.
func New(id ID, opts ...Option) (Carrier, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	switch id {
	case InvisibleCodepoint:
		return invisible{}, nil
	case EncryptedCodepoint:
		return encrypted{now: o.now}, nil
	case FormattingMarkup:
		return markup{}, nil
	case Emoticon:
		return emoticon{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCarrier, int(id))
	}
}

// Encode hides secret in host with the carrier named by id.
func Encode(id ID, host string, secret []byte, key string) (string, error) {
	c, err := New(id)
	if err != nil {
		return "", err
	}
	return c.Encode(host, secret, key)
}

// Decode recovers the payload hidden in stego with the carrier named by id.
func Decode(id ID, stego string, key string) ([]byte, error) {
	c, err := New(id)
	if err != nil {
		return nil, err
	}
	return c.Decode(stego, key)
}

// SymbolCount returns how many symbols id emits for an n-byte payload.
func SymbolCount(id ID, n int) int {
	if n <= 0 {
		return 0
	}
	bits := frame.BitLen(n)
	switch id {
	case InvisibleCodepoint, FormattingMarkup:
		return (bits + 1) / 2
	case Emoticon:
		return (bits + 3) / 4
	case EncryptedCodepoint:
		return symbolsPerByte * (2 + n)
	}
	return 0
}

// unpack turns extracted bits into a payload; no symbols means no payload.
func unpack(bits frame.Bits, err error) ([]byte, error) {
	if errors.Is(err, ErrNoSymbols) {
		return []byte{}, nil
	}
	if err != nil {
		return nil, err
	}
	return frame.Unpack(bits)
}
