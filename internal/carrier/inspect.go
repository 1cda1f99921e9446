package carrier

import "github.com/bytebaker/stego/internal/frame"

// Probe summarises what one carrier can see in a text without decoding it.
type Probe struct {
	Carrier ID `json:"carrier"`
	// Bits is the number of payload bits extracted.
	Bits int `json:"bits"`
	// Declared is the length prefix read from the first 16 bits, or -1 when
	// fewer than 16 bits were found.
	Declared int `json:"declared"`
	// Complete is true when a non-empty frame with all its declared bytes
	// is present.
	Complete bool `json:"complete"`
}

// Found reports whether the carrier saw any of its symbols.
func (p Probe) Found() bool { return p.Bits > 0 }

// Inspect runs every carrier's extractor over text.
func Inspect(text string) []Probe {
	out := make([]Probe, 0, len(All()))
	for _, id := range All() {
		c, _ := New(id)
		out = append(out, probe(c, text))
	}
	return out
}

func probe(c Carrier, text string) Probe {
	p := Probe{Carrier: c.ID(), Declared: -1}
	bits, err := c.Extract(text)
	if err != nil {
		return p
	}
	p.Bits = len(bits)
	if len(bits) >= frame.HeaderBits {
		n, _, _ := frame.SplitHeader(bits[:frame.HeaderBits].Bytes())
		p.Declared = n
		p.Complete = n > 0 && len(bits) >= frame.BitLen(n)
	}
	return p
}
