package frame

import (
	"encoding/binary"
	"fmt"
)

// MaxPayload is the largest payload a 16-bit length prefix can describe.
const MaxPayload = 1<<16 - 1

// HeaderBits is the width of the length prefix.
const HeaderBits = 16

// Bits is an ordered bit string; every element is 0 or 1.
type Bits []byte

// BitLen returns the framed bit count for an n-byte payload.
func BitLen(n int) int {
	return HeaderBits + 8*n
}

// Pack frames secret as a 16-bit big-endian length followed by the data bits,
// most significant bit first. An empty secret yields nil bits and no error;
// callers treat that as "nothing to embed".
func Pack(secret []byte) (Bits, error) {
	if len(secret) == 0 {
		return nil, nil
	}
	h, err := Header(secret)
	if err != nil {
		return nil, err
	}
	return FromBytes(h), nil
}

// Unpack reads a frame from bits. Bits past the declared length are ignored.
func Unpack(bits Bits) ([]byte, error) {
	if len(bits) < HeaderBits {
		return nil, fmt.Errorf("%w: %d bits, need %d for length prefix", ErrTruncated, len(bits), HeaderBits)
	}
	n, _, _ := SplitHeader(bits[:HeaderBits].Bytes())
	if n == 0 {
		return []byte{}, nil
	}
	need := BitLen(n)
	if len(bits) < need {
		return nil, fmt.Errorf("%w: declared %d bytes, have %d of %d bits", ErrTruncated, n, len(bits), need)
	}
	return bits[HeaderBits:need].Bytes(), nil
}

// Header returns the length-prefixed byte form of secret.
func Header(secret []byte) ([]byte, error) {
	if len(secret) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(secret), MaxPayload)
	}
	out := make([]byte, 2+len(secret))
	binary.BigEndian.PutUint16(out, uint16(len(secret)))
	copy(out[2:], secret)
	return out, nil
}

// SplitHeader separates a length-prefixed buffer into its declared length and
// the bytes that follow the prefix (possibly more than declared).
func SplitHeader(b []byte) (int, []byte, error) {
	if len(b) < 2 {
		return 0, nil, fmt.Errorf("%w: %d bytes, need 2 for length prefix", ErrTruncated, len(b))
	}
	return int(binary.BigEndian.Uint16(b)), b[2:], nil
}

// FromBytes expands b into bits, most significant bit first.
func FromBytes(b []byte) Bits {
	out := make(Bits, 0, len(b)*8)
	for _, c := range b {
		for i := 7; i >= 0; i-- {
			out = append(out, (c>>uint(i))&1)
		}
	}
	return out
}

// Bytes regroups bits into bytes, most significant bit first. A trailing
// partial byte is dropped.
func (b Bits) Bytes() []byte {
	out := make([]byte, len(b)/8)
	for i := range out {
		var c byte
		for _, bit := range b[i*8 : i*8+8] {
			c = c<<1 | bit&1
		}
		out[i] = c
	}
	return out
}

// Chunks splits bits into width-bit values, right-padding the last chunk with
// zero bits.
func (b Bits) Chunks(width int) []uint8 {
	if width <= 0 || width > 8 {
		panic(fmt.Sprintf("frame: invalid chunk width %d", width))
	}
	out := make([]uint8, 0, (len(b)+width-1)/width)
	for i := 0; i < len(b); i += width {
		var v uint8
		for j := 0; j < width; j++ {
			v <<= 1
			if i+j < len(b) {
				v |= b[i+j] & 1
			}
		}
		out = append(out, v)
	}
	return out
}

// FromChunks is the inverse of Chunks: each value contributes its low width
// bits, most significant first.
func FromChunks(values []uint8, width int) Bits {
	out := make(Bits, 0, len(values)*width)
	for _, v := range values {
		for i := width - 1; i >= 0; i-- {
			out = append(out, (v>>uint(i))&1)
		}
	}
	return out
}
