package crypt

// XOR masks data with key repeated to data's length. Applying it twice with
// the same key restores the input. This is a reversible masking step only.
func XOR(data, key []byte) []byte {
	out := make([]byte, len(data))
	if len(key) == 0 {
		copy(out, data)
		return out
	}
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}
