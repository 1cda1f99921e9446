// Package crypt holds the key derivation and the XOR stream mask used by the
// encrypted zero-width carrier. Neither is meant as a security boundary: the
// mask is a plain repeating-key XOR and the keyless mode derives its secret
// from public text and the wall clock.
package crypt
