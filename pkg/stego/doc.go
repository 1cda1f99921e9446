// Package stego provides a small, stable facade over the text carriers and
// the directory scanner for programs that embed stego as a library.
//
// Example:
//
//	out, err := stego.EncodeText(stego.Emoticon, "Hello World", "hi", "")
//	if err != nil { /* handle */ }
//	msg, err := stego.DecodeText(stego.Emoticon, out, "")
package stego
