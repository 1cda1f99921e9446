// Package stego provides the command-line interface for the stego tool. It
// configures subcommands (encode, decode, the per-carrier groups, inspect,
// scan, etc.), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/bytebaker/stego/cmd/stego"
//	func main() { stego.Execute() }
package stego
