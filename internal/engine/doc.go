// Package engine walks a directory tree and runs every carrier's extractor
// over each text file, reporting files that carry hidden symbols. This
// package is internal; external consumers should use pkg/stego.
package engine
