// Package carrier implements the four text carriers. Each one frames the
// payload with a 16-bit length prefix, maps fixed-width bit chunks onto its
// alphabet and embeds the symbols in the host text:
//
//   - 4spach (InvisibleCodepoint): zero-width codepoints appended to the host
//   - ait-steg (EncryptedCodepoint): XOR-masked payload as zero-width codepoints
//   - twsm (FormattingMarkup): *, **, _ and __ around host words
//   - em-st (Emoticon): emoticon tokens placed between host words
//
// Alphabets are read-only after package init and carriers keep no state
// between calls, so everything here is safe for concurrent use.
package carrier
