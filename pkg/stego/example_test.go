package stego_test

import (
	"fmt"
	"os"

	"github.com/bytebaker/stego/pkg/stego"
)

// ExampleEncodeText hides one byte between the words of a short host.
func ExampleEncodeText() {
	out, err := stego.EncodeText(stego.Emoticon, "Hello World", "A", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		return
	}
	fmt.Println(out)

	msg, err := stego.DecodeText(stego.Emoticon, out, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode failed: %v\n", err)
		return
	}
	fmt.Println(msg)
	// Output:
	// Hello :) World :) :) :( :| :(
	// A
}

// ExampleEncode_markup wraps host words in formatting markers.
func ExampleEncode_markup() {
	out, _ := stego.Encode(stego.FormattingMarkup, "one two three", []byte("A"), "")
	fmt.Println(out)
	// Output: *one* *two* *three* *one* *two* *three* *one* **two** **three** *one* *two* **three**
}

// ExampleCarriers lists carrier names with their capacity for a 10-byte secret.
func ExampleCarriers() {
	for _, c := range stego.Carriers() {
		fmt.Printf("%s %d\n", c, stego.SymbolCount(c, 10))
	}
	// Output:
	// 4spach 48
	// ait-steg 36
	// twsm 48
	// em-st 24
}

// ExampleScan demonstrates how to look for hidden payloads in a directory.
func ExampleScan() {
	cfg := stego.Config{
		Root:         ".",
		IncludeGlobs: "**/*.md,**/*.txt",
		MaxBytes:     1024 * 1024,
		NoCache:      true,
	}
	findings, err := stego.Scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	if len(findings) > 0 {
		_ = stego.MarshalFindings(os.Stdout, findings)
	}
}
