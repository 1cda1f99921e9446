package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/types"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{Path: "z.txt", Carrier: "twsm", Bits: 4, Declared: -1, Severity: types.SevLow},
		{Path: "a.md", Carrier: "em-st", Bits: 32, Declared: 2, Complete: true, Severity: types.SevHigh, Digest: "0123456789abcdef"},
	}
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10, CacheHits: 4})
	out := buf.String()
	if !strings.Contains(out, "No hidden payloads found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10 (4 cached)") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleFindings(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Findings: 2") {
		t.Fatalf("expected findings header; got: %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.Contains(lines[1], "a.md") || !strings.Contains(lines[1], "2 bytes") {
		t.Fatalf("expected sorted first row for a.md; got: %q", lines[1])
	}
	if !strings.Contains(lines[2], "4 stray bits") {
		t.Fatalf("expected stray bits description; got: %q", lines[2])
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleFindings(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "em-st") || !strings.Contains(out, "0123456789abcdef") {
		t.Fatalf("expected carrier and digest in table; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No hidden payloads found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Findings: 0 (high: 0, medium: 0, low: 0)") {
		t.Fatalf("expected summary counts; got: %q", out)
	}
}

func TestDescribe_PartialFrame(t *testing.T) {
	f := types.Finding{Bits: 16 + 24, Declared: 5}
	if got := describe(f); got != "3 of 5 bytes" {
		t.Fatalf("describe = %q", got)
	}
}

func TestPrintCarriers(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintCarriers(&buf, 1); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, id := range carrier.All() {
		if !strings.Contains(out, id.String()) {
			t.Fatalf("expected %s in carrier list; got: %q", id, out)
		}
	}
	if !strings.Contains(out, "SYMBOLS") {
		t.Fatalf("expected symbols column when payload is set; got: %q", out)
	}

	buf.Reset()
	if err := PrintCarriers(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "SYMBOLS") {
		t.Fatalf("symbols column should be omitted without a payload size")
	}
}

func TestPrintProbes(t *testing.T) {
	var buf bytes.Buffer
	probes := []carrier.Probe{
		{Carrier: carrier.Emoticon, Bits: 32, Declared: 2, Complete: true},
		{Carrier: carrier.FormattingMarkup, Declared: -1},
	}
	if err := PrintProbes(&buf, probes); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "em-st") || !strings.Contains(out, "true") {
		t.Fatalf("expected complete emoticon row; got: %q", out)
	}
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array; got %q", buf.String())
	}

	buf.Reset()
	if err := WriteJSON(&buf, sampleFindings()); err != nil {
		t.Fatal(err)
	}
	var back []types.Finding
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[1].Carrier != "em-st" {
		t.Fatalf("unexpected decoded findings: %#v", back)
	}
}
