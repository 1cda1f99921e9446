package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	CacheHits    int
}

var (
	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func sortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Carrier < findings[j].Carrier
		}
		return findings[i].Path < findings[j].Path
	})
}

// PrintText writes one line per finding followed by the summary footer.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No hidden payloads found ✅")
	} else {
		maxCar := 8
		for _, f := range findings {
			if l := len(f.Carrier); l > maxCar {
				maxCar = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			fmt.Fprintf(w, "%-6s %-*s %s  %s\n", severity(f.Severity, opts.NoColor), maxCar, f.Carrier, f.Path, describe(f))
		}
	}
	printFooter(w, findings, opts)
}

// PrintTable renders findings as a bordered table.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No hidden payloads found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "CARRIER", "PATH", "PAYLOAD", "DIGEST")
		for _, f := range findings {
			_ = table.Append([]string{severity(f.Severity, opts.NoColor), f.Carrier, f.Path, describe(f), f.Digest})
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	high, med, low := 0, 0, 0
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	// Summary footer (always show if we have stats)
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d", opts.FilesScanned)
			if opts.CacheHits > 0 {
				fmt.Fprintf(w, " (%d cached)", opts.CacheHits)
			}
			fmt.Fprintln(w)
		}
	}
}

func describe(f types.Finding) string {
	switch {
	case f.Complete:
		return fmt.Sprintf("%d bytes", f.Declared)
	case f.Declared >= 0:
		return fmt.Sprintf("%d of %d bytes", max(0, (f.Bits-16)/8), f.Declared)
	default:
		return fmt.Sprintf("%d stray bits", f.Bits)
	}
}

func severity(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevHigh:
		return sevHighStyle.Render(string(s))
	case types.SevMed:
		return sevMedStyle.Render(string(s))
	default:
		return sevLowStyle.Render(string(s))
	}
}

// PrintCarriers lists the available carriers. When payload is positive a
// column shows how many symbols each carrier emits for that many bytes.
func PrintCarriers(w io.Writer, payload int) error {
	table := tablewriter.NewWriter(w)
	header := []any{"NAME", "ALIASES", "KEYED", "DESCRIPTION"}
	if payload > 0 {
		header = append(header, "SYMBOLS")
	}
	table.Header(header...)
	for _, id := range carrier.All() {
		row := []string{id.String(), strings.Join(id.Aliases(), ", "), strconv.FormatBool(id.Keyed()), id.Description()}
		if payload > 0 {
			row = append(row, strconv.Itoa(carrier.SymbolCount(id, payload)))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintProbes renders the per-carrier view of a single text.
func PrintProbes(w io.Writer, probes []carrier.Probe) error {
	table := tablewriter.NewWriter(w)
	table.Header("CARRIER", "BITS", "DECLARED", "COMPLETE")
	for _, p := range probes {
		declared := "-"
		if p.Declared >= 0 {
			declared = strconv.Itoa(p.Declared)
		}
		if err := table.Append([]string{p.Carrier.String(), strconv.Itoa(p.Bits), declared, strconv.FormatBool(p.Complete)}); err != nil {
			return err
		}
	}
	return table.Render()
}
