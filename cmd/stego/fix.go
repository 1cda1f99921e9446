package stego

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytebaker/stego/internal/ignore"
	"github.com/bytebaker/stego/internal/redact"
	"github.com/spf13/cobra"
)

type stripResult struct {
	Path    string `json:"path"`
	Removed int    `json:"removed"`
	Changed bool   `json:"changed"`
}

func init() {
	fix := &cobra.Command{Use: "fix", Short: "Remediation helpers for files that carry hidden payloads"}
	rootCmd.AddCommand(fix)

	var dryRun bool
	var summary string
	stripCmd := &cobra.Command{
		Use:   "strip <file>...",
		Short: "Remove zero-width carrier payloads from files in place",
		Long:  "strip deletes 4spach and ait-steg payloads that end a file when they decode as a complete frame. Other zero-width characters, such as emoji joiners, stay. Markup and emoticon payloads are ordinary text and are left alone.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reps := []redact.Replacement{redact.CarrierPayloads()}
			var results []stripResult
			for _, p := range args {
				b, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				res := stripResult{Path: p, Removed: redact.Count(string(b), reps)}
				if !dryRun && res.Removed > 0 {
					if res.Changed, err = redact.Apply(p, reps); err != nil {
						return fmt.Errorf("strip %s: %w", p, err)
					}
				}
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					switch {
					case r.Removed == 0:
						fmt.Fprintf(out, "%s: clean\n", r.Path)
					case dryRun:
						fmt.Fprintf(out, "(dry-run) %s: would remove %d symbols\n", r.Path, r.Removed)
					default:
						fmt.Fprintf(out, "%s: removed %d symbols\n", r.Path, r.Removed)
					}
				}
			}
			if summary != "" {
				return writeFixSummary(summary, map[string]any{
					"action":    "fix.strip",
					"files":     results,
					"dry_run":   dryRun,
					"timestamp": time.Now().Format(time.RFC3339),
				})
			}
			return nil
		},
	}
	stripCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be removed without writing")
	stripCmd.Flags().StringVar(&summary, "summary", "", "write remediation summary JSON to this path")
	fix.AddCommand(stripCmd)

	var root string
	ignoreCmd := &cobra.Command{
		Use:   "ignore <pattern>...",
		Short: "Add patterns to .stegoignore so scans skip them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			for _, p := range args {
				if err := ignore.Append(abs, p); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", filepath.Join(abs, ignore.FileName))
			return nil
		},
	}
	ignoreCmd.Flags().StringVarP(&root, "path", "p", ".", "scan root holding the ignore file")
	fix.AddCommand(ignoreCmd)
}

func writeFixSummary(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}
