package stego

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagNoUpdateCheck bool
	flagAudit         bool
	flagAuditPath     string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the stego CLI.
var rootCmd = &cobra.Command{
	Use:           "stego",
	Short:         "Hide and recover messages in plain text",
	Long:          "stego hides a secret inside ordinary text using invisible codepoints, formatting markup or emoticons, recovers it again, and finds files that carry hidden payloads.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError ends the process with code without printing an error line.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the stego CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagAudit, "audit", false, "append encode/decode records to the audit log")
	rootCmd.PersistentFlags().StringVar(&flagAuditPath, "audit-path", "", "audit log location (default: <config dir>/audit.jsonl)")
}
