package stego

import (
	"encoding/json"

	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/report"
	"github.com/spf13/cobra"
)

var flagInspectInput string

func init() {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show which carriers see hidden symbols in a text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readInput(cmd.InOrStdin(), flagInspectInput)
			if err != nil {
				return err
			}
			probes := carrier.Inspect(string(text))
			if flagJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(probes)
			}
			return report.PrintProbes(cmd.OutOrStdout(), probes)
		},
	}
	cmd.Flags().StringVarP(&flagInspectInput, "input", "i", "-", "text file to inspect (- for stdin)")
	rootCmd.AddCommand(cmd)
}
