package stego

import (
	"encoding/json"

	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/report"
	"github.com/spf13/cobra"
)

var flagPayload int

type methodInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Keyed       bool     `json:"keyed"`
	Description string   `json:"description"`
	Symbols     int      `json:"symbols,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the available carriers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !flagJSON {
				return report.PrintCarriers(cmd.OutOrStdout(), flagPayload)
			}
			var out []methodInfo
			for _, id := range carrier.All() {
				out = append(out, methodInfo{
					Name:        id.String(),
					Aliases:     id.Aliases(),
					Keyed:       id.Keyed(),
					Description: id.Description(),
					Symbols:     carrier.SymbolCount(id, flagPayload),
				})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().IntVar(&flagPayload, "payload", 0, "show how many symbols each carrier needs for this many bytes")
	rootCmd.AddCommand(cmd)
}
