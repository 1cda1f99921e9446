package stego

import (
	"fmt"

	"github.com/bytebaker/stego/internal/update"
	"github.com/spf13/cobra"
)

var flagCheck bool

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the stego version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stego v%s\n", version)
			if !flagCheck {
				return nil
			}
			latest, newer, err := update.Check(version, flagNoUpdateCheck)
			if err != nil {
				return err
			}
			switch {
			case newer:
				fmt.Fprintf(cmd.OutOrStdout(), "new version available: v%s (run 'stego update')\n", latest)
			case latest != "":
				fmt.Fprintln(cmd.OutOrStdout(), "up to date")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "could not determine the latest version")
			}
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "also check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Update stego to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := selfUpdate()
			if err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stego is at v%s\n", v)
			return nil
		},
	})
}
