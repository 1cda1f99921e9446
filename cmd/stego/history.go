package stego

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bytebaker/stego/internal/audit"
	"github.com/bytebaker/stego/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit  int
	flagHistoryDelete int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or prune the encode/decode audit log",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most this many records (0 = all)")
	cmd.Flags().IntVar(&flagHistoryDelete, "delete", -1, "delete the record at this index (newest is 0)")
	rootCmd.AddCommand(cmd)
}

func auditPath() (string, error) {
	local, global := loadConfigs(".")
	if p := pickString(flagAuditPath, local.AuditPath, global.AuditPath); p != "" {
		return filepath.Abs(p)
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return audit.DefaultPath(dir), nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	p, err := auditPath()
	if err != nil {
		return err
	}
	log := audit.NewAuditLog(p)
	if flagHistoryDelete >= 0 {
		if err := log.DeleteRecord(flagHistoryDelete); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted record %d from %s\n", flagHistoryDelete, log.Path())
		return nil
	}
	records, err := log.LoadHistory()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		if records == nil {
			records = []audit.Record{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	table := tablewriter.NewWriter(out)
	table.Header("#", "TIME", "OP", "CARRIER", "BYTES", "KEYED", "DIGEST")
	for i, r := range records {
		row := []string{
			strconv.Itoa(i),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			string(r.Operation),
			r.Carrier,
			strconv.Itoa(r.PayloadBytes),
			strconv.FormatBool(r.Keyed),
			r.Digest,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
