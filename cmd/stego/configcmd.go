package stego

import (
	"fmt"
	"path/filepath"

	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput string
	cfgGlobal bool
	cfgForce  bool
	cfgMethod string
	cfgKeyEnv string
	cfgAudit  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .stego.yml with default options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&cfgOutput, "output", ".stego.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the global config instead (<config dir>/config.yml)")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&cfgMethod, "method", "", "default carrier")
	initCmd.Flags().StringVar(&cfgKeyEnv, "key-env", "", "environment variable holding the default key")
	initCmd.Flags().BoolVar(&cfgAudit, "audit", false, "enable the audit log by default")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration (local over global)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, global := loadConfigs(".")
			b, err := yaml.Marshal(merge(local, global))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	fc := config.Starter()
	if cfgMethod != "" {
		id, err := carrier.Parse(cfgMethod)
		if err != nil {
			return err
		}
		fc.Method = strPtr(id.String())
	}
	if cfgKeyEnv != "" {
		fc.KeyEnv = strPtr(cfgKeyEnv)
	}
	if cfgAudit {
		fc.Audit = boolPtr(true)
	}
	out := cfgOutput
	if cfgGlobal {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, "config.yml")
	}
	if err := config.Write(out, fc, cfgForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
	return nil
}

// merge resolves every field with local taking precedence over global.
func merge(local, global config.FileConfig) config.FileConfig {
	return config.FileConfig{
		Method:          firstNonNil(local.Method, global.Method),
		KeyEnv:          firstNonNil(local.KeyEnv, global.KeyEnv),
		NoColor:         firstNonNil(local.NoColor, global.NoColor),
		JSON:            firstNonNil(local.JSON, global.JSON),
		Audit:           firstNonNil(local.Audit, global.Audit),
		AuditPath:       firstNonNil(local.AuditPath, global.AuditPath),
		Include:         firstNonNil(local.Include, global.Include),
		Exclude:         firstNonNil(local.Exclude, global.Exclude),
		MaxBytes:        firstNonNil(local.MaxBytes, global.MaxBytes),
		DefaultExcludes: firstNonNil(local.DefaultExcludes, global.DefaultExcludes),
	}
}

func firstNonNil[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }
