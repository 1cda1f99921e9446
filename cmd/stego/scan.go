package stego

import (
	"fmt"
	"path/filepath"

	"github.com/bytebaker/stego/internal/engine"
	"github.com/bytebaker/stego/internal/report"
	"github.com/bytebaker/stego/internal/types"
	"github.com/bytebaker/stego/internal/update"
	"github.com/spf13/cobra"
)

const defaultBaseline = "stego.baseline.json"

var (
	flagPath            string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagThreads         int
	flagCarriers        string
	flagPartial         bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagFail            bool
	flagFailOn          string
	flagSARIF           bool
	flagText            bool
	flagBaseline        string
	flagUpdateBaseline  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find files that carry hidden payloads",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 1MiB)")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&flagCarriers, "carriers", "", "only run these carriers (comma-separated names)")
	cmd.Flags().BoolVar(&flagPartial, "partial", false, "also report stray symbols and truncated frames")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	cmd.Flags().BoolVar(&flagFail, "fail", false, "exit 1 when findings reach --fail-on")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "high", "severity for --fail: low|medium|high")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().StringVar(&flagBaseline, "baseline", defaultBaseline, "baseline file of known findings")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "write current findings to the baseline and exit")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	lcfg, gcfg := loadConfigs(abs)

	defExcl := flagDefaultExcludes
	if !cmd.Flags().Changed("default-excludes") {
		if lcfg.DefaultExcludes != nil {
			defExcl = *lcfg.DefaultExcludes
		} else if gcfg.DefaultExcludes != nil {
			defExcl = *gcfg.DefaultExcludes
		}
	}
	maxBytes := pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes)
	if maxBytes == 0 {
		maxBytes = 1 << 20
	}
	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        maxBytes,
		Threads:         flagThreads,
		DefaultExcludes: defExcl,
		NoCache:         flagNoCache,
		Carriers:        flagCarriers,
		Partial:         flagPartial,
	}
	asJSON := flagJSON || pickBool(false, lcfg.JSON, gcfg.JSON)
	quiet := asJSON || flagSARIF
	errOut := cmd.ErrOrStderr()

	// Friendly banner before scanning
	if !quiet {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(errOut, "(new version available: v%s)  run 'stego update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(errOut, "Scanning %s for hidden payloads...\n", abs)
	}

	// Optional progress bar: simple textual bar
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !quiet {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(errOut, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanContext(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 && !quiet {
		fmt.Fprintln(errOut)
	}

	baselinePath := flagBaseline
	if !filepath.IsAbs(baselinePath) {
		baselinePath = filepath.Join(abs, baselinePath)
	}
	if flagUpdateBaseline {
		if err := report.SaveBaseline(baselinePath, res.Findings); err != nil {
			return err
		}
		fmt.Fprintf(errOut, "Baseline updated with %d findings: %s\n", len(res.Findings), baselinePath)
		return nil
	}
	baseline, _ := report.LoadBaseline(baselinePath)
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{}
	} // no `null` in JSON

	out := cmd.OutOrStdout()
	opts := report.PrintOptions{
		NoColor:      noColor(out, lcfg, gcfg),
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		CacheHits:    res.CacheHits,
	}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(out, newFindings); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case asJSON:
		if err := report.WriteJSON(out, newFindings); err != nil {
			return err
		}
	case flagText:
		report.PrintText(out, newFindings, opts)
	default:
		report.PrintTable(out, newFindings, opts)
	}

	if flagFail && report.ShouldFail(newFindings, flagFailOn) {
		return exitError{code: 1}
	}
	return nil
}
