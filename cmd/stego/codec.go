package stego

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bytebaker/stego/internal/audit"
	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/config"
	"github.com/spf13/cobra"
)

// codecFlags holds the flags of one encode or decode command. Each command
// gets its own instance so the generic and per-carrier variants do not share
// state.
type codecFlags struct {
	method    string
	cover     string
	data      string
	input     string
	output    string
	key       string
	keyPrompt bool
	clipboard bool
	binary    bool
}

func (f *codecFlags) bindKey(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "key", "", "key for the encrypted carrier")
	cmd.Flags().BoolVar(&f.keyPrompt, "key-prompt", false, "read the key from the terminal without echo")
}

// newEncodeCmd builds an encode command. A zero fixed ID adds a --method
// flag; otherwise the command always uses fixed.
func newEncodeCmd(fixed carrier.ID) *cobra.Command {
	f := &codecFlags{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Hide a secret in a cover text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEncode(cmd, fixed, f)
		},
	}
	if fixed == 0 {
		cmd.Flags().StringVarP(&f.method, "method", "m", "", "carrier name or alias (default from config, else 4spach)")
	}
	cmd.Flags().StringVarP(&f.cover, "cover", "c", "", "cover text file (- for stdin)")
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "secret file (- for stdin)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "where to write the stego text (- for stdout)")
	cmd.Flags().BoolVar(&f.clipboard, "clipboard", false, "also copy the stego text to the clipboard")
	f.bindKey(cmd)
	_ = cmd.MarkFlagRequired("cover")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// newDecodeCmd builds a decode command; see newEncodeCmd for fixed.
func newDecodeCmd(fixed carrier.ID) *cobra.Command {
	f := &codecFlags{}
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Recover a secret from a stego text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDecode(cmd, fixed, f)
		},
	}
	if fixed == 0 {
		cmd.Flags().StringVarP(&f.method, "method", "m", "", "carrier name or alias (default from config, else 4spach)")
	}
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "stego text file (- for stdin)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "where to write the recovered secret (- for stdout)")
	cmd.Flags().BoolVar(&f.binary, "binary", false, "write the payload even when it is not valid UTF-8 text")
	f.bindKey(cmd)
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func init() {
	rootCmd.AddCommand(newEncodeCmd(0), newDecodeCmd(0))
	for _, id := range carrier.All() {
		group := &cobra.Command{
			Use:     id.String(),
			Aliases: id.Aliases(),
			Short:   id.Description(),
		}
		group.AddCommand(newEncodeCmd(id), newDecodeCmd(id))
		rootCmd.AddCommand(group)
	}
}

// resolveCarrier picks the carrier from the fixed ID, --method, or config.
func resolveCarrier(fixed carrier.ID, method string, local, global config.FileConfig) (carrier.ID, error) {
	if fixed != 0 {
		return fixed, nil
	}
	name := pickString(method, local.Method, global.Method)
	if name == "" {
		return carrier.InvisibleCodepoint, nil
	}
	return carrier.Parse(name)
}

func runEncode(cmd *cobra.Command, fixed carrier.ID, f *codecFlags) error {
	if f.cover == "-" && f.data == "-" {
		return errors.New("--cover and --data cannot both read stdin")
	}
	local, global := loadConfigs(".")
	id, err := resolveCarrier(fixed, f.method, local, global)
	if err != nil {
		return err
	}
	cover, err := readInput(cmd.InOrStdin(), f.cover)
	if err != nil {
		return fmt.Errorf("read cover: %w", err)
	}
	secret, err := readInput(cmd.InOrStdin(), f.data)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	key, err := keyFor(cmd, id, f, local, global)
	if err != nil {
		return err
	}

	c, err := carrier.New(id)
	if err != nil {
		return err
	}
	out, err := c.Encode(string(cover), secret, key)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), f.output, []byte(out)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	symbols := carrier.SymbolCount(id, len(secret))
	if f.clipboard {
		if err := copyToClipboard(out); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "clipboard warning:", err)
		}
	}
	if f.output != "-" && f.output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Encoded %d bytes with %s (%d symbols) -> %s\n", len(secret), id, symbols, f.output)
	}
	return logOp(cmd, local, global, audit.CreateRecord(audit.OpEncode, id.String(), f.cover, f.output, len(secret), symbols, key != "", []byte(out)))
}

func runDecode(cmd *cobra.Command, fixed carrier.ID, f *codecFlags) error {
	local, global := loadConfigs(".")
	id, err := resolveCarrier(fixed, f.method, local, global)
	if err != nil {
		return err
	}
	text, err := readInput(cmd.InOrStdin(), f.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	key, err := keyFor(cmd, id, f, local, global)
	if err != nil {
		return err
	}

	c, err := carrier.New(id)
	if err != nil {
		return err
	}
	payload, err := c.Decode(string(text), key)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No %s payload found\n", id)
	}
	if !f.binary && !utf8.Valid(payload) {
		if id.Keyed() {
			return fmt.Errorf("%w (wrong key? use --binary to write it anyway)", carrier.ErrInvalidEncoding)
		}
		return fmt.Errorf("%w (use --binary to write it anyway)", carrier.ErrInvalidEncoding)
	}
	if err := writeOutput(cmd.OutOrStdout(), f.output, payload); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return logOp(cmd, local, global, audit.CreateRecord(audit.OpDecode, id.String(), f.input, f.output, len(payload), 0, key != "", payload))
}

// keyFor resolves the key only for carriers that use one.
func keyFor(cmd *cobra.Command, id carrier.ID, f *codecFlags, local, global config.FileConfig) (string, error) {
	if !id.Keyed() {
		if f.key != "" || f.keyPrompt {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %s does not use a key; ignoring it\n", id)
		}
		return "", nil
	}
	return resolveKey(cmd.ErrOrStderr(), f.key, f.keyPrompt, pickString("", local.KeyEnv, global.KeyEnv))
}

// logOp appends rec to the audit log when auditing is enabled. Failures to
// write are reported but do not fail the command.
func logOp(cmd *cobra.Command, local, global config.FileConfig, rec audit.Record) error {
	if !pickBool(flagAudit, local.Audit, global.Audit) {
		return nil
	}
	p, err := auditPath()
	if err != nil {
		return err
	}
	if err := audit.NewAuditLog(p).LogOp(rec); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "audit warning:", err)
	}
	return nil
}
