package stego

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/atotto/clipboard"
	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/bytebaker/stego/internal/config"
	"github.com/bytebaker/stego/internal/update"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"golang.org/x/term"
)

func selfUpdate() (string, error) {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), update.Slug)
	if err != nil {
		return "", err
	}
	return latest.Version.String(), nil
}

// loadConfigs returns the local (from dir) and global file configs; missing
// files yield empty configs.
func loadConfigs(dir string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if c, err := config.LoadLocal(dir); err == nil {
		local = c
	}
	return local, global
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// noColor reports whether output to w should be plain.
func noColor(w io.Writer, local, global config.FileConfig) bool {
	if pickBool(flagNoColor, local.NoColor, global.NoColor) {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

// readInput reads a whole file, or standard input when path is "-".
func readInput(in io.Reader, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("no input file given")
	}
	if path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or to out when path is "-" or empty.
func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := out.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// resolveKey picks the key from --key, an interactive prompt, or the
// environment variable named by key_env, in that order.
func resolveKey(errOut io.Writer, key string, prompt bool, keyEnv string) (string, error) {
	if key != "" {
		return key, nil
	}
	if prompt {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("--key-prompt needs an interactive terminal")
		}
		fmt.Fprint(errOut, "Key: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(errOut)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}
	if keyEnv != "" {
		return os.Getenv(keyEnv), nil
	}
	return "", nil
}

func copyToClipboard(s string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}
	return clipboard.WriteAll(s)
}
