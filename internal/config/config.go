package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for stego.
// Nil fields mean "not set" so callers can layer files and flags.
type FileConfig struct {
	// Method is the default carrier name or alias.
	Method *string `yaml:"method"`
	// KeyEnv names an environment variable holding the default key.
	KeyEnv *string `yaml:"key_env"`

	NoColor *bool `yaml:"no_color"`
	JSON    *bool `yaml:"json"`

	// Audit enables the JSONL operation log; AuditPath overrides its location.
	Audit     *bool   `yaml:"audit"`
	AuditPath *string `yaml:"audit_path"`

	// Scan settings mirror the scan command flags.
	Include         *string `yaml:"include"`
	Exclude         *string `yaml:"exclude"`
	MaxBytes        *int64  `yaml:"max_bytes"`
	DefaultExcludes *bool   `yaml:"default_excludes"`
}

// LocalNames lists the repo-local file names in search order.
var LocalNames = []string{".stego.yml", ".stego.yaml", "stego.yml", "stego.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a local config file in the given directory.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// Dir returns the stego directory under the XDG config home or ~/.config.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("no config dir")
	}
	return filepath.Join(base, "stego"), nil
}

// LoadGlobal loads the global config file from the XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	dir, err := Dir()
	if err != nil {
		return cfg, err
	}
	p := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Starter returns the configuration written by `stego config init`.
func Starter() FileConfig {
	method := "4spach"
	keyEnv := "STEGO_KEY"
	audit := false
	include := ""
	exclude := ""
	maxBytes := int64(1 << 20)
	defExcl := true
	return FileConfig{
		Method:          &method,
		KeyEnv:          &keyEnv,
		Audit:           &audit,
		Include:         &include,
		Exclude:         &exclude,
		MaxBytes:        &maxBytes,
		DefaultExcludes: &defExcl,
	}
}

// Write marshals cfg as YAML to path. It refuses to overwrite an existing
// file unless force is set.
func Write(path string, cfg FileConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}
