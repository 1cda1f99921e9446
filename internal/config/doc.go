// Package config loads stego configuration from local and global YAML files.
// It is internal; CLI code applies precedence (flags, then the local file,
// then the global file) when mapping settings into commands.
package config
