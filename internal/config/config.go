// Package config resolves spanseek settings from an optional .env file and
// the process environment. Values from the environment win over the file;
// command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvPolicy    = "SPANSEEK_POLICY"
	EnvSizeHint  = "SPANSEEK_SIZE_HINT"
	EnvLenient   = "SPANSEEK_LENIENT"
	EnvFormat    = "SPANSEEK_FORMAT"
	EnvLogLevel  = "SPANSEEK_LOG_LEVEL"
	EnvLogFormat = "SPANSEEK_LOG_FORMAT"
)

// Config holds the settings shared by the CLI subcommands.
type Config struct {
	// Policy is "abort" or "skip".
	Policy string
	// SizeHint pre-sizes result slices; 0 keeps the library default.
	SizeHint int
	// Lenient accepts HTML-flavoured markup.
	Lenient bool
	// Format is the output layout: "text", "json" or "markdown".
	Format string
	// LogLevel and LogFormat feed slogobs.
	LogLevel  string
	LogFormat string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		Policy:    "abort",
		Format:    "text",
		LogLevel:  "warn",
		LogFormat: "compact",
	}
}

// Load reads envFile with godotenv if it exists, overlays environ (KEY=VALUE
// pairs as returned by os.Environ), and parses the result over [Defaults].
// A missing envFile is not an error; an empty envFile skips the file.
func Load(envFile string, environ []string) (Config, error) {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: reading %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return FromMap(vars)
}

// FromMap parses SPANSEEK_* keys from vars over [Defaults]. Empty values are
// ignored.
func FromMap(vars map[string]string) (Config, error) {
	cfg := Defaults()

	if v := vars[EnvPolicy]; v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "abort" && v != "skip" {
			return Config{}, fmt.Errorf("config: %s must be abort or skip, got %q", EnvPolicy, v)
		}
		cfg.Policy = v
	}
	if v := vars[EnvSizeHint]; v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("config: %s must be a non-negative integer, got %q", EnvSizeHint, v)
		}
		cfg.SizeHint = n
	}
	if v := vars[EnvLenient]; v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLenient, err)
		}
		cfg.Lenient = b
	}
	if v := vars[EnvFormat]; v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		switch v {
		case "text", "json", "markdown":
			cfg.Format = v
		default:
			return Config{}, fmt.Errorf("config: %s must be text, json or markdown, got %q", EnvFormat, v)
		}
	}
	if v := vars[EnvLogLevel]; v != "" {
		cfg.LogLevel = v
	}
	if v := vars[EnvLogFormat]; v != "" {
		cfg.LogFormat = v
	}
	return cfg, nil
}
