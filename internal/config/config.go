// Package config resolves ebookstore settings from defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ebookstore/internal/store"
)

const (
	// DefaultFile is read when no config path is given and it exists in the
	// working directory.
	DefaultFile = "ebookstore.yaml"

	// DotEnvFile supplies environment defaults. Variables already set in the
	// process environment win.
	DotEnvFile = ".env"
)

// Environment variables.
const (
	EnvConfig    = "EBOOKSTORE_CONFIG"
	EnvDB        = "EBOOKSTORE_DB"
	EnvVerbose   = "EBOOKSTORE_VERBOSE"
	EnvLogFormat = "EBOOKSTORE_LOG_FORMAT"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the resolved settings.
type Config struct {
	DBPath    string `yaml:"db_path"`
	Verbose   bool   `yaml:"verbose"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DBPath:    store.DefaultPath,
		LogFormat: LogFormatText,
	}
}

// Load resolves the configuration. Precedence, lowest first: defaults, the
// YAML file, .env, the process environment. path names the YAML file; when
// empty, EBOOKSTORE_CONFIG and then DefaultFile are tried, and a missing
// DefaultFile is not an error.
//
// Command-line flags are applied by the caller on top of the result, so the
// result is not validated here; call Validate once flags are in place.
func Load(path string) (Config, error) {
	dotenv, err := readDotEnv(DotEnvFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	cfg := Default()

	required := path != ""
	if !required {
		if v, ok := lookup(EnvConfig); ok {
			path, required = v, true
		} else {
			path = DefaultFile
		}
	}
	if err := cfg.mergeFile(path, required); err != nil {
		return Config{}, err
	}

	if err := cfg.mergeEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the program cannot run with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q: must be %q or %q", c.LogFormat, LogFormatText, LogFormatJSON)
	}
	return nil
}

// mergeFile overlays the YAML file at path. Keys absent from the file keep
// their current values; unknown keys are rejected.
func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDB); ok {
		c.DBPath = v
	}
	if v, ok := lookup(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.LogFormat = v
	}
	return nil
}

// readDotEnv parses path without touching the process environment.
// A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return vars, nil
}
