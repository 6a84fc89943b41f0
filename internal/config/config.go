// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TAXJOIN_NORMALIZE=false.
const EnvPrefix = "TAXJOIN"

// Keys understood in config files and the environment.
const (
	KeyLineage       = "lineage"
	KeySequences     = "sequences"
	KeyNormalize     = "normalize"
	KeyOutput        = "output"
	KeyTopN          = "top_n"
	KeyBins          = "bins"
	KeySQLite        = "sqlite"
	KeyLogLevel      = "log_level"
	KeyProgress      = "progress"
	KeyEmptyExitCode = "empty_exit_code"
)

// Config is the file/env layer below the command line.
type Config struct {
	Lineage       string
	Sequences     string
	Normalize     bool
	Output        string
	TopN          int
	Bins          int
	SQLite        string
	LogLevel      string
	Progress      bool
	EmptyExitCode int
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Normalize: true,
		Output:    "text",
		TopN:      20,
		Bins:      50,
		LogLevel:  "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyLineage, d.Lineage)
	v.SetDefault(KeySequences, d.Sequences)
	v.SetDefault(KeyNormalize, d.Normalize)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyTopN, d.TopN)
	v.SetDefault(KeyBins, d.Bins)
	v.SetDefault(KeySQLite, d.SQLite)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyProgress, d.Progress)
	v.SetDefault(KeyEmptyExitCode, d.EmptyExitCode)
}

// Load layers defaults, the optional config file at path (YAML, TOML or
// JSON by extension) and TAXJOIN_* environment variables.
// An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return Config{
		Lineage:       v.GetString(KeyLineage),
		Sequences:     v.GetString(KeySequences),
		Normalize:     v.GetBool(KeyNormalize),
		Output:        strings.ToLower(v.GetString(KeyOutput)),
		TopN:          v.GetInt(KeyTopN),
		Bins:          v.GetInt(KeyBins),
		SQLite:        v.GetString(KeySQLite),
		LogLevel:      strings.ToLower(v.GetString(KeyLogLevel)),
		Progress:      v.GetBool(KeyProgress),
		EmptyExitCode: v.GetInt(KeyEmptyExitCode),
	}, nil
}
