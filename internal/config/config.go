// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"seqingress/pkg/cueutil"
)

//go:embed config_schema.cue
var configSchema string

// ConfigFileName is the name of the config file inside ConfigDir.
const ConfigFileName = "config.cue"

// ConfigDir returns the directory that holds the seqingress config
// file. Tests redirect it with SetConfigDirOverride.
func ConfigDir() (string, error) {
	if dir := configDirOverride(); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "seqingress"), nil
}

// ConfigFilePath returns the full path of the config file, which may
// not exist. An explicit --config override wins over the config
// directory lookup.
func ConfigFilePath() (string, error) {
	if path := configFilePathOverride(); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// EnsureConfigDir creates the config directory if it is missing.
func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

// defaultConfigTemplate is the starter file written by `config init`.
// Every field is commented out so the file documents the schema while
// still resolving to the built-in defaults.
const defaultConfigTemplate = `// seqingress configuration. Uncomment and adjust as needed.

ingress: {
	// sample:               "my_sample"
	// sample_sheet:         "sheet.csv"
	// analyse_unclassified: false
	// keep_unaligned:       false
	// return_fastq:         false
	// chunk_size:           0
	// results_dir:          "output"
}

ui: {
	// verbose: false
}
`

// WriteDefaultConfig creates the config directory and writes the
// starter config file, returning its path. An existing file is left
// untouched and reported with os.ErrExist.
func WriteDefaultConfig() (string, error) {
	if _, err := EnsureConfigDir(); err != nil {
		return "", err
	}
	path, err := ConfigFilePath()
	if err != nil {
		return "", err
	}
	if fileExists(path) {
		return path, fmt.Errorf("config file %s: %w", path, os.ErrExist)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// Load builds the effective configuration: built-in defaults overlaid
// with the config file when one exists. A missing file is not an
// error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	path, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}
	if fileExists(path) {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, err
		}
	} else {
		slog.Debug("no config file, using defaults", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("ingress.sample", def.Ingress.Sample)
	v.SetDefault("ingress.sample_sheet", def.Ingress.SampleSheet)
	v.SetDefault("ingress.analyse_unclassified", def.Ingress.AnalyseUnclassified)
	v.SetDefault("ingress.keep_unaligned", def.Ingress.KeepUnaligned)
	v.SetDefault("ingress.return_fastq", def.Ingress.ReturnFastq)
	v.SetDefault("ingress.chunk_size", def.Ingress.ChunkSize)
	v.SetDefault("ingress.results_dir", def.Ingress.ResultsDir)
	v.SetDefault("ui.verbose", def.UI.Verbose)
}

// loadCUEIntoViper validates the config file against the embedded
// schema and merges the decoded result on top of the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	if err := cueutil.CheckFileSize(path, 0); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	decoded, err := cueutil.ValidateMap(configSchema, "#Config", path, data)
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(decoded); err != nil {
		return fmt.Errorf("merging config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
