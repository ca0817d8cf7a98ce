// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChunkSize indicates a negative chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be zero or positive")
)

// InvalidChunkSizeError reports a chunk size that cannot be used to
// split output, with the offending value.
type InvalidChunkSizeError struct {
	Value int
}

func (e *InvalidChunkSizeError) Error() string {
	return fmt.Sprintf("invalid chunk size %d: %s", e.Value, ErrInvalidChunkSize)
}

func (e *InvalidChunkSizeError) Is(target error) bool {
	return target == ErrInvalidChunkSize
}

// Config is the root seqingress configuration.
type Config struct {
	Ingress IngressConfig `mapstructure:"ingress"`
	UI      UIConfig      `mapstructure:"ui"`
}

// IngressConfig holds default input-discovery behaviour. Each field
// maps to a flag on the discover command; a value here becomes the
// flag's default.
type IngressConfig struct {
	// Sample names a single sample, overriding the alias derived from
	// the input path when the input is one file or one flat directory.
	Sample string `mapstructure:"sample"`
	// SampleSheet points at a CSV sample sheet to reconcile barcoded
	// input against.
	SampleSheet string `mapstructure:"sample_sheet"`
	// AnalyseUnclassified keeps the unclassified barcode directory
	// instead of skipping it.
	AnalyseUnclassified bool `mapstructure:"analyse_unclassified"`
	// KeepUnaligned retains (u)BAM inputs whose headers carry no
	// reference sequences.
	KeepUnaligned bool `mapstructure:"keep_unaligned"`
	// ReturnFastq treats downstream output as FASTQ even for BAM
	// input, switching the metadata to sequence counts.
	ReturnFastq bool `mapstructure:"return_fastq"`
	// ChunkSize caps reads per output file; zero disables chunking.
	ChunkSize int `mapstructure:"chunk_size"`
	// ResultsDir is where per-sample stats directories are written.
	ResultsDir string `mapstructure:"results_dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Validate checks constraints that flag overrides can violate after
// the schema has already passed.
func (c *Config) Validate() error {
	if c.Ingress.ChunkSize < 0 {
		return &InvalidChunkSizeError{Value: c.Ingress.ChunkSize}
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{}
}
