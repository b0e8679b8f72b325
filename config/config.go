// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// DetectorConfig is settings for sequence type detection
type DetectorConfig struct {
	// the number of sequences sampled from a table's sequence column
	SampleSize int `mapstructure:"sample-size"`

	// the fraction of sampled characters that must be nucleotide
	// letters for a column to be classified as DNA
	DNAFraction float64 `mapstructure:"dna-fraction"`
}

// AlignerConfig is settings forwarded to the aligner
type AlignerConfig struct {
	// the thread count passed to the aligner
	Threads int `mapstructure:"threads"`

	// the maximum e-value of a reported hit
	EValue float64 `mapstructure:"evalue"`

	// the minimum %-identity of a reported hit
	Identity float64 `mapstructure:"identity"`

	// the minimum query coverage percentage of a reported hit
	Cover float64 `mapstructure:"cover"`
}

// Config is the root-level settings struct and is a mix
// of defaults and settings bound from the command line
type Config struct {
	// sequence type detection settings
	Detector DetectorConfig `mapstructure:"detector"`

	// aligner settings
	Aligner AlignerConfig `mapstructure:"aligner"`
}

// New returns a new Config struct populated by Viper settings
// (defaults and/or command line arguments)
func New() *Config {
	viper.SetDefault("detector.sample-size", 10)
	viper.SetDefault("detector.dna-fraction", 0.85)
	viper.SetDefault("aligner.threads", 4)
	viper.SetDefault("aligner.evalue", 1e-10)
	viper.SetDefault("aligner.identity", 90.0)
	viper.SetDefault("aligner.cover", 90.0)

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return &c
}
