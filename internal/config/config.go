// Package config loads and saves pipeline run configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Run holds every knob of a pipeline run.
type Run struct {
	Input          string `mapstructure:"input" yaml:"input"`
	MissingToken   string `mapstructure:"missing_token" yaml:"missing_token"`
	MetadataMarker string `mapstructure:"metadata_marker" yaml:"metadata_marker"`
	MaxRows        int    `mapstructure:"max_rows" yaml:"max_rows"`
	YearColumns    []int  `mapstructure:"year_columns" yaml:"year_columns"`

	Clusters int   `mapstructure:"clusters" yaml:"clusters"`
	Seed     int64 `mapstructure:"seed" yaml:"seed"`

	FitIndicator string  `mapstructure:"fit_indicator" yaml:"fit_indicator"`
	Alpha        float64 `mapstructure:"alpha" yaml:"alpha"`

	RankIndicator string `mapstructure:"rank_indicator" yaml:"rank_indicator"`
	RankYear      int    `mapstructure:"rank_year" yaml:"rank_year"`
	TopN          int    `mapstructure:"top_n" yaml:"top_n"`

	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Run, error) {
	v := viper.New()
	v.SetEnvPrefix("INDIKIT")
	v.AutomaticEnv()

	v.SetDefault("missing_token", "..")
	v.SetDefault("metadata_marker", "Data from database")
	v.SetDefault("max_rows", 0)
	v.SetDefault("clusters", 4)
	v.SetDefault("seed", 0)
	v.SetDefault("alpha", 0.05)
	v.SetDefault("rank_year", 2020)
	v.SetDefault("top_n", 10)
	v.SetDefault("out_dir", "out")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("indikit")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Run
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the configuration to path as yaml, creating parent
// directories if necessary.
func Save(c *Run, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
