// Package config loads the optional CLI configuration file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the CLI settings that can live in a config file
// instead of flags.
type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML config file from path on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
