// Package config provides configuration management for the application.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Rules   RulesConfig
	YouTube YouTubeConfig
	Files   FilesConfig
	Logging LoggingConfig
}

// RulesConfig contains the validation rule constants. They are passed into
// the rule engine and report assembler at construction.
type RulesConfig struct {
	MaxSectionSeconds int
	GuaranteedCount   int
	FormURL           string
}

// YouTubeConfig contains YouTube Data API access configuration.
type YouTubeConfig struct {
	APIKey string
}

// FilesConfig contains the input, output and blocklist file locations.
type FilesConfig struct {
	Input     string
	Output    string
	Blocklist string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SONGWISH")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Rules
	viper.SetDefault("rules.maxsectionseconds", 90)
	viper.SetDefault("rules.guaranteedcount", 50)
	viper.SetDefault("rules.formurl", "https://forms.gle/YOUR_FORM_URL_HERE")

	// YouTube
	viper.SetDefault("youtube.apikey", "")

	// Files
	viper.SetDefault("files.input", "songwish.xlsx")
	viper.SetDefault("files.output", "output.xlsx")
	viper.SetDefault("files.blocklist", "blocked_songs.xlsx")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
