// Package config loads application settings from a JSON config file,
// creating the file with defaults on first run.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SeedExercise describes an exercise inserted into an empty database.
type SeedExercise struct {
	Name        string `mapstructure:"name" json:"name"`
	Category    string `mapstructure:"category" json:"category"`
	TargetValue int    `mapstructure:"target_value" json:"target_value"`
	Unit        string `mapstructure:"unit" json:"unit"`
}

// UI holds presentation preferences.
type UI struct {
	AccentColor string `mapstructure:"accent_color" json:"accent_color"`
	ShowHelp    bool   `mapstructure:"show_help" json:"show_help"`
}

// Config holds the application configuration.
type Config struct {
	Database      string         `mapstructure:"database" json:"database"`
	Verbose       bool           `mapstructure:"verbose" json:"verbose"`
	UI            UI             `mapstructure:"ui" json:"ui"`
	SeedExercises []SeedExercise `mapstructure:"seed_exercises" json:"seed_exercises"`
}

// DefaultDir returns the directory holding the config file and database.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "energytracker"), nil
}

// Defaults returns the configuration used when no config file exists yet.
func Defaults(dir string) Config {
	return Config{
		Database: filepath.Join(dir, "energytracker.db"),
		Verbose:  false,
		UI:       UI{AccentColor: "12", ShowHelp: false},
		SeedExercises: []SeedExercise{
			{Name: "拉筋", Category: "stretch", TargetValue: 30, Unit: "minutes"},
		},
	}
}

// Load reads the configuration from configPath. An empty path falls back to
// config.json under DefaultDir. A missing file is written out with defaults
// so the user has something to edit.
func Load(configPath string) (Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}
	if configPath == "" {
		configPath = filepath.Join(dir, "config.json")
	} else {
		dir = filepath.Dir(configPath)
	}

	cfg := Defaults(dir)

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetDefault("database", cfg.Database)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("ui.accent_color", cfg.UI.AccentColor)
	v.SetDefault("ui.show_help", cfg.UI.ShowHelp)
	v.SetDefault("seed_exercises", cfg.SeedExercises)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cfg, err
		}
		if err := v.WriteConfigAs(configPath); err != nil {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
