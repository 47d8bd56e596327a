// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ironpulse/local-app/internal/model"
)

const (
	// DefaultPath is where the config file lives unless a path is given
	DefaultPath = "./data/config.json"
	// EnvPrefix prefixes environment overrides, e.g. IRONPULSE_DATABASE_TYPE
	EnvPrefix = "IRONPULSE"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = DefaultPath
)

// Default returns the configuration written on first start.
func Default() *model.Config {
	return &model.Config{
		DatabaseType:      "sqlite",
		DatabaseDir:       "./data",
		DatabaseFile:      "ironpulse.db",
		KeyPrefix:         "ironpulse",
		LogFolder:         "./logs",
		CommandLog:        "commands.log",
		ErrorLog:          "errors.log",
		InfoLog:           "info.log",
		LogLevel:          "info",
		HistoryFile:       "./data/history",
		DefaultWeightKg:   75,
		QuickHydrationMl:  250,
		HydrationTargetMl: 2500,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("database_type", d.DatabaseType)
	v.SetDefault("database_dir", d.DatabaseDir)
	v.SetDefault("database_file", d.DatabaseFile)
	v.SetDefault("key_prefix", d.KeyPrefix)
	v.SetDefault("log_folder", d.LogFolder)
	v.SetDefault("command_log", d.CommandLog)
	v.SetDefault("error_log", d.ErrorLog)
	v.SetDefault("info_log", d.InfoLog)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("history_file", d.HistoryFile)
	v.SetDefault("default_weight_kg", d.DefaultWeightKg)
	v.SetDefault("quick_hydration_ml", d.QuickHydrationMl)
	v.SetDefault("hydration_target_ml", d.HydrationTargetMl)
}

// ConfigLoad loads the configuration from the JSON file at path.
// If the file doesn't exist, it creates a default configuration.
// Environment variables (and a .env file in the working directory) override file values.
func ConfigLoad(path string) error {
	if path == "" {
		path = DefaultPath
	}

	// A missing .env file is not an error
	_ = godotenv.Load()

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := ConfigSave(Default(), path); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validate(cfg); err != nil {
		return err
	}

	currentConfig = cfg
	configPath = path
	return nil
}

func validate(cfg *model.Config) error {
	switch cfg.DatabaseType {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database type: %q", cfg.DatabaseType)
	}
	if cfg.KeyPrefix == "" {
		return fmt.Errorf("key_prefix must not be empty")
	}
	if cfg.DefaultWeightKg <= 0 {
		return fmt.Errorf("default_weight_kg must be positive")
	}
	return nil
}

// ConfigSave saves the provided configuration to the JSON file at path.
func ConfigSave(cfg *model.Config, path string) error {
	if path == "" {
		path = configPath
	}

	// Marshal the config to JSON
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write the JSON data to the config file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}
