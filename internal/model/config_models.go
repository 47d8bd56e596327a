// Package model defines the data structures used throughout the IronPulse application.
package model

// Config holds the application settings loaded from the config file and environment.
type Config struct {
	DatabaseType      string  `json:"database_type" mapstructure:"database_type"`
	DatabaseDir       string  `json:"database_dir" mapstructure:"database_dir"`
	DatabaseFile      string  `json:"database_file" mapstructure:"database_file"`
	KeyPrefix         string  `json:"key_prefix" mapstructure:"key_prefix"`
	LogFolder         string  `json:"log_folder" mapstructure:"log_folder"`
	CommandLog        string  `json:"command_log" mapstructure:"command_log"`
	ErrorLog          string  `json:"error_log" mapstructure:"error_log"`
	InfoLog           string  `json:"info_log" mapstructure:"info_log"`
	LogLevel          string  `json:"log_level" mapstructure:"log_level"`
	HistoryFile       string  `json:"history_file" mapstructure:"history_file"`
	DefaultWeightKg   float64 `json:"default_weight_kg" mapstructure:"default_weight_kg"`
	QuickHydrationMl  int     `json:"quick_hydration_ml" mapstructure:"quick_hydration_ml"`
	HydrationTargetMl int     `json:"hydration_target_ml" mapstructure:"hydration_target_ml"`
}
