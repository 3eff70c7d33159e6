// Package config provides configuration loading and validation for the CLI.
// Values come from an optional JSON file merged with environment variables;
// the environment wins for credentials.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults mirrored as config fall-backs.
const (
	DefaultModel              = "gemini-2.5-flash-lite"
	DefaultLogLevel           = "info"
	DefaultDatabasePath       = "atic.db"
	DefaultRetentionDays      = 365
	DefaultCodeTimeoutSeconds = 10
	DefaultHistoryLimit       = 10
)

// Config holds all runtime settings. All fields are optional in the JSON
// file; missing values are filled by MergeWithDefaults.
type Config struct {
	// Storage. DatabaseURL selects the PostgreSQL backend; DatabasePath the
	// embedded SQLite default.
	DatabasePath string `json:"database_path,omitempty"`
	DatabaseURL  string `json:"database_url,omitempty"`

	// Credentials, normally supplied via environment.
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
	SearchAPIKey   string `json:"search_api_key,omitempty"`
	SearchEngineID string `json:"search_engine_id,omitempty"`

	// Behavior
	Model              string `json:"model,omitempty"`
	LogLevel           string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	RetentionDays      int    `json:"retention_days,omitempty" validate:"min=0"`
	CodeTimeoutSeconds int    `json:"code_timeout_seconds,omitempty" validate:"min=0"`
	HistoryLimit       int    `json:"history_limit,omitempty" validate:"min=0"`
}

// ValidationReport separates hard errors from degraded-functionality notes.
type ValidationReport struct {
	Valid           bool     `json:"is_valid"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	MissingOptional []string `json:"missing_optional"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv fills credentials and the log level from the environment. Existing
// values are overwritten only when the variable is set.
func (c *Config) FromEnv() {
	for env, target := range map[string]*string{
		"GEMINI_API_KEY":          &c.GeminiAPIKey,
		"GOOGLE_SEARCH_API_KEY":   &c.SearchAPIKey,
		"GOOGLE_SEARCH_ENGINE_ID": &c.SearchEngineID,
		"ATIC_DATABASE_URL":       &c.DatabaseURL,
		"ATIC_LOG_LEVEL":          &c.LogLevel,
	} {
		if value := os.Getenv(env); value != "" {
			*target = value
		}
	}
}

// MergeWithDefaults returns a copy with empty fields filled from defaults.
func (c *Config) MergeWithDefaults() Config {
	result := *c
	if result.DatabasePath == "" {
		result.DatabasePath = DefaultDatabasePath
	}
	if result.Model == "" {
		result.Model = DefaultModel
	}
	if result.LogLevel == "" {
		result.LogLevel = DefaultLogLevel
	}
	if result.RetentionDays == 0 {
		result.RetentionDays = DefaultRetentionDays
	}
	if result.CodeTimeoutSeconds == 0 {
		result.CodeTimeoutSeconds = DefaultCodeTimeoutSeconds
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = DefaultHistoryLimit
	}
	return result
}

// Validate checks field values and credential availability. A missing
// Gemini key is a hard error only when the command needs the LLM coach;
// missing search credentials are always just degraded functionality.
func (c *Config) Validate(needGemini bool) *ValidationReport {
	report := &ValidationReport{Valid: true}

	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			for _, fieldErr := range errs {
				report.Errors = append(report.Errors,
					fmt.Sprintf("invalid value for %s (%s)", fieldErr.Field(), fieldErr.Tag()))
			}
		} else {
			report.Errors = append(report.Errors, err.Error())
		}
	}

	if c.GeminiAPIKey == "" {
		if needGemini {
			report.Errors = append(report.Errors, "GEMINI_API_KEY is required for interview coaching")
		} else {
			report.MissingOptional = append(report.MissingOptional,
				"GEMINI_API_KEY - generated questions fall back to the built-in bank")
		}
	}
	if c.SearchAPIKey == "" {
		report.MissingOptional = append(report.MissingOptional,
			"GOOGLE_SEARCH_API_KEY - search functionality will be limited")
	}
	if c.SearchEngineID == "" {
		report.MissingOptional = append(report.MissingOptional,
			"GOOGLE_SEARCH_ENGINE_ID - search functionality will be limited")
	}

	if c.DatabaseURL != "" && c.DatabasePath != "" && c.DatabasePath != DefaultDatabasePath {
		report.Warnings = append(report.Warnings,
			"both database_url and database_path set; database_url wins")
	}

	report.Valid = len(report.Errors) == 0
	return report
}
