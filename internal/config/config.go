package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port                  string `json:"port"`
	UploadsDir            string `json:"uploads_dir"`
	ReportsDir            string `json:"reports_dir"`
	MaxConcurrent         int    `json:"max_concurrent"`
	UseOracle             bool   `json:"use_oracle"`
	OracleTimeoutSeconds  int    `json:"oracle_timeout_seconds"`
	GoogleCloudProject    string `json:"google_cloud_project"`
	GoogleCloudLocation   string `json:"google_cloud_location"`
	GoogleCredentialsPath string `json:"google_credentials_path"`
	GmailCredentialsPath  string `json:"gmail_credentials_path"`
	GmailTokenPath        string `json:"gmail_token_path"`
}

// DefaultConfig returns a new config with default values.
func DefaultConfig() *Config {
	return &Config{
		Port:                 "8080",
		UploadsDir:           "uploads",
		ReportsDir:           "reports",
		MaxConcurrent:        4,
		OracleTimeoutSeconds: 30,
		GoogleCloudLocation:  "us-central1",
		GmailCredentialsPath: "credentials.json",
		GmailTokenPath:       "token.json",
	}
}

// GetConfigPath returns the path to the configuration file.
// On Windows: %APPDATA%/ResumeScreener/config.json
// On Unix: ~/.config/ResumeScreener/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		// Windows
		configDir = filepath.Join(os.Getenv("APPDATA"), "ResumeScreener")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "ResumeScreener")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path, then applies
// a .env file (if present) and environment variable overrides. On
// first run the default config is written out so users have a file to
// edit.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := DefaultConfig().SaveTo(configPath); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path. A missing file
// yields defaults, not an error.
func LoadFrom(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// .env is optional; environment always wins over the file.
	_ = godotenv.Load()
	config.applyEnv()

	return config, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		c.UploadsDir = v
	}
	if v := os.Getenv("REPORTS_DIR"); v != "" {
		c.ReportsDir = v
	}
	if v := os.Getenv("MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("USE_ORACLE"); v != "" {
		c.UseOracle = v == "1" || v == "true"
	}
	if v := os.Getenv("ORACLE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.OracleTimeoutSeconds = n
		}
	}
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.GoogleCloudProject = v
	}
	if v := os.Getenv("GOOGLE_CLOUD_LOCATION"); v != "" {
		c.GoogleCloudLocation = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.GoogleCredentialsPath = v
	}
}

// SaveTo saves the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.UploadsDir == "" {
		return fmt.Errorf("uploads_dir is required")
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1")
	}
	if c.UseOracle {
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("google_cloud_project is required when the oracle is enabled")
		}
		if c.GoogleCloudLocation == "" {
			return fmt.Errorf("google_cloud_location is required when the oracle is enabled")
		}
		if c.GoogleCredentialsPath != "" {
			if _, err := os.Stat(c.GoogleCredentialsPath); err != nil {
				return fmt.Errorf("google credentials file not found: %w", err)
			}
		}
	}
	return nil
}

// ApplyToEnv applies configuration values to environment variables
// consumed by the Google client libraries.
func (c *Config) ApplyToEnv() {
	if c.GoogleCloudProject != "" {
		os.Setenv("GOOGLE_CLOUD_PROJECT", c.GoogleCloudProject)
	}
	if c.GoogleCloudLocation != "" {
		os.Setenv("GOOGLE_CLOUD_LOCATION", c.GoogleCloudLocation)
	}
	if c.GoogleCredentialsPath != "" {
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", c.GoogleCredentialsPath)
	}
}
