package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fundwatch/internal/errorwrapper"

	"gopkg.in/yaml.v3"
)

const (
	// Source Defaults
	DefaultSourceFormat        = "listing"
	DefaultSourceMethod        = "GET"
	DefaultSourceTimeoutSecs   = 30
	DefaultSourceUserAgent     = "fundwatch/1.0 funding-opportunity monitor"
	DefaultListingContainer    = "article.ecl-content-item"
	DefaultListingTitle        = ".ecl-content-block__title a"
	DefaultListingLink         = ".ecl-content-block__title a"
	DefaultListingSummary      = ".ecl-content-block__description"
	DefaultListingImage        = "img"
	DefaultDetailMinSummaryLen = 40

	// Monitor Defaults
	DefaultStateFile              = "fundwatch_state.json"
	DefaultReminderWeekday        = "Saturday"
	DefaultHeartbeatIntervalHours = 24

	// Notification Defaults
	DefaultTelegramAPIBaseURL = "https://api.telegram.org"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// GlobalConfig aggregates configuration for one monitor run. It is
// constructed once at process start and passed down; no component
// reads configuration from ambient scope.
type GlobalConfig struct {
	SourceConfig       SourceConfig       `json:"source_config,omitempty" yaml:"source_config,omitempty"`
	MonitorConfig      MonitorConfig      `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with all defaults applied.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		SourceConfig:       NewDefaultSourceConfig(),
		MonitorConfig:      NewDefaultMonitorConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		LogConfig:          NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default
// locations. It determines the config file path using GetConfigPath
// and supports both JSON and YAML formats. A missing config file is
// not an error: defaults plus environment credentials are a complete
// configuration.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, errorwrapper.NewValidationError("config_file", providedPath, "config file does not exist")
		}
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
