package config

import (
	"os"

	"fundwatch/internal/errorwrapper"

	"github.com/joho/godotenv"
)

// Environment variable names for Telegram credentials. Secrets stay
// out of config files; a .env file or the process environment carries
// them.
const (
	EnvBotToken = "FUNDWATCH_BOT_TOKEN"
	EnvChatID   = "FUNDWATCH_CHAT_ID"
)

// NotificationConfig defines configuration for the Telegram gateway.
type NotificationConfig struct {
	BotToken           string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`
	ChatID             string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
	APIBaseURL         string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty" validate:"omitempty,url"`
	DisableLinkPreview bool   `json:"disable_link_preview" yaml:"disable_link_preview"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		APIBaseURL:         DefaultTelegramAPIBaseURL,
		DisableLinkPreview: false,
	}
}

// MergeEnvironment fills credentials from a .env file (if present)
// and the process environment. Environment values take precedence
// over config-file values.
func (nc *NotificationConfig) MergeEnvironment() {
	_ = godotenv.Load()

	if token := os.Getenv(EnvBotToken); token != "" {
		nc.BotToken = token
	}
	if chatID := os.Getenv(EnvChatID); chatID != "" {
		nc.ChatID = chatID
	}
}

// EnsureCredentials fails fast when the required Telegram credentials
// are absent. Called before any network activity.
func (nc *NotificationConfig) EnsureCredentials() error {
	if nc.BotToken == "" {
		return errorwrapper.NewValidationError("bot_token", "", "Telegram bot token is required (set "+EnvBotToken+")")
	}
	if nc.ChatID == "" {
		return errorwrapper.NewValidationError("chat_id", "", "Telegram chat id is required (set "+EnvChatID+")")
	}
	return nil
}
