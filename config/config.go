package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SlackConfig struct {
	BotToken              string
	SourceChannelID       string
	NotificationChannelID string
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.SourceChannelID != "" &&
		c.NotificationChannelID != ""
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// IsConfigured returns true if all required Anthropic configuration is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL    string
	DatabaseSchema string
	Environment    string

	// Pipeline tuning
	FetchMessageLimit           int // Optional with default 100
	NotificationCooldownMinutes int // Optional with default 30

	// Integration configurations (grouped)
	SlackConfig     SlackConfig
	AnthropicConfig AnthropicConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	fetchLimit, err := getEnvIntWithDefault("SLACK_FETCH_MESSAGE_LIMIT", 100)
	if err != nil {
		return nil, err
	}

	cooldownMinutes, err := getEnvIntWithDefault("NOTIFICATION_COOLDOWN_MINUTES", 30)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
		Environment:    getEnvWithDefault("ENVIRONMENT", "dev"),

		// Pipeline tuning
		FetchMessageLimit:           fetchLimit,
		NotificationCooldownMinutes: cooldownMinutes,

		// Slack configuration
		SlackConfig: SlackConfig{
			BotToken:              os.Getenv("SLACK_BOT_TOKEN"),
			SourceChannelID:       os.Getenv("SLACK_CHANNEL_ID"),
			NotificationChannelID: os.Getenv("SLACK_NOTIFICATION_CHANNEL_ID"),
		},

		// Anthropic configuration
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  getEnvWithDefault("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		},
	}

	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack integration configured")
	} else {
		return nil, fmt.Errorf("slack integration is not fully configured " +
			"(SLACK_BOT_TOKEN, SLACK_CHANNEL_ID and SLACK_NOTIFICATION_CHANNEL_ID are required)")
	}

	if config.AnthropicConfig.IsConfigured() {
		log.Printf("✅ Anthropic integration configured")
	} else {
		return nil, fmt.Errorf("anthropic integration is not configured (ANTHROPIC_API_KEY is required)")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
