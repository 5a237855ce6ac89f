package testutils

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type TestConfig struct {
	DatabaseURL    string
	DatabaseSchema string
}

// LoadTestConfig loads database settings for integration tests from .env.test
// and skips the test when they are absent, so unit-only runs stay green
// without a database.
func LoadTestConfig(t *testing.T) *TestConfig {
	t.Helper()

	_ = godotenv.Load(".env.test", "../.env.test", "../../.env.test")

	databaseURL := os.Getenv("DB_URL")
	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseURL == "" || databaseSchema == "" {
		t.Skip("DB_URL and DB_SCHEMA are not set, skipping integration test")
	}

	return &TestConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
	}
}

// GenerateSlackTS returns a unique Slack-style message timestamp.
func GenerateSlackTS() string {
	return fmt.Sprintf("%d.%06d", time.Now().Unix(), time.Now().Nanosecond()/1000)
}

// GenerateChannelID returns a unique Slack-style channel ID.
func GenerateChannelID() string {
	return "C" + uuid.New().String()[:8]
}

// GenerateUserID returns a unique Slack-style user ID.
func GenerateUserID() string {
	return "U" + uuid.New().String()[:8]
}
