package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected EventPriority
	}{
		{"high", "high", EventPriorityHigh},
		{"medium", "medium", EventPriorityMedium},
		{"low", "low", EventPriorityLow},
		{"uppercase", "HIGH", EventPriorityHigh},
		{"mixed case", "Low", EventPriorityLow},
		{"surrounding whitespace", "  medium  ", EventPriorityMedium},
		{"unknown value", "urgent", EventPriorityMedium},
		{"empty", "", EventPriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePriority(tt.input))
		})
	}
}

func TestCanNotify(t *testing.T) {
	now := time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC)
	cooldown := 30 * time.Minute

	t.Run("never notified", func(t *testing.T) {
		event := &ScheduledEvent{IsNotificationEnabled: true}
		assert.True(t, event.CanNotify(now, cooldown))
	})

	t.Run("notifications disabled", func(t *testing.T) {
		lastNotified := now.Add(-2 * time.Hour)
		event := &ScheduledEvent{IsNotificationEnabled: false, LastNotifiedAt: &lastNotified}
		assert.False(t, event.CanNotify(now, cooldown))
	})

	t.Run("within cooldown", func(t *testing.T) {
		lastNotified := now.Add(-10 * time.Minute)
		event := &ScheduledEvent{IsNotificationEnabled: true, LastNotifiedAt: &lastNotified}
		assert.False(t, event.CanNotify(now, cooldown))
	})

	t.Run("cooldown elapsed", func(t *testing.T) {
		lastNotified := now.Add(-31 * time.Minute)
		event := &ScheduledEvent{IsNotificationEnabled: true, LastNotifiedAt: &lastNotified}
		assert.True(t, event.CanNotify(now, cooldown))
	})

	t.Run("exactly at cooldown boundary", func(t *testing.T) {
		lastNotified := now.Add(-cooldown)
		event := &ScheduledEvent{IsNotificationEnabled: true, LastNotifiedAt: &lastNotified}
		assert.True(t, event.CanNotify(now, cooldown))
	})
}
