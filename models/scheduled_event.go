package models

import (
	"strings"
	"time"
)

type ScheduledEventStatus string

const (
	ScheduledEventStatusPending   ScheduledEventStatus = "pending"
	ScheduledEventStatusCompleted ScheduledEventStatus = "completed"
	ScheduledEventStatusCancelled ScheduledEventStatus = "cancelled"
)

type EventPriority string

const (
	EventPriorityHigh   EventPriority = "high"
	EventPriorityMedium EventPriority = "medium"
	EventPriorityLow    EventPriority = "low"
)

// NormalizePriority maps a free-text priority to the canonical allow-list,
// matching case-insensitively and defaulting to medium for anything else.
func NormalizePriority(priority string) EventPriority {
	switch EventPriority(strings.ToLower(strings.TrimSpace(priority))) {
	case EventPriorityHigh:
		return EventPriorityHigh
	case EventPriorityMedium:
		return EventPriorityMedium
	case EventPriorityLow:
		return EventPriorityLow
	default:
		return EventPriorityMedium
	}
}

// ScheduledEvent is a schedule entry extracted from a Slack message.
// StartDatetime is always present and valid on a persisted event.
type ScheduledEvent struct {
	ID                    string               `json:"id"                      db:"id"`
	SlackMessageID        string               `json:"slack_message_id"        db:"slack_message_id"`
	EventType             string               `json:"event_type"              db:"event_type"`
	Title                 string               `json:"title"                   db:"title"`
	Description           *string              `json:"description"             db:"description"`
	StartDatetime         time.Time            `json:"start_datetime"          db:"start_datetime"`
	EndDatetime           *time.Time           `json:"end_datetime"            db:"end_datetime"`
	Location              *string              `json:"location"                db:"location"`
	Participants          StringList           `json:"participants"            db:"participants"`
	Status                ScheduledEventStatus `json:"status"                  db:"status"`
	Priority              EventPriority        `json:"priority"                db:"priority"`
	IsNotificationEnabled bool                 `json:"is_notification_enabled" db:"is_notification_enabled"`
	LastNotifiedAt        *time.Time           `json:"last_notified_at"        db:"last_notified_at"`
	NotificationHistory   NotificationHistory  `json:"notification_history"    db:"notification_history"`
	CreatedAt             time.Time            `json:"created_at"              db:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"              db:"updated_at"`
}

// CanNotify reports whether the event may be notified at the given time:
// notifications must be enabled and the cooldown since the last notification
// must have elapsed.
func (e *ScheduledEvent) CanNotify(now time.Time, cooldown time.Duration) bool {
	if !e.IsNotificationEnabled {
		return false
	}
	if e.LastNotifiedAt == nil {
		return true
	}
	return !now.Before(e.LastNotifiedAt.Add(cooldown))
}
