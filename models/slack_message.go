package models

import (
	"time"
)

// SlackMessage is a raw message ingested from the source Slack channel.
// SlackTS is Slack's own message identifier and is the idempotency key for
// ingestion: re-fetching the same message updates the row in place.
type SlackMessage struct {
	ID          string     `json:"id"           db:"id"`
	SlackTS     string     `json:"slack_ts"     db:"slack_ts"`
	ChannelID   string     `json:"channel_id"   db:"channel_id"`
	UserID      string     `json:"user_id"      db:"user_id"`
	TextContent string     `json:"text_content" db:"text_content"`
	PostedAt    time.Time  `json:"posted_at"    db:"posted_at"`
	IsAnalyzed  bool       `json:"is_analyzed"  db:"is_analyzed"`
	AnalyzedAt  *time.Time `json:"analyzed_at"  db:"analyzed_at"`
	CreatedAt   time.Time  `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"   db:"updated_at"`
}
