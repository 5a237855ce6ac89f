package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap is a string-keyed JSON object stored in a JSONB column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	return scanJSON(src, m)
}

// StringList is a JSON array of strings stored in a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// NotificationRecord is one delivered-notification entry in an event's history.
type NotificationRecord struct {
	NotifiedAt time.Time `json:"notified_at"`
	Recipient  string    `json:"recipient"`
}

// NotificationHistory is the ordered delivery history stored in a JSONB column.
type NotificationHistory []NotificationRecord

func (h NotificationHistory) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

func (h *NotificationHistory) Scan(src any) error {
	return scanJSON(src, h)
}

func scanJSON(src, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported source type for JSON column: %T", src)
	}
}
