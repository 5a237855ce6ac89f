package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventAnalysisStatus string

const (
	EventAnalysisStatusPending    EventAnalysisStatus = "pending"
	EventAnalysisStatusProcessing EventAnalysisStatus = "processing"
	EventAnalysisStatusSuccess    EventAnalysisStatus = "success"
	EventAnalysisStatusFailed     EventAnalysisStatus = "failed"
)

// AnalysisTypeEventExtraction is the only analysis kind the pipeline produces.
const AnalysisTypeEventExtraction = "event_extraction"

// DerivedEventFields are the best-effort parsed columns denormalized onto an
// analysis record for querying, independent of whether a scheduled event was
// ultimately created.
type DerivedEventFields struct {
	Start *time.Time
	End   *time.Time
	Title *string
	Type  *string
}

// EventAnalysis is the audit record for one event candidate extracted from a
// single LLM response. A response may yield zero, one or many candidates, each
// with its own record. ExtractedData keeps the model's original-language
// fields verbatim; failures merge the error message into it.
type EventAnalysis struct {
	ID               string              `json:"id"                   db:"id"`
	SlackMessageID   string              `json:"slack_message_id"     db:"slack_message_id"`
	ScheduledEventID *string             `json:"scheduled_event_id"   db:"scheduled_event_id"`
	AnalysisType     string              `json:"analysis_type"        db:"analysis_type"`
	ExtractedData    JSONMap             `json:"extracted_data"       db:"extracted_data"`
	ConfidenceScore  decimal.Decimal     `json:"confidence_score"     db:"confidence_score"`
	Status           EventAnalysisStatus `json:"analysis_status"      db:"analysis_status"`
	EventStart       *time.Time          `json:"event_start_datetime" db:"event_start_datetime"`
	EventEnd         *time.Time          `json:"event_end_datetime"   db:"event_end_datetime"`
	EventTitle       *string             `json:"event_title"          db:"event_title"`
	EventType        *string             `json:"event_type"           db:"event_type"`
	CreatedAt        time.Time           `json:"created_at"           db:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"           db:"updated_at"`
}
