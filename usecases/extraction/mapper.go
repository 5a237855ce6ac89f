package extraction

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/mo"

	"schedbot/models"
)

// extractionSystemPrompt asks the model for structured schedule extraction.
// The prompt and the response keys are Japanese; extracted data is stored
// verbatim and mapped to canonical field names before validation.
const extractionSystemPrompt = "あなたは予定情報を抽出する専門家です。" +
	"以下のメッセージから予定の情報を抽出し、JSON形式で返してください。" +
	"メッセージに複数の予定が含まれている場合は、配列形式で複数の予定情報を返してください。" +
	"各予定の抽出する情報：イベントタイプ、タイトル、説明、開始日時、終了日時、場所、参加者、優先度。" +
	"日時はISO 8601形式で返してください。"

// errInvalidAnalysisResult marks a candidate synthesized from an unparseable
// or empty LLM response.
const errInvalidAnalysisResult = "無効な分析結果（または空の応答）"

// Response keys produced by the extraction prompt.
const (
	keyEventType    = "イベントタイプ"
	keyTitle        = "タイトル"
	keyDescription  = "説明"
	keyStart        = "開始日時"
	keyEnd          = "終了日時"
	keyLocation     = "場所"
	keyParticipants = "参加者"
	keyPriority     = "優先度"
)

// eventTimeLayouts are accepted datetime formats, most specific first. The
// prompt asks for ISO 8601 but models drift.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCandidates decodes a raw LLM response into candidate objects. A bare
// object becomes a one-element list; anything unparseable or empty becomes a
// single candidate carrying an error marker so the caller can audit it
// instead of aborting.
func ParseCandidates(raw string) []models.JSONMap {
	var asList []models.JSONMap
	if err := json.Unmarshal([]byte(raw), &asList); err == nil {
		if len(asList) == 0 {
			return []models.JSONMap{{"error": errInvalidAnalysisResult}}
		}
		return asList
	}

	var asObject models.JSONMap
	if err := json.Unmarshal([]byte(raw), &asObject); err == nil && len(asObject) > 0 {
		return []models.JSONMap{asObject}
	}

	return []models.JSONMap{{"error": errInvalidAnalysisResult}}
}

// CandidateError returns the error marker carried by a candidate, if any.
func CandidateError(candidate models.JSONMap) (string, bool) {
	value, ok := candidate["error"]
	if !ok {
		return "", false
	}
	return stringValue(value), true
}

// MappedCandidate is a candidate with its fields mapped onto canonical names.
// All fields are raw strings at this stage; validation and datetime parsing
// happen in BuildScheduledEvent.
type MappedCandidate struct {
	EventType    string
	Title        string
	Description  string
	Start        string
	End          string
	Location     string
	Participants []string
	Priority     string
}

// MapCandidateFields maps the response-language keys of a candidate onto the
// canonical field set. Missing or non-string values map to zero values.
func MapCandidateFields(candidate models.JSONMap) MappedCandidate {
	return MappedCandidate{
		EventType:    stringValue(candidate[keyEventType]),
		Title:        stringValue(candidate[keyTitle]),
		Description:  stringValue(candidate[keyDescription]),
		Start:        stringValue(candidate[keyStart]),
		End:          stringValue(candidate[keyEnd]),
		Location:     stringValue(candidate[keyLocation]),
		Participants: stringListValue(candidate[keyParticipants]),
		Priority:     stringValue(candidate[keyPriority]),
	}
}

// DerivedFields produces the best-effort denormalized columns for the
// analysis record. Parse failures leave the corresponding field nil.
func (c MappedCandidate) DerivedFields() models.DerivedEventFields {
	derived := models.DerivedEventFields{}
	if start, err := parseEventTime(c.Start); err == nil {
		derived.Start = &start
	}
	if end, err := parseEventTime(c.End); err == nil {
		derived.End = &end
	}
	if c.Title != "" {
		title := c.Title
		derived.Title = &title
	}
	if c.EventType != "" {
		eventType := c.EventType
		derived.Type = &eventType
	}
	return derived
}

// HasStart reports whether the candidate carries a start datetime at all.
// Candidates without one are recorded but produce no scheduled event.
func (c MappedCandidate) HasStart() bool {
	return c.Start != ""
}

// BuildScheduledEvent validates a mapped candidate and builds the event to
// persist. Validation failures come back as the Err variant; the caller
// aggregates them into the analysis record without aborting the batch.
func BuildScheduledEvent(slackMessageID string, c MappedCandidate) mo.Result[*models.ScheduledEvent] {
	if c.Start == "" {
		return mo.Err[*models.ScheduledEvent](fmt.Errorf("required field start_datetime is missing"))
	}
	if c.EventType == "" {
		return mo.Err[*models.ScheduledEvent](fmt.Errorf("required field event_type is missing"))
	}
	if c.Title == "" {
		return mo.Err[*models.ScheduledEvent](fmt.Errorf("required field title is missing"))
	}

	start, err := parseEventTime(c.Start)
	if err != nil {
		return mo.Err[*models.ScheduledEvent](fmt.Errorf("invalid start_datetime %q: %w", c.Start, err))
	}

	var end *time.Time
	if c.End != "" {
		parsed, err := parseEventTime(c.End)
		if err != nil {
			return mo.Err[*models.ScheduledEvent](fmt.Errorf("invalid end_datetime %q: %w", c.End, err))
		}
		end = &parsed
	}

	event := &models.ScheduledEvent{
		SlackMessageID: slackMessageID,
		EventType:      c.EventType,
		Title:          c.Title,
		StartDatetime:  start,
		EndDatetime:    end,
		Participants:   models.StringList(c.Participants),
		Status:         models.ScheduledEventStatusPending,
		Priority:       models.NormalizePriority(c.Priority),
	}
	if c.Description != "" {
		description := c.Description
		event.Description = &description
	}
	if c.Location != "" {
		location := c.Location
		event.Location = &location
	}

	return mo.Ok(event)
}

func parseEventTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("datetime is empty")
	}
	for _, layout := range eventTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported datetime format")
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stringListValue(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			list = append(list, stringValue(item))
		}
		return list
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
