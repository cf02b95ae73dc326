package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hoodly/shared/timezone"
)

const (
	TableName  = "activity_events"
	EntityName = "activity_event"

	FieldID         = "id"
	FieldBusinessID = "business_id"
	FieldEventType  = "event_type"
	FieldActorID    = "actor_id"
	FieldCreatedAt  = "created_at"
)

const (
	EventTypeView            = "view"
	EventTypeContactClick    = "contact_click"
	EventTypeInquiryReceived = "inquiry_received"
	EventTypeReviewReceived  = "review_received"
	EventTypeJobCompleted    = "job_completed"
	EventTypeProfileUpdated  = "profile_updated"
)

// ActivityEvent is one row of the append-only engagement log. Events are never
// updated or deleted, so the struct carries only a creation timestamp instead
// of the shared metadata block.
type ActivityEvent struct {
	ID         string    `db:"id"`
	BusinessID string    `db:"business_id"`
	EventType  string    `db:"event_type"`
	ActorID    *string   `db:"actor_id"`
	Payload    *string   `db:"payload"`
	CreatedAt  time.Time `db:"created_at"`
}

// New builds an event ready for insertion. The payload is stored as a JSON
// document; a payload that fails to marshal is dropped rather than blocking
// the write.
func New(businessID, eventType string, actorID *string, payload map[string]any) ActivityEvent {
	var doc *string

	if len(payload) > 0 {
		if raw, err := json.Marshal(payload); err == nil {
			value := string(raw)
			doc = &value
		}
	}

	return ActivityEvent{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		EventType:  eventType,
		ActorID:    actorID,
		Payload:    doc,
		CreatedAt:  timezone.Now(),
	}
}

func ValidEventType(eventType string) bool {
	switch eventType {
	case EventTypeView, EventTypeContactClick, EventTypeInquiryReceived,
		EventTypeReviewReceived, EventTypeJobCompleted, EventTypeProfileUpdated:
		return true
	default:
		return false
	}
}
