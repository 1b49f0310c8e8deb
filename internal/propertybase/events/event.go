// Package events publishes and consumes property base component change
// events over Kafka.
package events

import (
	"time"

	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
)

type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

type EventType string

// TypeOf builds the event type for an entity action, e.g. "component_created".
func TypeOf(entity models.Entity, action Action) EventType {
	return EventType(string(entity) + "_" + string(action))
}

// Event describes one mutation of the component hierarchy.
type Event struct {
	Type       EventType     `json:"type"`
	Entity     models.Entity `json:"entity"`
	Action     Action        `json:"action"`
	ID         uuid.UUID     `json:"id"`
	OccurredAt time.Time     `json:"occurredAt"`
	Payload    any           `json:"payload,omitempty"`
}

// NewEvent stamps an event for the given entity record.
func NewEvent(entity models.Entity, action Action, id uuid.UUID, payload any) Event {
	return Event{
		Type:       TypeOf(entity, action),
		Entity:     entity,
		Action:     action,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
