package entity

import (
	"time"
)

const (
	EventOrderPlaced         = "order.placed"
	EventOrderStatusChanged  = "order.status_changed"
	EventReviewCreated       = "review.created"
	EventVerificationDecided = "verification.decided"
	EventListingDeleted      = "listing.deleted"
)

// Event is a domain fact published after the write that caused it commits.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	SubjectID  string    `json:"subject_id"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}
