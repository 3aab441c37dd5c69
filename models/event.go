package models

import "time"

// Event defines the structure for discoverable events
type Event struct {
	EventID     string `dynamodbav:"eventId" json:"eventId"`
	Title       string `dynamodbav:"title" json:"title"`
	Description string `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Location    string `dynamodbav:"location,omitempty" json:"location,omitempty"`
	DateTime    string `dynamodbav:"dateTime" json:"dateTime"` // RFC 3339
	Category    string `dynamodbav:"category,omitempty" json:"category,omitempty"`

	// Denormalized index of users currently interested, maintained
	// through the store's atomic mutate. The per-user interest records
	// are the source of truth for a user's own list.
	InterestedUserIDs []string `dynamodbav:"interestedUserIds,omitempty" json:"interestedUserIds,omitempty"`
}

// Snapshot returns a copy of the event's public fields, without the
// interested-user index.
func (e Event) Snapshot() Event {
	e.InterestedUserIDs = nil
	return e
}

// EventInterest is the denormalized record stored under a user's
// interest list: a snapshot of the event as it was at mark time.
type EventInterest struct {
	UserID   string    `dynamodbav:"userId" json:"userId"`
	EventID  string    `dynamodbav:"eventId" json:"eventId"`
	Event    Event     `dynamodbav:"event" json:"event"`
	MarkedAt time.Time `dynamodbav:"markedAt" json:"markedAt"`
}

// EventsTable is the collection name for events
const EventsTable = "Events"

// InterestsTable is the collection name for per-user event-interest snapshots
const InterestsTable = "Interests"
