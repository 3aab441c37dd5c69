package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventfriend_server/models"
	"eventfriend_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
)

type EventService struct {
	Store DocumentStore
}

// AddEvent validates and stores a new event
func (es *EventService) AddEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if event.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if _, err := time.Parse(time.RFC3339, event.DateTime); err != nil {
		return nil, fmt.Errorf("%w: dateTime must be RFC 3339: %v", ErrInvalidArgument, err)
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	} else if _, err := es.Store.Get(ctx, models.EventsTable, event.EventID); err == nil {
		// Events are immutable through this surface once created;
		// a colliding id must not silently replace one.
		return nil, fmt.Errorf("%w: event '%s' already exists", ErrInvalidArgument, event.EventID)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	event.InterestedUserIDs = nil

	if err := es.Store.Put(ctx, models.EventsTable, event.EventID, event); err != nil {
		return nil, err
	}
	log.Printf("Created event %s (%s)", event.EventID, event.Title)
	return &event, nil
}

// GetEventByID retrieves an event by id
func (es *EventService) GetEventByID(ctx context.Context, eventID string) (*models.Event, error) {
	doc, err := es.Store.Get(ctx, models.EventsTable, eventID)
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := attributevalue.UnmarshalMap(doc, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event '%s': %w", eventID, err)
	}
	return &event, nil
}

// ListEvents returns all events, optionally filtered by category
func (es *EventService) ListEvents(ctx context.Context, category string) ([]models.Event, error) {
	q := Query{Collection: models.EventsTable}
	if category != "" {
		q.Conditions = []Condition{{Field: "category", AnyOf: []string{category}}}
	}
	docs, err := es.Store.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		var event models.Event
		if err := attributevalue.UnmarshalMap(doc, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// MarkInterested records the user's interest in an event. The stored
// record is a snapshot of the event's public fields at mark time, so
// later edits to the event do not retroactively change what the user
// sees. Re-marking overwrites the same snapshot. The event document's
// interested-user index is toggled through the store's atomic mutate
// so concurrent togglers cannot lose updates.
func (es *EventService) MarkInterested(ctx context.Context, userID, eventID string) (*models.Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidArgument)
	}
	event, err := es.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	snapshot := models.EventInterest{
		UserID:   userID,
		EventID:  eventID,
		Event:    event.Snapshot(),
		MarkedAt: time.Now().UTC(),
	}
	if err := es.Store.Put(ctx, models.InterestsTable, utils.InterestID(userID, eventID), snapshot); err != nil {
		return nil, err
	}

	if err := es.toggleInterestedUser(ctx, eventID, userID, true); err != nil {
		return nil, err
	}
	log.Printf("User %s marked interested in event %s", userID, eventID)
	snapshotEvent := snapshot.Event
	return &snapshotEvent, nil
}

// UnmarkInterested removes the user's interest; absent interest is a no-op.
func (es *EventService) UnmarkInterested(ctx context.Context, userID, eventID string) error {
	if err := es.Store.Delete(ctx, models.InterestsTable, utils.InterestID(userID, eventID)); err != nil {
		return err
	}
	return es.toggleInterestedUser(ctx, eventID, userID, false)
}

// ListInterested returns the user's event snapshots, unordered. A user
// who marked nothing gets an empty slice, not an error.
func (es *EventService) ListInterested(ctx context.Context, userID string) ([]models.Event, error) {
	docs, err := es.Store.Query(ctx, Query{
		Collection: models.InterestsTable,
		Conditions: []Condition{{Field: "userId", AnyOf: []string{userID}}},
	})
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		var interest models.EventInterest
		if err := attributevalue.UnmarshalMap(doc, &interest); err != nil {
			return nil, fmt.Errorf("failed to parse interest record: %w", err)
		}
		events = append(events, interest.Event)
	}
	return events, nil
}

// toggleInterestedUser atomically adds or removes the user id in the
// event document's denormalized interested-user index.
func (es *EventService) toggleInterestedUser(ctx context.Context, eventID, userID string, interested bool) error {
	err := es.Store.Mutate(ctx, models.EventsTable, eventID, func(doc Document) (Document, error) {
		if doc == nil {
			// Event vanished; nothing to index.
			return nil, nil
		}
		current := utils.ExtractStringList(doc, "interestedUserIds")
		next := make([]string, 0, len(current)+1)
		for _, uid := range current {
			if uid != userID {
				next = append(next, uid)
			}
		}
		if interested {
			next = append(next, userID)
		}
		doc["interestedUserIds"] = utils.StringListAttribute(next)
		return doc, nil
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
