package services

import (
	"context"
	"fmt"
	"sort"

	"eventfriend_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// DashboardService composes a user's interested events, matches, and
// messages into one view. Every read is a best-effort composite over
// otherwise-independent collections; nothing here is transactional, so
// a match created concurrently with a dashboard read may or may not
// appear.
type DashboardService struct {
	Events  *EventService
	Matches *MatchService
	Store   DocumentStore
}

// DashboardView is the composite response.
type DashboardView struct {
	Events   []models.Event   `json:"events"`
	Matches  []models.Match   `json:"matches"`
	Messages []models.Message `json:"messages"`
}

// GetUserEvents returns the user's interest snapshots.
func (ds *DashboardService) GetUserEvents(ctx context.Context, userID string) ([]models.Event, error) {
	return ds.Events.ListInterested(ctx, userID)
}

// GetUserMatches returns matches with the user on either side.
func (ds *DashboardService) GetUserMatches(ctx context.Context, userID string) ([]models.Match, error) {
	return ds.Matches.GetMatchesForUser(ctx, userID)
}

// GetMessages unions the user's sent and received messages. The two
// store reads overlap on nothing semantically (a message cannot have
// the same user as both sides independently), but overlapping queries
// could still double-count, so results dedup by message id before
// sorting ascending by timestamp.
func (ds *DashboardService) GetMessages(ctx context.Context, userID string) ([]models.Message, error) {
	seen := map[string]struct{}{}
	var messages []models.Message
	for _, side := range []string{"senderId", "receiverId"} {
		docs, err := ds.Store.Query(ctx, Query{
			Collection: models.MessagesTable,
			Conditions: []Condition{{Field: side, AnyOf: []string{userID}}},
		})
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			var message models.Message
			if err := attributevalue.UnmarshalMap(doc, &message); err != nil {
				return nil, fmt.Errorf("failed to parse message: %w", err)
			}
			if _, dup := seen[message.MessageID]; dup {
				continue
			}
			seen[message.MessageID] = struct{}{}
			messages = append(messages, message)
		}
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

// GetDashboard assembles the full view for a user.
func (ds *DashboardService) GetDashboard(ctx context.Context, userID string) (*DashboardView, error) {
	events, err := ds.GetUserEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	matches, err := ds.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	messages, err := ds.GetMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DashboardView{Events: events, Matches: matches, Messages: messages}, nil
}
