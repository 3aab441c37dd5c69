package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"eventfriend_server/models"
	"eventfriend_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
)

// ChatService owns connections and the message threads scoped to them.
type ChatService struct {
	Store DocumentStore

	// Guards lastStamp so message timestamps from this channel are
	// strictly increasing even when the clock stalls.
	mu        sync.Mutex
	lastStamp time.Time
}

// CreateConnection establishes the pairing record for two users on one
// event. The id derives from the sorted pair plus the event id, so the
// same pair and event always yield the same connection and re-creation
// overwrites rather than duplicates. The id is NOT stable across
// different events for the same pair.
func (cs *ChatService) CreateConnection(ctx context.Context, userA, userB, eventID string) (*models.Connection, error) {
	if userA == "" || userB == "" || eventID == "" {
		return nil, fmt.Errorf("%w: both users and eventId are required", ErrInvalidArgument)
	}
	if userA == userB {
		return nil, fmt.Errorf("%w: cannot connect a user to themselves", ErrInvalidArgument)
	}

	user1, user2 := utils.SortPair(userA, userB)
	connection := models.Connection{
		ConnectionID: utils.PairEventID(userA, userB, eventID),
		User1ID:      user1,
		User2ID:      user2,
		EventID:      eventID,
		Status:       models.ConnectionStatusPending,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := cs.Store.Put(ctx, models.ConnectionsTable, connection.ConnectionID, connection); err != nil {
		return nil, err
	}
	log.Printf("Connection %s created", connection.ConnectionID)
	return &connection, nil
}

// GetConnection retrieves a connection by id
func (cs *ChatService) GetConnection(ctx context.Context, connectionID string) (*models.Connection, error) {
	doc, err := cs.Store.Get(ctx, models.ConnectionsTable, connectionID)
	if err != nil {
		return nil, err
	}
	var connection models.Connection
	if err := attributevalue.UnmarshalMap(doc, &connection); err != nil {
		return nil, fmt.Errorf("failed to parse connection '%s': %w", connectionID, err)
	}
	return &connection, nil
}

// AcceptConnection moves a pending connection to accepted.
func (cs *ChatService) AcceptConnection(ctx context.Context, connectionID string) (*models.Connection, error) {
	var updated models.Connection
	err := cs.Store.Mutate(ctx, models.ConnectionsTable, connectionID, func(doc Document) (Document, error) {
		if doc == nil {
			return nil, fmt.Errorf("connection '%s': %w", connectionID, ErrNotFound)
		}
		var connection models.Connection
		if err := attributevalue.UnmarshalMap(doc, &connection); err != nil {
			return nil, fmt.Errorf("failed to parse connection '%s': %w", connectionID, err)
		}
		connection.Status = models.ConnectionStatusAccepted
		updated = connection
		return marshalDocument(connection)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SendMessage accepts a message between two users. Content must be
// non-empty. The message gets a server-generated id and a timestamp
// equal to the moment of acceptance; timestamps are the thread sort
// key. The persisted message is returned.
func (cs *ChatService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	return cs.send(ctx, models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
}

// SendMessageOnConnection accepts a message into an established
// connection's thread; the receiver is the other member of the pair.
func (cs *ChatService) SendMessageOnConnection(ctx context.Context, connectionID, senderID, content string) (*models.Message, error) {
	connection, err := cs.GetConnection(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	receiverID, ok := connection.OtherUser(senderID)
	if !ok {
		return nil, fmt.Errorf("%w: sender '%s' is not part of connection '%s'", ErrInvalidArgument, senderID, connectionID)
	}
	return cs.send(ctx, models.Message{
		ConnectionID: connectionID,
		SenderID:     senderID,
		ReceiverID:   receiverID,
		Content:      content,
	})
}

func (cs *ChatService) send(ctx context.Context, message models.Message) (*models.Message, error) {
	if message.SenderID == "" || message.ReceiverID == "" {
		return nil, fmt.Errorf("%w: senderId and receiverId are required", ErrInvalidArgument)
	}
	if strings.TrimSpace(message.Content) == "" {
		return nil, fmt.Errorf("%w: message content must be non-empty", ErrInvalidArgument)
	}

	message.MessageID = uuid.NewString()
	message.Timestamp = cs.nextTimestamp()

	if err := cs.Store.Put(ctx, models.MessagesTable, message.MessageID, message); err != nil {
		return nil, err
	}
	return &message, nil
}

// nextTimestamp hands out acceptance times that always sort after the
// previous message from this channel.
func (cs *ChatService) nextTimestamp() time.Time {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	now := time.Now().UTC()
	if !now.After(cs.lastStamp) {
		now = cs.lastStamp.Add(time.Microsecond)
	}
	cs.lastStamp = now
	return now
}

// GetMessagesBetween returns the messages strictly between the two
// users, either direction, ascending by timestamp. The store query is
// a superset (sender in {A,B} also matches messages between A and some
// third user), so results are post-filtered to exact-pair membership.
func (cs *ChatService) GetMessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	docs, err := cs.Store.Query(ctx, Query{
		Collection: models.MessagesTable,
		Conditions: []Condition{
			{Field: "senderId", AnyOf: []string{userA, userB}},
		},
	})
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		var message models.Message
		if err := attributevalue.UnmarshalMap(doc, &message); err != nil {
			return nil, fmt.Errorf("failed to parse message: %w", err)
		}
		if !message.Between(userA, userB) {
			continue
		}
		messages = append(messages, message)
	}
	sortMessages(messages)
	return messages, nil
}

// GetMessagesByConnection returns the canonical thread view for one
// connection, ascending by timestamp.
func (cs *ChatService) GetMessagesByConnection(ctx context.Context, connectionID string) ([]models.Message, error) {
	docs, err := cs.Store.Query(ctx, Query{
		Collection: models.MessagesTable,
		Conditions: []Condition{{Field: "connectionId", AnyOf: []string{connectionID}}},
	})
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		var message models.Message
		if err := attributevalue.UnmarshalMap(doc, &message); err != nil {
			return nil, fmt.Errorf("failed to parse message: %w", err)
		}
		messages = append(messages, message)
	}
	sortMessages(messages)
	return messages, nil
}

// sortMessages owns thread ordering: ascending by timestamp on the
// unmarshalled instants. Store reads come back unordered.
func sortMessages(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}
