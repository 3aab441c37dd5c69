package models

import "time"

type Message struct {
	MessageID    string    `dynamodbav:"messageId" json:"messageId"`
	ConnectionID string    `dynamodbav:"connectionId,omitempty" json:"connectionId,omitempty"`
	SenderID     string    `dynamodbav:"senderId" json:"senderId"`
	ReceiverID   string    `dynamodbav:"receiverId" json:"receiverId"`
	Content      string    `dynamodbav:"content" json:"content"`
	Timestamp    time.Time `dynamodbav:"timestamp" json:"timestamp"` // Sort key within a thread
}

// Between reports whether the message is strictly between the two
// users, in either direction. A message involving a third party never
// qualifies.
func (m Message) Between(userA, userB string) bool {
	return (m.SenderID == userA && m.ReceiverID == userB) ||
		(m.SenderID == userB && m.ReceiverID == userA)
}

// MessagesTable is the collection name for messages
const MessagesTable = "Messages"
