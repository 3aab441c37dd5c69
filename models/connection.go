package models

// Connection is the durable pairing record that scopes a message
// thread between two users for one event. Its id derives from the
// sorted user pair plus the event id, so re-creation overwrites
// instead of duplicating.
type Connection struct {
	ConnectionID string `dynamodbav:"connectionId" json:"connectionId"`
	User1ID      string `dynamodbav:"user1Id" json:"user1Id"`
	User2ID      string `dynamodbav:"user2Id" json:"user2Id"`
	EventID      string `dynamodbav:"eventId" json:"eventId"`
	Status       string `dynamodbav:"status" json:"status"` // pending, accepted
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// OtherUser returns the member of the pair that is not userID, and
// whether userID is part of the connection at all.
func (c Connection) OtherUser(userID string) (string, bool) {
	switch userID {
	case c.User1ID:
		return c.User2ID, true
	case c.User2ID:
		return c.User1ID, true
	}
	return "", false
}

// ConnectionsTable is the collection name for connections
const ConnectionsTable = "Connections"
