package models

type Match struct {
	MatchID    string  `dynamodbav:"matchId" json:"matchId"`       // Deterministic: sortedPair_eventId
	User1ID    string  `dynamodbav:"user1Id" json:"user1Id"`       // Lexicographically smaller of the pair
	User2ID    string  `dynamodbav:"user2Id" json:"user2Id"`       // The other user
	EventID    string  `dynamodbav:"eventId" json:"eventId"`       // Event the pair was scored for
	MatchScore float64 `dynamodbav:"matchScore" json:"matchScore"` // Jaccard similarity in [0,1], immutable
	Status     string  `dynamodbav:"status" json:"status"`         // pending, accepted, rejected
	CreatedAt  string  `dynamodbav:"createdAt" json:"createdAt"`   // Timestamp of creation
}

// Involves reports whether the user is either side of the match.
func (m Match) Involves(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// MatchesTable is the collection name for matches
const MatchesTable = "Matches"
