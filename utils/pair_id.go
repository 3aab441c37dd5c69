package utils

// SortPair returns the two user ids in lexicographic order.
func SortPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairEventID derives the deterministic identity for a user pair
// scoped to one event: sorted pair joined with the event id. The
// result is invariant under swapping the two users, and differs for
// different events. Connections and matches both key on it, which
// makes re-creation an overwrite instead of a duplicate.
func PairEventID(userA, userB, eventID string) string {
	a, b := SortPair(userA, userB)
	return a + "_" + b + "_" + eventID
}

// InterestID keys a user's interest snapshot for one event.
func InterestID(userID, eventID string) string {
	return userID + "#" + eventID
}
