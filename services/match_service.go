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
)

type MatchService struct {
	Store DocumentStore
}

// ScoreSimilarity computes the Jaccard similarity of two interest
// sets: |A∩B| / |A∪B|. Duplicate tags count once. The score is
// symmetric, lies in [0,1], and is defined as 0 when both sets are
// empty (union size 0).
func (ms *MatchService) ScoreSimilarity(interestsA, interestsB []string) float64 {
	setA := make(map[string]struct{}, len(interestsA))
	for _, tag := range interestsA {
		setA[tag] = struct{}{}
	}
	setB := make(map[string]struct{}, len(interestsB))
	for _, tag := range interestsB {
		setB[tag] = struct{}{}
	}

	shared := 0
	for tag := range setA {
		if _, ok := setB[tag]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// FindMatchesForUser scores the user against every other known user
// for the given event and persists one pending Match per candidate.
//
// This is an unbounded fan-out: cost is O(total users), one score and
// one write each. Callers must not invoke it per-request at scale
// without caching. Match ids are deterministic (sorted pair + event),
// so re-invocation finds the existing record for a pair and leaves it
// untouched instead of inserting a duplicate.
//
// Matches are returned in candidate enumeration order. When persisting
// some candidates fails, the sweep continues and the error is a
// *PartialFailureError naming the failed candidates, so callers can
// retry only those.
func (ms *MatchService) FindMatchesForUser(ctx context.Context, userID, eventID string) ([]models.Match, error) {
	userDoc, err := ms.Store.Get(ctx, models.UsersTable, userID)
	if err != nil {
		return nil, err
	}
	var user models.UserProfile
	if err := attributevalue.UnmarshalMap(userDoc, &user); err != nil {
		return nil, fmt.Errorf("failed to parse profile for '%s': %w", userID, err)
	}

	candidateDocs, err := ms.Store.Query(ctx, Query{Collection: models.UsersTable})
	if err != nil {
		return nil, err
	}

	var matches []models.Match
	failed := map[string]error{}
	for _, doc := range candidateDocs {
		var candidate models.UserProfile
		if err := attributevalue.UnmarshalMap(doc, &candidate); err != nil {
			log.Printf("Skipping unreadable candidate record: %v", err)
			continue
		}
		if candidate.UserID == "" || candidate.UserID == userID {
			continue
		}

		match, err := ms.matchWithCandidate(ctx, user, candidate, eventID)
		if err != nil {
			log.Printf("Failed to persist match for candidate %s: %v", candidate.UserID, err)
			failed[candidate.UserID] = err
			continue
		}
		matches = append(matches, *match)
	}

	if len(failed) > 0 {
		return matches, &PartialFailureError{Created: matches, Failed: failed}
	}
	log.Printf("Created or found %d matches for user %s on event %s", len(matches), userID, eventID)
	return matches, nil
}

// matchWithCandidate creates the pending match for one candidate, or
// returns the existing record when the pair was already matched for
// this event. Score and status are immutable once created.
func (ms *MatchService) matchWithCandidate(ctx context.Context, user, candidate models.UserProfile, eventID string) (*models.Match, error) {
	matchID := utils.PairEventID(user.UserID, candidate.UserID, eventID)

	existingDoc, err := ms.Store.Get(ctx, models.MatchesTable, matchID)
	if err == nil {
		var existing models.Match
		if err := attributevalue.UnmarshalMap(existingDoc, &existing); err != nil {
			return nil, fmt.Errorf("failed to parse match '%s': %w", matchID, err)
		}
		return &existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user1, user2 := utils.SortPair(user.UserID, candidate.UserID)
	match := models.Match{
		MatchID:    matchID,
		User1ID:    user1,
		User2ID:    user2,
		EventID:    eventID,
		MatchScore: ms.ScoreSimilarity(user.Interests, candidate.Interests),
		Status:     models.MatchStatusPending,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := ms.Store.Put(ctx, models.MatchesTable, matchID, match); err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateMatchStatus applies an accept/reject transition. The score is
// never touched.
func (ms *MatchService) UpdateMatchStatus(ctx context.Context, matchID, status string) (*models.Match, error) {
	if status != models.MatchStatusAccepted && status != models.MatchStatusRejected {
		return nil, fmt.Errorf("%w: status must be %q or %q", ErrInvalidArgument, models.MatchStatusAccepted, models.MatchStatusRejected)
	}

	var updated models.Match
	err := ms.Store.Mutate(ctx, models.MatchesTable, matchID, func(doc Document) (Document, error) {
		if doc == nil {
			return nil, fmt.Errorf("match '%s': %w", matchID, ErrNotFound)
		}
		var match models.Match
		if err := attributevalue.UnmarshalMap(doc, &match); err != nil {
			return nil, fmt.Errorf("failed to parse match '%s': %w", matchID, err)
		}
		match.Status = status
		updated = match
		return marshalDocument(match)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetMatchesForUser unions matches where the user is either side.
// The engine never produces a self-match, so no dedup is needed.
func (ms *MatchService) GetMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	for _, side := range []string{"user1Id", "user2Id"} {
		docs, err := ms.Store.Query(ctx, Query{
			Collection: models.MatchesTable,
			Conditions: []Condition{{Field: side, AnyOf: []string{userID}}},
		})
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			var match models.Match
			if err := attributevalue.UnmarshalMap(doc, &match); err != nil {
				return nil, fmt.Errorf("failed to parse match: %w", err)
			}
			matches = append(matches, match)
		}
	}
	return matches, nil
}
