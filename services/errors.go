package services

import (
	"errors"
	"fmt"
	"sort"

	"eventfriend_server/models"
)

// Sentinel errors every operation maps its failures onto, so callers
// can tell "nothing to show" from "operation failed".
var (
	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means the input was empty or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreUnavailable means the underlying store I/O failed. It is
	// surfaced, never retried here; retry policy is a caller concern.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// PartialFailureError reports a multi-item operation that partially
// succeeded. Created holds the matches that were persisted; Failed
// maps each failed candidate user id to its cause, so callers can
// retry only the failed subset.
type PartialFailureError struct {
	Created []models.Match
	Failed  map[string]error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure: %d created, %d failed (%v)", len(e.Created), len(e.Failed), e.FailedCandidates())
}

// FailedCandidates returns the failed candidate user ids in stable order.
func (e *PartialFailureError) FailedCandidates() []string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
