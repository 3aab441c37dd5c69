package services

import (
	"context"
	"sort"
	"time"

	"eventfriend_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Document is the flat attribute-value record each entity crosses the
// store boundary as.
type Document = map[string]types.AttributeValue

// Condition is an equality or membership predicate on one field.
// A single value in AnyOf means equality; multiple values mean
// "field in {values}".
type Condition struct {
	Field string
	AnyOf []string
}

// Query selects documents from one collection by ANDed conditions,
// optionally sorted ascending by a named field. Results with ordering
// applied may still be a superset of what a caller semantically wants;
// services post-filter.
type Query struct {
	Collection string
	Conditions []Condition
	OrderBy    string
}

// DocumentStore is the key-partitioned collection store every service
// takes at construction. Implementations: DynamoStore for DynamoDB,
// MemoryStore for tests and local development. No multi-document
// transactions are assumed anywhere.
type DocumentStore interface {
	// Get returns the document, or an error wrapping ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Put marshals item and writes it under id, overwriting.
	Put(ctx context.Context, collection, id string, item interface{}) error
	// Delete removes the document; deleting an absent id is a no-op.
	Delete(ctx context.Context, collection, id string) error
	// Query returns matching documents from one collection.
	Query(ctx context.Context, q Query) ([]Document, error)
	// Mutate applies fn atomically to a single document. fn receives
	// nil when the document is absent and may return a document to
	// upsert, or nil to leave the store untouched. An error from fn
	// aborts the mutation and is returned as-is.
	Mutate(ctx context.Context, collection, id string, fn func(Document) (Document, error)) error
}

// matchesConditions evaluates a query's predicates against a document.
func matchesConditions(doc Document, conditions []Condition) bool {
	for _, cond := range conditions {
		value := utils.ExtractString(doc, cond.Field)
		found := false
		for _, want := range cond.AnyOf {
			if value == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortDocuments orders documents ascending by the named field.
// Timestamp-valued fields compare as instants; everything else
// compares as strings.
func sortDocuments(docs []Document, field string) {
	if field == "" {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a := utils.ExtractString(docs[i], field)
		b := utils.ExtractString(docs[j], field)
		ta, errA := time.Parse(time.RFC3339Nano, a)
		tb, errB := time.Parse(time.RFC3339Nano, b)
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
		return a < b
	})
}
