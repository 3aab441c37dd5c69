package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryStore implements DocumentStore in process memory. It backs the
// test suite and local development (STORE_BACKEND=memory); semantics
// mirror DynamoStore, including atomic Mutate.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string]Document{}}
}

func (ms *MemoryStore) collection(name string) map[string]Document {
	docs, ok := ms.collections[name]
	if !ok {
		docs = map[string]Document{}
		ms.collections[name] = docs
	}
	return docs
}

// Get retrieves a document by collection and id
func (ms *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	doc, ok := ms.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("item '%s' in '%s': %w", id, collection, ErrNotFound)
	}
	return copyDocument(doc), nil
}

// Put marshals and writes a document, overwriting any existing one
func (ms *MemoryStore) Put(ctx context.Context, collection, id string, item interface{}) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}
	doc[partitionKey] = &types.AttributeValueMemberS{Value: id}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.collection(collection)[id] = doc
	return nil
}

// Delete removes a document; absent ids are a no-op
func (ms *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.collections[collection], id)
	return nil
}

// Query filters one collection by the query's conditions and orders
// ascending by the named field when set.
func (ms *MemoryStore) Query(ctx context.Context, q Query) ([]Document, error) {
	ms.mu.RLock()
	var results []Document
	for _, doc := range ms.collections[q.Collection] {
		if matchesConditions(doc, q.Conditions) {
			results = append(results, copyDocument(doc))
		}
	}
	ms.mu.RUnlock()

	// Map iteration order is random; default to id order so repeated
	// reads enumerate consistently, the way a partitioned scan does.
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = partitionKey
	}
	sortDocuments(results, orderBy)
	return results, nil
}

// Mutate applies fn to a single document under the store lock, which
// makes the read-modify-write atomic with respect to other callers.
func (ms *MemoryStore) Mutate(ctx context.Context, collection, id string, fn func(Document) (Document, error)) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	updated, err := fn(copyDocument(ms.collections[collection][id]))
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	updated[partitionKey] = &types.AttributeValueMemberS{Value: id}
	ms.collection(collection)[id] = updated
	return nil
}
