package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"eventfriend_server/models"
	"eventfriend_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestMemoryStoreBasics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("get of a missing id is not found", func(t *testing.T) {
		if _, err := store.Get(ctx, "Things", "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("delete of a missing id is a no-op", func(t *testing.T) {
		if err := store.Delete(ctx, "Things", "nope"); err != nil {
			t.Fatalf("got %v, want nil", err)
		}
	})

	t.Run("entity round trip", func(t *testing.T) {
		profile := models.UserProfile{
			UserID: "u1", Name: "Ada", Email: "ada@example.com",
			Interests: []string{"music"},
		}
		profile.SetMainPreferences(models.Preferences{AgeRange: "25-35", Distance: 10})

		if err := store.Put(ctx, models.UsersTable, "u1", profile); err != nil {
			t.Fatalf("put: %v", err)
		}
		doc, err := store.Get(ctx, models.UsersTable, "u1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}

		var got models.UserProfile
		if err := attributevalue.UnmarshalMap(doc, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.UserID != "u1" || got.Name != "Ada" || got.MainPreferences().Distance != 10 {
			t.Fatalf("round trip lost fields: %+v", got)
		}
	})
}

func TestMemoryStoreQuery(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	type record struct {
		Kind string `dynamodbav:"kind"`
		Name string `dynamodbav:"name"`
	}
	for i, r := range []record{
		{Kind: "a", Name: "one"},
		{Kind: "b", Name: "two"},
		{Kind: "c", Name: "three"},
	} {
		if err := store.Put(ctx, "Records", strconv.Itoa(i), r); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	t.Run("equality condition", func(t *testing.T) {
		docs, err := store.Query(ctx, Query{
			Collection: "Records",
			Conditions: []Condition{{Field: "kind", AnyOf: []string{"b"}}},
		})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(docs) != 1 || utils.ExtractString(docs[0], "name") != "two" {
			t.Fatalf("got %v", docs)
		}
	})

	t.Run("membership condition", func(t *testing.T) {
		docs, err := store.Query(ctx, Query{
			Collection: "Records",
			Conditions: []Condition{{Field: "kind", AnyOf: []string{"a", "c"}}},
		})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("got %d docs, want 2", len(docs))
		}
	})

	t.Run("order by field ascending", func(t *testing.T) {
		docs, err := store.Query(ctx, Query{Collection: "Records", OrderBy: "name"})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if utils.ExtractString(docs[0], "name") != "one" || utils.ExtractString(docs[2], "name") != "two" {
			t.Fatalf("wrong order: %v", docs)
		}
	})
}

func TestMemoryStoreMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts when the document is absent", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.Mutate(ctx, "Counters", "c1", func(doc Document) (Document, error) {
			if doc != nil {
				t.Fatal("expected nil document for an absent id")
			}
			return Document{"count": &types.AttributeValueMemberN{Value: "1"}}, nil
		})
		if err != nil {
			t.Fatalf("mutate: %v", err)
		}
		if _, err := store.Get(ctx, "Counters", "c1"); err != nil {
			t.Fatalf("get after upsert: %v", err)
		}
	})

	t.Run("returning nil leaves the store untouched", func(t *testing.T) {
		store := NewMemoryStore()
		if err := store.Mutate(ctx, "Counters", "c1", func(doc Document) (Document, error) {
			return nil, nil
		}); err != nil {
			t.Fatalf("mutate: %v", err)
		}
		if _, err := store.Get(ctx, "Counters", "c1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("concurrent read-modify-writes never lose updates", func(t *testing.T) {
		store := NewMemoryStore()
		const writers = 64

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Mutate(ctx, "Counters", "c1", func(doc Document) (Document, error) {
					count := 0
					if doc != nil {
						if attr, ok := doc["count"].(*types.AttributeValueMemberN); ok {
							count, _ = strconv.Atoi(attr.Value)
						}
					}
					return Document{"count": &types.AttributeValueMemberN{Value: strconv.Itoa(count + 1)}}, nil
				})
				if err != nil {
					t.Errorf("mutate: %v", err)
				}
			}()
		}
		wg.Wait()

		doc, err := store.Get(ctx, "Counters", "c1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		attr := doc["count"].(*types.AttributeValueMemberN)
		if attr.Value != strconv.Itoa(writers) {
			t.Fatalf("lost updates: got %s, want %d", attr.Value, writers)
		}
	})
}
