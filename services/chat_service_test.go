package services

import (
	"context"
	"errors"
	"testing"

	"eventfriend_server/models"
)

func TestCreateConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("same pair and event yield the same id", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		first, err := cs.CreateConnection(ctx, "alice", "bob", "e1")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		second, err := cs.CreateConnection(ctx, "bob", "alice", "e1")
		if err != nil {
			t.Fatalf("re-create: %v", err)
		}
		if first.ConnectionID != second.ConnectionID {
			t.Fatalf("ids differ: %q vs %q", first.ConnectionID, second.ConnectionID)
		}

		docs, err := cs.Store.Query(ctx, Query{Collection: models.ConnectionsTable})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("got %d connection rows, want 1 (overwrite, not duplicate)", len(docs))
		}
	})

	t.Run("different events yield different ids", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		first, _ := cs.CreateConnection(ctx, "alice", "bob", "e1")
		second, _ := cs.CreateConnection(ctx, "alice", "bob", "e2")
		if first.ConnectionID == second.ConnectionID {
			t.Fatal("connection id must not be stable across events")
		}
	})

	t.Run("rejects self-connections", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		if _, err := cs.CreateConnection(ctx, "alice", "alice", "e1"); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})
}

func TestAcceptConnection(t *testing.T) {
	ctx := context.Background()
	cs := &ChatService{Store: NewMemoryStore()}

	connection, err := cs.CreateConnection(ctx, "alice", "bob", "e1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if connection.Status != models.ConnectionStatusPending {
		t.Fatalf("new connection status %q, want pending", connection.Status)
	}

	accepted, err := cs.AcceptConnection(ctx, connection.ConnectionID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != models.ConnectionStatusAccepted {
		t.Fatalf("got status %q, want accepted", accepted.Status)
	}

	if _, err := cs.AcceptConnection(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty content", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		if _, err := cs.SendMessage(ctx, "a", "b", ""); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
		if _, err := cs.SendMessage(ctx, "a", "b", "   "); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("whitespace content: got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("assigns identity and acceptance timestamp", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		message, err := cs.SendMessage(ctx, "a", "b", "hi")
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if message.MessageID == "" {
			t.Fatal("expected a server-generated message id")
		}
		if message.Timestamp.IsZero() {
			t.Fatal("expected an acceptance timestamp")
		}
	})

	t.Run("timestamps from one channel never go backwards", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		var last *models.Message
		for i := 0; i < 50; i++ {
			message, err := cs.SendMessage(ctx, "a", "b", "tick")
			if err != nil {
				t.Fatalf("send %d: %v", i, err)
			}
			if last != nil && message.Timestamp.Before(last.Timestamp) {
				t.Fatalf("timestamp went backwards: %v before %v", message.Timestamp, last.Timestamp)
			}
			last = message
		}
	})
}

func TestGetMessagesBetween(t *testing.T) {
	ctx := context.Background()

	t.Run("returns both directions oldest first", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		if _, err := cs.SendMessage(ctx, "A", "B", "hi"); err != nil {
			t.Fatalf("send: %v", err)
		}
		if _, err := cs.SendMessage(ctx, "B", "A", "yo"); err != nil {
			t.Fatalf("send: %v", err)
		}

		messages, err := cs.GetMessagesBetween(ctx, "A", "B")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("got %d messages, want 2", len(messages))
		}
		if messages[0].Content != "hi" || messages[1].Content != "yo" {
			t.Fatalf("got order %q, %q; want hi, yo", messages[0].Content, messages[1].Content)
		}
	})

	t.Run("filters out third parties", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		// A↔C traffic matches the store's superset predicate for {A,B}
		// because the sender is in the set; it must never surface.
		if _, err := cs.SendMessage(ctx, "A", "C", "secret"); err != nil {
			t.Fatalf("send: %v", err)
		}
		if _, err := cs.SendMessage(ctx, "A", "B", "hello"); err != nil {
			t.Fatalf("send: %v", err)
		}

		messages, err := cs.GetMessagesBetween(ctx, "A", "B")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(messages) != 1 || messages[0].Content != "hello" {
			t.Fatalf("third-party message leaked: %+v", messages)
		}
	})

	t.Run("no thread is an empty result", func(t *testing.T) {
		cs := &ChatService{Store: NewMemoryStore()}
		messages, err := cs.GetMessagesBetween(ctx, "A", "B")
		if err != nil {
			t.Fatalf("got %v, want nil", err)
		}
		if len(messages) != 0 {
			t.Fatalf("got %d messages, want 0", len(messages))
		}
	})
}

func TestConnectionThread(t *testing.T) {
	ctx := context.Background()
	cs := &ChatService{Store: NewMemoryStore()}

	connection, err := cs.CreateConnection(ctx, "alice", "bob", "e1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("derives the receiver from the connection", func(t *testing.T) {
		message, err := cs.SendMessageOnConnection(ctx, connection.ConnectionID, "alice", "see you there?")
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if message.ReceiverID != "bob" {
			t.Fatalf("got receiver %q, want bob", message.ReceiverID)
		}
		if message.ConnectionID != connection.ConnectionID {
			t.Fatalf("message not scoped to the connection: %+v", message)
		}
	})

	t.Run("rejects senders outside the pair", func(t *testing.T) {
		if _, err := cs.SendMessageOnConnection(ctx, connection.ConnectionID, "mallory", "hi"); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("unknown connection is not found", func(t *testing.T) {
		if _, err := cs.SendMessageOnConnection(ctx, "missing", "alice", "hi"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("thread view is chronological", func(t *testing.T) {
		if _, err := cs.SendMessageOnConnection(ctx, connection.ConnectionID, "bob", "yes!"); err != nil {
			t.Fatalf("send: %v", err)
		}
		messages, err := cs.GetMessagesByConnection(ctx, connection.ConnectionID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("got %d messages, want 2", len(messages))
		}
		if messages[0].Content != "see you there?" || messages[1].Content != "yes!" {
			t.Fatalf("wrong order: %q, %q", messages[0].Content, messages[1].Content)
		}
	})
}

func TestMessageRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := &ChatService{Store: NewMemoryStore()}

	sent, err := cs.SendMessage(ctx, "a", "b", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	messages, err := cs.GetMessagesBetween(ctx, "a", "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got := messages[0]
	if got.MessageID != sent.MessageID || got.SenderID != sent.SenderID ||
		got.ReceiverID != sent.ReceiverID || got.Content != sent.Content {
		t.Fatalf("round trip lost fields: sent %+v, got %+v", sent, got)
	}
	if !got.Timestamp.Equal(sent.Timestamp) {
		t.Fatalf("timestamp changed: sent %v, got %v", sent.Timestamp, got.Timestamp)
	}
}
