package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

// PutChatContext stores a hand-off for the messaging view and returns its
// key. Unclaimed contexts expire after nats.ChatContextTTL.
func (s *Store) PutChatContext(ctx context.Context, c ChatContext) (string, error) {
	if c.DocumentID == "" {
		return "", fmt.Errorf("chat context document is required")
	}
	key := uuid.NewString()
	if err := putJSON(ctx, s.buckets.ChatContext, key, c); err != nil {
		return "", fmt.Errorf("saving chat context: %w", err)
	}
	return key, nil
}

// TakeChatContext returns the hand-off stored under key and removes it, so a
// context is consumed at most once. The delete is conditional on the revision
// read; a concurrent taker that loses gets ErrNotFound.
func (s *Store) TakeChatContext(ctx context.Context, key string) (*ChatContext, error) {
	kv := s.buckets.ChatContext
	entry, err := kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("chat context %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("chat context %s: %w", key, err)
	}

	err = kv.Delete(ctx, key, jetstream.LastRevision(entry.Revision()))
	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence {
		return nil, fmt.Errorf("chat context %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("clearing chat context: %w", err)
	}

	var c ChatContext
	if err := json.Unmarshal(entry.Value(), &c); err != nil {
		return nil, fmt.Errorf("decoding chat context: %w", err)
	}
	return &c, nil
}
