package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrDraftNotFound is returned when a draft ID is unknown or expired.
var ErrDraftNotFound = errors.New("order draft not found")

// DraftStore keeps in-progress order drafts in Redis so the editor survives
// stateless HTTP requests. Writes are last-write-wins; the editor is driven
// by a single operator session per draft.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore constructs a DraftStore with the given idle TTL.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

// Create persists a fresh empty draft and returns it.
func (s *DraftStore) Create(ctx context.Context) (Draft, error) {
	draft := NewDraft(uuid.NewString())
	if err := s.Save(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// Get loads a draft by ID.
func (s *DraftStore) Get(ctx context.Context, id string) (Draft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Draft{}, ErrDraftNotFound
		}
		return Draft{}, fmt.Errorf("draft get: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("draft decode: %w", err)
	}
	return draft, nil
}

// Save writes the draft back and refreshes its TTL.
func (s *DraftStore) Save(ctx context.Context, draft Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("draft encode: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft save: %w", err)
	}
	return nil
}

// Delete removes a draft. Deleting an unknown ID is not an error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	return nil
}

func draftKey(id string) string {
	return "draft:" + id
}
