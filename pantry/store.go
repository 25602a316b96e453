package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"whats4dinner/storage"
)

// Key is the single storage key holding the serialized pantry.
const Key = "pantryItems"

// Store persists the whole pantry list as one JSON document.
type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the saved pantry. A missing, unreadable or corrupt document
// yields an empty pantry.
func (s *Store) Load(ctx context.Context) []Item {
	items, err := s.load(ctx)
	if err != nil {
		slog.Warn("PANTRY: read failed, starting empty", "error", err)
		return []Item{}
	}
	return items
}

// load is Load for read-modify-write callers: backend failures are returned
// so a mutation never overwrites a pantry it could not read. Absent and
// corrupt documents still yield an empty pantry.
func (s *Store) load(ctx context.Context) ([]Item, error) {
	b, err := s.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pantry: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		slog.Warn("PANTRY: stored pantry is corrupt, starting empty", "error", err)
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Save overwrites the stored pantry with items.
func (s *Store) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode pantry: %w", err)
	}
	if err := s.kv.Set(ctx, Key, b); err != nil {
		return fmt.Errorf("write pantry: %w", err)
	}
	return nil
}

// Clear removes the stored pantry entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Clear(ctx, Key); err != nil {
		return fmt.Errorf("clear pantry: %w", err)
	}
	return nil
}
