package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whats4dinner/storage"
)

func TestStore_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{
			name:  "empty pantry",
			items: []Item{},
		},
		{
			name: "items with and without optional fields",
			items: []Item{
				{ID: 11215, Name: "garlic", Image: "garlic.png", Quantity: "3", Unit: UnitPiece, DateAdded: "2024-05-01T10:00:00.000Z"},
				{ID: 1077, Name: "milk", Image: "milk.png", Quantity: "1.5", Unit: UnitLiter, DateAdded: "2024-05-02T08:30:00.000Z"},
				{ID: 20081, Name: "flour", Image: "flour.png", DateAdded: "2024-05-03T12:00:00.000Z"},
			},
		},
		{
			name: "order is preserved",
			items: []Item{
				{ID: 3, Name: "c", DateAdded: "2024-01-01T00:00:00.000Z"},
				{ID: 1, Name: "a", DateAdded: "2024-01-01T00:00:00.000Z"},
				{ID: 2, Name: "b", DateAdded: "2024-01-01T00:00:00.000Z"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(storage.NewMemoryStore())

			require.NoError(t, store.Save(ctx, tt.items))
			assert.Equal(t, tt.items, store.Load(ctx))
		})
	}
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved yet", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		assert.Equal(t, []Item{}, store.Load(ctx))
	})

	t.Run("corrupted document is treated as absent", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStoreWith(Key, []byte("invalid json")))
		assert.Equal(t, []Item{}, store.Load(ctx))
	})

	t.Run("json null", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStoreWith(Key, []byte("null")))
		assert.Equal(t, []Item{}, store.Load(ctx))
	})

	t.Run("backend failure is treated as absent", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStoreWithError(errors.New("unreachable")))
		assert.Equal(t, []Item{}, store.Load(ctx))
	})

	t.Run("reads the browser layout", func(t *testing.T) {
		doc := `[{"id":11215,"name":"garlic","image":"garlic.png","quantity":"1","unit":"piece","dateAdded":"2024-05-01T10:00:00.000Z"}]`
		store := NewStore(storage.NewMemoryStoreWith(Key, []byte(doc)))
		assert.Equal(t, []Item{{
			ID: 11215, Name: "garlic", Image: "garlic.png", Quantity: "1", Unit: UnitPiece, DateAdded: "2024-05-01T10:00:00.000Z",
		}}, store.Load(ctx))
	})
}

func TestStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a JSON array under the pantry key", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		store := NewStore(kv)
		require.NoError(t, store.Save(ctx, nil))

		raw, err := kv.Get(ctx, Key)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("overwrites instead of merging", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		store := NewStore(kv)
		require.NoError(t, store.Save(ctx, []Item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}))
		require.NoError(t, store.Save(ctx, []Item{{ID: 3, Name: "c"}}))

		raw, err := kv.Get(ctx, Key)
		require.NoError(t, err)
		var got []Item
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("backend failure", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStoreWithError(errors.New("read-only")))
		err := store.Save(ctx, []Item{{ID: 1}})
		assert.ErrorContains(t, err, "write pantry")
	})
}

func TestStore_load(t *testing.T) {
	ctx := context.Background()

	t.Run("backend failure is returned", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStoreWithError(errors.New("unreachable")))
		_, err := store.load(ctx)
		assert.ErrorContains(t, err, "read pantry")
	})

	t.Run("absent and corrupt are empty", func(t *testing.T) {
		for _, kv := range []*storage.MemoryStore{
			storage.NewMemoryStore(),
			storage.NewMemoryStoreWith(Key, []byte("invalid json")),
		} {
			items, err := NewStore(kv).load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Item{}, items)
		}
	})
}
