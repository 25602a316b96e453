package pantry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Manager applies pantry edits. Every mutation loads the full list, changes
// it and writes the full list back.
type Manager struct {
	store *Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewManager(store *Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

func (m *Manager) List(ctx context.Context) []Item {
	return m.store.Load(ctx)
}

// Names returns the case-folded names of all pantry items.
func (m *Manager) Names(ctx context.Context) []string {
	items := m.store.Load(ctx)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, strings.ToLower(it.Name))
	}
	return names
}

// Add appends a new item with default quantity and unit. Adding an id that is
// already present returns ErrAlreadyInPantry and leaves the pantry untouched.
func (m *Manager) Add(ctx context.Context, id int, name, image string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.load(ctx)
	if err != nil {
		return Item{}, err
	}
	if _, ok := find(items, id); ok {
		slog.Info("PANTRY: Rejected duplicate", "id", id, "name", name)
		return Item{}, ErrAlreadyInPantry
	}

	it := newItem(id, name, image, m.now())
	if err := m.store.Save(ctx, append(items, it)); err != nil {
		return Item{}, err
	}
	slog.Info("PANTRY: Added", "id", id, "name", name)
	return it, nil
}

// Update changes the quantity and unit of the item with id in place.
func (m *Manager) Update(ctx context.Context, id int, quantity string, unit Unit) (Item, error) {
	if !unit.Valid() {
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.load(ctx)
	if err != nil {
		return Item{}, err
	}
	i, ok := find(items, id)
	if !ok {
		return Item{}, fmt.Errorf("%w: %d", ErrNotInPantry, id)
	}
	items[i].Quantity = strings.TrimSpace(quantity)
	items[i].Unit = unit

	if err := m.store.Save(ctx, items); err != nil {
		return Item{}, err
	}
	slog.Info("PANTRY: Updated", "id", id, "quantity", items[i].Quantity, "unit", unit)
	return items[i], nil
}

// Remove deletes the item with id. Removing an unknown id is a no-op that
// reports false and writes nothing.
func (m *Manager) Remove(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.load(ctx)
	if err != nil {
		return false, err
	}
	i, ok := find(items, id)
	if !ok {
		return false, nil
	}
	items = append(items[:i], items[i+1:]...)

	if err := m.store.Save(ctx, items); err != nil {
		return false, err
	}
	slog.Info("PANTRY: Removed", "id", id)
	return true, nil
}

// Clear empties the pantry.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Clear(ctx)
}

func find(items []Item, id int) (int, bool) {
	for i, it := range items {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}
