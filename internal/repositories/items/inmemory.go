package items

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the item repository
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  map[storage.ItemID]*items.Item
	nextID storage.ItemID
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		items: make(map[storage.ItemID]*items.Item),
	}
}

// Get retrieves an item by ID
func (r *InMemoryRepository) Get(ctx context.Context, id storage.ItemID) (*items.Item, error) {
	if id == storage.Empty {
		return nil, rpgerr.InvalidArgument("item ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	return it.Clone(), nil
}

// GetMany retrieves items in the order of ids
func (r *InMemoryRepository) GetMany(ctx context.Context, ids []storage.ItemID) ([]*items.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*items.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := r.items[id]
		if !ok {
			return nil, notFound(id)
		}
		result = append(result, it.Clone())
	}
	return result, nil
}

// ListByOwner retrieves every item owned by a unit
func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*items.Item, error) {
	if ownerID == "" {
		return nil, rpgerr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*items.Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			result = append(result, it.Clone())
		}
	}
	sortByID(result)
	return result, nil
}

// Save creates or replaces an item
func (r *InMemoryRepository) Save(ctx context.Context, item *items.Item) error {
	return r.SaveAll(ctx, []*items.Item{item})
}

// SaveAll creates or replaces items; nothing is written if any item is invalid
func (r *InMemoryRepository) SaveAll(ctx context.Context, list []*items.Item) error {
	for _, it := range list {
		if err := validate(it); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range list {
		r.items[it.ID] = it.Clone()
		if it.ID > r.nextID {
			r.nextID = it.ID
		}
	}
	return nil
}

// Delete removes an item
func (r *InMemoryRepository) Delete(ctx context.Context, id storage.ItemID) error {
	if id == storage.Empty {
		return rpgerr.InvalidArgument("item ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

// NextID reserves a fresh item ID
func (r *InMemoryRepository) NextID(ctx context.Context) (storage.ItemID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	return r.nextID, nil
}

func validate(it *items.Item) error {
	if it == nil {
		return rpgerr.InvalidArgument("item cannot be nil")
	}
	if it.ID == storage.Empty {
		return rpgerr.InvalidArgument("item ID is required").
			WithMeta("code", it.Code)
	}
	if it.Equip == nil {
		return rpgerr.InvalidArgument("item equip descriptor is required").
			WithMeta("item_id", uint64(it.ID))
	}
	return nil
}

func notFound(id storage.ItemID) error {
	return rpgerr.NotFoundf("item with ID '%d' not found", id).
		WithMeta("item_id", uint64(id))
}

func sortByID(list []*items.Item) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
}
