package units

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the unit repository
// Useful for testing and development
type InMemoryRepository struct {
	mu    sync.RWMutex
	units map[string]*units.Unit
	clock TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		units: make(map[string]*units.Unit),
		clock: utcClock{},
	}
}

// Get retrieves a unit by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*units.Unit, error) {
	if id == "" {
		return nil, rpgerr.InvalidArgument("unit ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.units[id]
	if !exists {
		return nil, rpgerr.NotFoundf("unit with ID '%s' not found", id).
			WithMeta("unit_id", id)
	}

	return u.Clone(), nil
}

// Save creates or replaces a unit
func (r *InMemoryRepository) Save(ctx context.Context, unit *units.Unit) error {
	if err := validate(unit); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	stored := unit.Clone()
	if existing, ok := r.units[unit.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.units[unit.ID] = stored
	unit.CreatedAt, unit.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	return nil
}

// Delete removes a unit
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return rpgerr.InvalidArgument("unit ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.units[id]; !exists {
		return rpgerr.NotFoundf("unit with ID '%s' not found", id).
			WithMeta("unit_id", id)
	}

	delete(r.units, id)
	return nil
}

// ListByAccount retrieves the player units owned by an account, oldest first
func (r *InMemoryRepository) ListByAccount(ctx context.Context, accountID string) ([]*units.Unit, error) {
	if accountID == "" {
		return nil, rpgerr.InvalidArgument("account ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*units.Unit
	for _, u := range r.units {
		if p, ok := u.Player(); ok && p.AccountID == accountID {
			result = append(result, u.Clone())
		}
	}
	sortByCreated(result)

	return result, nil
}

func validate(unit *units.Unit) error {
	if unit == nil {
		return rpgerr.InvalidArgument("unit cannot be nil")
	}
	if unit.ID == "" {
		return rpgerr.InvalidArgument("unit ID is required")
	}
	if unit.Descriptor == nil {
		return rpgerr.InvalidArgument("unit descriptor is required").
			WithMeta("unit_id", unit.ID)
	}
	return nil
}

func sortByCreated(list []*units.Unit) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
