package items

//go:generate mockgen -destination=mock/mock.go -package=mockitems -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
)

// Repository defines the interface for item persistence
type Repository interface {
	// Get retrieves an item by ID
	Get(ctx context.Context, id storage.ItemID) (*items.Item, error)

	// GetMany retrieves items in the order of ids. Any missing id fails the call.
	GetMany(ctx context.Context, ids []storage.ItemID) ([]*items.Item, error)

	// ListByOwner retrieves every item owned by a unit, ordered by ID
	ListByOwner(ctx context.Context, ownerID string) ([]*items.Item, error)

	// Save creates or replaces an item
	Save(ctx context.Context, item *items.Item) error

	// SaveAll creates or replaces items in a single write
	SaveAll(ctx context.Context, list []*items.Item) error

	// Delete removes an item
	Delete(ctx context.Context, id storage.ItemID) error

	// NextID reserves a fresh, non-zero item ID
	NextID(ctx context.Context) (storage.ItemID, error)
}
