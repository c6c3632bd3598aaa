package units

//go:generate mockgen -destination=mock/mock.go -package=mockunits -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
)

// Repository defines the interface for unit persistence
type Repository interface {
	// Get retrieves a unit by ID
	Get(ctx context.Context, id string) (*units.Unit, error)

	// Save creates or replaces a unit
	Save(ctx context.Context, unit *units.Unit) error

	// Delete removes a unit
	Delete(ctx context.Context, id string) error

	// ListByAccount retrieves the player units owned by an account
	ListByAccount(ctx context.Context, accountID string) ([]*units.Unit, error)
}

// TimeProvider stamps created and updated times
type TimeProvider interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}
