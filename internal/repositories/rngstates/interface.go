package rngstates

//go:generate mockgen -destination=mock/mock.go -package=mockrngstates -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
)

// Repository persists the RNG context triple of each guild
type Repository interface {
	// Get retrieves the state of a guild's context
	Get(ctx context.Context, guild string, name dice.ContextName) (*dice.State, error)

	// Save writes state if the stored counter still equals expectedCounter.
	// A missing state counts as counter 0. Any other counter fails with
	// CodeAborted.
	Save(ctx context.Context, state *dice.State, expectedCounter uint64) error
}
