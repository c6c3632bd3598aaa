package rngstates

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

type stateKey struct {
	guild string
	name  dice.ContextName
}

// InMemoryRepository is an in-memory implementation of the rng state repository
type InMemoryRepository struct {
	mu     sync.Mutex
	states map[stateKey]dice.State
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		states: make(map[stateKey]dice.State),
	}
}

// Get retrieves the state of a guild's context
func (r *InMemoryRepository) Get(ctx context.Context, guild string, name dice.ContextName) (*dice.State, error) {
	if err := validateKey(guild, name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.states[stateKey{guild, name}]
	if !ok {
		return nil, notFound(guild, name)
	}
	return &state, nil
}

// Save writes state when the stored counter matches expectedCounter
func (r *InMemoryRepository) Save(ctx context.Context, state *dice.State, expectedCounter uint64) error {
	if err := validate(state); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := stateKey{state.Guild, state.Name}
	if current := r.states[key].Counter; current != expectedCounter {
		return conflict(state, current, expectedCounter)
	}
	r.states[key] = *state
	return nil
}

func validateKey(guild string, name dice.ContextName) error {
	if guild == "" {
		return rpgerr.InvalidArgument("guild ID is required")
	}
	return name.Validate()
}

func validate(state *dice.State) error {
	if state == nil {
		return rpgerr.InvalidArgument("rng state cannot be nil")
	}
	if err := validateKey(state.Guild, state.Name); err != nil {
		return err
	}
	if state.Secret == "" {
		return rpgerr.InvalidArgument("rng state secret is required").
			WithMeta("guild", state.Guild)
	}
	return nil
}

func notFound(guild string, name dice.ContextName) error {
	return rpgerr.NotFoundf("no %s rng context for guild '%s'", name, guild).
		WithMeta("guild", guild).
		WithMeta("context", string(name))
}

func conflict(state *dice.State, current, expected uint64) error {
	return rpgerr.Abortedf("%s rng context for guild '%s' moved to counter %d, expected %d", state.Name, state.Guild, current, expected).
		WithMeta("guild", state.Guild).
		WithMeta("context", string(state.Name))
}
