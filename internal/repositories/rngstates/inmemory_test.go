package rngstates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/rngstates"
)

func TestInMemory_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := rngstates.NewInMemoryRepository()

	_, err := repo.Get(ctx, "guild_1", dice.ContextItem)
	assert.True(t, rpgerr.IsNotFound(err))

	state := &dice.State{Guild: "guild_1", Name: dice.ContextItem, Secret: "s3cret", Counter: 3, Offset: 9}
	require.NoError(t, repo.Save(ctx, state, 0))

	got, err := repo.Get(ctx, "guild_1", dice.ContextItem)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	_, err = repo.Get(ctx, "guild_1", dice.ContextMonster)
	assert.True(t, rpgerr.IsNotFound(err), "contexts are independent")
}

func TestInMemory_SaveRejectsStaleCounter(t *testing.T) {
	ctx := context.Background()
	repo := rngstates.NewInMemoryRepository()
	state := dice.State{Guild: "g", Name: dice.ContextItem, Secret: "s", Counter: 4}
	require.NoError(t, repo.Save(ctx, &state, 0))

	// a second writer that also loaded counter 0
	stale := state
	stale.Counter = 2
	err := repo.Save(ctx, &stale, 0)
	assert.True(t, rpgerr.IsAborted(err))

	state.Counter = 7
	assert.NoError(t, repo.Save(ctx, &state, 4))

	got, err := repo.Get(ctx, "g", dice.ContextItem)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.Counter)
}

func TestInMemory_Validation(t *testing.T) {
	ctx := context.Background()
	repo := rngstates.NewInMemoryRepository()

	assert.True(t, rpgerr.IsInvalidArgument(repo.Save(ctx, nil, 0)))
	assert.True(t, rpgerr.IsInvalidArgument(repo.Save(ctx, &dice.State{Name: dice.ContextItem, Secret: "s"}, 0)))
	assert.True(t, rpgerr.IsInvalidArgument(repo.Save(ctx, &dice.State{Guild: "g", Name: dice.ContextItem}, 0)))
	assert.True(t, rpgerr.IsValidation(repo.Save(ctx, &dice.State{Guild: "g", Name: "weather", Secret: "s"}, 0)))

	_, err := repo.Get(ctx, "", dice.ContextItem)
	assert.True(t, rpgerr.IsInvalidArgument(err))
}
