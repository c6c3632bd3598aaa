package loot_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	itemrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/rngstates"
	mockrngstates "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/rngstates/mock"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/loot"
	mockuuid "github.com/KirkDiggler/dungeon-crawler-bot/internal/uuid/mock"
)

const secret = "4f1c2a7be0d94c1f8a6b3e2d5c7f9a01"

func newService(t *testing.T) (loot.Service, itemrepo.Repository, rngstates.Repository) {
	ctrl := gomock.NewController(t)
	uuidGen := mockuuid.NewMockGenerator(ctrl)
	uuidGen.EXPECT().NewSecret().Return(secret).AnyTimes()

	itemRepo := itemrepo.NewInMemoryRepository()
	rngRepo := rngstates.NewInMemoryRepository()
	svc := loot.NewService(&loot.ServiceConfig{
		ItemRepository: itemRepo,
		RNGRepository:  rngRepo,
		UUIDGenerator:  uuidGen,
	})
	return svc, itemRepo, rngRepo
}

func TestGenerate_PersistsItemAndCounter(t *testing.T) {
	ctx := context.Background()
	svc, itemRepo, rngRepo := newService(t)
	req := items.Request{Code: "long_sword", Tier: 2, Rarity: items.RarityRare}

	item, err := svc.Generate(ctx, &loot.GenerateInput{Guild: "guild_1", OwnerID: "unit_1", Request: req})
	require.NoError(t, err)

	assert.Equal(t, "unit_1", item.OwnerID)
	assert.NotZero(t, item.ID)

	stored, err := itemRepo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, stored)

	// the same draws replayed from the committed secret build the same item
	replay, err := dice.NewContext(dice.State{Name: dice.ContextItem, Secret: secret})
	require.NoError(t, err)
	want, err := items.NewGenerator(items.DefaultCatalog).Generate(replay, req)
	require.NoError(t, err)
	assert.Equal(t, want.Stats, item.Stats)
	assert.Equal(t, want.Affixes, item.Affixes)

	state, err := rngRepo.Get(ctx, "guild_1", dice.ContextItem)
	require.NoError(t, err)
	assert.Equal(t, replay.State().Counter, state.Counter)
	assert.Equal(t, secret, state.Secret)
}

func TestGenerate_FailureLeavesContextUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _, rngRepo := newService(t)

	_, err := svc.Generate(ctx, &loot.GenerateInput{
		Guild:   "guild_1",
		OwnerID: "unit_1",
		Request: items.Request{Code: "long_swrod", Tier: 1},
	})

	assert.True(t, rpgerr.IsLookup(err))
	assert.Equal(t, "long_sword", rpgerr.GetMeta(err)["suggestion"])

	_, err = rngRepo.Get(ctx, "guild_1", dice.ContextItem)
	assert.True(t, rpgerr.IsNotFound(err))
}

func TestGenerate_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Generate(context.Background(), nil)
	assert.True(t, rpgerr.IsInvalidArgument(err))

	_, err = svc.Generate(context.Background(), &loot.GenerateInput{Guild: "g", Request: items.Request{Code: "long_sword", Tier: 1}})
	assert.True(t, rpgerr.IsInvalidArgument(err))

	_, err = svc.Generate(context.Background(), &loot.GenerateInput{OwnerID: "u", Request: items.Request{Code: "long_sword", Tier: 1}})
	assert.True(t, rpgerr.IsInvalidArgument(err))
}

func TestGenerate_ConcurrentDrawsNeverShareCounters(t *testing.T) {
	ctx := context.Background()
	svc, itemRepo, rngRepo := newService(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Generate(ctx, &loot.GenerateInput{
				Guild:   "guild_1",
				OwnerID: "unit_1",
				Request: items.Request{Code: "long_sword", Tier: 1},
			})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	owned, err := itemRepo.ListByOwner(ctx, "unit_1")
	require.NoError(t, err)
	assert.Len(t, owned, n)

	// one affix pick plus one roll per tier 1 item
	state, err := rngRepo.Get(ctx, "guild_1", dice.ContextItem)
	require.NoError(t, err)
	assert.Equal(t, uint64(2*n), state.Counter)
}

func TestDraw_SaveConflictIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	rngRepo := mockrngstates.NewMockRepository(ctrl)
	svc := loot.NewService(&loot.ServiceConfig{
		ItemRepository: itemrepo.NewInMemoryRepository(),
		RNGRepository:  rngRepo,
	})
	ctx := context.Background()
	state := &dice.State{Guild: "guild_1", Name: dice.ContextMonster, Secret: secret, Counter: 8}

	rngRepo.EXPECT().Get(ctx, "guild_1", dice.ContextMonster).Return(state, nil)
	rngRepo.EXPECT().Save(ctx, gomock.Any(), uint64(8)).
		DoAndReturn(func(_ context.Context, next *dice.State, _ uint64) error {
			assert.Equal(t, uint64(9), next.Counter)
			return rpgerr.Abortedf("counter moved")
		})

	err := svc.Draw(ctx, "guild_1", dice.ContextMonster, func(r dice.Roller) error {
		_, err := r.Intn(6)
		return err
	})

	assert.True(t, rpgerr.IsAborted(err))
}

func TestDraw_RejectsUnknownContext(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.Draw(context.Background(), "guild_1", "weather", func(dice.Roller) error { return nil })

	assert.True(t, rpgerr.IsValidation(err))
}

func TestCommitment(t *testing.T) {
	ctx := context.Background()
	svc, _, rngRepo := newService(t)
	require.NoError(t, rngRepo.Save(ctx, &dice.State{Guild: "g", Name: dice.ContextItem, Secret: secret, Counter: 3}, 0))

	c, err := svc.Commitment(ctx, "g", dice.ContextItem)

	require.NoError(t, err)
	assert.Equal(t, dice.Commitment(secret), c.Hash)
	assert.Equal(t, uint64(3), c.Counter)
	assert.NotContains(t, c.Hash, secret)
}
