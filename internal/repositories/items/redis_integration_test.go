//go:build integration

package items_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := items.NewRedis(testutils.StartRedisContainer(t))

	first, err := repo.NextID(ctx)
	require.NoError(t, err)
	second, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	bow := &domain.Item{
		ID:       first,
		OwnerID:  "rat_1",
		Code:     "short_bow",
		Name:     "Short Bow",
		Class:    domain.ClassWeapon,
		SubClass: domain.SubClassBow,
		Tier:     2,
		Rarity:   domain.RarityUncommon,
		Equip:    domain.DescriptorFor(domain.SubClassBow),
		Stats:    stats.List{{ID: stats.ATK, Value: 5}, {ID: stats.DEX, Value: 3}},
		Affixes:  []string{"of_the_fox"},
	}
	vest := &domain.Item{
		ID:       second,
		OwnerID:  "rat_1",
		Code:     "padded_vest",
		Name:     "Padded Vest",
		Class:    domain.ClassArmor,
		SubClass: domain.SubClassBody,
		Tier:     1,
		Equip:    domain.DescriptorFor(domain.SubClassBody),
		Stats:    stats.List{{ID: stats.DEF, Value: 2}},
	}
	require.NoError(t, repo.SaveAll(ctx, []*domain.Item{bow, vest}))

	got, err := repo.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, bow, got)
	assert.True(t, got.TwoHanded())

	owned, err := repo.ListByOwner(ctx, "rat_1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	// handing the bow over moves it between owner sets
	moved := bow.Clone()
	moved.OwnerID = "char_1"
	require.NoError(t, repo.Save(ctx, moved))

	owned, err = repo.ListByOwner(ctx, "rat_1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, second, owned[0].ID)

	owned, err = repo.ListByOwner(ctx, "char_1")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	require.NoError(t, repo.Delete(ctx, second))
	_, err = repo.GetMany(ctx, []storage.ItemID{first, second})
	assert.True(t, rpgerr.IsNotFound(err))
}
