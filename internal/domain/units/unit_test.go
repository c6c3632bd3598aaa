package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/KirkDiggler/dungeon-crawler-bot/internal/dice/mock"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

func newWarrior(t *testing.T) *units.Unit {
	t.Helper()
	u, err := units.NewPlayer(units.DefaultTemplates, stats.DefaultResolver, "p1", "Thorin", "warrior", "acct-1")
	require.NoError(t, err)
	return u
}

func TestNewPlayer(t *testing.T) {
	u := newWarrior(t)

	assert.Equal(t, units.KindPlayer, u.Kind())
	assert.Equal(t, 1, u.Level)
	assert.True(t, u.Storage.IsNodeValid(storage.NodeInventory))

	player, ok := u.Player()
	require.True(t, ok)
	assert.Equal(t, "warrior", player.Class)
	assert.Equal(t, "acct-1", player.AccountID)
	assert.Equal(t, 0, player.StatPoints)

	assert.Equal(t, 8, stats.Get(u.Stats, stats.STR))
	assert.Equal(t, 16, stats.Get(u.Stats, stats.ATK))
	assert.Equal(t, 4, stats.Get(u.Stats, stats.DEF))
	assert.Equal(t, 60, u.MaxHP(), "10 per VIT and nothing else")
	assert.Equal(t, u.MaxHP(), u.HP())
	assert.Equal(t, 0, stats.Get(u.Base, stats.HP), "current HP is derived state only")
	assert.Equal(t, 0, stats.Get(u.Base, stats.MaxHP), "MAX_HP is derived state only")
}

func TestNewPlayer_UnknownClass(t *testing.T) {
	_, err := units.NewPlayer(units.DefaultTemplates, stats.DefaultResolver, "p1", "x", "wariror", "acct")

	require.True(t, rpgerr.IsLookup(err))
	assert.Equal(t, "warrior", rpgerr.GetMeta(err)["suggestion"])
}

func TestNewMonster_ScalesBaseStats(t *testing.T) {
	tests := []struct {
		name   string
		tier   items.Tier
		rarity items.Rarity
		scale  int
	}{
		{name: "tier 1 common", tier: 1, rarity: items.RarityCommon, scale: 1},
		{name: "tier 2 rare", tier: 2, rarity: items.RarityRare, scale: 4},
		{name: "tier 5 superboss", tier: 5, rarity: items.RaritySuperBoss, scale: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := units.NewMonster(units.DefaultTemplates, stats.DefaultResolver, "m1", "rat", tt.tier, tt.rarity, 3)
			require.NoError(t, err)

			assert.Equal(t, units.KindMonster, u.Kind())
			assert.False(t, u.Storage.IsNodeValid(storage.NodeInventory))
			assert.Equal(t, 2*tt.scale, stats.Get(u.Base, stats.STR))
			assert.Equal(t, 3*tt.scale, stats.Get(u.Base, stats.DEX))
			assert.Equal(t, 2*tt.scale, stats.Get(u.Base, stats.VIT))
			assert.Equal(t, 5*tt.scale, stats.Get(u.Stats, stats.Bounty))
			assert.Equal(t, 20*tt.scale, u.MaxHP())
			assert.Equal(t, u.MaxHP(), u.HP())

			monster, ok := u.Monster()
			require.True(t, ok)
			assert.Equal(t, tt.tier, monster.Tier)
			assert.Equal(t, tt.rarity, monster.Rarity)
		})
	}
}

func TestNewMonster_Rejects(t *testing.T) {
	_, err := units.NewMonster(units.DefaultTemplates, stats.DefaultResolver, "m1", "unicorn", 1, items.RarityCommon, 1)
	assert.True(t, rpgerr.IsLookup(err))

	_, err = units.NewMonster(units.DefaultTemplates, stats.DefaultResolver, "m1", "rat", 6, items.RarityCommon, 1)
	assert.True(t, rpgerr.IsLookup(err))

	_, err = units.NewMonster(units.DefaultTemplates, stats.DefaultResolver, "", "rat", 1, items.RarityCommon, 1)
	assert.True(t, rpgerr.IsInvalidArgument(err))
}

func TestRollLevel(t *testing.T) {
	lo, hi := units.LevelBand(3)
	assert.Equal(t, 21, lo)
	assert.Equal(t, 30, hi)

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{0, 9})

	first, err := units.RollLevel(roller, 3)
	require.NoError(t, err)
	assert.Equal(t, 21, first)

	second, err := units.RollLevel(roller, 3)
	require.NoError(t, err)
	assert.Equal(t, 30, second)

	_, err = units.RollLevel(roller, 0)
	assert.True(t, rpgerr.IsLookup(err))
}

func TestClone_IsDeep(t *testing.T) {
	u := newWarrior(t)
	c := u.Clone()

	c.Storage.Set(storage.NodeInventory, 0, 9)
	c.Stats, _ = stats.Set(c.Stats, stats.HP, 1)
	p, _ := c.Player()
	p.StatPoints = 40

	assert.Equal(t, storage.Empty, u.Storage.Get(storage.NodeInventory, 0))
	assert.Equal(t, 60, u.HP())
	orig, _ := u.Player()
	assert.Equal(t, 0, orig.StatPoints)
}

func TestTemplates_SpeciesData(t *testing.T) {
	assert.Equal(t, []string{"dragon", "goblin", "orc", "rat", "skeleton", "wraith"}, units.DefaultTemplates.SpeciesCodes())
	assert.Equal(t, []string{"mage", "ranger", "warrior"}, units.DefaultTemplates.ClassCodes())

	orc, err := units.DefaultTemplates.Species("orc")
	require.NoError(t, err)
	assert.True(t, orc.DualWield)
	assert.True(t, orc.CanUse(items.StyleMelee))
	assert.False(t, orc.CanUse(items.StyleSpell))

	lr, err := orc.LootCount(items.RaritySuperBoss)
	require.NoError(t, err)
	assert.Equal(t, units.LootRange{Min: 6, Max: 8}, lr)

	rat, err := units.DefaultTemplates.Species("rat")
	require.NoError(t, err)
	_, err = rat.LootCount(items.RarityBoss)
	assert.True(t, rpgerr.IsLookup(err))
}

func TestLoadTemplates_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "derived stat as base", data: "classes:\n  - {code: x, name: X, base: {ATK: 5}}"},
		{name: "unknown starter", data: "classes:\n  - {code: x, name: X, base: {STR: 1}, starter: [laser]}"},
		{name: "no styles", data: "species:\n  - {code: x, name: X, base: {STR: 1}}"},
		{name: "bad loot range", data: "species:\n  - {code: x, name: X, base: {STR: 1}, styles: [melee], loot: {common: [3, 1]}}"},
		{name: "unknown rarity", data: "species:\n  - {code: x, name: X, base: {STR: 1}, styles: [melee], loot: {mythic: [1, 2]}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := units.LoadTemplates([]byte(tt.data), stats.Default, items.DefaultCatalog)
			assert.Error(t, err)
		})
	}
}
