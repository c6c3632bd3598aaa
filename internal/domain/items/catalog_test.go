package items_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

func TestDefaultCatalog_Consistent(t *testing.T) {
	all := items.DefaultCatalog.Codes(nil)
	require.NotEmpty(t, all)

	for _, code := range all {
		typ, err := items.DefaultCatalog.Lookup(code)
		require.NoError(t, err)
		assert.Equal(t, typ.Class, typ.SubClass.Class(), code)
		assert.NotZero(t, items.RequiredFlags(typ.SubClass), code)
	}

	for tier := items.MinTier; tier <= items.MaxTier; tier++ {
		_, err := items.DefaultCatalog.ModifierCount(tier)
		assert.NoError(t, err, "tier %d", tier)
	}
}

func TestCatalog_BySubClass(t *testing.T) {
	got := items.DefaultCatalog.BySubClass(items.SubClassSword, items.SubClassShield)

	assert.Equal(t, []string{"long_sword", "short_sword", "wooden_shield"}, got, "starters excluded, sorted")
}

func TestCatalog_EligibleSkipsImplicitStats(t *testing.T) {
	typ, err := items.DefaultCatalog.Lookup("dagger")
	require.NoError(t, err)

	for _, a := range items.DefaultCatalog.Eligible(typ) {
		assert.NotEqual(t, stats.ATK, a.Stat)
		assert.NotEqual(t, stats.DEX, a.Stat)
		assert.True(t, a.AllowedOn(items.ClassWeapon))
	}
}

func TestLoadCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad yaml", data: "tiers: [1, 2"},
		{name: "unknown stat", data: "types:\n  - {code: a, name: A, class: weapon, subclass: sword, implicit: [{stat: LUCK, value: 1}]}"},
		{name: "class mismatch", data: "types:\n  - {code: a, name: A, class: armor, subclass: sword}"},
		{name: "duplicate code", data: "types:\n  - {code: a, name: A, class: weapon, subclass: sword}\n  - {code: a, name: B, class: weapon, subclass: sword}"},
		{name: "inverted affix", data: "affixes:\n  - {code: x, name: X, stat: STR, min: 5, max: 1, classes: [weapon]}"},
		{name: "bad tier", data: "tiers:\n  0: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := items.LoadCatalog([]byte(tt.data), stats.Default)
			assert.True(t, rpgerr.IsValidation(err), "got %v", err)
		})
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"goblin", "orc", "rat", "skeleton"}

	assert.Equal(t, "goblin", items.Suggest("gobiln", candidates))
	assert.Equal(t, "orc", items.Suggest("ORK", candidates))
	assert.Equal(t, "skeleton", items.Suggest("skeletn", candidates))
	assert.Equal(t, "", items.Suggest("dragonfly", candidates))
	assert.Equal(t, "", items.Suggest("", candidates))
}

func TestParseNames(t *testing.T) {
	c, err := items.ParseClass("Weapon")
	require.NoError(t, err)
	assert.Equal(t, items.ClassWeapon, c)

	s, err := items.ParseSubClass("spellbook")
	require.NoError(t, err)
	assert.Equal(t, items.SubClassSpellbook, s)
	assert.Equal(t, items.ClassArmor, s.Class())

	r, err := items.ParseRarity("superboss")
	require.NoError(t, err)
	assert.Equal(t, items.RaritySuperBoss, r)

	_, err = items.ParseRarity("legendary")
	assert.True(t, rpgerr.IsValidation(err))
}

func TestItem_StorageCompatibility(t *testing.T) {
	var _ storage.Equippable = &items.Item{}

	list := []*items.Item{
		{ID: 1, SubClass: items.SubClassGreataxe, Equip: items.WeaponDescriptor{TwoHanded: true}, Stats: stats.List{{ID: stats.ATK, Value: 10}}},
		{ID: 2, SubClass: items.SubClassRing, Equip: items.JewelDescriptor{}, Stats: stats.List{{ID: stats.ATK, Value: 2}, {ID: stats.STR, Value: 1}}},
	}

	eq := items.Equippables(list)
	assert.Len(t, eq, 2)
	assert.True(t, eq[1].TwoHanded())
	assert.Equal(t, storage.FlagRing, eq[2].SlotFlags())

	assert.Equal(t, stats.List{{ID: stats.STR, Value: 1}, {ID: stats.ATK, Value: 12}}, items.StatsOf(list))

	clone := list[1].Clone()
	clone.Stats[0].Value = 99
	assert.Equal(t, 2, list[1].Stats[0].Value)
}
