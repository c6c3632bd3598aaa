package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

var resolver = stats.DefaultResolver

func TestRecalculate_ClampsHPToMax(t *testing.T) {
	u := newWarrior(t)
	amulet := &items.Item{ID: 1, SubClass: items.SubClassAmulet, Stats: stats.List{{ID: stats.VIT, Value: 2}}}

	buffed := units.Heal(units.Recalculate(resolver, u, []*items.Item{amulet}))
	assert.Equal(t, 80, buffed.MaxHP())
	assert.Equal(t, 80, buffed.HP())

	plain := units.Recalculate(resolver, buffed, nil)
	assert.Equal(t, 60, plain.MaxHP())
	assert.Equal(t, 60, plain.HP(), "HP never exceeds MAX_HP")

	hurt := units.Damage(plain, 20)
	again := units.Recalculate(resolver, hurt, []*items.Item{amulet})
	assert.Equal(t, 40, again.HP(), "recalculation does not heal")
}

func TestDamage_FloorsAtZero(t *testing.T) {
	u := units.Damage(newWarrior(t), 1000)

	assert.Equal(t, 0, u.HP())
	assert.False(t, u.IsAlive())
}

func TestLevelUp(t *testing.T) {
	u := units.Damage(newWarrior(t), 30)

	leveled, err := units.LevelUp(resolver, u, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, leveled.Level)
	p, _ := leveled.Player()
	assert.Equal(t, units.PointsPerLevel, p.StatPoints)
	assert.Equal(t, leveled.MaxHP(), leveled.HP())
	assert.Equal(t, 1, u.Level, "input untouched")

	monster, err := units.NewMonster(units.DefaultTemplates, resolver, "m1", "rat", 1, items.RarityCommon, 1)
	require.NoError(t, err)
	_, err = units.LevelUp(resolver, monster, nil)
	assert.True(t, rpgerr.IsValidation(err))
}

func TestAllocateStatPoints(t *testing.T) {
	u, err := units.LevelUp(resolver, newWarrior(t), nil)
	require.NoError(t, err)

	got, err := units.AllocateStatPoints(resolver, u, nil, stats.VIT, 3)
	require.NoError(t, err)

	assert.Equal(t, 9, stats.Get(got.Base, stats.VIT))
	assert.Equal(t, 90, got.MaxHP())
	p, _ := got.Player()
	assert.Equal(t, 2, p.StatPoints)

	tests := []struct {
		name string
		id   stats.ID
		n    int
	}{
		{name: "too many", id: stats.STR, n: 6},
		{name: "zero", id: stats.STR, n: 0},
		{name: "derived stat", id: stats.ATK, n: 1},
		{name: "unknown stat", id: 999, n: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := units.AllocateStatPoints(resolver, u, nil, tt.id, tt.n)
			assert.True(t, rpgerr.IsValidation(err), "got %v", err)
		})
	}
}

func TestGrantExperience(t *testing.T) {
	assert.Equal(t, 0, units.ExperienceFor(1))
	assert.Equal(t, 100, units.ExperienceFor(2))
	assert.Equal(t, 300, units.ExperienceFor(3))

	u := newWarrior(t)

	u, gained, err := units.GrantExperience(resolver, u, nil, 99)
	require.NoError(t, err)
	assert.Equal(t, 0, gained)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, 99, stats.Get(u.Stats, stats.Experience))

	u, gained, err = units.GrantExperience(resolver, u, nil, 250)
	require.NoError(t, err)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, u.Level)
	p, _ := u.Player()
	assert.Equal(t, 2*units.PointsPerLevel, p.StatPoints)

	_, _, err = units.GrantExperience(resolver, u, nil, -1)
	assert.True(t, rpgerr.IsValidation(err))
}
