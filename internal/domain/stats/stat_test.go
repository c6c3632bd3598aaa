package stats_test

import (
	"testing"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		list stats.List
		id   stats.ID
		want int
	}{
		{name: "nil list", list: nil, id: stats.STR, want: 0},
		{name: "missing id", list: stats.List{{ID: stats.DEX, Value: 4}}, id: stats.STR, want: 0},
		{name: "single entry", list: stats.List{{ID: stats.STR, Value: 7}}, id: stats.STR, want: 7},
		{
			name: "duplicates are summed",
			list: stats.List{{ID: stats.STR, Value: 7}, {ID: stats.DEX, Value: 1}, {ID: stats.STR, Value: 3}},
			id:   stats.STR,
			want: 10,
		},
		{name: "unknown stat id is not an error", list: stats.List{{ID: 999, Value: 2}}, id: 999, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.Get(tt.list, tt.id))
		})
	}
}

func TestSet_ReflectsLastWrite(t *testing.T) {
	list := stats.List{{ID: stats.STR, Value: 5}, {ID: stats.STR, Value: 2}, {ID: stats.VIT, Value: 1}}

	updated, ok := stats.Set(list, stats.STR, 11)
	require.True(t, ok)
	assert.Equal(t, 11, stats.Get(updated, stats.STR))

	updated, ok = stats.Set(updated, stats.STR, 3)
	require.True(t, ok)
	assert.Equal(t, 3, stats.Get(updated, stats.STR))

	// input untouched
	assert.Equal(t, 7, stats.Get(list, stats.STR))
}

func TestSet_MissingIDIsIgnored(t *testing.T) {
	list := stats.List{{ID: stats.STR, Value: 5}}

	updated, ok := stats.Set(list, stats.DEX, 9)

	assert.False(t, ok)
	assert.Equal(t, list, updated)
	assert.Equal(t, 0, stats.Get(updated, stats.DEX))
}

func TestAdd_InsertsWhenMissing(t *testing.T) {
	list := stats.Add(nil, stats.Bounty, 4)
	list = stats.Add(list, stats.Bounty, 6)

	assert.Equal(t, 10, stats.Get(list, stats.Bounty))
	assert.Len(t, list, 1)
}

func TestReduce_IsIdempotent(t *testing.T) {
	list := stats.List{
		{ID: stats.VIT, Value: 1},
		{ID: stats.STR, Value: 2},
		{ID: stats.VIT, Value: 3},
		{ID: stats.ATK, Value: -1},
		{ID: stats.STR, Value: 2},
	}

	once := stats.Reduce(list)
	twice := stats.Reduce(once)

	assert.ElementsMatch(t, once, twice)
	assert.ElementsMatch(t, stats.List{
		{ID: stats.STR, Value: 4},
		{ID: stats.VIT, Value: 4},
		{ID: stats.ATK, Value: -1},
	}, once)
	assert.Empty(t, stats.Reduce(nil))
}

func TestApplyOverrides(t *testing.T) {
	template := stats.List{{ID: stats.STR, Value: 0}, {ID: stats.DEX, Value: 0}}
	overrides := stats.List{{ID: stats.STR, Value: 8}, {ID: stats.Bounty, Value: 25}}

	got := stats.ApplyOverrides(template, overrides)

	assert.Equal(t, 8, stats.Get(got, stats.STR))
	assert.Equal(t, 0, stats.Get(got, stats.DEX))
	assert.Equal(t, 25, stats.Get(got, stats.Bounty), "unmatched overrides are inserted")
	assert.Equal(t, 0, stats.Get(template, stats.STR), "template untouched")
}

func TestScale(t *testing.T) {
	list := stats.List{{ID: stats.STR, Value: 3}, {ID: stats.HP, Value: 10}}

	got := stats.Scale(list, 4, stats.STR)

	assert.Equal(t, 12, stats.Get(got, stats.STR))
	assert.Equal(t, 10, stats.Get(got, stats.HP))
}

func TestCatalog_Template(t *testing.T) {
	player := stats.Default.Template(stats.CategoryPlayer)
	monster := stats.Default.Template(stats.CategoryMonster)

	has := func(list stats.List, id stats.ID) bool {
		for _, s := range list {
			if s.ID == id {
				return true
			}
		}
		return false
	}

	assert.True(t, has(player, stats.Experience))
	assert.False(t, has(player, stats.Bounty))
	assert.True(t, has(monster, stats.Bounty))
	assert.False(t, has(monster, stats.Experience))
	for _, id := range []stats.ID{stats.STR, stats.HP, stats.ATK, stats.DEF} {
		assert.True(t, has(player, id))
		assert.True(t, has(monster, id))
	}
	for _, s := range player {
		assert.Zero(t, s.Value, "template values are not clamped up to their minimum")
	}
}

func TestCatalog_LookupUnknown(t *testing.T) {
	_, err := stats.Default.Lookup(12345)
	assert.True(t, rpgerr.IsValidation(err))

	assert.Equal(t, 77, stats.Default.Clamp(12345, 77), "unknown ids pass through")
}

func TestNewCatalog_RejectsBadDefinitions(t *testing.T) {
	_, err := stats.NewCatalog(
		stats.Definition{ID: 1, Short: "A", Max: 10},
		stats.Definition{ID: 1, Short: "B", Max: 10},
	)
	assert.True(t, rpgerr.IsValidation(err))

	_, err = stats.NewCatalog(stats.Definition{ID: 1, Short: "A", Min: 5, Max: 1})
	assert.True(t, rpgerr.IsValidation(err))
}

func TestFormat(t *testing.T) {
	got := stats.Format(stats.Default, stats.List{{ID: stats.ATK, Value: 3}, {ID: stats.STR, Value: 2}, {ID: stats.STR, Value: 1}})
	assert.Equal(t, "STR +3, ATK +3", got)
}

func TestCatalog_LookupShort(t *testing.T) {
	d, err := stats.Default.LookupShort("atk%")
	require.NoError(t, err)
	assert.Equal(t, stats.ATKPercent, d.ID)

	_, err = stats.Default.LookupShort("LUCK")
	assert.True(t, rpgerr.IsValidation(err))
}
