package discord

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

func TestErrorEmbed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rule errors are shown",
			err:  rpgerr.Validation("inventory is full"),
			want: "inventory is full",
		},
		{
			name: "suggestion is appended",
			err:  rpgerr.Lookupf("unknown species %q", "ratt").WithMeta("suggestion", "rat"),
			want: "unknown species \"ratt\"\nDid you mean `rat`?",
		},
		{
			name: "internal errors are hidden",
			err:  rpgerr.Wrap(errors.New("dial tcp 10.0.0.1:6379"), "failed to save unit"),
			want: "Something went wrong, try again later.",
		},
		{
			name: "invariant violations are hidden",
			err:  rpgerr.Invariantf("negative damage"),
			want: "Something went wrong, try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorEmbed(tt.err).Description)
		})
	}
}

func TestItemLine(t *testing.T) {
	it := &items.Item{
		ID:     12,
		Name:   "Long Sword",
		Tier:   3,
		Rarity: items.RarityRare,
		Stats:  stats.List{{ID: stats.ATK, Value: 7}, {ID: stats.STR, Value: 2}, {ID: stats.ATK, Value: 3}},
	}

	assert.Equal(t, "`#12` Long Sword (T3 rare) STR +2, ATK +10", itemLine(it))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Primary Arm", title("primary arm"))
	assert.Equal(t, "Long Sword", title("long_sword"))
}
