package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/character"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/encounter"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/monster"
)

func TestNewProvider_HuntEndToEnd(t *testing.T) {
	ctx := context.Background()
	p := services.NewProvider(&services.ProviderConfig{})

	sheet, err := p.CharacterService.Create(ctx, &character.CreateInput{AccountID: "acct_1", Name: "Brak", Class: "warrior"})
	require.NoError(t, err)

	hunt, err := p.EncounterService.Hunt(ctx, &encounter.HuntInput{
		PlayerID: sheet.Unit.ID,
		Spawn: monster.GenerateInput{
			Guild:   "guild_1",
			Species: "rat",
			Tier:    1,
			Rarity:  items.RarityCommon,
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, hunt.Outcome.Rounds)
	assert.Equal(t, hunt.Monster.Unit.ID, hunt.Outcome.Defender.ID)

	commitment, err := p.LootService.Commitment(ctx, "guild_1", "monster")
	require.NoError(t, err)
	assert.NotEmpty(t, commitment.Hash)
	assert.Positive(t, commitment.Counter)
}
