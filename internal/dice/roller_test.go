package dice_test

import (
	"sync"
	"testing"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	mockdice "github.com/KirkDiggler/dungeon-crawler-bot/internal/dice/mock"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, counter uint64) *dice.Context {
	t.Helper()
	ctx, err := dice.NewContext(dice.State{
		Guild:   "guild-1",
		Name:    dice.ContextItem,
		Secret:  "correct horse battery staple",
		Counter: counter,
	})
	require.NoError(t, err)
	return ctx
}

func TestContext_DeterministicForSameSecretAndCounter(t *testing.T) {
	a := newContext(t, 42)
	b := newContext(t, 42)

	for i := 0; i < 50; i++ {
		va, err := a.Intn(1000)
		require.NoError(t, err)
		vb, err := b.Intn(1000)
		require.NoError(t, err)
		assert.Equal(t, va, vb, "draw %d diverged", i)
	}
}

func TestContext_CounterAdvancesOncePerDraw(t *testing.T) {
	ctx := newContext(t, 7)

	_, err := ctx.Intn(6)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), ctx.State().Counter)

	_, err = ctx.Range(10, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), ctx.State().Counter)

	_, err = ctx.Roll(3, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), ctx.State().Counter, "one counter per die")
}

func TestContext_InvalidBoundDoesNotAdvance(t *testing.T) {
	ctx := newContext(t, 0)

	_, err := ctx.Intn(0)
	assert.True(t, rpgerr.IsValidation(err))
	assert.Equal(t, uint64(0), ctx.State().Counter)
}

func TestContext_ReplayMatchesDraw(t *testing.T) {
	ctx := newContext(t, 100)

	v, err := ctx.Intn(20)
	require.NoError(t, err)

	replayed, err := dice.Replay("correct horse battery staple", 0, 100, 20)
	require.NoError(t, err)
	assert.Equal(t, v, replayed)
}

func TestContext_OffsetChangesStream(t *testing.T) {
	base := newContext(t, 0)
	shifted, err := dice.NewContext(dice.State{
		Name:   dice.ContextItem,
		Secret: "correct horse battery staple",
		Offset: 1,
	})
	require.NoError(t, err)

	same := true
	for i := 0; i < 20; i++ {
		a, _ := base.Intn(1 << 30)
		b, _ := shifted.Intn(1 << 30)
		if a != b {
			same = false
		}
	}
	assert.False(t, same)
}

func TestContext_RangeStaysInBounds(t *testing.T) {
	ctx := newContext(t, 0)
	seen := map[int]bool{}

	for i := 0; i < 500; i++ {
		v, err := ctx.Range(3, 6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 6)
		seen[v] = true
	}
	assert.Len(t, seen, 4, "every value in a small range shows up")
}

func TestContext_ConcurrentDrawsConsumeDistinctCounters(t *testing.T) {
	ctx := newContext(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, _ = ctx.Intn(10)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(200), ctx.State().Counter)
}

func TestNewContext_Validation(t *testing.T) {
	tests := []struct {
		name  string
		state dice.State
	}{
		{name: "unknown context", state: dice.State{Name: "weather", Secret: "s"}},
		{name: "missing secret", state: dice.State{Name: dice.ContextCombat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dice.NewContext(tt.state)
			assert.True(t, rpgerr.IsValidation(err))
		})
	}
}

func TestCommitment_HidesSecret(t *testing.T) {
	ctx := newContext(t, 0)

	assert.Len(t, ctx.Commitment(), 64)
	assert.NotContains(t, ctx.Commitment(), "horse")
	assert.Equal(t, dice.Commitment("correct horse battery staple"), ctx.Commitment())
}

func TestManualMockRoller(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{14},
			count:      1,
			sides:      20,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{3, 4},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12,
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{1},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "scripted value out of bounds",
			setupRolls: []int{6},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
		})
	}
}
