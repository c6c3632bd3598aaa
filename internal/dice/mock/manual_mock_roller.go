package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined
// Intn results. Range and Roll are derived from Intn the same way the real
// context derives them, so scripts are written in Intn terms.
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll appends the next Intn result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple Intn results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// Used reports how many scripted values were consumed
func (m *ManualMockRoller) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollIndex
}

// Intn implements dice.Roller.Intn
func (m *ManualMockRoller) Intn(n int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	if roll < 0 || roll >= n {
		return 0, fmt.Errorf("invalid roll %d for bound %d", roll, n)
	}
	m.rollIndex++
	return roll, nil
}

// Range implements dice.Roller.Range
func (m *ManualMockRoller) Range(lo, hi int) (int, error) {
	return dice.RangeWith(m.Intn, lo, hi)
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	return dice.RollWith(m.Intn, count, sides, bonus)
}
