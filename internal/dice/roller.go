package dice

import (
	"fmt"
	"strings"

	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for drawing random numbers.
// Every generation path in the game goes through a Roller so that draws are
// reproducible and auditable.
type Roller interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) (int, error)

	// Range returns a uniform value in [lo, hi], inclusive on both ends
	Range(lo, hi int) (int, error)

	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total int   // Sum of all dice plus bonus
	Rolls []int // Individual die results
	Bonus int
	Count int
	Sides int
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	if r.Bonus == 0 {
		return fmt.Sprintf("%dd%d %s = **%d**", r.Count, r.Sides, compact, r.Total)
	}
	return fmt.Sprintf("%dd%d%+d %s = **%d**", r.Count, r.Sides, r.Bonus, compact, r.Total)
}

// RollWith implements Roll on top of any Intn so scripted and real rollers
// share the validation rules
func RollWith(intn func(int) (int, error), count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, rpgerr.Validationf("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, rpgerr.Validationf("invalid dice size %d", sides)
	}

	result := &RollResult{
		Rolls: make([]int, count),
		Bonus: bonus,
		Count: count,
		Sides: sides,
		Total: bonus,
	}
	for i := 0; i < count; i++ {
		v, err := intn(sides)
		if err != nil {
			return nil, err
		}
		result.Rolls[i] = v + 1
		result.Total += v + 1
	}

	return result, nil
}

// RangeWith maps a single Intn draw onto [lo, hi]
func RangeWith(intn func(int) (int, error), lo, hi int) (int, error) {
	if hi < lo {
		return 0, rpgerr.Validationf("invalid range [%d, %d]", lo, hi)
	}
	v, err := intn(hi - lo + 1)
	if err != nil {
		return 0, err
	}
	return lo + v, nil
}
