package dice

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"

	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"golang.org/x/crypto/blake2b"
)

// ContextName identifies a scoped randomness source within a guild
type ContextName string

const (
	ContextItem    ContextName = "item"
	ContextMonster ContextName = "monster"
	ContextCombat  ContextName = "combat"
)

// ContextNames lists every context a guild may own
var ContextNames = []ContextName{ContextItem, ContextMonster, ContextCombat}

// Validate reports whether the name is a known context
func (n ContextName) Validate() error {
	for _, known := range ContextNames {
		if n == known {
			return nil
		}
	}
	return rpgerr.Validationf("invalid rng context %q", string(n)).
		WithMeta("context", string(n))
}

// State is the persisted triple behind a context. Committing to Secret and
// publishing Counter lets anyone replay a draw after the fact.
type State struct {
	Guild   string      `json:"guild"`
	Name    ContextName `json:"name"`
	Secret  string      `json:"secret"`
	Counter uint64      `json:"counter"`
	Offset  uint64      `json:"offset"`
}

// Context is a deterministic Roller. Each Intn consumes exactly one counter
// value; rejection sampling retries inside the same counter.
type Context struct {
	mu    sync.Mutex
	state State
	key   [32]byte
}

// NewContext creates a context positioned at state.Counter
func NewContext(state State) (*Context, error) {
	if err := state.Name.Validate(); err != nil {
		return nil, err
	}
	if state.Secret == "" {
		return nil, rpgerr.Validationf("rng context %q has no secret", string(state.Name))
	}

	return &Context{
		state: state,
		key:   blake2b.Sum256([]byte(state.Secret)),
	}, nil
}

// State returns a snapshot of the context triple, including the advanced counter
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Commitment is the public fingerprint of the secret
func (c *Context) Commitment() string {
	return Commitment(c.state.Secret)
}

// Intn implements Roller.Intn
func (c *Context) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, rpgerr.Validationf("invalid draw bound %d", n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v := draw(c.key, c.state.Offset, c.state.Counter, uint64(n))
	c.state.Counter++
	return int(v), nil
}

// Range implements Roller.Range
func (c *Context) Range(lo, hi int) (int, error) {
	return RangeWith(c.Intn, lo, hi)
}

// Roll implements Roller.Roll
func (c *Context) Roll(count, sides, bonus int) (*RollResult, error) {
	return RollWith(c.Intn, count, sides, bonus)
}

// Replay recomputes the Intn result a context with this secret and offset
// produced at the given counter.
func Replay(secret string, offset, counter uint64, n int) (int, error) {
	if n <= 0 {
		return 0, rpgerr.Validationf("invalid draw bound %d", n)
	}
	return int(draw(blake2b.Sum256([]byte(secret)), offset, counter, uint64(n))), nil
}

// Commitment returns the hex fingerprint published for a secret
func Commitment(secret string) string {
	sum := blake2b.Sum256(append([]byte("commit:"), secret...))
	return hex.EncodeToString(sum[:])
}

// draw maps (offset, counter) onto [0, n) without modulo bias
func draw(key [32]byte, offset, counter, n uint64) uint64 {
	limit := math.MaxUint64 - math.MaxUint64%n

	var msg [20]byte
	binary.BigEndian.PutUint64(msg[0:8], offset)
	binary.BigEndian.PutUint64(msg[8:16], counter)

	for attempt := uint32(0); ; attempt++ {
		binary.BigEndian.PutUint32(msg[16:20], attempt)

		h, err := blake2b.New256(key[:])
		if err != nil {
			// only possible with a key longer than 64 bytes
			panic(err)
		}
		h.Write(msg[:])
		sum := h.Sum(nil)

		for i := 0; i+8 <= len(sum); i += 8 {
			x := binary.BigEndian.Uint64(sum[i : i+8])
			if x < limit {
				return x % n
			}
		}
	}
}
