package stats

import (
	"math"

	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// Operation controls how a modifier turns inputs into output deltas
type Operation uint8

const (
	// OperationAdd adds Σinputs × coefficient to each output
	OperationAdd Operation = iota + 1
	// OperationMultiply treats Σinputs as a percentage scale of each output:
	// the output grows by existing × Σinputs × coefficient
	OperationMultiply
)

func (o Operation) String() string {
	switch o {
	case OperationAdd:
		return "add"
	case OperationMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// Modifier is a declarative derivation rule. Modifiers only read aggregated
// base+item values, never each other's outputs, so their order is irrelevant.
type Modifier struct {
	ID          string
	Inputs      []ID
	Outputs     []ID
	Operation   Operation
	Coefficient float64
}

// Validate checks the modifier against a catalog
func (m Modifier) Validate(c *Catalog) error {
	if len(m.Inputs) == 0 || len(m.Outputs) == 0 {
		return rpgerr.Validationf("modifier %q needs inputs and outputs", m.ID)
	}
	if m.Operation != OperationAdd && m.Operation != OperationMultiply {
		return rpgerr.Validationf("modifier %q has unknown operation %d", m.ID, m.Operation)
	}
	for _, id := range append(append([]ID{}, m.Inputs...), m.Outputs...) {
		if _, err := c.Lookup(id); err != nil {
			return rpgerr.Wrapf(err, "modifier %q", m.ID)
		}
	}
	return nil
}

// Deltas returns how much each output grows, computed from base and item
// stats. Results are floored toward negative infinity.
func (m Modifier) Deltas(base, items List) List {
	combined := 0
	for _, in := range m.Inputs {
		combined += Get(base, in) + Get(items, in)
	}

	out := make(List, 0, len(m.Outputs))
	for _, id := range m.Outputs {
		var delta float64
		switch m.Operation {
		case OperationAdd:
			delta = float64(combined) * m.Coefficient
		case OperationMultiply:
			existing := Get(base, id) + Get(items, id)
			delta = float64(existing) * float64(combined) * m.Coefficient
		}
		out = append(out, Stat{ID: id, Value: int(math.Floor(delta))})
	}
	return out
}

// Resolve applies one modifier: every output becomes existing(base+item)
// plus the modifier's delta.
func Resolve(m Modifier, base, items List) List {
	out := make(List, 0, len(m.Outputs))
	for _, d := range m.Deltas(base, items) {
		existing := Get(base, d.ID) + Get(items, d.ID)
		out = append(out, Stat{ID: d.ID, Value: existing + d.Value})
	}
	return out
}

// Resolver derives final stats from base stats, item stats and modifiers
type Resolver struct {
	catalog   *Catalog
	modifiers []Modifier
}

// NewResolver validates every modifier against the catalog
func NewResolver(c *Catalog, modifiers ...Modifier) (*Resolver, error) {
	for _, m := range modifiers {
		if err := m.Validate(c); err != nil {
			return nil, err
		}
	}
	return &Resolver{catalog: c, modifiers: modifiers}, nil
}

// Catalog returns the catalog the resolver clamps against
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Compute aggregates base and item stats, clamps them, applies every
// modifier to the clamped aggregate and clamps the result again. The output
// holds one entry per id, ordered by id.
func (r *Resolver) Compute(base, items List) List {
	aggregated := r.catalog.ClampAll(Merge(base, items))

	deltas := List{}
	for _, m := range r.modifiers {
		deltas = append(deltas, m.Deltas(aggregated, nil)...)
	}

	return r.catalog.ClampAll(Merge(aggregated, deltas))
}

// DefaultModifiers are the derivations every unit gets
var DefaultModifiers = []Modifier{
	{ID: "str-attack", Inputs: []ID{STR}, Outputs: []ID{ATK}, Operation: OperationAdd, Coefficient: 2},
	{ID: "dex-defense", Inputs: []ID{DEX}, Outputs: []ID{DEF}, Operation: OperationAdd, Coefficient: 1},
	{ID: "vit-health", Inputs: []ID{VIT}, Outputs: []ID{MaxHP}, Operation: OperationAdd, Coefficient: 10},
	{ID: "int-spellpower", Inputs: []ID{INT}, Outputs: []ID{SpellPower}, Operation: OperationAdd, Coefficient: 2},
	{ID: "increased-attack", Inputs: []ID{ATKPercent}, Outputs: []ID{ATK}, Operation: OperationMultiply, Coefficient: 0.01},
	{ID: "increased-defense", Inputs: []ID{DEFPercent}, Outputs: []ID{DEF}, Operation: OperationMultiply, Coefficient: 0.01},
	{ID: "increased-health", Inputs: []ID{MaxHPPercent}, Outputs: []ID{MaxHP}, Operation: OperationMultiply, Coefficient: 0.01},
}

// DefaultResolver uses the default catalog and modifiers
var DefaultResolver = mustResolver(Default, DefaultModifiers...)

func mustResolver(c *Catalog, modifiers ...Modifier) *Resolver {
	r, err := NewResolver(c, modifiers...)
	if err != nil {
		panic(err)
	}
	return r
}
