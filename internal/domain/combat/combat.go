package combat

import (
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// State tracks progress through a round
type State uint8

const (
	StateAttackerUnset State = iota
	StateAttackerSet
	StateSwapped
	StateRoundComplete
)

func (s State) String() string {
	switch s {
	case StateAttackerUnset:
		return "attacker_unset"
	case StateAttackerSet:
		return "attacker_set"
	case StateSwapped:
		return "swapped"
	case StateRoundComplete:
		return "round_complete"
	default:
		return "unknown"
	}
}

// Participant is a unit and the items it owns
type Participant struct {
	Unit  *units.Unit
	Items []*items.Item
}

// Result describes one resolved attack
type Result struct {
	AttackerID string
	DefenderID string
	Style      items.Style
	Damage     int
	DefenderHP int
	Fatal      bool
}

// Formula computes the damage attacker deals to defender
type Formula func(attacker, defender *units.Unit) (int, error)

// Melee is floor(atk² / (atk + def)), and 0 when both are 0
func Melee(attacker, defender *units.Unit) (int, error) {
	atk := int64(stats.Get(attacker.Stats, stats.ATK))
	def := int64(stats.Get(defender.Stats, stats.DEF))
	if atk+def == 0 {
		return 0, nil
	}
	return int(atk * atk / (atk + def)), nil
}

// Option configures a Context
type Option func(*Context)

// WithFormula registers the damage formula for a style
func WithFormula(style items.Style, f Formula) Option {
	return func(c *Context) {
		c.formulas[style] = f
	}
}

// Context is one encounter between two units. It owns copies of both
// participants; read the outcome back with Units.
type Context struct {
	units    [2]*units.Unit
	items    [2]map[storage.ItemID]*items.Item
	attacker int
	opener   int
	state    State
	formulas map[items.Style]Formula
}

// NewContext builds an encounter. Only melee has a formula unless others are
// registered with WithFormula.
func NewContext(a, b Participant, opts ...Option) (*Context, error) {
	if a.Unit == nil || b.Unit == nil {
		return nil, rpgerr.InvalidArgument("both participants need a unit")
	}
	if a.Unit.ID == b.Unit.ID {
		return nil, rpgerr.Validationf("unit %s cannot fight itself", a.Unit.ID)
	}

	c := &Context{
		units:    [2]*units.Unit{a.Unit.Clone(), b.Unit.Clone()},
		items:    [2]map[storage.ItemID]*items.Item{index(a.Items), index(b.Items)},
		formulas: map[items.Style]Formula{items.StyleMelee: Melee},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func index(list []*items.Item) map[storage.ItemID]*items.Item {
	out := make(map[storage.ItemID]*items.Item, len(list))
	for _, it := range list {
		out[it.ID] = it
	}
	return out
}

// State returns the current round state
func (c *Context) State() State {
	return c.state
}

// SetAttacker makes the unit the attacker and the other the defender. It
// returns false when the id matches neither participant.
func (c *Context) SetAttacker(unitID string) bool {
	for i, u := range c.units {
		if u.ID == unitID {
			c.attacker = i
			c.opener = i
			c.state = StateAttackerSet
			return true
		}
	}
	return false
}

// Attacker returns the current attacker, or nil before SetAttacker
func (c *Context) Attacker() *units.Unit {
	if c.state == StateAttackerUnset {
		return nil
	}
	return c.units[c.attacker]
}

// Defender returns the current defender, or nil before SetAttacker
func (c *Context) Defender() *units.Unit {
	if c.state == StateAttackerUnset {
		return nil
	}
	return c.units[1-c.attacker]
}

// Style reports how a participant fights, from the weapons in its arm
// slots. Spell beats ranged beats melee; no weapon is melee.
func (c *Context) Style(unitID string) items.Style {
	for i, u := range c.units {
		if u.ID == unitID {
			return styleOf(u, c.items[i])
		}
	}
	return items.StyleMelee
}

// StyleOf reports how a participant fights outside of an encounter
func StyleOf(p Participant) items.Style {
	return styleOf(p.Unit, index(p.Items))
}

func styleOf(u *units.Unit, owned map[storage.ItemID]*items.Item) items.Style {
	style := items.StyleMelee
	for _, slot := range []int{storage.SlotPrimaryArm, storage.SlotSecondaryArm} {
		it, ok := owned[u.Storage.Get(storage.NodeEquipment, slot)]
		if !ok {
			continue
		}
		w, ok := it.Weapon()
		if !ok {
			continue
		}
		if s := w.Style(); s > style {
			style = s
		}
	}
	return style
}

// ResolveAttack resolves the current attacker's hit on the defender. Without
// an attacker it returns a nil result and no error: the attack could not be
// resolved, which is not the same as a hit for 0. A negative damage value is
// an invariant violation and nothing is applied.
func (c *Context) ResolveAttack() (*Result, error) {
	if c.state == StateAttackerUnset {
		return nil, nil
	}

	attacker, defender := c.units[c.attacker], c.units[1-c.attacker]
	style := styleOf(attacker, c.items[c.attacker])

	formula, ok := c.formulas[style]
	if !ok {
		return nil, rpgerr.Unimplementedf("%s combat has no damage formula", style).
			WithMeta("style", style.String())
	}

	damage, err := formula(attacker, defender)
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to compute %s damage", style)
	}
	if damage < 0 {
		return nil, rpgerr.Invariantf("%s damage from %s to %s is negative: %d", style, attacker.ID, defender.ID, damage).
			WithMeta("damage", damage)
	}

	hit := units.Damage(defender, damage)
	c.units[1-c.attacker] = hit

	return &Result{
		AttackerID: attacker.ID,
		DefenderID: defender.ID,
		Style:      style,
		Damage:     damage,
		DefenderHP: hit.HP(),
		Fatal:      hit.HP() <= 0,
	}, nil
}

// ResolveRound resolves an attack and, unless it was fatal, the defender's
// counter-attack. Without an attacker it returns no results and no error.
// After a round the opener attacks first again.
func (c *Context) ResolveRound() ([]Result, error) {
	if c.state == StateAttackerUnset {
		return nil, nil
	}
	if c.state == StateRoundComplete {
		c.attacker = c.opener
		c.state = StateAttackerSet
	}
	if !c.units[0].IsAlive() || !c.units[1].IsAlive() {
		return nil, rpgerr.Validation("combat is already over")
	}

	first, err := c.ResolveAttack()
	if err != nil {
		return nil, err
	}
	if first.Fatal {
		c.state = StateRoundComplete
		return []Result{*first}, nil
	}

	c.attacker = 1 - c.attacker
	c.state = StateSwapped

	second, err := c.ResolveAttack()
	if err != nil {
		return []Result{*first}, err
	}
	c.state = StateRoundComplete
	return []Result{*first, *second}, nil
}

// Units returns copies of both participants in the order they were given
func (c *Context) Units() []*units.Unit {
	return []*units.Unit{c.units[0].Clone(), c.units[1].Clone()}
}

// Over reports whether either participant is dead
func (c *Context) Over() bool {
	return !c.units[0].IsAlive() || !c.units[1].IsAlive()
}
