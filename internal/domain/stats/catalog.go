package stats

import (
	"strings"

	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// ID is a stable small integer identifying a stat. Values are persisted
// as-is, never renumber.
type ID uint16

const (
	STR ID = 1
	DEX ID = 2
	INT ID = 3
	VIT ID = 4

	HP           ID = 20
	MaxHP        ID = 21
	ATK          ID = 22
	DEF          ID = 23
	SpellPower   ID = 24
	ATKPercent   ID = 30
	DEFPercent   ID = 31
	MaxHPPercent ID = 32

	Experience ID = 50
	Bounty     ID = 60
)

// Category flags what a stat applies to
type Category uint8

const (
	CategoryBase Category = 1 << iota
	CategoryUnit
	CategoryPlayer
	CategoryMonster
)

// Has reports whether any of the flags in other are set
func (c Category) Has(other Category) bool {
	return c&other != 0
}

// Definition describes a stat's identity and numeric domain
type Definition struct {
	ID       ID
	Category Category
	Short    string
	Long     string
	Min      int
	Max      int
}

// Clamp bounds v to the definition's domain
func (d Definition) Clamp(v int) int {
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Catalog is the immutable set of stat definitions, built once
type Catalog struct {
	defs  map[ID]Definition
	order []ID
}

// NewCatalog builds a catalog, rejecting duplicate ids and inverted ranges
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[ID]Definition, len(defs))}
	for _, d := range defs {
		if _, exists := c.defs[d.ID]; exists {
			return nil, rpgerr.Validationf("duplicate stat id %d", d.ID)
		}
		if d.Min > d.Max {
			return nil, rpgerr.Validationf("stat %s has min %d above max %d", d.Short, d.Min, d.Max)
		}
		c.defs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

// Lookup returns the definition for id, or a validation error for unknown ids
func (c *Catalog) Lookup(id ID) (Definition, error) {
	d, ok := c.defs[id]
	if !ok {
		return Definition{}, rpgerr.Validationf("unknown stat id %d", id).WithMeta("stat_id", id)
	}
	return d, nil
}

// LookupShort finds a definition by its short name, ignoring case
func (c *Catalog) LookupShort(name string) (Definition, error) {
	for _, id := range c.order {
		if strings.EqualFold(c.defs[id].Short, name) {
			return c.defs[id], nil
		}
	}
	return Definition{}, rpgerr.Validationf("unknown stat %q", name).WithMeta("stat", name)
}

// Definitions returns every definition in declaration order
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

// Clamp bounds v to the domain of id. Unknown ids pass through untouched.
func (c *Catalog) Clamp(id ID, v int) int {
	d, ok := c.defs[id]
	if !ok {
		return v
	}
	return d.Clamp(v)
}

// ClampAll returns a copy of list with every known value clamped
func (c *Catalog) ClampAll(list List) List {
	out := list.Clone()
	for i := range out {
		out[i].Value = c.Clamp(out[i].ID, out[i].Value)
	}
	return out
}

// Template returns a zero-valued entry for every UNIT stat whose category
// also intersects scope (PLAYER or MONSTER). Stats that are UNIT only are
// always included. Values are not clamped; Compute bounds the derived list.
func (c *Catalog) Template(scope Category) List {
	var out List
	for _, id := range c.order {
		d := c.defs[id]
		if !d.Category.Has(CategoryUnit) {
			continue
		}
		ownerFlags := d.Category & (CategoryPlayer | CategoryMonster)
		if ownerFlags != 0 && !ownerFlags.Has(scope) {
			continue
		}
		out = append(out, Stat{ID: id})
	}
	return out
}

// IDs returns the ids flagged with any of the given categories
func (c *Catalog) IDs(category Category) []ID {
	var out []ID
	for _, id := range c.order {
		if c.defs[id].Category.Has(category) {
			out = append(out, id)
		}
	}
	return out
}

// Default is the game's stat catalog
var Default = mustCatalog(
	Definition{ID: STR, Category: CategoryBase | CategoryUnit, Short: "STR", Long: "strength", Min: 0, Max: 9999},
	Definition{ID: DEX, Category: CategoryBase | CategoryUnit, Short: "DEX", Long: "dexterity", Min: 0, Max: 9999},
	Definition{ID: INT, Category: CategoryBase | CategoryUnit, Short: "INT", Long: "intelligence", Min: 0, Max: 9999},
	Definition{ID: VIT, Category: CategoryBase | CategoryUnit, Short: "VIT", Long: "vitality", Min: 0, Max: 9999},

	Definition{ID: HP, Category: CategoryUnit, Short: "HP", Long: "hit points", Min: 0, Max: 999999},
	Definition{ID: MaxHP, Category: CategoryUnit, Short: "MAXHP", Long: "maximum hit points", Min: 1, Max: 999999},
	Definition{ID: ATK, Category: CategoryUnit, Short: "ATK", Long: "attack", Min: 0, Max: 99999},
	Definition{ID: DEF, Category: CategoryUnit, Short: "DEF", Long: "defense", Min: 0, Max: 99999},
	Definition{ID: SpellPower, Category: CategoryUnit, Short: "SP", Long: "spell power", Min: 0, Max: 99999},
	Definition{ID: ATKPercent, Category: CategoryUnit, Short: "ATK%", Long: "increased attack", Min: 0, Max: 500},
	Definition{ID: DEFPercent, Category: CategoryUnit, Short: "DEF%", Long: "increased defense", Min: 0, Max: 500},
	Definition{ID: MaxHPPercent, Category: CategoryUnit, Short: "HP%", Long: "increased hit points", Min: 0, Max: 500},

	Definition{ID: Experience, Category: CategoryUnit | CategoryPlayer, Short: "XP", Long: "experience", Min: 0, Max: 1 << 30},
	Definition{ID: Bounty, Category: CategoryUnit | CategoryMonster, Short: "BTY", Long: "bounty", Min: 0, Max: 1 << 20},
)

func mustCatalog(defs ...Definition) *Catalog {
	c, err := NewCatalog(defs...)
	if err != nil {
		panic(err)
	}
	return c
}
