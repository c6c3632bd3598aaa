package items

import (
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// Request describes the item to build. Class and SubClass may be left zero
// to accept the catalog's; when set they must match it.
type Request struct {
	Code     string
	Class    Class
	SubClass SubClass
	Tier     Tier
	Rarity   Rarity
}

// Generator builds items from a catalog
type Generator struct {
	catalog *Catalog
}

// NewGenerator creates a generator over c
func NewGenerator(c *Catalog) *Generator {
	if c == nil {
		panic("item catalog is required")
	}
	return &Generator{catalog: c}
}

// Catalog returns the generator's catalog
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate builds a new item. Implicit stats are copied as-is. Starter items
// get nothing else; other items draw the tier's number of affixes without
// replacement and roll each in [min*s, max*s] where s is tier plus rarity.
// The returned item has no id or owner yet. Any failure returns a nil item.
func (g *Generator) Generate(roller dice.Roller, req Request) (*Item, error) {
	t, err := g.catalog.Lookup(req.Code)
	if err != nil {
		return nil, err
	}

	count, err := g.catalog.ModifierCount(req.Tier)
	if err != nil {
		return nil, err
	}

	if req.Class != 0 && req.Class != t.Class {
		return nil, rpgerr.Validationf("item %q is a %s, not a %s", t.Code, t.Class, req.Class)
	}
	if req.SubClass != 0 && req.SubClass != t.SubClass {
		return nil, rpgerr.Validationf("item %q is a %s, not a %s", t.Code, t.SubClass, req.SubClass)
	}

	item := &Item{
		Code:     t.Code,
		Name:     t.Name,
		Class:    t.Class,
		SubClass: t.SubClass,
		Tier:     req.Tier,
		Rarity:   req.Rarity,
		Equip:    DescriptorFor(t.SubClass),
		Stats:    t.Implicit.Clone(),
	}
	if item.Stats == nil {
		item.Stats = stats.List{}
	}

	if t.Starter {
		return item, nil
	}

	pool := g.catalog.Eligible(t)
	if len(pool) < count {
		return nil, rpgerr.Lookupf("item %q has %d eligible affixes, tier %d needs %d", t.Code, len(pool), req.Tier, count).
			WithMeta("code", t.Code).
			WithMeta("tier", req.Tier)
	}

	scale := int(req.Tier) + int(req.Rarity)
	for i := 0; i < count; i++ {
		// partial Fisher-Yates: pool[:i] holds the draws so far
		j, err := roller.Intn(len(pool) - i)
		if err != nil {
			return nil, rpgerr.Wrap(err, "failed to draw affix")
		}
		pool[i], pool[i+j] = pool[i+j], pool[i]

		affix := pool[i]
		value, err := roller.Range(affix.Min*scale, affix.Max*scale)
		if err != nil {
			return nil, rpgerr.Wrapf(err, "failed to roll affix %q", affix.Code)
		}

		item.Stats = append(item.Stats, stats.Stat{ID: affix.Stat, Value: value})
		item.Affixes = append(item.Affixes, affix.Code)
	}

	return item, nil
}
