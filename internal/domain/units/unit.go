package units

import (
	"time"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// Kind separates players from monsters
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindMonster
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Descriptor carries kind specific data. It is either *PlayerDescriptor or
// *MonsterDescriptor.
type Descriptor interface {
	Kind() Kind
	clone() Descriptor
}

// PlayerDescriptor belongs to player units
type PlayerDescriptor struct {
	Class      string `json:"class"`
	AccountID  string `json:"account_id"`
	StatPoints int    `json:"stat_points"`
}

func (*PlayerDescriptor) Kind() Kind { return KindPlayer }

func (d *PlayerDescriptor) clone() Descriptor {
	cp := *d
	return &cp
}

// MonsterDescriptor belongs to monster units
type MonsterDescriptor struct {
	Species string       `json:"species"`
	Tier    items.Tier   `json:"tier"`
	Rarity  items.Rarity `json:"rarity"`
}

func (*MonsterDescriptor) Kind() Kind { return KindMonster }

func (d *MonsterDescriptor) clone() Descriptor {
	cp := *d
	return &cp
}

// Unit is a player character or a monster. Base holds the allocated base
// attributes and progression counters; Stats holds the derived values
// including current HP.
type Unit struct {
	ID         string
	Name       string
	Level      int
	Base       stats.List
	Stats      stats.List
	Storage    storage.Storage
	Descriptor Descriptor
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Kind reports whether the unit is a player or a monster
func (u *Unit) Kind() Kind {
	if u.Descriptor == nil {
		return 0
	}
	return u.Descriptor.Kind()
}

// Player returns the player descriptor, if any
func (u *Unit) Player() (*PlayerDescriptor, bool) {
	d, ok := u.Descriptor.(*PlayerDescriptor)
	return d, ok
}

// Monster returns the monster descriptor, if any
func (u *Unit) Monster() (*MonsterDescriptor, bool) {
	d, ok := u.Descriptor.(*MonsterDescriptor)
	return d, ok
}

// HP is the unit's current hit points
func (u *Unit) HP() int {
	return stats.Get(u.Stats, stats.HP)
}

// MaxHP is the unit's derived maximum hit points
func (u *Unit) MaxHP() int {
	return stats.Get(u.Stats, stats.MaxHP)
}

// IsAlive reports whether the unit has hit points left
func (u *Unit) IsAlive() bool {
	return u.HP() > 0
}

// Clone returns a deep copy
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}
	out := *u
	out.Base = u.Base.Clone()
	out.Stats = u.Stats.Clone()
	out.Storage = u.Storage.Clone()
	if u.Descriptor != nil {
		out.Descriptor = u.Descriptor.clone()
	}
	return &out
}

// NewPlayer creates a level 1 player of the class at full health. Starter
// items are created and equipped by the caller.
func NewPlayer(t *Templates, r *stats.Resolver, id, name, class, accountID string) (*Unit, error) {
	if id == "" {
		return nil, rpgerr.InvalidArgument("unit id is required")
	}
	tmpl, err := t.Class(class)
	if err != nil {
		return nil, err
	}

	u := &Unit{
		ID:      id,
		Name:    name,
		Level:   1,
		Base:    stats.ApplyOverrides(baseTemplate(r.Catalog(), stats.CategoryPlayer), tmpl.Base),
		Storage: storage.ForPlayer(),
		Descriptor: &PlayerDescriptor{
			Class:     tmpl.Code,
			AccountID: accountID,
		},
	}
	return Heal(Recalculate(r, u, nil)), nil
}

// NewMonster creates a monster with BASE stats scaled by tier plus rarity.
// Tier must be in [MinTier, MaxTier].
func NewMonster(t *Templates, r *stats.Resolver, id, species string, tier items.Tier, rarity items.Rarity, level int) (*Unit, error) {
	if id == "" {
		return nil, rpgerr.InvalidArgument("unit id is required")
	}
	if tier < items.MinTier || tier > items.MaxTier {
		return nil, rpgerr.Lookupf("unknown tier %d", tier).WithMeta("tier", tier)
	}
	tmpl, err := t.Species(species)
	if err != nil {
		return nil, err
	}

	scale := int(tier) + int(rarity)
	base := stats.ApplyOverrides(baseTemplate(r.Catalog(), stats.CategoryMonster), tmpl.Base)
	base = stats.Scale(base, scale, r.Catalog().IDs(stats.CategoryBase)...)
	base, _ = stats.Set(base, stats.Bounty, tmpl.Bounty*scale)

	u := &Unit{
		ID:      id,
		Name:    tmpl.Name,
		Level:   level,
		Base:    base,
		Storage: storage.ForMonster(),
		Descriptor: &MonsterDescriptor{
			Species: tmpl.Code,
			Tier:    tier,
			Rarity:  rarity,
		},
	}
	return Heal(Recalculate(r, u, nil)), nil
}

// LevelBand returns the inclusive level range monsters of a tier spawn in
func LevelBand(tier items.Tier) (int, int) {
	return (int(tier)-1)*10 + 1, int(tier) * 10
}

// RollLevel draws a monster level inside the tier's band
func RollLevel(roller dice.Roller, tier items.Tier) (int, error) {
	if tier < items.MinTier || tier > items.MaxTier {
		return 0, rpgerr.Lookupf("unknown tier %d", tier).WithMeta("tier", tier)
	}
	lo, hi := LevelBand(tier)
	return roller.Range(lo, hi)
}

// baseTemplate is the zeroed catalog template without the hit point pools.
// HP and MAX_HP live only in the derived list.
func baseTemplate(c *stats.Catalog, scope stats.Category) stats.List {
	var out stats.List
	for _, s := range c.Template(scope) {
		if s.ID != stats.HP && s.ID != stats.MaxHP {
			out = append(out, s)
		}
	}
	return out
}
