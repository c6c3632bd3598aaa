package units

import (
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// PointsPerLevel is how many stat points a level-up grants
const PointsPerLevel = 5

// ExperienceFor returns the total experience needed to reach level
func ExperienceFor(level int) int {
	if level <= 1 {
		return 0
	}
	return 50 * level * (level - 1)
}

// Recalculate derives the unit's stats from its base stats and the given
// equipped items. Current HP carries over, clamped to the new MAX_HP.
func Recalculate(r *stats.Resolver, u *Unit, equipped []*items.Item) *Unit {
	out := u.Clone()
	hp := u.HP()

	derived := r.Compute(u.Base, items.StatsOf(equipped))
	if maxHP := stats.Get(derived, stats.MaxHP); hp > maxHP {
		hp = maxHP
	}
	out.Stats = put(derived, stats.HP, r.Catalog().Clamp(stats.HP, hp))
	return out
}

// Heal restores HP to MAX_HP
func Heal(u *Unit) *Unit {
	out := u.Clone()
	out.Stats = put(out.Stats, stats.HP, u.MaxHP())
	return out
}

// Damage lowers HP by amount, flooring at zero
func Damage(u *Unit, amount int) *Unit {
	hp := u.HP() - amount
	if hp < 0 {
		hp = 0
	}
	out := u.Clone()
	out.Stats = put(out.Stats, stats.HP, hp)
	return out
}

// LevelUp raises a player's level, grants stat points and restores HP
func LevelUp(r *stats.Resolver, u *Unit, equipped []*items.Item) (*Unit, error) {
	if _, ok := u.Player(); !ok {
		return nil, rpgerr.Validationf("%s units do not level up", u.Kind())
	}

	out := u.Clone()
	out.Level++
	player, _ := out.Player()
	player.StatPoints += PointsPerLevel

	return Heal(Recalculate(r, out, equipped)), nil
}

// AllocateStatPoints moves n unspent points into a BASE stat
func AllocateStatPoints(r *stats.Resolver, u *Unit, equipped []*items.Item, id stats.ID, n int) (*Unit, error) {
	if _, ok := u.Player(); !ok {
		return nil, rpgerr.Validationf("%s units have no stat points", u.Kind())
	}
	if n <= 0 {
		return nil, rpgerr.Validationf("cannot allocate %d points", n)
	}

	def, err := r.Catalog().Lookup(id)
	if err != nil {
		return nil, err
	}
	if !def.Category.Has(stats.CategoryBase) {
		return nil, rpgerr.Validationf("%s is not a base stat", def.Short).WithMeta("stat", def.Short)
	}

	player, _ := u.Player()
	if player.StatPoints < n {
		return nil, rpgerr.Validationf("only %d stat points left", player.StatPoints).
			WithMeta("available", player.StatPoints).
			WithMeta("requested", n)
	}

	out := u.Clone()
	out.Base = stats.Add(out.Base, id, n)
	p, _ := out.Player()
	p.StatPoints -= n

	return Recalculate(r, out, equipped), nil
}

// GrantExperience adds experience to a player and applies every level-up it
// earns. It returns the updated unit and the number of levels gained.
func GrantExperience(r *stats.Resolver, u *Unit, equipped []*items.Item, xp int) (*Unit, int, error) {
	if _, ok := u.Player(); !ok {
		return nil, 0, rpgerr.Validationf("%s units do not gain experience", u.Kind())
	}
	if xp < 0 {
		return nil, 0, rpgerr.Validationf("negative experience %d", xp)
	}

	out := u.Clone()
	out.Base = stats.Add(out.Base, stats.Experience, xp)
	out = Recalculate(r, out, equipped)

	gained := 0
	total := stats.Get(out.Base, stats.Experience)
	for total >= ExperienceFor(out.Level+1) {
		var err error
		out, err = LevelUp(r, out, equipped)
		if err != nil {
			return nil, 0, err
		}
		gained++
	}
	return out, gained, nil
}

// put writes value for id, inserting the entry when missing
func put(list stats.List, id stats.ID, value int) stats.List {
	out, ok := stats.Set(list, id, value)
	if !ok {
		out = append(out, stats.Stat{ID: id, Value: value})
	}
	return out
}
