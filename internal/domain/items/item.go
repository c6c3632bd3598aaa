package items

import (
	"strings"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// Class is the top-level kind of an item
type Class uint8

const (
	ClassWeapon Class = iota + 1
	ClassArmor
	ClassJewel
)

var classNames = map[Class]string{
	ClassWeapon: "weapon",
	ClassArmor:  "armor",
	ClassJewel:  "jewel",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseClass maps a class name onto a Class
func ParseClass(s string) (Class, error) {
	for c, name := range classNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return 0, rpgerr.Validationf("unknown item class %q", s)
}

// SubClass narrows a class. Values are unique across classes.
type SubClass uint8

const (
	SubClassSword SubClass = iota + 1
	SubClassAxe
	SubClassDagger
	SubClassGreatsword
	SubClassGreataxe
	SubClassBow
	SubClassCrossbow
	SubClassWand
	SubClassStaff

	SubClassHelmet
	SubClassBody
	SubClassGloves
	SubClassBoots
	SubClassShield
	SubClassQuiver
	SubClassSpellbook

	SubClassRing
	SubClassAmulet
)

type subClassInfo struct {
	name   string
	class  Class
	flags  storage.Flags
	weapon WeaponDescriptor
}

var arms = storage.FlagPrimaryArm | storage.FlagSecondaryArm

var subClasses = map[SubClass]subClassInfo{
	SubClassSword:      {name: "sword", class: ClassWeapon, flags: storage.FlagPrimaryArm},
	SubClassAxe:        {name: "axe", class: ClassWeapon, flags: arms, weapon: WeaponDescriptor{DualWieldable: true}},
	SubClassDagger:     {name: "dagger", class: ClassWeapon, flags: arms, weapon: WeaponDescriptor{DualWieldable: true}},
	SubClassGreatsword: {name: "greatsword", class: ClassWeapon, flags: storage.FlagPrimaryArm, weapon: WeaponDescriptor{TwoHanded: true}},
	SubClassGreataxe:   {name: "greataxe", class: ClassWeapon, flags: storage.FlagPrimaryArm, weapon: WeaponDescriptor{TwoHanded: true}},
	SubClassBow:        {name: "bow", class: ClassWeapon, flags: storage.FlagPrimaryArm, weapon: WeaponDescriptor{TwoHanded: true, Ranged: true}},
	SubClassCrossbow:   {name: "crossbow", class: ClassWeapon, flags: storage.FlagPrimaryArm, weapon: WeaponDescriptor{Ranged: true}},
	SubClassWand:       {name: "wand", class: ClassWeapon, flags: storage.FlagPrimaryArm, weapon: WeaponDescriptor{Spell: true}},
	SubClassStaff:      {name: "staff", class: ClassWeapon, flags: storage.FlagPrimaryArm, weapon: WeaponDescriptor{TwoHanded: true, Spell: true}},

	SubClassHelmet:    {name: "helmet", class: ClassArmor, flags: storage.FlagHead},
	SubClassBody:      {name: "body", class: ClassArmor, flags: storage.FlagBody},
	SubClassGloves:    {name: "gloves", class: ClassArmor, flags: storage.FlagHands},
	SubClassBoots:     {name: "boots", class: ClassArmor, flags: storage.FlagFeet},
	SubClassShield:    {name: "shield", class: ClassArmor, flags: storage.FlagSecondaryArm},
	SubClassQuiver:    {name: "quiver", class: ClassArmor, flags: storage.FlagSecondaryArm},
	SubClassSpellbook: {name: "spellbook", class: ClassArmor, flags: storage.FlagSecondaryArm},

	SubClassRing:   {name: "ring", class: ClassJewel, flags: storage.FlagRing},
	SubClassAmulet: {name: "amulet", class: ClassJewel, flags: storage.FlagNeck},
}

func (s SubClass) String() string {
	if info, ok := subClasses[s]; ok {
		return info.name
	}
	return "unknown"
}

// Class returns the class the sub-class belongs to
func (s SubClass) Class() Class {
	return subClasses[s].class
}

// ParseSubClass maps a sub-class name onto a SubClass
func ParseSubClass(s string) (SubClass, error) {
	for sub, info := range subClasses {
		if strings.EqualFold(info.name, s) {
			return sub, nil
		}
	}
	return 0, rpgerr.Validationf("unknown item sub-class %q", s)
}

// RequiredFlags returns the slot flags an item of the sub-class can occupy
func RequiredFlags(s SubClass) storage.Flags {
	return subClasses[s].flags
}

// Tier is the quality level of generated loot and monsters, 1 based
type Tier uint8

const (
	MinTier Tier = 1
	MaxTier Tier = 5
)

// Rarity scales rolls and loot quantity
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityBoss
	RaritySuperBoss
)

var rarityNames = []string{"common", "uncommon", "rare", "boss", "superboss"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "unknown"
}

// ParseRarity maps a rarity name onto a Rarity
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if strings.EqualFold(name, s) {
			return Rarity(i), nil
		}
	}
	return 0, rpgerr.Validationf("unknown rarity %q", s)
}

// Style is how a weapon deals damage
type Style uint8

const (
	StyleMelee Style = iota
	StyleRanged
	StyleSpell
)

func (s Style) String() string {
	switch s {
	case StyleMelee:
		return "melee"
	case StyleRanged:
		return "ranged"
	case StyleSpell:
		return "spell"
	default:
		return "unknown"
	}
}

// ParseStyle maps a style name onto a Style
func ParseStyle(s string) (Style, error) {
	for _, style := range []Style{StyleMelee, StyleRanged, StyleSpell} {
		if strings.EqualFold(style.String(), s) {
			return style, nil
		}
	}
	return 0, rpgerr.Validationf("unknown combat style %q", s)
}

// EquipDescriptor holds class specific equip data. It is one of
// WeaponDescriptor, ArmorDescriptor or JewelDescriptor.
type EquipDescriptor interface {
	isEquipDescriptor()
}

// WeaponDescriptor flags are derived from the sub-class when the item is
// generated and never recomputed
type WeaponDescriptor struct {
	TwoHanded     bool `json:"two_handed"`
	Ranged        bool `json:"ranged"`
	DualWieldable bool `json:"dual_wieldable"`
	Spell         bool `json:"spell"`
}

// Style reports the weapon's combat style
func (w WeaponDescriptor) Style() Style {
	switch {
	case w.Spell:
		return StyleSpell
	case w.Ranged:
		return StyleRanged
	default:
		return StyleMelee
	}
}

type ArmorDescriptor struct{}

type JewelDescriptor struct{}

func (WeaponDescriptor) isEquipDescriptor() {}
func (ArmorDescriptor) isEquipDescriptor()  {}
func (JewelDescriptor) isEquipDescriptor()  {}

// DescriptorFor derives the equip descriptor of a sub-class
func DescriptorFor(s SubClass) EquipDescriptor {
	switch s.Class() {
	case ClassWeapon:
		return subClasses[s].weapon
	case ClassArmor:
		return ArmorDescriptor{}
	case ClassJewel:
		return JewelDescriptor{}
	default:
		return nil
	}
}

// WeaponStyle reports the style of a weapon sub-class
func WeaponStyle(s SubClass) (Style, bool) {
	if s.Class() != ClassWeapon {
		return 0, false
	}
	return subClasses[s].weapon.Style(), true
}

// Item is a generated piece of equipment. Whether it is equipped is a
// question for the owner's storage, not the item.
type Item struct {
	ID       storage.ItemID
	OwnerID  string
	Code     string
	Name     string
	Class    Class
	SubClass SubClass
	Tier     Tier
	Rarity   Rarity
	Equip    EquipDescriptor
	Stats    stats.List
	Affixes  []string
}

// SlotFlags satisfies storage.Equippable
func (i *Item) SlotFlags() storage.Flags {
	return RequiredFlags(i.SubClass)
}

// TwoHanded satisfies storage.Equippable
func (i *Item) TwoHanded() bool {
	w, ok := i.Equip.(WeaponDescriptor)
	return ok && w.TwoHanded
}

// Weapon returns the weapon descriptor when the item is a weapon
func (i *Item) Weapon() (WeaponDescriptor, bool) {
	w, ok := i.Equip.(WeaponDescriptor)
	return w, ok
}

// Clone returns a deep copy
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.Stats = i.Stats.Clone()
	if i.Affixes != nil {
		out.Affixes = append([]string(nil), i.Affixes...)
	}
	return &out
}

// Equippables indexes items for storage moves
func Equippables(list []*Item) map[storage.ItemID]storage.Equippable {
	out := make(map[storage.ItemID]storage.Equippable, len(list))
	for _, it := range list {
		out[it.ID] = it
	}
	return out
}

// StatsOf sums the stats of the given items
func StatsOf(list []*Item) stats.List {
	var out stats.List
	for _, it := range list {
		out = append(out, it.Stats...)
	}
	return stats.Reduce(out)
}
