package storage

import (
	"strings"

	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// ItemID identifies an item record. 0 marks an empty slot.
type ItemID uint64

// Empty is the value of an unoccupied slot
const Empty ItemID = 0

// Location addresses a single slot
type Location struct {
	Node NodeID `json:"node"`
	Slot int    `json:"slot"`
}

// Storage maps each node a unit owns to its slot buffer. Slot occupancy is
// the only record of where an item sits, including whether it is equipped.
type Storage map[NodeID][]ItemID

// New creates zero-filled buffers for the given nodes
func New(nodes ...NodeID) Storage {
	s := make(Storage, len(nodes))
	for _, id := range nodes {
		node, ok := Nodes[id]
		if !ok {
			continue
		}
		s[id] = make([]ItemID, node.Capacity)
	}
	return s
}

// ForPlayer returns equipment and inventory nodes
func ForPlayer() Storage {
	return New(NodeEquipment, NodeInventory)
}

// ForMonster returns an equipment node only
func ForMonster() Storage {
	return New(NodeEquipment)
}

// Clone deep-copies the storage
func (s Storage) Clone() Storage {
	out := make(Storage, len(s))
	for id, buf := range s {
		cp := make([]ItemID, len(buf))
		copy(cp, buf)
		out[id] = cp
	}
	return out
}

// IsNodeValid reports whether the unit owns the node
func (s Storage) IsNodeValid(node NodeID) bool {
	_, ok := s[node]
	return ok
}

// IsSlotValid bounds-checks slot against the node's capacity
func (s Storage) IsSlotValid(node NodeID, slot int) bool {
	buf, ok := s[node]
	if !ok {
		return false
	}
	return slot >= 0 && slot < len(buf)
}

// IsSlotOccupied reports whether a valid slot holds an item
func (s Storage) IsSlotOccupied(node NodeID, slot int) bool {
	return s.Get(node, slot) != Empty
}

// Get returns the item in the slot, or Empty for empty or invalid slots
func (s Storage) Get(node NodeID, slot int) ItemID {
	if !s.IsSlotValid(node, slot) {
		return Empty
	}
	return s[node][slot]
}

// Set writes id into the slot when it is valid. It mutates s; callers that
// need the original must Clone first.
func (s Storage) Set(node NodeID, slot int, id ItemID) bool {
	if !s.IsSlotValid(node, slot) {
		return false
	}
	s[node][slot] = id
	return true
}

// Find locates an item anywhere in the storage
func (s Storage) Find(id ItemID) (Location, bool) {
	if id == Empty {
		return Location{}, false
	}
	for _, node := range []NodeID{NodeEquipment, NodeInventory} {
		for slot, held := range s[node] {
			if held == id {
				return Location{Node: node, Slot: slot}, true
			}
		}
	}
	return Location{}, false
}

// IsEquipped reports whether the item sits in the equipment node
func (s Storage) IsEquipped(id ItemID) bool {
	loc, ok := s.Find(id)
	return ok && loc.Node == NodeEquipment
}

// Equipped returns the non-empty equipment slots in slot order
func (s Storage) Equipped() []ItemID {
	var out []ItemID
	for _, id := range s[NodeEquipment] {
		if id != Empty {
			out = append(out, id)
		}
	}
	return out
}

// Items returns every stored item id
func (s Storage) Items() []ItemID {
	var out []ItemID
	for _, node := range []NodeID{NodeEquipment, NodeInventory} {
		for _, id := range s[node] {
			if id != Empty {
				out = append(out, id)
			}
		}
	}
	return out
}

// FirstFree returns the lowest empty slot in node
func (s Storage) FirstFree(node NodeID) (int, bool) {
	for slot, id := range s[node] {
		if id == Empty {
			return slot, true
		}
	}
	return 0, false
}

// TwoHandedPolicy decides whether a two-handed weapon locks the secondary arm
type TwoHandedPolicy uint8

const (
	// TwoHandedExclusive blocks the secondary arm while a two-handed weapon
	// is held, and blocks two-handed equips while the secondary arm is used
	TwoHandedExclusive TwoHandedPolicy = iota
	// TwoHandedPermissive only checks slot flags
	TwoHandedPermissive
)

// ParseTwoHandedPolicy maps a config string onto a policy
func ParseTwoHandedPolicy(s string) (TwoHandedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exclusive":
		return TwoHandedExclusive, nil
	case "permissive":
		return TwoHandedPermissive, nil
	default:
		return 0, rpgerr.Validationf("unknown two-handed policy %q", s)
	}
}

// Equippable is what storage needs to know about an item to place it
type Equippable interface {
	SlotFlags() Flags
	TwoHanded() bool
}

// Move relocates an item the storage already holds to an empty destination
// slot. It returns a new Storage and never modifies s; on error s is
// exactly as it was.
func Move(s Storage, items map[ItemID]Equippable, id ItemID, to Location, policy TwoHandedPolicy) (Storage, error) {
	item, ok := items[id]
	if !ok || item == nil {
		return nil, rpgerr.Validationf("item %d is not known to this unit", id).WithMeta("item_id", id)
	}

	from, ok := s.Find(id)
	if !ok {
		return nil, rpgerr.Validationf("item %d is not in storage", id).WithMeta("item_id", id)
	}
	if from == to {
		return nil, rpgerr.Validationf("item %d is already in %s slot %d", id, to.Node, to.Slot)
	}
	if err := checkDestination(s, items, id, item, to, policy); err != nil {
		return nil, err
	}

	out := s.Clone()
	out.Set(from.Node, from.Slot, Empty)
	out.Set(to.Node, to.Slot, id)
	return out, nil
}

// Place puts an item the storage does not hold yet straight into a slot,
// with the same checks as Move
func Place(s Storage, items map[ItemID]Equippable, id ItemID, to Location, policy TwoHandedPolicy) (Storage, error) {
	item, ok := items[id]
	if !ok || item == nil {
		return nil, rpgerr.Validationf("item %d is not known to this unit", id).WithMeta("item_id", id)
	}
	if _, held := s.Find(id); held {
		return nil, rpgerr.Invariantf("item %d is already stored", id)
	}
	if err := checkDestination(s, items, id, item, to, policy); err != nil {
		return nil, err
	}

	out := s.Clone()
	out.Set(to.Node, to.Slot, id)
	return out, nil
}

// FitSlot returns the first empty equipment slot that accepts flags
func FitSlot(s Storage, flags Flags) (int, bool) {
	for slot, id := range s[NodeEquipment] {
		if id == Empty && Equipment.Descriptor(slot).Flags.Intersects(flags) {
			return slot, true
		}
	}
	return 0, false
}

func checkDestination(s Storage, items map[ItemID]Equippable, id ItemID, item Equippable, to Location, policy TwoHandedPolicy) error {
	if !s.IsSlotValid(to.Node, to.Slot) {
		return rpgerr.Validationf("invalid slot %d in %s", to.Slot, to.Node).
			WithMeta("node", to.Node).WithMeta("slot", to.Slot)
	}
	if s.IsSlotOccupied(to.Node, to.Slot) {
		return rpgerr.Validationf("%s slot %d is occupied", to.Node, to.Slot).
			WithMeta("occupant", s.Get(to.Node, to.Slot))
	}

	node := Nodes[to.Node]
	desc := node.Descriptor(to.Slot)
	if !desc.Flags.Intersects(FlagAny) && !desc.Flags.Intersects(item.SlotFlags()) {
		return rpgerr.Validationf("item %d does not fit the %s slot", id, desc.Name).
			WithMeta("slot", desc.Name)
	}

	if to.Node == NodeEquipment && policy == TwoHandedExclusive {
		return checkTwoHanded(s, items, item, to.Slot)
	}
	return nil
}

func checkTwoHanded(s Storage, items map[ItemID]Equippable, item Equippable, slot int) error {
	switch slot {
	case SlotPrimaryArm:
		if item.TwoHanded() && s.IsSlotOccupied(NodeEquipment, SlotSecondaryArm) {
			return rpgerr.Validation("two-handed weapons need the secondary arm free")
		}
	case SlotSecondaryArm:
		held := s.Get(NodeEquipment, SlotPrimaryArm)
		if held == Empty {
			return nil
		}
		primary, ok := items[held]
		if !ok {
			return rpgerr.Invariantf("equipped item %d has no record", held).WithMeta("item_id", held)
		}
		if primary.TwoHanded() {
			return rpgerr.Validation("the secondary arm is blocked by a two-handed weapon")
		}
	}
	return nil
}

// Stash puts a newly acquired item in the first free slot of node
func Stash(s Storage, node NodeID, id ItemID) (Storage, Location, error) {
	if id == Empty {
		return nil, Location{}, rpgerr.Validation("cannot stash an empty item id")
	}
	if _, held := s.Find(id); held {
		return nil, Location{}, rpgerr.Invariantf("item %d is already stored", id)
	}
	if !s.IsNodeValid(node) {
		return nil, Location{}, rpgerr.Validationf("unit has no %s", node)
	}
	slot, ok := s.FirstFree(node)
	if !ok {
		return nil, Location{}, rpgerr.Validationf("%s is full", node)
	}

	out := s.Clone()
	out.Set(node, slot, id)
	return out, Location{Node: node, Slot: slot}, nil
}

// Remove clears an item from wherever it is stored
func Remove(s Storage, id ItemID) (Storage, error) {
	loc, ok := s.Find(id)
	if !ok {
		return nil, rpgerr.Validationf("item %d is not in storage", id).WithMeta("item_id", id)
	}
	out := s.Clone()
	out.Set(loc.Node, loc.Slot, Empty)
	return out, nil
}
