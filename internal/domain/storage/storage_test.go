package storage_test

import (
	"testing"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItem struct {
	flags     storage.Flags
	twoHanded bool
}

func (f fakeItem) SlotFlags() storage.Flags { return f.flags }
func (f fakeItem) TwoHanded() bool          { return f.twoHanded }

var (
	sword     = fakeItem{flags: storage.FlagPrimaryArm | storage.FlagSecondaryArm}
	greataxe  = fakeItem{flags: storage.FlagPrimaryArm, twoHanded: true}
	shield    = fakeItem{flags: storage.FlagSecondaryArm}
	helmet    = fakeItem{flags: storage.FlagHead}
	ring      = fakeItem{flags: storage.FlagRing}
	equipment = func(slot int) storage.Location { return storage.Location{Node: storage.NodeEquipment, Slot: slot} }
	bag       = func(slot int) storage.Location { return storage.Location{Node: storage.NodeInventory, Slot: slot} }
)

func TestNew_NodesByOwner(t *testing.T) {
	player := storage.ForPlayer()
	monster := storage.ForMonster()

	assert.True(t, player.IsNodeValid(storage.NodeEquipment))
	assert.True(t, player.IsNodeValid(storage.NodeInventory))
	assert.Len(t, player[storage.NodeEquipment], storage.Equipment.Capacity)
	assert.Len(t, player[storage.NodeInventory], storage.Inventory.Capacity)

	assert.True(t, monster.IsNodeValid(storage.NodeEquipment))
	assert.False(t, monster.IsNodeValid(storage.NodeInventory))
	assert.Empty(t, monster.Items())
}

func TestSlotValidity(t *testing.T) {
	s := storage.ForMonster()

	tests := []struct {
		name string
		node storage.NodeID
		slot int
		want bool
	}{
		{name: "first slot", node: storage.NodeEquipment, slot: 0, want: true},
		{name: "last slot", node: storage.NodeEquipment, slot: storage.Equipment.Capacity - 1, want: true},
		{name: "capacity is out of range", node: storage.NodeEquipment, slot: storage.Equipment.Capacity, want: false},
		{name: "negative", node: storage.NodeEquipment, slot: -1, want: false},
		{name: "missing node", node: storage.NodeInventory, slot: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsSlotValid(tt.node, tt.slot))
		})
	}
}

func TestGetSet(t *testing.T) {
	s := storage.ForPlayer()

	require.True(t, s.Set(storage.NodeInventory, 3, 42))
	assert.Equal(t, storage.ItemID(42), s.Get(storage.NodeInventory, 3))
	assert.True(t, s.IsSlotOccupied(storage.NodeInventory, 3))

	assert.False(t, s.Set(storage.NodeInventory, 99, 7))
	assert.Equal(t, storage.Empty, s.Get(storage.NodeInventory, 99), "invalid slots read as empty")
	assert.False(t, s.IsSlotOccupied(storage.NodeInventory, 99))

	loc, ok := s.Find(42)
	require.True(t, ok)
	assert.Equal(t, bag(3), loc)
	assert.False(t, s.IsEquipped(42))

	_, ok = s.Find(storage.Empty)
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	s := storage.ForPlayer()
	s.Set(storage.NodeInventory, 0, 5)

	c := s.Clone()
	c.Set(storage.NodeInventory, 0, 6)

	assert.Equal(t, storage.ItemID(5), s.Get(storage.NodeInventory, 0))
	assert.Equal(t, storage.ItemID(6), c.Get(storage.NodeInventory, 0))
}

func TestMove_EquipAndUnequip(t *testing.T) {
	s, _, err := storage.Stash(storage.ForPlayer(), storage.NodeInventory, 1)
	require.NoError(t, err)
	items := map[storage.ItemID]storage.Equippable{1: helmet}

	equipped, err := storage.Move(s, items, 1, equipment(storage.SlotHead), storage.TwoHandedExclusive)
	require.NoError(t, err)
	assert.True(t, equipped.IsEquipped(1))
	assert.Equal(t, storage.Empty, equipped.Get(storage.NodeInventory, 0))
	assert.Equal(t, storage.ItemID(1), equipped.Get(storage.NodeEquipment, storage.SlotHead))
	assert.Equal(t, []storage.ItemID{1}, equipped.Equipped())

	// original untouched
	assert.Equal(t, storage.ItemID(1), s.Get(storage.NodeInventory, 0))

	back, err := storage.Move(equipped, items, 1, bag(5), storage.TwoHandedExclusive)
	require.NoError(t, err)
	assert.False(t, back.IsEquipped(1))
	assert.Equal(t, storage.ItemID(1), back.Get(storage.NodeInventory, 5))
}

func TestMove_Rejections(t *testing.T) {
	base := storage.ForPlayer()
	base.Set(storage.NodeInventory, 0, 1)
	base.Set(storage.NodeInventory, 1, 2)
	base.Set(storage.NodeEquipment, storage.SlotRingLeft, 3)
	items := map[storage.ItemID]storage.Equippable{1: helmet, 2: ring, 3: ring}

	tests := []struct {
		name string
		id   storage.ItemID
		to   storage.Location
	}{
		{name: "unknown item", id: 9, to: bag(4)},
		{name: "item not stored", id: 4, to: bag(4)},
		{name: "incompatible slot", id: 1, to: equipment(storage.SlotFeet)},
		{name: "occupied destination", id: 2, to: equipment(storage.SlotRingLeft)},
		{name: "out of range", id: 1, to: bag(storage.Inventory.Capacity)},
		{name: "same slot", id: 1, to: bag(0)},
	}
	items[4] = ring

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := base.Clone()

			got, err := storage.Move(base, items, tt.id, tt.to, storage.TwoHandedExclusive)

			assert.Nil(t, got)
			assert.True(t, rpgerr.IsValidation(err), "got %v", err)
			assert.Equal(t, before, base)
		})
	}
}

func TestMove_SecondRingFitsOtherHand(t *testing.T) {
	s := storage.ForPlayer()
	s.Set(storage.NodeEquipment, storage.SlotRingLeft, 3)
	s.Set(storage.NodeInventory, 0, 2)
	items := map[storage.ItemID]storage.Equippable{2: ring, 3: ring}

	got, err := storage.Move(s, items, 2, equipment(storage.SlotRingRight), storage.TwoHandedExclusive)

	require.NoError(t, err)
	assert.Equal(t, []storage.ItemID{3, 2}, got.Equipped())
}

func TestMove_TwoHandedPolicy(t *testing.T) {
	items := map[storage.ItemID]storage.Equippable{1: greataxe, 2: shield, 3: sword}

	t.Run("two-handed blocks secondary", func(t *testing.T) {
		s := storage.ForPlayer()
		s.Set(storage.NodeEquipment, storage.SlotPrimaryArm, 1)
		s.Set(storage.NodeInventory, 0, 2)

		_, err := storage.Move(s, items, 2, equipment(storage.SlotSecondaryArm), storage.TwoHandedExclusive)
		assert.True(t, rpgerr.IsValidation(err))

		got, err := storage.Move(s, items, 2, equipment(storage.SlotSecondaryArm), storage.TwoHandedPermissive)
		require.NoError(t, err)
		assert.True(t, got.IsEquipped(2))
	})

	t.Run("occupied secondary blocks two-handed", func(t *testing.T) {
		s := storage.ForPlayer()
		s.Set(storage.NodeEquipment, storage.SlotSecondaryArm, 2)
		s.Set(storage.NodeInventory, 0, 1)

		_, err := storage.Move(s, items, 1, equipment(storage.SlotPrimaryArm), storage.TwoHandedExclusive)
		assert.True(t, rpgerr.IsValidation(err))
	})

	t.Run("one-handed leaves secondary open", func(t *testing.T) {
		s := storage.ForPlayer()
		s.Set(storage.NodeEquipment, storage.SlotPrimaryArm, 3)
		s.Set(storage.NodeInventory, 0, 2)

		got, err := storage.Move(s, items, 2, equipment(storage.SlotSecondaryArm), storage.TwoHandedExclusive)
		require.NoError(t, err)
		assert.Equal(t, []storage.ItemID{3, 2}, got.Equipped())
	})

	t.Run("two-handed cannot sit in secondary", func(t *testing.T) {
		s := storage.ForPlayer()
		s.Set(storage.NodeInventory, 0, 1)

		_, err := storage.Move(s, items, 1, equipment(storage.SlotSecondaryArm), storage.TwoHandedPermissive)
		assert.True(t, rpgerr.IsValidation(err))
	})
}

func TestStashAndRemove(t *testing.T) {
	s := storage.ForPlayer()

	s, loc, err := storage.Stash(s, storage.NodeInventory, 10)
	require.NoError(t, err)
	assert.Equal(t, bag(0), loc)

	s, loc, err = storage.Stash(s, storage.NodeInventory, 11)
	require.NoError(t, err)
	assert.Equal(t, bag(1), loc)

	_, _, err = storage.Stash(s, storage.NodeInventory, 10)
	assert.True(t, rpgerr.IsInvariant(err))

	_, _, err = storage.Stash(storage.ForMonster(), storage.NodeInventory, 12)
	assert.True(t, rpgerr.IsValidation(err))

	s, err = storage.Remove(s, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []storage.ItemID{11}, s.Items())

	_, err = storage.Remove(s, 10)
	assert.True(t, rpgerr.IsValidation(err))
}

func TestStash_Full(t *testing.T) {
	s := storage.ForPlayer()
	for i := 0; i < storage.Inventory.Capacity; i++ {
		var err error
		s, _, err = storage.Stash(s, storage.NodeInventory, storage.ItemID(i+1))
		require.NoError(t, err)
	}

	_, _, err := storage.Stash(s, storage.NodeInventory, 999)
	assert.True(t, rpgerr.IsValidation(err))
}

func TestParseTwoHandedPolicy(t *testing.T) {
	p, err := storage.ParseTwoHandedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, storage.TwoHandedExclusive, p)

	p, err = storage.ParseTwoHandedPolicy("Permissive")
	require.NoError(t, err)
	assert.Equal(t, storage.TwoHandedPermissive, p)

	_, err = storage.ParseTwoHandedPolicy("sometimes")
	assert.True(t, rpgerr.IsValidation(err))
}

func TestPlace_NewItemIntoEquipment(t *testing.T) {
	s := storage.ForMonster()
	known := map[storage.ItemID]storage.Equippable{1: greataxe, 2: shield, 3: helmet}

	out, err := storage.Place(s, known, 1, equipment(storage.SlotPrimaryArm), storage.TwoHandedExclusive)
	require.NoError(t, err)
	assert.True(t, out.IsEquipped(1))
	assert.Empty(t, s.Items(), "input untouched")

	_, err = storage.Place(out, known, 2, equipment(storage.SlotSecondaryArm), storage.TwoHandedExclusive)
	assert.True(t, rpgerr.IsValidation(err))

	_, err = storage.Place(out, known, 3, equipment(storage.SlotFeet), storage.TwoHandedExclusive)
	assert.True(t, rpgerr.IsValidation(err))

	_, err = storage.Place(out, known, 1, equipment(storage.SlotHead), storage.TwoHandedExclusive)
	assert.True(t, rpgerr.IsInvariant(err))

	_, err = storage.Place(out, known, 9, equipment(storage.SlotHead), storage.TwoHandedExclusive)
	assert.True(t, rpgerr.IsValidation(err))
}

func TestFitSlot(t *testing.T) {
	s := storage.ForMonster()

	slot, ok := storage.FitSlot(s, ring.flags)
	require.True(t, ok)
	assert.Equal(t, storage.SlotRingLeft, slot)

	s.Set(storage.NodeEquipment, storage.SlotRingLeft, 5)
	slot, ok = storage.FitSlot(s, ring.flags)
	require.True(t, ok)
	assert.Equal(t, storage.SlotRingRight, slot)

	s.Set(storage.NodeEquipment, storage.SlotRingRight, 6)
	_, ok = storage.FitSlot(s, ring.flags)
	assert.False(t, ok)

	slot, ok = storage.FitSlot(s, sword.flags)
	require.True(t, ok)
	assert.Equal(t, storage.SlotPrimaryArm, slot)
}
