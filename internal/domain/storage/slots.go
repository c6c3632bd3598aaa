package storage

// NodeID identifies a storage node on a unit. Persisted as-is.
type NodeID uint8

const (
	NodeEquipment NodeID = 1
	NodeInventory NodeID = 2
)

func (n NodeID) String() string {
	switch n {
	case NodeEquipment:
		return "equipment"
	case NodeInventory:
		return "inventory"
	default:
		return "unknown"
	}
}

// Flags describe what a slot accepts and what an item needs
type Flags uint16

const (
	FlagHead Flags = 1 << iota
	FlagNeck
	FlagBody
	FlagPrimaryArm
	FlagSecondaryArm
	FlagHands
	FlagRing
	FlagFeet
	// FlagAny marks bag slots that take anything
	FlagAny
)

// Intersects reports whether any flag is shared
func (f Flags) Intersects(other Flags) bool {
	return f&other != 0
}

// Equipment slot indices
const (
	SlotHead         = 0
	SlotNeck         = 1
	SlotBody         = 2
	SlotPrimaryArm   = 3
	SlotSecondaryArm = 4
	SlotHands        = 5
	SlotRingLeft     = 6
	SlotRingRight    = 7
	SlotFeet         = 8
)

// SlotDescriptor names a slot and what it accepts
type SlotDescriptor struct {
	ID    int
	Name  string
	Flags Flags
}

// Node describes the topology of one storage node
type Node struct {
	ID       NodeID
	Name     string
	Capacity int
	Slots    []SlotDescriptor
}

// Descriptor returns the slot descriptor at index. Nodes may declare fewer
// descriptors than their capacity; undeclared indices accept anything.
func (n Node) Descriptor(index int) SlotDescriptor {
	if index >= 0 && index < len(n.Slots) {
		return n.Slots[index]
	}
	return SlotDescriptor{ID: index, Name: n.Name, Flags: FlagAny}
}

// Equipment is the paperdoll node
var Equipment = Node{
	ID:       NodeEquipment,
	Name:     "equipment",
	Capacity: 9,
	Slots: []SlotDescriptor{
		{ID: SlotHead, Name: "head", Flags: FlagHead},
		{ID: SlotNeck, Name: "neck", Flags: FlagNeck},
		{ID: SlotBody, Name: "body", Flags: FlagBody},
		{ID: SlotPrimaryArm, Name: "primary arm", Flags: FlagPrimaryArm},
		{ID: SlotSecondaryArm, Name: "secondary arm", Flags: FlagSecondaryArm},
		{ID: SlotHands, Name: "hands", Flags: FlagHands},
		{ID: SlotRingLeft, Name: "left ring", Flags: FlagRing},
		{ID: SlotRingRight, Name: "right ring", Flags: FlagRing},
		{ID: SlotFeet, Name: "feet", Flags: FlagFeet},
	},
}

// Inventory is the bag node; it declares no descriptors
var Inventory = Node{
	ID:       NodeInventory,
	Name:     "inventory",
	Capacity: 24,
}

// Nodes indexes every known node
var Nodes = map[NodeID]Node{
	NodeEquipment: Equipment,
	NodeInventory: Inventory,
}
