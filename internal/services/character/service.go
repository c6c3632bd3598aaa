package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	itemrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	unitrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/units"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/uuid"
)

// Service defines the character service interface
type Service interface {
	// Create makes a level 1 player with its class starter items equipped
	Create(ctx context.Context, input *CreateInput) (*Sheet, error)

	// Get loads a unit and the items it owns
	Get(ctx context.Context, unitID string) (*Sheet, error)

	// ListByAccount lists the characters of an account
	ListByAccount(ctx context.Context, accountID string) ([]*units.Unit, error)

	// Equip moves an owned item into an equipment slot
	Equip(ctx context.Context, input *EquipInput) (*Sheet, error)

	// Unequip moves an equipped item into the first free inventory slot
	Unequip(ctx context.Context, unitID string, itemID storage.ItemID) (*Sheet, error)

	// Stash puts an owned item that is not stored yet into the inventory
	Stash(ctx context.Context, unitID string, itemID storage.ItemID) (*Sheet, error)

	// Drop removes an item from storage and destroys it
	Drop(ctx context.Context, unitID string, itemID storage.ItemID) (*Sheet, error)

	// AllocateStatPoints spends unspent points on a BASE stat
	AllocateStatPoints(ctx context.Context, input *AllocateInput) (*Sheet, error)

	// GrantExperience adds experience and applies the level-ups it earns
	GrantExperience(ctx context.Context, unitID string, xp int) (*Progress, error)

	// Rest restores a character to full HP
	Rest(ctx context.Context, unitID string) (*Sheet, error)
}

// CreateInput contains the data needed to create a character
type CreateInput struct {
	AccountID string
	Name      string
	Class     string
}

// EquipInput names the item and the equipment slot it goes to
type EquipInput struct {
	UnitID string
	ItemID storage.ItemID
	Slot   int
}

// AllocateInput names the stat by its short name, e.g. "STR"
type AllocateInput struct {
	UnitID string
	Stat   string
	Points int
}

// Sheet is a unit with every item it owns
type Sheet struct {
	Unit  *units.Unit
	Items []*items.Item
}

// Equipped returns the owned items sitting in the equipment node
func (s *Sheet) Equipped() []*items.Item {
	var out []*items.Item
	for _, it := range s.Items {
		if s.Unit.Storage.IsEquipped(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

// Item returns an owned item by id
func (s *Sheet) Item(id storage.ItemID) (*items.Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Progress reports the outcome of an experience grant
type Progress struct {
	Unit         *units.Unit
	LevelsGained int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	UnitRepository  unitrepo.Repository
	ItemRepository  itemrepo.Repository
	Templates       *units.Templates        // Optional
	Resolver        *stats.Resolver         // Optional
	Generator       *items.Generator        // Optional
	UUIDGenerator   uuid.Generator          // Optional
	TwoHandedPolicy storage.TwoHandedPolicy // Optional
	Logger          *slog.Logger            // Optional
}

type service struct {
	units     unitrepo.Repository
	items     itemrepo.Repository
	templates *units.Templates
	resolver  *stats.Resolver
	generator *items.Generator
	uuidGen   uuid.Generator
	twoHanded storage.TwoHandedPolicy
	logger    *slog.Logger
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.UnitRepository == nil {
		panic("unit repository is required")
	}
	if cfg.ItemRepository == nil {
		panic("item repository is required")
	}

	svc := &service{
		units:     cfg.UnitRepository,
		items:     cfg.ItemRepository,
		templates: cfg.Templates,
		resolver:  cfg.Resolver,
		generator: cfg.Generator,
		uuidGen:   cfg.UUIDGenerator,
		twoHanded: cfg.TwoHandedPolicy,
		logger:    cfg.Logger,
	}
	if svc.templates == nil {
		svc.templates = units.DefaultTemplates
	}
	if svc.resolver == nil {
		svc.resolver = stats.DefaultResolver
	}
	if svc.generator == nil {
		svc.generator = items.NewGenerator(items.DefaultCatalog)
	}
	if svc.uuidGen == nil {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// Create makes a new player
func (s *service) Create(ctx context.Context, input *CreateInput) (*Sheet, error) {
	if input == nil {
		return nil, rpgerr.InvalidArgument("input cannot be nil")
	}
	if input.AccountID == "" {
		return nil, rpgerr.InvalidArgument("account ID is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, rpgerr.InvalidArgument("character name is required")
	}

	tmpl, err := s.templates.Class(input.Class)
	if err != nil {
		return nil, err
	}

	u, err := units.NewPlayer(s.templates, s.resolver, s.uuidGen.New(), name, tmpl.Code, input.AccountID)
	if err != nil {
		return nil, err
	}

	starters := make([]*items.Item, 0, len(tmpl.Starter))
	for _, code := range tmpl.Starter {
		it, err := s.generator.Generate(noDraws{}, items.Request{Code: code, Tier: items.MinTier})
		if err != nil {
			return nil, rpgerr.Wrapf(err, "failed to build starter item %s", code)
		}
		if it.ID, err = s.items.NextID(ctx); err != nil {
			return nil, err
		}
		it.OwnerID = u.ID
		starters = append(starters, it)
	}

	known := items.Equippables(starters)
	for _, it := range starters {
		slot, ok := storage.FitSlot(u.Storage, it.SlotFlags())
		if !ok {
			return nil, rpgerr.Invariantf("no slot for starter item %s", it.Code)
		}
		if u.Storage, err = storage.Place(u.Storage, known, it.ID, equipment(slot), s.twoHanded); err != nil {
			return nil, err
		}
	}
	u = units.Heal(units.Recalculate(s.resolver, u, starters))

	if err := s.items.SaveAll(ctx, starters); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save starter items")
	}
	if err := s.units.Save(ctx, u); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save character")
	}

	s.logger.Info("character created",
		"unit_id", u.ID,
		"account_id", input.AccountID,
		"class", tmpl.Code)
	return &Sheet{Unit: u, Items: starters}, nil
}

// Get loads a character sheet
func (s *service) Get(ctx context.Context, unitID string) (*Sheet, error) {
	u, err := s.units.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}
	owned, err := s.items.ListByOwner(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return &Sheet{Unit: u, Items: owned}, nil
}

// ListByAccount lists the characters of an account
func (s *service) ListByAccount(ctx context.Context, accountID string) ([]*units.Unit, error) {
	return s.units.ListByAccount(ctx, accountID)
}

// Equip moves an item into an equipment slot
func (s *service) Equip(ctx context.Context, input *EquipInput) (*Sheet, error) {
	if input == nil {
		return nil, rpgerr.InvalidArgument("input cannot be nil")
	}
	return s.rearrange(ctx, input.UnitID, func(sheet *Sheet) (storage.Storage, error) {
		return storage.Move(sheet.Unit.Storage, items.Equippables(sheet.Items), input.ItemID, equipment(input.Slot), s.twoHanded)
	})
}

// Unequip moves an equipped item to the inventory
func (s *service) Unequip(ctx context.Context, unitID string, itemID storage.ItemID) (*Sheet, error) {
	return s.rearrange(ctx, unitID, func(sheet *Sheet) (storage.Storage, error) {
		if !sheet.Unit.Storage.IsEquipped(itemID) {
			return nil, rpgerr.Validationf("item %d is not equipped", itemID).WithMeta("item_id", uint64(itemID))
		}
		slot, ok := sheet.Unit.Storage.FirstFree(storage.NodeInventory)
		if !ok {
			return nil, rpgerr.Validation("inventory is full")
		}
		return storage.Move(sheet.Unit.Storage, items.Equippables(sheet.Items), itemID, storage.Location{Node: storage.NodeInventory, Slot: slot}, s.twoHanded)
	})
}

// Stash puts a newly owned item into the inventory
func (s *service) Stash(ctx context.Context, unitID string, itemID storage.ItemID) (*Sheet, error) {
	return s.rearrange(ctx, unitID, func(sheet *Sheet) (storage.Storage, error) {
		if _, ok := sheet.Item(itemID); !ok {
			return nil, rpgerr.Validationf("item %d does not belong to %s", itemID, unitID).
				WithMeta("item_id", uint64(itemID))
		}
		out, _, err := storage.Stash(sheet.Unit.Storage, storage.NodeInventory, itemID)
		return out, err
	})
}

// Drop removes an item from storage and deletes it. When the item cannot be
// deleted the unit is saved back as it was.
func (s *service) Drop(ctx context.Context, unitID string, itemID storage.ItemID) (*Sheet, error) {
	var previous *units.Unit
	sheet, err := s.rearrange(ctx, unitID, func(sheet *Sheet) (storage.Storage, error) {
		previous = sheet.Unit
		return storage.Remove(sheet.Unit.Storage, itemID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		if restoreErr := s.units.Save(ctx, previous); restoreErr != nil {
			s.logger.Error("dropped item was not deleted and the unit was not restored",
				"unit_id", unitID,
				"item_id", uint64(itemID),
				"error", restoreErr)
		}
		return nil, rpgerr.Wrapf(err, "failed to drop item %d", itemID)
	}

	kept := sheet.Items[:0]
	for _, it := range sheet.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	sheet.Items = kept
	return sheet, nil
}

// rearrange applies a storage change, recalculates stats from the new
// equipment and saves the unit. A failed change saves nothing.
func (s *service) rearrange(ctx context.Context, unitID string, change func(*Sheet) (storage.Storage, error)) (*Sheet, error) {
	sheet, err := s.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if _, ok := sheet.Unit.Player(); !ok {
		return nil, rpgerr.Validationf("unit %s is not a character", unitID)
	}

	next, err := change(sheet)
	if err != nil {
		return nil, err
	}

	u := sheet.Unit.Clone()
	u.Storage = next
	sheet.Unit = u
	sheet.Unit = units.Recalculate(s.resolver, sheet.Unit, sheet.Equipped())

	if err := s.units.Save(ctx, sheet.Unit); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save character")
	}
	return sheet, nil
}

// AllocateStatPoints spends stat points
func (s *service) AllocateStatPoints(ctx context.Context, input *AllocateInput) (*Sheet, error) {
	if input == nil {
		return nil, rpgerr.InvalidArgument("input cannot be nil")
	}
	def, err := s.resolver.Catalog().LookupShort(input.Stat)
	if err != nil {
		return nil, err
	}

	sheet, err := s.Get(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	u, err := units.AllocateStatPoints(s.resolver, sheet.Unit, sheet.Equipped(), def.ID, input.Points)
	if err != nil {
		return nil, err
	}
	if err := s.units.Save(ctx, u); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save character")
	}

	sheet.Unit = u
	return sheet, nil
}

// GrantExperience adds experience to a character
func (s *service) GrantExperience(ctx context.Context, unitID string, xp int) (*Progress, error) {
	sheet, err := s.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}
	u, gained, err := units.GrantExperience(s.resolver, sheet.Unit, sheet.Equipped(), xp)
	if err != nil {
		return nil, err
	}
	if err := s.units.Save(ctx, u); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save character")
	}

	if gained > 0 {
		s.logger.Info("character levelled up",
			"unit_id", unitID,
			"level", u.Level,
			"gained", gained)
	}
	return &Progress{Unit: u, LevelsGained: gained}, nil
}

// Rest heals a character
func (s *service) Rest(ctx context.Context, unitID string) (*Sheet, error) {
	sheet, err := s.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if _, ok := sheet.Unit.Player(); !ok {
		return nil, rpgerr.Validationf("unit %s is not a character", unitID)
	}

	sheet.Unit = units.Heal(units.Recalculate(s.resolver, sheet.Unit, sheet.Equipped()))
	if err := s.units.Save(ctx, sheet.Unit); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save character")
	}
	return sheet, nil
}

func equipment(slot int) storage.Location {
	return storage.Location{Node: storage.NodeEquipment, Slot: slot}
}

// noDraws backs starter item generation, which never rolls
type noDraws struct{}

func (noDraws) Intn(int) (int, error) {
	return 0, rpgerr.Invariantf("starter items do not draw")
}

func (noDraws) Range(int, int) (int, error) {
	return 0, rpgerr.Invariantf("starter items do not draw")
}

func (noDraws) Roll(int, int, int) (*dice.RollResult, error) {
	return nil, rpgerr.Invariantf("starter items do not draw")
}
