package monster

//go:generate mockgen -destination=mock/mock_service.go -package=mockmonster -source=service.go

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	itemrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	unitrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/units"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/loot"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/uuid"
)

// Service defines the monster service interface
type Service interface {
	// Generate builds, equips and persists a monster
	Generate(ctx context.Context, input *GenerateInput) (*Result, error)
}

// GenerateInput describes the monster to spawn
type GenerateInput struct {
	Guild   string
	Species string
	Tier    items.Tier
	Rarity  items.Rarity
}

// Result is the spawned monster and everything it carries
type Result struct {
	Unit  *units.Unit
	Items []*items.Item
}

// LootPolicy tunes how the armor and jewelry budget is spent
type LootPolicy struct {
	// AllowDuplicateCategories lets a category be picked again while it
	// still has a free slot, i.e. a second ring
	AllowDuplicateCategories bool
}

// dualWieldOdds is the 1-in-n chance an eligible monster carries a second weapon
const dualWieldOdds = 4

// fillCategories are drawn from once both arms are settled
var fillCategories = []items.SubClass{
	items.SubClassBoots,
	items.SubClassGloves,
	items.SubClassHelmet,
	items.SubClassBody,
	items.SubClassRing,
	items.SubClassAmulet,
}

// offHand is the secondary arm armor that matches a fighting style
var offHand = map[items.Style]items.SubClass{
	items.StyleMelee:  items.SubClassShield,
	items.StyleRanged: items.SubClassQuiver,
	items.StyleSpell:  items.SubClassSpellbook,
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	LootService     loot.Service
	ItemRepository  itemrepo.Repository
	UnitRepository  unitrepo.Repository
	Templates       *units.Templates        // Optional
	Resolver        *stats.Resolver         // Optional
	Generator       *items.Generator        // Optional
	UUIDGenerator   uuid.Generator          // Optional
	LootPolicy      LootPolicy              // Optional
	TwoHandedPolicy storage.TwoHandedPolicy // Optional
	Logger          *slog.Logger            // Optional
}

type service struct {
	loot      loot.Service
	items     itemrepo.Repository
	units     unitrepo.Repository
	templates *units.Templates
	resolver  *stats.Resolver
	generator *items.Generator
	uuidGen   uuid.Generator
	policy    LootPolicy
	twoHanded storage.TwoHandedPolicy
	logger    *slog.Logger
}

// NewService creates a new monster service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.LootService == nil {
		panic("loot service is required")
	}
	if cfg.ItemRepository == nil {
		panic("item repository is required")
	}
	if cfg.UnitRepository == nil {
		panic("unit repository is required")
	}

	svc := &service{
		loot:      cfg.LootService,
		items:     cfg.ItemRepository,
		units:     cfg.UnitRepository,
		templates: cfg.Templates,
		resolver:  cfg.Resolver,
		generator: cfg.Generator,
		uuidGen:   cfg.UUIDGenerator,
		policy:    cfg.LootPolicy,
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

// planned is a generated item and the slot it is meant for. A negative
// slot means the first free slot that fits.
type planned struct {
	item *items.Item
	slot int
}

// Generate rolls the monster and its loot in the guild's monster context,
// then equips and persists everything. Any failure aborts the whole spawn.
func (s *service) Generate(ctx context.Context, input *GenerateInput) (*Result, error) {
	if input == nil {
		return nil, rpgerr.InvalidArgument("input cannot be nil")
	}

	species, err := s.templates.Species(input.Species)
	if err != nil {
		return nil, err
	}
	lootRange, err := species.LootCount(input.Rarity)
	if err != nil {
		return nil, err
	}

	var (
		monster *units.Unit
		plan    []planned
	)
	err = s.loot.Draw(ctx, input.Guild, dice.ContextMonster, func(roller dice.Roller) error {
		level, err := units.RollLevel(roller, input.Tier)
		if err != nil {
			return err
		}
		monster, err = units.NewMonster(s.templates, s.resolver, s.uuidGen.New(), species.Code, input.Tier, input.Rarity, level)
		if err != nil {
			return err
		}

		count, err := roller.Range(lootRange.Min, lootRange.Max)
		if err != nil {
			return err
		}
		plan, err = s.rollLoot(roller, species, input, count)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.equipAndSave(ctx, monster, plan)
}

func (s *service) rollLoot(roller dice.Roller, species units.SpeciesTemplate, input *GenerateInput, budget int) ([]planned, error) {
	var plan []planned
	if budget <= 0 {
		return plan, nil
	}

	catalog := s.generator.Catalog()
	generate := func(codes []string, slot int) (*items.Item, error) {
		code, err := pick(roller, codes)
		if err != nil || code == "" {
			return nil, err
		}
		it, err := s.generator.Generate(roller, items.Request{Code: code, Tier: input.Tier, Rarity: input.Rarity})
		if err != nil {
			return nil, err
		}
		plan = append(plan, planned{item: it, slot: slot})
		return it, nil
	}

	weapons := catalog.Codes(func(t items.Type) bool {
		style, ok := items.WeaponStyle(t.SubClass)
		return ok && !t.Starter && species.CanUse(style)
	})
	if len(weapons) == 0 {
		return nil, rpgerr.Lookupf("no weapons fit %s", species.Code).WithMeta("species", species.Code)
	}

	primary, err := generate(weapons, storage.SlotPrimaryArm)
	if err != nil {
		return nil, err
	}
	w, _ := primary.Weapon()

	if len(plan) < budget && !w.TwoHanded {
		dual := false
		if species.DualWield && w.DualWieldable {
			roll, err := roller.Intn(dualWieldOdds)
			if err != nil {
				return nil, err
			}
			dual = roll == 0
		}

		if dual {
			_, err = generate(catalog.Codes(func(t items.Type) bool {
				sw, ok := items.DescriptorFor(t.SubClass).(items.WeaponDescriptor)
				return ok && !t.Starter && sw.DualWieldable && species.CanUse(sw.Style())
			}), storage.SlotSecondaryArm)
		} else {
			_, err = generate(catalog.BySubClass(offHand[w.Style()]), storage.SlotSecondaryArm)
		}
		if err != nil {
			return nil, err
		}
	}

	open := make(map[items.SubClass]int, len(fillCategories))
	for _, sub := range fillCategories {
		if len(catalog.BySubClass(sub)) == 0 {
			continue
		}
		open[sub] = 1
		if s.policy.AllowDuplicateCategories {
			open[sub] = slotsFor(sub)
		}
	}

	for len(plan) < budget {
		var candidates []items.SubClass
		for _, sub := range fillCategories {
			if open[sub] > 0 {
				candidates = append(candidates, sub)
			}
		}
		if len(candidates) == 0 {
			s.logger.Debug("loot budget exceeds free slots",
				"species", species.Code,
				"budget", budget,
				"rolled", len(plan))
			break
		}

		i, err := roller.Intn(len(candidates))
		if err != nil {
			return nil, err
		}
		sub := candidates[i]
		open[sub]--

		if _, err := generate(catalog.BySubClass(sub), -1); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// pick draws one code; an empty list draws nothing
func pick(roller dice.Roller, codes []string) (string, error) {
	if len(codes) == 0 {
		return "", nil
	}
	i, err := roller.Intn(len(codes))
	if err != nil {
		return "", err
	}
	return codes[i], nil
}

// slotsFor counts the equipment slots a sub-class fits
func slotsFor(sub items.SubClass) int {
	n := 0
	for i := 0; i < storage.Equipment.Capacity; i++ {
		if storage.Equipment.Descriptor(i).Flags.Intersects(items.RequiredFlags(sub)) {
			n++
		}
	}
	return n
}

func (s *service) equipAndSave(ctx context.Context, monster *units.Unit, plan []planned) (*Result, error) {
	carried := make([]*items.Item, 0, len(plan))
	for _, p := range plan {
		id, err := s.items.NextID(ctx)
		if err != nil {
			return nil, err
		}
		p.item.ID = id
		p.item.OwnerID = monster.ID
		carried = append(carried, p.item)
	}

	known := items.Equippables(carried)
	for _, p := range plan {
		slot := p.slot
		if slot < 0 {
			var ok bool
			if slot, ok = storage.FitSlot(monster.Storage, p.item.SlotFlags()); !ok {
				return nil, rpgerr.Invariantf("no free slot for %s on %s", p.item.Code, monster.ID)
			}
		}

		placed, err := storage.Place(monster.Storage, known, p.item.ID, storage.Location{Node: storage.NodeEquipment, Slot: slot}, s.twoHanded)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeInvariant, "generated loot does not fit").
				WithMeta("code", p.item.Code)
		}
		monster.Storage = placed
	}

	monster = units.Heal(units.Recalculate(s.resolver, monster, carried))

	if err := s.items.SaveAll(ctx, carried); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save monster loot")
	}
	if err := s.units.Save(ctx, monster); err != nil {
		return nil, rpgerr.Wrap(err, "failed to save monster")
	}

	desc, _ := monster.Monster()
	s.logger.Info("monster spawned",
		"unit_id", monster.ID,
		"species", desc.Species,
		"tier", int(desc.Tier),
		"rarity", desc.Rarity.String(),
		"level", monster.Level,
		"items", len(carried))

	return &Result{Unit: monster, Items: carried}, nil
}
