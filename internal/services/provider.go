package services

import (
	"log/slog"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/combat"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	itemrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/rngstates"
	unitrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/units"
	characterService "github.com/KirkDiggler/dungeon-crawler-bot/internal/services/character"
	encounterService "github.com/KirkDiggler/dungeon-crawler-bot/internal/services/encounter"
	lootService "github.com/KirkDiggler/dungeon-crawler-bot/internal/services/loot"
	monsterService "github.com/KirkDiggler/dungeon-crawler-bot/internal/services/monster"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	LootService      lootService.Service
	MonsterService   monsterService.Service
	EncounterService encounterService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	UnitRepository  unitrepo.Repository
	ItemRepository  itemrepo.Repository
	RNGRepository   rngstates.Repository
	UUIDGenerator   uuid.Generator
	TwoHandedPolicy storage.TwoHandedPolicy
	LootPolicy      monsterService.LootPolicy
	Formulas        map[items.Style]combat.Formula
	Logger          *slog.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	unitRepo := cfg.UnitRepository
	if unitRepo == nil {
		unitRepo = unitrepo.NewInMemoryRepository()
	}

	itemRepo := cfg.ItemRepository
	if itemRepo == nil {
		itemRepo = itemrepo.NewInMemoryRepository()
	}

	rngRepo := cfg.RNGRepository
	if rngRepo == nil {
		rngRepo = rngstates.NewInMemoryRepository()
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	generator := items.NewGenerator(items.DefaultCatalog)

	charService := characterService.NewService(&characterService.ServiceConfig{
		UnitRepository:  unitRepo,
		ItemRepository:  itemRepo,
		Generator:       generator,
		UUIDGenerator:   uuidGen,
		TwoHandedPolicy: cfg.TwoHandedPolicy,
		Logger:          logger.With("service", "character"),
	})

	loot := lootService.NewService(&lootService.ServiceConfig{
		Generator:      generator,
		ItemRepository: itemRepo,
		RNGRepository:  rngRepo,
		UUIDGenerator:  uuidGen,
		Logger:         logger.With("service", "loot"),
	})

	monsters := monsterService.NewService(&monsterService.ServiceConfig{
		LootService:     loot,
		ItemRepository:  itemRepo,
		UnitRepository:  unitRepo,
		Generator:       generator,
		UUIDGenerator:   uuidGen,
		LootPolicy:      cfg.LootPolicy,
		TwoHandedPolicy: cfg.TwoHandedPolicy,
		Logger:          logger.With("service", "monster"),
	})

	encounters := encounterService.NewService(&encounterService.ServiceConfig{
		UnitRepository:   unitRepo,
		ItemRepository:   itemRepo,
		CharacterService: charService,
		MonsterService:   monsters,
		Formulas:         cfg.Formulas,
		Logger:           logger.With("service", "encounter"),
	})

	return &Provider{
		CharacterService: charService,
		LootService:      loot,
		MonsterService:   monsters,
		EncounterService: encounters,
	}
}
