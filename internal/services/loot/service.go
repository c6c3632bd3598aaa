package loot

//go:generate mockgen -destination=mock/mock_service.go -package=mockloot -source=service.go

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	itemrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/rngstates"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/uuid"
)

// Service generates loot from a guild's persisted rng contexts
type Service interface {
	// Generate rolls an item in the guild's item context, gives it to the
	// owner and persists it
	Generate(ctx context.Context, input *GenerateInput) (*items.Item, error)

	// Draw runs fn against the guild's named context and persists the
	// advanced counter when fn succeeds. Calls for the same guild and
	// context are serialized.
	Draw(ctx context.Context, guild string, name dice.ContextName, fn func(dice.Roller) error) error

	// Commitment publishes the hash of a context's secret and its counter
	Commitment(ctx context.Context, guild string, name dice.ContextName) (*Commitment, error)
}

// GenerateInput describes one item drop
type GenerateInput struct {
	Guild   string
	OwnerID string
	Request items.Request
}

// Commitment lets players verify draws once the secret is revealed
type Commitment struct {
	Hash    string
	Counter uint64
	Offset  uint64
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Generator      *items.Generator // Optional - defaults to the embedded catalog
	ItemRepository itemrepo.Repository
	RNGRepository  rngstates.Repository
	UUIDGenerator  uuid.Generator // Optional
	Logger         *slog.Logger   // Optional
}

type service struct {
	generator *items.Generator
	items     itemrepo.Repository
	states    rngstates.Repository
	uuidGen   uuid.Generator
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new loot service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.ItemRepository == nil {
		panic("item repository is required")
	}
	if cfg.RNGRepository == nil {
		panic("rng repository is required")
	}

	svc := &service{
		generator: cfg.Generator,
		items:     cfg.ItemRepository,
		states:    cfg.RNGRepository,
		uuidGen:   cfg.UUIDGenerator,
		logger:    cfg.Logger,
		locks:     make(map[string]*sync.Mutex),
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

// lock returns the mutex of a guild context, creating it on first use
func (s *service) lock(guild string, name dice.ContextName) *sync.Mutex {
	key := guild + "/" + string(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

// Draw loads or creates the context, runs fn and saves the counter
func (s *service) Draw(ctx context.Context, guild string, name dice.ContextName, fn func(dice.Roller) error) error {
	if guild == "" {
		return rpgerr.InvalidArgument("guild ID is required")
	}
	if err := name.Validate(); err != nil {
		return err
	}

	m := s.lock(guild, name)
	m.Lock()
	defer m.Unlock()

	state, err := s.states.Get(ctx, guild, name)
	if rpgerr.IsNotFound(err) {
		state = &dice.State{Guild: guild, Name: name, Secret: s.uuidGen.NewSecret()}
		s.logger.Info("creating rng context",
			"guild", guild,
			"context", string(name))
	} else if err != nil {
		return rpgerr.Wrapf(err, "failed to load %s rng context", name)
	}

	roller, err := dice.NewContext(*state)
	if err != nil {
		return err
	}

	if err := fn(roller); err != nil {
		return err
	}

	next := roller.State()
	if err := s.states.Save(ctx, &next, state.Counter); err != nil {
		return rpgerr.Wrapf(err, "failed to save %s rng context", name)
	}

	s.logger.Debug("rng context advanced",
		"guild", guild,
		"context", string(name),
		"from", state.Counter,
		"to", next.Counter)
	return nil
}

// Generate rolls and persists one item
func (s *service) Generate(ctx context.Context, input *GenerateInput) (*items.Item, error) {
	if input == nil {
		return nil, rpgerr.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" {
		return nil, rpgerr.InvalidArgument("owner ID is required")
	}

	var item *items.Item
	err := s.Draw(ctx, input.Guild, dice.ContextItem, func(roller dice.Roller) error {
		var err error
		item, err = s.generator.Generate(roller, input.Request)
		return err
	})
	if err != nil {
		return nil, err
	}

	id, err := s.items.NextID(ctx)
	if err != nil {
		return nil, err
	}
	item.ID = id
	item.OwnerID = input.OwnerID

	if err := s.items.Save(ctx, item); err != nil {
		return nil, rpgerr.Wrapf(err, "failed to save item %s", item.Code)
	}

	s.logger.Info("item generated",
		"guild", input.Guild,
		"owner_id", input.OwnerID,
		"item_id", uint64(item.ID),
		"code", item.Code,
		"tier", int(item.Tier),
		"rarity", item.Rarity.String())
	return item, nil
}

// Commitment returns the public half of a context
func (s *service) Commitment(ctx context.Context, guild string, name dice.ContextName) (*Commitment, error) {
	state, err := s.states.Get(ctx, guild, name)
	if err != nil {
		return nil, err
	}
	return &Commitment{
		Hash:    dice.Commitment(state.Secret),
		Counter: state.Counter,
		Offset:  state.Offset,
	}, nil
}
