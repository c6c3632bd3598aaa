package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/combat"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	itemrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	unitrepo "github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/units"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/character"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/monster"
)

// DefaultMaxRounds caps a Battle that nobody wins
const DefaultMaxRounds = 50

// Service defines the encounter service interface
type Service interface {
	// Fight resolves one round between two stored units and persists both
	Fight(ctx context.Context, attackerID, defenderID string) (*Round, error)

	// Battle resolves rounds until a unit dies or maxRounds is reached.
	// maxRounds <= 0 means DefaultMaxRounds.
	Battle(ctx context.Context, attackerID, defenderID string, maxRounds int) (*Outcome, error)

	// Hunt spawns a monster for a player and battles it. The monster is
	// removed again unless the player killed it.
	Hunt(ctx context.Context, input *HuntInput) (*Hunt, error)
}

// HuntInput is the player and the monster to spawn for it
type HuntInput struct {
	PlayerID  string
	Spawn     monster.GenerateInput
	MaxRounds int
}

// Hunt is the monster as spawned and the battle against it
type Hunt struct {
	Monster *monster.Result
	Outcome *Outcome
}

// Round is the outcome of a single round
type Round struct {
	Results  []combat.Result
	Attacker *units.Unit
	Defender *units.Unit
	Spoils   *Spoils
}

// Outcome is the outcome of a battle
type Outcome struct {
	Rounds   [][]combat.Result
	Attacker *units.Unit
	Defender *units.Unit
	Spoils   *Spoils
}

// Spoils are what a player takes from a monster it killed. Looted items
// went to the winner's inventory; Discarded ones did not fit and are gone.
type Spoils struct {
	WinnerID     string
	Experience   int
	LevelsGained int
	Looted       []*items.Item
	Discarded    []*items.Item
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	UnitRepository   unitrepo.Repository
	ItemRepository   itemrepo.Repository
	CharacterService character.Service
	MonsterService   monster.Service
	Formulas         map[items.Style]combat.Formula // Optional, melee is built in
	Logger           *slog.Logger                   // Optional
}

type service struct {
	units      unitrepo.Repository
	items      itemrepo.Repository
	characters character.Service
	monsters   monster.Service
	options    []combat.Option
	styles     map[items.Style]struct{}
	logger     *slog.Logger

	mu      sync.Mutex
	engaged map[string]struct{}
}

// NewService creates a new encounter service
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
	if cfg.CharacterService == nil {
		panic("character service is required")
	}
	if cfg.MonsterService == nil {
		panic("monster service is required")
	}

	svc := &service{
		units:      cfg.UnitRepository,
		items:      cfg.ItemRepository,
		characters: cfg.CharacterService,
		monsters:   cfg.MonsterService,
		styles:     map[items.Style]struct{}{items.StyleMelee: {}},
		logger:     cfg.Logger,
		engaged:    make(map[string]struct{}),
	}
	for style, f := range cfg.Formulas {
		svc.options = append(svc.options, combat.WithFormula(style, f))
		svc.styles[style] = struct{}{}
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// Fight resolves one round
func (s *service) Fight(ctx context.Context, attackerID, defenderID string) (*Round, error) {
	out, err := s.Battle(ctx, attackerID, defenderID, 1)
	if err != nil {
		return nil, err
	}

	round := &Round{
		Attacker: out.Attacker,
		Defender: out.Defender,
		Spoils:   out.Spoils,
	}
	if len(out.Rounds) > 0 {
		round.Results = out.Rounds[0]
	}
	return round, nil
}

// Battle resolves rounds until one side dies
func (s *service) Battle(ctx context.Context, attackerID, defenderID string, maxRounds int) (*Outcome, error) {
	if attackerID == "" || defenderID == "" {
		return nil, rpgerr.InvalidArgument("attacker and defender IDs are required")
	}
	if attackerID == defenderID {
		return nil, rpgerr.Validationf("unit %s cannot fight itself", attackerID)
	}
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	if err := s.engage(attackerID, defenderID); err != nil {
		return nil, err
	}
	defer s.release(attackerID, defenderID)

	participants, err := s.load(ctx, attackerID, defenderID)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		if !p.Unit.IsAlive() {
			return nil, rpgerr.Validationf("%s has no HP left", p.Unit.Name).
				WithMeta("unit_id", p.Unit.ID)
		}
	}

	cc, err := combat.NewContext(participants[0], participants[1], s.options...)
	if err != nil {
		return nil, err
	}
	if !cc.SetAttacker(attackerID) {
		return nil, rpgerr.Invariantf("attacker %s is not in the encounter", attackerID)
	}

	outcome := &Outcome{}
	for i := 0; i < maxRounds && !cc.Over(); i++ {
		results, err := cc.ResolveRound()
		if err != nil {
			// nothing from the battle is persisted
			return nil, err
		}
		outcome.Rounds = append(outcome.Rounds, results)
	}

	fought := cc.Units()
	for _, u := range fought {
		if err := s.units.Save(ctx, u); err != nil {
			return nil, rpgerr.Wrapf(err, "failed to save unit %s", u.ID)
		}
	}
	outcome.Attacker, outcome.Defender = fought[0], fought[1]

	s.logger.Info("encounter resolved",
		"attacker_id", attackerID,
		"defender_id", defenderID,
		"rounds", len(outcome.Rounds),
		"attacker_hp", outcome.Attacker.HP(),
		"defender_hp", outcome.Defender.HP())

	switch {
	case killedMonster(outcome.Attacker, outcome.Defender):
		outcome.Spoils, outcome.Attacker, err = s.settle(ctx, outcome.Attacker, outcome.Defender, participants[1].Items)
	case killedMonster(outcome.Defender, outcome.Attacker):
		outcome.Spoils, outcome.Defender, err = s.settle(ctx, outcome.Defender, outcome.Attacker, participants[0].Items)
	}
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Hunt checks the player can fight before anything is spawned, so a
// rejected hunt draws nothing from the monster context.
func (s *service) Hunt(ctx context.Context, input *HuntInput) (*Hunt, error) {
	if input == nil || input.PlayerID == "" {
		return nil, rpgerr.InvalidArgument("player ID is required")
	}

	loaded, err := s.load(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	player := loaded[0]
	if _, ok := player.Unit.Player(); !ok {
		return nil, rpgerr.Validationf("unit %s is not a character", input.PlayerID)
	}
	if !player.Unit.IsAlive() {
		return nil, rpgerr.Validationf("%s has no HP left, rest first", player.Unit.Name).
			WithMeta("unit_id", player.Unit.ID)
	}
	if style := combat.StyleOf(player); !s.canFight(style) {
		return nil, rpgerr.Unimplementedf("%s combat has no damage formula", style).
			WithMeta("style", style.String())
	}

	spawn, err := s.monsters.Generate(ctx, &input.Spawn)
	if err != nil {
		return nil, err
	}

	out, err := s.Battle(ctx, input.PlayerID, spawn.Unit.ID, input.MaxRounds)
	if err != nil {
		if discardErr := s.discard(ctx, spawn.Unit.ID); discardErr != nil {
			s.logger.Error("failed to remove monster after a failed hunt",
				"monster_id", spawn.Unit.ID,
				"error", discardErr)
		}
		return nil, err
	}
	if out.Defender.IsAlive() {
		if err := s.discard(ctx, spawn.Unit.ID); err != nil {
			return nil, err
		}
	}

	return &Hunt{Monster: spawn, Outcome: out}, nil
}

func (s *service) canFight(style items.Style) bool {
	_, ok := s.styles[style]
	return ok
}

// discard deletes a monster and everything it still owns. It runs even when
// ctx is already cancelled.
func (s *service) discard(ctx context.Context, monsterID string) error {
	ctx = context.WithoutCancel(ctx)

	owned, err := s.items.ListByOwner(ctx, monsterID)
	if err != nil {
		return err
	}
	for _, it := range owned {
		if err := s.items.Delete(ctx, it.ID); err != nil && !rpgerr.IsNotFound(err) {
			return rpgerr.Wrapf(err, "failed to remove item %d", it.ID)
		}
	}
	if err := s.units.Delete(ctx, monsterID); err != nil && !rpgerr.IsNotFound(err) {
		return rpgerr.Wrapf(err, "failed to remove monster %s", monsterID)
	}

	s.logger.Info("monster removed",
		"monster_id", monsterID,
		"items", len(owned))
	return nil
}

func killedMonster(winner, loser *units.Unit) bool {
	_, isPlayer := winner.Player()
	_, isMonster := loser.Monster()
	return isPlayer && isMonster && winner.IsAlive() && !loser.IsAlive()
}

// settle pays the monster's bounty to the winner, moves its items into the
// winner's inventory and removes the monster. It returns the winner as
// stored afterwards.
func (s *service) settle(ctx context.Context, winner, monster *units.Unit, carried []*items.Item) (*Spoils, *units.Unit, error) {
	spoils := &Spoils{
		WinnerID:   winner.ID,
		Experience: stats.Get(monster.Stats, stats.Bounty),
	}

	progress, err := s.characters.GrantExperience(ctx, winner.ID, spoils.Experience)
	if err != nil {
		return nil, nil, err
	}
	spoils.LevelsGained = progress.LevelsGained
	final := progress.Unit

	moved := make([]*items.Item, 0, len(carried))
	for _, it := range carried {
		c := it.Clone()
		c.OwnerID = winner.ID
		moved = append(moved, c)
	}
	if len(moved) > 0 {
		if err := s.items.SaveAll(ctx, moved); err != nil {
			return nil, nil, rpgerr.Wrap(err, "failed to hand over loot")
		}
	}

	for _, it := range moved {
		sheet, err := s.characters.Stash(ctx, winner.ID, it.ID)
		switch {
		case err == nil:
			final = sheet.Unit
			spoils.Looted = append(spoils.Looted, it)
		case rpgerr.IsValidation(err):
			if err := s.items.Delete(ctx, it.ID); err != nil {
				return nil, nil, err
			}
			spoils.Discarded = append(spoils.Discarded, it)
		default:
			return nil, nil, err
		}
	}

	if err := s.units.Delete(ctx, monster.ID); err != nil {
		return nil, nil, rpgerr.Wrapf(err, "failed to remove monster %s", monster.ID)
	}

	s.logger.Info("monster slain",
		"winner_id", winner.ID,
		"monster_id", monster.ID,
		"experience", spoils.Experience,
		"levels_gained", spoils.LevelsGained,
		"looted", len(spoils.Looted),
		"discarded", len(spoils.Discarded))
	return spoils, final, nil
}

func (s *service) engage(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, busy := s.engaged[id]; busy {
			return rpgerr.Validationf("unit %s is already in an encounter", id).
				WithMeta("unit_id", id)
		}
	}
	for _, id := range ids {
		s.engaged[id] = struct{}{}
	}
	return nil
}

func (s *service) release(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.engaged, id)
	}
}

// load fetches both units and their items concurrently
func (s *service) load(ctx context.Context, ids ...string) ([]combat.Participant, error) {
	out := make([]combat.Participant, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			u, err := s.units.Get(gctx, id)
			if err != nil {
				return err
			}
			out[i].Unit = u
			return nil
		})
		g.Go(func() error {
			owned, err := s.items.ListByOwner(gctx, id)
			if err != nil {
				return err
			}
			out[i].Items = owned
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
