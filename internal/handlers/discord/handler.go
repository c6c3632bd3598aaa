package discord

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/character"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/encounter"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/loot"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/monster"
)

const commandTimeout = 10 * time.Second

// Handler handles all Discord interactions
type Handler struct {
	services *services.Provider
	logger   *slog.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	Logger          *slog.Logger // Optional
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil {
		panic("service provider is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{services: cfg.ServiceProvider, logger: logger}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return rpgerr.Wrapf(err, "failed to register /%s", cmd.Name)
		}
	}
	return nil
}

// HandleInteraction answers /crawl commands with an ephemeral embed
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	req, err := ParseRequest(i.Interaction)
	if err != nil {
		h.logger.Debug("ignoring interaction", "error", err)
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		h.logger.Error("failed to acknowledge interaction", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	embed, err := h.Execute(ctx, req)
	if err != nil {
		h.logger.Warn("command failed",
			"command", strings.Join(req.Path, " "),
			"user_id", req.UserID,
			"guild_id", req.GuildID,
			"code", rpgerr.GetCode(err),
			"error", err)
		embed = errorEmbed(err)
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		h.logger.Error("failed to send response", "error", err)
	}
}

// Execute runs a parsed command and renders the reply
func (h *Handler) Execute(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	switch strings.Join(req.Path, " ") {
	case "character create":
		return h.createCharacter(ctx, req)
	case "character show":
		return h.withCharacter(ctx, req, h.services.CharacterService.Get)
	case "character rest":
		return h.withCharacter(ctx, req, h.services.CharacterService.Rest)
	case "character allocate":
		return h.allocate(ctx, req)
	case "loot":
		return h.loot(ctx, req)
	case "hunt":
		return h.hunt(ctx, req)
	case "equip":
		return h.equip(ctx, req)
	case "unequip":
		return h.moveItem(ctx, req, h.services.CharacterService.Unequip)
	case "stash":
		return h.moveItem(ctx, req, h.services.CharacterService.Stash)
	case "drop":
		return h.moveItem(ctx, req, h.services.CharacterService.Drop)
	case "fairness":
		return h.fairness(ctx, req)
	default:
		return nil, rpgerr.InvalidArgumentf("unknown command %q", strings.Join(req.Path, " "))
	}
}

// active is the player's oldest character
func (h *Handler) active(ctx context.Context, req *Request) (*units.Unit, error) {
	list, err := h.services.CharacterService.ListByAccount(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, rpgerr.Validation("you have no character yet, use /crawl character create")
	}
	return list[0], nil
}

func (h *Handler) createCharacter(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	name, err := req.requireString("name")
	if err != nil {
		return nil, err
	}
	class, err := req.requireString("class")
	if err != nil {
		return nil, err
	}

	sheet, err := h.services.CharacterService.Create(ctx, &character.CreateInput{
		AccountID: req.UserID,
		Name:      name,
		Class:     class,
	})
	if err != nil {
		return nil, err
	}
	return sheetEmbed(sheet), nil
}

func (h *Handler) withCharacter(ctx context.Context, req *Request, fn func(context.Context, string) (*character.Sheet, error)) (*discordgo.MessageEmbed, error) {
	u, err := h.active(ctx, req)
	if err != nil {
		return nil, err
	}
	sheet, err := fn(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return sheetEmbed(sheet), nil
}

func (h *Handler) allocate(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	stat, err := req.requireString("stat")
	if err != nil {
		return nil, err
	}
	points, err := req.requireInt("points")
	if err != nil {
		return nil, err
	}
	u, err := h.active(ctx, req)
	if err != nil {
		return nil, err
	}

	sheet, err := h.services.CharacterService.AllocateStatPoints(ctx, &character.AllocateInput{
		UnitID: u.ID,
		Stat:   stat,
		Points: int(points),
	})
	if err != nil {
		return nil, err
	}
	return sheetEmbed(sheet), nil
}

func (h *Handler) loot(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	code, err := req.requireString("code")
	if err != nil {
		return nil, err
	}
	tier, err := tierOption(req)
	if err != nil {
		return nil, err
	}
	u, err := h.active(ctx, req)
	if err != nil {
		return nil, err
	}

	it, err := h.services.LootService.Generate(ctx, &loot.GenerateInput{
		Guild:   req.GuildID,
		OwnerID: u.ID,
		Request: items.Request{Code: code, Tier: tier},
	})
	if err != nil {
		return nil, err
	}

	if _, err := h.services.CharacterService.Stash(ctx, u.ID, it.ID); err != nil {
		if !rpgerr.IsValidation(err) {
			return nil, err
		}
		return itemEmbed(it, "Inventory full, make room and use /crawl stash"), nil
	}
	return itemEmbed(it, "Added to your inventory"), nil
}

func (h *Handler) hunt(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	species, err := req.requireString("species")
	if err != nil {
		return nil, err
	}
	rarity := items.RarityCommon
	if r, ok := req.String("rarity"); ok {
		if rarity, err = items.ParseRarity(r); err != nil {
			return nil, err
		}
	}
	tier, err := tierOption(req)
	if err != nil {
		return nil, err
	}
	u, err := h.active(ctx, req)
	if err != nil {
		return nil, err
	}

	hunt, err := h.services.EncounterService.Hunt(ctx, &encounter.HuntInput{
		PlayerID: u.ID,
		Spawn: monster.GenerateInput{
			Guild:   req.GuildID,
			Species: species,
			Tier:    tier,
			Rarity:  rarity,
		},
	})
	if err != nil {
		return nil, err
	}
	return battleEmbed(u.Name, hunt.Monster.Unit, hunt.Outcome), nil
}

func (h *Handler) equip(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	id, err := req.requireInt("item")
	if err != nil {
		return nil, err
	}
	raw, err := req.requireString("slot")
	if err != nil {
		return nil, err
	}
	slot, err := strconv.Atoi(raw)
	if err != nil {
		return nil, rpgerr.InvalidArgumentf("unknown slot %q", raw)
	}
	u, err := h.active(ctx, req)
	if err != nil {
		return nil, err
	}

	sheet, err := h.services.CharacterService.Equip(ctx, &character.EquipInput{
		UnitID: u.ID,
		ItemID: storage.ItemID(id),
		Slot:   slot,
	})
	if err != nil {
		return nil, err
	}
	return sheetEmbed(sheet), nil
}

func (h *Handler) moveItem(ctx context.Context, req *Request, fn func(context.Context, string, storage.ItemID) (*character.Sheet, error)) (*discordgo.MessageEmbed, error) {
	id, err := req.requireInt("item")
	if err != nil {
		return nil, err
	}
	u, err := h.active(ctx, req)
	if err != nil {
		return nil, err
	}

	sheet, err := fn(ctx, u.ID, storage.ItemID(id))
	if err != nil {
		return nil, err
	}
	return sheetEmbed(sheet), nil
}

func (h *Handler) fairness(ctx context.Context, req *Request) (*discordgo.MessageEmbed, error) {
	name, err := req.requireString("context")
	if err != nil {
		return nil, err
	}
	c, err := h.services.LootService.Commitment(ctx, req.GuildID, dice.ContextName(name))
	if err != nil {
		return nil, err
	}
	return commitmentEmbed(name, c), nil
}

// tierOption reads the optional tier, defaulting to the lowest
func tierOption(req *Request) (items.Tier, error) {
	t, ok := req.Int("tier")
	if !ok {
		return items.MinTier, nil
	}
	if t < int64(items.MinTier) || t > int64(items.MaxTier) {
		return 0, rpgerr.Validationf("tier must be between %d and %d", items.MinTier, items.MaxTier).
			WithMeta("tier", t)
	}
	return items.Tier(t), nil
}
