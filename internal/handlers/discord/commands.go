package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
)

// CommandName is the root slash command
const CommandName = "crawl"

// Commands returns the slash command tree
func Commands() []*discordgo.ApplicationCommand {
	minTier, maxTier := float64(items.MinTier), float64(items.MaxTier)
	minPoints := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Dungeon crawler commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "character",
					Description: "Character management commands",
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "create",
							Description: "Create a new character",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Name:        "name",
									Description: "Character name",
									Type:        discordgo.ApplicationCommandOptionString,
									Required:    true,
								},
								{
									Name:        "class",
									Description: "Character class",
									Type:        discordgo.ApplicationCommandOptionString,
									Required:    true,
									Choices:     stringChoices(units.DefaultTemplates.ClassCodes()),
								},
							},
						},
						{
							Name:        "show",
							Description: "Show your character sheet",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
						{
							Name:        "rest",
							Description: "Rest to full health",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
						{
							Name:        "allocate",
							Description: "Spend stat points",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Name:        "stat",
									Description: "Stat to raise",
									Type:        discordgo.ApplicationCommandOptionString,
									Required:    true,
									Choices:     stringChoices([]string{"STR", "DEX", "INT", "VIT"}),
								},
								{
									Name:        "points",
									Description: "Points to spend",
									Type:        discordgo.ApplicationCommandOptionInteger,
									Required:    true,
									MinValue:    &minPoints,
								},
							},
						},
					},
				},
				{
					Name:        "loot",
					Description: "Roll a new item into your inventory",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "code",
							Description: "Item code, e.g. long_sword",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
						{
							Name:        "tier",
							Description: "Item tier",
							Type:        discordgo.ApplicationCommandOptionInteger,
							MinValue:    &minTier,
							MaxValue:    maxTier,
						},
					},
				},
				{
					Name:        "hunt",
					Description: "Spawn a monster and fight it",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "species",
							Description: "Monster species",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices:     stringChoices(units.DefaultTemplates.SpeciesCodes()),
						},
						{
							Name:        "tier",
							Description: "Monster tier",
							Type:        discordgo.ApplicationCommandOptionInteger,
							MinValue:    &minTier,
							MaxValue:    maxTier,
						},
						{
							Name:        "rarity",
							Description: "Monster rarity",
							Type:        discordgo.ApplicationCommandOptionString,
							Choices:     stringChoices([]string{"common", "uncommon", "rare", "boss", "superboss"}),
						},
					},
				},
				itemCommand("equip", "Equip an item", slotOption()),
				itemCommand("unequip", "Move an equipped item to your inventory"),
				itemCommand("stash", "Put a looted item into your inventory"),
				itemCommand("drop", "Destroy an item"),
				{
					Name:        "fairness",
					Description: "Show the commitment of this server's dice",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "context",
							Description: "Dice context",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices:     stringChoices([]string{"item", "monster", "combat"}),
						},
					},
				},
			},
		},
	}
}

func itemCommand(name, description string, extra ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	options := []*discordgo.ApplicationCommandOption{
		{
			Name:        "item",
			Description: "Item ID",
			Type:        discordgo.ApplicationCommandOptionInteger,
			Required:    true,
		},
	}
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Options:     append(options, extra...),
	}
}

func slotOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(storage.Equipment.Slots))
	for _, slot := range storage.Equipment.Slots {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  slot.Name,
			Value: strconv.Itoa(slot.ID),
		})
	}
	return &discordgo.ApplicationCommandOption{
		Name:        "slot",
		Description: "Equipment slot",
		Type:        discordgo.ApplicationCommandOptionString,
		Required:    true,
		Choices:     choices,
	}
}

func stringChoices(values []string) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, v := range values {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v})
	}
	return out
}
