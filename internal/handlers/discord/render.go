package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/character"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/encounter"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/loot"
)

const (
	colorInfo    = 0x3498db
	colorLoot    = 0xf1c40f
	colorVictory = 0x2ecc71
	colorDefeat  = 0xe74c3c
)

var titleCase = cases.Title(language.English)

func title(s string) string {
	return titleCase.String(strings.ReplaceAll(s, "_", " "))
}

func sheetEmbed(sheet *character.Sheet) *discordgo.MessageEmbed {
	u := sheet.Unit
	player, _ := u.Player()

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s the %s", u.Name, title(player.Class)),
		Description: fmt.Sprintf("Level %d | XP %d/%d",
			u.Level,
			stats.Get(u.Base, stats.Experience),
			units.ExperienceFor(u.Level+1)),
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Health", Value: fmt.Sprintf("%d/%d", u.HP(), u.MaxHP()), Inline: true},
			{Name: "Attributes", Value: statLine(u.Stats, stats.STR, stats.DEX, stats.INT, stats.VIT), Inline: true},
			{Name: "Combat", Value: statLine(u.Stats, stats.ATK, stats.DEF, stats.SpellPower), Inline: true},
		},
	}
	if player.StatPoints > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Unspent points",
			Value: fmt.Sprintf("%d, use `/crawl character allocate`", player.StatPoints),
		})
	}

	var equipped, bag strings.Builder
	for slot, desc := range storage.Equipment.Slots {
		if it, ok := sheet.Item(u.Storage.Get(storage.NodeEquipment, slot)); ok {
			fmt.Fprintf(&equipped, "%s: %s\n", title(desc.Name), itemLine(it))
		}
	}
	for _, id := range u.Storage[storage.NodeInventory] {
		if it, ok := sheet.Item(id); ok {
			fmt.Fprintf(&bag, "%s\n", itemLine(it))
		}
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Equipment", Value: orNone(equipped.String())},
		&discordgo.MessageEmbedField{Name: "Inventory", Value: orNone(bag.String())},
	)
	return embed
}

func itemEmbed(it *items.Item, note string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       it.Name,
		Description: itemLine(it),
		Color:       colorLoot,
	}
	if note != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: note}
	}
	return embed
}

func itemLine(it *items.Item) string {
	line := fmt.Sprintf("`#%d` %s (T%d %s)", it.ID, it.Name, it.Tier, it.Rarity)
	if len(it.Stats) > 0 {
		parts := make([]string, 0, len(it.Stats))
		for _, s := range stats.Reduce(it.Stats) {
			parts = append(parts, fmt.Sprintf("%s +%d", shortName(s.ID), s.Value))
		}
		line += " " + strings.Join(parts, ", ")
	}
	return line
}

func battleEmbed(hero string, monster *units.Unit, out *encounter.Outcome) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s vs %s (level %d)", hero, monster.Name, monster.Level),
		Color: colorDefeat,
	}

	var log strings.Builder
	for i, round := range out.Rounds {
		for _, r := range round {
			fmt.Fprintf(&log, "R%d: %s hits for %d, %d HP left\n", i+1, nameOf(r.AttackerID, out), r.Damage, r.DefenderHP)
		}
	}
	embed.Description = orNone(truncate(log.String(), 3500))

	switch {
	case out.Spoils != nil:
		embed.Color = colorVictory
		var loot strings.Builder
		fmt.Fprintf(&loot, "+%d XP", out.Spoils.Experience)
		if out.Spoils.LevelsGained > 0 {
			fmt.Fprintf(&loot, ", %d level(s) gained", out.Spoils.LevelsGained)
		}
		loot.WriteString("\n")
		for _, it := range out.Spoils.Looted {
			fmt.Fprintf(&loot, "%s\n", itemLine(it))
		}
		if n := len(out.Spoils.Discarded); n > 0 {
			fmt.Fprintf(&loot, "%d item(s) left behind, inventory full\n", n)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Victory", Value: loot.String()})
	case !out.Attacker.IsAlive():
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Defeat", Value: "Use `/crawl character rest` to recover."})
	default:
		embed.Color = colorInfo
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Stalemate", Value: "Both sides withdraw."})
	}
	return embed
}

func commitmentEmbed(name string, c *loot.Commitment) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s dice", title(name)),
		Description: fmt.Sprintf("Commitment `%s`", c.Hash),
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Draws", Value: fmt.Sprint(c.Counter), Inline: true},
			{Name: "Offset", Value: fmt.Sprint(c.Offset), Inline: true},
		},
	}
}

// errorEmbed shows rule and lookup failures to the player and hides the rest
func errorEmbed(err error) *discordgo.MessageEmbed {
	msg := "Something went wrong, try again later."
	switch rpgerr.GetCode(err) {
	case rpgerr.CodeValidation, rpgerr.CodeLookup, rpgerr.CodeNotFound,
		rpgerr.CodeInvalidArgument, rpgerr.CodeUnimplemented, rpgerr.CodeAborted:
		msg = err.Error()
	}
	if s, ok := rpgerr.GetMeta(err)["suggestion"].(string); ok {
		msg += fmt.Sprintf("\nDid you mean `%s`?", s)
	}
	return &discordgo.MessageEmbed{Title: "Cannot do that", Description: msg, Color: colorDefeat}
}

func nameOf(id string, out *encounter.Outcome) string {
	if out.Attacker.ID == id {
		return out.Attacker.Name
	}
	return out.Defender.Name
}

func statLine(list stats.List, ids ...stats.ID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s %d", shortName(id), stats.Get(list, id)))
	}
	return strings.Join(parts, " | ")
}

func shortName(id stats.ID) string {
	def, err := stats.Default.Lookup(id)
	if err != nil {
		return fmt.Sprint(id)
	}
	return def.Short
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
