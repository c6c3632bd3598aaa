package discord

import (
	"github.com/bwmarrin/discordgo"

	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// Request is a parsed /crawl invocation
type Request struct {
	GuildID string
	UserID  string
	Path    []string
	Options map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// ParseRequest walks the subcommand tree of an application command
func ParseRequest(i *discordgo.Interaction) (*Request, error) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil, rpgerr.InvalidArgumentf("unsupported interaction type %s", i.Type)
	}
	data := i.ApplicationCommandData()
	if data.Name != CommandName {
		return nil, rpgerr.InvalidArgumentf("unknown command %q", data.Name)
	}

	req := &Request{
		GuildID: i.GuildID,
		Options: make(map[string]*discordgo.ApplicationCommandInteractionDataOption),
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		req.UserID = i.Member.User.ID
	case i.User != nil:
		req.UserID = i.User.ID
	default:
		return nil, rpgerr.InvalidArgument("interaction has no user")
	}
	if req.GuildID == "" {
		// direct messages get a private dice context per user
		req.GuildID = "dm-" + req.UserID
	}

	opts := data.Options
	for len(opts) == 1 && isSubcommand(opts[0].Type) {
		req.Path = append(req.Path, opts[0].Name)
		opts = opts[0].Options
	}
	for _, opt := range opts {
		req.Options[opt.Name] = opt
	}
	return req, nil
}

func isSubcommand(t discordgo.ApplicationCommandOptionType) bool {
	return t == discordgo.ApplicationCommandOptionSubCommand ||
		t == discordgo.ApplicationCommandOptionSubCommandGroup
}

// String returns a string option
func (r *Request) String(name string) (string, bool) {
	opt, ok := r.Options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	return opt.StringValue(), true
}

// Int returns an integer option
func (r *Request) Int(name string) (int64, bool) {
	opt, ok := r.Options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	if _, isFloat := opt.Value.(float64); !isFloat {
		return 0, false
	}
	return opt.IntValue(), true
}

func (r *Request) requireString(name string) (string, error) {
	v, ok := r.String(name)
	if !ok || v == "" {
		return "", rpgerr.InvalidArgumentf("option %s is required", name)
	}
	return v, nil
}

func (r *Request) requireInt(name string) (int64, error) {
	v, ok := r.Int(name)
	if !ok {
		return 0, rpgerr.InvalidArgumentf("option %s is required", name)
	}
	return v, nil
}
