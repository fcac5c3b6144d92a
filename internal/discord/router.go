package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/service"
)

func (b *Bot) onInteractionCreate(ic *discordgo.InteractionCreate) {
	i := ic.Interaction
	defer b.recoverPanic("interaction")

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(i)
	}
}

func (b *Bot) handleCommand(i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	user := interactionUser(i)
	if user == nil {
		return
	}

	switch data.Name {
	case cmdRoll, cmdOdds, cmdPun, cmdVCNick:
	default:
		slog.Warn("unknown command", "command", data.Name)
		return
	}

	if b.cooldowns != nil {
		wait, ok := b.cooldowns.Allow(service.CooldownKey(data.Name, user.ID))
		if !ok {
			b.respondTemporary(i, fmt.Sprintf(cooldownText, service.WaitSeconds(wait)), false, config.CooldownNoticeTTL)
			return
		}
	}

	slog.Debug("discord command", "command", data.Name, "guild_id", i.GuildID, "user_id", user.ID)

	switch data.Name {
	case cmdRoll:
		b.handleRoll(i, data)
	case cmdOdds:
		b.handleOdds(i, data)
	case cmdPun:
		b.handlePun(i)
	case cmdVCNick:
		b.handleVCNick(i, data)
	}
}

func (b *Bot) handleComponent(i *discordgo.Interaction) {
	data := i.MessageComponentData()

	switch {
	case service.IsRerollControl(data.CustomID):
		b.handleReroll(i, data)
	case data.CustomID == resetMenuID:
		b.handleResetSelect(i, data)
	default:
		slog.Warn("unknown component", "custom_id", data.CustomID)
	}
}

// stringOption returns the named string option, looking inside subcommands.
func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o := findOption(opts, name); o != nil {
		if v, ok := o.Value.(string); ok {
			return v
		}
	}
	return ""
}

func boolOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if o := findOption(opts, name); o != nil {
		if v, ok := o.Value.(bool); ok {
			return v
		}
	}
	return false
}

func findOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Name == name {
			return o
		}
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			if found := findOption(o.Options, name); found != nil {
				return found
			}
		}
	}
	return nil
}

func subcommand(data discordgo.ApplicationCommandInteractionData) string {
	for _, o := range data.Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			return o.Name
		}
	}
	return ""
}
