package discord

import (
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/domain"
	"github.com/set-night/crouton/internal/service"
)

func (b *Bot) handleRoll(i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) {
	res, err := b.rolls.Roll(stringOption(data.Options, "dice"), config.MaxDiscordCustomID)
	if err != nil {
		b.replyError(i, err, cmdRoll)
		return
	}

	if err := b.respond(i, res.Text, rerollComponents(res.ControlID), false); err != nil {
		slog.Error("failed to send roll", "error", err, "guild_id", i.GuildID, "roll_id", res.ID)
	}
}

func (b *Bot) handleOdds(i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) {
	text, err := b.rolls.Odds(stringOption(data.Options, "dice"))
	if err != nil {
		b.replyError(i, err, cmdOdds)
		return
	}

	if err := b.respond(i, text, nil, false); err != nil {
		slog.Error("failed to send odds", "error", err, "guild_id", i.GuildID)
	}
}

// handleReroll takes the button off the old report and replies with the
// next roll.
func (b *Bot) handleReroll(i *discordgo.Interaction, data discordgo.MessageComponentInteractionData) {
	var previous string
	if i.Message != nil {
		previous = i.Message.Content
	}

	res, err := b.rolls.Reroll(data.CustomID, previous, config.MaxDiscordCustomID)
	if err != nil {
		b.replyError(i, err, "reroll")
		return
	}

	if i.Message != nil {
		edit := discordgo.NewMessageEdit(i.Message.ChannelID, i.Message.ID)
		edit.Components = &[]discordgo.MessageComponent{}
		if _, err := b.session.ChannelMessageEditComplex(edit); err != nil {
			slog.Warn("failed to remove reroll button", "error", err, "channel_id", i.Message.ChannelID)
		}
	}

	if err := b.respond(i, res.Text, rerollComponents(res.ControlID), false); err != nil {
		slog.Error("failed to send reroll", "error", err, "guild_id", i.GuildID, "roll_id", res.ID)
	}
}

func (b *Bot) handlePun(i *discordgo.Interaction) {
	pun, err := b.puns.Random(b.ctx, i.GuildID)
	if err != nil {
		b.replyError(i, err, cmdPun)
		return
	}

	if err := b.respond(i, pun.Pun, nil, false); err != nil {
		slog.Error("failed to send pun", "error", err, "guild_id", i.GuildID)
	}
}

// replyError answers an interaction that has not been responded to yet.
func (b *Bot) replyError(i *discordgo.Interaction, err error, where string) {
	text := generalErrorText
	switch {
	case errors.Is(err, domain.ErrNoPuns):
		text = noPunsText
	case service.IsUserError(err):
		slog.Debug("rejected order", "error", err, "guild_id", i.GuildID, "command", where)
	default:
		slog.Error("command failed", "error", err, "guild_id", i.GuildID, "command", where)
		b.report(err, where)
	}
	b.respondTemporary(i, text, false, config.ErrorNoticeTTL)
}
