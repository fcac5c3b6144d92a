package discord

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	generalErrorText   = "Something went wrong in the bakery. Please try sending your order again."
	cooldownText       = "You have to wait %d second(s) to use this command again."
	noPunsText         = "We regret to inform you that our bread puns have all been gobbled up. Please try again when we've baked some fresh ones."
	staleMenuText      = "This order has already left the oven. Run /vcnick reset again."
	missingPermText    = "I do not have permissions to manage nicknames in here! I've already sent a DM to the server owner!\nSit tight! The oven is hot!"
	missingPermDMText  = "I do not have permissions to manage nicknames in %s! Please try inviting me again to refresh permissions."
	guildOwnerText     = "Unfortunately, bots do not have the ability to change server owner nicknames. My bread does not compare..."
	roleHierarchyText  = "You have a higher role than me. My bread is not powerful enough to change your nickname..."
	missingInfoText    = "I'm missing some information. Please provide both a nickname and a channel name."
	nicknameSetText    = "Awesome nickname! Your nickname will be automatically changed to **%s** when you join **%s**! Your name will be changed back to **%s** when you leave."
	resetAllText       = "You got it! All of your orders are out of the oven!"
	nothingToResetText = "There was not anything in the bakery. You are good to go!"
	noChannelsText     = "There are no channels here that match your dough recipe!"
	resetMenuText      = "Select which channels you would like to take out of the oven."
	resetDoneText      = "You got it. **%s** is out of the oven."
	resetFinishedText  = "\nThere's nothing left to do here!"
	rerollLabel        = "Reroll"
)

func rerollComponents(customID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    rerollLabel,
				Style:    discordgo.PrimaryButton,
				CustomID: customID,
			},
		}},
	}
}

// respond sends content as the interaction's reply.
func (b *Bot) respond(i *discordgo.Interaction, content string, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content:    content,
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("respond to interaction: %w", err)
	}
	return nil
}

// respondTemporary replies and deletes the reply after ttl.
func (b *Bot) respondTemporary(i *discordgo.Interaction, content string, ephemeral bool, ttl time.Duration) {
	if err := b.respond(i, content, nil, ephemeral); err != nil {
		slog.Error("failed to send notice", "error", err, "guild_id", i.GuildID)
		return
	}
	b.deleteReplyAfter(i, ttl)
}

func (b *Bot) deferEphemeral(i *discordgo.Interaction) error {
	err := b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		return fmt.Errorf("defer interaction: %w", err)
	}
	return nil
}

// editReply replaces a deferred reply. A nil components slice leaves the
// reply without components.
func (b *Bot) editReply(i *discordgo.Interaction, content string, components []discordgo.MessageComponent) (*discordgo.Message, error) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	msg, err := b.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	})
	if err != nil {
		return nil, fmt.Errorf("edit interaction reply: %w", err)
	}
	return msg, nil
}

// editReplyTemporary edits a deferred reply and deletes it after ttl.
func (b *Bot) editReplyTemporary(i *discordgo.Interaction, content string, ttl time.Duration) {
	if _, err := b.editReply(i, content, nil); err != nil {
		slog.Error("failed to edit reply", "error", err, "guild_id", i.GuildID)
		return
	}
	b.deleteReplyAfter(i, ttl)
}

func (b *Bot) deleteReplyAfter(i *discordgo.Interaction, ttl time.Duration) {
	b.after(ttl, func() {
		if err := b.session.InteractionResponseDelete(i); err != nil {
			slog.Warn("failed to delete interaction reply", "error", err, "guild_id", i.GuildID)
		}
	})
}

// interactionUser returns the invoking user in guilds and in DMs.
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func displayName(m *discordgo.Member) string {
	if m == nil {
		return ""
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}
