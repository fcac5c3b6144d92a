package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/domain"
)

// Discord caps select menus at 25 options.
const maxSelectOptions = 25

type resetOption struct {
	label string
	value string
}

// resetMenu is an open "/vcnick reset" channel picker.
type resetMenu struct {
	interaction *discordgo.Interaction
	guildID     string
	userID      string
	options     []resetOption
}

func (b *Bot) handleVCNick(i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) {
	user := interactionUser(i)
	if i.GuildID == "" || user == nil {
		return
	}

	if err := b.deferEphemeral(i); err != nil {
		slog.Error("failed to defer vcnick", "error", err, "guild_id", i.GuildID)
		return
	}

	guild, member, err := b.renameTarget(i.GuildID, user.ID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMissingPermission):
		b.notifyOwner(guild)
		b.editReplyTemporary(i, missingPermText, config.ErrorNoticeTTL)
		return
	case errors.Is(err, domain.ErrGuildOwner):
		if _, err := b.editReply(i, guildOwnerText, nil); err != nil {
			slog.Error("failed to edit reply", "error", err, "guild_id", i.GuildID)
		}
		return
	case errors.Is(err, domain.ErrRoleHierarchy):
		b.editReplyTemporary(i, roleHierarchyText, config.ErrorNoticeTTL)
		return
	default:
		b.editError(i, err, cmdVCNick)
		return
	}

	switch subcommand(data) {
	case "set":
		b.vcnickSet(i, data, member)
	case "reset":
		b.vcnickReset(i, data, user.ID)
	}
}

func (b *Bot) vcnickSet(i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, member *discordgo.Member) {
	nickname := stringOption(data.Options, "nickname")
	channelID := stringOption(data.Options, "channel")
	if nickname == "" || channelID == "" {
		if _, err := b.editReply(i, missingInfoText, nil); err != nil {
			slog.Error("failed to edit reply", "error", err, "guild_id", i.GuildID)
		}
		return
	}

	channelName := channelID
	if data.Resolved != nil {
		if ch, ok := data.Resolved.Channels[channelID]; ok && ch.Name != "" {
			channelName = ch.Name
		}
	}

	current := displayName(member)
	err := b.nicknames.Set(b.ctx, domain.Nickname{
		GuildID:        i.GuildID,
		UserID:         member.User.ID,
		VoiceChannelID: channelID,
		OldNickname:    current,
		NewNickname:    nickname,
	})
	if err != nil {
		b.editError(i, err, "vcnick set")
		return
	}

	b.editReplyTemporary(i, fmt.Sprintf(nicknameSetText, nickname, channelName, current), config.ErrorNoticeTTL)
}

func (b *Bot) vcnickReset(i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, userID string) {
	if boolOption(data.Options, "all") {
		if _, err := b.nicknames.ResetAll(b.ctx, i.GuildID, userID); err != nil {
			b.editError(i, err, "vcnick reset")
			return
		}
		b.editReplyTemporary(i, resetAllText, config.ErrorNoticeTTL)
		return
	}

	list, err := b.nicknames.List(b.ctx, i.GuildID, userID)
	if err != nil {
		b.editError(i, err, "vcnick reset")
		return
	}
	if len(list) == 0 {
		b.editReplyTemporary(i, nothingToResetText, config.ErrorNoticeTTL)
		return
	}

	channels, err := b.session.GuildChannels(i.GuildID)
	if err != nil {
		b.editError(i, fmt.Errorf("fetch channels: %w", err), "vcnick reset")
		return
	}

	// Configurations for deleted channels cannot be picked.
	var options []resetOption
	for _, ch := range channels {
		tracked := slices.ContainsFunc(list, func(n domain.Nickname) bool { return n.VoiceChannelID == ch.ID })
		if tracked && len(options) < maxSelectOptions {
			options = append(options, resetOption{label: ch.Name, value: ch.ID})
		}
	}
	if len(options) == 0 {
		b.editReplyTemporary(i, noChannelsText, config.ErrorNoticeTTL)
		return
	}

	msg, err := b.editReply(i, resetMenuText, resetMenuComponents(options))
	if err != nil {
		slog.Error("failed to show reset menu", "error", err, "guild_id", i.GuildID)
		return
	}

	b.mu.Lock()
	b.menus[msg.ID] = &resetMenu{interaction: i, guildID: i.GuildID, userID: userID, options: options}
	b.mu.Unlock()

	b.after(config.ResetMenuTTL, func() {
		b.mu.Lock()
		delete(b.menus, msg.ID)
		b.mu.Unlock()

		if err := b.session.InteractionResponseDelete(i); err != nil {
			slog.Warn("failed to delete reset menu", "error", err, "guild_id", i.GuildID)
		}
	})
}

func (b *Bot) handleResetSelect(i *discordgo.Interaction, data discordgo.MessageComponentInteractionData) {
	user := interactionUser(i)
	if i.Message == nil || user == nil {
		return
	}

	b.mu.Lock()
	menu, ok := b.menus[i.Message.ID]
	b.mu.Unlock()
	if !ok || menu.userID != user.ID {
		b.respondTemporary(i, staleMenuText, true, config.CooldownNoticeTTL)
		return
	}

	if _, err := b.nicknames.Remove(b.ctx, menu.guildID, menu.userID, data.Values); err != nil {
		slog.Error("command failed", "error", err, "guild_id", menu.guildID, "command", "vcnick reset")
		b.report(err, "vcnick reset")
		b.respondTemporary(i, generalErrorText, true, config.ErrorNoticeTTL)
		return
	}

	b.mu.Lock()
	var picked []string
	var remaining []resetOption
	for _, o := range menu.options {
		if slices.Contains(data.Values, o.value) {
			picked = append(picked, o.label)
		} else {
			remaining = append(remaining, o)
		}
	}
	menu.options = remaining
	b.mu.Unlock()

	content := fmt.Sprintf(resetDoneText, strings.Join(picked, ", "))
	components := []discordgo.MessageComponent{}
	if len(remaining) == 0 {
		content += resetFinishedText
	} else {
		components = resetMenuComponents(remaining)
	}

	err := b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
	if err != nil {
		slog.Error("failed to update reset menu", "error", err, "guild_id", menu.guildID)
	}
}

func resetMenuComponents(options []resetOption) []discordgo.MessageComponent {
	minValues := 1
	// With several channels one stays unpicked; "all" clears everything.
	maxValues := len(options)
	if maxValues > 1 {
		maxValues--
	}

	menuOptions := make([]discordgo.SelectMenuOption, 0, len(options))
	for _, o := range options {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{Label: o.label, Value: o.value})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:  discordgo.StringSelectMenu,
				CustomID:  resetMenuID,
				MinValues: &minValues,
				MaxValues: maxValues,
				Options:   menuOptions,
			},
		}},
	}
}

// editError reports a failure on a deferred reply.
func (b *Bot) editError(i *discordgo.Interaction, err error, where string) {
	slog.Error("command failed", "error", err, "guild_id", i.GuildID, "command", where)
	b.report(err, where)
	b.editReplyTemporary(i, generalErrorText, config.ErrorNoticeTTL)
}
