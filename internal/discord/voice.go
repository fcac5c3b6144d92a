package discord

import (
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/domain"
)

func voiceKey(guildID, userID string) string {
	return guildID + "/" + userID
}

// trackVoice records userID's voice channel and returns the previous one.
func (b *Bot) trackVoice(guildID, userID, channelID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := voiceKey(guildID, userID)
	prev := b.voice[key]
	if channelID == "" {
		delete(b.voice, key)
	} else {
		b.voice[key] = channelID
	}
	return prev
}

func (b *Bot) voiceChannel(guildID, userID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.voice[voiceKey(guildID, userID)]
}

// onVoiceStateUpdate applies the configured nickname when a member joins a
// voice channel and restores the original one when they leave it.
func (b *Bot) onVoiceStateUpdate(v *discordgo.VoiceStateUpdate) {
	defer b.recoverPanic("voice state")
	if v.VoiceState == nil || v.GuildID == "" || v.UserID == b.selfID() {
		return
	}

	oldChannelID := b.trackVoice(v.GuildID, v.UserID, v.ChannelID)
	if v.BeforeUpdate != nil {
		oldChannelID = v.BeforeUpdate.ChannelID
	}

	nickname, ok, err := b.nicknames.Resolve(b.ctx, v.GuildID, v.UserID, oldChannelID, v.ChannelID)
	if err != nil {
		slog.Error("failed to resolve voice nickname", "error", err, "guild_id", v.GuildID, "user_id", v.UserID)
		b.report(err, "voice state")
		return
	}
	if !ok {
		return
	}

	guild, _, err := b.renameTarget(v.GuildID, v.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrGuildOwner), errors.Is(err, domain.ErrRoleHierarchy):
		slog.Debug("member cannot be renamed", "reason", err, "guild_id", v.GuildID, "user_id", v.UserID)
		return
	case errors.Is(err, domain.ErrMissingPermission):
		b.notifyOwner(guild)
		return
	default:
		slog.Error("failed to check rename", "error", err, "guild_id", v.GuildID, "user_id", v.UserID)
		return
	}

	if err := b.session.GuildMemberNickname(v.GuildID, v.UserID, nickname); err != nil {
		slog.Error("failed to set nickname", "error", err, "guild_id", v.GuildID, "user_id", v.UserID)
		b.report(err, "voice state")
		return
	}
	slog.Debug("voice nickname applied", "guild_id", v.GuildID, "user_id", v.UserID, "channel_id", v.ChannelID)
}

// onGuildMemberUpdate keeps the restore-to nickname current when a member
// renames themselves outside their configured channels.
func (b *Bot) onGuildMemberUpdate(m *discordgo.GuildMemberUpdate) {
	defer b.recoverPanic("member update")
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}

	name := displayName(m.Member)
	if m.BeforeUpdate != nil && displayName(m.BeforeUpdate) == name {
		return
	}

	guild, err := b.session.Guild(m.GuildID)
	if err != nil {
		slog.Error("failed to fetch guild", "error", err, "guild_id", m.GuildID)
		return
	}
	if m.User.ID == guild.OwnerID {
		return
	}

	updated, err := b.nicknames.RememberDisplayName(b.ctx, m.GuildID, m.User.ID, name, b.voiceChannel(m.GuildID, m.User.ID))
	if err != nil {
		slog.Error("failed to remember display name", "error", err, "guild_id", m.GuildID, "user_id", m.User.ID)
		b.report(err, "member update")
		return
	}
	if updated {
		slog.Debug("original nickname refreshed", "guild_id", m.GuildID, "user_id", m.User.ID)
	}
}
