package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/domain"
)

// renameTarget fetches what is needed to rename userID and checks the bot is
// allowed to. The guild is returned even when the check fails.
func (b *Bot) renameTarget(guildID, userID string) (*discordgo.Guild, *discordgo.Member, error) {
	guild, err := b.session.Guild(guildID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch guild: %w", err)
	}

	selfID := b.selfID()
	if selfID == "" {
		return guild, nil, fmt.Errorf("bot user unknown before ready")
	}
	me, err := b.session.GuildMember(guildID, selfID)
	if err != nil {
		return guild, nil, fmt.Errorf("fetch bot member: %w", err)
	}
	target, err := b.session.GuildMember(guildID, userID)
	if err != nil {
		return guild, nil, fmt.Errorf("fetch member: %w", err)
	}

	return guild, target, checkRename(guild, me, target)
}

// checkRename reports why me cannot change target's nickname, if it can't.
func checkRename(guild *discordgo.Guild, me, target *discordgo.Member) error {
	if target.User != nil && target.User.ID == guild.OwnerID {
		return domain.ErrGuildOwner
	}
	if highestPosition(guild, me) < highestPosition(guild, target) {
		return domain.ErrRoleHierarchy
	}
	if !hasPermission(guild, me, discordgo.PermissionManageNicknames) {
		return domain.ErrMissingPermission
	}
	return nil
}

func memberRoles(guild *discordgo.Guild, m *discordgo.Member) []*discordgo.Role {
	var roles []*discordgo.Role
	for _, r := range guild.Roles {
		// @everyone shares the guild's ID.
		if r.ID == guild.ID {
			roles = append(roles, r)
			continue
		}
		for _, id := range m.Roles {
			if r.ID == id {
				roles = append(roles, r)
				break
			}
		}
	}
	return roles
}

func highestPosition(guild *discordgo.Guild, m *discordgo.Member) int {
	highest := 0
	for _, r := range memberRoles(guild, m) {
		if r.Position > highest {
			highest = r.Position
		}
	}
	return highest
}

func hasPermission(guild *discordgo.Guild, m *discordgo.Member, perm int64) bool {
	var perms int64
	for _, r := range memberRoles(guild, m) {
		perms |= r.Permissions
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&perm == perm
}

// notifyOwner DMs the guild owner that the bot lost Manage Nicknames.
func (b *Bot) notifyOwner(guild *discordgo.Guild) {
	ch, err := b.session.UserChannelCreate(guild.OwnerID)
	if err != nil {
		slog.Error("failed to open owner DM", "error", err, "guild_id", guild.ID)
		return
	}
	if _, err := b.session.ChannelMessageSend(ch.ID, fmt.Sprintf(missingPermDMText, guild.Name)); err != nil {
		slog.Error("failed to DM owner", "error", err, "guild_id", guild.ID)
	}
}
