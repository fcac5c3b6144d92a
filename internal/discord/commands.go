package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	cmdRoll   = "roll"
	cmdOdds   = "odds"
	cmdPun    = "pun"
	cmdVCNick = "vcnick"

	resetMenuID = "vcnick_reset"
)

// Commands returns the slash command definitions.
func Commands() []*discordgo.ApplicationCommand {
	dmAllowed := false
	changeNickname := int64(discordgo.PermissionChangeNickname)

	diceOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "dice",
		Description: "Specify your roll as 1d4 3d20 etc. You can chain dice together by separating them with a space.",
		Required:    true,
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdRoll,
			Description: "Roll the dice!",
			Options:     []*discordgo.ApplicationCommandOption{diceOption},
		},
		{
			Name:        cmdOdds,
			Description: "Shows the lowest, highest and average total of a roll.",
			Options:     []*discordgo.ApplicationCommandOption{diceOption},
		},
		{
			Name:        cmdPun,
			Description: "Says a random pun",
		},
		{
			Name:                     cmdVCNick,
			Description:              "Automatically changes your nickname when joining a voice channel.",
			DMPermission:             &dmAllowed,
			DefaultMemberPermissions: &changeNickname,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set your vc nickname",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "nickname",
							Description: "The nickname to change to",
							Required:    true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "channel",
							Description:  "The channel to change to",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
							Required:     true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Removes channel nicknames.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "all",
							Description: "Removes all channel nicknames.",
							Required:    true,
						},
					},
				},
			},
		},
	}
}

// CommandRegistrar is satisfied by *discordgo.Session.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces the application's commands. An empty guildID
// registers them globally.
func RegisterCommands(s CommandRegistrar, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	created, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return created, nil
}
