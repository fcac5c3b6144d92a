package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/domain"
)

func activityType(t domain.ActivityType) discordgo.ActivityType {
	switch t {
	case domain.ActivityStreaming:
		return discordgo.ActivityTypeStreaming
	case domain.ActivityListening:
		return discordgo.ActivityTypeListening
	case domain.ActivityWatching:
		return discordgo.ActivityTypeWatching
	case domain.ActivityCustom:
		return discordgo.ActivityTypeCustom
	case domain.ActivityCompeting:
		return discordgo.ActivityTypeCompeting
	default:
		return discordgo.ActivityTypeGame
	}
}

func statusData(p domain.Presence) discordgo.UpdateStatusData {
	activity := &discordgo.Activity{
		Name: p.Activity,
		Type: activityType(p.Type),
	}
	// Custom statuses show their state, not their name.
	if activity.Type == discordgo.ActivityTypeCustom {
		activity.Name = "Custom Status"
		activity.State = p.Activity
	}
	return discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{activity},
		Status:     string(discordgo.StatusOnline),
	}
}

// SetPresence shows p as the bot's activity.
func (b *Bot) SetPresence(_ context.Context, p domain.Presence) error {
	if b.session == nil {
		return fmt.Errorf("set presence: discord session not started")
	}
	if err := b.session.UpdateStatusComplex(statusData(p)); err != nil {
		return fmt.Errorf("set presence: %w", err)
	}
	return nil
}
