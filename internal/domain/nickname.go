package domain

import "time"

// Nickname is a member's nickname for one voice channel. OldNickname is what
// the member is renamed back to when they leave the channel.
type Nickname struct {
	GuildID        string
	UserID         string
	VoiceChannelID string
	OldNickname    string
	NewNickname    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
