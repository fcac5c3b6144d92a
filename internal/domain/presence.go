package domain

import (
	"strings"
	"time"
)

type ActivityType string

const (
	ActivityPlaying   ActivityType = "PLAYING"
	ActivityStreaming ActivityType = "STREAMING"
	ActivityListening ActivityType = "LISTENING"
	ActivityWatching  ActivityType = "WATCHING"
	ActivityCustom    ActivityType = "CUSTOM"
	ActivityCompeting ActivityType = "COMPETING"
)

// ParseActivityType maps a stored type name onto a known type, defaulting to PLAYING.
func ParseActivityType(s string) ActivityType {
	switch t := ActivityType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ActivityStreaming, ActivityListening, ActivityWatching, ActivityCustom, ActivityCompeting:
		return t
	default:
		return ActivityPlaying
	}
}

type Presence struct {
	ID        int64
	Activity  string
	Type      ActivityType
	CreatedAt time.Time
}

// PresenceChange is the payload of a presence_changed notification.
type PresenceChange struct {
	Op string `json:"op"` // INSERT, UPDATE or DELETE
	ID int64  `json:"id"`
}
