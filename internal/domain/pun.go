package domain

import "time"

type Pun struct {
	ID        int64
	Pun       string
	GuildID   *string // nil for puns served everywhere
	CreatedAt time.Time
}
