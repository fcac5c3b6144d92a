package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/set-night/crouton/internal/domain"
)

type PunStore interface {
	ListPunsForGuild(ctx context.Context, guildID string) ([]domain.Pun, error)
}

type PunService struct {
	store PunStore
	pick  func(n int) int
}

func NewPunService(store PunStore) *PunService {
	return &PunService{store: store, pick: rand.IntN}
}

// Random returns a pun visible in guildID: either global or the guild's own.
func (s *PunService) Random(ctx context.Context, guildID string) (domain.Pun, error) {
	puns, err := s.store.ListPunsForGuild(ctx, guildID)
	if err != nil {
		return domain.Pun{}, fmt.Errorf("list puns: %w", err)
	}
	if len(puns) == 0 {
		return domain.Pun{}, domain.ErrNoPuns
	}
	return puns[s.pick(len(puns))], nil
}
