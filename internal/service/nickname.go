package service

import (
	"context"
	"fmt"

	"github.com/set-night/crouton/internal/domain"
)

type NicknameStore interface {
	UpsertNickname(ctx context.Context, n domain.Nickname) error
	ListNicknames(ctx context.Context, guildID, userID string) ([]domain.Nickname, error)
	DeleteNicknames(ctx context.Context, guildID, userID string) (int64, error)
	DeleteNicknamesInChannels(ctx context.Context, guildID, userID string, channelIDs []string) (int64, error)
	UpdateOldNickname(ctx context.Context, guildID, userID, oldNickname string) error
}

type NicknameService struct {
	store NicknameStore
}

func NewNicknameService(store NicknameStore) *NicknameService {
	return &NicknameService{store: store}
}

func (s *NicknameService) Set(ctx context.Context, n domain.Nickname) error {
	if n.GuildID == "" || n.UserID == "" || n.VoiceChannelID == "" || n.NewNickname == "" {
		return fmt.Errorf("set nickname: guild, user, channel and nickname are required")
	}
	return s.store.UpsertNickname(ctx, n)
}

func (s *NicknameService) List(ctx context.Context, guildID, userID string) ([]domain.Nickname, error) {
	list, err := s.store.ListNicknames(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("list nicknames: %w", err)
	}
	return list, nil
}

func (s *NicknameService) ResetAll(ctx context.Context, guildID, userID string) (int64, error) {
	n, err := s.store.DeleteNicknames(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("reset nicknames: %w", err)
	}
	return n, nil
}

func (s *NicknameService) Remove(ctx context.Context, guildID, userID string, channelIDs []string) (int64, error) {
	if len(channelIDs) == 0 {
		return 0, nil
	}
	n, err := s.store.DeleteNicknamesInChannels(ctx, guildID, userID, channelIDs)
	if err != nil {
		return 0, fmt.Errorf("remove nicknames: %w", err)
	}
	return n, nil
}

// Resolve picks the nickname to apply after a member moves from oldChannelID
// to newChannelID (either may be empty). Joining a configured channel wins
// over leaving one. ok is false when nothing should change.
func (s *NicknameService) Resolve(ctx context.Context, guildID, userID, oldChannelID, newChannelID string) (string, bool, error) {
	if oldChannelID == newChannelID {
		return "", false, nil
	}

	list, err := s.store.ListNicknames(ctx, guildID, userID)
	if err != nil {
		return "", false, fmt.Errorf("resolve nickname: %w", err)
	}

	if n, found := findChannel(list, newChannelID); found {
		return n.NewNickname, true, nil
	}
	if n, found := findChannel(list, oldChannelID); found {
		return n.OldNickname, true, nil
	}
	return "", false, nil
}

// RememberDisplayName keeps the restore-to nickname in sync when a member
// renames themselves outside a configured channel. It reports whether
// anything was updated.
func (s *NicknameService) RememberDisplayName(ctx context.Context, guildID, userID, displayName, currentChannelID string) (bool, error) {
	list, err := s.store.ListNicknames(ctx, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("remember display name: %w", err)
	}
	if len(list) == 0 {
		return false, nil
	}
	if _, inTracked := findChannel(list, currentChannelID); inTracked {
		return false, nil
	}

	stale := false
	for _, n := range list {
		if n.OldNickname != displayName {
			stale = true
			break
		}
	}
	if !stale {
		return false, nil
	}

	if err := s.store.UpdateOldNickname(ctx, guildID, userID, displayName); err != nil {
		return false, fmt.Errorf("remember display name: %w", err)
	}
	return true, nil
}

func findChannel(list []domain.Nickname, channelID string) (domain.Nickname, bool) {
	if channelID == "" {
		return domain.Nickname{}, false
	}
	for _, n := range list {
		if n.VoiceChannelID == channelID {
			return n, true
		}
	}
	return domain.Nickname{}, false
}
