package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/set-night/crouton/internal/domain"
)

const nicknameColumns = `guild_id, user_id, voice_channel_id, old_nickname, new_nickname, created_at, updated_at`

func scanNickname(row pgx.CollectableRow) (domain.Nickname, error) {
	var n domain.Nickname
	err := row.Scan(&n.GuildID, &n.UserID, &n.VoiceChannelID, &n.OldNickname, &n.NewNickname, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

const upsertNickname = `
INSERT INTO nicknames (guild_id, user_id, voice_channel_id, old_nickname, new_nickname)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (guild_id, user_id, voice_channel_id)
DO UPDATE SET old_nickname = EXCLUDED.old_nickname,
              new_nickname = EXCLUDED.new_nickname,
              updated_at   = NOW()`

func (q *Queries) UpsertNickname(ctx context.Context, n domain.Nickname) error {
	_, err := q.db.Exec(ctx, upsertNickname, n.GuildID, n.UserID, n.VoiceChannelID, n.OldNickname, n.NewNickname)
	if err != nil {
		return fmt.Errorf("upsert nickname: %w", err)
	}
	return nil
}

const listNicknames = `
SELECT ` + nicknameColumns + `
FROM nicknames
WHERE guild_id = $1 AND user_id = $2
ORDER BY created_at`

func (q *Queries) ListNicknames(ctx context.Context, guildID, userID string) ([]domain.Nickname, error) {
	rows, err := q.db.Query(ctx, listNicknames, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("query nicknames: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanNickname)
	if err != nil {
		return nil, fmt.Errorf("scan nicknames: %w", err)
	}
	return list, nil
}

const deleteNicknames = `
DELETE FROM nicknames
WHERE guild_id = $1 AND user_id = $2`

func (q *Queries) DeleteNicknames(ctx context.Context, guildID, userID string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteNicknames, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete nicknames: %w", err)
	}
	return tag.RowsAffected(), nil
}

const deleteNicknamesInChannels = `
DELETE FROM nicknames
WHERE guild_id = $1 AND user_id = $2 AND voice_channel_id = ANY($3)`

func (q *Queries) DeleteNicknamesInChannels(ctx context.Context, guildID, userID string, channelIDs []string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteNicknamesInChannels, guildID, userID, channelIDs)
	if err != nil {
		return 0, fmt.Errorf("delete nicknames in channels: %w", err)
	}
	return tag.RowsAffected(), nil
}

const updateOldNickname = `
UPDATE nicknames
SET old_nickname = $3, updated_at = NOW()
WHERE guild_id = $1 AND user_id = $2`

func (q *Queries) UpdateOldNickname(ctx context.Context, guildID, userID, oldNickname string) error {
	if _, err := q.db.Exec(ctx, updateOldNickname, guildID, userID, oldNickname); err != nil {
		return fmt.Errorf("update old nickname: %w", err)
	}
	return nil
}
