package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/set-night/crouton/internal/domain"
)

const listPunsForGuild = `
SELECT id, pun, guild_id, created_at
FROM puns
WHERE guild_id IS NULL OR guild_id = $1
ORDER BY id`

// ListPunsForGuild returns global puns plus the guild's own. An empty guildID
// returns only global puns.
func (q *Queries) ListPunsForGuild(ctx context.Context, guildID string) ([]domain.Pun, error) {
	rows, err := q.db.Query(ctx, listPunsForGuild, guildID)
	if err != nil {
		return nil, fmt.Errorf("query puns: %w", err)
	}
	puns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Pun, error) {
		var p domain.Pun
		err := row.Scan(&p.ID, &p.Pun, &p.GuildID, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan puns: %w", err)
	}
	return puns, nil
}

const createPun = `
INSERT INTO puns (pun, guild_id)
VALUES ($1, $2)
RETURNING id, pun, guild_id, created_at`

func (q *Queries) CreatePun(ctx context.Context, pun string, guildID *string) (domain.Pun, error) {
	var p domain.Pun
	err := q.db.QueryRow(ctx, createPun, pun, guildID).Scan(&p.ID, &p.Pun, &p.GuildID, &p.CreatedAt)
	if err != nil {
		return domain.Pun{}, fmt.Errorf("insert pun: %w", err)
	}
	return p, nil
}
