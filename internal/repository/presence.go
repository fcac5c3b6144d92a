package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/set-night/crouton/internal/domain"
)

const listPresence = `
SELECT id, activity, type, created_at
FROM presence
ORDER BY id`

func (q *Queries) ListPresence(ctx context.Context) ([]domain.Presence, error) {
	rows, err := q.db.Query(ctx, listPresence)
	if err != nil {
		return nil, fmt.Errorf("query presence: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Presence, error) {
		var (
			p       domain.Presence
			rawType string
		)
		err := row.Scan(&p.ID, &p.Activity, &rawType, &p.CreatedAt)
		p.Type = domain.ParseActivityType(rawType)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan presence: %w", err)
	}
	return list, nil
}
