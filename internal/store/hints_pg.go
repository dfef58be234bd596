package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookdesk/internal/entity"
)

// HintsPG keeps last-created ids in Postgres. The id_hints table is created
// by cmd/migrate.
type HintsPG struct {
	db *pgxpool.Pool
}

func NewHintsPG(db *pgxpool.Pool) *HintsPG {
	return &HintsPG{db: db}
}

func (r *HintsPG) Remember(ctx context.Context, key string, id entity.ID) error {
	const query = `
	INSERT INTO id_hints (key, id, updated_at)
	VALUES ($1, $2, CURRENT_TIMESTAMP)
	ON CONFLICT (key) DO UPDATE SET id = EXCLUDED.id, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query, key, id.String())
	return err
}

func (r *HintsPG) Last(ctx context.Context, key string) (entity.ID, error) {
	const query = `SELECT id FROM id_hints WHERE key = $1`
	var id string
	err := r.db.QueryRow(ctx, query, key).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoHint
	}
	if err != nil {
		return "", err
	}
	return entity.ID(id), nil
}

func (r *HintsPG) Close() error {
	r.db.Close()
	return nil
}
