package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"bookdesk/internal/entity"
)

const (
	dialectSQLite = "sqlite3"
	tableHints    = "id_hints"
	colKey        = "key"
	colID         = "id"
	colUpdatedAt  = "updated_at"
)

// HintsSQLite keeps last-created ids in a local SQLite file.
type HintsSQLite struct {
	db *sqlx.DB
}

// OpenHintsSQLite opens (or creates) the database at path and makes sure the
// id_hints table exists.
func OpenHintsSQLite(path string) (*HintsSQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(hintsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create id_hints: %w", err)
	}
	return &HintsSQLite{db: db}, nil
}

func (r *HintsSQLite) Remember(ctx context.Context, key string, id entity.ID) error {
	query, args, err := goqu.Dialect(dialectSQLite).
		Insert(tableHints).
		Rows(goqu.Record{colKey: key, colID: id.String(), colUpdatedAt: goqu.L("CURRENT_TIMESTAMP")}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colID:        goqu.L("excluded.id"),
			colUpdatedAt: goqu.L("excluded.updated_at"),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *HintsSQLite) Last(ctx context.Context, key string) (entity.ID, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableHints).
		Select(colID).
		Where(goqu.Ex{colKey: key}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("build select: %w", err)
	}

	var id string
	err = r.db.GetContext(ctx, &id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoHint
	}
	if err != nil {
		return "", err
	}
	return entity.ID(id), nil
}

func (r *HintsSQLite) Close() error {
	return r.db.Close()
}
