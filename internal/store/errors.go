package store

import "errors"

// ErrNoHint is returned when no id has been remembered under a key.
var ErrNoHint = errors.New("no id remembered for key")

// hintsSchema matches db/migrations/00001_create_id_hints.sql.
const hintsSchema = `
CREATE TABLE IF NOT EXISTS id_hints (
	key        TEXT PRIMARY KEY,
	id         TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
