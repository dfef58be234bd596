// Package hints remembers the id the server last assigned per resource. The
// hints are a convenience for front ends and never affect store state.
package hints

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"bookdesk/internal/entity"
	"bookdesk/internal/store"
)

var ErrNoHint = store.ErrNoHint

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Store interface {
	Remember(ctx context.Context, key string, id entity.ID) error
	Last(ctx context.Context, key string) (entity.ID, error)
	Close() error
}

// Open picks a backend from dsn:
//
//	""                       in-memory
//	postgres://, postgresql:// Postgres (table created by cmd/migrate)
//	sqlite://path, *.db      SQLite file
//	file://path, anything else JSON file
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "":
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open hints postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping hints postgres: %w", err)
		}
		return store.NewHintsPG(pool), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return store.OpenHintsSQLite(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return store.OpenHintsSQLite(dsn)
	default:
		return NewFile(strings.TrimPrefix(dsn, "file://")), nil
	}
}

// Memory keeps hints for the life of the process.
type Memory struct {
	mu  sync.RWMutex
	ids map[string]entity.ID
}

func NewMemory() *Memory {
	return &Memory{ids: make(map[string]entity.ID)}
}

func (m *Memory) Remember(_ context.Context, key string, id entity.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[key] = id
	return nil
}

func (m *Memory) Last(_ context.Context, key string) (entity.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.ids[key]
	if !ok {
		return "", ErrNoHint
	}
	return id, nil
}

func (m *Memory) Close() error { return nil }

// File keeps hints as a small JSON object on disk, like browser local storage.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) read() (map[string]entity.ID, error) {
	ids := make(map[string]entity.ID)
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return ids, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return ids, nil
}

func (f *File) Remember(_ context.Context, key string, id entity.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids, err := f.read()
	if err != nil {
		return err
	}
	ids[key] = id

	b, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Last(_ context.Context, key string) (entity.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids, err := f.read()
	if err != nil {
		return "", err
	}
	id, ok := ids[key]
	if !ok {
		return "", ErrNoHint
	}
	return id, nil
}

func (f *File) Close() error { return nil }
