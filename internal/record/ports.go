package record

import (
	"context"

	"bookdesk/internal/entity"
)

// Gateway is the slice of the REST client a Store needs.
type Gateway interface {
	Get(ctx context.Context, path string, target any) error
	Post(ctx context.Context, path string, body, target any) error
	Put(ctx context.Context, path string, body, target any) error
	Delete(ctx context.Context, path string) error
}

// IDRecorder remembers the last id the server assigned for a resource.
type IDRecorder interface {
	Remember(ctx context.Context, key string, id entity.ID) error
}
