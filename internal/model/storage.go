package model

import (
	"context"
	"io"
)

// Storage is durable byte storage addressed by an opaque generated key,
// independent of document metadata.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
