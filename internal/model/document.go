package model

import (
	"context"
	"time"
)

// DocumentStore defines persistence operations for document metadata.
// Every read and delete is scoped by owner in a single statement so that
// ownership can never change between check and act.
type DocumentStore interface {
	Create(ctx context.Context, document Document) (Document, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]Document, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (Document, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (string, error)
}

// Document represents stored document metadata. Metadata is immutable once
// created; the row is only ever inserted or deleted.
type Document struct {
	ID           int64
	OwnerID      int64
	BlobKey      string
	OriginalName string
	UploadedAt   time.Time
}
