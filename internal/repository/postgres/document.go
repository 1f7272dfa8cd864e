package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avshem/docvault/internal/model"
)

var _ model.DocumentStore = (*DocumentRepository)(nil)

type DocumentRepository struct {
	db *Connection
}

func NewDocumentRepository(db *Connection) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, document model.Document) (model.Document, error) {
	query := `INSERT INTO documents (owner_id, blob_key, original_name)
			  VALUES ($1, $2, $3)
			  RETURNING id, owner_id, blob_key, original_name, uploaded_at`

	var saved model.Document
	err := r.db.QueryRow(ctx, query,
		document.OwnerID, document.BlobKey, document.OriginalName,
	).Scan(
		&saved.ID, &saved.OwnerID, &saved.BlobKey, &saved.OriginalName, &saved.UploadedAt,
	)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return saved, nil
}

func (r *DocumentRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	query := `SELECT id, owner_id, blob_key, original_name, uploaded_at
			  FROM documents
			  WHERE owner_id = $1
			  ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents by owner: %w", err)
	}
	defer rows.Close()

	var documents []model.Document
	for rows.Next() {
		var document model.Document
		err := rows.Scan(
			&document.ID, &document.OwnerID, &document.BlobKey,
			&document.OriginalName, &document.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return documents, nil
}

func (r *DocumentRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (model.Document, error) {
	// The id/owner conjunction is evaluated in one statement so a foreign
	// document is indistinguishable from an absent one.
	query := `SELECT id, owner_id, blob_key, original_name, uploaded_at
			  FROM documents
			  WHERE id = $1 AND owner_id = $2`

	var document model.Document
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&document.ID, &document.OwnerID, &document.BlobKey,
		&document.OriginalName, &document.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Document{}, model.ErrNotFound
		}
		return model.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	return document, nil
}

func (r *DocumentRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (string, error) {
	// Single atomic statement: the blob key comes back only if this call
	// actually removed the row, so concurrent deletes cannot both win.
	query := `DELETE FROM documents WHERE id = $1 AND owner_id = $2 RETURNING blob_key`

	var blobKey string
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(&blobKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to delete document: %w", err)
	}

	return blobKey, nil
}
