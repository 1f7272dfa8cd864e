package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/avshem/docvault/internal/logger"
	"github.com/avshem/docvault/internal/model"
)

// Document provides ownership-scoped operations over document metadata and
// blob storage. Every operation takes the validated user id; scoping to
// that id is done inside the store in a single statement.
type Document struct {
	documentStore model.DocumentStore
	storage       model.Storage
	logger        *logger.Logger
}

func NewDocument(
	documentStore model.DocumentStore,
	storage model.Storage,
	logger *logger.Logger,
) *Document {
	return &Document{
		documentStore: documentStore,
		storage:       storage,
		logger:        logger,
	}
}

// Upload stores content under a fresh opaque blob key and inserts the
// metadata row owned by userID. The user-supplied name is kept for display
// only and never becomes part of a storage path.
func (s *Document) Upload(ctx context.Context, userID int64, originalName string, content []byte) (model.Document, error) {
	if len(content) == 0 {
		return model.Document{}, model.ErrEmptyContent
	}

	blobKey := s.generateBlobKey(userID)

	if err := s.storage.Upload(ctx, blobKey, bytes.NewReader(content)); err != nil {
		return model.Document{}, fmt.Errorf("failed to upload blob: %w", err)
	}

	document, err := s.documentStore.Create(ctx, model.Document{
		OwnerID:      userID,
		BlobKey:      blobKey,
		OriginalName: originalName,
	})
	if err != nil {
		// The blob is orphaned but harmless: nothing references the key,
		// and the leak is bounded by upload failures.
		s.logger.Error("Document service: metadata insert failed, blob orphaned",
			"user_id", userID,
			"blob_key", blobKey,
			"error", err.Error())
		return model.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Info("Document service: document uploaded",
		"user_id", userID,
		"document_id", document.ID,
		"original_name", originalName)

	return document, nil
}

// List returns the user's documents, newest upload first.
func (s *Document) List(ctx context.Context, userID int64) ([]model.Document, error) {
	documents, err := s.documentStore.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

// Fetch returns the metadata and a reader over the blob for a document
// owned by userID. A document owned by someone else reports
// model.ErrNotFound exactly like an absent one.
func (s *Document) Fetch(ctx context.Context, userID, documentID int64) (model.Document, io.ReadCloser, error) {
	document, err := s.documentStore.GetByIDAndOwner(ctx, documentID, userID)
	if err != nil {
		return model.Document{}, nil, err
	}

	reader, err := s.storage.Download(ctx, document.BlobKey)
	if err != nil {
		return model.Document{}, nil, fmt.Errorf("failed to download blob: %w", err)
	}

	return document, reader, nil
}

// Delete removes the metadata row scoped to (documentID, userID) in one
// atomic statement and then attempts blob removal. Metadata deletion is
// authoritative; a failed blob removal is logged and swallowed.
func (s *Document) Delete(ctx context.Context, userID, documentID int64) error {
	blobKey, err := s.documentStore.DeleteByIDAndOwner(ctx, documentID, userID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, blobKey); err != nil {
		s.logger.Error("Document service: failed to delete blob",
			"user_id", userID,
			"document_id", documentID,
			"blob_key", blobKey,
			"error", err.Error())
	}

	s.logger.Info("Document service: document deleted",
		"user_id", userID,
		"document_id", documentID)

	return nil
}

func (s *Document) generateBlobKey(userID int64) string {
	return fmt.Sprintf("user-%d/doc-%s", userID, uuid.NewString())
}
