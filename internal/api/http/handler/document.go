package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/avshem/docvault/internal/logger"
	"github.com/avshem/docvault/internal/model"
)

// DocumentService defines ownership-scoped document operations.
type DocumentService interface {
	Upload(ctx context.Context, userID int64, originalName string, content []byte) (model.Document, error)
	List(ctx context.Context, userID int64) ([]model.Document, error)
	Fetch(ctx context.Context, userID, documentID int64) (model.Document, io.ReadCloser, error)
	Delete(ctx context.Context, userID, documentID int64) error
}

// Document handles HTTP endpoints for document operations. All routes are
// mounted behind the Authenticate middleware, so claims are always in the
// request context.
type Document struct {
	documentService DocumentService
	contextManager  model.ContextManager
	maxUploadSize   int64
	logger          *logger.Logger
}

// NewDocument creates a new Document handler.
func NewDocument(documentService DocumentService, contextManager model.ContextManager, maxUploadSize int64, logger *logger.Logger) *Document {
	return &Document{
		documentService: documentService,
		contextManager:  contextManager,
		maxUploadSize:   maxUploadSize,
		logger:          logger,
	}
}

type documentResponse struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Upload accepts a multipart file under the "file" field.
func (h *Document) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		RespondJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "authentication required"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "file is missing or too large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "file is missing"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "failed to read file"})
		return
	}

	document, err := h.documentService.Upload(r.Context(), claims.UserID, header.Filename, content)
	if err != nil {
		handleError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"ok": true, "document": toDocumentResponse(document)})
}

// List returns the caller's documents, newest first.
func (h *Document) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		RespondJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "authentication required"})
		return
	}

	documents, err := h.documentService.List(r.Context(), claims.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]documentResponse, 0, len(documents))
	for _, document := range documents {
		out = append(out, toDocumentResponse(document))
	}

	RespondJSON(w, http.StatusOK, map[string]any{"ok": true, "documents": out})
}

// Fetch streams the raw document bytes.
func (h *Document) Fetch(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		RespondJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "authentication required"})
		return
	}

	documentID, ok := documentIDFromRequest(r)
	if !ok {
		handleError(w, model.ErrNotFound)
		return
	}

	document, reader, err := h.documentService.Fetch(r.Context(), claims.UserID, documentID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{
		"filename": sanitizeFilename(document.OriginalName),
	}))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Document handler: failed to stream document",
			"document_id", documentID,
			"error", err.Error())
	}
}

// Delete removes a document and reports 404 when the id does not exist or
// belongs to another user.
func (h *Document) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		RespondJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "authentication required"})
		return
	}

	documentID, ok := documentIDFromRequest(r)
	if !ok {
		handleError(w, model.ErrNotFound)
		return
	}

	if err := h.documentService.Delete(r.Context(), claims.UserID, documentID); err != nil {
		handleError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func documentIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toDocumentResponse(document model.Document) documentResponse {
	return documentResponse{
		ID:           document.ID,
		OriginalName: document.OriginalName,
		UploadedAt:   document.UploadedAt,
	}
}

// sanitizeFilename strips path separators and control characters from the
// user-supplied display name before it is echoed in a response header.
func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "document"
	}
	return name
}
