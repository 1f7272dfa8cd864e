// Package router wires handlers and middleware into the HTTP route table.
package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avshem/docvault/internal/api/http/handler"
	"github.com/avshem/docvault/internal/api/http/middleware"
	"github.com/avshem/docvault/internal/logger"
	"github.com/avshem/docvault/internal/model"
)

// Router builds the HTTP handler tree.
type Router struct {
	authService     handler.AuthService
	documentService handler.DocumentService
	sessions        model.SessionManager
	contextManager  model.ContextManager
	maxUploadSize   int64
	logger          *logger.Logger
}

// New creates a Router with all dependencies injected.
func New(
	authService handler.AuthService,
	documentService handler.DocumentService,
	sessions model.SessionManager,
	contextManager model.ContextManager,
	maxUploadSize int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		documentService: documentService,
		sessions:        sessions,
		contextManager:  contextManager,
		maxUploadSize:   maxUploadSize,
		logger:          logger,
	}
}

// Register returns the assembled route table.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.sessions, r.logger)
	documentHandler := handler.NewDocument(r.documentService, r.contextManager, r.maxUploadSize, r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)

	root := mux.NewRouter()
	root.Use(logging.Handle)

	api := root.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(authenticate.Handle)
	private.HandleFunc("/upload", documentHandler.Upload).Methods(http.MethodPost)
	private.HandleFunc("/documents", documentHandler.List).Methods(http.MethodGet)
	private.HandleFunc("/document/{id:[0-9]+}", documentHandler.Fetch).Methods(http.MethodGet)
	private.HandleFunc("/document/{id:[0-9]+}", documentHandler.Delete).Methods(http.MethodDelete)
	private.HandleFunc("/delete-document/{id:[0-9]+}", documentHandler.Delete).Methods(http.MethodDelete)

	return root
}
