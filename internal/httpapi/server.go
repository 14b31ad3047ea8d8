// ABOUTME: HTTP server wiring for the taskdeck JSON API
// ABOUTME: Routes, middleware, and graceful shutdown

package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/collab"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Server hosts the JSON API over the task and collaboration services.
type Server struct {
	addr     string
	store    store.Store
	tasks    *task.Service
	collab   *collab.Service
	verifier auth.TokenVerifier
	logger   *slog.Logger
	router   *mux.Router
}

// New creates a server with all routes registered.
func New(addr string, st store.Store, tasks *task.Service, collabSvc *collab.Service, verifier auth.TokenVerifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr:     addr,
		store:    st,
		tasks:    tasks,
		collab:   collabSvc,
		verifier: verifier,
		logger:   logger.With("component", "httpapi"),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter registers all routes. Everything under /api requires a
// session; /health does not.
func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware(s.store, s.verifier))

	api.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}", s.handleUpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{taskID}", s.handleDeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{taskID}/duplicate", s.handleDuplicateTask).Methods(http.MethodPost)

	api.HandleFunc("/tasks/{taskID}/comments", s.handleListComments).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}/comments", s.handleCreateComment).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}/comments", s.handleDeleteComment).Methods(http.MethodDelete)

	api.HandleFunc("/tasks/{taskID}/activity", s.handleListActivity).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}/activity", s.handleCreateActivity).Methods(http.MethodPost)

	api.HandleFunc("/tasks/{taskID}/attachments", s.handleCreateAttachment).Methods(http.MethodPost)

	api.HandleFunc("/tags", s.handleListTags).Methods(http.MethodGet)
	api.HandleFunc("/tags", s.handleCreateTag).Methods(http.MethodPost)
	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)

	return r
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
