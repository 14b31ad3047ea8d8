// ABOUTME: Task endpoint handlers: list, create, update, delete, duplicate
// ABOUTME: The acting user always comes from the authenticated identity

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/task"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	tasks, err := s.tasks.List(r.Context(), id.UserID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req task.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.tasks.Create(r.Context(), id.UserID, req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	var req task.UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.tasks.Update(r.Context(), id.UserID, taskID, req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(updated))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	if err := s.tasks.Delete(r.Context(), id.UserID, taskID); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "task deleted"})
}

func (s *Server) handleDuplicateTask(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	created, err := s.tasks.Duplicate(r.Context(), id.UserID, taskID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}
