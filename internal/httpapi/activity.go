// ABOUTME: Activity endpoint handlers: list the feed, record a note
// ABOUTME: Recording is best-effort downstream; the endpoint still validates input

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/collab"
)

type createActivityRequest struct {
	Action string `json:"action"`
	Detail string `json:"detail"`
}

func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	entries, err := s.collab.ListActivity(r.Context(), taskID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	resp := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toActivityResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	var req createActivityRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Action) == "" {
		writeError(w, s.logger, collab.ErrEmptyAction)
		return
	}

	s.collab.RecordEvent(r.Context(), taskID, id.UserID, req.Action, req.Detail)
	writeJSON(w, http.StatusCreated, messageResponse{Message: "activity recorded"})
}
