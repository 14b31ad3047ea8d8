// ABOUTME: Tag and user listing handlers for board pickers
// ABOUTME: Tags are process-wide; any authenticated user may create one

package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/store"
)

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	resp := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(w, "name is required")
		return
	}

	tag := &store.Tag{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Color: req.Color,
	}
	if err := s.store.CreateTag(r.Context(), tag); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	resp := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}
