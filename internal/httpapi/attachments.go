// ABOUTME: Attachment metadata handler
// ABOUTME: Records filename and URL only; blob storage lives elsewhere

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/store"
)

type createAttachmentRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func (s *Server) handleCreateAttachment(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	var req createAttachmentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Filename) == "" || strings.TrimSpace(req.URL) == "" {
		badRequest(w, "filename and url are required")
		return
	}

	task, err := s.store.GetTask(r.Context(), taskID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if !policy.CanMutate(id.UserID, task) {
		writeError(w, s.logger, policy.ErrForbidden)
		return
	}

	att := &store.Attachment{
		TaskID:   taskID,
		Filename: req.Filename,
		URL:      req.URL,
	}
	if err := s.store.CreateAttachment(r.Context(), att); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, AttachmentResponse{
		ID: att.ID, Filename: att.Filename, URL: att.URL, CreatedAt: att.CreatedAt,
	})
}
