// ABOUTME: Comment endpoint handlers: list, create, delete
// ABOUTME: Delete takes the comment id as a query parameter, not a path segment

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/internal/auth"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	comments, err := s.collab.ListComments(r.Context(), id.UserID, taskID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := mux.Vars(r)["taskID"]

	var req createCommentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	comment, err := s.collab.CreateComment(r.Context(), id.UserID, taskID, req.Content)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	commentID := r.URL.Query().Get("commentId")
	if commentID == "" {
		badRequest(w, "commentId is required")
		return
	}

	if err := s.collab.DeleteComment(r.Context(), id.UserID, commentID); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "comment deleted"})
}
