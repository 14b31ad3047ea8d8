// ABOUTME: Tests for the HTTP client against a stub server
// ABOUTME: Verifies auth headers, wire shapes, and error mapping

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]Task{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	_, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_CreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)

		var req CreateTaskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ship it", req.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Task{ID: "t1", Title: req.Title, Status: "todo"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	task, err := c.CreateTask(context.Background(), CreateTaskRequest{Title: "Ship it"})
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, "todo", task.Status)
}

func TestClient_UpdateTaskPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/tasks/t1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Task{ID: "t1", Status: "done"})
	}))
	defer srv.Close()

	status := "done"
	c := New(srv.URL, "tok")
	task, err := c.UpdateTask(context.Background(), "t1", UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "done", task.Status)
}

func TestClient_DeleteComment_QueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/tasks/t1/comments", r.URL.Path)
		require.Equal(t, "c9", r.URL.Query().Get("commentId"))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "comment deleted"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	require.NoError(t, c.DeleteComment(context.Background(), "t1", "c9"))
}

func TestClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	err := c.DeleteTask(context.Background(), "t1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "forbidden", apiErr.Message)
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "health needs no auth")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	require.NoError(t, c.Health(context.Background()))
}
