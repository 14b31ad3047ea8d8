// ABOUTME: Task, comment, and activity methods plus their wire types
// ABOUTME: Types mirror the server's JSON contract exactly

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// User is a user's public display fields.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// Tag is a board label.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Subtask is a checklist item under a task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// Comment is a user comment with rendered HTML.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Activity is one entry in a task's activity feed.
type Activity struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	User      *User  `json:"user"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Attachment is a file reference on a task.
type Attachment struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is a fully populated board card.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	DueDate     *time.Time   `json:"dueDate"`
	Owner       *User        `json:"user"`
	Tags        []Tag        `json:"tags"`
	Assignees   []*User      `json:"assignees"`
	Subtasks    []Subtask    `json:"subtasks"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SubtaskInput is a subtask in a create or update request. Order comes
// from position in the slice.
type SubtaskInput struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest creates a task. The server sets the owner to the caller.
type CreateTaskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    string         `json:"priority,omitempty"`
	Status      string         `json:"status,omitempty"`
	DueDate     string         `json:"dueDate,omitempty"`
	TagIDs      []string       `json:"tagIds,omitempty"`
	AssigneeIDs []string       `json:"assigneeIds,omitempty"`
	Subtasks    []SubtaskInput `json:"subtasks,omitempty"`
}

// UpdateTaskRequest carries a partial update. Nil fields stay untouched;
// a supplied list, empty included, replaces the collection. DueDate is
// always applied: leaving it nil clears the task's due date.
type UpdateTaskRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Priority    *string         `json:"priority,omitempty"`
	Status      *string         `json:"status,omitempty"`
	DueDate     *string         `json:"dueDate,omitempty"`
	TagIDs      *[]string       `json:"tagIds,omitempty"`
	AssigneeIDs *[]string       `json:"assigneeIds,omitempty"`
	Subtasks    *[]SubtaskInput `json:"subtasks,omitempty"`
}

// ListTasks returns every task the caller owns or is assigned to.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task owned by the caller.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(taskID), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask permanently removes a task. Owner only.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(taskID), nil, nil)
}

// DuplicateTask copies a task the caller can read; the caller owns the copy.
func (c *Client) DuplicateTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(taskID)+"/duplicate", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListComments returns a task's comments, newest first.
func (c *Client) ListComments(ctx context.Context, taskID string) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(taskID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment adds a comment authored by the caller.
func (c *Client) CreateComment(ctx context.Context, taskID, content string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(taskID)+"/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment the caller authored.
func (c *Client) DeleteComment(ctx context.Context, taskID, commentID string) error {
	path := "/api/tasks/" + url.PathEscape(taskID) + "/comments?commentId=" + url.QueryEscape(commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListActivity returns up to the 50 newest activity entries for a task.
func (c *Client) ListActivity(ctx context.Context, taskID string) ([]Activity, error) {
	var entries []Activity
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(taskID)+"/activity", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordActivity appends a manual entry to a task's activity feed.
func (c *Client) RecordActivity(ctx context.Context, taskID, action, detail string) error {
	body := map[string]string{"action": action, "detail": detail}
	return c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(taskID)+"/activity", body, nil)
}

// CreateAttachment records attachment metadata on a task.
func (c *Client) CreateAttachment(ctx context.Context, taskID, filename, fileURL string) (*Attachment, error) {
	var att Attachment
	body := map[string]string{"filename": filename, "url": fileURL}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(taskID)+"/attachments", body, &att); err != nil {
		return nil, err
	}
	return &att, nil
}

// ListTags returns all tags on the board.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a board-wide tag.
func (c *Client) CreateTag(ctx context.Context, name, tagColor string) (*Tag, error) {
	var tag Tag
	body := map[string]string{"name": name, "color": tagColor}
	if err := c.do(ctx, http.MethodPost, "/api/tags", body, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListUsers returns every user's public display fields.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
