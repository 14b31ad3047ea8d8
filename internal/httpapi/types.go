// ABOUTME: JSON response shapes for the API and converters from store types
// ABOUTME: User objects carry display fields only; credentials never serialize

package httpapi

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/collab"
	"github.com/taskdeck/taskdeck/internal/store"
)

// UserResponse is the public shape of a user: id, name, email, image.
// Nothing else ever leaves the server.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// TagResponse is a tag in API responses.
type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SubtaskResponse is a subtask in API responses.
type SubtaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// CommentResponse is a comment with its author and rendered HTML.
type CommentResponse struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"taskId"`
	Content   string        `json:"content"`
	HTML      string        `json:"html"`
	User      *UserResponse `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AttachmentResponse is an attachment in API responses.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivityResponse is an activity note with its actor.
type ActivityResponse struct {
	ID        string        `json:"id"`
	Action    string        `json:"action"`
	User      *UserResponse `json:"user"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// TaskResponse is a fully populated task.
type TaskResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Priority    string               `json:"priority"`
	Status      string               `json:"status"`
	DueDate     *time.Time           `json:"dueDate"`
	Owner       *UserResponse        `json:"user"`
	Tags        []TagResponse        `json:"tags"`
	Assignees   []*UserResponse      `json:"assignees"`
	Subtasks    []SubtaskResponse    `json:"subtasks"`
	Comments    []CommentResponse    `json:"comments"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func toUserResponse(u *store.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

func toCommentResponse(c *store.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Content:   c.Content,
		HTML:      collab.RenderMarkdown(c.Content),
		User:      toUserResponse(c.User),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTaskResponse(t *store.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate,
		Owner:       toUserResponse(t.Owner),
		Tags:        []TagResponse{},
		Assignees:   []*UserResponse{},
		Subtasks:    []SubtaskResponse{},
		Comments:    []CommentResponse{},
		Attachments: []AttachmentResponse{},
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	for _, tag := range t.Tags {
		resp.Tags = append(resp.Tags, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
	}
	for _, a := range t.Assignees {
		resp.Assignees = append(resp.Assignees, toUserResponse(a))
	}
	for _, sub := range t.Subtasks {
		resp.Subtasks = append(resp.Subtasks, SubtaskResponse{
			ID: sub.ID, Title: sub.Title, Completed: sub.Completed, Order: sub.OrderIndex,
		})
	}
	for _, c := range t.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}
	for _, att := range t.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID: att.ID, Filename: att.Filename, URL: att.URL, CreatedAt: att.CreatedAt,
		})
	}
	return resp
}

func toActivityResponse(e collab.ActivityEntry) ActivityResponse {
	return ActivityResponse{
		ID:        e.ID,
		Action:    e.Action,
		User:      toUserResponse(e.User),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
