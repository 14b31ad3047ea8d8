// ABOUTME: Task mutation service orchestrating store writes under policy checks
// ABOUTME: Validation and authorization run before any mutating store call

package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/store"
)

// Validation errors, surfaced to callers as 400s.
var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidDueDate  = errors.New("invalid due date")
)

// dueDateFormats are accepted for dueDate strings, tried in order.
var dueDateFormats = []string{time.RFC3339, "2006-01-02"}

// EventRecorder records activity notes for task mutations. Implementations
// must be best-effort: recording never fails the triggering operation.
type EventRecorder interface {
	RecordEvent(ctx context.Context, taskID, actorID, action, detail string)
}

// NopRecorder is an EventRecorder that drops everything.
type NopRecorder struct{}

// RecordEvent does nothing.
func (NopRecorder) RecordEvent(context.Context, string, string, string, string) {}

// SubtaskRequest is a subtask supplied on create or update. Order is
// derived from position in the request slice.
type SubtaskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateRequest carries the fields for a new task. The owner is always the
// caller, never taken from the request.
type CreateRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    string           `json:"priority"`
	Status      string           `json:"status"`
	DueDate     string           `json:"dueDate"`
	TagIDs      []string         `json:"tagIds"`
	AssigneeIDs []string         `json:"assigneeIds"`
	Subtasks    []SubtaskRequest `json:"subtasks"`
}

// UpdateRequest carries a partial task update. Nil scalar pointers leave
// the field unchanged. DueDate is always applied: a nil pointer clears the
// due date, matching the board's wire contract. Nil lists leave the
// corresponding collection untouched; supplied lists (empty included)
// replace it wholesale.
type UpdateRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Priority    *string           `json:"priority"`
	Status      *string           `json:"status"`
	DueDate     *string           `json:"dueDate"`
	TagIDs      *[]string         `json:"tagIds"`
	AssigneeIDs *[]string         `json:"assigneeIds"`
	Subtasks    *[]SubtaskRequest `json:"subtasks"`
}

// Service implements the task mutation operations.
type Service struct {
	store  store.Store
	events EventRecorder
	logger *slog.Logger
}

// NewService creates a task service. A nil recorder disables activity notes.
func NewService(st store.Store, events EventRecorder, logger *slog.Logger) *Service {
	if events == nil {
		events = NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		events: events,
		logger: logger.With("component", "task"),
	}
}

// List returns every task the caller owns or is assigned to, fully
// populated, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*store.Task, error) {
	return s.store.ListTasksForUser(ctx, userID)
}

// Create validates the request and creates the task with its relations in
// one atomic step. The caller becomes the owner.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*store.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}

	priority := req.Priority
	if priority == "" {
		priority = store.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
	}

	status := req.Status
	if status == "" {
		status = store.StatusTodo
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &parsed
	}

	task := &store.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     dueDate,
		OwnerID:     userID,
	}

	created, err := s.store.CreateTask(ctx, task, req.TagIDs, req.AssigneeIDs, subtaskInputs(req.Subtasks))
	if err != nil {
		return nil, err
	}

	s.events.RecordEvent(ctx, created.ID, userID, "created this task", created.Title)
	return created, nil
}

// Update applies a partial update. Existence is checked before permission,
// so an unknown id yields not-found even for callers who could never see
// the task. Requires CanMutate: owner or any current assignee.
func (s *Service) Update(ctx context.Context, userID, taskID string, req UpdateRequest) (*store.Task, error) {
	existing, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(userID, existing) {
		return nil, policy.ErrForbidden
	}

	upd := store.TaskUpdate{
		Description: req.Description,
		TagIDs:      req.TagIDs,
		AssigneeIDs: req.AssigneeIDs,
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitle
		}
		upd.Title = req.Title
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *req.Priority)
		}
		upd.Priority = req.Priority
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		upd.Status = req.Status
	}
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		upd.DueDate = &parsed
	}
	if req.Subtasks != nil {
		inputs := subtaskInputs(*req.Subtasks)
		upd.Subtasks = &inputs
	}

	updated, err := s.store.UpdateTask(ctx, taskID, upd)
	if err != nil {
		return nil, err
	}

	s.events.RecordEvent(ctx, taskID, userID, "updated this task", updated.Title)
	return updated, nil
}

// Delete permanently removes a task. Owner only; the store cascades to
// every dependent row.
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	existing, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !policy.CanDelete(userID, existing) {
		return policy.ErrForbidden
	}

	return s.store.DeleteTask(ctx, taskID)
}

// Duplicate creates a copy of a task the caller can read. The copy is
// titled "<title> (Copy)", reset to todo, owned by the caller, with subtask
// titles carried over unchecked and tag and assignee ids copied verbatim.
// Comments and attachments are not copied.
func (s *Service) Duplicate(ctx context.Context, userID, taskID string) (*store.Task, error) {
	src, err := s.store.GetTaskFull(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanRead(userID, src) {
		return nil, policy.ErrForbidden
	}

	copyTask := &store.Task{
		Title:       src.Title + " (Copy)",
		Description: src.Description,
		Priority:    src.Priority,
		Status:      store.StatusTodo,
		DueDate:     src.DueDate,
		OwnerID:     userID,
	}

	tagIDs := make([]string, 0, len(src.Tags))
	for _, tag := range src.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	assigneeIDs := make([]string, 0, len(src.Assignees))
	for _, a := range src.Assignees {
		assigneeIDs = append(assigneeIDs, a.ID)
	}
	subtasks := make([]store.SubtaskInput, 0, len(src.Subtasks))
	for _, sub := range src.Subtasks {
		subtasks = append(subtasks, store.SubtaskInput{Title: sub.Title, Completed: false})
	}

	created, err := s.store.CreateTask(ctx, copyTask, tagIDs, assigneeIDs, subtasks)
	if err != nil {
		return nil, err
	}

	s.events.RecordEvent(ctx, created.ID, userID, "duplicated this task", "from "+src.Title)
	return created, nil
}

// subtaskInputs converts request subtasks to store inputs.
func subtaskInputs(reqs []SubtaskRequest) []store.SubtaskInput {
	inputs := make([]store.SubtaskInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, store.SubtaskInput{Title: r.Title, Completed: r.Completed})
	}
	return inputs
}

// parseDueDate parses a due date string as RFC3339 or YYYY-MM-DD.
func parseDueDate(s string) (time.Time, error) {
	for _, format := range dueDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
}

func validPriority(p string) bool {
	switch p {
	case store.PriorityLow, store.PriorityMedium, store.PriorityHigh:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case store.StatusTodo, store.StatusInProgress, store.StatusDone:
		return true
	}
	return false
}
