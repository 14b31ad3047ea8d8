// ABOUTME: Comments and activity notes attached to tasks
// ABOUTME: Activity recording is fire-and-forget; failures never reach the caller

package collab

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/store"
)

// Validation errors, surfaced to callers as 400s.
var (
	ErrEmptyContent = errors.New("content is required")
	ErrEmptyAction  = errors.New("action is required")
)

// Notifier receives the set of users who should hear about a new comment:
// the task owner and all assignees, minus the commenter. No dispatch is
// wired in today; this is the extension point for it.
type Notifier interface {
	Notify(ctx context.Context, userIDs []string, taskID, commentID string)
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(context.Context, []string, string, string) {}

// ActivityEntry is an activity note shaped for listing: the storage marker
// handling is already done and the actor is attached.
type ActivityEntry struct {
	ID        string
	Action    string
	User      *store.User
	CreatedAt string
	UpdatedAt string
}

// Service implements the collaboration surface.
type Service struct {
	store             store.Store
	notifier          Notifier
	requireTaskAccess bool
	logger            *slog.Logger
}

// NewService creates a collaboration service. When requireTaskAccess is
// set, listing comments demands owner or assignee standing on the task;
// by default any authenticated caller may list, matching the original
// board's behavior.
func NewService(st store.Store, notifier Notifier, requireTaskAccess bool, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:             st,
		notifier:          notifier,
		requireTaskAccess: requireTaskAccess,
		logger:            logger.With("component", "collab"),
	}
}

// ListComments returns the comments on a task, newest first, with author
// display fields.
func (s *Service) ListComments(ctx context.Context, userID, taskID string) ([]*store.Comment, error) {
	if s.requireTaskAccess {
		task, err := s.store.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if !policy.CanRead(userID, task) {
			return nil, policy.ErrForbidden
		}
	}
	return s.store.ListComments(ctx, taskID)
}

// CreateComment adds a comment authored by the caller. The author is never
// taken from the request. After the write, the notification set is computed
// and handed to the Notifier.
func (s *Service) CreateComment(ctx context.Context, userID, taskID, content string) (*store.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	comment := &store.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Kind:    store.CommentKindComment,
		Content: content,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if task, err := s.store.GetTask(ctx, taskID); err == nil {
		if notify := notificationSet(task, userID); len(notify) > 0 {
			s.notifier.Notify(ctx, notify, taskID, comment.ID)
		}
	}

	return s.store.GetComment(ctx, comment.ID)
}

// DeleteComment removes a comment. Author only.
func (s *Service) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteComment(userID, comment) {
		return policy.ErrForbidden
	}
	return s.store.DeleteComment(ctx, commentID)
}

// RecordEvent stores an activity note for a task mutation. Best-effort by
// contract: any storage failure is logged and swallowed so the operation
// being described never sees it.
func (s *Service) RecordEvent(ctx context.Context, taskID, actorID, action, detail string) {
	if strings.TrimSpace(action) == "" {
		s.logger.Warn("dropping activity note with empty action", "task", taskID)
		return
	}

	content := action
	if detail != "" {
		content += ": " + detail
	}

	note := &store.Comment{
		TaskID:  taskID,
		UserID:  actorID,
		Kind:    store.CommentKindActivity,
		Content: content,
	}
	if err := s.store.CreateComment(ctx, note); err != nil {
		s.logger.Error("failed to record activity", "task", taskID, "action", action, "error", err)
	}
}

// ListActivity returns up to the 50 newest activity notes for a task.
// Rows written by the old schema carried a marker prefix in the content;
// it is stripped here so callers only ever see the action text.
func (s *Service) ListActivity(ctx context.Context, taskID string) ([]ActivityEntry, error) {
	notes, err := s.store.ListActivity(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(notes))
	for _, note := range notes {
		entries = append(entries, ActivityEntry{
			ID:        note.ID,
			Action:    strings.TrimPrefix(note.Content, store.LegacyActivityPrefix),
			User:      note.User,
			CreatedAt: note.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			UpdatedAt: note.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	return entries, nil
}

// notificationSet computes who should hear about activity on a task:
// the owner plus all assignees, minus the acting user.
func notificationSet(task *store.Task, actorID string) []string {
	seen := map[string]bool{actorID: true}
	var ids []string
	if !seen[task.OwnerID] {
		seen[task.OwnerID] = true
		ids = append(ids, task.OwnerID)
	}
	for _, a := range task.Assignees {
		if !seen[a.ID] {
			seen[a.ID] = true
			ids = append(ids, a.ID)
		}
	}
	return ids
}
