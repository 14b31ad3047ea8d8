// ABOUTME: Pure authorization decisions for tasks and comments
// ABOUTME: No I/O; callers load the task with assignees before asking

package policy

import (
	"errors"

	"github.com/taskdeck/taskdeck/internal/store"
)

// ErrForbidden is returned by services when a policy check fails. It is
// distinct from authentication failure (no session) and from not-found.
var ErrForbidden = errors.New("forbidden")

// CanRead reports whether the user may see the task: owner or assignee.
// List endpoints apply the same rule as a query filter.
func CanRead(userID string, task *store.Task) bool {
	return task.OwnerID == userID || task.AssignedTo(userID)
}

// CanMutate reports whether the user may update the task's fields and
// replace its tag, assignee, and subtask collections. Deliberately as broad
// as CanRead: any assignee can rewrite the task, including removing
// themselves or other assignees.
func CanMutate(userID string, task *store.Task) bool {
	return CanRead(userID, task)
}

// CanDelete reports whether the user may permanently remove the task.
// Owner only; assignees cannot delete.
func CanDelete(userID string, task *store.Task) bool {
	return task.OwnerID == userID
}

// CanDeleteComment reports whether the user may delete the comment.
// Author only; owning the parent task grants nothing here.
func CanDeleteComment(userID string, comment *store.Comment) bool {
	return comment.UserID == userID
}
