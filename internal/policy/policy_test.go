package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/store"
)

func taskWith(ownerID string, assigneeIDs ...string) *store.Task {
	task := &store.Task{ID: "task-1", OwnerID: ownerID}
	for _, id := range assigneeIDs {
		task.Assignees = append(task.Assignees, &store.User{ID: id})
	}
	return task
}

func TestCanRead(t *testing.T) {
	task := taskWith("owner", "assignee")

	assert.True(t, CanRead("owner", task))
	assert.True(t, CanRead("assignee", task))
	assert.False(t, CanRead("stranger", task))
}

func TestCanRead_AssignmentChanges(t *testing.T) {
	task := taskWith("owner")
	assert.False(t, CanRead("helper", task))

	// Assign
	task.Assignees = append(task.Assignees, &store.User{ID: "helper"})
	assert.True(t, CanRead("helper", task))

	// Unassign
	task.Assignees = nil
	assert.False(t, CanRead("helper", task))
}

func TestCanMutate_MatchesRead(t *testing.T) {
	task := taskWith("owner", "assignee")

	assert.True(t, CanMutate("owner", task))
	assert.True(t, CanMutate("assignee", task))
	assert.False(t, CanMutate("stranger", task))
}

func TestCanDelete_OwnerOnly(t *testing.T) {
	task := taskWith("owner", "assignee")

	assert.True(t, CanDelete("owner", task))
	assert.False(t, CanDelete("assignee", task))
	assert.False(t, CanDelete("stranger", task))
}

func TestCanDeleteComment_AuthorOnly(t *testing.T) {
	comment := &store.Comment{ID: "c-1", TaskID: "task-1", UserID: "author"}

	assert.True(t, CanDeleteComment("author", comment))
	// Task ownership grants no comment-deletion right
	assert.False(t, CanDeleteComment("owner", comment))
}
