package task

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/collab"
	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/store"
)

// setupService creates a task service backed by a real temp-dir store,
// with activity recording wired through the collab service.
func setupService(t *testing.T) (*Service, *collab.Service, *store.GormStore) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	collabSvc := collab.NewService(st, nil, false, slog.Default())
	return NewService(st, collabSvc, slog.Default()), collabSvc, st
}

func createUser(t *testing.T, st *store.GormStore, name string) *store.User {
	t.Helper()
	user := &store.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func TestService_Create_Defaults(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "alice")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "Ship release"})
	require.NoError(t, err)

	assert.Equal(t, store.PriorityMedium, task.Priority)
	assert.Equal(t, store.StatusTodo, task.Status)
	assert.Equal(t, owner.ID, task.OwnerID)
	assert.Nil(t, task.DueDate)
}

func TestService_Create_OwnerNeverClientSupplied(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	caller := createUser(t, st, "caller")

	// OwnerID is not part of CreateRequest at all; the caller always owns.
	task, err := svc.Create(ctx, caller.ID, CreateRequest{Title: "mine"})
	require.NoError(t, err)
	assert.Equal(t, caller.ID, task.OwnerID)
}

func TestService_Create_EmptyTitle(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "alice")

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, owner.ID, CreateRequest{Title: title})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	}

	// Nothing persisted
	tasks, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestService_Create_DueDateParsing(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "alice")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "dated", DueDate: "2026-09-15"})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, 15, task.DueDate.Day())

	_, err = svc.Create(ctx, owner.ID, CreateRequest{Title: "bad date", DueDate: "next tuesday"})
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestService_Create_InvalidEnums(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "alice")

	_, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "t", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = svc.Create(ctx, owner.ID, CreateRequest{Title: "t", Status: "blocked"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Create_WithSubtaskOrder(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "alice")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{
		Title:    "ordered",
		Subtasks: []SubtaskRequest{{Title: "a"}, {Title: "b", Completed: true}, {Title: "c"}},
	})
	require.NoError(t, err)

	require.Len(t, task.Subtasks, 3)
	for i, sub := range task.Subtasks {
		assert.Equal(t, i, sub.OrderIndex)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	stranger := createUser(t, st, "stranger")

	// Existence is checked before permission
	status := store.StatusDone
	_, err := svc.Update(ctx, stranger.ID, "nonexistent", UpdateRequest{Status: &status})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_Update_AssigneeCanMutate(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()

	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")
	carol := createUser(t, st, "carol")

	task, err := svc.Create(ctx, alice.ID, CreateRequest{
		Title:       "Ship release",
		Priority:    store.PriorityHigh,
		AssigneeIDs: []string{bob.ID},
	})
	require.NoError(t, err)

	// Bob is an assignee: the update succeeds
	status := store.StatusInProgress
	updated, err := svc.Update(ctx, bob.ID, task.ID, UpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, store.StatusInProgress, updated.Status)

	// Carol is unrelated: forbidden, status unchanged
	done := store.StatusDone
	_, err = svc.Update(ctx, carol.ID, task.ID, UpdateRequest{Status: &done})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	current, err := st.GetTaskFull(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusInProgress, current.Status)
}

func TestService_Update_AssigneeCanRemoveThemselves(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()

	owner := createUser(t, st, "owner")
	helper := createUser(t, st, "helper")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{
		Title:       "shared",
		AssigneeIDs: []string{helper.ID},
	})
	require.NoError(t, err)

	// The mutate permission is deliberately broad: an assignee may rewrite
	// the assignee list, including dropping themselves.
	empty := []string{}
	updated, err := svc.Update(ctx, helper.ID, task.ID, UpdateRequest{AssigneeIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Assignees)

	// Having removed themselves, they can no longer mutate
	title := "locked out"
	_, err = svc.Update(ctx, helper.ID, task.ID, UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, policy.ErrForbidden)
}

func TestService_Update_EmptyTitleRejected(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "keep me"})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(ctx, owner.ID, task.ID, UpdateRequest{Title: &blank})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	current, err := st.GetTaskFull(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", current.Title)
}

func TestService_Delete_OwnerOnly(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()

	owner := createUser(t, st, "owner")
	assignee := createUser(t, st, "assignee")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{
		Title:       "precious",
		AssigneeIDs: []string{assignee.ID},
	})
	require.NoError(t, err)

	// Assignees cannot delete
	err = svc.Delete(ctx, assignee.ID, task.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = st.GetTask(ctx, task.ID)
	require.NoError(t, err, "task must survive a forbidden delete")

	// The owner can
	require.NoError(t, svc.Delete(ctx, owner.ID, task.ID))
	_, err = st.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_Duplicate(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()

	owner := createUser(t, st, "owner")
	assignee := createUser(t, st, "assignee")
	tag := &store.Tag{Name: "release"}
	require.NoError(t, st.CreateTag(ctx, tag))

	src, err := svc.Create(ctx, owner.ID, CreateRequest{
		Title:       "Ship release",
		Status:      store.StatusDone,
		Priority:    store.PriorityHigh,
		TagIDs:      []string{tag.ID},
		AssigneeIDs: []string{assignee.ID},
		Subtasks:    []SubtaskRequest{{Title: "one", Completed: true}, {Title: "two"}},
	})
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, owner.ID, src.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ship release (Copy)", dup.Title)
	assert.Equal(t, store.StatusTodo, dup.Status)
	assert.Equal(t, store.PriorityHigh, dup.Priority)
	assert.NotEqual(t, src.ID, dup.ID)

	require.Len(t, dup.Subtasks, 2)
	assert.Equal(t, "one", dup.Subtasks[0].Title)
	assert.Equal(t, "two", dup.Subtasks[1].Title)
	for _, sub := range dup.Subtasks {
		assert.False(t, sub.Completed, "duplicated subtasks start unchecked")
	}

	require.Len(t, dup.Tags, 1)
	assert.Equal(t, tag.ID, dup.Tags[0].ID)
	require.Len(t, dup.Assignees, 1)
	assert.Equal(t, assignee.ID, dup.Assignees[0].ID)
}

func TestService_Duplicate_RequiresRead(t *testing.T) {
	svc, _, st := setupService(t)
	ctx := context.Background()

	owner := createUser(t, st, "owner")
	stranger := createUser(t, st, "stranger")

	src, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "private"})
	require.NoError(t, err)

	_, err = svc.Duplicate(ctx, stranger.ID, src.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)
}

func TestService_Create_RecordsActivity(t *testing.T) {
	svc, collabSvc, st := setupService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner")

	task, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "logged"})
	require.NoError(t, err)

	entries, err := collabSvc.ListActivity(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "created this task: logged", entries[0].Action)
}

// failingCommentStore wraps a real store but refuses comment writes,
// simulating a storage failure on the activity path only.
type failingCommentStore struct {
	store.Store
}

func (f *failingCommentStore) CreateComment(ctx context.Context, c *store.Comment) error {
	return errors.New("disk full")
}

func TestService_Create_ActivityFailureIgnored(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	failing := &failingCommentStore{Store: st}
	collabSvc := collab.NewService(failing, nil, false, slog.Default())
	svc := NewService(failing, collabSvc, slog.Default())

	ctx := context.Background()
	owner := createUser(t, st, "owner")

	// Activity recording fails underneath, but the create still succeeds
	task, err := svc.Create(ctx, owner.ID, CreateRequest{Title: "still fine"})
	require.NoError(t, err)
	assert.Equal(t, "still fine", task.Title)
}
