// ABOUTME: Store interface and data types for taskdeck persistence
// ABOUTME: Defines User, Task, Tag, Subtask, Comment structs and the Store interface

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when trying to create a user with an existing email
var ErrEmailExists = errors.New("email already exists")

// ErrTagExists is returned when trying to create a tag with an existing name
var ErrTagExists = errors.New("tag already exists")

// Task priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task status values
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Comment kind values. Activity notes share the comments table but carry
// their own kind so they never show up in comment listings.
const (
	CommentKindComment  = "comment"
	CommentKindActivity = "activity"
)

// LegacyActivityPrefix marks activity rows written before the kind column
// existed. It is stripped from action text when listing activity.
const LegacyActivityPrefix = "[ACTIVITY] "

// User represents an account that can own and be assigned tasks.
// Users are provisioned out of band; the service only references them.
type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	Image        string
	PasswordHash string
	CreatedAt    time.Time
}

// Task is a board card. OwnerID is set at creation and never changes.
type Task struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Priority    string `gorm:"default:medium"`
	Status      string `gorm:"default:todo"`
	DueDate     *time.Time
	OwnerID     string `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner       *User         `gorm:"foreignKey:OwnerID"`
	Tags        []*Tag        `gorm:"many2many:task_tags"`
	Assignees   []*User       `gorm:"many2many:task_assignees"`
	Subtasks    []*Subtask    `gorm:"foreignKey:TaskID"`
	Comments    []*Comment    `gorm:"foreignKey:TaskID"`
	Attachments []*Attachment `gorm:"foreignKey:TaskID"`
}

// Tag is a process-wide label, shared across all users.
type Tag struct {
	ID    string `gorm:"primaryKey"`
	Name  string `gorm:"uniqueIndex;not null"`
	Color string
}

// TaskTag is the join table linking tasks to tags.
type TaskTag struct {
	TaskID string `gorm:"primaryKey"`
	TagID  string `gorm:"primaryKey"`
}

// TaskAssignee is the join table linking tasks to assigned users.
// A row here grants the user read and mutate access to the task.
type TaskAssignee struct {
	TaskID string `gorm:"primaryKey"`
	UserID string `gorm:"primaryKey"`
}

// Subtask is a checklist item under a task. OrderIndex is dense and
// zero-based within the parent task after every replace.
type Subtask struct {
	ID         string `gorm:"primaryKey"`
	TaskID     string `gorm:"index;not null"`
	Title      string `gorm:"not null"`
	Completed  bool
	OrderIndex int
}

// Comment is a user comment or an activity note on a task, distinguished
// by Kind. UserID is the author and is always the session user at creation.
type Comment struct {
	ID        string `gorm:"primaryKey"`
	TaskID    string `gorm:"index;not null"`
	UserID    string `gorm:"index;not null"`
	Kind      string `gorm:"default:comment;index"`
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// Attachment is a file reference hanging off a task. The service stores
// only metadata; the blob lives wherever URL points.
type Attachment struct {
	ID        string `gorm:"primaryKey"`
	TaskID    string `gorm:"index;not null"`
	Filename  string
	URL       string
	CreatedAt time.Time
}

// SubtaskInput describes a subtask supplied on task create or replace.
// Order is assigned from position in the input slice.
type SubtaskInput struct {
	Title     string
	Completed bool
}

// TaskUpdate describes a partial task update. Nil scalar pointers leave the
// field untouched. DueDate is always written: absent in the request means
// clear, matching the board's wire contract. Nil list pointers leave the
// corresponding collection untouched; a non-nil (possibly empty) list
// triggers a full delete-then-recreate replace.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *time.Time
	TagIDs      *[]string
	AssigneeIDs *[]string
	Subtasks    *[]SubtaskInput
}

// Store defines the interface for task board persistence.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Tags
	CreateTag(ctx context.Context, tag *Tag) error
	GetTag(ctx context.Context, id string) (*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task, tagIDs, assigneeIDs []string, subtasks []SubtaskInput) (*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	GetTaskFull(ctx context.Context, id string) (*Task, error)
	ListTasksForUser(ctx context.Context, userID string) ([]*Task, error)
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Comments and activity notes
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id string) (*Comment, error)
	ListComments(ctx context.Context, taskID string) ([]*Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListActivity(ctx context.Context, taskID string, limit int) ([]*Comment, error)

	// Attachments
	CreateAttachment(ctx context.Context, att *Attachment) error

	// Close releases any resources held by the store
	Close() error
}

// AssignedTo reports whether the given user appears in the task's
// assignee set. Assignees must have been loaded.
func (t *Task) AssignedTo(userID string) bool {
	for _, a := range t.Assignees {
		if a.ID == userID {
			return true
		}
	}
	return false
}
