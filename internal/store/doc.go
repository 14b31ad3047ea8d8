// Package store provides persistent storage for taskdeck using GORM over SQLite.
//
// # Architecture
//
// The package exposes a single Store interface covering users, tags, tasks,
// comments, activity notes, and attachments. GormStore implements it on top
// of the pure-Go SQLite driver (glebarez/sqlite), so the binary builds
// without cgo. Schema is created and evolved via AutoMigrate on Open.
//
// # Data Models
//
//   - User: account referenced as owner, assignee, or comment author
//   - Task: board card with priority, status, optional due date, one owner
//   - Tag: process-wide label, many-to-many with tasks via task_tags
//   - TaskAssignee: join row granting read and mutate access
//   - Subtask: checklist item with a dense zero-based order index
//   - Comment: user comment or activity note, split by the kind column
//   - Attachment: file metadata hanging off a task
//
// # Replace Semantics
//
// UpdateTask swaps supplied collections wholesale: existing tag links,
// assignee links, and subtasks are deleted and recreated from the input
// inside one transaction. A nil list pointer leaves that collection
// untouched; an empty list clears it. Subtask order indices are contiguous
// from zero after every replace.
//
// # Deletion
//
// DeleteTask cascades explicitly: join rows, subtasks, comments (activity
// notes included), and attachments go in the same transaction as the task
// row. DeleteComment removes a single row and reports ErrNotFound when the
// id does not resolve.
//
// # SQLite Configuration
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// # Error Handling
//
//   - ErrNotFound: requested entity does not exist
//   - ErrEmailExists: user email collision
//   - ErrTagExists: tag name collision
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use Open(":memory:") or a t.TempDir() path for tests against real SQLite.
package store
