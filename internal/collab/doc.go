// Package collab provides the collaboration surface attached to tasks:
// comments, activity notes, and the comment notification extension point.
//
// # Comments
//
// Comments are authored as markdown and listed newest first with author
// display fields. Creation forces the author to the session user; deletion
// is author-only — owning the parent task grants nothing.
//
// # Activity Notes
//
// Task mutations are described by activity notes recorded through
// RecordEvent. Recording is fire-and-forget: a storage failure is logged
// and swallowed so the mutation that triggered it always completes
// normally. Notes share the comments table under kind=activity; listings
// return at most the 50 newest and strip the legacy content marker that
// predates the kind column.
//
// # Notifications
//
// After a comment is created the service computes the notification set —
// task owner plus assignees, minus the commenter — and hands it to the
// configured Notifier. The default Notifier drops everything; dispatch is
// a future concern.
//
// # Comment Visibility
//
// The original board let any authenticated user list comments on any task.
// That stays the default; set comments.require_task_access in the config to
// demand owner or assignee standing instead.
package collab
