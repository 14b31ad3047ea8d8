// Package task implements the task mutation service: the orchestration of
// list, create, update, delete, and duplicate over the store under the
// authorization policy.
//
// # Ordering of Checks
//
// Validation and authorization run before any mutating store call. On
// update and delete, existence is checked before permission, so an unknown
// id yields not-found even when the caller would also have been forbidden.
// Callers should not depend on which error arrives first when both
// conditions hold.
//
// # Replace Semantics
//
// Updates treat tag, assignee, and subtask lists as set transplants: a
// supplied list fully replaces the stored collection, an omitted list
// leaves it untouched. The store performs the swap in one transaction, so
// the half-cleared intermediate state is never observable. Concurrent
// updates to the same task are not coordinated; the last write wins.
//
// # Activity
//
// Mutations describe themselves through an EventRecorder. Recording is
// best-effort and can never fail the mutation.
package task
