// ABOUTME: Optimistic local board state for drag-and-drop moves
// ABOUTME: Moves apply instantly; reconciliation reverts failures and drops stale responses

package client

import "sync"

// Board holds a local copy of the caller's tasks and applies status moves
// optimistically: Move updates local state before the network round-trip,
// and Reconcile folds the server's answer back in afterward. Failed moves
// revert to the pre-move status. Responses that complete out of order are
// discarded by comparing per-task revisions, so a slow stale request can
// never clobber a newer move.
type Board struct {
	mu      sync.Mutex
	seq     uint64
	tasks   map[string]*Task
	latest  map[string]uint64
	pending map[uint64]pendingMove
}

type pendingMove struct {
	taskID     string
	prevStatus string
}

// NewBoard creates a board seeded with the given tasks.
func NewBoard(tasks []Task) *Board {
	b := &Board{
		tasks:   make(map[string]*Task, len(tasks)),
		latest:  make(map[string]uint64),
		pending: make(map[uint64]pendingMove),
	}
	b.Load(tasks)
	return b
}

// Load replaces the board's tasks with a fresh server listing. Pending
// moves are dropped; the listing is authoritative.
func (b *Board) Load(tasks []Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks = make(map[string]*Task, len(tasks))
	for i := range tasks {
		t := tasks[i]
		b.tasks[t.ID] = &t
	}
	b.pending = make(map[uint64]pendingMove)
}

// Task returns a copy of the task with the given id, if the board has it.
func (b *Board) Task(taskID string) (Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tasks[taskID]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Tasks returns copies of all tasks with the given status.
func (b *Board) Tasks(status string) []Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Task
	for _, t := range b.tasks {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	return out
}

// Move applies a status change locally and returns a revision token for
// the in-flight server request. The caller sends the update, then hands
// the token and the outcome to Reconcile. Returns false if the task is
// not on the board.
func (b *Board) Move(taskID, status string) (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tasks[taskID]
	if !ok {
		return 0, false
	}

	b.seq++
	rev := b.seq
	b.latest[taskID] = rev
	b.pending[rev] = pendingMove{taskID: taskID, prevStatus: t.Status}
	t.Status = status
	return rev, true
}

// Reconcile folds a completed move back into the board. On success the
// authoritative task replaces the local copy; on failure the task reverts
// to its pre-move status. Either way, a response for anything but the
// task's newest revision is stale and discarded: a newer move has already
// rewritten the state this response describes.
func (b *Board) Reconcile(rev uint64, task *Task, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	move, ok := b.pending[rev]
	if !ok {
		return
	}
	delete(b.pending, rev)

	if rev != b.latest[move.taskID] {
		return
	}

	if err != nil {
		if t, ok := b.tasks[move.taskID]; ok {
			t.Status = move.prevStatus
		}
		return
	}
	if task != nil {
		copied := *task
		b.tasks[move.taskID] = &copied
	}
}
