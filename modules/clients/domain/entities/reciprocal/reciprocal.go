package reciprocal

import (
	"github.com/google/uuid"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
)

// Task records that source declared a relationship to target but target has
// no edge back. Tasks are ephemeral: created on save, consumed one at a time
// by a confirm/skip workflow.
type Task struct {
	SourceID    uuid.UUID
	TargetID    uuid.UUID
	SourceName  string
	TargetName  string
	InitialType string
}

// Queue is a FIFO of pending reciprocal tasks. The head of the queue is the
// single "current" task; it leaves the queue only via Confirm or Skip.
type Queue struct {
	tasks []Task
}

func (q *Queue) Enqueue(tasks ...Task) {
	q.tasks = append(q.tasks, tasks...)
}

func (q *Queue) Current() (Task, bool) {
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	return q.tasks[0], true
}

// Shift discards the current task and promotes the next queued one.
func (q *Queue) Shift() (Task, bool) {
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, true
}

func (q *Queue) Len() int {
	return len(q.tasks)
}

// Diff computes the reciprocal tasks implied by saving saved against the
// given store snapshot: one task per declared edge whose target exists and
// has no edge back to the source. Self-edges and unknown targets produce
// nothing.
func Diff(saved client.Client, store []client.Client) []Task {
	byID := make(map[uuid.UUID]client.Client, len(store))
	for _, c := range store {
		byID[c.ID()] = c
	}

	var tasks []Task
	for _, rel := range saved.Relationships() {
		if rel.RelatedClientID == saved.ID() {
			continue
		}
		target, ok := byID[rel.RelatedClientID]
		if !ok {
			continue
		}
		if target.HasRelationshipWith(saved.ID()) {
			continue
		}
		tasks = append(tasks, Task{
			SourceID:    saved.ID(),
			TargetID:    target.ID(),
			SourceName:  saved.FullName(),
			TargetName:  target.FullName(),
			InitialType: rel.Type,
		})
	}
	return tasks
}
