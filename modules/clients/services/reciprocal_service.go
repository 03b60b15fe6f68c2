package services

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/domain/entities/reciprocal"
	"github.com/praxishq/praxis/pkg/composables"
	"github.com/praxishq/praxis/pkg/metrics"
)

var ErrNoCurrentTask = errors.New("no pending reciprocal task")

// ReciprocalService queues one-sided relationship edges for user review and
// writes the reciprocal edge on confirmation. Tasks are processed strictly
// in creation order, one at a time.
type ReciprocalService struct {
	repo client.Repository

	mu    sync.Mutex
	queue reciprocal.Queue
}

func NewReciprocalService(repo client.Repository) *ReciprocalService {
	return &ReciprocalService{repo: repo}
}

// EnqueueFromSave diffs the saved client's declared relationships against
// the store and queues a task for each edge missing its reciprocal.
func (s *ReciprocalService) EnqueueFromSave(ctx context.Context, saved client.Client) error {
	store, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	tasks := reciprocal.Diff(saved, store)
	if len(tasks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Enqueue(tasks...)
	return nil
}

func (s *ReciprocalService) PeekCurrent() (reciprocal.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

func (s *ReciprocalService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Confirm writes the reciprocal edge for the current task, using relType
// when provided and the task's initial type otherwise. The write re-checks
// the target at confirmation time: if the edge appeared independently since
// the task was queued, nothing is appended.
func (s *ReciprocalService) Confirm(ctx context.Context, relType string) error {
	s.mu.Lock()
	task, ok := s.queue.Current()
	s.mu.Unlock()
	if !ok {
		return ErrNoCurrentTask
	}

	edgeType := strings.TrimSpace(relType)
	if edgeType == "" {
		edgeType = task.InitialType
	}

	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.writeReciprocalEdge(txCtx, task, edgeType)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.queue.Shift()
	s.mu.Unlock()
	metrics.ReciprocalTasksConfirmed.Inc()
	return nil
}

// writeReciprocalEdge appends the back-edge unless it already exists. Runs
// inside Confirm's transaction; re-reading the target here is what keeps a
// confirm against a stale queue idempotent.
func (s *ReciprocalService) writeReciprocalEdge(ctx context.Context, task reciprocal.Task, edgeType string) error {
	target, err := s.repo.GetByID(ctx, task.TargetID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			// Target vanished since queueing; nothing to write.
			return nil
		}
		return err
	}
	if target.HasRelationshipWith(task.SourceID) {
		return nil
	}
	_, err = s.repo.Update(ctx, target.AddRelationship(client.Relationship{
		RelatedClientID: task.SourceID,
		Type:            edgeType,
	}))
	return err
}

// Skip discards the current task without touching the store.
func (s *ReciprocalService) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.queue.Shift(); !ok {
		return ErrNoCurrentTask
	}
	metrics.ReciprocalTasksSkipped.Inc()
	return nil
}
