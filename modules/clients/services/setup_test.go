package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
)

// inMemoryClientRepository backs service tests with a map store.
type inMemoryClientRepository struct {
	mu      sync.Mutex
	order   []uuid.UUID
	clients map[uuid.UUID]client.Client
}

func newInMemoryClientRepository() *inMemoryClientRepository {
	return &inMemoryClientRepository{clients: map[uuid.UUID]client.Client{}}
}

func (r *inMemoryClientRepository) GetPaginated(ctx context.Context, params *client.FindParams) ([]client.Client, int64, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return all, int64(len(all)), nil
}

func (r *inMemoryClientRepository) GetAll(context.Context) ([]client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]client.Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.clients[id])
	}
	return out, nil
}

func (r *inMemoryClientRepository) GetByID(_ context.Context, id uuid.UUID) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return client.Client{}, client.ErrNotFound
	}
	return c, nil
}

func (r *inMemoryClientRepository) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.clients)), nil
}

func (r *inMemoryClientRepository) Create(_ context.Context, c client.Client) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, c.ID())
	r.clients[c.ID()] = c
	return c, nil
}

func (r *inMemoryClientRepository) CreateAll(ctx context.Context, cs []client.Client) ([]client.Client, error) {
	out := make([]client.Client, 0, len(cs))
	for _, c := range cs {
		created, err := r.Create(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

func (r *inMemoryClientRepository) Update(_ context.Context, c client.Client) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID()]; !ok {
		return client.Client{}, client.ErrNotFound
	}
	r.clients[c.ID()] = c
	return c, nil
}

// stubPublisher records published events in order.
type stubPublisher struct {
	mu     sync.Mutex
	events []interface{}
}

func (p *stubPublisher) Publish(args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, args...)
}

func (p *stubPublisher) Subscribe(interface{})   {}
func (p *stubPublisher) Unsubscribe(interface{}) {}
func (p *stubPublisher) Clear()                  {}
func (p *stubPublisher) SubscribersCount() int   { return 0 }

func (p *stubPublisher) published() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}
