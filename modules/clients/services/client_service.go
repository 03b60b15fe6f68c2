package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/pkg/eventbus"
)

// ClientService owns the canonical client store. Every save path runs the
// reciprocal-relationship diff so one-sided edges surface as pending tasks.
type ClientService struct {
	repo        client.Repository
	publisher   eventbus.EventBus
	reciprocals *ReciprocalService
}

func NewClientService(
	repo client.Repository,
	publisher eventbus.EventBus,
	reciprocals *ReciprocalService,
) *ClientService {
	return &ClientService{
		repo:        repo,
		publisher:   publisher,
		reciprocals: reciprocals,
	}
}

func (s *ClientService) GetPaginated(ctx context.Context, params *client.FindParams) ([]client.Client, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *ClientService) GetAll(ctx context.Context) ([]client.Client, error) {
	return s.repo.GetAll(ctx)
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ClientService) Create(ctx context.Context, dto *client.CreateDTO) (client.Client, error) {
	dto.Normalize()
	entity := client.New(dto.FirstName, dto.LastName).
		WithPreferredName(dto.PreferredName).
		WithContact(dto.Email, dto.Phone).
		WithDateOfBirth(dto.DateOfBirth)
	entity = entity.WithRelationships(client.Edges(dto.Relationships, entity.ID()))

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return client.Client{}, err
	}
	if err := s.reciprocals.EnqueueFromSave(ctx, created); err != nil {
		return client.Client{}, err
	}
	s.publisher.Publish(&client.CreatedEvent{Result: created})
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, dto *client.UpdateDTO) (client.Client, error) {
	dto.Normalize()
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return client.Client{}, err
	}

	entity := existing.
		WithName(dto.FirstName, dto.LastName).
		WithPreferredName(dto.PreferredName).
		WithContact(dto.Email, dto.Phone).
		WithDateOfBirth(dto.DateOfBirth).
		WithRelationships(client.Edges(dto.Relationships, id))

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return client.Client{}, err
	}
	if err := s.reciprocals.EnqueueFromSave(ctx, updated); err != nil {
		return client.Client{}, err
	}
	s.publisher.Publish(&client.UpdatedEvent{Result: updated})
	return updated, nil
}
