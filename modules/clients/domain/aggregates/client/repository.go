package client

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Client, int64, error)
	GetAll(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, c Client) (Client, error)
	// CreateAll inserts a batch in the caller's transaction. Used by imports;
	// either every record becomes visible or none do.
	CreateAll(ctx context.Context, cs []Client) ([]Client, error)
	Update(ctx context.Context, c Client) (Client, error)
}
