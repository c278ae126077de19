package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the author data access contract.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context, req ListAuthorsRequest) ([]Author, int, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id uuid.UUID) error
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	AllExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}
