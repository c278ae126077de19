package author

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service is the author business logic contract.
type Service interface {
	Create(ctx context.Context, req *CreateAuthorRequest) (*AuthorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorResponse, error)
	List(ctx context.Context, req ListAuthorsRequest) ([]AuthorResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*AuthorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ExportToExcel builds the fixed author projection for the selected
	// records (or the current filter set when no ids are given).
	ExportToExcel(ctx context.Context, req ExportAuthorsRequest) (*excelize.File, error)
}
