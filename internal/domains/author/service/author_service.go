package service

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/domains/author"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func parseBirthDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(author.BirthDateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse birth date: %w", err)
	}
	if t.After(time.Now()) {
		return nil, author.ErrInvalidBirthDay
	}
	return &t, nil
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.AuthorResponse, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, author.ErrEmailExists
	}

	now := time.Now()
	a := &author.Author{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().Str("author_id", a.ID.String()).Str("name", a.FullName()).Msg("Author created")

	return a.ToResponse(now), nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.ToResponse(time.Now()), nil
}

func (s *authorService) List(ctx context.Context, req author.ListAuthorsRequest) ([]author.AuthorResponse, int, error) {
	authors, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	responses := make([]author.AuthorResponse, 0, len(authors))
	for i := range authors {
		responses = append(responses, *authors[i].ToResponse(now))
	}

	return responses, total, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		a.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != a.Email {
		exists, err := s.repo.EmailExists(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, author.ErrEmailExists
		}
		a.Email = *req.Email
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, err
		}
		a.BirthDate = birthDate
	}

	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a.ToResponse(a.UpdatedAt), nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ExportToExcel builds an xlsx with the author resource projection.
// Only the selected records are exported; an empty selection still
// produces a well-formed workbook with the header row.
func (s *authorService) ExportToExcel(ctx context.Context, req author.ExportAuthorsRequest) (*excelize.File, error) {
	var authors []author.Author
	var err error

	if len(req.IDs) > 0 {
		authors, err = s.repo.ListByIDs(ctx, req.IDs)
	} else {
		authors, _, err = s.repo.List(ctx, author.ListAuthorsRequest{
			Search: req.Search,
			Limit:  10000,
			Offset: 0,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load authors for export: %w", err)
	}

	now := time.Now()
	rows := make([]author.AuthorResponse, 0, len(authors))
	for i := range authors {
		rows = append(rows, *authors[i].ToResponse(now))
	}

	f, err := author.ExportResource().Build(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	log.Info().Int("rows", len(rows)).Msg("Authors exported to excel")

	return f, nil
}
