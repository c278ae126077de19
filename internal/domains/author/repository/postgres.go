package repository

import (
	"context"
	"fmt"

	"blog-backend/internal/domains/author"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (id, first_name, last_name, email, birth_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.FirstName, a.LastName, a.Email, a.BirthDate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `
		SELECT id, first_name, last_name, email, birth_date, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.BirthDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, author.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, req author.ListAuthorsRequest) ([]author.Author, int, error) {
	whereClause := "TRUE"
	args := []interface{}{}
	argIndex := 1

	// Search across first/last name and email
	if req.Search != "" {
		whereClause = fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			argIndex, argIndex, argIndex,
		)
		args = append(args, "%"+req.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM authors WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, birth_date, created_at, updated_at
		FROM authors
		WHERE %s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list authors query failed: %w", err)
	}

	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[author.Author])
	if err != nil {
		return nil, 0, fmt.Errorf("collect rows failed: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]author.Author, error) {
	if len(ids) == 0 {
		return []author.Author{}, nil
	}

	query := `
		SELECT id, first_name, last_name, email, birth_date, created_at, updated_at
		FROM authors
		WHERE id = ANY($1)
		ORDER BY last_name, first_name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list authors by ids query failed: %w", err)
	}

	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[author.Author])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET first_name = $1, last_name = $2, email = $3, birth_date = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.pool.Exec(ctx, query,
		a.FirstName, a.LastName, a.Email, a.BirthDate, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}

	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}

// Delete removes the author. The M2M join rows go with it via FK cascade;
// blog posts themselves are untouched.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}

func (r *postgresRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM authors WHERE email = $1 AND id != $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author email: %w", err)
	}

	return exists, nil
}

// AllExist reports whether every id in ids refers to an author.
func (r *postgresRepository) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	query := `SELECT COUNT(*) FROM authors WHERE id = ANY($1)`

	var count int
	err := r.pool.QueryRow(ctx, query, ids).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check authors: %w", err)
	}

	return count == len(ids), nil
}
