package repository

import (
	"context"
	"fmt"
	"strings"

	"blog-backend/internal/domains/blogpost"
	"blog-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) blogpost.Repository {
	return &postgresRepository{pool: pool}
}

// ============================================
// LIST POSTS
// ============================================

// buildWhereClause constructs the listing WHERE clause.
// The visibility policy lives here, not in post-processing: non-admin
// viewers only ever query active, not-deleted rows, so the pagination
// total and search both run against the visible set.
func buildWhereClause(req blogpost.ListPostsRequest) (string, []interface{}) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if !req.ViewerIsAdmin {
		conditions = append(conditions, "p.active = TRUE", "p.deleted = FALSE")
	} else {
		if req.Active != nil {
			conditions = append(conditions, fmt.Sprintf("p.active = $%d", argIndex))
			args = append(args, *req.Active)
			argIndex++
		}
		if req.Deleted != nil {
			conditions = append(conditions, fmt.Sprintf("p.deleted = $%d", argIndex))
			args = append(args, *req.Deleted)
			argIndex++
		}
	}

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("p.title ILIKE $%d", argIndex))
		args = append(args, "%"+req.Search+"%")
		argIndex++
	}

	if req.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM blog_post_authors pa2 WHERE pa2.blog_post_id = p.id AND pa2.author_id = $%d)",
			argIndex,
		))
		args = append(args, *req.AuthorID)
		argIndex++
	}

	// Created-date drilldown (year, optionally year+month)
	if req.Year > 0 {
		if req.Month >= 1 && req.Month <= 12 {
			conditions = append(conditions, fmt.Sprintf(
				"date_trunc('month', p.created_at) = make_date($%d, $%d, 1)",
				argIndex, argIndex+1,
			))
			args = append(args, req.Year, req.Month)
			argIndex += 2
		} else {
			conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM p.created_at) = $%d", argIndex))
			args = append(args, req.Year)
			argIndex++
		}
	}

	return strings.Join(conditions, " AND "), args
}

// orderClause whitelists sort expressions; default is the manual order.
func orderClause(sortBy string) string {
	switch sortBy {
	case "created_at":
		return "p.created_at ASC"
	case "-created_at":
		return "p.created_at DESC"
	case "title":
		return "p.title ASC"
	default:
		return "p.sort_order ASC"
	}
}

func (r *postgresRepository) List(ctx context.Context, req blogpost.ListPostsRequest) ([]blogpost.PostListRow, int, error) {
	whereClause, args := buildWhereClause(req)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM blog_posts p WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	argIndex := len(args) + 1
	query := fmt.Sprintf(`
		SELECT
			p.id, p.title, p.active, p.deleted, p.website, p.sort_order,
			p.created_at, p.updated_at,
			COALESCE(
				array_agg(a.first_name || ' ' || a.last_name ORDER BY a.last_name, a.first_name)
					FILTER (WHERE a.id IS NOT NULL),
				'{}'
			) AS author_names,
			(SELECT COUNT(*) FROM blog_post_images i WHERE i.blog_post_id = p.id) AS image_count
		FROM blog_posts p
		LEFT JOIN blog_post_authors pa ON pa.blog_post_id = p.id
		LEFT JOIN authors a ON a.id = pa.author_id
		WHERE %s
		GROUP BY p.id
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause(req.SortBy), argIndex, argIndex+1)

	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts query failed: %w", err)
	}
	defer rows.Close()

	posts := make([]blogpost.PostListRow, 0, req.Limit)
	for rows.Next() {
		var row blogpost.PostListRow
		err := rows.Scan(
			&row.ID, &row.Title, &row.Active, &row.Deleted, &row.Website, &row.SortOrder,
			&row.CreatedAt, &row.UpdatedAt,
			pq.Array(&row.AuthorNames),
			&row.ImageCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan failed: %w", err)
		}
		posts = append(posts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return posts, total, nil
}

// ListForExport selects the export projection for the given selection,
// or for the filter set when no ids are supplied.
func (r *postgresRepository) ListForExport(ctx context.Context, req blogpost.ExportPostsRequest) ([]blogpost.ExportRow, error) {
	var query string
	var args []interface{}

	if len(req.IDs) > 0 {
		query = `
			SELECT p.id, p.title, p.text, p.created_at
			FROM blog_posts p
			WHERE p.id = ANY($1)
			ORDER BY p.sort_order
		`
		args = []interface{}{req.IDs}

		if !req.ViewerIsAdmin {
			query = strings.Replace(query, "WHERE p.id = ANY($1)",
				"WHERE p.id = ANY($1) AND p.active = TRUE AND p.deleted = FALSE", 1)
		}
	} else {
		whereClause, filterArgs := buildWhereClause(blogpost.ListPostsRequest{
			Search:        req.Search,
			Active:        req.Active,
			Deleted:       req.Deleted,
			ViewerIsAdmin: req.ViewerIsAdmin,
		})
		query = fmt.Sprintf(`
			SELECT p.id, p.title, p.text, p.created_at
			FROM blog_posts p
			WHERE %s
			ORDER BY p.sort_order
		`, whereClause)
		args = filterArgs
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("export query failed: %w", err)
	}
	defer rows.Close()

	result := []blogpost.ExportRow{}
	for rows.Next() {
		var row blogpost.ExportRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Text, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// ============================================
// GET / CREATE / UPDATE
// ============================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*blogpost.BlogPost, error) {
	query := `
		SELECT id, title, text, active, deleted, website, document_url, document_key,
		       sort_order, created_at, updated_at
		FROM blog_posts
		WHERE id = $1
	`

	var p blogpost.BlogPost
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Text, &p.Active, &p.Deleted, &p.Website, &p.DocumentURL, &p.DocumentKey,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, blogpost.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &p, nil
}

// Create inserts the post and its author join rows in one transaction.
func (r *postgresRepository) Create(ctx context.Context, post *blogpost.BlogPost, authorIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO blog_posts (
				id, title, text, active, deleted, website, document_url, document_key,
				sort_order, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`

		_, err := tx.Exec(ctx, query,
			post.ID, post.Title, post.Text, post.Active, post.Deleted, post.Website,
			post.DocumentURL, post.DocumentKey, post.SortOrder, post.CreatedAt, post.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return insertAuthorLinks(ctx, tx, post.ID, authorIDs)
	})
}

// Update rewrites the post row; when authorIDs is non-nil the M2M set is
// replaced in the same transaction.
func (r *postgresRepository) Update(ctx context.Context, post *blogpost.BlogPost, authorIDs *[]uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE blog_posts
			SET title = $1, text = $2, active = $3, website = $4, updated_at = $5
			WHERE id = $6
		`

		result, err := tx.Exec(ctx, query,
			post.Title, post.Text, post.Active, post.Website, post.UpdatedAt, post.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if result.RowsAffected() == 0 {
			return blogpost.ErrPostNotFound
		}

		if authorIDs == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM blog_post_authors WHERE blog_post_id = $1`, post.ID); err != nil {
			return fmt.Errorf("failed to clear author links: %w", err)
		}

		return insertAuthorLinks(ctx, tx, post.ID, *authorIDs)
	})
}

func insertAuthorLinks(ctx context.Context, tx pgx.Tx, postID uuid.UUID, authorIDs []uuid.UUID) error {
	for _, authorID := range authorIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO blog_post_authors (blog_post_id, author_id) VALUES ($1, $2)`,
			postID, authorID,
		)
		if err != nil {
			return fmt.Errorf("failed to link author %s: %w", authorID, err)
		}
	}
	return nil
}

func (r *postgresRepository) GetAuthors(ctx context.Context, postID uuid.UUID) ([]blogpost.AuthorRef, error) {
	query := `
		SELECT a.id, a.first_name || ' ' || a.last_name AS full_name, a.email
		FROM authors a
		JOIN blog_post_authors pa ON pa.author_id = a.id
		WHERE pa.blog_post_id = $1
		ORDER BY a.last_name, a.first_name
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("get authors query failed: %w", err)
	}
	defer rows.Close()

	authors := []blogpost.AuthorRef{}
	for rows.Next() {
		var a blogpost.AuthorRef
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return authors, nil
}

// ============================================
// VALIDATION HELPERS
// ============================================

func (r *postgresRepository) TitleTextExists(ctx context.Context, title, text string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE title = $1 AND text = $2 AND id != $3)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, title, text, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check title/text pair: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) NextSortOrder(ctx context.Context) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(sort_order), -1) + 1 FROM blog_posts`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next sort order: %w", err)
	}
	return next, nil
}

// ============================================
// ORDERING / DELETES / DOCUMENT
// ============================================

// Reorder persists the submitted order as sort_order 0..n-1.
// The whole rewrite is one transaction: either every row moves or none does.
func (r *postgresRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var total int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&total); err != nil {
			return fmt.Errorf("count query failed: %w", err)
		}
		if total != len(ids) {
			return blogpost.ErrReorderMismatch
		}

		for position, id := range ids {
			result, err := tx.Exec(ctx,
				`UPDATE blog_posts SET sort_order = $1, updated_at = NOW() WHERE id = $2`,
				position, id,
			)
			if err != nil {
				return fmt.Errorf("failed to reorder post %s: %w", id, err)
			}
			if result.RowsAffected() == 0 {
				return blogpost.ErrReorderMismatch
			}
		}

		return nil
	})
}

func (r *postgresRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE blog_posts SET deleted = $1, updated_at = NOW() WHERE id = $2`,
		deleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set deleted flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return blogpost.ErrPostNotFound
	}
	return nil
}

// HardDelete removes the row; images, descriptions, author links and the
// banner all go with it via ON DELETE CASCADE.
func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to hard delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return blogpost.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) SetDocument(ctx context.Context, id uuid.UUID, url, key string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE blog_posts SET document_url = $1, document_key = $2, updated_at = NOW() WHERE id = $3`,
		url, key, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return blogpost.ErrPostNotFound
	}
	return nil
}
