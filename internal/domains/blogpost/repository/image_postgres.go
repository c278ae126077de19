package repository

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/domains/blogpost"
	"blog-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type imagePostgresRepository struct {
	pool *pgxpool.Pool
}

func NewImagePostgresRepository(pool *pgxpool.Pool) blogpost.ImageRepository {
	return &imagePostgresRepository{pool: pool}
}

// ListByPost returns the post's images ordered by sort_order, each with its
// descriptions nested.
func (r *imagePostgresRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]blogpost.ImageResponse, error) {
	imageQuery := `
		SELECT id, image_url, sort_order
		FROM blog_post_images
		WHERE blog_post_id = $1
		ORDER BY sort_order
	`

	rows, err := r.pool.Query(ctx, imageQuery, postID)
	if err != nil {
		return nil, fmt.Errorf("list images query failed: %w", err)
	}
	defer rows.Close()

	images := []blogpost.ImageResponse{}
	imageIDs := []uuid.UUID{}
	for rows.Next() {
		var img blogpost.ImageResponse
		if err := rows.Scan(&img.ID, &img.ImageURL, &img.SortOrder); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		img.Descriptions = []blogpost.DescriptionResponse{}
		images = append(images, img)
		imageIDs = append(imageIDs, img.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(imageIDs) == 0 {
		return images, nil
	}

	descQuery := `
		SELECT id, blog_post_image_id, text
		FROM blog_post_image_descriptions
		WHERE blog_post_image_id = ANY($1)
		ORDER BY created_at
	`

	descRows, err := r.pool.Query(ctx, descQuery, imageIDs)
	if err != nil {
		return nil, fmt.Errorf("list descriptions query failed: %w", err)
	}
	defer descRows.Close()

	byImage := make(map[uuid.UUID][]blogpost.DescriptionResponse, len(imageIDs))
	for descRows.Next() {
		var id, imageID uuid.UUID
		var text string
		if err := descRows.Scan(&id, &imageID, &text); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		byImage[imageID] = append(byImage[imageID], blogpost.DescriptionResponse{ID: id, Text: text})
	}
	if err := descRows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range images {
		if descs, ok := byImage[images[i].ID]; ok {
			images[i].Descriptions = descs
		}
	}

	return images, nil
}

// CreateImage appends one image row (used by the upload endpoint,
// sort_order already assigned by the service).
func (r *imagePostgresRepository) CreateImage(ctx context.Context, img *blogpost.BlogPostImage) error {
	query := `
		INSERT INTO blog_post_images (id, blog_post_id, image_url, image_key, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		img.ID, img.BlogPostID, img.ImageURL, img.ImageKey, img.SortOrder, img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	return nil
}

// ReplaceTree is the inline-composition save. Inside one transaction it:
//  1. deletes image rows the submission no longer contains (descriptions
//     cascade with them),
//  2. upserts the submitted images with sort_order following slice position,
//  3. replaces each image's description rows with the submitted ones.
func (r *imagePostgresRepository) ReplaceTree(ctx context.Context, postID uuid.UUID, nodes []blogpost.ImageNode) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		keep := make([]uuid.UUID, 0, len(nodes))
		for _, node := range nodes {
			if node.ID != nil {
				keep = append(keep, *node.ID)
			}
		}

		// Removed inline rows are deleted; cascade takes their descriptions.
		var err error
		if len(keep) > 0 {
			_, err = tx.Exec(ctx,
				`DELETE FROM blog_post_images WHERE blog_post_id = $1 AND NOT (id = ANY($2))`,
				postID, keep,
			)
		} else {
			_, err = tx.Exec(ctx, `DELETE FROM blog_post_images WHERE blog_post_id = $1`, postID)
		}
		if err != nil {
			return fmt.Errorf("failed to prune removed images: %w", err)
		}

		now := time.Now()
		for position, node := range nodes {
			imageID, err := upsertImage(ctx, tx, postID, node, position, now)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx,
				`DELETE FROM blog_post_image_descriptions WHERE blog_post_image_id = $1`, imageID,
			); err != nil {
				return fmt.Errorf("failed to clear descriptions: %w", err)
			}

			for _, desc := range node.Descriptions {
				descID := uuid.New()
				if desc.ID != nil {
					descID = *desc.ID
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO blog_post_image_descriptions (id, blog_post_image_id, text, created_at)
					 VALUES ($1, $2, $3, $4)`,
					descID, imageID, desc.Text, now,
				); err != nil {
					return fmt.Errorf("failed to insert description: %w", err)
				}
			}
		}

		return nil
	})
}

func upsertImage(ctx context.Context, tx pgx.Tx, postID uuid.UUID, node blogpost.ImageNode, position int, now time.Time) (uuid.UUID, error) {
	if node.ID != nil {
		result, err := tx.Exec(ctx,
			`UPDATE blog_post_images SET image_url = $1, image_key = $2, sort_order = $3
			 WHERE id = $4 AND blog_post_id = $5`,
			node.ImageURL, node.ImageKey, position, *node.ID, postID,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to update image: %w", err)
		}
		if result.RowsAffected() == 0 {
			return uuid.Nil, blogpost.ErrImageNotFound
		}
		return *node.ID, nil
	}

	imageID := uuid.New()
	_, err := tx.Exec(ctx,
		`INSERT INTO blog_post_images (id, blog_post_id, image_url, image_key, sort_order, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		imageID, postID, node.ImageURL, node.ImageKey, position, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert image: %w", err)
	}
	return imageID, nil
}

// ReorderImages rewrites sort_order for one post's images, atomically.
func (r *imagePostgresRepository) ReorderImages(ctx context.Context, postID uuid.UUID, ids []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var total int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM blog_post_images WHERE blog_post_id = $1`, postID,
		).Scan(&total); err != nil {
			return fmt.Errorf("count query failed: %w", err)
		}
		if total != len(ids) {
			return blogpost.ErrReorderMismatch
		}

		for position, id := range ids {
			result, err := tx.Exec(ctx,
				`UPDATE blog_post_images SET sort_order = $1 WHERE id = $2 AND blog_post_id = $3`,
				position, id, postID,
			)
			if err != nil {
				return fmt.Errorf("failed to reorder image %s: %w", id, err)
			}
			if result.RowsAffected() == 0 {
				return blogpost.ErrReorderMismatch
			}
		}

		return nil
	})
}

// ============================================
// BANNER (one-to-one cover image)
// ============================================

func (r *imagePostgresRepository) GetBanner(ctx context.Context, postID uuid.UUID) (*blogpost.BannerImage, error) {
	query := `
		SELECT id, blog_post_id, image_url, image_key, created_at
		FROM banner_images
		WHERE blog_post_id = $1
	`

	var b blogpost.BannerImage
	err := r.pool.QueryRow(ctx, query, postID).Scan(
		&b.ID, &b.BlogPostID, &b.ImageURL, &b.ImageKey, &b.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	return &b, nil
}

// UpsertBanner replaces the post's banner if one exists (the unique
// constraint on blog_post_id keeps it one-to-one) and returns the old
// storage key so the caller can remove the stale object. On replace the
// existing row keeps its id; banner.ID is overwritten with the persisted
// one so responses never carry an id that matches no row.
func (r *imagePostgresRepository) UpsertBanner(ctx context.Context, banner *blogpost.BannerImage) (string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (string, error) {
		var oldKey string
		err := tx.QueryRow(ctx,
			`SELECT image_key FROM banner_images WHERE blog_post_id = $1 FOR UPDATE`,
			banner.BlogPostID,
		).Scan(&oldKey)
		if err != nil && err != pgx.ErrNoRows {
			return "", fmt.Errorf("failed to check existing banner: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO banner_images (id, blog_post_id, image_url, image_key, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (blog_post_id)
			DO UPDATE SET image_url = EXCLUDED.image_url, image_key = EXCLUDED.image_key, created_at = EXCLUDED.created_at
			RETURNING id
		`, banner.ID, banner.BlogPostID, banner.ImageURL, banner.ImageKey, banner.CreatedAt).Scan(&banner.ID)
		if err != nil {
			return "", fmt.Errorf("failed to upsert banner: %w", err)
		}

		return oldKey, nil
	})
}
