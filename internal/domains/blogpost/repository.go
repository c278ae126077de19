package blogpost

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the blog post data access contract.
type Repository interface {
	Create(ctx context.Context, post *BlogPost, authorIDs []uuid.UUID) error
	Update(ctx context.Context, post *BlogPost, authorIDs *[]uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	List(ctx context.Context, req ListPostsRequest) ([]PostListRow, int, error)
	ListForExport(ctx context.Context, req ExportPostsRequest) ([]ExportRow, error)
	GetAuthors(ctx context.Context, postID uuid.UUID) ([]AuthorRef, error)

	// TitleTextExists checks the (title, text) uniqueness pair, excluding
	// one id on updates.
	TitleTextExists(ctx context.Context, title, text string, excludeID uuid.UUID) (bool, error)

	// NextSortOrder returns max(sort_order)+1 so new posts land at the end.
	NextSortOrder(ctx context.Context) (int, error)

	// Reorder rewrites sort_order 0..n-1 following ids, in one transaction.
	// Fails with ErrReorderMismatch when ids is not a permutation of all
	// post ids.
	Reorder(ctx context.Context, ids []uuid.UUID) error

	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	SetDocument(ctx context.Context, id uuid.UUID, url, key string) error
}

// ImageRepository covers the inline composition: images, their nested
// descriptions, and the one-to-one banner.
type ImageRepository interface {
	ListByPost(ctx context.Context, postID uuid.UUID) ([]ImageResponse, error)
	CreateImage(ctx context.Context, img *BlogPostImage) error

	// ReplaceTree replaces the post's image rows and nested description
	// rows with the submitted nodes atomically. Blank nodes are expected
	// to be filtered out by the service before this call.
	ReplaceTree(ctx context.Context, postID uuid.UUID, nodes []ImageNode) error

	// ReorderImages rewrites sort_order within a post, in one transaction.
	ReorderImages(ctx context.Context, postID uuid.UUID, ids []uuid.UUID) error

	GetBanner(ctx context.Context, postID uuid.UUID) (*BannerImage, error)

	// UpsertBanner enforces the at-most-one-per-post invariant and returns
	// the replaced object's storage key, if any, so it can be cleaned up.
	// When a banner is replaced the row keeps its id; implementations must
	// write the persisted id back into banner.ID.
	UpsertBanner(ctx context.Context, banner *BannerImage) (oldKey string, err error)
}
