package blogpost

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ObjectStorage is the slice of the object store the post service needs:
// uploads, single-object deletes for replaced banners, and prefix cleanup
// after a hard delete.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Service is the blog post business logic contract.
type Service interface {
	Create(ctx context.Context, req *CreatePostRequest) (*PostDetailResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePostRequest) (*PostDetailResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerIsAdmin bool) (*PostDetailResponse, error)
	List(ctx context.Context, req ListPostsRequest) ([]PostListRow, int, error)

	// SaveTree is the inline-composition save: post images and their nested
	// descriptions are replaced with the submitted rows in one transaction.
	SaveTree(ctx context.Context, postID uuid.UUID, req *SaveTreeRequest) (*PostDetailResponse, error)

	ReorderPosts(ctx context.Context, ids []uuid.UUID) error
	ReorderImages(ctx context.Context, postID uuid.UUID, ids []uuid.UUID) error

	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	UploadBanner(ctx context.Context, postID uuid.UUID, data []byte) (*BannerResponse, error)
	UploadImage(ctx context.Context, postID uuid.UUID, data []byte) (*ImageResponse, error)
	UploadDocument(ctx context.Context, postID uuid.UUID, filename, contentType string, data []byte) (string, error)

	// ExportToExcel builds the fixed post projection (id, title, text,
	// create date) for the selected records.
	ExportToExcel(ctx context.Context, req ExportPostsRequest) (*excelize.File, error)
}
