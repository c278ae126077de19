package blogpost

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MaxTitleLength = 255
)

// ========================================
// WRITE DTOs
// ========================================

// CreatePostRequest - POST /v1/posts
type CreatePostRequest struct {
	Title     string      `json:"title" binding:"required"`
	Text      string      `json:"text" binding:"required"`
	Website   *string     `json:"website,omitempty"`
	Active    *bool       `json:"active,omitempty"` // defaults to true
	AuthorIDs []uuid.UUID `json:"author_ids"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Text,
			validation.Required.Error("text is required"),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != nil && *r.Website != "", is.URL.Error("website must be a valid URL")),
		),
	)
}

// UpdatePostRequest - PUT /v1/posts/:id
// Pointer fields: nil means "leave unchanged".
type UpdatePostRequest struct {
	Title     *string      `json:"title,omitempty"`
	Text      *string      `json:"text,omitempty"`
	Website   *string      `json:"website,omitempty"`
	Active    *bool        `json:"active,omitempty"`
	AuthorIDs *[]uuid.UUID `json:"author_ids,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, MaxTitleLength)),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != nil && *r.Website != "", is.URL.Error("website must be a valid URL")),
		),
	)
}

// ReorderRequest carries the full ordered id list for the scope being
// reordered (all posts, or one post's images). Positions are persisted
// as sort_order 0..n-1 in one transaction.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required.Error("ids are required"), validation.Length(1, 0)),
	)
}

// SaveTreeRequest - PUT /v1/posts/:id/tree
// The inline-composition save: the submitted rows replace the post's image
// set and the nested description sets atomically. Rows without an image key
// and descriptions with blank text are skipped (blank inline rows must not
// create records).
type SaveTreeRequest struct {
	Images []ImageNode `json:"images"`
}

type ImageNode struct {
	ID           *uuid.UUID        `json:"id,omitempty"` // nil = new row
	ImageKey     string            `json:"image_key"`
	ImageURL     string            `json:"image_url"`
	Descriptions []DescriptionNode `json:"descriptions"`
}

type DescriptionNode struct {
	ID   *uuid.UUID `json:"id,omitempty"` // nil = new row
	Text string     `json:"text"`
}

// ========================================
// READ DTOs
// ========================================

// ListPostsRequest - GET /v1/posts query params.
// ViewerIsAdmin comes from the auth context, never from the query string:
// non-admins are forced to active, not-deleted rows inside the WHERE clause
// so pagination totals and search stay consistent with the visible set.
type ListPostsRequest struct {
	Search        string
	Active        *bool
	Deleted       *bool
	AuthorID      *uuid.UUID
	Year          int // created-date drilldown
	Month         int // 1-12, only with Year
	SortBy        string
	Limit         int
	Offset        int
	ViewerIsAdmin bool
}

// PostListRow is one listing row; author names come aggregated from the M2M.
type PostListRow struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Active      bool      `json:"active"`
	Deleted     bool      `json:"deleted"`
	Website     *string   `json:"website,omitempty"`
	SortOrder   int       `json:"sort_order"`
	AuthorNames []string  `json:"author_names"`
	ImageCount  int       `json:"image_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthorRef is the compact author view embedded in a post detail.
type AuthorRef struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type DescriptionResponse struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type ImageResponse struct {
	ID           uuid.UUID             `json:"id"`
	ImageURL     string                `json:"image_url"`
	SortOrder    int                   `json:"sort_order"`
	Descriptions []DescriptionResponse `json:"descriptions"`
}

type BannerResponse struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"image_url"`
}

// PostDetailResponse is the full edit-screen payload: the post, its authors,
// its ordered images with nested descriptions, and the banner.
type PostDetailResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Text        string          `json:"text"`
	Active      bool            `json:"active"`
	Deleted     bool            `json:"deleted"`
	Website     *string         `json:"website,omitempty"`
	DocumentURL *string         `json:"document_url,omitempty"`
	SortOrder   int             `json:"sort_order"`
	Authors     []AuthorRef     `json:"authors"`
	Images      []ImageResponse `json:"images"`
	Banner      *BannerResponse `json:"banner,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExportPostsRequest - POST /v1/posts/export
// IDs narrow the export to the selected rows; with no ids the current
// filter set is exported instead. Never the whole table implicitly.
type ExportPostsRequest struct {
	IDs           []uuid.UUID `json:"ids"`
	Search        string      `json:"search"`
	Active        *bool       `json:"active"`
	Deleted       *bool       `json:"deleted"`
	ViewerIsAdmin bool        `json:"-"`
}

// ExportRow is the fixed export projection (id, title, text, create date).
type ExportRow struct {
	ID        uuid.UUID
	Title     string
	Text      string
	CreatedAt time.Time
}
