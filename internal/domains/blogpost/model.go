package blogpost

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is the central entity. Soft deletion is a flag (the admin list
// filters it for non-superusers); SortOrder is the manual drag position and
// the default listing order.
type BlogPost struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Text        string     `json:"text" db:"text"`
	Active      bool       `json:"active" db:"active"`
	Deleted     bool       `json:"deleted" db:"deleted"`
	Website     *string    `json:"website" db:"website"`
	DocumentURL *string    `json:"document_url" db:"document_url"`
	DocumentKey *string    `json:"-" db:"document_key"`
	SortOrder   int        `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// BlogPostImage belongs to one post, ordered ascending within it.
type BlogPostImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BlogPostID uuid.UUID `json:"blog_post_id" db:"blog_post_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	ImageKey   string    `json:"-" db:"image_key"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// BlogPostImageDescription is a free-text caption on an image.
type BlogPostImageDescription struct {
	ID              uuid.UUID `json:"id" db:"id"`
	BlogPostImageID uuid.UUID `json:"blog_post_image_id" db:"blog_post_image_id"`
	Text            string    `json:"text" db:"text"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// BannerImage is the post's cover, at most one per post.
type BannerImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BlogPostID uuid.UUID `json:"blog_post_id" db:"blog_post_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	ImageKey   string    `json:"-" db:"image_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
