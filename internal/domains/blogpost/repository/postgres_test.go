package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blogpost"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildWhereClause_NonAdminForcesVisibility(t *testing.T) {
	where, args := buildWhereClause(blogpost.ListPostsRequest{ViewerIsAdmin: false})

	assert.Contains(t, where, "p.active = TRUE")
	assert.Contains(t, where, "p.deleted = FALSE")
	assert.Empty(t, args)
}

func TestBuildWhereClause_NonAdminIgnoresVisibilityFilters(t *testing.T) {
	// A client-supplied deleted=true filter must not widen a non-admin view.
	where, args := buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: false,
		Active:        boolPtr(false),
		Deleted:       boolPtr(true),
	})

	assert.Contains(t, where, "p.active = TRUE")
	assert.Contains(t, where, "p.deleted = FALSE")
	assert.NotContains(t, where, "p.active = $")
	assert.NotContains(t, where, "p.deleted = $")
	assert.Empty(t, args)
}

func TestBuildWhereClause_AdminSeesEverythingByDefault(t *testing.T) {
	where, args := buildWhereClause(blogpost.ListPostsRequest{ViewerIsAdmin: true})

	assert.NotContains(t, where, "p.active")
	assert.NotContains(t, where, "p.deleted")
	assert.Empty(t, args)
}

func TestBuildWhereClause_AdminFilters(t *testing.T) {
	where, args := buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: true,
		Active:        boolPtr(true),
		Deleted:       boolPtr(false),
	})

	assert.Contains(t, where, "p.active = $1")
	assert.Contains(t, where, "p.deleted = $2")
	assert.Equal(t, []interface{}{true, false}, args)
}

func TestBuildWhereClause_Search(t *testing.T) {
	where, args := buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: true,
		Search:        "golang",
	})

	assert.Contains(t, where, "p.title ILIKE $1")
	assert.Equal(t, []interface{}{"%golang%"}, args)
}

func TestBuildWhereClause_AuthorFilter(t *testing.T) {
	authorID := uuid.New()
	where, args := buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: true,
		AuthorID:      &authorID,
	})

	assert.Contains(t, where, "pa2.author_id = $1")
	require.Len(t, args, 1)
	assert.Equal(t, authorID, args[0])
}

func TestBuildWhereClause_DateDrilldown(t *testing.T) {
	where, args := buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: true,
		Year:          2024,
	})
	assert.Contains(t, where, "EXTRACT(YEAR FROM p.created_at) = $1")
	assert.Equal(t, []interface{}{2024}, args)

	where, args = buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: true,
		Year:          2024,
		Month:         6,
	})
	assert.Contains(t, where, "make_date($1, $2, 1)")
	assert.Equal(t, []interface{}{2024, 6}, args)
}

func TestBuildWhereClause_ArgIndexesStayAligned(t *testing.T) {
	authorID := uuid.New()
	where, args := buildWhereClause(blogpost.ListPostsRequest{
		ViewerIsAdmin: true,
		Active:        boolPtr(true),
		Search:        "go",
		AuthorID:      &authorID,
		Year:          2023,
		Month:         2,
	})

	assert.Contains(t, where, "p.active = $1")
	assert.Contains(t, where, "p.title ILIKE $2")
	assert.Contains(t, where, "pa2.author_id = $3")
	assert.Contains(t, where, "make_date($4, $5, 1)")
	assert.Equal(t, []interface{}{true, "%go%", authorID, 2023, 2}, args)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "p.created_at ASC", orderClause("created_at"))
	assert.Equal(t, "p.created_at DESC", orderClause("-created_at"))
	assert.Equal(t, "p.title ASC", orderClause("title"))

	// Anything unknown falls back to the manual drag order
	assert.Equal(t, "p.sort_order ASC", orderClause(""))
	assert.Equal(t, "p.sort_order ASC", orderClause("id; DROP TABLE blog_posts"))
}
