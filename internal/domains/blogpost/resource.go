package blogpost

import (
	"blog-backend/internal/shared/export"
)

// ExportResource is the declarative projection for blog post exports:
// id, title, text and create date, in that column order.
func ExportResource() export.Resource[ExportRow] {
	return export.Resource[ExportRow]{
		Sheet:    "Blog Posts",
		Filename: "blog_posts.xlsx",
		Columns: []export.Column[ExportRow]{
			{Header: "ID", Value: func(p ExportRow) interface{} { return p.ID.String() }},
			{Header: "Title", Value: func(p ExportRow) interface{} { return p.Title }},
			{Header: "Text", Value: func(p ExportRow) interface{} { return p.Text }},
			{Header: "Create Date", Value: func(p ExportRow) interface{} {
				return p.CreatedAt.Format("2006-01-02 15:04:05")
			}},
		},
	}
}
