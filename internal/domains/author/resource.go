package author

import (
	"blog-backend/internal/shared/export"
)

// ExportResource is the declarative column projection for author exports:
// the name fields plus the derived full name and age.
func ExportResource() export.Resource[AuthorResponse] {
	return export.Resource[AuthorResponse]{
		Sheet:    "Authors",
		Filename: "authors.xlsx",
		Columns: []export.Column[AuthorResponse]{
			{Header: "First Name", Value: func(a AuthorResponse) interface{} { return a.FirstName }},
			{Header: "Last Name", Value: func(a AuthorResponse) interface{} { return a.LastName }},
			{Header: "Full Name", Value: func(a AuthorResponse) interface{} { return a.FullName }},
			{Header: "Age", Value: func(a AuthorResponse) interface{} {
				if a.Age == nil {
					return nil
				}
				return *a.Age
			}},
		},
	}
}
