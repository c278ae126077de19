package blogpost

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreatePostRequest_Validate(t *testing.T) {
	valid := CreatePostRequest{Title: "hello", Text: "world"}
	assert.NoError(t, valid.Validate())

	missingTitle := CreatePostRequest{Text: "world"}
	assert.Error(t, missingTitle.Validate())

	missingText := CreatePostRequest{Title: "hello"}
	assert.Error(t, missingText.Validate())

	longTitle := CreatePostRequest{Title: strings.Repeat("x", MaxTitleLength+1), Text: "world"}
	assert.Error(t, longTitle.Validate())

	badWebsite := CreatePostRequest{Title: "hello", Text: "world", Website: strPtr("not a url")}
	assert.Error(t, badWebsite.Validate())

	goodWebsite := CreatePostRequest{Title: "hello", Text: "world", Website: strPtr("https://example.com")}
	assert.NoError(t, goodWebsite.Validate())
}

func TestUpdatePostRequest_Validate(t *testing.T) {
	empty := UpdatePostRequest{}
	assert.NoError(t, empty.Validate())

	longTitle := UpdatePostRequest{Title: strPtr(strings.Repeat("x", MaxTitleLength+1))}
	assert.Error(t, longTitle.Validate())

	badWebsite := UpdatePostRequest{Website: strPtr("nope")}
	assert.Error(t, badWebsite.Validate())
}

func TestReorderRequest_Validate(t *testing.T) {
	assert.Error(t, ReorderRequest{}.Validate())
	assert.NoError(t, ReorderRequest{IDs: []uuid.UUID{uuid.New()}}.Validate())
}

func TestExportResource_ColumnOrder(t *testing.T) {
	r := ExportResource()

	headers := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		headers = append(headers, c.Header)
	}
	assert.Equal(t, []string{"ID", "Title", "Text", "Create Date"}, headers)
	assert.Equal(t, "blog_posts.xlsx", r.Filename)
}

func TestExportResource_Values(t *testing.T) {
	row := ExportRow{
		ID:        uuid.MustParse("6f1d2f9a-9c1e-4a6b-8f0e-6a2b3c4d5e6f"),
		Title:     "hello",
		Text:      "world",
		CreatedAt: time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
	}

	f, err := ExportResource().Build([]ExportRow{row})
	require.NoError(t, err)

	sheet := ExportResource().Sheet

	id, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "6f1d2f9a-9c1e-4a6b-8f0e-6a2b3c4d5e6f", id)

	created, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 14:30:00", created)
}
