package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
)

type fakeAuthorRepo struct {
	authors     map[uuid.UUID]*author.Author
	emailTaken  bool
	listedByIDs []uuid.UUID
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[uuid.UUID]*author.Author)}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *author.Author) error {
	f.authors[a.ID] = a
	return nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAuthorRepo) List(_ context.Context, _ author.ListAuthorsRequest) ([]author.Author, int, error) {
	out := make([]author.Author, 0, len(f.authors))
	for _, a := range f.authors {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeAuthorRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]author.Author, error) {
	f.listedByIDs = ids
	out := make([]author.Author, 0, len(ids))
	for _, id := range ids {
		if a, ok := f.authors[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAuthorRepo) Update(_ context.Context, a *author.Author) error {
	f.authors[a.ID] = a
	return nil
}

func (f *fakeAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.authors, id)
	return nil
}

func (f *fakeAuthorRepo) EmailExists(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	return f.emailTaken, nil
}

func (f *fakeAuthorRepo) AllExist(_ context.Context, _ []uuid.UUID) (bool, error) {
	return true, nil
}

func TestCreate_DerivesFullNameAndAge(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	birth := "1990-06-15"
	resp, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		BirthDate: &birth,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resp.FullName)
	require.NotNil(t, resp.Age)
	assert.GreaterOrEqual(t, *resp.Age, 34)
}

func TestCreate_RejectsFutureBirthDate(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	future := time.Now().AddDate(1, 0, 0).Format(author.BirthDateLayout)
	_, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		BirthDate: &future,
	})
	assert.ErrorIs(t, err, author.ErrInvalidBirthDay)
}

func TestCreate_RejectsDuplicateEmail(t *testing.T) {
	repo := newFakeAuthorRepo()
	repo.emailTaken = true
	svc := NewAuthorService(repo)

	_, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	assert.ErrorIs(t, err, author.ErrEmailExists)
}

func TestUpdate_ClearsBirthDate(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)

	birth := "1990-06-15"
	created, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		BirthDate: &birth,
	})
	require.NoError(t, err)

	empty := ""
	resp, err := svc.Update(context.Background(), created.ID, &author.UpdateAuthorRequest{BirthDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, resp.Age)
	assert.Nil(t, resp.BirthDate)
}

func TestExportToExcel_SelectionUsesIDs(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)

	created, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	f, err := svc.ExportToExcel(context.Background(), author.ExportAuthorsRequest{IDs: []uuid.UUID{created.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created.ID}, repo.listedByIDs)

	sheet := author.ExportResource().Sheet
	v, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", v)
}

func TestExportToExcel_EmptySelectionYieldsHeaderOnly(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	f, err := svc.ExportToExcel(context.Background(), author.ExportAuthorsRequest{})
	require.NoError(t, err)

	sheet := author.ExportResource().Sheet
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
