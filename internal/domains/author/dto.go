package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MaxNameLength = 100
	MinNameLength = 1
)

// BirthDateLayout is the wire format for birth dates.
const BirthDateLayout = "2006-01-02"

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	BirthDate *string `json:"birth_date,omitempty"` // YYYY-MM-DD
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(MinNameLength, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(MinNameLength, MaxNameLength),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.BirthDate,
			validation.When(r.BirthDate != nil, validation.Date(BirthDateLayout).Error("birth_date must be YYYY-MM-DD")),
		),
	)
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// All fields optional for partial updates.
type UpdateAuthorRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"` // YYYY-MM-DD
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.When(r.FirstName != nil, validation.Length(MinNameLength, MaxNameLength)),
		),
		validation.Field(&r.LastName,
			validation.When(r.LastName != nil, validation.Length(MinNameLength, MaxNameLength)),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != nil, is.Email.Error("invalid email format")),
		),
		validation.Field(&r.BirthDate,
			validation.When(r.BirthDate != nil, validation.Date(BirthDateLayout).Error("birth_date must be YYYY-MM-DD")),
		),
	)
}

// AuthorResponse carries the derived full name and age alongside raw fields.
type AuthorResponse struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Age       *int       `json:"age,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListAuthorsRequest - GET /v1/authors query params
type ListAuthorsRequest struct {
	Search string
	Limit  int
	Offset int
}

// ExportAuthorsRequest - POST /v1/authors/export
// IDs narrow the export to a selection; empty means current filter set.
type ExportAuthorsRequest struct {
	IDs    []uuid.UUID `json:"ids"`
	Search string      `json:"search"`
}
