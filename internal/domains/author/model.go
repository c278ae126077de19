package author

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	Email     string     `json:"email" db:"email"`
	BirthDate *time.Time `json:"birth_date" db:"birth_date"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName derives "First Last".
func (a *Author) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

// AgeOn derives the author's age at the given date.
// ok = false when the birth date is not set.
func (a *Author) AgeOn(today time.Time) (int, bool) {
	if a.BirthDate == nil {
		return 0, false
	}

	b := *a.BirthDate
	age := today.Year() - b.Year()

	// Birthday not reached yet this year
	if today.Month() < b.Month() || (today.Month() == b.Month() && today.Day() < b.Day()) {
		age--
	}

	return age, true
}

func (a *Author) ToResponse(now time.Time) *AuthorResponse {
	resp := &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		FullName:  a.FullName(),
		BirthDate: a.BirthDate,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if age, ok := a.AgeOn(now); ok {
		resp.Age = &age
	}
	return resp
}
