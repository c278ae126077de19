package author

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAuthor_FullName(t *testing.T) {
	a := &Author{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", a.FullName())
}

func TestAuthor_AgeOn(t *testing.T) {
	birth := date(1990, time.June, 15)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "birthday already passed this year", today: date(2024, time.December, 1), want: 34},
		{name: "birthday not reached yet", today: date(2024, time.March, 1), want: 33},
		{name: "exactly on birthday", today: date(2024, time.June, 15), want: 34},
		{name: "day before birthday", today: date(2024, time.June, 14), want: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Author{BirthDate: &birth}
			age, ok := a.AgeOn(tt.today)
			require.True(t, ok)
			assert.Equal(t, tt.want, age)
		})
	}
}

func TestAuthor_AgeOn_NoBirthDate(t *testing.T) {
	a := &Author{}
	_, ok := a.AgeOn(date(2024, time.January, 1))
	assert.False(t, ok)
}

func TestAuthor_ToResponse(t *testing.T) {
	birth := date(2000, time.January, 10)
	a := &Author{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", BirthDate: &birth}

	resp := a.ToResponse(date(2024, time.May, 1))

	assert.Equal(t, "Jane Doe", resp.FullName)
	require.NotNil(t, resp.Age)
	assert.Equal(t, 24, *resp.Age)
}

func TestAuthor_ToResponse_NoBirthDate(t *testing.T) {
	a := &Author{FirstName: "Jane", LastName: "Doe"}
	resp := a.ToResponse(date(2024, time.May, 1))
	assert.Nil(t, resp.Age)
}
