package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/user"
)

// The repository SQL names columns by hand, so a drift between the queries
// and migrations/001_init.sql only surfaces against a live database. This
// keeps the users DDL in step with the model's db tags (which also drive
// pgx.RowToStructByName in List).

func usersTableColumns(t *testing.T) map[string]bool {
	t.Helper()

	path := filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql")
	ddl, err := os.ReadFile(path)
	require.NoError(t, err)

	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS users \((.*?)\);`)
	m := re.FindSubmatch(ddl)
	require.NotNil(t, m, "users table not found in migration")

	columns := map[string]bool{}
	for _, line := range strings.Split(string(m[1]), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, "CONSTRAINT") {
			continue
		}
		columns[strings.ToLower(strings.Fields(line)[0])] = true
	}
	return columns
}

func TestUserQueriesMatchSchema(t *testing.T) {
	columns := usersTableColumns(t)

	typ := reflect.TypeOf(user.User{})
	for i := 0; i < typ.NumField(); i++ {
		col := typ.Field(i).Tag.Get("db")
		require.NotEmpty(t, col, "field %s has no db tag", typ.Field(i).Name)
		assert.True(t, columns[col], "column %q used by queries is missing from the users DDL", col)
	}
}
