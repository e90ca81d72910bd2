package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Репозитории и эталонная схема живут в разных файлах; тест ловит
// расхождение списков колонок без живой базы.
func TestSchemaCoversRepositoryColumns(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "db", "schema.sql"))
	require.NoError(t, err)
	schema := string(raw)

	cases := map[string]string{
		"events":       eventColumns,
		"participates": participateColumns,
		"donations":    donationColumns,
		"rounds":       roundColumns,
		"receives":     "participate_id, gift_id, created_at",
		"tags":         "id, status",
	}

	for table, columns := range cases {
		ddl := tableDDL(t, schema, table)
		for _, column := range strings.Split(columns, ",") {
			column = strings.TrimSpace(column)
			assert.Contains(t, ddl, column, "table %s has no column %s", table, column)
		}
	}
}

func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	require.NotEqual(t, -1, start, "no CREATE TABLE for %s", table)

	rest := schema[start:]
	end := strings.Index(rest, ");")
	require.NotEqual(t, -1, end, "unterminated CREATE TABLE for %s", table)
	return rest[:end]
}
