package db_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicecheck/db"
)

func TestMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(db.Migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	assert.Equal(t, ups, downs)
}

func TestMigrations_AnalysesColumns(t *testing.T) {
	up, err := fs.ReadFile(db.Migrations, "migrations/000001_create_analyses.up.sql")
	require.NoError(t, err)

	for _, col := range []string{"id", "invoice_type", "language", "source", "file_name",
		"storage_key", "overall_status", "result", "model_used", "created_at"} {
		assert.Contains(t, string(up), "\n    "+col+" ", col)
	}
}
