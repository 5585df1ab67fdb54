package db

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
)

func TestMigrationsEmbedded(t *testing.T) {
	ups, err := fs.Glob(Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(Migrations, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestReporterPositionBound(t *testing.T) {
	raw, err := fs.ReadFile(Migrations, "migrations/20240301000001_create_registry.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), fmt.Sprintf("position < %d)", registry.MaxReporterCount))
}
