package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"freelancer-server/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../migrations"

func setMigrationsConfig(t *testing.T) {
	t.Helper()

	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Database: config.DatabaseConfig{MigrationsPath: migrationsDir},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func readMigration(t *testing.T, name string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(migrationsDir, name))
	require.NoError(t, err)
	return string(content)
}

func TestGetMigrationFilesSortedByVersion(t *testing.T) {
	setMigrationsConfig(t)

	var db DB
	files, err := db.getMigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i], "migrations must apply in filename order")
	}
	for _, f := range files {
		assert.True(t, strings.HasSuffix(f, ".sql"))
	}
}

// Deleting a user must take that user's saves with it, without reaching
// into the shared universe tables. The constraints live in the schema, so
// that is where the guarantee is checked.
func TestGameSaveSchemaCascadesFromUsers(t *testing.T) {
	schema := readMigration(t, "003_create_game_saves.sql")

	assert.Contains(t, schema, "REFERENCES users(id) ON DELETE CASCADE",
		"game saves must be removed with their owner")
	assert.Contains(t, schema, "REFERENCES star_systems(id) ON DELETE SET NULL",
		"a deleted system detaches from saves instead of deleting them")
}

func TestUniverseSchemaHasNoDependencyOnPlayerData(t *testing.T) {
	schema := readMigration(t, "001_create_universe.sql")

	assert.NotContains(t, schema, "REFERENCES users")
	assert.NotContains(t, schema, "REFERENCES game_saves")
}
