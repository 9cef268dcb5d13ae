package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/trainerdesk/internal/db"
)

func TestOpenMemory_AppliesMigrations(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	require.NoError(t, database.Ping(ctx))

	var count int
	err = database.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'documents'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Running the migrations again is a no-op.
	assert.NoError(t, db.Migrate(ctx, database.DB))
}

func TestDocumentsRejectInvalidJSON(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	_, err = database.ExecContext(context.Background(),
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES ('c', '1', 'not json', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}
