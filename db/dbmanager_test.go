package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestDB(t *testing.T) *DBManager {
	t.Helper()
	dbManager, err := NewDBConnection(filepath.Join(t.TempDir(), "embeds.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = dbManager.Close()
	})
	return dbManager
}

func TestNewDBConnection_RequiresPath(t *testing.T) {
	_, err := NewDBConnection("  ")
	require.Error(t, err)
}

func TestNewDBConnection_CreatesSchema(t *testing.T) {
	dbManager := openTestDB(t)

	var count int
	err := dbManager.DB.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'messages'")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDBConnection_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeds.db")

	first, err := NewDBConnection(path)
	require.NoError(t, err)
	_, err = first.DB.Exec("INSERT INTO messages(author_name) VALUES('Bot')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewDBConnection(path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.DB.Get(&count, "SELECT COUNT(*) FROM messages"))
	assert.Equal(t, 1, count)
}

func TestDBManager_CloseNil(t *testing.T) {
	var dbManager *DBManager
	assert.NoError(t, dbManager.Close())
}
