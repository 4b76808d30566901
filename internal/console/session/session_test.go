package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_TokenLifecycle(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.SetToken("tok123"))
	token, err := store.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	require.NoError(t, store.ClearToken())
	_, err = store.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestMemoryStore_ClearTokenDropsBothTokens(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetRefreshToken()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.SetToken("acc"))
	require.NoError(t, store.SetRefreshToken("ref"))

	refresh, err := store.GetRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, "ref", refresh)

	require.NoError(t, store.ClearToken())
	_, err = store.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = store.GetRefreshToken()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestMemoryStore_ViewModeDefaultsToGrid(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, ViewModeGrid, store.GetViewMode())

	require.NoError(t, store.SetViewMode(ViewModeTable))
	assert.Equal(t, ViewModeTable, store.GetViewMode())

	assert.Error(t, store.SetViewMode("cards"))
	assert.Equal(t, ViewModeTable, store.GetViewMode())
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store := NewFileStore(path)
	require.NoError(t, store.SetToken("tok456"))
	require.NoError(t, store.SetRefreshToken("ref456"))
	require.NoError(t, store.SetViewMode(ViewModeTable))

	// A fresh instance over the same file sees the same state
	reopened := NewFileStore(path)
	token, err := reopened.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "tok456", token)
	refresh, err := reopened.GetRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, "ref456", refresh)
	assert.Equal(t, ViewModeTable, reopened.GetViewMode())

	require.NoError(t, reopened.ClearToken())
	_, err = reopened.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = reopened.GetRefreshToken()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, ViewModeTable, reopened.GetViewMode(), "logout must not touch the view preference")
}

func TestFileStore_MissingFile_BehavesAsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, ViewModeGrid, store.GetViewMode())
	assert.NoError(t, store.ClearToken())
}

func TestFileStore_FilePermissionsRestricted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.SetToken("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
