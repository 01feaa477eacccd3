package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptedStore(t *testing.T) *EncryptedFileStore {
	t.Helper()
	t.Setenv("PIXFETCH_PASSPHRASE", "test-passphrase")

	store, err := NewEncryptedFileStore(filepath.Join(t.TempDir(), "credentials.enc"))
	require.NoError(t, err)
	return store
}

func TestEncryptedStoreRoundTrip(t *testing.T) {
	store := newTestEncryptedStore(t)

	require.NoError(t, store.Store(&Credential{Name: "work", APIKey: "secret-key"}))

	got, err := store.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "work", got.Name)
	assert.Equal(t, "secret-key", got.APIKey)
}

func TestEncryptedStoreFileIsNotPlaintext(t *testing.T) {
	t.Setenv("PIXFETCH_PASSPHRASE", "test-passphrase")
	path := filepath.Join(t.TempDir(), "credentials.enc")

	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Store(&Credential{Name: "work", APIKey: "super-secret-api-key"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-api-key")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEncryptedStoreMultipleCredentials(t *testing.T) {
	store := newTestEncryptedStore(t)

	require.NoError(t, store.Store(&Credential{Name: "work", APIKey: "a"}))
	require.NoError(t, store.Store(&Credential{Name: "personal", APIKey: "b"}))

	creds, err := store.List()
	require.NoError(t, err)
	assert.Len(t, creds, 2)

	assert.True(t, store.Exists("work"))
	assert.True(t, store.Exists("personal"))
	assert.False(t, store.Exists("missing"))
}

func TestEncryptedStoreDelete(t *testing.T) {
	store := newTestEncryptedStore(t)

	require.NoError(t, store.Store(&Credential{Name: "work", APIKey: "a"}))
	require.NoError(t, store.Delete("work"))
	assert.False(t, store.Exists("work"))

	assert.Error(t, store.Delete("work"))
}

func TestEncryptedStoreRetrieveMissing(t *testing.T) {
	store := newTestEncryptedStore(t)

	_, err := store.Retrieve("missing")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestEncryptedStorePersistsAcrossInstances(t *testing.T) {
	t.Setenv("PIXFETCH_PASSPHRASE", "test-passphrase")
	path := filepath.Join(t.TempDir(), "credentials.enc")

	first, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Store(&Credential{Name: "work", APIKey: "persisted"}))

	second, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	got, err := second.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.APIKey)
}
