package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set(KeyDataDir, "/var/lib/cearch")
	require.NoError(t, err)

	val, ok := store.Get(KeyDataDir)
	assert.True(t, ok)
	assert.Equal(t, "/var/lib/cearch", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDataDir, "/data"))
	require.NoError(t, store.Set(KeyMaxDistance, 3))
	require.NoError(t, store.Set(KeyVerbose, true))
	require.NoError(t, store.Set(KeyLanguages, []string{"de", "en"}))

	assert.Equal(t, "/data", store.GetString(KeyDataDir))
	assert.Equal(t, 3, store.GetInt(KeyMaxDistance))
	assert.True(t, store.GetBool(KeyVerbose))
	assert.Equal(t, []string{"de", "en"}, store.GetStringSlice(KeyLanguages))

	// Missing keys fall back to zero values.
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))

	// Type mismatches fall back too.
	assert.Equal(t, 0, store.GetInt(KeyDataDir))
	assert.Equal(t, "", store.GetString(KeyMaxDistance))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set(KeyMaxDistance, 3))
	require.NoError(t, store1.Set(KeyLanguages, []string{"en"}))

	// A new instance loads from the file, with dotted keys flattened.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 3, store2.GetInt(KeyMaxDistance))
	assert.Equal(t, []string{"en"}, store2.GetStringSlice(KeyLanguages))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDataDir, "original"))
	require.NoError(t, store.Set(KeyDataDir, "updated"))

	assert.Equal(t, "updated", store.GetString(KeyDataDir))
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"index": map[string]any{
			"data_dir": "/data",
			"nested":   map[string]any{"deep": true},
		},
		"verbose": false,
	}, "")

	assert.Equal(t, "/data", flat["index.data_dir"])
	assert.Equal(t, true, flat["index.nested.deep"])
	assert.Equal(t, false, flat["verbose"])
}
