package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.NoFileExists(t, store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[[not toml"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.model", "google/gemini-pro"))
	require.NoError(t, store.Set("retrieval.k", 5))
	require.NoError(t, store.Set("retrieval.threshold", 0.45))
	require.NoError(t, store.Set("archive.use_ssl", true))
	require.NoError(t, store.Set("vector_store.addresses", []string{"http://localhost:9200"}))

	assert.Equal(t, "google/gemini-pro", store.GetString("llm.model"))
	assert.Equal(t, 5, store.GetInt("retrieval.k"))
	assert.InDelta(t, 0.45, store.GetFloat("retrieval.threshold"), 1e-9)
	assert.InDelta(t, 5.0, store.GetFloat("retrieval.k"), 1e-9)
	assert.True(t, store.GetBool("archive.use_ssl"))
	assert.Equal(t, []string{"http://localhost:9200"}, store.GetStringSlice("vector_store.addresses"))
}

func TestConfigStore_MissingAndWrongType(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("retrieval.k", "three"))

	_, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nonexistent"))
	assert.Zero(t, store.GetInt("retrieval.k"))
	assert.Zero(t, store.GetFloat("retrieval.k"))
	assert.False(t, store.GetBool("retrieval.k"))
	assert.Nil(t, store.GetStringSlice("retrieval.k"))
}

func TestConfigStore_SetEmptyKey(t *testing.T) {
	assert.Error(t, newTestConfigStore(t).Set("", "x"))
}

func TestConfigStore_SetDoesNotPersistUntilSave(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.model", "google/gemini-pro"))
	assert.NoFileExists(t, store.Path())

	require.NoError(t, store.Save())
	assert.FileExists(t, store.Path())
}

func TestConfigStore_SaveWritesTables(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("retrieval.k", 4))
	require.NoError(t, store.Set("chunker.chunk_size", 800))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[retrieval]")
	assert.Contains(t, string(data), "[chunker]")
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("retrieval.k", 4))
	require.NoError(t, store.Set("retrieval.threshold", 0.5))
	require.NoError(t, store.Set("vector_store.backend", "sqlite"))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, reloaded.GetInt("retrieval.k"))
	assert.InDelta(t, 0.5, reloaded.GetFloat("retrieval.threshold"), 1e-9)
	assert.Equal(t, "sqlite", reloaded.GetString("vector_store.backend"))
}

func TestConfigStore_LoadNestedFile(t *testing.T) {
	dir := t.TempDir()
	content := "[llm]\nmodel = \"microsoft/wizardlm-2-8x22b\"\n\n[retrieval]\nthreshold = 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "microsoft/wizardlm-2-8x22b", store.GetString("llm.model"))
	assert.InDelta(t, 1.0, store.GetFloat("retrieval.threshold"), 1e-9)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.model", "x"))
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("retrieval.k", n)
			_ = store.GetInt("retrieval.k")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("retrieval.k")
	assert.True(t, ok)
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"llm":    map[string]any{"model": "m"},
		"ingest": map[string]any{"workers": int64(2)},
		"top":    "v",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{"llm.model": "m", "ingest.workers": int64(2), "top": "v"}, flat)
	assert.Equal(t, nested, nestMap(flat))
}
