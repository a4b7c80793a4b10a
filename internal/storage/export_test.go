package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAndImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Save(ctx, []byte(`{"word_books":[]}`)))

	dir := t.TempDir()
	path, err := Export(ctx, mem, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "typelearn-backup-"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"word_books":[]}`, string(data))

	// Import replaces the blob wholesale.
	other := NewMemory()
	require.NoError(t, Import(ctx, other, path))
	got, err := other.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"word_books":[]}`, string(got))
}

func TestExportWithoutState(t *testing.T) {
	_, err := Export(context.Background(), NewMemory(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no saved state")
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	err := Import(context.Background(), NewMemory(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestMemoryProvider(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	data, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data, "nothing saved yet")

	require.NoError(t, mem.Save(ctx, []byte("a")))
	require.NoError(t, mem.Save(ctx, []byte("b")))
	data, err = mem.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data, "last write wins")
	assert.Equal(t, 2, mem.Saves())
}
