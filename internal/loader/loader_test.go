package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsTextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("first document"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# second document"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.csv"), []byte("x,y"), 0o644))

	docs, err := NewDirectoryLoader().Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	texts := map[string]bool{}
	for _, d := range docs {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Path)
		texts[d.Text] = true
	}
	assert.True(t, texts["first document"])
	assert.True(t, texts["# second document"])
}

func TestLoad_StableDocumentIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("stable"), 0o644))

	first, err := NewDirectoryLoader().Load(dir)
	require.NoError(t, err)
	second, err := NewDirectoryLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestLoad_SkipsEmptyAndUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("   \n"), 0o644))
	// Not a real PDF; must be skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte("content"), 0o644))

	docs, err := NewDirectoryLoader().Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "content", docs[0].Text)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	_, err := NewDirectoryLoader().Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := NewDirectoryLoader().Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
