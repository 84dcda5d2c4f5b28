package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNameSanitizesStem(t *testing.T) {
	now := time.UnixMilli(1710000000000)
	name, err := GenerateName("passportPhoto", "../My Photo (1).JPG", now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^passportPhoto-MyPhoto1-1710000000000-[0-9a-f]{12}\.jpg$`), name)
}

func TestGenerateNameIsUnique(t *testing.T) {
	now := time.Now()
	a, err := GenerateName("resume", "cv.pdf", now)
	require.NoError(t, err)
	b, err := GenerateName("resume", "cv.pdf", now)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateNameFallsBackForEmptyStem(t *testing.T) {
	name, err := GenerateName("idProof", "###.png", time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "idProof-file-"))
	assert.True(t, strings.HasSuffix(name, ".png"))
}

func TestSaveStreamRecreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	name, err := store.SaveStream("reportCard", "marks.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, store.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(name), "deleting twice is a no-op")
}

func TestResolveStaysInsideBaseDir(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "passwd"), store.Path("../../etc/passwd"))
}
