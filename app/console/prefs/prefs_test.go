package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, err)
	assert.False(t, p.Admin)
	assert.Empty(t, p.Liked)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	p, err := Load(path)
	require.NoError(t, err)
	p.Admin = true
	p.Token = "tok"
	p.Draft = "감사합니다"
	p.Name = "홍길동"
	p.MarkLiked(3)
	p.MarkLiked(3)
	p.MarkLiked(7)
	require.NoError(t, p.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.True(t, again.Admin)
	assert.Equal(t, "tok", again.Token)
	assert.Equal(t, "감사합니다", again.Draft)
	assert.Equal(t, "홍길동", again.Name)
	assert.Equal(t, []uint{3, 7}, again.Liked)
	assert.Equal(t, path, again.Path())

	again.UnmarkLiked(3)
	assert.False(t, again.HasLiked(3))
	assert.True(t, again.HasLiked(7))
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admin: [oops"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
