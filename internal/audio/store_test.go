package audio

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_NewClip(t *testing.T) {
	fs := NewFileStore("audio")

	a := fs.NewClip()
	b := fs.NewClip()

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Name, b.Name)
	assert.Regexp(t, `^audio_[0-9a-f-]{36}\.mp3$`, a.Name)
	assert.Equal(t, filepath.Join("audio", a.Name), a.Path)
}

func TestNewFileStore_DefaultDir(t *testing.T) {
	assert.Equal(t, "audio", NewFileStore("").Dir())
}

func TestFileStore_EnsureDirConcurrent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio")
	fs := NewFileStore(dir)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, fs.EnsureDir())
		}()
	}
	wg.Wait()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, fs.EnsureDir())
}

func TestFileStore_Open(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	clip := fs.NewClip()
	require.NoError(t, os.WriteFile(clip.Path, []byte("ID3"), 0o644))

	f, size, err := fs.Open(clip)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data))
	assert.Equal(t, int64(3), size)
}

func TestFileStore_OpenRejectsForeignNames(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	_, _, err := fs.Open(&Clip{Name: "../../etc/passwd"})
	assert.Error(t, err)
}
