package audio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/ekisa-team/narrator/internal/xfs"
)

// MediaType is the content type clips are served with.
const MediaType = "audio/mpeg"

var clipName = regexp.MustCompile(`^audio_[0-9a-f-]{36}\.mp3$`)

// Clip is a generated audio file. Clips are never deleted.
type Clip struct {
	ID   string
	Name string
	Path string
	Size int64
}

// FileStore allocates clip files in a local directory (default audio/).
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "audio"
	}
	return &FileStore{dir: dir}
}

// Dir returns the directory clips are written to.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// NewClip allocates a uniquely named clip. Nothing is written to disk.
func (fs *FileStore) NewClip() *Clip {
	id := uuid.NewString()
	name := fmt.Sprintf("audio_%s.mp3", id)

	return &Clip{
		ID:   id,
		Name: name,
		Path: filepath.Join(fs.dir, name),
	}
}

// EnsureDir creates the clip directory if it is missing. Safe to call
// concurrently and repeatedly.
func (fs *FileStore) EnsureDir() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	created, err := xfs.EnsureDir(fs.dir)
	if err != nil {
		return fmt.Errorf("audio: failed to prepare directory %s: %w", fs.dir, err)
	}
	if created {
		slog.Info("Created audio directory", "dir", fs.dir)
	}
	return nil
}

// Open opens a clip for reading and returns its size.
func (fs *FileStore) Open(clip *Clip) (*os.File, int64, error) {
	if !clipName.MatchString(clip.Name) {
		return nil, 0, fmt.Errorf("audio: invalid clip name %q", clip.Name)
	}

	f, err := os.Open(filepath.Join(fs.dir, clip.Name))
	if err != nil {
		return nil, 0, fmt.Errorf("audio: failed to open clip: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("audio: failed to stat clip: %w", err)
	}

	return f, info.Size(), nil
}
