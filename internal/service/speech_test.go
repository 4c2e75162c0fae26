package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/narrator/internal/audio"
	"github.com/ekisa-team/narrator/internal/config"
	"github.com/ekisa-team/narrator/internal/ledger"
	"github.com/ekisa-team/narrator/internal/speech"
)

// fileEngine writes the request text as the audio payload.
type fileEngine struct {
	provider speech.Provider
	err      error

	mu   sync.Mutex
	reqs []speech.Request
}

func (f *fileEngine) Provider() speech.Provider { return f.provider }

func (f *fileEngine) Synthesize(ctx context.Context, req *speech.Request) (*speech.Result, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, *req)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if err := os.WriteFile(req.OutputPath, []byte("ID3:"+req.Text), 0o644); err != nil {
		return nil, err
	}
	return &speech.Result{Path: req.OutputPath}, nil
}

func (f *fileEngine) Close() error { return nil }

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e ledger.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func newSpeech(t *testing.T, engines ...speech.Engine) (*Speech, string) {
	t.Helper()

	reg := speech.NewRegistry()
	for _, e := range engines {
		require.NoError(t, reg.Register(e))
	}

	dir := filepath.Join(t.TempDir(), "audio")
	return NewSpeech(reg, audio.NewFileStore(dir), engines[0].Provider()), dir
}

func TestSpeech_Speak(t *testing.T) {
	engine := &fileEngine{provider: "espeak"}
	svc, dir := newSpeech(t, engine)

	clip, err := svc.Speak(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Regexp(t, `^audio_[0-9a-f-]{36}\.mp3$`, clip.Name)
	assert.Equal(t, filepath.Join(dir, clip.Name), clip.Path)
	assert.Equal(t, int64(len("ID3:hello world")), clip.Size)

	data, err := os.ReadFile(clip.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID3:hello world", string(data))
}

func TestSpeech_SpeakTwiceProducesDistinctFiles(t *testing.T) {
	svc, dir := newSpeech(t, &fileEngine{provider: "espeak"})

	a, err := svc.Speak(context.Background(), "same text")
	require.NoError(t, err)
	b, err := svc.Speak(context.Background(), "same text")
	require.NoError(t, err)

	assert.NotEqual(t, a.Name, b.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSpeech_SpeakEngineFailure(t *testing.T) {
	svc, _ := newSpeech(t, &fileEngine{provider: "espeak", err: errors.New("engine unavailable")})

	_, err := svc.Speak(context.Background(), "hello")
	assert.EqualError(t, err, "engine unavailable")
}

func TestSpeech_SpeakUnknownProvider(t *testing.T) {
	reg := speech.NewRegistry()
	svc := NewSpeech(reg, audio.NewFileStore(t.TempDir()), "espeak")

	_, err := svc.Speak(context.Background(), "hello")
	assert.ErrorIs(t, err, speech.ErrNotFound)
}

func TestSpeech_RecordsClip(t *testing.T) {
	reg := speech.NewRegistry()
	require.NoError(t, reg.Register(&fileEngine{provider: "espeak"}))

	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e ledger.Entry) bool {
		return e.TextHash == ledger.HashText("héllo") && e.TextLength == 5 && e.Provider == "espeak"
	})).Return(errors.New("disk full")).Once()

	svc := NewSpeech(reg, audio.NewFileStore(t.TempDir()), "espeak", WithRecorder(rec))

	// A failing recorder does not fail the request.
	_, err := svc.Speak(context.Background(), "héllo")
	require.NoError(t, err)

	rec.AssertExpectations(t)
}

func TestSpeech_Reconfigure(t *testing.T) {
	espeak := &fileEngine{provider: "espeak"}
	piper := &fileEngine{provider: "piper"}
	svc, _ := newSpeech(t, espeak, piper)

	require.NoError(t, svc.Reconfigure(config.SpeechConfig{
		Provider:   "piper",
		Parameters: map[string]any{"speaker_id": 2},
	}))
	assert.Equal(t, speech.Provider("piper"), svc.Provider())

	_, err := svc.Speak(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, piper.reqs, 1)
	assert.Equal(t, 2, piper.reqs[0].Parameters["speaker_id"])

	err = svc.Reconfigure(config.SpeechConfig{Provider: "sapi5"})
	assert.ErrorIs(t, err, speech.ErrNotFound)
	assert.Equal(t, speech.Provider("piper"), svc.Provider())
}

func TestSpeech_Open(t *testing.T) {
	svc, _ := newSpeech(t, &fileEngine{provider: "espeak"})

	clip, err := svc.Speak(context.Background(), "abc")
	require.NoError(t, err)

	f, size, err := svc.Open(clip)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, clip.Size, size)
}
