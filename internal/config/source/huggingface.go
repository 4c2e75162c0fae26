package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ekisa-team/narrator/internal/config"
	"github.com/ekisa-team/narrator/internal/xfs"
)

const (
	defaultRetryDelay = 2 * time.Second
	defaultMaxRetries = 3
	defaultTimeout    = 5 * time.Minute
	markerFilename    = ".narrator-downloaded"
	voiceExtension    = ".onnx"
)

// ErrVoiceNotFound is returned when a downloaded repository holds no voice model.
var ErrVoiceNotFound = errors.New("no .onnx voice model found")

// HuggingFaceDownloader downloads a voice repository from Hugging Face with the hf CLI.
type HuggingFaceDownloader struct {
	// Bin is the hf CLI executable. Defaults to "hf".
	Bin string
}

// Download downloads the repository to targetDir/<repo> unless an up-to-date
// marker is already present. The boolean result reports a cache hit.
func (d *HuggingFaceDownloader) Download(ctx context.Context, src config.HuggingFaceSource, targetDir string) (string, bool, error) {
	repo := strings.TrimSpace(src.Repo)
	if repo == "" {
		return "", false, fmt.Errorf("invalid repo name: %q", src.Repo)
	}

	fullPath := filepath.Join(targetDir, repo)
	markerPath := filepath.Join(fullPath, markerFilename)
	markerContent := d.markerContent(src)

	if !src.ForceDownload {
		if _, err := os.Stat(markerPath); err == nil && !d.shouldRedownload(markerPath, markerContent) {
			slog.Info("Voice already downloaded and up-to-date, skipping", "repo", repo, "path", fullPath)
			return fullPath, true, nil
		}
	}

	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create directory: %w", err)
	}

	args := d.buildArgs(src, fullPath)

	var lastErr error
	for attempt := range defaultMaxRetries {
		if attempt > 0 {
			slog.Info("Retrying download", "repo", repo, "attempt", attempt+1, "last_error", lastErr)
			select {
			case <-ctx.Done():
				return "", false, fmt.Errorf("download canceled: %w", ctx.Err())
			case <-time.After(defaultRetryDelay):
			}
		} else {
			slog.Info("Downloading voice", "repo", repo, "path", fullPath)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		output, err := exec.CommandContext(attemptCtx, d.bin(), args...).CombinedOutput()
		cancel()

		if err == nil {
			if err := os.WriteFile(markerPath, []byte(markerContent), 0o644); err != nil {
				slog.Warn("Failed to write download marker", "path", markerPath, "error", err)
			}

			slog.Info("Voice downloaded successfully", "repo", repo, "path", fullPath, "attempt", attempt+1)
			return fullPath, false, nil
		}

		lastErr = err
		slog.Error("Failed to download voice", "repo", repo, "attempt", attempt+1, "error", err, "output", string(output))

		if errors.Is(ctx.Err(), context.Canceled) {
			return "", false, fmt.Errorf("download canceled: %w", err)
		}
	}

	return "", false, lastErr
}

// ResolveVoice returns the piper model to load. An explicit model path wins;
// otherwise the configured source is downloaded into modelsDir and the first
// .onnx file inside it is used.
func ResolveVoice(ctx context.Context, piper config.PiperConfig, modelsDir string) (string, error) {
	if piper.Model != "" {
		return xfs.ExpandTilde(piper.Model), nil
	}

	src, err := piper.GetSource()
	if err != nil {
		return "", err
	}

	hf, ok := src.(config.HuggingFaceSource)
	if !ok {
		return "", fmt.Errorf("unsupported source type: %s", src.Type())
	}

	dir, _, err := (&HuggingFaceDownloader{}).Download(ctx, hf, modelsDir)
	if err != nil {
		return "", err
	}

	model, ok := xfs.FindFirst(dir, voiceExtension)
	if !ok {
		return "", fmt.Errorf("%w in %s", ErrVoiceNotFound, dir)
	}
	return model, nil
}

func (d *HuggingFaceDownloader) bin() string {
	if d.Bin != "" {
		return d.Bin
	}
	return "hf"
}

func (d *HuggingFaceDownloader) buildArgs(src config.HuggingFaceSource, fullPath string) []string {
	args := []string{"download", strings.TrimSpace(src.Repo), "--local-dir", fullPath}

	if src.Revision != "" {
		args = append(args, "--revision", src.Revision)
	}
	if src.RepoType != "" {
		args = append(args, "--repo-type", src.RepoType)
	}
	for _, inc := range src.Include {
		args = append(args, "--include", inc)
	}
	for _, exc := range src.Exclude {
		args = append(args, "--exclude", exc)
	}
	if src.ForceDownload {
		args = append(args, "--force-download")
	}
	if src.Token != "" {
		args = append(args, "--token", src.Token)
	}
	if src.MaxWorkers > 0 {
		args = append(args, "--max-workers", fmt.Sprintf("%d", src.MaxWorkers))
	}

	return args
}

// markerContent generates the expected content of the marker file.
// A changed revision or include set forces a redownload.
func (d *HuggingFaceDownloader) markerContent(src config.HuggingFaceSource) string {
	return fmt.Sprintf("repo: %s\nrevision: %s\ninclude: %s\n",
		strings.TrimSpace(src.Repo), src.Revision, strings.Join(src.Include, ","))
}

// shouldRedownload compares the marker on disk with the expected content.
func (d *HuggingFaceDownloader) shouldRedownload(markerPath, expectedContent string) bool {
	content, err := os.ReadFile(markerPath)
	if err != nil {
		slog.Debug("Marker file missing or unreadable", "path", markerPath, "error", err)
		return true
	}

	if string(content) != expectedContent {
		slog.Info("Voice config changed (marker mismatch), will redownload", "marker_path", markerPath)
		return true
	}

	return false
}
