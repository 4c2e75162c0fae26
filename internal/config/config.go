package config

import (
	"errors"
	"time"
)

// SourceType represents the type of voice model source.
type SourceType string

const (
	// SourceTypeHuggingFace represents a Hugging Face repository source.
	SourceTypeHuggingFace SourceType = "huggingface"
)

// Config holds the main configuration for the application.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Server  ServerConfig  `json:"server,omitempty"  yaml:"server,omitempty"`
	Audio   AudioConfig   `json:"audio,omitempty"   yaml:"audio,omitempty"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	Speech  SpeechConfig  `json:"speech"            yaml:"speech"`
	Ledger  LedgerConfig  `json:"ledger,omitempty"  yaml:"ledger,omitempty"`
}

// ServerConfig holds listener configuration.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
	GRPCPort int `json:"grpc_port,omitempty" yaml:"grpc_port,omitempty"`
}

// AudioConfig holds configuration for generated audio clips.
type AudioConfig struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// StorageConfig holds configuration for downloaded voice models.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// LedgerConfig holds configuration for the clip ledger. An empty path disables it.
type LedgerConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// SpeechConfig holds configuration for the speech engines.
type SpeechConfig struct {
	Provider       string         `json:"provider"                  yaml:"provider"`
	MaxConcurrency int            `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty"`
	Timeout        time.Duration  `json:"timeout,omitempty"         yaml:"timeout,omitempty"`
	Parameters     map[string]any `json:"parameters,omitempty"      yaml:"parameters,omitempty"`
	Espeak         BinaryConfig   `json:"espeak,omitempty"          yaml:"espeak,omitempty"`
	Piper          PiperConfig    `json:"piper,omitempty"           yaml:"piper,omitempty"`
	FFmpeg         BinaryConfig   `json:"ffmpeg,omitempty"          yaml:"ffmpeg,omitempty"`
}

// BinaryConfig points at an external executable.
type BinaryConfig struct {
	BinPath string `json:"bin_path,omitempty" yaml:"bin_path,omitempty"`
}

// PiperConfig holds configuration for the piper engine.
type PiperConfig struct {
	BinPath string       `json:"bin_path,omitempty" yaml:"bin_path,omitempty"`
	Model   string       `json:"model,omitempty"    yaml:"model,omitempty"`
	Source  SourceConfig `json:"source,omitempty"   yaml:"source,omitempty"`
}

// SourceConfig wraps optional sources (only one should be set).
type SourceConfig struct {
	HuggingFace *HuggingFaceSource `json:"huggingface,omitempty" yaml:"huggingface,omitempty"`
}

// -------------------------
// Source definitions
// -------------------------

// ModelSource represents a source for a voice model.
type ModelSource interface {
	Type() SourceType
}

// HuggingFaceSource represents a Hugging Face model repository source.
type HuggingFaceSource struct {
	Repo          string   `json:"repo"                     yaml:"repo"`
	Revision      string   `json:"revision,omitempty"       yaml:"revision,omitempty"`
	RepoType      string   `json:"repo_type,omitempty"      yaml:"repo_type,omitempty"`
	Token         string   `json:"token,omitempty"          yaml:"token,omitempty"`
	Include       []string `json:"include,omitempty"        yaml:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty"        yaml:"exclude,omitempty"`
	MaxWorkers    int      `json:"max_workers,omitempty"    yaml:"max_workers,omitempty"`
	ForceDownload bool     `json:"force_download,omitempty" yaml:"force_download,omitempty"`
}

// Type returns the Hugging Face source type.
func (h HuggingFaceSource) Type() SourceType {
	return SourceTypeHuggingFace
}

// ErrNoSource is returned when a piper voice has no download source configured.
var ErrNoSource = errors.New("no source configured for voice model")

// GetSource returns the active source for the piper voice.
func (p *PiperConfig) GetSource() (ModelSource, error) {
	if p.Source.HuggingFace != nil {
		return *p.Source.HuggingFace, nil
	}

	return nil, ErrNoSource
}

// SetHuggingFaceSource sets the Hugging Face source.
func (p *PiperConfig) SetHuggingFaceSource(source HuggingFaceSource) {
	p.Source.HuggingFace = &source
}
