package types

import (
	"log/slog"
	"time"
)

const (
	// DefaultEndpoint is the address `ollama serve` listens on.
	DefaultEndpoint = "http://localhost:11434"

	// DefaultModel is the model used for title generation.
	DefaultModel = "llama3.1:latest"

	// DefaultMaxTextChars bounds the document text embedded in the prompt.
	DefaultMaxTextChars = 3000

	// DefaultTimeout bounds one inference call, retries and backoff included.
	DefaultTimeout = 2 * time.Minute

	// DefaultLogFile accumulates error-level log lines across runs.
	DefaultLogFile = "error.log"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single inference call, including retries and backoff.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdfrename/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// InferenceConfig holds settings for the language-model inference service.
type InferenceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the base URL of the inference service (default http://localhost:11434).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the model identifier sent with every generate request.
	Model string `json:"model" yaml:"model"`

	// APIKey is sent as a bearer token when the endpoint sits behind an
	// authenticating proxy. Empty for a plain local server.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retries on 429/503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxTextChars is the number of runes of document text placed in the prompt.
	MaxTextChars int `json:"max_text_chars" yaml:"max_text_chars"`
}

// RenameConfig holds settings for the rename engine.
type RenameConfig struct {
	// OutputDir overrides the directory renamed files are moved into.
	// Empty means the source file's directory.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// InPlace disables the processed/ subdirectory.
	InPlace bool `json:"in_place" yaml:"in_place"`

	// Backup copies each original into a sibling backup/ directory before renaming.
	Backup bool `json:"backup" yaml:"backup"`

	// DryRun previews renames without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// BatchConfig holds settings for the batch orchestrator.
type BatchConfig struct {
	// Auto confirms every rename without prompting.
	Auto bool `json:"auto" yaml:"auto"`

	// ForceLLM skips metadata titles and always asks the model.
	ForceLLM bool `json:"force_llm" yaml:"force_llm"`

	// Workers is the size of the worker pool (default runtime.NumCPU()).
	Workers int `json:"workers" yaml:"workers"`

	// Recursive descends into subdirectories when the input is a directory.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// Quiet suppresses progress output.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// LogConfig holds settings for the logging context.
type LogConfig struct {
	// File is the append-mode error log (default error.log).
	File string `json:"file" yaml:"file"`

	// Level is the console level. Silent raises it to WARN.
	Level slog.Level `json:"level" yaml:"level"`

	// Silent suppresses console info output but never the error log.
	Silent bool `json:"silent" yaml:"silent"`
}

// Config groups all component configurations.
type Config struct {
	Inference InferenceConfig `json:"inference" yaml:"inference"`
	Rename    RenameConfig    `json:"rename" yaml:"rename"`
	Batch     BatchConfig     `json:"batch" yaml:"batch"`
	Log       LogConfig       `json:"log" yaml:"log"`
}
