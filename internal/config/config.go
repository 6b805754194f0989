// Package config provides configuration loading and structs for talentsift.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Vector    VectorConfig    `yaml:"vector"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Watch     WatchConfig     `yaml:"watch"`
}

// EmbeddingConfig selects and tunes the embedding backend. The API key is
// never stored in the file; it is resolved from the environment at load
// time (TALENTSIFT_EMBEDDING_API_KEY, then the provider's conventional
// variable).
type EmbeddingConfig struct {
	Provider       string `yaml:"provider"` // openai, gemini, mock
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	Dimensions     int    `yaml:"dimensions"`
	MaxBatch       int    `yaml:"max_batch"`
	CacheSize      int    `yaml:"cache_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	APIKey         string `yaml:"-"`
}

// VectorConfig holds vector store settings.
type VectorConfig struct {
	Type string `yaml:"type"` // memory, sqlite, or none
	Path string `yaml:"path"` // sqlite database path
}

// LLMConfig selects and tunes the generation backend. API key resolution
// mirrors EmbeddingConfig (TALENTSIFT_LLM_API_KEY first).
type LLMConfig struct {
	Provider       string `yaml:"provider"` // openai, gemini
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	APIKey         string `yaml:"-"`
}

// RetrievalConfig holds screening pipeline settings.
type RetrievalConfig struct {
	TopK          int      `yaml:"top_k"`
	MaxChunkSize  int      `yaml:"max_chunk_size"`
	PromptVersion string   `yaml:"prompt_version"`
	ClaimFields   []string `yaml:"claim_fields"`
}

// WatchConfig holds resume drop-in directory settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true
// when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, expands paths, applies
// defaults, and resolves API keys from the environment. Returns an error if
// the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Vector.Path = expandPath(cfg.Vector.Path, configDir)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	cfg.Embedding.APIKey = resolveAPIKey("TALENTSIFT_EMBEDDING_API_KEY", cfg.Embedding.Provider)
	cfg.LLM.APIKey = resolveAPIKey("TALENTSIFT_LLM_API_KEY", cfg.LLM.Provider)

	return &cfg, nil
}

// resolveAPIKey checks the talentsift-specific variable first, then the
// provider's conventional one.
func resolveAPIKey(override, provider string) string {
	if key := os.Getenv(override); key != "" {
		return key
	}
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
