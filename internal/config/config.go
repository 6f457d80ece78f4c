// Package config provides configuration loading and structs for the kotae service.
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
	Server    ServerConfig    `yaml:"server"`
	Index     IndexConfig     `yaml:"index"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Eval      EvalConfig      `yaml:"eval"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// ConversationsPath is the file the conversation history endpoints persist to.
	ConversationsPath string `yaml:"conversations_path"`
}

// IndexConfig holds the vector index location. Dir contains both the chunk
// database (chunks.db) and the vector segment file (vectors.idx).
type IndexConfig struct {
	Dir string `yaml:"dir"`
}

// CorpusConfig holds corpus ingestion settings.
type CorpusConfig struct {
	Path         string `yaml:"path"`
	ContentKey   string `yaml:"content_key"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// EmbeddingConfig holds embedding model settings. The same model must serve
// indexing and retrieval; Dimensions is checked against the persisted index.
type EmbeddingConfig struct {
	URL        string `yaml:"url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// LLMConfig holds generative model settings.
type LLMConfig struct {
	URL        string `yaml:"url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// RetrievalConfig holds similarity search settings.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// EvalConfig holds evaluation log settings.
type EvalConfig struct {
	LogDir string `yaml:"log_dir"`
}

// WatchConfig holds corpus watch settings for automatic re-ingestion.
type WatchConfig struct {
	Enabled bool     `yaml:"enabled"`
	Paths   []string `yaml:"paths"`
}

// Load reads and parses the config file at path, applies env overrides and
// defaults, and expands relative paths. Returns an error if the file cannot
// be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Index.Dir = expandPath(cfg.Index.Dir, configDir)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	cfg.Eval.LogDir = expandPath(cfg.Eval.LogDir, configDir)
	cfg.Server.ConversationsPath = expandPath(cfg.Server.ConversationsPath, configDir)
	for i := range cfg.Watch.Paths {
		cfg.Watch.Paths[i] = expandPath(cfg.Watch.Paths[i], configDir)
	}

	return &cfg, nil
}

// applyEnvOverrides lets endpoint settings come from the environment
// (typically a .env file loaded at startup) without editing the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KOTAE_EMBEDDING_URL"); v != "" {
		cfg.Embedding.URL = v
	}
	if v := os.Getenv("KOTAE_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("KOTAE_LLM_URL"); v != "" {
		cfg.LLM.URL = v
	}
	if v := os.Getenv("KOTAE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
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
