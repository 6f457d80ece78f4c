package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ConversationsPath == "" {
		cfg.Server.ConversationsPath = "./data/conversations.json"
	}
	if cfg.Index.Dir == "" {
		cfg.Index.Dir = "./data/vectordb"
	}
	if cfg.Corpus.ContentKey == "" {
		cfg.Corpus.ContentKey = "text"
	}
	if cfg.Corpus.ChunkSize == 0 {
		cfg.Corpus.ChunkSize = 512
	}
	if cfg.Corpus.ChunkOverlap == 0 {
		cfg.Corpus.ChunkOverlap = 102
	}
	if cfg.Embedding.URL == "" {
		cfg.Embedding.URL = "http://localhost:11434/api/embeddings"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "nomic-embed-text"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 768
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.TimeoutSec == 0 {
		cfg.Embedding.TimeoutSec = 30
	}
	if cfg.LLM.URL == "" {
		cfg.LLM.URL = "http://localhost:11434/api/generate"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "tinyllama"
	}
	if cfg.LLM.TimeoutSec == 0 {
		cfg.LLM.TimeoutSec = 120
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Eval.LogDir == "" {
		cfg.Eval.LogDir = "./logs"
	}
}
