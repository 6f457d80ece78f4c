// Package main is the kotae CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hyperjump/kotae/internal/chunker"
	"github.com/hyperjump/kotae/internal/composer"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/eval"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/loader"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retriever"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/tui"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/hyperjump/kotae/internal/watcher"
	"github.com/hyperjump/kotae/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// Endpoint overrides (KOTAE_* variables) may live in a local .env file.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "ask":
		runAsk()
	case "chat":
		runChat()
	case "evals":
		runEvals()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.Enabled {
		paths := cfg.Watch.Paths
		if len(paths) == 0 {
			paths = []string{cfg.Corpus.Path}
		}
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.New(
			paths,
			func(path string) {
				docs, skipped, loadErr := components.Loader.Load(path)
				if loadErr != nil {
					logger.Warn("watch reload failed", zap.String("path", path), zap.Error(loadErr))
					return
				}
				n, buildErr := components.Indexer.BuildIndex(context.Background(), docs)
				if buildErr != nil {
					logger.Warn("watch re-index failed", zap.String("path", path), zap.Error(buildErr))
					return
				}
				logger.Info("corpus re-indexed",
					zap.String("path", path),
					zap.Int("chunks", n),
					zap.Int("skipped_lines", skipped))
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(
		components.Composer,
		components.EvalLogger,
		components.Store,
		components.VectorIndex,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	corpusPath := fs.String("corpus", "", "corpus file path (default: corpus.path from config)")
	contentKey := fs.String("content-key", "", "JSON field holding document text (default: corpus.content_key from config)")
	chunkSize := fs.Int("chunk-size", 0, "chunk size override")
	chunkOverlap := fs.Int("chunk-overlap", -1, "chunk overlap override")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *contentKey != "" {
		cfg.Corpus.ContentKey = *contentKey
	}
	if *chunkSize > 0 {
		cfg.Corpus.ChunkSize = *chunkSize
	}
	if *chunkOverlap >= 0 {
		cfg.Corpus.ChunkOverlap = *chunkOverlap
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	path := *corpusPath
	if path == "" {
		path = cfg.Corpus.Path
	}

	ctx := context.Background()
	loaded, skipped, err := loadCorpus(components.Loader, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Loading corpus failed: %v\n", err)
		os.Exit(1)
	}
	n, err := components.Indexer.BuildIndex(ctx, loaded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Indexing failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d chunk(s) from %d document(s) (%d malformed line(s) skipped)\n", n, len(loaded), skipped)
}

// loadCorpus loads documents from path by extension: .pdf and plain text files
// become a single document each, anything else is treated as JSONL.
func loadCorpus(ld *loader.Loader, path string) ([]models.Document, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		doc, err := loader.LoadPDF(path)
		if err != nil {
			return nil, 0, err
		}
		return []models.Document{doc}, 0, nil
	case ".txt", ".md":
		doc, err := loader.LoadFile(path)
		if err != nil {
			return nil, 0, err
		}
		return []models.Document{doc}, 0, nil
	default:
		return ld.Load(path)
	}
}

func runAsk() {
	askArgs := os.Args[2:]
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer locally without a server)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(askArgs)

	if fs.NArg() < 1 {
		fmt.Println("Usage: kotae ask [flags] <question>")
		os.Exit(1)
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Println("Usage: kotae ask [flags] <question>")
		os.Exit(1)
	}

	var answer askResponse
	if *serverURL != "" {
		res, err := askViaHTTP(*serverURL, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		answer = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			logger.Fatal("Failed to initialize", zap.Error(err))
		}
		defer components.Close()

		res, err := components.Composer.Ask(context.Background(), question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		answer.Answer = res.Text
		for _, c := range res.Sources {
			answer.Sources = append(answer.Sources, askSource{ID: c.ID, Source: c.Source, Content: c.Content})
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(answer); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Println(answer.Answer)
		if len(answer.Sources) > 0 {
			fmt.Println("\nSources:")
			for _, s := range answer.Sources {
				fmt.Printf("  [%s] %s\n", s.ID, utils.Truncate(s.Content, 120))
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

type askSource struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

type askResponse struct {
	Answer  string      `json:"answer"`
	Sources []askSource `json:"sources"`
}

func askViaHTTP(serverURL, question string) (*askResponse, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/query", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// The TUI owns the terminal; route zap away from stderr by disabling debug.
	logger, err := utils.NewLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	model := tui.New(components.Composer, components.EvalLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Evaluations logged to %s\n", components.EvalLogger.Path())
}

func runEvals() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: kotae evals <search|list> [flags] [query]")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("evals", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	logPath := fs.String("log", "", "evaluation log file (default: newest log in eval.log_dir)")
	limit := fs.Int("limit", 10, "number of results")
	_ = fs.Parse(os.Args[3:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	path := *logPath
	if path == "" {
		path, err = latestEvalLog(cfg.Eval.LogDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "No evaluation log found: %v\n", err)
			os.Exit(1)
		}
	}

	switch sub {
	case "list":
		records, err := eval.ReadLog(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read log: %v\n", err)
			os.Exit(1)
		}
		for _, rec := range records {
			printEvalRecord(rec.Timestamp.Format(time.RFC3339), rec.Rating, rec.Question, rec.Feedback)
		}
		fmt.Printf("%d record(s) in %s\n", len(records), path)
	case "search":
		if fs.NArg() < 1 {
			fmt.Println("Usage: kotae evals search [flags] <query>")
			os.Exit(1)
		}
		query := strings.TrimSpace(strings.Join(fs.Args(), " "))
		review, err := eval.OpenReview(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open review: %v\n", err)
			os.Exit(1)
		}
		defer review.Close()
		records, err := review.Search(query, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		for _, rec := range records {
			printEvalRecord(rec.Timestamp.Format(time.RFC3339), rec.Rating, rec.Question, rec.Feedback)
		}
		fmt.Printf("%d match(es) in %s\n", len(records), path)
	default:
		fmt.Printf("Unknown evals subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func printEvalRecord(timestamp string, rating int, question, feedback string) {
	fmt.Printf("%s  [%d/5]  %s\n", timestamp, rating, question)
	if feedback != "" {
		fmt.Printf("    feedback: %s\n", feedback)
	}
}

// latestEvalLog returns the newest evaluation log file in dir by file name,
// which sorts chronologically because names embed the start timestamp.
func latestEvalLog(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "evaluation_*.jsonl"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no evaluation logs in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Documents       int64                  `json:"documents"`
	Chunks          int64                  `json:"chunks"`
	VectorIndexSize int                    `json:"vector_index_size"`
	Config          map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		ctx := context.Background()
		docCount, err := components.Store.CountDocuments(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count documents failed: %v\n", err)
			os.Exit(1)
		}
		chunkCount, err := components.Store.CountChunks(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count chunks failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Documents:       docCount,
			Chunks:          chunkCount,
			VectorIndexSize: components.VectorIndex.Size(),
			Config: map[string]interface{}{
				"index_dir":            cfg.Index.Dir,
				"embedding_model":      cfg.Embedding.Model,
				"embedding_dimensions": cfg.Embedding.Dimensions,
				"llm_model":            cfg.LLM.Model,
				"top_k":                cfg.Retrieval.TopK,
				"chunk_size":           cfg.Corpus.ChunkSize,
				"chunk_overlap":        cfg.Corpus.ChunkOverlap,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("documents:          %d\n", status.Documents)
		fmt.Printf("chunks:             %d\n", status.Chunks)
		fmt.Printf("vector_index_size:  %d\n", status.VectorIndexSize)
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			keys := make([]string, 0, len(status.Config))
			for k := range status.Config {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%-20s %v\n", k+":", status.Config[k])
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store       store.Store
	Embedder    embedding.Embedder
	VectorIndex vector.Index
	Loader      *loader.Loader
	Indexer     *indexer.Indexer
	Retriever   *retriever.Retriever
	Composer    *composer.Composer
	EvalLogger  *eval.Logger
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.VectorIndex != nil {
		_ = c.VectorIndex.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	st, err := store.NewSQLiteStore(indexer.ChunkDBPath(cfg.Index.Dir))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	var embedder embedding.Embedder = embedding.NewOllamaEmbedder(
		cfg.Embedding.URL,
		cfg.Embedding.Model,
		cfg.Embedding.Dimensions,
		time.Duration(cfg.Embedding.TimeoutSec)*time.Second,
	)
	if cfg.Embedding.CacheSize > 0 {
		embedder = embedding.NewCachedEmbedder(embedder, cfg.Embedding.CacheSize)
	}

	index, err := vector.NewFlatIndex(cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}
	if loadErr := index.Load(indexer.VectorFilePath(cfg.Index.Dir)); loadErr != nil {
		return nil, fmt.Errorf("failed to load vector index: %w", loadErr)
	}
	if logger != nil {
		logger.Info("vector index loaded",
			zap.String("dir", cfg.Index.Dir),
			zap.Int("vectors", index.Size()))
	}

	ch, err := chunker.New(cfg.Corpus.ChunkSize, cfg.Corpus.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chunker: %w", err)
	}

	loaderOpts := []loader.Option{}
	idxOpts := []indexer.Option{}
	retOpts := []retriever.Option{}
	cmpOpts := []composer.Option{}
	if debug && logger != nil {
		loaderOpts = append(loaderOpts, loader.WithLogger(logger))
		idxOpts = append(idxOpts, indexer.WithLogger(logger))
		retOpts = append(retOpts, retriever.WithLogger(logger))
		cmpOpts = append(cmpOpts, composer.WithLogger(logger))
	}

	ld := loader.New(cfg.Corpus.ContentKey, loaderOpts...)
	idx := indexer.New(st, embedder, index, ch, cfg.Index.Dir, idxOpts...)
	ret := retriever.New(embedder, index, st, cfg.Retrieval.TopK, retOpts...)
	gen := llm.NewOllamaGenerator(cfg.LLM.URL, cfg.LLM.Model, time.Duration(cfg.LLM.TimeoutSec)*time.Second)
	cmp := composer.New(ret, gen, cmpOpts...)

	evalLogger, err := eval.NewLogger(cfg.Eval.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize eval logger: %w", err)
	}

	return &Components{
		Store:       st,
		Embedder:    embedder,
		VectorIndex: index,
		Loader:      ld,
		Indexer:     idx,
		Retriever:   ret,
		Composer:    cmp,
		EvalLogger:  evalLogger,
	}, nil
}

func printUsage() {
	fmt.Println(`kotae - Local retrieval-augmented question answering

Usage:
  kotae server [flags]            Start the HTTP server
  kotae ingest [flags]            Load the corpus and build the vector index
  kotae ask [flags] <question>    Ask a single question
  kotae chat [flags]              Interactive chat with answer rating
  kotae evals <search|list>       Review logged evaluations
  kotae status [flags]            Show corpus/index status
  kotae version                   Show version
  kotae help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kotae/config.yaml)
  --debug            Enable debug logging

Ingest Flags:
  --config string    Config file path
  --corpus string    Corpus file path (default: corpus.path from config).
                     JSONL by default; .pdf, .txt and .md files are ingested
                     as a single document.
  --content-key string  JSON field holding document text
  --chunk-size int      Chunk size override
  --chunk-overlap int   Chunk overlap override

Ask Flags:
  --config string    Config file path (for local mode)
  --server string    Server URL (empty = answer locally without a server)
  --output string    Output format: text or json (default: text)

Evals Flags:
  --config string    Config file path
  --log string       Evaluation log file (default: newest log in eval.log_dir)
  --limit int        Number of search results (default: 10)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use --server "" for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  kotae ingest --corpus data/corpus.jsonl
  kotae ingest --corpus docs/manual.pdf
  kotae server
  kotae ask "What is the capital of France?"
  kotae ask --output json "What is retrieval augmented generation?"
  kotae chat
  kotae evals search "hallucination"
  kotae status`)
}
