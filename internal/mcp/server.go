package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/internal/pipeline"
	"github.com/mpaoletti/lexquiz/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "lexquiz-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.lexquiz"
)

// Config configures the MCP server.
type Config struct {
	DBPath    string
	OllamaURL string
	Model     string
	Workers   int
	CacheSize int
}

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp   *server.MCPServer
	store *storage.SQLiteStore
	svc   ollama.Service
	cfg   Config
}

// NewServer creates a new MCP server instance
func NewServer(cfg Config) (*Server, error) {
	dbPath := cfg.DBPath
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".lexquiz")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStore(filepath.Join(dbPath, "lexquiz.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := ollama.New(ollama.Config{
		BaseURL:   cfg.OllamaURL,
		Model:     cfg.Model,
		CacheSize: cfg.CacheSize,
	})

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:   mcpServer,
		store: store,
		svc:   svc,
		cfg:   cfg,
	}

	if err := s.registerTools(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// newPipeline builds a pipeline with per-call chunking overrides applied on
// top of the server configuration.
func (s *Server) newPipeline(chunkSize, overlap int) *pipeline.Pipeline {
	return pipeline.New(s.svc, pipeline.Config{
		ChunkSize: chunkSize,
		Overlap:   overlap,
		Workers:   s.cfg.Workers,
		Model:     s.cfg.Model,
		Store:     s.store,
	})
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(generateQuestionsTool(), s.handleGenerateQuestions)
	s.mcp.AddTool(improveQuestionsTool(), s.handleImproveQuestions)
	s.mcp.AddTool(convertGiftTool(), s.handleConvertGift)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	return nil
}
