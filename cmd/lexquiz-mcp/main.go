package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mpaoletti/lexquiz/internal/mcp"
	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("LexQuiz MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	_ = godotenv.Load()

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("LexQuiz MCP Server v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", storage.BuildMode, storage.DriverName)

	workers := 0
	if raw := os.Getenv("LEXQUIZ_WORKERS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			workers = n
		}
	}

	server, err := mcp.NewServer(mcp.Config{
		DBPath:    os.Getenv("LEXQUIZ_DB_PATH"),
		OllamaURL: os.Getenv("LEXQUIZ_OLLAMA_URL"),
		Model:     firstNonEmpty(os.Getenv("LEXQUIZ_MODEL"), ollama.DefaultModel),
		Workers:   workers,
		CacheSize: 256,
	})
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
