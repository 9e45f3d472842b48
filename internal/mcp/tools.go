package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mpaoletti/lexquiz/internal/chunker"
	"github.com/mpaoletti/lexquiz/internal/pipeline"
	"github.com/mpaoletti/lexquiz/internal/textsource"
	"github.com/mpaoletti/lexquiz/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeFileNotFound  = -32001 // Referenced file does not exist
	ErrorCodeEmptyBank     = -32002 // Question bank contains no complete records
)

// handleGenerateQuestions handles the generate_questions tool invocation
func (s *Server) handleGenerateQuestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	sourcePath, err := requireFileParam(args, "source_path")
	if err != nil {
		return nil, err
	}

	outputPath := getStringDefault(args, "output_path", defaultBankPath(sourcePath))
	chunkSize := getIntDefault(args, "chunk_size", chunker.DefaultChunkSize)
	overlap := getIntDefault(args, "overlap", chunker.DefaultOverlap)

	p := s.newPipeline(chunkSize, overlap)
	records, stats, err := p.Generate(ctx, textsource.NewFile(sourcePath), sourcePath)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "generation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := pipeline.SaveBank(outputPath, records); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to write bank", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"output_path":      outputPath,
		"questions":        len(records),
		"chunks_total":     stats.ChunksTotal,
		"chunks_processed": stats.ChunksProcessed,
		"chunks_skipped":   stats.ChunksSkipped,
		"chunks_failed":    stats.ChunksFailed,
		"attempts":         stats.Attempts,
		"success_rate":     fmt.Sprintf("%.1f%%", stats.SuccessRate()),
		"duration_ms":      stats.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleImproveQuestions handles the improve_questions tool invocation
func (s *Server) handleImproveQuestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	bankPath, err := requireFileParam(args, "bank_path")
	if err != nil {
		return nil, err
	}
	sourcePath, err := requireFileParam(args, "source_path")
	if err != nil {
		return nil, err
	}
	outputPath := getStringDefault(args, "output_path", suffixPath(bankPath, "_improved"))

	records, sourceText, err := s.loadBankAndSource(ctx, bankPath, sourcePath)
	if err != nil {
		return nil, err
	}

	p := s.newPipeline(0, -1)
	improved, stats, err := p.Improve(ctx, records, sourceText, bankPath)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "improvement failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := pipeline.SaveBank(outputPath, improved); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to write bank", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"output_path": outputPath,
		"questions":   len(improved),
		"duration_ms": stats.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleConvertGift handles the convert_gift tool invocation
func (s *Server) handleConvertGift(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	bankPath, err := requireFileParam(args, "bank_path")
	if err != nil {
		return nil, err
	}
	sourcePath, err := requireFileParam(args, "source_path")
	if err != nil {
		return nil, err
	}
	outputPath := getStringDefault(args, "output_path", replaceExt(bankPath, ".gift"))

	records, sourceText, err := s.loadBankAndSource(ctx, bankPath, sourcePath)
	if err != nil {
		return nil, err
	}

	p := s.newPipeline(0, -1)
	paths, stats, err := p.ConvertGIFT(ctx, records, sourceText, outputPath)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"output_paths": paths,
		"questions":    stats.Questions,
		"duration_ms":  stats.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.store.GetStatus(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	runs, err := s.store.ListRuns(ctx, 5)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list runs", map[string]interface{}{
			"error": err.Error(),
		})
	}

	recent := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		recent = append(recent, map[string]interface{}{
			"id":          run.ID,
			"kind":        string(run.Kind),
			"source_path": run.SourcePath,
			"questions":   run.QuestionsGenerated,
			"attempts":    run.Attempts,
			"duration_ms": run.Duration.Milliseconds(),
			"created_at":  run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	response := map[string]interface{}{
		"statistics": map[string]interface{}{
			"runs_count":       status.RunsCount,
			"questions_count":  status.QuestionsCount,
			"database_size_mb": fmt.Sprintf("%.2f", status.DatabaseSizeMB),
			"build_mode":       status.BuildMode,
		},
		"recent_runs": recent,
	}
	if !status.LastRunAt.IsZero() {
		response["last_run_at"] = status.LastRunAt.Format("2006-01-02T15:04:05Z07:00")
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// loadBankAndSource loads a strict-mode bank and the source text it will be
// matched against.
func (s *Server) loadBankAndSource(ctx context.Context, bankPath, sourcePath string) ([]types.QuestionRecord, string, error) {
	records, err := pipeline.LoadBank(bankPath)
	if err != nil {
		return nil, "", newMCPError(ErrorCodeInternalError, "failed to load bank", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if len(records) == 0 {
		return nil, "", newMCPError(ErrorCodeEmptyBank, "bank contains no complete records", map[string]interface{}{
			"bank_path": bankPath,
		})
	}

	sourceText, err := textsource.NewFile(sourcePath).Text(ctx)
	if err != nil {
		return nil, "", newMCPError(ErrorCodeInternalError, "failed to read source", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return records, sourceText, nil
}

// requireFileParam extracts a required string parameter and checks that it
// names an existing regular file.
func requireFileParam(args map[string]interface{}, key string) (string, error) {
	path, ok := args[key].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
			"param":  key,
			"reason": "missing or empty",
		})
	}
	if err := validateFile(path); err != nil {
		return "", newMCPError(ErrorCodeFileNotFound, "invalid "+key, map[string]interface{}{
			"param":  key,
			"reason": err.Error(),
		})
	}
	return path, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validateFile checks that a path names an existing regular file
func validateFile(path string) error {
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if info.IsDir() {
		return ErrPathIsDirectory
	}
	return nil
}

// defaultBankPath derives the default bank path from a source path.
func defaultBankPath(sourcePath string) string {
	return suffixPath(sourcePath, "_questions")
}

// suffixPath inserts a suffix before the extension, forcing .txt output.
func suffixPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ".txt"
}

// replaceExt swaps the extension of a path.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrPathIsDirectory = errors.New("path is a directory")
)
