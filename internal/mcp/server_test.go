package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mpaoletti/lexquiz/internal/ollama"
)

type fakeService struct {
	response string
	err      error
}

func (f *fakeService) Chat(context.Context, string, ollama.Options) (string, error) {
	return f.response, f.err
}

func (f *fakeService) Generate(context.Context, string, ollama.Options) (string, error) {
	return f.response, f.err
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(Config{DBPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.store.Close() })
	return server
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codice.txt")
	sentence := "La capacità giuridica si acquista dal momento della nascita. "
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(sentence, 20)), 0o644))
	return path
}

func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.txt")
	bank := "Quando si acquista la capacità giuridica?\n" +
		"A. Dal concepimento\nB. Dalla nascita\nC. A 18 anni\nD. Mai\nANSWER: B\n\n"
	require.NoError(t, os.WriteFile(path, []byte(bank), 0o644))
	return path
}

func TestServer_Initialization(t *testing.T) {
	t.Run("custom path creates database", func(t *testing.T) {
		dir := t.TempDir()
		server, err := NewServer(Config{DBPath: dir})
		require.NoError(t, err)
		defer func() { _ = server.store.Close() }()

		assert.NotNil(t, server.mcp, "MCP server should be initialized")
		assert.NotNil(t, server.store, "Storage should be initialized")
		assert.NotNil(t, server.svc, "Generation service should be initialized")

		_, err = os.Stat(filepath.Join(dir, "lexquiz.db"))
		assert.NoError(t, err)
	})
}

func TestGenerateQuestions_RequiresSourcePath(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleGenerateQuestions(context.Background(), callRequest(map[string]interface{}{}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestGenerateQuestions_RejectsMissingFile(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleGenerateQuestions(context.Background(), callRequest(map[string]interface{}{
		"source_path": "/nonexistent/codice.txt",
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeFileNotFound, mcpErr.Code)
}

func TestGenerateQuestions_WritesBankAndReportsStats(t *testing.T) {
	server := newTestServer(t)
	server.svc = &fakeService{response: "Quando si acquista la capacità giuridica?\n" +
		"A. Dal concepimento\nB. Dalla nascita\nC. A 18 anni\nD. Mai\nANSWER: B"}

	sourcePath := writeSource(t)
	outputPath := filepath.Join(t.TempDir(), "bank.txt")

	result, err := server.handleGenerateQuestions(context.Background(), callRequest(map[string]interface{}{
		"source_path": sourcePath,
		"output_path": outputPath,
		"chunk_size":  float64(600),
		"overlap":     float64(0),
	}))
	require.NoError(t, err)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, outputPath, response["output_path"])
	assert.Greater(t, response["questions"], float64(0))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ANSWER: B")
}

func TestImproveQuestions_ApprovedBankRoundTrips(t *testing.T) {
	server := newTestServer(t)
	server.svc = &fakeService{response: "OK"}

	bankPath := writeBank(t)
	sourcePath := writeSource(t)
	outputPath := filepath.Join(t.TempDir(), "improved.txt")

	result, err := server.handleImproveQuestions(context.Background(), callRequest(map[string]interface{}{
		"bank_path":   bankPath,
		"source_path": sourcePath,
		"output_path": outputPath,
	}))
	require.NoError(t, err)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, float64(1), response["questions"])

	original, err := os.ReadFile(bankPath)
	require.NoError(t, err)
	improved, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(improved))
}

func TestConvertGift_EmptyBankRejected(t *testing.T) {
	server := newTestServer(t)

	bankPath := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(bankPath, []byte("\n"), 0o644))

	_, err := server.handleConvertGift(context.Background(), callRequest(map[string]interface{}{
		"bank_path":   bankPath,
		"source_path": writeSource(t),
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeEmptyBank, mcpErr.Code)
}

func TestConvertGift_WritesAnnotatedOutput(t *testing.T) {
	server := newTestServer(t)
	server.svc = &fakeService{response: "FEEDBACK_A: Errato. L'articolo 1 stabilisce: \"citazione\"\n" +
		"FEEDBACK_B: Corretto. L'articolo 1 stabilisce: \"citazione\"\n" +
		"FEEDBACK_C: Errato. L'articolo 2 stabilisce: \"citazione\"\n" +
		"FEEDBACK_D: Errato. L'articolo 3 stabilisce: \"citazione\""}

	bankPath := writeBank(t)
	outputPath := filepath.Join(t.TempDir(), "bank.gift")

	result, err := server.handleConvertGift(context.Background(), callRequest(map[string]interface{}{
		"bank_path":   bankPath,
		"source_path": writeSource(t),
		"output_path": outputPath,
	}))
	require.NoError(t, err)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, float64(1), response["questions"])

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "::Q:: ")
	assert.Contains(t, string(data), "=Dalla nascita")
}

func TestGetStatus_ReportsRuns(t *testing.T) {
	server := newTestServer(t)
	server.svc = &fakeService{response: "OK"}

	// Seed one improvement run through the pipeline.
	_, err := server.handleImproveQuestions(context.Background(), callRequest(map[string]interface{}{
		"bank_path":   writeBank(t),
		"source_path": writeSource(t),
		"output_path": filepath.Join(t.TempDir(), "improved.txt"),
	}))
	require.NoError(t, err)

	result, err := server.handleGetStatus(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	statistics := response["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), statistics["runs_count"])
	assert.NotEmpty(t, response["recent_runs"])
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}
