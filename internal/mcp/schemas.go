package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// generateQuestionsTool returns the tool definition for generate_questions
func generateQuestionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_questions",
		Description: "Generate multiple-choice questions from a legal source text and save them as an Aiken question bank",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the plain-text source document",
				},
				"output_path": map[string]interface{}{
					"type":        "string",
					"description": "Path for the generated Aiken bank (default: <source>_questions.txt)",
				},
				"chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk size in characters for the generation pass",
					"default":     4000,
					"minimum":     100,
				},
				"overlap": map[string]interface{}{
					"type":        "integer",
					"description": "Overlap in characters carried between consecutive chunks",
					"default":     500,
					"minimum":     0,
				},
			},
			Required: []string{"source_path"},
		},
	}
}

// improveQuestionsTool returns the tool definition for improve_questions
func improveQuestionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "improve_questions",
		Description: "Validate an Aiken question bank against its source text, replacing flawed questions with improved versions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"bank_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the Aiken question bank",
				},
				"source_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the plain-text source document the bank was generated from",
				},
				"output_path": map[string]interface{}{
					"type":        "string",
					"description": "Path for the improved bank (default: <bank>_improved.txt)",
				},
			},
			Required: []string{"bank_path", "source_path"},
		},
	}
}

// convertGiftTool returns the tool definition for convert_gift
func convertGiftTool() mcp.Tool {
	return mcp.Tool{
		Name:        "convert_gift",
		Description: "Convert an Aiken question bank to GIFT format with per-option feedback cited from the source text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"bank_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the Aiken question bank",
				},
				"source_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the plain-text source document used for feedback citations",
				},
				"output_path": map[string]interface{}{
					"type":        "string",
					"description": "Path for the GIFT output (default: <bank>.gift); large banks split into numbered files",
				},
			},
			Required: []string{"bank_path", "source_path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query stored pipeline runs and aggregate question statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
