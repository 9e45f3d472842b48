// Package mcp implements the Model Context Protocol (MCP) server for LexQuiz.
//
// The MCP server exposes four tools to AI assistants:
//   - generate_questions: Generate an Aiken question bank from a legal source text
//   - improve_questions: Second passage over an existing bank against its source
//   - convert_gift: Convert an Aiken bank to GIFT with cited per-option feedback
//   - get_status: Query stored pipeline runs and aggregate statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Basic Usage
//
// The MCP server is started via its own binary:
//
//	lexquiz-mcp
//
// It then listens on stdin for MCP protocol messages and writes responses to stdout.
//
// # Tool: generate_questions
//
// Generate questions from a plain-text source document:
//
//	Request:
//	{
//	  "name": "generate_questions",
//	  "arguments": {
//	    "source_path": "/data/codice_civile.txt",
//	    "output_path": "/data/banca_domande.txt",
//	    "chunk_size": 4000,
//	    "overlap": 500
//	  }
//	}
//
//	Response:
//	{
//	  "output_path": "/data/banca_domande.txt",
//	  "questions": 184,
//	  "chunks_processed": 92,
//	  "attempts": 203,
//	  "success_rate": "90.6%",
//	  "duration_ms": 845000
//	}
//
// # Tool: improve_questions
//
// Validate and improve an existing bank against its source text:
//
//	Request:
//	{
//	  "name": "improve_questions",
//	  "arguments": {
//	    "bank_path": "/data/banca_domande.txt",
//	    "source_path": "/data/codice_civile.txt"
//	  }
//	}
//
// Questions the model approves pass through unchanged; flawed ones are
// replaced wholesale by an improved version. The output bank always has the
// same length and order as the input.
//
// # Tool: convert_gift
//
// Convert a bank to GIFT format with per-option feedback:
//
//	Request:
//	{
//	  "name": "convert_gift",
//	  "arguments": {
//	    "bank_path": "/data/banca_domande.txt",
//	    "source_path": "/data/codice_civile.txt",
//	    "output_path": "/data/banca_domande.gift"
//	  }
//	}
//
// Large banks are split into numbered output files.
//
// # Tool: get_status
//
// Query stored runs:
//
//	Request:
//	{
//	  "name": "get_status",
//	  "arguments": {}
//	}
//
//	Response:
//	{
//	  "statistics": {
//	    "runs_count": 3,
//	    "questions_count": 412,
//	    "database_size_mb": "0.51",
//	    "build_mode": "purego"
//	  },
//	  "recent_runs": [...]
//	}
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32001,
//	    "message": "invalid source_path",
//	    "data": {
//	      "param": "source_path",
//	      "reason": "path does not exist"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (model, database, filesystem)
//   - -32001: Referenced file does not exist
//   - -32002: Question bank contains no complete records
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol):
//
//	log.SetOutput(os.Stderr)
//	log.Printf("MCP server started")
package mcp
