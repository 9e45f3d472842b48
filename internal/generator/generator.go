package generator

import (
	"context"
	"log"
	"strings"

	"github.com/mpaoletti/lexquiz/internal/aiken"
	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/pkg/types"
)

// Stats accumulates generation outcomes across chunks. It is owned and
// passed in by the orchestrator so the generator itself stays stateless and
// independently testable.
type Stats struct {
	Attempts int // question blocks the model produced
	Valid    int // blocks that parsed into complete records
}

// SuccessRate returns the valid/attempts ratio as a percentage.
func (s *Stats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Valid) / float64(s.Attempts) * 100
}

// Generator turns source-text chunks into question records via the
// generation service.
type Generator struct {
	svc ollama.Service
}

// New creates a Generator backed by the given service.
func New(svc ollama.Service) *Generator {
	return &Generator{svc: svc}
}

// generationOptions match the sampling profile used for first-pass output.
var generationOptions = ollama.Options{
	Temperature: 0.7,
	TopP:        0.9,
	TopK:        40,
	NumPredict:  500,
}

// Generate asks the model for questions about text and returns the records
// that parsed cleanly. Malformed blocks are dropped and only counted in
// stats; a transport error is returned to the caller, who decides whether
// the run continues with the next chunk.
func (g *Generator) Generate(ctx context.Context, text string, stats *Stats) ([]types.QuestionRecord, error) {
	response, err := g.svc.Chat(ctx, BuildPrompt(text), generationOptions)
	if err != nil {
		return nil, err
	}

	blocks := splitResponse(response)
	if stats != nil {
		stats.Attempts += len(blocks)
	}

	records := make([]types.QuestionRecord, 0, len(blocks))
	for _, block := range blocks {
		rec, ok := aiken.DecodeBlock(block)
		if !ok {
			log.Printf("dropping malformed question block (%d lines)", len(strings.Split(block, "\n")))
			continue
		}
		records = append(records, rec)
	}

	if stats != nil {
		stats.Valid += len(records)
	}
	return records, nil
}

// splitResponse cuts a model response into candidate question blocks. A
// block runs up to and including its ANSWER line; trailing lines without an
// ANSWER are discarded.
func splitResponse(response string) []string {
	var blocks []string
	var current []string

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		current = append(current, line)
		if strings.HasPrefix(line, "ANSWER:") {
			if len(current) > 1 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = nil
		}
	}
	return blocks
}

