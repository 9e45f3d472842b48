// Package textsource is the boundary to the external text extraction step.
//
// The pipeline does not parse source documents itself: an external extractor
// (PDF or otherwise) produces plain text, and this package only loads it.
// Implementations own the document format; consumers see a single string.
package textsource

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Source supplies the raw extracted text a chunking pass consumes.
type Source interface {
	Text(ctx context.Context) (string, error)
}

// FileSource reads a UTF-8 plain-text file produced by an external
// extraction step. Form feeds used as page separators are normalized to
// newlines so page breaks behave like paragraph breaks during chunking.
type FileSource struct {
	Path string
}

// NewFile creates a FileSource for the given path.
func NewFile(path string) *FileSource {
	return &FileSource{Path: path}
}

// Text loads and normalizes the file contents.
func (s *FileSource) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read text source: %w", err)
	}

	return strings.ReplaceAll(string(raw), "\f", "\n"), nil
}

// StringSource wraps in-memory text, used by the MCP tools and tests.
type StringSource string

// Text returns the wrapped text.
func (s StringSource) Text(context.Context) (string, error) {
	return string(s), nil
}
