package chunker

import (
	"errors"
	"strings"
	"unicode"
)

const (
	// DefaultChunkSize is the target chunk size for the generation pass.
	DefaultChunkSize = 4000

	// DefaultContextSize is the coarser chunk size used when building
	// relevance-matching context windows.
	DefaultContextSize = 8000

	// DefaultOverlap is the default overlap between consecutive chunks.
	DefaultOverlap = 500
)

// ErrInvalidChunkSize is returned when Options.ChunkSize is not positive.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// sectionMarkers are structural boundary tokens, highest priority when
// choosing a split point. A match positions the boundary on the newline so
// the heading opens the next chunk.
var sectionMarkers = []string{"\nArt.", "\nArticolo "}

// Options configures a chunking pass.
type Options struct {
	// ChunkSize is the target maximum size of each chunk in bytes. Must be
	// positive.
	ChunkSize int

	// Overlap is how many bytes of the previous chunk's tail are re-included
	// at the start of the next chunk. Values outside [0, ChunkSize-1] are
	// clamped into that range.
	Overlap int
}

// Split divides text into an ordered sequence of bounded chunks, preferring
// natural boundaries over hard cuts.
//
// Boundary policy: within each candidate window the split point is the
// maximum position among the two highest-priority marker kinds found (section
// heading, sentence terminator followed by whitespace), falling back to the
// rightmost bare newline, falling back to a hard cut at ChunkSize. Every
// chunk except the last is therefore at most ChunkSize bytes before trimming;
// boundary seeking only ever shortens a chunk.
//
// Chunks are whitespace-trimmed and may be empty; callers filter chunks below
// their own minimum length. Empty input yields no chunks.
func Split(text string, opts Options) ([]string, error) {
	if opts.ChunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	overlap := opts.Overlap
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= opts.ChunkSize {
		overlap = opts.ChunkSize - 1
	}

	var chunks []string
	pos := 0

	for pos < len(text) {
		remaining := len(text) - pos
		if remaining <= opts.ChunkSize {
			chunks = append(chunks, strings.TrimSpace(text[pos:]))
			break
		}

		end := pos + opts.ChunkSize
		boundary := findBoundary(text, pos, end)
		if boundary < 0 {
			// No natural boundary in the window: hard cut.
			boundary = end - 1
		}

		chunks = append(chunks, strings.TrimSpace(text[pos:boundary+1]))

		next := boundary + 1 - overlap
		if next <= pos {
			// Overlap must never walk the cursor backward.
			next = pos + 1
		}
		pos = next
	}

	return chunks, nil
}

// findBoundary locates the best split position in text[start:end). The
// returned index is the last byte of the chunk, or -1 when the window holds
// no marker at all.
func findBoundary(text string, start, end int) int {
	window := text[start:end]

	section := -1
	for _, marker := range sectionMarkers {
		if i := strings.LastIndex(window, marker); i > section {
			section = i
		}
	}

	sentence := lastSentenceEnd(window)

	// The two highest-priority kinds compete on position; the rightmost wins.
	if best := max(section, sentence); best >= 0 {
		return start + best
	}

	if nl := strings.LastIndexByte(window, '\n'); nl >= 0 {
		return start + nl
	}

	return -1
}

// lastSentenceEnd returns the index of the rightmost sentence terminator in
// window that is immediately followed by whitespace, or -1.
func lastSentenceEnd(window string) int {
	for i := len(window) - 2; i >= 0; i-- {
		switch window[i] {
		case '.', '?', '!':
			if unicode.IsSpace(rune(window[i+1])) {
				return i
			}
		}
	}
	return -1
}
