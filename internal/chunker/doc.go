// Package chunker splits extracted document text into bounded, ordered chunks
// for downstream question generation and relevance matching.
//
// The chunker walks the text left to right. For each candidate window of
// ChunkSize bytes it searches backward for the best natural boundary before
// falling back to a hard cut:
//
//  1. a section heading on its own line ("Art." / "Articolo"), or a sentence
//     terminator (. ? !) followed by whitespace - whichever lies rightmost,
//  2. a bare newline,
//  3. a hard cut at exactly ChunkSize.
//
// # Basic Usage
//
//	chunks, err := chunker.Split(text, chunker.Options{
//	    ChunkSize: chunker.DefaultChunkSize,
//	    Overlap:   chunker.DefaultOverlap,
//	})
//
// Two independent passes with different sizes are typical: a fine pass
// (DefaultChunkSize) feeding generation prompts and a coarse pass
// (DefaultContextSize) feeding the relevance matcher. The passes are not
// reconciled with each other.
//
// Chunks are immutable once produced and safe to share across goroutines.
// Split never fails for positive ChunkSize; the only error is the
// precondition violation ErrInvalidChunkSize.
package chunker
