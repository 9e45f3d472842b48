// Package matcher pairs a question with the most applicable chunk of source
// text using lexical overlap.
//
// The relevance score of a chunk is the size of the set intersection between
// the lower-cased whitespace-tokenized words of the question and those of the
// chunk. Selection scans the chunks in order with a strict > comparison, so
// ties keep the first chunk and results are fully deterministic for a given
// input ordering. Callers own that ordering guarantee.
//
// The heuristic is intentionally fooled by common-word overlap; it only
// selects a context window for a downstream generation call, never a final
// answer.
package matcher
