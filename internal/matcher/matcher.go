package matcher

import "strings"

// Score counts the shared lower-cased whitespace tokens between a question
// and a candidate chunk. It is a cheap bag-of-words heuristic, not a ranking
// model: deterministic, dependency-free, and good enough to pick a context
// window for a downstream generation call.
func Score(question, chunk string) int {
	return overlapWith(tokenSet(question), chunk)
}

// BestMatch returns the index of the chunk with the greatest overlap score
// against the question text. Ties keep the first chunk encountered: the scan
// uses a strict > comparison, so the caller's slice order is the tie-break
// order. ok is false when no chunk has a positive score; callers then proceed
// with empty context rather than failing.
func BestMatch(question string, chunks []string) (index int, ok bool) {
	questionWords := tokenSet(question)

	best := -1
	bestScore := 0
	for i, chunk := range chunks {
		score := overlapWith(questionWords, chunk)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// BestChunk is BestMatch returning the chunk text itself, with the empty
// string standing in for absence of context.
func BestChunk(question string, chunks []string) string {
	i, ok := BestMatch(question, chunks)
	if !ok {
		return ""
	}
	return chunks[i]
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

func overlapWith(questionWords map[string]struct{}, chunk string) int {
	overlap := 0
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(chunk)) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := questionWords[w]; ok {
			overlap++
		}
	}
	return overlap
}
