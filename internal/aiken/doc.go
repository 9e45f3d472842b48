// Package aiken parses and serializes question records in the plain-text
// Aiken-like format used by the question banks:
//
//	<question text, single line>
//	A. <option A text>
//	B. <option B text>
//	C. <option C text>
//	D. <option D text>
//	ANSWER: <A|B|C|D>
//
// Blocks are separated by exactly one blank line.
//
// # Parse modes
//
// Two completeness policies coexist among the codec's consumers and are
// exposed as explicit modes rather than silently merged:
//
//   - ModeStrict: a record flushes only with four in-order options and a
//     valid ANSWER letter. The reviewer and the feedback converter load banks
//     this way.
//   - ModeDraft: the ANSWER line may be absent at flush time. The generator
//     uses this on raw model output that is validated downstream.
//
// Both modes enforce the strict option-order contract: prefixes must be
// exactly A., B., C., D. in that order with no duplicates. Extraction is
// regex-based with explicit validation; malformed records are dropped and
// counted, never repaired, and a parse never aborts the surrounding file.
package aiken
