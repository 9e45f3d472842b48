// Package gift renders question records in the annotated GIFT-like output
// format, pairing every option with a feedback string, and parses the
// per-option feedback sections out of generation-service responses.
//
// One record per block:
//
//	::Q:: <question text>
//	{ =<correct option> # <feedback> ~<wrong option> # <feedback> ~... }
//
// Exactly one option token is prefixed = and the token order follows the
// original A-D option order. When feedback for an option is missing or empty
// the fixed placeholder types.FallbackFeedback is emitted instead, so a
// record can always be serialized even after a failed generation call.
package gift
