package types

// FallbackFeedback is emitted whenever no usable feedback exists for an
// option. The wording matches the question bank's Codice Civile sources.
const FallbackFeedback = "Consultare il Codice Civile per il testo completo"

// FeedbackSet carries the per-option explanations produced by the feedback
// generation pass. Correct holds the feedback for the correct option (the
// first entry is used); Wrong holds feedback for the incorrect options,
// consumed in original left-to-right option order. Missing or empty entries
// fall back to FallbackFeedback at serialization time.
type FeedbackSet struct {
	Correct []string
	Wrong   []string
}

// CorrectFeedback returns the feedback for the correct option, falling back
// to the fixed placeholder when none was produced.
func (f *FeedbackSet) CorrectFeedback() string {
	if f == nil || len(f.Correct) == 0 || f.Correct[0] == "" {
		return FallbackFeedback
	}
	return f.Correct[0]
}

// WrongFeedback returns the feedback for the i-th wrong option (0-based,
// counting wrong options left to right), falling back to the placeholder when
// the entry is missing or empty.
func (f *FeedbackSet) WrongFeedback(i int) string {
	if f == nil || i < 0 || i >= len(f.Wrong) || f.Wrong[i] == "" {
		return FallbackFeedback
	}
	return f.Wrong[i]
}
