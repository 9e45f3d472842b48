package types

import "fmt"

// Letter identifies one of the four answer options.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// OptionCount is the exact number of options a complete record carries.
const OptionCount = 4

// Letters lists the valid answer letters in positional order.
var Letters = [OptionCount]Letter{LetterA, LetterB, LetterC, LetterD}

// ParseLetter converts a string into a Letter, reporting whether it is one of
// A through D.
func ParseLetter(s string) (Letter, bool) {
	switch Letter(s) {
	case LetterA, LetterB, LetterC, LetterD:
		return Letter(s), true
	}
	return "", false
}

// Index returns the positional index (0-3) of the letter, or -1 if invalid.
func (l Letter) Index() int {
	for i, candidate := range Letters {
		if l == candidate {
			return i
		}
	}
	return -1
}

// Valid reports whether the letter is one of A through D.
func (l Letter) Valid() bool {
	return l.Index() >= 0
}

// QuestionRecord is a multiple-choice question. Options are positional: index
// 0 maps to letter A, index 3 to letter D. Correct is empty for draft records
// that have not received an answer line yet.
type QuestionRecord struct {
	Question string
	Options  []string
	Correct  Letter
}

// Complete reports whether the record satisfies the completeness invariant:
// exactly four options and a valid correct letter.
func (r *QuestionRecord) Complete() bool {
	return r.Question != "" && len(r.Options) == OptionCount && r.Correct.Valid()
}

// Validate checks the record against the completeness invariant and returns a
// MalformedRecord error describing the first violation found.
func (r *QuestionRecord) Validate() error {
	if r.Question == "" {
		return fmt.Errorf("%w: empty question text", ErrMalformedRecord)
	}
	if len(r.Options) != OptionCount {
		return fmt.Errorf("%w: got %d options, want %d", ErrMalformedRecord, len(r.Options), OptionCount)
	}
	if !r.Correct.Valid() {
		return fmt.Errorf("%w: answer %q is not one of A-D", ErrMalformedRecord, r.Correct)
	}
	return nil
}

// CorrectOption returns the option text the correct letter points at. It
// requires a complete record.
func (r *QuestionRecord) CorrectOption() string {
	return r.Options[r.Correct.Index()]
}

// Clone returns a deep copy of the record. The pipeline treats records as
// immutable once handed downstream; Clone is for stages that need to derive a
// replacement (e.g. translation).
func (r *QuestionRecord) Clone() QuestionRecord {
	opts := make([]string, len(r.Options))
	copy(opts, r.Options)
	return QuestionRecord{
		Question: r.Question,
		Options:  opts,
		Correct:  r.Correct,
	}
}
