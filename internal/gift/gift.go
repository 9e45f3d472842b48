package gift

import (
	"fmt"
	"strings"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

// Marshal renders a record in the annotated feedback-bearing format:
//
//	::Q:: <question>
//	{ =<correct option> # <feedback> ~<wrong option> # <feedback> ... }
//
// Tokens follow the original option order, not correctness order; exactly one
// token carries the = prefix. Wrong-option feedback is consumed left to
// right, with the fixed placeholder substituted for missing entries.
func Marshal(rec types.QuestionRecord, fb *types.FeedbackSet) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "::Q:: %s\n{", rec.Question)

	wrongIdx := 0
	for i, opt := range rec.Options {
		if types.Letters[i] == rec.Correct {
			fmt.Fprintf(&b, " =%s # %s", opt, fb.CorrectFeedback())
		} else {
			fmt.Fprintf(&b, " ~%s # %s", opt, fb.WrongFeedback(wrongIdx))
			wrongIdx++
		}
	}

	b.WriteString(" }\n\n")
	return b.String(), nil
}
