package aiken

import (
	"fmt"
	"io"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

// EncodeRecord writes a single record in plain Aiken format: the question
// line, four lettered option lines, an ANSWER line and a trailing blank line.
// Incomplete records are a validation failure reported to the caller.
func EncodeRecord(w io.Writer, rec types.QuestionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n", rec.Question); err != nil {
		return err
	}
	for i, opt := range rec.Options {
		if _, err := fmt.Fprintf(w, "%s. %s\n", types.Letters[i], opt); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "ANSWER: %s\n\n", rec.Correct); err != nil {
		return err
	}
	return nil
}

// Encode writes records in plain Aiken format, blocks separated by exactly
// one blank line. It stops at the first invalid record; callers that prefer
// skip-and-continue filter with Validate beforehand.
func Encode(w io.Writer, records []types.QuestionRecord) error {
	for i, rec := range records {
		if err := EncodeRecord(w, rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
