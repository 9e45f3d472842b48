// Package types defines the domain types shared across the lexquiz pipeline.
//
// The central type is QuestionRecord, a multiple-choice question with exactly
// four positional options (A through D) and a single correct letter. Records
// flow through the pipeline immutably: the generator creates them, the
// reviewer replaces them wholesale or keeps them, and the codecs serialize
// them. No stage mutates a record it did not create.
//
// # Completeness
//
// A record is complete when it carries exactly four options and a valid
// correct letter:
//
//	rec := types.QuestionRecord{
//	    Question: "Quando si acquista la capacità giuridica?",
//	    Options:  []string{"Dal concepimento", "Dalla nascita", "A 18 anni", "All'iscrizione all'anagrafe"},
//	    Correct:  types.LetterB,
//	}
//	if err := rec.Validate(); err != nil {
//	    // incomplete records are dropped, never repaired
//	}
//
// During draft parsing (generation output that has not been answered yet) the
// Correct field may be empty; see the aiken package for the two parse modes.
package types
