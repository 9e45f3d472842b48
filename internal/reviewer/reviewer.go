// Package reviewer implements the second passage over a question bank:
// every record is validated against its most relevant source context and
// either approved as-is or replaced wholesale by an improved version. A
// record is never mutated field by field, and any failure keeps the
// original.
package reviewer

import (
	"context"
	"fmt"
	"log"

	"github.com/mpaoletti/lexquiz/internal/aiken"
	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/pkg/types"
)

const promptTemplate = `Sei un esperto professore di diritto italiano. Analizza e migliora questa domanda a scelta multipla:

Domanda:
%s
A. %s
B. %s
C. %s
D. %s
Risposta corretta: %s

Contesto dal codice civile:
%s

Se la domanda è corretta, rispondi con "OK".
Se invece ci sono problemi, fornisci la versione corretta della domanda nello stesso formato:
[Domanda corretta]
A. [Opzione corretta]
B. [Opzione corretta]
C. [Opzione corretta]
D. [Opzione corretta]
ANSWER: [Lettera corretta]

Migliora la chiarezza e la precisione della domanda mantenendo lo stesso concetto.`

// reviewOptions keep the output consistent across runs.
var reviewOptions = ollama.Options{Temperature: 0.1}

// Reviewer validates and improves records through the generation service.
type Reviewer struct {
	svc ollama.Service
}

// New creates a Reviewer backed by the given service.
func New(svc ollama.Service) *Reviewer {
	return &Reviewer{svc: svc}
}

// BuildPrompt renders the validation prompt for a record and its context.
func BuildPrompt(rec types.QuestionRecord, contextText string) string {
	return fmt.Sprintf(promptTemplate,
		rec.Question,
		rec.Options[0], rec.Options[1], rec.Options[2], rec.Options[3],
		rec.Correct,
		contextText,
	)
}

// Improve returns either the original record or a complete improved
// replacement. The model answers "OK" to approve; anything else is parsed as
// a replacement and adopted only when it is a complete record. Service
// failures and unparseable replacements keep the original - the second
// passage must never lose a question.
func (r *Reviewer) Improve(ctx context.Context, rec types.QuestionRecord, contextText string) types.QuestionRecord {
	response, err := r.svc.Generate(ctx, BuildPrompt(rec, contextText), reviewOptions)
	if err != nil {
		log.Printf("improvement call failed, keeping original: %v", err)
		return rec
	}

	if response == "OK" {
		return rec
	}

	improved, ok := aiken.DecodeBlock(response)
	if !ok {
		return rec
	}
	return improved
}
