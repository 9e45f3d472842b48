package gift

import (
	"context"
	"fmt"
	"log"

	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/pkg/types"
)

const feedbackPromptTemplate = `Analizza questa domanda del codice civile italiano e fornisci un feedback specifico per ogni risposta, usando SEMPRE citazioni dirette dal testo.

Domanda:
%s

Opzioni:
A. %s
B. %s
C. %s
D. %s

Risposta corretta: %s

Contesto dal codice civile:
%s

ISTRUZIONI IMPORTANTI:
1. Per OGNI risposta DEVI:
   - Includere una citazione diretta dal codice civile usando le virgolette (" ")
   - Specificare l'articolo di riferimento
   - Non fare MAI riferimento alle altre opzioni

2. Formato del feedback per risposta corretta:
   "Corretto. L'articolo [X] stabilisce: '[citazione diretta]'"

3. Formato del feedback per risposta errata:
   "Errato. L'articolo [X] stabilisce invece: '[citazione diretta]'"

4. Se non trovi una citazione diretta pertinente nel contesto fornito, usa questa formula:
   "Consultare l'articolo [X] del Codice Civile per il testo completo"

Fornisci il feedback per ogni opzione:
FEEDBACK_A: [feedback per opzione A con citazione]
FEEDBACK_B: [feedback per opzione B con citazione]
FEEDBACK_C: [feedback per opzione C con citazione]
FEEDBACK_D: [feedback per opzione D con citazione]`

// feedbackOptions keep citations stable across runs.
var feedbackOptions = ollama.Options{Temperature: 0.1}

// Converter enriches records with per-option feedback through the generation
// service and renders them in the annotated format.
type Converter struct {
	svc ollama.Service
}

// NewConverter creates a Converter backed by the given service.
func NewConverter(svc ollama.Service) *Converter {
	return &Converter{svc: svc}
}

// BuildFeedbackPrompt renders the feedback prompt for a record and its
// source context.
func BuildFeedbackPrompt(rec types.QuestionRecord, contextText string) string {
	return fmt.Sprintf(feedbackPromptTemplate,
		rec.Question,
		rec.Options[0], rec.Options[1], rec.Options[2], rec.Options[3],
		rec.Correct,
		contextText,
	)
}

// Feedback asks the model for per-option feedback. A service failure yields
// an empty set; the serializer then falls back to the fixed placeholder for
// every option, so one failed call never loses a record.
func (c *Converter) Feedback(ctx context.Context, rec types.QuestionRecord, contextText string) types.FeedbackSet {
	response, err := c.svc.Generate(ctx, BuildFeedbackPrompt(rec, contextText), feedbackOptions)
	if err != nil {
		log.Printf("feedback call failed, using placeholders: %v", err)
		return types.FeedbackSet{}
	}
	return ParseResponse(response, rec.Correct)
}

// Convert produces the annotated block for a record: feedback generation
// followed by serialization.
func (c *Converter) Convert(ctx context.Context, rec types.QuestionRecord, contextText string) (string, error) {
	fb := c.Feedback(ctx, rec, contextText)
	return Marshal(rec, &fb)
}
