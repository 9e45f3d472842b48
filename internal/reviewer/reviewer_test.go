package reviewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/pkg/types"
)

type fakeService struct {
	response string
	err      error
	prompt   string
}

func (f *fakeService) Chat(_ context.Context, prompt string, _ ollama.Options) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeService) Generate(ctx context.Context, prompt string, opts ollama.Options) (string, error) {
	return f.Chat(ctx, prompt, opts)
}

func original() types.QuestionRecord {
	return types.QuestionRecord{
		Question: "Quando si acquista la capacità giuridica?",
		Options:  []string{"Dal concepimento", "Dalla nascita", "A 18 anni", "Mai"},
		Correct:  types.LetterB,
	}
}

func TestImprove_OKKeepsOriginal(t *testing.T) {
	r := New(&fakeService{response: "OK"})
	out := r.Improve(context.Background(), original(), "contesto")
	assert.Equal(t, original(), out)
}

func TestImprove_ReplacementAdoptedWholesale(t *testing.T) {
	improved := `Secondo l'articolo 1 del Codice Civile, quando si acquista la capacità giuridica?
A. Dal momento del concepimento
B. Dal momento della nascita
C. Al compimento del diciottesimo anno
D. Al momento dell'iscrizione all'anagrafe
ANSWER: B`

	r := New(&fakeService{response: improved})
	out := r.Improve(context.Background(), original(), "contesto")
	assert.NotEqual(t, original(), out)
	assert.Equal(t, "Secondo l'articolo 1 del Codice Civile, quando si acquista la capacità giuridica?", out.Question)
	assert.Equal(t, types.LetterB, out.Correct)
	require.NoError(t, out.Validate())
}

func TestImprove_IncompleteReplacementKeepsOriginal(t *testing.T) {
	r := New(&fakeService{response: "Domanda migliore?\nA. uno\nB. due\nANSWER: A"})
	out := r.Improve(context.Background(), original(), "contesto")
	assert.Equal(t, original(), out)
}

func TestImprove_ServiceFailureKeepsOriginal(t *testing.T) {
	r := New(&fakeService{err: errors.New("timeout")})
	out := r.Improve(context.Background(), original(), "contesto")
	assert.Equal(t, original(), out)
}

func TestBuildPrompt_IncludesRecordAndContext(t *testing.T) {
	svc := &fakeService{response: "OK"}
	r := New(svc)
	r.Improve(context.Background(), original(), "il testo di contesto")

	assert.Contains(t, svc.prompt, "Quando si acquista la capacità giuridica?")
	assert.Contains(t, svc.prompt, "B. Dalla nascita")
	assert.Contains(t, svc.prompt, "Risposta corretta: B")
	assert.Contains(t, svc.prompt, "il testo di contesto")
}
