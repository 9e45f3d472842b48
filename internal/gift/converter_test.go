package gift

import (
	"context"
	"errors"
	"strings"
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
	opts     ollama.Options
}

func (f *fakeService) Chat(_ context.Context, prompt string, opts ollama.Options) (string, error) {
	f.prompt = prompt
	f.opts = opts
	return f.response, f.err
}

func (f *fakeService) Generate(ctx context.Context, prompt string, opts ollama.Options) (string, error) {
	return f.Chat(ctx, prompt, opts)
}

func TestConverter_FeedbackParsesResponse(t *testing.T) {
	svc := &fakeService{
		response: "FEEDBACK_A: Errato. L'articolo 1 stabilisce: \"citazione\"\n" +
			"FEEDBACK_B: Corretto. L'articolo 1 stabilisce: \"citazione\"\n" +
			"FEEDBACK_C: Errato. L'articolo 2 stabilisce: \"altra citazione\"\n" +
			"FEEDBACK_D: Errato. L'articolo 3 stabilisce: \"terza citazione\"",
	}
	c := NewConverter(svc)

	fb := c.Feedback(context.Background(), sampleRecord(), "contesto")
	require.Len(t, fb.Correct, 1)
	assert.Contains(t, fb.Correct[0], "Corretto")
	assert.Len(t, fb.Wrong, 3)
}

func TestConverter_FeedbackPromptContents(t *testing.T) {
	svc := &fakeService{response: ""}
	c := NewConverter(svc)
	c.Feedback(context.Background(), sampleRecord(), "il contesto di prova")

	assert.Contains(t, svc.prompt, "Quando si acquista la capacità giuridica?")
	assert.Contains(t, svc.prompt, "B. opzione due")
	assert.Contains(t, svc.prompt, "Risposta corretta: B")
	assert.Contains(t, svc.prompt, "il contesto di prova")
	assert.InDelta(t, 0.1, svc.opts.Temperature, 1e-9)
}

func TestConverter_ServiceFailureYieldsEmptySet(t *testing.T) {
	c := NewConverter(&fakeService{err: errors.New("connection refused")})

	fb := c.Feedback(context.Background(), sampleRecord(), "contesto")
	assert.Empty(t, fb.Correct)
	assert.Empty(t, fb.Wrong)
}

func TestConverter_ConvertFallsBackToPlaceholders(t *testing.T) {
	c := NewConverter(&fakeService{err: errors.New("timeout")})

	out, err := c.Convert(context.Background(), sampleRecord(), "contesto")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, types.FallbackFeedback))
}
