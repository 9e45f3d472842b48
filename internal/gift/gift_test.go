package gift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

func sampleRecord() types.QuestionRecord {
	return types.QuestionRecord{
		Question: "Quando si acquista la capacità giuridica?",
		Options:  []string{"opzione uno", "opzione due", "opzione tre", "opzione quattro"},
		Correct:  types.LetterB,
	}
}

func TestMarshal_CorrectTokenPlacement(t *testing.T) {
	fb := &types.FeedbackSet{
		Correct: []string{"F0"},
		Wrong:   []string{"F1", "F2", "F3"},
	}

	out, err := Marshal(sampleRecord(), fb)
	require.NoError(t, err)

	want := "::Q:: Quando si acquista la capacità giuridica?\n" +
		"{ ~opzione uno # F1 =opzione due # F0 ~opzione tre # F2 ~opzione quattro # F3 }\n\n"
	assert.Equal(t, want, out)
}

func TestMarshal_ExactlyOneCorrectToken(t *testing.T) {
	out, err := Marshal(sampleRecord(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, " ="))
	assert.Equal(t, 3, strings.Count(out, " ~"))
}

func TestMarshal_PlaceholderFallback(t *testing.T) {
	fb := &types.FeedbackSet{
		Correct: []string{"Corretto."},
		Wrong:   []string{"F1"},
	}

	out, err := Marshal(sampleRecord(), fb)
	require.NoError(t, err)
	// Wrong options beyond the provided feedback get the fixed placeholder.
	assert.Equal(t, 2, strings.Count(out, types.FallbackFeedback))
}

func TestMarshal_IncompleteRecordFails(t *testing.T) {
	rec := sampleRecord()
	rec.Correct = ""
	_, err := Marshal(rec, nil)
	assert.ErrorIs(t, err, types.ErrMalformedRecord)
}

func TestParseResponse_SplitsByLetter(t *testing.T) {
	response := `FEEDBACK_A: Errato. L'articolo 1 stabilisce: "La capacità giuridica si acquista dal momento della nascita"
FEEDBACK_B: Corretto. L'articolo 1 stabilisce: "La capacità giuridica si acquista dal momento della nascita"
FEEDBACK_C: Errato. L'articolo 2 stabilisce: "Con la maggiore età si acquista la capacità di agire"
FEEDBACK_D: Errato. L'articolo 1 stabilisce: "La capacità giuridica si acquista dal momento della nascita"`

	fb := ParseResponse(response, types.LetterB)
	require.Len(t, fb.Correct, 1)
	assert.Contains(t, fb.Correct[0], "Corretto")
	require.Len(t, fb.Wrong, 3)
	assert.Contains(t, fb.Wrong[1], "articolo 2")
}

func TestParseResponse_ContinuationLinesJoined(t *testing.T) {
	response := "FEEDBACK_A: Errato. L'articolo 230-bis stabilisce:\n\"Il familiare che presta in modo continuativo\"\nFEEDBACK_B: Corretto. \"Citazione\""

	fb := ParseResponse(response, types.LetterB)
	require.Len(t, fb.Wrong, 1)
	assert.Equal(t, `Errato. L'articolo 230-bis stabilisce: "Il familiare che presta in modo continuativo"`, fb.Wrong[0])
}

func TestParseResponse_UnquotedFeedbackDegradesToArticleReference(t *testing.T) {
	response := "FEEDBACK_A: Errato perche lo dice articolo 230-bis del codice\nFEEDBACK_B: Corretto perche si"

	fb := ParseResponse(response, types.LetterA)
	require.Len(t, fb.Correct, 1)
	assert.Equal(t, "Consultare l'articolo 230-bis del Codice Civile per il testo completo", fb.Correct[0])
}

func TestParseResponse_EmptySectionsDropped(t *testing.T) {
	response := "FEEDBACK_B: Corretto. \"Citazione\""
	fb := ParseResponse(response, types.LetterB)
	assert.Len(t, fb.Correct, 1)
	assert.Empty(t, fb.Wrong)
}

func TestParseResponse_GarbageYieldsEmptySet(t *testing.T) {
	fb := ParseResponse("nothing useful here", types.LetterA)
	assert.Empty(t, fb.Correct)
	assert.Empty(t, fb.Wrong)
}
