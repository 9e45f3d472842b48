package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRecord() QuestionRecord {
	return QuestionRecord{
		Question: "Quando si acquista la capacità giuridica?",
		Options:  []string{"Dal concepimento", "Dalla nascita", "A 18 anni", "Mai"},
		Correct:  LetterB,
	}
}

func TestParseLetter(t *testing.T) {
	for _, s := range []string{"A", "B", "C", "D"} {
		l, ok := ParseLetter(s)
		assert.True(t, ok)
		assert.Equal(t, Letter(s), l)
	}

	for _, s := range []string{"", "E", "a", "AB"} {
		_, ok := ParseLetter(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestLetterIndex(t *testing.T) {
	assert.Equal(t, 0, LetterA.Index())
	assert.Equal(t, 3, LetterD.Index())
	assert.Equal(t, -1, Letter("X").Index())
	assert.Equal(t, -1, Letter("").Index())
}

func TestQuestionRecord_Complete(t *testing.T) {
	rec := completeRecord()
	assert.True(t, rec.Complete())

	missing := rec.Clone()
	missing.Correct = ""
	assert.False(t, missing.Complete())

	short := rec.Clone()
	short.Options = short.Options[:3]
	assert.False(t, short.Complete())
}

func TestQuestionRecord_Validate(t *testing.T) {
	rec := completeRecord()
	require.NoError(t, rec.Validate())

	bad := rec.Clone()
	bad.Correct = "E"
	err := bad.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestQuestionRecord_CorrectOption(t *testing.T) {
	rec := completeRecord()
	assert.Equal(t, "Dalla nascita", rec.CorrectOption())
}

func TestQuestionRecord_CloneIsDeep(t *testing.T) {
	rec := completeRecord()
	cp := rec.Clone()
	cp.Options[0] = "mutated"
	assert.Equal(t, "Dal concepimento", rec.Options[0])
}

func TestFeedbackSet_Fallbacks(t *testing.T) {
	var nilSet *FeedbackSet
	assert.Equal(t, FallbackFeedback, nilSet.CorrectFeedback())
	assert.Equal(t, FallbackFeedback, nilSet.WrongFeedback(0))

	fb := &FeedbackSet{
		Correct: []string{"Corretto. L'articolo 1 stabilisce..."},
		Wrong:   []string{"Errato.", "", "Errato anche questo."},
	}
	assert.Equal(t, "Corretto. L'articolo 1 stabilisce...", fb.CorrectFeedback())
	assert.Equal(t, "Errato.", fb.WrongFeedback(0))
	assert.Equal(t, FallbackFeedback, fb.WrongFeedback(1))
	assert.Equal(t, "Errato anche questo.", fb.WrongFeedback(2))
	assert.Equal(t, FallbackFeedback, fb.WrongFeedback(3))
}
