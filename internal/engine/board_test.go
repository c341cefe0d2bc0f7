package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreWord_ExactMatch(t *testing.T) {
	got := ScoreWord("crane", "crane")
	assert.Equal(t, []Feedback{
		FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect,
	}, got)
}

func TestScoreWord_LetterMultiplicity(t *testing.T) {
	// The secret has two l's; the guess has three. Only two may be marked,
	// one correct and one present, and the third must come back absent.
	got := ScoreWord("allot", "talll")
	assert.Equal(t, []Feedback{
		FeedbackPresent, // t occurs at position 4
		FeedbackPresent, // a occurs at position 0
		FeedbackCorrect, // l in place
		FeedbackPresent, // second l, consumes the remaining count
		FeedbackAbsent,  // third l, nothing left to consume
	}, got)

	marked := 0
	for i, fb := range got {
		if "talll"[i] == 'l' && (fb == FeedbackPresent || fb == FeedbackCorrect) {
			marked++
		}
	}
	assert.Equal(t, 2, marked)
}

func TestScoreWord_Idempotent(t *testing.T) {
	first := ScoreWord("allot", "talll")
	second := ScoreWord("allot", "talll")
	assert.Equal(t, first, second)
}

func TestScoreWord_LengthMismatchIsAllAbsent(t *testing.T) {
	got := ScoreWord("", "crane")
	for _, fb := range got {
		assert.Equal(t, FeedbackAbsent, fb)
	}
}

func TestCell_RowGating(t *testing.T) {
	secret := "slate"
	past := []string{"crane"}
	current := "sto"

	// Row 0 is settled: every cell carries a letter and real feedback.
	for col := 0; col < WordLength; col++ {
		ch, fb := Cell(secret, past, current, 0, col)
		assert.Equal(t, past[0][col], ch)
		assert.NotEqual(t, FeedbackBlank, fb)
	}

	// Row 1 is active: "sto" then blanks, all neutral.
	for col, want := range []byte{'s', 't', 'o'} {
		ch, fb := Cell(secret, past, current, 1, col)
		assert.Equal(t, want, ch)
		assert.Equal(t, FeedbackBlank, fb)
	}
	for col := 3; col < WordLength; col++ {
		ch, fb := Cell(secret, past, current, 1, col)
		assert.Equal(t, byte(0), ch)
		assert.Equal(t, FeedbackBlank, fb)
	}

	// Rows 2..5 are entirely blank.
	for row := 2; row < MaxGuesses; row++ {
		for col := 0; col < WordLength; col++ {
			ch, fb := Cell(secret, past, current, row, col)
			assert.Equal(t, byte(0), ch)
			assert.Equal(t, FeedbackBlank, fb)
		}
	}
}

func TestCell_SettledFeedback(t *testing.T) {
	past := []string{"crane"}

	ch, fb := Cell("crane", past, "", 0, 2)
	assert.Equal(t, byte('a'), ch)
	assert.Equal(t, FeedbackCorrect, fb)

	ch, fb = Cell("slate", past, "", 0, 0)
	require.Equal(t, byte('c'), ch)
	assert.Equal(t, FeedbackAbsent, fb)

	ch, fb = Cell("slate", past, "", 0, 2)
	require.Equal(t, byte('a'), ch)
	assert.Equal(t, FeedbackCorrect, fb)

	ch, fb = Cell("slate", past, "", 0, 4)
	require.Equal(t, byte('e'), ch)
	assert.Equal(t, FeedbackCorrect, fb)
}

func TestCell_WithheldSecretStaysNeutral(t *testing.T) {
	// An opponent board before game over has no secret; settled letters
	// still show, but with neutral feedback.
	ch, fb := Cell("", []string{"crane"}, "", 0, 0)
	assert.Equal(t, byte('c'), ch)
	assert.Equal(t, FeedbackBlank, fb)
}

func TestCell_OutOfRange(t *testing.T) {
	ch, fb := Cell("crane", nil, "", -1, 0)
	assert.Equal(t, byte(0), ch)
	assert.Equal(t, FeedbackBlank, fb)

	ch, fb = Cell("crane", nil, "", 0, WordLength)
	assert.Equal(t, byte(0), ch)
	assert.Equal(t, FeedbackBlank, fb)
}

func TestCell_DoesNotMutateInputs(t *testing.T) {
	past := []string{"crane", "slate"}
	_, _ = Cell("allot", past, "ta", 0, 0)
	_, _ = Cell("allot", past, "ta", 5, 4)
	assert.Equal(t, []string{"crane", "slate"}, past)
}
