package client

import "github.com/wordduel/wordduel/internal/engine"

// CellView is what the presentation layer consumes per cell: a resolved
// literal character (0 for blank) and its feedback category. The renderer
// maps feedback to colors and layout only; it never re-derives feedback.
type CellView struct {
	Char     byte
	Feedback engine.Feedback
}

// Board is one player's full grid.
type Board [engine.MaxGuesses][engine.WordLength]CellView

// BoardFor projects one player's board from a snapshot. Works for the
// opponent too: a withheld secret just yields neutral feedback on settled
// rows until the match ends.
func BoardFor(state engine.State, playerID string) Board {
	secret := state.SecretWords[playerID]
	past := state.PastGuesses[playerID]
	current := state.Guesses[playerID]

	var b Board
	for row := 0; row < engine.MaxGuesses; row++ {
		for col := 0; col < engine.WordLength; col++ {
			ch, fb := engine.Cell(secret, past, current, row, col)
			b[row][col] = CellView{Char: ch, Feedback: fb}
		}
	}
	return b
}
