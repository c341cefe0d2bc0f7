package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordduel/wordduel/internal/protocol"
)

func inMatchFixture(t *testing.T, guess string) (*Session, *Store, *Gate) {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.DeclareName("Ann"))
	s.BindPlayer("p1")
	s.MatchAssigned("r9")

	st := NewStore()
	state := snapshotState("r9")
	state.Guesses["p1"] = guess
	require.True(t, st.Replace(1, state))

	return s, st, NewGate(s, st)
}

func TestGate_KeyTable(t *testing.T) {
	cases := []struct {
		name  string
		guess string
		key   string
		want  protocol.Intent
	}{
		{name: "letter while guess open", guess: "cr", key: "a",
			want: protocol.Letter{PlayerID: "p1", RoomID: "r9", Letter: "a"}},
		{name: "uppercase letter normalized", guess: "", key: "C",
			want: protocol.Letter{PlayerID: "p1", RoomID: "r9", Letter: "c"}},
		{name: "letter rejected when guess full", guess: "crane", key: "s", want: nil},
		{name: "enter submits a full guess", guess: "crane", key: "enter",
			want: protocol.Guess{PlayerID: "p1", RoomID: "r9"}},
		{name: "enter rejected on a short guess", guess: "cra", key: "enter", want: nil},
		{name: "backspace erases a letter", guess: "cr", key: "backspace",
			want: protocol.Backspace{PlayerID: "p1", RoomID: "r9"}},
		{name: "backspace rejected on empty guess", guess: "", key: "backspace", want: nil},
		{name: "digits are dropped", guess: "", key: "7", want: nil},
		{name: "multi-char keys are dropped", guess: "", key: "shift", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, g := inMatchFixture(t, tc.guess)
			intent, ok := g.Press(tc.key)
			if tc.want == nil {
				assert.False(t, ok)
				assert.Nil(t, intent)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, intent)
		})
	}
}

func TestGate_SilentOutsideMatch(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.DeclareName("Ann"))
	s.BindPlayer("p1")
	// AwaitingMatch: a LETTER intent must never be constructed.
	st := NewStore()
	g := NewGate(s, st)

	for _, key := range []string{"a", "enter", "backspace"} {
		intent, ok := g.Press(key)
		assert.False(t, ok, "key %q leaked through in awaiting-match", key)
		assert.Nil(t, intent)
	}
}

func TestGate_NothingEmittedAfterGameOver(t *testing.T) {
	s, st, g := inMatchFixture(t, "crane")

	over := snapshotState("r9")
	over.GameOver = true
	over.Winner = "p2"
	require.True(t, st.Replace(2, over))
	s.GameOverReceived()

	for _, key := range []string{"a", "enter", "backspace"} {
		_, ok := g.Press(key)
		assert.False(t, ok, "key %q emitted an intent after game over", key)
	}
}

// Mirrors the full happy path: Ann types her word letter by letter with the
// authority echoing each keystroke, then submits.
func TestGate_TypedWordThenSubmit(t *testing.T) {
	s, st, g := inMatchFixture(t, "")
	_ = s

	word := "crane"
	for i := 0; i < len(word); i++ {
		intent, ok := g.Press(string(word[i]))
		require.True(t, ok)
		assert.Equal(t, protocol.Letter{PlayerID: "p1", RoomID: "r9", Letter: string(word[i])}, intent)

		// Authority echo: the snapshot now carries the accepted letter.
		state := snapshotState("r9")
		state.Guesses["p1"] = word[:i+1]
		require.True(t, st.Replace(i+2, state))
	}

	intent, ok := g.Press("enter")
	require.True(t, ok)
	assert.Equal(t, protocol.Guess{PlayerID: "p1", RoomID: "r9"}, intent)
}
