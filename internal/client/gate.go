package client

import (
	"strings"

	"github.com/wordduel/wordduel/internal/engine"
	"github.com/wordduel/wordduel/internal/protocol"
)

const (
	KeyBackspace = "backspace"
	KeyEnter     = "enter"
)

// Gate maps raw key input to zero-or-one protocol intent, consulting the
// session phase and the latest snapshot. Anything that fails a guard is a
// silent no-op, never an error: the authority is the sole validator and the
// gate only avoids sending requests that are certain to be rejected.
type Gate struct {
	session *Session
	store   *Store
}

func NewGate(session *Session, store *Store) *Gate {
	return &Gate{session: session, store: store}
}

// Press resolves one key press. ok is false when no intent should be sent.
func (g *Gate) Press(key string) (protocol.Intent, bool) {
	// Outside the match, keys go to the name form, not the board.
	if g.session.Phase() != PhaseInMatch {
		return nil, false
	}
	state, _, ok := g.store.Snapshot()
	if !ok || state.GameOver {
		return nil, false
	}

	playerID := g.session.PlayerID()
	roomID := state.RoomID
	guess := state.Guesses[playerID]

	switch key = strings.ToLower(key); {
	case key == KeyBackspace && len(guess) >= 1:
		return protocol.Backspace{PlayerID: playerID, RoomID: roomID}, true
	case key == KeyEnter && len(guess) == engine.WordLength:
		return protocol.Guess{PlayerID: playerID, RoomID: roomID}, true
	case len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' && len(guess) < engine.WordLength:
		return protocol.Letter{PlayerID: playerID, RoomID: roomID, Letter: key}, true
	default:
		return nil, false
	}
}
