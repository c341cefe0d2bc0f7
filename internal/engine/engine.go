package engine

import "errors"

var ErrUnknownPlayer = errors.New("unknown player")
var ErrMatchOver = errors.New("match already over")
var ErrGuessFull = errors.New("guess already full")
var ErrGuessIncomplete = errors.New("guess incomplete")
var ErrGuessEmpty = errors.New("cannot backspace an empty guess")
var ErrOutOfGuesses = errors.New("no guesses remaining")
var ErrBadLetter = errors.New("letter must be a single a-z character")
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	MaxGuesses = 6
	WordLength = 5
)

type CommandType string

const (
	CmdLetter    CommandType = "Letter"
	CmdGuess     CommandType = "Guess"
	CmdBackspace CommandType = "Backspace"
)

type Command struct {
	Type     CommandType
	PlayerID string
	Letter   byte
}

type EventType string

const (
	EvtLetterTyped  EventType = "LetterTyped"
	EvtLetterErased EventType = "LetterErased"
	EvtGuessScored  EventType = "GuessScored"
	EvtMatchWon     EventType = "MatchWon"
	EvtMatchDrawn   EventType = "MatchDrawn"
	EvtMatchForfeit EventType = "MatchForfeit"
)

type Event struct {
	Type     EventType
	PlayerID string
	Correct  bool
}

// State is the authoritative snapshot for one match. The server owns it;
// clients only ever receive copies. JSON tags match the wire names the
// browser client expects.
type State struct {
	RoomID      string              `json:"room_id"`
	PlayerIDs   []string            `json:"player_ids"`
	PlayerNames map[string]string   `json:"player_names"`
	Guesses     map[string]string   `json:"guesses"`
	PastGuesses map[string][]string `json:"past_guesses"`
	SecretWords map[string]string   `json:"secret_words"`
	IsRight     map[string]bool     `json:"is_right"`
	GameOver    bool                `json:"game_over"`
	Winner      string              `json:"winner"`
}

// NewState builds the initial state for a freshly paired match.
// ids, names and secrets must be parallel, one entry per player.
func NewState(roomID string, ids []string, names []string, secrets []string) State {
	s := State{
		RoomID:      roomID,
		PlayerIDs:   append([]string{}, ids...),
		PlayerNames: make(map[string]string, len(ids)),
		Guesses:     make(map[string]string, len(ids)),
		PastGuesses: make(map[string][]string, len(ids)),
		SecretWords: make(map[string]string, len(ids)),
		IsRight:     make(map[string]bool, len(ids)),
	}
	for i, id := range ids {
		s.PlayerNames[id] = names[i]
		s.Guesses[id] = ""
		s.PastGuesses[id] = []string{}
		s.SecretWords[id] = secrets[i]
		s.IsRight[id] = false
	}
	return s
}

// Clone deep-copies the state so callers can hand out snapshots without
// aliasing the maps held by the room goroutine.
func (s State) Clone() State {
	out := s
	out.PlayerIDs = append([]string{}, s.PlayerIDs...)
	out.PlayerNames = cloneMap(s.PlayerNames)
	out.Guesses = cloneMap(s.Guesses)
	out.SecretWords = cloneMap(s.SecretWords)
	out.IsRight = cloneMap(s.IsRight)
	out.PastGuesses = make(map[string][]string, len(s.PastGuesses))
	for id, past := range s.PastGuesses {
		out.PastGuesses[id] = append([]string{}, past...)
	}
	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Apply validates cmd against s and returns the resulting events and state.
// The input state is never mutated; on error it is returned unchanged.
func Apply(s State, cmd Command) ([]Event, State, error) {
	if s.GameOver {
		return nil, s, ErrMatchOver
	}
	if _, ok := s.Guesses[cmd.PlayerID]; !ok {
		return nil, s, ErrUnknownPlayer
	}

	switch cmd.Type {
	case CmdLetter:
		if cmd.Letter < 'a' || cmd.Letter > 'z' {
			return nil, s, ErrBadLetter
		}
		if len(s.Guesses[cmd.PlayerID]) >= WordLength {
			return nil, s, ErrGuessFull
		}
		newState := s.Clone()
		newState.Guesses[cmd.PlayerID] += string(cmd.Letter)
		return []Event{{Type: EvtLetterTyped, PlayerID: cmd.PlayerID}}, newState, nil

	case CmdBackspace:
		cur := s.Guesses[cmd.PlayerID]
		if len(cur) == 0 {
			return nil, s, ErrGuessEmpty
		}
		newState := s.Clone()
		newState.Guesses[cmd.PlayerID] = cur[:len(cur)-1]
		return []Event{{Type: EvtLetterErased, PlayerID: cmd.PlayerID}}, newState, nil

	case CmdGuess:
		if len(s.PastGuesses[cmd.PlayerID]) >= MaxGuesses {
			return nil, s, ErrOutOfGuesses
		}
		guess := s.Guesses[cmd.PlayerID]
		if len(guess) != WordLength {
			return nil, s, ErrGuessIncomplete
		}
		newState := s.Clone()
		newState.Guesses[cmd.PlayerID] = ""
		newState.PastGuesses[cmd.PlayerID] = append(newState.PastGuesses[cmd.PlayerID], guess)

		correct := guess == newState.SecretWords[cmd.PlayerID]
		events := []Event{{Type: EvtGuessScored, PlayerID: cmd.PlayerID, Correct: correct}}
		if correct {
			newState.IsRight[cmd.PlayerID] = true
			// First player to solve their word wins.
			if newState.Winner == "" {
				newState.Winner = cmd.PlayerID
			}
		}

		if anyRight(newState) {
			newState.GameOver = true
			events = append(events, Event{Type: EvtMatchWon, PlayerID: newState.Winner})
		} else if minPastGuesses(newState) == MaxGuesses {
			// Both players have exhausted every guess; nobody wins.
			newState.GameOver = true
			events = append(events, Event{Type: EvtMatchDrawn})
		}
		return events, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// Forfeit ends the match in favor of the player who stayed. Returns
// ErrMatchOver if the match already ended, preserving the terminal invariant.
func Forfeit(s State, leaverID string) ([]Event, State, error) {
	if s.GameOver {
		return nil, s, ErrMatchOver
	}
	if _, ok := s.Guesses[leaverID]; !ok {
		return nil, s, ErrUnknownPlayer
	}
	newState := s.Clone()
	newState.GameOver = true
	for _, id := range newState.PlayerIDs {
		if id != leaverID {
			newState.Winner = id
		}
	}
	return []Event{{Type: EvtMatchForfeit, PlayerID: leaverID}}, newState, nil
}

func anyRight(s State) bool {
	for _, right := range s.IsRight {
		if right {
			return true
		}
	}
	return false
}

func minPastGuesses(s State) int {
	min := MaxGuesses
	for _, past := range s.PastGuesses {
		if len(past) < min {
			min = len(past)
		}
	}
	return min
}
