package client

import (
	"errors"
	"sync"
)

var ErrEmptyName = errors.New("player name must not be empty")

// Phase tracks a client's progress through the match lifecycle. MatchOver is
// terminal; a fresh match needs a fresh session.
type Phase int

const (
	PhaseAnonymous Phase = iota
	PhaseAwaitingMatch
	PhaseInMatch
	PhaseMatchOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingMatch:
		return "awaiting-match"
	case PhaseInMatch:
		return "in-match"
	case PhaseMatchOver:
		return "match-over"
	default:
		return "anonymous"
	}
}

// Session is the client-local lifecycle state: name, bound player id and
// assigned room. One session per connection, constructed explicitly and
// injected wherever needed; there is no ambient singleton.
type Session struct {
	mu       sync.Mutex
	phase    Phase
	name     string
	playerID string
	roomID   string
}

func NewSession() *Session {
	return &Session{phase: PhaseAnonymous}
}

// DeclareName records the player's chosen name. Rejecting an empty name here
// keeps the bad request from ever reaching the wire.
func (s *Session) DeclareName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseAnonymous {
		s.name = name
	}
	return nil
}

// BindPlayer accepts the authority-assigned player id, completing the
// Anonymous -> AwaitingMatch transition.
func (s *Session) BindPlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerID = playerID
	if s.phase == PhaseAnonymous {
		s.phase = PhaseAwaitingMatch
	}
}

// MatchAssigned moves the session into the match. Authority-driven; calling
// it again with the same room is a no-op.
func (s *Session) MatchAssigned(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseAwaitingMatch {
		s.phase = PhaseInMatch
		s.roomID = roomID
	}
}

// GameOverReceived closes out the match.
func (s *Session) GameOverReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInMatch {
		s.phase = PhaseMatchOver
	}
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) PlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}
