// Package protocol defines the wire vocabulary shared by the server and the
// client. Every frame in either direction is a JSON envelope:
//
//	{"type": <string>, "data": <payload object>}
//
// Client -> server frames are Intents; server -> client frames are Events.
// Both are closed unions: each payload struct knows its own type tag, so
// encoding is total and there is no reachable "unsupported type" branch for
// a value built through the exported constructors.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wordduel/wordduel/internal/engine"
)

var ErrUnknownType = errors.New("unknown message type")

type IntentType string

const (
	IntentCreate    IntentType = "CREATE"
	IntentJoin      IntentType = "JOIN"
	IntentLetter    IntentType = "LETTER"
	IntentGuess     IntentType = "GUESS"
	IntentBackspace IntentType = "BACKSPACE"
)

type EventType string

const (
	EventCreation         EventType = "CREATION"
	EventGameState        EventType = "GAME_STATE"
	EventNotEnoughPlayers EventType = "ERROR_NOT_ENOUGH_PLAYERS"
	EventUnknownError     EventType = "ERROR_UNK"
)

// Envelope is the outer frame shape for both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Intent is a client-originated request to change shared state.
type Intent interface {
	IntentType() IntentType
}

type Create struct {
	PlayerName string `json:"player_name"`
}

type Join struct {
	PlayerID string `json:"player_id"`
}

type Letter struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
	Letter   string `json:"letter"`
}

type Guess struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
}

type Backspace struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
}

func (Create) IntentType() IntentType    { return IntentCreate }
func (Join) IntentType() IntentType      { return IntentJoin }
func (Letter) IntentType() IntentType    { return IntentLetter }
func (Guess) IntentType() IntentType     { return IntentGuess }
func (Backspace) IntentType() IntentType { return IntentBackspace }

// Event is a server-originated message mirrored by clients.
type Event interface {
	EventType() EventType
}

type Creation struct {
	PlayerID string `json:"player_id"`
}

// GameState carries the full authoritative snapshot plus a monotonic version
// so clients can discard out-of-order deliveries.
type GameState struct {
	engine.State
	Version int `json:"version"`
}

type NotEnoughPlayers struct {
	Queued bool `json:"queued"`
}

type UnknownError struct {
	Error string `json:"error"`
}

func (Creation) EventType() EventType         { return EventCreation }
func (GameState) EventType() EventType        { return EventGameState }
func (NotEnoughPlayers) EventType() EventType { return EventNotEnoughPlayers }
func (UnknownError) EventType() EventType     { return EventUnknownError }

// EncodeIntent serializes an intent into an envelope frame.
func EncodeIntent(it Intent) ([]byte, error) {
	return encode(string(it.IntentType()), it)
}

// EncodeEvent serializes an event into an envelope frame.
func EncodeEvent(ev Event) ([]byte, error) {
	return encode(string(ev.EventType()), ev)
}

func encode(typ string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	return json.Marshal(Envelope{Type: typ, Data: data})
}

// DecodeIntent parses a client frame. Unknown types yield ErrUnknownType so
// the server can answer with an error frame instead of dropping the
// connection.
func DecodeIntent(frame []byte) (Intent, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	switch IntentType(env.Type) {
	case IntentCreate:
		var p Create
		return p, unmarshalPayload(env, &p)
	case IntentJoin:
		var p Join
		return p, unmarshalPayload(env, &p)
	case IntentLetter:
		var p Letter
		return p, unmarshalPayload(env, &p)
	case IntentGuess:
		var p Guess
		return p, unmarshalPayload(env, &p)
	case IntentBackspace:
		var p Backspace
		return p, unmarshalPayload(env, &p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

// DecodeEvent parses a server frame. Callers log and drop unknown types;
// the session must survive protocol skew.
func DecodeEvent(frame []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	switch EventType(env.Type) {
	case EventCreation:
		var p Creation
		return p, unmarshalPayload(env, &p)
	case EventGameState:
		var p GameState
		return p, unmarshalPayload(env, &p)
	case EventNotEnoughPlayers:
		var p NotEnoughPlayers
		return p, unmarshalPayload(env, &p)
	case EventUnknownError:
		var p UnknownError
		return p, unmarshalPayload(env, &p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

func unmarshalPayload(env Envelope, dst any) error {
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return nil
}
