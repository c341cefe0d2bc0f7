package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordduel/wordduel/internal/engine"
)

func TestEncodeIntent_WireShape(t *testing.T) {
	frame, err := EncodeIntent(Letter{PlayerID: "p1", RoomID: "r9", Letter: "c"})
	require.NoError(t, err)

	var env struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, "LETTER", env.Type)
	assert.Equal(t, "p1", env.Data["player_id"])
	assert.Equal(t, "r9", env.Data["room_id"])
	assert.Equal(t, "c", env.Data["letter"])
}

func TestIntentRoundTrips(t *testing.T) {
	cases := []Intent{
		Create{PlayerName: "Ann"},
		Join{PlayerID: "p1"},
		Letter{PlayerID: "p1", RoomID: "r9", Letter: "z"},
		Guess{PlayerID: "p1", RoomID: "r9"},
		Backspace{PlayerID: "p1", RoomID: "r9"},
	}
	for _, it := range cases {
		t.Run(string(it.IntentType()), func(t *testing.T) {
			frame, err := EncodeIntent(it)
			require.NoError(t, err)
			got, err := DecodeIntent(frame)
			require.NoError(t, err)
			assert.Equal(t, it, got)
		})
	}
}

func TestEventRoundTrips(t *testing.T) {
	state := engine.NewState("r9",
		[]string{"p1", "p2"},
		[]string{"Ann", "Ben"},
		[]string{"crane", "sugar"})

	cases := []Event{
		Creation{PlayerID: "p1"},
		GameState{State: state, Version: 7},
		NotEnoughPlayers{Queued: true},
		UnknownError{Error: "nope"},
	}
	for _, ev := range cases {
		t.Run(string(ev.EventType()), func(t *testing.T) {
			frame, err := EncodeEvent(ev)
			require.NoError(t, err)
			got, err := DecodeEvent(frame)
			require.NoError(t, err)
			assert.Equal(t, ev, got)
		})
	}
}

func TestGameState_VersionRidesInsideData(t *testing.T) {
	state := engine.NewState("r9", []string{"p1", "p2"},
		[]string{"Ann", "Ben"}, []string{"crane", "sugar"})
	frame, err := EncodeEvent(GameState{State: state, Version: 3})
	require.NoError(t, err)

	var env struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, "GAME_STATE", env.Type)
	assert.Equal(t, float64(3), env.Data["version"])
	assert.Equal(t, "r9", env.Data["room_id"])
	assert.Contains(t, env.Data, "past_guesses")
	assert.Contains(t, env.Data, "is_right")
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := DecodeIntent([]byte(`{"type":"TELEPORT","data":{}}`))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DecodeEvent([]byte(`{"type":"SURPRISE","data":{}}`))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDecode_MalformedFrames(t *testing.T) {
	_, err := DecodeIntent([]byte(`not json at all`))
	assert.Error(t, err)

	_, err = DecodeIntent([]byte(`{"type":"LETTER","data":"not an object"}`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"type":"GAME_STATE"}`))
	assert.Error(t, err)
}
