package room

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/wordduel/internal/engine"
)

type Msg interface{ isRoomMsg() }

// Join registers a player's outbox; the current snapshot is sent immediately.
type Join struct {
	PlayerID string
	Outbox   chan Snapshot
}

func (Join) isRoomMsg() {}

// Leave drops the player's outbox. Leaving an unfinished match forfeits it
// to the remaining player.
type Leave struct{ PlayerID string }

func (Leave) isRoomMsg() {}

// FromClient carries a validated intent from the ws layer.
type FromClient struct {
	PlayerID string
	Cmd      engine.Command
}

func (FromClient) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// GetView reflects internal state without data races; used by tests.
type GetView struct {
	Reply chan View
}

func (GetView) isRoomMsg() {}

// Snapshot is what a client receives: the state already projected for that
// player (opponent secret withheld until the match ends) plus a monotonic
// version for stale-delivery detection.
type Snapshot struct {
	Version int
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

// Room serializes all mutation of one match's state on a single goroutine.
// Two near-simultaneous letters from the two players can never interleave
// into a corrupted guess because every command funnels through the inbox.
type Room struct {
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	onClose func()
	ctx     context.Context
	cancel  context.CancelFunc
	log     zerolog.Logger
}

// NewRoom starts the match goroutine. onClose is invoked exactly once after
// the room shuts down, so the hub can drop its registry entry.
func NewRoom(parent context.Context, initial engine.State, onClose func()) *Room {
	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		inbox:   make(chan Msg, 64),
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		onClose: onClose,
		ctx:     ctx,
		cancel:  cancel,
		log:     log.With().Str("component", "room").Str("room_id", initial.RoomID).Logger(),
	}
	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.clients[msg.PlayerID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: r.version, State: r.projectFor(msg.PlayerID)}

			case Leave:
				if ch, ok := r.clients[msg.PlayerID]; ok {
					close(ch)
					delete(r.clients, msg.PlayerID)
				}
				if !r.state.GameOver {
					events, newState, err := engine.Forfeit(r.state, msg.PlayerID)
					if err == nil {
						r.logEvents(events)
						r.state = newState
						r.version++
						r.broadcast()
					}
				}
				if len(r.clients) == 0 && r.state.GameOver {
					r.shutdown()
					return
				}

			case FromClient:
				events, newState, err := engine.Apply(r.state, msg.Cmd)
				if err != nil {
					// Client-side gating makes rejects rare; drop and log.
					r.log.Debug().Err(err).Str("player_id", msg.PlayerID).
						Str("cmd", string(msg.Cmd.Type)).Msg("command rejected")
					break
				}
				r.logEvents(events)
				r.state = newState
				r.version++
				r.broadcast()

			case GetView:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					State:      r.state.Clone(),
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
	if r.onClose != nil {
		r.onClose()
		r.onClose = nil
	}
}

// broadcast fans the current state out to every player, each seeing their
// own projection. Sends to a given player are in version order; slow or
// stuck clients are dropped rather than allowed to stall the match.
func (r *Room) broadcast() {
	for id, ch := range r.clients {
		select {
		case ch <- Snapshot{Version: r.version, State: r.projectFor(id)}:
		default:
			r.log.Warn().Str("player_id", id).Msg("dropping slow client")
			close(ch)
			delete(r.clients, id)
		}
	}
}

// projectFor clones the state for one recipient. The opponent's secret word
// is withheld until the match is over.
func (r *Room) projectFor(playerID string) engine.State {
	out := r.state.Clone()
	if out.GameOver {
		return out
	}
	for id := range out.SecretWords {
		if id != playerID {
			delete(out.SecretWords, id)
		}
	}
	return out
}

func (r *Room) logEvents(events []engine.Event) {
	for _, ev := range events {
		r.log.Info().Str("event", string(ev.Type)).Str("player_id", ev.PlayerID).
			Bool("correct", ev.Correct).Msg("match event")
	}
}
