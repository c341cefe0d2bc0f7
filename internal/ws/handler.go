package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/wordduel/internal/engine"
	"github.com/wordduel/wordduel/internal/hub"
	"github.com/wordduel/wordduel/internal/protocol"
	"github.com/wordduel/wordduel/internal/room"
)

const writeTimeout = 3 * time.Second

// Handler upgrades each connection and runs its session: CREATE binds a
// player id, JOIN queues for a match, in-match intents are forwarded to the
// room goroutine, and every room snapshot is pushed back down as GAME_STATE.
//
// idleTimeout bounds how long a connection may stay silent; an expired
// connection is treated as a disconnect, which forfeits any unfinished match.
func Handler(h *hub.Hub, idleTimeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		s := &session{
			conn:    conn,
			hub:     h,
			idle:    idleTimeout,
			pairCh:  make(chan hub.PairResult, 4),
			frames:  make(chan []byte),
			readErr: make(chan error, 1),
			log:     log.With().Str("component", "ws").Logger(),
		}
		s.run(r.Context())
	}
}

// session is the per-connection state. It is owned by one goroutine; the
// read pump only feeds raw frames into it.
type session struct {
	conn     *websocket.Conn
	hub      *hub.Hub
	idle     time.Duration
	playerID string
	rm       *room.Room
	snaps    chan room.Snapshot
	pairCh   chan hub.PairResult
	frames   chan []byte
	readErr  chan error
	log      zerolog.Logger
}

func (s *session) run(ctx context.Context) {
	defer s.leaveRoom()

	go s.readPump(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-s.readErr:
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if !errors.Is(err, context.Canceled) {
					s.log.Debug().Err(err).Msg("connection closed")
				}
			}
			return

		case data := <-s.frames:
			s.handleFrame(ctx, data)

		case res := <-s.pairCh:
			s.handlePairResult(ctx, res)

		case snap, ok := <-s.snapshotCh():
			if !ok {
				// Room shut down; nothing more will arrive for this match.
				s.snaps = nil
				continue
			}
			s.writeEvent(ctx, protocol.GameState{State: snap.State, Version: snap.Version})
		}
	}
}

// snapshotCh returns nil while no room is joined; a nil channel never fires.
func (s *session) snapshotCh() chan room.Snapshot {
	return s.snaps
}

func (s *session) readPump(ctx context.Context) {
	for {
		readCtx, cancel := context.WithTimeout(ctx, s.idle)
		_, data, err := s.conn.Read(readCtx)
		cancel()
		if err != nil {
			s.readErr <- err
			return
		}
		select {
		case s.frames <- data:
		case <-ctx.Done():
			return
		}
	}
}

func (s *session) handleFrame(ctx context.Context, data []byte) {
	intent, err := protocol.DecodeIntent(data)
	if err != nil {
		// Fail open: answer with an error frame and keep the session alive.
		s.log.Warn().Err(err).Msg("discarding malformed frame")
		s.writeEvent(ctx, protocol.UnknownError{Error: err.Error()})
		return
	}

	switch it := intent.(type) {
	case protocol.Create:
		if s.playerID == "" {
			reply := make(chan string, 1)
			s.hub.Inbox() <- hub.RegisterPlayer{Name: it.PlayerName, Reply: reply}
			s.playerID = <-reply
			s.log = s.log.With().Str("player_id", s.playerID).Logger()
		}
		// Idempotent: re-sending CREATE returns the same id.
		s.writeEvent(ctx, protocol.Creation{PlayerID: s.playerID})

	case protocol.Join:
		if s.playerID == "" || it.PlayerID != s.playerID {
			s.log.Warn().Str("join_player_id", it.PlayerID).Msg("join for foreign or unbound player id")
			return
		}
		s.hub.Inbox() <- hub.PairPlayer{PlayerID: s.playerID, Notify: s.pairCh}

	case protocol.Letter:
		if len(it.Letter) == 1 {
			s.forward(it.PlayerID, it.RoomID, engine.Command{
				Type: engine.CmdLetter, PlayerID: it.PlayerID, Letter: it.Letter[0],
			})
		}

	case protocol.Guess:
		s.forward(it.PlayerID, it.RoomID, engine.Command{Type: engine.CmdGuess, PlayerID: it.PlayerID})

	case protocol.Backspace:
		s.forward(it.PlayerID, it.RoomID, engine.Command{Type: engine.CmdBackspace, PlayerID: it.PlayerID})
	}
}

func (s *session) handlePairResult(ctx context.Context, res hub.PairResult) {
	if res.Queued {
		s.writeEvent(ctx, protocol.NotEnoughPlayers{Queued: true})
		return
	}
	if res.Room == nil || s.rm != nil {
		return
	}
	s.rm = res.Room
	s.snaps = make(chan room.Snapshot, 8)
	s.rm.Inbox() <- room.Join{PlayerID: s.playerID, Outbox: s.snaps}
}

// forward relays an in-match command to the room goroutine. Intents for a
// foreign player or an unjoined room are dropped.
func (s *session) forward(playerID, roomID string, cmd engine.Command) {
	if s.rm == nil || playerID != s.playerID {
		s.log.Warn().Str("room_id", roomID).Msg("dropping command outside a joined match")
		return
	}
	s.rm.Inbox() <- room.FromClient{PlayerID: playerID, Cmd: cmd}
}

func (s *session) writeEvent(ctx context.Context, ev protocol.Event) {
	frame, err := protocol.EncodeEvent(ev)
	if err != nil {
		s.log.Error().Err(err).Msg("encode event")
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := s.conn.Write(writeCtx, websocket.MessageText, frame); err != nil {
		s.log.Debug().Err(err).Msg("write failed")
	}
}

func (s *session) leaveRoom() {
	if s.rm != nil {
		s.rm.Inbox() <- room.Leave{PlayerID: s.playerID}
	}
}
