package hub

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/wordduel/internal/engine"
	"github.com/wordduel/wordduel/internal/room"
	"github.com/wordduel/wordduel/internal/words"
)

type HubMsg interface{ isHubMsg() }

// RegisterPlayer allocates a player id for a declared name.
type RegisterPlayer struct {
	Name  string
	Reply chan string
}

// PairResult is delivered on a PairPlayer notify channel: first {Queued:true}
// if the player had to wait, then {Room: ...} once an opponent shows up.
type PairResult struct {
	Queued bool
	Room   *room.Room
}

// PairPlayer asks for a match. Idempotent per player id: repeated requests
// while queued or already matched never double-enroll the player.
type PairPlayer struct {
	PlayerID string
	Notify   chan PairResult
}

type GetRoom struct {
	RoomID string
	Reply  chan *room.Room
}

type RemoveRoom struct{ RoomID string }

type ShutdownHub struct{}

func (RegisterPlayer) isHubMsg() {}
func (PairPlayer) isHubMsg()     {}
func (GetRoom) isHubMsg()        {}
func (RemoveRoom) isHubMsg()     {}
func (ShutdownHub) isHubMsg()    {}

type waiter struct {
	playerID string
	notify   chan PairResult
}

// Hub owns the player registry, the matchmaking queue and the room table.
// All access is serialized on its goroutine.
type Hub struct {
	inbox      chan HubMsg
	names      map[string]string
	queue      []waiter
	rooms      map[string]*room.Room
	playerRoom map[string]string
	ctx        context.Context
	cancel     context.CancelFunc
	log        zerolog.Logger
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:      make(chan HubMsg, 64),
		names:      make(map[string]string),
		rooms:      make(map[string]*room.Room),
		playerRoom: make(map[string]string),
		ctx:        ctx,
		cancel:     cancel,
		log:        log.With().Str("component", "hub").Logger(),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case RegisterPlayer:
				id := newID()
				h.names[id] = msg.Name
				h.log.Info().Str("player_id", id).Str("name", msg.Name).Msg("player registered")
				msg.Reply <- id

			case PairPlayer:
				h.pair(msg)

			case GetRoom:
				msg.Reply <- h.rooms[msg.RoomID]

			case RemoveRoom:
				delete(h.rooms, msg.RoomID)
				for pid, rid := range h.playerRoom {
					if rid == msg.RoomID {
						delete(h.playerRoom, pid)
					}
				}
				h.log.Info().Str("room_id", msg.RoomID).Msg("room removed")

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) pair(msg PairPlayer) {
	if _, ok := h.names[msg.PlayerID]; !ok {
		h.log.Warn().Str("player_id", msg.PlayerID).Msg("pair request for unregistered player")
		return
	}

	// Already matched: hand back the existing room.
	if roomID, ok := h.playerRoom[msg.PlayerID]; ok {
		h.notify(msg.Notify, PairResult{Room: h.rooms[roomID]})
		return
	}

	// Already queued: confirm without enqueueing twice.
	for _, w := range h.queue {
		if w.playerID == msg.PlayerID {
			h.notify(msg.Notify, PairResult{Queued: true})
			return
		}
	}

	if len(h.queue) == 0 {
		h.queue = append(h.queue, waiter{playerID: msg.PlayerID, notify: msg.Notify})
		h.notify(msg.Notify, PairResult{Queued: true})
		return
	}

	other := h.queue[len(h.queue)-1]
	h.queue = h.queue[:len(h.queue)-1]

	roomID := newID()
	ids := []string{other.playerID, msg.PlayerID}
	names := []string{h.names[other.playerID], h.names[msg.PlayerID]}
	secrets := []string{words.RandomSecret(), words.RandomSecret()}
	state := engine.NewState(roomID, ids, names, secrets)

	rm := room.NewRoom(h.ctx, state, func() {
		h.inbox <- RemoveRoom{RoomID: roomID}
	})
	h.rooms[roomID] = rm
	h.playerRoom[other.playerID] = roomID
	h.playerRoom[msg.PlayerID] = roomID
	h.log.Info().Str("room_id", roomID).Strs("players", ids).Msg("match created")

	h.notify(other.notify, PairResult{Room: rm})
	h.notify(msg.Notify, PairResult{Room: rm})
}

// notify must never block the hub goroutine; callers hold buffered channels
// and a dropped confirmation only delays the client until its next request.
func (h *Hub) notify(ch chan PairResult, res PairResult) {
	select {
	case ch <- res:
	default:
		h.log.Warn().Msg("pair notification dropped, channel full")
	}
}

func (h *Hub) shutdown() {
	for _, rm := range h.rooms {
		rm.Inbox() <- room.Shutdown{}
	}
	clear(h.rooms)
	h.cancel()
}

func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
