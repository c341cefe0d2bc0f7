package client

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wordduel/wordduel/internal/protocol"
)

// Client wires the session, store and gate to one websocket connection.
// All rendering reads go through the store; the client never applies a
// guess locally, it only mirrors what the authority broadcasts.
type Client struct {
	url     string
	session *Session
	store   *Store
	gate    *Gate
	conn    *websocket.Conn
	updates chan struct{}
	log     zerolog.Logger
}

// New validates the player name up front and assembles the client. The
// session is constructed here and injected into the gate; nothing reaches
// for global state.
func New(serverURL, playerName string) (*Client, error) {
	session := NewSession()
	if err := session.DeclareName(playerName); err != nil {
		return nil, err
	}
	store := NewStore()
	return &Client{
		url:     serverURL,
		session: session,
		store:   store,
		gate:    NewGate(session, store),
		updates: make(chan struct{}, 1),
		log:     log.With().Str("component", "client").Logger(),
	}, nil
}

func (c *Client) Session() *Session { return c.session }
func (c *Client) Store() *Store     { return c.store }

// Updates signals that the mirrored state changed and a re-render is due.
// Notifications coalesce; consumers read the store for the actual state.
func (c *Client) Updates() <-chan struct{} { return c.updates }

// Run dials the server, declares the player and then pumps inbound frames
// and key presses until ctx is canceled or the connection drops. A dropped
// connection is reported as an error so the caller can show a disconnected
// state instead of silently stalling.
func (c *Client) Run(ctx context.Context, keys <-chan string) error {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.url, err)
	}
	c.conn = conn
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := c.sendIntent(ctx, protocol.Create{PlayerName: c.session.Name()}); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readPump(ctx) })
	g.Go(func() error { return c.inputPump(ctx, keys) })
	return g.Wait()
}

func (c *Client) readPump(ctx context.Context) error {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("connection lost: %w", err)
		}
		c.handleFrame(ctx, data)
	}
}

// handleFrame mirrors one inbound frame. Unknown or malformed frames are
// logged and dropped; the session must tolerate protocol skew.
func (c *Client) handleFrame(ctx context.Context, data []byte) {
	event, err := protocol.DecodeEvent(data)
	if err != nil {
		c.log.Warn().Err(err).Msg("discarding inbound frame")
		return
	}

	switch ev := event.(type) {
	case protocol.Creation:
		c.session.BindPlayer(ev.PlayerID)
		c.log.Info().Str("player_id", ev.PlayerID).Msg("registered")
		// Immediately ask for a match; the hub is idempotent per player id.
		if err := c.sendIntent(ctx, protocol.Join{PlayerID: ev.PlayerID}); err != nil {
			c.log.Warn().Err(err).Msg("match request failed")
		}
		c.notify()

	case protocol.GameState:
		if !c.store.Replace(ev.Version, ev.State) {
			c.log.Warn().Int("version", ev.Version).Msg("ignoring stale snapshot")
			return
		}
		c.session.MatchAssigned(ev.State.RoomID)
		if ev.State.GameOver {
			c.session.GameOverReceived()
		}
		c.notify()

	case protocol.NotEnoughPlayers:
		c.log.Info().Bool("queued", ev.Queued).Msg("waiting for an opponent")
		c.notify()

	case protocol.UnknownError:
		c.log.Warn().Str("error", ev.Error).Msg("server reported an error")
	}
}

func (c *Client) inputPump(ctx context.Context, keys <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			intent, send := c.gate.Press(key)
			if !send {
				continue
			}
			if err := c.sendIntent(ctx, intent); err != nil {
				return err
			}
		}
	}
}

func (c *Client) sendIntent(ctx context.Context, it protocol.Intent) error {
	frame, err := protocol.EncodeIntent(it)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageText, frame)
}

func (c *Client) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
