package network

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/amalg/go-boomberman/internal/game"
)

// dialTimeout bounds connecting and the hello/welcome exchange.
const dialTimeout = 5 * time.Second

// Client is a spectator connection to a relay.
type Client struct {
	conn      net.Conn
	host      string
	config    game.GameConfig
	stateCh   chan game.GameState
	errMu     sync.Mutex
	err       error
	closeOnce sync.Once
}

// Dial connects to a relay and completes the handshake.
func Dial(addr, name string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	c, err := handshake(conn, name)
	if err != nil {
		conn.Close()
		return nil, err
	}

	go c.receiveLoop()
	return c, nil
}

func handshake(conn net.Conn, name string) (*Client, error) {
	if err := conn.SetDeadline(time.Now().Add(dialTimeout)); err != nil {
		return nil, fmt.Errorf("set handshake deadline: %w", err)
	}

	if err := Encode(conn, MsgHello, HelloMsg{Name: name}); err != nil {
		return nil, fmt.Errorf("send hello: %w", err)
	}

	env, err := Decode(conn)
	if err != nil {
		return nil, fmt.Errorf("read welcome: %w", err)
	}

	switch env.Type {
	case MsgWelcome:
	case MsgError:
		return nil, relayError(env)
	default:
		return nil, fmt.Errorf("expected welcome, got %s", env.Type)
	}

	var welcome WelcomeMsg
	if err := DecodePayload(env, &welcome); err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		return nil, fmt.Errorf("clear handshake deadline: %w", err)
	}

	return &Client{
		conn:    conn,
		host:    welcome.Host,
		config:  welcome.Config,
		stateCh: make(chan game.GameState, 1),
	}, nil
}

// Host returns the name the relay announced.
func (c *Client) Host() string {
	return c.host
}

// Config returns the rules the host game runs with.
func (c *Client) Config() game.GameConfig {
	return c.config
}

// States yields snapshots, newest first; stale ones are dropped. The channel
// closes when the connection ends.
func (c *Client) States() <-chan game.GameState {
	return c.stateCh
}

// Press is a no-op: spectators cannot influence the game.
func (c *Client) Press(game.Action) {}

// Err returns why the stream ended, if it has.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Close disconnects from the relay.
func (c *Client) Close() {
	c.closeOnce.Do(func() { c.conn.Close() })
}

func (c *Client) fail(err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
}

func (c *Client) receiveLoop() {
	defer close(c.stateCh)

	for {
		env, err := Decode(c.conn)
		if err != nil {
			c.fail(err)
			return
		}

		switch env.Type {
		case MsgState:
			var sm StateMsg
			if err := DecodePayload(env, &sm); err != nil {
				c.fail(err)
				continue
			}
			select {
			case c.stateCh <- sm.State:
			default:
				select {
				case <-c.stateCh:
				default:
				}
				c.stateCh <- sm.State
			}
		case MsgError:
			c.fail(relayError(env))
		}
	}
}

// relayError converts an error frame into an error, even if its payload is
// unreadable.
func relayError(env *Envelope) error {
	var em ErrorMsg
	if err := DecodePayload(env, &em); err != nil {
		return fmt.Errorf("relay error: %w", err)
	}
	return fmt.Errorf("relay error: %s", em.Message)
}
