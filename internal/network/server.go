package network

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/amalg/go-boomberman/internal/game"
)

// handshakeTimeout bounds how long a new connection may take to say hello.
const handshakeTimeout = 5 * time.Second

// Server relays snapshots of a locally played game to read-only spectators.
type Server struct {
	addr     string
	host     string
	config   game.GameConfig
	listener net.Listener

	mu         sync.RWMutex
	spectators map[int]*spectatorConn
	nextID     int
	last       *game.GameState // Sent to spectators as soon as they join

	done     chan struct{}
	stopOnce sync.Once
}

// spectatorConn owns one connection and its outgoing mailbox. The mailbox
// holds at most one pending snapshot so a slow spectator never stalls the
// game loop.
type spectatorConn struct {
	id     int
	name   string
	conn   net.Conn
	outbox chan game.GameState
}

// NewServer creates a relay for the game hosted under the given name.
func NewServer(addr, host string, config game.GameConfig) *Server {
	return &Server{
		addr:       addr,
		host:       host,
		config:     config,
		spectators: make(map[int]*spectatorConn),
		done:       make(chan struct{}),
	}
}

// Start begins accepting spectators.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	log.Printf("[RELAY] Listening on %s", ln.Addr())
	printLocalIPs(ln.Addr().String())

	go s.acceptLoop()
	return nil
}

// Addr returns the bound listen address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// SpectatorCount returns the number of connected spectators.
func (s *Server) SpectatorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spectators)
}

// Stop closes the listener and every spectator connection.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.mu.Lock()
		for id, sc := range s.spectators {
			sc.conn.Close()
			close(sc.outbox)
			delete(s.spectators, id)
		}
		s.mu.Unlock()
	})
}

// Broadcast queues a snapshot for every spectator. It has the signature of a
// driver tick callback and never blocks on the network.
func (s *Server) Broadcast(state game.GameState) {
	s.mu.Lock()
	s.last = &state
	for _, sc := range s.spectators {
		sc.offer(state)
	}
	s.mu.Unlock()
}

func (sc *spectatorConn) offer(state game.GameState) {
	select {
	case sc.outbox <- state:
	default:
		// Drop the stale snapshot; the newest one matters most
		select {
		case <-sc.outbox:
		default:
		}
		select {
		case sc.outbox <- state:
		default:
		}
	}
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Printf("[RELAY] Accept error: %v", err)
				continue
			}
		}
		go s.handleSpectator(conn)
	}
}

func (s *Server) handleSpectator(conn net.Conn) {
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		log.Printf("[RELAY] Failed to set hello deadline: %v", err)
		return
	}
	env, err := Decode(conn)
	if err != nil {
		log.Printf("[RELAY] Failed to read hello: %v", err)
		return
	}
	if env.Type != MsgHello {
		log.Printf("[RELAY] Expected hello, got %s", env.Type)
		reject(conn, "expected hello message")
		return
	}
	var hello HelloMsg
	if err := DecodePayload(env, &hello); err != nil {
		log.Printf("[RELAY] Bad hello: %v", err)
		reject(conn, "malformed hello")
		return
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		log.Printf("[RELAY] Failed to clear hello deadline: %v", err)
		return
	}

	if err := Encode(conn, MsgWelcome, WelcomeMsg{Host: s.host, Config: s.config}); err != nil {
		log.Printf("[RELAY] Failed to send welcome: %v", err)
		return
	}

	sc := s.register(conn, hello.Name)
	defer s.unregister(sc)
	log.Printf("[RELAY] Spectator joined: %s (#%d)", sc.name, sc.id)

	go s.writeLoop(sc)

	// Spectators are read-only; anything they send is logged and dropped.
	for {
		env, err := Decode(conn)
		if err != nil {
			log.Printf("[RELAY] Spectator %s disconnected: %v", sc.name, err)
			return
		}
		log.Printf("[RELAY] Ignoring %s message from %s", env.Type, sc.name)
	}
}

// reject tells a peer why it is being dropped.
func reject(conn net.Conn, reason string) {
	if err := Encode(conn, MsgError, ErrorMsg{Message: reason}); err != nil {
		log.Printf("[RELAY] Failed to send error %q to %s: %v", reason, conn.RemoteAddr(), err)
	}
}

func (s *Server) register(conn net.Conn, name string) *spectatorConn {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	if name == "" {
		name = fmt.Sprintf("spectator-%d", s.nextID)
	}
	sc := &spectatorConn{
		id:     s.nextID,
		name:   name,
		conn:   conn,
		outbox: make(chan game.GameState, 1),
	}
	if s.last != nil {
		sc.outbox <- *s.last
	}
	s.spectators[sc.id] = sc
	return sc
}

func (s *Server) unregister(sc *spectatorConn) {
	s.mu.Lock()
	if _, ok := s.spectators[sc.id]; ok {
		delete(s.spectators, sc.id)
		close(sc.outbox)
	}
	s.mu.Unlock()
	log.Printf("[RELAY] Spectator removed: %s", sc.name)
}

// writeLoop drains the mailbox until it is closed or the peer goes away.
func (s *Server) writeLoop(sc *spectatorConn) {
	for state := range sc.outbox {
		if err := Encode(sc.conn, MsgState, StateMsg{State: state}); err != nil {
			log.Printf("[RELAY] Failed to send state to %s: %v", sc.name, err)
			sc.conn.Close()
			return
		}
	}
}

// printLocalIPs logs the addresses spectators on the LAN can dial.
func printLocalIPs(addr string) {
	_, port, _ := net.SplitHostPort(addr)

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return
	}

	log.Println("[RELAY] Spectators can connect using:")
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				log.Printf("[RELAY]   %s:%s", ipnet.IP.String(), port)
			}
		}
	}
}
