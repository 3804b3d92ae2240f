package discovery

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sort"
	"sync"
	"time"
)

const (
	// BroadcastPort is the UDP port used for session discovery.
	BroadcastPort = 9998
	// AnnounceInterval is how often a host advertises its session.
	AnnounceInterval = 1 * time.Second
	// SessionExpiry is how long a session stays visible after its last announcement.
	SessionExpiry = 4 * time.Second
)

// SessionInfo describes a running game that can be watched.
type SessionInfo struct {
	HostName       string `json:"host_name"`
	Level          int    `json:"level"`
	Score          int    `json:"score"`
	SpectatorCount int    `json:"spectator_count"`
	RelayAddr      string `json:"relay_addr"` // TCP host:port of the spectator relay
}

// --- Announcer ---

// Announcer periodically broadcasts session info over UDP.
type Announcer struct {
	info     SessionInfo
	port     int
	mu       sync.Mutex
	done     chan struct{}
	stopOnce sync.Once
}

// NewAnnouncer creates an announcer for the given session.
func NewAnnouncer(info SessionInfo) *Announcer {
	return &Announcer{
		info: info,
		port: BroadcastPort,
		done: make(chan struct{}),
	}
}

// Update refreshes the advertised progress.
func (a *Announcer) Update(level, score, spectators int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.info.Level = level
	a.info.Score = score
	a.info.SpectatorCount = spectators
}

// Info returns the currently advertised session.
func (a *Announcer) Info() SessionInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.info
}

// Start opens the broadcast socket and begins announcing.
func (a *Announcer) Start() error {
	// ListenPacket rather than DialUDP: a dialed socket cannot send to the
	// broadcast address on Linux without SO_BROADCAST.
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return fmt.Errorf("open announce socket: %w", err)
	}
	go a.announceLoop(conn)
	return nil
}

// Stop stops announcing. Safe to call more than once.
func (a *Announcer) Stop() {
	a.stopOnce.Do(func() { close(a.done) })
}

func (a *Announcer) announceLoop(conn net.PacketConn) {
	defer conn.Close()

	ticker := time.NewTicker(AnnounceInterval)
	defer ticker.Stop()

	a.announce(conn)
	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			a.announce(conn)
		}
	}
}

func (a *Announcer) announce(conn net.PacketConn) {
	data, err := json.Marshal(a.Info())
	if err != nil {
		log.Printf("[DISCOVERY] Failed to encode announcement: %v", err)
		return
	}

	// Loopback first: global broadcast is often filtered for same-host peers.
	conn.WriteTo(data, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: a.port})
	conn.WriteTo(data, &net.UDPAddr{IP: net.IPv4bcast, Port: a.port})
	for _, ip := range interfaceBroadcasts() {
		conn.WriteTo(data, &net.UDPAddr{IP: ip, Port: a.port})
	}
}

// interfaceBroadcasts returns the directed broadcast address of every up,
// broadcast-capable IPv4 interface.
func interfaceBroadcasts() []net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}

	var out []net.IP
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagBroadcast == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok || ipnet.IP.To4() == nil {
				continue
			}
			out = append(out, directedBroadcast(ipnet))
		}
	}
	return out
}

// directedBroadcast computes IP | ^mask.
func directedBroadcast(n *net.IPNet) net.IP {
	ip4 := n.IP.To4()
	mask := n.Mask
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	b := make(net.IP, net.IPv4len)
	for i := range b {
		b[i] = ip4[i] | ^mask[i]
	}
	return b
}

// --- Browser ---

// seenSession holds a session and when it was last announced.
type seenSession struct {
	Info     SessionInfo
	LastSeen time.Time
}

// Browser collects session announcements from the LAN.
type Browser struct {
	sessions map[string]*seenSession // keyed by RelayAddr
	mu       sync.RWMutex
	conn     *net.UDPConn
	done     chan struct{}
	stopOnce sync.Once
}

// NewBrowser creates a session browser.
func NewBrowser() *Browser {
	return &Browser{
		sessions: make(map[string]*seenSession),
		done:     make(chan struct{}),
	}
}

// Start begins listening for announcements.
func (b *Browser) Start() error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: BroadcastPort})
	if err != nil {
		return fmt.Errorf("listen UDP on port %d: %w (is another instance browsing?)", BroadcastPort, err)
	}
	b.conn = conn

	go b.listenLoop()
	go b.expireLoop()
	return nil
}

// Stop stops the browser.
func (b *Browser) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		if b.conn != nil {
			b.conn.Close()
		}
	})
}

// Sessions returns the visible sessions ordered by relay address.
func (b *Browser) Sessions() []SessionInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]SessionInfo, 0, len(b.sessions))
	for _, s := range b.sessions {
		out = append(out, s.Info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelayAddr < out[j].RelayAddr })
	return out
}

// observe records one announcement datagram. Malformed packets and
// announcements without a relay address are ignored.
func (b *Browser) observe(data []byte, now time.Time) {
	var info SessionInfo
	if err := json.Unmarshal(data, &info); err != nil || info.RelayAddr == "" {
		return
	}
	b.mu.Lock()
	b.sessions[info.RelayAddr] = &seenSession{Info: info, LastSeen: now}
	b.mu.Unlock()
}

// expire drops sessions not announced within SessionExpiry of now.
func (b *Browser) expire(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for addr, s := range b.sessions {
		if now.Sub(s.LastSeen) > SessionExpiry {
			delete(b.sessions, addr)
		}
	}
}

func (b *Browser) listenLoop() {
	buf := make([]byte, 4096)
	for {
		select {
		case <-b.done:
			return
		default:
		}

		b.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, _, err := b.conn.ReadFromUDP(buf)
		if err != nil {
			continue
		}
		b.observe(buf[:n], time.Now())
	}
}

func (b *Browser) expireLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case now := <-ticker.C:
			b.expire(now)
		}
	}
}
