package network

import (
	"fmt"
	"net"
	"strconv"

	"github.com/amalg/go-boomberman/internal/discovery"
	"github.com/amalg/go-boomberman/internal/game"
)

// Host bundles the spectator relay with its LAN announcement.
type Host struct {
	Server    *Server
	announcer *discovery.Announcer
}

// StartHost starts a relay on port and announces it under name.
func StartHost(port int, name string, config game.GameConfig) (*Host, error) {
	server := NewServer(net.JoinHostPort("0.0.0.0", strconv.Itoa(port)), name, config)
	if err := server.Start(); err != nil {
		return nil, err
	}

	announcer := discovery.NewAnnouncer(discovery.SessionInfo{
		HostName:  name,
		RelayAddr: advertisedAddr(server.Addr()),
	})
	if err := announcer.Start(); err != nil {
		server.Stop()
		return nil, fmt.Errorf("announce: %w", err)
	}

	return &Host{Server: server, announcer: announcer}, nil
}

// Publish relays a snapshot and refreshes the announcement. It has the
// signature of a tick callback.
func (h *Host) Publish(state game.GameState) {
	h.Server.Broadcast(state)
	h.announcer.Update(state.Level, state.Score, h.Server.SpectatorCount())
}

// Stop shuts down the announcement and the relay.
func (h *Host) Stop() {
	h.announcer.Stop()
	h.Server.Stop()
}

// advertisedAddr replaces a wildcard listen host with the first non-loopback
// IPv4 address so LAN peers can dial it.
func advertisedAddr(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if ip := net.ParseIP(host); ip != nil && !ip.IsUnspecified() {
		return listen
	}

	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return net.JoinHostPort(ipnet.IP.String(), port)
			}
		}
	}
	return net.JoinHostPort("127.0.0.1", port)
}
