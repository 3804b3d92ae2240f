package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-boomberman/internal/discovery"
	"github.com/amalg/go-boomberman/internal/network"
	"github.com/amalg/go-boomberman/internal/ui"
)

func main() {
	addr := flag.String("addr", "", "Relay address (e.g., 192.168.1.5:9999)")
	browse := flag.Bool("browse", false, "Find a relay on the LAN instead of using -addr")
	wait := flag.Duration("wait", 3*time.Second, "How long to browse before choosing")
	name := flag.String("name", "Spectator", "Your name, shown in the host's log")
	flag.Parse()

	log.SetOutput(io.Discard)

	if *browse {
		found, err := browseOnce(*wait)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Browse failed: %v\n", err)
			os.Exit(1)
		}
		*addr = found
	}

	if *addr == "" {
		fmt.Fprintln(os.Stderr, "Usage: spectator --addr <host:port> | --browse [--name <name>]")
		fmt.Fprintln(os.Stderr, "  Example: spectator --addr 192.168.1.5:9999 --name Alice")
		os.Exit(1)
	}

	fmt.Printf("Connecting to %s as %s...\n", *addr, *name)

	client, err := network.Dial(*addr, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Printf("Watching %s\n", client.Host())
	time.Sleep(500 * time.Millisecond)

	p := tea.NewProgram(ui.NewSpectatorModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		client.Close()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// browseOnce listens for announcements and returns the first session seen.
func browseOnce(wait time.Duration) (string, error) {
	b := discovery.NewBrowser()
	if err := b.Start(); err != nil {
		return "", err
	}
	defer b.Stop()

	fmt.Printf("Looking for games for %s...\n", wait)
	time.Sleep(wait)

	sessions := b.Sessions()
	if len(sessions) == 0 {
		return "", fmt.Errorf("no games found on the LAN")
	}
	for _, s := range sessions {
		fmt.Printf("  %-16s level %d  score %-6d spectators %d  %s\n",
			s.HostName, s.Level, s.Score, s.SpectatorCount, s.RelayAddr)
	}
	return sessions[0].RelayAddr, nil
}
