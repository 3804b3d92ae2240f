package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-boomberman/internal/game"
	"github.com/amalg/go-boomberman/internal/network"
	"github.com/amalg/go-boomberman/internal/ui"
)

func main() {
	level := flag.Int("level", 1, "Starting level")
	tickRate := flag.Int("tick-rate", 60, "Simulation ticks per second")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	serve := flag.Bool("serve", false, "Relay the game to spectators on the LAN")
	port := flag.Int("port", 9999, "Spectator relay port")
	name := flag.String("name", "Host", "Name announced to spectators")
	flag.Parse()

	// Redirect log output before anything logs: stderr output corrupts
	// Bubbletea's terminal rendering.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	config := game.DefaultConfig()
	config.StartLevel = min(max(*level, 1), len(config.Levels))
	if *tickRate > 0 {
		config.TickRate = *tickRate
	}

	driver := game.NewDriver(game.NewEngine(config))

	var host *network.Host
	if *serve {
		var err error
		host, err = network.StartHost(*port, *name, config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start relay: %v\n", err)
			os.Exit(1)
		}
		driver.OnTick(host.Publish)
	}

	shutdown := func() {
		driver.Stop()
		if host != nil {
			host.Stop()
		}
	}

	// Handle OS signals for clean shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		shutdown()
		os.Exit(0)
	}()

	source := ui.NewLocalSource(driver)
	go driver.Run()

	p := tea.NewProgram(ui.NewModel(source), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		shutdown()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	shutdown()
}
