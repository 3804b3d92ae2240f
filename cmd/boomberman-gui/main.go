package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/amalg/go-boomberman/internal/game"
	"github.com/amalg/go-boomberman/internal/gfx"
	"github.com/amalg/go-boomberman/internal/network"
)

func main() {
	level := flag.Int("level", 1, "Starting level")
	tickRate := flag.Int("tick-rate", 60, "Simulation ticks per second")
	cell := flag.Int("cell", 48, "Screen pixels per tile")
	serve := flag.Bool("serve", false, "Relay the game to spectators on the LAN")
	port := flag.Int("port", 9999, "Spectator relay port")
	name := flag.String("name", "Host", "Name announced to spectators")
	flag.Parse()

	config := game.DefaultConfig()
	config.StartLevel = min(max(*level, 1), len(config.Levels))
	if *tickRate > 0 {
		config.TickRate = *tickRate
	}

	g := gfx.NewGame(game.NewEngine(config), *cell)

	if *serve {
		host, err := network.StartHost(*port, *name, config)
		if err != nil {
			log.Fatalf("Failed to start relay: %v", err)
		}
		defer host.Stop()
		g.OnTick(host.Publish)
	}

	w, h := g.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Boomberman")
	ebiten.SetTPS(config.Ticks())

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
