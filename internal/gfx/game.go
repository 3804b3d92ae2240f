// Package gfx is the windowed front end. Ebiten calls Update at the engine's
// tick rate, so the Game doubles as the fixed-step driver.
package gfx

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/amalg/go-boomberman/internal/game"
)

// hudHeight is the status strip below the board, in screen pixels.
const hudHeight = 56

// statusDuration is how long local command feedback stays on screen.
const statusDuration = 2 * time.Second

// Game adapts an Engine to ebiten.Game.
type Game struct {
	engine *game.Engine
	cell   int // Screen pixels per tile
	dt     time.Duration

	subscribers []func(game.GameState)

	status      string
	statusUntil time.Time
}

// NewGame creates a windowed game drawing each tile cell pixels wide.
func NewGame(engine *game.Engine, cell int) *Game {
	if cell <= 0 {
		cell = 40
	}
	return &Game{
		engine: engine,
		cell:   cell,
		dt:     engine.Config.TickInterval(),
	}
}

// OnTick registers a callback invoked after every tick with a copy of the state.
func (g *Game) OnTick(fn func(game.GameState)) {
	g.subscribers = append(g.subscribers, fn)
}

// Update reads the keyboard and advances the simulation one tick.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reset()
		log.Printf("[GAME] Restarted")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyBoard()
	}

	g.engine.Update(g.dt, readInput())

	if len(g.subscribers) > 0 {
		state := g.engine.Snapshot()
		for _, fn := range g.subscribers {
			fn(state)
		}
	}
	return nil
}

// readInput builds the tick's intent snapshot. Movement is level-triggered
// from held keys; place and detonate fire once per physical press.
func readInput() game.Input {
	return game.Input{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyD),

		Place:    inpututil.IsKeyJustPressed(ebiten.KeyH) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Detonate: inpututil.IsKeyJustPressed(ebiten.KeyJ),

		BombUp:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		BombDown:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		BombLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		BombRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
}

func (g *Game) copyBoard() {
	if err := clipboard.WriteAll(g.engine.State.String()); err != nil {
		g.setStatus(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	g.setStatus("Board copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(statusDuration)
}

// Layout sizes the logical screen to the board plus the HUD strip.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

// ScreenSize returns the window size that fits the current board.
func (g *Game) ScreenSize() (int, int) {
	grid := g.engine.State.Grid
	return grid.Cols() * g.cell, grid.Rows()*g.cell + hudHeight
}
