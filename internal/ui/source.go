package ui

import (
	"github.com/amalg/go-boomberman/internal/game"
)

// Source feeds the terminal model with snapshots and accepts player intents.
// A local game and a relay spectator both satisfy it.
type Source interface {
	States() <-chan game.GameState
	Press(a game.Action)
}

// LocalSource adapts a Driver running in this process.
type LocalSource struct {
	driver *game.Driver
	states chan game.GameState
}

// NewLocalSource subscribes to the driver's ticks. The channel only ever holds
// the newest snapshot; older ones are dropped if the renderer falls behind.
func NewLocalSource(d *game.Driver) *LocalSource {
	ls := &LocalSource{
		driver: d,
		states: make(chan game.GameState, 1),
	}
	ls.push(d.Snapshot())
	d.OnTick(ls.push)
	return ls
}

// States returns the snapshot stream.
func (ls *LocalSource) States() <-chan game.GameState {
	return ls.states
}

// Press forwards an intent to the driver's input latch.
func (ls *LocalSource) Press(a game.Action) {
	ls.driver.Press(a)
}

func (ls *LocalSource) push(s game.GameState) {
	select {
	case ls.states <- s:
	default:
		select {
		case <-ls.states:
		default:
		}
		select {
		case ls.states <- s:
		default:
		}
	}
}
