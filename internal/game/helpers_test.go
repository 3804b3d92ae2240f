package game

import (
	"io"
	"log"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// emptyConfig is the default config with crate-free, drone-free levels so
// tests start from the bare template.
func emptyConfig() GameConfig {
	config := DefaultConfig()
	config.Levels = []LevelSpec{
		{RequiredCrates: 12},
		{RequiredCrates: 12},
	}
	return config
}

// newTestEngine returns an engine on an empty level with the spawn grace
// window cleared.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(emptyConfig())
	e.State.Hero.InvulnerableUntil = 0
	return e
}

func setCrate(e *Engine, row, col int) {
	e.State.Grid[row][col] = NewDestructibleTile(row, col)
}

func moveHeroTo(e *Engine, row, col int) {
	e.State.Hero.CenterOn(Position{Row: row, Col: col}, e.Config.TileSize)
}

func kindAt(e *Engine, row, col int) TileKind {
	return e.State.Grid[row][col].Kind
}
