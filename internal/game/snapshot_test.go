package game

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSnapshotIsDeep(t *testing.T) {
	e := newTestEngine(t)
	e.State.Drones = []*Drone{NewDrone(Position{Row: 3, Col: 3}, NormalDrone, DirUp, 3, 96)}
	e.State.Bombs = []*Bomb{NewBomb(Position{Row: 5, Col: 5}, time.Second, false)}
	e.State.PowerUps = []*PowerUp{{Pos: Position{Row: 7, Col: 7}}}
	exit := Position{Row: 9, Col: 9}
	e.State.Exit = &exit

	snap := e.Snapshot()
	snap.Grid[1][1] = NewDestructibleTile(1, 1)
	snap.Hero.Hearts = 0
	snap.Drones[0].Dead = true
	snap.Bombs[0].Exploded = true
	snap.PowerUps[0].Picked = true
	snap.Exit.Row = 0

	if kindAt(e, 1, 1) != Walkable || e.State.Hero.Hearts != MaxHearts {
		t.Error("grid or hero aliased")
	}
	if e.State.Drones[0].Dead || e.State.Bombs[0].Exploded || e.State.PowerUps[0].Picked {
		t.Error("entity collections aliased")
	}
	if e.State.Exit.Row != 9 {
		t.Error("exit aliased")
	}
}

func TestStateString(t *testing.T) {
	e := newTestEngine(t)
	setCrate(e, 1, 5)
	e.State.Bombs = []*Bomb{NewBomb(Position{Row: 3, Col: 1}, time.Second, false)}
	e.State.Drones = []*Drone{NewDrone(Position{Row: 3, Col: 3}, NormalDrone, DirUp, 3, 96)}
	exit := Position{Row: 5, Col: 5}
	e.State.Exit = &exit

	lines := strings.Split(e.State.String(), "\n")

	if lines[0] != "level 1  score 0  hearts 3  crates 0/12" {
		t.Errorf("unexpected header %q", lines[0])
	}
	board := lines[1:]
	checks := []struct {
		row, col int
		want     byte
	}{
		{1, 1, 'H'},
		{1, 5, 'D'},
		{3, 1, '*'},
		{3, 3, 'X'},
		{5, 5, 'E'},
		{2, 2, 'I'},
		{0, 0, '1'},
	}
	for _, c := range checks {
		if got := board[c.row][c.col]; got != c.want {
			t.Errorf("(%d,%d): expected %q, got %q", c.row, c.col, c.want, got)
		}
	}
}

func TestStateJSON(t *testing.T) {
	e := NewEngine(DefaultConfig())

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back GameState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !back.Grid.Equal(e.State.Grid) {
		t.Error("grid did not survive encoding")
	}
	if back.HeroTile() != e.HeroTile() || len(back.Drones) != len(e.State.Drones) {
		t.Error("entities did not survive encoding")
	}
}

func TestSummaryInProgress(t *testing.T) {
	e := newTestEngine(t)
	if title, detail := e.State.Summary(); title != "" || detail != "" {
		t.Errorf("running game should have no summary, got %q %q", title, detail)
	}
}
