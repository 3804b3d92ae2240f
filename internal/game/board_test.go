package game

import (
	"testing"
)

func TestParseTemplate(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())

	if grid.Rows() != 11 || grid.Cols() != 17 {
		t.Fatalf("expected 11x17 grid, got %dx%d", grid.Rows(), grid.Cols())
	}

	// Border is barrier with corner pieces
	for c := 0; c < grid.Cols(); c++ {
		if grid[0][c].Kind != Barrier || grid[grid.Rows()-1][c].Kind != Barrier {
			t.Errorf("border at column %d should be Barrier", c)
		}
	}
	if grid[0][0].Symbol() != '1' || grid[0][16].Symbol() != '2' ||
		grid[10][0].Symbol() != '3' || grid[10][16].Symbol() != '4' {
		t.Error("corner pieces should be 1,2,3,4")
	}

	// Pillars at (even,even) interior positions
	for r := 2; r < grid.Rows()-1; r += 2 {
		for c := 2; c < grid.Cols()-1; c += 2 {
			if grid[r][c].Kind != Indestructible {
				t.Errorf("pillar at (%d,%d) should be Indestructible, got %s", r, c, grid[r][c].Kind)
			}
		}
	}

	if grid[1][1].Kind != Walkable || !grid[1][1].IsWalkable() {
		t.Error("spawn tile should be walkable floor")
	}
}

func TestParseTemplateMalformed(t *testing.T) {
	grid := ParseTemplate([]string{"1TT2", "L?", "3BB4"})

	if grid.Cols() != 4 {
		t.Fatalf("short rows should be padded to width 4, got %d", grid.Cols())
	}
	if grid[1][1].Kind != Walkable {
		t.Errorf("unknown symbol should become floor, got %s", grid[1][1].Kind)
	}
	if grid[1][3].Kind != Walkable {
		t.Errorf("padding should become floor, got %s", grid[1][3].Kind)
	}
}

func TestGenerateLevelDeterministic(t *testing.T) {
	config := DefaultConfig()

	for level := 1; level <= len(config.Levels); level++ {
		a := GenerateLevel(level, config)
		b := GenerateLevel(level, config)

		if !a.Grid.Equal(b.Grid) {
			t.Errorf("level %d: two generations produced different grids", level)
		}
		if len(a.Drones) != len(b.Drones) {
			t.Fatalf("level %d: drone counts differ (%d vs %d)", level, len(a.Drones), len(b.Drones))
		}
		for i := range a.Drones {
			if a.Drones[i] != b.Drones[i] {
				t.Errorf("level %d: drone %d differs: %+v vs %+v", level, i, a.Drones[i], b.Drones[i])
			}
		}
	}
}

func TestGenerateLevelsDiffer(t *testing.T) {
	config := DefaultConfig()
	if GenerateLevel(1, config).Grid.Equal(GenerateLevel(2, config).Grid) {
		t.Error("levels 1 and 2 should not share a layout")
	}
}

func TestGenerateLevelCrateCount(t *testing.T) {
	config := DefaultConfig()

	for level, spec := range config.Levels {
		layout := GenerateLevel(level+1, config)
		crates := layout.Grid.Count(Destructible)
		if crates < spec.MinCrates || crates > spec.MaxCrates {
			t.Errorf("level %d: %d crates, want %d-%d", level+1, crates, spec.MinCrates, spec.MaxCrates)
		}
		if crates < spec.RequiredCrates {
			t.Errorf("level %d: %d crates cannot reach threshold %d", level+1, crates, spec.RequiredCrates)
		}
	}
}

func TestGenerateLevelExclusionZones(t *testing.T) {
	config := DefaultConfig()
	forbidden := forbiddenCells(config.Levels)

	for level := 1; level <= len(config.Levels); level++ {
		grid := GenerateLevel(level, config).Grid

		// Hero spawn and its cardinal neighbours stay clear
		for r := range grid {
			for c := range grid[r] {
				p := Position{Row: r, Col: c}
				if p.Manhattan(config.HeroSpawn) <= 1 && grid[r][c].Kind == Destructible {
					t.Errorf("level %d: crate at (%d,%d) inside hero spawn zone", level, r, c)
				}
			}
		}

		for p := range forbidden {
			if grid[p.Row][p.Col].Kind != Walkable {
				t.Errorf("level %d: drone spawn (%d,%d) should be floor, got %s", level, p.Row, p.Col, grid[p.Row][p.Col].Kind)
			}
		}

		// Pillars and border survive generation
		if grid[2][2].Kind != Indestructible || grid[0][5].Kind != Barrier {
			t.Errorf("level %d: template structure was overwritten", level)
		}
	}
}

func TestGenerateLevelClampsCrateCount(t *testing.T) {
	config := DefaultConfig()
	config.Levels = []LevelSpec{{MinCrates: 1000, MaxCrates: 1000}}

	grid := GenerateLevel(1, config).Grid
	// 9x15 interior, minus 28 pillars, minus the 3-tile spawn zone
	want := 9*15 - 28 - 3
	if got := grid.Count(Destructible); got != want {
		t.Errorf("expected every candidate (%d) to become a crate, got %d", want, got)
	}
}

func TestNearestDroneSpawn(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	spawn := Position{Row: 1, Col: 1}

	// Intended spawn already valid
	if p, ok := nearestDroneSpawn(grid, Position{Row: 3, Col: 3}, spawn); !ok || p != (Position{Row: 3, Col: 3}) {
		t.Errorf("valid spawn should be kept, got %+v ok=%v", p, ok)
	}

	// Pillar at (2,2): ring 1 is (1,2) near hero, (2,1) near hero, (2,3) valid
	p, ok := nearestDroneSpawn(grid, Position{Row: 2, Col: 2}, spawn)
	if !ok {
		t.Fatal("expected an alternative spawn")
	}
	if p != (Position{Row: 2, Col: 3}) {
		t.Errorf("expected fallback (2,3), got (%d,%d)", p.Row, p.Col)
	}

	// Hero's own tile is invalid even though it is floor
	p, ok = nearestDroneSpawn(grid, spawn, spawn)
	if !ok || p.Manhattan(spawn) <= 1 {
		t.Errorf("spawn next to hero should be moved away, got %+v", p)
	}
}

func TestNearestDroneSpawnSkipsWhenBoardFull(t *testing.T) {
	grid := ParseTemplate([]string{"1TT2", "LIIR", "3BB4"})

	if _, ok := nearestDroneSpawn(grid, Position{Row: 1, Col: 1}, Position{Row: 1, Col: 1}); ok {
		t.Error("a board with no floor should yield no spawn")
	}
}

func TestGenerateLevelRelocatesInvalidDrone(t *testing.T) {
	config := DefaultConfig()
	config.Levels = []LevelSpec{{
		Drones: []DroneSpawn{
			{Pos: Position{Row: 2, Col: 2}},             // pillar
			{Pos: Position{Row: 1, Col: 2}, Fast: true}, // next to the hero
		},
	}}
	// Forbidden cells are taken from rosters, so neither intended cell is a crate.
	layout := GenerateLevel(1, config)

	if len(layout.Drones) != 2 {
		t.Fatalf("expected both drones relocated, got %d", len(layout.Drones))
	}
	for _, d := range layout.Drones {
		if !validDroneSpawn(layout.Grid, d.Pos, config.HeroSpawn) {
			t.Errorf("drone placed on invalid tile (%d,%d)", d.Pos.Row, d.Pos.Col)
		}
	}
	if !layout.Drones[1].Fast {
		t.Error("relocation should keep the fast flag")
	}
}
