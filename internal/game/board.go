package game

import (
	"math/rand"
)

// DefaultTemplate returns the classic 11x17 arena.
//
// Layout rules:
//   - Border is Barrier, with corner pieces 1-4 and edge pieces T/B/L/R
//   - Indestructible pillar wherever both row and column are even
//   - Everything else is floor; the generator decides which floor becomes crates
func DefaultTemplate() []string {
	return []string{
		"1TTTTTTTTTTTTTTT2",
		"L               R",
		"L I I I I I I I R",
		"L               R",
		"L I I I I I I I R",
		"L               R",
		"L I I I I I I I R",
		"L               R",
		"L I I I I I I I R",
		"L               R",
		"3BBBBBBBBBBBBBBB4",
	}
}

// DroneSpawn is an intended drone placement in a level roster.
type DroneSpawn struct {
	Pos  Position `json:"pos"`
	Fast bool     `json:"fast"`
}

// LevelSpec describes one level's crate density, exit threshold, loot quota
// and drone roster.
type LevelSpec struct {
	MinCrates      int          `json:"min_crates"`
	MaxCrates      int          `json:"max_crates"`
	RequiredCrates int          `json:"required_crates"`
	PowerUpQuota   int          `json:"powerup_quota"`
	Drones         []DroneSpawn `json:"drones"`
}

// Fixed drone coordinates. These stay crate-free on every level.
var (
	spawnNW     = Position{Row: 3, Col: 3}
	spawnNE     = Position{Row: 3, Col: 13}
	spawnSW     = Position{Row: 7, Col: 3}
	spawnSE     = Position{Row: 7, Col: 13}
	spawnCenter = Position{Row: 5, Col: 9}
)

// DefaultLevels returns the three-level campaign.
func DefaultLevels() []LevelSpec {
	return []LevelSpec{
		{
			MinCrates: 16, MaxCrates: 22, RequiredCrates: 12, PowerUpQuota: 3,
			Drones: []DroneSpawn{
				{Pos: spawnNW}, {Pos: spawnNE}, {Pos: spawnSW},
			},
		},
		{
			MinCrates: 22, MaxCrates: 28, RequiredCrates: 16, PowerUpQuota: 3,
			Drones: []DroneSpawn{
				{Pos: spawnNW}, {Pos: spawnSE},
				{Pos: spawnNE, Fast: true}, {Pos: spawnSW, Fast: true},
			},
		},
		{
			MinCrates: 28, MaxCrates: 34, RequiredCrates: 20, PowerUpQuota: 4,
			Drones: []DroneSpawn{
				{Pos: spawnNW}, {Pos: spawnNE},
				{Pos: spawnSW, Fast: true}, {Pos: spawnSE, Fast: true}, {Pos: spawnCenter, Fast: true},
			},
		},
	}
}

// forbiddenCells returns the drone spawn coordinates of every level.
func forbiddenCells(levels []LevelSpec) map[Position]bool {
	set := make(map[Position]bool)
	for _, l := range levels {
		for _, d := range l.Drones {
			set[d.Pos] = true
		}
	}
	return set
}

// ParseTemplate converts template rows into a grid. Unknown symbols and
// short rows become floor so a malformed template still yields a board.
func ParseTemplate(rows []string) Grid {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	grid := make(Grid, len(rows))
	for r, line := range rows {
		grid[r] = make([]Tile, width)
		for c := 0; c < width; c++ {
			sym := byte(' ')
			if c < len(line) {
				sym = line[c]
			}
			t, ok := TileFromSymbol(sym, r, c)
			if !ok {
				t = NewWalkableTile(r, c)
			}
			grid[r][c] = t
		}
	}
	return grid
}

// PlannedDrone is a resolved drone spawn with its patrol direction.
type PlannedDrone struct {
	Pos  Position  `json:"pos"`
	Fast bool      `json:"fast"`
	Dir  Direction `json:"dir"`
}

// Layout is the deterministic output of level generation.
type Layout struct {
	Grid   Grid
	Drones []PlannedDrone
}

// GenerateLevel derives a level's grid and drone roster. The generator is
// seeded with the level index, so the same level always yields the same layout.
func GenerateLevel(level int, config GameConfig) Layout {
	spec := config.level(level)
	rng := rand.New(rand.NewSource(int64(level)))

	grid := ParseTemplate(config.Template)
	forbidden := forbiddenCells(config.Levels)
	spawn := config.HeroSpawn

	target := spec.MinCrates
	if spec.MaxCrates > spec.MinCrates {
		target += rng.Intn(spec.MaxCrates - spec.MinCrates + 1)
	}
	if target < 0 {
		target = 0
	}

	var candidates []Position
	for r := range grid {
		for c := range grid[r] {
			p := Position{Row: r, Col: c}
			k := grid[r][c].Kind
			if k != Walkable && k != Destructible {
				continue
			}
			if p.Manhattan(spawn) <= 1 || forbidden[p] {
				continue
			}
			candidates = append(candidates, p)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if target > len(candidates) {
		target = len(candidates)
	}
	for i, p := range candidates {
		if i < target {
			grid[p.Row][p.Col] = NewDestructibleTile(p.Row, p.Col)
		} else {
			grid[p.Row][p.Col] = NewWalkableTile(p.Row, p.Col)
		}
	}

	// Drone spawn points are floor even if the template drifts, but pillars
	// and the border are never opened.
	for p := range forbidden {
		if t := grid.At(p); t != nil && !t.Blocks() {
			grid[p.Row][p.Col] = NewWalkableTile(p.Row, p.Col)
		}
	}

	drones := make([]PlannedDrone, 0, len(spec.Drones))
	for _, ds := range spec.Drones {
		pos, ok := nearestDroneSpawn(grid, ds.Pos, spawn)
		// Draw the direction even when skipping so later drones keep their rolls.
		dir := randomPatrol(rng)
		if !ok {
			continue
		}
		drones = append(drones, PlannedDrone{Pos: pos, Fast: ds.Fast, Dir: dir})
	}

	return Layout{Grid: grid, Drones: drones}
}

// randomPatrol picks an axis, then a direction on it.
func randomPatrol(rng *rand.Rand) Direction {
	if rng.Intn(2) == 0 {
		if rng.Intn(2) == 0 {
			return DirLeft
		}
		return DirRight
	}
	if rng.Intn(2) == 0 {
		return DirUp
	}
	return DirDown
}

// validDroneSpawn rejects non-floor tiles and the hero's spawn cross.
func validDroneSpawn(grid Grid, p, heroSpawn Position) bool {
	t := grid.At(p)
	if t == nil || t.Kind != Walkable {
		return false
	}
	return p.Manhattan(heroSpawn) > 1
}

// nearestDroneSpawn searches rings of increasing Manhattan radius around the
// intended position, scanning each ring in row-major order.
func nearestDroneSpawn(grid Grid, want, heroSpawn Position) (Position, bool) {
	if validDroneSpawn(grid, want, heroSpawn) {
		return want, true
	}
	maxRadius := grid.Rows() + grid.Cols()
	for radius := 1; radius <= maxRadius; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			rem := radius - abs(dr)
			cols := []int{want.Col - rem}
			if rem != 0 {
				cols = append(cols, want.Col+rem)
			}
			for _, c := range cols {
				p := Position{Row: want.Row + dr, Col: c}
				if validDroneSpawn(grid, p, heroSpawn) {
					return p, true
				}
			}
		}
	}
	return Position{}, false
}
