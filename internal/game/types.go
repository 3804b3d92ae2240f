package game

import (
	"time"
)

// Direction represents a movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the reverse direction on the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Horizontal reports whether the direction moves along a row.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Delta returns the unit row/col step for the direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 1
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "right"
	}
}

// cardinals is the fixed propagation order for blasts.
var cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Position is a tile coordinate on the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the position dist tiles away in direction d.
func (p Position) Step(d Direction, dist int) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr*dist, Col: p.Col + dc*dist}
}

// Manhattan returns the taxicab distance between two positions.
func (p Position) Manhattan(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

// OnCross reports whether o lies on the same row or column as p within radius tiles.
func (p Position) OnCross(o Position, radius int) bool {
	return (o.Row == p.Row && abs(o.Col-p.Col) <= radius) ||
		(o.Col == p.Col && abs(o.Row-p.Row) <= radius)
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Overlaps reports whether two rectangles share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Input is one tick's snapshot of player intents. Place and Detonate are
// edge-triggered: true for a single tick per physical press.
type Input struct {
	Up, Down, Left, Right bool

	Place    bool
	Detonate bool

	BombUp, BombDown, BombLeft, BombRight bool
}

// heroDirection picks the movement direction with up > down > left > right priority.
func (in Input) heroDirection() (Direction, bool) {
	switch {
	case in.Up:
		return DirUp, true
	case in.Down:
		return DirDown, true
	case in.Left:
		return DirLeft, true
	case in.Right:
		return DirRight, true
	}
	return DirUp, false
}

func (in Input) walkingBombDirection() (Direction, bool) {
	switch {
	case in.BombUp:
		return DirUp, true
	case in.BombDown:
		return DirDown, true
	case in.BombLeft:
		return DirLeft, true
	case in.BombRight:
		return DirRight, true
	}
	return DirUp, false
}

// DefaultTickRate is used whenever a config leaves TickRate unset.
const DefaultTickRate = 60

// GameConfig holds configurable parameters for a game session.
type GameConfig struct {
	TileSize          int           `json:"tile_size"` // Pixels per tile edge
	TickRate          int           `json:"tick_rate"` // Ticks per second
	BombFuse          time.Duration `json:"bomb_fuse"`
	Invulnerability   time.Duration `json:"invulnerability"`
	DroneDeathDisplay time.Duration `json:"drone_death_display"`
	MessageDuration   time.Duration `json:"message_duration"`
	HeroSpeed         int           `json:"hero_speed"`  // Pixels per tick
	DroneSpeed        int           `json:"drone_speed"` // Pixels per tick
	FastDroneFactor   float64       `json:"fast_drone_factor"`
	WalkingBombSpeed  int           `json:"walking_bomb_speed"`
	HeroSpawn         Position      `json:"hero_spawn"`
	StartLevel        int           `json:"start_level"`
	LootSeed          int64         `json:"loot_seed"` // Mixed with the level index for powerup draws
	Template          []string      `json:"template"`
	Levels            []LevelSpec   `json:"levels"`
}

// DefaultConfig returns a sensible default game configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		TileSize:          96,
		TickRate:          DefaultTickRate,
		BombFuse:          3 * time.Second,
		Invulnerability:   3 * time.Second,
		DroneDeathDisplay: 1 * time.Second,
		MessageDuration:   3 * time.Second,
		HeroSpeed:         5,
		DroneSpeed:        3,
		FastDroneFactor:   1.6,
		WalkingBombSpeed:  4,
		HeroSpawn:         Position{Row: 1, Col: 1},
		StartLevel:        1,
		Template:          DefaultTemplate(),
		Levels:            DefaultLevels(),
	}
}

// Ticks returns the tick rate, falling back to DefaultTickRate when unset.
func (c GameConfig) Ticks() int {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

// TickInterval is the simulated time one tick covers.
func (c GameConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Ticks())
}

// level returns the spec for a 1-based level index, clamped to the table.
func (c GameConfig) level(n int) LevelSpec {
	if len(c.Levels) == 0 {
		return LevelSpec{}
	}
	if n < 1 {
		n = 1
	}
	if n > len(c.Levels) {
		n = len(c.Levels)
	}
	return c.Levels[n-1]
}

// fastDroneSpeed rounds the boosted speed and keeps it at least 1.
func (c GameConfig) fastDroneSpeed() int {
	v := int(float64(c.DroneSpeed)*c.FastDroneFactor + 0.5)
	if v < 1 {
		v = 1
	}
	return v
}

// Score awards.
const (
	ScoreCrate         = 15
	ScoreDrone         = 35
	ScoreExtraLifeFull = 100
)

// MaxHearts is the hero's heart cap.
const MaxHearts = 3

// WalkingBombRadius is the fixed blast radius of the walking bomb.
const WalkingBombRadius = 2

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
