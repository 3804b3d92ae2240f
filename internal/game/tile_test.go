package game

import (
	"testing"
)

func TestTileWalkability(t *testing.T) {
	floor := NewWalkableTile(1, 1)
	if !floor.IsWalkable() {
		t.Error("floor should start walkable")
	}
	floor.SetWalkable(false)
	if floor.IsWalkable() {
		t.Error("floor should accept a temporary block")
	}

	crate := NewDestructibleTile(1, 2)
	if crate.IsWalkable() {
		t.Error("crate should start blocked")
	}

	pillar := NewIndestructibleTile(2, 2)
	pillar.SetWalkable(true)
	if pillar.IsWalkable() {
		t.Error("pillar must ignore SetWalkable")
	}

	edge := NewBarrierTile(0, 3, 'T')
	edge.SetWalkable(true)
	if edge.IsWalkable() {
		t.Error("barrier must ignore SetWalkable")
	}
	if edge.Symbol() != 'T' {
		t.Errorf("barrier symbol should be its shape, got %q", edge.Symbol())
	}
}

func TestTileFromSymbol(t *testing.T) {
	cases := map[byte]TileKind{
		' ': Walkable,
		'D': Destructible,
		'I': Indestructible,
		'L': Barrier,
		'4': Barrier,
	}
	for sym, want := range cases {
		tile, ok := TileFromSymbol(sym, 0, 0)
		if !ok || tile.Kind != want {
			t.Errorf("symbol %q: got %s ok=%v, want %s", sym, tile.Kind, ok, want)
		}
	}
	if _, ok := TileFromSymbol('Z', 0, 0); ok {
		t.Error("unknown symbol should be rejected")
	}
}

func TestGridBounds(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())

	for _, p := range []Position{{-1, 0}, {0, -1}, {11, 0}, {0, 17}} {
		if grid.InBounds(p) || grid.At(p) != nil || grid.Walkable(p) {
			t.Errorf("(%d,%d) should be out of bounds", p.Row, p.Col)
		}
	}
}

func TestExplosionCrossStopsAtFirstCrate(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	grid[1][6] = NewDestructibleTile(1, 6)
	grid[1][7] = NewDestructibleTile(1, 7)

	cells := grid.ExplosionCross(Position{Row: 1, Col: 5}, 2)

	if !containsPos(cells, Position{Row: 1, Col: 6}) {
		t.Error("first crate should be in the blast")
	}
	if containsPos(cells, Position{Row: 1, Col: 7}) {
		t.Error("second crate in the same direction must be shielded")
	}
	if containsPos(cells, Position{Row: 0, Col: 5}) {
		t.Error("barrier must not be in the blast")
	}
	// Down: (2,5) floor, (3,5) floor
	if !containsPos(cells, Position{Row: 3, Col: 5}) {
		t.Error("blast should reach two tiles through open floor")
	}
}

func TestExplosionCrossStopsAtPillar(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	grid[1][4] = NewDestructibleTile(1, 4)

	// (3,4): pillars directly above and below
	cells := grid.ExplosionCross(Position{Row: 3, Col: 4}, 2)

	for _, p := range cells {
		if p.Col == 4 && p.Row != 3 {
			t.Errorf("blast passed a pillar into (%d,%d)", p.Row, p.Col)
		}
	}
	if len(cells) != 5 {
		t.Errorf("expected center plus two tiles left and right, got %d cells", len(cells))
	}
}

func TestExplosionCrossAtEdge(t *testing.T) {
	grid := ParseTemplate([]string{"   ", "   "})

	cells := grid.ExplosionCross(Position{Row: 0, Col: 0}, 3)
	for _, p := range cells {
		if !grid.InBounds(p) {
			t.Fatalf("blast wrapped out of bounds to (%d,%d)", p.Row, p.Col)
		}
	}
	if len(cells) != 4 {
		t.Errorf("expected 4 in-bounds cells, got %d", len(cells))
	}
	if grid.ExplosionCross(Position{Row: 5, Col: 5}, 1) != nil {
		t.Error("out-of-range center should produce no cells")
	}
}

func TestFullCrossIgnoresCrates(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	grid[1][6] = NewDestructibleTile(1, 6)
	grid[1][7] = NewDestructibleTile(1, 7)
	grid[1][4] = NewDestructibleTile(1, 4)

	cells := grid.FullCross(Position{Row: 1, Col: 5}, 2)
	for _, want := range []Position{{1, 6}, {1, 7}, {1, 4}, {1, 3}} {
		if !containsPos(cells, want) {
			t.Errorf("walking-bomb cross should include (%d,%d)", want.Row, want.Col)
		}
	}

	// (3,4): pillar at distance 1 up, floor at distance 2 up
	cells = grid.FullCross(Position{Row: 3, Col: 4}, 2)
	if !containsPos(cells, Position{Row: 1, Col: 4}) {
		t.Error("distance 2 should be processed independently of a pillar at distance 1")
	}
	if containsPos(cells, Position{Row: 2, Col: 4}) {
		t.Error("pillar must never be part of the blast")
	}
}
