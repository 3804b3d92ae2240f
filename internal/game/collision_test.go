package game

import (
	"testing"
)

func TestBodyTileFromCenter(t *testing.T) {
	b := Body{HitBox: heroHitBox}
	b.CenterOn(Position{Row: 4, Col: 7}, 96)

	if got := b.Tile(96); got != (Position{Row: 4, Col: 7}) {
		t.Errorf("expected tile (4,7), got (%d,%d)", got.Row, got.Col)
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{95, 96, 0},
		{96, 96, 1},
		{-1, 96, -1},
		{-96, 96, -1},
		{-97, 96, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestBlockedLeadingEdge(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	cc := CollisionChecker{TileSize: 96}

	b := Body{HitBox: heroHitBox}
	b.CenterOn(Position{Row: 1, Col: 1}, 96)

	// Top edge at 123; a 5px step stays in row 1
	if cc.Blocked(grid, b, DirUp, 5) {
		t.Error("small step up inside the tile should not be blocked")
	}
	// A 30px step reaches row 0, the top barrier
	if !cc.Blocked(grid, b, DirUp, 30) {
		t.Error("step into the top barrier should be blocked")
	}

	// Moving down from (1,1) leads into (2,1), open floor
	b.Y += 60
	if cc.Blocked(grid, b, DirDown, 5) {
		t.Error("column 1 is open below the spawn")
	}
}

func TestBlockedChecksBothCorners(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	cc := CollisionChecker{TileSize: 96}

	// Straddle columns 1 and 2 in row 1, then try to go down: (2,1) is floor,
	// (2,2) is a pillar, so the right corner blocks.
	b := Body{HitBox: heroHitBox}
	b.CenterOn(Position{Row: 1, Col: 1}, 96)
	b.X += 40
	b.Y += 40

	if !cc.Blocked(grid, b, DirDown, 10) {
		t.Error("right corner over a pillar should block downward movement")
	}
}

func TestCanEnter(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	cc := CollisionChecker{TileSize: 96}

	b := Body{HitBox: droneHitBox}
	b.CenterOn(Position{Row: 3, Col: 3}, 96)
	if !cc.CanEnter(grid, b, b.Moved(DirRight, 3)) {
		t.Error("drone centered on floor should move freely")
	}

	grid[3][4] = NewDestructibleTile(3, 4)
	if cc.CanEnter(grid, b, b.Moved(DirRight, 40)) {
		t.Error("hitbox entering a crate should be refused")
	}

	b.CenterOn(Position{Row: 1, Col: 1}, 96)
	next := b
	next.X = -50
	if cc.CanEnter(grid, b, next) {
		t.Error("hitbox left of the board should be refused")
	}
}

func TestCanEnterIgnoresTilesAlreadyCovered(t *testing.T) {
	grid := ParseTemplate(DefaultTemplate())
	cc := CollisionChecker{TileSize: 96}
	grid.At(Position{Row: 3, Col: 3}).SetWalkable(false)

	b := Body{HitBox: walkingBombHitBox}
	b.CenterOn(Position{Row: 3, Col: 3}, 96)
	if !cc.CanEnter(grid, b, b.Moved(DirRight, 4)) {
		t.Error("a sealed tile under the body should not block it from leaving")
	}

	b.CenterOn(Position{Row: 3, Col: 4}, 96)
	if cc.CanEnter(grid, b, b.Moved(DirLeft, 40)) {
		t.Error("a sealed tile the body is not on should still block it")
	}
}
