package game

import "time"

// Blaster is the destruction API every explosive detonates through.
// The Engine is the only implementation.
type Blaster interface {
	// BombRadius resolves the reach of a conventional bomb at detonation time.
	BombRadius(b *Bomb) int
	// ExplodeAt runs a propagating blast that stops at the first crate per direction.
	ExplodeAt(center Position, radius int)
	// ExplodeCrossAt runs a blast that hits every cross cell up to radius.
	ExplodeCrossAt(center Position, radius int)
}

// Bomb is a conventional timed explosive sitting on one tile.
type Bomb struct {
	Pos      Position      `json:"pos"`
	Fuse     time.Duration `json:"fuse"` // Time remaining
	Exploded bool          `json:"exploded"`
	Powered  bool          `json:"powered"` // Hero held radius boost when placed

	// sealed is set once the hero has stepped off and the tile was made unwalkable.
	sealed bool
}

// NewBomb arms a bomb on tile p.
func NewBomb(p Position, fuse time.Duration, powered bool) *Bomb {
	return &Bomb{Pos: p, Fuse: fuse, Powered: powered}
}

// DecreaseTime counts the fuse down and detonates once it reaches zero.
func (b *Bomb) DecreaseTime(dt time.Duration, bl Blaster) {
	if b.Exploded {
		return
	}
	b.Fuse -= dt
	if b.Fuse <= 0 {
		b.Detonate(bl)
	}
}

// Detonate explodes the bomb. Calls after the first are no-ops.
func (b *Bomb) Detonate(bl Blaster) {
	if b.Exploded {
		return
	}
	b.Exploded = true
	b.Fuse = 0
	bl.ExplodeAt(b.Pos, bl.BombRadius(b))
}

// WalkingBomb is a player-steered explosive detonated on command.
type WalkingBomb struct {
	Body
	Facing   Direction `json:"facing"`
	Pos      Position  `json:"pos"` // Tile under the hitbox center
	Exploded bool      `json:"exploded"`
}

// NewWalkingBomb creates a walking bomb centered on tile p.
func NewWalkingBomb(p Position, tileSize int) *WalkingBomb {
	w := &WalkingBomb{Body: Body{HitBox: walkingBombHitBox}, Facing: DirDown, Pos: p}
	w.CenterOn(p, tileSize)
	return w
}

// update steers the bomb one tick. When blocked it snaps back onto its tile
// if it is within half a tile of alignment, then clamps to the board.
func (w *WalkingBomb) update(in Input, g Grid, cc CollisionChecker, speed int) {
	if w.Exploded {
		return
	}
	dir, ok := in.walkingBombDirection()
	if ok {
		w.Facing = dir
		next := w.Moved(dir, speed)
		if cc.CanEnter(g, w.Body, next) {
			w.Body = next
		} else {
			w.snap(cc.TileSize)
		}
	}
	w.clamp(g, cc.TileSize)
	w.Pos = w.Tile(cc.TileSize)
}

func (w *WalkingBomb) snap(tileSize int) {
	aligned := w.Body
	aligned.CenterOn(w.Tile(tileSize), tileSize)
	if abs(w.X-aligned.X) < tileSize/2 {
		w.X = aligned.X
	}
	if abs(w.Y-aligned.Y) < tileSize/2 {
		w.Y = aligned.Y
	}
}

func (w *WalkingBomb) clamp(g Grid, tileSize int) {
	maxX := g.Cols()*tileSize - tileSize
	maxY := g.Rows()*tileSize - tileSize
	w.X = min(max(w.X, 0), maxX)
	w.Y = min(max(w.Y, 0), maxY)
}

// Detonate explodes the walking bomb on its current tile. Calls after the
// first are no-ops.
func (w *WalkingBomb) Detonate(bl Blaster) {
	if w.Exploded {
		return
	}
	w.Exploded = true
	bl.ExplodeCrossAt(w.Pos, WalkingBombRadius)
}
