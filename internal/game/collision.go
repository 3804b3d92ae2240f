package game

// Body is a pixel-positioned entity with a hitbox relative to its origin.
type Body struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	HitBox Rect `json:"hitbox"`
}

// Bounds returns the hitbox in absolute pixel coordinates.
func (b Body) Bounds() Rect {
	return Rect{X: b.X + b.HitBox.X, Y: b.Y + b.HitBox.Y, W: b.HitBox.W, H: b.HitBox.H}
}

// Tile returns the tile under the hitbox center.
func (b Body) Tile(tileSize int) Position {
	r := b.Bounds()
	return Position{
		Row: floorDiv(r.Y+r.H/2, tileSize),
		Col: floorDiv(r.X+r.W/2, tileSize),
	}
}

// CenterOn moves the body so its hitbox center sits on the center of tile p.
func (b *Body) CenterOn(p Position, tileSize int) {
	b.X = p.Col*tileSize + tileSize/2 - (b.HitBox.X + b.HitBox.W/2)
	b.Y = p.Row*tileSize + tileSize/2 - (b.HitBox.Y + b.HitBox.H/2)
}

// Moved returns a copy displaced by speed pixels in direction d.
func (b Body) Moved(d Direction, speed int) Body {
	dr, dc := d.Delta()
	b.X += dc * speed
	b.Y += dr * speed
	return b
}

// Default hitboxes, relative to the sprite origin.
var (
	heroHitBox        = Rect{X: 32, Y: 48, W: 32, H: 42}
	droneHitBox       = Rect{X: 32, Y: 48, W: 32, H: 42}
	walkingBombHitBox = Rect{X: 32, Y: 32, W: 32, H: 32}
)

// CollisionChecker converts hitboxes and intended motion into walkability
// verdicts against a grid. It holds no state beyond the tile size.
type CollisionChecker struct {
	TileSize int
}

// Blocked reports whether moving b by speed pixels in direction d would push
// its leading edge into a non-walkable tile. Only the two corners on the
// leading edge are sampled.
func (cc CollisionChecker) Blocked(g Grid, b Body, d Direction, speed int) bool {
	r := b.Bounds()
	left, right := r.X, r.X+r.W-1
	top, bottom := r.Y, r.Y+r.H-1

	var a, z Position
	switch d {
	case DirUp:
		row := floorDiv(top-speed, cc.TileSize)
		a = Position{Row: row, Col: floorDiv(left, cc.TileSize)}
		z = Position{Row: row, Col: floorDiv(right, cc.TileSize)}
	case DirDown:
		row := floorDiv(bottom+speed, cc.TileSize)
		a = Position{Row: row, Col: floorDiv(left, cc.TileSize)}
		z = Position{Row: row, Col: floorDiv(right, cc.TileSize)}
	case DirLeft:
		col := floorDiv(left-speed, cc.TileSize)
		a = Position{Row: floorDiv(top, cc.TileSize), Col: col}
		z = Position{Row: floorDiv(bottom, cc.TileSize), Col: col}
	case DirRight:
		col := floorDiv(right+speed, cc.TileSize)
		a = Position{Row: floorDiv(top, cc.TileSize), Col: col}
		z = Position{Row: floorDiv(bottom, cc.TileSize), Col: col}
	}
	return !g.Walkable(a) || !g.Walkable(z)
}

// CanEnter reports whether b may move to next. Only tiles next covers that
// b does not already cover are checked, so a tile sealed under an entity
// never pins it in place.
func (cc CollisionChecker) CanEnter(g Grid, b, next Body) bool {
	cur := cc.span(b)
	for _, p := range cc.span(next).corners() {
		if cur.contains(p) {
			continue
		}
		if !g.Walkable(p) {
			return false
		}
	}
	return true
}

// tileSpan is the inclusive tile rectangle a hitbox overlaps.
type tileSpan struct {
	top, bottom, left, right int
}

func (cc CollisionChecker) span(b Body) tileSpan {
	r := b.Bounds()
	return tileSpan{
		top:    floorDiv(r.Y, cc.TileSize),
		bottom: floorDiv(r.Y+r.H-1, cc.TileSize),
		left:   floorDiv(r.X, cc.TileSize),
		right:  floorDiv(r.X+r.W-1, cc.TileSize),
	}
}

// corners samples the span's four corner tiles, which cover it while
// hitboxes stay under a tile wide.
func (s tileSpan) corners() [4]Position {
	return [4]Position{
		{Row: s.top, Col: s.left},
		{Row: s.top, Col: s.right},
		{Row: s.bottom, Col: s.left},
		{Row: s.bottom, Col: s.right},
	}
}

func (s tileSpan) contains(p Position) bool {
	return p.Row >= s.top && p.Row <= s.bottom && p.Col >= s.left && p.Col <= s.right
}

// floorDiv divides rounding toward negative infinity so pixels left of or
// above the board map to out-of-range indices.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
