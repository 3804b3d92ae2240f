package game

// TileKind tags the variant of a grid cell.
type TileKind int

const (
	Walkable       TileKind = iota
	Destructible            // Crate, cleared by bombs
	Indestructible          // Interior pillar
	Barrier                 // Board edge, Shape selects the border piece
)

func (k TileKind) String() string {
	switch k {
	case Walkable:
		return "walkable"
	case Destructible:
		return "destructible"
	case Indestructible:
		return "indestructible"
	case Barrier:
		return "barrier"
	}
	return "unknown"
}

// Tile is one cell of the grid. Walk is only meaningful for Walkable and
// Destructible tiles; the other kinds never let anything through.
type Tile struct {
	Row   int      `json:"row"`
	Col   int      `json:"col"`
	Kind  TileKind `json:"kind"`
	Shape byte     `json:"shape,omitempty"`
	Walk  bool     `json:"walk"`
}

// NewWalkableTile returns open floor.
func NewWalkableTile(row, col int) Tile {
	return Tile{Row: row, Col: col, Kind: Walkable, Walk: true}
}

// NewDestructibleTile returns an intact crate.
func NewDestructibleTile(row, col int) Tile {
	return Tile{Row: row, Col: col, Kind: Destructible}
}

// NewIndestructibleTile returns a pillar.
func NewIndestructibleTile(row, col int) Tile {
	return Tile{Row: row, Col: col, Kind: Indestructible}
}

// NewBarrierTile returns a border piece drawn with the given shape symbol.
func NewBarrierTile(row, col int, shape byte) Tile {
	return Tile{Row: row, Col: col, Kind: Barrier, Shape: shape}
}

// IsWalkable reports whether entities may enter the tile.
func (t Tile) IsWalkable() bool {
	switch t.Kind {
	case Walkable, Destructible:
		return t.Walk
	case Indestructible, Barrier:
		return false
	}
	return false
}

// SetWalkable overrides walkability. Pillars and barriers ignore it.
func (t *Tile) SetWalkable(walk bool) {
	switch t.Kind {
	case Walkable, Destructible:
		t.Walk = walk
	case Indestructible, Barrier:
	}
}

// Symbol returns the template character for the tile.
func (t Tile) Symbol() byte {
	switch t.Kind {
	case Walkable:
		return ' '
	case Destructible:
		return 'D'
	case Indestructible:
		return 'I'
	case Barrier:
		return t.Shape
	}
	return '?'
}

// Blocks reports whether the tile stops blast propagation outright.
func (t Tile) Blocks() bool {
	return t.Kind == Indestructible || t.Kind == Barrier
}

// TileFromSymbol builds a tile from a template character.
// Unknown symbols yield ok=false.
func TileFromSymbol(sym byte, row, col int) (Tile, bool) {
	switch sym {
	case ' ', '.':
		return NewWalkableTile(row, col), true
	case 'D':
		return NewDestructibleTile(row, col), true
	case 'I':
		return NewIndestructibleTile(row, col), true
	case 'B', 'T', 'L', 'R', '1', '2', '3', '4':
		return NewBarrierTile(row, col, sym), true
	}
	return Tile{}, false
}

// Grid is the board, indexed [row][col].
type Grid [][]Tile

// Rows returns the grid height.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the grid width.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether p addresses a cell of the grid.
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < len(g) && p.Col >= 0 && p.Col < len(g[p.Row])
}

// At returns a pointer to the tile at p, or nil when p is out of bounds.
func (g Grid) At(p Position) *Tile {
	if !g.InBounds(p) {
		return nil
	}
	return &g[p.Row][p.Col]
}

// Walkable reports whether p is in bounds and walkable.
func (g Grid) Walkable(p Position) bool {
	t := g.At(p)
	return t != nil && t.IsWalkable()
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = make([]Tile, len(g[r]))
		copy(out[r], g[r])
	}
	return out
}

// Equal reports whether two grids have identical tiles.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(o[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Count returns how many tiles have the given kind.
func (g Grid) Count(kind TileKind) int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c].Kind == kind {
				n++
			}
		}
	}
	return n
}

// ExplosionCross returns the cells a propagating blast covers: the center
// unless it blocks, then each direction until a pillar or barrier (excluded)
// or the first crate (included).
func (g Grid) ExplosionCross(center Position, radius int) []Position {
	if !g.InBounds(center) {
		return nil
	}
	var cells []Position
	if !g.At(center).Blocks() {
		cells = append(cells, center)
	}
	for _, d := range cardinals {
		for dist := 1; dist <= radius; dist++ {
			p := center.Step(d, dist)
			t := g.At(p)
			if t == nil || t.Blocks() {
				break
			}
			cells = append(cells, p)
			if t.Kind == Destructible {
				break
			}
		}
	}
	return cells
}

// FullCross returns every non-blocking in-bounds cell on the cross up to
// radius, without stopping at crates.
func (g Grid) FullCross(center Position, radius int) []Position {
	var cells []Position
	if t := g.At(center); t != nil && !t.Blocks() {
		cells = append(cells, center)
	}
	for _, d := range cardinals {
		for dist := 1; dist <= radius; dist++ {
			p := center.Step(d, dist)
			if t := g.At(p); t != nil && !t.Blocks() {
				cells = append(cells, p)
			}
		}
	}
	return cells
}
