package game

import (
	"fmt"
	"strings"
)

// Snapshot returns a deep copy of the game state safe for rendering and
// serialization.
func (e *Engine) Snapshot() GameState {
	return e.State.Copy()
}

// Copy deep-copies the state.
func (s *GameState) Copy() GameState {
	out := *s
	out.Grid = s.Grid.Clone()

	if s.Hero != nil {
		h := *s.Hero
		out.Hero = &h
	}

	out.Drones = make([]*Drone, len(s.Drones))
	for i, d := range s.Drones {
		cd := *d
		out.Drones[i] = &cd
	}

	out.Bombs = make([]*Bomb, len(s.Bombs))
	for i, b := range s.Bombs {
		cb := *b
		out.Bombs[i] = &cb
	}

	if s.WalkingBomb != nil {
		w := *s.WalkingBomb
		out.WalkingBomb = &w
	}

	out.PowerUps = make([]*PowerUp, len(s.PowerUps))
	for i, pu := range s.PowerUps {
		cp := *pu
		out.PowerUps[i] = &cp
	}

	if s.Exit != nil {
		exit := *s.Exit
		out.Exit = &exit
	}
	return out
}

// HeroTile returns the tile the hero occupies.
func (s *GameState) HeroTile() Position {
	if s.Hero == nil || s.TileSize <= 0 {
		return Position{Row: -1, Col: -1}
	}
	return s.Hero.Tile(s.TileSize)
}

// InDanger reports whether p lies in the blast of any live bomb or walking
// bomb, using the same stopping rules detonation would.
func (s *GameState) InDanger(p Position) bool {
	radius := 1
	if s.Hero != nil {
		radius = s.Hero.BlastRadius()
	}
	for _, b := range s.Bombs {
		if b.Exploded {
			continue
		}
		if containsPos(s.Grid.ExplosionCross(b.Pos, radius), p) {
			return true
		}
	}
	if w := s.WalkingBomb; w != nil && !w.Exploded {
		if containsPos(s.Grid.FullCross(w.Pos, WalkingBombRadius), p) {
			return true
		}
	}
	return false
}

func containsPos(cells []Position, p Position) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}

// Summary is the end-of-run banner, empty while the run is in progress.
func (s *GameState) Summary() (title, detail string) {
	switch {
	case s.GameOver:
		return "GAME OVER", fmt.Sprintf("Final score: %d", s.Score)
	case s.Finished:
		return "CONGRATULATIONS", fmt.Sprintf("You completed all levels! Final score: %d", s.Score)
	}
	return "", ""
}

// String renders the grid as template symbols with entities overlaid:
//
//	H hero, X drone, x dead drone, * bomb, W walking bomb, E exit, p powerup
func (s *GameState) String() string {
	rows := make([][]byte, len(s.Grid))
	for r := range s.Grid {
		rows[r] = make([]byte, len(s.Grid[r]))
		for c := range s.Grid[r] {
			rows[r][c] = s.Grid[r][c].Symbol()
		}
	}
	mark := func(p Position, ch byte) {
		if s.Grid.InBounds(p) {
			rows[p.Row][p.Col] = ch
		}
	}

	for _, pu := range s.PowerUps {
		if !pu.Picked {
			mark(pu.Pos, 'p')
		}
	}
	if s.Exit != nil {
		mark(*s.Exit, 'E')
	}
	for _, b := range s.Bombs {
		if !b.Exploded {
			mark(b.Pos, '*')
		}
	}
	for _, d := range s.Drones {
		if d.Dead {
			mark(d.Tile(s.TileSize), 'x')
		} else {
			mark(d.Tile(s.TileSize), 'X')
		}
	}
	if w := s.WalkingBomb; w != nil && !w.Exploded {
		mark(w.Pos, 'W')
	}
	mark(s.HeroTile(), 'H')

	var sb strings.Builder
	fmt.Fprintf(&sb, "level %d  score %d  hearts %d  crates %d/%d\n",
		s.Level, s.Score, heartsOf(s.Hero), s.DestroyedCrates, s.RequiredCrates)
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func heartsOf(h *Hero) int {
	if h == nil {
		return 0
	}
	return h.Hearts
}
