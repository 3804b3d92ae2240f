package gfx

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/amalg/go-boomberman/internal/game"
)

var (
	backgroundColor  = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	barrierColor     = color.RGBA{0x2a, 0x2a, 0x3a, 0xff}
	pillarColor      = color.RGBA{0x55, 0x55, 0x55, 0xff}
	crateColor       = color.RGBA{0x8b, 0x69, 0x14, 0xff}
	gridLineColor    = color.RGBA{0x22, 0x22, 0x38, 0xff}
	dangerColor      = color.RGBA{0xff, 0x44, 0x00, 0x50}
	heroColor        = color.RGBA{0x00, 0xff, 0x88, 0xff}
	droneColor       = color.RGBA{0xff, 0x44, 0x44, 0xff}
	fastDroneColor   = color.RGBA{0xff, 0x44, 0xff, 0xff}
	deadDroneColor   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	bombColor        = color.RGBA{0x11, 0x11, 0x11, 0xff}
	bombFuseColor    = color.RGBA{0xff, 0xcc, 0x00, 0xff}
	poweredBombColor = color.RGBA{0x66, 0x11, 0x11, 0xff}
	walkingBombColor = color.RGBA{0xff, 0x66, 0x00, 0xff}
	powerUpColor     = color.RGBA{0xff, 0xff, 0x44, 0xff}
	exitColor        = color.RGBA{0x44, 0xff, 0xff, 0xff}
	shadeColor       = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

// Draw renders the board, the entities and the HUD strip.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.engine.State
	screen.Fill(backgroundColor)

	g.drawTiles(screen, s)
	g.drawItems(screen, s)
	g.drawActors(screen, s)
	g.drawHUD(screen, s)

	if title, detail := s.Summary(); title != "" {
		g.drawSummary(screen, title, detail)
	}
}

// tileRect returns the screen rectangle of tile p.
func (g *Game) tileRect(p game.Position) (x, y, w, h float32) {
	c := float32(g.cell)
	return float32(p.Col) * c, float32(p.Row) * c, c, c
}

// bodyRect scales a body's hitbox from world pixels to screen pixels.
func (g *Game) bodyRect(b game.Body, tileSize int) (x, y, w, h float32) {
	scale := float32(g.cell) / float32(tileSize)
	r := b.Bounds()
	return float32(r.X) * scale, float32(r.Y) * scale, float32(r.W) * scale, float32(r.H) * scale
}

func (g *Game) drawTiles(screen *ebiten.Image, s *game.GameState) {
	for r := range s.Grid {
		for c := range s.Grid[r] {
			p := game.Position{Row: r, Col: c}
			x, y, w, h := g.tileRect(p)

			switch s.Grid[r][c].Kind {
			case game.Barrier:
				vector.FillRect(screen, x, y, w, h, barrierColor, false)
			case game.Indestructible:
				vector.FillRect(screen, x, y, w, h, pillarColor, false)
			case game.Destructible:
				vector.FillRect(screen, x+2, y+2, w-4, h-4, crateColor, false)
			case game.Walkable:
				vector.StrokeRect(screen, x, y, w, h, 1, gridLineColor, false)
				if s.InDanger(p) {
					vector.FillRect(screen, x, y, w, h, dangerColor, false)
				}
			}
		}
	}
}

func (g *Game) drawItems(screen *ebiten.Image, s *game.GameState) {
	if s.Exit != nil {
		x, y, w, h := g.tileRect(*s.Exit)
		vector.StrokeRect(screen, x+3, y+3, w-6, h-6, 3, exitColor, false)
		ebitenutil.DebugPrintAt(screen, "EXIT", int(x)+6, int(y+h/2)-8)
	}

	for _, pu := range s.PowerUps {
		if pu.Picked {
			continue
		}
		x, y, w, h := g.tileRect(pu.Pos)
		vector.StrokeRect(screen, x+w/4, y+h/4, w/2, h/2, 2, powerUpColor, false)
		ebitenutil.DebugPrintAt(screen, powerUpLabel(pu.Kind), int(x+w/2)-3, int(y+h/2)-8)
	}

	for _, b := range s.Bombs {
		if b.Exploded {
			continue
		}
		x, y, w, h := g.tileRect(b.Pos)
		cx, cy := x+w/2, y+h/2
		body := bombColor
		if b.Powered {
			body = poweredBombColor
		}
		vector.FillCircle(screen, cx, cy, w/3, body, true)
		// The fuse ring shrinks as the timer runs down
		frac := float32(b.Fuse) / float32(g.engine.Config.BombFuse)
		vector.StrokeCircle(screen, cx, cy, w/3*frac+1, 2, bombFuseColor, true)
	}
}

func (g *Game) drawActors(screen *ebiten.Image, s *game.GameState) {
	ts := s.TileSize

	for _, d := range s.Drones {
		if d.DeathExpired(s.Clock) {
			continue
		}
		x, y, w, h := g.bodyRect(d.Body, ts)
		clr := droneColor
		switch {
		case d.Dead:
			clr = deadDroneColor
		case d.Kind == game.FastDrone:
			clr = fastDroneColor
		}
		vector.FillCircle(screen, x+w/2, y+h/2, min(w, h)/2, clr, true)
	}

	if wb := s.WalkingBomb; wb != nil && !wb.Exploded {
		x, y, w, h := g.bodyRect(wb.Body, ts)
		vector.FillRect(screen, x, y, w, h, walkingBombColor, false)
	}

	if h := s.Hero; h != nil && h.Visible(s.Clock) {
		x, y, w, hh := g.bodyRect(h.Body, ts)
		vector.FillRect(screen, x, y, w, hh, heroColor, false)
	}
}

func powerUpLabel(k game.PowerUpKind) string {
	switch k {
	case game.PowerUpWalkingBomb:
		return "W"
	case game.PowerUpRadius:
		return "R"
	case game.PowerUpExtraLife:
		return "+"
	}
	return "?"
}

func (g *Game) drawHUD(screen *ebiten.Image, s *game.GameState) {
	_, top := g.ScreenSize()
	top -= hudHeight

	hearts := 0
	if s.Hero != nil {
		hearts = s.Hero.Hearts
	}
	line := fmt.Sprintf("Level %d/%d   Score %d   Hearts %s   Crates %d/%d",
		s.Level, s.LevelCount, s.Score,
		strings.Repeat("<3 ", hearts), s.DestroyedCrates, s.RequiredCrates)
	if s.Exit != nil {
		line += "   EXIT OPEN"
	}
	ebitenutil.DebugPrintAt(screen, line, 8, top+4)

	msg := s.Message
	if g.status != "" && time.Now().Before(g.statusUntil) {
		msg = g.status
	}
	if msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 8, top+20)
	}
	ebitenutil.DebugPrintAt(screen,
		"WASD move  H/Space bomb  Arrows walking bomb  J detonate  R restart  C copy  Esc quit",
		8, top+36)
}

func (g *Game) drawSummary(screen *ebiten.Image, title, detail string) {
	w, h := g.ScreenSize()
	vector.FillRect(screen, 0, 0, float32(w), float32(h), shadeColor, false)
	ebitenutil.DebugPrintAt(screen, title, w/2-len(title)*3, h/2-24)
	ebitenutil.DebugPrintAt(screen, detail, w/2-len(detail)*3, h/2-4)
	ebitenutil.DebugPrintAt(screen, "Press R to play again", w/2-63, h/2+16)
}
