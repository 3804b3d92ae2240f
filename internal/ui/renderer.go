package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-boomberman/internal/game"
)

const floorColor = lipgloss.Color("#1a1a2e")

// Color palette
var (
	// Tile styles
	barrierStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2a2a3a")).
			Foreground(lipgloss.Color("#44445a"))

	pillarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	crateStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B6914")).
			Foreground(lipgloss.Color("#A0772B"))

	floorStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(floorColor)

	dangerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#4a1a1a")).
			Foreground(lipgloss.Color("#ff6600"))

	// Entity styles
	heroStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	droneStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	fastDroneStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(lipgloss.Color("#ff44ff")).
			Bold(true)

	deadDroneStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(lipgloss.Color("#666666"))

	bombStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	poweredBombStyle = lipgloss.NewStyle().
				Background(floorColor).
				Foreground(lipgloss.Color("#ffcc00")).
				Bold(true)

	walkingBombStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#ff6600")).
				Foreground(lipgloss.Color("#ffcc00")).
				Bold(true)

	powerUpStyle = lipgloss.NewStyle().
			Background(floorColor).
			Foreground(lipgloss.Color("#ffff44")).
			Bold(true)

	exitStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#005566")).
			Foreground(lipgloss.Color("#44ffff")).
			Bold(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true).
			Blink(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// overlay collects the entities drawn on top of tiles for one frame.
type overlay struct {
	hero        game.Position
	heroVisible bool
	walkingBomb *game.Position
	drones      map[game.Position]*game.Drone
	bombs       map[game.Position]*game.Bomb
	powerUps    map[game.Position]game.PowerUpKind
	exit        *game.Position
}

func buildOverlay(s *game.GameState) overlay {
	o := overlay{
		hero:        s.HeroTile(),
		heroVisible: s.Hero != nil && s.Hero.Visible(s.Clock),
		drones:      make(map[game.Position]*game.Drone),
		bombs:       make(map[game.Position]*game.Bomb),
		powerUps:    make(map[game.Position]game.PowerUpKind),
		exit:        s.Exit,
	}
	for _, d := range s.Drones {
		if d.DeathExpired(s.Clock) {
			continue
		}
		p := d.Tile(s.TileSize)
		// A live drone wins over a corpse on the same tile
		if prev, ok := o.drones[p]; ok && !prev.Dead {
			continue
		}
		o.drones[p] = d
	}
	for _, b := range s.Bombs {
		if !b.Exploded {
			o.bombs[b.Pos] = b
		}
	}
	for _, pu := range s.PowerUps {
		if !pu.Picked {
			o.powerUps[pu.Pos] = pu.Kind
		}
	}
	if w := s.WalkingBomb; w != nil && !w.Exploded {
		p := w.Pos
		o.walkingBomb = &p
	}
	return o
}

// RenderBoard converts a snapshot into a styled terminal string.
func RenderBoard(state *game.GameState) string {
	if state == nil || len(state.Grid) == 0 {
		return "Waiting for game state..."
	}

	o := buildOverlay(state)

	rows := make([]string, 0, len(state.Grid))
	for r := range state.Grid {
		var sb strings.Builder
		for c := range state.Grid[r] {
			p := game.Position{Row: r, Col: c}
			sb.WriteString(renderCell(state, state.Grid[r][c], p, o))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

// renderCell renders one tile, two characters wide.
// Priority: hero > walking bomb > drone > bomb > powerup > exit > danger > tile.
func renderCell(s *game.GameState, tile game.Tile, p game.Position, o overlay) string {
	if p == o.hero && o.heroVisible {
		return heroStyle.Render("@@")
	}
	if o.walkingBomb != nil && *o.walkingBomb == p {
		return walkingBombStyle.Render("WB")
	}
	if d, ok := o.drones[p]; ok {
		switch {
		case d.Dead:
			return deadDroneStyle.Render("xx")
		case d.Kind == game.FastDrone:
			return fastDroneStyle.Render("<>")
		default:
			return droneStyle.Render("<>")
		}
	}
	if b, ok := o.bombs[p]; ok {
		if b.Powered {
			return poweredBombStyle.Render("**")
		}
		return bombStyle.Render("**")
	}
	if kind, ok := o.powerUps[p]; ok {
		return powerUpStyle.Render(powerUpGlyph(kind))
	}
	if o.exit != nil && *o.exit == p {
		return exitStyle.Render("[]")
	}

	switch tile.Kind {
	case game.Barrier:
		return barrierStyle.Render("██")
	case game.Indestructible:
		return pillarStyle.Render("▓▓")
	case game.Destructible:
		return crateStyle.Render("▒▒")
	case game.Walkable:
		if s.InDanger(p) {
			return dangerStyle.Render("░░")
		}
	}
	return floorStyle.Render("  ")
}

func powerUpGlyph(k game.PowerUpKind) string {
	switch k {
	case game.PowerUpWalkingBomb:
		return "W+"
	case game.PowerUpRadius:
		return "R+"
	case game.PowerUpExtraLife:
		return "H+"
	}
	return "??"
}

// hearts draws filled and empty hearts up to the cap.
func hearts(n int) string {
	n = min(max(n, 0), game.MaxHearts)
	return strings.Repeat("♥", n) + strings.Repeat("♡", game.MaxHearts-n)
}

// RenderHUD renders level progress, hero status, messages and controls.
func RenderHUD(state *game.GameState, readOnly bool, status string) string {
	if state == nil {
		return ""
	}

	var parts []string

	heading := "BOOMBERMAN"
	if readOnly {
		heading += " (spectating)"
	}
	parts = append(parts, titleStyle.Render(heading))
	parts = append(parts, "")

	parts = append(parts, fmt.Sprintf("%s %d/%d", labelStyle.Render("Level:"), state.Level, state.LevelCount))
	parts = append(parts, fmt.Sprintf("%s %d", labelStyle.Render("Score:"), state.Score))
	if state.Hero != nil {
		parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render("Hearts:"), hearts(state.Hero.Hearts)))
	}
	parts = append(parts, fmt.Sprintf("%s %d/%d", labelStyle.Render("Crates:"), state.DestroyedCrates, state.RequiredCrates))
	if state.Exit != nil {
		parts = append(parts, exitStyle.Render("EXIT OPEN"))
	}

	if h := state.Hero; h != nil {
		var powers []string
		if h.WalkingBombPower {
			powers = append(powers, "walking bomb")
		}
		if h.RadiusBoost {
			powers = append(powers, "radius 2")
		}
		if len(powers) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render("Powers:"), strings.Join(powers, ", ")))
		}
	}

	if title, detail := state.Summary(); title != "" {
		parts = append(parts, "")
		parts = append(parts, summaryStyle.Render(title))
		parts = append(parts, detail)
		if !readOnly {
			parts = append(parts, "Press [R] to play again")
		}
	} else if state.Message != "" {
		parts = append(parts, "")
		parts = append(parts, messageStyle.Render(state.Message))
	}

	if status != "" {
		parts = append(parts, "")
		parts = append(parts, labelStyle.Render(status))
	}

	parts = append(parts, "")
	if readOnly {
		parts = append(parts, helpStyle.Render("C: Copy board | Q: Quit"))
	} else {
		parts = append(parts, helpStyle.Render("WASD: Move | H/Space: Bomb"))
		parts = append(parts, helpStyle.Render("Arrows: Walking bomb | J: Detonate"))
		parts = append(parts, helpStyle.Render("R: Restart | C: Copy board | Q: Quit"))
	}

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}
