package game

import "time"

// blinkPeriod is how long the hero stays visible or hidden while invulnerable.
const blinkPeriod = 100 * time.Millisecond

// Hero is the player-controlled character. It is created once per session and
// repositioned on respawn and level change.
type Hero struct {
	Body
	Facing            Direction     `json:"facing"`
	Hearts            int           `json:"hearts"`
	InvulnerableUntil time.Duration `json:"invulnerable_until"` // Simulation clock deadline
	WalkingBombPower  bool          `json:"walking_bomb_power"`
	RadiusBoost       bool          `json:"radius_boost"`

	collision bool
}

// NewHero creates a hero with full hearts and no powerups.
func NewHero() *Hero {
	return &Hero{
		Body:   Body{HitBox: heroHitBox},
		Facing: DirDown,
		Hearts: MaxHearts,
	}
}

// Invulnerable reports whether damage is currently ignored.
func (h *Hero) Invulnerable(now time.Duration) bool {
	return now < h.InvulnerableUntil
}

// Visible is the blink state renderers use while the hero is invulnerable.
func (h *Hero) Visible(now time.Duration) bool {
	if !h.Invulnerable(now) {
		return true
	}
	remaining := h.InvulnerableUntil - now
	return (remaining/blinkPeriod)%2 == 0
}

// BlastRadius is the reach of a conventional bomb given current powerups.
func (h *Hero) BlastRadius() int {
	if h.RadiusBoost {
		return 2
	}
	return 1
}

// respawn places the hero on tile p with a fresh invulnerability window.
func (h *Hero) respawn(p Position, tileSize int, until time.Duration) {
	h.CenterOn(p, tileSize)
	h.Facing = DirDown
	h.InvulnerableUntil = until
}

// move applies one tick of directional intent, consulting the collision checker first.
func (h *Hero) move(in Input, g Grid, cc CollisionChecker, speed int) {
	dir, ok := in.heroDirection()
	if !ok {
		return
	}
	h.Facing = dir
	h.collision = cc.Blocked(g, h.Body, dir, speed)
	if !h.collision {
		h.Body = h.Moved(dir, speed)
	}
}

// loseHeart removes one heart, never dropping below zero.
func (h *Hero) loseHeart() {
	if h.Hearts > 0 {
		h.Hearts--
	}
}

// gainHeart adds one heart if below the cap and reports whether it did.
func (h *Hero) gainHeart() bool {
	if h.Hearts >= MaxHearts {
		return false
	}
	h.Hearts++
	return true
}
