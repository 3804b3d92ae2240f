package game

import "math/rand"

// PowerUpKind identifies what a pickup grants.
type PowerUpKind int

const (
	PowerUpWalkingBomb PowerUpKind = iota // Grants the walking bomb
	PowerUpRadius                         // Conventional bomb radius 2
	PowerUpExtraLife                      // +1 heart, or bonus score at full hearts
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpWalkingBomb:
		return "walking-bomb"
	case PowerUpRadius:
		return "radius"
	case PowerUpExtraLife:
		return "extra-life"
	}
	return "unknown"
}

// Instruction is the HUD text shown the first time the pickup is collected.
func (k PowerUpKind) Instruction() string {
	switch k {
	case PowerUpWalkingBomb:
		return "Walking Bomb: use the arrow keys to move it, press J to detonate."
	case PowerUpRadius:
		return "Power+1: bomb radius increased to 2 tiles!"
	case PowerUpExtraLife:
		return "Extra Life: +1 heart, or +100 points at full health!"
	}
	return ""
}

// Loot weights, in percent.
const (
	weightWalkingBomb = 45
	weightRadius      = 35
)

// drawPowerUp picks a kind with a 45/35/20 split.
func drawPowerUp(rng *rand.Rand) PowerUpKind {
	roll := rng.Intn(100)
	switch {
	case roll < weightWalkingBomb:
		return PowerUpWalkingBomb
	case roll < weightWalkingBomb+weightRadius:
		return PowerUpRadius
	default:
		return PowerUpExtraLife
	}
}

// PowerUp is a pickup left behind by a destroyed crate.
type PowerUp struct {
	Pos              Position    `json:"pos"`
	Kind             PowerUpKind `json:"kind"`
	Picked           bool        `json:"picked"`
	InstructionShown bool        `json:"instruction_shown"`
}
