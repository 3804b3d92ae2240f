package game

import "time"

// DroneKind distinguishes the two patroller speeds.
type DroneKind int

const (
	NormalDrone DroneKind = iota
	FastDrone
)

// Drone is an autonomous single-axis patroller. A dead drone stops moving but
// stays in the collection until the level changes.
type Drone struct {
	Body
	Kind      DroneKind     `json:"kind"`
	Dir       Direction     `json:"dir"`
	Speed     int           `json:"speed"`
	Dead      bool          `json:"dead"`
	DeadUntil time.Duration `json:"dead_until"`

	collision bool
}

// NewDrone creates a drone centered on tile p.
func NewDrone(p Position, kind DroneKind, dir Direction, speed, tileSize int) *Drone {
	d := &Drone{
		Body:  Body{HitBox: droneHitBox},
		Kind:  kind,
		Dir:   dir,
		Speed: speed,
	}
	d.CenterOn(p, tileSize)
	return d
}

// update advances the drone one tick. A blocked leading edge reverses the
// direction on the same axis without moving.
func (d *Drone) update(g Grid, cc CollisionChecker) {
	if d.Dead {
		return
	}
	next := d.Moved(d.Dir, d.Speed)
	d.collision = !cc.CanEnter(g, d.Body, next)
	if d.collision {
		d.Dir = d.Dir.Opposite()
		return
	}
	d.Body = next
}

// markDead kills the drone and starts its death display window.
func (d *Drone) markDead(now, display time.Duration) {
	d.Dead = true
	d.DeadUntil = now + display
}

// DeathExpired reports whether a dead drone's death sprite should stop drawing.
func (d *Drone) DeathExpired(now time.Duration) bool {
	return d.Dead && now >= d.DeadUntil
}
