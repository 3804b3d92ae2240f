package game

import (
	"sync"
	"time"
)

// Action is a discrete intent reported by a front end.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionPlace
	ActionDetonate
	ActionBombUp
	ActionBombDown
	ActionBombLeft
	ActionBombRight
	ActionRestart
)

// HoldWindow is how long a directional press keeps moving the hero or walking
// bomb. Terminals report presses and auto-repeat but no releases.
const HoldWindow = 150 * time.Millisecond

// Driver runs an Engine at a fixed tick rate and fans out snapshots.
type Driver struct {
	engine   *Engine
	mu       sync.Mutex
	done     chan struct{}
	stopOnce sync.Once

	interval  time.Duration
	held      map[Action]int // Remaining ticks a directional press stays active
	holdTicks int
	place     bool
	detonate  bool
	restart   bool

	subscribers []func(GameState)
}

// NewDriver wraps an engine.
func NewDriver(engine *Engine) *Driver {
	hold := int(HoldWindow * time.Duration(engine.Config.Ticks()) / time.Second)
	if hold < 1 {
		hold = 1
	}
	return &Driver{
		engine:    engine,
		interval:  engine.Config.TickInterval(),
		done:      make(chan struct{}),
		held:      make(map[Action]int),
		holdTicks: hold,
	}
}

// OnTick registers a callback invoked after every tick with a copy of the state.
func (d *Driver) OnTick(fn func(GameState)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, fn)
}

// Run ticks the engine at the configured rate. It blocks until Stop is called.
func (d *Driver) Run() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			d.Step(d.interval)
		}
	}
}

// Stop halts the loop. Safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Press latches an action for the next tick.
func (d *Driver) Press(a Action) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch a {
	case ActionPlace:
		d.place = true
	case ActionDetonate:
		d.detonate = true
	case ActionRestart:
		d.restart = true
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		// A new heading replaces the old one instead of queueing behind it.
		for _, other := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
			delete(d.held, other)
		}
		d.held[a] = d.holdTicks
	case ActionBombUp, ActionBombDown, ActionBombLeft, ActionBombRight:
		for _, other := range []Action{ActionBombUp, ActionBombDown, ActionBombLeft, ActionBombRight} {
			delete(d.held, other)
		}
		d.held[a] = d.holdTicks
	}
}

// Step advances the engine by one tick of dt.
// The state is copied under the lock and subscribers run after it is released
// so they may call back into the driver.
func (d *Driver) Step(dt time.Duration) {
	d.mu.Lock()
	if d.restart {
		d.engine.Reset()
		d.restart = false
	}
	d.engine.Update(dt, d.drainInputLocked())
	state := d.engine.Snapshot()
	subs := d.subscribers
	d.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Snapshot returns a copy of the current state.
func (d *Driver) Snapshot() GameState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Snapshot()
}

// drainInputLocked builds this tick's Input and ages the latch.
// MUST be called while d.mu is held.
func (d *Driver) drainInputLocked() Input {
	in := Input{
		Up:        d.held[ActionUp] > 0,
		Down:      d.held[ActionDown] > 0,
		Left:      d.held[ActionLeft] > 0,
		Right:     d.held[ActionRight] > 0,
		BombUp:    d.held[ActionBombUp] > 0,
		BombDown:  d.held[ActionBombDown] > 0,
		BombLeft:  d.held[ActionBombLeft] > 0,
		BombRight: d.held[ActionBombRight] > 0,
		Place:     d.place,
		Detonate:  d.detonate,
	}
	for a, n := range d.held {
		if n <= 1 {
			delete(d.held, a)
		} else {
			d.held[a] = n - 1
		}
	}
	d.place = false
	d.detonate = false
	return in
}
