package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// GameState is the authoritative state of a run, owned by the Engine.
// Renderers receive deep copies via Snapshot and must not mutate the live one.
type GameState struct {
	Grid        Grid         `json:"grid"`
	TileSize    int          `json:"tile_size"`
	Hero        *Hero        `json:"hero"`
	Drones      []*Drone     `json:"drones"`
	Bombs       []*Bomb      `json:"bombs"`
	WalkingBomb *WalkingBomb `json:"walking_bomb,omitempty"`
	PowerUps    []*PowerUp   `json:"powerups"`

	Level           int       `json:"level"`
	LevelCount      int       `json:"level_count"`
	RequiredCrates  int       `json:"required_crates"`
	DestroyedCrates int       `json:"destroyed_crates"`
	Exit            *Position `json:"exit,omitempty"` // Unset until the crate threshold is met
	Score           int       `json:"score"`
	GameOver        bool      `json:"game_over"`
	Finished        bool      `json:"finished"`

	Message      string        `json:"message,omitempty"`
	MessageUntil time.Duration `json:"message_until"`
	Clock        time.Duration `json:"clock"` // Simulated time since the run started
}

// Engine is the game model: it owns the grid and every entity collection,
// runs the per-tick update, and is the only place tiles are mutated.
type Engine struct {
	State  *GameState
	Config GameConfig

	collide        CollisionChecker
	loot           *rand.Rand
	powerUpsPlaced int
	powerUpQuota   int
}

// NewEngine creates an engine with the configured start level loaded.
func NewEngine(config GameConfig) *Engine {
	e := &Engine{
		Config:  config,
		collide: CollisionChecker{TileSize: config.TileSize},
	}
	e.Reset()
	return e
}

// Reset starts a fresh run: new hero, zero score, start level.
func (e *Engine) Reset() {
	e.State = &GameState{
		TileSize:   e.Config.TileSize,
		Hero:       NewHero(),
		LevelCount: len(e.Config.Levels),
	}
	start := e.Config.StartLevel
	if start < 1 {
		start = 1
	}
	e.LoadLevel(start)
}

// LoadLevel regenerates the grid for level n and resets every level-scoped
// counter. The hero keeps hearts, score and powerups.
func (e *Engine) LoadLevel(n int) {
	s := e.State
	layout := GenerateLevel(n, e.Config)
	spec := e.Config.level(n)

	s.Level = n
	s.Grid = layout.Grid
	s.Bombs = nil
	s.WalkingBomb = nil
	s.PowerUps = nil
	s.DestroyedCrates = 0
	s.RequiredCrates = spec.RequiredCrates
	s.Exit = nil

	s.Drones = make([]*Drone, 0, len(layout.Drones))
	for _, pd := range layout.Drones {
		kind, speed := NormalDrone, e.Config.DroneSpeed
		if pd.Fast {
			kind, speed = FastDrone, e.Config.fastDroneSpeed()
		}
		s.Drones = append(s.Drones, NewDrone(pd.Pos, kind, pd.Dir, speed, e.Config.TileSize))
	}

	e.loot = rand.New(rand.NewSource(e.Config.LootSeed + int64(n)))
	e.powerUpsPlaced = 0
	e.powerUpQuota = spec.PowerUpQuota

	s.Hero.respawn(e.Config.HeroSpawn, e.Config.TileSize, s.Clock+e.Config.Invulnerability)
	log.Printf("[GAME] Level %d loaded: %d crates, %d drones, exit after %d",
		n, s.Grid.Count(Destructible), len(s.Drones), s.RequiredCrates)
}

// Update advances the simulation by dt. Order is fixed: hero, drones,
// walking bomb, bomb fuses, pickups, contact damage, exit, cleanup.
func (e *Engine) Update(dt time.Duration, in Input) {
	s := e.State
	if s.GameOver || s.Finished {
		return
	}
	s.Clock += dt

	e.updateHero(in)
	for _, d := range s.Drones {
		d.update(s.Grid, e.collide)
	}
	e.updateWalkingBomb(in)
	e.tickBombs(dt)
	e.checkPickups()
	e.checkDroneContact()
	if e.checkExit() {
		return
	}
	e.cleanup()
	e.expireMessage()
}

// HeroTile returns the tile the hero currently occupies.
func (e *Engine) HeroTile() Position {
	return e.State.Hero.Tile(e.Config.TileSize)
}

func (e *Engine) updateHero(in Input) {
	s := e.State
	s.Hero.move(in, s.Grid, e.collide, e.Config.HeroSpeed)

	if in.Place {
		e.placeExplosive()
	}

	// Seal each bomb's tile once the hero has stepped off it.
	here := e.HeroTile()
	for _, b := range s.Bombs {
		if b.Exploded || b.sealed || b.Pos == here {
			continue
		}
		if t := s.Grid.At(b.Pos); t != nil {
			t.SetWalkable(false)
		}
		b.sealed = true
	}
}

// placeExplosive spawns a walking bomb when the hero holds that powerup and
// none exists, otherwise places a conventional bomb if none is active.
func (e *Engine) placeExplosive() {
	s := e.State
	here := e.HeroTile()
	if !s.Grid.InBounds(here) {
		return
	}

	if s.Hero.WalkingBombPower && s.WalkingBomb == nil {
		s.WalkingBomb = NewWalkingBomb(here, e.Config.TileSize)
		return
	}

	for _, b := range s.Bombs {
		if !b.Exploded {
			return
		}
	}
	s.Bombs = append(s.Bombs, NewBomb(here, e.Config.BombFuse, s.Hero.RadiusBoost))
}

func (e *Engine) updateWalkingBomb(in Input) {
	w := e.State.WalkingBomb
	if w == nil {
		return
	}
	w.update(in, e.State.Grid, e.collide, e.Config.WalkingBombSpeed)
	if in.Detonate {
		w.Detonate(e)
	}
}

func (e *Engine) tickBombs(dt time.Duration) {
	for _, b := range e.State.Bombs {
		b.DecreaseTime(dt, e)
	}
}

// BombRadius reads the hero's current radius boost, not the flag captured at
// placement.
func (e *Engine) BombRadius(_ *Bomb) int {
	return e.State.Hero.BlastRadius()
}

// ExplodeAt destroys the center and propagates up to radius tiles in each
// cardinal direction, stopping at pillars, barriers and after the first crate.
// Drones and the hero on the cross are then damaged.
func (e *Engine) ExplodeAt(center Position, radius int) {
	s := e.State
	if !s.Grid.InBounds(center) {
		return
	}
	for _, p := range s.Grid.ExplosionCross(center, radius) {
		e.DestroyTile(p)
	}
	e.damageCross(center, radius)
}

// ExplodeCrossAt destroys every non-blocking cell on the cross up to radius
// regardless of crates in between, then damages entities on the cross.
func (e *Engine) ExplodeCrossAt(center Position, radius int) {
	s := e.State
	if !s.Grid.InBounds(center) {
		return
	}
	for _, p := range s.Grid.FullCross(center, radius) {
		e.DestroyTile(p)
	}
	e.damageCross(center, radius)
}

// DestroyTile replaces a crate with floor and runs the crate side effects.
// Every other tile, and any out-of-range position, is left untouched.
func (e *Engine) DestroyTile(p Position) {
	s := e.State
	t := s.Grid.At(p)
	if t == nil {
		return
	}
	switch t.Kind {
	case Destructible:
		s.Grid[p.Row][p.Col] = NewWalkableTile(p.Row, p.Col)
		e.onCrateDestroyed(p)
	case Walkable, Indestructible, Barrier:
	}
}

func (e *Engine) onCrateDestroyed(p Position) {
	s := e.State
	s.DestroyedCrates++
	s.Score += ScoreCrate
	if s.Exit == nil && s.DestroyedCrates >= s.RequiredCrates {
		exit := p
		s.Exit = &exit
		e.say("The exit is open!")
	}
	if e.powerUpsPlaced < e.powerUpQuota {
		s.PowerUps = append(s.PowerUps, &PowerUp{Pos: p, Kind: drawPowerUp(e.loot)})
		e.powerUpsPlaced++
	}
}

func (e *Engine) damageCross(center Position, radius int) {
	s := e.State
	ts := e.Config.TileSize
	for _, d := range s.Drones {
		if d.Dead || !center.OnCross(d.Tile(ts), radius) {
			continue
		}
		d.markDead(s.Clock, e.Config.DroneDeathDisplay)
		s.Score += ScoreDrone
	}
	if center.OnCross(e.HeroTile(), radius) {
		e.HandleHeroDeath()
	}
}

// HandleHeroDeath costs the hero a heart unless invulnerable. At zero hearts
// the run is over; otherwise the hero respawns with a fresh grace window.
func (e *Engine) HandleHeroDeath() {
	s := e.State
	h := s.Hero
	if s.GameOver || h.Invulnerable(s.Clock) {
		return
	}
	h.loseHeart()
	if h.Hearts == 0 {
		s.GameOver = true
		log.Printf("[GAME] Game over on level %d with score %d", s.Level, s.Score)
		return
	}
	h.respawn(e.Config.HeroSpawn, e.Config.TileSize, s.Clock+e.Config.Invulnerability)
	log.Printf("[GAME] Hero hit, %d hearts left", h.Hearts)
}

func (e *Engine) checkPickups() {
	s := e.State
	here := e.HeroTile()
	for _, pu := range s.PowerUps {
		if pu.Picked || pu.Pos != here {
			continue
		}
		pu.Picked = true
		switch pu.Kind {
		case PowerUpWalkingBomb:
			s.Hero.WalkingBombPower = true
		case PowerUpRadius:
			s.Hero.RadiusBoost = true
		case PowerUpExtraLife:
			if !s.Hero.gainHeart() {
				s.Score += ScoreExtraLifeFull
			}
		}
		if !pu.InstructionShown {
			pu.InstructionShown = true
			e.say(pu.Kind.Instruction())
		}
	}
}

func (e *Engine) checkDroneContact() {
	s := e.State
	hero := s.Hero.Bounds()
	for _, d := range s.Drones {
		if !d.Dead && hero.Overlaps(d.Bounds()) {
			e.HandleHeroDeath()
			return
		}
	}
}

// checkExit advances the level when the hero stands on an open exit and
// reports whether it did.
func (e *Engine) checkExit() bool {
	s := e.State
	if s.GameOver || s.Exit == nil || e.HeroTile() != *s.Exit {
		return false
	}
	if s.Level >= len(e.Config.Levels) {
		s.Finished = true
		log.Printf("[GAME] All %d levels cleared with score %d", len(e.Config.Levels), s.Score)
		return true
	}
	log.Printf("[GAME] Level %d cleared", s.Level)
	e.LoadLevel(s.Level + 1)
	e.say(fmt.Sprintf("Level %d", s.Level))
	return true
}

// cleanup drops exploded bombs, reopening their tiles, and picked powerups.
func (e *Engine) cleanup() {
	s := e.State
	bombs := s.Bombs[:0]
	for _, b := range s.Bombs {
		if !b.Exploded {
			bombs = append(bombs, b)
			continue
		}
		if t := s.Grid.At(b.Pos); t != nil && t.Kind == Walkable {
			t.SetWalkable(true)
		}
	}
	s.Bombs = bombs

	if s.WalkingBomb != nil && s.WalkingBomb.Exploded {
		s.WalkingBomb = nil
	}

	pickups := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		if !pu.Picked {
			pickups = append(pickups, pu)
		}
	}
	s.PowerUps = pickups
}

func (e *Engine) say(msg string) {
	e.State.Message = msg
	e.State.MessageUntil = e.State.Clock + e.Config.MessageDuration
}

func (e *Engine) expireMessage() {
	if e.State.Message != "" && e.State.Clock >= e.State.MessageUntil {
		e.State.Message = ""
	}
}

// InDanger reports whether p lies in the blast of any live explosive.
func (e *Engine) InDanger(p Position) bool {
	return e.State.InDanger(p)
}
