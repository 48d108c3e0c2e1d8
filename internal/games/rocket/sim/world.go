package sim

import "github.com/vovakirdan/rocket-arcade/internal/core"

// World owns every entity of one arena. Collections are insertion-ordered
// and entities have no identity beyond their index during a frame.
type World struct {
	Size      core.Size
	Player    Player
	Enemies   []Enemy
	Bullets   []Bullet
	Particles []Particle
}

// NewWorld creates a world with the ship centred, facing +X, at rest.
func NewWorld(size core.Size) World {
	return World{
		Size:   size,
		Player: Player{Body: Body{Pos: size.Center()}},
	}
}

// Each visits every body, player first, then enemies, bullets and particles
// in sequence order.
func (w *World) Each(fn func(Kind, *Body)) {
	fn(KindPlayer, &w.Player.Body)
	for i := range w.Enemies {
		fn(KindEnemy, &w.Enemies[i].Body)
	}
	for i := range w.Bullets {
		fn(KindBullet, &w.Bullets[i].Body)
	}
	for i := range w.Particles {
		fn(KindParticle, &w.Particles[i].Body)
	}
}

// respawn puts the ship back at the centre and removes every threat and shot.
// Particles stay so the explosion that caused it remains visible.
func (w *World) respawn() {
	w.Player = Player{Body: Body{Pos: w.Size.Center()}}
	w.Enemies = w.Enemies[:0]
	w.Bullets = w.Bullets[:0]
}

// GameState is the world plus session scoring.
type GameState struct {
	World    World
	Score    int // Never decreases
	GameOver bool
}

// NewGameState creates a fresh session.
func NewGameState(size core.Size) *GameState {
	return &GameState{World: NewWorld(size)}
}
