package sim

import "github.com/vovakirdan/rocket-arcade/internal/core"

// Kind tags the entity variants. Per-kind rules (radius, motion, expiry)
// are selected by switching on it.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBullet
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Action is one of the four ship controls.
type Action uint8

const (
	ActionShoot Action = iota
	ActionBoost
	ActionRotateLeft
	ActionRotateRight
)

// ParseAction maps a wire name ("shoot", "boost", "left", "right") to an Action.
func ParseAction(name string) (Action, bool) {
	switch name {
	case "shoot":
		return ActionShoot, true
	case "boost":
		return ActionBoost, true
	case "left", "rotate_left":
		return ActionRotateLeft, true
	case "right", "rotate_right":
		return ActionRotateRight, true
	default:
		return 0, false
	}
}

// Actions are the latched control flags read by each update.
type Actions struct {
	Shoot       bool
	Boost       bool
	RotateLeft  bool
	RotateRight bool
}

// Set changes one flag.
func (a *Actions) Set(act Action, on bool) {
	switch act {
	case ActionShoot:
		a.Shoot = on
	case ActionBoost:
		a.Boost = on
	case ActionRotateLeft:
		a.RotateLeft = on
	case ActionRotateRight:
		a.RotateRight = on
	}
}

// Body is the motion record every entity carries.
type Body struct {
	Pos     core.Vector
	Vel     core.Vector
	Heading float64 // Radians, 0 = +X, clockwise on screen
}

// Position implements core.Position.
func (b Body) Position() (float64, float64) {
	return b.Pos.X, b.Pos.Y
}

// Direction implements core.Advance.
func (b Body) Direction() float64 {
	return b.Heading
}

func (b *Body) integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// contain maps the body back into the arena. A clamped body loses the
// velocity component that pushed it into the wall.
func (b *Body) contain(size core.Size, policy core.Boundary) {
	p, hitX, hitY := size.Contain(b.Pos, policy)
	b.Pos = p
	if hitX {
		b.Vel.X = 0
	}
	if hitY {
		b.Vel.Y = 0
	}
}

// Player is the ship. Exactly one exists per world.
type Player struct {
	Body
	Cooldown float64 // Seconds until the gun may fire again
	Boosting bool    // Thrust was applied during the last update
}

// Behavior selects how an enemy moves.
type Behavior uint8

const (
	BehaviorDrift Behavior = iota // Keeps its spawn velocity
	BehaviorChase                 // Re-aims at the ship every update
)

// Enemy is a hostile rock.
type Enemy struct {
	Body
	Behavior Behavior
}

// Bullet flies straight until its TTL runs out or it hits an enemy.
type Bullet struct {
	Body
	TTL float64
}

// Particle is a short-lived effect; its render size shrinks with TTL.
type Particle struct {
	Body
	TTL   float64
	Trail bool // Engine exhaust rather than explosion debris
}

// ttlEpsilon absorbs float drift when subtracting many small steps from a TTL.
const ttlEpsilon = 1e-9

func expired(ttl float64) bool {
	return ttl <= ttlEpsilon
}
