package game

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/scene"
)

// MaxPitch limits how far the player can look up or down, in degrees.
const MaxPitch = 80

// Input is one frame's worth of player intent, each axis in [-1, 1].
type Input struct {
	Strafe  float64 // +1 right
	Forward float64 // +1 ahead
	Turn    float64 // +1 turns right
	Look    float64 // +1 looks up
}

// Player is the camera-carrying avatar. Its embedded Object is the
// renderer's viewpoint.
type Player struct {
	scene.Object

	MoveSpeed float64 // World units per second
	TurnSpeed float64 // Degrees per second

	yaw, pitch       float64 // Targets in degrees
	yawVel, pitchVel float64
	spring           harmonica.Spring
}

// NewPlayer creates a player at pos. fps is the frame rate Update will be
// called at, used to step the turn smoothing.
func NewPlayer(pos math3d.Vec3, moveSpeed, turnSpeed float64, fps int) *Player {
	p := &Player{
		Object:    scene.NewObject(),
		MoveSpeed: moveSpeed,
		TurnSpeed: turnSpeed,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 12.0, 1.0),
	}
	p.Position = pos
	return p
}

// Yaw returns the target heading in degrees.
func (p *Player) Yaw() float64 { return p.yaw }

// Pitch returns the target pitch in degrees.
func (p *Player) Pitch() float64 { return p.pitch }

// Update turns and moves the player for a frame lasting dt seconds.
func (p *Player) Update(dt float64, in Input) {
	p.yaw -= in.Turn * p.TurnSpeed * dt
	p.pitch = math3d.Clamp(p.pitch+in.Look*p.TurnSpeed*dt, -MaxPitch, MaxPitch)

	// Critically damped, so the eased angles never overshoot the targets.
	p.Rotation.Y, p.yawVel = p.spring.Update(p.Rotation.Y, p.yawVel, p.yaw)
	p.Rotation.X, p.pitchVel = p.spring.Update(p.Rotation.X, p.pitchVel, p.pitch)
	p.Rotation.X = math3d.Clamp(p.Rotation.X, -MaxPitch, MaxPitch)

	move := math3d.V3(in.Strafe, 0, -in.Forward)
	if move.LenSq() > 1 {
		move = move.Normalize()
	}
	// Walking follows the heading only, so looking down does not sink the camera.
	step := math3d.RotateYDeg(p.Rotation.Y).MulVec3Dir(move).Scale(p.MoveSpeed * dt)
	p.Position = p.Position.Add(step)
}
