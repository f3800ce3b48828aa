package game

import (
	"sync"
	"time"
)

// Action is a bindable player control.
type Action int

const (
	MoveForward Action = iota
	MoveBack
	StrafeLeft
	StrafeRight
	TurnLeft
	TurnRight
	LookUp
	LookDown
	actionCount
)

// HoldTime is how long a terminal key press counts as held. Terminals
// rarely report releases, so a press stays active until its auto-repeat
// stops refreshing it.
const HoldTime = 150 * time.Millisecond

// Keys tracks which actions are held. The terminal event goroutine writes
// it while the frame loop reads it.
type Keys struct {
	mu    sync.Mutex
	until [actionCount]time.Time
}

// Press marks a as held from now.
func (k *Keys) Press(a Action, now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.until[a] = now.Add(HoldTime)
}

// Release clears a.
func (k *Keys) Release(a Action) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.until[a] = time.Time{}
}

// Input converts the actions held at now into player input.
func (k *Keys) Input(now time.Time) Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := func(a Action) float64 {
		if now.Before(k.until[a]) {
			return 1
		}
		return 0
	}
	return Input{
		Forward: held(MoveForward) - held(MoveBack),
		Strafe:  held(StrafeRight) - held(StrafeLeft),
		Turn:    held(TurnRight) - held(TurnLeft),
		Look:    held(LookUp) - held(LookDown),
	}
}

// Bindings maps terminal key names to actions.
var Bindings = map[string]Action{
	"w":     MoveForward,
	"s":     MoveBack,
	"a":     StrafeLeft,
	"d":     StrafeRight,
	"left":  TurnLeft,
	"right": TurnRight,
	"up":    LookUp,
	"down":  LookDown,
}
