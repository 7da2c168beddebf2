package game

// InputState is one frame's snapshot of the controls
type InputState struct {
	// Held movement keys
	Up, Down, Left, Right bool

	// PointerX, PointerY is the aim point in world coordinates
	PointerX, PointerY float64
}

// View is the read-only slice of the simulation an input provider may look
// at before deciding. Autopilots need it; devices ignore it.
type View struct {
	PlayerX, PlayerY float64
	Width, Height    float64
	Energy           float64
	Gold             float64
	Elapsed          float64

	// Actors is the live actor list; providers must not modify it
	Actors []*Actor
}

// InputProvider defines the interface for the player's controls
type InputProvider interface {
	// Poll returns the controls for this frame
	Poll(view View) InputState
}

// FixedInput replays the same snapshot every frame
type FixedInput struct {
	State InputState
}

func (f *FixedInput) Poll(View) InputState {
	return f.State
}

// movement converts held keys into a unit vector
func (in InputState) movement() (float64, float64) {
	var dx, dy float64
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if dx != 0 && dy != 0 {
		dx *= 1 / sqrt2
		dy *= 1 / sqrt2
	}
	return dx, dy
}

const sqrt2 = 1.4142135623730951
