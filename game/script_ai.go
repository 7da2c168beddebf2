package game

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"slices"
	"sync"

	"github.com/dop251/goja"
)

// ScriptContext is passed to autopilot scripts as input
type ScriptContext struct {
	PlayerX float64 `json:"playerX"`
	PlayerY float64 `json:"playerY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Energy  float64 `json:"energy"`
	Gold    float64 `json:"gold"`
	Elapsed float64 `json:"elapsed"`

	// Nearby actors, closest first
	Actors []ActorInfo `json:"actors"`
}

// ActorInfo describes one actor to a script
type ActorInfo struct {
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Distance  float64 `json:"distance"`
	Angle     float64 `json:"angle"`
}

// ScriptDecision is returned from autopilot scripts
type ScriptDecision struct {
	// Movement direction (-1 to 1 for each axis)
	MoveX float64 `json:"moveX"`
	MoveY float64 `json:"moveY"`

	// Aim point in world coordinates
	AimX float64 `json:"aimX"`
	AimY float64 `json:"aimY"`
}

// scriptNearbyRadius bounds how much of the island a script sees
const scriptNearbyRadius = 600.0

// scriptDeadzone is the movement magnitude below which a key is not held
const scriptDeadzone = 0.3

// ScriptInput drives the player from a JavaScript decide(ctx) function run
// by goja. It implements InputProvider.
type ScriptInput struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	decide goja.Callable
	logger *log.Logger

	lastErr error
}

// NewScriptInput compiles code and checks that it defines decide
func NewScriptInput(code string, logger *log.Logger) (*ScriptInput, error) {
	if logger == nil {
		logger = log.Default()
	}

	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	decide, ok := goja.AssertFunction(vm.Get("decide"))
	if !ok {
		return nil, fmt.Errorf("script must define a 'decide' function")
	}

	return &ScriptInput{vm: vm, decide: decide, logger: logger}, nil
}

// Err returns the last script failure, if any
func (s *ScriptInput) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Poll runs decide against the current view. A failing script leaves the
// player standing still and aiming where it was.
func (s *ScriptInput) Poll(view View) InputState {
	s.mu.Lock()
	defer s.mu.Unlock()

	decision, err := s.run(BuildScriptContext(view))
	if err != nil {
		if s.lastErr == nil || s.lastErr.Error() != err.Error() {
			s.logger.Printf("autopilot script failed: %v", err)
		}
		s.lastErr = err
		return InputState{PointerX: view.PlayerX + 1, PointerY: view.PlayerY}
	}
	s.lastErr = nil

	return InputState{
		Up:       decision.MoveY < -scriptDeadzone,
		Down:     decision.MoveY > scriptDeadzone,
		Left:     decision.MoveX < -scriptDeadzone,
		Right:    decision.MoveX > scriptDeadzone,
		PointerX: decision.AimX,
		PointerY: decision.AimY,
	}
}

func (s *ScriptInput) run(ctx ScriptContext) (ScriptDecision, error) {
	// Round-trip through JSON so the script sees plain objects with json names
	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return ScriptDecision{}, fmt.Errorf("failed to serialize context: %w", err)
	}
	var plain map[string]interface{}
	if err := json.Unmarshal(ctxJSON, &plain); err != nil {
		return ScriptDecision{}, fmt.Errorf("failed to serialize context: %w", err)
	}

	result, err := s.decide(goja.Undefined(), s.vm.ToValue(plain))
	if err != nil {
		return ScriptDecision{}, fmt.Errorf("decide function failed: %w", err)
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return ScriptDecision{}, fmt.Errorf("failed to serialize result: %w", err)
	}

	var decision ScriptDecision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return ScriptDecision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, string(resultJSON))
	}
	return decision, nil
}

// LoadAutopilot returns the script input selected by a front-end's flags, or
// nil for manual play. A script file wins over the built-in autopilot.
func LoadAutopilot(builtin bool, path string, logger *log.Logger) (InputProvider, error) {
	var code string
	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read autopilot script: %w", err)
		}
		code = string(data)
	case builtin:
		code = AutopilotScript
	default:
		return nil, nil
	}

	in, err := NewScriptInput(code, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load autopilot %q: %w", path, err)
	}
	return in, nil
}

// BuildScriptContext creates a ScriptContext from a view, listing live
// actors within scriptNearbyRadius of the player, closest first.
func BuildScriptContext(view View) ScriptContext {
	ctx := ScriptContext{
		PlayerX: view.PlayerX,
		PlayerY: view.PlayerY,
		Width:   view.Width,
		Height:  view.Height,
		Energy:  view.Energy,
		Gold:    view.Gold,
		Elapsed: view.Elapsed,
		Actors:  make([]ActorInfo, 0, len(view.Actors)),
	}

	for _, a := range view.Actors {
		if a.MarkedForDeletion {
			continue
		}
		dx := a.X - view.PlayerX
		dy := a.Y - view.PlayerY
		dist := math.Hypot(dx, dy)
		if dist > scriptNearbyRadius {
			continue
		}
		ctx.Actors = append(ctx.Actors, ActorInfo{
			Kind:      a.Kind.String(),
			X:         a.X,
			Y:         a.Y,
			Health:    a.Health,
			MaxHealth: a.MaxHealth,
			Distance:  dist,
			Angle:     math.Atan2(dy, dx),
		})
	}

	slices.SortStableFunc(ctx.Actors, func(a, b ActorInfo) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return ctx
}

// AutopilotScript walks to the nearest chest, crab, or pirate and swings at
// it while steering clear of rocks.
const AutopilotScript = `
function decide(ctx) {
  var target = null;
  var rock = null;
  for (var i = 0; i < ctx.actors.length; i++) {
    var a = ctx.actors[i];
    if (a.kind === "rock") {
      if (rock === null) rock = a;
      continue;
    }
    if (a.kind === "cannonball") continue;
    if (target === null) target = a;
  }

  if (target === null) {
    var cx = ctx.width / 2 - ctx.playerX;
    var cy = ctx.height / 2 - ctx.playerY;
    return { moveX: Math.sign(cx), moveY: Math.sign(cy), aimX: ctx.playerX + 1, aimY: ctx.playerY };
  }

  var aimX = target.x, aimY = target.y;
  var moveX = 0, moveY = 0;
  if (target.distance > 70) {
    moveX = Math.cos(target.angle);
    moveY = Math.sin(target.angle);
  }
  if (rock !== null && rock.distance < 110) {
    moveX -= Math.cos(rock.angle);
    moveY -= Math.sin(rock.angle);
    if (Math.abs(rock.angle - target.angle) < 0.6) {
      aimX = ctx.playerX + Math.cos(target.angle + 1.2) * 10;
      aimY = ctx.playerY + Math.sin(target.angle + 1.2) * 10;
    }
  }
  return { moveX: moveX, moveY: moveY, aimX: aimX, aimY: aimY };
}
`
