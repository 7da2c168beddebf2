package game

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAutopilotChasesChest(t *testing.T) {
	s, err := NewScriptInput(AutopilotScript, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptInput failed: %v", err)
	}

	view := View{
		PlayerX: 400,
		PlayerY: 300,
		Width:   800,
		Height:  600,
		Actors: []*Actor{
			NewActor(ActorChest, 700, 300),
			NewActor(ActorChest, 100, 300),
		},
	}
	view.Actors[1].MarkedForDeletion = true

	in := s.Poll(view)
	if err := s.Err(); err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	if !in.Right || in.Left || in.Up || in.Down {
		t.Errorf("Expected to walk right only, got %+v", in)
	}
	if in.PointerX != 700 || in.PointerY != 300 {
		t.Errorf("Expected aim at the chest, got (%f, %f)", in.PointerX, in.PointerY)
	}
}

func TestAutopilotHeadsHomeWhenAlone(t *testing.T) {
	s, err := NewScriptInput(AutopilotScript, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptInput failed: %v", err)
	}

	in := s.Poll(View{PlayerX: 100, PlayerY: 500, Width: 800, Height: 600})
	if !in.Right || !in.Up {
		t.Errorf("Expected to head for the center, got %+v", in)
	}
}

func TestScriptMustDefineDecide(t *testing.T) {
	if _, err := NewScriptInput("var x = 1;", quietLogger()); err == nil {
		t.Error("Expected error for a script without decide")
	}
	if _, err := NewScriptInput("function decide(", quietLogger()); err == nil {
		t.Error("Expected parse error")
	}
}

func TestScriptFailureStandsStill(t *testing.T) {
	s, err := NewScriptInput(`function decide(ctx) { throw new Error("boom"); }`, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptInput failed: %v", err)
	}

	in := s.Poll(View{PlayerX: 10, PlayerY: 20})
	if s.Err() == nil {
		t.Fatal("Expected the thrown error to be recorded")
	}
	if in.Up || in.Down || in.Left || in.Right {
		t.Errorf("Expected no movement after a failure, got %+v", in)
	}
}

func TestBuildScriptContextSortsAndFilters(t *testing.T) {
	view := View{
		PlayerX: 0,
		PlayerY: 0,
		Actors: []*Actor{
			NewActor(ActorCrab, 300, 0),
			NewActor(ActorRock, 100, 0),
			NewActor(ActorPirate, 2000, 0),
		},
	}
	ctx := BuildScriptContext(view)
	if len(ctx.Actors) != 2 {
		t.Fatalf("Expected 2 nearby actors, got %d", len(ctx.Actors))
	}
	if ctx.Actors[0].Kind != "rock" || ctx.Actors[1].Kind != "crab" {
		t.Errorf("Expected rock then crab, got %s then %s", ctx.Actors[0].Kind, ctx.Actors[1].Kind)
	}
}

func TestBuildScriptContextKeepsOrderOnTies(t *testing.T) {
	view := View{
		Actors: []*Actor{
			NewActor(ActorChest, 0, 50),
			NewActor(ActorCrab, 50, 0),
			NewActor(ActorRock, 10, 0),
		},
	}
	ctx := BuildScriptContext(view)
	got := []string{ctx.Actors[0].Kind, ctx.Actors[1].Kind, ctx.Actors[2].Kind}
	if got[0] != "rock" || got[1] != "chest" || got[2] != "crab" {
		t.Errorf("Expected rock, chest, crab, got %v", got)
	}
}

func TestScriptDrivesGame(t *testing.T) {
	g := newTestGame(t, func(c *Config) {
		c.InitialChests = 5
	})
	s, err := NewScriptInput(AutopilotScript, quietLogger())
	if err != nil {
		t.Fatalf("NewScriptInput failed: %v", err)
	}
	g.SetInput(s)
	g.StartRun()

	for i := 0; i < 600 && g.State() == StatePlaying; i++ {
		g.Tick(frame)
	}
	if s.Err() != nil {
		t.Fatalf("Script failed mid-run: %v", s.Err())
	}
	if countKind(g.Actors(), ActorChest) == 5 && g.Effects().CoinsInFlight() == 0 && g.Gold() == 0 {
		t.Error("Expected the autopilot to break at least one chest in 10 seconds")
	}
}

func TestLoadAutopilot(t *testing.T) {
	in, err := LoadAutopilot(false, "", quietLogger())
	if err != nil || in != nil {
		t.Fatalf("Expected manual play, got %v, %v", in, err)
	}

	in, err = LoadAutopilot(true, "", quietLogger())
	if err != nil {
		t.Fatalf("Built-in autopilot failed: %v", err)
	}
	if _, ok := in.(*ScriptInput); !ok {
		t.Errorf("Expected *ScriptInput, got %T", in)
	}

	path := filepath.Join(t.TempDir(), "bot.js")
	if err := os.WriteFile(path, []byte("function decide(ctx) { return {moveX: 1}; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err = LoadAutopilot(true, path, quietLogger())
	if err != nil {
		t.Fatalf("Script file failed: %v", err)
	}
	if got := in.Poll(View{}); !got.Right {
		t.Errorf("Expected the file script to win, got %+v", got)
	}

	if _, err := LoadAutopilot(false, filepath.Join(t.TempDir(), "missing.js"), quietLogger()); err == nil {
		t.Error("Expected error for a missing script file")
	}
}

func TestEnvInt64(t *testing.T) {
	t.Setenv("ISLANDBRAWL_TEST_SEED", "1234")
	if got := EnvInt64("ISLANDBRAWL_TEST_SEED", 7); got != 1234 {
		t.Errorf("Expected 1234, got %d", got)
	}
	t.Setenv("ISLANDBRAWL_TEST_SEED", "abc")
	if got := EnvInt64("ISLANDBRAWL_TEST_SEED", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
	t.Setenv("ISLANDBRAWL_TEST_SEED", "")
	if got := EnvInt64("ISLANDBRAWL_TEST_SEED", 7); got != 7 {
		t.Errorf("Expected fallback 7 when unset, got %d", got)
	}
}
