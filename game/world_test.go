package game

import (
	"math"
	"testing"
)

func testWorld() *World {
	cfg := DefaultConfig()
	cfg.ScreenWidth = 640
	cfg.ScreenHeight = 480
	cfg.CellSize = 100
	return NewWorld(cfg)
}

func TestWorldToCellClamps(t *testing.T) {
	w := testWorld()
	countX, countY := w.CellCounts()
	if countX != 7 || countY != 5 {
		t.Fatalf("Expected 7x5 cells, got %dx%d", countX, countY)
	}

	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{50, 50, 0, 0},
		{150, 250, 1, 2},
		{-500, -500, 0, 0},
		{5000, 5000, 6, 4},
	}
	for _, tt := range tests {
		cx, cy := w.WorldToCell(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("WorldToCell(%.0f, %.0f): expected (%d, %d), got (%d, %d)", tt.x, tt.y, tt.cx, tt.cy, cx, cy)
		}
	}
}

func TestWorldMoveTracksCells(t *testing.T) {
	w := testWorld()
	a := NewActor(ActorCrab, 50, 50)
	w.Register(a)

	a.X, a.Y = 350, 250
	w.Move(a)

	if w.GetCell(0, 0).Len() != 0 {
		t.Error("Expected old cell emptied")
	}
	if cell := w.GetCell(3, 2); cell.Len() != 1 || !cell.Contains(a) {
		t.Error("Expected actor in new cell")
	}

	w.Unregister(a)
	if w.GetCell(3, 2).Len() != 0 {
		t.Error("Expected actor removed")
	}
}

func TestActorsInRadius(t *testing.T) {
	w := testWorld()
	near := NewActor(ActorChest, 210, 200)
	edge := NewActor(ActorChest, 200, 280)
	far := NewActor(ActorChest, 500, 400)
	dead := NewActor(ActorChest, 200, 200)
	dead.MarkedForDeletion = true
	for _, a := range []*Actor{near, edge, far, dead} {
		w.Register(a)
	}

	got := w.ActorsInRadius(200, 200, 80)
	if len(got) != 2 {
		t.Fatalf("Expected 2 actors, got %d", len(got))
	}
	for _, a := range got {
		if a == far || a == dead {
			t.Errorf("Unexpected actor at (%.0f, %.0f)", a.X, a.Y)
		}
	}
}

func TestActorsInRadiusFindsStaleCells(t *testing.T) {
	w := testWorld()
	a := NewActor(ActorCrab, 190, 190)
	w.Register(a)

	// Moved across a cell border without a Move call
	a.X = 210
	got := w.ActorsInRadius(215, 190, 20)
	if len(got) != 1 {
		t.Errorf("Expected stale-cell actor found, got %d", len(got))
	}
}

func TestPushApart(t *testing.T) {
	w := testWorld()
	c := NewContactSystem(w)

	a := NewActor(ActorCrab, 100, 100)
	b := NewActor(ActorCrab, 110, 100)
	w.Register(a)
	w.Register(b)
	c.PushApart(a, b)

	want := contactRadius(a) + contactRadius(b)
	if d := b.X - a.X; math.Abs(d-want) > 1e-9 {
		t.Errorf("Expected separation %f, got %f", want, d)
	}
	if math.Abs((a.X+b.X)/2-105) > 1e-9 {
		t.Errorf("Expected symmetric push, midpoint %f", (a.X+b.X)/2)
	}

	crab := NewActor(ActorCrab, 100, 300)
	rock := NewActor(ActorRock, 105, 300)
	w.Register(crab)
	w.Register(rock)
	c.PushApart(crab, rock)
	if rock.X != 105 {
		t.Errorf("Static rock moved to %f", rock.X)
	}
	if crab.X >= 100 {
		t.Errorf("Expected crab pushed off the rock, x=%f", crab.X)
	}
}

func TestPushApartCoincident(t *testing.T) {
	w := testWorld()
	c := NewContactSystem(w)
	a := NewActor(ActorCrab, 100, 100)
	b := NewActor(ActorCrab, 100, 100)
	c.PushApart(a, b)
	if a.X == b.X && a.Y == b.Y {
		t.Error("Expected coincident actors separated")
	}
}

func TestCellSkipsMarkedActors(t *testing.T) {
	c := NewCell(2)
	alive := NewActor(ActorCrab, 10, 10)
	dead := NewActor(ActorCrab, 12, 10)
	far := NewActor(ActorCrab, 90, 10)
	dead.MarkedForDeletion = true
	for _, a := range []*Actor{alive, dead, far, alive} {
		c.Add(a)
	}

	if c.Len() != 3 {
		t.Fatalf("Expected 3 registered actors, got %d", c.Len())
	}
	if live := c.AppendWithin(nil, 0, 0, 1e9); len(live) != 2 {
		t.Errorf("Expected 2 live actors, got %d", len(live))
	}
	if near := c.AppendWithin(nil, 10, 10, 25); len(near) != 1 || near[0] != alive {
		t.Errorf("Expected only the live nearby actor, got %d", len(near))
	}

	if !c.Remove(dead) || c.Remove(dead) {
		t.Error("Expected dead actor removed exactly once")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cell, got %d", c.Len())
	}
}
