package game

import "testing"

func TestProfilerReportsDropsAfterWarmup(t *testing.T) {
	p := NewProfiler(t.TempDir(), quietLogger())
	var reasons []string
	p.OnDrop = func(reason string) { reasons = append(reasons, reason) }

	// 10 FPS during warmup is ignored
	for i := 0; i < 20; i++ {
		p.ObserveFrame(0.1)
	}
	if len(reasons) != 0 {
		t.Fatalf("Expected no drops during warmup, got %v", reasons)
	}

	for i := 0; i < 20; i++ {
		p.ObserveFrame(0.1)
	}
	if len(reasons) == 0 {
		t.Fatal("Expected a drop at 10 FPS")
	}
	if p.FPS() > 11 || p.FPS() < 9 {
		t.Errorf("Expected about 10 FPS, got %f", p.FPS())
	}
}

func TestProfilerQuietWhenFast(t *testing.T) {
	p := NewProfiler(t.TempDir(), quietLogger())
	drops := 0
	p.OnDrop = func(string) { drops++ }

	for i := 0; i < 1200; i++ {
		p.ObserveFrame(1.0 / 120)
	}
	if drops != 0 {
		t.Errorf("Expected no drops at 120 FPS, got %d", drops)
	}
	if p.IsProfiling() {
		t.Error("Expected no capture in progress")
	}
}
