package fx

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

type ledger struct {
	total   float64
	credits int
}

func (l *ledger) Credit(amount float64) {
	l.total += amount
	l.credits++
}

var gold = color.RGBA{255, 215, 0, 255}

func TestCoinLifecycleCreditsOnce(t *testing.T) {
	sink := &ledger{}
	e := NewEngine(rand.New(rand.NewSource(1)), sink)
	e.SetCoinAnchor(40, 30)

	coins := e.SpawnParticles(600, 500, gold, 1, KindCoin)
	if len(coins) != 1 {
		t.Fatalf("Expected 1 coin handle, got %d", len(coins))
	}
	coin := coins[0]
	coin.Value = 5

	const dt = 1.0 / 60
	seen := map[CoinPhase]bool{}
	frames := 0
	for ; frames < 600 && !coin.MarkedForDeletion; frames++ {
		seen[coin.Phase] = true
		if coin.Phase != CoinFly && sink.credits != 0 {
			t.Fatalf("Coin credited before flying (phase %s)", coin.Phase)
		}
		e.UpdateParticles(dt)
		e.Compact()
	}

	if !coin.MarkedForDeletion {
		t.Fatalf("Coin never arrived after %d frames", frames)
	}
	for _, phase := range []CoinPhase{CoinPop, CoinWait, CoinFly} {
		if !seen[phase] {
			t.Errorf("Coin skipped phase %s", phase)
		}
	}
	if sink.credits != 1 || sink.total != 5 {
		t.Errorf("Expected one credit of 5, got %d credits totaling %f", sink.credits, sink.total)
	}
	if len(e.Particles) != 0 {
		t.Errorf("Expected coin removed after arrival, %d particles remain", len(e.Particles))
	}

	// Further updates never credit again
	for i := 0; i < 10; i++ {
		e.UpdateParticles(dt)
	}
	if sink.credits != 1 {
		t.Errorf("Expected credit count to stay 1, got %d", sink.credits)
	}
}

func TestCoinIgnoresLifetime(t *testing.T) {
	sink := &ledger{}
	e := NewEngine(rand.New(rand.NewSource(2)), sink)
	e.SetCoinAnchor(5000, 5000)
	coin := e.SpawnParticles(0, 0, gold, 1, KindCoin)[0]

	// Well past any generic lifetime, still short of the long flight
	elapsed := 0.0
	for elapsed < CoinPopDuration+CoinWaitDuration+2 {
		e.UpdateParticles(0.05)
		elapsed += 0.05
	}
	if coin.MarkedForDeletion {
		t.Fatalf("Coin deleted before arrival at (%f, %f)", coin.X, coin.Y)
	}
	if coin.Phase != CoinFly {
		t.Errorf("Expected coin to be flying, got %s", coin.Phase)
	}
	if sink.credits != 0 {
		t.Errorf("Expected no credit yet, got %d", sink.credits)
	}
}

func TestCoinArrivesWithLargeStep(t *testing.T) {
	sink := &ledger{}
	e := NewEngine(rand.New(rand.NewSource(3)), sink)
	e.SetCoinAnchor(100, 100)
	coin := e.SpawnParticles(100, 100, gold, 1, KindCoin)[0]
	coin.Phase = CoinFly
	coin.X, coin.Y = 150, 100

	// Step of 120 overshoots the 50 pixel gap and must still land
	e.UpdateParticles(0.1)
	if !coin.MarkedForDeletion || sink.credits != 1 {
		t.Errorf("Expected arrival on a large step, marked=%v credits=%d", coin.MarkedForDeletion, sink.credits)
	}
}

func TestGenericParticleFades(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(4)), nil)
	p := e.SpawnParticles(0, 0, color.RGBA{255, 255, 255, 255}, 1, KindSplinter)[0]

	if p.Alpha() != 1 {
		t.Errorf("Expected full alpha at spawn, got %f", p.Alpha())
	}
	e.UpdateParticles(0.5)
	if math.Abs(p.Alpha()-0.5) > 1e-9 {
		t.Errorf("Expected alpha 0.5 halfway through life, got %f", p.Alpha())
	}
	e.UpdateParticles(0.6)
	if !p.MarkedForDeletion {
		t.Errorf("Expected splinter expired after its lifetime")
	}
	e.Compact()
	if len(e.Particles) != 0 {
		t.Errorf("Expected compaction to remove expired particle")
	}
}

func TestKindPhysics(t *testing.T) {
	cases := []struct {
		kind       Kind
		wantFall   bool
		wantLife   float64
		wantRotate bool
	}{
		{KindSpark, true, 0.5, false},
		{KindSplinter, false, 1.0, true},
		{KindBurst, false, 0.4, false},
		{KindDust, false, 0.5, false},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e := NewEngine(rand.New(rand.NewSource(5)), nil)
			p := e.SpawnParticles(0, 0, color.RGBA{200, 200, 200, 255}, 1, tc.kind)[0]
			if p.MaxLife != tc.wantLife {
				t.Errorf("Expected life %f, got %f", tc.wantLife, p.MaxLife)
			}
			if (p.Gravity > 0) != tc.wantFall {
				t.Errorf("Expected gravity=%v, got %f", tc.wantFall, p.Gravity)
			}
			if (p.Spin != 0) != tc.wantRotate {
				t.Errorf("Expected rotation=%v, got spin %f", tc.wantRotate, p.Spin)
			}
		})
	}
}

func TestDustIsTranslucentAndRises(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(6)), nil)
	for _, p := range e.SpawnParticles(0, 0, color.RGBA{255, 255, 255, 255}, 20, KindDust) {
		if p.Color.A == 255 {
			t.Fatalf("Expected dust alpha override, got opaque")
		}
		if p.VY >= 0 {
			t.Fatalf("Expected dust to drift upward, got vy %f", p.VY)
		}
	}
}

func TestBurstFasterThanSpark(t *testing.T) {
	burst := GetKindConfig(KindBurst)
	spark := GetKindConfig(KindSpark)
	if burst.MaxSpeed != 2*spark.MaxSpeed || burst.MinSpeed != 2*spark.MinSpeed {
		t.Errorf("Expected burst to double spark speed, got %f-%f", burst.MinSpeed, burst.MaxSpeed)
	}
	if burst.MinSize <= spark.MaxSize {
		t.Errorf("Expected burst particles larger than sparks")
	}
}

func TestFloatingTextRisesAndExpires(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(7)), nil)
	txt := e.SpawnText(100, 100, "60", color.RGBA{255, 255, 255, 255}, 0)
	if txt.Size != TextSize {
		t.Errorf("Expected default size %f, got %f", TextSize, txt.Size)
	}

	e.UpdateTexts(0.5)
	if math.Abs(txt.Y-75) > 1e-9 {
		t.Errorf("Expected text at y=75, got %f", txt.Y)
	}
	e.UpdateTexts(0.6)
	e.Compact()
	if len(e.Texts) != 0 {
		t.Errorf("Expected text removed after its lifetime, %d remain", len(e.Texts))
	}
}

func TestSpawnParticlesZeroCount(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(8)), nil)
	if got := e.SpawnParticles(0, 0, gold, 0, KindSpark); got != nil {
		t.Errorf("Expected nil for zero count, got %d", len(got))
	}
}
