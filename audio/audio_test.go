package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"islandbrawl/game"
)

// newTestManager returns a manager that mixes without a speaker
func newTestManager() (*SoundManager, *time.Time) {
	sm := NewSoundManager(1)
	sm.initialized = true
	sm.lock = func() {}
	sm.unlock = func() {}
	now := time.Unix(100, 0)
	sm.now = func() time.Time { return now }
	return sm, &now
}

func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	n, peak := drain(osc)
	if n != rate.N(100*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(100*time.Millisecond), n)
	}
	if peak > 1 || peak < 0.9 {
		t.Errorf("Expected a full-scale sine, peak %f", peak)
	}
}

func TestEnvelopeStartsAndEndsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("Expected %d samples, got %d", len(buf), n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if math.Abs(buf[n-1][0]) > 0.01 {
		t.Errorf("Expected near-silent tail, got %f", buf[n-1][0])
	}
	if math.Abs(buf[n/2][0]) != 1 {
		t.Errorf("Expected full sustain, got %f", buf[n/2][0])
	}
}

func TestEverySoundIsFinite(t *testing.T) {
	for st := SoundSwing; st <= SoundRunEnd; st++ {
		s := NewSound(st, sampleRate, 1)
		if s == nil {
			t.Fatalf("Expected a streamer for %s", st)
		}
		n, peak := drain(s)
		if n == 0 || n > sampleRate.N(time.Second) {
			t.Errorf("%s: unexpected length %d", st, n)
		}
		if peak == 0 {
			t.Errorf("%s: silent", st)
		}
	}
	if NewSound(SoundNone, sampleRate, 1) != nil {
		t.Error("Expected no streamer for SoundNone")
	}
}

func TestSoundForEvent(t *testing.T) {
	tests := []struct {
		event game.EventType
		want  SoundType
	}{
		{game.EventSwing, SoundSwing},
		{game.EventActorKilled, SoundBreak},
		{game.EventCoinCredited, SoundCoin},
		{game.EventExplosion, SoundExplosion},
		{game.EventRunStarted, SoundNone},
		{game.EventIslandReset, SoundNone},
	}
	for _, tt := range tests {
		if got := SoundForEvent(game.Event{Type: tt.event}); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.event, tt.want, got)
		}
	}
}

func TestManagerThrottlesRepeats(t *testing.T) {
	sm, now := newTestManager()

	if !sm.Play(SoundCoin) {
		t.Fatal("Expected first coin to play")
	}
	if sm.Play(SoundCoin) {
		t.Error("Expected immediate repeat to be dropped")
	}
	if !sm.Play(SoundHit) {
		t.Error("Expected a different effect to play")
	}

	*now = now.Add(minRepeat)
	if !sm.Play(SoundCoin) {
		t.Error("Expected coin to play again after the repeat window")
	}
	if sm.Voices() != 3 {
		t.Errorf("Expected 3 voices, got %d", sm.Voices())
	}
}

func TestManagerCapsVoices(t *testing.T) {
	sm, now := newTestManager()
	for i := 0; i < maxVoices*2; i++ {
		sm.Play(SoundSwing)
		*now = now.Add(minRepeat)
	}
	if sm.Voices() != maxVoices {
		t.Errorf("Expected %d voices, got %d", maxVoices, sm.Voices())
	}
}

func TestManagerListensToGame(t *testing.T) {
	sm, _ := newTestManager()
	q := game.NewEventQueue()
	sm.Attach(q)

	q.Push(game.Event{Type: game.EventExplosion})
	q.Push(game.Event{Type: game.EventRunStarted})
	q.Drain()

	if sm.Voices() != 1 {
		t.Errorf("Expected one voice from the explosion, got %d", sm.Voices())
	}

	sm.Cleanup()
	if sm.Voices() != 0 || sm.Play(SoundHit) {
		t.Error("Expected cleanup to silence the manager")
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(1)
	if sm.Play(SoundSwing) {
		t.Error("Expected no playback before Initialize")
	}
}
