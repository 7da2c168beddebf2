package audio

import (
	"time"

	"github.com/gopxl/beep"

	"islandbrawl/game"
)

// SoundType names one synthesized effect
type SoundType int

const (
	SoundNone SoundType = iota
	SoundSwing
	SoundHit
	SoundBreak
	SoundBonk
	SoundCoin
	SoundExplosion
	SoundBarrage
	SoundRunEnd
)

func (s SoundType) String() string {
	switch s {
	case SoundSwing:
		return "swing"
	case SoundHit:
		return "hit"
	case SoundBreak:
		return "break"
	case SoundBonk:
		return "bonk"
	case SoundCoin:
		return "coin"
	case SoundExplosion:
		return "explosion"
	case SoundBarrage:
		return "barrage"
	case SoundRunEnd:
		return "run_end"
	default:
		return "none"
	}
}

// SoundForEvent maps a simulation event to its effect
func SoundForEvent(event game.Event) SoundType {
	switch event.Type {
	case game.EventSwing:
		return SoundSwing
	case game.EventHit:
		return SoundHit
	case game.EventActorKilled:
		return SoundBreak
	case game.EventRockBonk:
		return SoundBonk
	case game.EventCoinCredited:
		return SoundCoin
	case game.EventExplosion:
		return SoundExplosion
	case game.EventBarrage:
		return SoundBarrage
	case game.EventRunEnded:
		return SoundRunEnd
	default:
		return SoundNone
	}
}

// NewSound synthesizes one effect at the given volume
func NewSound(st SoundType, rate beep.SampleRate, vol float64) beep.Streamer {
	ms := time.Millisecond
	var s beep.Streamer

	switch st {
	case SoundSwing:
		noise := NewOscillator(0, 90*ms, WaveNoise, rate)
		s = newVolume(NewEnvelope(noise, 90*ms, 30*ms, 50*ms, rate), 0.35)
	case SoundHit:
		thud := NewSweep(220, 90, 80*ms, WaveSquare, rate)
		s = newVolume(NewEnvelope(thud, 80*ms, 2*ms, 60*ms, rate), 0.4)
	case SoundBreak:
		crack := NewEnvelope(NewOscillator(0, 150*ms, WaveNoise, rate), 150*ms, 1*ms, 120*ms, rate)
		body := NewEnvelope(NewSweep(160, 60, 200*ms, WaveSine, rate), 200*ms, 2*ms, 150*ms, rate)
		s = beep.Mix(newVolume(crack, 0.4), newVolume(body, 0.6))
	case SoundBonk:
		s = NewEnvelope(NewSweep(140, 70, 120*ms, WaveSine, rate), 120*ms, 2*ms, 100*ms, rate)
	case SoundCoin:
		n1 := NewEnvelope(NewOscillator(987.77, 60*ms, WaveSquare, rate), 60*ms, 2*ms, 20*ms, rate)
		n2 := NewEnvelope(NewOscillator(1318.51, 120*ms, WaveSquare, rate), 120*ms, 2*ms, 90*ms, rate)
		s = newVolume(beep.Seq(n1, n2), 0.2)
	case SoundExplosion:
		noise := NewEnvelope(NewOscillator(0, 450*ms, WaveNoise, rate), 450*ms, 5*ms, 400*ms, rate)
		boom := NewEnvelope(NewSweep(90, 30, 450*ms, WaveSine, rate), 450*ms, 5*ms, 400*ms, rate)
		s = beep.Mix(newVolume(noise, 0.5), newVolume(boom, 0.8))
	case SoundBarrage:
		s = newVolume(NewEnvelope(NewSweep(300, 900, 250*ms, WaveSaw, rate), 250*ms, 20*ms, 100*ms, rate), 0.3)
	case SoundRunEnd:
		s = newVolume(NewEnvelope(NewSweep(440, 110, 600*ms, WaveSaw, rate), 600*ms, 10*ms, 300*ms, rate), 0.4)
	default:
		return nil
	}

	return newVolume(s, vol)
}
