// Package audio plays synthesized sound effects for simulation events
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"islandbrawl/game"
)

const (
	sampleRate = beep.SampleRate(48000)

	// maxVoices caps simultaneous effects; extra events are dropped
	maxVoices = 16

	// minRepeat is the shortest gap between two plays of one effect
	minRepeat = 40 * time.Millisecond
)

// SoundManager turns drained game events into sound. It implements
// game.Listener.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	lastPlayed map[SoundType]time.Time
	now        func() time.Time

	// lock guards the mixer against the speaker goroutine
	lock, unlock func()
}

// NewSoundManager creates a silent manager at the given master volume.
// Initialize connects it to the speaker.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:      &beep.Mixer{},
		volume:     volume,
		lastPlayed: make(map[SoundType]time.Time),
		now:        time.Now,
		lock:       speaker.Lock,
		unlock:     speaker.Unlock,
	}
}

// Initialize opens the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Attach subscribes the manager to every event of q
func (sm *SoundManager) Attach(q *game.EventQueue) {
	q.SubscribeAll(sm)
}

func (sm *SoundManager) OnEvent(event game.Event) {
	sm.Play(SoundForEvent(event))
}

// Play starts an effect. It reports whether the effect was mixed in.
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || st == SoundNone {
		return false
	}

	now := sm.now()
	if last, ok := sm.lastPlayed[st]; ok && now.Sub(last) < minRepeat {
		return false
	}

	s := NewSound(st, sampleRate, sm.volume)
	if s == nil {
		return false
	}

	sm.lock()
	defer sm.unlock()
	if sm.mixer.Len() >= maxVoices {
		return false
	}
	sm.mixer.Add(s)
	sm.lastPlayed[st] = now
	return true
}

// Voices returns the number of effects still playing
func (sm *SoundManager) Voices() int {
	sm.lock()
	defer sm.unlock()
	return sm.mixer.Len()
}

// Cleanup silences everything. The speaker itself stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.lock()
	sm.mixer.Clear()
	sm.unlock()
	sm.initialized = false
}
