package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler watches the frame rate and captures a CPU profile and execution
// trace when it drops.
type Profiler struct {
	mu              sync.Mutex
	logger          *log.Logger
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string

	// FPS tracking
	fps          float64
	frameCounter int
	frameTimer   float64
	runningTime  float64

	// Threshold is the FPS below which a capture is triggered
	Threshold float64

	// Warmup ignores drops during startup, in seconds
	Warmup float64

	// OnDrop is called with a reason when the frame rate drops; it defaults
	// to CaptureProfile
	OnDrop func(reason string)
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger *log.Logger) *Profiler {
	if logger == nil {
		logger = log.Default()
	}
	p := &Profiler{
		logger:          logger,
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		fps:             60,
		Threshold:       55,
		Warmup:          3,
	}
	p.OnDrop = func(reason string) {
		if err := p.CaptureProfile(reason); err != nil {
			p.logger.Printf("profile capture skipped: %v", err)
		}
	}
	return p
}

// FPS returns the most recent frame rate sample
func (p *Profiler) FPS() float64 {
	return p.fps
}

// ObserveFrame records one frame of deltaTime seconds. The frame rate is
// sampled every half second.
func (p *Profiler) ObserveFrame(deltaTime float64) {
	p.frameTimer += deltaTime
	p.runningTime += deltaTime
	p.frameCounter++
	if p.frameTimer < 0.5 {
		return
	}

	p.fps = float64(p.frameCounter) / p.frameTimer
	p.frameCounter = 0
	p.frameTimer = 0

	if p.fps < p.Threshold && p.runningTime >= p.Warmup && p.OnDrop != nil {
		p.OnDrop(fmt.Sprintf("fps%.0f", p.fps))
	}
}

// CaptureProfile captures CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		// CPU profile and trace in parallel
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Printf("Error capturing CPU profile: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Printf("Error capturing trace: %v", err)
			}
		}()
		wg.Wait()

		p.summarize(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Printf("CPU profile saved to: %s", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Printf("Trace saved to: %s", tracePath)
	return nil
}

// summarize logs where the capture went and the heap at capture time
func (p *Profiler) summarize(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Printf("Warning: could not analyze profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Printf("profile %s (%.2f KB), view with: go tool pprof -http=:8080 %s",
		baseName, float64(info.Size())/1024, profilePath)
	p.logger.Printf("heap at capture: alloc=%dKB sys=%dKB gc=%d objects=%d",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
