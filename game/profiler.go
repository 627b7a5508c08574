package game

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"neuralfolio/config"
	"neuralfolio/logging"
)

// Profiler captures a CPU profile and an execution trace when the frame
// rate drops
type Profiler struct {
	mu              sync.Mutex
	log             *logging.Logger
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
}

// NewProfiler creates a profiler writing under cfg.Dir
func NewProfiler(cfg config.ProfileConfig, log *logging.Logger) *Profiler {
	if log == nil {
		log = logging.Discard()
	}
	return &Profiler{
		log:             log.With("profiler"),
		captureCooldown: cfg.Cooldown,
		captureDuration: cfg.Duration,
		profilesDir:     cfg.Dir,
	}
}

// CaptureProfile starts a capture in the background. It fails when a
// capture is running or the cooldown has not elapsed.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime).Round(time.Second))
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", p.lastCaptureTime.Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.record(baseName+".cpu.prof", "CPU profile", pprof.StartCPUProfile, pprof.StopCPUProfile); err != nil {
				p.log.Error("%v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.record(baseName+".trace", "trace", trace.Start, trace.Stop); err != nil {
				p.log.Error("%v", err)
			}
		}()
		wg.Wait()

		p.summarize(baseName)
	}()
	return nil
}

// record writes one capture to name, keeping it running for the configured
// duration
func (p *Profiler) record(name, kind string, start func(io.Writer) error, stop func()) error {
	path := filepath.Join(p.profilesDir, name)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s file: %w", kind, err)
	}
	defer out.Close()

	if err := start(out); err != nil {
		return fmt.Errorf("starting %s: %w", kind, err)
	}
	time.Sleep(p.captureDuration)
	stop()

	p.log.Info("%s written to %s", kind, path)
	return nil
}

func (p *Profiler) summarize(baseName string) {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.log.Warn("could not stat profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.Info("profile %s (%.2f KB); view with: go tool pprof -http=:8080 %s", baseName, float64(info.Size())/1024, path)
	p.log.Info("heap alloc %d KB, sys %d KB, gc runs %d, heap objects %d",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// FrameMeter measures frames per second over half-second windows and
// reports sustained drops below a threshold. Update is synced to the
// display refresh, so each Tick is one rendered frame.
type FrameMeter struct {
	Threshold float64
	Grace     time.Duration
	Cooldown  time.Duration

	start    time.Time
	last     time.Time
	frames   int
	elapsed  time.Duration
	fps      float64
	lastDrop time.Time
}

const meterWindow = 500 * time.Millisecond

// NewFrameMeter reports drops below threshold, ignoring the first few
// seconds after start
func NewFrameMeter(threshold float64, cooldown time.Duration) *FrameMeter {
	return &FrameMeter{
		Threshold: threshold,
		Grace:     3 * time.Second,
		Cooldown:  cooldown,
		fps:       60,
	}
}

// Tick records a frame at now. It returns true when the window that just
// closed fell below the threshold and a drop may be reported.
func (m *FrameMeter) Tick(now time.Time) bool {
	if m.start.IsZero() {
		m.start = now
		m.last = now
		return false
	}

	m.elapsed += now.Sub(m.last)
	m.last = now
	m.frames++
	if m.elapsed < meterWindow {
		return false
	}

	m.fps = float64(m.frames) / m.elapsed.Seconds()
	m.frames = 0
	m.elapsed = 0

	if m.Threshold <= 0 || m.fps >= m.Threshold || now.Sub(m.start) < m.Grace {
		return false
	}
	if !m.lastDrop.IsZero() && now.Sub(m.lastDrop) < m.Cooldown {
		return false
	}
	m.lastDrop = now
	return true
}

// FPS returns the rate measured over the last complete window
func (m *FrameMeter) FPS() float64 {
	return m.fps
}
