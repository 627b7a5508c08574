package game

import (
	"bytes"
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"neuralfolio/config"
	"neuralfolio/contact"
	"neuralfolio/field"
	"neuralfolio/logging"
	"neuralfolio/page"
	"neuralfolio/prefs"
	"neuralfolio/theme"
)

// scriptedInput replays queued states, then reports an idle cursor
type scriptedInput struct {
	queue []InputState
}

func (s *scriptedInput) Poll(width, height, scale float64) InputState {
	if len(s.queue) == 0 {
		return InputState{}
	}
	in := s.queue[0]
	s.queue = s.queue[1:]
	return in
}

type recordingSubmitter struct {
	fields chan []contact.Field
}

func (r *recordingSubmitter) Submit(ctx context.Context, fields []contact.Field) error {
	r.fields <- fields
	return nil
}

type harness struct {
	game  *Game
	input *scriptedInput
	now   time.Time
	logs  *bytes.Buffer
	store *prefs.MemoryStore
}

func newHarness(t *testing.T, width, height int, sub contact.Submitter) *harness {
	t.Helper()
	doc, err := page.DefaultDocument()
	if err != nil {
		t.Fatalf("DefaultDocument: %v", err)
	}

	var logs bytes.Buffer
	log := logging.New(logging.LevelDebug)
	log.SetOutput(&logs)

	store := prefs.NewMemoryStore()
	tm := theme.NewManager(store, log)
	tm.Init()

	h := &harness{input: &scriptedInput{}, now: time.Unix(1000, 0), logs: &logs, store: store}
	cfg := DefaultConfig()
	cfg.ParticleWarnThreshold = 92
	h.game = NewGame(cfg, Deps{
		Document: doc,
		Theme:    tm,
		Contact:  contact.NewHandler(contact.DefaultForm(), sub, log),
		Log:      log,
		Input:    h.input,
		Clock:    func() time.Time { return h.now },
		Scale:    func() float64 { return 2 },
		Rand:     rand.New(rand.NewSource(1)),
	})
	h.game.Layout(width, height)
	return h
}

// tick runs one Update with the given input
func (h *harness) tick(t *testing.T, in InputState) {
	t.Helper()
	h.input.queue = append(h.input.queue, in)
	h.now = h.now.Add(16 * time.Millisecond)
	if err := h.game.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestLayoutBackingSize(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	w, ht := h.game.Layout(1200, 800)
	if w != 2400 || ht != 1600 {
		t.Errorf("Layout = %dx%d, want 2400x1600", w, ht)
	}

	h.tick(t, InputState{})
	f := h.game.Field()
	if f == nil {
		t.Fatal("field not created on a wide viewport")
	}
	if bw, bh := f.BackingSize(); bw != 2400 || bh != 1600 {
		t.Errorf("BackingSize = %dx%d, want 2400x1600", bw, bh)
	}
	pop := f.Population()
	if pop.Particles != field.ParticleCount || pop.Stars != 150 || pop.Asteroids != field.AsteroidCount {
		t.Errorf("Population = %+v", pop)
	}
}

func TestLayoutFractionalScale(t *testing.T) {
	h := newHarness(t, 1001, 700, nil)
	h.game.scaleFn = func() float64 { return 1.15 }
	w, ht := h.game.Layout(1001, 700)
	if w != 1152 || ht != 805 {
		t.Errorf("Layout = %dx%d, want 1152x805", w, ht)
	}

	h.tick(t, InputState{})
	f := h.game.Field()
	if f == nil {
		t.Fatal("field not created on a wide viewport")
	}
	if bw, bh := f.BackingSize(); bw != w || bh != ht {
		t.Errorf("BackingSize = %dx%d, want the layout size %dx%d", bw, bh, w, ht)
	}
}

func TestDefaultConfigSyncsWithRefresh(t *testing.T) {
	if tps := DefaultConfig().TPS; tps != ebiten.SyncWithFPS {
		t.Errorf("TPS = %d, want ebiten.SyncWithFPS", tps)
	}
}

func TestCompactViewportHasNoField(t *testing.T) {
	h := newHarness(t, 900, 700, nil)
	h.tick(t, InputState{})
	if h.game.Field() != nil {
		t.Error("field created at the breakpoint width")
	}

	// Growing the window later does not start the animation.
	h.game.Layout(1400, 700)
	h.tick(t, InputState{})
	if h.game.Field() != nil {
		t.Error("field created after the initial compact check")
	}
}

func TestResizeReseeds(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	h.tick(t, InputState{})
	h.tick(t, InputState{X: 300, Y: 300, Inside: true, Pressed: true})
	h.tick(t, InputState{X: 301, Y: 300, Inside: true, Pressed: true})
	if n := h.game.Field().Population().Particles; n != field.ParticleCount+field.BurstSize {
		t.Fatalf("particles after double click = %d", n)
	}

	h.game.Layout(1600, 900)
	h.tick(t, InputState{})
	pop := h.game.Field().Population()
	if pop.Particles != field.ParticleCount {
		t.Errorf("particles after resize = %d, want %d", pop.Particles, field.ParticleCount)
	}
	if pop.Stars != 200 {
		t.Errorf("stars after resize = %d, want 200", pop.Stars)
	}
}

func TestDoubleClickAttractor(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	h.tick(t, InputState{})

	h.tick(t, InputState{X: 500, Y: 400, Inside: true, Pressed: true})
	if h.game.Field().Attractor().Active() {
		t.Fatal("single press set the attractor")
	}
	h.tick(t, InputState{X: 500, Y: 400, Inside: true, Pressed: true})

	att := h.game.Field().Attractor()
	// The step that follows the double click already spent one frame.
	if att.X != 500 || att.Y != 400 || att.TTL != field.AttractorTTL-1 {
		t.Errorf("attractor = %+v", att)
	}
	if !strings.Contains(h.logs.String(), "particle count reached 92") {
		t.Errorf("missing growth warning in logs:\n%s", h.logs)
	}
}

func TestPointerLeave(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	h.tick(t, InputState{X: 10, Y: 10, Inside: true})
	if p := h.game.Field().Pointer(); !p.Active || p.X != 10 {
		t.Errorf("pointer = %+v, want active at 10,10", p)
	}
	h.tick(t, InputState{X: -5, Y: 10})
	if h.game.Field().Pointer().Active {
		t.Error("pointer still active after leaving the window")
	}
}

func TestThemeToggleKey(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyT}})

	if got, _ := h.store.Get(theme.StorageKey); got != string(theme.Light) {
		t.Errorf("stored theme = %q, want light", got)
	}
	if h.game.theme.Current() != theme.Light {
		t.Fatalf("theme = %s, want light", h.game.theme.Current())
	}
	if h.game.Field() == nil {
		t.Fatal("no field")
	}
	dot := h.game.theme.Style().Canvas.Dot
	rec := &field.DisplayList{}
	h.game.Field().Step(rec)
	for _, op := range rec.Ops {
		if op.Kind == field.OpCircle && op.Color == dot {
			return
		}
	}
	t.Error("field did not pick up the light palette")
}

func TestNavJump(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	h.tick(t, InputState{})

	// The digit keys jump to nav links in order.
	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyDigit3}})
	top, ok := h.game.nav.Target(2)
	if !ok {
		t.Fatal("third nav link has no target")
	}
	if got := h.game.ScrollY(); got != top-navHeight {
		t.Errorf("ScrollY = %.0f, want %.0f", got, top-navHeight)
	}
	if h.game.nav.ActiveIndex() != 2 {
		t.Errorf("active link = %d, want 2", h.game.nav.ActiveIndex())
	}
}

func TestScrollClamped(t *testing.T) {
	h := newHarness(t, 1200, 800, nil)
	h.tick(t, InputState{WheelY: 5})
	if h.game.ScrollY() != 0 {
		t.Errorf("scrolled above the page: %.0f", h.game.ScrollY())
	}
	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyEnd}})
	if want := h.game.layout.Height - 800; h.game.ScrollY() != want {
		t.Errorf("ScrollY at end = %.0f, want %.0f", h.game.ScrollY(), want)
	}
}

func TestContactFormTyping(t *testing.T) {
	sub := &recordingSubmitter{fields: make(chan []contact.Field, 1)}
	h := newHarness(t, 1200, 800, sub)
	h.tick(t, InputState{})
	if !h.game.hasForm {
		t.Fatal("contact form not laid out")
	}

	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyEnd}})
	name := h.game.pageRect(h.game.form.fields[0], 0)
	h.tick(t, InputState{X: name.X + 5, Y: name.Y + 5, Inside: true, Pressed: true})
	if h.game.focus != 0 {
		t.Fatalf("focus = %d, want 0", h.game.focus)
	}

	h.tick(t, InputState{Chars: []rune("Ada")})
	// Blocked chords type nothing.
	h.tick(t, InputState{Ctrl: true, Keys: []ebiten.Key{ebiten.KeyS}, Chars: []rune("s")})
	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyTab}, Chars: []rune{}})
	h.tick(t, InputState{Chars: []rune("ada@example.com")})
	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyTab}})
	h.tick(t, InputState{Chars: []rune("Hi")})

	form := h.game.contact.Form()
	if form.Value("name") != "Ada" || form.Value("email") != "ada@example.com" || form.Value("message") != "Hi" {
		t.Fatalf("form = %+v", form.Snapshot())
	}

	// Enter in the multiline field adds a line; Ctrl+Enter submits.
	h.tick(t, InputState{Keys: []ebiten.Key{ebiten.KeyEnter}})
	if form.Value("message") != "Hi\n" {
		t.Errorf("message = %q", form.Value("message"))
	}
	h.tick(t, InputState{Ctrl: true, Keys: []ebiten.Key{ebiten.KeyEnter}})

	select {
	case sent := <-sub.fields:
		if len(sent) != 3 || sent[0].Value != "Ada" {
			t.Errorf("sent %+v", sent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nothing submitted")
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.game.contact.InFlight() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		h.tick(t, InputState{})
	}
	if msg, ok := h.game.contact.Status(); !ok || msg != contact.MsgSent {
		t.Errorf("status = %q, %v", msg, ok)
	}
	if form.Value("name") != "" {
		t.Error("fields not cleared after success")
	}
}

func TestDoubleClickDetector(t *testing.T) {
	t0 := time.Unix(0, 0)
	tests := []struct {
		name   string
		dt     time.Duration
		dx     float64
		double bool
	}{
		{"quick and close", 200 * time.Millisecond, 2, true},
		{"at the window", 500 * time.Millisecond, 0, true},
		{"too slow", 501 * time.Millisecond, 0, false},
		{"too far", 100 * time.Millisecond, 5, false},
	}
	for _, tt := range tests {
		d := NewDoubleClickDetector()
		if d.Press(100, 100, t0) {
			t.Fatalf("%s: first press reported a double click", tt.name)
		}
		if got := d.Press(100+tt.dx, 100, t0.Add(tt.dt)); got != tt.double {
			t.Errorf("%s: second press = %v, want %v", tt.name, got, tt.double)
		}
	}

	// A third quick press starts a new pair.
	d := NewDoubleClickDetector()
	d.Press(0, 0, t0)
	d.Press(0, 0, t0.Add(100*time.Millisecond))
	if d.Press(0, 0, t0.Add(200*time.Millisecond)) {
		t.Error("third press completed another double click")
	}
}

func TestFrameMeter(t *testing.T) {
	m := NewFrameMeter(45, 10*time.Second)
	t0 := time.Unix(0, 0)
	now := t0

	run := func(frames int, dt time.Duration) bool {
		dropped := false
		for i := 0; i < frames; i++ {
			now = now.Add(dt)
			if m.Tick(now) {
				dropped = true
			}
		}
		return dropped
	}

	m.Tick(now)
	if run(50, 50*time.Millisecond) {
		t.Error("drop reported during the startup grace period")
	}
	if run(20, 50*time.Millisecond) != true {
		t.Error("20 FPS after the grace period not reported")
	}
	if fps := m.FPS(); fps < 19 || fps > 21 {
		t.Errorf("FPS() = %.1f, want about 20", fps)
	}
	if run(20, 50*time.Millisecond) {
		t.Error("drop reported again within the cooldown")
	}
	if run(300, 16*time.Millisecond) {
		t.Error("drop reported at 60 FPS")
	}
}

func TestProfilerCapture(t *testing.T) {
	dir := t.TempDir()
	p := NewProfiler(config.ProfileConfig{
		Dir:      dir,
		Duration: 20 * time.Millisecond,
		Cooldown: time.Hour,
	}, nil)

	if err := p.CaptureProfile("test"); err != nil {
		t.Fatalf("CaptureProfile: %v", err)
	}
	if !p.IsProfiling() {
		t.Error("IsProfiling() = false right after a capture started")
	}
	if err := p.CaptureProfile("again"); err == nil {
		t.Error("second capture accepted while the first is running")
	}

	deadline := time.Now().Add(5 * time.Second)
	for p.IsProfiling() {
		if time.Now().After(deadline) {
			t.Fatal("capture did not finish")
		}
		time.Sleep(10 * time.Millisecond)
	}

	for _, pattern := range []string{"*.cpu.prof", "*.trace"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil || len(matches) != 1 {
			t.Errorf("%s: found %v (err %v), want one file", pattern, matches, err)
		}
	}
	if err := p.CaptureProfile("cooldown"); err == nil {
		t.Error("capture accepted within the cooldown")
	}
}

func TestFilterBlocked(t *testing.T) {
	in := filterBlocked(InputState{
		Ctrl:  true,
		Shift: true,
		Keys:  []ebiten.Key{ebiten.KeyI, ebiten.KeyT},
		Chars: []rune("it"),
	})
	if len(in.Keys) != 1 || in.Keys[0] != ebiten.KeyT {
		t.Errorf("keys = %v, want [T]", in.Keys)
	}
	if len(in.Chars) != 0 {
		t.Errorf("chars = %q, want none", in.Chars)
	}

	in = filterBlocked(InputState{Keys: []ebiten.Key{ebiten.KeyF12, ebiten.KeyA}, Chars: []rune("a")})
	if len(in.Keys) != 1 || in.Keys[0] != ebiten.KeyA {
		t.Errorf("keys = %v, want [A]", in.Keys)
	}
	if len(in.Chars) != 0 {
		t.Error("characters typed alongside F12 were kept")
	}

	in = filterBlocked(InputState{Keys: []ebiten.Key{ebiten.KeyA}, Chars: []rune("a")})
	if string(in.Chars) != "a" {
		t.Errorf("plain typing filtered: %q", in.Chars)
	}
}

func TestCameraClamp(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollBy(-100, 2000)
	if c.Y != 0 {
		t.Errorf("Y = %.0f, want 0", c.Y)
	}
	c.ScrollTo(5000, 2000)
	if c.Y != 1400 {
		t.Errorf("Y = %.0f, want 1400", c.Y)
	}
	c.ScrollTo(100, 300)
	if c.Y != 0 {
		t.Errorf("short page scrolled to %.0f", c.Y)
	}
	if sx, sy := c.PageToScreen(10, 50); sx != 10 || sy != 50 {
		t.Errorf("PageToScreen = %.0f,%.0f", sx, sy)
	}
}
