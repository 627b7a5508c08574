package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"neuralfolio/contact"
	"neuralfolio/field"
	"neuralfolio/logging"
	"neuralfolio/page"
	"neuralfolio/theme"
)

// Deps are the collaborators a Game drives. Document and Theme are
// required; the rest degrade to no-ops or ebiten defaults when nil.
type Deps struct {
	Document *page.Document
	Theme    *theme.Manager
	Contact  *contact.Handler
	Profiler *Profiler
	Log      *logging.Logger

	Input InputSource
	Clock func() time.Time
	Scale func() float64
	Rand  *rand.Rand
}

// Game is the portfolio page: the scrolling document, its header, the
// contact form and the animated background
type Game struct {
	config Config
	log    *logging.Logger

	// Page content and its arrangement for the current width
	doc        *page.Document
	wrapped    *page.Document
	metrics    page.Metrics
	layout     page.Layout
	reveal     *page.RevealTracker
	revealedAt map[string]int
	nav        *page.NavHighlighter
	navUI      navWidgets

	// Contact form
	contact    *contact.Handler
	form       formWidgets
	hasForm    bool
	focus      int
	feedbackAt int
	lastShows  int
	ctx        context.Context
	cancel     context.CancelFunc

	theme *theme.Manager

	// Background animation; nil on compact viewports
	field        *field.Field
	frame        field.DisplayList
	fieldChecked bool
	rng          *rand.Rand
	nextWarn     int

	camera   *Camera
	renderer *Renderer
	input    InputSource
	dbl      *DoubleClickDetector
	clock    func() time.Time
	scaleFn  func() float64

	width     float64
	height    float64
	scale     float64
	sizeDirty bool
	tick      int

	// Frame rate tracking
	meter     *FrameMeter
	profiler  *Profiler
	showDebug bool
}

// NewGame creates the page. Nothing is laid out until the first tick, when
// the real viewport size is known.
func NewGame(config Config, deps Deps) *Game {
	log := deps.Log
	if log == nil {
		log = logging.Discard()
	}
	input := deps.Input
	if input == nil {
		input = newEbitenInput()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	scaleFn := deps.Scale
	if scaleFn == nil {
		scaleFn = func() float64 { return ebiten.Monitor().DeviceScaleFactor() }
	}
	rng := deps.Rand
	if rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	camera := NewCamera(float64(config.ScreenWidth), float64(config.ScreenHeight))
	ctx, cancel := context.WithCancel(context.Background())

	return &Game{
		config:     config,
		log:        log.With("page"),
		doc:        deps.Document,
		revealedAt: make(map[string]int),
		contact:    deps.Contact,
		focus:      -1,
		ctx:        ctx,
		cancel:     cancel,
		theme:      deps.Theme,
		rng:        rng,
		camera:     camera,
		renderer:   NewRenderer(camera),
		input:      input,
		dbl:        NewDoubleClickDetector(),
		clock:      clock,
		scaleFn:    scaleFn,
		width:      float64(config.ScreenWidth),
		height:     float64(config.ScreenHeight),
		scale:      1,
		sizeDirty:  true,
		meter:      NewFrameMeter(config.FPSThreshold, config.DropCooldown),
		profiler:   deps.Profiler,
	}
}

// Close cancels any submission still in flight
func (g *Game) Close() {
	g.cancel()
}

// Field returns the background animation, or nil on compact viewports
func (g *Game) Field() *field.Field {
	return g.field
}

// ScrollY returns the scroll offset
func (g *Game) ScrollY() float64 {
	return g.camera.Y
}

// Update advances the page by one tick
func (g *Game) Update() error {
	now := g.clock()
	if g.meter.Tick(now) {
		g.frameDrop()
	}
	g.step(g.input.Poll(g.width, g.height, g.scale), now)
	return nil
}

// step runs one tick against the given input
func (g *Game) step(in InputState, now time.Time) {
	g.tick++
	if g.sizeDirty {
		g.applyResize()
	}

	in = filterBlocked(in)
	g.handleKeys(in, now)
	g.handlePointer(in, now)
	if in.WheelY != 0 {
		g.camera.ScrollBy(-in.WheelY*wheelStep, g.layout.Height)
	}

	g.nav.Update(g.camera.Y)
	for _, id := range g.reveal.Observe(g.camera.Y, g.height) {
		g.revealedAt[id] = g.tick
		g.log.Debug("revealed %s", id)
	}

	if g.contact != nil {
		g.contact.Poll(now)
		if shows := g.contact.FeedbackShows(); shows != g.lastShows {
			g.lastShows = shows
			g.feedbackAt = g.tick
		}
	}

	if g.field != nil {
		g.frame.Reset()
		g.field.Step(&g.frame)
	}
}

// Layout tracks the window size and renders at device resolution
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := g.scaleFn()
	if scale <= 0 {
		scale = 1
	}
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.width || h != g.height || scale != g.scale {
		g.width, g.height, g.scale = w, h, scale
		g.sizeDirty = true
	}
	return field.DeviceSize(w, scale), field.DeviceSize(h, scale)
}

// applyResize re-lays the page and re-seeds the field. The compact check
// happens once, on the first size seen.
func (g *Game) applyResize() {
	g.sizeDirty = false
	g.camera.Width = g.width
	g.camera.Height = g.height
	g.renderer.SetScale(g.scale)
	g.relayout()

	if !g.fieldChecked {
		g.fieldChecked = true
		if IsCompact(g.width, g.config.Breakpoint) {
			g.log.Info("compact viewport (%.0f <= %d), background animation disabled", g.width, g.config.Breakpoint)
			return
		}
		g.field = field.New(g.width, g.height, g.scale, g.theme, g.rng)
		g.resetWarn()
		return
	}
	if g.field != nil {
		g.field.Resize(g.width, g.height, g.scale)
		g.resetWarn()
	}
}

func (g *Game) relayout() {
	g.wrapped = g.doc.Wrap(wrapColumns(g.width))

	m := baseMetrics
	m.MinSectionHeight = g.height * 0.5
	if g.contact != nil {
		m.Extra = map[string]float64{contactSection: formHeight(g.contact.Form())}
	}
	g.metrics = m
	g.layout = page.Arrange(g.wrapped, m)

	var pending []page.Box
	for _, b := range g.layout.Boxes() {
		if _, ok := g.revealedAt[b.ID]; !ok {
			pending = append(pending, b)
		}
	}
	g.reveal = page.NewRevealTracker(pending, page.RevealThreshold)

	links := g.wrapped.NavLinks()
	g.nav = page.NewNavHighlighter(links, g.layout)
	g.navUI = layoutNav(g.wrapped.Title, links, g.width)

	g.hasForm = false
	if g.contact != nil {
		if top, ok := formTop(g.wrapped, g.layout, m); ok {
			x, w := contentColumn(g.width)
			g.form = layoutForm(g.contact.Form(), x, top, w)
			g.hasForm = true
		}
	}
	g.camera.ScrollBy(0, g.layout.Height)
}

var digitKeys = map[ebiten.Key]int{
	ebiten.KeyDigit1: 0,
	ebiten.KeyDigit2: 1,
	ebiten.KeyDigit3: 2,
	ebiten.KeyDigit4: 3,
	ebiten.KeyDigit5: 4,
	ebiten.KeyDigit6: 5,
	ebiten.KeyDigit7: 6,
	ebiten.KeyDigit8: 7,
	ebiten.KeyDigit9: 8,
}

func (g *Game) handleKeys(in InputState, now time.Time) {
	if in.Has(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if g.focus >= 0 && g.hasForm {
		g.editForm(in, now)
		return
	}

	for _, k := range in.Keys {
		switch k {
		case ebiten.KeyT:
			g.toggleTheme()
		case ebiten.KeyArrowDown:
			g.camera.ScrollBy(wheelStep, g.layout.Height)
		case ebiten.KeyArrowUp:
			g.camera.ScrollBy(-wheelStep, g.layout.Height)
		case ebiten.KeyPageDown, ebiten.KeySpace:
			g.camera.ScrollBy(g.height*0.9, g.layout.Height)
		case ebiten.KeyPageUp:
			g.camera.ScrollBy(-g.height*0.9, g.layout.Height)
		case ebiten.KeyHome:
			g.camera.ScrollTo(0, g.layout.Height)
		case ebiten.KeyEnd:
			g.camera.ScrollTo(g.layout.Height, g.layout.Height)
		case ebiten.KeyTab:
			if g.hasForm {
				g.focusField(0)
			}
		default:
			if i, ok := digitKeys[k]; ok {
				g.jumpTo(i)
			}
		}
	}
}

func (g *Game) editForm(in InputState, now time.Time) {
	form := g.contact.Form()
	n := form.Len()

	for _, k := range in.Keys {
		switch k {
		case ebiten.KeyEscape:
			g.focus = -1
			return
		case ebiten.KeyTab:
			if in.Shift {
				g.focusField((g.focus + n - 1) % n)
			} else {
				g.focusField((g.focus + 1) % n)
			}
		case ebiten.KeyBackspace:
			form.Backspace(g.focus)
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
			if form.Field(g.focus).Multiline && !in.Ctrl {
				form.Append(g.focus, "\n")
			} else {
				g.submit(now)
			}
		}
	}

	for _, r := range in.Chars {
		if r >= 0x20 && r != 0x7f {
			form.Append(g.focus, string(r))
		}
	}
}

// focusField focuses field i and scrolls it into view
func (g *Game) focusField(i int) {
	g.focus = i
	r := g.form.fields[i]
	if r.Y < g.camera.Y+navHeight || r.Y+r.H > g.camera.Y+g.height {
		g.camera.ScrollTo(r.Y-g.height/2, g.layout.Height)
	}
}

func (g *Game) handlePointer(in InputState, now time.Time) {
	if g.field != nil {
		if in.Inside {
			g.field.PointerMove(in.X, in.Y)
		} else {
			g.field.PointerLeave()
		}
	}
	if !in.Pressed || !in.Inside {
		return
	}

	if g.dbl.Press(in.X, in.Y, now) && g.field != nil {
		g.field.DoubleClick(in.X, in.Y)
		g.checkPopulation()
	}
	g.click(in.X, in.Y, now)
}

func (g *Game) click(x, y float64, now time.Time) {
	if y < navHeight {
		if g.navUI.toggle.contains(x, y) {
			g.toggleTheme()
			return
		}
		for i, r := range g.navUI.links {
			if r.contains(x, y) {
				g.jumpTo(i)
				return
			}
		}
		return
	}

	g.focus = -1
	if !g.hasForm {
		return
	}
	px, py := g.camera.ScreenToPage(x, y)
	for i, r := range g.form.fields {
		if r.contains(px, py) {
			g.focus = i
			return
		}
	}
	if g.form.submit.contains(px, py) {
		g.submit(now)
	}
}

// jumpTo scrolls nav link i's section to just below the header
func (g *Game) jumpTo(i int) {
	top, ok := g.nav.Target(i)
	if !ok {
		return
	}
	g.camera.ScrollTo(top-navHeight, g.layout.Height)
}

func (g *Game) toggleTheme() {
	t := g.theme.Toggle()
	g.log.Info("theme switched to %s", t)
}

func (g *Game) submit(now time.Time) {
	if g.contact == nil {
		return
	}
	if err := g.contact.Submit(g.ctx, now); err != nil {
		g.log.Debug("submission not sent: %v", err)
	}
}

func (g *Game) resetWarn() {
	g.nextWarn = g.config.ParticleWarnThreshold
	g.checkPopulation()
}

// checkPopulation warns each time the particle count passes another
// multiple of the configured threshold
func (g *Game) checkPopulation() {
	th := g.config.ParticleWarnThreshold
	if th <= 0 || g.field == nil {
		return
	}
	n := g.field.Population().Particles
	if n >= g.nextWarn {
		g.log.Warn("particle count reached %d (warning threshold %d)", n, th)
		g.nextWarn = (n/th + 1) * th
	}
}

func (g *Game) frameDrop() {
	particles := 0
	if g.field != nil {
		particles = g.field.Population().Particles
	}
	g.log.Warn("frame rate dropped to %.0f FPS with %d particles", g.meter.FPS(), particles)
	if g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("fps%.0f-particles%d", g.meter.FPS(), particles)
	if err := g.profiler.CaptureProfile(reason); err != nil {
		g.log.Debug("profile not captured: %v", err)
	}
}

// revealProgress returns the opacity and downward offset of an item's
// reveal transition
func (g *Game) revealProgress(id string) (float64, float64) {
	at, ok := g.revealedAt[id]
	if !ok {
		return 0, 0
	}
	p := min(float64(g.tick-at)/revealFrames, 1)
	return p, (1 - p) * revealRise
}

const (
	revealFrames = 36
	revealRise   = 24
)
