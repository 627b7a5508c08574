package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"neuralfolio/contact"
	"neuralfolio/page"
	"neuralfolio/theme"
)

// Draw renders the background animation, the page and the header
func (g *Game) Draw(screen *ebiten.Image) {
	style := g.theme.Style()
	screen.Fill(style.Background)
	if g.nav == nil {
		return
	}

	if g.field != nil {
		g.renderer.RenderField(screen, &g.frame)
	}
	g.drawSections(screen, style)
	if g.hasForm {
		g.drawForm(screen, style)
	}
	g.drawNav(screen, style)
	if g.showDebug {
		g.drawDebug(screen, style)
	}
}

// pageRect converts a page-space rect to the screen, shifted by dy
func (g *Game) pageRect(r rect, dy float64) rect {
	_, y := g.camera.PageToScreen(r.X, r.Y+dy)
	r.Y = y
	return r
}

func (g *Game) drawSections(screen *ebiten.Image, style theme.Style) {
	x, w := contentColumn(g.width)
	m := g.metrics

	for si, sb := range g.layout.Sections {
		if !g.camera.Visible(sb.Box) {
			continue
		}
		s := g.wrapped.Sections[si]

		if a, dy := g.revealProgress(sb.ID); a > 0 {
			_, top := g.camera.PageToScreen(x, sb.Top+dy)
			g.renderer.Text(screen, strings.ToUpper(s.Title), x, top+8, fade(style.Accent, a))
			y := top + m.TitleHeight
			for _, line := range s.Lines {
				g.renderer.Text(screen, line, x, y, fade(style.Text, a))
				y += m.LineHeight
			}
		}

		for ci, cb := range sb.Cards {
			a, dy := g.revealProgress(cb.ID)
			if a == 0 || !g.camera.Visible(cb) {
				continue
			}
			g.drawCard(screen, s.Cards[ci], g.pageRect(rect{X: x, Y: cb.Top, W: w, H: cb.Height}, dy), a, style)
		}
	}
}

func (g *Game) drawCard(screen *ebiten.Image, c page.Card, box rect, a float64, style theme.Style) {
	m := g.metrics
	g.renderer.FillRect(screen, box, fade(style.Panel, a))
	g.renderer.StrokeRect(screen, box, 1, fade(style.Muted, a*0.4))

	x := box.X + m.CardPadding
	y := box.Y + m.CardPadding
	g.renderer.Text(screen, c.Title, x, y, fade(style.Accent, a))
	for _, line := range c.Lines {
		y += m.LineHeight
		g.renderer.Text(screen, line, x, y, fade(style.Text, a))
	}
}

func (g *Game) drawForm(screen *ebiten.Image, style theme.Style) {
	a, dy := g.revealProgress(contactSection)
	if a == 0 {
		return
	}
	form := g.contact.Form()

	for i := range g.form.fields {
		f := form.Field(i)
		label := f.Label
		if f.Required {
			label += " *"
		}
		lr := g.pageRect(g.form.labels[i], dy)
		g.renderer.Text(screen, label, lr.X, lr.Y, fade(style.Muted, a))

		fr := g.pageRect(g.form.fields[i], dy)
		g.renderer.FillRect(screen, fr, fade(style.Panel, a))
		if i == g.focus {
			g.renderer.StrokeRect(screen, fr, 2, fade(style.Accent, a))
		} else {
			g.renderer.StrokeRect(screen, fr, 1, fade(style.Muted, a*0.5))
		}
		g.drawFieldValue(screen, f, fr, i == g.focus, fade(style.Text, a))
	}

	sr := g.pageRect(g.form.submit, dy)
	g.renderer.FillRect(screen, sr, fade(style.Accent, a))
	const label = "Send"
	g.renderer.Text(screen, label, sr.X+(sr.W-float64(len(label)*glyphWidth))/2, sr.Y+(sr.H-glyphHeight)/2, fade(style.Background, a))

	if g.contact.Celebrating() {
		g.drawCelebration(screen, sr, style)
	}

	msg, visible := g.contact.Status()
	if !visible {
		return
	}
	st := g.pageRect(g.form.status, dy)
	if g.contact.Feedback() {
		pulse := min(float64(g.tick-g.feedbackAt)/12, 1)
		g.renderer.FillRect(screen, st, fade(style.Panel, pulse))
		g.renderer.StrokeRect(screen, st, 1, fade(style.Accent, pulse))
	}
	clr := style.Text
	if g.contact.LastOutcome() != contact.Sent {
		clr = style.Muted
	}
	g.renderer.Text(screen, msg, st.X+8, st.Y+(st.H-glyphHeight)/2, clr)
}

// drawFieldValue draws the tail of a field's value that fits its box
func (g *Game) drawFieldValue(screen *ebiten.Image, f contact.Field, box rect, focused bool, clr color.Color) {
	const pad = 8
	cols := max(int((box.W-2*pad)/glyphWidth), 1)
	value := f.Value
	if focused && (g.tick/30)%2 == 0 {
		value += "_"
	}

	var lines []string
	if f.Multiline {
		for _, para := range strings.Split(value, "\n") {
			lines = append(lines, page.WrapLine(para, cols)...)
		}
	} else {
		r := []rune(value)
		if len(r) > cols {
			r = r[len(r)-cols:]
		}
		lines = []string{string(r)}
	}

	rows := max(int((box.H-pad)/g.metrics.LineHeight), 1)
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	y := box.Y + pad
	if !f.Multiline {
		y = box.Y + (box.H-glyphHeight)/2
	}
	for _, line := range lines {
		g.renderer.Text(screen, line, box.X+pad, y, clr)
		y += g.metrics.LineHeight
	}
}

// drawCelebration orbits a ring of dots around the submit button
func (g *Game) drawCelebration(screen *ebiten.Image, button rect, style theme.Style) {
	const dots = 8
	cx := button.X + button.W/2
	cy := button.Y + button.H/2
	radius := button.W/2 + 10
	base := float64(g.tick) * 0.08
	for k := 0; k < dots; k++ {
		angle := base + float64(k)*2*math.Pi/dots
		x := cx + math.Cos(angle)*radius
		y := cy + math.Sin(angle)*radius*0.5
		g.renderer.Circle(screen, x, y, 3, style.Accent)
	}
}

func (g *Game) drawNav(screen *ebiten.Image, style theme.Style) {
	g.renderer.FillRect(screen, rect{W: g.width, H: navHeight}, style.Panel)

	x, _ := contentColumn(g.width)
	textY := float64(navHeight-glyphHeight) / 2
	g.renderer.Text(screen, g.wrapped.Title, x, textY, style.Text)

	links := g.nav.Links()
	for i, r := range g.navUI.links {
		clr := style.Muted
		if g.nav.Active(i) {
			clr = style.Accent
			g.renderer.FillRect(screen, rect{X: r.X + 10, Y: navHeight - 12, W: r.W - 20, H: 2}, style.Accent)
		}
		g.renderer.Text(screen, links[i].Label, r.X+10, textY, clr)
	}

	t := g.navUI.toggle
	label := "Light"
	if g.theme.Current() == theme.Light {
		label = "Dark"
	}
	g.renderer.StrokeRect(screen, t, 1, style.Muted)
	g.renderer.Text(screen, label, t.X+(t.W-float64(len(label)*glyphWidth))/2, t.Y+(t.H-glyphHeight)/2, style.Text)
}

func (g *Game) drawDebug(screen *ebiten.Image, style theme.Style) {
	lines := []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f  scale %.2f", g.meter.FPS(), ebiten.ActualTPS(), g.scale),
		fmt.Sprintf("scroll %.0f / %.0f  theme %s", g.camera.Y, g.layout.Height, g.theme.Current()),
	}
	if g.field != nil {
		pop := g.field.Population()
		att := g.field.Attractor()
		lines = append(lines, fmt.Sprintf("particles %d  stars %d  asteroids %d  attractor %d",
			pop.Particles, pop.Stars, pop.Asteroids, att.TTL))
	} else {
		lines = append(lines, "background disabled")
	}
	if g.profiler != nil && g.profiler.IsProfiling() {
		lines = append(lines, "profiling...")
	}

	h := float64(len(lines))*g.metrics.LineHeight + 12
	box := rect{X: 8, Y: g.height - h - 8, W: 440, H: h}
	g.renderer.FillRect(screen, box, style.Panel)
	y := box.Y + 6
	for _, line := range lines {
		g.renderer.Text(screen, line, box.X+8, y, style.Text)
		y += g.metrics.LineHeight
	}
}
