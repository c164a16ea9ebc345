// Package render draws the simulation world to a tcell screen. It is a
// read-only observer of engine state; nothing here feeds back into physics.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravity-well/engine"
	"github.com/lixenwraith/gravity-well/physics"
	"github.com/lixenwraith/gravity-well/vmath"
)

// Camera maps world space to screen cells. Terminal cells are ~2x taller
// than wide, so the y axis is squashed by cellAspect to keep orbits round.
type Camera struct {
	X, Y float64 // world position at screen center
	Zoom float64 // screen cells per world unit
}

const cellAspect = 0.5

// NewCamera returns a camera centered on the origin at a zoom that fits a
// typical scenario extent into an 80-column window
func NewCamera() *Camera {
	return &Camera{Zoom: 0.05}
}

// Pan shifts the camera in screen-relative cells
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom / cellAspect
}

// Scale multiplies zoom, clamped to a usable range
func (c *Camera) Scale(factor float64) {
	c.Zoom = vmath.Clamp(c.Zoom*factor, 0.001, 4)
}

// project converts a world position to screen cell coordinates
func (c *Camera) project(p vmath.Vec2, w, h int) (int, int) {
	x := (p.X-c.X)*c.Zoom + float64(w)/2
	y := (p.Y-c.Y)*c.Zoom*cellAspect + float64(h)/2
	return int(x), int(y)
}

// Renderer draws world snapshots
type Renderer struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders one frame: trails under bodies, debris shards, then the HUD
func (r *Renderer) Draw(w *engine.World, cam *Camera, paused bool) {
	r.screen.Clear()
	width, height := r.screen.Size()

	for _, b := range w.Bodies() {
		r.drawTrail(b, cam, width, height)
	}
	for _, b := range w.Bodies() {
		r.drawBody(b, cam, width, height)
	}
	r.drawHUD(w, cam, paused, width)
	r.screen.Show()
}

func (r *Renderer) drawTrail(b *physics.Body, cam *Camera, w, h int) {
	style := tcell.StyleDefault.Foreground(toTcell(dim(b.Color)))
	for _, p := range b.Trail {
		x, y := cam.project(p, w, h)
		if x >= 0 && x < w && y >= 0 && y < h {
			r.screen.SetContent(x, y, '·', nil, style)
		}
	}
}

func (r *Renderer) drawBody(b *physics.Body, cam *Camera, w, h int) {
	x, y := cam.project(b.Pos, w, h)
	style := tcell.StyleDefault.Foreground(toTcell(b.Color))

	if b.IsDebris {
		// Shards render as their polygon's projected outline points
		for _, p := range b.Shape {
			sx, sy := cam.project(b.Pos.Add(p), w, h)
			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				r.screen.SetContent(sx, sy, '▪', nil, style)
			}
		}
		return
	}

	// Glyph by on-screen size; bodies larger than one cell get a filled
	// disk of characters
	cells := b.Radius * cam.Zoom
	if cells <= 1.5 {
		if x >= 0 && x < w && y >= 0 && y < h {
			r.screen.SetContent(x, y, glyphFor(cells), nil, style)
		}
		return
	}
	r.fillDisk(b, cam, w, h, style)
}

// fillDisk rasterizes a body that spans multiple cells
func (r *Renderer) fillDisk(b *physics.Body, cam *Camera, w, h int, style tcell.Style) {
	rx := int(b.Radius*cam.Zoom) + 1
	ry := int(b.Radius*cam.Zoom*cellAspect) + 1
	cx, cy := cam.project(b.Pos, w, h)

	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			// Ellipse test in cell space mirrors the aspect-squashed projection
			fx := float64(dx) / float64(rx)
			fy := float64(dy) / float64(ry)
			if fx*fx+fy*fy > 1 {
				continue
			}
			x, y := cx+dx, cy+dy
			if x >= 0 && x < w && y >= 0 && y < h {
				r.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}
}

func glyphFor(cells float64) rune {
	switch {
	case cells < 0.3:
		return '·'
	case cells < 0.7:
		return 'o'
	case cells < 1.1:
		return 'O'
	default:
		return '@'
	}
}

func (r *Renderer) drawHUD(w *engine.World, cam *Camera, paused bool, width int) {
	state := "running"
	if paused {
		state = "PAUSED"
	}
	hud := fmt.Sprintf(" bodies %d  collisions %d  t %.1fs  zoom %.3f  [%s] ",
		len(w.Bodies()), w.Collisions(), w.Time(), cam.Zoom, state)

	style := tcell.StyleDefault.Reverse(true)
	for i, ch := range hud {
		if i >= width {
			break
		}
		r.screen.SetContent(i, 0, ch, nil, style)
	}
}

// toTcell converts a colorful color to tcell's RGB color space
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// dim fades a color for trails
func dim(c colorful.Color) colorful.Color {
	return colorful.Color{R: c.R * 0.4, G: c.G * 0.4, B: c.B * 0.4}
}
