package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/ember"
)

// Renderer draws one group's particles as textured billboards. The texture
// is a horizontal strip of equally sized frames; ParamTextureIndex selects
// the frame, ParamSize scales the billboard in world units, ParamAngle
// rotates it.
//
// Enable the group's distance sort when using alpha blending; additive
// blending is order-independent.
type Renderer struct {
	frames []*ebiten.Image
	frameW int
	frameH int

	// Additive switches from alpha blending to additive blending (fire,
	// sparks, magic).
	Additive bool

	// FadeOut scales the billboard's alpha by remaining life fraction.
	FadeOut bool

	opts ebiten.DrawImageOptions
}

// NewRenderer creates a renderer over a frame strip. frameCount slices the
// texture horizontally into that many frames; pass 1 for a single image.
func NewRenderer(texture *ebiten.Image, frameCount int) *Renderer {
	if frameCount < 1 {
		frameCount = 1
	}
	bounds := texture.Bounds()
	w := bounds.Dx() / frameCount
	h := bounds.Dy()

	r := &Renderer{
		frames: make([]*ebiten.Image, frameCount),
		frameW: w,
		frameH: h,
	}
	for i := range r.frames {
		rect := image.Rect(bounds.Min.X+i*w, bounds.Min.Y, bounds.Min.X+(i+1)*w, bounds.Min.Y+h)
		r.frames[i] = texture.SubImage(rect).(*ebiten.Image)
	}
	return r
}

// Draw renders the group's live particles to dst through the camera. The
// camera must have been refreshed for dst's size this frame. Particles are
// drawn in pool order, which is back-to-front when the group's distance
// sort is enabled.
func (r *Renderer) Draw(dst *ebiten.Image, g *ember.Group, cam *Camera) {
	blend := ebiten.Blend{}
	if r.Additive {
		blend = ebiten.BlendLighter
	}

	for i := 0; i < g.Alive(); i++ {
		p := g.Particle(i)
		x, y, depth, ok := cam.Project(p.Position())
		if !ok {
			continue
		}

		frame := r.frames[r.frameIndex(p)]
		size := p.Param(ember.ParamSize)
		if size <= 0 {
			continue
		}
		// World size to pixels, then to a scale of the frame bitmap.
		pixels := size * cam.Scale(depth)
		scale := float64(pixels) / float64(r.frameW)

		r.opts = ebiten.DrawImageOptions{Blend: blend, Filter: ebiten.FilterLinear}
		r.opts.GeoM.Translate(-float64(r.frameW)/2, -float64(r.frameH)/2)
		r.opts.GeoM.Rotate(float64(p.Param(ember.ParamAngle)))
		r.opts.GeoM.Scale(scale, scale)
		r.opts.GeoM.Translate(float64(x), float64(y))

		if r.FadeOut {
			life := p.Age() + p.LifeLeft()
			if life > 0 {
				r.opts.ColorScale.ScaleAlpha(p.LifeLeft() / life)
			}
		}

		dst.DrawImage(frame, &r.opts)
	}
}

// frameIndex clamps ParamTextureIndex into the frame strip.
func (r *Renderer) frameIndex(p ember.Particle) int {
	idx := int(p.Param(ember.ParamTextureIndex))
	if idx < 0 {
		return 0
	}
	if idx >= len(r.frames) {
		return len(r.frames) - 1
	}
	return idx
}
