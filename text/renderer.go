// Package text provides the per-window glyph and text service: TrueType
// rasterization with a (rune, pixel-size) glyph cache backed by OpenGL
// alpha textures.
//
// A Renderer belongs to exactly one window and must only be used from
// that window's render thread; glyph textures are bound to the thread's
// GL context. Width measurement does not touch GL and is safe for
// headless use.
package text

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the default pixel size widgets draw text at.
const DefaultSize = 24

type glyphKey struct {
	r    rune
	size int
}

type glyph struct {
	tex      uint32
	width    int
	height   int
	bearingX int
	bearingY int
	advance  int
}

// Renderer rasterizes and draws text for one window.
type Renderer struct {
	font   *truetype.Font
	faces  map[int]font.Face
	glyphs map[glyphKey]*glyph
}

// NewRenderer creates a renderer using the embedded Go Regular face.
func NewRenderer() (*Renderer, error) {
	return newRenderer(goregular.TTF)
}

// NewRendererFromFile creates a renderer from a TTF file on disk.
func NewRendererFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font %s: %w", path, err)
	}
	return newRenderer(data)
}

func newRenderer(ttf []byte) (*Renderer, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &Renderer{
		font:   f,
		faces:  make(map[int]font.Face),
		glyphs: make(map[glyphKey]*glyph),
	}, nil
}

func (r *Renderer) face(size int) font.Face {
	if size <= 0 {
		size = DefaultSize
	}
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}

// TextWidth returns the advance width of s at the given pixel size.
// Pure measurement; never touches GL.
func (r *Renderer) TextWidth(s string, size int) int {
	if s == "" {
		return 0
	}
	return font.MeasureString(r.face(size), s).Ceil()
}

// lineMetrics returns ascent and descent in pixels for a size.
func (r *Renderer) lineMetrics(size int) (ascent, descent int) {
	m := r.face(size).Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}

// lookup returns the cached glyph for (ch, size), rasterizing and
// uploading it on first use.
func (r *Renderer) lookup(ch rune, size int) *glyph {
	key := glyphKey{r: ch, size: size}
	if g, ok := r.glyphs[key]; ok {
		return g
	}

	face := r.face(size)
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		// Unmapped rune: cache an empty glyph with a fallback advance
		// so unknown input still moves the pen.
		adv, _ := face.GlyphAdvance('?')
		g := &glyph{advance: adv.Ceil()}
		r.glyphs[key] = g
		return g
	}

	g := &glyph{
		width:    dr.Dx(),
		height:   dr.Dy(),
		bearingX: dr.Min.X,
		bearingY: -dr.Min.Y,
		advance:  advance.Ceil(),
	}

	if g.width > 0 && g.height > 0 {
		// Copy the mask rows into a tight alpha buffer.
		pix := make([]byte, g.width*g.height)
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
				pix[y*g.width+x] = byte(a >> 8)
			}
		}
		g.tex = uploadAlphaTexture(pix, g.width, g.height)
	}

	r.glyphs[key] = g
	return g
}

// uploadAlphaTexture creates a GL_ALPHA texture. UNPACK_ALIGNMENT is
// forced to 1 because glyph rows are not padded, and NEAREST filtering
// keeps edges sharp at integer placement.
func uploadAlphaTexture(pix []byte, width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.ALPHA, int32(width), int32(height), 0,
		gl.ALPHA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// DrawText draws s centered on (cx, cy) in the current GL color.
func (r *Renderer) DrawText(s string, cx, cy, size int) {
	w := r.TextWidth(s, size)
	r.drawString(s, cx-w/2, cy, size)
}

// DrawLeftAligned draws s with its left edge at x, vertically centered
// on cy, in the current GL color.
func (r *Renderer) DrawLeftAligned(s string, x, cy, size int) {
	r.drawString(s, x, cy, size)
}

func (r *Renderer) drawString(s string, x, cy, size int) {
	if s == "" {
		return
	}
	ascent, descent := r.lineMetrics(size)
	baseline := cy + (ascent-descent)/2

	gl.Enable(gl.TEXTURE_2D)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	pen := x
	for _, ch := range s {
		g := r.lookup(ch, size)
		if g.tex != 0 {
			// Integer placement avoids sampling between texels.
			gx := float32(pen + g.bearingX)
			gy := float32(baseline - g.bearingY)
			gw := float32(g.width)
			gh := float32(g.height)

			gl.BindTexture(gl.TEXTURE_2D, g.tex)
			gl.Begin(gl.QUADS)
			gl.TexCoord2f(0, 0)
			gl.Vertex2f(gx, gy)
			gl.TexCoord2f(1, 0)
			gl.Vertex2f(gx+gw, gy)
			gl.TexCoord2f(1, 1)
			gl.Vertex2f(gx+gw, gy+gh)
			gl.TexCoord2f(0, 1)
			gl.Vertex2f(gx, gy+gh)
			gl.End()
		}
		pen += g.advance
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)
}

// Close releases every glyph texture and face. The renderer must not
// be used afterwards. Must run on the render thread with the window's
// context still current.
func (r *Renderer) Close() {
	for _, g := range r.glyphs {
		if g.tex != 0 {
			gl.DeleteTextures(1, &g.tex)
		}
	}
	r.glyphs = make(map[glyphKey]*glyph)
	for _, f := range r.faces {
		f.Close()
	}
	r.faces = make(map[int]font.Face)
}
