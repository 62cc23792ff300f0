package gui

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/auxwin/gui/text"
)

// Button is a clickable rectangle with a centered label. The action
// callback fires on left-button press inside the bounds.
type Button struct {
	Base

	label  string
	action func()

	pressed bool
}

// NewButton returns a button at the given bounds. The action may be
// nil for a purely decorative button.
func NewButton(x, y, width, height int, label string, action func()) *Button {
	return &Button{
		Base:   NewBase(x, y, width, height),
		label:  label,
		action: action,
	}
}

func (b *Button) Label() string         { return b.label }
func (b *Button) SetLabel(label string) { b.label = label }

// SetAction replaces the click callback.
func (b *Button) SetAction(action func()) { b.action = action }

// HandleMouseClick consumes left presses inside the bounds and fires
// the action. The release that follows a press is consumed too, so a
// widget underneath cannot see half of a click.
func (b *Button) HandleMouseClick(w *Window, mx, my float32, button MouseButton, action Action, mods ModifierKey) bool {
	if button != MouseButtonLeft {
		return false
	}
	if action == Press && b.Contains(mx, my) {
		b.pressed = true
		if b.action != nil {
			b.action()
		}
		return true
	}
	if action == Release && b.pressed {
		b.pressed = false
		return true
	}
	return false
}

// fitLabel shortens the label with a trailing ellipsis when it would
// overflow the button, using the window's text measurer.
func (b *Button) fitLabel(w *Window) string {
	m := w.Measurer()
	if m == nil {
		return b.label
	}
	max := b.width - 8
	if m.TextWidth(b.label, text.DefaultSize) <= max {
		return b.label
	}
	runes := []rune(b.label)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := string(runes) + "…"
		if m.TextWidth(s, text.DefaultSize) <= max {
			return s
		}
	}
	return "…"
}

func (b *Button) Render(w *Window, hovered bool) {
	if hovered {
		gl.Color4f(0.35, 0.35, 0.45, 1)
	} else {
		gl.Color4f(0.25, 0.25, 0.32, 1)
	}
	fillRect(b.x, b.y, b.width, b.height)

	gl.Color4f(0.55, 0.55, 0.65, 1)
	strokeRect(b.x, b.y, b.width, b.height)

	if r := w.Text(); r != nil {
		gl.Color4f(1, 1, 1, 1)
		r.DrawText(b.fitLabel(w), b.x+b.width/2, b.y+b.height/2, text.DefaultSize)
	}
}

// fillRect draws a solid axis-aligned rectangle in window pixels.
func fillRect(x, y, width, height int) {
	gl.Disable(gl.TEXTURE_2D)
	gl.Begin(gl.QUADS)
	gl.Vertex2i(int32(x), int32(y))
	gl.Vertex2i(int32(x+width), int32(y))
	gl.Vertex2i(int32(x+width), int32(y+height))
	gl.Vertex2i(int32(x), int32(y+height))
	gl.End()
}

// strokeRect draws a 1px rectangle outline.
func strokeRect(x, y, width, height int) {
	gl.Disable(gl.TEXTURE_2D)
	gl.Begin(gl.LINE_LOOP)
	gl.Vertex2i(int32(x), int32(y))
	gl.Vertex2i(int32(x+width), int32(y))
	gl.Vertex2i(int32(x+width), int32(y+height))
	gl.Vertex2i(int32(x), int32(y+height))
	gl.End()
}
