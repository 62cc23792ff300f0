package gui

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/auxwin/gui/text"
)

const sliderThumbWidth = 12

// Slider is a horizontal value slider over [0, 1]. Dragging the thumb
// keeps the grab point anchored; clicking the track jumps the thumb to
// the pointer.
type Slider struct {
	Base

	value    float64
	label    string
	onChange func(v float64)

	dragging    bool
	dragOffsetX float32
}

// NewSlider returns a slider at the given bounds with the given
// initial value, clamped to [0, 1].
func NewSlider(x, y, width, height int, label string, value float64) *Slider {
	s := &Slider{
		Base:  NewBase(x, y, width, height),
		label: label,
	}
	s.value = clamp01(value)
	return s
}

// SetOnChange registers a callback fired on every value change.
func (s *Slider) SetOnChange(fn func(v float64)) { s.onChange = fn }

func (s *Slider) Value() float64 { return s.value }

// SetValue sets the value, clamped to [0, 1]. The callback fires only
// when the clamped value actually differs.
func (s *Slider) SetValue(v float64) {
	v = clamp01(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// thumbX returns the thumb's left edge for the current value. The
// travel range is the width minus the thumb itself, so the thumb never
// leaves the track.
func (s *Slider) thumbX() int {
	travel := s.width - sliderThumbWidth
	return s.x + int(s.value*float64(travel))
}

// valueAt converts a window-space x to a value, treating x as the
// thumb's left edge.
func (s *Slider) valueAt(left float32) float64 {
	travel := float64(s.width - sliderThumbWidth)
	if travel <= 0 {
		return 0
	}
	return clamp01((float64(left) - float64(s.x)) / travel)
}

// HandleMouseClick starts a thumb drag when the press lands on the
// thumb, recording where inside the thumb it hit. A press elsewhere on
// the track centers the thumb under the pointer immediately and drags
// from there.
func (s *Slider) HandleMouseClick(w *Window, mx, my float32, button MouseButton, action Action, mods ModifierKey) bool {
	if button != MouseButtonLeft {
		return false
	}
	if action == Press && s.Contains(mx, my) {
		tx := float32(s.thumbX())
		if mx >= tx && mx < tx+sliderThumbWidth {
			s.dragOffsetX = mx - tx
		} else {
			s.dragOffsetX = sliderThumbWidth / 2
			s.SetValue(s.valueAt(mx - s.dragOffsetX))
		}
		s.dragging = true
		return true
	}
	if action == Release && s.dragging {
		s.dragging = false
		return true
	}
	return false
}

// HandleMouseMove continues the drag, keeping the grab point fixed
// under the pointer even when it leaves the bounds.
func (s *Slider) HandleMouseMove(w *Window, mx, my float32) bool {
	if !s.dragging {
		return false
	}
	s.SetValue(s.valueAt(mx - s.dragOffsetX))
	return true
}

func (s *Slider) Render(w *Window, hovered bool) {
	// Track.
	trackY := s.y + s.height/2 - 2
	gl.Color4f(0.2, 0.2, 0.26, 1)
	fillRect(s.x, trackY, s.width, 4)

	// Thumb.
	if s.dragging || hovered {
		gl.Color4f(0.6, 0.6, 0.75, 1)
	} else {
		gl.Color4f(0.45, 0.45, 0.55, 1)
	}
	fillRect(s.thumbX(), s.y, sliderThumbWidth, s.height)

	if r := w.Text(); r != nil {
		gl.Color4f(1, 1, 1, 1)
		caption := fmt.Sprintf("%s: %d%%", s.label, int(s.value*100+0.5))
		r.DrawLeftAligned(caption, s.x, s.y-text.DefaultSize/2-4, text.DefaultSize)
	}
}
