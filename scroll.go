package gui

import (
	"sync/atomic"

	"github.com/go-gl/gl/v2.1/gl"
)

const (
	scrollbarWidth  = 8
	scrollbarMargin = 6
	minThumbHeight  = 25
	wheelStep       = 30
)

// ScrollContainer clips a vertically scrollable set of child widgets
// to its bounds. Children are positioned in content space: their
// coordinates run from (0, 0) at the container's top-left downward,
// independent of the scroll position. Events reaching a child are
// translated into that space.
type ScrollContainer struct {
	Base

	children  widgetList
	spacing   int
	wheelStep int

	// offset is the scroll position in pixels, contentHeight the
	// extent of the children. Both are atomic so the host thread can
	// reposition the view while the render thread draws.
	offset        atomic.Int32
	contentHeight atomic.Int32

	draggingThumb bool
	thumbGrabY    float32
}

// NewScrollContainer returns an empty container at the given bounds.
func NewScrollContainer(x, y, width, height int) *ScrollContainer {
	return &ScrollContainer{
		Base:      NewBase(x, y, width, height),
		wheelStep: wheelStep,
	}
}

// SetWheelStep sets the wheel sensitivity in pixels per notch.
func (s *ScrollContainer) SetWheelStep(px int) {
	if px > 0 {
		s.wheelStep = px
	}
}

// SetSpacing sets the inter-child spacing added below the bottommost
// child when measuring the content extent.
func (s *ScrollContainer) SetSpacing(px int) {
	s.spacing = px
	s.recompute()
}

// AddChild appends a widget in content-space coordinates.
func (s *ScrollContainer) AddChild(wt Widget) {
	s.children.add(wt)
	s.recompute()
}

// RemoveChild removes a widget. The scroll position is re-clamped in
// case the content shrank above it.
func (s *ScrollContainer) RemoveChild(wt Widget) {
	s.children.remove(wt)
	s.recompute()
}

// ClearChildren removes every child and rewinds the view.
func (s *ScrollContainer) ClearChildren() {
	s.children.clear()
	s.recompute()
}

// Children returns the current child snapshot.
func (s *ScrollContainer) Children() []Widget {
	return s.children.snapshot()
}

// recompute refreshes the content extent from the child bounds and
// clamps the offset against it.
func (s *ScrollContainer) recompute() {
	max := 0
	for _, c := range s.children.snapshot() {
		_, cy, _, ch := c.Bounds()
		if bottom := cy + ch + s.spacing; bottom > max {
			max = bottom
		}
	}
	s.contentHeight.Store(int32(max))
	s.ScrollTo(int(s.offset.Load()))
}

// ContentHeight returns the extent of the children in pixels.
func (s *ScrollContainer) ContentHeight() int {
	return int(s.contentHeight.Load())
}

// Offset returns the current scroll position.
func (s *ScrollContainer) Offset() int {
	return int(s.offset.Load())
}

// maxOffset is how far the view can scroll: zero when the content
// fits.
func (s *ScrollContainer) maxOffset() int {
	m := int(s.contentHeight.Load()) - s.height
	if m < 0 {
		m = 0
	}
	return m
}

// ScrollTo sets the scroll position, clamped to [0, maxOffset].
func (s *ScrollContainer) ScrollTo(off int) {
	if off < 0 {
		off = 0
	}
	if m := s.maxOffset(); off > m {
		off = m
	}
	s.offset.Store(int32(off))
}

// ScrollBy moves the view by a pixel delta.
func (s *ScrollContainer) ScrollBy(delta int) {
	s.ScrollTo(int(s.offset.Load()) + delta)
}

// toContent translates window-space pointer coordinates into content
// space.
func (s *ScrollContainer) toContent(mx, my float32) (float32, float32) {
	return mx - float32(s.x), my - float32(s.y) + float32(s.offset.Load())
}

// ChildAt returns the topmost visible child under a window-space
// point, or nil. Later-added children win, matching the render order.
func (s *ScrollContainer) ChildAt(mx, my float32) Widget {
	if !s.Contains(mx, my) || mx >= float32(s.x+s.width-scrollbarWidth-scrollbarMargin) {
		return nil
	}
	cx, cy := s.toContent(mx, my)
	items := s.children.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Visible() && widgetContains(items[i], cx, cy) {
			return items[i]
		}
	}
	return nil
}

// scrollbarGeom returns the thumb's top and height in window space,
// plus whether a scrollbar is needed at all.
func (s *ScrollContainer) scrollbarGeom() (thumbY, thumbH int, ok bool) {
	content := int(s.contentHeight.Load())
	if content <= s.height {
		return 0, 0, false
	}
	thumbH = s.height * s.height / content
	if thumbH < minThumbHeight {
		thumbH = minThumbHeight
	}
	travel := s.height - thumbH
	thumbY = s.y + int(float64(s.offset.Load())*float64(travel)/float64(s.maxOffset()))
	return thumbY, thumbH, true
}

func (s *ScrollContainer) scrollbarX() int {
	return s.x + s.width - scrollbarWidth - scrollbarMargin
}

// HandleMouseClick grabs the scrollbar thumb, jumps on a track click,
// or forwards the press to the children in reverse order. Presses
// inside the bounds are always consumed so widgets underneath the
// container never react through it.
func (s *ScrollContainer) HandleMouseClick(w *Window, mx, my float32, button MouseButton, action Action, mods ModifierKey) bool {
	if action == Release && s.draggingThumb {
		s.draggingThumb = false
		return true
	}

	inside := s.Contains(mx, my)

	if button == MouseButtonLeft && action == Press && inside {
		if thumbY, thumbH, ok := s.scrollbarGeom(); ok && mx >= float32(s.scrollbarX()) {
			if my >= float32(thumbY) && my < float32(thumbY+thumbH) {
				s.draggingThumb = true
				s.thumbGrabY = my - float32(thumbY)
			} else {
				// Track click: center the thumb on the pointer.
				s.draggingThumb = true
				s.thumbGrabY = float32(thumbH) / 2
				s.dragThumbTo(my)
			}
			return true
		}
	}

	cx, cy := s.toContent(mx, my)
	items := s.children.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		h, hok := items[i].(ClickHandler)
		if !hok || !items[i].Visible() {
			continue
		}
		// Presses must land inside the viewport; releases go through
		// regardless so drags started inside can finish outside.
		if action == Press && (!inside || !widgetContains(items[i], cx, cy)) {
			continue
		}
		if h.HandleMouseClick(w, cx, cy, button, action, mods) {
			return true
		}
	}
	return inside
}

// dragThumbTo maps a window-space pointer y to a scroll offset while
// dragging, keeping the grab point anchored inside the thumb.
func (s *ScrollContainer) dragThumbTo(my float32) {
	_, thumbH, ok := s.scrollbarGeom()
	if !ok {
		return
	}
	travel := s.height - thumbH
	if travel <= 0 {
		return
	}
	top := float64(my-s.thumbGrabY) - float64(s.y)
	s.ScrollTo(int(top * float64(s.maxOffset()) / float64(travel)))
}

// HandleMouseMove drives a thumb drag, or forwards the motion to the
// children.
func (s *ScrollContainer) HandleMouseMove(w *Window, mx, my float32) bool {
	if s.draggingThumb {
		s.dragThumbTo(my)
		return true
	}
	cx, cy := s.toContent(mx, my)
	items := s.children.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if h, ok := items[i].(MoveHandler); ok && items[i].Visible() {
			if h.HandleMouseMove(w, cx, cy) {
				return true
			}
		}
	}
	return false
}

// HandleMouseScroll scrolls the view on wheel input over the bounds.
// Children get first refusal so a nested scroll area can capture the
// wheel.
func (s *ScrollContainer) HandleMouseScroll(w *Window, mx, my, xoff, yoff float32) bool {
	if !s.Contains(mx, my) {
		return false
	}
	cx, cy := s.toContent(mx, my)
	items := s.children.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if h, ok := items[i].(ScrollHandler); ok && items[i].Visible() && widgetContains(items[i], cx, cy) {
			if h.HandleMouseScroll(w, cx, cy, xoff, yoff) {
				return true
			}
		}
	}
	s.ScrollBy(int(-yoff * float32(s.wheelStep)))
	return true
}

func (s *ScrollContainer) Render(w *Window, hovered bool) {
	// Children may have resized themselves since the last mutation.
	s.recompute()

	gl.Color4f(0.08, 0.08, 0.11, 1)
	fillRect(s.x, s.y, s.width, s.height)
	gl.Color4f(0.3, 0.3, 0.38, 1)
	strokeRect(s.x, s.y, s.width, s.height)

	// Children draw in content space under a scissor clip. Scissor
	// rectangles are bottom-left origin in GL, so flip against the
	// framebuffer height.
	gl.Enable(gl.SCISSOR_TEST)
	wh := int(w.Height())
	gl.Scissor(int32(s.x+1), int32(wh-(s.y+s.height-1)), int32(s.width-2), int32(s.height-2))

	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.Translatef(float32(s.x), float32(s.y)-float32(s.offset.Load()), 0)

	px, py := w.PointerPos()
	hoveredChild := s.ChildAt(px, py)
	for _, c := range s.children.snapshot() {
		if c.Visible() {
			c.Render(w, c == hoveredChild)
		}
	}

	gl.PopMatrix()
	gl.Disable(gl.SCISSOR_TEST)

	if thumbY, thumbH, ok := s.scrollbarGeom(); ok {
		bx := s.scrollbarX()
		gl.Color4f(0.15, 0.15, 0.2, 1)
		fillRect(bx, s.y, scrollbarWidth, s.height)
		if s.draggingThumb {
			gl.Color4f(0.6, 0.6, 0.75, 1)
		} else {
			gl.Color4f(0.4, 0.4, 0.5, 1)
		}
		fillRect(bx, thumbY, scrollbarWidth, thumbH)
	}
}
