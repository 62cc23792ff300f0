package gui

// Shared test doubles. No native window is ever created in tests: the
// dispatch path and the widgets are driven directly.

// fixedMeasurer measures every rune at a fixed advance.
type fixedMeasurer struct {
	advance int
}

func (m fixedMeasurer) TextWidth(s string, size int) int {
	return len([]rune(s)) * m.advance
}

// stubClipboard is an in-memory clipboard.
type stubClipboard struct {
	content string
}

func (c *stubClipboard) GetText() string     { return c.content }
func (c *stubClipboard) SetText(text string) { c.content = text }

// recorder is a widget that records every event offered to it and
// consumes according to its flags.
type recorder struct {
	Base

	consumeClicks bool
	consumeMoves  bool
	consumeKeys   bool
	consumeChars  bool
	consumeScroll bool

	clicks  []recordedClick
	moves   []recordedPoint
	scrolls []recordedPoint
	keys    []Key
	chars   []rune

	focusLost int
	advanced  float64
}

type recordedClick struct {
	x, y   float32
	button MouseButton
	action Action
}

type recordedPoint struct {
	x, y float32
}

func (r *recorder) Render(w *Window, hovered bool) {}

func (r *recorder) HandleMouseClick(w *Window, mx, my float32, button MouseButton, action Action, mods ModifierKey) bool {
	r.clicks = append(r.clicks, recordedClick{mx, my, button, action})
	return r.consumeClicks && r.Contains(mx, my)
}

func (r *recorder) HandleMouseMove(w *Window, mx, my float32) bool {
	r.moves = append(r.moves, recordedPoint{mx, my})
	return r.consumeMoves
}

func (r *recorder) HandleMouseScroll(w *Window, mx, my, xoff, yoff float32) bool {
	r.scrolls = append(r.scrolls, recordedPoint{mx, my})
	return r.consumeScroll && r.Contains(mx, my)
}

func (r *recorder) HandleKeyPress(w *Window, key Key, action Action, mods ModifierKey) bool {
	r.keys = append(r.keys, key)
	return r.consumeKeys
}

func (r *recorder) HandleCharTyped(w *Window, ch rune) bool {
	r.chars = append(r.chars, ch)
	return r.consumeChars
}

func (r *recorder) LoseFocus() { r.focusLost++ }

func (r *recorder) Advance(dt float64) { r.advanced += dt }

// testWindow builds an unopened window with a deterministic measurer
// and a stub clipboard.
func testWindow() (*Window, *stubClipboard) {
	w := newWindow("test", 800, 600, nil)
	cb := &stubClipboard{}
	w.SetClipboard(cb)
	w.SetMeasurer(fixedMeasurer{advance: 10})
	return w, cb
}
