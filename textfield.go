package gui

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/auxwin/gui/text"
)

// blinkInterval is how long the caret stays in each phase.
const blinkInterval = 0.5

// TextField is a single-line editable text box. All editing state is
// rune-indexed: the cursor sits between runes at positions 0..len, and
// the selection is the span between the anchor and the cursor.
type TextField struct {
	Base

	runes       []rune
	cursor      int
	anchor      int
	placeholder string

	maxLength int
	onSubmit  func(s string)
	onChange  func(s string)
	onFocus   func(focused bool)

	scrollX int

	focused      bool
	selecting    bool
	blinkElapsed float64
	caretVisible bool
}

// NewTextField returns an empty field at the given bounds.
func NewTextField(x, y, width, height int) *TextField {
	return &TextField{
		Base:      NewBase(x, y, width, height),
		maxLength: 0,
	}
}

// SetPlaceholder sets the dimmed hint shown while the field is empty.
func (t *TextField) SetPlaceholder(s string) { t.placeholder = s }

func (t *TextField) Placeholder() string { return t.placeholder }

// SetMaxLength caps the field's length in runes. Zero means unlimited.
func (t *TextField) SetMaxLength(n int) { t.maxLength = n }

// SetOnSubmit registers a callback fired when Enter is pressed.
func (t *TextField) SetOnSubmit(fn func(s string)) { t.onSubmit = fn }

// SetOnChange registers a callback fired after every content change.
func (t *TextField) SetOnChange(fn func(s string)) { t.onChange = fn }

// SetOnFocusChange registers a callback fired when the field gains or
// loses keyboard focus.
func (t *TextField) SetOnFocusChange(fn func(focused bool)) { t.onFocus = fn }

func (t *TextField) Text() string { return string(t.runes) }

// SetText replaces the content, clamps the cursor to the end and
// clears the selection. Control characters are stripped the same way
// typed input is.
func (t *TextField) SetText(s string) {
	t.runes = t.runes[:0]
	for _, r := range s {
		if printable(r) {
			t.runes = append(t.runes, r)
		}
	}
	if t.maxLength > 0 && len(t.runes) > t.maxLength {
		t.runes = t.runes[:t.maxLength]
	}
	t.cursor = len(t.runes)
	t.anchor = t.cursor
	t.resetBlink()
	t.changed()
}

func (t *TextField) Cursor() int { return t.cursor }

// Selection returns the selected span as [start, end) rune indices,
// normalized so start <= end. Both equal the cursor when nothing is
// selected.
func (t *TextField) Selection() (start, end int) {
	if t.anchor <= t.cursor {
		return t.anchor, t.cursor
	}
	return t.cursor, t.anchor
}

func (t *TextField) HasSelection() bool { return t.anchor != t.cursor }

func (t *TextField) SelectedText() string {
	start, end := t.Selection()
	return string(t.runes[start:end])
}

// SelectAll selects the whole content with the cursor at the end.
func (t *TextField) SelectAll() {
	t.anchor = 0
	t.cursor = len(t.runes)
	t.resetBlink()
}

// printable rejects the C0 control range and DEL. Everything else,
// including all non-ASCII, is accepted.
func printable(r rune) bool {
	return r >= 32 && r != 127
}

// InsertChar inserts one rune at the cursor, replacing any selection.
// Control characters are ignored.
func (t *TextField) InsertChar(r rune) {
	if !printable(r) {
		return
	}
	t.InsertString(string(r))
}

// InsertString inserts a string at the cursor, replacing any
// selection. Control characters are stripped, and the insertion is
// truncated to fit the length cap.
func (t *TextField) InsertString(s string) {
	ins := make([]rune, 0, len(s))
	for _, r := range s {
		if printable(r) {
			ins = append(ins, r)
		}
	}
	t.deleteSelection()
	if t.maxLength > 0 {
		room := t.maxLength - len(t.runes)
		if room <= 0 {
			t.resetBlink()
			return
		}
		if len(ins) > room {
			ins = ins[:room]
		}
	}
	if len(ins) == 0 {
		t.resetBlink()
		return
	}
	out := make([]rune, 0, len(t.runes)+len(ins))
	out = append(out, t.runes[:t.cursor]...)
	out = append(out, ins...)
	out = append(out, t.runes[t.cursor:]...)
	t.runes = out
	t.cursor += len(ins)
	t.anchor = t.cursor
	t.resetBlink()
	t.changed()
}

// Backspace deletes the selection if there is one, otherwise the rune
// before the cursor. At position zero with no selection it is a no-op.
func (t *TextField) Backspace() {
	if t.HasSelection() {
		t.deleteSelection()
		t.resetBlink()
		t.changed()
		return
	}
	if t.cursor == 0 {
		return
	}
	t.runes = append(t.runes[:t.cursor-1], t.runes[t.cursor:]...)
	t.cursor--
	t.anchor = t.cursor
	t.resetBlink()
	t.changed()
}

// Delete removes the selection, or the rune after the cursor.
func (t *TextField) Delete() {
	if t.HasSelection() {
		t.deleteSelection()
		t.resetBlink()
		t.changed()
		return
	}
	if t.cursor >= len(t.runes) {
		return
	}
	t.runes = append(t.runes[:t.cursor], t.runes[t.cursor+1:]...)
	t.resetBlink()
	t.changed()
}

// deleteSelection collapses the selection, leaving the cursor at its
// start. No-op without a selection.
func (t *TextField) deleteSelection() {
	if !t.HasSelection() {
		return
	}
	start, end := t.Selection()
	t.runes = append(t.runes[:start], t.runes[end:]...)
	t.cursor = start
	t.anchor = start
}

// MoveCursor moves the cursor by delta runes, clamped to the content.
// With extend the anchor stays put, growing or shrinking the
// selection; without it any selection collapses to the moved end:
// left collapses to the selection start, right to its end.
func (t *TextField) MoveCursor(delta int, extend bool) {
	if !extend && t.HasSelection() {
		start, end := t.Selection()
		if delta < 0 {
			t.cursor = start
		} else {
			t.cursor = end
		}
		t.anchor = t.cursor
		t.resetBlink()
		return
	}
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor > len(t.runes) {
		t.cursor = len(t.runes)
	}
	if !extend {
		t.anchor = t.cursor
	}
	t.resetBlink()
}

// MoveCursorTo places the cursor at an absolute rune index.
func (t *TextField) MoveCursorTo(idx int, extend bool) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(t.runes) {
		idx = len(t.runes)
	}
	t.cursor = idx
	if !extend {
		t.anchor = idx
	}
	t.resetBlink()
}

// CharIndexAt maps a window-space x coordinate to a cursor position
// using the half-advance rule: a click past the midpoint of a rune
// lands the cursor after it.
func (t *TextField) CharIndexAt(m TextMeasurer, mx float32) int {
	if m == nil {
		return len(t.runes)
	}
	local := int(mx) - (t.x + textPadding) + t.scrollX
	if local <= 0 {
		return 0
	}
	prev := 0
	for i := 1; i <= len(t.runes); i++ {
		w := m.TextWidth(string(t.runes[:i]), text.DefaultSize)
		if local < prev+(w-prev)/2 {
			return i - 1
		}
		if local < w {
			return i
		}
		prev = w
	}
	return len(t.runes)
}

const textPadding = 4

// resetBlink restarts the caret phase so the caret is visible right
// after any edit or cursor motion.
func (t *TextField) resetBlink() {
	t.blinkElapsed = 0
	t.caretVisible = true
}

func (t *TextField) changed() {
	if t.onChange != nil {
		t.onChange(string(t.runes))
	}
}

func (t *TextField) Focused() bool { return t.focused }

// CaretVisible reports the current blink phase. Always false while
// unfocused.
func (t *TextField) CaretVisible() bool { return t.focused && t.caretVisible }

// Advance drives the caret blink from frame time.
func (t *TextField) Advance(dt float64) {
	if !t.focused {
		return
	}
	t.blinkElapsed += dt
	for t.blinkElapsed >= blinkInterval {
		t.blinkElapsed -= blinkInterval
		t.caretVisible = !t.caretVisible
	}
}

// LoseFocus clears focus state and the selection.
func (t *TextField) LoseFocus() {
	wasFocused := t.focused
	t.focused = false
	t.selecting = false
	t.anchor = t.cursor
	if wasFocused && t.onFocus != nil {
		t.onFocus(false)
	}
}

// HandleMouseClick focuses the field on a left press inside its
// bounds, placing the cursor under the pointer. Holding the press and
// moving extends a selection from there. A press outside is not
// consumed so the window can clear focus.
func (t *TextField) HandleMouseClick(w *Window, mx, my float32, button MouseButton, action Action, mods ModifierKey) bool {
	if button != MouseButtonLeft {
		return false
	}
	if action == Press && t.Contains(mx, my) {
		if !t.focused {
			t.focused = true
			if t.onFocus != nil {
				t.onFocus(true)
			}
		}
		w.SetFocus(t)
		idx := t.CharIndexAt(w.Measurer(), mx)
		t.MoveCursorTo(idx, mods&ModShift != 0)
		t.selecting = true
		return true
	}
	if action == Release && t.selecting {
		t.selecting = false
		return true
	}
	return false
}

// HandleMouseMove extends the selection while the press is held.
func (t *TextField) HandleMouseMove(w *Window, mx, my float32) bool {
	if !t.selecting {
		return false
	}
	t.MoveCursorTo(t.CharIndexAt(w.Measurer(), mx), true)
	return true
}

// HandleKeyPress implements arrow motion, backspace and delete, enter
// submission, and the clipboard shortcuts Ctrl+A, Ctrl+C, Ctrl+X and
// Ctrl+V.
func (t *TextField) HandleKeyPress(w *Window, key Key, action Action, mods ModifierKey) bool {
	if !t.focused || action == Release {
		return false
	}
	switch key {
	case KeyLeft:
		t.MoveCursor(-1, mods&ModShift != 0)
		return true
	case KeyRight:
		t.MoveCursor(1, mods&ModShift != 0)
		return true
	case KeyHome:
		t.MoveCursorTo(0, mods&ModShift != 0)
		return true
	case KeyEnd:
		t.MoveCursorTo(len(t.runes), mods&ModShift != 0)
		return true
	case KeyBackspace:
		t.Backspace()
		return true
	case KeyDelete:
		t.Delete()
		return true
	case KeyEnter:
		if t.onSubmit != nil {
			t.onSubmit(string(t.runes))
		}
		return true
	case KeyA:
		if mods&ModControl != 0 {
			t.SelectAll()
			return true
		}
	case KeyC:
		if mods&ModControl != 0 {
			if cb := w.Clipboard(); cb != nil && t.HasSelection() {
				cb.SetText(t.SelectedText())
			}
			return true
		}
	case KeyX:
		if mods&ModControl != 0 {
			if cb := w.Clipboard(); cb != nil && t.HasSelection() {
				cb.SetText(t.SelectedText())
				t.deleteSelection()
				t.resetBlink()
				t.changed()
			}
			return true
		}
	case KeyV:
		if mods&ModControl != 0 {
			if cb := w.Clipboard(); cb != nil {
				t.InsertString(cb.GetText())
			}
			return true
		}
	}
	return false
}

// HandleCharTyped inserts printable input while focused.
func (t *TextField) HandleCharTyped(w *Window, ch rune) bool {
	if !t.focused {
		return false
	}
	t.InsertChar(ch)
	return true
}

// keepCursorVisible adjusts the horizontal scroll so the caret stays
// inside the inner width.
func (t *TextField) keepCursorVisible(m TextMeasurer) {
	if m == nil {
		return
	}
	inner := t.width - 2*textPadding
	cx := m.TextWidth(string(t.runes[:t.cursor]), text.DefaultSize)
	if cx-t.scrollX > inner {
		t.scrollX = cx - inner
	}
	if cx-t.scrollX < 0 {
		t.scrollX = cx
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
}

func (t *TextField) Render(w *Window, hovered bool) {
	if t.focused {
		gl.Color4f(0.12, 0.12, 0.16, 1)
	} else {
		gl.Color4f(0.09, 0.09, 0.12, 1)
	}
	fillRect(t.x, t.y, t.width, t.height)
	if t.focused {
		gl.Color4f(0.45, 0.6, 0.85, 1)
	} else if hovered {
		gl.Color4f(0.5, 0.5, 0.6, 1)
	} else {
		gl.Color4f(0.35, 0.35, 0.42, 1)
	}
	strokeRect(t.x, t.y, t.width, t.height)

	m := w.Measurer()
	t.keepCursorVisible(m)

	r := w.Text()
	if r == nil {
		return
	}

	// Clip text, selection and caret to the inner box.
	gl.Enable(gl.SCISSOR_TEST)
	wh := int(w.Height())
	gl.Scissor(int32(t.x+1), int32(wh-(t.y+t.height-1)), int32(t.width-2), int32(t.height-2))

	baseX := t.x + textPadding - t.scrollX
	midY := t.y + t.height/2

	if t.HasSelection() && m != nil {
		start, end := t.Selection()
		sx := m.TextWidth(string(t.runes[:start]), text.DefaultSize)
		ex := m.TextWidth(string(t.runes[:end]), text.DefaultSize)
		gl.Color4f(0.25, 0.4, 0.7, 0.6)
		fillRect(baseX+sx, t.y+2, ex-sx, t.height-4)
	}

	if len(t.runes) == 0 && t.placeholder != "" && !t.focused {
		gl.Color4f(0.5, 0.5, 0.55, 1)
		r.DrawLeftAligned(t.placeholder, baseX, midY, text.DefaultSize)
	} else {
		gl.Color4f(1, 1, 1, 1)
		r.DrawLeftAligned(string(t.runes), baseX, midY, text.DefaultSize)
	}

	if t.CaretVisible() && m != nil {
		cx := m.TextWidth(string(t.runes[:t.cursor]), text.DefaultSize)
		gl.Color4f(1, 1, 1, 1)
		fillRect(baseX+cx, t.y+3, 1, t.height-6)
	}

	gl.Disable(gl.SCISSOR_TEST)
}
