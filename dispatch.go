package gui

// Input dispatch. Everything here runs on the render thread (GLFW
// delivers callbacks there), but deliberately touches no native state
// so the routing rules are testable without a window.
//
// Z-order rule: one consistent convention everywhere. Last added is
// topmost. Hover resolution, click, move and scroll dispatch all walk
// the widget list in reverse registration order and stop at the first
// widget that matches or consumes.

// pointerMoved records the pointer position, recomputes the hovered
// widget and offers the move to the widgets.
func (w *Window) pointerMoved(mx, my float32) {
	w.lastMouseX = mx
	w.lastMouseY = my
	w.updateHovered()

	items := w.widgets.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if h, ok := items[i].(MoveHandler); ok {
			if h.HandleMouseMove(w, mx, my) {
				break
			}
		}
	}
}

// updateHovered recomputes the hover target: the topmost widget whose
// bounds contain the pointer. When that widget can locate children
// (a ScrollContainer), the child under the pointer is preferred.
func (w *Window) updateHovered() {
	var hovered Widget
	items := w.widgets.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		wt := items[i]
		if !widgetContains(wt, w.lastMouseX, w.lastMouseY) {
			continue
		}
		hovered = wt
		if loc, ok := wt.(ChildLocator); ok {
			if child := loc.ChildAt(w.lastMouseX, w.lastMouseY); child != nil {
				hovered = child
			}
		}
		break
	}
	w.mu.Lock()
	w.hovered = hovered
	w.mu.Unlock()
}

// dispatchMouseButton offers a button event to the widgets. An
// unconsumed left press on the background clears focus, notifying the
// focused widget once.
func (w *Window) dispatchMouseButton(button MouseButton, action Action, mods ModifierKey) {
	handled := false
	items := w.widgets.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if h, ok := items[i].(ClickHandler); ok {
			if h.HandleMouseClick(w, w.lastMouseX, w.lastMouseY, button, action, mods) {
				handled = true
				break
			}
		}
	}
	if !handled && button == MouseButtonLeft && action == Press {
		if w.Focused() != nil {
			w.SetFocus(nil)
		}
	}
}

// dispatchScroll offers a wheel event to the widgets.
func (w *Window) dispatchScroll(xoff, yoff float32) {
	items := w.widgets.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if h, ok := items[i].(ScrollHandler); ok {
			if h.HandleMouseScroll(w, w.lastMouseX, w.lastMouseY, xoff, yoff) {
				break
			}
		}
	}
}

// dispatchKey routes a key event. The focused widget is offered the
// event first: focus is window-level, so a focused child inside a
// container receives keys even though dispatch does not descend into
// containers. Escape, when nobody consumes it, closes the window and
// clears focus.
func (w *Window) dispatchKey(key Key, action Action, mods ModifierKey) {
	focused := w.Focused()
	if h, ok := focused.(KeyHandler); ok {
		if h.HandleKeyPress(w, key, action, mods) {
			return
		}
	}
	items := w.widgets.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] == focused {
			continue
		}
		if h, ok := items[i].(KeyHandler); ok {
			if h.HandleKeyPress(w, key, action, mods) {
				return
			}
		}
	}
	if (action == Press || action == Repeat) && key == KeyEscape {
		w.Close()
		w.SetFocus(nil)
	}
}

// dispatchChar routes typed characters, focused widget first.
func (w *Window) dispatchChar(ch rune) {
	focused := w.Focused()
	if h, ok := focused.(CharHandler); ok {
		if h.HandleCharTyped(w, ch) {
			return
		}
	}
	items := w.widgets.snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] == focused {
			continue
		}
		if h, ok := items[i].(CharHandler); ok {
			if h.HandleCharTyped(w, ch) {
				return
			}
		}
	}
}

// resized stores the new dimensions and runs the host's relayout hook.
func (w *Window) resized(width, height int) {
	w.width.Store(int32(width))
	w.height.Store(int32(height))
	w.mu.Lock()
	relayout := w.relayoutFn
	w.mu.Unlock()
	if relayout != nil {
		relayout(w, width, height)
	}
}

// advanceWidgets runs the per-frame time hook over the tree, recursing
// through containers.
func advanceWidgets(items []Widget, dt float64) {
	for _, wt := range items {
		if a, ok := wt.(Advancer); ok {
			a.Advance(dt)
		}
		if c, ok := wt.(Container); ok {
			advanceWidgets(c.Children(), dt)
		}
	}
}
