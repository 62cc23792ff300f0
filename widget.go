package gui

import "sync"

// Widget is the interface every UI unit in a window's tree implements.
// A widget is positioned in window-local coordinates (container-local
// for children of a ScrollContainer), can render itself, and may opt
// into input handling by additionally implementing one or more of the
// capability interfaces below.
//
// Custom widgets embed Base for geometry and visibility:
//
//	type Badge struct {
//	    gui.Base
//	    label string
//	}
//
//	func (b *Badge) Render(w *gui.Window, hovered bool) {
//	    // draw with gl and w.Text()
//	}
type Widget interface {
	// Bounds returns the widget's position and size.
	Bounds() (x, y, width, height int)

	// Visible reports whether the widget participates in rendering
	// and hit-testing. Invisible widgets stay in the tree.
	Visible() bool

	// Render draws the widget. hovered is true when this widget is the
	// window's current hover target. Called on the render thread only.
	Render(w *Window, hovered bool)
}

// ClickHandler is implemented by widgets that consume mouse button events.
// Coordinates are in the widget's parent space. Returning true stops
// dispatch.
type ClickHandler interface {
	HandleMouseClick(w *Window, mx, my float32, button MouseButton, action Action, mods ModifierKey) bool
}

// MoveHandler is implemented by widgets that consume pointer-move events.
type MoveHandler interface {
	HandleMouseMove(w *Window, mx, my float32) bool
}

// ScrollHandler is implemented by widgets that consume scroll-wheel events.
type ScrollHandler interface {
	HandleMouseScroll(w *Window, mx, my, xoff, yoff float32) bool
}

// KeyHandler is implemented by widgets that consume key events.
type KeyHandler interface {
	HandleKeyPress(w *Window, key Key, action Action, mods ModifierKey) bool
}

// CharHandler is implemented by widgets that consume character input.
type CharHandler interface {
	HandleCharTyped(w *Window, ch rune) bool
}

// Advancer is the per-frame time hook. The frame loop calls Advance on
// every widget that implements it (recursing through Containers) with
// the elapsed wall-clock seconds since the previous frame. TextField
// uses it for cursor blink.
type Advancer interface {
	Advance(dt float64)
}

// Container is implemented by composite widgets that own children.
// The frame loop uses it to advance nested Advancers without
// inspecting concrete types.
type Container interface {
	Children() []Widget
}

// ChildLocator is implemented by containers that can resolve which
// child sits under a pointer position, in the container's parent
// coordinates. Hover resolution prefers the located child over the
// container itself.
type ChildLocator interface {
	ChildAt(mx, my float32) Widget
}

// FocusLoser is implemented by widgets that want to be told when the
// window-level focus moves away from them.
type FocusLoser interface {
	LoseFocus()
}

// Base supplies geometry and visibility for embedding in widgets.
// The zero value is a visible widget at the origin with no size.
type Base struct {
	x, y          int
	width, height int
	hidden        bool
}

// NewBase returns a Base with the given geometry.
func NewBase(x, y, width, height int) Base {
	return Base{x: x, y: y, width: width, height: height}
}

// Bounds implements Widget.
func (b *Base) Bounds() (int, int, int, int) { return b.x, b.y, b.width, b.height }

// Visible implements Widget.
func (b *Base) Visible() bool { return !b.hidden }

// SetVisible shows or hides the widget. Hidden widgets are skipped by
// rendering and hit-testing but remain in the tree.
func (b *Base) SetVisible(v bool) { b.hidden = !v }

// X returns the widget's x position.
func (b *Base) X() int { return b.x }

// Y returns the widget's y position.
func (b *Base) Y() int { return b.y }

// Width returns the widget's width.
func (b *Base) Width() int { return b.width }

// Height returns the widget's height.
func (b *Base) Height() int { return b.height }

// SetX sets the widget's x position.
func (b *Base) SetX(x int) { b.x = x }

// SetY sets the widget's y position.
func (b *Base) SetY(y int) { b.y = y }

// SetWidth sets the widget's width.
func (b *Base) SetWidth(w int) { b.width = w }

// SetHeight sets the widget's height.
func (b *Base) SetHeight(h int) { b.height = h }

// Contains reports whether the point lies inside the widget's bounds.
// Always false while hidden.
func (b *Base) Contains(mx, my float32) bool {
	if b.hidden {
		return false
	}
	return mx >= float32(b.x) && mx <= float32(b.x+b.width) &&
		my >= float32(b.y) && my <= float32(b.y+b.height)
}

// widgetContains hit-tests an arbitrary Widget through its Bounds.
func widgetContains(wt Widget, mx, my float32) bool {
	if !wt.Visible() {
		return false
	}
	x, y, w, h := wt.Bounds()
	return mx >= float32(x) && mx <= float32(x+w) &&
		my >= float32(y) && my <= float32(y+h)
}

// widgetList is a copy-on-write widget collection. Mutations build a
// fresh slice, so dispatch and rendering can iterate a snapshot while
// another goroutine (typically the host, early in the window's life)
// adds or removes widgets.
type widgetList struct {
	mu    sync.Mutex
	items []Widget
}

func (l *widgetList) add(wt Widget) {
	l.mu.Lock()
	next := make([]Widget, len(l.items), len(l.items)+1)
	copy(next, l.items)
	l.items = append(next, wt)
	l.mu.Unlock()
}

func (l *widgetList) remove(wt Widget) {
	l.mu.Lock()
	next := make([]Widget, 0, len(l.items))
	for _, it := range l.items {
		if it != wt {
			next = append(next, it)
		}
	}
	l.items = next
	l.mu.Unlock()
}

func (l *widgetList) clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

// snapshot returns the current slice. The slice is never mutated after
// publication, so callers may iterate it freely.
func (l *widgetList) snapshot() []Widget {
	l.mu.Lock()
	items := l.items
	l.mu.Unlock()
	return items
}

func (l *widgetList) len() int {
	l.mu.Lock()
	n := len(l.items)
	l.mu.Unlock()
	return n
}
