package gui

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/auxwin/gui/text"
)

// TextMeasurer measures rendered text width in pixels. The window's
// glyph service implements it; tests substitute a fixed-advance fake.
type TextMeasurer interface {
	TextWidth(s string, size int) int
}

// Window owns one native window: its render thread, widget tree,
// hover/focus state and glyph service.
//
// Thread model: Open, Close, CloseAndWait, IsOpen, Width, Height,
// widget add/remove, SetFocus and the option setters are safe from any
// goroutine. Everything that touches the native window or the GL
// context (rendering, the glyph service, the dispatch path) belongs
// to the window's render thread. The initializer callback runs on the
// render thread, not on the caller of Open.
type Window struct {
	title string

	width  atomic.Int32
	height atomic.Int32

	// state is the lifecycle generation: odd while an open is
	// requested, even while closed. Open bumps it to the next odd
	// value and Close to the next even one, so every incarnation owns
	// a distinct odd generation. A stale render loop can never be
	// revived by a later Open (its generation has moved on), and a
	// stale teardown can never cancel one (it only settles its own
	// generation). created tracks the native window; the window counts
	// as open only when the state is odd and the native window exists.
	state   atomic.Int64
	created atomic.Bool
	handle  atomic.Pointer[glfw.Window]

	// waitNanos is the frame-pacing wait in nanoseconds; <= 0 means
	// block indefinitely until an input event arrives.
	waitNanos atomic.Int64
	vsync     atomic.Bool

	mu         sync.Mutex
	done       chan struct{}
	bgR        float32
	bgG        float32
	bgB        float32
	hovered    Widget
	focused    Widget
	clipboard  Clipboard
	measurer   TextMeasurer
	host       Host
	relayoutFn func(w *Window, width, height int)
	fontPath   string

	initFn  func(w *Window)
	widgets widgetList

	// Render-thread state.
	lastMouseX float32
	lastMouseY float32
	text       *text.Renderer
}

func newWindow(title string, width, height int, initFn func(w *Window), opts ...WindowOption) *Window {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	w := &Window{
		title:  title,
		initFn: initFn,
		bgR:    0.1, bgG: 0.1, bgB: 0.15,
	}
	w.width.Store(int32(width))
	w.height.Store(int32(height))
	w.vsync.Store(true)
	w.waitNanos.Store(int64(time.Second / 60))
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// Width returns the current window width. Updated on resize events.
func (w *Window) Width() int { return int(w.width.Load()) }

// Height returns the current window height.
func (w *Window) Height() int { return int(w.height.Load()) }

// IsOpen reports whether the window is open: an open has been
// requested and the native window exists.
func (w *Window) IsOpen() bool { return w.state.Load()%2 == 1 && w.created.Load() }

// requestOpen transitions closed to open and returns the incarnation's
// odd generation. ok is false when an open is already requested.
func (w *Window) requestOpen() (gen int64, ok bool) {
	for {
		s := w.state.Load()
		if s%2 == 1 {
			return 0, false
		}
		if w.state.CompareAndSwap(s, s+1) {
			return s + 1, true
		}
	}
}

// requestClose transitions open to closed. Reports whether this call
// made the transition.
func (w *Window) requestClose() bool {
	for {
		s := w.state.Load()
		if s%2 == 0 {
			return false
		}
		if w.state.CompareAndSwap(s, s+1) {
			return true
		}
	}
}

// settleClosed marks generation gen closed, for exit paths where no
// Close was requested: native close request, creation failure. A no-op
// when the generation has already moved on, so a stale teardown cannot
// cancel a newer accepted open.
func (w *Window) settleClosed(gen int64) {
	w.state.CompareAndSwap(gen, gen+1)
}

// Open requests the window to open. Idempotent and non-blocking: it
// spawns the dedicated render thread and returns immediately. The
// initializer supplied at creation runs on that thread once the native
// window is up. If native creation fails the window silently reverts
// to closed, observable via IsOpen returning false.
//
// Panics in host-supplied widget callbacks are not caught; one will
// terminate the render thread.
func (w *Window) Open() {
	gen, ok := w.requestOpen()
	if !ok {
		return
	}
	w.mu.Lock()
	prev := w.done
	done := make(chan struct{})
	w.done = done
	w.mu.Unlock()
	go w.run(gen, prev, done)
}

// Close requests the window to close. Idempotent and safe from any
// thread. A blocked render thread is woken with a synthetic event so
// the request is observed within one loop iteration.
func (w *Window) Close() {
	if !w.requestClose() {
		return
	}
	if w.handle.Load() != nil {
		glfw.PostEmptyEvent()
	}
}

// CloseAndWait closes the window and blocks until the render thread
// has fully exited and released its native resources.
//
// Caller contract: must not be called from the window's own render
// thread (for example from a widget callback); doing so deadlocks.
func (w *Window) CloseAndWait() {
	w.Close()
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	if done != nil {
		<-done
	}
}

// SetTargetFPS caps the frame rate by bounding the end-of-frame event
// wait. fps <= 0 removes the cap: the render thread blocks until the
// next input event, using no CPU while idle.
func (w *Window) SetTargetFPS(fps int) {
	if fps <= 0 {
		w.waitNanos.Store(0)
		return
	}
	w.waitNanos.Store(int64(time.Second) / int64(fps))
}

// FrameWait returns the configured end-of-frame wait; zero means block
// indefinitely until an event arrives.
func (w *Window) FrameWait() time.Duration {
	return time.Duration(w.waitNanos.Load())
}

// SetVsyncEnabled toggles vertical sync. Applied when the window
// (re)opens.
func (w *Window) SetVsyncEnabled(enabled bool) { w.vsync.Store(enabled) }

// SetBackgroundColor sets the frame clear color.
func (w *Window) SetBackgroundColor(r, g, b float32) {
	w.mu.Lock()
	w.bgR, w.bgG, w.bgB = r, g, b
	w.mu.Unlock()
}

// BackgroundColor returns the frame clear color.
func (w *Window) BackgroundColor() (r, g, b float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bgR, w.bgG, w.bgB
}

// AddWidget appends a root widget. Later additions are topmost: they
// draw above earlier ones and win hover and click resolution.
func (w *Window) AddWidget(wt Widget) { w.widgets.add(wt) }

// RemoveWidget removes a root widget.
func (w *Window) RemoveWidget(wt Widget) { w.widgets.remove(wt) }

// ClearWidgets removes every root widget.
func (w *Window) ClearWidgets() { w.widgets.clear() }

// Widgets returns a snapshot of the root widgets in registration order.
func (w *Window) Widgets() []Widget { return w.widgets.snapshot() }

// Hovered returns the widget currently under the pointer, or nil.
func (w *Window) Hovered() Widget {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hovered
}

// Focused returns the widget currently holding keyboard focus, or nil.
func (w *Window) Focused() Widget {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

// SetFocus moves keyboard focus to wt (nil clears it). The widget
// losing focus is notified through FocusLoser, once.
func (w *Window) SetFocus(wt Widget) {
	w.mu.Lock()
	prev := w.focused
	w.focused = wt
	w.mu.Unlock()
	if prev != nil && prev != wt {
		if fl, ok := prev.(FocusLoser); ok {
			fl.LoseFocus()
		}
	}
}

// PointerPos returns the last known pointer position in window
// coordinates.
func (w *Window) PointerPos() (x, y float32) { return w.lastMouseX, w.lastMouseY }

// Clipboard returns the window's clipboard, or nil before the native
// window exists (unless one was injected).
func (w *Window) Clipboard() Clipboard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clipboard
}

// SetClipboard replaces the window's clipboard. Mostly useful for
// tests and hosts with their own clipboard integration.
func (w *Window) SetClipboard(cb Clipboard) {
	w.mu.Lock()
	w.clipboard = cb
	w.mu.Unlock()
}

// Measurer returns the text measurer widgets use for truncation and
// hit-testing: an injected one if set, otherwise the window's glyph
// service. Nil before the glyph service exists.
func (w *Window) Measurer() TextMeasurer {
	w.mu.Lock()
	m := w.measurer
	w.mu.Unlock()
	if m != nil {
		return m
	}
	if w.text != nil {
		return w.text
	}
	return nil
}

// SetMeasurer injects a text measurer, overriding the glyph service.
func (w *Window) SetMeasurer(m TextMeasurer) {
	w.mu.Lock()
	w.measurer = m
	w.mu.Unlock()
}

// Text returns the window's glyph service. Only valid on the render
// thread while the window is open.
func (w *Window) Text() *text.Renderer { return w.text }

// SetRelayout installs the hook invoked with the new dimensions after
// a resize. The host repositions its widgets there; no automatic
// layout is performed.
func (w *Window) SetRelayout(fn func(w *Window, width, height int)) {
	w.mu.Lock()
	w.relayoutFn = fn
	w.mu.Unlock()
}

// run is the render thread for one incarnation, identified by its
// generation. prev is the previous incarnation's done channel:
// teardown of an earlier open must finish before native resources are
// recreated, so a Close immediately followed by Open can never
// resurrect a window that is mid-teardown.
func (w *Window) run(gen int64, prev, done chan struct{}) {
	defer close(done)
	if prev != nil {
		<-prev
	}
	if w.state.Load() != gen {
		return
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ensureGLFW(); err != nil {
		w.settleClosed(gen)
		reportNativeError(err)
		return
	}

	handle, err := w.createNative()
	if err != nil {
		w.settleClosed(gen)
		reportNativeError(fmt.Errorf("gui: create window %q: %w", w.title, err))
		return
	}
	w.handle.Store(handle)
	w.created.Store(true)
	registerNative(w)
	guiLogger.Debug("window opened", "title", w.title,
		"width", w.Width(), "height", w.Height())

	handle.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		w.teardown(gen, handle)
		reportNativeError(fmt.Errorf("gui: init gl for %q: %w", w.title, err))
		return
	}
	defer w.teardown(gen, handle)

	if w.vsync.Load() {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	if w.text == nil {
		w.text = w.newTextRenderer()
	}

	w.installCallbacks(handle)
	handle.Show()

	if w.initFn != nil {
		w.initFn(w)
	}
	w.mu.Lock()
	relayout := w.relayoutFn
	w.mu.Unlock()
	if relayout != nil {
		relayout(w, w.Width(), w.Height())
	}

	last := time.Now()
	for w.state.Load() == gen && !handle.ShouldClose() {
		width := int32(w.Width())
		height := int32(w.Height())

		gl.Viewport(0, 0, width, height)
		gl.MatrixMode(gl.PROJECTION)
		gl.LoadIdentity()
		gl.Ortho(0, float64(width), float64(height), 0, -1, 1)
		gl.MatrixMode(gl.MODELVIEW)
		gl.LoadIdentity()

		r, g, b := w.BackgroundColor()
		gl.ClearColor(r, g, b, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		items := w.widgets.snapshot()
		advanceWidgets(items, dt)

		hovered := w.Hovered()
		for _, wt := range items {
			if !wt.Visible() {
				continue
			}
			gl.PushAttrib(gl.CURRENT_BIT | gl.ENABLE_BIT | gl.TEXTURE_BIT | gl.COLOR_BUFFER_BIT)
			wt.Render(w, wt == hovered)
			gl.PopAttrib()
		}

		handle.SwapBuffers()

		if wait := w.waitNanos.Load(); wait > 0 {
			glfw.WaitEventsTimeout(time.Duration(wait).Seconds())
		} else {
			glfw.WaitEvents()
		}
	}
}

// newTextRenderer builds the window's glyph service: the configured
// font file when one is set, falling back to the embedded face on any
// asset failure.
func (w *Window) newTextRenderer() *text.Renderer {
	w.mu.Lock()
	fontPath := w.fontPath
	w.mu.Unlock()

	if fontPath != "" {
		if t, err := text.NewRendererFromFile(fontPath); err == nil {
			return t
		} else {
			guiLogger.Warn("font load failed, using embedded face",
				"window", w.title, "path", fontPath, "err", err)
		}
	}
	t, err := text.NewRenderer()
	if err != nil {
		// The embedded face cannot realistically fail to parse; if it
		// does, widgets draw without text rather than crashing.
		guiLogger.Error("embedded font unavailable", "err", err)
		return nil
	}
	return t
}

// createNative creates the native window on the render thread:
// invisible, resizable, decorated, GL 2.1, centered on the primary
// monitor's work area. Returns an error when the native layer fails.
func (w *Window) createNative() (*glfw.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.AlphaBits, 8)
	glfw.WindowHint(glfw.Samples, 4)

	handle, err := glfw.CreateWindow(w.Width(), w.Height(), w.title, nil, nil)
	if err != nil {
		return nil, err
	}

	applyWindowIcon(handle)

	// Center on the primary monitor. No monitor is non-fatal; the
	// window keeps its default placement.
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		mx, my, mw, mh := monitor.GetWorkarea()
		ww, wh := handle.GetSize()
		handle.SetPos(mx+(mw-ww)/2, my+(mh-wh)/2)
	}

	return handle, nil
}

// installCallbacks wires native input into the dispatch layer and
// installs the GLFW clipboard. All callbacks run on the render thread.
func (w *Window) installCallbacks(handle *glfw.Window) {
	w.mu.Lock()
	if w.clipboard == nil {
		w.clipboard = &glfwClipboard{handle: handle}
	}
	w.mu.Unlock()

	handle.SetCloseCallback(func(_ *glfw.Window) {
		w.Close()
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pointerMoved(float32(x), float32(y))
	})
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.dispatchMouseButton(buttonFromGLFW(button), actionFromGLFW(action), modsFromGLFW(mods))
	})
	handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.dispatchScroll(float32(xoff), float32(yoff))
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.dispatchKey(keyFromGLFW(key), actionFromGLFW(action), modsFromGLFW(mods))
	})
	handle.SetCharCallback(func(_ *glfw.Window, ch rune) {
		w.dispatchChar(ch)
	})
	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})
}

func clearCallbacks(handle *glfw.Window) {
	handle.SetCloseCallback(nil)
	handle.SetCursorPosCallback(nil)
	handle.SetMouseButtonCallback(nil)
	handle.SetScrollCallback(nil)
	handle.SetKeyCallback(nil)
	handle.SetCharCallback(nil)
	handle.SetSizeCallback(nil)
}

// teardown releases everything the render thread acquired, in strict
// order: callbacks, glyph service, native window, fleet registration,
// widget tree, hover/focus, handle. Runs on every exit path of the
// render loop.
func (w *Window) teardown(gen int64, handle *glfw.Window) {
	w.settleClosed(gen)

	clearCallbacks(handle)

	if w.text != nil {
		w.text.Close()
		w.text = nil
	}

	handle.Destroy()
	glfw.PollEvents()

	unregisterNative(w)

	w.widgets.clear()
	w.mu.Lock()
	w.hovered = nil
	w.focused = nil
	if cb, ok := w.clipboard.(*glfwClipboard); ok && cb.handle == handle {
		w.clipboard = nil
	}
	w.mu.Unlock()

	w.handle.Store(nil)
	w.created.Store(false)
	guiLogger.Debug("window closed", "title", w.title)
}

// glfwClipboard backs Clipboard with the native window's clipboard.
type glfwClipboard struct {
	handle *glfw.Window
}

func (c *glfwClipboard) GetText() string     { return c.handle.GetClipboardString() }
func (c *glfwClipboard) SetText(text string) { c.handle.SetClipboardString(text) }

func buttonFromGLFW(b glfw.MouseButton) MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseButtonLeft
	case glfw.MouseButtonRight:
		return MouseButtonRight
	case glfw.MouseButtonMiddle:
		return MouseButtonMiddle
	default:
		return -1
	}
}

func actionFromGLFW(a glfw.Action) Action {
	switch a {
	case glfw.Press:
		return Press
	case glfw.Repeat:
		return Repeat
	default:
		return Release
	}
}

func modsFromGLFW(m glfw.ModifierKey) ModifierKey {
	var mods ModifierKey
	if m&glfw.ModShift != 0 {
		mods |= ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= ModControl
	}
	if m&glfw.ModAlt != 0 {
		mods |= ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mods |= ModSuper
	}
	return mods
}

func keyFromGLFW(key glfw.Key) Key {
	switch key {
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return KeyEnter
	case glfw.KeyEscape:
		return KeyEscape
	case glfw.KeyBackspace:
		return KeyBackspace
	case glfw.KeyDelete:
		return KeyDelete
	case glfw.KeyLeft:
		return KeyLeft
	case glfw.KeyRight:
		return KeyRight
	case glfw.KeyHome:
		return KeyHome
	case glfw.KeyEnd:
		return KeyEnd
	case glfw.KeyA:
		return KeyA
	case glfw.KeyC:
		return KeyC
	case glfw.KeyV:
		return KeyV
	case glfw.KeyX:
		return KeyX
	default:
		return KeyNone
	}
}
