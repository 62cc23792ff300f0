package gui

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// ErrorHandler receives native-layer errors. See SetErrorHandler.
type ErrorHandler func(err error)

// Process-wide state: the live-window set, the error hook and the
// icon configuration are shared by every window, so a single mutex
// serializes access across concurrently opening and closing render
// threads.
var (
	registryMu   sync.Mutex
	liveWindows  = make(map[*Window]struct{})
	nativeCount  int
	errorHandler ErrorHandler
	savedHandler ErrorHandler
	glfwReady    bool

	// handlingError latches re-entrant native errors: closing the
	// fleet can itself surface more errors.
	handlingError atomic.Bool
)

// Create builds a window without opening it. The initializer runs on
// the window's render thread once Open succeeds; it receives the live
// window and is expected to add widgets and set options synchronously.
// The window is tracked by the process-wide registry from creation on.
// A full close drops it from the registry; reopening re-registers it.
// A window that is created but never opened stays tracked until then,
// which keeps Windows, CloseAll and Shutdown aware of it at the cost
// of retaining it for the process lifetime.
func Create(title string, width, height int, initializer func(w *Window), opts ...WindowOption) *Window {
	w := newWindow(title, width, height, initializer, opts...)
	registryMu.Lock()
	liveWindows[w] = struct{}{}
	registryMu.Unlock()
	return w
}

// Open creates a window and opens it immediately.
func Open(title string, width, height int, initializer func(w *Window), opts ...WindowOption) *Window {
	w := Create(title, width, height, initializer, opts...)
	w.Open()
	return w
}

// Windows returns a snapshot of every tracked window.
func Windows() []*Window {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Window, 0, len(liveWindows))
	for w := range liveWindows {
		out = append(out, w)
	}
	return out
}

// CloseAll requests every tracked window to close. Fire-and-forget:
// the render threads tear down on their own time.
func CloseAll() {
	for _, w := range Windows() {
		w.Close()
	}
}

// Shutdown closes every tracked window and blocks until all their
// render threads have exited. Intended for host-process shutdown
// sequencing. Must not be called from a render thread.
func Shutdown() {
	for _, w := range Windows() {
		w.CloseAndWait()
	}
}

// SetErrorHandler replaces the native-error hook and returns the
// previous one. While at least one window is open the default hook is
// fleet-fatal: it logs the error and closes every tracked window,
// since a native error's scope is not reliably attributable to one
// window. The hook that preceded the first window open is restored
// when the last window closes.
func SetErrorHandler(h ErrorHandler) ErrorHandler {
	registryMu.Lock()
	prev := errorHandler
	errorHandler = h
	registryMu.Unlock()
	return prev
}

// fleetErrorHandler is installed while windows are live.
func fleetErrorHandler(err error) {
	guiLogger.Error("native error, closing all windows", "err", err)
	CloseAll()
}

// reportNativeError routes a native-layer error through the current
// hook, with re-entrancy protection.
func reportNativeError(err error) {
	if !handlingError.CompareAndSwap(false, true) {
		return
	}
	defer handlingError.Store(false)

	registryMu.Lock()
	h := errorHandler
	registryMu.Unlock()
	if h != nil {
		h(err)
		return
	}
	guiLogger.Error("native error", "err", err)
}

// ensureGLFW initializes GLFW once per process, on demand from the
// first render thread to need it. It is never terminated here: the
// embedding host owns GLFW's process lifetime.
func ensureGLFW() error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if glfwReady {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("gui: glfw init: %w", err)
	}
	glfwReady = true
	return nil
}

// registerNative records that a window holds native resources. A
// window reopened after a full close rejoins the fleet here, so
// CloseAll and Shutdown always see it. The first native window
// installs the fleet-fatal error hook, saving whatever was there
// before.
func registerNative(w *Window) {
	registryMu.Lock()
	defer registryMu.Unlock()
	liveWindows[w] = struct{}{}
	nativeCount++
	if nativeCount == 1 {
		savedHandler = errorHandler
		errorHandler = fleetErrorHandler
	}
}

// unregisterNative is the teardown counterpart: the last native window
// restores the saved error hook and drops the window from the fleet.
func unregisterNative(w *Window) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(liveWindows, w)
	if nativeCount > 0 {
		nativeCount--
		if nativeCount == 0 {
			errorHandler = savedHandler
			savedHandler = nil
		}
	}
}
