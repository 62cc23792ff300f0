package gui

import (
	"testing"
	"time"
)

func TestWindowReportsTargetSizeBeforeResize(t *testing.T) {
	w := newWindow("sized", 700, 600, nil)
	if w.Width() != 700 || w.Height() != 600 {
		t.Fatalf("size = %dx%d, want 700x600", w.Width(), w.Height())
	}
}

func TestWindowDefaults(t *testing.T) {
	w := newWindow("", 0, -3, nil)

	if w.Width() != 800 || w.Height() != 600 {
		t.Fatalf("default size = %dx%d, want 800x600", w.Width(), w.Height())
	}
	if w.IsOpen() {
		t.Fatal("fresh window must not report open")
	}
	if !w.vsync.Load() {
		t.Fatal("vsync should default on")
	}
	if w.FrameWait() != time.Second/60 {
		t.Fatalf("frame wait = %v, want %v", w.FrameWait(), time.Second/60)
	}
	r, g, b := w.BackgroundColor()
	if r == 0 && g == 0 && b == 0 {
		t.Fatal("background should default to a non-black color")
	}
}

func TestWindowOptions(t *testing.T) {
	cb := &stubClipboard{}
	var relayouts int
	w := newWindow("opts", 100, 100, nil,
		WithBackgroundColor(1, 0.5, 0),
		WithTargetFPS(30),
		WithVsync(false),
		WithClipboard(cb),
		WithRelayout(func(*Window, int, int) { relayouts++ }),
	)

	if r, g, b := w.BackgroundColor(); r != 1 || g != 0.5 || b != 0 {
		t.Fatalf("background = %v,%v,%v, want 1,0.5,0", r, g, b)
	}
	if w.FrameWait() != time.Second/30 {
		t.Fatalf("frame wait = %v, want %v", w.FrameWait(), time.Second/30)
	}
	if w.vsync.Load() {
		t.Fatal("vsync should be disabled")
	}
	if w.Clipboard() != cb {
		t.Fatal("clipboard option not applied")
	}
	w.resized(50, 50)
	if relayouts != 1 {
		t.Fatalf("relayout hook ran %d times, want 1", relayouts)
	}
}

func TestWindowTargetFPSZeroMeansEventDriven(t *testing.T) {
	w := newWindow("", 100, 100, nil)
	w.SetTargetFPS(0)
	if w.FrameWait() != 0 {
		t.Fatalf("frame wait = %v, want 0 (block until input)", w.FrameWait())
	}
}

func TestWindowCloseWithoutOpenIsNoop(t *testing.T) {
	w := newWindow("", 100, 100, nil)
	w.Close()
	w.Close()
	if w.IsOpen() {
		t.Fatal("window should stay closed")
	}
}

func TestWindowWidgetCollection(t *testing.T) {
	w := newWindow("", 100, 100, nil)
	a := &recorder{Base: NewBase(0, 0, 10, 10)}
	b := &recorder{Base: NewBase(0, 0, 10, 10)}

	w.AddWidget(a)
	w.AddWidget(b)
	if len(w.Widgets()) != 2 {
		t.Fatalf("widgets = %d, want 2", len(w.Widgets()))
	}

	snap := w.Widgets()
	w.RemoveWidget(a)
	if len(snap) != 2 {
		t.Fatal("earlier snapshot must be unaffected by removal")
	}
	if len(w.Widgets()) != 1 || w.Widgets()[0] != b {
		t.Fatalf("after remove: %d widgets", len(w.Widgets()))
	}

	w.ClearWidgets()
	if len(w.Widgets()) != 0 {
		t.Fatalf("after clear: %d widgets", len(w.Widgets()))
	}
}

func TestWindowWithConfig(t *testing.T) {
	off := false
	cfg := Config{
		Background: []float32{0.2, 0.3, 0.4},
		TargetFPS:  30,
		Vsync:      &off,
		Font:       "fonts/custom.ttf",
	}
	w := newWindow("cfg", 100, 100, nil, WithConfig(cfg))

	if r, g, b := w.BackgroundColor(); r != 0.2 || g != 0.3 || b != 0.4 {
		t.Fatalf("background = %v,%v,%v", r, g, b)
	}
	if w.FrameWait() != time.Second/30 {
		t.Fatalf("frame wait = %v, want %v", w.FrameWait(), time.Second/30)
	}
	if w.vsync.Load() {
		t.Fatal("vsync should be off")
	}
	if w.fontPath != "fonts/custom.ttf" {
		t.Fatalf("font path = %q", w.fontPath)
	}
}

func TestWindowReopenSupersedesOldGeneration(t *testing.T) {
	w := newWindow("", 100, 100, nil)

	gen1, ok := w.requestOpen()
	if !ok {
		t.Fatal("first open request refused")
	}
	if _, ok := w.requestOpen(); ok {
		t.Fatal("second open request accepted while already open")
	}

	// Close then reopen before the first incarnation's render loop has
	// observed the close. The loop keys on its own generation, so the
	// reopen must not feed it another iteration.
	if !w.requestClose() {
		t.Fatal("close request refused")
	}
	gen2, ok := w.requestOpen()
	if !ok {
		t.Fatal("reopen request refused")
	}
	if gen2 == gen1 {
		t.Fatal("reopen reused the old generation")
	}
	if w.state.Load() == gen1 {
		t.Fatal("old render loop condition still true after close")
	}
	if w.state.Load() != gen2 {
		t.Fatalf("state = %d, want new generation %d", w.state.Load(), gen2)
	}
}

func TestWindowStaleTeardownCannotCancelNewOpen(t *testing.T) {
	w := newWindow("", 100, 100, nil)

	gen1, _ := w.requestOpen()
	w.requestClose()
	gen2, _ := w.requestOpen()

	// The first incarnation's teardown runs after the reopen was
	// accepted. It may only settle its own generation.
	w.settleClosed(gen1)
	if w.state.Load() != gen2 {
		t.Fatalf("state = %d, want %d (stale teardown must not close the new incarnation)",
			w.state.Load(), gen2)
	}

	// Once the new incarnation closes, its own settle takes effect.
	w.requestClose()
	w.settleClosed(gen2)
	if w.state.Load()%2 != 0 {
		t.Fatal("window should be closed")
	}
	if _, ok := w.requestOpen(); !ok {
		t.Fatal("window should be openable again after a full close")
	}
}

func TestWindowMeasurerFallback(t *testing.T) {
	w := newWindow("", 100, 100, nil)
	if w.Measurer() != nil {
		t.Fatal("no measurer expected before the glyph service exists")
	}
	m := fixedMeasurer{advance: 7}
	w.SetMeasurer(m)
	if w.Measurer() != m {
		t.Fatal("injected measurer not returned")
	}
}
