package gui

import (
	"errors"
	"testing"
)

func TestCreateTracksWindow(t *testing.T) {
	w := Create("tracked", 100, 100, nil)
	defer func() {
		registryMu.Lock()
		delete(liveWindows, w)
		registryMu.Unlock()
	}()

	found := false
	for _, lw := range Windows() {
		if lw == w {
			found = true
		}
	}
	if !found {
		t.Fatal("created window missing from the registry")
	}
	if w.IsOpen() {
		t.Fatal("Create must not open the window")
	}
}

func TestReopenedWindowRejoinsRegistry(t *testing.T) {
	w := newWindow("revenant", 10, 10, nil)
	defer func() {
		registryMu.Lock()
		delete(liveWindows, w)
		registryMu.Unlock()
	}()

	// Full close drops the window from the fleet.
	registerNative(w)
	unregisterNative(w)
	for _, lw := range Windows() {
		if lw == w {
			t.Fatal("closed window still in the registry")
		}
	}

	// Reopening must put it back so CloseAll and Shutdown see it.
	registerNative(w)
	defer unregisterNative(w)
	found := false
	for _, lw := range Windows() {
		if lw == w {
			found = true
		}
	}
	if !found {
		t.Fatal("reopened window missing from the registry")
	}
}

func TestSetErrorHandlerReturnsPrevious(t *testing.T) {
	sentinel := func(error) {}
	prev := SetErrorHandler(sentinel)
	defer SetErrorHandler(prev)

	got := SetErrorHandler(nil)
	if got == nil {
		t.Fatal("expected the sentinel handler back")
	}
	SetErrorHandler(sentinel)
}

func TestReportNativeErrorRoutesToHandler(t *testing.T) {
	var got error
	prev := SetErrorHandler(func(err error) { got = err })
	defer SetErrorHandler(prev)

	want := errors.New("boom")
	reportNativeError(want)
	if got != want {
		t.Fatalf("handler got %v, want %v", got, want)
	}
}

func TestReportNativeErrorSuppressesReentry(t *testing.T) {
	calls := 0
	prev := SetErrorHandler(nil)
	SetErrorHandler(func(err error) {
		calls++
		reportNativeError(errors.New("nested"))
	})
	defer SetErrorHandler(prev)

	reportNativeError(errors.New("outer"))
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1 (nested report suppressed)", calls)
	}
}

func TestNativeRegistrationSwapsErrorHandler(t *testing.T) {
	original := func(error) {}
	prev := SetErrorHandler(original)
	defer SetErrorHandler(prev)

	a := newWindow("a", 10, 10, nil)
	b := newWindow("b", 10, 10, nil)
	registryMu.Lock()
	liveWindows[a] = struct{}{}
	liveWindows[b] = struct{}{}
	registryMu.Unlock()

	registerNative(a)
	registerNative(b)

	registryMu.Lock()
	swapped := errorHandler != nil && savedHandler != nil
	registryMu.Unlock()
	if !swapped {
		t.Fatal("first native window should install the fleet handler and save the old one")
	}

	unregisterNative(a)
	unregisterNative(b)

	registryMu.Lock()
	restored := savedHandler == nil && errorHandler != nil
	count := nativeCount
	registryMu.Unlock()
	if !restored {
		t.Fatal("last native teardown should restore the saved handler")
	}
	if count != 0 {
		t.Fatalf("native count = %d, want 0", count)
	}
}
