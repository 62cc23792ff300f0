/*
Package gui provides retained-mode auxiliary windows for embedding in a
host application, built on GLFW and OpenGL.

# Overview

Each window runs its own render thread: opening a window spawns a
goroutine that owns the native window, its GL context and its glyph
cache for the window's whole life. The host builds a widget tree once
and the window renders and dispatches input to it until closed. Windows
are cheap to open and close repeatedly; native resources are recreated
on every open.

# Quick Start

	w := gui.Open("Inventory", 400, 600, func(w *gui.Window) {
	    w.AddWidget(gui.NewButton(20, 20, 160, 40, "Sort", func() {
	        // runs on the window's render thread
	    }))

	    field := gui.NewTextField(20, 80, 360, 36)
	    field.SetOnSubmit(func(s string) { search(s) })
	    w.AddWidget(field)
	})

	// later, from any goroutine
	w.Close()

The initializer runs on the render thread after the native window
exists. Widget callbacks also run there; use Window.RunOnHost to hand
work back to the host's thread.

# Input

Input routing follows the visual stacking order: the widget added last
sits on top and sees events first. A widget consumes an event by
returning true from its handler; unconsumed left clicks clear keyboard
focus, and an unconsumed Escape closes the window.

# Threads

Open, Close, AddWidget and the setters are safe from any goroutine.
Widget state is owned by the render thread; mutate widgets from their
own callbacks or via the initializer, not from arbitrary goroutines.
*/
package gui
