package gui

// WindowOption configures a window at creation time.
type WindowOption func(w *Window)

// WithBackgroundColor sets the clear color, components in [0, 1].
func WithBackgroundColor(r, g, b float32) WindowOption {
	return func(w *Window) { w.bgR, w.bgG, w.bgB = r, g, b }
}

// WithTargetFPS caps the idle redraw rate. Zero or negative makes the
// window purely event-driven.
func WithTargetFPS(fps int) WindowOption {
	return func(w *Window) { w.SetTargetFPS(fps) }
}

// WithVsync enables or disables swap synchronization.
func WithVsync(enabled bool) WindowOption {
	return func(w *Window) { w.vsync.Store(enabled) }
}

// WithClipboard injects a clipboard, replacing the native one.
func WithClipboard(cb Clipboard) WindowOption {
	return func(w *Window) { w.clipboard = cb }
}

// WithHost attaches the embedding host used by RunOnHost.
func WithHost(h Host) WindowOption {
	return func(w *Window) { w.host = h }
}

// WithRelayout installs the resize hook.
func WithRelayout(fn func(w *Window, width, height int)) WindowOption {
	return func(w *Window) { w.relayoutFn = fn }
}

// WithFont loads the glyph face from a TTF file instead of the
// built-in face. A load failure at open time is logged and the
// built-in face used.
func WithFont(path string) WindowOption {
	return func(w *Window) { w.fontPath = path }
}

// WithConfig applies a loaded configuration. Unset fields keep their
// defaults.
func WithConfig(cfg Config) WindowOption {
	return func(w *Window) {
		if len(cfg.Background) == 3 {
			w.bgR, w.bgG, w.bgB = cfg.Background[0], cfg.Background[1], cfg.Background[2]
		}
		if cfg.TargetFPS != 0 {
			w.SetTargetFPS(cfg.TargetFPS)
		}
		if cfg.Vsync != nil {
			w.vsync.Store(*cfg.Vsync)
		}
		if cfg.Font != "" {
			w.fontPath = cfg.Font
		}
		if len(cfg.Icon) > 0 {
			if err := SetWindowIcon(cfg.Icon...); err != nil {
				guiLogger.Warn("configured icon not loaded", "err", err)
			}
		}
	}
}
