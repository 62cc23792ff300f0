package gui

import (
	"log/slog"
	"os"
)

// guiLogLevel controls the log level for GUI logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var guiLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for the window system.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}

// guiLogger is the package logger. Native-layer errors, asset-load
// failures and lifecycle transitions are reported here; nothing in this
// package writes to stdout.
var guiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel}))
