package gui

// Clipboard abstracts system clipboard access. Each window carries its
// own Clipboard; the render thread installs a GLFW-backed one when the
// native window comes up, and tests substitute a stub.
//
// TextField uses it for Ctrl+C / Ctrl+X / Ctrl+V.
type Clipboard interface {
	// GetText retrieves text from the system clipboard.
	// Returns empty string if the clipboard is empty or holds non-text data.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}
