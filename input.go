package gui

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Action represents the state change of a key or mouse button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// ModifierKey is a bitmask of modifier keys held during an input event.
type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key represents a keyboard key.
// Only the keys the widget set reacts to are mapped; everything else
// arrives as KeyNone and flows through unconsumed.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyA
	KeyC
	KeyV
	KeyX
)

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:      "--",
		KeyEnter:     "Enter",
		KeyEscape:    "Esc",
		KeyBackspace: "Backspace",
		KeyDelete:    "Delete",
		KeyLeft:      "Left",
		KeyRight:     "Right",
		KeyHome:      "Home",
		KeyEnd:       "End",
		KeyA:         "A",
		KeyC:         "C",
		KeyV:         "V",
		KeyX:         "X",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
