package interpreter

import "fmt"

// Keycode identifies a physical key (a Linux evdev key code)
type Keycode uint16

// KeyEvent is one physical key transition delivered by the host dispatcher
type KeyEvent struct {
	Code    Keycode
	Pressed bool
}

// VirtualKey is a key the interpreter asks the host to hold or release.
// It is distinct from the physical key that produced the event.
type VirtualKey int

const (
	Ctrl VirtualKey = iota
	Alt
	Home
	End
	PageUp
	PageDown
	MouseLeft
	MouseRight
	MouseUp
	MouseDown
	MouseButton1
	MouseButton2
)

var virtualKeyNames = map[VirtualKey]string{
	Ctrl:         "Ctrl",
	Alt:          "Alt",
	Home:         "Home",
	End:          "End",
	PageUp:       "PageUp",
	PageDown:     "PageDown",
	MouseLeft:    "MouseLeft",
	MouseRight:   "MouseRight",
	MouseUp:      "MouseUp",
	MouseDown:    "MouseDown",
	MouseButton1: "MouseButton1",
	MouseButton2: "MouseButton2",
}

func (k VirtualKey) String() string {
	if name, ok := virtualKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("VirtualKey(%d)", int(k))
}

// Keys holds the physical codes the interpreter reacts to
type Keys struct {
	Command    Keycode // trigger A
	Mouse      Keycode // trigger B
	Left       Keycode
	Right      Keycode
	Up         Keycode
	Down       Keycode
	Tab        Keycode
	RightCtrl  Keycode
	RightShift Keycode
}

// Registrar is the host's key-registration subsystem. The interpreter only
// issues commands against it and never reads what is held.
type Registrar interface {
	Register(key VirtualKey)
	Unregister(key VirtualKey)
}
