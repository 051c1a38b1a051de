// Package interpreter reinterprets raw key events for the command and mouse
// triggers. It holds a single mode and talks to the host only through a
// Registrar.
package interpreter

import "fmt"

// Mode is the interpreter state
type Mode int

const (
	Idle Mode = iota
	CommandHeld
	CommandTabHeld
	MouseHeld
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case CommandHeld:
		return "CommandHeld"
	case CommandTabHeld:
		return "CommandTabHeld"
	case MouseHeld:
		return "MouseHeld"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Interpreter is not safe for concurrent use. The host delivers one event at
// a time and waits for Handle to return.
type Interpreter struct {
	keys Keys
	reg  Registrar
	mode Mode
}

// New creates an interpreter in Idle mode
func New(keys Keys, reg Registrar) *Interpreter {
	return &Interpreter{keys: keys, reg: reg, mode: Idle}
}

// Mode returns the current mode
func (in *Interpreter) Mode() Mode {
	return in.mode
}

// Reset puts the interpreter back in Idle without touching the registrar
func (in *Interpreter) Reset() {
	in.mode = Idle
}

// Handle processes one key transition. It returns true when the host should
// apply its default action for the event and false when the event was fully
// handled here.
func (in *Interpreter) Handle(ev KeyEvent) bool {
	switch in.mode {
	case Idle:
		return in.handleIdle(ev)
	case CommandHeld:
		return in.handleCommand(ev)
	case CommandTabHeld:
		return in.handleCommandTab(ev)
	case MouseHeld:
		return in.handleMouse(ev)
	}
	return true
}

func (in *Interpreter) handleIdle(ev KeyEvent) bool {
	if !ev.Pressed {
		return true
	}
	switch ev.Code {
	case in.keys.Command:
		in.enterCommand()
	case in.keys.Mouse:
		in.enterMouse()
	}
	return true
}

func (in *Interpreter) handleCommand(ev KeyEvent) bool {
	switch ev.Code {
	case in.keys.Command:
		if !ev.Pressed {
			in.leaveCommand()
		}
	case in.keys.Left:
		in.swap(ev, Ctrl, Home)
		return false
	case in.keys.Right:
		in.swap(ev, Ctrl, End)
		return false
	case in.keys.Up:
		in.swap(ev, Ctrl, PageUp)
		return false
	case in.keys.Down:
		in.swap(ev, Ctrl, PageDown)
		return false
	case in.keys.Tab:
		// Tab itself still reaches the host
		if ev.Pressed {
			in.enterCommandTab()
		}
	}
	return true
}

func (in *Interpreter) handleCommandTab(ev KeyEvent) bool {
	if ev.Code == in.keys.Command && !ev.Pressed {
		in.leaveCommand()
		return true
	}
	if ev.Code != in.keys.Tab {
		// Cancels the tab chord. The event is swallowed, so an arrow here
		// only returns to CommandHeld and needs another press to swap.
		in.enterCommand()
		return false
	}
	return true
}

func (in *Interpreter) handleMouse(ev KeyEvent) bool {
	switch ev.Code {
	case in.keys.Mouse:
		if !ev.Pressed {
			for _, k := range mouseKeys {
				in.reg.Unregister(k)
			}
			in.enterIdle()
		}
	case in.keys.Left:
		in.hold(ev, MouseLeft)
		return false
	case in.keys.Right:
		in.hold(ev, MouseRight)
		return false
	case in.keys.Up:
		in.hold(ev, MouseUp)
		return false
	case in.keys.Down:
		in.hold(ev, MouseDown)
		return false
	case in.keys.RightCtrl:
		in.hold(ev, MouseButton1)
		return false
	case in.keys.RightShift:
		in.hold(ev, MouseButton2)
		return false
	}
	return true
}

// mouseKeys is everything MouseHeld may have registered
var mouseKeys = []VirtualKey{MouseLeft, MouseRight, MouseUp, MouseDown, MouseButton1, MouseButton2}

// navKeys are the swap targets an arrow may still hold when trigger A goes up
var navKeys = []VirtualKey{Home, End, PageUp, PageDown}

func (in *Interpreter) leaveCommand() {
	for _, k := range navKeys {
		in.reg.Unregister(k)
	}
	in.enterIdle()
}

func (in *Interpreter) enterIdle() {
	in.reg.Unregister(Ctrl)
	in.reg.Unregister(Alt)
	in.mode = Idle
}

func (in *Interpreter) enterCommand() {
	in.reg.Unregister(Alt)
	in.reg.Register(Ctrl)
	in.mode = CommandHeld
}

// enterCommandTab adds Alt on top of the held Ctrl
func (in *Interpreter) enterCommandTab() {
	in.reg.Register(Alt)
	in.mode = CommandTabHeld
}

func (in *Interpreter) enterMouse() {
	in.reg.Unregister(Ctrl)
	in.reg.Unregister(Alt)
	in.mode = MouseHeld
}

// swap makes the physical key act as to instead of from for one
// press/release pair. Release order is reversed so both are never held.
func (in *Interpreter) swap(ev KeyEvent, from, to VirtualKey) {
	if ev.Pressed {
		in.reg.Unregister(from)
		in.reg.Register(to)
	} else {
		in.reg.Unregister(to)
		in.reg.Register(from)
	}
}

func (in *Interpreter) hold(ev KeyEvent, key VirtualKey) {
	if ev.Pressed {
		in.reg.Register(key)
	} else {
		in.reg.Unregister(key)
	}
}
