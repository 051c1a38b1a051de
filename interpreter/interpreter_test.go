package interpreter

import (
	"testing"
)

const (
	keyCommand    Keycode = 125
	keyMouse      Keycode = 58
	keyLeft       Keycode = 105
	keyRight      Keycode = 106
	keyUp         Keycode = 103
	keyDown       Keycode = 108
	keyTab        Keycode = 15
	keyRightCtrl  Keycode = 97
	keyRightShift Keycode = 54
	keyA          Keycode = 30
)

var testKeys = Keys{
	Command:    keyCommand,
	Mouse:      keyMouse,
	Left:       keyLeft,
	Right:      keyRight,
	Up:         keyUp,
	Down:       keyDown,
	Tab:        keyTab,
	RightCtrl:  keyRightCtrl,
	RightShift: keyRightShift,
}

func press(c Keycode) KeyEvent { return KeyEvent{Code: c, Pressed: true} }
func release(c Keycode) KeyEvent { return KeyEvent{Code: c} }

func newTestInterpreter() (*Interpreter, *Recorder) {
	rec := NewRecorder()
	return New(testKeys, rec), rec
}

// step feeds one event and checks the result, resulting mode and effects
func step(t *testing.T, in *Interpreter, rec *Recorder, ev KeyEvent, wantPass bool, wantMode Mode, wantLog string) {
	t.Helper()
	got := in.Handle(ev)
	if got != wantPass {
		t.Fatalf("Handle(%+v) = %v, want %v", ev, got, wantPass)
	}
	if in.Mode() != wantMode {
		t.Fatalf("after %+v: mode = %v, want %v", ev, in.Mode(), wantMode)
	}
	if log := Log(rec.Take()); log != wantLog {
		t.Fatalf("after %+v: effects = %q, want %q", ev, log, wantLog)
	}
}

func TestNewStartsIdle(t *testing.T) {
	in, _ := newTestInterpreter()
	if in.Mode() != Idle {
		t.Fatalf("mode = %v, want Idle", in.Mode())
	}
}

func TestIdlePassThroughIsInert(t *testing.T) {
	in, rec := newTestInterpreter()
	for _, ev := range []KeyEvent{
		press(keyA), release(keyA),
		press(keyLeft), release(keyLeft),
		press(keyTab), release(keyTab),
		release(keyCommand), release(keyMouse),
		press(keyRightCtrl), release(keyRightShift),
	} {
		step(t, in, rec, ev, true, Idle, "")
	}
	if held := rec.HeldKeys(); len(held) != 0 {
		t.Fatalf("held = %v, want none", held)
	}
}

func TestCommandArrowSwaps(t *testing.T) {
	tests := []struct {
		key    Keycode
		target VirtualKey
	}{
		{keyLeft, Home},
		{keyRight, End},
		{keyUp, PageUp},
		{keyDown, PageDown},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			in, rec := newTestInterpreter()
			step(t, in, rec, press(keyCommand), true, CommandHeld, "-Alt +Ctrl")
			step(t, in, rec, press(tt.key), false, CommandHeld, "-Ctrl +"+tt.target.String())
			if rec.Held(Ctrl) || !rec.Held(tt.target) {
				t.Fatalf("held = %v, want only %v", rec.HeldKeys(), tt.target)
			}
			step(t, in, rec, release(tt.key), false, CommandHeld, "-"+tt.target.String()+" +Ctrl")
			if !rec.Held(Ctrl) || rec.Held(tt.target) {
				t.Fatalf("held = %v, want only Ctrl", rec.HeldKeys())
			}
			step(t, in, rec, release(keyCommand), true, Idle, "-Home -End -PageUp -PageDown -Ctrl -Alt")
			if held := rec.HeldKeys(); len(held) != 0 {
				t.Fatalf("held = %v, want none", held)
			}
		})
	}
}

func TestCommandOtherKeysPassThrough(t *testing.T) {
	in, rec := newTestInterpreter()
	step(t, in, rec, press(keyCommand), true, CommandHeld, "-Alt +Ctrl")
	step(t, in, rec, press(keyA), true, CommandHeld, "")
	step(t, in, rec, release(keyA), true, CommandHeld, "")
	step(t, in, rec, press(keyCommand), true, CommandHeld, "")
	step(t, in, rec, release(keyTab), true, CommandHeld, "")
	step(t, in, rec, press(keyRightCtrl), true, CommandHeld, "")
}

func TestCommandTabCancelledByArrow(t *testing.T) {
	in, rec := newTestInterpreter()
	step(t, in, rec, press(keyCommand), true, CommandHeld, "-Alt +Ctrl")
	step(t, in, rec, press(keyTab), true, CommandTabHeld, "+Alt")
	if !rec.Held(Ctrl) || !rec.Held(Alt) {
		t.Fatalf("held = %v, want Ctrl and Alt", rec.HeldKeys())
	}
	step(t, in, rec, release(keyTab), true, CommandTabHeld, "")
	step(t, in, rec, press(keyTab), true, CommandTabHeld, "")

	// The cancelling arrow is swallowed without swapping to Home.
	step(t, in, rec, press(keyLeft), false, CommandHeld, "-Alt +Ctrl")
	if rec.Held(Alt) || rec.Held(Home) || !rec.Held(Ctrl) {
		t.Fatalf("held = %v, want only Ctrl", rec.HeldKeys())
	}
	step(t, in, rec, release(keyCommand), true, Idle, "-Home -End -PageUp -PageDown -Ctrl -Alt")
	if held := rec.HeldKeys(); len(held) != 0 {
		t.Fatalf("held = %v, want none", held)
	}
}

func TestCommandTabArrowNeedsSecondPress(t *testing.T) {
	in, rec := newTestInterpreter()
	in.Handle(press(keyCommand))
	in.Handle(press(keyTab))
	rec.Take()

	step(t, in, rec, press(keyUp), false, CommandHeld, "-Alt +Ctrl")
	step(t, in, rec, release(keyUp), false, CommandHeld, "-PageUp +Ctrl")
	step(t, in, rec, press(keyUp), false, CommandHeld, "-Ctrl +PageUp")
}

func TestCommandTabAnyOtherEventCancels(t *testing.T) {
	for _, ev := range []KeyEvent{press(keyA), release(keyA), press(keyCommand), press(keyMouse), release(keyRightShift)} {
		in, rec := newTestInterpreter()
		in.Handle(press(keyCommand))
		in.Handle(press(keyTab))
		rec.Take()
		step(t, in, rec, ev, false, CommandHeld, "-Alt +Ctrl")
	}
}

func TestCommandTabReleaseTrigger(t *testing.T) {
	in, rec := newTestInterpreter()
	in.Handle(press(keyCommand))
	in.Handle(press(keyTab))
	rec.Take()
	step(t, in, rec, release(keyCommand), true, Idle, "-Home -End -PageUp -PageDown -Ctrl -Alt")
	if rec.Held(Ctrl) || rec.Held(Alt) {
		t.Fatalf("held = %v, want none", rec.HeldKeys())
	}
}

func TestCommandReleaseWhileArrowDown(t *testing.T) {
	in, rec := newTestInterpreter()
	in.Handle(press(keyCommand))
	in.Handle(press(keyRight))
	if !rec.Held(End) {
		t.Fatalf("held = %v, want End", rec.HeldKeys())
	}
	in.Handle(release(keyCommand))
	if held := rec.HeldKeys(); len(held) != 0 {
		t.Fatalf("held after trigger release = %v, want none", held)
	}
	rec.Take()
	// The late arrow release is an ordinary Idle event.
	step(t, in, rec, release(keyRight), true, Idle, "")
}

func TestMouseScenario(t *testing.T) {
	in, rec := newTestInterpreter()
	step(t, in, rec, press(keyMouse), true, MouseHeld, "-Ctrl -Alt")
	step(t, in, rec, press(keyUp), false, MouseHeld, "+MouseUp")
	step(t, in, rec, press(keyRightCtrl), false, MouseHeld, "+MouseButton1")
	step(t, in, rec, release(keyMouse), true, Idle,
		"-MouseLeft -MouseRight -MouseUp -MouseDown -MouseButton1 -MouseButton2 -Ctrl -Alt")
	if held := rec.HeldKeys(); len(held) != 0 {
		t.Fatalf("held = %v, want none", held)
	}
}

func TestMouseKeys(t *testing.T) {
	tests := []struct {
		key    Keycode
		target VirtualKey
	}{
		{keyLeft, MouseLeft},
		{keyRight, MouseRight},
		{keyUp, MouseUp},
		{keyDown, MouseDown},
		{keyRightCtrl, MouseButton1},
		{keyRightShift, MouseButton2},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			in, rec := newTestInterpreter()
			in.Handle(press(keyMouse))
			rec.Take()
			step(t, in, rec, press(tt.key), false, MouseHeld, "+"+tt.target.String())
			step(t, in, rec, release(tt.key), false, MouseHeld, "-"+tt.target.String())
		})
	}
}

func TestMouseOtherKeysPassThrough(t *testing.T) {
	in, rec := newTestInterpreter()
	in.Handle(press(keyMouse))
	rec.Take()
	for _, ev := range []KeyEvent{press(keyA), release(keyA), press(keyTab), press(keyCommand), release(keyCommand), press(keyMouse)} {
		step(t, in, rec, ev, true, MouseHeld, "")
	}
}

func TestReset(t *testing.T) {
	in, rec := newTestInterpreter()
	in.Handle(press(keyMouse))
	rec.Take()
	in.Reset()
	if in.Mode() != Idle {
		t.Fatalf("mode = %v, want Idle", in.Mode())
	}
	if effects := rec.Take(); len(effects) != 0 {
		t.Fatalf("Reset issued effects %v", effects)
	}
}

// Every keycode/pressed pair in every mode is accepted and trigger releases
// always leave nothing held.
func TestTotalAndNoStuckKeys(t *testing.T) {
	codes := []Keycode{keyCommand, keyMouse, keyLeft, keyRight, keyUp, keyDown, keyTab, keyRightCtrl, keyRightShift, keyA}
	var events []KeyEvent
	for _, c := range codes {
		events = append(events, press(c), release(c))
	}

	// Exhaustive over all pairs of events from every reachable prefix.
	prefixes := [][]KeyEvent{
		nil,
		{press(keyCommand)},
		{press(keyCommand), press(keyTab)},
		{press(keyCommand), press(keyLeft)},
		{press(keyMouse)},
		{press(keyMouse), press(keyDown), press(keyRightShift)},
	}
	for _, prefix := range prefixes {
		for _, a := range events {
			for _, b := range events {
				in, rec := newTestInterpreter()
				for _, ev := range append(append(append([]KeyEvent{}, prefix...), a), b) {
					in.Handle(ev)
				}
				for _, trigger := range []Keycode{keyCommand, keyMouse} {
					before := in.Mode()
					in.Handle(release(trigger))
					switch {
					case trigger == keyCommand && (before == CommandHeld || before == CommandTabHeld):
						if in.Mode() != Idle || rec.Held(Ctrl) || rec.Held(Alt) {
							t.Fatalf("prefix %v %v %v: mode %v held %v after command release", prefix, a, b, in.Mode(), rec.HeldKeys())
						}
						if held := rec.HeldKeys(); len(held) != 0 {
							t.Fatalf("prefix %v %v %v: stuck %v", prefix, a, b, held)
						}
					case trigger == keyMouse && before == MouseHeld:
						for _, k := range mouseKeys {
							if rec.Held(k) {
								t.Fatalf("prefix %v %v %v: %v stuck after mouse release", prefix, a, b, k)
							}
						}
					}
				}
			}
		}
	}
}
