package keymaps

// Key codes from linux/input-event-codes.h
const (
	KeyTab        = 15
	KeyLeftCtrl   = 29
	KeyLeftShift  = 42
	KeyRightShift = 54
	KeyLeftAlt    = 56
	KeyCapsLock   = 58
	KeyRightCtrl  = 97
	KeyRightAlt   = 100
	KeyUp         = 103
	KeyLeft       = 105
	KeyRight      = 106
	KeyDown       = 108
	KeyLeftMeta   = 125
	KeyRightMeta  = 126
)
