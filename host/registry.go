// Package host is the key-registration side of the remapper: it owns the set
// of held virtual keys and drives the uinput keyboard and mouse from it.
package host

import (
	"log"
	"sort"
	"sync"

	"github.com/bendahl/uinput"

	"github.com/goWinMouse/interpreter"
)

// Keyboard is the part of uinput.Keyboard the registry needs
type Keyboard interface {
	KeyDown(key int) error
	KeyUp(key int) error
}

// Mouse is the part of uinput.Mouse the registry and pointer need
type Mouse interface {
	Move(x, y int32) error
	LeftPress() error
	LeftRelease() error
	RightPress() error
	RightRelease() error
}

var keyboardCodes = map[interpreter.VirtualKey]int{
	interpreter.Ctrl:     uinput.KeyLeftctrl,
	interpreter.Alt:      uinput.KeyLeftalt,
	interpreter.Home:     uinput.KeyHome,
	interpreter.End:      uinput.KeyEnd,
	interpreter.PageUp:   uinput.KeyPageup,
	interpreter.PageDown: uinput.KeyPagedown,
}

// Direction is the set of mouse directions currently held
type Direction struct {
	Left, Right, Up, Down bool
}

// Registry implements interpreter.Registrar on top of virtual devices
type Registry struct {
	mu       sync.Mutex
	keyboard Keyboard
	mouse    Mouse
	logger   *log.Logger
	held     map[interpreter.VirtualKey]bool
}

// NewRegistry creates a registry with nothing held
func NewRegistry(keyboard Keyboard, mouse Mouse, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		keyboard: keyboard,
		mouse:    mouse,
		logger:   logger,
		held:     map[interpreter.VirtualKey]bool{},
	}
}

// Register holds key. Holding an already held key does nothing.
func (r *Registry) Register(key interpreter.VirtualKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.held[key] {
		return
	}
	r.held[key] = true
	r.apply(key, true)
}

// Unregister releases key. Releasing a key that is not held does nothing.
func (r *Registry) Unregister(key interpreter.VirtualKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.held[key] {
		return
	}
	delete(r.held, key)
	r.apply(key, false)
}

func (r *Registry) apply(key interpreter.VirtualKey, down bool) {
	var err error
	if code, ok := keyboardCodes[key]; ok {
		if down {
			err = r.keyboard.KeyDown(code)
		} else {
			err = r.keyboard.KeyUp(code)
		}
	} else {
		switch key {
		case interpreter.MouseButton1:
			if down {
				err = r.mouse.LeftPress()
			} else {
				err = r.mouse.LeftRelease()
			}
		case interpreter.MouseButton2:
			if down {
				err = r.mouse.RightPress()
			} else {
				err = r.mouse.RightRelease()
			}
		}
		// Directions only change the held set, the pointer loop reads them.
	}
	if err != nil {
		r.logger.Printf("Failed to apply %v (down=%v): %v", key, down, err)
	}
}

// Held reports whether key is registered
func (r *Registry) Held(key interpreter.VirtualKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[key]
}

// HeldKeys returns a sorted snapshot of the registered keys
func (r *Registry) HeldKeys() []interpreter.VirtualKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]interpreter.VirtualKey, 0, len(r.held))
	for k := range r.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Direction returns which mouse directions are held
func (r *Registry) Direction() Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Direction{
		Left:  r.held[interpreter.MouseLeft],
		Right: r.held[interpreter.MouseRight],
		Up:    r.held[interpreter.MouseUp],
		Down:  r.held[interpreter.MouseDown],
	}
}

// ReleaseAll unregisters everything still held, used on shutdown so no key
// stays down on the virtual devices.
func (r *Registry) ReleaseAll() {
	for _, k := range r.HeldKeys() {
		r.logger.Printf("Releasing held %v", k)
		r.Unregister(k)
	}
}
