package keymaps

import "github.com/goWinMouse/interpreter"

// Define keyboard types
const (
	KBD_TYPE_EXTERNAL = iota
	KBD_TYPE_LAPTOP
)

// KeyMapping defines the physical keys the interpreter listens to
type KeyMapping struct {
	CommandKey    uint16
	MouseKey      uint16
	LeftKey       uint16
	RightKey      uint16
	UpKey         uint16
	DownKey       uint16
	TabKey        uint16
	RightCtrlKey  uint16
	RightShiftKey uint16
}

// Keys converts the mapping for the interpreter
func (m KeyMapping) Keys() interpreter.Keys {
	return interpreter.Keys{
		Command:    interpreter.Keycode(m.CommandKey),
		Mouse:      interpreter.Keycode(m.MouseKey),
		Left:       interpreter.Keycode(m.LeftKey),
		Right:      interpreter.Keycode(m.RightKey),
		Up:         interpreter.Keycode(m.UpKey),
		Down:       interpreter.Keycode(m.DownKey),
		Tab:        interpreter.Keycode(m.TabKey),
		RightCtrl:  interpreter.Keycode(m.RightCtrlKey),
		RightShift: interpreter.Keycode(m.RightShiftKey),
	}
}

// IsTrigger reports whether code is one of the two trigger keys. Triggers
// have no default action and are never forwarded to the virtual keyboard.
func (m KeyMapping) IsTrigger(code uint16) bool {
	return code != 0 && (code == m.CommandKey || code == m.MouseKey)
}

// Override returns a copy of m with every non-zero field of o applied
func (m KeyMapping) Override(o KeyMapping) KeyMapping {
	set := func(dst *uint16, v uint16) {
		if v != 0 {
			*dst = v
		}
	}
	set(&m.CommandKey, o.CommandKey)
	set(&m.MouseKey, o.MouseKey)
	set(&m.LeftKey, o.LeftKey)
	set(&m.RightKey, o.RightKey)
	set(&m.UpKey, o.UpKey)
	set(&m.DownKey, o.DownKey)
	set(&m.TabKey, o.TabKey)
	set(&m.RightCtrlKey, o.RightCtrlKey)
	set(&m.RightShiftKey, o.RightShiftKey)
	return m
}

// KeyMappingProvider provides key mappings for different keyboard types
type KeyMappingProvider struct {
	mappings map[int]KeyMapping
}

// NewKeyMappingProvider creates an empty mapping provider
func NewKeyMappingProvider() *KeyMappingProvider {
	return &KeyMappingProvider{
		mappings: map[int]KeyMapping{},
	}
}

// GetMapping returns the key mapping for the specified keyboard type
func (p *KeyMappingProvider) GetMapping(keyboardType int) KeyMapping {
	mapping, exists := p.mappings[keyboardType]
	if !exists {
		// Default to external mapping if type not found
		return p.mappings[KBD_TYPE_EXTERNAL]
	}
	return mapping
}

// RegisterMapping registers a new key mapping for a specific keyboard type
func (p *KeyMappingProvider) RegisterMapping(keyboardType int, mapping KeyMapping) {
	p.mappings[keyboardType] = mapping
}
