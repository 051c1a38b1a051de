package keymaps

// GetExternalKeyMapping returns key mappings for full-size USB keyboards.
// The command trigger sits where the Windows key is, the mouse trigger on
// Caps Lock.
func GetExternalKeyMapping() KeyMapping {
	return KeyMapping{
		CommandKey:    KeyLeftMeta,
		MouseKey:      KeyCapsLock,
		LeftKey:       KeyLeft,
		RightKey:      KeyRight,
		UpKey:         KeyUp,
		DownKey:       KeyDown,
		TabKey:        KeyTab,
		RightCtrlKey:  KeyRightCtrl,
		RightShiftKey: KeyRightShift,
	}
}

// RegisterExternalKeyMapping registers external keyboard mapping with the provider
func RegisterExternalKeyMapping(provider *KeyMappingProvider) {
	provider.RegisterMapping(KBD_TYPE_EXTERNAL, GetExternalKeyMapping())
}
