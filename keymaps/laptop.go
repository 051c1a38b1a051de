package keymaps

// GetLaptopKeyMapping returns key mappings for laptop-type keyboards
func GetLaptopKeyMapping() KeyMapping {
	n := GetExternalKeyMapping()
	// Small laptop rows have no room right of space, use Right Alt as button 1
	n.RightCtrlKey = KeyRightAlt
	return n
}

// RegisterLaptopKeyMapping registers laptop keyboard mapping with the provider
func RegisterLaptopKeyMapping(provider *KeyMappingProvider) {
	provider.RegisterMapping(KBD_TYPE_LAPTOP, GetLaptopKeyMapping())
}
