package core

// Flags are the client-mode options the session runs under.
type Flags uint8

const (
	FlagZero              Flags = 0x00
	FlagFullscreenModeset Flags = 0x01 // Alternate screen at the configured scale
	FlagFullscreenFake    Flags = 0x02 // Alternate screen, scale fitted to the terminal
	FlagSpectator         Flags = 0x04 // Watching another client's game
)

// Has reports whether every bit of f is set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Fullscreen reports whether either fullscreen variant is requested.
func (fl Flags) Fullscreen() bool {
	return fl&(FlagFullscreenModeset|FlagFullscreenFake) != 0
}
