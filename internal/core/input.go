package core

// Key is a logical game control, abstracted from physical key presses.
// Its String form is the name used on the wire.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyShoot
)

// String returns the protocol name of the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyShoot:
		return "shoot"
	default:
		return "unknown"
	}
}

// Direction tells whether a key went down or up.
type Direction int

const (
	Press Direction = iota
	Release
)

// String returns the protocol operation for the direction.
func (d Direction) String() string {
	if d == Release {
		return "release"
	}
	return "press"
}
