package entity

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ErrBadRatio is returned for speeds with a negative period, or a nonzero
// distance over a zero period.
var ErrBadRatio = errors.New("entity: bad speed ratio")

// JumpDefault is the distance moved by a 0/n speed each period.
const JumpDefault = 1

// Ratio is a movement rate: Numerator units every Denominator ticks.
// A zero Denominator means the axis never moves.
type Ratio struct {
	Numerator   int
	Denominator uint
}

// NewRatio validates a speed as received from the server. 0/0 is accepted
// for a static axis.
func NewRatio(num, den int) (Ratio, error) {
	if den < 0 || (num != 0 && den == 0) {
		return Ratio{}, fmt.Errorf("%w: %d:%d", ErrBadRatio, num, den)
	}
	return Ratio{Numerator: num, Denominator: uint(den)}, nil
}

// Static reports whether the axis never moves.
func (r Ratio) Static() bool {
	return r.Denominator == 0
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Numerator, r.Denominator)
}

// MoveOnTick advances coord if tick falls on the speed's period.
// The jump is |Numerator| in the direction of its sign, or JumpDefault
// forward when Numerator is zero.
func MoveOnTick(coord int, speed Ratio, tick uint64) (int, bool) {
	if speed.Denominator == 0 || tick%uint64(speed.Denominator) != 0 {
		return coord, false
	}

	jump := core.Abs(speed.Numerator)
	if jump == 0 {
		jump = JumpDefault
	}
	if speed.Numerator < 0 {
		jump = -jump
	}
	return coord + jump, true
}
